package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/domain/entity"
	domainRepo "go-clinic-backend/internal/domain/repository"
)

type patientRepositoryGorm struct {
	db *gorm.DB
}

// NewPatientRepositoryGorm is the fluent-builder sibling of the patient
// repository. Must return the same logical row sets as the pgx sibling.
func NewPatientRepositoryGorm(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepositoryGorm{db: db}
}

func (r *patientRepositoryGorm) FindAll(ctx context.Context, filters map[string]any, p domainRepo.Pagination) ([]entity.Patient, domainRepo.Meta, error) {
	p = p.Normalize()

	tx, err := applyFilters(r.db.WithContext(ctx).Model(&entity.Patient{}), "patients", filters)
	if err != nil {
		return nil, domainRepo.Meta{}, err
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, domainRepo.Meta{}, fmt.Errorf("count patients: %w", dataaccess.TranslateGormError(err))
	}

	var patients []entity.Patient
	err = tx.Order("id").Limit(p.Limit).Offset(p.Offset()).Find(&patients).Error
	if err != nil {
		return nil, domainRepo.Meta{}, fmt.Errorf("find patients: %w", dataaccess.TranslateGormError(err))
	}
	return patients, domainRepo.NewMeta(p, total), nil
}

func (r *patientRepositoryGorm) FindByID(ctx context.Context, id int64) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).First(&patient, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("find patient %d: %w", id, dataaccess.TranslateGormError(err))
	}
	return &patient, nil
}

func (r *patientRepositoryGorm) Create(ctx context.Context, patient *entity.Patient) error {
	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return fmt.Errorf("create patient: %w", dataaccess.TranslateGormError(err))
	}
	return nil
}

func (r *patientRepositoryGorm) Update(ctx context.Context, id int64, values map[string]any) (*entity.Patient, error) {
	if err := dataaccess.CheckColumns("patients", columnNames(values)...); err != nil {
		return nil, err
	}
	res := r.db.WithContext(ctx).Model(&entity.Patient{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return nil, fmt.Errorf("update patient %d: %w", id, dataaccess.TranslateGormError(res.Error))
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("update patient %d: %w", id, dataaccess.ErrNotFound)
	}
	return r.FindByID(ctx, id)
}

func (r *patientRepositoryGorm) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&entity.Patient{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete patient %d: %w", id, dataaccess.TranslateGormError(res.Error))
	}
	return res.RowsAffected > 0, nil
}

func (r *patientRepositoryGorm) Search(ctx context.Context, query string, fields []string) ([]entity.Patient, error) {
	cond, err := searchCondition(r.db, "patients", query, fields)
	if err != nil {
		return nil, err
	}
	var patients []entity.Patient
	err = r.db.WithContext(ctx).Where(cond).Order("id").Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("search patients: %w", dataaccess.TranslateGormError(err))
	}
	return patients, nil
}
