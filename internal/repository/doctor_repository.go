package repository

import (
	"context"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/domain/entity"
	domainRepo "go-clinic-backend/internal/domain/repository"
)

type doctorRepository struct {
	adapterRepo
}

// NewDoctorRepository builds the doctor repository on top of the query
// adapter, so the same implementation serves both backends.
func NewDoctorRepository(adapter dataaccess.Adapter) domainRepo.DoctorRepository {
	return &doctorRepository{adapterRepo{adapter: adapter, table: "doctors"}}
}

func (r *doctorRepository) FindAll(ctx context.Context, filters map[string]any, p domainRepo.Pagination) ([]entity.Doctor, domainRepo.Meta, error) {
	rows, meta, err := r.findAll(ctx, filters, p, "id", false)
	if err != nil {
		return nil, domainRepo.Meta{}, err
	}
	return rowsToDoctors(rows), meta, nil
}

func (r *doctorRepository) FindByID(ctx context.Context, id int64) (*entity.Doctor, error) {
	row, err := r.findByID(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	doctor := rowToDoctor(row)
	return &doctor, nil
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	row, err := r.insert(ctx, dataaccess.Row{
		"first_name":     doctor.FirstName,
		"last_name":      doctor.LastName,
		"specialty":      doctor.Specialty,
		"email":          doctor.Email,
		"phone":          doctor.Phone,
		"license_number": doctor.LicenseNumber,
		"clinic_tag":     doctor.ClinicTag,
	})
	if err != nil {
		return err
	}
	*doctor = rowToDoctor(row)
	return nil
}

func (r *doctorRepository) Update(ctx context.Context, id int64, values map[string]any) (*entity.Doctor, error) {
	row, err := r.update(ctx, id, values)
	if err != nil {
		return nil, err
	}
	doctor := rowToDoctor(row)
	return &doctor, nil
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.delete(ctx, id)
}

func (r *doctorRepository) Search(ctx context.Context, query string, fields []string) ([]entity.Doctor, error) {
	rows, err := r.search(ctx, query, fields)
	if err != nil {
		return nil, err
	}
	return rowsToDoctors(rows), nil
}

func rowToDoctor(row dataaccess.Row) entity.Doctor {
	return entity.Doctor{
		ID:            row.Int64("id"),
		FirstName:     row.String("first_name"),
		LastName:      row.String("last_name"),
		Specialty:     row.String("specialty"),
		Email:         row.String("email"),
		Phone:         row.String("phone"),
		LicenseNumber: row.String("license_number"),
		ClinicTag:     row.String("clinic_tag"),
		CreatedAt:     row.Time("created_at"),
		UpdatedAt:     row.Time("updated_at"),
	}
}

func rowsToDoctors(rows []dataaccess.Row) []entity.Doctor {
	out := make([]entity.Doctor, len(rows))
	for i, row := range rows {
		out[i] = rowToDoctor(row)
	}
	return out
}
