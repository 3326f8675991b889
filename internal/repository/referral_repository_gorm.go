package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/domain/entity"
	domainRepo "go-clinic-backend/internal/domain/repository"
)

type referralRepositoryGorm struct {
	db *gorm.DB
}

// NewReferralRepositoryGorm is the fluent-builder sibling of the referral
// repository. Without stored functions, atomicity comes from a single
// guarded UPDATE whose WHERE carries the legal source states, never from a
// client-side read-check-write sequence.
func NewReferralRepositoryGorm(db *gorm.DB) domainRepo.ReferralRepository {
	return &referralRepositoryGorm{db: db}
}

func (r *referralRepositoryGorm) Create(ctx context.Context, params domainRepo.CreateReferralParams) (*entity.Referral, error) {
	ref := &entity.Referral{
		PatientID:         params.PatientID,
		ReferringDoctorID: params.ReferringDoctorID,
		ReceivingDoctorID: params.ReceivingDoctorID,
		Reason:            params.Reason,
		Observations:      params.Observations,
		Status:            entity.ReferralStatusPending,
		ClinicTag:         params.ClinicTag,
	}
	if err := r.db.WithContext(ctx).Create(ref).Error; err != nil {
		return nil, fmt.Errorf("create referral: %w", dataaccess.TranslateGormError(err))
	}
	return ref, nil
}

func (r *referralRepositoryGorm) UpdateStatus(ctx context.Context, id int64, status entity.ReferralStatus, observations string) (*entity.Referral, error) {
	if !entity.ValidReferralStatus(status) {
		return nil, fmt.Errorf("referral status %q: %w", status, dataaccess.ErrMalformedQuery)
	}

	sources := entity.ReferralTransitionSources(status)
	if len(sources) == 0 {
		// No state may move to the target (e.g. back to pending).
		return nil, fmt.Errorf("referral %d to %s: %w", id, status, entity.ErrReferralTransition)
	}

	values := map[string]any{
		"status": status,
		// SET expressions see the pre-update row, so this stamps the
		// response time exactly when the referral leaves pending.
		"responded_at": gorm.Expr("CASE WHEN status = 'pending' THEN NOW() ELSE responded_at END"),
	}
	if observations != "" {
		values["observations"] = observations
	}

	var ref entity.Referral
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Referral{}).
			Where("id = ? AND status IN ?", id, sources).
			Updates(values)
		if res.Error != nil {
			return dataaccess.TranslateGormError(res.Error)
		}
		if res.RowsAffected == 0 {
			// Distinguish a missing referral from an illegal transition.
			var current entity.Referral
			if err := tx.First(&current, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return dataaccess.ErrNotFound
				}
				return dataaccess.TranslateGormError(err)
			}
			return fmt.Errorf("from %s: %w", current.Status, entity.ErrReferralTransition)
		}
		return tx.First(&ref, id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("transition referral %d to %s: %w", id, status, err)
	}
	return &ref, nil
}

// referralDetailRow receives the joined projection.
type referralDetailRow struct {
	entity.Referral
	PatientName         string
	ReferringDoctorName string
	ReceivingDoctorName string
}

const referralDetailProjection = `referrals.*,
	p.first_name || ' ' || p.last_name AS patient_name,
	rd.first_name || ' ' || rd.last_name AS referring_doctor_name,
	vd.first_name || ' ' || vd.last_name AS receiving_doctor_name`

func (r *referralRepositoryGorm) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("referrals").
		Select(referralDetailProjection).
		Joins("JOIN patients p ON p.id = referrals.patient_id").
		Joins("JOIN doctors rd ON rd.id = referrals.referring_doctor_id").
		Joins("JOIN doctors vd ON vd.id = referrals.receiving_doctor_id")
}

func (r *referralRepositoryGorm) FindByID(ctx context.Context, id int64) (*entity.ReferralDetail, error) {
	var rows []referralDetailRow
	err := r.detailQuery(ctx).Where("referrals.id = ?", id).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find referral %d: %w", id, dataaccess.TranslateGormError(err))
	}
	if len(rows) == 0 {
		return nil, nil
	}
	detail := toDetail(rows[0])
	return &detail, nil
}

func (r *referralRepositoryGorm) ListByDoctor(ctx context.Context, doctorID int64, role entity.ReferralDoctorRole) ([]entity.ReferralDetail, error) {
	column := "referrals.referring_doctor_id"
	if role == entity.ReferralRoleReceived {
		column = "referrals.receiving_doctor_id"
	}
	var rows []referralDetailRow
	err := r.detailQuery(ctx).
		Where(fmt.Sprintf("%s = ?", column), doctorID).
		Order("referrals.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list referrals for doctor %d: %w", doctorID, dataaccess.TranslateGormError(err))
	}
	return toDetails(rows), nil
}

func (r *referralRepositoryGorm) ListByPatient(ctx context.Context, patientID int64) ([]entity.ReferralDetail, error) {
	var rows []referralDetailRow
	err := r.detailQuery(ctx).
		Where("referrals.patient_id = ?", patientID).
		Order("referrals.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list referrals for patient %d: %w", patientID, dataaccess.TranslateGormError(err))
	}
	return toDetails(rows), nil
}

func (r *referralRepositoryGorm) Delete(ctx context.Context, id int64) (bool, error) {
	return false, fmt.Errorf("delete referral: %w", dataaccess.ErrUnsupportedOperation)
}

func toDetail(row referralDetailRow) entity.ReferralDetail {
	return entity.ReferralDetail{
		Referral:            row.Referral,
		PatientName:         row.PatientName,
		ReferringDoctorName: row.ReferringDoctorName,
		ReceivingDoctorName: row.ReceivingDoctorName,
	}
}

func toDetails(rows []referralDetailRow) []entity.ReferralDetail {
	out := make([]entity.ReferralDetail, len(rows))
	for i, row := range rows {
		out[i] = toDetail(row)
	}
	return out
}
