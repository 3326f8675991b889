package repository

import (
	"context"

	"go-clinic-backend/internal/domain/entity"
)

// CreateReferralParams carries everything the atomic creation call needs.
// The clinic tag comes from configuration, never from the request.
type CreateReferralParams struct {
	PatientID         int64
	ReferringDoctorID int64
	ReceivingDoctorID int64
	Reason            string
	Observations      string
	ClinicTag         string
}

// ReferralRepository has a sibling implementation per backend. Creation and
// status transitions are single atomic server-side operations on both:
// stored functions on pgx, a guarded single-statement transaction on gorm.
// No delete is exposed; both implementations fail it loudly.
type ReferralRepository interface {
	Create(ctx context.Context, params CreateReferralParams) (*entity.Referral, error)
	// UpdateStatus fails with dataaccess.ErrNotFound for unknown ids and
	// entity.ErrReferralTransition for moves outside the transition graph.
	UpdateStatus(ctx context.Context, id int64, status entity.ReferralStatus, observations string) (*entity.Referral, error)
	// FindByID returns (nil, nil) when no referral matches.
	FindByID(ctx context.Context, id int64) (*entity.ReferralDetail, error)
	// ListByDoctor returns referrals where the doctor is on the given side,
	// names joined in, newest first.
	ListByDoctor(ctx context.Context, doctorID int64, role entity.ReferralDoctorRole) ([]entity.ReferralDetail, error)
	// ListByPatient follows the same join and ordering contract.
	ListByPatient(ctx context.Context, patientID int64) ([]entity.ReferralDetail, error)
	// Delete always fails with dataaccess.ErrUnsupportedOperation.
	Delete(ctx context.Context, id int64) (bool, error)
}
