package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"go-clinic-backend/config"
	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/delivery/dto"
	"go-clinic-backend/internal/domain/entity"
	"go-clinic-backend/internal/domain/repository"
	"go-clinic-backend/internal/service"
)

var (
	ErrReferralNotFound    = errors.New("referral not found")
	ErrEmptyReferralReason = errors.New("referral reason must not be empty")
	ErrSelfReferral        = errors.New("referring and receiving doctor must differ")
)

type ReferralUsecase interface {
	CreateReferral(ctx context.Context, req *dto.CreateReferralRequest) (*entity.Referral, error)
	// TransitionReferral moves a referral along the status graph; illegal
	// moves fail with entity.ErrReferralTransition.
	TransitionReferral(ctx context.Context, id int64, req *dto.UpdateReferralStatusRequest) (*entity.Referral, error)
	GetReferral(ctx context.Context, id int64) (*entity.ReferralDetail, error)
	GetDoctorReferrals(ctx context.Context, doctorID int64, role entity.ReferralDoctorRole) ([]entity.ReferralDetail, error)
	GetPatientReferrals(ctx context.Context, patientID int64) ([]entity.ReferralDetail, error)
}

type referralUsecase struct {
	log          *logrus.Logger
	clinic       config.ClinicConfig
	referralRepo repository.ReferralRepository
	patientRepo  repository.PatientRepository
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewReferralUsecase(
	log *logrus.Logger,
	clinic config.ClinicConfig,
	referralRepo repository.ReferralRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) ReferralUsecase {
	return &referralUsecase{
		log:          log,
		clinic:       clinic,
		referralRepo: referralRepo,
		patientRepo:  patientRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

func (u *referralUsecase) CreateReferral(ctx context.Context, req *dto.CreateReferralRequest) (*entity.Referral, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrEmptyReferralReason
	}
	if req.ReferringDoctorID == req.ReceivingDoctorID {
		return nil, ErrSelfReferral
	}

	// The clinic tag is stamped from configuration; a request can never
	// supply it. Missing configuration fails the operation up front.
	tag, err := u.clinic.RequireTag()
	if err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	for _, doctorID := range []int64{req.ReferringDoctorID, req.ReceivingDoctorID} {
		doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
	}

	referral, err := u.referralRepo.Create(ctx, repository.CreateReferralParams{
		PatientID:         req.PatientID,
		ReferringDoctorID: req.ReferringDoctorID,
		ReceivingDoctorID: req.ReceivingDoctorID,
		Reason:            req.Reason,
		Observations:      req.Observations,
		ClinicTag:         tag,
	})
	if err != nil {
		u.log.Warnf("Failed to create referral: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, actorID(ctx), entity.AuditActionReferralCreate, map[string]interface{}{
		"referral_id": referral.ID,
		"patient_id":  referral.PatientID,
	})

	return referral, nil
}

func (u *referralUsecase) TransitionReferral(ctx context.Context, id int64, req *dto.UpdateReferralStatusRequest) (*entity.Referral, error) {
	status := entity.ReferralStatus(req.Status)
	if !entity.ValidReferralStatus(status) {
		return nil, ErrInvalidStatusValue
	}

	referral, err := u.referralRepo.UpdateStatus(ctx, id, status, req.Observations)
	if err != nil {
		if errors.Is(err, dataaccess.ErrNotFound) {
			return nil, ErrReferralNotFound
		}
		if !errors.Is(err, entity.ErrReferralTransition) {
			u.log.Warnf("Failed to transition referral %d: %+v", id, err)
		}
		return nil, err
	}

	u.auditService.Record(ctx, actorID(ctx), entity.AuditActionReferralTransition, map[string]interface{}{
		"referral_id": id,
		"status":      string(status),
	})

	return referral, nil
}

func (u *referralUsecase) GetReferral(ctx context.Context, id int64) (*entity.ReferralDetail, error) {
	detail, err := u.referralRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find referral %d: %+v", id, err)
		return nil, err
	}
	if detail == nil {
		return nil, ErrReferralNotFound
	}
	return detail, nil
}

func (u *referralUsecase) GetDoctorReferrals(ctx context.Context, doctorID int64, role entity.ReferralDoctorRole) ([]entity.ReferralDetail, error) {
	details, err := u.referralRepo.ListByDoctor(ctx, doctorID, role)
	if err != nil {
		u.log.Warnf("Failed to list referrals for doctor %d: %+v", doctorID, err)
		return nil, err
	}
	return details, nil
}

func (u *referralUsecase) GetPatientReferrals(ctx context.Context, patientID int64) ([]entity.ReferralDetail, error) {
	details, err := u.referralRepo.ListByPatient(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list referrals for patient %d: %+v", patientID, err)
		return nil, err
	}
	return details, nil
}
