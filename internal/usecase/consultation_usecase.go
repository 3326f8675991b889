package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/delivery/dto"
	"go-clinic-backend/internal/domain/entity"
	"go-clinic-backend/internal/domain/repository"
	"go-clinic-backend/internal/service"
)

var ErrConsultationNotFound = errors.New("consultation not found")

type ConsultationUsecase interface {
	GetConsultations(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.Consultation, repository.Meta, error)
	GetConsultation(ctx context.Context, id int64) (*entity.Consultation, error)
	CreateConsultation(ctx context.Context, req *dto.CreateConsultationRequest) (*entity.Consultation, error)
	UpdateConsultation(ctx context.Context, id int64, req *dto.UpdateConsultationRequest) (*entity.Consultation, error)
	GetPatientHistory(ctx context.Context, patientID int64, p repository.Pagination) ([]entity.Consultation, repository.Meta, error)
}

type consultationUsecase struct {
	log              *logrus.Logger
	consultationRepo repository.ConsultationRepository
	appointmentRepo  repository.AppointmentRepository
	patientRepo      repository.PatientRepository
	auditService     service.AuditService
}

func NewConsultationUsecase(
	log *logrus.Logger,
	consultationRepo repository.ConsultationRepository,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) ConsultationUsecase {
	return &consultationUsecase{
		log:              log,
		consultationRepo: consultationRepo,
		appointmentRepo:  appointmentRepo,
		patientRepo:      patientRepo,
		auditService:     auditService,
	}
}

func (u *consultationUsecase) GetConsultations(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.Consultation, repository.Meta, error) {
	consultations, meta, err := u.consultationRepo.FindAll(ctx, filters, p)
	if err != nil {
		u.log.Warnf("Failed to list consultations: %+v", err)
		return nil, repository.Meta{}, err
	}
	return consultations, meta, nil
}

func (u *consultationUsecase) GetConsultation(ctx context.Context, id int64) (*entity.Consultation, error) {
	consultation, err := u.consultationRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find consultation %d: %+v", id, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	return consultation, nil
}

func (u *consultationUsecase) CreateConsultation(ctx context.Context, req *dto.CreateConsultationRequest) (*entity.Consultation, error) {
	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.AppointmentID != nil {
		appointment, err := u.appointmentRepo.FindByID(ctx, *req.AppointmentID)
		if err != nil {
			u.log.Warnf("Failed to find appointment %d: %+v", *req.AppointmentID, err)
			return nil, err
		}
		if appointment == nil {
			return nil, ErrAppointmentNotFound
		}
	}

	consultation := &entity.Consultation{
		AppointmentID: req.AppointmentID,
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		Diagnosis:     req.Diagnosis,
		Treatment:     req.Treatment,
		Notes:         req.Notes,
	}

	if err := u.consultationRepo.Create(ctx, consultation); err != nil {
		u.log.Warnf("Failed to create consultation: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, actorID(ctx), entity.AuditActionConsultationCreate, map[string]interface{}{
		"consultation_id": consultation.ID,
		"patient_id":      consultation.PatientID,
	})

	return consultation, nil
}

func (u *consultationUsecase) UpdateConsultation(ctx context.Context, id int64, req *dto.UpdateConsultationRequest) (*entity.Consultation, error) {
	values := map[string]any{}
	if req.Diagnosis != "" {
		values["diagnosis"] = req.Diagnosis
	}
	if req.Treatment != "" {
		values["treatment"] = req.Treatment
	}
	if req.Notes != "" {
		values["notes"] = req.Notes
	}
	if len(values) == 0 {
		return u.GetConsultation(ctx, id)
	}

	consultation, err := u.consultationRepo.Update(ctx, id, values)
	if err != nil {
		if errors.Is(err, dataaccess.ErrNotFound) {
			return nil, ErrConsultationNotFound
		}
		u.log.Warnf("Failed to update consultation %d: %+v", id, err)
		return nil, err
	}
	return consultation, nil
}

func (u *consultationUsecase) GetPatientHistory(ctx context.Context, patientID int64, p repository.Pagination) ([]entity.Consultation, repository.Meta, error) {
	consultations, meta, err := u.consultationRepo.FindByPatient(ctx, patientID, p)
	if err != nil {
		u.log.Warnf("Failed to list consultations for patient %d: %+v", patientID, err)
		return nil, repository.Meta{}, err
	}
	return consultations, meta, nil
}
