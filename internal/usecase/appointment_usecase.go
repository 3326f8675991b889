package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/delivery/dto"
	"go-clinic-backend/internal/domain/entity"
	"go-clinic-backend/internal/domain/repository"
	"go-clinic-backend/internal/service"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrInvalidScheduleTime  = errors.New("invalid scheduled_at, use RFC 3339")
	ErrScheduleInPast       = errors.New("appointment cannot be scheduled in the past")
	ErrInvalidStatusValue   = errors.New("invalid status value")
	ErrAppointmentCancelled = errors.New("appointment is cancelled")
)

type AppointmentUsecase interface {
	GetAppointments(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.Appointment, repository.Meta, error)
	GetAppointment(ctx context.Context, id int64) (*entity.Appointment, error)
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*entity.Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, req *dto.UpdateAppointmentRequest) (*entity.Appointment, error)
	CancelAppointment(ctx context.Context, id int64) (*entity.Appointment, error)
	GetDoctorAppointments(ctx context.Context, doctorID int64, p repository.Pagination) ([]entity.Appointment, repository.Meta, error)
	GetPatientAppointments(ctx context.Context, patientID int64, p repository.Pagination) ([]entity.Appointment, repository.Meta, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) GetAppointments(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.Appointment, repository.Meta, error) {
	appointments, meta, err := u.appointmentRepo.FindAll(ctx, filters, p)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, repository.Meta{}, err
	}
	return appointments, meta, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id int64) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*entity.Appointment, error) {
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, ErrInvalidScheduleTime
	}
	if scheduledAt.Before(time.Now()) {
		return nil, ErrScheduleInPast
	}

	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorRepo.FindByID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointment := &entity.Appointment{
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		ScheduledAt: scheduledAt,
		Status:      entity.AppointmentStatusScheduled,
		Reason:      req.Reason,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, actorID(ctx), entity.AuditActionAppointmentCreate, map[string]interface{}{
		"appointment_id": appointment.ID,
		"patient_id":     appointment.PatientID,
		"doctor_id":      appointment.DoctorID,
	})

	return appointment, nil
}

func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id int64, req *dto.UpdateAppointmentRequest) (*entity.Appointment, error) {
	values := map[string]any{}
	if req.ScheduledAt != "" {
		scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			return nil, ErrInvalidScheduleTime
		}
		values["scheduled_at"] = scheduledAt
	}
	if req.Status != "" {
		if !entity.ValidAppointmentStatus(entity.AppointmentStatus(req.Status)) {
			return nil, ErrInvalidStatusValue
		}
		values["status"] = req.Status
	}
	if req.Reason != "" {
		values["reason"] = req.Reason
	}
	if req.Notes != "" {
		values["notes"] = req.Notes
	}
	if len(values) == 0 {
		return u.GetAppointment(ctx, id)
	}

	appointment, err := u.appointmentRepo.Update(ctx, id, values)
	if err != nil {
		if errors.Is(err, dataaccess.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		u.log.Warnf("Failed to update appointment %d: %+v", id, err)
		return nil, err
	}

	u.auditService.Record(ctx, actorID(ctx), entity.AuditActionAppointmentUpdate, map[string]interface{}{"appointment_id": id})

	return appointment, nil
}

func (u *appointmentUsecase) CancelAppointment(ctx context.Context, id int64) (*entity.Appointment, error) {
	current, err := u.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsCancelled() {
		return nil, ErrAppointmentCancelled
	}

	appointment, err := u.appointmentRepo.Update(ctx, id, map[string]any{
		"status": string(entity.AppointmentStatusCancelled),
	})
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %d: %+v", id, err)
		return nil, err
	}

	u.auditService.Record(ctx, actorID(ctx), entity.AuditActionAppointmentCancel, map[string]interface{}{"appointment_id": id})

	return appointment, nil
}

func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, doctorID int64, p repository.Pagination) ([]entity.Appointment, repository.Meta, error) {
	appointments, meta, err := u.appointmentRepo.FindByDoctor(ctx, doctorID, p)
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %d: %+v", doctorID, err)
		return nil, repository.Meta{}, err
	}
	return appointments, meta, nil
}

func (u *appointmentUsecase) GetPatientAppointments(ctx context.Context, patientID int64, p repository.Pagination) ([]entity.Appointment, repository.Meta, error) {
	appointments, meta, err := u.appointmentRepo.FindByPatient(ctx, patientID, p)
	if err != nil {
		u.log.Warnf("Failed to list appointments for patient %d: %+v", patientID, err)
		return nil, repository.Meta{}, err
	}
	return appointments, meta, nil
}
