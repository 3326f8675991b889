package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-clinic-backend/internal/delivery/dto"
	"go-clinic-backend/internal/domain/entity"
)

func newAppointmentFixture() (AppointmentUsecase, *fakeAppointmentRepo, *recordingAudit) {
	appointmentRepo := &fakeAppointmentRepo{appointments: map[int64]*entity.Appointment{}}
	patientRepo := &fakePatientRepo{patients: map[int64]*entity.Patient{
		7: {ID: 7, FirstName: "Ana", LastName: "Souza"},
	}}
	doctorRepo := &fakeDoctorRepo{doctors: map[int64]*entity.Doctor{
		1: {ID: 1, FirstName: "Carla", LastName: "Lima"},
	}}
	audit := &recordingAudit{}
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, patientRepo, doctorRepo, audit)
	return uc, appointmentRepo, audit
}

func TestCreateAppointment(t *testing.T) {
	uc, _, audit := newAppointmentFixture()

	appointment, err := uc.CreateAppointment(context.Background(), &dto.CreateAppointmentRequest{
		PatientID:   7,
		DoctorID:    1,
		ScheduledAt: time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		Reason:      "Annual checkup",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.AppointmentStatusScheduled, appointment.Status)
	assert.Contains(t, audit.actions, entity.AuditActionAppointmentCreate)
}

func TestCreateAppointmentBadSchedule(t *testing.T) {
	uc, _, _ := newAppointmentFixture()

	_, err := uc.CreateAppointment(context.Background(), &dto.CreateAppointmentRequest{
		PatientID:   7,
		DoctorID:    1,
		ScheduledAt: "tomorrow at noon",
	})
	assert.ErrorIs(t, err, ErrInvalidScheduleTime)

	_, err = uc.CreateAppointment(context.Background(), &dto.CreateAppointmentRequest{
		PatientID:   7,
		DoctorID:    1,
		ScheduledAt: time.Now().Add(-time.Hour).Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrScheduleInPast)
}

func TestCreateAppointmentUnknownParticipants(t *testing.T) {
	uc, _, _ := newAppointmentFixture()
	scheduledAt := time.Now().Add(time.Hour).Format(time.RFC3339)

	_, err := uc.CreateAppointment(context.Background(), &dto.CreateAppointmentRequest{
		PatientID:   99,
		DoctorID:    1,
		ScheduledAt: scheduledAt,
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = uc.CreateAppointment(context.Background(), &dto.CreateAppointmentRequest{
		PatientID:   7,
		DoctorID:    99,
		ScheduledAt: scheduledAt,
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestUpdateAppointmentRejectsUnknownStatus(t *testing.T) {
	uc, repo, _ := newAppointmentFixture()
	repo.appointments[1] = &entity.Appointment{ID: 1, Status: entity.AppointmentStatusScheduled}

	_, err := uc.UpdateAppointment(context.Background(), 1, &dto.UpdateAppointmentRequest{Status: "postponed"})
	assert.ErrorIs(t, err, ErrInvalidStatusValue)
}

func TestCancelAppointment(t *testing.T) {
	uc, repo, audit := newAppointmentFixture()
	repo.appointments[1] = &entity.Appointment{ID: 1, Status: entity.AppointmentStatusScheduled}

	appointment, err := uc.CancelAppointment(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCancelled, appointment.Status)
	assert.Contains(t, audit.actions, entity.AuditActionAppointmentCancel)

	// Cancelling twice is rejected, not a silent no-op.
	_, err = uc.CancelAppointment(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAppointmentCancelled)
}

func TestCancelAppointmentNotFound(t *testing.T) {
	uc, _, _ := newAppointmentFixture()

	_, err := uc.CancelAppointment(context.Background(), 404)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
