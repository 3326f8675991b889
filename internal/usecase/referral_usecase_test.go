package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-clinic-backend/config"
	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/delivery/dto"
	"go-clinic-backend/internal/domain/entity"
)

func newReferralFixture(clinic config.ClinicConfig) (ReferralUsecase, *fakeReferralRepo, *recordingAudit) {
	referralRepo := &fakeReferralRepo{details: map[int64]*entity.ReferralDetail{}}
	patientRepo := &fakePatientRepo{patients: map[int64]*entity.Patient{
		7: {ID: 7, FirstName: "Ana", LastName: "Souza", DocumentID: "DOC-7"},
	}}
	doctorRepo := &fakeDoctorRepo{doctors: map[int64]*entity.Doctor{
		1: {ID: 1, FirstName: "Carla", LastName: "Lima", Specialty: "cardiology"},
		2: {ID: 2, FirstName: "Bruno", LastName: "Melo", Specialty: "neurology"},
	}}
	audit := &recordingAudit{}
	uc := NewReferralUsecase(testLogger(), clinic, referralRepo, patientRepo, doctorRepo, audit)
	return uc, referralRepo, audit
}

func TestCreateReferral(t *testing.T) {
	clinic := config.ClinicConfig{Tag: "central", Name: "Central Clinic"}
	uc, repo, audit := newReferralFixture(clinic)

	referral, err := uc.CreateReferral(context.Background(), &dto.CreateReferralRequest{
		PatientID:         7,
		ReferringDoctorID: 1,
		ReceivingDoctorID: 2,
		Reason:            "Suspected arrhythmia",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReferralStatusPending, referral.Status)
	assert.Equal(t, "central", repo.lastCreate.ClinicTag)
	assert.Equal(t, int64(7), repo.lastCreate.PatientID)
	assert.Contains(t, audit.actions, entity.AuditActionReferralCreate)
}

func TestCreateReferralEmptyReason(t *testing.T) {
	uc, _, _ := newReferralFixture(config.ClinicConfig{Tag: "central"})

	_, err := uc.CreateReferral(context.Background(), &dto.CreateReferralRequest{
		PatientID:         7,
		ReferringDoctorID: 1,
		ReceivingDoctorID: 2,
		Reason:            "   ",
	})
	assert.ErrorIs(t, err, ErrEmptyReferralReason)
}

func TestCreateReferralSameDoctor(t *testing.T) {
	uc, _, _ := newReferralFixture(config.ClinicConfig{Tag: "central"})

	_, err := uc.CreateReferral(context.Background(), &dto.CreateReferralRequest{
		PatientID:         7,
		ReferringDoctorID: 1,
		ReceivingDoctorID: 1,
		Reason:            "Second opinion",
	})
	assert.ErrorIs(t, err, ErrSelfReferral)
}

func TestCreateReferralMissingClinicTag(t *testing.T) {
	uc, _, _ := newReferralFixture(config.ClinicConfig{})

	_, err := uc.CreateReferral(context.Background(), &dto.CreateReferralRequest{
		PatientID:         7,
		ReferringDoctorID: 1,
		ReceivingDoctorID: 2,
		Reason:            "Follow up",
	})
	assert.ErrorIs(t, err, config.ErrMissingClinicTag)
}

func TestCreateReferralUnknownParticipants(t *testing.T) {
	uc, _, _ := newReferralFixture(config.ClinicConfig{Tag: "central"})

	_, err := uc.CreateReferral(context.Background(), &dto.CreateReferralRequest{
		PatientID:         99,
		ReferringDoctorID: 1,
		ReceivingDoctorID: 2,
		Reason:            "Follow up",
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = uc.CreateReferral(context.Background(), &dto.CreateReferralRequest{
		PatientID:         7,
		ReferringDoctorID: 1,
		ReceivingDoctorID: 42,
		Reason:            "Follow up",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestTransitionReferral(t *testing.T) {
	uc, repo, audit := newReferralFixture(config.ClinicConfig{Tag: "central"})

	referral, err := uc.TransitionReferral(context.Background(), 1, &dto.UpdateReferralStatusRequest{
		Status:       "accepted",
		Observations: "Slot available Tuesday",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReferralStatusAccepted, referral.Status)
	assert.Equal(t, entity.ReferralStatusAccepted, repo.lastStatus)
	assert.Contains(t, audit.actions, entity.AuditActionReferralTransition)
}

func TestTransitionReferralInvalidStatus(t *testing.T) {
	uc, _, _ := newReferralFixture(config.ClinicConfig{Tag: "central"})

	_, err := uc.TransitionReferral(context.Background(), 1, &dto.UpdateReferralStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatusValue)
}

func TestTransitionReferralNotFound(t *testing.T) {
	uc, repo, _ := newReferralFixture(config.ClinicConfig{Tag: "central"})
	repo.updateErr = dataaccess.ErrNotFound

	_, err := uc.TransitionReferral(context.Background(), 99, &dto.UpdateReferralStatusRequest{Status: "accepted"})
	assert.ErrorIs(t, err, ErrReferralNotFound)
}

func TestTransitionReferralIllegalMove(t *testing.T) {
	uc, repo, audit := newReferralFixture(config.ClinicConfig{Tag: "central"})
	repo.updateErr = entity.ErrReferralTransition

	_, err := uc.TransitionReferral(context.Background(), 1, &dto.UpdateReferralStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, entity.ErrReferralTransition)
	assert.Empty(t, audit.actions)
}

func TestGetReferralNotFound(t *testing.T) {
	uc, _, _ := newReferralFixture(config.ClinicConfig{Tag: "central"})

	_, err := uc.GetReferral(context.Background(), 404)
	assert.ErrorIs(t, err, ErrReferralNotFound)
}
