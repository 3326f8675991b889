package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-clinic-backend/config"
	"go-clinic-backend/internal/delivery/dto"
	"go-clinic-backend/internal/domain/entity"
)

func newDocumentFixture() (DocumentUsecase, *fakeTemplateRepo, *fakeConsultationRepo) {
	templateRepo := &fakeTemplateRepo{templates: map[int64]*entity.DocumentTemplate{
		1: {
			ID:   1,
			Name: "discharge-summary",
			Body: "{{.ClinicName}}: patient {{.PatientName}} ({{.DocumentID}}), born {{.BirthDate}}. Diagnosis: {{.Diagnosis}}. Issued {{.Date}}.",
		},
	}}
	patientRepo := &fakePatientRepo{patients: map[int64]*entity.Patient{
		7: {
			ID:         7,
			FirstName:  "Ana",
			LastName:   "Souza",
			DocumentID: "DOC-7",
			BirthDate:  time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
		},
	}}
	consultationRepo := &fakeConsultationRepo{consultations: map[int64]*entity.Consultation{
		3: {ID: 3, PatientID: 7, DoctorID: 1, Diagnosis: "Migraine", Treatment: "Rest"},
	}}
	clinic := config.ClinicConfig{Tag: "central", Name: "Central Clinic"}
	uc := NewDocumentUsecase(testLogger(), clinic, templateRepo, patientRepo, consultationRepo)
	return uc, templateRepo, consultationRepo
}

func TestRenderDocument(t *testing.T) {
	uc, _, _ := newDocumentFixture()

	consultationID := int64(3)
	doc, err := uc.Render(context.Background(), 1, &dto.RenderDocumentRequest{
		PatientID:      7,
		ConsultationID: &consultationID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), doc.TemplateID)
	assert.Contains(t, doc.Content, "Central Clinic: patient Ana Souza (DOC-7), born 1990-04-12")
	assert.Contains(t, doc.Content, "Diagnosis: Migraine")
	assert.Contains(t, doc.Content, time.Now().Format("2006-01-02"))
}

func TestRenderDocumentWithoutConsultation(t *testing.T) {
	uc, _, _ := newDocumentFixture()

	doc, err := uc.Render(context.Background(), 1, &dto.RenderDocumentRequest{PatientID: 7})
	require.NoError(t, err)

	assert.Contains(t, doc.Content, "Diagnosis: .")
}

func TestRenderDocumentUnknownReferences(t *testing.T) {
	uc, _, _ := newDocumentFixture()

	_, err := uc.Render(context.Background(), 99, &dto.RenderDocumentRequest{PatientID: 7})
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = uc.Render(context.Background(), 1, &dto.RenderDocumentRequest{PatientID: 99})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	missing := int64(99)
	_, err = uc.Render(context.Background(), 1, &dto.RenderDocumentRequest{PatientID: 7, ConsultationID: &missing})
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestCreateTemplateRejectsBadBody(t *testing.T) {
	uc, _, _ := newDocumentFixture()

	_, err := uc.CreateTemplate(context.Background(), &dto.CreateTemplateRequest{
		Name: "broken",
		Body: "Hello {{.Unclosed",
	})
	assert.ErrorIs(t, err, ErrTemplateInvalid)
}

func TestUpdateTemplateRejectsBadBody(t *testing.T) {
	uc, _, _ := newDocumentFixture()

	_, err := uc.UpdateTemplate(context.Background(), 1, &dto.UpdateTemplateRequest{
		Body: "{{if}}",
	})
	assert.ErrorIs(t, err, ErrTemplateInvalid)
}

func TestDeleteTemplate(t *testing.T) {
	uc, repo, _ := newDocumentFixture()

	require.NoError(t, uc.DeleteTemplate(context.Background(), 1))
	assert.Empty(t, repo.templates)

	err := uc.DeleteTemplate(context.Background(), 1)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}
