package usecase

import (
	"bytes"
	"context"
	"errors"
	"text/template"
	"time"

	"github.com/sirupsen/logrus"

	"go-clinic-backend/config"
	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/delivery/dto"
	"go-clinic-backend/internal/domain/entity"
	"go-clinic-backend/internal/domain/repository"
)

var (
	ErrTemplateNotFound = errors.New("document template not found")
	ErrTemplateInvalid  = errors.New("document template body is invalid")
)

// documentData is what a template body can reference.
type documentData struct {
	ClinicName  string
	PatientName string
	DocumentID  string
	BirthDate   string
	Diagnosis   string
	Treatment   string
	Notes       string
	Date        string
}

type DocumentUsecase interface {
	GetTemplates(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.DocumentTemplate, repository.Meta, error)
	GetTemplate(ctx context.Context, id int64) (*entity.DocumentTemplate, error)
	CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest) (*entity.DocumentTemplate, error)
	UpdateTemplate(ctx context.Context, id int64, req *dto.UpdateTemplateRequest) (*entity.DocumentTemplate, error)
	DeleteTemplate(ctx context.Context, id int64) error
	// Render fills a template with patient and, optionally, consultation
	// data, producing a dated medical document.
	Render(ctx context.Context, templateID int64, req *dto.RenderDocumentRequest) (*dto.RenderedDocumentResponse, error)
}

type documentUsecase struct {
	log              *logrus.Logger
	clinic           config.ClinicConfig
	templateRepo     repository.DocumentTemplateRepository
	patientRepo      repository.PatientRepository
	consultationRepo repository.ConsultationRepository
}

func NewDocumentUsecase(
	log *logrus.Logger,
	clinic config.ClinicConfig,
	templateRepo repository.DocumentTemplateRepository,
	patientRepo repository.PatientRepository,
	consultationRepo repository.ConsultationRepository,
) DocumentUsecase {
	return &documentUsecase{
		log:              log,
		clinic:           clinic,
		templateRepo:     templateRepo,
		patientRepo:      patientRepo,
		consultationRepo: consultationRepo,
	}
}

func (u *documentUsecase) GetTemplates(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.DocumentTemplate, repository.Meta, error) {
	templates, meta, err := u.templateRepo.FindAll(ctx, filters, p)
	if err != nil {
		u.log.Warnf("Failed to list templates: %+v", err)
		return nil, repository.Meta{}, err
	}
	return templates, meta, nil
}

func (u *documentUsecase) GetTemplate(ctx context.Context, id int64) (*entity.DocumentTemplate, error) {
	tpl, err := u.templateRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find template %d: %+v", id, err)
		return nil, err
	}
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}
	return tpl, nil
}

func (u *documentUsecase) CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest) (*entity.DocumentTemplate, error) {
	if _, err := template.New(req.Name).Parse(req.Body); err != nil {
		return nil, ErrTemplateInvalid
	}

	tpl := &entity.DocumentTemplate{
		Name:        req.Name,
		Description: req.Description,
		Body:        req.Body,
	}
	if err := u.templateRepo.Create(ctx, tpl); err != nil {
		u.log.Warnf("Failed to create template: %+v", err)
		return nil, err
	}
	return tpl, nil
}

func (u *documentUsecase) UpdateTemplate(ctx context.Context, id int64, req *dto.UpdateTemplateRequest) (*entity.DocumentTemplate, error) {
	values := map[string]any{}
	if req.Name != "" {
		values["name"] = req.Name
	}
	if req.Description != "" {
		values["description"] = req.Description
	}
	if req.Body != "" {
		if _, err := template.New("body").Parse(req.Body); err != nil {
			return nil, ErrTemplateInvalid
		}
		values["body"] = req.Body
	}
	if len(values) == 0 {
		return u.GetTemplate(ctx, id)
	}

	tpl, err := u.templateRepo.Update(ctx, id, values)
	if err != nil {
		if errors.Is(err, dataaccess.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		u.log.Warnf("Failed to update template %d: %+v", id, err)
		return nil, err
	}
	return tpl, nil
}

func (u *documentUsecase) DeleteTemplate(ctx context.Context, id int64) error {
	removed, err := u.templateRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete template %d: %+v", id, err)
		return err
	}
	if !removed {
		return ErrTemplateNotFound
	}
	return nil
}

func (u *documentUsecase) Render(ctx context.Context, templateID int64, req *dto.RenderDocumentRequest) (*dto.RenderedDocumentResponse, error) {
	tpl, err := u.GetTemplate(ctx, templateID)
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

	now := time.Now()
	data := documentData{
		ClinicName:  u.clinic.Name,
		PatientName: patient.FullName(),
		DocumentID:  patient.DocumentID,
		BirthDate:   patient.BirthDate.Format("2006-01-02"),
		Date:        now.Format("2006-01-02"),
	}

	if req.ConsultationID != nil {
		consultation, err := u.consultationRepo.FindByID(ctx, *req.ConsultationID)
		if err != nil {
			u.log.Warnf("Failed to find consultation %d: %+v", *req.ConsultationID, err)
			return nil, err
		}
		if consultation == nil {
			return nil, ErrConsultationNotFound
		}
		data.Diagnosis = consultation.Diagnosis
		data.Treatment = consultation.Treatment
		data.Notes = consultation.Notes
	}

	parsed, err := template.New(tpl.Name).Option("missingkey=zero").Parse(tpl.Body)
	if err != nil {
		return nil, ErrTemplateInvalid
	}

	var buf bytes.Buffer
	if err := parsed.Execute(&buf, data); err != nil {
		u.log.Warnf("Failed to render template %d: %+v", templateID, err)
		return nil, ErrTemplateInvalid
	}

	return &dto.RenderedDocumentResponse{
		TemplateID:   tpl.ID,
		TemplateName: tpl.Name,
		Content:      buf.String(),
		GeneratedAt:  now,
	}, nil
}
