package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"go-clinic-backend/config"
	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/delivery/dto"
	"go-clinic-backend/internal/domain/entity"
	"go-clinic-backend/internal/domain/repository"
	"go-clinic-backend/internal/service"
)

var (
	ErrPatientNotFound   = errors.New("patient not found")
	ErrDocumentIDExists  = errors.New("document ID already exists")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)

// patientSearchFields are the columns patient search matches against.
var patientSearchFields = []string{"first_name", "last_name", "document_id", "email"}

type PatientUsecase interface {
	GetPatients(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.Patient, repository.Meta, error)
	GetPatient(ctx context.Context, id int64) (*entity.Patient, error)
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*entity.Patient, error)
	UpdatePatient(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*entity.Patient, error)
	DeletePatient(ctx context.Context, id int64) error
	SearchPatients(ctx context.Context, query string) ([]entity.Patient, error)
}

type patientUsecase struct {
	log          *logrus.Logger
	clinic       config.ClinicConfig
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	log *logrus.Logger,
	clinic config.ClinicConfig,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:          log,
		clinic:       clinic,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) GetPatients(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.Patient, repository.Meta, error) {
	patients, meta, err := u.patientRepo.FindAll(ctx, filters, p)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, repository.Meta{}, err
	}
	return patients, meta, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id int64) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*entity.Patient, error) {
	tag, err := u.clinic.RequireTag()
	if err != nil {
		return nil, err
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	patient := &entity.Patient{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		DocumentID: req.DocumentID,
		Email:      req.Email,
		Phone:      req.Phone,
		BirthDate:  birthDate,
		Gender:     req.Gender,
		Address:    req.Address,
		ClinicTag:  tag,
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		if errors.Is(err, dataaccess.ErrConstraintViolation) {
			return nil, ErrDocumentIDExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.recordAudit(ctx, entity.AuditActionPatientCreate, patient.ID)

	return patient, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, id int64, req *dto.UpdatePatientRequest) (*entity.Patient, error) {
	values := map[string]any{}
	if req.FirstName != "" {
		values["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		values["last_name"] = req.LastName
	}
	if req.Email != "" {
		values["email"] = req.Email
	}
	if req.Phone != "" {
		values["phone"] = req.Phone
	}
	if req.Gender != "" {
		values["gender"] = req.Gender
	}
	if req.Address != "" {
		values["address"] = req.Address
	}
	if len(values) == 0 {
		return u.GetPatient(ctx, id)
	}

	patient, err := u.patientRepo.Update(ctx, id, values)
	if err != nil {
		if errors.Is(err, dataaccess.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to update patient %d: %+v", id, err)
		return nil, err
	}

	u.recordAudit(ctx, entity.AuditActionPatientUpdate, id)

	return patient, nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, id int64) error {
	removed, err := u.patientRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete patient %d: %+v", id, err)
		return err
	}
	if !removed {
		return ErrPatientNotFound
	}

	u.recordAudit(ctx, entity.AuditActionPatientDelete, id)

	return nil
}

func (u *patientUsecase) SearchPatients(ctx context.Context, query string) ([]entity.Patient, error) {
	patients, err := u.patientRepo.Search(ctx, query, patientSearchFields)
	if err != nil {
		u.log.Warnf("Failed to search patients: %+v", err)
		return nil, err
	}
	return patients, nil
}

func (u *patientUsecase) recordAudit(ctx context.Context, action string, patientID int64) {
	u.auditService.Record(ctx, actorID(ctx), action, map[string]interface{}{"patient_id": patientID})
}
