package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"go-clinic-backend/config"
	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/delivery/dto"
	"go-clinic-backend/internal/domain/entity"
	"go-clinic-backend/internal/domain/repository"
	"go-clinic-backend/internal/service"
)

var ErrDoctorNotFound = errors.New("doctor not found")

var doctorSearchFields = []string{"first_name", "last_name", "specialty"}

type DoctorUsecase interface {
	GetDoctors(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.Doctor, repository.Meta, error)
	GetDoctor(ctx context.Context, id int64) (*entity.Doctor, error)
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*entity.Doctor, error)
	UpdateDoctor(ctx context.Context, id int64, req *dto.UpdateDoctorRequest) (*entity.Doctor, error)
	DeleteDoctor(ctx context.Context, id int64) error
	SearchDoctors(ctx context.Context, query string) ([]entity.Doctor, error)
}

type doctorUsecase struct {
	log          *logrus.Logger
	clinic       config.ClinicConfig
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	log *logrus.Logger,
	clinic config.ClinicConfig,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		log:          log,
		clinic:       clinic,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

func (u *doctorUsecase) GetDoctors(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.Doctor, repository.Meta, error) {
	doctors, meta, err := u.doctorRepo.FindAll(ctx, filters, p)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, repository.Meta{}, err
	}
	return doctors, meta, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id int64) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*entity.Doctor, error) {
	tag, err := u.clinic.RequireTag()
	if err != nil {
		return nil, err
	}

	doctor := &entity.Doctor{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Specialty:     req.Specialty,
		Email:         req.Email,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
		ClinicTag:     tag,
	}

	if err := u.doctorRepo.Create(ctx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, actorID(ctx), entity.AuditActionDoctorCreate, map[string]interface{}{"doctor_id": doctor.ID})

	return doctor, nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, id int64, req *dto.UpdateDoctorRequest) (*entity.Doctor, error) {
	values := map[string]any{}
	if req.FirstName != "" {
		values["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		values["last_name"] = req.LastName
	}
	if req.Specialty != "" {
		values["specialty"] = req.Specialty
	}
	if req.Email != "" {
		values["email"] = req.Email
	}
	if req.Phone != "" {
		values["phone"] = req.Phone
	}
	if req.LicenseNumber != "" {
		values["license_number"] = req.LicenseNumber
	}
	if len(values) == 0 {
		return u.GetDoctor(ctx, id)
	}

	doctor, err := u.doctorRepo.Update(ctx, id, values)
	if err != nil {
		if errors.Is(err, dataaccess.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to update doctor %d: %+v", id, err)
		return nil, err
	}

	u.auditService.Record(ctx, actorID(ctx), entity.AuditActionDoctorUpdate, map[string]interface{}{"doctor_id": id})

	return doctor, nil
}

func (u *doctorUsecase) DeleteDoctor(ctx context.Context, id int64) error {
	removed, err := u.doctorRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete doctor %d: %+v", id, err)
		return err
	}
	if !removed {
		return ErrDoctorNotFound
	}

	u.auditService.Record(ctx, actorID(ctx), entity.AuditActionDoctorDelete, map[string]interface{}{"doctor_id": id})

	return nil
}

func (u *doctorUsecase) SearchDoctors(ctx context.Context, query string) ([]entity.Doctor, error) {
	doctors, err := u.doctorRepo.Search(ctx, query, doctorSearchFields)
	if err != nil {
		u.log.Warnf("Failed to search doctors: %+v", err)
		return nil, err
	}
	return doctors, nil
}
