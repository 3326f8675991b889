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

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrServiceInactive = errors.New("service is not active")
	ErrInvoiceNotFound = errors.New("invoice not found")
)

var serviceSearchFields = []string{"name", "description"}

type BillingUsecase interface {
	GetServices(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.Service, repository.Meta, error)
	GetService(ctx context.Context, id int64) (*entity.Service, error)
	CreateService(ctx context.Context, req *dto.CreateServiceRequest) (*entity.Service, error)
	UpdateService(ctx context.Context, id int64, req *dto.UpdateServiceRequest) (*entity.Service, error)
	DeleteService(ctx context.Context, id int64) error
	SearchServices(ctx context.Context, query string) ([]entity.Service, error)

	GetInvoices(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.Invoice, repository.Meta, error)
	GetInvoice(ctx context.Context, id int64) (*entity.Invoice, error)
	// CreateInvoice prices every line from the service catalog; the request
	// never carries amounts.
	CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*entity.Invoice, error)
	TransitionInvoice(ctx context.Context, id int64, req *dto.UpdateInvoiceStatusRequest) (*entity.Invoice, error)
	GetPatientInvoices(ctx context.Context, patientID int64, p repository.Pagination) ([]entity.Invoice, repository.Meta, error)
}

type billingUsecase struct {
	log          *logrus.Logger
	clinic       config.ClinicConfig
	serviceRepo  repository.ServiceRepository
	invoiceRepo  repository.InvoiceRepository
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewBillingUsecase(
	log *logrus.Logger,
	clinic config.ClinicConfig,
	serviceRepo repository.ServiceRepository,
	invoiceRepo repository.InvoiceRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) BillingUsecase {
	return &billingUsecase{
		log:          log,
		clinic:       clinic,
		serviceRepo:  serviceRepo,
		invoiceRepo:  invoiceRepo,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *billingUsecase) GetServices(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.Service, repository.Meta, error) {
	services, meta, err := u.serviceRepo.FindAll(ctx, filters, p)
	if err != nil {
		u.log.Warnf("Failed to list services: %+v", err)
		return nil, repository.Meta{}, err
	}
	return services, meta, nil
}

func (u *billingUsecase) GetService(ctx context.Context, id int64) (*entity.Service, error) {
	svc, err := u.serviceRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", id, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

func (u *billingUsecase) CreateService(ctx context.Context, req *dto.CreateServiceRequest) (*entity.Service, error) {
	tag, err := u.clinic.RequireTag()
	if err != nil {
		return nil, err
	}

	svc := &entity.Service{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		ClinicTag:   tag,
		IsActive:    true,
	}

	if err := u.serviceRepo.Create(ctx, svc); err != nil {
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}
	return svc, nil
}

func (u *billingUsecase) UpdateService(ctx context.Context, id int64, req *dto.UpdateServiceRequest) (*entity.Service, error) {
	values := map[string]any{}
	if req.Name != "" {
		values["name"] = req.Name
	}
	if req.Description != "" {
		values["description"] = req.Description
	}
	if req.PriceCents != nil {
		values["price_cents"] = *req.PriceCents
	}
	if req.IsActive != nil {
		values["is_active"] = *req.IsActive
	}
	if len(values) == 0 {
		return u.GetService(ctx, id)
	}

	svc, err := u.serviceRepo.Update(ctx, id, values)
	if err != nil {
		if errors.Is(err, dataaccess.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		u.log.Warnf("Failed to update service %d: %+v", id, err)
		return nil, err
	}
	return svc, nil
}

func (u *billingUsecase) DeleteService(ctx context.Context, id int64) error {
	removed, err := u.serviceRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete service %d: %+v", id, err)
		return err
	}
	if !removed {
		return ErrServiceNotFound
	}
	return nil
}

func (u *billingUsecase) SearchServices(ctx context.Context, query string) ([]entity.Service, error) {
	services, err := u.serviceRepo.Search(ctx, query, serviceSearchFields)
	if err != nil {
		u.log.Warnf("Failed to search services: %+v", err)
		return nil, err
	}
	return services, nil
}

func (u *billingUsecase) GetInvoices(ctx context.Context, filters map[string]any, p repository.Pagination) ([]entity.Invoice, repository.Meta, error) {
	invoices, meta, err := u.invoiceRepo.FindAll(ctx, filters, p)
	if err != nil {
		u.log.Warnf("Failed to list invoices: %+v", err)
		return nil, repository.Meta{}, err
	}
	return invoices, meta, nil
}

func (u *billingUsecase) GetInvoice(ctx context.Context, id int64) (*entity.Invoice, error) {
	invoice, err := u.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find invoice %d: %+v", id, err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

func (u *billingUsecase) CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*entity.Invoice, error) {
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

	var total int64
	items := make([]entity.InvoiceItem, 0, len(req.Items))
	for _, item := range req.Items {
		svc, err := u.serviceRepo.FindByID(ctx, item.ServiceID)
		if err != nil {
			u.log.Warnf("Failed to find service %d: %+v", item.ServiceID, err)
			return nil, err
		}
		if svc == nil {
			return nil, ErrServiceNotFound
		}
		if !svc.IsActive {
			return nil, ErrServiceInactive
		}
		total += svc.PriceCents * int64(item.Quantity)
		items = append(items, entity.InvoiceItem{
			ServiceID:      item.ServiceID,
			Quantity:       item.Quantity,
			UnitPriceCents: svc.PriceCents,
		})
	}

	invoice := &entity.Invoice{
		PatientID:  req.PatientID,
		Status:     entity.InvoiceStatusDraft,
		TotalCents: total,
		ClinicTag:  tag,
		Items:      items,
	}

	if err := u.invoiceRepo.Create(ctx, invoice); err != nil {
		u.log.Warnf("Failed to create invoice: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, actorID(ctx), entity.AuditActionInvoiceCreate, map[string]interface{}{
		"invoice_id":  invoice.ID,
		"patient_id":  invoice.PatientID,
		"total_cents": invoice.TotalCents,
	})

	return invoice, nil
}

func (u *billingUsecase) TransitionInvoice(ctx context.Context, id int64, req *dto.UpdateInvoiceStatusRequest) (*entity.Invoice, error) {
	status := entity.InvoiceStatus(req.Status)
	if !entity.ValidInvoiceStatus(status) {
		return nil, ErrInvalidStatusValue
	}

	// The lifecycle guard lives in the repository's single-statement
	// update; checking here first would reintroduce a lost-update window.
	invoice, err := u.invoiceRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, dataaccess.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		if !errors.Is(err, entity.ErrInvoiceTransition) {
			u.log.Warnf("Failed to transition invoice %d: %+v", id, err)
		}
		return nil, err
	}

	u.auditService.Record(ctx, actorID(ctx), entity.AuditActionInvoiceTransition, map[string]interface{}{
		"invoice_id": id,
		"status":     string(status),
	})

	return invoice, nil
}

func (u *billingUsecase) GetPatientInvoices(ctx context.Context, patientID int64, p repository.Pagination) ([]entity.Invoice, repository.Meta, error) {
	invoices, meta, err := u.invoiceRepo.FindByPatient(ctx, patientID, p)
	if err != nil {
		u.log.Warnf("Failed to list invoices for patient %d: %+v", patientID, err)
		return nil, repository.Meta{}, err
	}
	return invoices, meta, nil
}
