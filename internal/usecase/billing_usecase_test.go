package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-clinic-backend/config"
	"go-clinic-backend/internal/delivery/dto"
	"go-clinic-backend/internal/domain/entity"
)

func newBillingFixture(clinic config.ClinicConfig) (BillingUsecase, *fakeInvoiceRepo, *recordingAudit) {
	serviceRepo := &fakeServiceRepo{services: map[int64]*entity.Service{
		1: {ID: 1, Name: "Consultation", PriceCents: 15000, IsActive: true},
		2: {ID: 2, Name: "Blood panel", PriceCents: 4500, IsActive: true},
		3: {ID: 3, Name: "Legacy X-ray", PriceCents: 9000, IsActive: false},
	}}
	invoiceRepo := &fakeInvoiceRepo{invoices: map[int64]*entity.Invoice{}}
	patientRepo := &fakePatientRepo{patients: map[int64]*entity.Patient{
		7: {ID: 7, FirstName: "Ana", LastName: "Souza"},
	}}
	audit := &recordingAudit{}
	uc := NewBillingUsecase(testLogger(), clinic, serviceRepo, invoiceRepo, patientRepo, audit)
	return uc, invoiceRepo, audit
}

func TestCreateInvoicePricesFromCatalog(t *testing.T) {
	uc, _, audit := newBillingFixture(config.ClinicConfig{Tag: "central"})

	invoice, err := uc.CreateInvoice(context.Background(), &dto.CreateInvoiceRequest{
		PatientID: 7,
		Items: []dto.InvoiceItemRequest{
			{ServiceID: 1, Quantity: 2},
			{ServiceID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, int64(34500), invoice.TotalCents)
	assert.Equal(t, "central", invoice.ClinicTag)
	require.Len(t, invoice.Items, 2)
	assert.Equal(t, int64(15000), invoice.Items[0].UnitPriceCents)
	assert.Equal(t, int64(4500), invoice.Items[1].UnitPriceCents)
	assert.Contains(t, audit.actions, entity.AuditActionInvoiceCreate)
}

func TestCreateInvoiceRejectsInactiveService(t *testing.T) {
	uc, _, _ := newBillingFixture(config.ClinicConfig{Tag: "central"})

	_, err := uc.CreateInvoice(context.Background(), &dto.CreateInvoiceRequest{
		PatientID: 7,
		Items:     []dto.InvoiceItemRequest{{ServiceID: 3, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestCreateInvoiceUnknownService(t *testing.T) {
	uc, _, _ := newBillingFixture(config.ClinicConfig{Tag: "central"})

	_, err := uc.CreateInvoice(context.Background(), &dto.CreateInvoiceRequest{
		PatientID: 7,
		Items:     []dto.InvoiceItemRequest{{ServiceID: 99, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateInvoiceMissingClinicTag(t *testing.T) {
	uc, _, _ := newBillingFixture(config.ClinicConfig{})

	_, err := uc.CreateInvoice(context.Background(), &dto.CreateInvoiceRequest{
		PatientID: 7,
		Items:     []dto.InvoiceItemRequest{{ServiceID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, config.ErrMissingClinicTag)
}

func TestTransitionInvoice(t *testing.T) {
	uc, repo, audit := newBillingFixture(config.ClinicConfig{Tag: "central"})
	repo.invoices[1] = &entity.Invoice{ID: 1, PatientID: 7, Status: entity.InvoiceStatusDraft}

	invoice, err := uc.TransitionInvoice(context.Background(), 1, &dto.UpdateInvoiceStatusRequest{Status: "issued"})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusIssued, invoice.Status)
	assert.Contains(t, audit.actions, entity.AuditActionInvoiceTransition)

	invoice, err = uc.TransitionInvoice(context.Background(), 1, &dto.UpdateInvoiceStatusRequest{Status: "paid"})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, invoice.Status)
}

func TestTransitionInvoiceIllegalMove(t *testing.T) {
	uc, repo, audit := newBillingFixture(config.ClinicConfig{Tag: "central"})
	repo.invoices[1] = &entity.Invoice{ID: 1, Status: entity.InvoiceStatusDraft}

	_, err := uc.TransitionInvoice(context.Background(), 1, &dto.UpdateInvoiceStatusRequest{Status: "paid"})
	assert.ErrorIs(t, err, entity.ErrInvoiceTransition)

	// A transition decided against a stale view must lose at the guard:
	// once the invoice is paid, cancellation is refused by the update
	// itself, so a paid invoice can never end up cancelled.
	repo.invoices[1].Status = entity.InvoiceStatusPaid
	_, err = uc.TransitionInvoice(context.Background(), 1, &dto.UpdateInvoiceStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, entity.ErrInvoiceTransition)
	assert.Equal(t, entity.InvoiceStatusPaid, repo.invoices[1].Status)
	assert.Empty(t, audit.actions)
}

func TestTransitionInvoiceInvalidStatus(t *testing.T) {
	uc, _, _ := newBillingFixture(config.ClinicConfig{Tag: "central"})

	_, err := uc.TransitionInvoice(context.Background(), 1, &dto.UpdateInvoiceStatusRequest{Status: "refunded"})
	assert.ErrorIs(t, err, ErrInvalidStatusValue)
}

func TestTransitionInvoiceNotFound(t *testing.T) {
	uc, _, _ := newBillingFixture(config.ClinicConfig{Tag: "central"})

	_, err := uc.TransitionInvoice(context.Background(), 99, &dto.UpdateInvoiceStatusRequest{Status: "issued"})
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}
