package repository

import (
	"context"

	"go-clinic-backend/internal/domain/entity"
)

type InvoiceRepository interface {
	FindAll(ctx context.Context, filters map[string]any, p Pagination) ([]entity.Invoice, Meta, error)
	// FindByID returns the invoice with its items loaded, (nil, nil) if absent.
	FindByID(ctx context.Context, id int64) (*entity.Invoice, error)
	// Create inserts the invoice and its items; the total is computed by the
	// caller from the service catalog before the call.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// UpdateStatus is an atomic guarded transition along the lifecycle
	// graph. Fails with dataaccess.ErrNotFound for unknown ids and
	// entity.ErrInvoiceTransition for moves outside the graph.
	UpdateStatus(ctx context.Context, id int64, status entity.InvoiceStatus) (*entity.Invoice, error)
	FindByPatient(ctx context.Context, patientID int64, p Pagination) ([]entity.Invoice, Meta, error)
}
