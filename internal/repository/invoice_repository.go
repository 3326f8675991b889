package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/domain/entity"
	domainRepo "go-clinic-backend/internal/domain/repository"
)

type invoiceRepository struct {
	adapterRepo
}

func NewInvoiceRepository(adapter dataaccess.Adapter) domainRepo.InvoiceRepository {
	return &invoiceRepository{adapterRepo{adapter: adapter, table: "invoices"}}
}

func (r *invoiceRepository) FindAll(ctx context.Context, filters map[string]any, p domainRepo.Pagination) ([]entity.Invoice, domainRepo.Meta, error) {
	rows, meta, err := r.findAll(ctx, filters, p, "created_at", true)
	if err != nil {
		return nil, domainRepo.Meta{}, err
	}
	return rowsToInvoices(rows), meta, nil
}

func (r *invoiceRepository) FindByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	row, err := r.findByID(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	invoice := rowToInvoice(row)
	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice.Items = items
	return &invoice, nil
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	row, err := r.insert(ctx, dataaccess.Row{
		"patient_id":  invoice.PatientID,
		"status":      string(invoice.Status),
		"total_cents": invoice.TotalCents,
		"clinic_tag":  invoice.ClinicTag,
	})
	if err != nil {
		return err
	}
	items := invoice.Items
	*invoice = rowToInvoice(row)
	for _, item := range items {
		itemRow, err := r.adapter.Insert(ctx, "invoice_items", dataaccess.Row{
			"invoice_id":       invoice.ID,
			"service_id":       item.ServiceID,
			"quantity":         item.Quantity,
			"unit_price_cents": item.UnitPriceCents,
		})
		if err != nil {
			// A half-written invoice must not survive. Undo the invoice row;
			// items cascade with it.
			if _, delErr := r.adapter.Delete(ctx, r.table, invoice.ID, "id"); delErr != nil {
				return fmt.Errorf("create invoice item: %w (undo failed: %v)", err, delErr)
			}
			return fmt.Errorf("create invoice item: %w", err)
		}
		invoice.Items = append(invoice.Items, rowToInvoiceItem(itemRow))
	}
	return nil
}

// UpdateStatus moves an invoice along the lifecycle graph with a single
// guarded statement: the legal source statuses travel in the WHERE clause,
// so a concurrent transition cannot overwrite a row that already left them.
func (r *invoiceRepository) UpdateStatus(ctx context.Context, id int64, status entity.InvoiceStatus) (*entity.Invoice, error) {
	if !entity.ValidInvoiceStatus(status) {
		return nil, fmt.Errorf("invoice status %q: %w", status, dataaccess.ErrMalformedQuery)
	}
	sources := entity.InvoiceTransitionSources(status)
	if len(sources) == 0 {
		return nil, r.transitionFailure(ctx, id)
	}
	sourceNames := make([]string, len(sources))
	for i, s := range sources {
		sourceNames[i] = string(s)
	}

	values := dataaccess.Row{"status": string(status)}
	if status == entity.InvoiceStatusIssued {
		values["issued_at"] = time.Now().UTC()
	}
	row, err := r.adapter.UpdateWhere(ctx, r.table, id, values, "id", map[string]any{
		"status": sourceNames,
	})
	if err != nil {
		if errors.Is(err, dataaccess.ErrNotFound) {
			return nil, r.transitionFailure(ctx, id)
		}
		return nil, err
	}
	invoice := rowToInvoice(row)
	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice.Items = items
	return &invoice, nil
}

// transitionFailure disambiguates a rejected guarded update: a missing
// invoice is not found, an existing one refused the move.
func (r *invoiceRepository) transitionFailure(ctx context.Context, id int64) error {
	row, err := r.findByID(ctx, id)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("update invoices %d: %w", id, dataaccess.ErrNotFound)
	}
	return fmt.Errorf("invoice %d in status %q: %w", id, row.String("status"), entity.ErrInvoiceTransition)
}

func (r *invoiceRepository) FindByPatient(ctx context.Context, patientID int64, p domainRepo.Pagination) ([]entity.Invoice, domainRepo.Meta, error) {
	return r.FindAll(ctx, map[string]any{"patient_id": patientID}, p)
}

func (r *invoiceRepository) findItems(ctx context.Context, invoiceID int64) ([]entity.InvoiceItem, error) {
	rows, _, err := r.adapter.Query(ctx, "invoice_items", dataaccess.QueryOptions{
		Filters: map[string]any{"invoice_id": invoiceID},
		OrderBy: "id",
	})
	if err != nil {
		return nil, fmt.Errorf("find invoice %d items: %w", invoiceID, err)
	}
	items := make([]entity.InvoiceItem, len(rows))
	for i, row := range rows {
		items[i] = rowToInvoiceItem(row)
	}
	return items, nil
}

func rowToInvoice(row dataaccess.Row) entity.Invoice {
	return entity.Invoice{
		ID:         row.Int64("id"),
		PatientID:  row.Int64("patient_id"),
		Status:     entity.InvoiceStatus(row.String("status")),
		TotalCents: row.Int64("total_cents"),
		ClinicTag:  row.String("clinic_tag"),
		IssuedAt:   row.TimePtr("issued_at"),
		CreatedAt:  row.Time("created_at"),
		UpdatedAt:  row.Time("updated_at"),
	}
}

func rowToInvoiceItem(row dataaccess.Row) entity.InvoiceItem {
	return entity.InvoiceItem{
		ID:             row.Int64("id"),
		InvoiceID:      row.Int64("invoice_id"),
		ServiceID:      row.Int64("service_id"),
		Quantity:       int(row.Int64("quantity")),
		UnitPriceCents: row.Int64("unit_price_cents"),
	}
}

func rowsToInvoices(rows []dataaccess.Row) []entity.Invoice {
	out := make([]entity.Invoice, len(rows))
	for i, row := range rows {
		out[i] = rowToInvoice(row)
	}
	return out
}
