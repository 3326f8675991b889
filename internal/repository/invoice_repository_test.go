package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/domain/entity"
)

// stubAdapter records adapter calls and serves canned rows, standing in for
// either backend.
type stubAdapter struct {
	rows map[string]dataaccess.Row

	updateWhereGuards map[string]any
	updateWhereValues dataaccess.Row
	updateWhereErr    error

	insertCalls  []string
	insertFailOn int
	deleteTables []string
}

func (s *stubAdapter) Query(_ context.Context, table string, _ dataaccess.QueryOptions) ([]dataaccess.Row, int64, error) {
	return nil, 0, nil
}

func (s *stubAdapter) FindByID(_ context.Context, table string, _ any, _ string) (dataaccess.Row, error) {
	return s.rows[table], nil
}

func (s *stubAdapter) Insert(_ context.Context, table string, values dataaccess.Row) (dataaccess.Row, error) {
	s.insertCalls = append(s.insertCalls, table)
	if s.insertFailOn > 0 && len(s.insertCalls) == s.insertFailOn {
		return nil, dataaccess.ErrConstraintViolation
	}
	if row, ok := s.rows[table]; ok {
		return row, nil
	}
	return values, nil
}

func (s *stubAdapter) Update(_ context.Context, table string, _ any, values dataaccess.Row, _ string) (dataaccess.Row, error) {
	return s.rows[table], nil
}

func (s *stubAdapter) UpdateWhere(_ context.Context, table string, _ any, values dataaccess.Row, _ string, guards map[string]any) (dataaccess.Row, error) {
	s.updateWhereValues = values
	s.updateWhereGuards = guards
	if s.updateWhereErr != nil {
		return nil, s.updateWhereErr
	}
	return s.rows[table], nil
}

func (s *stubAdapter) Delete(_ context.Context, table string, _ any, _ string) (bool, error) {
	s.deleteTables = append(s.deleteTables, table)
	return true, nil
}

func (s *stubAdapter) Search(_ context.Context, _, _ string, _ []string, _ int) ([]dataaccess.Row, error) {
	return nil, nil
}

func (s *stubAdapter) RawQuery(_ context.Context, _ string, _ ...any) ([]dataaccess.Row, error) {
	return nil, dataaccess.ErrUnsupportedOperation
}

func invoiceRow(status string) dataaccess.Row {
	return dataaccess.Row{
		"id":          int64(1),
		"patient_id":  int64(7),
		"status":      status,
		"total_cents": int64(5000),
		"clinic_tag":  "central",
		"created_at":  time.Now(),
		"updated_at":  time.Now(),
	}
}

func TestUpdateStatusGuardsOnLegalSources(t *testing.T) {
	adapter := &stubAdapter{rows: map[string]dataaccess.Row{"invoices": invoiceRow("issued")}}
	repo := NewInvoiceRepository(adapter)

	invoice, err := repo.UpdateStatus(context.Background(), 1, entity.InvoiceStatusPaid)
	require.NoError(t, err)

	// The legal source statuses travel in the update statement itself.
	assert.Equal(t, map[string]any{"status": []string{"issued"}}, adapter.updateWhereGuards)
	assert.Equal(t, "paid", adapter.updateWhereValues.String("status"))
	assert.NotNil(t, invoice)
}

func TestUpdateStatusStampsIssuedAt(t *testing.T) {
	adapter := &stubAdapter{rows: map[string]dataaccess.Row{"invoices": invoiceRow("issued")}}
	repo := NewInvoiceRepository(adapter)

	_, err := repo.UpdateStatus(context.Background(), 1, entity.InvoiceStatusIssued)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"status": []string{"draft"}}, adapter.updateWhereGuards)
	assert.False(t, adapter.updateWhereValues.Time("issued_at").IsZero())
}

func TestUpdateStatusRefusedGuardIsTransitionError(t *testing.T) {
	adapter := &stubAdapter{
		rows:           map[string]dataaccess.Row{"invoices": invoiceRow("paid")},
		updateWhereErr: dataaccess.ErrNotFound,
	}
	repo := NewInvoiceRepository(adapter)

	_, err := repo.UpdateStatus(context.Background(), 1, entity.InvoiceStatusCancelled)
	assert.ErrorIs(t, err, entity.ErrInvoiceTransition)
}

func TestUpdateStatusMissingInvoiceIsNotFound(t *testing.T) {
	adapter := &stubAdapter{
		rows:           map[string]dataaccess.Row{},
		updateWhereErr: dataaccess.ErrNotFound,
	}
	repo := NewInvoiceRepository(adapter)

	_, err := repo.UpdateStatus(context.Background(), 404, entity.InvoiceStatusIssued)
	assert.ErrorIs(t, err, dataaccess.ErrNotFound)
	assert.False(t, errors.Is(err, entity.ErrInvoiceTransition))
}

func TestUpdateStatusToDraftNeverLegal(t *testing.T) {
	adapter := &stubAdapter{rows: map[string]dataaccess.Row{"invoices": invoiceRow("issued")}}
	repo := NewInvoiceRepository(adapter)

	_, err := repo.UpdateStatus(context.Background(), 1, entity.InvoiceStatusDraft)
	assert.ErrorIs(t, err, entity.ErrInvoiceTransition)
}

func TestCreateUndoesInvoiceOnItemFailure(t *testing.T) {
	adapter := &stubAdapter{
		rows:         map[string]dataaccess.Row{"invoices": invoiceRow("draft")},
		insertFailOn: 3, // invoice row, first item, then the second item fails
	}
	repo := NewInvoiceRepository(adapter)

	err := repo.Create(context.Background(), &entity.Invoice{
		PatientID: 7,
		Status:    entity.InvoiceStatusDraft,
		ClinicTag: "central",
		Items: []entity.InvoiceItem{
			{ServiceID: 1, Quantity: 1, UnitPriceCents: 1000},
			{ServiceID: 2, Quantity: 2, UnitPriceCents: 2000},
		},
	})
	assert.ErrorIs(t, err, dataaccess.ErrConstraintViolation)
	assert.Equal(t, []string{"invoices"}, adapter.deleteTables)
}
