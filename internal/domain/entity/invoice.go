package entity

import (
	"errors"
	"time"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// ErrInvoiceTransition marks an attempt to move an invoice along an edge
// that is not in the lifecycle graph. Never a silent no-op.
var ErrInvoiceTransition = errors.New("illegal invoice status transition")

// InvoiceTransitions is the lifecycle graph: draft -> issued -> paid, with
// cancellation allowed until payment. Paid and cancelled have no outgoing
// edges. The repository enforces it in the status update statement itself.
var InvoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft:  {InvoiceStatusIssued, InvoiceStatusCancelled},
	InvoiceStatusIssued: {InvoiceStatusPaid, InvoiceStatusCancelled},
}

// Invoice bills a patient for one or more services
type Invoice struct {
	ID         int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID  int64         `gorm:"not null;index" json:"patient_id"`
	Status     InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	TotalCents int64         `gorm:"not null;default:0" json:"total_cents"`
	ClinicTag  string        `gorm:"type:varchar(50);not null" json:"clinic_tag"`
	IssuedAt   *time.Time    `json:"issued_at,omitempty"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is one billed line on an invoice
type InvoiceItem struct {
	ID             int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceID      int64 `gorm:"not null;index" json:"invoice_id"`
	ServiceID      int64 `gorm:"not null" json:"service_id"`
	Quantity       int   `gorm:"not null" json:"quantity"`
	UnitPriceCents int64 `gorm:"not null" json:"unit_price_cents"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// ValidInvoiceStatus reports whether s is one of the enumerated values.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the graph has an edge s -> target.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	for _, t := range InvoiceTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s InvoiceStatus) IsTerminal() bool {
	return len(InvoiceTransitions[s]) == 0
}

// InvoiceTransitionSources lists the statuses allowed to move to target.
// Used to build the guarded status update.
func InvoiceTransitionSources(target InvoiceStatus) []InvoiceStatus {
	var sources []InvoiceStatus
	for from, tos := range InvoiceTransitions {
		for _, to := range tos {
			if to == target {
				sources = append(sources, from)
			}
		}
	}
	return sources
}
