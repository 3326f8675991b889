package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceTransitionGraph(t *testing.T) {
	cases := []struct {
		from, to InvoiceStatus
		ok       bool
	}{
		{InvoiceStatusDraft, InvoiceStatusIssued, true},
		{InvoiceStatusDraft, InvoiceStatusCancelled, true},
		{InvoiceStatusDraft, InvoiceStatusPaid, false},
		{InvoiceStatusIssued, InvoiceStatusPaid, true},
		{InvoiceStatusIssued, InvoiceStatusCancelled, true},
		{InvoiceStatusIssued, InvoiceStatusDraft, false},
		{InvoiceStatusPaid, InvoiceStatusCancelled, false},
		{InvoiceStatusPaid, InvoiceStatusIssued, false},
		{InvoiceStatusCancelled, InvoiceStatusIssued, false},
		{InvoiceStatusCancelled, InvoiceStatusDraft, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestInvoiceTerminalStates(t *testing.T) {
	assert.False(t, InvoiceStatusDraft.IsTerminal())
	assert.False(t, InvoiceStatusIssued.IsTerminal())
	assert.True(t, InvoiceStatusPaid.IsTerminal())
	assert.True(t, InvoiceStatusCancelled.IsTerminal())
}

func TestInvoiceTransitionSources(t *testing.T) {
	assert.ElementsMatch(t,
		[]InvoiceStatus{InvoiceStatusDraft},
		InvoiceTransitionSources(InvoiceStatusIssued))
	assert.ElementsMatch(t,
		[]InvoiceStatus{InvoiceStatusIssued},
		InvoiceTransitionSources(InvoiceStatusPaid))
	assert.ElementsMatch(t,
		[]InvoiceStatus{InvoiceStatusDraft, InvoiceStatusIssued},
		InvoiceTransitionSources(InvoiceStatusCancelled))
	assert.Empty(t, InvoiceTransitionSources(InvoiceStatusDraft))
}
