package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferralTransitionGraph(t *testing.T) {
	cases := []struct {
		from, to ReferralStatus
		ok       bool
	}{
		{ReferralStatusPending, ReferralStatusAccepted, true},
		{ReferralStatusPending, ReferralStatusRejected, true},
		{ReferralStatusPending, ReferralStatusCompleted, false},
		{ReferralStatusAccepted, ReferralStatusCompleted, true},
		{ReferralStatusAccepted, ReferralStatusRejected, false},
		{ReferralStatusAccepted, ReferralStatusPending, false},
		{ReferralStatusRejected, ReferralStatusAccepted, false},
		{ReferralStatusRejected, ReferralStatusCompleted, false},
		{ReferralStatusCompleted, ReferralStatusPending, false},
		{ReferralStatusCompleted, ReferralStatusAccepted, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestReferralNothingReturnsToPending(t *testing.T) {
	for from := range ReferralTransitions {
		assert.False(t, from.CanTransitionTo(ReferralStatusPending), "%s -> pending", from)
	}
}

func TestReferralTerminalStates(t *testing.T) {
	assert.False(t, ReferralStatusPending.IsTerminal())
	assert.False(t, ReferralStatusAccepted.IsTerminal())
	assert.True(t, ReferralStatusRejected.IsTerminal())
	assert.True(t, ReferralStatusCompleted.IsTerminal())
}

func TestValidReferralStatus(t *testing.T) {
	for _, s := range []ReferralStatus{
		ReferralStatusPending, ReferralStatusAccepted,
		ReferralStatusRejected, ReferralStatusCompleted,
	} {
		assert.True(t, ValidReferralStatus(s), string(s))
	}
	assert.False(t, ValidReferralStatus("archived"))
	assert.False(t, ValidReferralStatus(""))
}

func TestReferralTransitionSources(t *testing.T) {
	assert.ElementsMatch(t,
		[]ReferralStatus{ReferralStatusPending},
		ReferralTransitionSources(ReferralStatusAccepted))
	assert.ElementsMatch(t,
		[]ReferralStatus{ReferralStatusPending},
		ReferralTransitionSources(ReferralStatusRejected))
	assert.ElementsMatch(t,
		[]ReferralStatus{ReferralStatusAccepted},
		ReferralTransitionSources(ReferralStatusCompleted))
	assert.Empty(t, ReferralTransitionSources(ReferralStatusPending))
}
