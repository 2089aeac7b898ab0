package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []RequestStatus{
	RequestStatusPending, RequestStatusOpen, RequestStatusInProgress, RequestStatusDelivered,
	RequestStatusDisputed, RequestStatusCompleted, RequestStatusDisabled,
}

func TestRequestStatus_TerminalStatesHaveNoExits(t *testing.T) {
	for _, from := range []RequestStatus{RequestStatusCompleted, RequestStatusDisabled} {
		for _, to := range allStatuses {
			assert.False(t, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
		assert.True(t, from.IsTerminal())
	}
}

func TestRequestStatus_EveryNonTerminalCanBeDisabled(t *testing.T) {
	for _, s := range allStatuses {
		if s.IsTerminal() {
			continue
		}
		assert.True(t, s.CanTransitionTo(RequestStatusDisabled), string(s))
	}
}

func TestRequestStatus_Transitions(t *testing.T) {
	assert.True(t, RequestStatusOpen.CanTransitionTo(RequestStatusInProgress))
	assert.True(t, RequestStatusPending.CanTransitionTo(RequestStatusInProgress))
	assert.True(t, RequestStatusInProgress.CanTransitionTo(RequestStatusDelivered))
	assert.True(t, RequestStatusInProgress.CanTransitionTo(RequestStatusDisputed))
	assert.True(t, RequestStatusDelivered.CanTransitionTo(RequestStatusCompleted))
	assert.True(t, RequestStatusDisputed.CanTransitionTo(RequestStatusCompleted))

	assert.False(t, RequestStatusOpen.CanTransitionTo(RequestStatusDelivered))
	assert.False(t, RequestStatusInProgress.CanTransitionTo(RequestStatusCompleted))
	assert.False(t, RequestStatusOpen.CanTransitionTo(RequestStatusDisputed))
}

func TestRequestStatus_HoldsFunds(t *testing.T) {
	assert.True(t, RequestStatusInProgress.HoldsFunds())
	assert.True(t, RequestStatusDelivered.HoldsFunds())
	assert.True(t, RequestStatusDisputed.HoldsFunds())
	assert.False(t, RequestStatusOpen.HoldsFunds())
	assert.False(t, RequestStatusPending.HoldsFunds())
}

func TestNewRequestStatus_Invalid(t *testing.T) {
	_, err := NewRequestStatus("archived")
	assert.Error(t, err)
}

func TestDisputeOutcome_Resolution(t *testing.T) {
	outcome, err := NewDisputeOutcome("pay")
	assert.NoError(t, err)
	assert.Equal(t, DisputeResolutionPaid, outcome.Resolution())
	assert.Equal(t, DisputeResolutionRefunded, DisputeOutcomeRefund.Resolution())

	_, err = NewDisputeOutcome("split")
	assert.Error(t, err)
}
