package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusCancelled, true},
		{StatusAccepted, StatusPreparing, true},
		{StatusPreparing, StatusReady, true},
		{StatusReady, StatusCompleted, true},

		// no skipping ahead
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusReady, false},
		{StatusAccepted, StatusCompleted, false},

		// no going back
		{StatusPreparing, StatusAccepted, false},
		{StatusReady, StatusPending, false},

		// terminal states are frozen
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusAccepted, false},
		{StatusCompleted, StatusCompleted, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusReady.Terminal())
}

func TestStatus_Requestable(t *testing.T) {
	// pending can never be requested explicitly
	assert.False(t, StatusPending.Requestable())
	assert.False(t, Status("paid").Requestable())

	for _, s := range []Status{StatusAccepted, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled} {
		assert.True(t, s.Requestable(), string(s))
	}
}
