package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"scheduled to completed", AppointmentScheduled, AppointmentCompleted, true},
		{"scheduled to cancelled", AppointmentScheduled, AppointmentCancelled, true},
		{"scheduled to scheduled", AppointmentScheduled, AppointmentScheduled, false},
		{"completed to cancelled", AppointmentCompleted, AppointmentCancelled, false},
		{"completed to scheduled", AppointmentCompleted, AppointmentScheduled, false},
		{"completed to completed", AppointmentCompleted, AppointmentCompleted, false},
		{"cancelled to completed", AppointmentCancelled, AppointmentCompleted, false},
		{"cancelled to scheduled", AppointmentCancelled, AppointmentScheduled, false},
		{"scheduled to unknown", AppointmentScheduled, AppointmentStatus(7), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestAppointmentStatusTerminal(t *testing.T) {
	assert.False(t, AppointmentScheduled.Terminal())
	assert.True(t, AppointmentCompleted.Terminal())
	assert.True(t, AppointmentCancelled.Terminal())
}

func TestAppointmentStatusString(t *testing.T) {
	assert.Equal(t, "Scheduled", AppointmentScheduled.String())
	assert.Equal(t, "Completed", AppointmentCompleted.String())
	assert.Equal(t, "Cancelled", AppointmentCancelled.String())
}

func TestAppointmentStatusValid(t *testing.T) {
	assert.True(t, AppointmentScheduled.Valid())
	assert.False(t, AppointmentStatus(-1).Valid())
	assert.False(t, AppointmentStatus(3).Valid())
}
