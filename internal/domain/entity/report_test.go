package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from ReportStatus
		to   ReportStatus
		want bool
	}{
		{"pending to in-progress", StatusPending, StatusInProgress, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending cannot jump to resolved", StatusPending, StatusResolved, false},
		{"pending to pending", StatusPending, StatusPending, false},
		{"in-progress to resolved", StatusInProgress, StatusResolved, true},
		{"in-progress to rejected", StatusInProgress, StatusRejected, true},
		{"in-progress cannot go back to pending", StatusInProgress, StatusPending, false},
		{"resolved is terminal", StatusResolved, StatusInProgress, false},
		{"resolved cannot be rejected", StatusResolved, StatusRejected, false},
		{"rejected is terminal", StatusRejected, StatusPending, false},
		{"rejected cannot be resolved", StatusRejected, StatusResolved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReportStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusResolved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}

func TestReportStatusIsValid(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, ReportStatus("archived").IsValid())
	assert.False(t, ReportStatus("").IsValid())
}

func TestReportPriorityIsSelectable(t *testing.T) {
	assert.True(t, PriorityLow.IsSelectable())
	assert.True(t, PriorityMedium.IsSelectable())
	assert.True(t, PriorityHigh.IsSelectable())

	// Critical exists for charts but a submitter may not pick it.
	assert.False(t, PriorityCritical.IsSelectable())
	assert.False(t, ReportPriority("urgent").IsSelectable())
}
