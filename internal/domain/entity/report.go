package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// ReportStatus is the lifecycle state of a report.
type ReportStatus string

const (
	// StatusPending is the initial state of every report.
	StatusPending ReportStatus = "pending"
	// StatusInProgress means a municipal role has taken the report up.
	StatusInProgress ReportStatus = "in-progress"
	// StatusResolved is terminal.
	StatusResolved ReportStatus = "resolved"
	// StatusRejected is terminal.
	StatusRejected ReportStatus = "rejected"
)

// AllStatuses lists every lifecycle state, in lifecycle order.
// Aggregations rely on this to emit a count for every state.
func AllStatuses() []ReportStatus {
	return []ReportStatus{StatusPending, StatusInProgress, StatusResolved, StatusRejected}
}

// IsValid checks if the status is a known value.
func (s ReportStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed out of the state.
func (s ReportStatus) IsTerminal() bool {
	return s == StatusResolved || s == StatusRejected
}

// CanTransitionTo enforces the lifecycle ordering: a report must be taken
// in progress before it can be resolved, while an outright rejection is
// allowed straight from pending (triage). Terminal states never move again.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusInProgress || next == StatusRejected
	case StatusInProgress:
		return next == StatusResolved || next == StatusRejected
	default:
		return false
	}
}

// ReportPriority is the urgency chosen by the submitter.
type ReportPriority string

const (
	PriorityLow    ReportPriority = "low"
	PriorityMedium ReportPriority = "medium"
	PriorityHigh   ReportPriority = "high"
	// PriorityCritical exists in the display/charting vocabulary but is not
	// selectable at submission.
	PriorityCritical ReportPriority = "critical"
)

// AllPriorities lists every priority value, for aggregation output.
func AllPriorities() []ReportPriority {
	return []ReportPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// IsSelectable reports whether a submitter may choose this priority.
func (p ReportPriority) IsSelectable() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Report is a citizen-submitted record of an urban problem tied to a
// commune and a problem category.
type Report struct {
	ID            uuid.UUID
	Code          string // Human-readable short code for display and phone support; the UUID stays the key.
	ProblemTypeID uuid.UUID
	CommuneID     uuid.UUID
	// UserID links the report to its submitter. It is nil for anonymous
	// reports even when the submitter was authenticated: the association is
	// deliberately severed at creation and there is no later re-association.
	UserID      *uuid.UUID
	Description string
	Address     string
	Location    *orb.Point // Optional GPS position, lon/lat.
	Priority    ReportPriority
	Status      ReportStatus
	IsAnonymous bool
	Images      []*ReportImage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReportImage is a photo attached to a report. Images are uploaded to blob
// storage first and recorded here afterwards; rows are read-only once written.
type ReportImage struct {
	ID        uuid.UUID
	ReportID  uuid.UUID
	ImageURL  string
	CreatedAt time.Time
}
