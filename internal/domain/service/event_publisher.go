package service

import (
	"context"
)

// Report event types carried on the change feed.
const (
	ReportEventInsert = "insert"
	ReportEventUpdate = "update"
)

// ReportEvent is a change-feed notification for the report collection.
// UserID is empty for anonymous reports: the feed must never leak the
// submitter of a report whose association was deliberately severed.
type ReportEvent struct {
	RequestID     string `json:"request_id,omitempty"` // For distributed tracing.
	EventType     string `json:"event_type"`           // insert or update.
	ReportID      string `json:"report_id"`
	ReportCode    string `json:"report_code"`
	CommuneID     string `json:"commune_id"`
	ProblemTypeID string `json:"problem_type_id"`
	Status        string `json:"status"`
	UserID        string `json:"user_id,omitempty"`
}

// EventPublisher defines the interface for publishing report change events.
// Publishing is best effort: a feed failure never fails the request that
// produced the change.
type EventPublisher interface {
	// PublishReportEvent publishes a report change for async fan-out.
	PublishReportEvent(ctx context.Context, event *ReportEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
