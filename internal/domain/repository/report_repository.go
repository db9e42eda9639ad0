package repository

import (
	"context"
	"errors"

	"alerte/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReportNotFound is returned when no report matches the lookup.
var ErrReportNotFound = errors.New("report not found")

// ReportFilter narrows a report listing. The scope is mandatory: there is
// no unscoped listing, an admin simply carries the city-wide scope.
type ReportFilter struct {
	Scope         entity.ReportScope
	Status        *entity.ReportStatus
	ProblemTypeID *uuid.UUID
	Limit         int // 0 means no limit.
}

// ReportRepository defines the operations for report persistence.
type ReportRepository interface {
	// Create persists a new report with its generated id and code.
	Create(ctx context.Context, report *entity.Report) error

	// FindByID retrieves a single report with its images preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)

	// List returns the reports matching the filter, newest first.
	List(ctx context.Context, filter ReportFilter) ([]*entity.Report, error)

	// UpdateStatus sets a report's status and stamps updated_at to the
	// transition time, returning the refreshed row. Lifecycle and
	// authorization checks happen in the use case, not here.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReportStatus) (*entity.Report, error)
}

// ReportImageRepository defines the operations for report image rows.
// Rows are append-only: images are never re-pointed or edited.
type ReportImageRepository interface {
	// Create records an uploaded image URL against a report.
	Create(ctx context.Context, image *entity.ReportImage) error

	// ListByReport returns a report's images, oldest first.
	ListByReport(ctx context.Context, reportID uuid.UUID) ([]*entity.ReportImage, error)
}

// CommentRepository defines the operations for report comments.
type CommentRepository interface {
	// Create persists a new comment.
	Create(ctx context.Context, comment *entity.Comment) error

	// ListByReport returns a report's comments, oldest first.
	ListByReport(ctx context.Context, reportID uuid.UUID) ([]*entity.Comment, error)
}
