package usecase

import (
	"context"

	"alerte/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// --- Input DTOs ---

// ImageUpload is one photo attached to a submission.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// SubmitReportInput defines the data required to submit a report.
type SubmitReportInput struct {
	ProblemTypeID uuid.UUID
	CommuneID     uuid.UUID
	Description   string
	Address       string
	Location      *orb.Point
	Priority      entity.ReportPriority
	IsAnonymous   bool
	Images        []ImageUpload
}

// ListReportsInput narrows a report listing. Visibility is derived from the
// actor, never from the input.
type ListReportsInput struct {
	Status        *entity.ReportStatus
	ProblemTypeID *uuid.UUID
	Limit         int
}

// UpdateReportStatusInput carries a lifecycle transition request.
type UpdateReportStatusInput struct {
	ReportID uuid.UUID
	Status   entity.ReportStatus
}

// AddCommentInput carries a new comment on a report.
type AddCommentInput struct {
	ReportID uuid.UUID
	Content  string
}

// --- Output DTOs ---

// ImageResult reports the outcome of one image upload. Image persistence is
// best effort: a failed upload is reported here, never as a request error.
type ImageResult struct {
	FileName string
	URL      string
	Failed   bool
}

// SubmitReportOutput returns the created report and per-image outcomes.
type SubmitReportOutput struct {
	Report       *entity.Report
	ImageResults []ImageResult
}

// ReportUsecase defines the interface for report-related business operations.
// Every operation takes the reconciled actor profile: authorization decisions
// are made here against the profile, not against token claims.
type ReportUsecase interface {
	// Submit creates a report for the actor. The report row is committed
	// first; images are uploaded afterwards, each independently. A nil actor
	// is an unauthenticated submitter: the report carries no user link.
	Submit(ctx context.Context, actor *entity.User, input *SubmitReportInput) (*SubmitReportOutput, error)

	// AttachImages adds photos to an existing report the actor can see,
	// with the same per-image best-effort semantics as Submit.
	AttachImages(ctx context.Context, actor *entity.User, reportID uuid.UUID, uploads []ImageUpload) ([]ImageResult, error)

	// List returns the reports visible to the actor, newest first.
	List(ctx context.Context, actor *entity.User, input *ListReportsInput) ([]*entity.Report, error)

	// Get returns a single report if it falls inside the actor's scope.
	Get(ctx context.Context, actor *entity.User, reportID uuid.UUID) (*entity.Report, error)

	// UpdateStatus applies a lifecycle transition. Only bourgmestres (their
	// commune) and admins may transition, and only along the allowed edges.
	UpdateStatus(ctx context.Context, actor *entity.User, input *UpdateReportStatusInput) (*entity.Report, error)

	// AddComment attaches a comment to a report the actor can see.
	AddComment(ctx context.Context, actor *entity.User, input *AddCommentInput) (*entity.Comment, error)

	// ListComments returns the comments of a report the actor can see.
	ListComments(ctx context.Context, actor *entity.User, reportID uuid.UUID) ([]*entity.Comment, error)
}
