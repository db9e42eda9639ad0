package impl

import (
	"context"
	"log/slog"
	"path"
	"strings"

	deliverycontext "alerte/internal/delivery/context"
	"alerte/internal/domain/entity"
	domainerrors "alerte/internal/domain/errors"
	"alerte/internal/domain/repository"
	"alerte/internal/domain/service"
	"alerte/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"go.uber.org/fx"
)

// reportService implements the ReportUsecase interface.
type reportService struct {
	txManager       repository.TransactionManager
	reportRepo      repository.ReportRepository
	reportImageRepo repository.ReportImageRepository
	commentRepo     repository.CommentRepository
	imageStore      service.ImageStore
	publisher       service.EventPublisher
	logger          *slog.Logger
}

// ReportServiceParams holds dependencies for ReportService, injected by Fx.
type ReportServiceParams struct {
	fx.In

	TxManager       repository.TransactionManager
	ReportRepo      repository.ReportRepository
	ReportImageRepo repository.ReportImageRepository
	CommentRepo     repository.CommentRepository
	ImageStore      service.ImageStore
	Publisher       service.EventPublisher
	Logger          *slog.Logger
}

// NewReportService is the constructor for reportService.
func NewReportService(params ReportServiceParams) usecase.ReportUsecase {
	return &reportService{
		txManager:       params.TxManager,
		reportRepo:      params.ReportRepo,
		reportImageRepo: params.ReportImageRepo,
		commentRepo:     params.CommentRepo,
		imageStore:      params.ImageStore,
		publisher:       params.Publisher,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *reportService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// newReportCode generates the human-readable display code. The UUID stays
// the database key; the code exists for citizens and phone support.
func newReportCode() string {
	return "R-" + strings.ToUpper(xid.New().String())
}

// Submit creates a report for the actor. The row is committed first; images
// are uploaded afterwards, each independently, so a broken photo never costs
// the citizen their report.
func (srv *reportService) Submit(ctx context.Context, actor *entity.User, input *usecase.SubmitReportInput) (*usecase.SubmitReportOutput, error) {
	priority := input.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !priority.IsSelectable() {
		return nil, errors.Wrap(domainerrors.ErrInvalidPriority, "priority not selectable at submission")
	}

	report := &entity.Report{
		ID:            uuid.New(),
		Code:          newReportCode(),
		ProblemTypeID: input.ProblemTypeID,
		CommuneID:     input.CommuneID,
		Description:   input.Description,
		Address:       input.Address,
		Location:      input.Location,
		Priority:      priority,
		Status:        entity.StatusPending,
		IsAnonymous:   input.IsAnonymous,
	}
	if !input.IsAnonymous && actor != nil {
		userID := actor.ID
		report.UserID = &userID
	}
	// An anonymous or unauthenticated report keeps UserID nil forever: the
	// association is severed at creation, there is no later re-association.

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.CommuneRepo().FindByID(ctx, input.CommuneID); err != nil {
			if errors.Is(err, repository.ErrCommuneNotFound) {
				return errors.Wrap(domainerrors.ErrCommuneNotFound, "unknown commune")
			}

			return errors.Wrap(err, "failed to find commune")
		}

		if _, err := repoFactory.ProblemTypeRepo().FindByID(ctx, input.ProblemTypeID); err != nil {
			if errors.Is(err, repository.ErrProblemTypeNotFound) {
				return errors.Wrap(domainerrors.ErrProblemTypeNotFound, "unknown problem type")
			}

			return errors.Wrap(err, "failed to find problem type")
		}

		return repoFactory.ReportRepo().Create(ctx, report)
	})
	if err != nil {
		srv.log(ctx).Warn("Report submission failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute report submission transaction")
	}

	imageResults := srv.attachImages(ctx, report, input.Images)

	srv.publishEvent(ctx, service.ReportEventInsert, report)

	srv.log(ctx).Info("Report submitted",
		slog.Any("reportID", report.ID),
		slog.String("code", report.Code),
		slog.Bool("anonymous", report.IsAnonymous),
	)

	return &usecase.SubmitReportOutput{
		Report:       report,
		ImageResults: imageResults,
	}, nil
}

// attachImages uploads each image and records the URL. Failures are reported
// per image and never abort the batch.
func (srv *reportService) attachImages(ctx context.Context, report *entity.Report, uploads []usecase.ImageUpload) []usecase.ImageResult {
	results := make([]usecase.ImageResult, 0, len(uploads))

	for _, upload := range uploads {
		key := "reports/" + report.ID.String() + "/" + xid.New().String() + path.Ext(upload.FileName)

		url, err := srv.imageStore.Save(ctx, key, upload.ContentType, upload.Data)
		if err != nil {
			srv.log(ctx).Warn("Report image upload failed",
				slog.Any("reportID", report.ID),
				slog.String("fileName", upload.FileName),
				slog.Any("error", err),
			)
			results = append(results, usecase.ImageResult{FileName: upload.FileName, Failed: true})

			continue
		}

		image := &entity.ReportImage{
			ID:       uuid.New(),
			ReportID: report.ID,
			ImageURL: url,
		}
		if err := srv.reportImageRepo.Create(ctx, image); err != nil {
			srv.log(ctx).Warn("Report image row insert failed",
				slog.Any("reportID", report.ID),
				slog.String("fileName", upload.FileName),
				slog.Any("error", err),
			)
			results = append(results, usecase.ImageResult{FileName: upload.FileName, Failed: true})

			continue
		}

		report.Images = append(report.Images, image)
		results = append(results, usecase.ImageResult{FileName: upload.FileName, URL: url})
	}

	return results
}

// AttachImages adds photos to an existing report the actor can see.
func (srv *reportService) AttachImages(ctx context.Context, actor *entity.User, reportID uuid.UUID, uploads []usecase.ImageUpload) ([]usecase.ImageResult, error) {
	report, err := srv.Get(ctx, actor, reportID)
	if err != nil {
		return nil, err
	}

	results := srv.attachImages(ctx, report, uploads)

	srv.log(ctx).Info("Report images attached",
		slog.Any("reportID", report.ID),
		slog.Int("count", len(results)),
	)

	return results, nil
}

// publishEvent pushes a change-feed event. Best effort: feed failures are
// logged and swallowed, the request that produced the change still succeeds.
func (srv *reportService) publishEvent(ctx context.Context, eventType string, report *entity.Report) {
	event := &service.ReportEvent{
		RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
		EventType:     eventType,
		ReportID:      report.ID.String(),
		ReportCode:    report.Code,
		CommuneID:     report.CommuneID.String(),
		ProblemTypeID: report.ProblemTypeID.String(),
		Status:        string(report.Status),
	}
	if report.UserID != nil {
		event.UserID = report.UserID.String()
	}

	if err := srv.publisher.PublishReportEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Report event publish failed",
			slog.Any("reportID", report.ID),
			slog.String("eventType", eventType),
			slog.Any("error", err),
		)
	}
}

// List returns the reports visible to the actor, newest first.
func (srv *reportService) List(ctx context.Context, actor *entity.User, input *usecase.ListReportsInput) ([]*entity.Report, error) {
	scope, ok := entity.ScopeFor(actor)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "no report scope for actor")
	}

	if input.Status != nil && !input.Status.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidStatus, "unknown status filter")
	}

	reports, err := srv.reportRepo.List(ctx, repository.ReportFilter{
		Scope:         scope,
		Status:        input.Status,
		ProblemTypeID: input.ProblemTypeID,
		Limit:         input.Limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reports")
	}

	return reports, nil
}

// Get returns a single report if it falls inside the actor's scope.
// Out-of-scope reports read as not found, never as forbidden, so the
// endpoint does not confirm their existence.
func (srv *reportService) Get(ctx context.Context, actor *entity.User, reportID uuid.UUID) (*entity.Report, error) {
	scope, ok := entity.ScopeFor(actor)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "no report scope for actor")
	}

	report, err := srv.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, errors.Wrap(domainerrors.ErrReportNotFound, "report not found")
		}

		return nil, errors.Wrap(err, "failed to find report")
	}

	if !scope.Allows(report) {
		return nil, errors.Wrap(domainerrors.ErrReportNotFound, "report outside actor scope")
	}

	return report, nil
}

// UpdateStatus applies a lifecycle transition.
func (srv *reportService) UpdateStatus(ctx context.Context, actor *entity.User, input *usecase.UpdateReportStatusInput) (*entity.Report, error) {
	if !actor.Role.CanTransitionStatus() {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "role cannot change report status")
	}

	if !input.Status.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidStatus, "unknown target status")
	}

	var updated *entity.Report

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reportRepo := repoFactory.ReportRepo()

		report, err := reportRepo.FindByID(ctx, input.ReportID)
		if err != nil {
			if errors.Is(err, repository.ErrReportNotFound) {
				return errors.Wrap(domainerrors.ErrReportNotFound, "report not found")
			}

			return errors.Wrap(err, "failed to find report")
		}

		// A bourgmestre only manages their own commune; an admin manages all.
		if actor.Role == entity.RoleBourgmestre && !actor.IsBourgmestreOf(report.CommuneID) {
			return errors.Wrap(domainerrors.ErrForbidden, "report outside bourgmestre commune")
		}

		if !report.Status.CanTransitionTo(input.Status) {
			return errors.Wrapf(domainerrors.ErrInvalidTransition,
				"cannot transition from %s to %s", report.Status, input.Status)
		}

		updated, err = reportRepo.UpdateStatus(ctx, input.ReportID, input.Status)
		if err != nil {
			return errors.Wrap(err, "failed to update report status")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Report status update failed",
			slog.Any("reportID", input.ReportID),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to execute status update transaction")
	}

	srv.publishEvent(ctx, service.ReportEventUpdate, updated)

	srv.log(ctx).Info("Report status updated",
		slog.Any("reportID", updated.ID),
		slog.String("status", string(updated.Status)),
		slog.Any("actorID", actor.ID),
	)

	return updated, nil
}

// AddComment attaches a comment to a report the actor can see.
func (srv *reportService) AddComment(ctx context.Context, actor *entity.User, input *usecase.AddCommentInput) (*entity.Comment, error) {
	if _, err := srv.Get(ctx, actor, input.ReportID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		ID:       uuid.New(),
		UserID:   actor.ID,
		ReportID: input.ReportID,
		Content:  input.Content,
	}

	if err := srv.commentRepo.Create(ctx, comment); err != nil {
		return nil, errors.Wrap(err, "failed to create comment")
	}

	srv.log(ctx).Debug("Comment added", slog.Any("reportID", input.ReportID), slog.Any("userID", actor.ID))

	return comment, nil
}

// ListComments returns the comments of a report the actor can see.
func (srv *reportService) ListComments(ctx context.Context, actor *entity.User, reportID uuid.UUID) ([]*entity.Comment, error) {
	if _, err := srv.Get(ctx, actor, reportID); err != nil {
		return nil, err
	}

	comments, err := srv.commentRepo.ListByReport(ctx, reportID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}

	return comments, nil
}
