package impl

import (
	"context"
	"log/slog"

	"alerte/config"
	deliverycontext "alerte/internal/delivery/context"
	"alerte/internal/domain/entity"
	domainerrors "alerte/internal/domain/errors"
	"alerte/internal/domain/repository"
	"alerte/internal/domain/stats"
	"alerte/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// statsService implements the StatsUsecase interface.
type statsService struct {
	reportRepo      repository.ReportRepository
	communeRepo     repository.CommuneRepository
	problemTypeRepo repository.ProblemTypeRepository
	topN            int
	logger          *slog.Logger
}

// StatsServiceParams holds dependencies for StatsService, injected by Fx.
type StatsServiceParams struct {
	fx.In

	Config          *config.Config
	ReportRepo      repository.ReportRepository
	CommuneRepo     repository.CommuneRepository
	ProblemTypeRepo repository.ProblemTypeRepository
	Logger          *slog.Logger
}

// NewStatsService is the constructor for statsService.
func NewStatsService(params StatsServiceParams) usecase.StatsUsecase {
	return &statsService{
		reportRepo:      params.ReportRepo,
		communeRepo:     params.CommuneRepo,
		problemTypeRepo: params.ProblemTypeRepo,
		topN:            params.Config.Stats.TopN,
		logger:          params.Logger,
	}
}

func (srv *statsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Overview computes the dashboard aggregations over the reports visible to
// the actor. The same scope that filters the list endpoint filters the
// numbers: a citizen's overview covers only their own reports, a
// bourgmestre's only their commune.
func (srv *statsService) Overview(ctx context.Context, actor *entity.User) (*stats.Overview, error) {
	scope, ok := entity.ScopeFor(actor)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "no report scope for actor")
	}

	reports, err := srv.reportRepo.List(ctx, repository.ReportFilter{Scope: scope})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reports for overview")
	}

	communeName, err := srv.communeNames(ctx)
	if err != nil {
		return nil, err
	}

	problemTypeName, err := srv.problemTypeNames(ctx)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Stats overview computed",
		slog.Int("reportCount", len(reports)),
		slog.String("scope", string(scope.Kind)),
	)

	return stats.Compute(reports, srv.topN, communeName, problemTypeName), nil
}

// communeNames builds an id-to-name resolver from the commune reference data.
func (srv *statsService) communeNames(ctx context.Context) (func(uuid.UUID) string, error) {
	communes, err := srv.communeRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list communes")
	}

	names := make(map[uuid.UUID]string, len(communes))
	for _, commune := range communes {
		names[commune.ID] = commune.Name
	}

	return func(id uuid.UUID) string { return names[id] }, nil
}

func (srv *statsService) problemTypeNames(ctx context.Context) (func(uuid.UUID) string, error) {
	problemTypes, err := srv.problemTypeRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list problem types")
	}

	names := make(map[uuid.UUID]string, len(problemTypes))
	for _, problemType := range problemTypes {
		names[problemType.ID] = problemType.Name
	}

	return func(id uuid.UUID) string { return names[id] }, nil
}
