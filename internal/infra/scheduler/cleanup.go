// Package scheduler runs periodic maintenance jobs inside the API process.
package scheduler

import (
	"context"
	"log/slog"

	"alerte/config"
	"alerte/internal/domain/repository"
	"alerte/internal/errors"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// Params defines the dependencies for the cleanup scheduler, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config           *config.Config
	Logger           *slog.Logger
	RefreshTokenRepo repository.RefreshTokenRepository
	AuthRepo         repository.AuthRepository
}

// New registers the token purge job on the application lifecycle.
// Purge failures are logged and swallowed: expired rows are harmless,
// the next run retries.
func New(params Params) (*cron.Cron, error) {
	c := cron.New()

	schedule := params.Config.Maintenance.TokenPurgeSchedule
	if _, err := c.AddFunc(schedule, func() {
		purgeExpired(context.Background(), params.Logger, params.RefreshTokenRepo, params.AuthRepo)
	}); err != nil {
		return nil, errors.Wrapf(err, "invalid token purge schedule %q", schedule)
	}

	params.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			params.Logger.Info("Maintenance scheduler started",
				slog.String("tokenPurgeSchedule", schedule),
			)
			c.Start()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopCtx := c.Stop()
			select {
			case <-stopCtx.Done():
			case <-ctx.Done():
			}

			return nil
		},
	})

	return c, nil
}

func purgeExpired(ctx context.Context, logger *slog.Logger, tokens repository.RefreshTokenRepository, auth repository.AuthRepository) {
	removedTokens, err := tokens.DeleteExpired(ctx)
	if err != nil {
		logger.Warn("Expired refresh token purge failed", slog.String("error", err.Error()))
	}

	removedResets, err := auth.DeleteExpiredPasswordResets(ctx)
	if err != nil {
		logger.Warn("Expired password reset purge failed", slog.String("error", err.Error()))
	}

	if removedTokens > 0 || removedResets > 0 {
		logger.Info("Expired credentials purged",
			slog.Int64("refreshTokens", removedTokens),
			slog.Int64("passwordResets", removedResets),
		)
	}
}
