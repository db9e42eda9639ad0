// Command reconcile is a one-shot repair pass over the credential/profile
// drift: every authentication row without a profile gets a default citizen
// profile. Safe to run repeatedly; a clean database is a no-op.
package main

import (
	"context"
	"log/slog"
	"os"

	"alerte/config"
	logs "alerte/internal/infra/log"
	"alerte/internal/infra/persistence/postgres"
	"alerte/internal/usecase"
	"alerte/internal/usecase/impl"

	"go.uber.org/fx"
)

type reconcileParams struct {
	fx.In
	fx.Shutdowner

	Logger         *slog.Logger
	ProfileUsecase usecase.ProfileUsecase
}

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			postgres.NewUserRepository,
			postgres.NewAuthRepository,
			postgres.NewTransactionManager,
			impl.NewProfileService,
		),
		fx.Invoke(run),
	).Run()
}

func run(ctx context.Context, params reconcileParams) {
	exitCode := 0

	repaired, err := params.ProfileUsecase.RepairOrphans(ctx)
	if err != nil {
		params.Logger.Error("Reconciliation failed", slog.Any("error", err))
		exitCode = 1
	} else {
		params.Logger.Info("Reconciliation completed", slog.Int("profilesRepaired", repaired))
	}

	if shutdownErr := params.Shutdown(fx.ExitCode(exitCode)); shutdownErr != nil {
		params.Logger.Error("Failed to shutdown", slog.Any("error", shutdownErr))
		os.Exit(1)
	}
}
