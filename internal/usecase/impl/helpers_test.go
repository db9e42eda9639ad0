package impl

import (
	"io"
	"log/slog"
	"time"

	"alerte/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			ProfileFetchTimeout: time.Second,
			AccessTokenTTL:      15 * time.Minute,
			RefreshTokenTTL:     7 * 24 * time.Hour,
			ResetTokenTTL:       time.Hour,
		},
		Stats: &config.StatsConfig{TopN: 5},
	}
	cfg.Env.Env = "develop"
	cfg.Env.ServiceName = "alerte-test"

	return cfg
}
