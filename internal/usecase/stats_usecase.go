package usecase

import (
	"context"

	"alerte/internal/domain/entity"
	"alerte/internal/domain/stats"
)

// StatsUsecase serves the dashboard aggregations. The overview is always
// computed over the actor's visible report set: a bourgmestre's charts
// cover their commune, an admin's cover the whole city.
type StatsUsecase interface {
	Overview(ctx context.Context, actor *entity.User) (*stats.Overview, error)
}
