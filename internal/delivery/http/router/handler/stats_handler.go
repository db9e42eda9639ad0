package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "alerte/internal/delivery/context"
	"alerte/internal/delivery/http/response"
	"alerte/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StatsHandler serves the dashboard aggregations.
type StatsHandler struct {
	uc     usecase.StatsUsecase
	logger *slog.Logger
}

// NewStatsHandler is the constructor for StatsHandler, injected by Fx.
func NewStatsHandler(uc usecase.StatsUsecase, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		uc:     uc,
		logger: logger,
	}
}

// Overview returns every dashboard chart in one payload, computed over the
// reports visible to the caller.
func (h *StatsHandler) Overview(c echo.Context) error {
	actor := deliverycontext.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentification requise")
	}

	overview, err := h.uc.Overview(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, overview, "")
}
