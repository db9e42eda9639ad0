package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "alerte/internal/delivery/context"
	"alerte/internal/delivery/http/response"
	"alerte/internal/domain/entity"
	"alerte/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler serves the city-administration endpoints.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListUsers returns every profile, oldest first.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	actor := deliverycontext.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentification requise")
	}

	users, err := h.uc.ListUsers(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserViews(users), "")
}

type assignRoleRequest struct {
	Role      string     `json:"role" validate:"required,oneof=citizen bourgmestre admin"`
	CommuneID *uuid.UUID `json:"commune_id"`
}

// AssignRole promotes or demotes a user.
func (h *AdminHandler) AssignRole(c echo.Context) error {
	actor := deliverycontext.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentification requise")
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Identifiant d'utilisateur invalide")
	}

	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Données d'assignation invalides")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	updated, err := h.uc.AssignRole(c.Request().Context(), actor, &usecase.AssignRoleInput{
		UserID:    userID,
		Role:      entity.Role(req.Role),
		CommuneID: req.CommuneID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(updated), "Rôle assigné")
}
