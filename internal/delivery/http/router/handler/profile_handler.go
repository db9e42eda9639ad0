package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "alerte/internal/delivery/context"
	"alerte/internal/delivery/http/response"
	"alerte/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetProfile returns the caller's profile. The auth middleware already
// reconciled it, so this is a read of the request-scoped actor.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	actor := deliverycontext.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentification requise")
	}

	return response.Success(c, http.StatusOK, toUserView(actor), "")
}

type updateProfileRequest struct {
	FullName  string     `json:"full_name" validate:"max=120"`
	Phone     string     `json:"phone" validate:"max=30"`
	CommuneID *uuid.UUID `json:"commune_id"`
}

// UpdateProfile applies contact-field changes for the caller.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	actor := deliverycontext.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentification requise")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Données de profil invalides")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	updated, err := h.uc.UpdateProfile(c.Request().Context(), actor.ID, &usecase.UpdateProfileInput{
		FullName:  req.FullName,
		Phone:     req.Phone,
		CommuneID: req.CommuneID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(updated), "Profil mis à jour")
}
