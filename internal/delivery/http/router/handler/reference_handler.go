package handler

import (
	"net/http"

	"alerte/internal/delivery/http/response"
	"alerte/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReferenceHandler serves the seeded reference data. Public endpoints: the
// registration and submission forms need them before any login.
type ReferenceHandler struct {
	uc usecase.ReferenceUsecase
}

// NewReferenceHandler is the constructor for ReferenceHandler, injected by Fx.
func NewReferenceHandler(uc usecase.ReferenceUsecase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

// ListCommunes returns every commune, ordered by name.
func (h *ReferenceHandler) ListCommunes(c echo.Context) error {
	communes, err := h.uc.ListCommunes(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCommuneViews(communes), "")
}

// ListProblemTypes returns every problem category, ordered by name.
func (h *ReferenceHandler) ListProblemTypes(c echo.Context) error {
	problemTypes, err := h.uc.ListProblemTypes(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProblemTypeViews(problemTypes), "")
}
