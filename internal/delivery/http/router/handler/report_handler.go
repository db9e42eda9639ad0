package handler

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	deliverycontext "alerte/internal/delivery/context"
	"alerte/internal/delivery/http/response"
	"alerte/internal/domain/entity"
	"alerte/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const (
	// maxReportImages caps the photos accepted on one submission.
	maxReportImages = 5
	// maxImageSize caps one uploaded photo at 5 MiB.
	maxImageSize = 5 << 20
)

// ReportHandler holds dependencies for report-related handlers.
type ReportHandler struct {
	uc     usecase.ReportUsecase
	logger *slog.Logger
}

// NewReportHandler is the constructor for ReportHandler, injected by Fx.
func NewReportHandler(uc usecase.ReportUsecase, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		uc:     uc,
		logger: logger,
	}
}

type submitReportRequest struct {
	ProblemTypeID uuid.UUID `form:"problem_type_id" validate:"required"`
	CommuneID     uuid.UUID `form:"commune_id" validate:"required"`
	Description   string    `form:"description" validate:"required,max=2000"`
	Address       string    `form:"address" validate:"max=255"`
	Latitude      *float64  `form:"latitude" validate:"omitempty,latitude"`
	Longitude     *float64  `form:"longitude" validate:"omitempty,longitude"`
	Priority      string    `form:"priority" validate:"omitempty,oneof=low medium high"`
	IsAnonymous   bool      `form:"is_anonymous"`
}

// Submit handles a report submission: multipart form fields plus up to
// maxReportImages photos under the "images" field. Submission does not
// require a session; an unauthenticated report simply carries no user link.
func (h *ReportHandler) Submit(c echo.Context) error {
	actor := deliverycontext.GetActor(c)

	var req submitReportRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Données de signalement invalides")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	// Location is all-or-nothing: a lone latitude is dropped rather than
	// paired with a zero longitude.
	var location *orb.Point
	if req.Latitude != nil && req.Longitude != nil {
		location = &orb.Point{*req.Longitude, *req.Latitude}
	}

	images, err := h.readImages(c)
	if err != nil {
		return err
	}

	output, err := h.uc.Submit(c.Request().Context(), actor, &usecase.SubmitReportInput{
		ProblemTypeID: req.ProblemTypeID,
		CommuneID:     req.CommuneID,
		Description:   req.Description,
		Address:       req.Address,
		Location:      location,
		Priority:      entity.ReportPriority(req.Priority),
		IsAnonymous:   req.IsAnonymous,
		Images:        images,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toSubmitReportView(output), "Signalement enregistré")
}

// readImages pulls the uploaded photos out of the multipart form.
// A JSON submission without files is also accepted.
func (h *ReportHandler) readImages(c echo.Context) ([]usecase.ImageUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}

		return nil, response.BadRequest(c, "INVALID_INPUT", "Formulaire multipart invalide")
	}

	files := form.File["images"]
	if len(files) > maxReportImages {
		return nil, response.BadRequest(c, "TOO_MANY_IMAGES", "Nombre maximum de photos dépassé")
	}

	images := make([]usecase.ImageUpload, 0, len(files))
	for _, file := range files {
		if file.Size > maxImageSize {
			return nil, response.BadRequest(c, "IMAGE_TOO_LARGE", "Photo trop volumineuse")
		}

		data, readErr := readMultipartFile(file)
		if readErr != nil {
			h.logger.Warn("Failed to read uploaded image",
				slog.String("fileName", file.Filename),
				slog.Any("error", readErr),
			)

			return nil, response.BadRequest(c, "INVALID_IMAGE", "Photo illisible")
		}

		images = append(images, usecase.ImageUpload{
			FileName:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	return images, nil
}

func readMultipartFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImageSize+1))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}

// AddImages attaches photos to an existing report, same per-image
// best-effort semantics as submission.
func (h *ReportHandler) AddImages(c echo.Context) error {
	actor := deliverycontext.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentification requise")
	}

	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Identifiant de signalement invalide")
	}

	images, err := h.readImages(c)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return response.BadRequest(c, "NO_IMAGES", "Aucune photo fournie")
	}

	results, err := h.uc.AttachImages(c.Request().Context(), actor, reportID, images)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toImageResultViews(results), "Photos ajoutées")
}

// List returns the reports visible to the caller, filtered by the optional
// status, problem_type_id and limit query parameters.
func (h *ReportHandler) List(c echo.Context) error {
	actor := deliverycontext.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentification requise")
	}

	var req struct {
		Status        string     `query:"status"`
		ProblemTypeID *uuid.UUID `query:"problem_type_id"`
		Limit         int        `query:"limit" validate:"omitempty,min=0,max=500"`
	}
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Paramètres de filtrage invalides")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.ListReportsInput{
		ProblemTypeID: req.ProblemTypeID,
		Limit:         req.Limit,
	}
	if req.Status != "" {
		status := entity.ReportStatus(req.Status)
		input.Status = &status
	}

	reports, err := h.uc.List(c.Request().Context(), actor, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReportViews(reports), "")
}

// Get returns a single report by id.
func (h *ReportHandler) Get(c echo.Context) error {
	actor := deliverycontext.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentification requise")
	}

	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Identifiant de signalement invalide")
	}

	report, err := h.uc.Get(c.Request().Context(), actor, reportID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReportView(report), "")
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress resolved rejected"`
}

// UpdateStatus applies a lifecycle transition to a report.
func (h *ReportHandler) UpdateStatus(c echo.Context) error {
	actor := deliverycontext.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentification requise")
	}

	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Identifiant de signalement invalide")
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Statut invalide")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	updated, err := h.uc.UpdateStatus(c.Request().Context(), actor, &usecase.UpdateReportStatusInput{
		ReportID: reportID,
		Status:   entity.ReportStatus(req.Status),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReportView(updated), "Statut mis à jour")
}

type addCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// AddComment attaches a comment to a report.
func (h *ReportHandler) AddComment(c echo.Context) error {
	actor := deliverycontext.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentification requise")
	}

	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Identifiant de signalement invalide")
	}

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Commentaire invalide")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	comment, err := h.uc.AddComment(c.Request().Context(), actor, &usecase.AddCommentInput{
		ReportID: reportID,
		Content:  req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCommentView(comment), "Commentaire ajouté")
}

// ListComments returns the comments of a report, oldest first.
func (h *ReportHandler) ListComments(c echo.Context) error {
	actor := deliverycontext.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentification requise")
	}

	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Identifiant de signalement invalide")
	}

	comments, err := h.uc.ListComments(c.Request().Context(), actor, reportID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCommentViews(comments), "")
}
