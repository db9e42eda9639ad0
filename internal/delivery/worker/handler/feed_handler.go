package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"alerte/config"
	deliverycontext "alerte/internal/delivery/context"
	"alerte/internal/domain/constants"
	"alerte/internal/domain/entity"
	"alerte/internal/domain/repository"
	"alerte/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func newRetryableError(err error) error {
	return &retryableError{err: err}
}

func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// FeedHandler fans report change events out to the notification topics.
// Devices subscribe to their commune topic (and admins to the admin topic)
// client-side; the server never tracks individual device tokens.
type FeedHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
	notifier       service.Notifier
	reportRepo     repository.ReportRepository
	communeRepo    repository.CommuneRepository
}

// FeedHandlerParams holds dependencies for the FeedHandler
type FeedHandlerParams struct {
	fx.In

	Config      *config.Config
	Logger      *slog.Logger
	Notifier    service.Notifier `optional:"true"`
	ReportRepo  repository.ReportRepository
	CommuneRepo repository.CommuneRepository
}

// NewFeedHandler creates the Pub/Sub push handler for the report feed.
func NewFeedHandler(params FeedHandlerParams) *FeedHandler {
	// Google push requests carry a signed OIDC token; verify it outside
	// develop. The local publisher sends unsigned requests.
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &FeedHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
		notifier:       params.Notifier,
		reportRepo:     params.ReportRepo,
		communeRepo:    params.CommuneRepo,
	}
}

// HandlePush handles incoming Pub/Sub push messages
func (h *FeedHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.ReportEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse report event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing report event",
		slog.String("report_id", event.ReportID),
		slog.String("event_type", event.EventType),
		slog.String("commune_id", event.CommuneID),
	)

	if err := h.processEvent(ctx, &event); err != nil {
		reqLogger.Error("[Worker] Failed to process report event",
			slog.String("report_id", event.ReportID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		// 503 triggers a Pub/Sub redelivery; 200 acknowledges events that
		// will never succeed so they do not loop forever.
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Report event processed",
		slog.String("report_id", event.ReportID),
	)

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *FeedHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.ReportEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// processEvent re-verifies the event against the database and notifies the
// commune and admin topics. The event payload is a hint: the notification
// text always comes from the row as it is now, not as it was published.
func (h *FeedHandler) processEvent(ctx context.Context, event *service.ReportEvent) error {
	reportID, err := uuid.Parse(event.ReportID)
	if err != nil {
		return errors.WithStack(err)
	}

	report, err := h.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			// Deleted between publish and delivery: nothing to notify.
			h.logger.Info("[Worker] Report no longer exists, dropping event",
				slog.String("report_id", event.ReportID),
			)

			return nil
		}

		return newRetryableError(errors.WithStack(err))
	}

	communeName := h.communeName(ctx, report.CommuneID)

	if h.notifier == nil {
		h.logger.Warn("[Worker] No notifier configured, skipping fan-out",
			slog.String("report_id", event.ReportID),
		)

		return nil
	}

	title, body := notificationContent(event.EventType, report, communeName)
	data := map[string]string{
		"report_id":   report.ID.String(),
		"report_code": report.Code,
		"commune_id":  report.CommuneID.String(),
		"status":      string(report.Status),
		"event_type":  event.EventType,
	}

	// One send per topic. The commune topic reaches the bourgmestre's and
	// the residents' devices; the admin topic reaches the city dashboard.
	topics := []string{
		constants.CommuneTopicPrefix + report.CommuneID.String(),
		constants.AdminTopic,
	}

	var sendErr error
	for _, topic := range topics {
		if err := h.notifier.SendToTopic(ctx, topic, title, body, data); err != nil {
			h.logger.Error("[Worker] Failed to notify topic",
				slog.String("topic", topic),
				slog.Any("error", err),
			)
			sendErr = err
		}
	}
	if sendErr != nil {
		return newRetryableError(sendErr)
	}

	return nil
}

func (h *FeedHandler) communeName(ctx context.Context, communeID uuid.UUID) string {
	commune, err := h.communeRepo.FindByID(ctx, communeID)
	if err != nil {
		h.logger.Warn("[Worker] Failed to resolve commune name",
			slog.String("commune_id", communeID.String()),
			slog.Any("error", err),
		)

		return ""
	}

	return commune.Name
}

// notificationContent renders the French notification text for an event.
func notificationContent(eventType string, report *entity.Report, communeName string) (title, body string) {
	place := communeName
	if place == "" {
		place = "votre commune"
	}

	switch eventType {
	case service.ReportEventUpdate:
		title = fmt.Sprintf("Signalement %s mis à jour", report.Code)
		body = fmt.Sprintf("Le signalement à %s est maintenant « %s »", place, statusLabel(report.Status))
	default:
		title = fmt.Sprintf("Nouveau signalement à %s", place)
		body = report.Description
		if runes := []rune(body); len(runes) > 120 {
			body = string(runes[:117]) + "..."
		}
	}

	return title, body
}

func statusLabel(status entity.ReportStatus) string {
	switch status {
	case entity.StatusPending:
		return "en attente"
	case entity.StatusInProgress:
		return "en cours"
	case entity.StatusResolved:
		return "résolu"
	case entity.StatusRejected:
		return "rejeté"
	default:
		return string(status)
	}
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the URL of this push endpoint.
	scheme := "https"
	if req.TLS == nil {
		scheme = "http" // For local development
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	ctx := req.Context()
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
