package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"alerte/config"
	"alerte/internal/domain/constants"
	"alerte/internal/domain/entity"
	"alerte/internal/domain/repository"
	"alerte/internal/domain/service"
	mockRepo "alerte/internal/mocks/repository"
	mockService "alerte/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type feedHandlerFixtures struct {
	reportRepo  *mockRepo.MockReportRepository
	communeRepo *mockRepo.MockCommuneRepository
	notifier    *mockService.MockNotifier
	handler     *FeedHandler
}

func newFeedHandlerFixtures(t *testing.T) *feedHandlerFixtures {
	t.Helper()

	f := &feedHandlerFixtures{
		reportRepo:  new(mockRepo.MockReportRepository),
		communeRepo: new(mockRepo.MockCommuneRepository),
		notifier:    new(mockService.MockNotifier),
	}

	cfg := &config.Config{
		PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal},
	}
	cfg.Env.Env = constants.EnvDevelop

	f.handler = NewFeedHandler(FeedHandlerParams{
		Config:      cfg,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Notifier:    f.notifier,
		ReportRepo:  f.reportRepo,
		CommuneRepo: f.communeRepo,
	})

	return f
}

func pushRequest(t *testing.T, event *service.ReportEvent) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var pushMsg PubSubMessage
	pushMsg.Message.Data = base64.StdEncoding.EncodeToString(payload)
	pushMsg.Message.MessageID = "m-1"
	body, err := json.Marshal(pushMsg)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestFeedHandlerHandlePush(t *testing.T) {
	reportID := uuid.New()
	communeID := uuid.New()
	report := &entity.Report{
		ID:          reportID,
		Code:        "R-ABC123",
		CommuneID:   communeID,
		Description: "Tas d'ordures non ramassé",
		Status:      entity.StatusPending,
	}
	event := &service.ReportEvent{
		EventType: service.ReportEventInsert,
		ReportID:  reportID.String(),
		CommuneID: communeID.String(),
	}

	t.Run("fans out to the commune and admin topics", func(t *testing.T) {
		f := newFeedHandlerFixtures(t)
		f.reportRepo.On("FindByID", mock.Anything, reportID).Return(report, nil)
		f.communeRepo.On("FindByID", mock.Anything, communeID).
			Return(&entity.Commune{ID: communeID, Name: "Ngaliema"}, nil)
		f.notifier.On("SendToTopic", mock.Anything, constants.CommuneTopicPrefix+communeID.String(),
			"Nouveau signalement à Ngaliema", report.Description, mock.Anything).Return(nil)
		f.notifier.On("SendToTopic", mock.Anything, constants.AdminTopic,
			"Nouveau signalement à Ngaliema", report.Description, mock.Anything).Return(nil)

		c, rec := pushRequest(t, event)
		err := f.handler.HandlePush(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		f.notifier.AssertExpectations(t)
	})

	t.Run("vanished report is acknowledged, not retried", func(t *testing.T) {
		f := newFeedHandlerFixtures(t)
		f.reportRepo.On("FindByID", mock.Anything, reportID).
			Return(nil, repository.ErrReportNotFound)

		c, rec := pushRequest(t, event)
		err := f.handler.HandlePush(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		f.notifier.AssertNotCalled(t, "SendToTopic", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("database outage asks for a redelivery", func(t *testing.T) {
		f := newFeedHandlerFixtures(t)
		f.reportRepo.On("FindByID", mock.Anything, reportID).
			Return(nil, assert.AnError)

		c, rec := pushRequest(t, event)
		err := f.handler.HandlePush(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("notifier failure asks for a redelivery", func(t *testing.T) {
		f := newFeedHandlerFixtures(t)
		f.reportRepo.On("FindByID", mock.Anything, reportID).Return(report, nil)
		f.communeRepo.On("FindByID", mock.Anything, communeID).
			Return(&entity.Commune{ID: communeID, Name: "Ngaliema"}, nil)
		f.notifier.On("SendToTopic", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(assert.AnError)

		c, rec := pushRequest(t, event)
		err := f.handler.HandlePush(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("garbage payload is rejected", func(t *testing.T) {
		f := newFeedHandlerFixtures(t)

		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/push",
			strings.NewReader(`{"message":{"data":"not-base64!!!"}}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		err := f.handler.HandlePush(e.NewContext(req, rec))

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestNotificationContent(t *testing.T) {
	report := &entity.Report{
		Code:        "R-ABC123",
		Description: "Inondation sur l'avenue principale",
		Status:      entity.StatusInProgress,
	}

	t.Run("insert event announces the place", func(t *testing.T) {
		title, body := notificationContent(service.ReportEventInsert, report, "Limete")

		assert.Equal(t, "Nouveau signalement à Limete", title)
		assert.Equal(t, report.Description, body)
	})

	t.Run("unknown commune falls back to a generic place", func(t *testing.T) {
		title, _ := notificationContent(service.ReportEventInsert, report, "")

		assert.Equal(t, "Nouveau signalement à votre commune", title)
	})

	t.Run("long description is truncated on a rune boundary", func(t *testing.T) {
		long := &entity.Report{Description: strings.Repeat("é", 200)}

		_, body := notificationContent(service.ReportEventInsert, long, "Limete")

		assert.Equal(t, strings.Repeat("é", 117)+"...", body)
	})

	t.Run("update event names the new status", func(t *testing.T) {
		title, body := notificationContent(service.ReportEventUpdate, report, "Limete")

		assert.Equal(t, "Signalement R-ABC123 mis à jour", title)
		assert.Contains(t, body, "en cours")
	})
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "en attente", statusLabel(entity.StatusPending))
	assert.Equal(t, "en cours", statusLabel(entity.StatusInProgress))
	assert.Equal(t, "résolu", statusLabel(entity.StatusResolved))
	assert.Equal(t, "rejeté", statusLabel(entity.StatusRejected))
}

func TestExtractRequestID(t *testing.T) {
	h := &FeedHandler{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	t.Run("attribute wins", func(t *testing.T) {
		var pushMsg PubSubMessage
		pushMsg.Message.Attributes = map[string]string{"request_id": "from-attr"}

		got := h.extractRequestID(context.Background(), &pushMsg, &service.ReportEvent{RequestID: "from-event"})

		assert.Equal(t, "from-attr", got)
	})

	t.Run("event field is the fallback", func(t *testing.T) {
		got := h.extractRequestID(context.Background(), &PubSubMessage{}, &service.ReportEvent{RequestID: "from-event"})

		assert.Equal(t, "from-event", got)
	})

	t.Run("a fresh id is generated last", func(t *testing.T) {
		got := h.extractRequestID(context.Background(), &PubSubMessage{}, &service.ReportEvent{})

		_, err := uuid.Parse(got)
		assert.NoError(t, err)
	})
}
