package impl

import (
	"context"
	"strings"
	"testing"

	"alerte/internal/domain/entity"
	domainerrors "alerte/internal/domain/errors"
	"alerte/internal/domain/repository"
	"alerte/internal/domain/service"
	mockRepo "alerte/internal/mocks/repository"
	mockService "alerte/internal/mocks/service"
	"alerte/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reportServiceFixtures struct {
	reportRepo      *mockRepo.MockReportRepository
	reportImageRepo *mockRepo.MockReportImageRepository
	commentRepo     *mockRepo.MockCommentRepository
	communeRepo     *mockRepo.MockCommuneRepository
	problemTypeRepo *mockRepo.MockProblemTypeRepository
	imageStore      *mockService.MockImageStore
	publisher       *mockService.MockEventPublisher
	service         usecase.ReportUsecase
}

func newReportServiceFixtures(t *testing.T) *reportServiceFixtures {
	t.Helper()

	f := &reportServiceFixtures{
		reportRepo:      new(mockRepo.MockReportRepository),
		reportImageRepo: new(mockRepo.MockReportImageRepository),
		commentRepo:     new(mockRepo.MockCommentRepository),
		communeRepo:     new(mockRepo.MockCommuneRepository),
		problemTypeRepo: new(mockRepo.MockProblemTypeRepository),
		imageStore:      new(mockService.MockImageStore),
		publisher:       new(mockService.MockEventPublisher),
	}

	txManager := &mockRepo.PassthroughTransactionManager{
		Factory: &mockRepo.StubRepositoryFactory{
			Reports:      f.reportRepo,
			ReportImages: f.reportImageRepo,
			Communes:     f.communeRepo,
			ProblemTypes: f.problemTypeRepo,
			Comments:     f.commentRepo,
		},
	}

	f.service = NewReportService(ReportServiceParams{
		TxManager:       txManager,
		ReportRepo:      f.reportRepo,
		ReportImageRepo: f.reportImageRepo,
		CommentRepo:     f.commentRepo,
		ImageStore:      f.imageStore,
		Publisher:       f.publisher,
		Logger:          newDiscardLogger(),
	})

	return f
}

func citizen() *entity.User {
	return &entity.User{ID: uuid.New(), Email: "citoyen@example.cd", Role: entity.RoleCitizen}
}

func bourgmestreOf(communeID uuid.UUID) *entity.User {
	return &entity.User{ID: uuid.New(), Role: entity.RoleBourgmestre, CommuneID: &communeID}
}

func admin() *entity.User {
	return &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}
}

func TestReportServiceSubmit(t *testing.T) {
	communeID := uuid.New()
	problemTypeID := uuid.New()

	validInput := func() *usecase.SubmitReportInput {
		return &usecase.SubmitReportInput{
			ProblemTypeID: problemTypeID,
			CommuneID:     communeID,
			Description:   "Lampadaire cassé devant le marché",
			Address:       "Avenue de la Paix",
		}
	}

	expectValidReferences := func(f *reportServiceFixtures) {
		f.communeRepo.On("FindByID", mock.Anything, communeID).
			Return(&entity.Commune{ID: communeID, Name: "Gombe"}, nil)
		f.problemTypeRepo.On("FindByID", mock.Anything, problemTypeID).
			Return(&entity.ProblemType{ID: problemTypeID, Name: "Éclairage public"}, nil)
	}

	t.Run("creates a pending report for the actor", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		actor := citizen()
		expectValidReferences(f)
		f.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Report")).Return(nil)
		f.publisher.On("PublishReportEvent", mock.Anything, mock.MatchedBy(func(event *service.ReportEvent) bool {
			return event.EventType == service.ReportEventInsert &&
				event.CommuneID == communeID.String() &&
				event.UserID == actor.ID.String()
		})).Return(nil)

		output, err := f.service.Submit(context.Background(), actor, validInput())

		require.NoError(t, err)
		assert.Equal(t, entity.StatusPending, output.Report.Status)
		assert.Equal(t, entity.PriorityMedium, output.Report.Priority, "empty priority defaults to medium")
		require.NotNil(t, output.Report.UserID)
		assert.Equal(t, actor.ID, *output.Report.UserID)
		assert.True(t, strings.HasPrefix(output.Report.Code, "R-"))
		f.reportRepo.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("anonymous submission severs the user link", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		expectValidReferences(f)
		f.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Report")).Return(nil)
		f.publisher.On("PublishReportEvent", mock.Anything, mock.MatchedBy(func(event *service.ReportEvent) bool {
			return event.UserID == ""
		})).Return(nil)

		input := validInput()
		input.IsAnonymous = true

		output, err := f.service.Submit(context.Background(), citizen(), input)

		require.NoError(t, err)
		assert.Nil(t, output.Report.UserID)
		assert.True(t, output.Report.IsAnonymous)
		f.publisher.AssertExpectations(t)
	})

	t.Run("unauthenticated submission carries no user link", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		expectValidReferences(f)
		f.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Report")).Return(nil)
		f.publisher.On("PublishReportEvent", mock.Anything, mock.Anything).Return(nil)

		output, err := f.service.Submit(context.Background(), nil, validInput())

		require.NoError(t, err)
		assert.Nil(t, output.Report.UserID)
	})

	t.Run("rejects non-selectable priority", func(t *testing.T) {
		f := newReportServiceFixtures(t)

		input := validInput()
		input.Priority = entity.PriorityCritical

		_, err := f.service.Submit(context.Background(), citizen(), input)

		assert.ErrorIs(t, err, domainerrors.ErrInvalidPriority)
		f.reportRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown commune", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		f.communeRepo.On("FindByID", mock.Anything, communeID).
			Return(nil, repository.ErrCommuneNotFound)

		_, err := f.service.Submit(context.Background(), citizen(), validInput())

		assert.ErrorIs(t, err, domainerrors.ErrCommuneNotFound)
		f.reportRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown problem type", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		f.communeRepo.On("FindByID", mock.Anything, communeID).
			Return(&entity.Commune{ID: communeID}, nil)
		f.problemTypeRepo.On("FindByID", mock.Anything, problemTypeID).
			Return(nil, repository.ErrProblemTypeNotFound)

		_, err := f.service.Submit(context.Background(), citizen(), validInput())

		assert.ErrorIs(t, err, domainerrors.ErrProblemTypeNotFound)
	})

	t.Run("broken image never costs the report", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		expectValidReferences(f)
		f.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Report")).Return(nil)
		f.publisher.On("PublishReportEvent", mock.Anything, mock.Anything).Return(nil)
		f.imageStore.On("Save", mock.Anything, mock.Anything, "image/jpeg", []byte("broken")).
			Return("", errors.New("bucket unavailable"))
		f.imageStore.On("Save", mock.Anything, mock.Anything, "image/jpeg", []byte("intact")).
			Return("https://cdn.example.cd/reports/a.jpg", nil)
		f.reportImageRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.ReportImage")).Return(nil)

		input := validInput()
		input.Images = []usecase.ImageUpload{
			{FileName: "broken.jpg", ContentType: "image/jpeg", Data: []byte("broken")},
			{FileName: "intact.jpg", ContentType: "image/jpeg", Data: []byte("intact")},
		}

		output, err := f.service.Submit(context.Background(), citizen(), input)

		require.NoError(t, err)
		require.Len(t, output.ImageResults, 2)
		assert.True(t, output.ImageResults[0].Failed)
		assert.Empty(t, output.ImageResults[0].URL)
		assert.False(t, output.ImageResults[1].Failed)
		assert.Equal(t, "https://cdn.example.cd/reports/a.jpg", output.ImageResults[1].URL)
		require.Len(t, output.Report.Images, 1)
	})

	t.Run("feed failure is swallowed", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		expectValidReferences(f)
		f.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Report")).Return(nil)
		f.publisher.On("PublishReportEvent", mock.Anything, mock.Anything).
			Return(errors.New("feed down"))

		_, err := f.service.Submit(context.Background(), citizen(), validInput())

		assert.NoError(t, err)
	})
}

func TestReportServiceAttachImages(t *testing.T) {
	reportID := uuid.New()

	t.Run("attaches to a visible report", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		actor := citizen()
		f.reportRepo.On("FindByID", mock.Anything, reportID).
			Return(&entity.Report{ID: reportID, UserID: &actor.ID}, nil)
		f.imageStore.On("Save", mock.Anything, mock.Anything, "image/png", mock.Anything).
			Return("https://cdn.example.cd/reports/b.png", nil)
		f.reportImageRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.ReportImage")).Return(nil)

		results, err := f.service.AttachImages(context.Background(), actor, reportID, []usecase.ImageUpload{
			{FileName: "apres.png", ContentType: "image/png", Data: []byte("png")},
		})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.False(t, results[0].Failed)
	})

	t.Run("invisible report reads as not found", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		otherID := uuid.New()
		f.reportRepo.On("FindByID", mock.Anything, reportID).
			Return(&entity.Report{ID: reportID, UserID: &otherID}, nil)

		_, err := f.service.AttachImages(context.Background(), citizen(), reportID, nil)

		assert.ErrorIs(t, err, domainerrors.ErrReportNotFound)
		f.imageStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReportServiceList(t *testing.T) {
	t.Run("citizen lists with own scope", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		actor := citizen()
		f.reportRepo.On("List", mock.Anything, mock.MatchedBy(func(filter repository.ReportFilter) bool {
			return filter.Scope.Kind == entity.ScopeOwn && filter.Scope.UserID == actor.ID
		})).Return([]*entity.Report{}, nil)

		_, err := f.service.List(context.Background(), actor, &usecase.ListReportsInput{})

		require.NoError(t, err)
		f.reportRepo.AssertExpectations(t)
	})

	t.Run("bourgmestre without commune is forbidden", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		actor := &entity.User{ID: uuid.New(), Role: entity.RoleBourgmestre}

		_, err := f.service.List(context.Background(), actor, &usecase.ListReportsInput{})

		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("rejects unknown status filter", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		badStatus := entity.ReportStatus("archived")

		_, err := f.service.List(context.Background(), admin(), &usecase.ListReportsInput{Status: &badStatus})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus)
	})
}

func TestReportServiceGet(t *testing.T) {
	reportID := uuid.New()

	t.Run("owner reads own report", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		actor := citizen()
		f.reportRepo.On("FindByID", mock.Anything, reportID).
			Return(&entity.Report{ID: reportID, UserID: &actor.ID}, nil)

		report, err := f.service.Get(context.Background(), actor, reportID)

		require.NoError(t, err)
		assert.Equal(t, reportID, report.ID)
	})

	t.Run("out-of-scope report reads as not found", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		otherID := uuid.New()
		f.reportRepo.On("FindByID", mock.Anything, reportID).
			Return(&entity.Report{ID: reportID, UserID: &otherID}, nil)

		_, err := f.service.Get(context.Background(), citizen(), reportID)

		// Never forbidden: the response must not confirm the report exists.
		assert.ErrorIs(t, err, domainerrors.ErrReportNotFound)
		assert.NotErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("missing report", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		f.reportRepo.On("FindByID", mock.Anything, reportID).
			Return(nil, repository.ErrReportNotFound)

		_, err := f.service.Get(context.Background(), admin(), reportID)

		assert.ErrorIs(t, err, domainerrors.ErrReportNotFound)
	})
}

func TestReportServiceUpdateStatus(t *testing.T) {
	reportID := uuid.New()
	communeID := uuid.New()

	t.Run("citizen cannot transition", func(t *testing.T) {
		f := newReportServiceFixtures(t)

		_, err := f.service.UpdateStatus(context.Background(), citizen(), &usecase.UpdateReportStatusInput{
			ReportID: reportID,
			Status:   entity.StatusInProgress,
		})

		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
		f.reportRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bourgmestre cannot touch another commune", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		f.reportRepo.On("FindByID", mock.Anything, reportID).
			Return(&entity.Report{ID: reportID, CommuneID: uuid.New(), Status: entity.StatusPending}, nil)

		_, err := f.service.UpdateStatus(context.Background(), bourgmestreOf(communeID), &usecase.UpdateReportStatusInput{
			ReportID: reportID,
			Status:   entity.StatusInProgress,
		})

		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("rejects lifecycle shortcut", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		f.reportRepo.On("FindByID", mock.Anything, reportID).
			Return(&entity.Report{ID: reportID, CommuneID: communeID, Status: entity.StatusPending}, nil)

		_, err := f.service.UpdateStatus(context.Background(), admin(), &usecase.UpdateReportStatusInput{
			ReportID: reportID,
			Status:   entity.StatusResolved,
		})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
	})

	t.Run("terminal state stays frozen", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		f.reportRepo.On("FindByID", mock.Anything, reportID).
			Return(&entity.Report{ID: reportID, CommuneID: communeID, Status: entity.StatusResolved}, nil)

		_, err := f.service.UpdateStatus(context.Background(), admin(), &usecase.UpdateReportStatusInput{
			ReportID: reportID,
			Status:   entity.StatusInProgress,
		})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
	})

	t.Run("rejects unknown target status", func(t *testing.T) {
		f := newReportServiceFixtures(t)

		_, err := f.service.UpdateStatus(context.Background(), admin(), &usecase.UpdateReportStatusInput{
			ReportID: reportID,
			Status:   entity.ReportStatus("archived"),
		})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus)
	})

	t.Run("bourgmestre moves own commune report and a feed event goes out", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		updated := &entity.Report{ID: reportID, Code: "R-ABC", CommuneID: communeID, Status: entity.StatusInProgress}
		f.reportRepo.On("FindByID", mock.Anything, reportID).
			Return(&entity.Report{ID: reportID, CommuneID: communeID, Status: entity.StatusPending}, nil)
		f.reportRepo.On("UpdateStatus", mock.Anything, reportID, entity.StatusInProgress).
			Return(updated, nil)
		f.publisher.On("PublishReportEvent", mock.Anything, mock.MatchedBy(func(event *service.ReportEvent) bool {
			return event.EventType == service.ReportEventUpdate &&
				event.Status == string(entity.StatusInProgress)
		})).Return(nil)

		report, err := f.service.UpdateStatus(context.Background(), bourgmestreOf(communeID), &usecase.UpdateReportStatusInput{
			ReportID: reportID,
			Status:   entity.StatusInProgress,
		})

		require.NoError(t, err)
		assert.Equal(t, entity.StatusInProgress, report.Status)
		f.publisher.AssertExpectations(t)
	})
}

func TestReportServiceComments(t *testing.T) {
	reportID := uuid.New()

	t.Run("comment on a visible report", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		actor := citizen()
		f.reportRepo.On("FindByID", mock.Anything, reportID).
			Return(&entity.Report{ID: reportID, UserID: &actor.ID}, nil)
		f.commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Comment")).Return(nil)

		comment, err := f.service.AddComment(context.Background(), actor, &usecase.AddCommentInput{
			ReportID: reportID,
			Content:  "Toujours pas réparé",
		})

		require.NoError(t, err)
		assert.Equal(t, actor.ID, comment.UserID)
		assert.Equal(t, reportID, comment.ReportID)
	})

	t.Run("comment on an invisible report is not found", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		otherID := uuid.New()
		f.reportRepo.On("FindByID", mock.Anything, reportID).
			Return(&entity.Report{ID: reportID, UserID: &otherID}, nil)

		_, err := f.service.AddComment(context.Background(), citizen(), &usecase.AddCommentInput{
			ReportID: reportID,
			Content:  "x",
		})

		assert.ErrorIs(t, err, domainerrors.ErrReportNotFound)
		f.commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("list comments of a visible report", func(t *testing.T) {
		f := newReportServiceFixtures(t)
		actor := citizen()
		f.reportRepo.On("FindByID", mock.Anything, reportID).
			Return(&entity.Report{ID: reportID, UserID: &actor.ID}, nil)
		f.commentRepo.On("ListByReport", mock.Anything, reportID).
			Return([]*entity.Comment{{ID: uuid.New(), ReportID: reportID}}, nil)

		comments, err := f.service.ListComments(context.Background(), actor, reportID)

		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})
}
