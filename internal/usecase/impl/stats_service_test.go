package impl

import (
	"context"
	"testing"

	"alerte/internal/domain/entity"
	domainerrors "alerte/internal/domain/errors"
	"alerte/internal/domain/repository"
	mockRepo "alerte/internal/mocks/repository"
	"alerte/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type statsServiceFixtures struct {
	reportRepo      *mockRepo.MockReportRepository
	communeRepo     *mockRepo.MockCommuneRepository
	problemTypeRepo *mockRepo.MockProblemTypeRepository
	service         usecase.StatsUsecase
}

func newStatsServiceFixtures(t *testing.T) *statsServiceFixtures {
	t.Helper()

	f := &statsServiceFixtures{
		reportRepo:      new(mockRepo.MockReportRepository),
		communeRepo:     new(mockRepo.MockCommuneRepository),
		problemTypeRepo: new(mockRepo.MockProblemTypeRepository),
	}

	f.service = NewStatsService(StatsServiceParams{
		Config:          newTestConfig(),
		ReportRepo:      f.reportRepo,
		CommuneRepo:     f.communeRepo,
		ProblemTypeRepo: f.problemTypeRepo,
		Logger:          newDiscardLogger(),
	})

	return f
}

func TestStatsServiceOverview(t *testing.T) {
	communeID := uuid.New()
	problemTypeID := uuid.New()

	referenceData := func(f *statsServiceFixtures) {
		f.communeRepo.On("List", mock.Anything).
			Return([]*entity.Commune{{ID: communeID, Name: "Gombe"}}, nil)
		f.problemTypeRepo.On("List", mock.Anything).
			Return([]*entity.ProblemType{{ID: problemTypeID, Name: "Déchets"}}, nil)
	}

	t.Run("computes over the actor's visible reports", func(t *testing.T) {
		f := newStatsServiceFixtures(t)
		actor := bourgmestreOf(communeID)
		referenceData(f)
		f.reportRepo.On("List", mock.Anything, mock.MatchedBy(func(filter repository.ReportFilter) bool {
			// The overview is scoped exactly like the list endpoint.
			return filter.Scope.Kind == entity.ScopeCommune && filter.Scope.CommuneID == communeID
		})).Return([]*entity.Report{
			{ID: uuid.New(), CommuneID: communeID, ProblemTypeID: problemTypeID, Status: entity.StatusPending, Priority: entity.PriorityHigh},
			{ID: uuid.New(), CommuneID: communeID, ProblemTypeID: problemTypeID, Status: entity.StatusResolved, Priority: entity.PriorityLow},
		}, nil)

		overview, err := f.service.Overview(context.Background(), actor)

		require.NoError(t, err)
		assert.Equal(t, 2, overview.Total)
		assert.Equal(t, 1, overview.ByStatus[entity.StatusPending])
		assert.Equal(t, 1, overview.ByStatus[entity.StatusResolved])
		require.Len(t, overview.TopCommunes, 1)
		assert.Equal(t, "Gombe", overview.TopCommunes[0].Name)
		require.Len(t, overview.TopProblemTypes, 1)
		assert.Equal(t, "Déchets", overview.TopProblemTypes[0].Name)
	})

	t.Run("citizen overview covers only their own reports", func(t *testing.T) {
		f := newStatsServiceFixtures(t)
		actor := citizen()
		referenceData(f)
		f.reportRepo.On("List", mock.Anything, mock.MatchedBy(func(filter repository.ReportFilter) bool {
			return filter.Scope.Kind == entity.ScopeOwn && filter.Scope.UserID == actor.ID
		})).Return([]*entity.Report{}, nil)

		overview, err := f.service.Overview(context.Background(), actor)

		require.NoError(t, err)
		assert.Zero(t, overview.Total)
		f.reportRepo.AssertExpectations(t)
	})

	t.Run("bourgmestre without commune is forbidden", func(t *testing.T) {
		f := newStatsServiceFixtures(t)

		_, err := f.service.Overview(context.Background(), &entity.User{ID: uuid.New(), Role: entity.RoleBourgmestre})

		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
		f.reportRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}
