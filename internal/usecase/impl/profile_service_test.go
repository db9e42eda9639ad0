package impl

import (
	"context"
	"strings"
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

type profileServiceFixtures struct {
	userRepo *mockRepo.MockUserRepository
	authRepo *mockRepo.MockAuthRepository
	service  usecase.ProfileUsecase
}

func newProfileServiceFixtures(t *testing.T) *profileServiceFixtures {
	t.Helper()

	f := &profileServiceFixtures{
		userRepo: new(mockRepo.MockUserRepository),
		authRepo: new(mockRepo.MockAuthRepository),
	}

	txManager := &mockRepo.PassthroughTransactionManager{
		Factory: &mockRepo.StubRepositoryFactory{
			Users: f.userRepo,
			Auths: f.authRepo,
		},
	}

	f.service = NewProfileService(ProfileServiceParams{
		TxManager: txManager,
		UserRepo:  f.userRepo,
		AuthRepo:  f.authRepo,
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	})

	return f
}

func TestProfileServiceEnsureProfile(t *testing.T) {
	userID := uuid.New()
	identity := &entity.Identity{ID: userID, Email: "citoyen@example.cd"}

	t.Run("existing profile is returned and cached", func(t *testing.T) {
		f := newProfileServiceFixtures(t)
		profile := &entity.User{ID: userID, Email: identity.Email, Role: entity.RoleCitizen}
		f.userRepo.On("FindByID", mock.Anything, userID).Return(profile, nil).Once()

		first, err := f.service.EnsureProfile(context.Background(), identity)
		require.NoError(t, err)
		second, err := f.service.EnsureProfile(context.Background(), identity)
		require.NoError(t, err)

		assert.Equal(t, profile, first)
		assert.Equal(t, profile, second)
		// The second call is a cache hit, the repository sees one lookup.
		f.userRepo.AssertNumberOfCalls(t, "FindByID", 1)
	})

	t.Run("missing profile row is healed with a default citizen profile", func(t *testing.T) {
		f := newProfileServiceFixtures(t)
		f.userRepo.On("FindByID", mock.Anything, userID).
			Return(nil, repository.ErrUserNotFound)
		f.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(user *entity.User) bool {
			return user.ID == userID &&
				user.Email == identity.Email &&
				user.Role == entity.RoleCitizen &&
				user.FullName == "citoyen"
		})).Return(nil)

		user, err := f.service.EnsureProfile(context.Background(), identity)

		require.NoError(t, err)
		// The healed row is keyed by the identity id, never a fresh key.
		assert.Equal(t, userID, user.ID)
		f.userRepo.AssertExpectations(t)
	})

	t.Run("signup metadata flows into the healed profile", func(t *testing.T) {
		f := newProfileServiceFixtures(t)
		communeID := uuid.New()
		withMetadata := &entity.Identity{
			ID:    userID,
			Email: identity.Email,
			Metadata: &entity.SignupMetadata{
				FullName:  "Jean Mbeki",
				Phone:     "+243810000000",
				CommuneID: &communeID,
			},
		}
		f.userRepo.On("FindByID", mock.Anything, userID).
			Return(nil, repository.ErrUserNotFound)
		f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)

		user, err := f.service.EnsureProfile(context.Background(), withMetadata)

		require.NoError(t, err)
		assert.Equal(t, "Jean Mbeki", user.FullName)
		assert.Equal(t, "+243810000000", user.Phone)
		require.NotNil(t, user.CommuneID)
		assert.Equal(t, communeID, *user.CommuneID)
	})

	t.Run("email collision during healing retries with a fallback", func(t *testing.T) {
		f := newProfileServiceFixtures(t)
		f.userRepo.On("FindByID", mock.Anything, userID).
			Return(nil, repository.ErrUserNotFound)
		f.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(user *entity.User) bool {
			return user.Email == identity.Email
		})).Return(domainerrors.ErrEmailAlreadyUsed).Once()
		f.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(user *entity.User) bool {
			return user.Email != identity.Email &&
				strings.Contains(user.Email, "+") &&
				strings.HasSuffix(user.Email, "@example.cd")
		})).Return(nil).Once()

		user, err := f.service.EnsureProfile(context.Background(), identity)

		require.NoError(t, err)
		assert.NotEqual(t, identity.Email, user.Email)
		f.userRepo.AssertExpectations(t)
	})

	t.Run("slow profile store reads as not loaded", func(t *testing.T) {
		f := newProfileServiceFixtures(t)
		f.userRepo.On("FindByID", mock.Anything, userID).
			Return(nil, context.DeadlineExceeded)

		_, err := f.service.EnsureProfile(context.Background(), identity)

		assert.ErrorIs(t, err, domainerrors.ErrProfileNotLoaded)
		f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("nil identity", func(t *testing.T) {
		f := newProfileServiceFixtures(t)

		_, err := f.service.EnsureProfile(context.Background(), nil)

		assert.ErrorIs(t, err, domainerrors.ErrProfileNotLoaded)
	})
}

func TestProfileServiceInvalidate(t *testing.T) {
	f := newProfileServiceFixtures(t)
	userID := uuid.New()
	identity := &entity.Identity{ID: userID, Email: "citoyen@example.cd"}
	f.userRepo.On("FindByID", mock.Anything, userID).
		Return(&entity.User{ID: userID, Role: entity.RoleCitizen}, nil)

	_, err := f.service.EnsureProfile(context.Background(), identity)
	require.NoError(t, err)

	f.service.Invalidate(userID)

	_, err = f.service.EnsureProfile(context.Background(), identity)
	require.NoError(t, err)

	f.userRepo.AssertNumberOfCalls(t, "FindByID", 2)
}

func TestProfileServiceUpdateProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("applies contact-field changes", func(t *testing.T) {
		f := newProfileServiceFixtures(t)
		communeID := uuid.New()
		f.userRepo.On("FindByID", mock.Anything, userID).
			Return(&entity.User{ID: userID, FullName: "Ancien Nom", Phone: "+243000"}, nil)
		f.userRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)

		updated, err := f.service.UpdateProfile(context.Background(), userID, &usecase.UpdateProfileInput{
			FullName:  "Nouveau Nom",
			Phone:     "+243811111111",
			CommuneID: &communeID,
		})

		require.NoError(t, err)
		assert.Equal(t, "Nouveau Nom", updated.FullName)
		assert.Equal(t, "+243811111111", updated.Phone)
		require.NotNil(t, updated.CommuneID)
		assert.Equal(t, communeID, *updated.CommuneID)
	})

	t.Run("empty name keeps the old one, empty phone clears it", func(t *testing.T) {
		f := newProfileServiceFixtures(t)
		f.userRepo.On("FindByID", mock.Anything, userID).
			Return(&entity.User{ID: userID, FullName: "Ancien Nom", Phone: "+243000"}, nil)
		f.userRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)

		updated, err := f.service.UpdateProfile(context.Background(), userID, &usecase.UpdateProfileInput{})

		require.NoError(t, err)
		assert.Equal(t, "Ancien Nom", updated.FullName)
		assert.Empty(t, updated.Phone)
	})

	t.Run("unknown profile", func(t *testing.T) {
		f := newProfileServiceFixtures(t)
		f.userRepo.On("FindByID", mock.Anything, userID).
			Return(nil, repository.ErrUserNotFound)

		_, err := f.service.UpdateProfile(context.Background(), userID, &usecase.UpdateProfileInput{})

		assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	})
}

func TestProfileServiceRepairOrphans(t *testing.T) {
	f := newProfileServiceFixtures(t)
	brokenID := uuid.New()
	healableID := uuid.New()
	f.authRepo.On("ListOrphaned", mock.Anything).Return([]*entity.Authentication{
		{UserID: brokenID, ProviderUserID: "casse@example.cd"},
		{UserID: healableID, ProviderUserID: "reparable@example.cd"},
	}, nil)
	f.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(user *entity.User) bool {
		return user.ID == brokenID
	})).Return(assert.AnError)
	f.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(user *entity.User) bool {
		return user.ID == healableID
	})).Return(nil)

	repaired, err := f.service.RepairOrphans(context.Background())

	// One failure does not abort the pass.
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)
}
