package impl

import (
	"context"
	"testing"

	"alerte/internal/domain/entity"
	domainerrors "alerte/internal/domain/errors"
	"alerte/internal/domain/repository"
	"alerte/internal/domain/service"
	mockRepo "alerte/internal/mocks/repository"
	mockService "alerte/internal/mocks/service"
	mockUsecase "alerte/internal/mocks/usecase"
	"alerte/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func claimsFor(userID uuid.UUID) *service.SessionClaims {
	return &service.SessionClaims{UserID: userID, Email: "citoyen@example.cd", Role: entity.RoleCitizen}
}

type userServiceFixtures struct {
	userRepo         *mockRepo.MockUserRepository
	authRepo         *mockRepo.MockAuthRepository
	refreshTokenRepo *mockRepo.MockRefreshTokenRepository
	hasher           *mockService.MockPasswordHasher
	tokenService     *mockService.MockTokenService
	profileUsecase   *mockUsecase.MockProfileUsecase
	service          usecase.UserUsecase
}

func newUserServiceFixtures(t *testing.T) *userServiceFixtures {
	t.Helper()

	f := &userServiceFixtures{
		userRepo:         new(mockRepo.MockUserRepository),
		authRepo:         new(mockRepo.MockAuthRepository),
		refreshTokenRepo: new(mockRepo.MockRefreshTokenRepository),
		hasher:           new(mockService.MockPasswordHasher),
		tokenService:     new(mockService.MockTokenService),
		profileUsecase:   new(mockUsecase.MockProfileUsecase),
	}

	txManager := &mockRepo.PassthroughTransactionManager{
		Factory: &mockRepo.StubRepositoryFactory{
			Users:         f.userRepo,
			Auths:         f.authRepo,
			RefreshTokens: f.refreshTokenRepo,
		},
	}

	f.service = NewUserService(UserServiceParams{
		TxManager:        txManager,
		UserRepo:         f.userRepo,
		AuthRepo:         f.authRepo,
		RefreshTokenRepo: f.refreshTokenRepo,
		Hasher:           f.hasher,
		TokenService:     f.tokenService,
		ProfileUsecase:   f.profileUsecase,
		Config:           newTestConfig(),
		Logger:           newDiscardLogger(),
	})

	return f
}

func (f *userServiceFixtures) expectSession() {
	f.tokenService.On("GenerateTokens", mock.Anything, mock.Anything, mock.Anything).
		Return("access-token", "refresh-token", nil)
	f.tokenService.On("RefreshTokenDuration").Return(newTestConfig().Auth.RefreshTokenTTL)
	f.refreshTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.RefreshToken")).Return(nil)
}

func TestUserServiceRegister(t *testing.T) {
	input := &usecase.RegisterInput{
		Email:    "nouveau@example.cd",
		Password: "motdepasse",
		FullName: "Nouvel Utilisateur",
	}

	t.Run("creates credential and profile then opens a session", func(t *testing.T) {
		f := newUserServiceFixtures(t)
		f.hasher.On("Hash", input.Password).Return("hashed", nil)
		f.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, input.Email).
			Return(nil, repository.ErrAuthNotFound)
		f.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(user *entity.User) bool {
			return user.Email == input.Email && user.Role == entity.RoleCitizen
		})).Return(nil)
		f.authRepo.On("CreateAuthentication", mock.Anything, mock.MatchedBy(func(auth *entity.Authentication) bool {
			return auth.Provider == entity.ProviderTypeEmail && auth.PasswordHash == "hashed"
		})).Return(nil)
		f.expectSession()

		output, err := f.service.Register(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, "access-token", output.AccessToken)
		assert.Equal(t, "refresh-token", output.RefreshToken)
		assert.Equal(t, entity.RoleCitizen, output.User.Role)
		f.authRepo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newUserServiceFixtures(t)
		f.hasher.On("Hash", input.Password).Return("hashed", nil)
		f.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, input.Email).
			Return(&entity.Authentication{UserID: uuid.New()}, nil)

		_, err := f.service.Register(context.Background(), input)

		assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyUsed)
		f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("hash failure", func(t *testing.T) {
		f := newUserServiceFixtures(t)
		f.hasher.On("Hash", input.Password).Return("", assert.AnError)

		_, err := f.service.Register(context.Background(), input)

		assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
	})
}

func TestUserServiceLogin(t *testing.T) {
	userID := uuid.New()
	input := &usecase.LoginInput{Email: "citoyen@example.cd", Password: "motdepasse"}
	authRecord := &entity.Authentication{
		UserID:         userID,
		Provider:       entity.ProviderTypeEmail,
		ProviderUserID: input.Email,
		PasswordHash:   "stored-hash",
	}

	t.Run("reconciles the profile and opens a session", func(t *testing.T) {
		f := newUserServiceFixtures(t)
		profile := &entity.User{ID: userID, Email: input.Email, Role: entity.RoleCitizen}
		f.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, input.Email).
			Return(authRecord, nil)
		f.hasher.On("Check", input.Password, "stored-hash").Return(true)
		f.profileUsecase.On("EnsureProfile", mock.Anything, mock.MatchedBy(func(identity *entity.Identity) bool {
			return identity.ID == userID && identity.Email == input.Email
		})).Return(profile, nil)
		f.expectSession()

		output, err := f.service.Login(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, profile, output.User)
		f.profileUsecase.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newUserServiceFixtures(t)
		f.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, input.Email).
			Return(authRecord, nil)
		f.hasher.On("Check", input.Password, "stored-hash").Return(false)

		_, err := f.service.Login(context.Background(), input)

		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		f.profileUsecase.AssertNotCalled(t, "EnsureProfile", mock.Anything, mock.Anything)
	})

	t.Run("unknown email reads as invalid credentials", func(t *testing.T) {
		f := newUserServiceFixtures(t)
		f.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, input.Email).
			Return(nil, repository.ErrAuthNotFound)

		_, err := f.service.Login(context.Background(), input)

		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})
}

func TestUserServiceRefreshToken(t *testing.T) {
	userID := uuid.New()

	t.Run("issues a new access token without rotating", func(t *testing.T) {
		f := newUserServiceFixtures(t)
		f.tokenService.On("ValidateRefreshToken", "raw-refresh").
			Return(claimsFor(userID), nil)
		f.refreshTokenRepo.On("FindByHash", mock.Anything, hashToken("raw-refresh")).
			Return(&entity.RefreshToken{UserID: userID}, nil)
		f.userRepo.On("FindByID", mock.Anything, userID).
			Return(&entity.User{ID: userID, Email: "citoyen@example.cd", Role: entity.RoleCitizen}, nil)
		f.tokenService.On("GenerateTokens", userID, "citoyen@example.cd", entity.RoleCitizen).
			Return("new-access", "ignored", nil)

		output, err := f.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{RefreshToken: "raw-refresh"})

		require.NoError(t, err)
		assert.Equal(t, "new-access", output.AccessToken)
		// No new refresh token row: the session keeps its original token.
		f.refreshTokenRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejected signature", func(t *testing.T) {
		f := newUserServiceFixtures(t)
		f.tokenService.On("ValidateRefreshToken", "bad").Return(nil, assert.AnError)

		_, err := f.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{RefreshToken: "bad"})

		assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
	})

	t.Run("token revoked server-side", func(t *testing.T) {
		f := newUserServiceFixtures(t)
		f.tokenService.On("ValidateRefreshToken", "raw-refresh").
			Return(claimsFor(userID), nil)
		f.refreshTokenRepo.On("FindByHash", mock.Anything, hashToken("raw-refresh")).
			Return(nil, repository.ErrRefreshTokenNotFound)

		_, err := f.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{RefreshToken: "raw-refresh"})

		assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
	})
}

func TestUserServiceLogout(t *testing.T) {
	t.Run("deletes the session row", func(t *testing.T) {
		f := newUserServiceFixtures(t)
		f.tokenService.On("ValidateRefreshToken", "raw-refresh").
			Return(claimsFor(uuid.New()), nil)
		f.refreshTokenRepo.On("DeleteByHash", mock.Anything, hashToken("raw-refresh")).Return(nil)

		err := f.service.Logout(context.Background(), &usecase.LogoutInput{RefreshToken: "raw-refresh"})

		assert.NoError(t, err)
	})

	t.Run("already-deleted session is idempotent", func(t *testing.T) {
		f := newUserServiceFixtures(t)
		f.tokenService.On("ValidateRefreshToken", "raw-refresh").Return(nil, assert.AnError)
		f.refreshTokenRepo.On("DeleteByHash", mock.Anything, hashToken("raw-refresh")).
			Return(repository.ErrRefreshTokenNotFound)

		err := f.service.Logout(context.Background(), &usecase.LogoutInput{RefreshToken: "raw-refresh"})

		assert.NoError(t, err)
	})
}

func TestUserServiceForgotPassword(t *testing.T) {
	t.Run("known email produces a reset token", func(t *testing.T) {
		f := newUserServiceFixtures(t)
		userID := uuid.New()
		f.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "citoyen@example.cd").
			Return(&entity.Authentication{UserID: userID, ProviderUserID: "citoyen@example.cd"}, nil)
		f.authRepo.On("CreatePasswordReset", mock.Anything, mock.MatchedBy(func(reset *entity.PasswordReset) bool {
			return reset.UserID == userID && reset.TokenHash != ""
		})).Return(nil)

		output, err := f.service.ForgotPassword(context.Background(), &usecase.ForgotPasswordInput{Email: "citoyen@example.cd"})

		require.NoError(t, err)
		assert.NotEmpty(t, output.ResetToken)
		// The raw token is never its own hash: only the hash is stored.
		f.authRepo.AssertExpectations(t)
	})

	t.Run("unknown email yields the same shape", func(t *testing.T) {
		f := newUserServiceFixtures(t)
		f.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "inconnu@example.cd").
			Return(nil, repository.ErrAuthNotFound)

		output, err := f.service.ForgotPassword(context.Background(), &usecase.ForgotPasswordInput{Email: "inconnu@example.cd"})

		// No error and no token: the endpoint cannot enumerate accounts.
		require.NoError(t, err)
		assert.Empty(t, output.ResetToken)
		f.authRepo.AssertNotCalled(t, "CreatePasswordReset", mock.Anything, mock.Anything)
	})
}

func TestUserServiceResetPassword(t *testing.T) {
	t.Run("consumes the reset and updates the hash", func(t *testing.T) {
		f := newUserServiceFixtures(t)
		resetID := uuid.New()
		userID := uuid.New()
		f.hasher.On("Hash", "nouveau-mdp").Return("new-hash", nil)
		f.authRepo.On("FindActivePasswordReset", mock.Anything, hashToken("raw-reset")).
			Return(&entity.PasswordReset{ID: resetID, UserID: userID}, nil)
		f.authRepo.On("UpdatePasswordHash", mock.Anything, userID, "new-hash").Return(nil)
		f.authRepo.On("ConsumePasswordReset", mock.Anything, resetID).Return(nil)

		err := f.service.ResetPassword(context.Background(), &usecase.ResetPasswordInput{
			Token:       "raw-reset",
			NewPassword: "nouveau-mdp",
		})

		assert.NoError(t, err)
		f.authRepo.AssertExpectations(t)
	})

	t.Run("expired or unknown token", func(t *testing.T) {
		f := newUserServiceFixtures(t)
		f.hasher.On("Hash", "nouveau-mdp").Return("new-hash", nil)
		f.authRepo.On("FindActivePasswordReset", mock.Anything, hashToken("raw-reset")).
			Return(nil, repository.ErrResetNotFound)

		err := f.service.ResetPassword(context.Background(), &usecase.ResetPasswordInput{
			Token:       "raw-reset",
			NewPassword: "nouveau-mdp",
		})

		assert.ErrorIs(t, err, domainerrors.ErrResetTokenInvalid)
		f.authRepo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
	})
}
