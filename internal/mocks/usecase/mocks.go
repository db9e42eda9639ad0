// Package usecase provides testify mocks for the usecase interfaces.
package usecase

import (
	"context"

	"alerte/internal/domain/entity"
	"alerte/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProfileUsecase mocks usecase.ProfileUsecase.
type MockProfileUsecase struct {
	mock.Mock
}

func (m *MockProfileUsecase) EnsureProfile(ctx context.Context, identity *entity.Identity) (*entity.User, error) {
	args := m.Called(ctx, identity)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProfileUsecase) Invalidate(userID uuid.UUID) {
	m.Called(userID)
}

func (m *MockProfileUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	args := m.Called(ctx, userID, input)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProfileUsecase) RepairOrphans(ctx context.Context) (int, error) {
	args := m.Called(ctx)

	return args.Int(0), args.Error(1)
}
