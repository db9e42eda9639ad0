// Package repository provides testify mocks for the persistence interfaces.
package repository

import (
	"context"

	"alerte/internal/domain/entity"
	"alerte/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*entity.User); ok {
		return users, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockAuthRepository mocks repository.AuthRepository.
type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) FindAuthentication(ctx context.Context, provider, providerUserID string) (*entity.Authentication, error) {
	args := m.Called(ctx, provider, providerUserID)
	if auth, ok := args.Get(0).(*entity.Authentication); ok {
		return auth, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	return m.Called(ctx, auth).Error(0)
}

func (m *MockAuthRepository) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

func (m *MockAuthRepository) ListOrphaned(ctx context.Context) ([]*entity.Authentication, error) {
	args := m.Called(ctx)
	if auths, ok := args.Get(0).([]*entity.Authentication); ok {
		return auths, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthRepository) CreatePasswordReset(ctx context.Context, reset *entity.PasswordReset) error {
	return m.Called(ctx, reset).Error(0)
}

func (m *MockAuthRepository) FindActivePasswordReset(ctx context.Context, tokenHash string) (*entity.PasswordReset, error) {
	args := m.Called(ctx, tokenHash)
	if reset, ok := args.Get(0).(*entity.PasswordReset); ok {
		return reset, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthRepository) ConsumePasswordReset(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAuthRepository) DeleteExpiredPasswordResets(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

// MockRefreshTokenRepository mocks repository.RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if token, ok := args.Get(0).(*entity.RefreshToken); ok {
		return token, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteByHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

// MockReportRepository mocks repository.ReportRepository.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *entity.Report) error {
	return m.Called(ctx, report).Error(0)
}

func (m *MockReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	args := m.Called(ctx, id)
	if report, ok := args.Get(0).(*entity.Report); ok {
		return report, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockReportRepository) List(ctx context.Context, filter repository.ReportFilter) ([]*entity.Report, error) {
	args := m.Called(ctx, filter)
	if reports, ok := args.Get(0).([]*entity.Report); ok {
		return reports, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockReportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReportStatus) (*entity.Report, error) {
	args := m.Called(ctx, id, status)
	if report, ok := args.Get(0).(*entity.Report); ok {
		return report, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockReportImageRepository mocks repository.ReportImageRepository.
type MockReportImageRepository struct {
	mock.Mock
}

func (m *MockReportImageRepository) Create(ctx context.Context, image *entity.ReportImage) error {
	return m.Called(ctx, image).Error(0)
}

func (m *MockReportImageRepository) ListByReport(ctx context.Context, reportID uuid.UUID) ([]*entity.ReportImage, error) {
	args := m.Called(ctx, reportID)
	if images, ok := args.Get(0).([]*entity.ReportImage); ok {
		return images, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockCommuneRepository mocks repository.CommuneRepository.
type MockCommuneRepository struct {
	mock.Mock
}

func (m *MockCommuneRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Commune, error) {
	args := m.Called(ctx, id)
	if commune, ok := args.Get(0).(*entity.Commune); ok {
		return commune, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCommuneRepository) FindByName(ctx context.Context, name string) (*entity.Commune, error) {
	args := m.Called(ctx, name)
	if commune, ok := args.Get(0).(*entity.Commune); ok {
		return commune, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCommuneRepository) List(ctx context.Context) ([]*entity.Commune, error) {
	args := m.Called(ctx)
	if communes, ok := args.Get(0).([]*entity.Commune); ok {
		return communes, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCommuneRepository) Create(ctx context.Context, commune *entity.Commune) error {
	return m.Called(ctx, commune).Error(0)
}

// MockProblemTypeRepository mocks repository.ProblemTypeRepository.
type MockProblemTypeRepository struct {
	mock.Mock
}

func (m *MockProblemTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProblemType, error) {
	args := m.Called(ctx, id)
	if problemType, ok := args.Get(0).(*entity.ProblemType); ok {
		return problemType, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProblemTypeRepository) FindByName(ctx context.Context, name string) (*entity.ProblemType, error) {
	args := m.Called(ctx, name)
	if problemType, ok := args.Get(0).(*entity.ProblemType); ok {
		return problemType, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProblemTypeRepository) List(ctx context.Context) ([]*entity.ProblemType, error) {
	args := m.Called(ctx)
	if problemTypes, ok := args.Get(0).([]*entity.ProblemType); ok {
		return problemTypes, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProblemTypeRepository) Create(ctx context.Context, problemType *entity.ProblemType) error {
	return m.Called(ctx, problemType).Error(0)
}

// MockCommentRepository mocks repository.CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) ListByReport(ctx context.Context, reportID uuid.UUID) ([]*entity.Comment, error) {
	args := m.Called(ctx, reportID)
	if comments, ok := args.Get(0).([]*entity.Comment); ok {
		return comments, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockRepositoryFactory mocks repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

func (m *MockRepositoryFactory) UserRepo() repository.UserRepository {
	return m.Called().Get(0).(repository.UserRepository)
}

func (m *MockRepositoryFactory) AuthRepo() repository.AuthRepository {
	return m.Called().Get(0).(repository.AuthRepository)
}

func (m *MockRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return m.Called().Get(0).(repository.RefreshTokenRepository)
}

func (m *MockRepositoryFactory) ReportRepo() repository.ReportRepository {
	return m.Called().Get(0).(repository.ReportRepository)
}

func (m *MockRepositoryFactory) ReportImageRepo() repository.ReportImageRepository {
	return m.Called().Get(0).(repository.ReportImageRepository)
}

func (m *MockRepositoryFactory) CommuneRepo() repository.CommuneRepository {
	return m.Called().Get(0).(repository.CommuneRepository)
}

func (m *MockRepositoryFactory) ProblemTypeRepo() repository.ProblemTypeRepository {
	return m.Called().Get(0).(repository.ProblemTypeRepository)
}

func (m *MockRepositoryFactory) CommentRepo() repository.CommentRepository {
	return m.Called().Get(0).(repository.CommentRepository)
}

// MockTransactionManager mocks repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return m.Called(ctx, fn).Error(0)
}

// PassthroughTransactionManager runs the transactional function against a
// fixed factory, committing nothing. Tests verifying in-transaction behavior
// use it instead of wiring Run callbacks on the mock.
type PassthroughTransactionManager struct {
	Factory repository.RepositoryFactory
}

func (m *PassthroughTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}

// StubRepositoryFactory returns fixed repositories without expectations.
// Nil fields simply make the corresponding accessor return nil.
type StubRepositoryFactory struct {
	Users         repository.UserRepository
	Auths         repository.AuthRepository
	RefreshTokens repository.RefreshTokenRepository
	Reports       repository.ReportRepository
	ReportImages  repository.ReportImageRepository
	Communes      repository.CommuneRepository
	ProblemTypes  repository.ProblemTypeRepository
	Comments      repository.CommentRepository
}

func (f *StubRepositoryFactory) UserRepo() repository.UserRepository { return f.Users }

func (f *StubRepositoryFactory) AuthRepo() repository.AuthRepository { return f.Auths }

func (f *StubRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.RefreshTokens
}

func (f *StubRepositoryFactory) ReportRepo() repository.ReportRepository { return f.Reports }

func (f *StubRepositoryFactory) ReportImageRepo() repository.ReportImageRepository {
	return f.ReportImages
}

func (f *StubRepositoryFactory) CommuneRepo() repository.CommuneRepository { return f.Communes }

func (f *StubRepositoryFactory) ProblemTypeRepo() repository.ProblemTypeRepository {
	return f.ProblemTypes
}

func (f *StubRepositoryFactory) CommentRepo() repository.CommentRepository { return f.Comments }
