package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction, so that all operations inside one Execute share a connection.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// AuthRepo returns an AuthRepository bound to the current transaction.
	AuthRepo() AuthRepository

	// RefreshTokenRepo returns a RefreshTokenRepository bound to the current transaction.
	RefreshTokenRepo() RefreshTokenRepository

	// ReportRepo returns a ReportRepository bound to the current transaction.
	ReportRepo() ReportRepository

	// ReportImageRepo returns a ReportImageRepository bound to the current transaction.
	ReportImageRepo() ReportImageRepository

	// CommuneRepo returns a CommuneRepository bound to the current transaction.
	CommuneRepo() CommuneRepository

	// ProblemTypeRepo returns a ProblemTypeRepository bound to the current transaction.
	ProblemTypeRepo() ProblemTypeRepository

	// CommentRepo returns a CommentRepository bound to the current transaction.
	CommentRepo() CommentRepository
}
