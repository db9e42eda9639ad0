package repository

import (
	"context"
	"errors"

	"alerte/internal/domain/entity"
)

// ErrRefreshTokenNotFound is returned when no stored session matches the hash.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository defines the operations for session persistence.
type RefreshTokenRepository interface {
	// Create stores a new refresh token (hash only).
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash retrieves a non-expired refresh token by its SHA-256 hash.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteByHash removes a refresh token, invalidating the session.
	DeleteByHash(ctx context.Context, tokenHash string) error

	// DeleteExpired purges expired tokens, returning the number of rows removed.
	// Called by the background maintenance job.
	DeleteExpired(ctx context.Context) (int64, error)
}
