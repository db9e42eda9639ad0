package repository

import (
	"context"
	"errors"

	"alerte/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAuthNotFound is returned when no credential matches the lookup.
var ErrAuthNotFound = errors.New("authentication not found")

// ErrResetNotFound is returned when no usable password reset matches the token.
var ErrResetNotFound = errors.New("password reset not found")

// AuthRepository defines the operations for credential persistence.
type AuthRepository interface {
	// FindAuthentication looks up a credential by provider and provider-side id
	// (the email address for the email provider).
	FindAuthentication(ctx context.Context, provider, providerUserID string) (*entity.Authentication, error)

	// CreateAuthentication persists a new credential.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// UpdatePasswordHash replaces the stored password hash for a user's email credential.
	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error

	// ListOrphaned returns credentials whose user profile row no longer
	// exists. Used by the repair pass; normal flows never produce these,
	// but drift has been observed operationally.
	ListOrphaned(ctx context.Context) ([]*entity.Authentication, error)

	// CreatePasswordReset persists a one-shot reset token (hash only).
	CreatePasswordReset(ctx context.Context, reset *entity.PasswordReset) error

	// FindActivePasswordReset returns the unconsumed, unexpired reset matching the hash.
	FindActivePasswordReset(ctx context.Context, tokenHash string) (*entity.PasswordReset, error)

	// ConsumePasswordReset marks a reset as used.
	ConsumePasswordReset(ctx context.Context, id uuid.UUID) error

	// DeleteExpiredPasswordResets purges expired and consumed resets,
	// returning the number of rows removed.
	DeleteExpiredPasswordResets(ctx context.Context) (int64, error)
}
