// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"alerte/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user profile is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user profile persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single profile by the shared auth-identity id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single profile by email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new profile. The caller supplies the id: it must be
	// the authentication identity's id, never a freshly generated one.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing profile (contact fields, role, commune).
	Update(ctx context.Context, user *entity.User) error

	// List returns every profile, ordered by creation time. Admin area only.
	List(ctx context.Context) ([]*entity.User, error)
}
