package usecase

import (
	"context"

	"alerte/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput defines which profile fields a user may change.
// Role is deliberately absent: role changes go through the admin usecase.
type UpdateProfileInput struct {
	FullName  string
	Phone     string
	CommuneID *uuid.UUID
}

// ProfileUsecase reconciles authentication identities with profile rows
// and serves profile reads/updates.
//
// EnsureProfile is on the hot path: the auth middleware calls it on every
// authenticated request, so implementations cache aggressively.
type ProfileUsecase interface {
	// EnsureProfile returns the profile for the identity, creating a default
	// citizen profile if the row is missing (observed drift in older data).
	// A lookup that cannot complete within the configured timeout returns
	// ErrProfileNotLoaded: the session stays valid but role-gated actions
	// are denied for that request.
	EnsureProfile(ctx context.Context, identity *entity.Identity) (*entity.User, error)

	// Invalidate drops the cached profile for a user, forcing the next
	// EnsureProfile to hit the database. Called after any profile mutation.
	Invalidate(userID uuid.UUID)

	// UpdateProfile applies contact-field changes for the user.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)

	// RepairOrphans creates default profiles for credentials whose profile
	// row is missing, returning the number repaired. Used by the one-shot
	// reconcile command.
	RepairOrphans(ctx context.Context) (int, error)
}
