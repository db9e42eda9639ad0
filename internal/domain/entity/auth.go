// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderTypeEmail is the only credential provider in use: password login.
const ProviderTypeEmail = "email"

// Authentication represents a single method of logging in (a credential).
// The user id it carries is the same id the profile row is keyed by.
type Authentication struct {
	ID             uuid.UUID
	UserID         uuid.UUID // Links this credential to the User profile it belongs to.
	Provider       string    // Always "email" for now.
	ProviderUserID string    // The login identifier; the email address for the email provider.
	PasswordHash   string    // bcrypt hash.
	CreatedAt      time.Time
}

// RefreshToken represents a long-lived, authorized user session.
// Only a SHA-256 hash of the raw token is stored.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// PasswordReset is a one-shot token allowing a user to set a new password.
// Consumed resets are kept (ConsumedAt set) until the cleanup job purges them.
type PasswordReset struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TokenHash  string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// Identity is what a validated session proves about the caller before any
// profile lookup: the identity id, the login email and the optional signup
// metadata. It is the input to profile reconciliation.
type Identity struct {
	ID       uuid.UUID
	Email    string
	Metadata *SignupMetadata // Present right after signup, nil on plain logins.
}

// SignupMetadata carries the optional profile fields collected at signup.
type SignupMetadata struct {
	FullName  string
	Phone     string
	CommuneID *uuid.UUID
}
