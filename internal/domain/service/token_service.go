package service

import (
	"time"

	"alerte/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionClaims is what a validated token proves about its bearer.
// The role claim is advisory: the profile row stays the source of truth
// and is consulted through reconciliation before any role-gated decision.
type SessionClaims struct {
	UserID uuid.UUID
	Email  string
	Role   entity.Role
}

// Identity converts the claims into the reconciliation input.
func (c *SessionClaims) Identity() *entity.Identity {
	return &entity.Identity{ID: c.UserID, Email: c.Email}
}

// TokenService abstracts session token issuance and validation.
type TokenService interface {
	// GenerateTokens creates an access/refresh token pair for a user.
	GenerateTokens(userID uuid.UUID, email string, role entity.Role) (accessToken, refreshToken string, err error)

	// ValidateAccessToken checks an access token and returns its claims.
	ValidateAccessToken(token string) (*SessionClaims, error)

	// ValidateRefreshToken checks a refresh token and returns its claims.
	ValidateRefreshToken(token string) (*SessionClaims, error)

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}
