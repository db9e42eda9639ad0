// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"alerte/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new citizen account.
type RegisterInput struct {
	FullName  string
	Email     string
	Phone     string
	Password  string
	CommuneID *uuid.UUID
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshTokenInput carries the raw refresh token presented by the client.
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput carries the refresh token of the session to invalidate.
type LogoutInput struct {
	RefreshToken string
}

// ForgotPasswordInput starts a password reset for the given email.
type ForgotPasswordInput struct {
	Email string
}

// ResetPasswordInput completes a password reset with the emailed token.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// --- Output DTOs ---

// AuthOutput returns the generated token pair after signup or login.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshTokenOutput returns the new access token. The refresh token stays
// unchanged: no rotation.
type RefreshTokenOutput struct {
	AccessToken string
}

// ForgotPasswordOutput returns the raw reset token. The delivery layer hands
// it to the mail pipeline; it is never stored in clear.
type ForgotPasswordOutput struct {
	ResetToken string
}

// UserUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
	ForgotPassword(ctx context.Context, input *ForgotPasswordInput) (*ForgotPasswordOutput, error)
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
}
