// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"taskboard/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
}

// LoginInput defines the data required for a user to log in.
// Identifier accepts either a username or an email address.
type LoginInput struct {
	Identifier string
	Password   string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshOutput returns the rotated token pair.
type RefreshOutput struct {
	AccessToken  string
	RefreshToken string
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// RefreshToken validates the presented refresh token against the stored
	// session and rotates the whole token pair.
	RefreshToken(ctx context.Context, refreshToken string) (*RefreshOutput, error)

	// Logout clears the user's active session. It is idempotent.
	Logout(ctx context.Context, userID uuid.UUID) error
}
