// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"taskboard/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByIdentifier retrieves a single user whose username OR email equals
	// the given identifier. Callers pass the identifier already normalized
	// (lowercased, trimmed).
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)

	// ExistsByUsernameOrEmail reports whether any user already holds the given
	// normalized username or email. Used for the registration conflict check.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// UpdateRefreshTokenHash overwrites the user's stored refresh-token hash,
	// enforcing the single-active-session-per-user rule. An empty hash clears
	// the session.
	UpdateRefreshTokenHash(ctx context.Context, userID uuid.UUID, tokenHash string) error
}
