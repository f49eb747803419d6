// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system, representing a single account.
// Username and Email are stored lowercased and trimmed; both are unique.
type User struct {
	ID       uuid.UUID `json:"id"`       // The unique identifier for the user.
	Username string    `json:"username"` // The user's unique handle, used as a login identifier.
	Email    string    `json:"email"`    // The user's unique email, also usable as a login identifier.
	FullName string    `json:"fullname"` // The user's display name.

	// PasswordHash stores the bcrypt-hashed password. It is never exposed
	// through the API; handlers receive a sanitized view of the user.
	PasswordHash string `json:"-"`

	// RefreshTokenHash stores the SHA-256 hash of the user's currently valid
	// refresh token. At most one refresh token is valid per user at a time:
	// each login or refresh overwrites it, and logout clears it.
	RefreshTokenHash string `json:"-"`

	CreatedAt time.Time `json:"createdAt"` // Timestamp of when this account was created.
	UpdatedAt time.Time `json:"updatedAt"` // Timestamp of the last modification to this account.
}

// Sanitized returns a copy of the user with credential material removed.
// This is the only form of a user that may cross the delivery boundary.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}

	clone := *u
	clone.PasswordHash = ""
	clone.RefreshTokenHash = ""

	return &clone
}
