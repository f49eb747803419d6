// Package model holds the GORM table mappings for the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// RefreshTokenHash stores the digest of the single active refresh token;
// an empty string means the user has no active session.
type UserModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username         string    `gorm:"type:varchar(100);unique;not null"`
	Email            string    `gorm:"type:varchar(255);unique;not null"`
	FullName         string    `gorm:"type:varchar(255);not null"`
	PasswordHash     string    `gorm:"type:varchar(255);not null"`
	RefreshTokenHash string    `gorm:"type:varchar(64);not null;default:''"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Tasks []TaskModel `gorm:"foreignKey:OwnerID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
