package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskModel mirrors the 'tasks' table. Status, priority and priority source are
// stored as text; the domain enums own the legal values.
type TaskModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title          string    `gorm:"type:varchar(255);not null"`
	Description    string    `gorm:"type:text;not null"`
	DueDate        time.Time `gorm:"not null"`
	Status         string    `gorm:"type:varchar(20);not null"`
	Priority       string    `gorm:"type:varchar(10);not null"`
	PrioritySource string    `gorm:"type:varchar(10);not null"`
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}
