// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"taskboard/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateTaskInput defines the data required to create a new task.
// Priority is optional: when supplied it pins the task to manual priority,
// otherwise the priority is derived from the due date.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Status      *entity.Status
	Priority    *entity.Priority
}

// UpdateTaskInput is a partial patch. Nil means the field was omitted;
// a non-nil pointer means the caller supplied it, even if the value is empty.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *entity.Status
	Priority    *entity.Priority
}

// HasAnyField reports whether the patch supplies at least one field.
func (in UpdateTaskInput) HasAnyField() bool {
	return in.Title != nil || in.Description != nil || in.DueDate != nil ||
		in.Status != nil || in.Priority != nil
}

// TaskUsecase defines the interface for task-related business operations.
// Every operation receives the authenticated owner's ID; ownership is
// enforced here, not in the delivery layer.
type TaskUsecase interface {
	CreateTask(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*entity.Task, error)
	GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error)
	ListTasks(ctx context.Context, ownerID uuid.UUID) ([]*entity.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, input UpdateTaskInput) (*entity.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error
}
