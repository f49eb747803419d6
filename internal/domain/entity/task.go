// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Task represents a single unit of work owned by exactly one user.
//
// The (Priority, PrioritySource) pair is kept consistent by the use case
// layer: while PrioritySource is AUTO, Priority always equals
// DerivePriority(DueDate, now-of-last-change); once a caller supplies a
// priority the source becomes MANUAL and stays MANUAL until the next
// explicit priority.
type Task struct {
	ID          uuid.UUID `json:"id"`          // The unique identifier for the task.
	Title       string    `json:"title"`       // Short summary, non-blank after trimming.
	Description string    `json:"description"` // Longer description, non-blank after trimming.
	DueDate     time.Time `json:"dueDate"`     // When the task is due. Strictly in the future at creation.

	Status         Status         `json:"status"`         // Progress state, defaults to Pending.
	Priority       Priority       `json:"priority"`       // Current priority level.
	PrioritySource PrioritySource `json:"prioritySource"` // Whether Priority was supplied or derived.

	// OwnerID links the task to the user that created it. It never changes;
	// only the owner may read, mutate or delete the task.
	OwnerID uuid.UUID `json:"ownerId"`

	CreatedAt time.Time `json:"createdAt"` // Timestamp of when this task was created.
	UpdatedAt time.Time `json:"updatedAt"` // Timestamp of the last modification to this task.
}
