package entity

import "time"

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// String returns the wire representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// IsValid reports whether the value is one of the legal priority levels.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// PrioritySource tracks whether a task's priority was explicitly set by the
// caller (MANUAL) or derived from the due date (AUTO).
type PrioritySource string

const (
	PrioritySourceManual PrioritySource = "MANUAL"
	PrioritySourceAuto   PrioritySource = "AUTO"
)

// String returns the wire representation of the priority source.
func (s PrioritySource) String() string {
	return string(s)
}

// IsValid reports whether the value is one of the legal priority sources.
func (s PrioritySource) IsValid() bool {
	return s == PrioritySourceManual || s == PrioritySourceAuto
}

// DerivePriority maps the time remaining until the due date to a priority:
// under 24 hours is High, 24 to 72 hours inclusive is Medium, beyond 72
// hours is Low. Overdue tasks therefore come out High.
func DerivePriority(dueDate, now time.Time) Priority {
	hoursUntilDue := dueDate.Sub(now).Hours()

	if hoursUntilDue < 24 {
		return PriorityHigh
	}
	if hoursUntilDue <= 72 {
		return PriorityMedium
	}

	return PriorityLow
}
