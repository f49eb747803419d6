package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDerivePriority_Boundaries(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		dueDate  time.Time
		expected Priority
	}{
		{"one hour ahead", now.Add(time.Hour), PriorityHigh},
		{"just under 24h", now.Add(24*time.Hour - time.Second), PriorityHigh},
		{"exactly 24h", now.Add(24 * time.Hour), PriorityMedium},
		{"between 24h and 72h", now.Add(48 * time.Hour), PriorityMedium},
		{"exactly 72h", now.Add(72 * time.Hour), PriorityMedium},
		{"one second past 72h", now.Add(72*time.Hour + time.Second), PriorityLow},
		{"one week ahead", now.Add(7 * 24 * time.Hour), PriorityLow},
		{"already overdue", now.Add(-time.Hour), PriorityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DerivePriority(tt.dueDate, now))
		})
	}
}

func TestDerivePriority_IsDeterministic(t *testing.T) {
	now := time.Now()
	due := now.Add(30 * time.Hour)

	first := DerivePriority(due, now)
	second := DerivePriority(due, now)

	assert.Equal(t, first, second)
	assert.Equal(t, PriorityMedium, first)
}

func TestEnums_IsValid(t *testing.T) {
	assert.True(t, PriorityLow.IsValid())
	assert.True(t, PriorityMedium.IsValid())
	assert.True(t, PriorityHigh.IsValid())
	assert.False(t, Priority("Urgent").IsValid())

	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusInProgress.IsValid())
	assert.True(t, StatusCompleted.IsValid())
	assert.False(t, Status("Done").IsValid())

	assert.True(t, PrioritySourceManual.IsValid())
	assert.True(t, PrioritySourceAuto.IsValid())
	assert.False(t, PrioritySource("DEFAULT").IsValid())
}
