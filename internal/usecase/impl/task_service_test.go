package impl

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/domain/entity"
	"taskboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestTaskService() (*taskService, *fakeTaskRepository) {
	taskRepo := newFakeTaskRepository()

	srv := &taskService{
		taskRepo: taskRepo,
		logger:   discardLogger(),
		now:      func() time.Time { return testNow },
	}

	return srv, taskRepo
}

func ptr[T any](v T) *T { return &v }

func createTestTask(t *testing.T, srv *taskService, ownerID uuid.UUID, input usecase.CreateTaskInput) *entity.Task {
	t.Helper()

	task, err := srv.CreateTask(context.Background(), ownerID, input)
	require.NoError(t, err)

	return task
}

func TestTaskService_CreateTask_DerivedPriority(t *testing.T) {
	srv, _ := newTestTaskService()
	ownerID := uuid.New()

	tests := []struct {
		name         string
		dueDate      time.Time
		wantPriority entity.Priority
	}{
		{name: "due in one hour", dueDate: testNow.Add(time.Hour), wantPriority: entity.PriorityHigh},
		{name: "due in exactly 24 hours", dueDate: testNow.Add(24 * time.Hour), wantPriority: entity.PriorityMedium},
		{name: "due in exactly 72 hours", dueDate: testNow.Add(72 * time.Hour), wantPriority: entity.PriorityMedium},
		{name: "due in 100 hours", dueDate: testNow.Add(100 * time.Hour), wantPriority: entity.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := createTestTask(t, srv, ownerID, usecase.CreateTaskInput{
				Title:       "T",
				Description: "D",
				DueDate:     tt.dueDate,
			})

			assert.Equal(t, tt.wantPriority, task.Priority)
			assert.Equal(t, entity.PrioritySourceAuto, task.PrioritySource)
			assert.Equal(t, entity.StatusPending, task.Status)
			assert.Equal(t, ownerID, task.OwnerID)
		})
	}
}

func TestTaskService_CreateTask_SuppliedPriorityIsManual(t *testing.T) {
	srv, _ := newTestTaskService()

	// An explicit priority wins even when derivation would say High.
	task := createTestTask(t, srv, uuid.New(), usecase.CreateTaskInput{
		Title:       "T",
		Description: "D",
		DueDate:     testNow.Add(time.Hour),
		Priority:    ptr(entity.PriorityLow),
	})

	assert.Equal(t, entity.PriorityLow, task.Priority)
	assert.Equal(t, entity.PrioritySourceManual, task.PrioritySource)
}

func TestTaskService_CreateTask_Validation(t *testing.T) {
	srv, _ := newTestTaskService()
	ownerID := uuid.New()

	tests := []struct {
		name  string
		input usecase.CreateTaskInput
	}{
		{
			name:  "blank title",
			input: usecase.CreateTaskInput{Title: "   ", Description: "D", DueDate: testNow.Add(time.Hour)},
		},
		{
			name:  "blank description",
			input: usecase.CreateTaskInput{Title: "T", Description: "", DueDate: testNow.Add(time.Hour)},
		},
		{
			name:  "zero dueDate",
			input: usecase.CreateTaskInput{Title: "T", Description: "D"},
		},
		{
			name:  "past dueDate",
			input: usecase.CreateTaskInput{Title: "T", Description: "D", DueDate: testNow.Add(-time.Minute)},
		},
		{
			name:  "dueDate exactly now",
			input: usecase.CreateTaskInput{Title: "T", Description: "D", DueDate: testNow},
		},
		{
			name:  "bad status",
			input: usecase.CreateTaskInput{Title: "T", Description: "D", DueDate: testNow.Add(time.Hour), Status: ptr(entity.Status("Done"))},
		},
		{
			name:  "bad priority",
			input: usecase.CreateTaskInput{Title: "T", Description: "D", DueDate: testNow.Add(time.Hour), Priority: ptr(entity.Priority("Urgent"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.CreateTask(context.Background(), ownerID, tt.input)
			assertErrorCode(t, err, "VALIDATION_FAILED")
		})
	}
}

func TestTaskService_CreateTask_TrimsFields(t *testing.T) {
	srv, _ := newTestTaskService()

	task := createTestTask(t, srv, uuid.New(), usecase.CreateTaskInput{
		Title:       "  Buy milk  ",
		Description: "  2 liters  ",
		DueDate:     testNow.Add(time.Hour),
		Status:      ptr(entity.StatusInProgress),
	})

	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "2 liters", task.Description)
	assert.Equal(t, entity.StatusInProgress, task.Status)
}

func TestTaskService_UpdateTask_EmptyPatchRejected(t *testing.T) {
	srv, _ := newTestTaskService()
	ownerID := uuid.New()
	task := createTestTask(t, srv, ownerID, usecase.CreateTaskInput{
		Title: "T", Description: "D", DueDate: testNow.Add(time.Hour),
	})

	_, err := srv.UpdateTask(context.Background(), ownerID, task.ID, usecase.UpdateTaskInput{})
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestTaskService_UpdateTask_NotFound(t *testing.T) {
	srv, _ := newTestTaskService()

	_, err := srv.UpdateTask(context.Background(), uuid.New(), uuid.New(), usecase.UpdateTaskInput{
		Title: ptr("New title"),
	})
	assertErrorCode(t, err, "TASK_NOT_FOUND")
}

func TestTaskService_UpdateTask_OwnershipEnforced(t *testing.T) {
	srv, taskRepo := newTestTaskService()
	ownerID := uuid.New()
	task := createTestTask(t, srv, ownerID, usecase.CreateTaskInput{
		Title: "T", Description: "D", DueDate: testNow.Add(time.Hour),
	})

	_, err := srv.UpdateTask(context.Background(), uuid.New(), task.ID, usecase.UpdateTaskInput{
		Title: ptr("Hijacked"),
	})
	assertErrorCode(t, err, "TASK_OWNERSHIP_VIOLATION")

	// The task is unmodified.
	stored, err := taskRepo.FindByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", stored.Title)
}

func TestTaskService_UpdateTask_EmptyStringCountsAsSupplied(t *testing.T) {
	srv, _ := newTestTaskService()
	ownerID := uuid.New()
	task := createTestTask(t, srv, ownerID, usecase.CreateTaskInput{
		Title: "T", Description: "D", DueDate: testNow.Add(time.Hour),
	})

	_, err := srv.UpdateTask(context.Background(), ownerID, task.ID, usecase.UpdateTaskInput{
		Title: ptr("   "),
	})
	assertErrorCode(t, err, "VALIDATION_FAILED")

	_, err = srv.UpdateTask(context.Background(), ownerID, task.ID, usecase.UpdateTaskInput{
		Description: ptr(""),
	})
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestTaskService_UpdateTask_DueDateChangeRecomputesWhileAuto(t *testing.T) {
	srv, _ := newTestTaskService()
	ownerID := uuid.New()
	task := createTestTask(t, srv, ownerID, usecase.CreateTaskInput{
		Title: "T", Description: "D", DueDate: testNow.Add(time.Hour),
	})
	require.Equal(t, entity.PriorityHigh, task.Priority)

	updated, err := srv.UpdateTask(context.Background(), ownerID, task.ID, usecase.UpdateTaskInput{
		DueDate: ptr(testNow.Add(100 * time.Hour)),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PriorityLow, updated.Priority)
	assert.Equal(t, entity.PrioritySourceAuto, updated.PrioritySource)
}

func TestTaskService_UpdateTask_ManualPriorityIsSticky(t *testing.T) {
	srv, _ := newTestTaskService()
	ownerID := uuid.New()

	// AUTO High, then manual Low, then a due-date move that must not
	// touch the manually set priority.
	task := createTestTask(t, srv, ownerID, usecase.CreateTaskInput{
		Title: "T", Description: "D", DueDate: testNow.Add(time.Hour),
	})
	require.Equal(t, entity.PriorityHigh, task.Priority)
	require.Equal(t, entity.PrioritySourceAuto, task.PrioritySource)

	updated, err := srv.UpdateTask(context.Background(), ownerID, task.ID, usecase.UpdateTaskInput{
		Priority: ptr(entity.PriorityLow),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PriorityLow, updated.Priority)
	assert.Equal(t, entity.PrioritySourceManual, updated.PrioritySource)

	updated, err = srv.UpdateTask(context.Background(), ownerID, task.ID, usecase.UpdateTaskInput{
		DueDate: ptr(testNow.Add(100 * time.Hour)),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PriorityLow, updated.Priority)
	assert.Equal(t, entity.PrioritySourceManual, updated.PrioritySource)
}

func TestTaskService_UpdateTask_SuppliedPriorityWinsOverDueDateChange(t *testing.T) {
	srv, _ := newTestTaskService()
	ownerID := uuid.New()
	task := createTestTask(t, srv, ownerID, usecase.CreateTaskInput{
		Title: "T", Description: "D", DueDate: testNow.Add(time.Hour),
	})

	updated, err := srv.UpdateTask(context.Background(), ownerID, task.ID, usecase.UpdateTaskInput{
		DueDate:  ptr(testNow.Add(100 * time.Hour)),
		Priority: ptr(entity.PriorityHigh),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PriorityHigh, updated.Priority)
	assert.Equal(t, entity.PrioritySourceManual, updated.PrioritySource)
}

func TestTaskService_UpdateTask_SameDueDateIsNotAChange(t *testing.T) {
	srv, _ := newTestTaskService()
	ownerID := uuid.New()
	dueDate := testNow.Add(time.Hour)
	task := createTestTask(t, srv, ownerID, usecase.CreateTaskInput{
		Title: "T", Description: "D", DueDate: dueDate,
	})

	// Re-sending the identical instant, even in another zone, neither
	// fails future validation nor flips the priority.
	sameInstant := dueDate.In(time.FixedZone("CST", 8*60*60))
	updated, err := srv.UpdateTask(context.Background(), ownerID, task.ID, usecase.UpdateTaskInput{
		DueDate: ptr(sameInstant),
		Title:   ptr("Renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, entity.PriorityHigh, updated.Priority)
	assert.True(t, updated.DueDate.Equal(dueDate))
}

func TestTaskService_UpdateTask_ChangedDueDateMustBeFuture(t *testing.T) {
	srv, _ := newTestTaskService()
	ownerID := uuid.New()
	task := createTestTask(t, srv, ownerID, usecase.CreateTaskInput{
		Title: "T", Description: "D", DueDate: testNow.Add(time.Hour),
	})

	_, err := srv.UpdateTask(context.Background(), ownerID, task.ID, usecase.UpdateTaskInput{
		DueDate: ptr(testNow.Add(-time.Hour)),
	})
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestTaskService_UpdateTask_StatusValidated(t *testing.T) {
	srv, _ := newTestTaskService()
	ownerID := uuid.New()
	task := createTestTask(t, srv, ownerID, usecase.CreateTaskInput{
		Title: "T", Description: "D", DueDate: testNow.Add(time.Hour),
	})

	_, err := srv.UpdateTask(context.Background(), ownerID, task.ID, usecase.UpdateTaskInput{
		Status: ptr(entity.Status("Cancelled")),
	})
	assertErrorCode(t, err, "VALIDATION_FAILED")

	updated, err := srv.UpdateTask(context.Background(), ownerID, task.ID, usecase.UpdateTaskInput{
		Status: ptr(entity.StatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, updated.Status)
}

func TestTaskService_DeleteTask(t *testing.T) {
	srv, taskRepo := newTestTaskService()
	ownerID := uuid.New()
	task := createTestTask(t, srv, ownerID, usecase.CreateTaskInput{
		Title: "T", Description: "D", DueDate: testNow.Add(time.Hour),
	})

	// A stranger cannot delete it.
	err := srv.DeleteTask(context.Background(), uuid.New(), task.ID)
	assertErrorCode(t, err, "TASK_OWNERSHIP_VIOLATION")

	require.NoError(t, srv.DeleteTask(context.Background(), ownerID, task.ID))

	_, err = taskRepo.FindByID(context.Background(), task.ID)
	assert.Error(t, err)

	// Deleting again reports not found.
	err = srv.DeleteTask(context.Background(), ownerID, task.ID)
	assertErrorCode(t, err, "TASK_NOT_FOUND")
}

func TestTaskService_GetAndListTasks(t *testing.T) {
	srv, _ := newTestTaskService()
	ownerID := uuid.New()
	otherID := uuid.New()

	mine := createTestTask(t, srv, ownerID, usecase.CreateTaskInput{
		Title: "Mine", Description: "D", DueDate: testNow.Add(time.Hour),
	})
	createTestTask(t, srv, otherID, usecase.CreateTaskInput{
		Title: "Theirs", Description: "D", DueDate: testNow.Add(time.Hour),
	})

	got, err := srv.GetTask(context.Background(), ownerID, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Title)

	// Reading someone else's task is forbidden.
	_, err = srv.GetTask(context.Background(), otherID, mine.ID)
	assertErrorCode(t, err, "TASK_OWNERSHIP_VIOLATION")

	list, err := srv.ListTasks(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Mine", list[0].Title)
}
