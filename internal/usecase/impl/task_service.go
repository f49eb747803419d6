package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "taskboard/internal/delivery/context"
	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	"taskboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// taskService implements the TaskUsecase interface.
type taskService struct {
	taskRepo repository.TaskRepository
	logger   *slog.Logger

	// now is swappable so tests can pin the clock for priority derivation.
	now func() time.Time
}

// TaskServiceParams holds dependencies for TaskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TaskRepo repository.TaskRepository
	Logger   *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		taskRepo: params.TaskRepo,
		logger:   params.Logger,
		now:      time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateTask validates the input, resolves the initial priority mode and
// persists the task for the authenticated owner.
func (srv *taskService) CreateTask(ctx context.Context, ownerID uuid.UUID, input usecase.CreateTaskInput) (*entity.Task, error) {
	now := srv.now()

	// 1. Validate required fields.
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("title and description must not be blank")
	}
	if input.DueDate.IsZero() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("dueDate is required")
	}
	if !input.DueDate.After(now) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("dueDate must be in the future")
	}

	// 2. Status defaults to Pending when omitted.
	status := entity.StatusPending
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("status must be one of Pending, InProgress, Completed")
		}
		status = *input.Status
	}

	// 3. A supplied priority pins the task to MANUAL, otherwise derive it.
	var priority entity.Priority
	var prioritySource entity.PrioritySource
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("priority must be one of Low, Medium, High")
		}
		priority = *input.Priority
		prioritySource = entity.PrioritySourceManual
	} else {
		priority = entity.DerivePriority(input.DueDate, now)
		prioritySource = entity.PrioritySourceAuto
	}

	newTask := &entity.Task{
		Title:          title,
		Description:    description,
		DueDate:        input.DueDate,
		Status:         status,
		Priority:       priority,
		PrioritySource: prioritySource,
		OwnerID:        ownerID,
	}

	// 4. Persist.
	if err := srv.taskRepo.Create(ctx, newTask); err != nil {
		srv.log(ctx).Error("Failed to create task", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, err
	}

	// 5. Re-fetch by id to confirm durability.
	createdTask, err := srv.taskRepo.FindByID(ctx, newTask.ID)
	if err != nil {
		srv.log(ctx).Error("Post-create read failed", slog.Any("taskID", newTask.ID), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("task not readable after create")
	}

	srv.log(ctx).Debug("Task created",
		slog.Any("taskID", createdTask.ID),
		slog.String("priority", createdTask.Priority.String()),
		slog.String("prioritySource", createdTask.PrioritySource.String()),
	)

	return createdTask, nil
}

// GetTask returns a single task after an ownership check.
func (srv *taskService) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error) {
	return srv.loadOwnedTask(ctx, ownerID, taskID)
}

// ListTasks returns all tasks owned by the user, newest first.
func (srv *taskService) ListTasks(ctx context.Context, ownerID uuid.UUID) ([]*entity.Task, error) {
	tasks, err := srv.taskRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		srv.log(ctx).Error("Failed to list tasks", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list tasks")
	}

	return tasks, nil
}

// UpdateTask applies a partial patch to an owned task. Field validation and
// the MANUAL/AUTO priority transition rules live here.
func (srv *taskService) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, input usecase.UpdateTaskInput) (*entity.Task, error) {
	now := srv.now()

	// 1. Existence and ownership.
	task, err := srv.loadOwnedTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	// 2. An empty patch is an error.
	if !input.HasAnyField() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("at least one of title, description, status, dueDate, priority must be supplied")
	}

	// 3. dueDate only counts as changed when the instant actually differs;
	// re-sending the current value must not trigger validation or recompute.
	dueDateChanged := false
	if input.DueDate != nil && !input.DueDate.Equal(task.DueDate) {
		if !input.DueDate.After(now) {
			return nil, domainerrors.ErrValidationFailed.WithDetails("dueDate must be in the future")
		}
		task.DueDate = *input.DueDate
		dueDateChanged = true
	}

	// 4. Supplying title/description, even as an empty string, triggers the
	// blank check.
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("title must not be blank")
		}
		task.Title = title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("description must not be blank")
		}
		task.Description = description
	}

	// 5. Status, if supplied, must be a legal enum value.
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("status must be one of Pending, InProgress, Completed")
		}
		task.Status = *input.Status
	}

	// 6. Priority resolution, after all other fields. An explicit priority
	// wins over a due-date change and pins the task to MANUAL. A due-date
	// change alone recomputes only while already AUTO; MANUAL is sticky.
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("priority must be one of Low, Medium, High")
		}
		task.Priority = *input.Priority
		task.PrioritySource = entity.PrioritySourceManual
	} else if dueDateChanged && task.PrioritySource == entity.PrioritySourceAuto {
		task.Priority = entity.DerivePriority(task.DueDate, now)
	}

	// 7. Persist.
	if err := srv.taskRepo.Update(ctx, task); err != nil {
		srv.log(ctx).Error("Failed to update task", slog.Any("taskID", taskID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Task updated",
		slog.Any("taskID", task.ID),
		slog.String("priority", task.Priority.String()),
		slog.String("prioritySource", task.PrioritySource.String()),
	)

	return task, nil
}

// DeleteTask removes an owned task. No soft delete.
func (srv *taskService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if _, err := srv.loadOwnedTask(ctx, ownerID, taskID); err != nil {
		return err
	}

	if err := srv.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domainerrors.ErrTaskNotFound.WrapMessage("task already deleted")
		}
		srv.log(ctx).Error("Failed to delete task", slog.Any("taskID", taskID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Debug("Task deleted", slog.Any("taskID", taskID))

	return nil
}

// loadOwnedTask fetches a task and enforces that the caller owns it.
func (srv *taskService) loadOwnedTask(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error) {
	task, err := srv.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound.WrapMessage("task does not exist")
		}

		return nil, errors.Wrap(err, "failed to find task")
	}

	if task.OwnerID != ownerID {
		srv.log(ctx).Warn("Ownership violation",
			slog.Any("taskID", taskID),
			slog.Any("ownerID", task.OwnerID),
			slog.Any("callerID", ownerID),
		)

		return nil, domainerrors.ErrTaskOwnershipViolation.WrapMessage("task belongs to another user")
	}

	return task, nil
}
