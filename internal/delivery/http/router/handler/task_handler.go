package handler

import (
	"net/http"
	"time"

	"taskboard/internal/delivery/http/middleware"
	"taskboard/internal/delivery/http/response"
	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type createTaskRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	DueDate     *time.Time `json:"dueDate" validate:"required"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
}

// updateTaskRequest distinguishes omitted fields (nil) from supplied ones,
// including explicitly supplied empty strings.
type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
}

// TaskHandler holds dependencies for task-related handlers.
type TaskHandler struct {
	uc usecase.TaskUsecase
}

// NewTaskHandler is the constructor for TaskHandler, injected by Fx.
func NewTaskHandler(uc usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// CreateTask handles task creation for the authenticated user.
func (h *TaskHandler) CreateTask(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	var input createTaskRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	ucInput := usecase.CreateTaskInput{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     *input.DueDate,
	}
	if input.Status != nil {
		status := entity.Status(*input.Status)
		ucInput.Status = &status
	}
	if input.Priority != nil {
		priority := entity.Priority(*input.Priority)
		ucInput.Priority = &priority
	}

	task, err := h.uc.CreateTask(c.Request().Context(), ownerID, ucInput)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, task, "Task created successfully")
}

// GetTask returns a single owned task.
func (h *TaskHandler) GetTask(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		return err
	}

	task, err := h.uc.GetTask(c.Request().Context(), ownerID, taskID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, task, "Task retrieved successfully")
}

// ListTasks returns every task owned by the authenticated user.
func (h *TaskHandler) ListTasks(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	tasks, err := h.uc.ListTasks(c.Request().Context(), ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tasks, "Tasks retrieved successfully")
}

// UpdateTask applies a partial patch to an owned task.
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		return err
	}

	var input updateTaskRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}

	ucInput := usecase.UpdateTaskInput{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
	}
	if input.Status != nil {
		status := entity.Status(*input.Status)
		ucInput.Status = &status
	}
	if input.Priority != nil {
		priority := entity.Priority(*input.Priority)
		ucInput.Priority = &priority
	}

	task, err := h.uc.UpdateTask(c.Request().Context(), ownerID, taskID, ucInput)
	if err != nil {
		return errors.WithStack(err)
	}

	// The update endpoint intentionally answers 201 with the updated record.
	return response.Success(c, http.StatusCreated, task, "Task updated successfully")
}

// DeleteTask removes an owned task.
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteTask(c.Request().Context(), ownerID, taskID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Task deleted successfully")
}

// callerID extracts the authenticated user's ID set by the auth middleware.
func callerID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthenticated.WithDetails("user ID missing from request context")
	}

	return userID, nil
}

// parseTaskID validates the :taskId path parameter.
func parseTaskID(c echo.Context) (uuid.UUID, error) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("taskId must be a valid UUID")
	}

	return taskID, nil
}
