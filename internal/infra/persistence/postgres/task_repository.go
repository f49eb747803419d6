package postgres

import (
	"context"

	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	"taskboard/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// taskRepository implements the domain.TaskRepository interface using GORM.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

// FindByID retrieves a single task by its unique ID.
func (repo *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	var taskM model.TaskModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&taskM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to find task by id")
	}

	return toTaskDomain(&taskM), nil
}

// FindByOwnerID retrieves all tasks owned by the given user, newest first.
func (repo *taskRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Task, error) {
	var taskMs []model.TaskModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&taskMs).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find tasks by owner id")
	}

	tasks := make([]*entity.Task, 0, len(taskMs))
	for i := range taskMs {
		tasks = append(tasks, toTaskDomain(&taskMs[i]))
	}

	return tasks, nil
}

// Create persists a new task entity to the database.
func (repo *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)

	if err := repo.db.WithContext(ctx).Create(taskM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrTaskCreationFailed.WrapMessage("owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create task")
	}

	task.ID = taskM.ID
	task.CreatedAt = taskM.CreatedAt
	task.UpdatedAt = taskM.UpdatedAt

	return nil
}

// Update modifies an existing task row with the entity's current field values.
func (repo *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)

	// Save writes every column, so cleared fields (e.g. a description set to
	// empty) persist correctly where Updates would skip zero values.
	result := repo.db.WithContext(ctx).Save(taskM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update task")
	}

	task.UpdatedAt = taskM.UpdatedAt

	return nil
}

// Delete removes a task by its ID.
func (repo *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TaskModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

// toTaskDomain maps a persistence model to a pure domain entity.
func toTaskDomain(taskM *model.TaskModel) *entity.Task {
	return &entity.Task{
		ID:             taskM.ID,
		Title:          taskM.Title,
		Description:    taskM.Description,
		DueDate:        taskM.DueDate,
		Status:         entity.Status(taskM.Status),
		Priority:       entity.Priority(taskM.Priority),
		PrioritySource: entity.PrioritySource(taskM.PrioritySource),
		OwnerID:        taskM.OwnerID,
		CreatedAt:      taskM.CreatedAt,
		UpdatedAt:      taskM.UpdatedAt,
	}
}

// fromTaskDomain maps a domain entity to a persistence model.
func fromTaskDomain(task *entity.Task) *model.TaskModel {
	return &model.TaskModel{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		DueDate:        task.DueDate,
		Status:         task.Status.String(),
		Priority:       task.Priority.String(),
		PrioritySource: task.PrioritySource.String(),
		OwnerID:        task.OwnerID,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}
