package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/store"
)

const taskServiceName = "task service"

// TaskService provides owner-scoped task operations.
// A task owned by another account is reported as ErrTaskNotFound, never as
// forbidden, so callers cannot probe for foreign task IDs.
type TaskService interface {
	// ListOwned returns every task owned by ownerID.
	ListOwned(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// GetOwned returns the task if it exists and is owned by ownerID.
	GetOwned(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error)

	// Create saves a new pending task for ownerID.
	Create(
		ctx context.Context,
		ownerID uuid.UUID,
		title, description string,
		difficulty domain.Difficulty,
	) (*domain.Task, error)

	// Update overwrites the title, description and difficulty of an owned task.
	// The done flag is preserved.
	Update(
		ctx context.Context,
		taskID, ownerID uuid.UUID,
		title, description string,
		difficulty domain.Difficulty,
	) (*domain.Task, error)

	// ToggleDone flips the done flag of an owned task.
	ToggleDone(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error)

	// Delete removes an owned task.
	Delete(ctx context.Context, taskID, ownerID uuid.UUID) error
}

type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// ListOwned implements TaskService.ListOwned.
func (s *taskServiceImpl) ListOwned(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("owner_id", ownerID.String()),
			slog.String("error", redact.Error(err)))
		return nil, NewServiceError(taskServiceName, "list_owned", "failed to list tasks", err)
	}

	return tasks, nil
}

// GetOwned implements TaskService.GetOwned.
func (s *taskServiceImpl) GetOwned(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error) {
	return s.getOwned(ctx, "get_owned", taskID, ownerID)
}

func (s *taskServiceImpl) getOwned(
	ctx context.Context,
	operation string,
	taskID, ownerID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.Get(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for owner",
				slog.String("task_id", taskID.String()),
				slog.String("owner_id", ownerID.String()))
			return nil, NewServiceError(taskServiceName, operation, "task not found", ErrTaskNotFound)
		}
		log.Error("failed to load task",
			slog.String("task_id", taskID.String()),
			slog.String("owner_id", ownerID.String()),
			slog.String("error", redact.Error(err)))
		return nil, NewServiceError(taskServiceName, operation, "failed to load task", err)
	}

	return task, nil
}

// Create implements TaskService.Create.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	title, description string,
	difficulty domain.Difficulty,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(ownerID, title, description, difficulty)
	if err != nil {
		return nil, NewServiceError(taskServiceName, "create", "invalid task", err)
	}

	rows, err := s.tasks.Upsert(ctx, task)
	if err != nil {
		log.Error("failed to save task",
			slog.String("owner_id", ownerID.String()),
			slog.String("error", redact.Error(err)))
		return nil, NewServiceError(taskServiceName, "create", "failed to save task", err)
	}
	if rows != 1 {
		log.Error("unexpected affected row count on task insert",
			slog.String("task_id", task.ID.String()),
			slog.Int64("rows", rows))
		return nil, NewServiceError(taskServiceName, "create", "unexpected row count", ErrIntegrityFault)
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("owner_id", ownerID.String()))

	return task, nil
}

// Update implements TaskService.Update.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	taskID, ownerID uuid.UUID,
	title, description string,
	difficulty domain.Difficulty,
) (*domain.Task, error) {
	task, err := s.getOwned(ctx, "update", taskID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := task.Overwrite(title, description, difficulty); err != nil {
		return nil, NewServiceError(taskServiceName, "update", "invalid task", err)
	}

	if err := s.persist(ctx, "update", task); err != nil {
		return nil, err
	}

	return task, nil
}

// ToggleDone implements TaskService.ToggleDone.
func (s *taskServiceImpl) ToggleDone(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error) {
	task, err := s.getOwned(ctx, "toggle_done", taskID, ownerID)
	if err != nil {
		return nil, err
	}

	task.ToggleDone()

	if err := s.persist(ctx, "toggle_done", task); err != nil {
		return nil, err
	}

	return task, nil
}

// persist writes an already loaded task back. The task may have been deleted
// between the read and the write; that surfaces as ErrTaskNotFound.
func (s *taskServiceImpl) persist(ctx context.Context, operation string, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.tasks.Update(ctx, task)
	if err != nil {
		log.Error("failed to update task",
			slog.String("task_id", task.ID.String()),
			slog.String("error", redact.Error(err)))
		return NewServiceError(taskServiceName, operation, "failed to update task", err)
	}

	switch {
	case rows == 0:
		log.Debug("task vanished before update", slog.String("task_id", task.ID.String()))
		return NewServiceError(taskServiceName, operation, "task not found", ErrTaskNotFound)
	case rows > 1:
		log.Error("unexpected affected row count on task update",
			slog.String("task_id", task.ID.String()),
			slog.Int64("rows", rows))
		return NewServiceError(taskServiceName, operation, "unexpected row count", ErrIntegrityFault)
	}

	return nil
}

// Delete implements TaskService.Delete.
func (s *taskServiceImpl) Delete(ctx context.Context, taskID, ownerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.getOwned(ctx, "delete", taskID, ownerID)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, task.ID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return NewServiceError(taskServiceName, "delete", "task not found", ErrTaskNotFound)
		}
		log.Error("failed to delete task",
			slog.String("task_id", taskID.String()),
			slog.String("error", redact.Error(err)))
		return NewServiceError(taskServiceName, "delete", "failed to delete task", err)
	}

	log.Debug("task deleted", slog.String("task_id", taskID.String()))
	return nil
}
