package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Get implements store.TaskStore.Get
func (s *PostgresTaskStore) Get(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, title, description, difficulty, is_done, created_at
		FROM tasks
		WHERE id = $1 AND owner_id = $2
	`

	var task domain.Task
	var difficulty string
	err := s.db.QueryRowContext(ctx, query, taskID, ownerID).Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&difficulty,
		&task.IsDone,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to load task",
			slog.String("task_id", taskID.String()),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "get", "query failed", err)
	}
	task.Difficulty = domain.Difficulty(difficulty)

	return &task, nil
}

// ListByOwner implements store.TaskStore.ListByOwner
func (s *PostgresTaskStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, title, description, difficulty, is_done, created_at
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("owner_id", ownerID.String()),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "list_by_owner", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		var task domain.Task
		var difficulty string
		if err := rows.Scan(
			&task.ID,
			&task.OwnerID,
			&task.Title,
			&task.Description,
			&difficulty,
			&task.IsDone,
			&task.CreatedAt,
		); err != nil {
			return nil, store.NewStoreError("task", "list_by_owner", "scan failed", err)
		}
		task.Difficulty = domain.Difficulty(difficulty)
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list_by_owner", "iteration failed", err)
	}

	return tasks, nil
}

// Upsert implements store.TaskStore.Upsert
// An existing row with the same ID is only overwritten when it has the same
// owner; otherwise nothing is written and 0 is returned.
func (s *PostgresTaskStore) Upsert(ctx context.Context, task *domain.Task) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return 0, store.NewStoreError("task", "upsert", "validation failed", err)
	}

	query := `
		INSERT INTO tasks (id, owner_id, title, description, difficulty, is_done, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
			description = EXCLUDED.description,
			difficulty = EXCLUDED.difficulty,
			is_done = EXCLUDED.is_done
		WHERE tasks.owner_id = EXCLUDED.owner_id
	`
	result, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		string(task.Difficulty),
		task.IsDone,
		task.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: account with ID %s not found", store.ErrInvalidEntity, task.OwnerID)
		}
		log.Error("failed to upsert task",
			slog.String("task_id", task.ID.String()),
			slog.String("error", redact.Error(err)))
		return 0, store.NewStoreError("task", "upsert", "write failed", MapError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("task", "upsert", "failed to get rows affected", err)
	}
	return rows, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return 0, store.NewStoreError("task", "update", "validation failed", err)
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, difficulty = $3, is_done = $4
		WHERE id = $5 AND owner_id = $6
	`
	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		string(task.Difficulty),
		task.IsDone,
		task.ID,
		task.OwnerID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("task_id", task.ID.String()),
			slog.String("error", redact.Error(err)))
		return 0, store.NewStoreError("task", "update", "write failed", MapError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("task", "update", "failed to get rows affected", err)
	}
	return rows, nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("task_id", taskID.String()),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "delete", "delete failed", err)
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}
