package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
// Every read is keyed by the (task, owner) pair so that records owned by
// another account are indistinguishable from missing ones.
type TaskStore interface {
	// Get retrieves the task with the given ID owned by ownerID.
	// Returns ErrTaskNotFound if it does not exist or belongs to someone else.
	Get(ctx context.Context, taskID, ownerID uuid.UUID) (*domain.Task, error)

	// ListByOwner returns all tasks owned by ownerID, oldest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// Upsert inserts the task, or overwrites it if a task with the same ID and
	// owner exists. Returns the number of affected rows.
	Upsert(ctx context.Context, task *domain.Task) (int64, error)

	// Update overwrites an existing task matched by ID and owner.
	// Returns the number of affected rows; 0 means the task no longer exists.
	Update(ctx context.Context, task *domain.Task) (int64, error)

	// Delete removes a task by ID.
	// Returns ErrTaskNotFound if no row was removed.
	Delete(ctx context.Context, taskID uuid.UUID) error
}
