package ports

import (
	"context"

	"github.com/taskhive/tasktracker/internal/core/domain"
)

// TaskRepository defines the interface for task persistence.
type TaskRepository interface {
	// ListByOwner returns every task owned by ownerID.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	// Create inserts the task and fills in its store-assigned ID and
	// creation timestamp.
	Create(ctx context.Context, task *domain.Task) error
	// Toggle flips is_done on the task identified by (ownerID, taskID)
	// and returns the updated record, or domain.ErrTaskNotFound when no
	// such task is owned by ownerID.
	Toggle(ctx context.Context, ownerID string, taskID int64) (*domain.Task, error)
}
