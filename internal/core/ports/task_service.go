package ports

import (
	"context"

	"github.com/taskhive/tasktracker/internal/core/domain"
)

// TaskService exposes task CRUD scoped to an authenticated caller. The
// callerID passed to every method is the verified token subject; it is the
// sole authorization context.
type TaskService interface {
	// ListMine returns the caller's tasks: incomplete first, then
	// completed, newest-first within each group.
	ListMine(ctx context.Context, callerID string) ([]domain.Task, error)
	Create(ctx context.Context, callerID, title string) (*domain.Task, error)
	Toggle(ctx context.Context, callerID string, taskID int64) (*domain.Task, error)
}
