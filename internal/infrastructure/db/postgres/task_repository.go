package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/tasktracker/internal/core/domain"
	"github.com/taskhive/tasktracker/internal/core/ports"
)

// TaskRepository persists tasks in the tasks table.
type TaskRepository struct {
	pool *pgxpool.Pool
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	const query = `SELECT id, title, is_done, created_on, owner_id
		FROM tasks WHERE owner_id = $1
		ORDER BY is_done, id DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.IsDone, &t.CreatedOn, &t.OwnerID); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `INSERT INTO tasks (title, owner_id)
		VALUES ($1, $2)
		RETURNING id, is_done, created_on`
	row := r.pool.QueryRow(ctx, query, task.Title, task.OwnerID)
	if err := row.Scan(&task.ID, &task.IsDone, &task.CreatedOn); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// Toggle flips is_done in a single statement so concurrent toggles resolve
// at the storage layer (last write wins). The owner_id predicate makes an
// ownership mismatch indistinguishable from a missing row.
func (r *TaskRepository) Toggle(ctx context.Context, ownerID string, taskID int64) (*domain.Task, error) {
	const query = `UPDATE tasks SET is_done = NOT is_done
		WHERE id = $1 AND owner_id = $2
		RETURNING id, title, is_done, created_on, owner_id`
	var t domain.Task
	row := r.pool.QueryRow(ctx, query, taskID, ownerID)
	if err := row.Scan(&t.ID, &t.Title, &t.IsDone, &t.CreatedOn, &t.OwnerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	return &t, nil
}
