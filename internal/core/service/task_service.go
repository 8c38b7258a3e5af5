package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/taskhive/tasktracker/internal/core/domain"
	"github.com/taskhive/tasktracker/internal/core/ports"
)

// TaskService implements task CRUD scoped to the authenticated caller.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

// ListMine returns the caller's tasks in a total, deterministic order:
// incomplete before completed, newest-first (descending id) within each
// group. The order is enforced here so it holds for any store.
func (s *TaskService) ListMine(ctx context.Context, callerID string) ([]domain.Task, error) {
	tasks, err := s.repo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].IsDone != tasks[j].IsDone {
			return !tasks[i].IsDone
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, callerID, title string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if len(title) > domain.MaxTitleLength {
		return nil, domain.ErrTitleTooLong
	}

	task := &domain.Task{
		Title:   title,
		OwnerID: callerID,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Int64("task_id", task.ID).Str("owner_id", callerID).Msg("task created")

	return task, nil
}

// Toggle flips the done flag on the caller's task. An ownership mismatch is
// reported as domain.ErrTaskNotFound, same as a task that does not exist.
func (s *TaskService) Toggle(ctx context.Context, callerID string, taskID int64) (*domain.Task, error) {
	return s.repo.Toggle(ctx, callerID, taskID)
}
