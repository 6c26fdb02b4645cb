package ports

import (
	"context"

	"tempo/internal/domain"
)

// TaskStatusUpdater is the engine's best-effort side channel for task
// status. Failures are logged by the caller and never fail the timer
// operation that triggered them.
type TaskStatusUpdater interface {
	MarkInProgress(ctx context.Context, taskID uint) error
}

// TaskStore manages the task catalog timers point at
type TaskStore interface {
	TaskStatusUpdater

	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	Get(ctx context.Context, id uint) (domain.Task, error)
	List(ctx context.Context, includeDone bool) ([]domain.Task, error)
}
