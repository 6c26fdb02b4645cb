package domain

import "time"

// Session is the durable record of a tracked time interval against a
// task and project. EndedAt is nil while the session is open; the final
// duration is set exactly once, when the session is closed.
type Session struct {
	ID              uint
	TaskID          uint
	ProjectID       uint
	StartedAt       time.Time
	EndedAt         *time.Time
	DurationSeconds int64
	IsManual        bool
	Intensity       int // 1-5, manual entries only; 0 for live sessions
}

// OpenSession is an open session row joined with its task metadata,
// returned by the session store during hydration.
type OpenSession struct {
	SessionID uint
	Task      TaskRef
	StartedAt time.Time
}

// Task status values
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// Task is a unit of work timers can be attached to
type Task struct {
	ID              uint
	ProjectID       uint
	Title           string
	EstimateMinutes int
	Status          string
	CreatedAt       time.Time
}

// Ref returns the reference the timer engine tracks for this task.
func (t Task) Ref() TaskRef {
	return TaskRef{
		TaskID:          t.ID,
		ProjectID:       t.ProjectID,
		Title:           t.Title,
		EstimateMinutes: t.EstimateMinutes,
	}
}
