package engine

import "time"

// EventType identifies a timer lifecycle transition
type EventType string

const (
	EventStarted EventType = "started"
	EventPaused  EventType = "paused"
	EventResumed EventType = "resumed"
	EventStopped EventType = "stopped"
)

// Event is emitted on every timer lifecycle transition. Observers
// (notifications, analytics, the TUI) subscribe via Engine.Subscribe;
// the engine itself holds no observer state beyond the subscriber list.
type Event struct {
	Type      EventType
	TimerID   string
	TaskID    uint
	ProjectID uint
	Timestamp time.Time

	// FinalDurationSeconds is set only on EventStopped
	FinalDurationSeconds int64
}
