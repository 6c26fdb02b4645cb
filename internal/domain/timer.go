package domain

import "time"

// TimerState represents the lifecycle state of an active timer
type TimerState string

const (
	StateRunning TimerState = "running"
	StatePaused  TimerState = "paused"
)

// TaskRef identifies the task a timer is attached to. The engine only
// cares about identity; the display fields ride along for observers.
type TaskRef struct {
	TaskID          uint
	ProjectID       uint
	Title           string
	EstimateMinutes int
}

// Timer is the in-memory record of live time tracking for one task.
// It is distinct from the persisted session: a timer exists only while
// tracking is active, and is linked to its session via SessionID.
type Timer struct {
	ID                 string
	Task               TaskRef
	State              TimerState
	StartedAt          time.Time // start of the current running interval; zero while paused
	AccumulatedSeconds int64     // seconds banked from previous running intervals
	SessionID          uint
}

// Running reports whether the timer is currently accumulating time.
func (t Timer) Running() bool { return t.State == StateRunning }

// ElapsedSeconds computes the total elapsed time of the timer at the
// given instant. While paused the result is the banked seconds and is
// independent of now. While running, the current interval is added,
// truncated to whole seconds. If now is before StartedAt (clock skew)
// the current interval counts as zero.
func (t Timer) ElapsedSeconds(now time.Time) int64 {
	if t.State != StateRunning || t.StartedAt.IsZero() {
		return t.AccumulatedSeconds
	}
	delta := int64(now.Sub(t.StartedAt) / time.Second)
	if delta < 0 {
		return t.AccumulatedSeconds
	}
	return t.AccumulatedSeconds + delta
}

// TotalElapsedSeconds sums elapsed time across timers, evaluating every
// timer against the same now sample so concurrent timers never skew
// relative to each other within one report.
func TotalElapsedSeconds(timers []Timer, now time.Time) int64 {
	var total int64
	for _, t := range timers {
		total += t.ElapsedSeconds(now)
	}
	return total
}

// Snapshot is the serialized form of the active-timer set kept in the
// local cache. It is a continuity aid, never a source of truth when the
// session store is reachable.
type Snapshot struct {
	SavedAt time.Time
	Timers  []Timer
}
