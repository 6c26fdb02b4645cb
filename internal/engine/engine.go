// Package engine owns the in-memory set of active timers and enforces
// the per-timer state machine. All durable persistence goes through the
// injected session store (authoritative) and snapshot store (local
// cache); elapsed-time math lives in the domain package as pure
// functions, so a display tick is always a read and never a mutation.
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tempo/internal/clock"
	"tempo/internal/domain"
	"tempo/internal/logging"
	"tempo/internal/ports"
)

// Engine coordinates the active-timer set. All four lifecycle
// operations are safe for concurrent use; session-store calls happen
// outside the lock so a slow network call for one timer never delays
// operations on another.
type Engine struct {
	sessions  ports.SessionStore
	snapshots ports.SnapshotStore
	tasks     ports.TaskStatusUpdater
	clock     clock.Clock

	mu       sync.Mutex
	timers   map[string]domain.Timer
	byTask   map[uint]string   // task id -> timer id, one timer per task
	pending  map[uint]struct{} // tasks whose create call is in flight
	selected string            // convenience projection for single-timer UIs
	subs     []func(Event)
}

// New creates an Engine with injected collaborators. Call Hydrate
// before using it.
func New(sessions ports.SessionStore, snapshots ports.SnapshotStore, tasks ports.TaskStatusUpdater, clk clock.Clock) *Engine {
	return &Engine{
		sessions:  sessions,
		snapshots: snapshots,
		tasks:     tasks,
		clock:     clk,
		timers:    make(map[string]domain.Timer),
		byTask:    make(map[uint]string),
		pending:   make(map[uint]struct{}),
	}
}

// Subscribe registers fn for lifecycle events. Subscribers are invoked
// synchronously, outside the engine lock, in registration order.
// Subscribe before starting concurrent use of the engine.
func (e *Engine) Subscribe(fn func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

func (e *Engine) emit(ev Event) {
	e.mu.Lock()
	subs := make([]func(Event), len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// Start begins tracking time for a task. If a timer for the task
// already exists it is resumed (when paused) or just selected (when
// running) instead of duplicated. Otherwise an open session is created
// in the session store first; no timer is added when that call fails,
// so there is never local state without a backing session. A second
// Start for a task whose create call is still in flight fails with
// domain.ErrTimerNotReady.
func (e *Engine) Start(ctx context.Context, task domain.TaskRef) (domain.Timer, error) {
	e.mu.Lock()
	if id, ok := e.byTask[task.TaskID]; ok {
		t := e.timers[id]
		e.selected = id
		if t.State == domain.StateRunning {
			e.mu.Unlock()
			return t, nil
		}
		// Paused timer for this task: Start behaves as Resume
		now := e.clock.Now()
		t.State = domain.StateRunning
		t.StartedAt = now
		e.timers[id] = t
		e.mu.Unlock()

		e.saveSnapshot()
		e.emit(Event{Type: EventResumed, TimerID: t.ID, TaskID: t.Task.TaskID, ProjectID: t.Task.ProjectID, Timestamp: now})
		return t, nil
	}
	if _, ok := e.pending[task.TaskID]; ok {
		e.mu.Unlock()
		return domain.Timer{}, fmt.Errorf("task %d: %w", task.TaskID, domain.ErrTimerNotReady)
	}
	e.pending[task.TaskID] = struct{}{}
	e.mu.Unlock()

	now := e.clock.Now()
	sessionID, err := e.sessions.CreateOpenSession(ctx, task.TaskID, task.ProjectID, now)

	e.mu.Lock()
	delete(e.pending, task.TaskID)
	if err != nil {
		e.mu.Unlock()
		return domain.Timer{}, fmt.Errorf("create session for task %d: %w", task.TaskID, err)
	}
	t := domain.Timer{
		ID:        uuid.NewString(),
		Task:      task,
		State:     domain.StateRunning,
		StartedAt: now,
		SessionID: sessionID,
	}
	e.timers[t.ID] = t
	e.byTask[task.TaskID] = t.ID
	e.selected = t.ID
	e.mu.Unlock()

	// Best-effort side effect; a failed status update never fails the start
	if err := e.tasks.MarkInProgress(ctx, task.TaskID); err != nil {
		logging.Logger.Warn("failed to mark task in progress", "task_id", task.TaskID, "error", err)
	}

	e.saveSnapshot()
	e.emit(Event{Type: EventStarted, TimerID: t.ID, TaskID: task.TaskID, ProjectID: task.ProjectID, Timestamp: now})
	return t, nil
}

// Pause banks the current running interval into AccumulatedSeconds and
// clears the interval start. Pausing an already-paused or unknown timer
// is a no-op: double-clicks and stale UI references are expected, not
// errors. No session-store call is made; the session stays open.
func (e *Engine) Pause(timerID string) (domain.Timer, error) {
	e.mu.Lock()
	t, ok := e.timers[timerID]
	if !ok || t.State == domain.StatePaused {
		e.mu.Unlock()
		return t, nil
	}

	now := e.clock.Now()
	t.AccumulatedSeconds = t.ElapsedSeconds(now)
	t.State = domain.StatePaused
	t.StartedAt = time.Time{}
	e.timers[timerID] = t
	e.mu.Unlock()

	e.saveSnapshot()
	e.emit(Event{Type: EventPaused, TimerID: t.ID, TaskID: t.Task.TaskID, ProjectID: t.Task.ProjectID, Timestamp: now})
	return t, nil
}

// Resume restarts a paused timer's running interval. AccumulatedSeconds
// is untouched; it already holds all previously banked time. Resuming
// an already-running or unknown timer is a no-op.
func (e *Engine) Resume(timerID string) (domain.Timer, error) {
	e.mu.Lock()
	t, ok := e.timers[timerID]
	if !ok || t.State == domain.StateRunning {
		e.mu.Unlock()
		return t, nil
	}

	now := e.clock.Now()
	t.State = domain.StateRunning
	t.StartedAt = now
	e.timers[timerID] = t
	e.mu.Unlock()

	e.saveSnapshot()
	e.emit(Event{Type: EventResumed, TimerID: t.ID, TaskID: t.Task.TaskID, ProjectID: t.Task.ProjectID, Timestamp: now})
	return t, nil
}

// Stop commits the timer's final elapsed duration to the session store
// and removes it from the active set. On a store failure the timer
// stays in the set so no tracked time is lost, and the caller may
// retry. Stopping an unknown timer id is an error: it indicates a
// stale reference or double-stop in the caller.
func (e *Engine) Stop(ctx context.Context, timerID string) (int64, error) {
	e.mu.Lock()
	t, ok := e.timers[timerID]
	e.mu.Unlock()
	if !ok {
		return 0, fmt.Errorf("timer %s: %w", timerID, domain.ErrTimerNotFound)
	}

	now := e.clock.Now()
	final := t.ElapsedSeconds(now)

	if err := e.sessions.CloseSession(ctx, t.SessionID, now, final); err != nil {
		return 0, fmt.Errorf("close session %d for task %d: %w", t.SessionID, t.Task.TaskID, err)
	}

	e.mu.Lock()
	delete(e.timers, timerID)
	delete(e.byTask, t.Task.TaskID)
	if e.selected == timerID {
		e.selected = ""
		for id := range e.timers {
			e.selected = id
			break
		}
	}
	e.mu.Unlock()

	e.saveSnapshot()
	e.emit(Event{
		Type:                 EventStopped,
		TimerID:              t.ID,
		TaskID:               t.Task.TaskID,
		ProjectID:            t.Task.ProjectID,
		Timestamp:            now,
		FinalDurationSeconds: final,
	})
	return final, nil
}

// Hydrate rebuilds the active-timer set at process start. The session
// store is authoritative: its open sessions become Running timers with
// zero banked time and the session's recorded start, so elapsed time
// reflects real wall-clock time across restarts. Only when the store is
// unreachable does the local snapshot restore timers exactly as last
// serialized. Either way the snapshot is rewritten afterwards so the
// two stay consistent.
func (e *Engine) Hydrate(ctx context.Context) error {
	open, err := e.sessions.ListOpenSessions(ctx)
	if err != nil {
		logging.Logger.Warn("hydration from session store failed, falling back to local snapshot", "error", err)
		snap, lerr := e.snapshots.Load()
		if lerr != nil {
			logging.Logger.Warn("local snapshot load failed, starting empty", "error", lerr)
			snap = domain.Snapshot{}
		}
		e.replaceTimers(snap.Timers)
		e.saveSnapshot()
		return nil
	}

	timers := make([]domain.Timer, 0, len(open))
	for _, s := range open {
		timers = append(timers, domain.Timer{
			ID:        uuid.NewString(),
			Task:      s.Task,
			State:     domain.StateRunning,
			StartedAt: s.StartedAt,
			SessionID: s.SessionID,
		})
	}
	e.replaceTimers(timers)
	e.saveSnapshot()
	return nil
}

// replaceTimers swaps the whole active set, dropping whatever was there
func (e *Engine) replaceTimers(timers []domain.Timer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.timers = make(map[string]domain.Timer, len(timers))
	e.byTask = make(map[uint]string, len(timers))
	e.selected = ""
	for _, t := range timers {
		if _, dup := e.byTask[t.Task.TaskID]; dup {
			logging.Logger.Warn("dropping duplicate timer for task during hydration", "task_id", t.Task.TaskID)
			continue
		}
		e.timers[t.ID] = t
		e.byTask[t.Task.TaskID] = t.ID
		if e.selected == "" {
			e.selected = t.ID
		}
	}
}

// Timers returns a copy of the active set, ordered by task id for
// stable display.
func (e *Engine) Timers() []domain.Timer {
	e.mu.Lock()
	defer e.mu.Unlock()

	timers := make([]domain.Timer, 0, len(e.timers))
	for _, t := range e.timers {
		timers = append(timers, t)
	}
	sort.Slice(timers, func(i, j int) bool {
		return timers[i].Task.TaskID < timers[j].Task.TaskID
	})
	return timers
}

// TimerForTask returns the active timer for a task, if any.
func (e *Engine) TimerForTask(taskID uint) (domain.Timer, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, ok := e.byTask[taskID]
	if !ok {
		return domain.Timer{}, false
	}
	return e.timers[id], true
}

// Selected returns the currently selected timer. Selection is a UI
// convenience, not engine correctness state; when the selected timer
// was stopped an arbitrary remaining timer takes its place.
func (e *Engine) Selected() (domain.Timer, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.selected == "" {
		return domain.Timer{}, false
	}
	t, ok := e.timers[e.selected]
	return t, ok
}

// Select marks a timer as selected. Unknown ids are ignored.
func (e *Engine) Select(timerID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.timers[timerID]; ok {
		e.selected = timerID
	}
}

// Now exposes the engine's clock sample so callers evaluate all timers
// against a single instant.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// saveSnapshot writes the current active set to the local cache.
// Fire-and-forget: the session store remains authoritative, so a
// failed snapshot write is logged and never surfaced.
func (e *Engine) saveSnapshot() {
	e.mu.Lock()
	timers := make([]domain.Timer, 0, len(e.timers))
	for _, t := range e.timers {
		timers = append(timers, t)
	}
	snap := domain.Snapshot{SavedAt: e.clock.Now(), Timers: timers}
	e.mu.Unlock()

	if err := e.snapshots.Save(snap); err != nil {
		logging.Logger.Warn("failed to save timer snapshot", "error", err)
	}
}
