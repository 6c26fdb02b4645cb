package ports

import (
	"context"
	"time"

	"tempo/internal/domain"
)

// SessionWriter persists timer lifecycle transitions and manual entries
type SessionWriter interface {
	// CreateOpenSession records the start of live tracking and returns
	// the new session id. The session stays open until CloseSession.
	CreateOpenSession(ctx context.Context, taskID, projectID uint, startedAt time.Time) (uint, error)

	// CloseSession sets the end time and final duration of an open
	// session. Closing an unknown or already-closed session returns
	// domain.ErrSessionNotFound.
	CloseSession(ctx context.Context, sessionID uint, endedAt time.Time, durationSeconds int64) error

	// CreateManualSession persists an already-normalized manual entry
	// and returns the new session id.
	CreateManualSession(ctx context.Context, session domain.Session) (uint, error)
}

// SessionReader reads persisted sessions
type SessionReader interface {
	// ListOpenSessions returns every open session joined with its task
	// metadata, for hydration.
	ListOpenSessions(ctx context.Context) ([]domain.OpenSession, error)

	// SessionsInRange returns closed sessions whose start falls inside
	// [from, to), ordered by start time.
	SessionsInRange(ctx context.Context, from, to time.Time) ([]domain.Session, error)
}

// SessionStore is the composite system-of-record interface. It is
// authoritative: on any conflict with the local snapshot, the session
// store wins.
type SessionStore interface {
	SessionReader
	SessionWriter
	Close() error
}
