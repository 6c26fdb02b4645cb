package ports

import "tempo/internal/domain"

// SnapshotStore caches the active-timer set locally so a restart can
// survive a session-store outage. Writes are best-effort: callers log
// failures and move on, and a failed or empty Load is treated as an
// empty cache.
type SnapshotStore interface {
	Save(snapshot domain.Snapshot) error
	Load() (domain.Snapshot, error)
}
