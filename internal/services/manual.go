package services

import (
	"context"
	"fmt"

	"tempo/internal/domain"
	"tempo/internal/logging"
	"tempo/internal/ports"
)

// ManualEntryService reconciles retroactively entered time blocks into
// session records. It validates and normalizes the entry, persists it
// through the session store, and deliberately never touches the live
// timer set: manual entries are historical.
type ManualEntryService struct {
	sessions ports.SessionWriter
}

// NewManualEntryService creates a new ManualEntryService
func NewManualEntryService(sessions ports.SessionWriter) *ManualEntryService {
	return &ManualEntryService{sessions: sessions}
}

// Log normalizes and persists a manual entry, returning the stored
// session. Validation failures come back as domain.FieldErrors with no
// side effects.
func (s *ManualEntryService) Log(ctx context.Context, entry domain.ManualEntry) (domain.Session, error) {
	session, err := entry.Normalize()
	if err != nil {
		return domain.Session{}, err
	}

	id, err := s.sessions.CreateManualSession(ctx, session)
	if err != nil {
		return domain.Session{}, fmt.Errorf("persist manual session: %w", err)
	}
	session.ID = id

	logging.Logger.Info("manual session logged",
		"session_id", id,
		"project_id", session.ProjectID,
		"task_id", session.TaskID,
		"duration_seconds", session.DurationSeconds)
	return session, nil
}
