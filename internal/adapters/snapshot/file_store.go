// Package snapshot persists the active-timer set to a local JSON file.
// The file is a continuity cache for surviving restarts while the
// session store is unreachable; it is never authoritative.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tempo/internal/domain"
	"tempo/internal/ports"
)

// FileStore implements ports.SnapshotStore on a single JSON file
type FileStore struct {
	path string
}

var _ ports.SnapshotStore = (*FileStore)(nil)

// NewFileStore creates a FileStore writing to path. The parent
// directory is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// timerRecord is the JSON serialization of one timer
type timerRecord struct {
	ID                 string    `json:"id"`
	TaskID             uint      `json:"task_id"`
	ProjectID          uint      `json:"project_id"`
	Title              string    `json:"title"`
	EstimateMinutes    int       `json:"estimate_minutes,omitempty"`
	State              string    `json:"state"`
	StartedAt          time.Time `json:"started_at"`
	AccumulatedSeconds int64     `json:"accumulated_seconds"`
	SessionID          uint      `json:"session_id"`
}

// snapshotFile is the on-disk layout
type snapshotFile struct {
	SavedAt time.Time     `json:"saved_at"`
	Timers  []timerRecord `json:"timers"`
}

// Save writes the snapshot atomically: marshal to a temp file in the
// same directory, then rename over the target. A crash mid-write never
// leaves a truncated cache behind.
func (f *FileStore) Save(snapshot domain.Snapshot) error {
	file := snapshotFile{SavedAt: snapshot.SavedAt}
	for _, t := range snapshot.Timers {
		file.Timers = append(file.Timers, timerRecord{
			ID:                 t.ID,
			TaskID:             t.Task.TaskID,
			ProjectID:          t.Task.ProjectID,
			Title:              t.Task.Title,
			EstimateMinutes:    t.Task.EstimateMinutes,
			State:              string(t.State),
			StartedAt:          t.StartedAt,
			AccumulatedSeconds: t.AccumulatedSeconds,
			SessionID:          t.SessionID,
		})
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Load reads the last-saved snapshot. A missing file is an empty
// snapshot, not an error.
func (f *FileStore) Load() (domain.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Snapshot{}, nil
		}
		return domain.Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	snapshot := domain.Snapshot{SavedAt: file.SavedAt}
	for _, r := range file.Timers {
		snapshot.Timers = append(snapshot.Timers, domain.Timer{
			ID: r.ID,
			Task: domain.TaskRef{
				TaskID:          r.TaskID,
				ProjectID:       r.ProjectID,
				Title:           r.Title,
				EstimateMinutes: r.EstimateMinutes,
			},
			State:              domain.TimerState(r.State),
			StartedAt:          r.StartedAt,
			AccumulatedSeconds: r.AccumulatedSeconds,
			SessionID:          r.SessionID,
		})
	}
	return snapshot, nil
}
