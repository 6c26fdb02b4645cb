package cmd

import (
	"context"

	"tempo/internal/adapters/snapshot"
	"tempo/internal/adapters/storage"
	"tempo/internal/clock"
	"tempo/internal/engine"
	"tempo/internal/logging"
	"tempo/internal/ports"
	"tempo/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	Engine *engine.Engine
	Manual *services.ManualEntryService
	Report *services.ReportService
	Tasks  ports.TaskStore

	// Internal - for cleanup only
	store *storage.SQLiteStore
}

// NewContainer creates a new Container with all dependencies wired.
// The engine is hydrated before the container is returned, so every
// command sees the active timers from the last run.
func NewContainer(dbPath, snapshotPath string) (*Container, error) {
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}

	snapshots := snapshot.NewFileStore(snapshotPath)
	eng := engine.New(store, snapshots, store, clock.Real())
	eng.Subscribe(func(ev engine.Event) {
		logging.Logger.Info("timer event",
			"type", string(ev.Type),
			"timer_id", ev.TimerID,
			"task_id", ev.TaskID,
			"project_id", ev.ProjectID,
			"final_duration_seconds", ev.FinalDurationSeconds)
	})
	if err := eng.Hydrate(context.Background()); err != nil {
		store.Close()
		return nil, err
	}

	return &Container{
		Engine: eng,
		Manual: services.NewManualEntryService(store),
		Report: services.NewReportService(store, store),
		Tasks:  store,
		store:  store,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
