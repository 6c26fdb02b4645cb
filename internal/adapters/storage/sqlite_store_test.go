package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempo/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "tempo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func createTask(t *testing.T, store *SQLiteStore, projectID uint, title string) domain.Task {
	t.Helper()
	task, err := store.Create(context.Background(), domain.Task{
		ProjectID:       projectID,
		Title:           title,
		EstimateMinutes: 60,
	})
	require.NoError(t, err)
	return task
}

func TestTaskLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := createTask(t, store, 1, "write spec")
	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.TaskStatusTodo, created.Status)

	fetched, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "write spec", fetched.Title)
	assert.Equal(t, uint(1), fetched.ProjectID)

	require.NoError(t, store.MarkInProgress(ctx, created.ID))
	fetched, err = store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, fetched.Status)

	_, err = store.Get(ctx, 9999)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	require.ErrorIs(t, store.MarkInProgress(ctx, 9999), domain.ErrTaskNotFound)
}

func TestList_FiltersDoneTasks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	createTask(t, store, 1, "open task")
	done, err := store.Create(ctx, domain.Task{ProjectID: 1, Title: "done task", Status: domain.TaskStatusDone})
	require.NoError(t, err)

	tasks, err := store.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "open task", tasks[0].Title)

	tasks, err = store.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, done.ID, tasks[1].ID)
}

func TestSessionLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	task := createTask(t, store, 3, "deep work")
	startedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	sessionID, err := store.CreateOpenSession(ctx, task.ID, task.ProjectID, startedAt)
	require.NoError(t, err)
	assert.NotZero(t, sessionID)

	open, err := store.ListOpenSessions(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, sessionID, open[0].SessionID)
	assert.Equal(t, task.ID, open[0].Task.TaskID)
	assert.Equal(t, uint(3), open[0].Task.ProjectID)
	assert.Equal(t, "deep work", open[0].Task.Title)
	assert.True(t, open[0].StartedAt.Equal(startedAt))

	endedAt := startedAt.Add(25 * time.Minute)
	require.NoError(t, store.CloseSession(ctx, sessionID, endedAt, 1500))

	open, err = store.ListOpenSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)

	sessions, err := store.SessionsInRange(ctx, startedAt.Add(-time.Hour), startedAt.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(1500), sessions[0].DurationSeconds)
	require.NotNil(t, sessions[0].EndedAt)
	assert.True(t, sessions[0].EndedAt.Equal(endedAt))
}

func TestCloseSession_NotOpen(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	task := createTask(t, store, 1, "task")
	startedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	sessionID, err := store.CreateOpenSession(ctx, task.ID, task.ProjectID, startedAt)
	require.NoError(t, err)
	require.NoError(t, store.CloseSession(ctx, sessionID, startedAt.Add(time.Minute), 60))

	// closing twice must fail, the final duration is set exactly once
	err = store.CloseSession(ctx, sessionID, startedAt.Add(2*time.Minute), 120)
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	err = store.CloseSession(ctx, 9999, startedAt, 0)
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestCreateManualSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	start := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)

	sessionID, err := store.CreateManualSession(ctx, domain.Session{
		ProjectID:       5,
		StartedAt:       start,
		EndedAt:         &end,
		DurationSeconds: 4 * 3600,
		IsManual:        true,
		Intensity:       4,
	})
	require.NoError(t, err)

	// manual sessions are closed from birth and never hydrate
	open, err := store.ListOpenSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)

	sessions, err := store.SessionsInRange(ctx, start.Add(-time.Hour), end.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, sessionID, sessions[0].ID)
	assert.True(t, sessions[0].IsManual)
	assert.Equal(t, 4, sessions[0].Intensity)
	assert.Equal(t, uint(0), sessions[0].TaskID)
}

func TestSessionsInRange_ExcludesOpenAndOutside(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	task := createTask(t, store, 1, "task")
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// closed inside the range
	inside, err := store.CreateOpenSession(ctx, task.ID, task.ProjectID, base.Add(9*time.Hour))
	require.NoError(t, err)
	require.NoError(t, store.CloseSession(ctx, inside, base.Add(10*time.Hour), 3600))

	// closed outside the range
	outside, err := store.CreateOpenSession(ctx, task.ID, task.ProjectID, base.Add(48*time.Hour))
	require.NoError(t, err)
	require.NoError(t, store.CloseSession(ctx, outside, base.Add(49*time.Hour), 3600))

	// still open inside the range
	_, err = store.CreateOpenSession(ctx, task.ID, task.ProjectID, base.Add(11*time.Hour))
	require.NoError(t, err)

	sessions, err := store.SessionsInRange(ctx, base, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, inside, sessions[0].ID)
}
