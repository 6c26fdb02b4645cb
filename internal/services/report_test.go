package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempo/internal/domain"
)

type fakeSessionReader struct {
	sessions []domain.Session
	err      error
}

func (f *fakeSessionReader) ListOpenSessions(_ context.Context) ([]domain.OpenSession, error) {
	return nil, errors.New("not used")
}

func (f *fakeSessionReader) SessionsInRange(_ context.Context, _, _ time.Time) ([]domain.Session, error) {
	return f.sessions, f.err
}

type fakeTaskStore struct {
	tasks []domain.Task
	err   error
}

func (f *fakeTaskStore) MarkInProgress(_ context.Context, _ uint) error { return nil }

func (f *fakeTaskStore) Create(_ context.Context, task domain.Task) (domain.Task, error) {
	return task, nil
}

func (f *fakeTaskStore) Get(_ context.Context, _ uint) (domain.Task, error) {
	return domain.Task{}, domain.ErrTaskNotFound
}

func (f *fakeTaskStore) List(_ context.Context, _ bool) ([]domain.Task, error) {
	return f.tasks, f.err
}

func sessionOf(projectID, taskID uint, seconds int64, manual bool) domain.Session {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(seconds) * time.Second)
	return domain.Session{
		ProjectID:       projectID,
		TaskID:          taskID,
		StartedAt:       start,
		EndedAt:         &end,
		DurationSeconds: seconds,
		IsManual:        manual,
	}
}

func TestRange_GroupsByProjectAndTask(t *testing.T) {
	reader := &fakeSessionReader{sessions: []domain.Session{
		sessionOf(1, 10, 600, false),
		sessionOf(1, 10, 300, false),
		sessionOf(1, 11, 1200, true),
		sessionOf(2, 20, 450, false),
	}}
	tasks := &fakeTaskStore{tasks: []domain.Task{
		{ID: 10, ProjectID: 1, Title: "write spec"},
		{ID: 11, ProjectID: 1, Title: "review PR"},
		{ID: 20, ProjectID: 2, Title: "standup"},
	}}

	service := NewReportService(reader, tasks)
	report, err := service.Range(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, int64(2550), report.TotalSeconds)
	require.Len(t, report.Projects, 2)

	// sorted by total, descending
	first := report.Projects[0]
	assert.Equal(t, uint(1), first.ProjectID)
	assert.Equal(t, int64(2100), first.TotalSeconds)
	assert.Equal(t, int64(1200), first.ManualSeconds)
	assert.Equal(t, 3, first.SessionCount)

	require.Len(t, first.Tasks, 2)
	assert.Equal(t, "review PR", first.Tasks[0].Title)
	assert.Equal(t, int64(1200), first.Tasks[0].TotalSeconds)
	assert.Equal(t, "write spec", first.Tasks[1].Title)
	assert.Equal(t, int64(900), first.Tasks[1].TotalSeconds)
}

func TestRange_EmptyRange(t *testing.T) {
	service := NewReportService(&fakeSessionReader{}, &fakeTaskStore{})

	report, err := service.Range(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Zero(t, report.TotalSeconds)
	assert.Empty(t, report.Projects)
}

func TestRange_PropagatesLoadErrors(t *testing.T) {
	service := NewReportService(&fakeSessionReader{err: errors.New("db locked")}, &fakeTaskStore{})

	_, err := service.Range(context.Background(), time.Time{}, time.Time{})
	require.ErrorContains(t, err, "load sessions")

	service = NewReportService(&fakeSessionReader{}, &fakeTaskStore{err: errors.New("db locked")})
	_, err = service.Range(context.Background(), time.Time{}, time.Time{})
	require.ErrorContains(t, err, "load tasks")
}
