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

type fakeSessionWriter struct {
	created   []domain.Session
	nextID    uint
	createErr error
}

func (f *fakeSessionWriter) CreateOpenSession(_ context.Context, _, _ uint, _ time.Time) (uint, error) {
	return 0, errors.New("not used")
}

func (f *fakeSessionWriter) CloseSession(_ context.Context, _ uint, _ time.Time, _ int64) error {
	return errors.New("not used")
}

func (f *fakeSessionWriter) CreateManualSession(_ context.Context, session domain.Session) (uint, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	f.created = append(f.created, session)
	return f.nextID, nil
}

func TestLog_PersistsNormalizedEntry(t *testing.T) {
	writer := &fakeSessionWriter{}
	service := NewManualEntryService(writer)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	session, err := service.Log(context.Background(), domain.ManualEntry{
		ProjectID:       3,
		TaskID:          9,
		Date:            day,
		DurationMinutes: 90,
		Intensity:       4,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), session.ID)
	assert.True(t, session.IsManual)
	assert.Equal(t, int64(90*60), session.DurationSeconds)
	require.Len(t, writer.created, 1)
	assert.Equal(t, uint(3), writer.created[0].ProjectID)
}

func TestLog_ValidationFailureHasNoSideEffects(t *testing.T) {
	writer := &fakeSessionWriter{}
	service := NewManualEntryService(writer)

	_, err := service.Log(context.Background(), domain.ManualEntry{Intensity: 9})
	require.Error(t, err)

	var fieldErrs domain.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Empty(t, writer.created, "nothing persisted on validation failure")
}

func TestLog_StoreFailureSurfaces(t *testing.T) {
	writer := &fakeSessionWriter{createErr: errors.New("backend down")}
	service := NewManualEntryService(writer)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := service.Log(context.Background(), domain.ManualEntry{
		ProjectID:       3,
		Date:            day,
		DurationMinutes: 30,
		Intensity:       2,
	})
	require.Error(t, err)

	var fieldErrs domain.FieldErrors
	assert.False(t, errors.As(err, &fieldErrs), "store failures are not validation errors")
}
