package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clockAt(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

func TestManualEntry_NormalizeRange(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	entry := ManualEntry{
		ProjectID:  7,
		TaskID:     12,
		Date:       day,
		StartClock: clockAt(9, 30),
		EndClock:   clockAt(11, 0),
		Intensity:  3,
	}

	session, err := entry.Normalize()
	require.NoError(t, err)

	assert.True(t, session.IsManual)
	assert.Equal(t, uint(7), session.ProjectID)
	assert.Equal(t, uint(12), session.TaskID)
	assert.Equal(t, day.Add(9*time.Hour+30*time.Minute), session.StartedAt)
	require.NotNil(t, session.EndedAt)
	assert.Equal(t, day.Add(11*time.Hour), *session.EndedAt)
	assert.Equal(t, int64(90*60), session.DurationSeconds)
	assert.Equal(t, 3, session.Intensity)
}

func TestManualEntry_NormalizeCrossesMidnight(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	entry := ManualEntry{
		ProjectID:  1,
		Date:       day,
		StartClock: clockAt(22, 0),
		EndClock:   clockAt(2, 0),
		Intensity:  2,
	}

	session, err := entry.Normalize()
	require.NoError(t, err)

	// 22:00 -> 02:00 is a 4 hour overnight session, not a negative one
	assert.Equal(t, int64(4*3600), session.DurationSeconds)
	assert.Equal(t, day.Add(22*time.Hour), session.StartedAt)
	assert.Equal(t, day.Add(26*time.Hour), *session.EndedAt)
}

func TestManualEntry_NormalizeBareDuration(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	entry := ManualEntry{
		ProjectID:       1,
		Date:            day,
		DurationMinutes: 45,
		Intensity:       4,
	}

	session, err := entry.Normalize()
	require.NoError(t, err)

	// end derives from the day anchor plus the duration
	assert.Equal(t, day, session.StartedAt)
	assert.Equal(t, day.Add(45*time.Minute), *session.EndedAt)
	assert.Equal(t, int64(45*60), session.DurationSeconds)
}

func TestManualEntry_NormalizeDurationWithExplicitStart(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	entry := ManualEntry{
		ProjectID:       1,
		Date:            day,
		StartClock:      clockAt(14, 0),
		DurationMinutes: 30,
		Intensity:       1,
	}

	session, err := entry.Normalize()
	require.NoError(t, err)

	assert.Equal(t, day.Add(14*time.Hour), session.StartedAt)
	assert.Equal(t, day.Add(14*time.Hour+30*time.Minute), *session.EndedAt)
}

func TestManualEntry_NormalizeValidation(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		entry  ManualEntry
		fields []string
	}{
		{
			name:   "missing project",
			entry:  ManualEntry{Date: day, DurationMinutes: 30, Intensity: 3},
			fields: []string{"project"},
		},
		{
			name:   "negative duration",
			entry:  ManualEntry{ProjectID: 1, Date: day, DurationMinutes: -10, Intensity: 3},
			fields: []string{"duration"},
		},
		{
			name:   "intensity out of range",
			entry:  ManualEntry{ProjectID: 1, Date: day, DurationMinutes: 30, Intensity: 6},
			fields: []string{"intensity"},
		},
		{
			name:   "neither range nor duration",
			entry:  ManualEntry{ProjectID: 1, Date: day, Intensity: 3},
			fields: []string{"duration"},
		},
		{
			name:   "start without end or duration",
			entry:  ManualEntry{ProjectID: 1, Date: day, StartClock: clockAt(9, 0), Intensity: 3},
			fields: []string{"end"},
		},
		{
			name:   "missing date",
			entry:  ManualEntry{ProjectID: 1, DurationMinutes: 30, Intensity: 3},
			fields: []string{"date"},
		},
		{
			name:   "everything wrong at once",
			entry:  ManualEntry{Intensity: 0},
			fields: []string{"project", "intensity", "date", "duration"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.entry.Normalize()
			require.Error(t, err)

			var fieldErrs FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			for _, field := range tt.fields {
				assert.Contains(t, fieldErrs, field)
			}
			assert.Len(t, fieldErrs, len(tt.fields))
		})
	}
}

func TestFieldErrors_ErrorIsStableAndReadable(t *testing.T) {
	errs := FieldErrors{
		"project":   "project is required",
		"intensity": "intensity must be between 1 and 5",
	}

	assert.Equal(t, "intensity: intensity must be between 1 and 5; project: project is required", errs.Error())
}
