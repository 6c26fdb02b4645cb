package domain

import "time"

// ManualEntry is a retroactively entered time block. It carries either
// an explicit start/end clock-time pair or a bare duration in minutes,
// anchored to Date. It is normalized into a Session before persistence
// and never touches the live timer set.
type ManualEntry struct {
	ProjectID       uint
	TaskID          uint      // optional; 0 when the block is not tied to a task
	Date            time.Time // day anchor; only the calendar date is used
	StartClock      time.Time // clock time on Date; zero when DurationMinutes is given alone
	EndClock        time.Time // clock time on Date; may be nominally before StartClock
	DurationMinutes int
	Intensity       int // subjective rating, 1-5
}

// Normalize validates the entry and converts it into a manual Session.
// A start/end pair whose end is nominally at or before its start is
// treated as crossing midnight: 24 hours are added to the end rather
// than rejecting the entry, so overnight sessions need not be split.
// Validation failures are returned as FieldErrors, one message per
// offending field, with no side effects.
func (e ManualEntry) Normalize() (Session, error) {
	errs := FieldErrors{}

	if e.ProjectID == 0 {
		errs["project"] = "project is required"
	}
	if e.Intensity < 1 || e.Intensity > 5 {
		errs["intensity"] = "intensity must be between 1 and 5"
	}
	if e.Date.IsZero() {
		errs["date"] = "date is required"
	}

	var start, end time.Time
	switch {
	case !e.StartClock.IsZero() && !e.EndClock.IsZero():
		start = onDate(e.Date, e.StartClock)
		end = onDate(e.Date, e.EndClock)
		if !end.After(start) {
			// crossed midnight
			end = end.Add(24 * time.Hour)
		}
		if !end.After(start) {
			errs["end"] = "end must be after start"
		}
	case e.DurationMinutes != 0 || e.StartClock.IsZero():
		if e.DurationMinutes <= 0 {
			errs["duration"] = "a positive duration or a start/end range is required"
			break
		}
		start = e.Date
		if !e.StartClock.IsZero() {
			start = onDate(e.Date, e.StartClock)
		}
		end = start.Add(time.Duration(e.DurationMinutes) * time.Minute)
	default:
		errs["end"] = "end is required when only a start is given"
	}

	if len(errs) > 0 {
		return Session{}, errs
	}

	return Session{
		TaskID:          e.TaskID,
		ProjectID:       e.ProjectID,
		StartedAt:       start,
		EndedAt:         &end,
		DurationSeconds: int64(end.Sub(start) / time.Second),
		IsManual:        true,
		Intensity:       e.Intensity,
	}, nil
}

// onDate combines the calendar date of day with the wall-clock portion
// of clock, in day's location.
func onDate(day, clock time.Time) time.Time {
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0,
		day.Location(),
	)
}
