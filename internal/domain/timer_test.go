package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestElapsedSeconds_Running(t *testing.T) {
	timer := Timer{State: StateRunning, StartedAt: t0}

	assert.Equal(t, int64(0), timer.ElapsedSeconds(t0))
	assert.Equal(t, int64(300), timer.ElapsedSeconds(t0.Add(5*time.Minute)))
	assert.Equal(t, int64(300), timer.ElapsedSeconds(t0.Add(5*time.Minute+900*time.Millisecond)),
		"sub-second remainder truncates")
}

func TestElapsedSeconds_RunningWithBankedTime(t *testing.T) {
	timer := Timer{State: StateRunning, StartedAt: t0, AccumulatedSeconds: 300}

	assert.Equal(t, int64(500), timer.ElapsedSeconds(t0.Add(200*time.Second)))
}

func TestElapsedSeconds_PausedIsClockIndependent(t *testing.T) {
	timer := Timer{State: StatePaused, AccumulatedSeconds: 120}

	assert.Equal(t, int64(120), timer.ElapsedSeconds(t0))
	assert.Equal(t, int64(120), timer.ElapsedSeconds(t0.Add(48*time.Hour)))
}

func TestElapsedSeconds_ClockSkewClampsToBanked(t *testing.T) {
	timer := Timer{State: StateRunning, StartedAt: t0, AccumulatedSeconds: 60}

	// now before the recorded start must never go negative
	assert.Equal(t, int64(60), timer.ElapsedSeconds(t0.Add(-10*time.Second)))
}

func TestElapsedSeconds_MonotonicWhileRunning(t *testing.T) {
	timer := Timer{State: StateRunning, StartedAt: t0, AccumulatedSeconds: 10}

	prev := int64(-1)
	for i := 0; i < 100; i++ {
		now := t0.Add(time.Duration(i) * 700 * time.Millisecond)
		elapsed := timer.ElapsedSeconds(now)
		assert.GreaterOrEqual(t, elapsed, prev)
		prev = elapsed
	}
}

func TestTotalElapsedSeconds_SameInstantForAllTimers(t *testing.T) {
	timers := []Timer{
		{State: StateRunning, StartedAt: t0},
		{State: StateRunning, StartedAt: t0.Add(-1 * time.Minute)},
		{State: StatePaused, AccumulatedSeconds: 45},
	}

	now := t0.Add(2 * time.Minute)
	assert.Equal(t, int64(120+180+45), TotalElapsedSeconds(timers, now))
	assert.Equal(t, int64(0), TotalElapsedSeconds(nil, now))
}
