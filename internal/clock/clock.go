// Package clock abstracts wall-clock time so the engine and its tests
// can agree on "now". Production code injects Real(); tests inject a
// Fake and advance it deterministically.
package clock

import (
	"sync"
	"time"
)

// Clock supplies the current wall-clock time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Real returns the system clock.
func Real() Clock { return realClock{} }

// Fake is a manually controlled clock for tests. Safe for concurrent
// use.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake returns a Fake frozen at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the fake clock forward by d. Negative values move it
// backwards, which tests use to simulate clock skew.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Set jumps the fake clock to t.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}
