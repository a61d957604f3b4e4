// Package clock provides the time source used by the crawler and the profiler.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Real returns the wall clock
func Real() Clock {
	return realClock{}
}

// Fake is a manually driven clock for tests
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake returns a Fake set to t
func NewFake(t time.Time) *Fake {
	return &Fake{now: t}
}

// Now returns the fake's current time
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the fake forward by d
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// Set moves the fake to t
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}
