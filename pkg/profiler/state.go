package profiler

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Entry is the accumulated time for one profiled method
type Entry struct {
	Label string
	Total time.Duration
}

type key struct {
	target string
	method string
}

// State accumulates elapsed time per (target type, method). It is safe for
// concurrent use.
type State struct {
	mu     sync.Mutex
	totals map[key]time.Duration
	order  []key
}

// NewState returns an empty State
func NewState() *State {
	return &State{totals: make(map[key]time.Duration)}
}

// Record adds d to the running total of target#method
func (s *State) Record(target, method string, d time.Duration) {
	k := key{target: target, method: method}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.totals[k]; !ok {
		s.order = append(s.order, k)
	}
	s.totals[k] += d
}

// Report lists the totals in the order each key was first recorded
func (s *State) Report() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, len(s.order))
	for _, k := range s.order {
		entries = append(entries, Entry{
			Label: k.target + "#" + k.method,
			Total: s.totals[k],
		})
	}
	return entries
}

// Write renders one line per entry
func (s *State) Write(w io.Writer) error {
	for _, e := range s.Report() {
		if _, err := fmt.Fprintf(w, "%s took %s\n", e.Label, formatDuration(e.Total)); err != nil {
			return err
		}
	}
	return nil
}

func formatDuration(d time.Duration) string {
	minutes := d / time.Minute
	seconds := (d % time.Minute) / time.Second
	millis := (d % time.Second) / time.Millisecond
	return fmt.Sprintf("%dm %ds %dms", minutes, seconds, millis)
}
