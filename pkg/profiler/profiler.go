// Package profiler times selected methods of wrapped components and writes
// a plain-text report of the totals.
//
// Components are wrapped with an explicit decorator that implements the same
// interface and routes each method through an Interceptor:
//
//	p := profiler.New(clock.Real())
//	ic, err := p.Wrap(source, profiler.Profiled("Fetch"))
//	...
//	page, err := profiler.Call(ic, "Fetch", func() (*models.Page, error) {
//		return source.Fetch(ctx, url)
//	})
package profiler

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/multierr"

	"github.com/amosWeiskopf/wordcrawl/pkg/clock"
)

// Profiler owns the timing state shared by every Interceptor it hands out
type Profiler struct {
	clock     clock.Clock
	state     *State
	startTime time.Time
}

// New creates a Profiler; its start time is taken from c
func New(c clock.Clock) *Profiler {
	return &Profiler{
		clock:     c,
		state:     NewState(),
		startTime: c.Now(),
	}
}

// Wrap returns an Interceptor for delegate. It fails with
// ErrNoProfiledMethods when methods is empty.
func (p *Profiler) Wrap(delegate any, methods Methods) (*Interceptor, error) {
	return newInterceptor(delegate, methods, p.clock, p.state)
}

// State exposes the accumulated timings
func (p *Profiler) State() *State {
	return p.state
}

// WriteData writes the run header followed by every recorded total
func (p *Profiler) WriteData(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Run at %s\n", p.startTime.Format(time.RFC1123)); err != nil {
		return fmt.Errorf("write profile header: %w", err)
	}
	if err := p.state.Write(w); err != nil {
		return fmt.Errorf("write profile data: %w", err)
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("write profile data: %w", err)
	}
	return nil
}

// WriteDataToFile appends the report to path, creating it if needed
func (p *Profiler) WriteDataToFile(path string) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open profile output %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	return p.WriteData(f)
}
