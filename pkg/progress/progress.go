// Package progress carries the progress and cancellation hooks a conversion
// run reports to and polls.
package progress

import (
	"context"
	"errors"
	"log"
	"sync"
)

// Reporter receives progress notifications. Reset is called once at the
// start of every stage; Increment once per unit of work in that stage.
type Reporter interface {
	Reset(initial, maximum int)
	Increment()
}

// Hooks bundles the caller-supplied controls of a run. The zero value
// reports nothing and never cancels.
type Hooks struct {
	Progress  Reporter
	Cancelled func() bool
}

// Reset forwards to the reporter, if any.
func (h Hooks) Reset(initial, maximum int) {
	if h.Progress != nil {
		h.Progress.Reset(initial, maximum)
	}
}

// Increment forwards to the reporter, if any.
func (h Hooks) Increment() {
	if h.Progress != nil {
		h.Progress.Increment()
	}
}

// Stop reports whether the caller asked the run to stop.
func (h Hooks) Stop() bool {
	return h.Cancelled != nil && h.Cancelled()
}

// FromContext returns a cancellation predicate that fires once ctx is done.
func FromContext(ctx context.Context) func() bool {
	return func() bool {
		return ctx.Err() != nil
	}
}

// Counter is a Reporter that records what it was told. It is safe for
// concurrent use.
type Counter struct {
	mu      sync.Mutex
	Resets  int
	Maximum int
	Current int
	Total   int
}

func (c *Counter) Reset(initial, maximum int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Resets++
	c.Current = initial
	c.Maximum = maximum
}

func (c *Counter) Increment() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Current++
	c.Total++
}

// Logger is a Reporter that logs each stage in 10% steps.
type Logger struct {
	Prefix string

	stage   int
	current int
	maximum int
	next    int
}

func (l *Logger) Reset(initial, maximum int) {
	l.stage++
	l.current = initial
	l.maximum = maximum
	l.next = 10
	log.Printf("[%s] stage %d: %d units", l.Prefix, l.stage, maximum)
}

func (l *Logger) Increment() {
	l.current++
	if l.maximum <= 0 {
		return
	}
	pct := l.current * 100 / l.maximum
	if pct >= l.next {
		log.Printf("[%s] stage %d: %d%%", l.Prefix, l.stage, pct)
		for l.next <= pct {
			l.next += 10
		}
	}
}

// ErrCancelled is returned by every stage that stops because Hooks.Cancelled
// fired. It is not a failure: the run simply has no result.
var ErrCancelled = errors.New("cancelled")
