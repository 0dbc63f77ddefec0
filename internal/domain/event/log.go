package event

import (
	"time"

	"github.com/okian/flick/internal/domain/vec"
)

// Log is an append-only, insertion-ordered sequence of scroll events,
// pruned by age on every append and hard-capped against timestamp
// anomalies. It is owned by a single goroutine; no internal locking.
type Log[T vec.Number] struct {
	window      time.Duration
	maxRetained int
	events      []Event[T]
}

// NewLog creates a log with the given options.
func NewLog[T vec.Number](opts ...Option) *Log[T] {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return &Log[T]{
		window:      s.window,
		maxRetained: s.maxRetained,
	}
}

// Append inserts e at the end, prunes every event older than the window
// relative to e.When, then drops the oldest events beyond the retention cap.
// Zero-delta events are ignored.
func (l *Log[T]) Append(e Event[T]) {
	if e.Delta.IsZero() {
		return
	}
	l.events = append(l.events, e)

	cut := 0
	for cut < len(l.events) && e.When.Sub(l.events[cut].When) > l.window {
		cut++
	}
	if over := len(l.events) - cut - l.maxRetained; over > 0 {
		cut += over
	}
	if cut > 0 {
		l.events = append(l.events[:0], l.events[cut:]...)
	}
}

// Snapshot returns the retained events in chronological order. The returned
// slice is a read-only view valid until the next Append.
func (l *Log[T]) Snapshot() []Event[T] {
	return l.events
}

// Size returns the number of retained events.
func (l *Log[T]) Size() int {
	return len(l.events)
}
