// Package pump serializes scroll deliveries from hook goroutines into the
// engine's single processing goroutine.
//
// The engine's state (event log, feedback guard) is mutated without
// synchronization, so hooks never call it directly: they enqueue here and
// exactly one consumer drains the channel. Re-entrant delivery from an
// injection becomes a queued state transition instead of recursion.
package pump

import (
	"context"
	"sync"

	"github.com/okian/flick/internal/adapters/hook"
	"github.com/okian/flick/pkg/metrics"
)

// Default pump configuration constants.
const defaultSize = 1024

// Pump is a bounded, non-blocking delivery queue.
type Pump struct {
	deliveries chan hook.Raw
	size       int

	mu     sync.RWMutex
	closed bool
}

// New creates a pump with configuration options.
func New(opts ...Option) *Pump {
	p := &Pump{
		size: defaultSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.deliveries = make(chan hook.Raw, p.size)

	metrics.UpdatePumpCapacity(p.size)
	metrics.UpdatePumpSize(0)
	metrics.UpdatePumpUtilization(0)

	return p
}

// Enqueue adds a delivery without blocking. A full or closed pump drops the
// delivery and returns false: scroll input is ephemeral and stalling the OS
// callback thread is worse than losing a notification.
func (p *Pump) Enqueue(ctx context.Context, r hook.Raw) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		metrics.RecordPumpDrop()
		return false
	}

	select {
	case p.deliveries <- r:
		metrics.RecordPumpEnqueue()
		size := len(p.deliveries)
		metrics.UpdatePumpSize(size)
		metrics.UpdatePumpUtilization(float64(size) / float64(p.size))
		return true
	case <-ctx.Done():
		metrics.RecordPumpDrop()
		return false
	default:
		metrics.RecordPumpDrop()
		return false
	}
}

// Dequeue returns the channel the single consumer drains. The channel is
// closed when the pump is closed.
func (p *Pump) Dequeue(ctx context.Context) <-chan hook.Raw {
	out := make(chan hook.Raw)
	go func() {
		defer close(out)
		for r := range p.deliveries {
			select {
			case out <- r:
				metrics.RecordPumpDequeue()
				size := len(p.deliveries)
				metrics.UpdatePumpSize(size)
				metrics.UpdatePumpUtilization(float64(size) / float64(p.size))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued deliveries.
func (p *Pump) Len() int {
	return len(p.deliveries)
}

// Close stops the pump. After closing, Enqueue drops everything and the
// dequeue channel drains and closes.
func (p *Pump) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	close(p.deliveries)
	p.closed = true
	return nil
}

// IsClosed reports whether the pump has been closed.
func (p *Pump) IsClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}
