package hook

import (
	"context"
	"sync"
	"time"
)

// Loopback is an in-process hook pair used by the simulator and tests: it
// is a Source whose deliveries are fed through Emit, and an Injector whose
// injections are echoed back as deliveries, optionally after a latency that
// models the OS round trip.
type Loopback struct {
	mu      sync.Mutex
	deliver func(Raw)
	x, y    float64

	latency time.Duration
}

// LoopbackOption applies a configuration option to a Loopback.
type LoopbackOption func(*Loopback)

// WithEchoLatency delays the echo of injected events, modelling platforms
// that deliver the injection back asynchronously.
func WithEchoLatency(d time.Duration) LoopbackOption {
	return func(l *Loopback) {
		if d > 0 {
			l.latency = d
		}
	}
}

// NewLoopback creates a loopback hook.
func NewLoopback(opts ...LoopbackOption) *Loopback {
	l := &Loopback{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run registers the delivery callback and blocks until ctx is done.
func (l *Loopback) Run(ctx context.Context, deliver func(Raw)) error {
	l.mu.Lock()
	l.deliver = deliver
	l.mu.Unlock()
	<-ctx.Done()
	l.mu.Lock()
	l.deliver = nil
	l.mu.Unlock()
	return nil
}

// Emit feeds a user-originated notification into the hook, updating the
// tracked pointer position.
func (l *Loopback) Emit(r Raw) {
	l.mu.Lock()
	l.x, l.y = r.X, r.Y
	deliver := l.deliver
	l.mu.Unlock()
	if deliver != nil {
		deliver(r)
	}
}

// Scroll echoes the injected delta back as a delivery at the last known
// pointer position.
func (l *Loopback) Scroll(dx, dy float64) error {
	l.mu.Lock()
	deliver := l.deliver
	echo := Raw{X: l.x, Y: l.y, DX: dx, DY: dy, When: time.Now()}
	l.mu.Unlock()
	if deliver == nil {
		return nil
	}
	if l.latency > 0 {
		go func() {
			time.Sleep(l.latency)
			deliver(echo)
		}()
		return nil
	}
	deliver(echo)
	return nil
}
