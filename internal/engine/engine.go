// Package engine implements the scroll acceleration orchestrator: it
// classifies every observed event, estimates user velocity from the event
// log, and injects correctly-bounded synthetic scroll without triggering
// feedback loops against itself.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/flick/internal/domain/accel"
	"github.com/okian/flick/internal/domain/event"
	"github.com/okian/flick/internal/domain/guard"
	"github.com/okian/flick/internal/domain/vec"
	"github.com/okian/flick/internal/domain/velocity"
	"github.com/okian/flick/pkg/logger"
	"github.com/okian/flick/pkg/metrics"
)

const millisecondsPerSecond = 1e3

// Injector is the output collaborator: a fire-and-forget synthetic scroll
// primitive. Depending on the platform it may deliver the injected event
// back into OnScroll before returning.
type Injector interface {
	Scroll(dx, dy float64) error
}

// Engine is the per-backend accelerator. It exclusively owns its event log
// and feedback guard; collaborators are injected at construction. All
// invocations of OnScroll must come from a single goroutine.
type Engine[T vec.Number] struct {
	log      *event.Log[T]
	guard    *guard.Guard[T]
	policy   *accel.Policy
	injector Injector

	window      time.Duration
	maxDelta    float64
	discrete    bool
	injectDelay time.Duration
	sleep       func(time.Duration)

	observer Observer
	lg       logger.Logger
}

// New creates an Engine for the given injector.
func New[T vec.Number](injector Injector, opts ...Option) *Engine[T] {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	maxDelta := s.maxDelta
	if maxDelta <= 0 {
		if s.discrete {
			maxDelta = defaultMaxDeltaDiscrete
		} else {
			maxDelta = defaultMaxDeltaContinuous
		}
	}
	return &Engine[T]{
		log: event.NewLog[T](
			event.WithWindow(s.window),
			event.WithMaxRetained(s.maxRetained),
		),
		guard:       guard.New[T](guard.WithDiscrete(s.discrete)),
		policy:      accel.New(accel.WithFactor(s.factor), accel.WithExponent(s.exponent)),
		injector:    injector,
		window:      s.window,
		maxDelta:    maxDelta,
		discrete:    s.discrete,
		injectDelay: s.injectDelay,
		sleep:       s.sleep,
		observer:    s.observer,
		lg:          s.lg,
	}
}

// Neutral reports whether the configured policy can never accelerate; the
// engine then acts as a transparent pass-through.
func (e *Engine[T]) Neutral() bool {
	return e.policy.Neutral()
}

// OnScroll processes one scroll notification from the input collaborator.
// It runs to completion per event; re-entrant delivery caused by the
// injection at the end is safe because all guard and log state is committed
// before the injector is called.
func (e *Engine[T]) OnScroll(x, y, dx, dy float64, when time.Time) error {
	start := time.Now()
	defer func() {
		metrics.RecordProcessingLatency(time.Since(start).Seconds() * millisecondsPerSecond)
	}()

	delta := vec.Quantize[T](vec.New(dx, dy))
	if delta.IsZero() {
		return nil
	}
	pos := vec.Quantize[T](vec.New(x, y))

	origin := e.guard.Classify(delta)
	metrics.RecordEventObserved(origin.String())
	e.log.Append(event.Event[T]{When: when, Pos: pos, Delta: delta, Origin: origin})

	userVel, genVel := velocity.Estimate(e.log.Snapshot(), when, e.window)
	curVel := userVel.Add(genVel)
	absUser := userVel.L2()
	absCur := curVel.L2()
	m := e.policy.Multiplier(absUser)

	metrics.UpdateEventLogSize(e.log.Size())
	metrics.UpdateUserVelocity(absUser)
	metrics.ObserveMultiplier(m)
	out := e.guard.Outstanding().Float()
	metrics.UpdateOutstanding(out.X, out.Y)

	dec := Decision{
		When:       when,
		DX:         dx,
		DY:         dy,
		Origin:     origin.String(),
		UserVel:    absUser,
		CurVel:     absCur,
		Multiplier: m,
	}

	if m <= 1 || absUser*m <= absCur {
		e.observe(dec)
		return nil
	}

	// Catch-up to the target velocity rather than multiplying the raw
	// delta: once injected events raise the current velocity to the
	// target, the term goes to zero and amplification stops.
	target := userVel.Scale(m).Sub(curVel)
	target = target.AbsCap(e.maxDelta)

	var step vec.Vec[float64]
	if e.discrete {
		// Inject a single unit step; the echo of that step re-enters
		// OnScroll and produces the next one, a self-throttling ramp.
		step = target.Round().Sign()
	} else {
		step = target
	}
	stepT := vec.Quantize[T](step)
	if stepT.IsZero() {
		e.observe(dec)
		return nil
	}

	if e.discrete && e.injectDelay > 0 {
		// Minimum spacing between synthetic events so the OS input
		// queue is not overwhelmed; blocks the processing goroutine by
		// design (scroll cadence is human-timescale).
		e.sleep(e.injectDelay)
	}

	if !e.guard.RecordInjection(stepT) {
		metrics.RecordInjectionSuppressed()
		dec.Suppressed = true
		e.observe(dec)
		return nil
	}

	// Commit the synthetic event to the log before the injection call so
	// a re-entrant delivery (and the very next estimate) already accounts
	// for it.
	e.log.Append(event.Event[T]{When: when, Pos: pos, Delta: stepT, Origin: event.OriginGenerated})

	injected := stepT.Float()
	dec.Injected = true
	dec.InjectedDX = injected.X
	dec.InjectedDY = injected.Y
	metrics.RecordInjection()

	if e.lg != nil {
		e.lg.Debug(context.Background(), "injecting scroll",
			logger.Float64("user_vel", absUser),
			logger.Float64("cur_vel", absCur),
			logger.Float64("multiplier", m),
			logger.Float64("dx", injected.X),
			logger.Float64("dy", injected.Y),
		)
	}

	if err := e.injector.Scroll(injected.X, injected.Y); err != nil {
		metrics.RecordInjectorError()
		if e.lg != nil {
			out := e.guard.Outstanding().Float()
			e.lg.Error(context.Background(), "scroll injection rejected",
				logger.Error(err),
				logger.Float64("outstanding_x", out.X),
				logger.Float64("outstanding_y", out.Y),
			)
		}
		return fmt.Errorf("%w: %w", ErrInject, err)
	}

	e.observe(dec)
	return nil
}

// Outstanding exposes the guard state for diagnostics.
func (e *Engine[T]) Outstanding() (x, y float64) {
	out := e.guard.Outstanding().Float()
	return out.X, out.Y
}

func (e *Engine[T]) observe(dec Decision) {
	if e.observer != nil {
		e.observer(dec)
	}
}
