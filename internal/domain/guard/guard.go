// Package guard tracks self-injected scroll that has not yet been echoed
// back by the input hook, so the engine neither counts its own output as
// user input nor fights scroll still in flight.
package guard

import (
	"github.com/okian/flick/internal/domain/event"
	"github.com/okian/flick/internal/domain/vec"
)

// Guard holds the net vector of injected-but-unechoed scroll. It is owned
// by the engine's single processing goroutine; no internal locking.
type Guard[T vec.Number] struct {
	discrete    bool
	outstanding vec.Vec[T]
}

// Option applies a configuration option to a Guard.
type Option func(*settings)

type settings struct {
	discrete bool
}

// WithDiscrete enables the unit-step check used on platforms whose native
// scroll notifications are always single axis-aligned steps.
func WithDiscrete(discrete bool) Option {
	return func(s *settings) {
		s.discrete = discrete
	}
}

// New creates a Guard.
func New[T vec.Number](opts ...Option) *Guard[T] {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return &Guard[T]{discrete: s.discrete}
}

// Classify decides whether an observed delta is the echo of an injection or
// genuine user input, consuming the outstanding amount on a match.
//
// With nothing outstanding every event is user input. Otherwise the delta
// must not move on any axis against (or outside) the outstanding direction,
// and on discrete backends it must additionally be one of the four
// axis-aligned unit steps.
func (g *Guard[T]) Classify(delta vec.Vec[T]) event.Origin {
	if g.outstanding.IsZero() {
		return event.OriginUser
	}
	ds, os := delta.Sign(), g.outstanding.Sign()
	if ds.X != 0 && ds.X != os.X {
		return event.OriginUser
	}
	if ds.Y != 0 && ds.Y != os.Y {
		return event.OriginUser
	}
	if g.discrete && !isUnitStep(delta) {
		return event.OriginUser
	}
	g.outstanding = vec.Vec[T]{
		X: consume(g.outstanding.X, delta.X),
		Y: consume(g.outstanding.Y, delta.Y),
	}
	return event.OriginGenerated
}

// RecordInjection commits delta to the outstanding state. It returns false
// when the injection must be suppressed: the engine never emits scroll in a
// direction opposite to scroll it believes is still in flight. Must be
// called before the injector is invoked, never after.
func (g *Guard[T]) RecordInjection(delta vec.Vec[T]) bool {
	if delta.IsZero() {
		return false
	}
	if !g.outstanding.IsZero() && g.outstanding.Sign() != delta.Sign() {
		return false
	}
	g.outstanding = g.outstanding.Add(delta)
	return true
}

// Outstanding returns the current net unechoed injection vector.
func (g *Guard[T]) Outstanding() vec.Vec[T] {
	return g.outstanding
}

// consume subtracts the echoed amount from one axis, snapping to zero
// instead of overshooting past it. Guards against double-counting when
// several injections interleave with reclassification noise.
func consume[T vec.Number](outstanding, echoed T) T {
	n := outstanding - echoed
	if (outstanding > 0 && n < 0) || (outstanding < 0 && n > 0) {
		return 0
	}
	return n
}

func isUnitStep[T vec.Number](d vec.Vec[T]) bool {
	switch d {
	case vec.New[T](0, 1), vec.New[T](0, -1), vec.New[T](1, 0), vec.New[T](-1, 0):
		return true
	}
	return false
}
