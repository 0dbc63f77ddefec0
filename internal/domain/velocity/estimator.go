// Package velocity estimates the instantaneous scroll velocity from the
// event log, separating user input from the engine's own injections.
package velocity

import (
	"time"

	"github.com/okian/flick/internal/domain/event"
	"github.com/okian/flick/internal/domain/vec"
)

// Estimate walks the retained events in chronological order and returns the
// estimated user velocity and self-generated velocity as float vectors.
//
// This is a zero-order decaying-window estimator, not a regression: each
// event contributes its delta weighted by 1 - dt/window, and a direction
// reversal discards everything accumulated before it. The reversal event
// itself starts the fresh accumulation, so a user who flips scroll
// direction gets an instantaneous, unbiased restart.
func Estimate[T vec.Number](events []event.Event[T], now time.Time, window time.Duration) (user, generated vec.Vec[float64]) {
	if window <= 0 {
		return user, generated
	}
	windowSec := window.Seconds()

	for _, ev := range events {
		dt := now.Sub(ev.When)
		if dt > window || dt < 0 {
			continue
		}
		d := ev.Delta.Float()

		// Compare against the first non-zero accumulator: user, then
		// generated, then the delta itself.
		ref := user
		if ref.IsZero() {
			ref = generated
		}
		if ref.IsZero() {
			ref = d
		}
		if d.Sign() != ref.Sign() {
			user, generated = vec.Vec[float64]{}, vec.Vec[float64]{}
		}

		w := 1 - dt.Seconds()/windowSec
		if ev.Origin == event.OriginGenerated {
			generated = generated.Add(d.Scale(w))
		} else {
			user = user.Add(d.Scale(w))
		}
	}

	// Never amplify the estimate when the window is short.
	decay := 1 / windowSec
	if decay > 1 {
		decay = 1
	}
	return user.Scale(decay), generated.Scale(decay)
}
