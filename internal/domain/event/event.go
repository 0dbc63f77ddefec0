// Package event contains the scroll-event model and the time-bounded log
// the velocity estimator reads from.
package event

import (
	"time"

	"github.com/okian/flick/internal/domain/vec"
)

// Origin tags who produced a scroll event.
type Origin int

const (
	// OriginUser marks genuine user input.
	OriginUser Origin = iota
	// OriginGenerated marks events the engine injected itself.
	OriginGenerated
)

func (o Origin) String() string {
	if o == OriginGenerated {
		return "generated"
	}
	return "user"
}

// Event is a single observed or injected scroll notification. It is created
// once, never mutated, and owned by the Log until pruned.
type Event[T vec.Number] struct {
	When   time.Time
	Pos    vec.Vec[T]
	Delta  vec.Vec[T]
	Origin Origin
}
