// Package hook defines the boundary to the OS pointer subsystem: the input
// collaborator that delivers scroll notifications and the output
// collaborator that injects synthetic scroll.
package hook

import (
	"context"
	"time"
)

// Raw is one scroll notification as delivered by a platform hook.
type Raw struct {
	X, Y   float64
	DX, DY float64
	When   time.Time
}

// Source is the input collaborator. Run blocks until ctx is done or the
// underlying hook fails, invoking deliver for every scroll notification.
// deliver must not block; implementations may call it from their own
// goroutine.
type Source interface {
	Run(ctx context.Context, deliver func(Raw)) error
}

// Injector is the output collaborator: a fire-and-forget synthetic scroll
// primitive. Injected events come back through the Source as new
// notifications, possibly before Scroll returns.
type Injector interface {
	Scroll(dx, dy float64) error
}
