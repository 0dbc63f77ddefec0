package engine

import "time"

// Decision summarizes how the engine handled one observed event. It feeds
// the debug tap and tests; the engine itself never reads it back.
type Decision struct {
	When       time.Time `json:"when"`
	DX         float64   `json:"dx"`
	DY         float64   `json:"dy"`
	Origin     string    `json:"origin"`
	UserVel    float64   `json:"user_vel"`
	CurVel     float64   `json:"cur_vel"`
	Multiplier float64   `json:"multiplier"`
	Injected   bool      `json:"injected"`
	InjectedDX float64   `json:"injected_dx,omitempty"`
	InjectedDY float64   `json:"injected_dy,omitempty"`
	Suppressed bool      `json:"suppressed,omitempty"`
}

// Observer receives one Decision per processed event.
type Observer func(Decision)
