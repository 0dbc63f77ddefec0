package engine

import (
	"time"

	"github.com/okian/flick/pkg/logger"
)

// Default engine configuration constants. The per-axis injection cap is
// larger on continuous platforms, whose native scroll units are much finer
// grained than one wheel notch.
const (
	defaultWindow             = time.Second
	defaultMaxRetained        = 1000
	defaultMaxDeltaDiscrete   = 100
	defaultMaxDeltaContinuous = 1000
	defaultInjectDelay        = time.Millisecond
)

type settings struct {
	factor      float64
	exponent    float64
	window      time.Duration
	maxRetained int
	maxDelta    float64
	discrete    bool
	injectDelay time.Duration
	sleep       func(time.Duration)
	observer    Observer
	lg          logger.Logger
}

func defaultSettings() settings {
	return settings{
		factor:      1,
		exponent:    0,
		window:      defaultWindow,
		maxRetained: defaultMaxRetained,
		injectDelay: defaultInjectDelay,
		sleep:       time.Sleep,
	}
}

// Option applies a configuration option to an Engine.
type Option func(*settings)

// WithMultiplier sets the linear acceleration factor.
func WithMultiplier(f float64) Option {
	return func(s *settings) {
		if f >= 0 {
			s.factor = f
		}
	}
}

// WithExponent sets the exponential acceleration factor.
func WithExponent(e float64) Option {
	return func(s *settings) {
		if e >= 0 {
			s.exponent = e
		}
	}
}

// WithWindow sets the velocity estimation window.
func WithWindow(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithMaxRetained sets the hard cap on retained log events.
func WithMaxRetained(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxRetained = n
		}
	}
}

// WithMaxDelta sets the per-axis cap on injected deltas. Zero keeps the
// backend default.
func WithMaxDelta(d float64) Option {
	return func(s *settings) {
		if d > 0 {
			s.maxDelta = d
		}
	}
}

// WithDiscrete selects the discrete (unit-stepped) backend behavior.
func WithDiscrete(discrete bool) Option {
	return func(s *settings) {
		s.discrete = discrete
	}
}

// WithInjectDelay sets the minimum spacing enforced before a discrete
// injection. Zero disables the pause.
func WithInjectDelay(d time.Duration) Option {
	return func(s *settings) {
		if d >= 0 {
			s.injectDelay = d
		}
	}
}

// WithSleep replaces the pacing sleep, for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *settings) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

// WithObserver registers a per-event decision callback.
func WithObserver(o Observer) Option {
	return func(s *settings) {
		s.observer = o
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(lg logger.Logger) Option {
	return func(s *settings) {
		if lg != nil {
			s.lg = lg
		}
	}
}
