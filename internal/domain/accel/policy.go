// Package accel maps estimated scroll velocity to an acceleration
// multiplier.
package accel

import "math"

// Default policy constants.
const (
	defaultFactor   = 1.0
	defaultExponent = 0.0
)

// Policy is a pure velocity-to-multiplier mapping with a neutral floor.
type Policy struct {
	factor   float64
	exponent float64
}

// Option applies a configuration option to the Policy.
type Option func(*Policy)

// WithFactor sets the linear multiplier.
func WithFactor(f float64) Option {
	return func(p *Policy) {
		if f >= 0 {
			p.factor = f
		}
	}
}

// WithExponent sets the exponential factor.
func WithExponent(e float64) Option {
	return func(p *Policy) {
		if e >= 0 {
			p.exponent = e
		}
	}
}

// New creates a Policy. The defaults are neutral: no acceleration.
func New(opts ...Option) *Policy {
	p := &Policy{
		factor:   defaultFactor,
		exponent: defaultExponent,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Multiplier returns the acceleration multiplier for the given velocity
// magnitude. At or below unit speed the result is exactly 1, avoiding noise
// amplification at rest; above it the exponential scheme applies. Monotonic
// non-decreasing for exponent >= 0.
func (p *Policy) Multiplier(absVel float64) float64 {
	if absVel <= 1 {
		return 1
	}
	return math.Pow(absVel, p.exponent) * p.factor
}

// Neutral reports whether this configuration can never accelerate.
func (p *Policy) Neutral() bool {
	return p.factor <= 1 && p.exponent <= 0
}
