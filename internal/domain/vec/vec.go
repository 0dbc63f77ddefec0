// Package vec provides the 2-D vector arithmetic used by the engine.
//
// The numeric domain is chosen once per backend: discrete scroll backends
// instantiate Vec[int], continuous backends Vec[float64]. All operations are
// total, side-effect free and preserve the domain.
package vec

import "math"

// Number constrains the numeric domains a scroll backend may choose.
type Number interface {
	~int | ~float64
}

// Vec is an immutable 2-D vector over a backend-chosen numeric domain.
type Vec[T Number] struct {
	X T
	Y T
}

// New builds a vector from its components.
func New[T Number](x, y T) Vec[T] {
	return Vec[T]{X: x, Y: y}
}

// Add returns the elementwise sum v + o.
func (v Vec[T]) Add(o Vec[T]) Vec[T] {
	return Vec[T]{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the elementwise difference v - o.
func (v Vec[T]) Sub(o Vec[T]) Vec[T] {
	return Vec[T]{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies by a scalar, moving into the float domain.
func (v Vec[T]) Scale(s float64) Vec[float64] {
	return Vec[float64]{X: float64(v.X) * s, Y: float64(v.Y) * s}
}

// Float converts into the float domain.
func (v Vec[T]) Float() Vec[float64] {
	return Vec[float64]{X: float64(v.X), Y: float64(v.Y)}
}

// IsZero reports whether both components are zero.
func (v Vec[T]) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Sign returns the component-wise sign vector (-1, 0 or 1 per axis).
func (v Vec[T]) Sign() Vec[T] {
	return Vec[T]{X: sign(v.X), Y: sign(v.Y)}
}

// L2 returns the Euclidean norm, with exact fast paths when one component
// is zero.
func (v Vec[T]) L2() float64 {
	switch {
	case v.IsZero():
		return 0
	case v.Y == 0:
		return math.Abs(float64(v.X))
	case v.X == 0:
		return math.Abs(float64(v.Y))
	}
	x, y := float64(v.X), float64(v.Y)
	return math.Sqrt(x*x + y*y)
}

// AbsCap clamps each component's magnitude to limit, preserving sign.
func (v Vec[T]) AbsCap(limit T) Vec[T] {
	return Vec[T]{X: absCap(v.X, limit), Y: absCap(v.Y, limit)}
}

// Round rounds each component to the nearest whole number, halves away from
// zero. Integer vectors are returned unchanged.
func (v Vec[T]) Round() Vec[T] {
	return Vec[T]{X: T(math.Round(float64(v.X))), Y: T(math.Round(float64(v.Y)))}
}

// Quantize converts a float vector into the backend's numeric domain,
// rounding halves away from zero for integer domains.
func Quantize[T Number](f Vec[float64]) Vec[T] {
	var zero T
	if _, ok := any(zero).(int); ok {
		return Vec[T]{X: T(math.Round(f.X)), Y: T(math.Round(f.Y))}
	}
	return Vec[T]{X: T(f.X), Y: T(f.Y)}
}

func sign[T Number](v T) T {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func absCap[T Number](v, limit T) T {
	if limit < 0 {
		limit = -limit
	}
	switch {
	case v > limit:
		return limit
	case v < -limit:
		return -limit
	}
	return v
}
