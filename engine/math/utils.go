package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// InRange reports whether f lies inside [low, high].
func InRange[T constraints.Ordered](f, low, high T) bool {
	return Clamp(f, low, high) == f
}

// UnitRange reports whether every component is inside [0, 1].
func UnitRange(values ...float32) bool {
	for _, v := range values {
		if !InRange(v, 0, 1) {
			return false
		}
	}
	return true
}
