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

// Abs returns the absolute value of any signed number.
func Abs[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// RoundUpEven returns n if it is even, otherwise n+1.
func RoundUpEven[T constraints.Integer](n T) T {
	if n%2 != 0 {
		return n + 1
	}
	return n
}

// InRange reports whether low <= v <= high.
func InRange[T constraints.Ordered](v, low, high T) bool {
	return v >= low && v <= high
}
