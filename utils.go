package massbal

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Sum adds the entries of v. NaN entries count as zero.
func Sum[T constraints.Float](v []T) T {
	var total T
	for _, x := range v {
		if x != x { // NaN
			continue
		}
		total += x
	}
	return total
}

// Clamp01 maps x into [0,1]. Non-finite input maps to 0.
func Clamp01[T constraints.Float](x T) T {
	f := float64(x)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return T(math.Max(0, math.Min(1, f)))
}

// Normalize scales v so that it sums to 1. A vector with a non-positive sum
// yields a zero vector of the same length.
func Normalize[T constraints.Float](v []T) []T {
	out := make([]T, len(v))
	s := Sum(v)
	if !(s > 0) {
		return out
	}
	for i, x := range v {
		if x != x {
			continue
		}
		out[i] = x / s
	}
	return out
}

func WithinTolerance[T constraints.Float](x, target, eps T) bool {
	return math.Abs(float64(x-target)) < float64(eps)
}

// SumsToOne reports whether v is a valid composition vector.
func SumsToOne[T constraints.Float](v []T) bool {
	return WithinTolerance(Sum(v), 1, T(FRACTION_TOLERANCE))
}

func zeros(n int) []float64 {
	return make([]float64, n)
}

func scale(v []float64, factor float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * factor
	}
	return out
}

func min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
