// Package vec: vector norms over a closed NormType set.
// The solver's convergence checks are parameterized by NormType; keeping the
// enum here lets both sparse diagnostics and solver options share it without
// an import cycle.

package vec

import "math"

// NormType selects the vector norm used by convergence checks and
// diagnostics. The set is closed; switch statements over it are exhaustive.
type NormType int

const (
	// L1 is the sum of absolute values.
	L1 NormType = iota

	// L2 is the Euclidean norm (default for residual checks).
	L2

	// LInfinity is the maximum absolute value.
	LInfinity

	// Weighted is the L2 norm with per-coordinate non-negative weights,
	// computed by WeightedNorm; Norm falls back to L2 when asked for it.
	Weighted
)

// String returns the canonical name of the norm, for error messages and stats.
func (t NormType) String() string {
	switch t {
	case L1:
		return "L1"
	case L2:
		return "L2"
	case LInfinity:
		return "LInf"
	case Weighted:
		return "Weighted"
	default:
		return "Unknown"
	}
}

// Norm computes the requested norm of x.
//
// Weighted requires per-coordinate weights and therefore falls back to L2
// here; use WeightedNorm when weights are available.
// Complexity: O(n), no allocation.
func Norm(x []float64, t NormType) float64 {
	switch t {
	case L1:
		var sum float64
		for _, v := range x {
			sum += math.Abs(v)
		}

		return sum
	case LInfinity:
		var max float64
		for _, v := range x {
			if a := math.Abs(v); a > max {
				max = a
			}
		}

		return max
	case L2, Weighted:
		fallthrough
	default:
		return math.Sqrt(Dot(x, x))
	}
}

// WeightedNorm computes sqrt(Σ w[i]*x[i]²). Weights must be non-negative;
// this is not validated here (the options layer validates once).
//
// Panics if len(w) != len(x).
func WeightedNorm(x, w []float64) float64 {
	if len(x) != len(w) {
		panic(panicLenMismatch)
	}
	var sum float64
	for i := range x {
		sum += w[i] * x[i] * x[i]
	}

	return math.Sqrt(sum)
}

// AllFinite reports whether every element of x is finite (no NaN, no ±Inf).
// Solvers call this on residuals each step to fail fast on instability.
func AllFinite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
