// Package solver: the public solve entry point and algorithm selection.

package solver

import (
	"github.com/katalvlaran/linsolve/sparse"
)

// Solve solves Ax = b with the configured (or automatically selected)
// algorithm and returns the uniform Result surface.
//
// Selection under MethodAuto: diagonally dominant systems take the Neumann
// series (guaranteed geometric convergence); everything else takes the
// hybrid pipeline, whose phases make no dominance assumption and whose
// global-best tracking keeps the result monotone.
//
// Callers must check both returns: Converged == false with a nil error is
// a soft outcome, and a ConvergenceFailure error still carries the best
// partial Result.
func Solve(m *sparse.Matrix, b []float64, opts ...Option) (*Result, error) {
	o := gatherOptions(opts)
	if m == nil {
		return nil, newError(KindInvalidInput, "Solve", "nil matrix")
	}

	alg, err := newAlgorithm(m, o.Method)
	if err != nil {
		return nil, err
	}

	return Iterate(alg, m, b, o)
}

// newAlgorithm maps a Method to a fresh Algorithm instance.
func newAlgorithm(m *sparse.Matrix, method Method) (Algorithm, error) {
	switch method {
	case MethodNeumann:
		return NewNeumann(), nil
	case MethodHybrid:
		return NewHybrid(), nil
	case MethodCG:
		return NewConjugateGradient(), nil
	case MethodAuto:
		if m.IsSquare() {
			if dominant, err := m.IsDiagonallyDominant(); err == nil && dominant {
				return NewNeumann(), nil
			}
		}

		return NewHybrid(), nil
	default:
		return nil, newError(KindInvalidInput, "Solve", "unknown method %d", method)
	}
}
