// Package solver: the iterate-until-converged driver.
//
// The driver owns the loop every algorithm runs under: it validates inputs
// once, steps the algorithm, computes the true residual ‖b - Ax‖ after each
// step, applies the configured convergence mode, and classifies failures
// uniformly — a non-finite value is immediately fatal
// (NumericalInstability), and running out of budget is reported as
// ConvergenceFailure carrying the final residual, tolerance and algorithm
// name rather than silently truncating.

package solver

import (
	"math"
	"time"

	"github.com/katalvlaran/linsolve/sparse"
	"github.com/katalvlaran/linsolve/vec"
)

// relEps floors relative denominators so zero vectors cannot divide out.
const relEps = 1e-300

// Iterate runs alg against the system (m, b) under o until convergence,
// failure, time limit or budget exhaustion.
//
// Outcomes:
//   - converged: Result with Converged=true, nil error;
//   - time limit: Result with Converged=false, nil error;
//   - budget exhausted: partial Result plus *Error (ConvergenceFailure);
//   - instability or algorithm failure: nil Result plus *Error.
func Iterate(alg Algorithm, m *sparse.Matrix, b []float64, o Options) (*Result, error) {
	if m == nil {
		return nil, newError(KindInvalidInput, alg.Name(), "nil matrix")
	}
	if !m.IsSquare() {
		return nil, newError(KindInvalidSparseMatrix, alg.Name(),
			"matrix is %dx%d, want square", m.Rows(), m.Cols())
	}
	n := m.Rows()
	if len(b) != n {
		return nil, newError(KindDimensionMismatch, alg.Name(),
			"right-hand side length %d vs dimension %d", len(b), n)
	}
	if !vec.AllFinite(b) {
		return nil, newError(KindInvalidInput, alg.Name(), "right-hand side contains NaN/Inf")
	}
	if err := o.validate(n); err != nil {
		return nil, err
	}
	if o.Pool == nil {
		o.Pool = vec.NewPool() // exclusive per-solve pool by default
	}

	if err := alg.Init(m, b, &o); err != nil {
		return nil, err
	}

	var stats *Stats
	if o.CollectStats {
		stats = &Stats{Algorithm: alg.Name()}
	}

	start := time.Now()
	scratch := o.Pool.Get(n) // residual workspace
	prev := o.Pool.Get(n)    // previous solution for change-based modes
	defer o.Pool.Put(scratch)
	defer o.Pool.Put(prev)

	bNorm := o.norm(b)
	var it int
	var resNorm float64
	for it = 1; it <= o.MaxIterations; it++ {
		if o.TimeLimit > 0 && time.Since(start) > o.TimeLimit {
			// Soft outcome: the caller asked for a wall-clock budget.
			return finish(alg, m, b, o, it-1, false, stats, start), nil
		}

		copy(prev, workingIterate(alg))
		status, err := alg.Step()
		if err != nil {
			if solErr, ok := err.(*Error); ok && solErr.Kind == KindConvergenceFailure {
				// The algorithm ran out of road; hand back its best as partial.
				return finish(alg, m, b, o, it, false, stats, start), solErr
			}

			return nil, err
		}

		x := alg.Solution()
		internal := alg.Residual()
		if !vec.AllFinite(x) || math.IsNaN(internal) || math.IsInf(internal, 0) {
			return nil, &Error{
				Kind: KindNumericalInstability, Op: alg.Name(),
				Detail: "non-finite value mid-iteration", Residual: internal,
			}
		}

		resNorm = trueResidual(m, b, x, o, scratch)
		if stats != nil {
			stats.ResidualHistory = append(stats.ResidualHistory, resNorm)
		}
		if status == Converged || o.met(resNorm, bNorm, workingIterate(alg), prev, scratch) {
			return finish(alg, m, b, o, it, true, stats, start), nil
		}
		if status == Failed {
			return nil, newError(KindAlgorithm, alg.Name(), "step reported failure without error")
		}
	}

	// Budget exhausted above tolerance: typed failure plus the partial best.
	partial := finish(alg, m, b, o, o.MaxIterations, false, stats, start)

	return partial, &Error{
		Kind: KindConvergenceFailure, Op: alg.Name(),
		Detail:    "iteration budget exhausted",
		Residual:  partial.ResidualNorm,
		Tolerance: o.Tolerance,
	}
}

// workingIterate returns the vector the algorithm's steps actually mutate:
// the optional capability for algorithms whose Solution is a best-so-far
// snapshot, the Solution itself for everything else.
func workingIterate(alg Algorithm) []float64 {
	if ip, ok := alg.(iterateProvider); ok {
		return ip.currentIterate()
	}

	return alg.Solution()
}

// trueResidual computes ‖b - Ax‖ in the configured norm using scratch.
func trueResidual(m *sparse.Matrix, b, x []float64, o Options, scratch []float64) float64 {
	// MulVec cannot fail here: dimensions were validated up front.
	_ = m.MulVec(x, scratch)
	vec.SubTo(scratch, b, scratch)

	return o.norm(scratch)
}

// met applies the configured convergence mode.
func (o *Options) met(resNorm, bNorm float64, x, prev, scratch []float64) bool {
	switch o.Mode {
	case ResidualNorm:
		return resNorm <= o.Tolerance
	case RelativeResidual:
		if bNorm == 0 {
			return resNorm <= o.Tolerance
		}

		return resNorm <= o.Tolerance*bNorm
	case SolutionChange:
		return o.change(x, prev, scratch) <= o.Tolerance
	case RelativeSolutionChange:
		xNorm := o.norm(x)
		if xNorm < relEps {
			xNorm = relEps
		}

		return o.change(x, prev, scratch)/xNorm <= o.Tolerance
	case Combined:
		return resNorm <= o.Tolerance && o.change(x, prev, scratch) <= o.Tolerance
	default:
		return resNorm <= o.Tolerance
	}
}

// change computes ‖x - prev‖ into scratch.
func (o *Options) change(x, prev, scratch []float64) float64 {
	vec.SubTo(scratch, x, prev)

	return o.norm(scratch)
}

// finish assembles the Result surface, recomputing the definitive residual
// and collecting optional bounds, phase reports and pool counters.
func finish(alg Algorithm, m *sparse.Matrix, b []float64, o Options,
	iterations int, converged bool, stats *Stats, start time.Time) *Result {
	x := vec.Clone(alg.Solution())
	scratch := o.Pool.Get(len(b))
	resNorm := trueResidual(m, b, x, o, scratch)
	o.Pool.Put(scratch)

	res := &Result{
		Solution:     x,
		ResidualNorm: resNorm,
		Iterations:   iterations,
		Converged:    converged,
	}
	if o.ComputeBounds {
		if bp, ok := alg.(boundsProvider); ok {
			res.Bounds = bp.Bounds()
		}
	}
	if stats != nil {
		stats.Elapsed = time.Since(start)
		stats.Pool = o.Pool.Stats()
		if pr, ok := alg.(phaseReporter); ok {
			stats.Phases = pr.PhaseReports()
		}
		res.Stats = stats
	}

	return res
}
