package solver_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linsolve/solver"
	"github.com/katalvlaran/linsolve/sparse"
	"github.com/katalvlaran/linsolve/vec"
)

func TestSolve_NilMatrix(t *testing.T) {
	res, err := solver.Solve(nil, []float64{1})
	require.ErrorIs(t, err, solver.ErrInvalidInput)
	require.Nil(t, res)
}

func TestSolve_RectangularMatrix(t *testing.T) {
	m, err := sparse.FromDense([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	res, solveErr := solver.Solve(m, []float64{1, 2})
	require.ErrorIs(t, solveErr, solver.ErrInvalidSparseMatrix)
	require.Nil(t, res)
}

func TestSolve_AutoSelectsMethodByDominance(t *testing.T) {
	// Dominant system: auto resolves to the series solver.
	res, err := solver.Solve(dominant2x2(t), []float64{5, 4}, solver.WithStats())
	require.NoError(t, err)
	require.Equal(t, "Neumann", res.Stats.Algorithm)

	// Non-dominant: auto falls back to the hybrid.
	res, err = solver.Solve(contracting2x2(t), []float64{5, 3},
		solver.WithStats(),
		solver.WithPushThreshold(1e-12),
		solver.WithTolerance(1e-8),
		solver.WithMaxIterations(5000))
	require.NoError(t, err)
	require.Equal(t, "Hybrid", res.Stats.Algorithm)
}

func TestSolve_ConvergenceModes(t *testing.T) {
	m := dominant2x2(t)
	b := []float64{5, 4}

	modes := []solver.ConvergenceMode{
		solver.ResidualNorm,
		solver.RelativeResidual,
		solver.SolutionChange,
		solver.RelativeSolutionChange,
		solver.Combined,
	}
	for _, mode := range modes {
		res, err := solver.Solve(m, b,
			solver.WithMethod(solver.MethodNeumann),
			solver.WithConvergenceMode(mode),
			solver.WithTolerance(1e-10))
		require.NoError(t, err, "mode %v", mode)
		require.True(t, res.Converged, "mode %v", mode)
		require.InDelta(t, 1.0, res.Solution[0], 1e-6, "mode %v", mode)
		require.InDelta(t, 1.0, res.Solution[1], 1e-6, "mode %v", mode)
	}
}

func TestSolve_NormChoices(t *testing.T) {
	m := dominant2x2(t)
	b := []float64{5, 4}

	for _, nt := range []vec.NormType{vec.L1, vec.L2, vec.LInfinity} {
		res, err := solver.Solve(m, b, solver.WithNorm(nt))
		require.NoError(t, err, "norm %v", nt)
		require.True(t, res.Converged)
	}

	res, err := solver.Solve(m, b, solver.WithWeightedNorm([]float64{1, 2}))
	require.NoError(t, err)
	require.True(t, res.Converged)
}

func TestSolve_MaxIterationsExhausted(t *testing.T) {
	// Barely dominant system converges slowly; two iterations cannot reach
	// the tolerance, so the solve surfaces the typed failure with the best
	// partial estimate attached.
	m, err := sparse.FromDense([]float64{1.01, 1, 1, 1.01}, 2, 2)
	require.NoError(t, err)

	res, solveErr := solver.Solve(m, []float64{2.01, 2.01},
		solver.WithMethod(solver.MethodNeumann),
		solver.WithMaxIterations(2),
		solver.WithTolerance(1e-12))
	require.ErrorIs(t, solveErr, solver.ErrConvergenceFailure)
	require.NotNil(t, res)
	require.False(t, res.Converged)
	require.Equal(t, 2, res.Iterations)

	var solErr *solver.Error
	require.ErrorAs(t, solveErr, &solErr)
	require.Greater(t, solErr.Residual, 1e-12)
	require.Equal(t, 1e-12, solErr.Tolerance)
	require.True(t, solErr.Recoverable())
}

func TestSolve_SharedPoolIsReused(t *testing.T) {
	pool := vec.NewSharedPool()
	m := dominant2x2(t)
	b := []float64{5, 4}

	for i := 0; i < 3; i++ {
		res, err := solver.Solve(m, b, solver.WithPool(pool))
		require.NoError(t, err)
		require.True(t, res.Converged)
	}

	stats := pool.Stats()
	require.Greater(t, stats.Gets, uint64(0))
	require.Greater(t, stats.Reuses, uint64(0), "later solves must recycle buffers")
}

func TestSolve_StatsSurface(t *testing.T) {
	res, err := solver.Solve(dominant2x2(t), []float64{5, 4}, solver.WithStats())
	require.NoError(t, err)
	require.NotNil(t, res.Stats)
	require.Greater(t, res.Stats.Elapsed, time.Duration(0))
	require.Len(t, res.Stats.ResidualHistory, res.Iterations)
	require.Greater(t, res.Stats.Pool.Gets, uint64(0))

	// Stats are opt-in.
	res, err = solver.Solve(dominant2x2(t), []float64{5, 4})
	require.NoError(t, err)
	require.Nil(t, res.Stats)
}

func TestSolve_SolutionIsCallerOwned(t *testing.T) {
	m := dominant2x2(t)
	res1, err := solver.Solve(m, []float64{5, 4})
	require.NoError(t, err)
	res2, err := solver.Solve(m, []float64{10, 8})
	require.NoError(t, err)

	// Distinct solves must not alias solution storage.
	require.InDelta(t, 1.0, res1.Solution[0], 1e-6)
	require.InDelta(t, 2.0, res2.Solution[0], 1e-6)
}
