// Package solver_test: Neumann-series solver behavior, including the
// dominance preconditions, convergence against known and gonum-computed
// solutions, and the truncation-tail error bound.
package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linsolve/solver"
	"github.com/katalvlaran/linsolve/sparse"
)

// dominant2x2 builds 4x₁+x₂=5, x₁+3x₂=4 — exact solution [1, 1].
func dominant2x2(t *testing.T) *sparse.Matrix {
	t.Helper()
	m, err := sparse.FromDense([]float64{4, 1, 1, 3}, 2, 2)
	require.NoError(t, err)

	return m
}

func TestNeumann_ConvergesOnKnownSystem(t *testing.T) {
	m := dominant2x2(t)
	res, err := solver.Solve(m, []float64{5, 4},
		solver.WithMethod(solver.MethodNeumann),
		solver.WithTolerance(1e-10))
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.InDelta(t, 1.0, res.Solution[0], 1e-8)
	require.InDelta(t, 1.0, res.Solution[1], 1e-8)
	require.Less(t, res.ResidualNorm, 1e-8)
	require.Greater(t, res.Iterations, 0)
	require.LessOrEqual(t, res.Iterations, solver.DefaultMaxIterations)
}

func TestNeumann_FailsOnNonDominantAtInit(t *testing.T) {
	m, err := sparse.FromDense([]float64{1, 3, 2, 1}, 2, 2)
	require.NoError(t, err)

	res, solveErr := solver.Solve(m, []float64{4, 3},
		solver.WithMethod(solver.MethodNeumann))
	require.ErrorIs(t, solveErr, solver.ErrNotDiagonallyDominant)
	require.Nil(t, res, "initialization failures carry no partial result")
}

func TestNeumann_FailsOnMissingDiagonal(t *testing.T) {
	// Row 1 is empty: dominance holds trivially, but D⁻¹ does not exist.
	m, err := sparse.FromTriplets([]sparse.Triplet{
		{Row: 0, Col: 0, Val: 4},
	}, 2, 2)
	require.NoError(t, err)

	_, solveErr := solver.Solve(m, []float64{1, 1},
		solver.WithMethod(solver.MethodNeumann))
	require.ErrorIs(t, solveErr, solver.ErrInvalidSparseMatrix)
}

func TestNeumann_InitialGuessSpeedsConvergence(t *testing.T) {
	m := dominant2x2(t)
	b := []float64{5, 4}

	cold, err := solver.Solve(m, b, solver.WithMethod(solver.MethodNeumann))
	require.NoError(t, err)
	warm, err := solver.Solve(m, b,
		solver.WithMethod(solver.MethodNeumann),
		solver.WithInitialGuess([]float64{1 + 1e-12, 1 - 1e-12}))
	require.NoError(t, err)

	require.True(t, warm.Converged)
	require.LessOrEqual(t, warm.Iterations, cold.Iterations)
	require.InDelta(t, 1.0, warm.Solution[0], 1e-8)
}

func TestNeumann_DirectUseDefaultsPool(t *testing.T) {
	// Driving the algorithm without the driver must work with plain
	// DefaultOptions: Init supplies the pool when none was configured.
	m := dominant2x2(t)
	alg := solver.NewNeumann()
	o := solver.DefaultOptions()
	require.NoError(t, alg.Init(m, []float64{5, 4}, &o))

	for i := 0; i < 100; i++ {
		status, err := alg.Step()
		require.NoError(t, err)
		if status == solver.Converged {
			break
		}
	}
	require.InDelta(t, 1.0, alg.Solution()[0], 1e-8)
	require.InDelta(t, 1.0, alg.Solution()[1], 1e-8)
}

func TestNeumann_ErrorBounds(t *testing.T) {
	// Strong dominance: the decay ratio is small and the tail bound tight.
	m, err := sparse.FromDense([]float64{10, 1, 1, 10}, 2, 2)
	require.NoError(t, err)
	b := []float64{11, 11} // exact solution [1, 1]

	res, solveErr := solver.Solve(m, b,
		solver.WithMethod(solver.MethodNeumann),
		solver.WithErrorBounds())
	require.NoError(t, solveErr)
	require.NotNil(t, res.Bounds)
	require.Greater(t, res.Bounds.Upper, 0.0)
	require.Greater(t, res.Bounds.Contraction, 0.0)
	require.Less(t, res.Bounds.Contraction, 1.0)

	// The bound must cover the true error.
	actualErr := 0.0
	for i, want := range []float64{1, 1} {
		if d := abs(res.Solution[i] - want); d > actualErr {
			actualErr = d
		}
	}
	require.LessOrEqual(t, actualErr, res.Bounds.Upper+1e-12)
}

func TestNeumann_MatchesGonumOnRandomDominantSystem(t *testing.T) {
	const n = 50
	rng := rand.New(rand.NewSource(5))

	// Random sparse pattern made strictly dominant by inflating diagonals.
	dense := make([]float64, n*n)
	for i := 0; i < n; i++ {
		var off float64
		for j := 0; j < n; j++ {
			if i != j && rng.Float64() < 0.2 {
				v := rng.NormFloat64()
				dense[i*n+j] = v
				off += abs(v)
			}
		}
		dense[i*n+i] = off + 1 + rng.Float64()
	}
	m, err := sparse.FromDense(dense, n, n)
	require.NoError(t, err)

	b := make([]float64, n)
	for i := range b {
		b[i] = rng.NormFloat64()
	}

	res, solveErr := solver.Solve(m, b, solver.WithMethod(solver.MethodNeumann),
		solver.WithTolerance(1e-12))
	require.NoError(t, solveErr)
	require.True(t, res.Converged)

	// Reference: dense LU via gonum.
	var want mat.VecDense
	require.NoError(t, want.SolveVec(mat.NewDense(n, n, dense), mat.NewVecDense(n, b)))
	for i := 0; i < n; i++ {
		require.InDelta(t, want.AtVec(i), res.Solution[i], 1e-8, "x[%d]", i)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
