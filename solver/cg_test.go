package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linsolve/solver"
	"github.com/katalvlaran/linsolve/sparse"
)

func TestCG_SolvesSPDSystem(t *testing.T) {
	// Symmetric positive definite 3x3; CG's home turf.
	m, err := sparse.FromDense([]float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 2,
	}, 3, 3)
	require.NoError(t, err)
	b := []float64{1, 2, 3}

	res, solveErr := solver.Solve(m, b,
		solver.WithMethod(solver.MethodCG),
		solver.WithTolerance(1e-12))
	require.NoError(t, solveErr)
	require.True(t, res.Converged)

	// In exact arithmetic CG on an n-dimensional system terminates within n
	// iterations; allow slack for floating point.
	require.LessOrEqual(t, res.Iterations, 6)

	var want mat.VecDense
	require.NoError(t, want.SolveVec(mat.NewDense(3, 3, []float64{4, 1, 0, 1, 3, 1, 0, 1, 2}),
		mat.NewVecDense(3, b)))
	for i := 0; i < 3; i++ {
		require.InDelta(t, want.AtVec(i), res.Solution[i], 1e-9)
	}
}

func TestCG_WarmStartFromExactSolution(t *testing.T) {
	m := dominant2x2(t)
	res, err := solver.Solve(m, []float64{5, 4},
		solver.WithMethod(solver.MethodCG),
		solver.WithInitialGuess([]float64{1, 1}),
		solver.WithTolerance(1e-8))
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.LessOrEqual(t, res.Iterations, 2)
}

func TestCG_RandomSPDMatchesGonum(t *testing.T) {
	const n = 40
	rng := rand.New(rand.NewSource(11))

	// A = Bᵀ·B + n·I is SPD.
	bm := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			bm.Set(i, j, rng.NormFloat64())
		}
	}
	var a mat.Dense
	a.Mul(bm.T(), bm)
	dense := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := a.At(i, j)
			if i == j {
				v += float64(n)
			}
			dense[i*n+j] = v
		}
	}
	m, err := sparse.FromDense(dense, n, n)
	require.NoError(t, err)

	rhs := make([]float64, n)
	for i := range rhs {
		rhs[i] = rng.NormFloat64()
	}

	res, solveErr := solver.Solve(m, rhs,
		solver.WithMethod(solver.MethodCG),
		solver.WithTolerance(1e-10),
		solver.WithMaxIterations(500))
	require.NoError(t, solveErr)
	require.True(t, res.Converged)

	var want mat.VecDense
	require.NoError(t, want.SolveVec(mat.NewDense(n, n, dense), mat.NewVecDense(n, rhs)))
	for i := 0; i < n; i++ {
		require.InDelta(t, want.AtVec(i), res.Solution[i], 1e-6, "x[%d]", i)
	}
}
