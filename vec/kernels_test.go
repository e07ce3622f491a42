// Package vec_test validates the dense kernels against gonum's floats
// package as a reference oracle, covering both the scalar path (short
// vectors) and the unrolled path (lengths past the crossover, including
// non-multiple-of-4 tails).
package vec_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/linsolve/vec"
)

// randVec produces a deterministic pseudo-random vector in [-1, 1).
func randVec(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 2*rng.Float64() - 1
	}

	return out
}

// kernelLens covers the scalar path, the exact crossover, and unrolled
// lengths with every possible tail remainder.
var kernelLens = []int{0, 1, 2, 3, 7, 31, 32, 33, 64, 100, 101, 102, 103, 1000}

func TestDot_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range kernelLens {
		a := randVec(rng, n)
		b := randVec(rng, n)
		want := floats.Dot(a, b)
		require.InDelta(t, want, vec.Dot(a, b), 1e-12, "length %d", n)
	}
}

func TestDot_LengthMismatchPanics(t *testing.T) {
	require.Panics(t, func() { vec.Dot(make([]float64, 3), make([]float64, 4)) })
}

func TestAxpy_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, n := range kernelLens {
		x := randVec(rng, n)
		y := randVec(rng, n)
		want := append([]float64(nil), y...)
		floats.AddScaled(want, 0.75, x)

		vec.Axpy(0.75, x, y)
		for i := range y {
			require.InDelta(t, want[i], y[i], 1e-12, "length %d index %d", n, i)
		}
	}
}

func TestAxpy_ZeroAlphaIsNoop(t *testing.T) {
	y := []float64{1, 2, 3}
	vec.Axpy(0, []float64{9, 9, 9}, y)
	require.Equal(t, []float64{1, 2, 3}, y)
}

func TestScale_And_Elementwise(t *testing.T) {
	x := []float64{1, -2, 4}
	vec.Scale(0.5, x)
	require.Equal(t, []float64{0.5, -1, 2}, x)

	dst := make([]float64, 3)
	vec.AddTo(dst, []float64{1, 2, 3}, []float64{10, 20, 30})
	require.Equal(t, []float64{11, 22, 33}, dst)

	vec.SubTo(dst, []float64{1, 2, 3}, []float64{10, 20, 30})
	require.Equal(t, []float64{-9, -18, -27}, dst)

	vec.MulElemTo(dst, []float64{2, 3, 4}, []float64{5, 6, 7})
	require.Equal(t, []float64{10, 18, 28}, dst)
}

func TestSubTo_AllowsAliasing(t *testing.T) {
	a := []float64{5, 7, 9}
	vec.SubTo(a, a, []float64{1, 2, 3})
	require.Equal(t, []float64{4, 5, 6}, a)
}

func TestNorm_AgainstGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	x := randVec(rng, 257)

	require.InDelta(t, floats.Norm(x, 1), vec.Norm(x, vec.L1), 1e-12)
	require.InDelta(t, floats.Norm(x, 2), vec.Norm(x, vec.L2), 1e-12)
	require.InDelta(t, floats.Norm(x, math.Inf(1)), vec.Norm(x, vec.LInfinity), 1e-12)
}

func TestNorm_EmptyVectorIsZero(t *testing.T) {
	for _, nt := range []vec.NormType{vec.L1, vec.L2, vec.LInfinity} {
		require.Zero(t, vec.Norm(nil, nt), nt.String())
	}
}

func TestWeightedNorm(t *testing.T) {
	x := []float64{3, 4}
	w := []float64{1, 1}
	require.InDelta(t, 5.0, vec.WeightedNorm(x, w), 1e-12)

	// Zero weight removes a coordinate from the norm entirely.
	w = []float64{1, 0}
	require.InDelta(t, 3.0, vec.WeightedNorm(x, w), 1e-12)
}

func TestAllFinite(t *testing.T) {
	require.True(t, vec.AllFinite([]float64{0, -1, 1e300}))
	require.False(t, vec.AllFinite([]float64{0, math.NaN()}))
	require.False(t, vec.AllFinite([]float64{math.Inf(-1)}))
	require.True(t, vec.AllFinite(nil))
}

func TestNormType_String(t *testing.T) {
	require.Equal(t, "L1", vec.L1.String())
	require.Equal(t, "L2", vec.L2.String())
	require.Equal(t, "LInf", vec.LInfinity.String())
	require.Equal(t, "Weighted", vec.Weighted.String())
}
