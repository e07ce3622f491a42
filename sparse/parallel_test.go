package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/katalvlaran/linsolve/sparse"
)

// randomBand produces a banded n×n pattern dense enough to exercise every
// worker's chunk.
func randomBand(rng *rand.Rand, n, band int) []sparse.Triplet {
	var ts []sparse.Triplet
	for i := 0; i < n; i++ {
		for j := i - band; j <= i+band; j++ {
			if j < 0 || j >= n {
				continue
			}
			ts = append(ts, sparse.Triplet{Row: i, Col: j, Val: rng.NormFloat64()})
		}
	}

	return ts
}

func TestMulVec_ParallelMatchesSerial(t *testing.T) {
	const n = 512
	rng := rand.New(rand.NewSource(21))
	ts := randomBand(rng, n, 3)

	serial, err := sparse.FromTriplets(ts, n, n)
	require.NoError(t, err)
	parallel, err := sparse.FromTriplets(ts, n, n,
		sparse.WithWorkers(4), sparse.WithParallelMinRows(1))
	require.NoError(t, err)

	x := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64()
	}
	want := make([]float64, n)
	got := make([]float64, n)
	require.NoError(t, serial.MulVec(x, want))
	require.NoError(t, parallel.MulVec(x, got))

	for i := range want {
		require.InDelta(t, want[i], got[i], 0, "row %d", i)
	}
}

func TestMulVec_ParallelBelowThresholdStaysSerial(t *testing.T) {
	// Threshold far above the size: the serial path must serve, and results
	// must still be correct (the dispatch is an optimization, not behavior).
	m, err := sparse.FromDense([]float64{2, 1, 1, 3}, 2, 2, sparse.WithWorkers(8))
	require.NoError(t, err)
	dst := make([]float64, 2)
	require.NoError(t, m.MulVec([]float64{1, 2}, dst))
	require.Equal(t, []float64{4, 7}, dst)
}

func TestMulVec_MoreWorkersThanRows(t *testing.T) {
	m, err := sparse.FromDense([]float64{2, 1, 1, 3}, 2, 2,
		sparse.WithWorkers(16), sparse.WithParallelMinRows(1))
	require.NoError(t, err)
	dst := make([]float64, 2)
	require.NoError(t, m.MulVec([]float64{1, 2}, dst))
	require.Equal(t, []float64{4, 7}, dst)
}
