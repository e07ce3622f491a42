// Round-trip and idempotence guarantees of format conversion: every path
// through the triplet interchange form preserves the entry multiset.
package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/katalvlaran/linsolve/sparse"
)

func TestConvertTo_RoundTripAllPairs(t *testing.T) {
	want := sortTriplets(testTriplets)
	for _, from := range allFormats {
		for _, to := range allFormats {
			t.Run(from.String()+"_to_"+to.String(), func(t *testing.T) {
				m := buildIn(t, from)
				require.NoError(t, m.ConvertTo(to))
				require.Equal(t, to, m.Format())
				require.Equal(t, len(testTriplets), m.NNZ())
				require.Equal(t, want, sortTriplets(m.Triplets()))
			})
		}
	}
}

func TestConvertTo_SameFormatIsNoop(t *testing.T) {
	for _, f := range allFormats {
		t.Run(f.String(), func(t *testing.T) {
			m := buildIn(t, f)
			before := sortTriplets(m.Triplets())
			nnz := m.NNZ()

			require.NoError(t, m.ConvertTo(f))
			require.Equal(t, f, m.Format())
			require.Equal(t, nnz, m.NNZ())
			require.Equal(t, before, sortTriplets(m.Triplets()))
		})
	}
}

func TestConvertTo_ThroughCOOAndBack(t *testing.T) {
	// triplets → any format → COO → any other format keeps the multiset.
	for _, f := range allFormats {
		m := buildIn(t, f)
		require.NoError(t, m.ConvertTo(sparse.FormatCOO))
		require.NoError(t, m.ConvertTo(sparse.FormatGraph))
		require.NoError(t, m.ConvertTo(sparse.FormatCSC))
		require.Equal(t, sortTriplets(testTriplets), sortTriplets(m.Triplets()))
	}
}

func TestConvertTo_UnknownFormat(t *testing.T) {
	m := buildIn(t, sparse.FormatCSR)
	require.ErrorIs(t, m.ConvertTo(sparse.Format(99)), sparse.ErrUnknownFormat)
	require.Equal(t, sparse.FormatCSR, m.Format(), "failed conversion must leave storage intact")
}

func TestConvertTo_RandomMatrixAgreesAcrossFormats(t *testing.T) {
	// A denser random pattern: every format must report identical At and
	// MulVec results after conversion.
	const n = 40
	rng := rand.New(rand.NewSource(11))
	var ts []sparse.Triplet
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if rng.Float64() < 0.15 {
				ts = append(ts, sparse.Triplet{Row: i, Col: j, Val: rng.NormFloat64()})
			}
		}
	}
	ref, err := sparse.FromTriplets(ts, n, n)
	require.NoError(t, err)

	x := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64()
	}
	want := make([]float64, n)
	require.NoError(t, ref.MulVec(x, want))

	for _, f := range allFormats[1:] {
		m := ref.Clone()
		require.NoError(t, m.ConvertTo(f))
		got := make([]float64, n)
		require.NoError(t, m.MulVec(x, got))
		for i := range want {
			require.InDelta(t, want[i], got[i], 1e-12, "format %s row %d", f, i)
		}
	}
}
