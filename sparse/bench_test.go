package sparse_test

import (
	"fmt"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/katalvlaran/linsolve/sparse"
)

func benchMatrix(b *testing.B, f sparse.Format, n int, opts ...sparse.Option) (*sparse.Matrix, []float64) {
	b.Helper()
	rng := rand.New(rand.NewSource(33))
	ts := randomBand(rng, n, 8)
	opts = append(opts, sparse.WithFormat(f))
	m, err := sparse.FromTriplets(ts, n, n, opts...)
	if err != nil {
		b.Fatal(err)
	}
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64()
	}

	return m, x
}

func BenchmarkMulVec_Formats(b *testing.B) {
	const n = 4096
	for _, f := range []sparse.Format{sparse.FormatCSR, sparse.FormatCSC, sparse.FormatCOO, sparse.FormatGraph} {
		m, x := benchMatrix(b, f, n)
		dst := make([]float64, n)
		b.Run(f.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = m.MulVec(x, dst)
			}
		})
	}
}

func BenchmarkMulVec_Parallel(b *testing.B) {
	const n = 16384
	for _, workers := range []int{1, 2, 4, 8} {
		m, x := benchMatrix(b, sparse.FormatCSR, n,
			sparse.WithWorkers(workers), sparse.WithParallelMinRows(1))
		dst := make([]float64, n)
		b.Run(fmt.Sprintf("workers%d", workers), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = m.MulVec(x, dst)
			}
		})
	}
}

func BenchmarkConvertTo(b *testing.B) {
	const n = 2048
	m, _ := benchMatrix(b, sparse.FormatCOO, n)
	targets := []sparse.Format{sparse.FormatCSR, sparse.FormatCSC, sparse.FormatGraph, sparse.FormatCOO}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.ConvertTo(targets[i%len(targets)])
	}
}
