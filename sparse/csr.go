// Package sparse: compressed sparse row storage.
//
// Layout: val/colIdx hold the nonzeros row by row; rowPtr[i]..rowPtr[i+1]
// bounds row i's segment. Invariants (established by the builder, relied on
// everywhere): rowPtr is non-decreasing with rowPtr[0]==0 and
// rowPtr[rows]==nnz; column indices within each row segment are strictly
// ascending, enabling binary-search point lookup.

package sparse

import (
	"iter"
	"sort"
)

// CSR is compressed sparse row storage. Construct through the Matrix facade
// or newCSR; the zero value is an empty 0x0 matrix.
type CSR struct {
	rows, cols int
	rowPtr     []uint32 // len rows+1, non-decreasing
	colIdx     []uint32 // per-row ascending
	val        []float64
}

// newCSR builds CSR storage from normalized triplets (row-major sorted,
// duplicate-free, zero-free) — see normalizeTriplets.
func newCSR(rows, cols int, ts []Triplet) *CSR {
	c := &CSR{
		rows:   rows,
		cols:   cols,
		rowPtr: make([]uint32, rows+1),
		colIdx: make([]uint32, len(ts)),
		val:    make([]float64, len(ts)),
	}
	// Count entries per row, then prefix-sum into rowPtr.
	for _, t := range ts {
		c.rowPtr[t.Row+1]++
	}
	for i := 0; i < rows; i++ {
		c.rowPtr[i+1] += c.rowPtr[i]
	}
	// Triplets arrive row-major sorted, so a single pass fills segments in order.
	for k, t := range ts {
		c.colIdx[k] = uint32(t.Col)
		c.val[k] = t.Val
	}

	return c
}

// Format reports FormatCSR.
func (c *CSR) Format() Format { return FormatCSR }

// NNZ returns the stored entry count.
func (c *CSR) NNZ() int { return len(c.val) }

// At binary-searches row i's segment for column j.
// Complexity: O(log nnz(row i)).
func (c *CSR) At(i, j int) (float64, bool) {
	if i < 0 || i >= c.rows || j < 0 || j >= c.cols {
		return 0, false
	}
	lo, hi := int(c.rowPtr[i]), int(c.rowPtr[i+1])
	k := lo + sort.Search(hi-lo, func(k int) bool { return c.colIdx[lo+k] >= uint32(j) })
	if k < hi && c.colIdx[k] == uint32(j) {
		return c.val[k], true
	}

	return 0, false
}

// Row yields row i's (col, value) pairs in ascending column order.
// Complexity: O(nnz(row i)) per full iteration.
func (c *CSR) Row(i int) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		if i < 0 || i >= c.rows {
			return
		}
		for k := c.rowPtr[i]; k < c.rowPtr[i+1]; k++ {
			if !yield(int(c.colIdx[k]), c.val[k]) {
				return
			}
		}
	}
}

// Col yields column j's (row, value) pairs in ascending row order.
// CSR has no column index, so every row is binary-searched:
// O(rows·log(max row nnz)) per full iteration. Convert to CSC for
// column-heavy access patterns.
func (c *CSR) Col(j int) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		if j < 0 || j >= c.cols {
			return
		}
		for i := 0; i < c.rows; i++ {
			if v, ok := c.At(i, j); ok {
				if !yield(i, v) {
					return
				}
			}
		}
	}
}

// MulVec computes dst = A·x in a single O(nnz) pass.
func (c *CSR) MulVec(x, dst []float64) {
	for i := 0; i < c.rows; i++ {
		dst[i] = c.rowDot(i, x)
	}
}

// MulVecAdd computes dst += A·x.
func (c *CSR) MulVecAdd(x, dst []float64) {
	for i := 0; i < c.rows; i++ {
		dst[i] += c.rowDot(i, x)
	}
}

// rowDot is the row-times-vector kernel shared by the serial and parallel
// multiply paths. Local accumulator, sequential segment walk.
func (c *CSR) rowDot(i int, x []float64) float64 {
	var sum float64
	for k := c.rowPtr[i]; k < c.rowPtr[i+1]; k++ {
		sum += c.val[k] * x[c.colIdx[k]]
	}

	return sum
}

// mulVecRange computes dst[lo:hi] = (A·x)[lo:hi]; the parallel driver hands
// each worker a disjoint contiguous row range, so no synchronization is
// needed beyond the final join.
func (c *CSR) mulVecRange(x, dst []float64, lo, hi int) {
	for i := lo; i < hi; i++ {
		dst[i] = c.rowDot(i, x)
	}
}

// Triplets materializes the row-major interchange form.
func (c *CSR) Triplets() []Triplet {
	out := make([]Triplet, 0, len(c.val))
	for i := 0; i < c.rows; i++ {
		for k := c.rowPtr[i]; k < c.rowPtr[i+1]; k++ {
			out = append(out, Triplet{Row: i, Col: int(c.colIdx[k]), Val: c.val[k]})
		}
	}

	return out
}
