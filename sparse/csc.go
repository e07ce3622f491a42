// Package sparse: compressed sparse column storage, the column-major mirror
// of CSR. colPtr[j]..colPtr[j+1] bounds column j's segment; row indices
// within each segment are strictly ascending.

package sparse

import (
	"iter"
	"sort"
)

// CSC is compressed sparse column storage.
type CSC struct {
	rows, cols int
	colPtr     []uint32 // len cols+1, non-decreasing
	rowIdx     []uint32 // per-column ascending
	val        []float64
}

// newCSC builds CSC storage from column-major sorted, duplicate-free,
// zero-free triplets — see normalizeTripletsColMajor.
func newCSC(rows, cols int, ts []Triplet) *CSC {
	c := &CSC{
		rows:   rows,
		cols:   cols,
		colPtr: make([]uint32, cols+1),
		rowIdx: make([]uint32, len(ts)),
		val:    make([]float64, len(ts)),
	}
	for _, t := range ts {
		c.colPtr[t.Col+1]++
	}
	for j := 0; j < cols; j++ {
		c.colPtr[j+1] += c.colPtr[j]
	}
	for k, t := range ts {
		c.rowIdx[k] = uint32(t.Row)
		c.val[k] = t.Val
	}

	return c
}

// Format reports FormatCSC.
func (c *CSC) Format() Format { return FormatCSC }

// NNZ returns the stored entry count.
func (c *CSC) NNZ() int { return len(c.val) }

// At binary-searches column j's segment for row i.
func (c *CSC) At(i, j int) (float64, bool) {
	if i < 0 || i >= c.rows || j < 0 || j >= c.cols {
		return 0, false
	}
	lo, hi := int(c.colPtr[j]), int(c.colPtr[j+1])
	k := lo + sort.Search(hi-lo, func(k int) bool { return c.rowIdx[lo+k] >= uint32(i) })
	if k < hi && c.rowIdx[k] == uint32(i) {
		return c.val[k], true
	}

	return 0, false
}

// Row yields row i's entries by binary-searching every column segment —
// the mirror penalty of CSR.Col. Convert to CSR for row-heavy access.
func (c *CSC) Row(i int) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		if i < 0 || i >= c.rows {
			return
		}
		for j := 0; j < c.cols; j++ {
			if v, ok := c.At(i, j); ok {
				if !yield(j, v) {
					return
				}
			}
		}
	}
}

// Col yields column j's (row, value) pairs in ascending row order,
// O(nnz(col j)) per full iteration.
func (c *CSC) Col(j int) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		if j < 0 || j >= c.cols {
			return
		}
		for k := c.colPtr[j]; k < c.colPtr[j+1]; k++ {
			if !yield(int(c.rowIdx[k]), c.val[k]) {
				return
			}
		}
	}
}

// MulVec computes dst = A·x by scattering each column's contribution:
// dst[i] += a[i][j]·x[j]. One O(nnz) pass after an O(rows) clear.
func (c *CSC) MulVec(x, dst []float64) {
	for i := range dst {
		dst[i] = 0
	}
	c.MulVecAdd(x, dst)
}

// MulVecAdd computes dst += A·x column by column.
func (c *CSC) MulVecAdd(x, dst []float64) {
	for j := 0; j < c.cols; j++ {
		xj := x[j]
		if xj == 0 {
			continue // entire column contributes nothing
		}
		for k := c.colPtr[j]; k < c.colPtr[j+1]; k++ {
			dst[c.rowIdx[k]] += c.val[k] * xj
		}
	}
}

// Triplets materializes the column-major interchange form.
func (c *CSC) Triplets() []Triplet {
	out := make([]Triplet, 0, len(c.val))
	for j := 0; j < c.cols; j++ {
		for k := c.colPtr[j]; k < c.colPtr[j+1]; k++ {
			out = append(out, Triplet{Row: int(c.rowIdx[k]), Col: j, Val: c.val[k]})
		}
	}

	return out
}
