// Package sparse: coordinate (triplet) storage. COO keeps parallel
// row/col/value arrays in insertion order: O(1) append during bulk loading,
// O(nnz) multiply, O(nnz) point lookup. It is the interchange format every
// conversion passes through.

package sparse

import "iter"

// COO is coordinate-format storage: three parallel arrays, unordered.
type COO struct {
	rows, cols int
	rowIdx     []uint32
	colIdx     []uint32
	val        []float64
}

// newCOO builds COO storage from normalized (duplicate-free, zero-free)
// triplets, preserving their order.
func newCOO(rows, cols int, ts []Triplet) *COO {
	c := &COO{
		rows:   rows,
		cols:   cols,
		rowIdx: make([]uint32, len(ts)),
		colIdx: make([]uint32, len(ts)),
		val:    make([]float64, len(ts)),
	}
	for k, t := range ts {
		c.rowIdx[k] = uint32(t.Row)
		c.colIdx[k] = uint32(t.Col)
		c.val[k] = t.Val
	}

	return c
}

// Format reports FormatCOO.
func (c *COO) Format() Format { return FormatCOO }

// NNZ returns the stored entry count.
func (c *COO) NNZ() int { return len(c.val) }

// At scans all entries: O(nnz). COO trades lookup speed for construction
// speed; convert to CSR/CSC when point access matters.
func (c *COO) At(i, j int) (float64, bool) {
	if i < 0 || i >= c.rows || j < 0 || j >= c.cols {
		return 0, false
	}
	for k := range c.val {
		if c.rowIdx[k] == uint32(i) && c.colIdx[k] == uint32(j) {
			return c.val[k], true
		}
	}

	return 0, false
}

// Row yields row i's entries in insertion order; O(nnz) per full iteration.
func (c *COO) Row(i int) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		if i < 0 || i >= c.rows {
			return
		}
		for k := range c.val {
			if c.rowIdx[k] == uint32(i) {
				if !yield(int(c.colIdx[k]), c.val[k]) {
					return
				}
			}
		}
	}
}

// Col yields column j's entries in insertion order; O(nnz) per full iteration.
func (c *COO) Col(j int) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		if j < 0 || j >= c.cols {
			return
		}
		for k := range c.val {
			if c.colIdx[k] == uint32(j) {
				if !yield(int(c.rowIdx[k]), c.val[k]) {
					return
				}
			}
		}
	}
}

// MulVec computes dst = A·x in one scatter pass over the entries.
func (c *COO) MulVec(x, dst []float64) {
	for i := range dst {
		dst[i] = 0
	}
	c.MulVecAdd(x, dst)
}

// MulVecAdd computes dst += A·x.
func (c *COO) MulVecAdd(x, dst []float64) {
	for k := range c.val {
		dst[c.rowIdx[k]] += c.val[k] * x[c.colIdx[k]]
	}
}

// Triplets materializes the entries in insertion order.
func (c *COO) Triplets() []Triplet {
	out := make([]Triplet, len(c.val))
	for k := range c.val {
		out[k] = Triplet{Row: int(c.rowIdx[k]), Col: int(c.colIdx[k]), Val: c.val[k]}
	}

	return out
}
