// Package sparse: the Matrix facade — one active storage representation,
// tagged by format, with validated construction, atomic format conversion,
// and in-place numeric mutation.

package sparse

import (
	"fmt"
	"iter"
	"math"
)

// Matrix owns exactly one storage representation at a time. rows/cols are
// authoritative across all storage kinds; no stored entry references an
// out-of-range index, and no stored value is exactly zero or non-finite.
//
// Matrices are safe for concurrent reads; Scale, AddDiagonal and ConvertTo
// require exclusive access.
type Matrix struct {
	rows, cols int
	storage    Storage
	cfg        config
}

// maxDim bounds each dimension: entry indices must fit the uint32 index
// storage of the compressed formats.
const maxDim = math.MaxUint32

// FromTriplets constructs a Matrix from (row, col, value) entries.
//
// Validation (fail-fast, before any storage is built):
//  1. 0 < rows ≤ maxDim and 0 < cols ≤ maxDim (ErrBadShape);
//  2. every index within [0,rows)x[0,cols) (ErrIndexOutOfBounds);
//  3. every value finite (ErrNaNInf).
//
// Exact-zero entries are dropped; duplicate coordinates are summed.
// Complexity: O(nnz·log nnz).
func FromTriplets(ts []Triplet, rows, cols int, opts ...Option) (*Matrix, error) {
	if rows <= 0 || cols <= 0 || uint64(rows) > maxDim || uint64(cols) > maxDim {
		return nil, fmt.Errorf("FromTriplets: %dx%d: %w", rows, cols, ErrBadShape)
	}
	for _, t := range ts {
		if t.Row < 0 || t.Row >= rows || t.Col < 0 || t.Col >= cols {
			return nil, fmt.Errorf("FromTriplets: entry (%d,%d) outside %dx%d: %w",
				t.Row, t.Col, rows, cols, ErrIndexOutOfBounds)
		}
		if math.IsNaN(t.Val) || math.IsInf(t.Val, 0) {
			return nil, fmt.Errorf("FromTriplets: entry (%d,%d): %w", t.Row, t.Col, ErrNaNInf)
		}
	}

	return build(ts, rows, cols, gatherOptions(opts))
}

// FromDense constructs a Matrix from a row-major dense slice of length
// rows*cols, filtering zeros. Non-finite values are rejected (ErrNaNInf).
func FromDense(values []float64, rows, cols int, opts ...Option) (*Matrix, error) {
	if rows <= 0 || cols <= 0 || uint64(rows) > maxDim || uint64(cols) > maxDim ||
		len(values) != rows*cols {
		return nil, fmt.Errorf("FromDense: %dx%d with %d values: %w", rows, cols, len(values), ErrBadShape)
	}
	ts := make([]Triplet, 0, len(values))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := values[i*cols+j]
			if v == 0 {
				continue
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("FromDense: entry (%d,%d): %w", i, j, ErrNaNInf)
			}
			ts = append(ts, Triplet{Row: i, Col: j, Val: v})
		}
	}

	return build(ts, rows, cols, gatherOptions(opts))
}

// Identity constructs the n×n identity matrix.
func Identity(n int, opts ...Option) (*Matrix, error) {
	if n <= 0 || uint64(n) > maxDim {
		return nil, fmt.Errorf("Identity: n=%d: %w", n, ErrBadShape)
	}
	ts := make([]Triplet, n)
	for i := 0; i < n; i++ {
		ts[i] = Triplet{Row: i, Col: i, Val: 1}
	}

	return build(ts, n, n, gatherOptions(opts))
}

// Diagonal constructs a square matrix with diag on the main diagonal.
// Zero diagonal values are filtered like any other zero; non-finite values
// are rejected.
func Diagonal(diag []float64, opts ...Option) (*Matrix, error) {
	n := len(diag)
	if n == 0 || uint64(n) > maxDim {
		return nil, fmt.Errorf("Diagonal: length %d: %w", n, ErrBadShape)
	}
	ts := make([]Triplet, 0, n)
	for i, v := range diag {
		if v == 0 {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("Diagonal: entry %d: %w", i, ErrNaNInf)
		}
		ts = append(ts, Triplet{Row: i, Col: i, Val: v})
	}

	return build(ts, n, n, gatherOptions(opts))
}

// build assembles the facade around freshly constructed storage.
func build(ts []Triplet, rows, cols int, cfg config) (*Matrix, error) {
	st, err := buildStorage(cfg.format, rows, cols, ts)
	if err != nil {
		return nil, err
	}

	return &Matrix{rows: rows, cols: cols, storage: st, cfg: cfg}, nil
}

// Rows returns the row dimension.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the column dimension.
func (m *Matrix) Cols() int { return m.cols }

// NNZ returns the stored entry count.
func (m *Matrix) NNZ() int { return m.storage.NNZ() }

// Format reports the active storage representation.
func (m *Matrix) Format() Format { return m.storage.Format() }

// IsSquare reports rows == cols.
func (m *Matrix) IsSquare() bool { return m.rows == m.cols }

// At returns the entry at (i, j) and whether it is stored. Out-of-range
// indices read as absent; reads never mutate storage.
func (m *Matrix) At(i, j int) (float64, bool) { return m.storage.At(i, j) }

// Row yields row i's (col, value) pairs; ordering is the active storage's
// natural order (ascending for CSR/CSC/Graph, insertion for COO).
func (m *Matrix) Row(i int) iter.Seq2[int, float64] { return m.storage.Row(i) }

// Col yields column j's (row, value) pairs.
func (m *Matrix) Col(j int) iter.Seq2[int, float64] { return m.storage.Col(j) }

// Triplets materializes the interchange form of the active storage.
func (m *Matrix) Triplets() []Triplet { return m.storage.Triplets() }

// Graph returns the active storage as a *GraphStore, converting first when
// necessary. Algorithms needing O(degree) neighbor access call this once
// up front.
func (m *Matrix) Graph() (*GraphStore, error) {
	if err := m.ConvertTo(FormatGraph); err != nil {
		return nil, err
	}

	return m.storage.(*GraphStore), nil
}

// ConvertTo replaces the active storage with the target format.
//
// A no-op when already in format f (same storage pointer, same nnz).
// Otherwise the new storage is fully built from Triplets() before the swap,
// so the matrix is never observable half-converted, and a build failure
// leaves the original storage intact.
// Complexity: O(nnz·log nnz).
func (m *Matrix) ConvertTo(f Format) error {
	if !f.valid() {
		return fmt.Errorf("ConvertTo: %w", ErrUnknownFormat)
	}
	if m.storage.Format() == f {
		return nil
	}
	st, err := buildStorage(f, m.rows, m.cols, m.storage.Triplets())
	if err != nil {
		return fmt.Errorf("ConvertTo: %w", err)
	}
	m.storage = st // atomic swap: single pointer assignment

	return nil
}

// Scale multiplies every stored entry by alpha in place.
//
// alpha must be finite and nonzero (scaling by zero would silently violate
// the no-stored-zeros invariant; build a fresh empty matrix instead).
func (m *Matrix) Scale(alpha float64) error {
	if alpha == 0 || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return fmt.Errorf("Scale: alpha=%g: %w", alpha, ErrNaNInf)
	}
	switch st := m.storage.(type) {
	case *CSR:
		for k := range st.val {
			st.val[k] *= alpha
		}
	case *CSC:
		for k := range st.val {
			st.val[k] *= alpha
		}
	case *COO:
		for k := range st.val {
			st.val[k] *= alpha
		}
	case *GraphStore:
		a := math.Abs(alpha)
		for i := range st.out {
			for k := range st.out[i] {
				st.out[i][k].Weight *= alpha
			}
			st.degree[i] *= a
		}
		for j := range st.in {
			for k := range st.in[j] {
				st.in[j][k].Weight *= alpha
			}
		}
	}

	return nil
}

// AddDiagonal adds alpha to every main-diagonal entry in place, inserting
// missing diagonal entries, for square matrices only.
//
// Entries that cancel to exactly zero are dropped, preserving the
// no-stored-zeros invariant; storage is rebuilt in the current format.
// Complexity: O(nnz·log nnz).
func (m *Matrix) AddDiagonal(alpha float64) error {
	if !m.IsSquare() {
		return fmt.Errorf("AddDiagonal: %dx%d: %w", m.rows, m.cols, ErrNotSquare)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return fmt.Errorf("AddDiagonal: alpha=%g: %w", alpha, ErrNaNInf)
	}
	if alpha == 0 {
		return nil
	}
	ts := m.storage.Triplets()
	for i := 0; i < m.rows; i++ {
		ts = append(ts, Triplet{Row: i, Col: i, Val: alpha})
	}
	st, err := buildStorage(m.storage.Format(), m.rows, m.cols, ts)
	if err != nil {
		return fmt.Errorf("AddDiagonal: %w", err)
	}
	m.storage = st

	return nil
}

// Transpose returns a new Matrix holding Aᵀ in the same format and
// configuration. O(nnz·log nnz); the receiver is not mutated.
func (m *Matrix) Transpose() (*Matrix, error) {
	ts := m.storage.Triplets()
	for k := range ts {
		ts[k].Row, ts[k].Col = ts[k].Col, ts[k].Row
	}

	return build(ts, m.cols, m.rows, m.cfg)
}

// Clone returns a deep, independent copy in the same format.
func (m *Matrix) Clone() *Matrix {
	c, err := build(m.storage.Triplets(), m.rows, m.cols, m.cfg)
	if err != nil {
		// Triplets from valid storage cannot fail validation.
		panic("sparse: Clone: " + err.Error())
	}

	return c
}

// MulVec computes dst = A·x, overwriting dst.
//
// Returns ErrDimensionMismatch unless len(x) == Cols() and
// len(dst) == Rows(). Dispatches to the data-parallel row-partitioned path
// when workers were configured and the matrix qualifies (see WithWorkers).
func (m *Matrix) MulVec(x, dst []float64) error {
	if len(x) != m.cols || len(dst) != m.rows {
		return fmt.Errorf("MulVec: x[%d], dst[%d] vs %dx%d: %w",
			len(x), len(dst), m.rows, m.cols, ErrDimensionMismatch)
	}
	if csr, ok := m.storage.(*CSR); ok && m.cfg.workers > 1 && m.rows >= m.cfg.parallelMinRows {
		m.mulVecParallel(csr, x, dst)

		return nil
	}
	m.storage.MulVec(x, dst)

	return nil
}

// MulVecAdd computes dst += A·x with the same validation as MulVec.
// Always serial: the accumulate path is only used inside solver steps that
// already own pooled buffers.
func (m *Matrix) MulVecAdd(x, dst []float64) error {
	if len(x) != m.cols || len(dst) != m.rows {
		return fmt.Errorf("MulVecAdd: x[%d], dst[%d] vs %dx%d: %w",
			len(x), len(dst), m.rows, m.cols, ErrDimensionMismatch)
	}
	m.storage.MulVecAdd(x, dst)

	return nil
}
