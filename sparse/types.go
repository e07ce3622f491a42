// Package sparse: domain types shared by all storage formats.
// This file contains ONLY the closed Format set, the Triplet interchange
// record, and the Storage capability contract. Errors live in errors.go,
// facade options in options.go, per the package conventions.

package sparse

import "iter"

// Format tags the active storage representation of a Matrix. The set is
// closed and performance-sensitive: code switches over it exhaustively
// rather than using open-ended dynamic dispatch.
type Format int

const (
	// FormatCSR is compressed sparse row storage (default for row-oriented
	// multiply-heavy workloads).
	FormatCSR Format = iota

	// FormatCSC is compressed sparse column storage.
	FormatCSC

	// FormatCOO is coordinate (triplet) storage, the interchange form.
	FormatCOO

	// FormatGraph is weighted directed adjacency storage with separate
	// out-edge and in-edge lists per node.
	FormatGraph
)

// String returns the canonical short name of the format.
func (f Format) String() string {
	switch f {
	case FormatCSR:
		return "CSR"
	case FormatCSC:
		return "CSC"
	case FormatCOO:
		return "COO"
	case FormatGraph:
		return "Graph"
	default:
		return "Unknown"
	}
}

// valid reports whether f is one of the four known formats.
func (f Format) valid() bool {
	return f >= FormatCSR && f <= FormatGraph
}

// Triplet is one (row, col, value) entry of the interchange representation.
// Stored values are never exactly zero; construction filters zeros.
type Triplet struct {
	Row int
	Col int
	Val float64
}

// Edge is one weighted directed edge of GraphStore adjacency: the matrix
// entry a[from][To] = Weight, viewed from node `from`'s out-edge list.
type Edge struct {
	To     int
	Weight float64
}

// Storage is the capability contract every format implements. Implementations
// assume indices passed to At/Row/Col are already validated by the Matrix
// facade; out-of-range indices yield empty iterations and absent lookups.
//
// Row and Col return lazy, finite, restartable sequences (range-over-func):
// ranging twice replays the same entries. CSR iterates rows in O(row nnz)
// and columns in O(rows·log(row nnz)); CSC mirrors that; COO pays O(nnz)
// for either; GraphStore pays O(degree).
type Storage interface {
	// Format reports which representation this storage is.
	Format() Format

	// At returns the entry at (i, j) and whether it is present.
	At(i, j int) (float64, bool)

	// Row yields (col, value) pairs of row i in ascending column order
	// (COO yields insertion order).
	Row(i int) iter.Seq2[int, float64]

	// Col yields (row, value) pairs of column j in ascending row order
	// (COO yields insertion order).
	Col(j int) iter.Seq2[int, float64]

	// MulVec computes dst = A·x, overwriting dst. Lengths are the caller's
	// contract: len(x) == cols, len(dst) == rows.
	MulVec(x, dst []float64)

	// MulVecAdd computes dst += A·x.
	MulVecAdd(x, dst []float64)

	// NNZ returns the number of stored (nonzero) entries.
	NNZ() int

	// Triplets materializes the storage as the interchange form. Rebuilding
	// any format from the result is lossless up to entry ordering.
	Triplets() []Triplet
}
