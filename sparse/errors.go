// Package sparse: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the
// sparse package. All operations return these sentinels and tests check them
// via errors.Is. No operation panics on user-triggered error conditions;
// panics are reserved for programmer errors in private helpers.

package sparse

import "errors"

var (
	// ErrBadShape is returned when a requested shape is invalid
	// (rows <= 0, cols <= 0, or a dense payload whose length != rows*cols).
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrIndexOutOfBounds indicates a triplet or lookup index outside
	// [0, rows) x [0, cols).
	ErrIndexOutOfBounds = errors.New("sparse: index out of bounds")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required;
	// construction rejects such entries before any storage is built.
	ErrNaNInf = errors.New("sparse: NaN or Inf encountered")

	// ErrDimensionMismatch indicates incompatible operand dimensions,
	// e.g. a multiply vector whose length differs from Cols().
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrNotSquare signals that a square matrix was required but the input
	// wasn't (diagnostics and diagonal mutation are square-only).
	ErrNotSquare = errors.New("sparse: matrix is not square")

	// ErrNilMatrix indicates a nil *Matrix receiver or argument.
	ErrNilMatrix = errors.New("sparse: nil matrix")

	// ErrUnknownFormat is returned when a Format value outside the closed
	// CSR/CSC/COO/Graph set reaches a conversion or constructor.
	ErrUnknownFormat = errors.New("sparse: unknown storage format")
)
