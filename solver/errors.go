// Package solver: unified error taxonomy.
//
// Every failure surfaces as a *Error carrying a Kind from one closed enum —
// no conditionally compiled variants, no parallel hierarchies. Each Kind
// maps to a package sentinel (for errors.Is), a Severity rank (for the
// caller's logging/alerting policy) and a suggested RecoveryStrategy that
// calling code may apply automatically or surface to an operator.

package solver

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per Kind. Tests and callers match via errors.Is.
var (
	// ErrNotDiagonallyDominant: structural precondition violated; fundamental,
	// not recoverable by retrying the same algorithm.
	ErrNotDiagonallyDominant = errors.New("solver: matrix is not diagonally dominant")

	// ErrNumericalInstability: a non-finite value appeared mid-iteration.
	ErrNumericalInstability = errors.New("solver: numerical instability")

	// ErrConvergenceFailure: the iteration budget ran out above tolerance.
	ErrConvergenceFailure = errors.New("solver: convergence failure")

	// ErrInvalidInput: options or right-hand side malformed.
	ErrInvalidInput = errors.New("solver: invalid input")

	// ErrDimensionMismatch: operand dimensions incompatible.
	ErrDimensionMismatch = errors.New("solver: dimension mismatch")

	// ErrIndexOutOfBounds: an index outside the matrix dimensions.
	ErrIndexOutOfBounds = errors.New("solver: index out of bounds")

	// ErrInvalidSparseMatrix: the matrix violates an algorithm's structural
	// requirement (e.g. missing or negligible diagonal).
	ErrInvalidSparseMatrix = errors.New("solver: invalid sparse matrix")

	// ErrUnsupportedFormat: the operation needs a different storage format.
	ErrUnsupportedFormat = errors.New("solver: unsupported matrix format")

	// ErrAllocation: a buffer could not be obtained.
	ErrAllocation = errors.New("solver: memory allocation failed")

	// ErrAlgorithm: algorithm-specific failure with context attached.
	ErrAlgorithm = errors.New("solver: algorithm error")
)

// Kind identifies the failure class. The set is closed; variants that a
// given build cannot produce still exist and simply are never constructed.
type Kind int

const (
	KindInvalidInput Kind = iota
	KindDimensionMismatch
	KindIndexOutOfBounds
	KindInvalidSparseMatrix
	KindNotDiagonallyDominant
	KindNumericalInstability
	KindConvergenceFailure
	KindUnsupportedFormat
	KindAllocation
	KindAlgorithm
)

// Severity ranks failures for the caller's logging and alerting policy; the
// solver itself never performs I/O.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// RecoveryStrategy is the suggested automatic remediation for a recoverable
// failure; RecoverNone marks failures that must be fixed upstream.
type RecoveryStrategy int

const (
	RecoverNone RecoveryStrategy = iota
	RecoverSwitchAlgorithm
	RecoverIncreasePrecision
	RecoverRelaxTolerance
	RecoverConvertFormat
	RecoverIncreaseIterations
)

// Error is the uniform failure value every algorithm returns. It unwraps to
// the sentinel for its Kind, so errors.Is(err, ErrConvergenceFailure) works
// through any wrapping.
type Error struct {
	Kind      Kind
	Op        string  // algorithm or operation that failed
	Detail    string  // human-readable context
	Residual  float64 // final residual (convergence/instability kinds)
	Tolerance float64 // requested tolerance (convergence kinds)
}

// newError constructs a *Error with formatted detail.
func newError(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Detail: fmt.Sprintf(format, args...)}
}

// Error formats as "op: sentinel message (detail)".
func (e *Error) Error() string {
	base := fmt.Sprintf("%s: %v", e.Op, e.sentinel())
	if e.Detail != "" {
		base += " (" + e.Detail + ")"
	}

	return base
}

// Unwrap exposes the sentinel for errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.sentinel() }

// sentinel maps Kind to its package sentinel.
func (e *Error) sentinel() error {
	switch e.Kind {
	case KindNotDiagonallyDominant:
		return ErrNotDiagonallyDominant
	case KindNumericalInstability:
		return ErrNumericalInstability
	case KindConvergenceFailure:
		return ErrConvergenceFailure
	case KindDimensionMismatch:
		return ErrDimensionMismatch
	case KindIndexOutOfBounds:
		return ErrIndexOutOfBounds
	case KindInvalidSparseMatrix:
		return ErrInvalidSparseMatrix
	case KindUnsupportedFormat:
		return ErrUnsupportedFormat
	case KindAllocation:
		return ErrAllocation
	case KindAlgorithm:
		return ErrAlgorithm
	case KindInvalidInput:
		fallthrough
	default:
		return ErrInvalidInput
	}
}

// Severity ranks the failure:
// caller/data errors are Low, budget exhaustion Medium, instability High,
// allocation Critical.
func (e *Error) Severity() Severity {
	switch e.Kind {
	case KindAllocation:
		return SeverityCritical
	case KindNumericalInstability, KindNotDiagonallyDominant:
		return SeverityHigh
	case KindConvergenceFailure, KindAlgorithm:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Recoverable reports whether a suggested RecoveryStrategy exists.
func (e *Error) Recoverable() bool { return e.Recovery() != RecoverNone }

// Recovery returns the suggested remediation for this failure class:
//
//	NumericalInstability → increase precision / restart (IncreasePrecision)
//	ConvergenceFailure   → switch algorithm or raise the budget
//	UnsupportedFormat    → convert the storage format
//	everything else      → not recoverable, fix upstream
func (e *Error) Recovery() RecoveryStrategy {
	switch e.Kind {
	case KindNumericalInstability:
		return RecoverIncreasePrecision
	case KindConvergenceFailure:
		return RecoverSwitchAlgorithm
	case KindUnsupportedFormat:
		return RecoverConvertFormat
	case KindAlgorithm:
		return RecoverIncreaseIterations
	default:
		return RecoverNone
	}
}
