// Package sparse: functional configuration for the Matrix facade.
// This file defines the Option type, documented default constants, and the
// With* constructors with strong validation (panic on nonsensical values —
// programmer error, matching the package convention that user/data errors
// return sentinels while misuse of the API itself panics).

package sparse

import "runtime"

// Defaults — single source of truth for zero-value behavior.
const (
	// DefaultFormat is the storage representation chosen when the caller
	// does not request one: CSR, the best general default for the
	// row-oriented multiply loops the solvers run.
	DefaultFormat = FormatCSR

	// DefaultWorkers disables data-parallel multiply: one worker, serial path.
	DefaultWorkers = 1

	// DefaultParallelMinRows is the row count below which the parallel
	// multiply path is skipped even when workers > 1: goroutine fan-out
	// costs more than it saves on small systems.
	DefaultParallelMinRows = 2048
)

// Internal panic messages (no magic strings).
const (
	panicBadFormat  = "sparse: WithFormat: unknown format"
	panicBadWorkers = "sparse: WithWorkers: n must be >= 1"
	panicBadMinRows = "sparse: WithParallelMinRows: n must be >= 1"
)

// Option mutates facade configuration at construction time. Options are
// applied in order and are idempotent.
type Option func(*config)

// config is the gathered, validated option state a Matrix carries.
type config struct {
	format          Format
	workers         int
	parallelMinRows int
}

// gatherOptions applies opts over the documented defaults.
func gatherOptions(opts []Option) config {
	cfg := config{
		format:          DefaultFormat,
		workers:         DefaultWorkers,
		parallelMinRows: DefaultParallelMinRows,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithFormat selects the initial storage representation.
// Panics if f is not one of the four known formats.
func WithFormat(f Format) Option {
	if !f.valid() {
		panic(panicBadFormat)
	}

	return func(c *config) { c.format = f }
}

// WithWorkers enables data-parallel row-partitioned multiply with n workers.
// n == 1 keeps the serial path. Panics if n < 1.
//
// The parallel path is read-only over the matrix and writes only disjoint
// output slices; it engages for CSR storage with at least
// DefaultParallelMinRows rows (tunable via WithParallelMinRows).
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicBadWorkers)
	}

	return func(c *config) { c.workers = n }
}

// WithMaxWorkers is shorthand for WithWorkers(runtime.NumCPU()).
func WithMaxWorkers() Option {
	return WithWorkers(runtime.NumCPU())
}

// WithParallelMinRows overrides the minimum row count for the parallel
// multiply path. Panics if n < 1.
func WithParallelMinRows(n int) Option {
	if n < 1 {
		panic(panicBadMinRows)
	}

	return func(c *config) { c.parallelMinRows = n }
}
