// Package solver implements the iterative solving engine for sparse,
// asymmetric, diagonally dominant linear systems Ax = b built on the sparse
// storage formats and the vec kernels.
//
// The solver package provides:
//
//   - A shared Algorithm contract (Init / Step / Solution / Residual) and an
//     iterate-until-converged driver parameterized by tolerance, iteration
//     cap, convergence mode and norm type. All algorithms plug into the same
//     driver, so failure classification (instability, budget exhaustion) is
//     uniform.
//   - Neumann: the geometric-series expansion of (I − M)⁻¹ with
//     M = I − D⁻¹A, valid exactly when the matrix is diagonally dominant
//     with a non-negligible diagonal. One matvec per term, geometric
//     convergence, and a term-decay tail bound when error bounds are
//     requested.
//   - Hybrid: a three-phase state machine — forward local push over the
//     graph representation, randomized-walk refinement with a linearly
//     decaying blend, and a conjugate-gradient polish — tracking the best
//     residual seen across all phases; a phase that regresses cannot worsen
//     the returned solution.
//   - ConjugateGradient standalone, for callers that already hold a good
//     initial guess.
//   - A unified error taxonomy: every failure is a *Error with a Kind,
//     ranked Severity and a suggested RecoveryStrategy, unwrapping to
//     package sentinels for errors.Is. All variants are always present;
//     impossible-in-this-build cases are simply never constructed.
//
// Entry point: Solve(m, b, opts...) picks the algorithm (Auto selects
// Neumann for dominant systems, Hybrid otherwise) and runs the driver.
// A Result with Converged == false and a nil error is a soft outcome (time
// limit); a *Error of kind ConvergenceFailure still carries the best
// partial Result. Hard input errors return a nil Result.
//
// The package performs no I/O and no logging; Severity exists so callers
// can drive their own alerting policy.
//
// Concurrency: one solver run is single-goroutine. Distinct runs against
// the same immutable Matrix are safe concurrently as long as each run owns
// its Options (and pool, unless NewSharedPool was chosen).
package solver
