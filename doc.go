// Package linsolve is an iterative engine for sparse, asymmetric,
// diagonally dominant linear systems — storage formats, numeric kernels
// and solvers under one roof.
//
// 🚀 What is linsolve?
//
//	A modern, thread-safe library that brings together:
//		• Sparse storage: CSR, CSC, COO and an adjacency-list graph view
//		• Lossless conversions between all formats via a triplet interchange
//		• Dominance diagnostics: Gershgorin bounds, dominance factors, sparsity
//		• Numeric kernels: unrolled dot/axpy/norms + a recycling buffer pool
//		• Neumann-series solver with truncation-tail error bounds
//		• Three-phase hybrid: forward push → random walks → CG polish
//		• A uniform error taxonomy with severity and recovery hints
//
// ✨ Why choose linsolve?
//
//   - Beginner-friendly – one Solve call, sensible defaults, clear naming
//   - Rock-solid guarantees – immutable matrices during solves, typed errors
//   - Deterministic – seeded randomness, reproducible runs
//   - Tunable – functional options for tolerance, norms, phases and pooling
//
// Under the hood, everything is organized under three subpackages:
//
//	sparse/ — matrix formats, conversions, diagnostics & parallel matvec
//	vec/    — dense vector kernels, norms & the buffer pool
//	solver/ — algorithms, the iteration driver & the Solve surface
//
// Quick example:
//
//	m, _ := sparse.FromDense([]float64{4, 1, 1, 3}, 2, 2)
//	res, _ := solver.Solve(m, []float64{5, 4})
//	// res.Solution ≈ [1, 1]
//
// Dive into the examples/ directory for end-to-end scenarios, from format
// tours to hybrid solves on non-dominant systems.
//
//	go get github.com/katalvlaran/linsolve
package linsolve
