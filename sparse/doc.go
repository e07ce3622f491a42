// Package sparse implements the sparse-matrix storage engine behind the
// linsolve solvers: four interchangeable storage formats, a single Matrix
// facade that owns exactly one of them at a time, lossless conversions, and
// structural diagnostics.
//
// The sparse package provides:
//
//   - CSR (compressed sparse row): O(nnz) row-major multiply, sorted column
//     indices per row enabling binary-search point lookup; slow column scans.
//   - CSC (compressed sparse column): the column-major mirror of CSR.
//   - COO (coordinate/triplet): cheap bulk construction, O(nnz) multiply,
//     O(nnz) point lookup; the interchange format all conversions pass
//     through.
//   - GraphStore (weighted directed adjacency): O(degree) neighbor iteration
//     with explicit out/in edge lists and per-node degree sums, feeding
//     push-style local algorithms.
//   - Matrix: the facade tagged with its active Format, constructed from
//     triplets, dense data, identity or diagonal; ConvertTo swaps the
//     representation atomically and is a no-op when already there.
//   - Diagnostics: diagonal dominance tests, the Gershgorin spectral-radius
//     bound, sparsity statistics and the DominanceParams snapshot that the
//     solvers use to gate eligibility and size iteration budgets.
//
// Construction filters exact zeros and rejects out-of-range indices and
// non-finite values, so every stored entry is finite and nonzero and every
// format conversion round-trips losslessly through triplets.
//
// A Matrix is safe for concurrent reads (multiply, iterate, diagnostics)
// but not for concurrent mutation; Scale, AddDiagonal and ConvertTo require
// exclusive access.
package sparse
