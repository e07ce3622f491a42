// Package vec provides the dense numeric kernels used by the sparse
// storage formats and the iterative solvers: dot products, AXPY updates,
// scaling, elementwise combination, vector norms, and a size-bucketed
// BufferPool for allocation-free iteration loops.
//
// The vec package provides:
//
//   - Dot / Axpy / Scale / AddTo / SubTo: the hot-loop kernels, each with a
//     plain scalar path for short vectors and a 4-accumulator unrolled path
//     for long ones (vectorization-friendly: no branches inside the loop,
//     sequential access, independent accumulators).
//   - Norm / WeightedNorm over the NormType set (L1, L2, LInfinity, Weighted).
//   - BufferPool: power-of-two bucketed free lists of []float64 scratch
//     buffers. A pool is either owned exclusively by one solver instance
//     (NewPool, no locking) or shared behind a mutex (NewSharedPool);
//     unsynchronized concurrent use of an exclusive pool is undefined.
//
// Kernels treat mismatched lengths as programmer error and panic; the
// exported solver surfaces validate dimensions before reaching the kernels.
//
// All kernels are deterministic: fixed iteration order, fixed reduction
// tree (four accumulators folded in a constant order).
package vec
