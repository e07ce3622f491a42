// Package vec: scalar and unrolled dense kernels.
// This file defines ONLY the hot-loop primitives (dot, axpy, scale,
// elementwise add/sub/copy). Norms live in norms.go, the pool in pool.go.
//
// Design notes:
//   - Each kernel has a scalar path and a 4-way unrolled path; the unrolled
//     path keeps four independent accumulators so the CPU can overlap the
//     multiply-add chains, and folds them in a fixed order for determinism.
//   - unrollThreshold is the crossover below which the scalar path wins
//     (loop overhead exceeds the benefit on short vectors).
//   - Length mismatches panic: callers are package-internal hot paths that
//     have already validated dimensions at the public facade.

package vec

// unrollThreshold is the vector length below which the scalar kernel paths
// are used; above it the 4-way unrolled paths take over.
const unrollThreshold = 32

// unrollStride is the number of lanes processed per unrolled iteration.
const unrollStride = 4

// panicLenMismatch is the shared panic message for kernel length violations.
const panicLenMismatch = "vec: kernel operand lengths differ"

// Dot returns the inner product Σ a[i]*b[i].
//
// Panics if len(a) != len(b). Complexity: O(n), no allocation.
func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		panic(panicLenMismatch)
	}
	if len(a) < unrollThreshold {
		return dotScalar(a, b)
	}

	return dotUnrolled(a, b)
}

// dotScalar is the short-vector path: one accumulator, trivially correct.
func dotScalar(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}

	return sum
}

// dotUnrolled walks four lanes per iteration with independent accumulators,
// then folds (s0+s2)+(s1+s3) in a fixed order and drains the tail serially.
func dotUnrolled(a, b []float64) float64 {
	var s0, s1, s2, s3 float64
	n := len(a)
	i := 0
	for ; i+unrollStride <= n; i += unrollStride {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
	}
	sum := (s0 + s2) + (s1 + s3)
	for ; i < n; i++ {
		sum += a[i] * b[i]
	}

	return sum
}

// Axpy performs y[i] += alpha*x[i] for all i (the BLAS "axpy" update).
//
// Panics if len(x) != len(y). Complexity: O(n), no allocation.
func Axpy(alpha float64, x, y []float64) {
	if len(x) != len(y) {
		panic(panicLenMismatch)
	}
	if alpha == 0 {
		return // no-op; preserves y bit-for-bit
	}
	n := len(x)
	if n < unrollThreshold {
		for i := 0; i < n; i++ {
			y[i] += alpha * x[i]
		}

		return
	}
	i := 0
	for ; i+unrollStride <= n; i += unrollStride {
		y[i] += alpha * x[i]
		y[i+1] += alpha * x[i+1]
		y[i+2] += alpha * x[i+2]
		y[i+3] += alpha * x[i+3]
	}
	for ; i < n; i++ {
		y[i] += alpha * x[i]
	}
}

// Scale multiplies every element of x by alpha in place.
func Scale(alpha float64, x []float64) {
	for i := range x {
		x[i] *= alpha
	}
}

// AddTo stores a[i] + b[i] into dst[i].
//
// dst may alias a or b. Panics on any length mismatch.
func AddTo(dst, a, b []float64) {
	if len(a) != len(b) || len(dst) != len(a) {
		panic(panicLenMismatch)
	}
	for i := range a {
		dst[i] = a[i] + b[i]
	}
}

// SubTo stores a[i] - b[i] into dst[i].
//
// dst may alias a or b. Panics on any length mismatch.
func SubTo(dst, a, b []float64) {
	if len(a) != len(b) || len(dst) != len(a) {
		panic(panicLenMismatch)
	}
	for i := range a {
		dst[i] = a[i] - b[i]
	}
}

// MulElemTo stores a[i] * b[i] into dst[i] (Hadamard product).
//
// Used by the solvers for diagonal preconditioning (D⁻¹·v as a vector).
func MulElemTo(dst, a, b []float64) {
	if len(a) != len(b) || len(dst) != len(a) {
		panic(panicLenMismatch)
	}
	for i := range a {
		dst[i] = a[i] * b[i]
	}
}

// Fill sets every element of x to v.
func Fill(x []float64, v float64) {
	for i := range x {
		x[i] = v
	}
}

// Clone returns a fresh copy of x.
func Clone(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)

	return out
}
