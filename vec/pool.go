// Package vec: size-bucketed scratch-buffer pool.
//
// Iterative solvers need a handful of same-sized work vectors per step
// (residual, direction, matvec output). Allocating them per step defeats the
// allocation-free hot path, so solvers check buffers out of a BufferPool and
// return them when the step ends.
//
// Ownership contract (documented per the concurrency model):
//   - NewPool returns an EXCLUSIVE pool: exactly one solver instance may use
//     it, no locking is performed, and concurrent access is undefined.
//   - NewSharedPool returns a mutex-guarded pool safe to share across solver
//     instances.
//   - A buffer obtained via Get is exclusively owned by the caller until
//     passed back to Put; the pool owns only the buffers it currently holds.
//
// Get always returns a zeroed buffer of exactly the requested length, so a
// recycled buffer can never leak a previous solve's data.

package vec

import (
	"math/bits"
	"sync"

	"golang.org/x/exp/constraints"
)

// maxPoolBucket bounds the bucket index (2^maxPoolBucket elements); larger
// requests are allocated directly and never retained.
const maxPoolBucket = 26

// maxFreePerBucket caps retained buffers per bucket so a burst of large
// solves cannot pin memory forever.
const maxFreePerBucket = 8

// BufferPool hands out reusable []float64 scratch buffers grouped into
// power-of-two capacity buckets. The zero value is NOT usable; construct
// with NewPool or NewSharedPool.
type BufferPool struct {
	free [maxPoolBucket + 1][][]float64 // per-bucket free lists
	mu   *sync.Mutex                    // nil ⇒ exclusive mode, no locking

	// counters for Stats; maintained under mu when shared
	gets   uint64
	reuses uint64
}

// PoolStats is a read-only snapshot of pool activity.
type PoolStats struct {
	Gets   uint64 // total Get calls
	Reuses uint64 // Get calls satisfied from a free list
}

// NewPool constructs an exclusive (unsynchronized) pool. The caller promises
// single-goroutine access; this is the default for one solver instance.
func NewPool() *BufferPool {
	return &BufferPool{}
}

// NewSharedPool constructs a pool safe for concurrent use by multiple solver
// instances; every Get/Put takes an internal mutex.
func NewSharedPool() *BufferPool {
	return &BufferPool{mu: &sync.Mutex{}}
}

// Get returns a zeroed buffer of length n, reusing a bucketed free buffer
// when one is available. n == 0 returns an empty non-nil slice.
//
// The returned buffer is exclusively the caller's until Put.
func (p *BufferPool) Get(n int) []float64 {
	if n < 0 {
		panic("vec: BufferPool.Get: negative length")
	}
	if p.mu != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
	}
	p.gets++
	b := bucketFor(n)
	if b <= maxPoolBucket {
		if list := p.free[b]; len(list) > 0 {
			buf := list[len(list)-1]
			p.free[b] = list[:len(list)-1]
			p.reuses++
			buf = buf[:n]
			Fill(buf, 0) // never expose stale data
			return buf
		}
	}

	return make([]float64, n, nextPow2(n))
}

// Put returns buf to the pool. Nil or oversized buffers are dropped; the
// caller must not use buf afterwards.
//
// Foreign buffers (not obtained from Get) are accepted: bucketing keys on
// the largest power of two that fits in cap(buf), so a bucket never holds a
// buffer with less capacity than the bucket promises.
func (p *BufferPool) Put(buf []float64) {
	if buf == nil || cap(buf) == 0 {
		return
	}
	if p.mu != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
	}
	b := bits.Len(uint(cap(buf))) - 1 // floor bucket: cap(buf) >= 1<<b
	if b > maxPoolBucket || len(p.free[b]) >= maxFreePerBucket {
		return // let GC take it
	}
	p.free[b] = append(p.free[b], buf[:cap(buf)])
}

// Stats returns a snapshot of pool counters.
func (p *BufferPool) Stats() PoolStats {
	if p.mu != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
	}

	return PoolStats{Gets: p.gets, Reuses: p.reuses}
}

// bucketFor maps a length to its power-of-two bucket index:
// bucketFor(0)=0, bucketFor(1)=0, bucketFor(9)=4 (16-capacity bucket).
func bucketFor(n int) int {
	if n <= 1 {
		return 0
	}

	return bits.Len(uint(n - 1))
}

// nextPow2 rounds n up to the next power of two so recycled capacities land
// exactly on bucket boundaries. Generic over integer types because both int
// lengths and uint64 counters use it.
func nextPow2[T constraints.Integer](n T) T {
	if n <= 1 {
		return 1
	}

	return T(1) << bits.Len(uint(n-1))
}
