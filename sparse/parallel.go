// Package sparse: data-parallel matrix-vector multiply.
//
// Rows are partitioned into contiguous chunks, one goroutine per chunk.
// The matrix is only read and each worker writes a disjoint dst slice, so
// the sync.WaitGroup join is the only synchronization.

package sparse

import "sync"

// mulVecParallel fans row ranges out across cfg.workers goroutines.
// Preconditions (checked by MulVec): CSR storage, workers > 1,
// rows >= parallelMinRows.
func (m *Matrix) mulVecParallel(c *CSR, x, dst []float64) {
	workers := m.cfg.workers
	if workers > m.rows {
		workers = m.rows
	}
	chunk := (m.rows + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := 0; lo < m.rows; lo += chunk {
		hi := lo + chunk
		if hi > m.rows {
			hi = m.rows
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			c.mulVecRange(x, dst, lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
