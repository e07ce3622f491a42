package vec_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linsolve/vec"
)

func TestPool_GetReturnsExactLength(t *testing.T) {
	p := vec.NewPool()
	for _, n := range []int{0, 1, 5, 16, 17, 1000} {
		buf := p.Get(n)
		require.Len(t, buf, n)
	}
}

func TestPool_RecycledBufferIsZeroed(t *testing.T) {
	p := vec.NewPool()

	buf := p.Get(10)
	for i := range buf {
		buf[i] = 42 // dirty it
	}
	p.Put(buf)

	// Same bucket (capacity 16): 10 and 12 both round up to it.
	again := p.Get(12)
	require.Len(t, again, 12)
	for i, v := range again {
		require.Zero(t, v, "stale data at index %d", i)
	}
}

func TestPool_ReusesBuckets(t *testing.T) {
	p := vec.NewPool()
	buf := p.Get(100)
	p.Put(buf)
	_ = p.Get(100)

	st := p.Stats()
	require.Equal(t, uint64(2), st.Gets)
	require.Equal(t, uint64(1), st.Reuses)
}

func TestPool_ForeignBufferNeverOverPromises(t *testing.T) {
	p := vec.NewPool()

	// A caller-allocated buffer with a non-power-of-two capacity lands in
	// the bucket promising at most 8 elements, never the 16 bucket.
	p.Put(make([]float64, 10))

	// A larger request must allocate fresh instead of reslicing past cap.
	buf := p.Get(12)
	require.Len(t, buf, 12)
	require.Zero(t, p.Stats().Reuses)

	// A request that fits the foreign capacity may recycle it.
	buf = p.Get(8)
	require.Len(t, buf, 8)
	require.Equal(t, uint64(1), p.Stats().Reuses)
	for i, v := range buf {
		require.Zero(t, v, "stale data at index %d", i)
	}
}

func TestPool_NegativeLengthPanics(t *testing.T) {
	require.Panics(t, func() { vec.NewPool().Get(-1) })
}

func TestPool_PutNilIsIgnored(t *testing.T) {
	p := vec.NewPool()
	p.Put(nil)
	p.Put([]float64{})
	require.Zero(t, p.Stats().Reuses)
}

func TestSharedPool_ConcurrentAccess(t *testing.T) {
	p := vec.NewSharedPool()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				buf := p.Get(64)
				buf[0] = 1
				p.Put(buf)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, uint64(8*200), p.Stats().Gets)
}
