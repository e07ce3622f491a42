// Package solver: the randomized-walk refinement phase.
//
// The walk phase estimates the Neumann solution x = Σ M^k·c (M = I - D⁻¹A,
// c = D⁻¹b) with a von Neumann–Ulam scheme: a walk started at coordinate i
// accumulates w·c[cur] along its path, stepping from node u to neighbor j
// with probability |M_uj| / S_u and re-weighting w by S_u·sign(M_uj), where
// S_u = Σ_j |M_uj|. Under diagonal dominance S_u ≤ 1 and truncated walks
// give a low-bias estimator whose variance shrinks with the sample count.
//
// The estimate covers error modes the local push under-samples (long-range
// dependencies), at the price of noise — which is why the hybrid blends it
// in with a decaying factor instead of adopting it outright.

package solver

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/katalvlaran/linsolve/sparse"
)

// Walk-length derivation bounds: enough steps that q^len is negligible,
// few enough to keep one refinement iteration cheap.
const (
	minWalkLength = 4
	maxWalkLength = 64
)

// walkState holds the per-node transition tables of the estimator.
type walkState struct {
	o   *Options
	rng *rand.Rand

	c       []float64        // D⁻¹b (zero where diagonal is absent)
	nbrs    [][]sparse.Edge  // off-diagonal out-edges per node
	cumAbs  [][]float64      // prefix sums of |weight| per node
	rowMass []float64        // S_u = Σ_{j≠u} |a_uj| / |a_uu|
	invD    []float64        // 1/a_uu, 0 where absent
	length  int              // truncation depth
}

// newWalkState precomputes transition tables in O(nnz).
func newWalkState(g *sparse.GraphStore, o *Options, b []float64) *walkState {
	n := len(b)
	w := &walkState{
		o:       o,
		rng:     rand.New(rand.NewSource(o.Seed)),
		c:       make([]float64, n),
		nbrs:    make([][]sparse.Edge, n),
		cumAbs:  make([][]float64, n),
		rowMass: make([]float64, n),
		invD:    make([]float64, n),
	}
	maxMass := 0.0
	for u := 0; u < n; u++ {
		d, ok := g.At(u, u)
		if !ok || math.Abs(d) <= minDiagonal {
			continue // unreachable by the estimator; other phases cover it
		}
		w.invD[u] = 1 / d
		w.c[u] = b[u] / d

		var cum float64
		for _, e := range g.OutEdges(u) {
			if e.To == u {
				continue // the diagonal has no weight in M
			}
			cum += math.Abs(e.Weight)
			w.nbrs[u] = append(w.nbrs[u], e)
			w.cumAbs[u] = append(w.cumAbs[u], cum)
		}
		w.rowMass[u] = cum / math.Abs(d)
		if w.rowMass[u] > maxMass {
			maxMass = w.rowMass[u]
		}
	}
	w.length = walkLengthFor(maxMass, o.Tolerance)

	return w
}

// walkLengthFor picks the truncation depth so q^len ≲ tol, clamped to
// [minWalkLength, maxWalkLength]. Non-contracting systems get the cap.
func walkLengthFor(q, tol float64) int {
	if q <= 0 {
		return minWalkLength
	}
	if q >= 1 {
		return maxWalkLength
	}
	est := int(math.Ceil(math.Log(tol) / math.Log(q)))
	if est < minWalkLength {
		return minWalkLength
	}
	if est > maxWalkLength {
		return maxWalkLength
	}

	return est
}

// estimate writes a fresh stochastic solution estimate into dst, averaging
// o.WalkSamples truncated walks per coordinate.
func (w *walkState) estimate(dst []float64) {
	for i := range dst {
		if w.invD[i] == 0 {
			dst[i] = 0
			continue
		}
		var sum float64
		for s := 0; s < w.o.WalkSamples; s++ {
			sum += w.sample(i)
		}
		dst[i] = sum / float64(w.o.WalkSamples)
	}
}

// sample runs one truncated walk from start and returns its accumulated
// value Σ_k w_k·c[v_k].
func (w *walkState) sample(start int) float64 {
	val, weight := 0.0, 1.0
	cur := start
	for depth := 0; depth < w.length; depth++ {
		val += weight * w.c[cur]
		edges := w.nbrs[cur]
		if len(edges) == 0 || w.invD[cur] == 0 {
			break // absorbing node: nothing to propagate
		}
		// Pick neighbor j with probability |a_cur,j| / Σ|a_cur,·|.
		cum := w.cumAbs[cur]
		total := cum[len(cum)-1]
		t := w.rng.Float64() * total
		k := sort.SearchFloat64s(cum, t)
		if k == len(cum) {
			k = len(cum) - 1 // t == total edge case
		}
		e := edges[k]

		// M_cur,j = -a_cur,j / a_cur,cur; importance weight S_cur·sign(M).
		mij := -e.Weight * w.invD[cur]
		if mij == 0 {
			break
		}
		weight *= w.rowMass[cur] * sign(mij)
		cur = e.To
	}

	return val
}

// sign returns ±1; callers never pass zero.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}

	return 1
}
