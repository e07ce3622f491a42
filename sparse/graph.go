// Package sparse: weighted directed adjacency storage.
//
// GraphStore views the matrix as a graph: entry a[i][j] is an edge i→j held
// in out[i], with a mirror record in in[j] for backward traversal — except
// self-loops (i == j), which live only in out[i]. degree[i] caches the sum
// of absolute outgoing weights, the quantity push-style algorithms divide by
// on every relaxation.
//
// Invariants (established by the builder):
//   - out[i] and in[j] are sorted ascending by Edge.To;
//   - every (i, j, w) with i != j appears exactly once in out[i] and once,
//     as {To: i, Weight: w}, in in[j];
//   - degree[i] == Σ |e.Weight| over out[i].

package sparse

import (
	"iter"
	"math"
	"sort"
)

// GraphStore is adjacency-list storage with explicit out/in edge separation,
// built for O(degree) neighbor iteration in forward-push and backward-walk
// algorithms.
type GraphStore struct {
	rows, cols int
	out        [][]Edge  // out[i]: edges i→j, sorted by To
	in         [][]Edge  // in[j]: mirrors {To: source row}, sorted by To; no self-loops
	degree     []float64 // degree[i] = Σ |w| over out[i]
}

// newGraphStore builds adjacency storage from normalized triplets.
func newGraphStore(rows, cols int, ts []Triplet) *GraphStore {
	g := &GraphStore{
		rows:   rows,
		cols:   cols,
		out:    make([][]Edge, rows),
		in:     make([][]Edge, cols),
		degree: make([]float64, rows),
	}
	for _, t := range ts {
		g.out[t.Row] = append(g.out[t.Row], Edge{To: t.Col, Weight: t.Val})
		g.degree[t.Row] += math.Abs(t.Val)
		if t.Row != t.Col {
			g.in[t.Col] = append(g.in[t.Col], Edge{To: t.Row, Weight: t.Val})
		}
	}
	for i := range g.out {
		sort.Slice(g.out[i], func(a, b int) bool { return g.out[i][a].To < g.out[i][b].To })
	}
	for j := range g.in {
		sort.Slice(g.in[j], func(a, b int) bool { return g.in[j][a].To < g.in[j][b].To })
	}

	return g
}

// Format reports FormatGraph.
func (g *GraphStore) Format() Format { return FormatGraph }

// NNZ returns the stored entry count (self-loops counted once).
func (g *GraphStore) NNZ() int {
	var n int
	for i := range g.out {
		n += len(g.out[i])
	}

	return n
}

// OutEdges returns node i's outgoing edges sorted by target. The slice is
// shared with the store and must not be mutated.
func (g *GraphStore) OutEdges(i int) []Edge {
	if i < 0 || i >= g.rows {
		return nil
	}

	return g.out[i]
}

// InEdges returns node j's incoming edges (self-loops excluded) sorted by
// source. The slice is shared with the store and must not be mutated.
func (g *GraphStore) InEdges(j int) []Edge {
	if j < 0 || j >= g.cols {
		return nil
	}

	return g.in[j]
}

// Degree returns the sum of absolute outgoing weights of node i.
func (g *GraphStore) Degree(i int) float64 {
	if i < 0 || i >= g.rows {
		return 0
	}

	return g.degree[i]
}

// At binary-searches out[i] for an edge to j. Complexity: O(log degree(i)).
func (g *GraphStore) At(i, j int) (float64, bool) {
	if i < 0 || i >= g.rows || j < 0 || j >= g.cols {
		return 0, false
	}
	es := g.out[i]
	k := sort.Search(len(es), func(k int) bool { return es[k].To >= j })
	if k < len(es) && es[k].To == j {
		return es[k].Weight, true
	}

	return 0, false
}

// Row yields row i's (col, value) pairs in ascending column order,
// O(degree(i)) per full iteration.
func (g *GraphStore) Row(i int) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		if i < 0 || i >= g.rows {
			return
		}
		for _, e := range g.out[i] {
			if !yield(e.To, e.Weight) {
				return
			}
		}
	}
}

// Col yields column j's (row, value) pairs in ascending row order. The
// in-list excludes self-loops, so a[j][j] (if present) is merged back in at
// its sorted position.
func (g *GraphStore) Col(j int) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		if j < 0 || j >= g.cols {
			return
		}
		selfW, hasSelf := 0.0, false
		if j < g.rows {
			selfW, hasSelf = g.At(j, j)
		}
		for _, e := range g.in[j] {
			if hasSelf && j < e.To {
				if !yield(j, selfW) {
					return
				}
				hasSelf = false
			}
			if !yield(e.To, e.Weight) {
				return
			}
		}
		if hasSelf {
			if !yield(j, selfW) {
				return
			}
		}
	}
}

// MulVec computes dst = A·x over the out-edge lists.
func (g *GraphStore) MulVec(x, dst []float64) {
	for i := 0; i < g.rows; i++ {
		var sum float64
		for _, e := range g.out[i] {
			sum += e.Weight * x[e.To]
		}
		dst[i] = sum
	}
}

// MulVecAdd computes dst += A·x.
func (g *GraphStore) MulVecAdd(x, dst []float64) {
	for i := 0; i < g.rows; i++ {
		var sum float64
		for _, e := range g.out[i] {
			sum += e.Weight * x[e.To]
		}
		dst[i] += sum
	}
}

// Triplets materializes the out-edge lists row-major.
func (g *GraphStore) Triplets() []Triplet {
	out := make([]Triplet, 0, g.NNZ())
	for i := range g.out {
		for _, e := range g.out[i] {
			out = append(out, Triplet{Row: i, Col: e.To, Val: e.Weight})
		}
	}

	return out
}
