// Package solver: the forward local-push phase.
//
// Forward push maintains x and the exact residual r = b - Ax and repeatedly
// relaxes the row with significant residual mass: setting
// x[u] += r[u]/a_uu zeroes r[u] and perturbs r[i] by -a_iu·r[u]/a_uu for
// every in-neighbor i of u. Only rows whose residual magnitude exceeds the
// push threshold stay on the worklist, so the work done is proportional to
// the number of active pushes rather than the full dimension — the local,
// "sublinear" behavior that makes push a cheap initial estimate for
// sparse right-hand sides.

package solver

import (
	"math"

	"github.com/katalvlaran/linsolve/sparse"
)

// pushState is the forward-push worklist over the graph representation.
// It mutates x and r owned by the hybrid in place.
type pushState struct {
	g    *sparse.GraphStore
	o    *Options
	diag []float64 // a_uu per row; 0 marks an unpushable row

	x, r []float64 // shared with the hybrid: estimate and exact residual

	queue  []int  // rows awaiting a push
	queued []bool // membership flags, one per row
	pushes int    // total pushes performed (diagnostics)
}

// newPushState seeds the worklist with every row whose residual mass is
// already significant. Rows with an absent or negligible diagonal are
// marked unpushable and left for the later phases.
func newPushState(g *sparse.GraphStore, o *Options, x, r []float64) *pushState {
	n := len(r)
	p := &pushState{
		g: g, o: o,
		diag:   make([]float64, n),
		x:      x,
		r:      r,
		queued: make([]bool, n),
	}
	for u := 0; u < n; u++ {
		if d, ok := g.At(u, u); ok && math.Abs(d) > minDiagonal {
			p.diag[u] = d
		}
		if p.diag[u] != 0 && math.Abs(r[u]) > o.PushThreshold {
			p.enqueue(u)
		}
	}

	return p
}

// enqueue adds u to the worklist once.
func (p *pushState) enqueue(u int) {
	if !p.queued[u] {
		p.queued[u] = true
		p.queue = append(p.queue, u)
	}
}

// exhausted reports whether no pushable residual mass remains.
func (p *pushState) exhausted() bool { return len(p.queue) == 0 }

// sweep drains the current worklist once (one phase iteration). Rows
// re-activated by this sweep's perturbations are processed next sweep,
// keeping per-iteration work bounded by the active frontier.
func (p *pushState) sweep() {
	frontier := p.queue
	p.queue = nil
	for _, u := range frontier {
		p.queued[u] = false
	}

	for _, u := range frontier {
		ru := p.r[u]
		if math.Abs(ru) <= p.o.PushThreshold {
			continue // decayed below threshold since activation
		}
		delta := ru / p.diag[u]
		p.x[u] += delta
		p.r[u] = 0 // the self term cancels r[u] exactly
		p.pushes++

		// Propagate -a_iu·delta to every in-neighbor i of u (column u).
		for _, e := range p.g.InEdges(u) {
			i := e.To
			p.r[i] -= e.Weight * delta
			if p.diag[i] != 0 && math.Abs(p.r[i]) > p.o.PushThreshold {
				p.enqueue(i)
			}
		}
	}
}
