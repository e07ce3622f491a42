// Package solver: preconditioner-free conjugate gradient.
//
// CG is the hybrid pipeline's polish phase and is also exposed standalone
// (MethodCG) for callers that already hold a good initial guess. On the
// asymmetric systems this package targets CG is a refinement heuristic, not
// a guaranteed-convergence method — the hybrid uses it only while the
// residual keeps improving, and the global-best tracking makes a diverging
// polish harmless.

package solver

import (
	"math"

	"github.com/katalvlaran/linsolve/sparse"
	"github.com/katalvlaran/linsolve/vec"
)

const cgName = "CG"

// denomEps guards the α and β divisions: a curvature this small means the
// search direction has collapsed.
const denomEps = 1e-300

// ConjugateGradient is the textbook CG loop: one matvec, two dots and three
// axpy updates per step. Single-use; create via NewConjugateGradient.
type ConjugateGradient struct {
	m *sparse.Matrix
	o *Options

	x  []float64 // estimate
	r  []float64 // residual b - Ax
	p  []float64 // search direction
	ap []float64 // A·p scratch

	rs      float64 // r·r
	resNorm float64
}

// NewConjugateGradient returns an uninitialized CG algorithm.
func NewConjugateGradient() *ConjugateGradient { return &ConjugateGradient{} }

// Name implements Algorithm.
func (s *ConjugateGradient) Name() string { return cgName }

// Init sets x to the initial guess (zero by default), r = b - Ax, p = r.
func (s *ConjugateGradient) Init(m *sparse.Matrix, b []float64, opts *Options) error {
	n := m.Rows()
	s.m, s.o = m, opts
	if opts.Pool == nil {
		opts.Pool = vec.NewPool()
	}
	s.x = opts.Pool.Get(n)
	s.r = opts.Pool.Get(n)
	s.p = opts.Pool.Get(n)
	s.ap = opts.Pool.Get(n)

	if opts.InitialGuess != nil {
		copy(s.x, opts.InitialGuess)
	}

	return s.restart(b)
}

// restart recomputes r = b - Ax and p = r from the current x. The hybrid
// calls this (via warmStart) when handing CG a blended estimate.
func (s *ConjugateGradient) restart(b []float64) error {
	if err := s.m.MulVec(s.x, s.r); err != nil {
		return newError(KindDimensionMismatch, cgName, "%v", err)
	}
	vec.SubTo(s.r, b, s.r)
	copy(s.p, s.r)
	s.rs = vec.Dot(s.r, s.r)
	s.resNorm = s.o.norm(s.r)

	return nil
}

// warmStart reseeds CG from x0 against b; used by the hybrid phase switch.
func (s *ConjugateGradient) warmStart(x0, b []float64) error {
	copy(s.x, x0)

	return s.restart(b)
}

// Step performs one CG update:
//
//	α = r·r / p·Ap;  x += αp;  r -= αAp;  β = r'·r' / r·r;  p = r' + βp.
//
// A vanishing curvature p·Ap is reported as NumericalInstability: on an
// asymmetric or indefinite system the direction can collapse; callers
// (the hybrid) treat that as "stop polishing", not as a hard failure.
func (s *ConjugateGradient) Step() (Status, error) {
	if err := s.m.MulVec(s.p, s.ap); err != nil {
		return Failed, newError(KindDimensionMismatch, cgName, "%v", err)
	}
	denom := vec.Dot(s.p, s.ap)
	if math.Abs(denom) < denomEps || math.IsNaN(denom) {
		return Failed, &Error{
			Kind: KindNumericalInstability, Op: cgName,
			Detail: "search direction curvature vanished", Residual: s.resNorm,
		}
	}

	alpha := s.rs / denom
	vec.Axpy(alpha, s.p, s.x)
	vec.Axpy(-alpha, s.ap, s.r)

	rsNew := vec.Dot(s.r, s.r)
	beta := rsNew / s.rs
	s.rs = rsNew
	for i := range s.p {
		s.p[i] = s.r[i] + beta*s.p[i]
	}

	s.resNorm = s.o.norm(s.r)
	if math.IsNaN(s.resNorm) || math.IsInf(s.resNorm, 0) {
		return Failed, &Error{
			Kind: KindNumericalInstability, Op: cgName,
			Detail: "residual became non-finite", Residual: s.resNorm,
		}
	}
	if s.resNorm <= s.o.Tolerance {
		return Converged, nil
	}

	return Continue, nil
}

// Solution implements Algorithm.
func (s *ConjugateGradient) Solution() []float64 { return s.x }

// Residual returns ‖b - Ax‖ in the configured norm, maintained recursively.
func (s *ConjugateGradient) Residual() float64 { return s.resNorm }
