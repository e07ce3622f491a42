// Package solver: the Neumann-series solver.
//
// For Ax = b with A = D(I - M), M = I - D⁻¹A, diagonal dominance gives
// ‖M‖∞ < 1, so (I-M)⁻¹ = Σ M^k converges geometrically and
//
//	x = Σ_{k≥0} M^k · D⁻¹b.
//
// Each new term is M applied to the previous one: one matvec, one
// elementwise diagonal scale, one subtract. The series is truncated when
// the current term's norm drops below the tolerance; the observed term
// decay ratio estimates ‖M‖ and bounds the discarded tail as a geometric
// remainder.

package solver

import (
	"math"

	"github.com/katalvlaran/linsolve/sparse"
	"github.com/katalvlaran/linsolve/vec"
)

// minDiagonal is the magnitude below which a diagonal entry counts as
// missing: D⁻¹ would amplify noise past any useful bound.
const minDiagonal = 1e-14

// neumannName tags errors and stats.
const neumannName = "Neumann"

// Neumann accumulates the geometric series term by term. Single-use; create
// via NewNeumann, drive via Iterate or Solve.
type Neumann struct {
	m    *sparse.Matrix
	o    *Options
	invD []float64 // 1/a_ii per row
	x    []float64 // running partial sum (the estimate)
	term []float64 // current series term M^k·c

	termNorm    float64
	contraction float64 // max observed decay ratio ≈ ‖M‖
	steps       int
}

// NewNeumann returns an uninitialized Neumann-series algorithm.
func NewNeumann() *Neumann { return &Neumann{} }

// Name implements Algorithm.
func (s *Neumann) Name() string { return neumannName }

// Init validates the structural preconditions and prepares the first term.
//
// Fails fast (before any iteration) with:
//   - NotDiagonallyDominant when some row has |a_ii| < Σ_{j≠i}|a_ij|;
//   - InvalidSparseMatrix when a diagonal entry is absent or below
//     minDiagonal in magnitude.
//
// With an initial guess x0, the series solves the residual system:
// x = x0 + Σ M^k · D⁻¹(b - A·x0).
func (s *Neumann) Init(m *sparse.Matrix, b []float64, opts *Options) error {
	n := m.Rows()
	dominant, err := m.IsDiagonallyDominant()
	if err != nil {
		return newError(KindInvalidSparseMatrix, neumannName, "%v", err)
	}
	if !dominant {
		return newError(KindNotDiagonallyDominant, neumannName,
			"Neumann series diverges without diagonal dominance")
	}

	s.m, s.o = m, opts
	if opts.Pool == nil {
		opts.Pool = vec.NewPool()
	}
	s.invD = opts.Pool.Get(n)
	for i := 0; i < n; i++ {
		d, ok := m.At(i, i)
		if !ok || math.Abs(d) <= minDiagonal {
			return newError(KindInvalidSparseMatrix, neumannName,
				"diagonal entry %d is missing or below %g", i, minDiagonal)
		}
		s.invD[i] = 1 / d
	}

	// Seed: x = x0, term = D⁻¹(b - A·x0); with a zero guess the matvec is
	// skipped and term = D⁻¹b directly.
	s.x = opts.Pool.Get(n)
	s.term = opts.Pool.Get(n)
	if opts.InitialGuess != nil {
		copy(s.x, opts.InitialGuess)
		if mvErr := m.MulVec(s.x, s.term); mvErr != nil {
			return newError(KindDimensionMismatch, neumannName, "%v", mvErr)
		}
		vec.SubTo(s.term, b, s.term)
		vec.MulElemTo(s.term, s.term, s.invD)
	} else {
		vec.MulElemTo(s.term, b, s.invD)
	}
	vec.AddTo(s.x, s.x, s.term) // fold in the k=0 term
	s.termNorm = opts.norm(s.term)

	return nil
}

// Step advances the series one term: term ← M·term = term - D⁻¹(A·term),
// x ← x + term. Converges when the term norm falls below the tolerance —
// the geometric decay makes the term norm a bound proxy for the remaining
// tail.
func (s *Neumann) Step() (Status, error) {
	n := len(s.x)
	tmp := s.o.Pool.Get(n)
	defer s.o.Pool.Put(tmp)

	if err := s.m.MulVec(s.term, tmp); err != nil {
		return Failed, newError(KindDimensionMismatch, neumannName, "%v", err)
	}
	vec.MulElemTo(tmp, tmp, s.invD)  // D⁻¹·A·term
	vec.SubTo(s.term, s.term, tmp)   // term ← (I - D⁻¹A)·term
	vec.AddTo(s.x, s.x, s.term)      // accumulate the new term

	prevNorm := s.termNorm
	s.termNorm = s.o.norm(s.term)
	s.steps++
	if math.IsNaN(s.termNorm) || math.IsInf(s.termNorm, 0) {
		return Failed, &Error{
			Kind: KindNumericalInstability, Op: neumannName,
			Detail: "series term became non-finite", Residual: s.termNorm,
		}
	}
	if prevNorm > 0 {
		if ratio := s.termNorm / prevNorm; ratio > s.contraction && ratio < 1 {
			s.contraction = ratio
		}
	}
	if s.termNorm <= s.o.Tolerance {
		return Converged, nil
	}

	return Continue, nil
}

// Solution implements Algorithm; the slice is owned by the solver.
func (s *Neumann) Solution() []float64 { return s.x }

// Residual returns the current term norm (the series-truncation metric).
func (s *Neumann) Residual() float64 { return s.termNorm }

// Bounds estimates the truncated tail as a geometric remainder:
// ‖x - x*‖ ≤ q/(1-q) · ‖term_K‖ with q the observed decay ratio.
// Returns nil until at least two terms were produced.
func (s *Neumann) Bounds() *ErrorBounds {
	if s.steps < 2 || s.contraction <= 0 || s.contraction >= 1 {
		return nil
	}

	return &ErrorBounds{
		Upper:       s.contraction / (1 - s.contraction) * s.termNorm,
		Lower:       0,
		Contraction: s.contraction,
	}
}
