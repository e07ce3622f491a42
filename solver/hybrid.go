// Package solver: the three-phase hybrid solver.
//
// Hybrid sequences forward push → randomized-walk refinement → conjugate
// gradient, each phase optional and bounded by the configured per-phase
// iteration window. A sliding window of residual samples cuts a phase short
// once its relative improvement stalls, and a global best solution/residual
// pair is maintained across all phases: whatever the later phases do, the
// returned solution is the best ever observed, so a phase that regresses
// cannot regress the final answer.

package solver

import (
	"errors"
	"math"
	"time"

	"github.com/katalvlaran/linsolve/sparse"
	"github.com/katalvlaran/linsolve/vec"
)

const hybridName = "Hybrid"

// Phase names recorded in PhaseReport entries.
const (
	phasePushName = "ForwardPush"
	phaseWalkName = "RandomWalk"
	phaseCGName   = "ConjugateGradient"
)

// phaseID indexes the ordered phase pipeline.
type phaseID int

const (
	phasePush phaseID = iota
	phaseWalk
	phaseCG
)

// name returns the diagnostic label of the phase.
func (p phaseID) name() string {
	switch p {
	case phasePush:
		return phasePushName
	case phaseWalk:
		return phaseWalkName
	default:
		return phaseCGName
	}
}

// Hybrid is the multi-phase state machine. Single-use; create via NewHybrid.
type Hybrid struct {
	m *sparse.Matrix
	b []float64
	o *Options

	x []float64 // running estimate, shared with the active phase
	r []float64 // exact residual during the push phase

	pipeline  []phaseID
	phase     int // index into pipeline
	phaseIter int
	phaseT0   time.Time

	window  []float64 // sliding residual samples for the transition rule
	resNorm float64   // latest phase residual

	bestX   []float64
	bestRes float64

	push    *pushState
	walk    *walkState
	cg      *ConjugateGradient
	scratch []float64 // walk estimates and residual matvecs

	reports []PhaseReport
}

// NewHybrid returns an uninitialized hybrid algorithm.
func NewHybrid() *Hybrid { return &Hybrid{} }

// Name implements Algorithm.
func (s *Hybrid) Name() string { return hybridName }

// Init builds the graph view (on a clone — the caller's matrix is treated
// as immutable per the concurrency contract), seeds x from the initial
// guess, and assembles the enabled phase pipeline.
func (s *Hybrid) Init(m *sparse.Matrix, b []float64, opts *Options) error {
	n := m.Rows()
	s.m, s.o = m, opts
	s.b = b
	if opts.Pool == nil {
		opts.Pool = vec.NewPool()
	}

	gm := m.Clone()
	g, err := gm.Graph()
	if err != nil {
		return newError(KindUnsupportedFormat, hybridName, "%v", err)
	}

	s.x = opts.Pool.Get(n)
	s.r = opts.Pool.Get(n)
	s.bestX = opts.Pool.Get(n)
	s.scratch = opts.Pool.Get(n)
	if opts.InitialGuess != nil {
		copy(s.x, opts.InitialGuess)
		if mvErr := m.MulVec(s.x, s.r); mvErr != nil {
			return newError(KindDimensionMismatch, hybridName, "%v", mvErr)
		}
		vec.SubTo(s.r, b, s.r)
	} else {
		copy(s.r, b) // zero guess: r = b exactly
	}

	if opts.EnablePush {
		s.pipeline = append(s.pipeline, phasePush)
		s.push = newPushState(g, opts, s.x, s.r)
	}
	if opts.EnableWalk {
		s.pipeline = append(s.pipeline, phaseWalk)
		s.walk = newWalkState(g, opts, b)
	}
	if opts.EnableCG {
		s.pipeline = append(s.pipeline, phaseCG)
		s.cg = NewConjugateGradient()
		if cgErr := s.cg.Init(m, b, opts); cgErr != nil {
			return cgErr
		}
	}
	if len(s.pipeline) == 0 {
		return newError(KindInvalidInput, hybridName, "all phases disabled")
	}

	s.resNorm = opts.norm(s.r)
	s.bestRes = s.resNorm
	copy(s.bestX, s.x)
	s.phaseT0 = time.Now()

	return nil
}

// Step advances the active phase one iteration, refreshes the global best,
// and applies the phase-transition rule. When the last phase is spent the
// step reports ConvergenceFailure — the driver turns that into a partial
// result built from the global best.
func (s *Hybrid) Step() (Status, error) {
	if s.phase >= len(s.pipeline) {
		return Failed, &Error{
			Kind: KindConvergenceFailure, Op: hybridName,
			Detail:    "all phases exhausted",
			Residual:  s.bestRes,
			Tolerance: s.o.Tolerance,
		}
	}

	var phaseDone bool
	switch s.pipeline[s.phase] {
	case phasePush:
		phaseDone = s.stepPush()
	case phaseWalk:
		phaseDone = s.stepWalk()
	case phaseCG:
		var err error
		phaseDone, err = s.stepCG()
		if err != nil {
			return Failed, err
		}
	}
	s.phaseIter++

	if math.IsNaN(s.resNorm) || math.IsInf(s.resNorm, 0) {
		return Failed, &Error{
			Kind: KindNumericalInstability, Op: hybridName,
			Detail:   "residual became non-finite in " + s.pipeline[s.phase].name(),
			Residual: s.resNorm,
		}
	}

	// Global best: strictly better residuals replace the kept solution.
	if s.resNorm < s.bestRes {
		s.bestRes = s.resNorm
		copy(s.bestX, s.x)
	}
	if s.bestRes <= s.o.Tolerance {
		return Converged, nil
	}

	if phaseDone || s.transitionDue() {
		s.advancePhase()
	}

	return Continue, nil
}

// stepPush runs one worklist sweep; done when no active mass remains.
func (s *Hybrid) stepPush() bool {
	s.push.sweep()
	s.resNorm = s.o.norm(s.r)

	return s.push.exhausted()
}

// stepWalk draws a fresh stochastic estimate and blends it in with the
// linearly decaying factor β_t = BlendFactor·(1 - t/maxPhaseIterations).
func (s *Hybrid) stepWalk() bool {
	s.walk.estimate(s.scratch)
	beta := s.o.BlendFactor *
		(1 - float64(s.phaseIter)/float64(s.o.MaxPhaseIterations))
	if beta <= 0 {
		return true // blend weight spent; the phase has nothing left to add
	}
	for i := range s.x {
		s.x[i] = (1-beta)*s.x[i] + beta*s.scratch[i]
	}
	s.refreshResidual()

	return false
}

// stepCG hands the blended estimate to CG on first entry and then polishes
// while the residual keeps improving. CG instability ends the phase rather
// than failing the solve — the global best is already safe.
func (s *Hybrid) stepCG() (bool, error) {
	if s.phaseIter == 0 {
		if err := s.cg.warmStart(s.bestX, s.b); err != nil {
			return false, err
		}
	}
	status, err := s.cg.Step()
	if err != nil {
		var solErr *Error
		if errors.As(err, &solErr) && solErr.Kind == KindNumericalInstability {
			return true, nil // stop polishing, keep the best
		}

		return false, err
	}
	copy(s.x, s.cg.Solution())
	s.resNorm = s.cg.Residual()

	return status == Converged, nil
}

// refreshResidual recomputes r = b - Ax exactly (walk estimates perturb x
// arbitrarily, so the incremental residual no longer holds).
func (s *Hybrid) refreshResidual() {
	_ = s.m.MulVec(s.x, s.r)
	vec.SubTo(s.r, s.b, s.r)
	s.resNorm = s.o.norm(s.r)
}

// transitionDue applies the sliding-window rule: past the per-phase floor,
// a full window whose relative improvement falls below the threshold — or
// the per-phase cap — moves the pipeline on.
func (s *Hybrid) transitionDue() bool {
	if s.phaseIter >= s.o.MaxPhaseIterations {
		return true
	}
	s.window = append(s.window, s.resNorm)
	if len(s.window) > s.o.ConvergenceWindow {
		s.window = s.window[1:]
	}
	if s.phaseIter < s.o.MinPhaseIterations || len(s.window) < s.o.ConvergenceWindow {
		return false
	}
	oldest := s.window[0]
	if oldest <= 0 {
		return true
	}
	improvement := (oldest - s.resNorm) / oldest

	return improvement < s.o.ImprovementThreshold
}

// advancePhase records the finished phase and resets the per-phase state.
func (s *Hybrid) advancePhase() {
	done := s.pipeline[s.phase]
	s.reports = append(s.reports, PhaseReport{
		Phase:      done.name(),
		Iterations: s.phaseIter,
		Residual:   s.resNorm,
		Elapsed:    time.Since(s.phaseT0),
	})
	s.phase++
	s.phaseIter = 0
	s.window = s.window[:0]
	s.phaseT0 = time.Now()

	// Later phases start from the best estimate, not the latest one.
	copy(s.x, s.bestX)
	if s.phase < len(s.pipeline) && s.pipeline[s.phase] != phaseCG {
		s.refreshResidual()
	}
}

// Solution returns the global best estimate — by construction the residual
// associated with it is non-increasing across phases.
func (s *Hybrid) Solution() []float64 { return s.bestX }

// currentIterate exposes the working estimate the phases mutate
// (iterateProvider): change-based convergence must watch this vector, since
// the best snapshot stands still across non-improving steps.
func (s *Hybrid) currentIterate() []float64 { return s.x }

// Residual returns the global best residual norm.
func (s *Hybrid) Residual() float64 { return s.bestRes }

// PhaseReports returns completed-phase diagnostics (phaseReporter).
func (s *Hybrid) PhaseReports() []PhaseReport { return s.reports }
