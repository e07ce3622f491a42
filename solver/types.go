// Package solver: the algorithm contract and result surface.

package solver

import (
	"time"

	"github.com/katalvlaran/linsolve/sparse"
	"github.com/katalvlaran/linsolve/vec"
)

// Status classifies one driver step.
type Status int

const (
	// Continue: keep iterating.
	Continue Status = iota

	// Converged: the algorithm's own criterion is satisfied.
	Converged

	// Failed: the algorithm cannot make further progress; Step returns the
	// reason alongside.
	Failed
)

// Algorithm is the shared initialize/step/extract protocol every solver
// implements. An Algorithm instance is single-use: Init binds it to one
// system, Step advances one iteration, and the driver owns the loop.
// A nil Options.Pool is defaulted to a fresh exclusive pool inside Init,
// so algorithms are safe to drive directly with DefaultOptions.
//
// Solution returns the algorithm's current estimate; the slice is owned by
// the algorithm and only valid until the next Step. Residual returns the
// algorithm's internal convergence metric (not necessarily ‖b - Ax‖; the
// driver computes the true residual independently).
type Algorithm interface {
	Name() string
	Init(m *sparse.Matrix, b []float64, opts *Options) error
	Step() (Status, error)
	Solution() []float64
	Residual() float64
}

// boundsProvider is the optional capability of algorithms that can bound
// their truncation error; the driver queries it after convergence.
type boundsProvider interface {
	Bounds() *ErrorBounds
}

// iterateProvider is the optional capability of algorithms whose Solution
// differs from the vector the current step actually updates (the hybrid
// returns its global best). Change-based convergence modes measure the
// working iterate — a step that fails to improve the best still moves it.
type iterateProvider interface {
	currentIterate() []float64
}

// phaseReporter is the optional capability of multi-phase algorithms; the
// driver copies the reports into Stats when stats are requested.
type phaseReporter interface {
	PhaseReports() []PhaseReport
}

// ErrorBounds is a computed bound on the solution error, used by callers to
// gate acceptance of an approximate result.
type ErrorBounds struct {
	// Upper bounds ‖x - x*‖ in the configured norm.
	Upper float64

	// Lower is the optional lower bound (0 when unknown).
	Lower float64

	// Contraction is the observed per-term decay ratio the bound was
	// derived from (an estimate of ‖M‖).
	Contraction float64
}

// PhaseReport records one completed hybrid phase for diagnostics.
type PhaseReport struct {
	Phase      string
	Iterations int
	Residual   float64
	Elapsed    time.Duration
}

// Stats carries optional per-solve diagnostics (CollectStats).
type Stats struct {
	Algorithm       string
	Elapsed         time.Duration
	ResidualHistory []float64
	Phases          []PhaseReport
	Pool            vec.PoolStats
}

// Result is the uniform solve outcome. Converged == false with a nil error
// is a soft outcome (time limit reached); a *Error of kind
// ConvergenceFailure accompanies a populated partial Result; hard input
// errors come with a nil Result.
type Result struct {
	Solution     []float64
	ResidualNorm float64
	Iterations   int
	Converged    bool
	Bounds       *ErrorBounds // non-nil only when requested and available
	Stats        *Stats       // non-nil only when requested
}
