// Package solver: functional configuration.
//
// Options is a pure configuration value: gathered once per Solve call,
// validated, then never mutated. Constructors panic on nonsensical values
// (programmer error); data-dependent problems (guess length vs. matrix
// size) surface as *Error at validation time.
//
// The hybrid phase constants (blend factor, push threshold, walk samples)
// are empirically chosen defaults, not derived quantities — they are
// deliberately exposed as tunable configuration.

package solver

import (
	"math"
	"time"

	"github.com/katalvlaran/linsolve/vec"
)

// ConvergenceMode selects which quantity the driver compares against
// Tolerance each step.
type ConvergenceMode int

const (
	// ResidualNorm converges on ‖b - Ax‖ (default).
	ResidualNorm ConvergenceMode = iota

	// RelativeResidual converges on ‖b - Ax‖ / ‖b‖.
	RelativeResidual

	// SolutionChange converges on ‖x_k - x_{k-1}‖.
	SolutionChange

	// RelativeSolutionChange converges on ‖x_k - x_{k-1}‖ / ‖x_k‖.
	RelativeSolutionChange

	// Combined requires both ResidualNorm and SolutionChange below tolerance.
	Combined
)

// String returns the canonical mode name for error messages and stats.
func (m ConvergenceMode) String() string {
	switch m {
	case ResidualNorm:
		return "ResidualNorm"
	case RelativeResidual:
		return "RelativeResidual"
	case SolutionChange:
		return "SolutionChange"
	case RelativeSolutionChange:
		return "RelativeSolutionChange"
	case Combined:
		return "Combined"
	default:
		return "Unknown"
	}
}

// Method selects the solving algorithm.
type Method int

const (
	// MethodAuto picks Neumann for diagonally dominant systems and Hybrid
	// otherwise.
	MethodAuto Method = iota

	// MethodNeumann forces the Neumann-series expansion.
	MethodNeumann

	// MethodHybrid forces the three-phase push/walk/CG pipeline.
	MethodHybrid

	// MethodCG forces a plain conjugate-gradient run.
	MethodCG
)

// String returns the canonical method name.
func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "Auto"
	case MethodNeumann:
		return "Neumann"
	case MethodHybrid:
		return "Hybrid"
	case MethodCG:
		return "CG"
	default:
		return "Unknown"
	}
}

// Defaults — single source of truth for zero-configuration behavior.
const (
	// DefaultTolerance is the convergence tolerance.
	DefaultTolerance = 1e-10

	// DefaultMaxIterations caps driver steps across all algorithms.
	DefaultMaxIterations = 1000

	// DefaultSeed feeds the stochastic walk phase when the caller does not
	// pin one; fixed so unseeded runs are still reproducible.
	DefaultSeed uint64 = 0x9E3779B97F4A7C15

	// DefaultMinPhaseIterations is the floor each enabled hybrid phase runs
	// before the improvement window may cut it short.
	DefaultMinPhaseIterations = 3

	// DefaultMaxPhaseIterations caps each hybrid phase.
	DefaultMaxPhaseIterations = 200

	// DefaultConvergenceWindow is the number of residual samples the hybrid
	// phase-transition rule looks back over.
	DefaultConvergenceWindow = 5

	// DefaultImprovementThreshold is the minimum relative residual
	// improvement over the window; below it the hybrid moves to the next
	// phase early.
	DefaultImprovementThreshold = 1e-3

	// DefaultPushThreshold is the residual-mass cutoff below which the
	// forward-push phase stops propagating a coordinate.
	DefaultPushThreshold = 1e-8

	// DefaultWalkSamples is the number of random walks averaged per
	// coordinate and refinement iteration.
	DefaultWalkSamples = 24

	// DefaultBlendFactor is the initial weight of the stochastic estimate
	// when blended into the running solution; the weight decays linearly
	// across the walk phase.
	DefaultBlendFactor = 0.5
)

// Internal panic messages.
const (
	panicBadTolerance = "solver: WithTolerance: must be finite and > 0"
	panicBadMaxIter   = "solver: WithMaxIterations: must be > 0"
	panicBadWindow    = "solver: WithConvergenceWindow: must be >= 2"
	panicBadPhaseIter = "solver: WithPhaseIterations: need 1 <= min <= max"
	panicBadImprove   = "solver: WithImprovementThreshold: must be in (0, 1)"
	panicBadPush      = "solver: WithPushThreshold: must be > 0"
	panicBadSamples   = "solver: WithWalkSamples: must be > 0"
	panicBadBlend     = "solver: WithBlendFactor: must be in (0, 1]"
	panicBadTimeLimit = "solver: WithTimeLimit: must be > 0"
)

// Options configures a solve. Zero value is NOT usable; start from
// DefaultOptions or pass functional options to Solve.
type Options struct {
	Tolerance     float64
	MaxIterations int
	Mode          ConvergenceMode
	Norm          vec.NormType
	NormWeights   []float64 // required iff Norm == vec.Weighted
	InitialGuess  []float64 // nil ⇒ zero vector
	ComputeBounds bool
	CollectStats  bool
	Seed          uint64
	TimeLimit     time.Duration // 0 ⇒ unlimited
	Method        Method
	Pool          *vec.BufferPool // nil ⇒ fresh exclusive pool per solve

	// Hybrid phase tuning (ignored by other methods).
	EnablePush           bool
	EnableWalk           bool
	EnableCG             bool
	MinPhaseIterations   int
	MaxPhaseIterations   int
	ConvergenceWindow    int
	ImprovementThreshold float64
	PushThreshold        float64
	WalkSamples          int
	BlendFactor          float64
}

// Option mutates Options during gathering.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Tolerance:            DefaultTolerance,
		MaxIterations:        DefaultMaxIterations,
		Mode:                 ResidualNorm,
		Norm:                 vec.L2,
		Seed:                 DefaultSeed,
		Method:               MethodAuto,
		EnablePush:           true,
		EnableWalk:           true,
		EnableCG:             true,
		MinPhaseIterations:   DefaultMinPhaseIterations,
		MaxPhaseIterations:   DefaultMaxPhaseIterations,
		ConvergenceWindow:    DefaultConvergenceWindow,
		ImprovementThreshold: DefaultImprovementThreshold,
		PushThreshold:        DefaultPushThreshold,
		WalkSamples:          DefaultWalkSamples,
		BlendFactor:          DefaultBlendFactor,
	}
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithTolerance sets the convergence tolerance. Panics unless finite and > 0.
func WithTolerance(tol float64) Option {
	if tol <= 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(panicBadTolerance)
	}

	return func(o *Options) { o.Tolerance = tol }
}

// WithMaxIterations caps total driver steps. Panics unless > 0.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicBadMaxIter)
	}

	return func(o *Options) { o.MaxIterations = n }
}

// WithConvergenceMode selects the convergence criterion.
func WithConvergenceMode(m ConvergenceMode) Option {
	return func(o *Options) { o.Mode = m }
}

// WithNorm selects the norm used by convergence checks.
func WithNorm(t vec.NormType) Option {
	return func(o *Options) { o.Norm = t }
}

// WithWeightedNorm selects the weighted L2 norm with the given non-negative
// per-coordinate weights; length is validated against the system at solve
// time.
func WithWeightedNorm(weights []float64) Option {
	return func(o *Options) {
		o.Norm = vec.Weighted
		o.NormWeights = weights
	}
}

// WithInitialGuess starts iteration from x0 instead of the zero vector.
// Length is validated against the system at solve time.
func WithInitialGuess(x0 []float64) Option {
	return func(o *Options) { o.InitialGuess = x0 }
}

// WithErrorBounds requests a truncation-tail error bound in the Result.
func WithErrorBounds() Option {
	return func(o *Options) { o.ComputeBounds = true }
}

// WithStats requests per-phase and counter statistics in the Result.
func WithStats() Option {
	return func(o *Options) { o.CollectStats = true }
}

// WithSeed pins the stochastic phases for deterministic replay.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithTimeLimit bounds wall-clock time; the driver checks elapsed time
// between steps and returns an unconverged Result (nil error) when
// exceeded. Panics unless d > 0.
func WithTimeLimit(d time.Duration) Option {
	if d <= 0 {
		panic(panicBadTimeLimit)
	}

	return func(o *Options) { o.TimeLimit = d }
}

// WithMethod forces a specific algorithm.
func WithMethod(m Method) Option {
	return func(o *Options) { o.Method = m }
}

// WithPool injects a buffer pool; use vec.NewSharedPool when several solver
// instances share it. Default is a fresh exclusive pool per solve.
func WithPool(p *vec.BufferPool) Option {
	return func(o *Options) { o.Pool = p }
}

// WithPhases toggles the hybrid phases individually. Disabling all three is
// rejected at validation time, not here.
func WithPhases(push, walk, cg bool) Option {
	return func(o *Options) {
		o.EnablePush, o.EnableWalk, o.EnableCG = push, walk, cg
	}
}

// WithPhaseIterations bounds each hybrid phase. Panics unless
// 1 <= min <= max.
func WithPhaseIterations(min, max int) Option {
	if min < 1 || max < min {
		panic(panicBadPhaseIter)
	}

	return func(o *Options) {
		o.MinPhaseIterations, o.MaxPhaseIterations = min, max
	}
}

// WithConvergenceWindow sets the sliding residual window the hybrid
// phase-transition rule inspects. Panics unless n >= 2.
func WithConvergenceWindow(n int) Option {
	if n < 2 {
		panic(panicBadWindow)
	}

	return func(o *Options) { o.ConvergenceWindow = n }
}

// WithImprovementThreshold sets the minimum relative improvement over the
// window before a phase is cut short. Panics unless in (0, 1).
func WithImprovementThreshold(t float64) Option {
	if t <= 0 || t >= 1 || math.IsNaN(t) {
		panic(panicBadImprove)
	}

	return func(o *Options) { o.ImprovementThreshold = t }
}

// WithPushThreshold sets the residual-mass cutoff of the push phase.
// Panics unless > 0.
func WithPushThreshold(t float64) Option {
	if t <= 0 || math.IsNaN(t) {
		panic(panicBadPush)
	}

	return func(o *Options) { o.PushThreshold = t }
}

// WithWalkSamples sets walks averaged per coordinate per refinement
// iteration. Panics unless > 0.
func WithWalkSamples(n int) Option {
	if n <= 0 {
		panic(panicBadSamples)
	}

	return func(o *Options) { o.WalkSamples = n }
}

// WithBlendFactor sets the initial stochastic blend weight. Panics unless
// in (0, 1].
func WithBlendFactor(f float64) Option {
	if f <= 0 || f > 1 || math.IsNaN(f) {
		panic(panicBadBlend)
	}

	return func(o *Options) { o.BlendFactor = f }
}

// validate checks the cross-field and data-dependent constraints for a
// system of dimension n.
func (o *Options) validate(n int) *Error {
	if o.Tolerance <= 0 || o.MaxIterations <= 0 {
		return newError(KindInvalidInput, "Options",
			"tolerance=%g maxIterations=%d", o.Tolerance, o.MaxIterations)
	}
	if o.InitialGuess != nil && len(o.InitialGuess) != n {
		return newError(KindDimensionMismatch, "Options",
			"initial guess length %d vs dimension %d", len(o.InitialGuess), n)
	}
	if o.Norm == vec.Weighted {
		if len(o.NormWeights) != n {
			return newError(KindDimensionMismatch, "Options",
				"norm weights length %d vs dimension %d", len(o.NormWeights), n)
		}
		for i, w := range o.NormWeights {
			if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
				return newError(KindInvalidInput, "Options", "norm weight[%d]=%g", i, w)
			}
		}
	}
	if o.Method == MethodHybrid && !o.EnablePush && !o.EnableWalk && !o.EnableCG {
		return newError(KindInvalidInput, "Options", "all hybrid phases disabled")
	}

	return nil
}

// norm applies the configured norm to x.
func (o *Options) norm(x []float64) float64 {
	if o.Norm == vec.Weighted {
		return vec.WeightedNorm(x, o.NormWeights)
	}

	return vec.Norm(x, o.Norm)
}
