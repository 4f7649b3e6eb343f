package pres

// Algorithm selects which driver solve_pres uses (§6.1).
type Algorithm int

const (
	// GaussElimination solves via the algebraic back-substitution driver
	// (§4.F), falling back to the numerical driver on Undecidable only if
	// Options.FallbackToNumerical is set (§7, §9).
	GaussElimination Algorithm = iota
	// Numerical solves via nested Kleene iteration (§4.G).
	Numerical
	// NumericalDirected is the same nested-Kleene scheme, seeding each
	// block from the previous global iteration instead of resetting to
	// +-Inf on every recursive entry (§13).
	NumericalDirected
)

// String renders the algorithm name.
func (a Algorithm) String() string {
	switch a {
	case GaussElimination:
		return "GaussElimination"
	case Numerical:
		return "Numerical"
	case NumericalDirected:
		return "NumericalDirected"
	default:
		return "unknown"
	}
}

// TodoStrategy selects the instantiator's reachability queue discipline
// (§4.C).
type TodoStrategy int

const (
	// BreadthFirst is the default FIFO exploration order.
	BreadthFirst TodoStrategy = iota
	// DepthFirst is LIFO exploration order.
	DepthFirst
	// Highway is the bounded-memory randomized sampling strategy.
	Highway
)

// String renders the todo strategy name.
func (s TodoStrategy) String() string {
	switch s {
	case BreadthFirst:
		return "BreadthFirst"
	case DepthFirst:
		return "DepthFirst"
	case Highway:
		return "Highway"
	default:
		return "unknown"
	}
}

// TraceEvent is reported to Options.Trace, if set, by the components
// named in its Phase (§11.2: a callback hook stands in for the
// structured-logging dependency the corpus does not provide).
type TraceEvent struct {
	// Phase names the component emitting the event: "instantiate",
	// "gauss", "numerical", or "solve".
	Phase string
	// Message is a short human-readable description.
	Message string
	// Iteration is the current Kleene iteration count, for Numerical
	// trace events; zero otherwise.
	Iteration int
}

// Options mirrors the C++ pressolve_options struct field-for-field
// (original_source/libraries/pres/include/mcrl2/pres/pressolve_options.h)
// plus the algorithm/precision/todo-strategy knobs of spec.md §6.1, built
// the way the teacher builds StrategyConfig/SolverConfig (strategy.go,
// model.go): a DefaultOptions constructor, a Validate method, and Clone
// for safe reuse across solves.
type Options struct {
	// Algorithm selects the driver (§6.1).
	Algorithm Algorithm

	// RewriteStrategy is an oracle-specific opaque tag, forwarded
	// verbatim to DataOracle.Configure (§6.1, §13).
	RewriteStrategy string

	// Precision is the number of significant decimal digits the
	// numerical driver converges to; valid range is [1, 52] (§6.1).
	Precision int

	// ReplaceConstantsByVariables and RemoveUnusedRewriteRules are
	// forwarded opaquely to the oracle (§11.3, §13); the PRES core
	// performs no rewrite-rule analysis of its own.
	ReplaceConstantsByVariables bool
	RemoveUnusedRewriteRules    bool

	// TodoStrategy and HighwayCap configure the instantiator (§4.C).
	// HighwayCap is the N of Highway(N); it is ignored by the other
	// strategies.
	TodoStrategy TodoStrategy
	HighwayCap   int

	// RandomSeed seeds the Highway sampler's PRNG for reproducibility
	// (§5, §9); ignored by the other todo strategies.
	RandomSeed uint64

	// MaxInstantiations bounds breadth/depth-first reachability exploration.
	// True infiniteness of the reachable set is undecidable in general; this
	// is the finite approximation the instantiator actually checks before
	// reporting Unbounded. Zero means use the package default. Ignored when
	// TodoStrategy is Highway, which is bounded by HighwayCap instead.
	MaxInstantiations int

	// FallbackToNumerical makes SolvePRES retry via the numerical driver
	// when SolveGauss reports Undecidable, an explicit, caller-visible
	// opt-in (§7, §9).
	FallbackToNumerical bool

	// Trace, if non-nil, receives progress events from the instantiator,
	// the Gauss and numerical drivers, and SolvePRES's fallback (§11.2).
	Trace func(TraceEvent)

	// Cancel, if non-nil, is polled before each outer-loop iteration of
	// the Gauss and numerical drivers; returning true aborts the solve
	// with an Unbounded-classified SolveError (§5 "Cancellation and
	// timeouts" — cooperative, not mandatory).
	Cancel func() bool
}

// DefaultOptions returns the default option set: breadth-first
// instantiation, Gauss elimination with no numerical fallback, and
// 15-digit numerical precision.
func DefaultOptions() *Options {
	return &Options{
		Algorithm:    GaussElimination,
		Precision:    15,
		TodoStrategy: BreadthFirst,
		RandomSeed:   42,
	}
}

// Validate checks that the option set is internally consistent.
func (o *Options) Validate() error {
	if o.Precision < 1 || o.Precision > 52 {
		return newErr(InvariantViolation, "precision %d out of range [1,52]", o.Precision)
	}
	if o.TodoStrategy == Highway && o.HighwayCap <= 0 {
		return newErr(InvariantViolation, "highway todo strategy requires HighwayCap > 0")
	}
	switch o.Algorithm {
	case GaussElimination, Numerical, NumericalDirected:
	default:
		return newErr(InvariantViolation, "unknown algorithm %v", o.Algorithm)
	}
	return nil
}

// Clone returns a shallow copy of o, safe to mutate independently (the
// same shape as StrategyConfig.Clone in the teacher's strategy.go).
func (o *Options) Clone() *Options {
	clone := *o
	return &clone
}

// rewriteConfig projects the oracle-facing subset of Options into a
// RewriteConfig (§13).
func (o *Options) rewriteConfig() RewriteConfig {
	return RewriteConfig{
		Strategy:                    o.RewriteStrategy,
		ReplaceConstantsByVariables: o.ReplaceConstantsByVariables,
		RemoveUnusedRewriteRules:    o.RemoveUnusedRewriteRules,
	}
}
