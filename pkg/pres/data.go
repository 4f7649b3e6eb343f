package pres

import "fmt"

// Sort identifies the domain of a data expression: Bool, Real, or an
// arbitrary other sort serving as the domain of a quantified variable.
type Sort interface {
	// Name returns a stable identifier for the sort, used for map keys
	// and diagnostics. Two sorts with the same Name are considered the
	// same sort by the core.
	Name() string
}

// BoolSort and RealSort are the two distinguished sorts the core itself
// reasons about (§3.1). Any other sort is opaque and only ever round-trips
// through the DataOracle.
type boolSort struct{}
type realSort struct{}

func (boolSort) Name() string { return "Bool" }
func (realSort) Name() string { return "Real" }

// BoolSort is the sort of boolean data expressions.
var BoolSort Sort = boolSort{}

// RealSort is the sort of non-negative real data expressions.
var RealSort Sort = realSort{}

// NamedSort is a convenience Sort implementation for any other
// (non-Bool, non-Real) enumerable or opaque sort used as the domain of a
// quantified variable.
type NamedSort string

// Name implements Sort.
func (s NamedSort) Name() string { return string(s) }

// DataExpr is an opaque term of a sort from an ambient data specification
// (§3.1). The core never inspects a DataExpr's internal shape; it only
// passes it to a DataOracle and compares the sort.
type DataExpr interface {
	// Sort returns the sort of this data expression.
	Sort() Sort
	// String renders the term for diagnostics and pretty-printing.
	String() string
}

// DataVar is a data-sorted variable: either a PRES equation's formal
// parameter, or a variable bound by Infimum/Supremum/Sum.
type DataVar struct {
	Name     string
	SortName Sort
}

// Sort implements DataExpr so a DataVar can appear wherever a ground data
// expression is expected before substitution.
func (v DataVar) Sort() Sort { return v.SortName }

// String implements DataExpr.
func (v DataVar) String() string { return v.Name }

// DataEnv is a substitution from data variable names to ground data
// expressions, passed to the DataOracle when rewriting under a binding
// (§3.1, §4.C). A DataEnv is immutable; Extend returns a new one.
type DataEnv map[string]DataExpr

// Extend returns a new DataEnv with v bound to d, leaving the receiver
// unmodified.
func (e DataEnv) Extend(v DataVar, d DataExpr) DataEnv {
	next := make(DataEnv, len(e)+1)
	for k, val := range e {
		next[k] = val
	}
	next[v.Name] = d
	return next
}

// Lookup returns the data expression bound to name, if any.
func (e DataEnv) Lookup(name string) (DataExpr, bool) {
	d, ok := e[name]
	return d, ok
}

// TriBool is the three-valued result of evaluate_bool (§3.1): the oracle
// may be unable to decide a comparison.
type TriBool int

const (
	// Unknown means the oracle could not decide the query.
	Unknown TriBool = iota
	True
	False
)

// String renders the tri-valued result.
func (b TriBool) String() string {
	switch b {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// EnumDomain is a finite, ordered sequence of ground values for an
// enumerable sort (§3.1, §4.B). Enumeration order is fixed by the oracle;
// callers may not depend on any particular ordering of values beyond the
// denotation of the fold that consumes them (spec §4.B).
type EnumDomain interface {
	// Len returns the number of values in the domain.
	Len() int
	// At returns the i'th value, 0 <= i < Len().
	At(i int) DataExpr
}

// sliceDomain is the straightforward EnumDomain backed by a slice, the
// shape every concrete DataOracle in this repository returns.
type sliceDomain []DataExpr

func (d sliceDomain) Len() int          { return len(d) }
func (d sliceDomain) At(i int) DataExpr { return d[i] }

// NewEnumDomain builds an EnumDomain from a concrete slice of values.
func NewEnumDomain(values []DataExpr) EnumDomain { return sliceDomain(values) }

// DataOracle is the capability the core requires from the data-term
// rewrite engine (§3.1, §9 "Rewriter boundary"). It is the only subsystem
// treated as a black box: a tree-walking reference implementation lives in
// internal/oracle, but any backend satisfying this interface can be
// swapped in without touching the solver.
type DataOracle interface {
	// Rewrite reduces term to normal form under env, per §3.1.
	Rewrite(term DataExpr, env DataEnv) (DataExpr, error)

	// EvaluateBool decides a closed ground boolean term, returning Unknown
	// if the oracle cannot decide it (§3.1).
	EvaluateBool(term DataExpr) (TriBool, error)

	// CompareLess decides whether the real-sorted term rewrites to a value
	// strictly less than threshold (e.g. "gradient < 1"), returning Unknown
	// if undecidable (§4.E).
	CompareLess(term DataExpr, threshold float64) (TriBool, error)

	// EvaluateReal reduces a closed, real-sorted data term to an IEEE-754
	// double, for the numerical driver's evaluator (§4.G). Only ever
	// called on ground terms with no remaining free data variables.
	EvaluateReal(term DataExpr) (float64, error)

	// IsZero and IsOne decide whether a real-sorted term rewrites to
	// exactly 0 or 1, the two constants the simplifier folds away (§4.A).
	IsZero(term DataExpr) (TriBool, error)
	IsOne(term DataExpr) (TriBool, error)

	// Negate returns the data term "-d" in normal form, for
	// Minus(Data(d)) -> Data(rewrite(-d)) (§4.A).
	Negate(term DataExpr) (DataExpr, error)

	// Add and Scale build data-term sums and scalar products, used by the
	// normal-form builder's grouping step to merge k1*X + k2*X into
	// (k1+k2)*X (§4.D) and by the linear solver to combine intercepts.
	Add(a, b DataExpr) (DataExpr, error)
	Scale(k, d DataExpr) (DataExpr, error)
	Invert(d DataExpr) (DataExpr, error) // 1/d, used for f/(1-c) in §4.E

	// Enumerate returns all ground values of sort, or an error if sort is
	// not enumerable by this oracle (§3.1, §4.B degrades gracefully on
	// this error rather than treating it as fatal).
	Enumerate(sort Sort) (EnumDomain, error)

	// RealConstant produces a ground data expression for a rational
	// constant (used by the simplifier and the linear solver to build
	// 0, 1, sums and quotients of gradients/intercepts).
	RealConstant(num, den int64) DataExpr

	// BoolConstant produces the ground true/false data expression.
	BoolConstant(value bool) DataExpr

	// Configure threads rewrite-strategy-level options (§11.3,
	// replace_constants_by_variables, remove_unused_rewrite_rules) to the
	// oracle backend. The PRES core performs no rewrite-rule analysis of
	// its own; it only forwards the flags once per solve.
	Configure(opts RewriteConfig) error
}

// RewriteConfig carries the oracle-facing subset of Options (§6.1) that the
// PRES core itself never interprets, only forwards (§13).
type RewriteConfig struct {
	Strategy                    string
	ReplaceConstantsByVariables bool
	RemoveUnusedRewriteRules    bool
}

// ErrNotEnumerable is returned by a DataOracle.Enumerate implementation
// when the given sort has no finite enumeration.
type ErrNotEnumerable struct{ Sort Sort }

func (e *ErrNotEnumerable) Error() string {
	return fmt.Sprintf("sort %q is not enumerable", e.Sort.Name())
}
