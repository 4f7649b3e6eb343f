package pres

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// SolveNumerical implements the numerical driver of §4.G: nested block-wise
// Kleene iteration over the extended reals, evaluating every equation in
// double precision rather than building a closed-form solution. It returns
// the converged value of the RES's initial variable.
//
// opts.Algorithm selects between Numerical (each recursive entry into a
// block resets that block's values to the bottom of its lattice) and
// NumericalDirected (§13: a block is seeded once, and every later entry
// continues from wherever the previous outer round left it).
func SolveNumerical(res *RES, oracle DataOracle, opts *Options) (float64, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(res.Equations) == 0 {
		return 0, newErr(InvariantViolation, "RES has no equations")
	}

	index := make(map[string]int, len(res.Equations))
	for i, eq := range res.Equations {
		index[eq.Name] = i
	}
	initIdx, ok := index[res.InitVar]
	if !ok {
		return 0, newErr(InvalidReference, "initial variable %q is not defined", res.InitVar)
	}

	it := &numericalIterator{
		res:       res,
		oracle:    oracle,
		opts:      opts,
		index:     index,
		value:     make([]float64, len(res.Equations)),
		seeded:    make([]bool, len(res.Equations)),
		threshold: math.Pow(10, -float64(opts.Precision)),
		directed:  opts.Algorithm == NumericalDirected,
	}

	if _, err := it.iterate(res.Blocks(), 0); err != nil {
		return 0, err
	}
	return it.value[initIdx], nil
}

// SolveNumericalDirected runs the NumericalDirected variant (§13) under
// its own name, sharing SolveNumerical's block-evaluation core and
// differing only in the reset policy: opts is cloned with Algorithm
// forced to NumericalDirected rather than requiring the caller to set
// it themselves.
func SolveNumericalDirected(res *RES, oracle DataOracle, opts *Options) (float64, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	directed := opts.Clone()
	directed.Algorithm = NumericalDirected
	return SolveNumerical(res, oracle, directed)
}

// numericalIterator carries the mutable state threaded through the nested
// Kleene iteration: the shared value vector, which entries have been seeded
// at least once (for NumericalDirected), and the running iteration count
// reported through Options.Trace.
type numericalIterator struct {
	res       *RES
	oracle    DataOracle
	opts      *Options
	index     map[string]int
	value     []float64
	seeded    []bool
	threshold float64
	directed  bool
	iteration int
}

// sameWithinThreshold reports whether every entry of s1 and s2 is within
// it.threshold of its counterpart, per extAbsDiff's extended-real distance.
func (it *numericalIterator) sameWithinThreshold(s1, s2 []float64) bool {
	return floats.EqualFunc(s1, s2, func(a, b float64) bool {
		return extAbsDiff(a, b) <= it.threshold
	})
}

// iterate runs the nested Kleene scheme of §4.G for the block of blocks
// starting at equation index start (and, recursively, every block nested
// inside it), until a full outer round leaves the entire remaining value
// vector [start, len) unchanged within threshold.
func (it *numericalIterator) iterate(blocks []Block, start int) (bool, error) {
	if start >= len(it.res.Equations) {
		return true, nil
	}
	var blk Block
	found := false
	for _, b := range blocks {
		if b.Start == start {
			blk = b
			found = true
			break
		}
	}
	if !found {
		return false, newErr(InvariantViolation, "no block starts at equation index %d", start)
	}

	if !it.directed || !it.seeded[blk.Start] {
		bottom := math.Inf(-1)
		if blk.Sign == Nu {
			bottom = math.Inf(1)
		}
		for i := blk.Start; i < blk.End; i++ {
			it.value[i] = bottom
			it.seeded[i] = true
		}
	}

	for {
		if it.opts.Cancel != nil && it.opts.Cancel() {
			return false, newErr(Unbounded, "numerical iteration cancelled")
		}

		before := snapshot(it.value[blk.Start:])

		if _, err := it.iterate(blocks, blk.End); err != nil {
			return false, err
		}

		previous := snapshot(it.value[blk.Start:blk.End])
		for {
			for i := blk.Start; i < blk.End; i++ {
				v, err := it.eval(it.res.Equations[i].RHS)
				if err != nil {
					return false, err
				}
				it.value[i] = v
			}
			it.iteration++
			if it.opts.Trace != nil {
				it.opts.Trace(TraceEvent{
					Phase:     "numerical",
					Message:   fmt.Sprintf("block [%d,%d)", blk.Start, blk.End),
					Iteration: it.iteration,
				})
			}
			if it.sameWithinThreshold(it.value[blk.Start:blk.End], previous) {
				break
			}
			copy(previous, it.value[blk.Start:blk.End])
		}

		if it.sameWithinThreshold(it.value[blk.Start:], before) {
			return true, nil
		}
	}
}

// snapshot copies s into a fresh slice, for before/after comparisons across
// an outer Kleene round.
func snapshot(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}

// eval evaluates a (possibly unsolved) PRES/RES expression to its extended
// real denotation under the current value vector (§3.2, §4.G), via the
// shared evalExpr walker: a Var resolves against the value vector, or to
// bottom if it names a state Highway evicted before it was ever emitted.
func (it *numericalIterator) eval(e Expr) (float64, error) {
	return evalExpr(e, it.oracle, func(name string) (float64, bool) {
		idx, ok := it.index[name]
		if !ok {
			return math.Inf(-1), true
		}
		return it.value[idx], true
	})
}

// EvaluateGround reduces a closed PRES/RES expression — one containing no
// Var reference, such as the Symbolic half of a Solution once the Gauss
// driver has fully back-substituted it — to its extended-real
// denotation, using the same evaluator the numerical driver runs per
// equation. Useful for diagnostics and for comparing a Symbolic solution
// against a Numeric one without running a full numerical solve.
func EvaluateGround(e Expr, oracle DataOracle) (float64, error) {
	return evalExpr(e, oracle, func(string) (float64, bool) { return 0, false })
}

// evalExpr is the evaluator of §4.G's "eval" function, parameterised
// over how a Var resolves to a value: the numerical driver's Kleene
// iteration looks one up in its value vector, EvaluateGround rejects any
// Var outright. ConstMul's k == 0 case is checked before the recursive
// descent into E, so that a zero-coefficient term never forces
// evaluation of an otherwise-undefined or divergent subexpression.
func evalExpr(e Expr, oracle DataOracle, lookup func(name string) (float64, bool)) (float64, error) {
	switch n := e.(type) {
	case Data:
		if n.D.Sort() == BoolSort {
			tb, err := oracle.EvaluateBool(n.D)
			if err != nil {
				return 0, wrapErr(OracleFailure, err, "evaluating %s", n.D)
			}
			if tb == Unknown {
				return 0, newErr(Undecidable, "cannot evaluate %s to a boolean", n.D)
			}
			return boolToReal(tb == True), nil
		}
		v, err := oracle.EvaluateReal(n.D)
		if err != nil {
			return 0, wrapErr(OracleFailure, err, "evaluating %s", n.D)
		}
		return v, nil

	case Var:
		if v, ok := lookup(n.Name); ok {
			return v, nil
		}
		return 0, newErr(InvalidReference, "no value bound for %s", n.Name)

	case Minus:
		v, err := evalExpr(n.E, oracle, lookup)
		if err != nil {
			return 0, err
		}
		return extNeg(v), nil

	case And:
		l, err := evalExpr(n.L, oracle, lookup)
		if err != nil {
			return 0, err
		}
		r, err := evalExpr(n.R, oracle, lookup)
		if err != nil {
			return 0, err
		}
		return extMin(l, r), nil

	case Or:
		l, err := evalExpr(n.L, oracle, lookup)
		if err != nil {
			return 0, err
		}
		r, err := evalExpr(n.R, oracle, lookup)
		if err != nil {
			return 0, err
		}
		return extMax(l, r), nil

	case Imp:
		l, err := evalExpr(n.L, oracle, lookup)
		if err != nil {
			return 0, err
		}
		r, err := evalExpr(n.R, oracle, lookup)
		if err != nil {
			return 0, err
		}
		return extImp(l, r), nil

	case Plus:
		l, err := evalExpr(n.L, oracle, lookup)
		if err != nil {
			return 0, err
		}
		r, err := evalExpr(n.R, oracle, lookup)
		if err != nil {
			return 0, err
		}
		return extPlus(l, r), nil

	case ConstMul:
		k, err := oracle.EvaluateReal(n.K)
		if err != nil {
			return 0, wrapErr(OracleFailure, err, "evaluating coefficient %s", n.K)
		}
		if k == 0 {
			return 0, nil
		}
		v, err := evalExpr(n.E, oracle, lookup)
		if err != nil {
			return 0, err
		}
		return extScale(k, v), nil

	case ConstMulAlt:
		k, err := oracle.EvaluateReal(n.K)
		if err != nil {
			return 0, wrapErr(OracleFailure, err, "evaluating coefficient %s", n.K)
		}
		if k == 0 {
			return 0, nil
		}
		v, err := evalExpr(n.E, oracle, lookup)
		if err != nil {
			return 0, err
		}
		return extScale(k, v), nil

	case Infimum, Supremum, Sum:
		return 0, newErr(Unsupported, "quantifier %s survived into the numerical evaluator", e)

	case EqInf:
		v, err := evalExpr(n.E, oracle, lookup)
		if err != nil {
			return 0, err
		}
		return boolToReal(isPlusInf(v)), nil

	case EqNInf:
		// Dual of EqInf: true for everything except +infinity, so a
		// finite value (and -infinity itself) both satisfy it.
		v, err := evalExpr(n.E, oracle, lookup)
		if err != nil {
			return 0, err
		}
		return boolToReal(!isPlusInf(v)), nil

	case CondSm:
		c, err := evalExpr(n.C, oracle, lookup)
		if err != nil {
			return 0, err
		}
		switch {
		case c < 0:
			return evalExpr(n.T, oracle, lookup)
		case c > 0:
			return evalExpr(n.E, oracle, lookup)
		default:
			t, err := evalExpr(n.T, oracle, lookup)
			if err != nil {
				return 0, err
			}
			e2, err := evalExpr(n.E, oracle, lookup)
			if err != nil {
				return 0, err
			}
			return extMax(t, e2), nil
		}

	case CondEq:
		c, err := evalExpr(n.C, oracle, lookup)
		if err != nil {
			return 0, err
		}
		if c > 0 {
			return evalExpr(n.E, oracle, lookup)
		}
		return evalExpr(n.T, oracle, lookup)

	default:
		return 0, newErr(InvariantViolation, "unknown expression variant %T", e)
	}
}
