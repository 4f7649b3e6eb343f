package pres

import (
	"errors"
	"strconv"
)

// SolutionKind discriminates the two shapes a Solution can take (§6.1):
// the Gauss driver returns a closed-form data/propositional expression,
// the numerical driver returns a converged double.
type SolutionKind int

const (
	// Symbolic means Expr holds the closed-form solution built by
	// SolveGauss.
	Symbolic SolutionKind = iota
	// Numeric means Value holds the converged approximation built by
	// SolveNumerical/NumericalDirected.
	Numeric
)

// String renders the solution kind.
func (k SolutionKind) String() string {
	if k == Numeric {
		return "Numeric"
	}
	return "Symbolic"
}

// Solution is the result of SolvePRES (§6.1): a tagged union over a
// symbolic expression and a numeric approximation, mirroring the small
// discriminated-struct shape SolveError already uses rather than a Go
// interface with two empty marker implementations.
type Solution struct {
	Kind  SolutionKind
	Expr  Expr
	Value float64
}

// String renders whichever half of the union is populated.
func (s Solution) String() string {
	if s.Kind == Numeric {
		return strconv.FormatFloat(s.Value, 'g', -1, 64)
	}
	return s.Expr.String()
}

// SolvePRES is the top-level entry point (§6.1): it instantiates p into a
// ground RES, then dispatches to the driver opts.Algorithm selects. For
// GaussElimination, an Undecidable result from SolveGauss is retried via
// the numerical driver exactly when opts.FallbackToNumerical is set — an
// explicit, caller-visible opt-in (§7, §9), never silent.
func SolvePRES(p *PRES, oracle DataOracle, opts *Options) (Solution, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return Solution{}, err
	}
	if err := oracle.Configure(opts.rewriteConfig()); err != nil {
		return Solution{}, wrapErr(OracleFailure, err, "configuring oracle")
	}

	res, err := Instantiate(p, oracle, opts)
	if err != nil {
		return Solution{}, err
	}

	if opts.Algorithm == Numerical || opts.Algorithm == NumericalDirected {
		v, err := SolveNumerical(res, oracle, opts)
		if err != nil {
			return Solution{}, err
		}
		return Solution{Kind: Numeric, Value: v}, nil
	}

	solution, err := SolveGauss(res, oracle, opts)
	if err == nil {
		return Solution{Kind: Symbolic, Expr: solution}, nil
	}

	var solveErr *SolveError
	if !opts.FallbackToNumerical || !errors.As(err, &solveErr) || solveErr.Kind != Undecidable {
		return Solution{}, err
	}

	if opts.Trace != nil {
		opts.Trace(TraceEvent{Phase: "solve", Message: "Gauss driver reported Undecidable, falling back to numerical"})
	}
	v, err := SolveNumerical(res, oracle, opts)
	if err != nil {
		return Solution{}, err
	}
	return Solution{Kind: Numeric, Value: v}, nil
}
