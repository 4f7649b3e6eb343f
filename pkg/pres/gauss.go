package pres

// SolveGauss implements the Gauss driver of §4.F: it orders equations in
// reverse, normalizes and solves each one via §4.D/§4.E, and substitutes
// the solution back into every equation that precedes it. The value
// returned is the closed-form solution of the (possibly synthetic) first
// equation's variable, i.e. of the initial instantiation.
func SolveGauss(res *RES, oracle DataOracle, opts *Options) (Expr, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	eqs, initVar, err := ensureLeadingInitEquation(res, oracle)
	if err != nil {
		return nil, err
	}

	for i := len(eqs) - 1; i >= 0; i-- {
		if opts.Cancel != nil && opts.Cancel() {
			return nil, newErr(Unbounded, "Gauss elimination cancelled")
		}
		if opts.Trace != nil {
			opts.Trace(TraceEvent{Phase: "gauss", Message: "eliminating " + eqs[i].Name})
		}

		conjunctive := eqs[i].Sign == Mu
		normalized, err := Normalize(eqs[i].RHS, conjunctive, oracle)
		if err != nil {
			return nil, err
		}

		solution, err := SolveEquation(eqs[i].Sign, eqs[i].Name, normalized, oracle)
		if err != nil {
			// Undecidable is surfaced as-is; SolvePRES (§6.1) is the layer
			// that knows about Options.FallbackToNumerical and decides
			// whether to retry via SolveNumerical, since only it can
			// produce the Numeric half of the Solution sum type.
			return nil, err
		}
		eqs[i].RHS = solution

		for j := 0; j < i; j++ {
			eqs[j].RHS = SubstituteVar(eqs[j].RHS, eqs[i].Name, solution)
		}
	}

	for _, eq := range eqs {
		if eq.Name == initVar {
			return eq.RHS, nil
		}
	}
	return nil, newErr(InvariantViolation, "initial variable %q vanished during elimination", initVar)
}

// ensureLeadingInitEquation guarantees the first equation defines the RES's
// initial variable (§4.F step 1): if it does not, a fresh nu-equation
// "nu z = initVar" is prepended and its name becomes the variable the
// driver ultimately reports the solution for.
func ensureLeadingInitEquation(res *RES, oracle DataOracle) ([]Equation, string, error) {
	if len(res.Equations) == 0 {
		return nil, "", newErr(InvariantViolation, "RES has no equations")
	}
	if _, ok := res.LookupEquation(res.InitVar); !ok {
		return nil, "", newErr(InvalidReference, "initial variable %q is not defined", res.InitVar)
	}

	eqs := make([]Equation, len(res.Equations))
	copy(eqs, res.Equations)

	if eqs[0].Name == res.InitVar {
		return eqs, res.InitVar, nil
	}

	fresh := Equation{
		Sign: Nu,
		Name: gaussSyntheticName,
		RHS:  Var{Name: res.InitVar},
	}
	eqs = append([]Equation{fresh}, eqs...)
	return eqs, gaussSyntheticName, nil
}

// gaussSyntheticName names the synthetic leading equation ensureLeadingInitEquation
// prepends; chosen to be vanishingly unlikely to collide with a name the
// instantiator mints (those are always "X<n>").
const gaussSyntheticName = "z#init"
