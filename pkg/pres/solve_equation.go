package pres

// SolveEquation implements the single-equation solver of §4.E: given the
// fixed-point sign of the equation being eliminated, the name of the
// variable X it defines, and a normalized right-hand side (§4.D), it
// computes a closed-form solution for X containing no occurrence of X.
//
// The outer conditionals are peeled off structurally per the table in
// §4.E; once both conditionals and any And(mu)/Or(nu) meet/join layers
// are exhausted, what remains is a single SNF clause handed to the linear
// solver.
func SolveEquation(sign Sign, varName string, rhs Expr, oracle DataOracle) (Expr, error) {
	if cs, ok := rhs.(CondSm); ok {
		if sign == Mu {
			st, err := SolveEquation(sign, varName, cs.T, oracle)
			if err != nil {
				return nil, err
			}
			sOrTE, err := SolveEquation(sign, varName, Or{L: cs.T, R: cs.E}, oracle)
			if err != nil {
				return nil, err
			}
			return CondSm{C: SubstituteVar(cs.C, varName, st), T: st, E: sOrTE}, nil
		}
		st, err := SolveEquation(sign, varName, cs.T, oracle)
		if err != nil {
			return nil, err
		}
		se, err := SolveEquation(sign, varName, cs.E, oracle)
		if err != nil {
			return nil, err
		}
		return CondSm{C: SubstituteVar(cs.C, varName, Or{L: st, R: se}), T: st, E: se}, nil
	}

	if ce, ok := rhs.(CondEq); ok {
		if sign == Mu {
			st, err := SolveEquation(sign, varName, ce.T, oracle)
			if err != nil {
				return nil, err
			}
			se, err := SolveEquation(sign, varName, ce.E, oracle)
			if err != nil {
				return nil, err
			}
			return CondEq{C: SubstituteVar(ce.C, varName, And{L: st, R: se}), T: st, E: se}, nil
		}
		se, err := SolveEquation(sign, varName, ce.E, oracle)
		if err != nil {
			return nil, err
		}
		sAndTE, err := SolveEquation(sign, varName, And{L: ce.T, R: ce.E}, oracle)
		if err != nil {
			return nil, err
		}
		return CondEq{C: SubstituteVar(ce.C, varName, se), T: sAndTE, E: se}, nil
	}

	if and, ok := rhs.(And); ok && sign == Mu {
		l, err := SolveEquation(sign, varName, and.L, oracle)
		if err != nil {
			return nil, err
		}
		r, err := SolveEquation(sign, varName, and.R, oracle)
		if err != nil {
			return nil, err
		}
		return And{L: l, R: r}, nil
	}

	if or, ok := rhs.(Or); ok && sign == Nu {
		l, err := SolveEquation(sign, varName, or.L, oracle)
		if err != nil {
			return nil, err
		}
		r, err := SolveEquation(sign, varName, or.R, oracle)
		if err != nil {
			return nil, err
		}
		return Or{L: l, R: r}, nil
	}

	return solveLinear(sign, varName, rhs, oracle)
}

// line is one disjunct/conjunct of a clause handed to the linear solver,
// decomposed into its gradient (the coefficient of X), whether it carries
// an eqninf(X) term, and its intercept (everything else, never mentioning
// X) — §4.E "each disjunct is a single line in X".
type line struct {
	gradient   DataExpr
	eqNInf     bool
	intercept  Expr
}

// isVarRef reports whether e is exactly the zero-argument RES-level
// reference to name.
func isVarRef(e Expr, name string) bool {
	v, ok := e.(Var)
	return ok && v.Name == name && len(v.Args) == 0
}

// extractLine decomposes one clause leaf into cj*X + c'j*eqninf(X) + fj,
// by flattening its additive structure and sorting each addend into the
// gradient, the eqninf flag, or the intercept.
func extractLine(e Expr, varName string, oracle DataOracle) (line, error) {
	terms := flattenPlus(e)
	var gradient DataExpr
	eqNInf := false
	var interceptTerms []Expr

	accumulate := func(k DataExpr) error {
		if gradient == nil {
			gradient = k
			return nil
		}
		sum, err := oracle.Add(gradient, k)
		if err != nil {
			return wrapErr(OracleFailure, err, "combining coefficients of %s", varName)
		}
		gradient = sum
		return nil
	}

	for _, t := range terms {
		switch v := t.(type) {
		case Var:
			if isVarRef(v, varName) {
				if err := accumulate(oracle.RealConstant(1, 1)); err != nil {
					return line{}, err
				}
				continue
			}
			interceptTerms = append(interceptTerms, v)

		case ConstMul:
			if isVarRef(v.E, varName) {
				if err := accumulate(v.K); err != nil {
					return line{}, err
				}
				continue
			}
			interceptTerms = append(interceptTerms, v)

		case ConstMulAlt:
			if isVarRef(v.E, varName) {
				if err := accumulate(v.K); err != nil {
					return line{}, err
				}
				continue
			}
			interceptTerms = append(interceptTerms, v)

		case EqNInf:
			if isVarRef(v.E, varName) {
				eqNInf = true
				continue
			}
			interceptTerms = append(interceptTerms, v)

		case Minus:
			if isVarRef(v.E, varName) {
				return line{}, newErr(InvariantViolation, "variable %s occurs negated, violating monotonicity", varName)
			}
			interceptTerms = append(interceptTerms, v)

		case And, Or, CondSm, CondEq:
			return line{}, newErr(InvariantViolation, "non-monomial term %s survived into the linear solver", t)

		default:
			interceptTerms = append(interceptTerms, v)
		}
	}

	if gradient == nil {
		gradient = oracle.RealConstant(0, 1)
	}
	var intercept Expr
	if len(interceptTerms) == 0 {
		intercept = Data{oracle.RealConstant(0, 1)}
	} else {
		intercept = foldPlus(interceptTerms)
	}
	return line{gradient: gradient, eqNInf: eqNInf, intercept: intercept}, nil
}

// scaleExpr builds k*e, short-circuiting the two constants the ConstMul
// invariant (K > 0) would otherwise forbid.
func scaleExpr(k DataExpr, e Expr, oracle DataOracle) (Expr, error) {
	isZero, err := oracle.IsZero(k)
	if err != nil {
		return nil, wrapErr(OracleFailure, err, "checking scale factor")
	}
	if isZero == True {
		return Data{oracle.RealConstant(0, 1)}, nil
	}
	isOne, err := oracle.IsOne(k)
	if err != nil {
		return nil, wrapErr(OracleFailure, err, "checking scale factor")
	}
	if isOne == True {
		return e, nil
	}
	return ConstMul{K: k, E: e}, nil
}

// solveLinear implements the linear solver of §4.E: the clause is
// flattened into lines, each line classified shallow/steep/flat by
// comparing its gradient to 1, and the closed-form solution assembled
// from the flat lines' meet/join, the shallow lines' contribution to U,
// and the steep lines' contribution to cond1.
func solveLinear(sign Sign, varName string, clause Expr, oracle DataOracle) (Expr, error) {
	var leaves []Expr
	if sign == Mu {
		leaves = flattenOr(clause)
	} else {
		leaves = flattenAnd(clause)
	}

	lines := make([]line, len(leaves))
	for i, leaf := range leaves {
		ln, err := extractLine(leaf, varName, oracle)
		if err != nil {
			return nil, err
		}
		lines[i] = ln
	}

	var flatIdx, shallowIdx, steepIdx []int
	for i, ln := range lines {
		isZero, err := oracle.IsZero(ln.gradient)
		if err != nil {
			return nil, wrapErr(OracleFailure, err, "checking gradient of %s", varName)
		}
		if isZero == True {
			flatIdx = append(flatIdx, i)
			continue
		}
		cmp, err := oracle.CompareLess(ln.gradient, 1)
		if err != nil {
			return nil, wrapErr(OracleFailure, err, "comparing gradient of %s to 1", varName)
		}
		if cmp == Unknown {
			return nil, newErr(Undecidable, "cannot compare gradient of %s to 1", varName)
		}
		if cmp == True {
			shallowIdx = append(shallowIdx, i)
		} else {
			steepIdx = append(steepIdx, i)
		}
	}

	combine := foldOr
	falseIdentity := Expr(Data{oracle.BoolConstant(false)})
	trueIdentity := Expr(Data{oracle.BoolConstant(true)})
	identity := falseIdentity
	if sign == Nu {
		combine = foldAnd
		identity = trueIdentity
	}

	pick := func(idx []int, get func(line) Expr) Expr {
		if len(idx) == 0 {
			return identity
		}
		items := make([]Expr, len(idx))
		for k, i := range idx {
			items[k] = get(lines[i])
		}
		return combine(items)
	}

	m := pick(flatIdx, func(ln line) Expr { return ln.intercept })

	uTerms := []Expr{m}
	for _, i := range shallowIdx {
		ln := lines[i]
		negGradient, err := oracle.Negate(ln.gradient)
		if err != nil {
			return nil, wrapErr(OracleFailure, err, "negating gradient")
		}
		oneMinusC, err := oracle.Add(oracle.RealConstant(1, 1), negGradient)
		if err != nil {
			return nil, wrapErr(OracleFailure, err, "computing 1 - gradient")
		}
		inv, err := oracle.Invert(oneMinusC)
		if err != nil {
			return nil, wrapErr(OracleFailure, err, "inverting 1 - gradient")
		}
		scaled, err := scaleExpr(inv, ln.intercept, oracle)
		if err != nil {
			return nil, err
		}
		uTerms = append(uTerms, scaled)
	}
	U := combine(uTerms)

	cond1 := identity
	if len(steepIdx) > 0 {
		items := make([]Expr, len(steepIdx))
		for k, i := range steepIdx {
			ln := lines[i]
			negOne, err := oracle.Negate(oracle.RealConstant(1, 1))
			if err != nil {
				return nil, wrapErr(OracleFailure, err, "negating 1")
			}
			cMinus1, err := oracle.Add(ln.gradient, negOne)
			if err != nil {
				return nil, wrapErr(OracleFailure, err, "computing gradient - 1")
			}
			scaledU, err := scaleExpr(cMinus1, U, oracle)
			if err != nil {
				return nil, err
			}
			items[k] = Plus{L: ln.intercept, R: scaledU}
		}
		cond1 = combine(items)
	}

	cond2 := false
	for _, ln := range lines {
		if ln.eqNInf {
			cond2 = true
			break
		}
	}

	allItems := make([]Expr, len(lines))
	for i, ln := range lines {
		allItems[i] = ln.intercept
	}
	fAll := combine(allItems)

	if sign == Mu {
		gate := Or{L: cond1, R: Data{oracle.BoolConstant(cond2)}}
		inner := CondEq{C: gate, T: U, E: trueIdentity}
		mid := CondEq{C: EqNInf{E: m}, T: falseIdentity, E: inner}
		return CondEq{C: EqInf{E: fAll}, T: mid, E: trueIdentity}, nil
	}

	inner := CondSm{C: cond1, T: falseIdentity, E: U}
	return CondEq{C: EqInf{E: fAll}, T: inner, E: trueIdentity}, nil
}
