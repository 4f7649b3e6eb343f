package pres

// Simplify implements the simplifying rewriter of §4.A: a shallow
// algebraic simplifier applied exhaustively bottom-up, folding constants,
// dropping units and pushing negation inward. It preserves denotation
// under any interpretation satisfying §3.2 and must not raise on
// well-formed input; a broken structural invariant (e.g. ConstMul with a
// negative factor) is reported as InvariantViolation, while a zero factor
// is folded to 0.
func Simplify(e Expr, oracle DataOracle) (Expr, error) {
	switch n := e.(type) {
	case Data:
		return Data{n.D}, nil

	case Var:
		return n, nil

	case Minus:
		inner, err := Simplify(n.E, oracle)
		if err != nil {
			return nil, err
		}
		return simplifyMinus(inner, oracle)

	case And:
		l, err := Simplify(n.L, oracle)
		if err != nil {
			return nil, err
		}
		r, err := Simplify(n.R, oracle)
		if err != nil {
			return nil, err
		}
		return simplifyAnd(l, r, oracle)

	case Or:
		l, err := Simplify(n.L, oracle)
		if err != nil {
			return nil, err
		}
		r, err := Simplify(n.R, oracle)
		if err != nil {
			return nil, err
		}
		return simplifyOr(l, r, oracle)

	case Imp:
		l, err := Simplify(n.L, oracle)
		if err != nil {
			return nil, err
		}
		r, err := Simplify(n.R, oracle)
		if err != nil {
			return nil, err
		}
		// Imp(a, b) = Or(Minus(a), b) (§4.D), folded here too so the
		// simplifier alone already removes Imp before normalisation.
		negL, err := simplifyMinus(l, oracle)
		if err != nil {
			return nil, err
		}
		return simplifyOr(negL, r, oracle)

	case Plus:
		l, err := Simplify(n.L, oracle)
		if err != nil {
			return nil, err
		}
		r, err := Simplify(n.R, oracle)
		if err != nil {
			return nil, err
		}
		return simplifyPlus(l, r, oracle)

	case ConstMul:
		if isNonPositiveConst(n.K, oracle) {
			return nil, newErr(InvariantViolation, "ConstMul with non-positive factor %s", n.K)
		}
		inner, err := Simplify(n.E, oracle)
		if err != nil {
			return nil, err
		}
		return simplifyConstMul(n.K, inner, oracle)

	case ConstMulAlt:
		if isNonPositiveConst(n.K, oracle) {
			return nil, newErr(InvariantViolation, "ConstMul with non-positive factor %s", n.K)
		}
		inner, err := Simplify(n.E, oracle)
		if err != nil {
			return nil, err
		}
		return simplifyConstMul(n.K, inner, oracle)

	case Infimum:
		body, err := Simplify(n.Body, oracle)
		if err != nil {
			return nil, err
		}
		return Infimum{Vars: n.Vars, Body: body}, nil

	case Supremum:
		body, err := Simplify(n.Body, oracle)
		if err != nil {
			return nil, err
		}
		return Supremum{Vars: n.Vars, Body: body}, nil

	case Sum:
		body, err := Simplify(n.Body, oracle)
		if err != nil {
			return nil, err
		}
		return Sum{Vars: n.Vars, Body: body}, nil

	case EqInf:
		inner, err := Simplify(n.E, oracle)
		if err != nil {
			return nil, err
		}
		return simplifyEqInf(inner, oracle)

	case EqNInf:
		inner, err := Simplify(n.E, oracle)
		if err != nil {
			return nil, err
		}
		return simplifyEqNInf(inner, oracle)

	case CondSm:
		c, err := Simplify(n.C, oracle)
		if err != nil {
			return nil, err
		}
		t, err := Simplify(n.T, oracle)
		if err != nil {
			return nil, err
		}
		el, err := Simplify(n.E, oracle)
		if err != nil {
			return nil, err
		}
		if b, ok := asBoolConst(c, oracle); ok {
			if !b {
				return t, nil
			}
			return simplifyOr(t, el, oracle)
		}
		return CondSm{C: c, T: t, E: el}, nil

	case CondEq:
		c, err := Simplify(n.C, oracle)
		if err != nil {
			return nil, err
		}
		t, err := Simplify(n.T, oracle)
		if err != nil {
			return nil, err
		}
		el, err := Simplify(n.E, oracle)
		if err != nil {
			return nil, err
		}
		if b, ok := asBoolConst(c, oracle); ok {
			if !b {
				return simplifyOr(t, el, oracle)
			}
			return t, nil
		}
		return CondEq{C: c, T: t, E: el}, nil

	default:
		return nil, newErr(InvariantViolation, "unknown expression variant %T", e)
	}
}

// asBoolConst reports whether e denotes a closed boolean literal, and its
// value, using the oracle's evaluate_bool for Data nodes and the direct
// structural constants for true/false produced by the simplifier itself.
func asBoolConst(e Expr, oracle DataOracle) (bool, bool) {
	d, ok := e.(Data)
	if !ok || d.D.Sort() != BoolSort {
		return false, false
	}
	tb, err := oracle.EvaluateBool(d.D)
	if err != nil || tb == Unknown {
		return false, false
	}
	return tb == True, true
}

func boolExpr(oracle DataOracle, value bool) Expr { return Data{oracle.BoolConstant(value)} }

func isNonPositiveConst(k DataExpr, oracle DataOracle) bool {
	if k.Sort() != RealSort {
		return false
	}
	zero, err := oracle.IsZero(k)
	if err == nil && zero == True {
		return false // zero is handled by the ConstMul(0,e) rule, not an invariant violation
	}
	less, err := oracle.CompareLess(k, 0)
	return err == nil && less == True
}

func isRealZero(d DataExpr, oracle DataOracle) bool {
	if d.Sort() != RealSort {
		return false
	}
	tb, err := oracle.IsZero(d)
	return err == nil && tb == True
}

func isRealOne(d DataExpr, oracle DataOracle) bool {
	if d.Sort() != RealSort {
		return false
	}
	tb, err := oracle.IsOne(d)
	return err == nil && tb == True
}

func simplifyMinus(e Expr, oracle DataOracle) (Expr, error) {
	switch n := e.(type) {
	case Minus:
		return n.E, nil // Minus(Minus(e)) -> e
	case Data:
		if n.D.Sort() == BoolSort {
			if b, ok := asBoolConst(n, oracle); ok {
				return boolExpr(oracle, !b), nil
			}
		}
		neg, err := oracle.Negate(n.D)
		if err != nil {
			return nil, wrapErr(OracleFailure, err, "negating %s", n.D)
		}
		return Data{neg}, nil
	default:
		return Minus{E: e}, nil // after normalisation, Minus only survives on variables (§3.2 invariant)
	}
}

func simplifyAnd(l, r Expr, oracle DataOracle) (Expr, error) {
	if b, ok := asBoolConst(l, oracle); ok {
		if b {
			return r, nil
		}
		return boolExpr(oracle, false), nil
	}
	if b, ok := asBoolConst(r, oracle); ok {
		if b {
			return l, nil
		}
		return boolExpr(oracle, false), nil
	}
	return And{L: l, R: r}, nil
}

func simplifyOr(l, r Expr, oracle DataOracle) (Expr, error) {
	if b, ok := asBoolConst(l, oracle); ok {
		if b {
			return boolExpr(oracle, true), nil
		}
		return r, nil
	}
	if b, ok := asBoolConst(r, oracle); ok {
		if b {
			return boolExpr(oracle, true), nil
		}
		return l, nil
	}
	return Or{L: l, R: r}, nil
}

func simplifyPlus(l, r Expr, oracle DataOracle) (Expr, error) {
	if d, ok := l.(Data); ok && d.D.Sort() == RealSort && isRealZero(d.D, oracle) {
		return r, nil
	}
	if d, ok := r.(Data); ok && d.D.Sort() == RealSort && isRealZero(d.D, oracle) {
		return l, nil
	}
	if b, ok := asBoolConst(l, oracle); ok && b {
		return boolExpr(oracle, true), nil
	}
	// Plus(false, e) is preserved (binds +Inf leftward per §4.H tie-break;
	// it is not equivalent to e, since (-Inf)+(+Inf) = +Inf != -Inf).
	return Plus{L: l, R: r}, nil
}

func simplifyConstMul(k DataExpr, e Expr, oracle DataOracle) (Expr, error) {
	if isRealZero(k, oracle) {
		return Data{oracle.RealConstant(0, 1)}, nil
	}
	if isRealOne(k, oracle) {
		return e, nil
	}
	switch e.(type) {
	case EqInf, EqNInf:
		return e, nil
	case Data:
		if b, ok := asBoolConst(e, oracle); ok {
			return boolExpr(oracle, b), nil
		}
	}
	return ConstMul{K: k, E: e}, nil
}

func simplifyEqInf(e Expr, oracle DataOracle) (Expr, error) {
	if d, ok := e.(Data); ok {
		if d.D.Sort() == RealSort {
			return boolExpr(oracle, false), nil
		}
		if b, ok := asBoolConst(e, oracle); ok {
			return boolExpr(oracle, b), nil
		}
	}
	return EqInf{E: e}, nil
}

func simplifyEqNInf(e Expr, oracle DataOracle) (Expr, error) {
	if d, ok := e.(Data); ok {
		if d.D.Sort() == RealSort {
			// Symmetric with optimized_eqinf: a finite real data term is
			// vacuously "not equal to +infinity," so EqNInf folds to true
			// here, not false. See DESIGN.md.
			return boolExpr(oracle, true), nil
		}
		if b, ok := asBoolConst(e, oracle); ok {
			return boolExpr(oracle, !b), nil
		}
	}
	return EqNInf{E: e}, nil
}
