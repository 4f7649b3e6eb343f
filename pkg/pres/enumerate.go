package pres

// EnumerateQuantifiers implements the quantifier enumerator of §4.B: it
// replaces Infimum(xs, body)/Supremum(xs, body)/Sum(xs, body) by the
// left-associative fold of body over every ground value of each bound
// variable's domain, operating bound-variable by bound-variable. A
// variable whose sort is not enumerable is left quantified in place while
// the remaining variables are still enumerated — the enumerator is the
// sole mechanism by which finite-domain quantifiers disappear before
// solving (§4.C relies on this to produce a quantifier-free RES).
func EnumerateQuantifiers(e Expr, oracle DataOracle) (Expr, error) {
	switch n := e.(type) {
	case Data, Var:
		return e, nil

	case Minus:
		inner, err := EnumerateQuantifiers(n.E, oracle)
		if err != nil {
			return nil, err
		}
		return Minus{E: inner}, nil

	case And:
		return enumBinary(n.L, n.R, oracle, func(l, r Expr) Expr { return And{L: l, R: r} })
	case Or:
		return enumBinary(n.L, n.R, oracle, func(l, r Expr) Expr { return Or{L: l, R: r} })
	case Imp:
		return enumBinary(n.L, n.R, oracle, func(l, r Expr) Expr { return Imp{L: l, R: r} })
	case Plus:
		return enumBinary(n.L, n.R, oracle, func(l, r Expr) Expr { return Plus{L: l, R: r} })

	case ConstMul:
		inner, err := EnumerateQuantifiers(n.E, oracle)
		if err != nil {
			return nil, err
		}
		return ConstMul{K: n.K, E: inner}, nil

	case ConstMulAlt:
		inner, err := EnumerateQuantifiers(n.E, oracle)
		if err != nil {
			return nil, err
		}
		return ConstMulAlt{E: inner, K: n.K}, nil

	case Infimum:
		return enumerateQuantifier(n.Vars, n.Body, oracle, infimumKind)
	case Supremum:
		return enumerateQuantifier(n.Vars, n.Body, oracle, supremumKind)
	case Sum:
		return enumerateQuantifier(n.Vars, n.Body, oracle, sumKind)

	case EqInf:
		inner, err := EnumerateQuantifiers(n.E, oracle)
		if err != nil {
			return nil, err
		}
		return EqInf{E: inner}, nil

	case EqNInf:
		inner, err := EnumerateQuantifiers(n.E, oracle)
		if err != nil {
			return nil, err
		}
		return EqNInf{E: inner}, nil

	case CondSm:
		c, t, el, err := enumTernary(n.C, n.T, n.E, oracle)
		if err != nil {
			return nil, err
		}
		return CondSm{C: c, T: t, E: el}, nil

	case CondEq:
		c, t, el, err := enumTernary(n.C, n.T, n.E, oracle)
		if err != nil {
			return nil, err
		}
		return CondEq{C: c, T: t, E: el}, nil

	default:
		return nil, newErr(InvariantViolation, "unknown expression variant %T", e)
	}
}

func enumBinary(l, r Expr, oracle DataOracle, rebuild func(l, r Expr) Expr) (Expr, error) {
	nl, err := EnumerateQuantifiers(l, oracle)
	if err != nil {
		return nil, err
	}
	nr, err := EnumerateQuantifiers(r, oracle)
	if err != nil {
		return nil, err
	}
	return rebuild(nl, nr), nil
}

func enumTernary(c, t, e Expr, oracle DataOracle) (Expr, Expr, Expr, error) {
	nc, err := EnumerateQuantifiers(c, oracle)
	if err != nil {
		return nil, nil, nil, err
	}
	nt, err := EnumerateQuantifiers(t, oracle)
	if err != nil {
		return nil, nil, nil, err
	}
	ne, err := EnumerateQuantifiers(e, oracle)
	if err != nil {
		return nil, nil, nil, err
	}
	return nc, nt, ne, nil
}

// quantifierKind bundles the operator used to combine per-value instances
// of a quantifier body with the constructor used to re-quantify a
// variable whose sort turned out not to be enumerable.
type quantifierKind struct {
	fold       func(acc, next Expr) Expr
	requantify func(vars []DataVar, body Expr) Expr
}

var (
	infimumKind = quantifierKind{
		fold:       func(acc, next Expr) Expr { return And{L: acc, R: next} },
		requantify: func(vars []DataVar, body Expr) Expr { return Infimum{Vars: vars, Body: body} },
	}
	supremumKind = quantifierKind{
		fold:       func(acc, next Expr) Expr { return Or{L: acc, R: next} },
		requantify: func(vars []DataVar, body Expr) Expr { return Supremum{Vars: vars, Body: body} },
	}
	sumKind = quantifierKind{
		fold:       func(acc, next Expr) Expr { return Plus{L: acc, R: next} },
		requantify: func(vars []DataVar, body Expr) Expr { return Sum{Vars: vars, Body: body} },
	}
)

// enumerateQuantifier expands vars one at a time, left to right. For each
// variable it either enumerates the variable's domain and folds, or, if
// the sort is not enumerable, leaves that one variable quantified while
// continuing to enumerate the rest (§4.B).
func enumerateQuantifier(vars []DataVar, body Expr, oracle DataOracle, kind quantifierKind) (Expr, error) {
	if len(vars) == 0 {
		return EnumerateQuantifiers(body, oracle)
	}

	x, rest := vars[0], vars[1:]
	domain, err := oracle.Enumerate(x.SortName)
	if err != nil {
		if _, notEnum := err.(*ErrNotEnumerable); notEnum {
			// Leave x quantified, still enumerate the remaining variables
			// inside its body.
			innerBody, ierr := enumerateQuantifier(rest, body, oracle, kind)
			if ierr != nil {
				return nil, ierr
			}
			return kind.requantify([]DataVar{x}, innerBody), nil
		}
		return nil, wrapErr(OracleFailure, err, "enumerating sort %s", x.SortName.Name())
	}

	if domain.Len() == 0 {
		return nil, newErr(InvariantViolation, "empty enumeration for quantified variable %s", x.Name)
	}

	var acc Expr
	for i := 0; i < domain.Len(); i++ {
		val := domain.At(i)
		instBody, err := SubstituteData(body, DataEnv{x.Name: val}, oracle)
		if err != nil {
			return nil, err
		}
		folded, err := enumerateQuantifier(rest, instBody, oracle, kind)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			acc = folded
		} else {
			acc = kind.fold(acc, folded)
		}
	}
	return acc, nil
}
