package pres

// SubstituteData replaces every free data variable in e according to env,
// rewriting each resulting data term to normal form through oracle. It is
// the mechanism shared by the quantifier enumerator (§4.B, substituting a
// bound variable's value into its body) and the instantiator (§4.C,
// substituting x̄ -> c̄ into an equation's right-hand side).
//
// SubstituteData never looks inside a DataExpr itself (§9 "Rewriter
// boundary"): each Data leaf and each Var argument is handed to
// oracle.Rewrite along with env, and the oracle is responsible for
// resolving any data variables the term mentions.
func SubstituteData(e Expr, env DataEnv, oracle DataOracle) (Expr, error) {
	switch n := e.(type) {
	case Data:
		d, err := oracle.Rewrite(n.D, env)
		if err != nil {
			return nil, wrapErr(OracleFailure, err, "rewriting %s under substitution", n.D)
		}
		return Data{d}, nil

	case Var:
		args := make([]DataExpr, len(n.Args))
		for i, a := range n.Args {
			d, err := oracle.Rewrite(a, env)
			if err != nil {
				return nil, wrapErr(OracleFailure, err, "rewriting argument %s of %s", a, n.Name)
			}
			args[i] = d
		}
		return Var{Name: n.Name, Args: args}, nil

	case Minus:
		inner, err := SubstituteData(n.E, env, oracle)
		if err != nil {
			return nil, err
		}
		return Minus{E: inner}, nil

	case And:
		l, r, err := substBinary(n.L, n.R, env, oracle)
		if err != nil {
			return nil, err
		}
		return And{L: l, R: r}, nil

	case Or:
		l, r, err := substBinary(n.L, n.R, env, oracle)
		if err != nil {
			return nil, err
		}
		return Or{L: l, R: r}, nil

	case Imp:
		l, r, err := substBinary(n.L, n.R, env, oracle)
		if err != nil {
			return nil, err
		}
		return Imp{L: l, R: r}, nil

	case Plus:
		l, r, err := substBinary(n.L, n.R, env, oracle)
		if err != nil {
			return nil, err
		}
		return Plus{L: l, R: r}, nil

	case ConstMul:
		k, err := oracle.Rewrite(n.K, env)
		if err != nil {
			return nil, wrapErr(OracleFailure, err, "rewriting factor %s", n.K)
		}
		inner, err := SubstituteData(n.E, env, oracle)
		if err != nil {
			return nil, err
		}
		return ConstMul{K: k, E: inner}, nil

	case ConstMulAlt:
		k, err := oracle.Rewrite(n.K, env)
		if err != nil {
			return nil, wrapErr(OracleFailure, err, "rewriting factor %s", n.K)
		}
		inner, err := SubstituteData(n.E, env, oracle)
		if err != nil {
			return nil, err
		}
		return ConstMulAlt{E: inner, K: k}, nil

	case Infimum:
		body, err := SubstituteData(n.Body, shadow(env, n.Vars), oracle)
		if err != nil {
			return nil, err
		}
		return Infimum{Vars: n.Vars, Body: body}, nil

	case Supremum:
		body, err := SubstituteData(n.Body, shadow(env, n.Vars), oracle)
		if err != nil {
			return nil, err
		}
		return Supremum{Vars: n.Vars, Body: body}, nil

	case Sum:
		body, err := SubstituteData(n.Body, shadow(env, n.Vars), oracle)
		if err != nil {
			return nil, err
		}
		return Sum{Vars: n.Vars, Body: body}, nil

	case EqInf:
		inner, err := SubstituteData(n.E, env, oracle)
		if err != nil {
			return nil, err
		}
		return EqInf{E: inner}, nil

	case EqNInf:
		inner, err := SubstituteData(n.E, env, oracle)
		if err != nil {
			return nil, err
		}
		return EqNInf{E: inner}, nil

	case CondSm:
		c, t, el, err := substTernary(n.C, n.T, n.E, env, oracle)
		if err != nil {
			return nil, err
		}
		return CondSm{C: c, T: t, E: el}, nil

	case CondEq:
		c, t, el, err := substTernary(n.C, n.T, n.E, env, oracle)
		if err != nil {
			return nil, err
		}
		return CondEq{C: c, T: t, E: el}, nil

	default:
		return nil, newErr(InvariantViolation, "unknown expression variant %T", e)
	}
}

func substBinary(l, r Expr, env DataEnv, oracle DataOracle) (Expr, Expr, error) {
	nl, err := SubstituteData(l, env, oracle)
	if err != nil {
		return nil, nil, err
	}
	nr, err := SubstituteData(r, env, oracle)
	if err != nil {
		return nil, nil, err
	}
	return nl, nr, nil
}

func substTernary(c, t, e Expr, env DataEnv, oracle DataOracle) (Expr, Expr, Expr, error) {
	nc, err := SubstituteData(c, env, oracle)
	if err != nil {
		return nil, nil, nil, err
	}
	nt, err := SubstituteData(t, env, oracle)
	if err != nil {
		return nil, nil, nil, err
	}
	ne, err := SubstituteData(e, env, oracle)
	if err != nil {
		return nil, nil, nil, err
	}
	return nc, nt, ne, nil
}

// shadow removes bound quantifier variables from env so an outer
// substitution cannot capture an inner binder of the same name.
func shadow(env DataEnv, vars []DataVar) DataEnv {
	if len(env) == 0 {
		return env
	}
	next := make(DataEnv, len(env))
	for k, v := range env {
		next[k] = v
	}
	for _, v := range vars {
		delete(next, v.Name)
	}
	return next
}

// SubstituteVar replaces every free occurrence of propositional variable
// name (with no arguments, i.e. an RES-level reference) in e by replacement.
// Used by the Gauss driver's back-substitution step (§4.F) and by the
// single-equation solver's recursive solve (§4.E).
func SubstituteVar(e Expr, name string, replacement Expr) Expr {
	switch n := e.(type) {
	case Data:
		return n
	case Var:
		if n.Name == name && len(n.Args) == 0 {
			return replacement
		}
		return n
	case Minus:
		return Minus{E: SubstituteVar(n.E, name, replacement)}
	case And:
		return And{L: SubstituteVar(n.L, name, replacement), R: SubstituteVar(n.R, name, replacement)}
	case Or:
		return Or{L: SubstituteVar(n.L, name, replacement), R: SubstituteVar(n.R, name, replacement)}
	case Imp:
		return Imp{L: SubstituteVar(n.L, name, replacement), R: SubstituteVar(n.R, name, replacement)}
	case Plus:
		return Plus{L: SubstituteVar(n.L, name, replacement), R: SubstituteVar(n.R, name, replacement)}
	case ConstMul:
		return ConstMul{K: n.K, E: SubstituteVar(n.E, name, replacement)}
	case ConstMulAlt:
		return ConstMulAlt{E: SubstituteVar(n.E, name, replacement), K: n.K}
	case Infimum:
		return Infimum{Vars: n.Vars, Body: SubstituteVar(n.Body, name, replacement)}
	case Supremum:
		return Supremum{Vars: n.Vars, Body: SubstituteVar(n.Body, name, replacement)}
	case Sum:
		return Sum{Vars: n.Vars, Body: SubstituteVar(n.Body, name, replacement)}
	case EqInf:
		return EqInf{E: SubstituteVar(n.E, name, replacement)}
	case EqNInf:
		return EqNInf{E: SubstituteVar(n.E, name, replacement)}
	case CondSm:
		return CondSm{
			C: SubstituteVar(n.C, name, replacement),
			T: SubstituteVar(n.T, name, replacement),
			E: SubstituteVar(n.E, name, replacement),
		}
	case CondEq:
		return CondEq{
			C: SubstituteVar(n.C, name, replacement),
			T: SubstituteVar(n.T, name, replacement),
			E: SubstituteVar(n.E, name, replacement),
		}
	default:
		return e
	}
}
