package pres

// Normalize implements the normal-form builder of §4.D: it rewrites e into
// simple normal form (SNF), a meet (conjunctive) or join (disjunctive) of
// monomials modulo the two preserved conditionals. The process is two
// passes: pushdown moves CondSm/CondEq to the outermost position and
// distributes Plus/ConstMul/And/Or through one another until only
// monomials remain at the leaves; group then merges same-factor scalar
// multiples and deduplicates sibling conjuncts/disjuncts.
func Normalize(e Expr, conjunctive bool, oracle DataOracle) (Expr, error) {
	pushed, err := pushdown(e, conjunctive)
	if err != nil {
		return nil, err
	}
	return group(pushed, oracle)
}

// pushdown is purely structural: every rule it applies is an identity of
// the extended-real algebra (§3.2, §4.H), so it needs no rewrite oracle
// and cannot fail except on the operators §4.D explicitly disallows.
func pushdown(e Expr, conj bool) (Expr, error) {
	switch n := e.(type) {
	case Data:
		return n, nil
	case Var:
		return n, nil

	case Minus:
		inner, err := pushdown(n.E, conj)
		if err != nil {
			return nil, err
		}
		return buildMinus(inner), nil

	case And:
		l, err := pushdown(n.L, conj)
		if err != nil {
			return nil, err
		}
		r, err := pushdown(n.R, conj)
		if err != nil {
			return nil, err
		}
		return buildAnd(l, r, conj), nil

	case Or:
		l, err := pushdown(n.L, conj)
		if err != nil {
			return nil, err
		}
		r, err := pushdown(n.R, conj)
		if err != nil {
			return nil, err
		}
		return buildOr(l, r, conj), nil

	case Imp:
		// Imp(a, b) = Or(Minus(a), b) (§4.D pushdown table, last row).
		l, err := pushdown(n.L, conj)
		if err != nil {
			return nil, err
		}
		r, err := pushdown(n.R, conj)
		if err != nil {
			return nil, err
		}
		return buildOr(buildMinus(l), r, conj), nil

	case Plus:
		l, err := pushdown(n.L, conj)
		if err != nil {
			return nil, err
		}
		r, err := pushdown(n.R, conj)
		if err != nil {
			return nil, err
		}
		return buildPlus(l, r, conj), nil

	case ConstMul:
		inner, err := pushdown(n.E, conj)
		if err != nil {
			return nil, err
		}
		return buildConstMul(n.K, inner, conj), nil

	case ConstMulAlt:
		inner, err := pushdown(n.E, conj)
		if err != nil {
			return nil, err
		}
		// ConstMulAlt carries the same denotation as ConstMul; the
		// associativity-shape distinction the algebra preserves through
		// Simplify has no bearing on SNF, so pushdown normalizes both to
		// the same ConstMul shape.
		return buildConstMul(n.K, inner, conj), nil

	case Infimum, Supremum, Sum:
		return nil, newErr(Unsupported, "quantifier survived into normal-form builder: %s", e)

	case EqInf:
		inner, err := pushdown(n.E, conj)
		if err != nil {
			return nil, err
		}
		return EqInf{E: inner}, nil

	case EqNInf:
		inner, err := pushdown(n.E, conj)
		if err != nil {
			return nil, err
		}
		return EqNInf{E: inner}, nil

	case CondSm:
		c, err := pushdown(n.C, conj)
		if err != nil {
			return nil, err
		}
		t, err := pushdown(n.T, conj)
		if err != nil {
			return nil, err
		}
		el, err := pushdown(n.E, conj)
		if err != nil {
			return nil, err
		}
		return CondSm{C: c, T: t, E: el}, nil

	case CondEq:
		c, err := pushdown(n.C, conj)
		if err != nil {
			return nil, err
		}
		t, err := pushdown(n.T, conj)
		if err != nil {
			return nil, err
		}
		el, err := pushdown(n.E, conj)
		if err != nil {
			return nil, err
		}
		return CondEq{C: c, T: t, E: el}, nil

	default:
		return nil, newErr(InvariantViolation, "unknown expression variant %T", e)
	}
}

// buildMinus pushes negation through every compound operator (De Morgan for
// And/Or, linearity for Plus/ConstMul, branch-wise for the conditionals)
// until it reaches an atom, matching the monomial grammar's "a variable,
// Minus(Var)" — Minus only ever survives on an atom in SNF. This is the
// completion the literal pushdown table needs for Imp's expansion
// (Or(Minus(a), b)) to actually reach SNF when a is itself compound; see
// DESIGN.md.
func buildMinus(e Expr) Expr {
	switch n := e.(type) {
	case Minus:
		return n.E
	case And:
		return Or{L: buildMinus(n.L), R: buildMinus(n.R)}
	case Or:
		return And{L: buildMinus(n.L), R: buildMinus(n.R)}
	case Plus:
		return Plus{L: buildMinus(n.L), R: buildMinus(n.R)}
	case ConstMul:
		return ConstMul{K: n.K, E: buildMinus(n.E)}
	case ConstMulAlt:
		return ConstMulAlt{E: buildMinus(n.E), K: n.K}
	case CondSm:
		return CondSm{C: n.C, T: buildMinus(n.T), E: buildMinus(n.E)}
	case CondEq:
		return CondEq{C: n.C, T: buildMinus(n.T), E: buildMinus(n.E)}
	default:
		return Minus{E: e}
	}
}

// buildAnd combines two already-pushed-down operands, pulling out any
// conditional child (row 1 of §4.D's table) and, in DNF, distributing And
// over Or (the dual of the CNF table's Or-over-And row).
func buildAnd(l, r Expr, conj bool) Expr {
	if cs, ok := l.(CondSm); ok {
		return CondSm{C: cs.C, T: buildAnd(cs.T, r, conj), E: buildAnd(cs.E, r, conj)}
	}
	if cs, ok := r.(CondSm); ok {
		return CondSm{C: cs.C, T: buildAnd(l, cs.T, conj), E: buildAnd(l, cs.E, conj)}
	}
	if ce, ok := l.(CondEq); ok {
		return CondEq{C: ce.C, T: buildAnd(ce.T, r, conj), E: buildAnd(ce.E, r, conj)}
	}
	if ce, ok := r.(CondEq); ok {
		return CondEq{C: ce.C, T: buildAnd(l, ce.T, conj), E: buildAnd(l, ce.E, conj)}
	}
	if !conj {
		if orL, ok := l.(Or); ok {
			return buildOr(buildAnd(orL.L, r, conj), buildAnd(orL.R, r, conj), conj)
		}
		if orR, ok := r.(Or); ok {
			return buildOr(buildAnd(l, orR.L, conj), buildAnd(l, orR.R, conj), conj)
		}
	}
	return And{L: l, R: r}
}

// buildOr is buildAnd's dual: it pulls out conditionals, and in CNF
// distributes Or over And (§4.D table row 2).
func buildOr(l, r Expr, conj bool) Expr {
	if cs, ok := l.(CondSm); ok {
		return CondSm{C: cs.C, T: buildOr(cs.T, r, conj), E: buildOr(cs.E, r, conj)}
	}
	if cs, ok := r.(CondSm); ok {
		return CondSm{C: cs.C, T: buildOr(l, cs.T, conj), E: buildOr(l, cs.E, conj)}
	}
	if ce, ok := l.(CondEq); ok {
		return CondEq{C: ce.C, T: buildOr(ce.T, r, conj), E: buildOr(ce.E, r, conj)}
	}
	if ce, ok := r.(CondEq); ok {
		return CondEq{C: ce.C, T: buildOr(l, ce.T, conj), E: buildOr(l, ce.E, conj)}
	}
	if conj {
		if andL, ok := l.(And); ok {
			return buildAnd(buildOr(andL.L, r, conj), buildOr(andL.R, r, conj), conj)
		}
		if andR, ok := r.(And); ok {
			return buildAnd(buildOr(l, andR.L, conj), buildOr(l, andR.R, conj), conj)
		}
	}
	return Or{L: l, R: r}
}

// buildPlus pulls conditionals outward and distributes Plus over both And
// and Or unconditionally (§4.D table rows 3 and 4 apply regardless of the
// conjunctive flag).
func buildPlus(l, r Expr, conj bool) Expr {
	if cs, ok := l.(CondSm); ok {
		return CondSm{C: cs.C, T: buildPlus(cs.T, r, conj), E: buildPlus(cs.E, r, conj)}
	}
	if cs, ok := r.(CondSm); ok {
		return CondSm{C: cs.C, T: buildPlus(l, cs.T, conj), E: buildPlus(l, cs.E, conj)}
	}
	if ce, ok := l.(CondEq); ok {
		return CondEq{C: ce.C, T: buildPlus(ce.T, r, conj), E: buildPlus(ce.E, r, conj)}
	}
	if ce, ok := r.(CondEq); ok {
		return CondEq{C: ce.C, T: buildPlus(l, ce.T, conj), E: buildPlus(l, ce.E, conj)}
	}
	if andL, ok := l.(And); ok {
		return buildAnd(buildPlus(andL.L, r, conj), buildPlus(andL.R, r, conj), conj)
	}
	if andR, ok := r.(And); ok {
		return buildAnd(buildPlus(l, andR.L, conj), buildPlus(l, andR.R, conj), conj)
	}
	if orL, ok := l.(Or); ok {
		return buildOr(buildPlus(orL.L, r, conj), buildPlus(orL.R, r, conj), conj)
	}
	if orR, ok := r.(Or); ok {
		return buildOr(buildPlus(l, orR.L, conj), buildPlus(l, orR.R, conj), conj)
	}
	return Plus{L: l, R: r}
}

// buildConstMul distributes a scalar multiple over a conditional or over
// And/Or (§4.D table rows 5 and 6, both unconditional on the flag).
func buildConstMul(k DataExpr, e Expr, conj bool) Expr {
	if cs, ok := e.(CondSm); ok {
		return CondSm{C: cs.C, T: buildConstMul(k, cs.T, conj), E: buildConstMul(k, cs.E, conj)}
	}
	if ce, ok := e.(CondEq); ok {
		return CondEq{C: ce.C, T: buildConstMul(k, ce.T, conj), E: buildConstMul(k, ce.E, conj)}
	}
	if andE, ok := e.(And); ok {
		return buildAnd(buildConstMul(k, andE.L, conj), buildConstMul(k, andE.R, conj), conj)
	}
	if orE, ok := e.(Or); ok {
		return buildOr(buildConstMul(k, orE.L, conj), buildConstMul(k, orE.R, conj), conj)
	}
	return ConstMul{K: k, E: e}
}

// group merges sibling Plus terms with identical non-constant factors and
// deduplicates sibling conjuncts/disjuncts by structural identity (§4.D
// "Grouping step"), recursing through the whole already-pushed-down tree.
func group(e Expr, oracle DataOracle) (Expr, error) {
	switch n := e.(type) {
	case Data:
		return n, nil
	case Var:
		return n, nil

	case Minus:
		inner, err := group(n.E, oracle)
		if err != nil {
			return nil, err
		}
		return Minus{E: inner}, nil

	case And:
		terms, err := groupFlat(flattenAnd(n), oracle)
		if err != nil {
			return nil, err
		}
		return foldAnd(dedupe(terms)), nil

	case Or:
		terms, err := groupFlat(flattenOr(n), oracle)
		if err != nil {
			return nil, err
		}
		return foldOr(dedupe(terms)), nil

	case Plus:
		leaves, err := groupFlat(flattenPlus(n), oracle)
		if err != nil {
			return nil, err
		}
		merged, err := mergePlusTerms(leaves, oracle)
		if err != nil {
			return nil, err
		}
		return foldPlus(merged), nil

	case ConstMul:
		inner, err := group(n.E, oracle)
		if err != nil {
			return nil, err
		}
		return ConstMul{K: n.K, E: inner}, nil

	case ConstMulAlt:
		inner, err := group(n.E, oracle)
		if err != nil {
			return nil, err
		}
		return ConstMul{K: n.K, E: inner}, nil

	case EqInf:
		inner, err := group(n.E, oracle)
		if err != nil {
			return nil, err
		}
		return EqInf{E: inner}, nil

	case EqNInf:
		inner, err := group(n.E, oracle)
		if err != nil {
			return nil, err
		}
		return EqNInf{E: inner}, nil

	case CondSm:
		c, t, el, err := groupTernary(n.C, n.T, n.E, oracle)
		if err != nil {
			return nil, err
		}
		return CondSm{C: c, T: t, E: el}, nil

	case CondEq:
		c, t, el, err := groupTernary(n.C, n.T, n.E, oracle)
		if err != nil {
			return nil, err
		}
		return CondEq{C: c, T: t, E: el}, nil

	case Infimum, Supremum, Sum:
		return nil, newErr(Unsupported, "quantifier survived into normal-form builder: %s", e)

	default:
		return nil, newErr(InvariantViolation, "unknown expression variant %T", e)
	}
}

func groupTernary(c, t, e Expr, oracle DataOracle) (Expr, Expr, Expr, error) {
	gc, err := group(c, oracle)
	if err != nil {
		return nil, nil, nil, err
	}
	gt, err := group(t, oracle)
	if err != nil {
		return nil, nil, nil, err
	}
	ge, err := group(e, oracle)
	if err != nil {
		return nil, nil, nil, err
	}
	return gc, gt, ge, nil
}

func groupFlat(items []Expr, oracle DataOracle) ([]Expr, error) {
	out := make([]Expr, len(items))
	for i, it := range items {
		g, err := group(it, oracle)
		if err != nil {
			return nil, err
		}
		out[i] = g
	}
	return out, nil
}

func flattenAnd(e Expr) []Expr { return flattenBinary(e, func(x Expr) (Expr, Expr, bool) {
	a, ok := x.(And)
	if !ok {
		return nil, nil, false
	}
	return a.L, a.R, true
}) }

func flattenOr(e Expr) []Expr { return flattenBinary(e, func(x Expr) (Expr, Expr, bool) {
	o, ok := x.(Or)
	if !ok {
		return nil, nil, false
	}
	return o.L, o.R, true
}) }

func flattenPlus(e Expr) []Expr { return flattenBinary(e, func(x Expr) (Expr, Expr, bool) {
	p, ok := x.(Plus)
	if !ok {
		return nil, nil, false
	}
	return p.L, p.R, true
}) }

func flattenBinary(e Expr, split func(Expr) (Expr, Expr, bool)) []Expr {
	var out []Expr
	var walk func(Expr)
	walk = func(x Expr) {
		if l, r, ok := split(x); ok {
			walk(l)
			walk(r)
			return
		}
		out = append(out, x)
	}
	walk(e)
	return out
}

// dedupe drops structurally identical siblings, keeping the first
// occurrence's position.
func dedupe(items []Expr) []Expr {
	seen := make(map[string]bool, len(items))
	out := make([]Expr, 0, len(items))
	for _, it := range items {
		key := it.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}

func foldAnd(items []Expr) Expr { return foldBinary(items, func(l, r Expr) Expr { return And{L: l, R: r} }) }
func foldOr(items []Expr) Expr  { return foldBinary(items, func(l, r Expr) Expr { return Or{L: l, R: r} }) }
func foldPlus(items []Expr) Expr {
	return foldBinary(items, func(l, r Expr) Expr { return Plus{L: l, R: r} })
}

func foldBinary(items []Expr, combine func(l, r Expr) Expr) Expr {
	acc := items[0]
	for _, it := range items[1:] {
		acc = combine(acc, it)
	}
	return acc
}

// mergePlusTerms implements "k1*X + k2*X -> (k1+k2)*X" and constant
// collapsing (§4.D "Grouping step"). Terms are bare monomials (a variable,
// Minus(Var), EqInf/EqNInf, a conditional, ...), ConstMul(k, factor), or a
// real-sorted Data constant; anything else is treated as a factor with an
// implicit coefficient of 1.
func mergePlusTerms(terms []Expr, oracle DataOracle) ([]Expr, error) {
	var constAccum DataExpr
	coeffs := make(map[string]DataExpr)
	factors := make(map[string]Expr)
	var order []string

	addCoeff := func(factor Expr, k DataExpr) error {
		key := factor.String()
		if existing, ok := coeffs[key]; ok {
			sum, err := oracle.Add(existing, k)
			if err != nil {
				return wrapErr(OracleFailure, err, "merging coefficients of %s", factor)
			}
			coeffs[key] = sum
			return nil
		}
		coeffs[key] = k
		factors[key] = factor
		order = append(order, key)
		return nil
	}

	for _, t := range terms {
		switch v := t.(type) {
		case Data:
			if constAccum == nil {
				constAccum = v.D
				continue
			}
			sum, err := oracle.Add(constAccum, v.D)
			if err != nil {
				return nil, wrapErr(OracleFailure, err, "summing constant terms")
			}
			constAccum = sum

		case ConstMul:
			if err := addCoeff(v.E, v.K); err != nil {
				return nil, err
			}

		case ConstMulAlt:
			if err := addCoeff(v.E, v.K); err != nil {
				return nil, err
			}

		default:
			if err := addCoeff(v, oracle.RealConstant(1, 1)); err != nil {
				return nil, err
			}
		}
	}

	var out []Expr
	if constAccum != nil {
		zero, err := oracle.IsZero(constAccum)
		if err != nil {
			return nil, wrapErr(OracleFailure, err, "checking constant term")
		}
		if zero != True {
			out = append(out, Data{constAccum})
		}
	}
	for _, key := range order {
		k := coeffs[key]
		factor := factors[key]
		one, err := oracle.IsOne(k)
		if err != nil {
			return nil, wrapErr(OracleFailure, err, "checking merged coefficient of %s", factor)
		}
		if one == True {
			out = append(out, factor)
			continue
		}
		out = append(out, ConstMul{K: k, E: factor})
	}
	if len(out) == 0 {
		out = append(out, Data{oracle.RealConstant(0, 1)})
	}
	return out, nil
}
