package oracle

import (
	"fmt"
	"math/big"

	"github.com/pres-solve/prescore/pkg/pres"
)

// Oracle is a tree-walking pres.DataOracle over the term language of
// terms.go: rationals for Real, plain booleans for Bool, and a set of
// explicitly registered finite enumerable sorts. It is the reference
// backend the solver is tested against and the one cmd/prescore drives;
// any other pres.DataOracle implementation is a drop-in replacement.
type Oracle struct {
	enums map[string][]pres.DataExpr
	cfg   pres.RewriteConfig
}

// New returns an Oracle with no enumerable sorts registered.
func New() *Oracle {
	return &Oracle{enums: make(map[string][]pres.DataExpr)}
}

// RegisterEnum declares the finite set of ground values belonging to a
// named sort, so later Enumerate calls (§3.1, §4.B) can resolve it.
// Intended to be called once per sort before a solve.
func (o *Oracle) RegisterEnum(sortName string, values []pres.DataExpr) {
	o.enums[sortName] = values
}

// reduce is the one recursive evaluator every exported method funnels
// through: it rewrites term bottom-up, substituting data variables from
// env and folding any subtree whose operands have both become literals,
// while leaving a subtree with an unbound variable as a (still closed,
// still well-typed) symbolic term rather than failing.
func (o *Oracle) reduce(term pres.DataExpr, env pres.DataEnv) (pres.DataExpr, error) {
	switch t := term.(type) {
	case pres.DataVar:
		if bound, ok := env.Lookup(t.Name); ok {
			return o.reduce(bound, env)
		}
		return t, nil

	case Real, Bool, Elem:
		return t, nil

	case Add:
		l, err := o.reduce(t.L, env)
		if err != nil {
			return nil, err
		}
		r, err := o.reduce(t.R, env)
		if err != nil {
			return nil, err
		}
		if lr, ok := l.(Real); ok {
			if rr, ok := r.(Real); ok {
				return Real{Val: new(big.Rat).Add(lr.Val, rr.Val)}, nil
			}
		}
		return Add{L: l, R: r}, nil

	case Neg:
		e, err := o.reduce(t.E, env)
		if err != nil {
			return nil, err
		}
		if er, ok := e.(Real); ok {
			return Real{Val: new(big.Rat).Neg(er.Val)}, nil
		}
		return Neg{E: e}, nil

	case Mul:
		e, err := o.reduce(t.E, env)
		if err != nil {
			return nil, err
		}
		if er, ok := e.(Real); ok {
			return Real{Val: new(big.Rat).Mul(t.K, er.Val)}, nil
		}
		return Mul{K: t.K, E: e}, nil

	case Inv:
		e, err := o.reduce(t.E, env)
		if err != nil {
			return nil, err
		}
		if er, ok := e.(Real); ok {
			if er.Val.Sign() == 0 {
				return nil, fmt.Errorf("oracle: division by zero in %s", term)
			}
			return Real{Val: new(big.Rat).Inv(er.Val)}, nil
		}
		return Inv{E: e}, nil

	case Less:
		l, err := o.reduce(t.L, env)
		if err != nil {
			return nil, err
		}
		r, err := o.reduce(t.R, env)
		if err != nil {
			return nil, err
		}
		if lr, ok := l.(Real); ok {
			if rr, ok := r.(Real); ok {
				return Bool{Val: lr.Val.Cmp(rr.Val) < 0}, nil
			}
		}
		return Less{L: l, R: r}, nil

	case Eq:
		l, err := o.reduce(t.L, env)
		if err != nil {
			return nil, err
		}
		r, err := o.reduce(t.R, env)
		if err != nil {
			return nil, err
		}
		if lr, ok := l.(Real); ok {
			if rr, ok := r.(Real); ok {
				return Bool{Val: lr.Val.Cmp(rr.Val) == 0}, nil
			}
		}
		if lb, ok := l.(Bool); ok {
			if rb, ok := r.(Bool); ok {
				return Bool{Val: lb.Val == rb.Val}, nil
			}
		}
		if le, ok := l.(Elem); ok {
			if re, ok := r.(Elem); ok {
				return Bool{Val: le.SortName == re.SortName && le.Index == re.Index}, nil
			}
		}
		return Eq{L: l, R: r}, nil

	case Not:
		e, err := o.reduce(t.E, env)
		if err != nil {
			return nil, err
		}
		if eb, ok := e.(Bool); ok {
			return Bool{Val: !eb.Val}, nil
		}
		return Not{E: e}, nil

	case And2:
		l, err := o.reduce(t.L, env)
		if err != nil {
			return nil, err
		}
		if lb, ok := l.(Bool); ok && !lb.Val {
			return Bool{Val: false}, nil
		}
		r, err := o.reduce(t.R, env)
		if err != nil {
			return nil, err
		}
		if rb, ok := r.(Bool); ok && !rb.Val {
			return Bool{Val: false}, nil
		}
		if lb, ok := l.(Bool); ok {
			if rb, ok := r.(Bool); ok {
				return Bool{Val: lb.Val && rb.Val}, nil
			}
		}
		return And2{L: l, R: r}, nil

	case Or2:
		l, err := o.reduce(t.L, env)
		if err != nil {
			return nil, err
		}
		if lb, ok := l.(Bool); ok && lb.Val {
			return Bool{Val: true}, nil
		}
		r, err := o.reduce(t.R, env)
		if err != nil {
			return nil, err
		}
		if rb, ok := r.(Bool); ok && rb.Val {
			return Bool{Val: true}, nil
		}
		if lb, ok := l.(Bool); ok {
			if rb, ok := r.(Bool); ok {
				return Bool{Val: lb.Val || rb.Val}, nil
			}
		}
		return Or2{L: l, R: r}, nil

	default:
		return nil, fmt.Errorf("oracle: unrecognized data term %T", term)
	}
}

// Rewrite implements pres.DataOracle.
func (o *Oracle) Rewrite(term pres.DataExpr, env pres.DataEnv) (pres.DataExpr, error) {
	return o.reduce(term, env)
}

// EvaluateBool implements pres.DataOracle.
func (o *Oracle) EvaluateBool(term pres.DataExpr) (pres.TriBool, error) {
	r, err := o.reduce(term, nil)
	if err != nil {
		return pres.Unknown, err
	}
	b, ok := r.(Bool)
	if !ok {
		return pres.Unknown, nil
	}
	if b.Val {
		return pres.True, nil
	}
	return pres.False, nil
}

// CompareLess implements pres.DataOracle.
func (o *Oracle) CompareLess(term pres.DataExpr, threshold float64) (pres.TriBool, error) {
	r, err := o.reduce(term, nil)
	if err != nil {
		return pres.Unknown, err
	}
	rr, ok := r.(Real)
	if !ok {
		return pres.Unknown, nil
	}
	th := new(big.Rat).SetFloat64(threshold)
	if th == nil {
		return pres.Unknown, fmt.Errorf("oracle: threshold %v has no exact rational representation", threshold)
	}
	if rr.Val.Cmp(th) < 0 {
		return pres.True, nil
	}
	return pres.False, nil
}

// EvaluateReal implements pres.DataOracle.
func (o *Oracle) EvaluateReal(term pres.DataExpr) (float64, error) {
	r, err := o.reduce(term, nil)
	if err != nil {
		return 0, err
	}
	rr, ok := r.(Real)
	if !ok {
		return 0, fmt.Errorf("oracle: %s does not reduce to a real constant", term)
	}
	f, _ := rr.Val.Float64()
	return f, nil
}

// IsZero implements pres.DataOracle.
func (o *Oracle) IsZero(term pres.DataExpr) (pres.TriBool, error) {
	r, err := o.reduce(term, nil)
	if err != nil {
		return pres.Unknown, err
	}
	rr, ok := r.(Real)
	if !ok {
		return pres.Unknown, nil
	}
	if rr.Val.Sign() == 0 {
		return pres.True, nil
	}
	return pres.False, nil
}

// IsOne implements pres.DataOracle.
func (o *Oracle) IsOne(term pres.DataExpr) (pres.TriBool, error) {
	r, err := o.reduce(term, nil)
	if err != nil {
		return pres.Unknown, err
	}
	rr, ok := r.(Real)
	if !ok {
		return pres.Unknown, nil
	}
	if rr.Val.Cmp(big.NewRat(1, 1)) == 0 {
		return pres.True, nil
	}
	return pres.False, nil
}

// Negate implements pres.DataOracle.
func (o *Oracle) Negate(term pres.DataExpr) (pres.DataExpr, error) {
	return o.reduce(Neg{E: term}, nil)
}

// Add implements pres.DataOracle.
func (o *Oracle) Add(a, b pres.DataExpr) (pres.DataExpr, error) {
	return o.reduce(Add{L: a, R: b}, nil)
}

// Scale implements pres.DataOracle. k must reduce to a real constant;
// every caller in pkg/pres only ever passes a gradient or coefficient
// already built from RealConstant or returned by this oracle, so this
// is never a symbolic term in practice.
func (o *Oracle) Scale(k, d pres.DataExpr) (pres.DataExpr, error) {
	kr, err := o.reduce(k, nil)
	if err != nil {
		return nil, err
	}
	kReal, ok := kr.(Real)
	if !ok {
		return nil, fmt.Errorf("oracle: scale factor %s is not a real constant", k)
	}
	return o.reduce(Mul{K: kReal.Val, E: d}, nil)
}

// Invert implements pres.DataOracle.
func (o *Oracle) Invert(d pres.DataExpr) (pres.DataExpr, error) {
	return o.reduce(Inv{E: d}, nil)
}

// Enumerate implements pres.DataOracle.
func (o *Oracle) Enumerate(sort pres.Sort) (pres.EnumDomain, error) {
	values, ok := o.enums[sort.Name()]
	if !ok {
		return nil, &pres.ErrNotEnumerable{Sort: sort}
	}
	return pres.NewEnumDomain(values), nil
}

// RealConstant implements pres.DataOracle.
func (o *Oracle) RealConstant(num, den int64) pres.DataExpr {
	return Real{Val: big.NewRat(num, den)}
}

// BoolConstant implements pres.DataOracle.
func (o *Oracle) BoolConstant(value bool) pres.DataExpr {
	return Bool{Val: value}
}

// Configure implements pres.DataOracle: the strategy-level flags are
// recorded but, matching ressolve.h's forwarding-only behaviour (§13),
// never inspected by this reference backend — there are no generated
// rewrite rules here to prune or replace.
func (o *Oracle) Configure(cfg pres.RewriteConfig) error {
	o.cfg = cfg
	return nil
}
