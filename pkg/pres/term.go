package pres

import (
	"fmt"
	"strings"
)

// Expr is a PRES expression (§3.2). The set of variants is closed by the
// semantics of the algebra; Expr is implemented only by the sixteen
// variant types declared in this file, dispatched by type switch rather
// than an open-ended visitor hierarchy (§9 "Operator dispatch").
//
// All variants are immutable after construction. Structural sharing
// between expressions is permitted but not required.
type Expr interface {
	// String renders the expression for diagnostics.
	String() string

	isExpr()
}

// Data wraps a data expression of sort Bool or Real (§3.2).
type Data struct{ D DataExpr }

// Var is a fixed-point variable reference, applied to data-term
// arguments. After instantiation (§3.3), Args is always empty.
type Var struct {
	Name string
	Args []DataExpr
}

// Minus is arithmetic negation: sign flip, swaps +/-infinity.
type Minus struct{ E Expr }

// And is the extended-real minimum of its two operands.
type And struct{ L, R Expr }

// Or is the extended-real maximum of its two operands.
type Or struct{ L, R Expr }

// Imp denotes max(-L, R) over the extended reals.
type Imp struct{ L, R Expr }

// Plus is extended-real addition, with the left-biased tie-break of
// §4.H for (+inf) + (-inf).
type Plus struct{ L, R Expr }

// ConstMul is scalar multiplication k*E with k a non-negative real data
// term; K is never <= 0 (the invariant of §3.2).
type ConstMul struct {
	K DataExpr
	E Expr
}

// ConstMulAlt is the same semantics as ConstMul with the factors written
// in the other order, retained to preserve associativity shape during
// normalisation (§3.2).
type ConstMulAlt struct {
	E Expr
	K DataExpr
}

// Infimum is the greatest lower bound of Body over every valuation of the
// (non-empty) data-sorted variable list Vars.
type Infimum struct {
	Vars []DataVar
	Body Expr
}

// Supremum is the least upper bound of Body over every valuation of Vars.
type Supremum struct {
	Vars []DataVar
	Body Expr
}

// Sum is the pointwise sum of Body over every valuation of Vars.
type Sum struct {
	Vars []DataVar
	Body Expr
}

// EqInf is the characteristic predicate "E = +infinity".
type EqInf struct{ E Expr }

// EqNInf is the characteristic predicate "E != +infinity", the dual of
// EqInf: it holds for every finite value and for -infinity alike, and
// fails only when E is +infinity.
type EqNInf struct{ E Expr }

// CondSm is the three-way conditional: C < 0 -> T, C == 0 -> T or E,
// C > 0 -> E (§3.2).
type CondSm struct{ C, T, E Expr }

// CondEq is the three-way conditional: C < 0 -> T, C == 0 -> T, C > 0 -> E.
type CondEq struct{ C, T, E Expr }

func (Data) isExpr()        {}
func (Var) isExpr()         {}
func (Minus) isExpr()       {}
func (And) isExpr()         {}
func (Or) isExpr()          {}
func (Imp) isExpr()         {}
func (Plus) isExpr()        {}
func (ConstMul) isExpr()    {}
func (ConstMulAlt) isExpr() {}
func (Infimum) isExpr()     {}
func (Supremum) isExpr()    {}
func (Sum) isExpr()         {}
func (EqInf) isExpr()       {}
func (EqNInf) isExpr()      {}
func (CondSm) isExpr()      {}
func (CondEq) isExpr()      {}

func (e Data) String() string { return e.D.String() }

func (e Var) String() string {
	if len(e.Args) == 0 {
		return e.Name
	}
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
}

func (e Minus) String() string { return fmt.Sprintf("-%s", e.E) }
func (e And) String() string   { return fmt.Sprintf("(%s && %s)", e.L, e.R) }
func (e Or) String() string    { return fmt.Sprintf("(%s || %s)", e.L, e.R) }
func (e Imp) String() string   { return fmt.Sprintf("(%s => %s)", e.L, e.R) }
func (e Plus) String() string  { return fmt.Sprintf("(%s + %s)", e.L, e.R) }

func (e ConstMul) String() string    { return fmt.Sprintf("%s*%s", e.K, e.E) }
func (e ConstMulAlt) String() string { return fmt.Sprintf("%s*%s", e.E, e.K) }

func quantString(kind string, vars []DataVar, body Expr) string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return fmt.Sprintf("%s %s . %s", kind, strings.Join(names, ", "), body)
}

func (e Infimum) String() string  { return quantString("inf", e.Vars, e.Body) }
func (e Supremum) String() string { return quantString("sup", e.Vars, e.Body) }
func (e Sum) String() string      { return quantString("sum", e.Vars, e.Body) }

func (e EqInf) String() string  { return fmt.Sprintf("eqinf(%s)", e.E) }
func (e EqNInf) String() string { return fmt.Sprintf("eqninf(%s)", e.E) }

func (e CondSm) String() string { return fmt.Sprintf("condsm(%s, %s, %s)", e.C, e.T, e.E) }
func (e CondEq) String() string { return fmt.Sprintf("condeq(%s, %s, %s)", e.C, e.T, e.E) }

// Sign is a PRES/RES equation's fixed-point sign.
type Sign int

const (
	// Mu is the least fixed point.
	Mu Sign = iota
	// Nu is the greatest fixed point.
	Nu
)

// String renders the sign using the conventional mu/nu glyphs.
func (s Sign) String() string {
	if s == Mu {
		return "mu"
	}
	return "nu"
}

// Equation is a single PRES (or, with an empty Params list, RES) equation:
// sigma X(params) = rhs (§3.3).
type Equation struct {
	Sign   Sign
	Name   string
	Params []DataVar
	RHS    Expr
}

// PRES is an ordered sequence of equations together with an initial
// instantiation (§3.3).
type PRES struct {
	Equations []Equation
	InitName  string
	InitArgs  []DataExpr
}

// RES is the parameter-free equation system produced by instantiating a
// PRES (§3.3, §3.4): every equation's Params list is empty and every Var
// occurrence has an empty Args list.
type RES struct {
	Equations []Equation
	InitVar   string
}

// LookupEquation returns the equation defining name, or false if none
// exists.
func (r *RES) LookupEquation(name string) (Equation, bool) {
	for _, eq := range r.Equations {
		if eq.Name == name {
			return eq, true
		}
	}
	return Equation{}, false
}

// IndexOf returns the position of the equation defining name, or -1.
func (r *RES) IndexOf(name string) int {
	for i, eq := range r.Equations {
		if eq.Name == name {
			return i
		}
	}
	return -1
}

// Block is a maximal contiguous run of equations sharing the same sign
// (§2 GLOSSARY). Blocks are identified by the half-open equation index
// range [Start, End).
type Block struct {
	Sign       Sign
	Start, End int
}

// Blocks partitions an equation list into maximal same-sign runs,
// preserving the order of r.Equations (§4.F, §4.G).
func (r *RES) Blocks() []Block {
	var blocks []Block
	n := len(r.Equations)
	for i := 0; i < n; {
		j := i + 1
		for j < n && r.Equations[j].Sign == r.Equations[i].Sign {
			j++
		}
		blocks = append(blocks, Block{Sign: r.Equations[i].Sign, Start: i, End: j})
		i = j
	}
	return blocks
}
