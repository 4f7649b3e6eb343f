// Package pretty renders PRES/RES expressions and solutions for human
// consumption (§6.2, §6.3): the CLI's one line of output, and
// diagnostics. It is not a parser, and does not round-trip — String()
// on the pres types already gives an unambiguous machine-readable form;
// this package exists purely to make a Symbolic solution or a trace
// message readable, using the mathematical infix notation the
// specification itself uses (∧, ∨, ⇒, ⊓, ⊔).
package pretty

import (
	"strconv"
	"strings"

	"github.com/pres-solve/prescore/pkg/pres"
)

// Expr renders a PRES/RES expression tree using infix mathematical
// notation instead of the machine-oriented names Expr.String() uses.
func Expr(e pres.Expr) string {
	switch n := e.(type) {
	case pres.Data:
		return n.D.String()
	case pres.Var:
		return n.String()
	case pres.Minus:
		return "-" + parenth(n.E)
	case pres.And:
		return "(" + Expr(n.L) + " ∧ " + Expr(n.R) + ")"
	case pres.Or:
		return "(" + Expr(n.L) + " ∨ " + Expr(n.R) + ")"
	case pres.Imp:
		return "(" + Expr(n.L) + " ⇒ " + Expr(n.R) + ")"
	case pres.Plus:
		return "(" + Expr(n.L) + " + " + Expr(n.R) + ")"
	case pres.ConstMul:
		return n.K.String() + "·" + parenth(n.E)
	case pres.ConstMulAlt:
		return parenth(n.E) + "·" + n.K.String()
	case pres.Infimum:
		return quant("⊓", n.Vars, n.Body)
	case pres.Supremum:
		return quant("⊔", n.Vars, n.Body)
	case pres.Sum:
		return quant("Σ", n.Vars, n.Body)
	case pres.EqInf:
		return "[" + Expr(n.E) + " = +∞]"
	case pres.EqNInf:
		return "[" + Expr(n.E) + " ≠ +∞]"
	case pres.CondSm:
		return "if " + Expr(n.C) + " ⋖ 0 then " + Expr(n.T) + " else " + Expr(n.E)
	case pres.CondEq:
		return "if " + Expr(n.C) + " ≼ 0 then " + Expr(n.T) + " else " + Expr(n.E)
	default:
		return e.String()
	}
}

// parenth wraps a rendered subexpression in parentheses unless it is
// already a single token (a bare data term or variable reference).
func parenth(e pres.Expr) string {
	switch e.(type) {
	case pres.Data, pres.Var:
		return Expr(e)
	default:
		return "(" + Expr(e) + ")"
	}
}

func quant(sym string, vars []pres.DataVar, body pres.Expr) string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return sym + " " + strings.Join(names, ", ") + ". " + Expr(body)
}

// Equation renders a single PRES/RES equation with the conventional
// mu/nu glyphs.
func Equation(eq pres.Equation) string {
	sign := "μ"
	if eq.Sign == pres.Nu {
		sign = "ν"
	}
	name := eq.Name
	if len(eq.Params) > 0 {
		names := make([]string, len(eq.Params))
		for i, p := range eq.Params {
			names[i] = p.Name
		}
		name += "(" + strings.Join(names, ", ") + ")"
	}
	return sign + " " + name + " = " + Expr(eq.RHS)
}

// Solution renders a pres.Solution the way the CLI prints its one line
// of output (§6.3): a Symbolic solution renders as an expression, a
// Numeric solution renders as a decimal expansion with precision
// significant digits.
func Solution(s pres.Solution, precision int) string {
	if s.Kind == pres.Numeric {
		return strconv.FormatFloat(s.Value, 'g', precision, 64)
	}
	return Expr(s.Expr)
}
