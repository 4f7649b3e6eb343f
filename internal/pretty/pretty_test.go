package pretty_test

import (
	"strings"
	"testing"

	"github.com/pres-solve/prescore/internal/oracle"
	"github.com/pres-solve/prescore/internal/pretty"
	"github.com/pres-solve/prescore/pkg/pres"
)

func TestExprRendersInfixConnectives(t *testing.T) {
	x, y := pres.Var{Name: "X"}, pres.Var{Name: "Y"}

	if got := pretty.Expr(pres.And{L: x, R: y}); got != "(X ∧ Y)" {
		t.Errorf("And rendering = %q, want (X ∧ Y)", got)
	}
	if got := pretty.Expr(pres.Or{L: x, R: y}); got != "(X ∨ Y)" {
		t.Errorf("Or rendering = %q, want (X ∨ Y)", got)
	}
	if got := pretty.Expr(pres.Imp{L: x, R: y}); got != "(X ⇒ Y)" {
		t.Errorf("Imp rendering = %q, want (X ⇒ Y)", got)
	}
}

func TestExprParenthesizesCompoundMinusOperand(t *testing.T) {
	x, y := pres.Var{Name: "X"}, pres.Var{Name: "Y"}

	got := pretty.Expr(pres.Minus{E: pres.And{L: x, R: y}})
	if got != "-(X ∧ Y)" {
		t.Errorf("Minus(And(X,Y)) rendering = %q, want -(X ∧ Y)", got)
	}

	// A bare variable operand needs no parentheses.
	got = pretty.Expr(pres.Minus{E: x})
	if got != "-X" {
		t.Errorf("Minus(X) rendering = %q, want -X", got)
	}
}

func TestExprRendersQuantifiers(t *testing.T) {
	c := pres.DataVar{Name: "c", SortName: pres.NamedSort("Color")}
	e := pres.Supremum{Vars: []pres.DataVar{c}, Body: pres.Data{D: c}}
	got := pretty.Expr(e)
	if !strings.HasPrefix(got, "⊔ c.") {
		t.Errorf("Supremum rendering = %q, want it to start with '⊔ c.'", got)
	}
}

func TestExprRendersConditionals(t *testing.T) {
	c, tBranch, eBranch := pres.Var{Name: "C"}, pres.Var{Name: "T"}, pres.Var{Name: "E"}

	got := pretty.Expr(pres.CondSm{C: c, T: tBranch, E: eBranch})
	if got != "if C ⋖ 0 then T else E" {
		t.Errorf("CondSm rendering = %q", got)
	}

	got = pretty.Expr(pres.CondEq{C: c, T: tBranch, E: eBranch})
	if got != "if C ≼ 0 then T else E" {
		t.Errorf("CondEq rendering = %q", got)
	}
}

func TestEquationRendersSignAndParams(t *testing.T) {
	n := pres.DataVar{Name: "n", SortName: pres.RealSort}
	eq := pres.Equation{
		Sign:   pres.Nu,
		Name:   "X",
		Params: []pres.DataVar{n},
		RHS:    pres.Data{D: n},
	}
	got := pretty.Equation(eq)
	want := "ν X(n) = n"
	if got != want {
		t.Errorf("Equation rendering = %q, want %q", got, want)
	}
}

func TestSolutionRendersNumericAndSymbolic(t *testing.T) {
	numeric := pres.Solution{Kind: pres.Numeric, Value: 2.5}
	if got := pretty.Solution(numeric, 3); got != "2.5" {
		t.Errorf("Numeric solution rendering = %q, want 2.5", got)
	}

	o := oracle.New()
	symbolic := pres.Solution{Kind: pres.Symbolic, Expr: pres.Data{D: o.RealConstant(1, 2)}}
	if got := pretty.Solution(symbolic, 15); got != "1/2" {
		t.Errorf("Symbolic solution rendering = %q, want 1/2", got)
	}
}
