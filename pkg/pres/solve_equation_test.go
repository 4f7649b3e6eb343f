package pres_test

import (
	"testing"

	"github.com/pres-solve/prescore/internal/oracle"
	"github.com/pres-solve/prescore/pkg/pres"
)

func TestSolveEquationFlatLineMu(t *testing.T) {
	o := oracle.New()
	// mu X = 1 (no occurrence of X at all): the only flat line is the
	// constant 1, so the solution collapses to Data(1).
	rhs := pres.Data{D: o.RealConstant(1, 1)}

	solution, err := pres.SolveEquation(pres.Mu, "X", rhs, o)
	if err != nil {
		t.Fatalf("SolveEquation: %v", err)
	}
	got, err := pres.EvaluateGround(solution, o)
	if err != nil {
		t.Fatalf("EvaluateGround: %v", err)
	}
	if got != 1 {
		t.Errorf("solve(mu X = 1) = %v, want 1", got)
	}
}

func TestSolveEquationShallowLineMu(t *testing.T) {
	o := oracle.New()
	half := o.RealConstant(1, 2)
	one := o.RealConstant(1, 1)
	// mu X = 1/2*X + 1 -- a single shallow line (gradient 1/2 < 1),
	// whose closed form is 1/(1 - 1/2) * 1 = 2.
	rhs := pres.Plus{L: pres.ConstMul{K: half, E: pres.Var{Name: "X"}}, R: pres.Data{D: one}}

	solution, err := pres.SolveEquation(pres.Mu, "X", rhs, o)
	if err != nil {
		t.Fatalf("SolveEquation: %v", err)
	}
	got, err := pres.EvaluateGround(solution, o)
	if err != nil {
		t.Fatalf("EvaluateGround: %v", err)
	}
	if got != 2 {
		t.Errorf("solve(mu X = 1/2*X + 1) = %v, want 2", got)
	}
}

func TestSolveEquationAndDistributesOverMu(t *testing.T) {
	o := oracle.New()
	one := pres.Data{D: o.RealConstant(1, 1)}
	x := pres.Var{Name: "X"}

	// mu X = 1 && X -- the And node distributes before reaching the
	// linear solver, per §4.E's mu/And peeling rule.
	solution, err := pres.SolveEquation(pres.Mu, "X", pres.And{L: one, R: x}, o)
	if err != nil {
		t.Fatalf("SolveEquation: %v", err)
	}
	if _, ok := solution.(pres.And); !ok {
		t.Errorf("SolveEquation(mu, 1 && X) = %#v, want an And of two sub-solutions", solution)
	}
}
