package pres_test

import (
	"testing"

	"github.com/pres-solve/prescore/internal/oracle"
	"github.com/pres-solve/prescore/pkg/pres"
)

func TestInstantiateParameterFreeChain(t *testing.T) {
	// mu X1 = X2, nu X2 = X1, init X1 -- a minimal two-equation mutual
	// reference with no data parameters, grounded on scenario S1.
	p := &pres.PRES{
		Equations: []pres.Equation{
			{Sign: pres.Mu, Name: "X1", RHS: pres.Var{Name: "X2"}},
			{Sign: pres.Nu, Name: "X2", RHS: pres.Var{Name: "X1"}},
		},
		InitName: "X1",
	}

	res, err := pres.Instantiate(p, oracle.New(), pres.DefaultOptions())
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if len(res.Equations) != 2 {
		t.Fatalf("Instantiate produced %d equations, want 2", len(res.Equations))
	}
	init, ok := res.LookupEquation(res.InitVar)
	if !ok {
		t.Fatalf("InitVar %q has no defining equation", res.InitVar)
	}
	if init.Sign != pres.Mu {
		t.Errorf("initial equation sign = %v, want Mu", init.Sign)
	}

	blocks := res.Blocks()
	if len(blocks) != 2 {
		t.Errorf("Blocks() = %d, want 2 (Mu then Nu)", len(blocks))
	}
}

func TestInstantiateGroundsParameterisedEquations(t *testing.T) {
	o := oracle.New()
	n := pres.DataVar{Name: "n", SortName: pres.RealSort}

	// mu X(n) = X(n) -- a single equation with a real parameter; only the
	// one ground instantiation X(3) reached from the initial call should
	// be emitted, since it only ever calls itself with the same argument.
	p := &pres.PRES{
		Equations: []pres.Equation{
			{
				Sign:   pres.Mu,
				Name:   "X",
				Params: []pres.DataVar{n},
				RHS:    pres.Var{Name: "X", Args: []pres.DataExpr{n}},
			},
		},
		InitName: "X",
		InitArgs: []pres.DataExpr{o.RealConstant(3, 1)},
	}

	res, err := pres.Instantiate(p, o, pres.DefaultOptions())
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if len(res.Equations) != 1 {
		t.Fatalf("Instantiate produced %d equations, want 1 (single reachable ground call)", len(res.Equations))
	}
}

func TestInstantiateUndefinedInitNameFails(t *testing.T) {
	p := &pres.PRES{
		Equations: []pres.Equation{{Sign: pres.Mu, Name: "X1", RHS: pres.Var{Name: "X1"}}},
		InitName:  "NoSuchVar",
	}
	if _, err := pres.Instantiate(p, oracle.New(), pres.DefaultOptions()); err == nil {
		t.Error("Instantiate with an undefined initial variable should fail")
	}
}
