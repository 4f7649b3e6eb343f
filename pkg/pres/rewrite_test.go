package pres_test

import (
	"testing"

	"github.com/pres-solve/prescore/internal/oracle"
	"github.com/pres-solve/prescore/pkg/pres"
)

func TestSimplifyFoldsBooleanConstants(t *testing.T) {
	o := oracle.New()
	tru := pres.Data{D: o.BoolConstant(true)}
	fls := pres.Data{D: o.BoolConstant(false)}
	x := pres.Var{Name: "X"}

	got, err := pres.Simplify(pres.And{L: tru, R: x}, o)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if v, ok := got.(pres.Var); !ok || v.Name != "X" {
		t.Errorf("Simplify(true && X) = %#v, want X", got)
	}

	got, err = pres.Simplify(pres.Or{L: x, R: tru}, o)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if d, ok := got.(pres.Data); !ok || d.D != pres.DataExpr(o.BoolConstant(true)) {
		t.Errorf("Simplify(X || true) = %#v, want true", got)
	}

	got, err = pres.Simplify(pres.And{L: fls, R: x}, o)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if d, ok := got.(pres.Data); !ok || d.D != pres.DataExpr(o.BoolConstant(false)) {
		t.Errorf("Simplify(false && X) = %#v, want false", got)
	}
}

func TestSimplifyImpDesugarsToOrOfNegation(t *testing.T) {
	o := oracle.New()
	fls := pres.Data{D: o.BoolConstant(false)}
	x := pres.Var{Name: "X"}

	// false => X  ==  !false || X  ==  true
	got, err := pres.Simplify(pres.Imp{L: fls, R: x}, o)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	d, ok := got.(pres.Data)
	if !ok || d.D != pres.DataExpr(o.BoolConstant(true)) {
		t.Errorf("Simplify(false => X) = %#v, want true", got)
	}
}

func TestSimplifyPlusDropsRealZero(t *testing.T) {
	o := oracle.New()
	zero := pres.Data{D: o.RealConstant(0, 1)}
	x := pres.Var{Name: "X"}

	got, err := pres.Simplify(pres.Plus{L: zero, R: x}, o)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if v, ok := got.(pres.Var); !ok || v.Name != "X" {
		t.Errorf("Simplify(0 + X) = %#v, want X", got)
	}
}

func TestSimplifyConstMulByZeroAndOne(t *testing.T) {
	o := oracle.New()
	x := pres.Var{Name: "X"}

	got, err := pres.Simplify(pres.ConstMul{K: o.RealConstant(0, 1), E: x}, o)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if d, ok := got.(pres.Data); !ok || d.D.String() != "0" {
		t.Errorf("Simplify(0*X) = %#v, want 0", got)
	}

	got, err = pres.Simplify(pres.ConstMul{K: o.RealConstant(1, 1), E: x}, o)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if v, ok := got.(pres.Var); !ok || v.Name != "X" {
		t.Errorf("Simplify(1*X) = %#v, want X", got)
	}
}

func TestSimplifyMinusMinusCancels(t *testing.T) {
	o := oracle.New()
	x := pres.Var{Name: "X"}

	got, err := pres.Simplify(pres.Minus{E: pres.Minus{E: x}}, o)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if v, ok := got.(pres.Var); !ok || v.Name != "X" {
		t.Errorf("Simplify(--X) = %#v, want X", got)
	}
}

func TestSimplifyEqInfAndEqNInfOnFiniteReal(t *testing.T) {
	o := oracle.New()
	five := pres.Data{D: o.RealConstant(5, 1)}

	got, err := pres.Simplify(pres.EqInf{E: five}, o)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if d, ok := got.(pres.Data); !ok || d.D != pres.DataExpr(o.BoolConstant(false)) {
		t.Errorf("Simplify(EqInf(5)) = %#v, want false", got)
	}

	got, err = pres.Simplify(pres.EqNInf{E: five}, o)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if d, ok := got.(pres.Data); !ok || d.D != pres.DataExpr(o.BoolConstant(true)) {
		t.Errorf("Simplify(EqNInf(5)) = %#v, want true", got)
	}
}

func TestEnumerateQuantifiersFoldsOverRegisteredSort(t *testing.T) {
	o := oracle.New()
	red := oracle.Elem{SortName: "Color", Index: 0, Label: "red"}
	green := oracle.Elem{SortName: "Color", Index: 1, Label: "green"}
	o.RegisterEnum("Color", []pres.DataExpr{red, green})

	c := pres.DataVar{Name: "c", SortName: pres.NamedSort("Color")}
	body := pres.Data{D: c}
	e := pres.Supremum{Vars: []pres.DataVar{c}, Body: body}

	got, err := pres.EnumerateQuantifiers(e, o)
	if err != nil {
		t.Fatalf("EnumerateQuantifiers: %v", err)
	}
	if _, ok := got.(pres.Or); !ok {
		t.Errorf("EnumerateQuantifiers over a 2-element domain = %#v, want Or", got)
	}
}

func TestEnumerateQuantifiersLeavesUnenumerableSortQuantified(t *testing.T) {
	o := oracle.New()
	c := pres.DataVar{Name: "c", SortName: pres.NamedSort("Unregistered")}
	e := pres.Infimum{Vars: []pres.DataVar{c}, Body: pres.Data{D: c}}

	got, err := pres.EnumerateQuantifiers(e, o)
	if err != nil {
		t.Fatalf("EnumerateQuantifiers: %v", err)
	}
	if _, ok := got.(pres.Infimum); !ok {
		t.Errorf("EnumerateQuantifiers over an unenumerable sort = %#v, want it left quantified", got)
	}
}
