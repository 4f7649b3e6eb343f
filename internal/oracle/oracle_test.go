package oracle

import (
	"testing"

	"github.com/pres-solve/prescore/pkg/pres"
)

func TestRewriteFoldsArithmetic(t *testing.T) {
	o := New()
	half := o.RealConstant(1, 2)
	two := o.RealConstant(2, 1)

	sum, err := o.Add(half, two)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := o.EvaluateReal(sum)
	if err != nil {
		t.Fatalf("EvaluateReal: %v", err)
	}
	if got != 2.5 {
		t.Errorf("1/2 + 2 = %v, want 2.5", got)
	}
}

func TestRewriteSubstitutesFromEnv(t *testing.T) {
	o := New()
	v := pres.DataVar{Name: "x", SortName: pres.RealSort}
	env := pres.DataEnv{}.Extend(v, o.RealConstant(3, 1))

	result, err := o.Rewrite(Add{L: v, R: o.RealConstant(1, 1)}, env)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	r, ok := result.(Real)
	if !ok {
		t.Fatalf("Rewrite returned %T, want Real", result)
	}
	if f, _ := r.Val.Float64(); f != 4 {
		t.Errorf("x=3, x+1 = %v, want 4", f)
	}
}

func TestIsZeroIsOne(t *testing.T) {
	o := New()
	zero := o.RealConstant(0, 1)
	one := o.RealConstant(1, 1)
	two := o.RealConstant(2, 1)

	if tb, err := o.IsZero(zero); err != nil || tb != pres.True {
		t.Errorf("IsZero(0) = %v, %v", tb, err)
	}
	if tb, err := o.IsOne(one); err != nil || tb != pres.True {
		t.Errorf("IsOne(1) = %v, %v", tb, err)
	}
	if tb, err := o.IsZero(two); err != nil || tb != pres.False {
		t.Errorf("IsZero(2) = %v, %v", tb, err)
	}
}

func TestCompareLess(t *testing.T) {
	o := New()
	half := o.RealConstant(1, 2)
	two := o.RealConstant(2, 1)

	if tb, err := o.CompareLess(half, 1); err != nil || tb != pres.True {
		t.Errorf("CompareLess(1/2, 1) = %v, %v", tb, err)
	}
	if tb, err := o.CompareLess(two, 1); err != nil || tb != pres.False {
		t.Errorf("CompareLess(2, 1) = %v, %v", tb, err)
	}
}

func TestInvertAndScale(t *testing.T) {
	o := New()
	four := o.RealConstant(4, 1)

	inv, err := o.Invert(four)
	if err != nil {
		t.Fatalf("Invert: %v", err)
	}
	f, err := o.EvaluateReal(inv)
	if err != nil {
		t.Fatalf("EvaluateReal: %v", err)
	}
	if f != 0.25 {
		t.Errorf("1/4 = %v, want 0.25", f)
	}

	scaled, err := o.Scale(o.RealConstant(3, 1), four)
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	f, err = o.EvaluateReal(scaled)
	if err != nil {
		t.Fatalf("EvaluateReal: %v", err)
	}
	if f != 12 {
		t.Errorf("3*4 = %v, want 12", f)
	}
}

func TestEnumerateUnregisteredSortFails(t *testing.T) {
	o := New()
	if _, err := o.Enumerate(pres.NamedSort("Color")); err == nil {
		t.Error("Enumerate of an unregistered sort should fail")
	}
}

func TestEnumerateRegisteredSort(t *testing.T) {
	o := New()
	red := Elem{SortName: "Color", Index: 0, Label: "red"}
	green := Elem{SortName: "Color", Index: 1, Label: "green"}
	o.RegisterEnum("Color", []pres.DataExpr{red, green})

	dom, err := o.Enumerate(pres.NamedSort("Color"))
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if dom.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", dom.Len())
	}
	if dom.At(0).String() != "red" || dom.At(1).String() != "green" {
		t.Errorf("unexpected enumeration order: %v, %v", dom.At(0), dom.At(1))
	}
}

func TestEvaluateBoolConnectives(t *testing.T) {
	o := New()
	tru := o.BoolConstant(true)
	fls := o.BoolConstant(false)

	if tb, err := o.EvaluateBool(And2{L: tru, R: fls}); err != nil || tb != pres.False {
		t.Errorf("true && false = %v, %v", tb, err)
	}
	if tb, err := o.EvaluateBool(Or2{L: tru, R: fls}); err != nil || tb != pres.True {
		t.Errorf("true || false = %v, %v", tb, err)
	}
	if tb, err := o.EvaluateBool(Not{E: tru}); err != nil || tb != pres.False {
		t.Errorf("!true = %v, %v", tb, err)
	}
}
