package pres_test

import (
	"testing"

	"github.com/pres-solve/prescore/internal/oracle"
	"github.com/pres-solve/prescore/pkg/pres"
)

func TestNormalizePushesMinusThroughAnd(t *testing.T) {
	o := oracle.New()
	x, y := pres.Var{Name: "X"}, pres.Var{Name: "Y"}

	got, err := pres.Normalize(pres.Minus{E: pres.And{L: x, R: y}}, true, o)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	or, ok := got.(pres.Or)
	if !ok {
		t.Fatalf("Normalize(-(X && Y)) = %#v, want Or(-X, -Y)", got)
	}
	if _, ok := or.L.(pres.Minus); !ok {
		t.Errorf("left operand %#v is not negated", or.L)
	}
	if _, ok := or.R.(pres.Minus); !ok {
		t.Errorf("right operand %#v is not negated", or.R)
	}
}

func TestNormalizeDistributesConstMulOverOr(t *testing.T) {
	o := oracle.New()
	x, y := pres.Var{Name: "X"}, pres.Var{Name: "Y"}
	two := o.RealConstant(2, 1)

	got, err := pres.Normalize(pres.ConstMul{K: two, E: pres.Or{L: x, R: y}}, true, o)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	or, ok := got.(pres.Or)
	if !ok {
		t.Fatalf("Normalize(2*(X || Y)) = %#v, want Or(2*X, 2*Y)", got)
	}
	if _, ok := or.L.(pres.ConstMul); !ok {
		t.Errorf("left operand %#v is not scaled", or.L)
	}
}

func TestNormalizeMergesLikeTermsInPlus(t *testing.T) {
	o := oracle.New()
	x := pres.Var{Name: "X"}
	one := o.RealConstant(1, 1)
	two := o.RealConstant(2, 1)

	// 1*X + 2*X -> 3*X
	got, err := pres.Normalize(pres.Plus{
		L: pres.ConstMul{K: one, E: x},
		R: pres.ConstMul{K: two, E: x},
	}, true, o)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	cm, ok := got.(pres.ConstMul)
	if !ok {
		t.Fatalf("Normalize(1*X + 2*X) = %#v, want a single ConstMul", got)
	}
	f, err := o.EvaluateReal(cm.K)
	if err != nil {
		t.Fatalf("EvaluateReal: %v", err)
	}
	if f != 3 {
		t.Errorf("merged coefficient = %v, want 3", f)
	}
}

func TestNormalizeDropsDuplicateDisjuncts(t *testing.T) {
	o := oracle.New()
	x := pres.Var{Name: "X"}

	got, err := pres.Normalize(pres.Or{L: x, R: pres.Or{L: x, R: x}}, false, o)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	v, ok := got.(pres.Var)
	if !ok || v.Name != "X" {
		t.Errorf("Normalize(X || X || X) = %#v, want a single X", got)
	}
}

func TestNormalizePullsCondSmOutOfAnd(t *testing.T) {
	o := oracle.New()
	c, x, y, z := pres.Var{Name: "C"}, pres.Var{Name: "X"}, pres.Var{Name: "Y"}, pres.Var{Name: "Z"}
	cond := pres.CondSm{C: c, T: x, E: y}

	got, err := pres.Normalize(pres.And{L: cond, R: z}, true, o)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if _, ok := got.(pres.CondSm); !ok {
		t.Errorf("Normalize(CondSm(C,X,Y) && Z) = %#v, want the conditional pulled outward", got)
	}
}
