package pres

import (
	"math"
	"testing"
)

func TestExtPlus(t *testing.T) {
	inf, ninf := math.Inf(1), math.Inf(-1)
	cases := []struct {
		name    string
		l, r    float64
		want    float64
	}{
		{"finite + finite", 2, 3, 5},
		{"+inf + anything", inf, ninf, inf},
		{"+inf + finite", inf, 7, inf},
		{"-inf + finite", ninf, 7, ninf},
		{"-inf + +inf left-biased", ninf, inf, inf},
		{"-inf + -inf", ninf, ninf, ninf},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := extPlus(c.l, c.r); got != c.want {
				t.Errorf("extPlus(%v, %v) = %v, want %v", c.l, c.r, got, c.want)
			}
		})
	}
}

func TestExtScaleZeroShortCircuit(t *testing.T) {
	inf, ninf := math.Inf(1), math.Inf(-1)
	if got := extScale(0, inf); got != 0 {
		t.Errorf("extScale(0, +Inf) = %v, want 0", got)
	}
	if got := extScale(0, ninf); got != 0 {
		t.Errorf("extScale(0, -Inf) = %v, want 0", got)
	}
	if got := extScale(2, inf); got != inf {
		t.Errorf("extScale(2, +Inf) = %v, want +Inf", got)
	}
	if got := extScale(3, 4); got != 12 {
		t.Errorf("extScale(3, 4) = %v, want 12", got)
	}
}

func TestExtNegSwapsInfinities(t *testing.T) {
	inf, ninf := math.Inf(1), math.Inf(-1)
	if got := extNeg(inf); got != ninf {
		t.Errorf("extNeg(+Inf) = %v, want -Inf", got)
	}
	if got := extNeg(ninf); got != inf {
		t.Errorf("extNeg(-Inf) = %v, want +Inf", got)
	}
	if got := extNeg(5); got != -5 {
		t.Errorf("extNeg(5) = %v, want -5", got)
	}
}

func TestBoolToReal(t *testing.T) {
	if !isPlusInf(boolToReal(true)) {
		t.Error("boolToReal(true) should be +Inf")
	}
	if !isMinusInf(boolToReal(false)) {
		t.Error("boolToReal(false) should be -Inf")
	}
}

func TestExtAbsDiff(t *testing.T) {
	inf, ninf := math.Inf(1), math.Inf(-1)
	if got := extAbsDiff(inf, inf); got != 0 {
		t.Errorf("extAbsDiff(+Inf, +Inf) = %v, want 0", got)
	}
	if got := extAbsDiff(inf, ninf); !math.IsInf(got, 1) {
		t.Errorf("extAbsDiff(+Inf, -Inf) = %v, want +Inf", got)
	}
	if got := extAbsDiff(inf, 3); !math.IsInf(got, 1) {
		t.Errorf("extAbsDiff(+Inf, 3) = %v, want +Inf", got)
	}
	if got := extAbsDiff(3, 5); got != 2 {
		t.Errorf("extAbsDiff(3, 5) = %v, want 2", got)
	}
}
