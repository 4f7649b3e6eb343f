// Package scenarios provides the six end-to-end PRES systems of §8 as
// literal Go constructions, since the core takes no textual concrete
// syntax (§6.3, §14 Non-goals). cmd/prescore and the pkg/pres tests
// build their input PRES from here rather than duplicating the six
// systems.
package scenarios

import (
	"strings"

	"github.com/pres-solve/prescore/internal/oracle"
	"github.com/pres-solve/prescore/pkg/pres"
)

// Scenario bundles one of the §8 end-to-end systems with the oracle it
// was built against and the expected solution, for display and for
// tests to assert against.
type Scenario struct {
	Name     string
	Expected string
	PRES     *pres.PRES
	Oracle   *oracle.Oracle
}

func eq(sign pres.Sign, name string, rhs pres.Expr) pres.Equation {
	return pres.Equation{Sign: sign, Name: name, RHS: rhs}
}

func v(name string) pres.Var { return pres.Var{Name: name} }

// S1: mu X1 = X2, nu X2 = X1, init X1. Expected -Inf.
func S1() Scenario {
	return Scenario{
		Name:     "S1",
		Expected: "-Inf",
		Oracle:   oracle.New(),
		PRES: &pres.PRES{
			Equations: []pres.Equation{
				eq(pres.Mu, "X1", v("X2")),
				eq(pres.Nu, "X2", v("X1")),
			},
			InitName: "X1",
		},
	}
}

// S2: nu X1 = X2, mu X2 = X1, init X1. Expected +Inf.
func S2() Scenario {
	return Scenario{
		Name:     "S2",
		Expected: "+Inf",
		Oracle:   oracle.New(),
		PRES: &pres.PRES{
			Equations: []pres.Equation{
				eq(pres.Nu, "X1", v("X2")),
				eq(pres.Mu, "X2", v("X1")),
			},
			InitName: "X1",
		},
	}
}

// S3: mu X1 = X2 && X1, nu X2 = X1 || X3, mu X3 = X1 || X2, init X1. Expected -Inf.
func S3() Scenario {
	return Scenario{
		Name:     "S3",
		Expected: "-Inf",
		Oracle:   oracle.New(),
		PRES: &pres.PRES{
			Equations: []pres.Equation{
				eq(pres.Mu, "X1", pres.And{L: v("X2"), R: v("X1")}),
				eq(pres.Nu, "X2", pres.Or{L: v("X1"), R: v("X3")}),
				eq(pres.Mu, "X3", pres.Or{L: v("X1"), R: v("X2")}),
			},
			InitName: "X1",
		},
	}
}

// S4: mu X = X + true, init X. Expected +Inf.
func S4() Scenario {
	o := oracle.New()
	return Scenario{
		Name:     "S4",
		Expected: "+Inf",
		Oracle:   o,
		PRES: &pres.PRES{
			Equations: []pres.Equation{
				eq(pres.Mu, "X", pres.Plus{L: v("X"), R: pres.Data{D: o.BoolConstant(true)}}),
			},
			InitName: "X",
		},
	}
}

// S5: mu X = (1/2*X + 1) || 0, init X. Expected 2.0.
func S5() Scenario {
	o := oracle.New()
	half := o.RealConstant(1, 2)
	one := o.RealConstant(1, 1)
	zero := o.RealConstant(0, 1)
	return Scenario{
		Name:     "S5",
		Expected: "2.0",
		Oracle:   o,
		PRES: &pres.PRES{
			Equations: []pres.Equation{
				eq(pres.Mu, "X", pres.Or{
					L: pres.Plus{L: pres.ConstMul{K: half, E: v("X")}, R: pres.Data{D: one}},
					R: pres.Data{D: zero},
				}),
			},
			InitName: "X",
		},
	}
}

// S6: mu X = 1 && (X + 1), init X. Expected 1.0.
func S6() Scenario {
	o := oracle.New()
	one := o.RealConstant(1, 1)
	return Scenario{
		Name:     "S6",
		Expected: "1.0",
		Oracle:   o,
		PRES: &pres.PRES{
			Equations: []pres.Equation{
				eq(pres.Mu, "X", pres.And{
					L: pres.Data{D: one},
					R: pres.Plus{L: v("X"), R: pres.Data{D: one}},
				}),
			},
			InitName: "X",
		},
	}
}

// All returns the six scenarios in order.
func All() []Scenario {
	return []Scenario{S1(), S2(), S3(), S4(), S5(), S6()}
}

// ByName looks up a scenario case-insensitively by its Name ("s1".."s6").
func ByName(name string) (Scenario, bool) {
	for _, s := range All() {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Scenario{}, false
}
