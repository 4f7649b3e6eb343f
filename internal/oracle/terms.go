// Package oracle is a reference tree-walking implementation of
// pres.DataOracle (§9 "Rewriter boundary"): a small closed data-term
// language over rationals and booleans, plus finite enumerable sorts,
// enough to drive the PRES solver end to end without an external data
// rewrite engine. It exists so pkg/pres is independently testable and
// so the CLI and worked examples have something concrete to run
// against; it is not a parser for, or a stand-in for, a general
// first-order data specification language.
package oracle

import (
	"fmt"
	"math/big"

	"github.com/pres-solve/prescore/pkg/pres"
)

// Real is a ground rational-valued data term, the oracle's concrete
// representation of pres.RealSort.
type Real struct{ Val *big.Rat }

// Sort implements pres.DataExpr.
func (Real) Sort() pres.Sort { return pres.RealSort }

// String implements pres.DataExpr.
func (r Real) String() string { return r.Val.RatString() }

// Bool is a ground boolean data term.
type Bool struct{ Val bool }

// Sort implements pres.DataExpr.
func (Bool) Sort() pres.Sort { return pres.BoolSort }

// String implements pres.DataExpr.
func (b Bool) String() string {
	if b.Val {
		return "true"
	}
	return "false"
}

// Elem is one value of a registered finite enumerable sort, identified
// by its sort and its position in the enumeration (§3.1, §4.B). Two
// Elems are equal exactly when both fields match.
type Elem struct {
	SortName string
	Index    int
	Label    string
}

// Sort implements pres.DataExpr.
func (e Elem) Sort() pres.Sort { return pres.NamedSort(e.SortName) }

// String implements pres.DataExpr.
func (e Elem) String() string {
	if e.Label != "" {
		return e.Label
	}
	return fmt.Sprintf("%s#%d", e.SortName, e.Index)
}

// Add is L + R over the reals, in unreduced (not-yet-rewritten) form.
type Add struct{ L, R pres.DataExpr }

func (Add) Sort() pres.Sort     { return pres.RealSort }
func (a Add) String() string    { return fmt.Sprintf("(%s + %s)", a.L, a.R) }

// Neg is -E over the reals.
type Neg struct{ E pres.DataExpr }

func (Neg) Sort() pres.Sort  { return pres.RealSort }
func (n Neg) String() string { return fmt.Sprintf("-%s", n.E) }

// Mul is K * E for a rational constant K and a real-sorted operand E.
type Mul struct {
	K *big.Rat
	E pres.DataExpr
}

func (Mul) Sort() pres.Sort  { return pres.RealSort }
func (m Mul) String() string { return fmt.Sprintf("%s*%s", m.K.RatString(), m.E) }

// Inv is 1/E over the reals.
type Inv struct{ E pres.DataExpr }

func (Inv) Sort() pres.Sort  { return pres.RealSort }
func (i Inv) String() string { return fmt.Sprintf("(1/%s)", i.E) }

// Less is the boolean L < R over two real-sorted operands.
type Less struct{ L, R pres.DataExpr }

func (Less) Sort() pres.Sort  { return pres.BoolSort }
func (l Less) String() string { return fmt.Sprintf("(%s < %s)", l.L, l.R) }

// Eq is the boolean L == R, valid for two operands of the same sort.
type Eq struct{ L, R pres.DataExpr }

func (Eq) Sort() pres.Sort  { return pres.BoolSort }
func (e Eq) String() string { return fmt.Sprintf("(%s == %s)", e.L, e.R) }

// Not is the boolean negation of E.
type Not struct{ E pres.DataExpr }

func (Not) Sort() pres.Sort  { return pres.BoolSort }
func (n Not) String() string { return fmt.Sprintf("!%s", n.E) }

// And2 and Or2 are the boolean connectives, named with a "2" suffix to
// avoid colliding with pres.And/pres.Or (which are PRES-level Expr
// variants, not data terms).
type And2 struct{ L, R pres.DataExpr }
type Or2 struct{ L, R pres.DataExpr }

func (And2) Sort() pres.Sort  { return pres.BoolSort }
func (a And2) String() string { return fmt.Sprintf("(%s && %s)", a.L, a.R) }
func (Or2) Sort() pres.Sort   { return pres.BoolSort }
func (o Or2) String() string  { return fmt.Sprintf("(%s || %s)", o.L, o.R) }
