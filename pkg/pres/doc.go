// Package pres implements the core of a solver for Parameterised Real
// Equation Systems (PRES): fixed-point equations over the extended reals
// whose right-hand sides combine propositional variable references, data
// expressions, boolean connectives, extended-real arithmetic, quantifiers,
// infinity predicates and two three-way conditionals.
//
// The package is organised around the pipeline described by the spec it
// implements: a term algebra and simplifying rewriter (term.go, rewrite.go),
// a quantifier enumerator (enumerate.go), an instantiator that grounds a
// PRES into a parameter-free RES (instantiate.go), a normal-form builder
// (normalform.go), a single-equation fixed-point solver (solve_equation.go),
// a Gauss-elimination driver (gauss.go) and a numerical Kleene-iteration
// driver (numerical.go). Data expressions themselves are treated as opaque
// terms rewritten by a caller-supplied DataOracle; this package never
// inspects their internals.
package pres
