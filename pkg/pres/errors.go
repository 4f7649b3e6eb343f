package pres

import "fmt"

// ErrorKind classifies a SolveError, matching the error kinds of spec.md
// §7. Grounded on the teacher's ValidationError/ConstraintViolationError
// pattern (strategy.go, constraint_types.go): a small struct error type
// with a Kind-like discriminant rather than a family of sentinel values.
type ErrorKind int

const (
	// Unsupported: an operator appeared where eliminations were required
	// (a lingering quantifier or Sum in the normal-form builder).
	Unsupported ErrorKind = iota
	// Unbounded: the instantiator's reachable set is infinite and no
	// highway cap was set.
	Unbounded
	// InvalidReference: an equation or the initial state references an
	// unknown variable.
	InvalidReference
	// InvariantViolation: a structural invariant of §3.2/§3.3 was broken.
	InvariantViolation
	// Undecidable: the rewrite oracle could not compare a gradient to 1.
	Undecidable
	// OracleFailure: the rewriter returned an error for a well-formed
	// query.
	OracleFailure
)

// String renders the error kind.
func (k ErrorKind) String() string {
	switch k {
	case Unsupported:
		return "Unsupported"
	case Unbounded:
		return "Unbounded"
	case InvalidReference:
		return "InvalidReference"
	case InvariantViolation:
		return "InvariantViolation"
	case Undecidable:
		return "Undecidable"
	case OracleFailure:
		return "OracleFailure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// SolveError is the single error type raised by every component of this
// package (§7). The policy is surface-and-abort: no component recovers an
// error produced by a lower component; the only fallback is SolvePRES's
// explicit, caller-visible retry of a Gauss Undecidable through the
// numerical driver (§7, §9).
type SolveError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements error.
func (e *SolveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *SolveError) Unwrap() error { return e.Cause }

// newErr builds a SolveError with no wrapped cause.
func newErr(kind ErrorKind, format string, args ...any) *SolveError {
	return &SolveError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// wrapErr builds a SolveError wrapping cause.
func wrapErr(kind ErrorKind, cause error, format string, args ...any) *SolveError {
	return &SolveError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}
