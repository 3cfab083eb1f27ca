package presolve

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariant wraps every invariant violation; a compilation that
	// returns it produced no output safe to hand to a backend.
	ErrInvariant = errors.New("invariant violation")
)

// InvariantViolation reports a defect in an earlier phase or in the
// upstream compiler: an alias cycle, a dangling defined variable, a
// missing canonical entry. It is fatal to the whole compilation.
type InvariantViolation struct {
	Phase      string
	Constraint int // -1 when not tied to a constraint
	Variable   int // -1 when not tied to a variable
	Msg        string
}

func (e *InvariantViolation) Error() string {
	s := fmt.Sprintf("%s: %s", e.Phase, e.Msg)
	if e.Constraint >= 0 {
		s += fmt.Sprintf(" (constraint %d)", e.Constraint)
	}
	if e.Variable >= 0 {
		s += fmt.Sprintf(" (variable %d)", e.Variable)
	}
	return s
}

func (e *InvariantViolation) Unwrap() error {
	return ErrInvariant
}

func violation(phase string, msg string, args ...any) *InvariantViolation {
	return &InvariantViolation{
		Phase:      phase,
		Constraint: -1,
		Variable:   -1,
		Msg:        fmt.Sprintf(msg, args...),
	}
}

// Defect records a provably infeasible narrowing found by a rewrite rule.
// Defects do not abort the pipeline; they accumulate on the result and make
// it infeasible as a whole.
type Defect struct {
	Constraint int
	Reason     string
}

func (d Defect) String() string {
	return fmt.Sprintf("constraint %d: %s", d.Constraint, d.Reason)
}
