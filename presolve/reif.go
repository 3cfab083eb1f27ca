package presolve

import (
	"github.com/fzn-format/go-fzn/model"
)

// ruleReif collapses a reified comparison once its control literal is
// fixed: true retags to the base comparison, false to its negation. An
// open control literal leaves the constraint for the solver.
func ruleReif(s *state, c *model.ConstraintSpec) (bool, error) {
	if len(c.Args) != 3 {
		return false, nil
	}
	base, ok := c.Kind.Reified()
	if !ok {
		return false, nil
	}
	r, fixed := s.m.FixedBool(c.Args[2])
	if !fixed {
		return false, nil
	}
	if r {
		c.Retag(base, c.Args[0], c.Args[1])
		return true, nil
	}
	neg, ok := base.Negate()
	if !ok {
		return false, nil
	}
	c.Retag(neg, c.Args[0], c.Args[1])
	return true, nil
}
