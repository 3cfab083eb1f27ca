package presolve

import (
	"github.com/fzn-format/go-fzn/domain"
	"github.com/fzn-format/go-fzn/ir"
	"github.com/fzn-format/go-fzn/model"
)

// ruleIntAbs propagates through y = |x|. The absOf index it maintains
// lets later equality tests against zero see through the absolute
// value: |x| == 0 is x == 0, and |x| != 0 is x != 0.
func ruleIntAbs(s *state, c *model.ConstraintSpec) (bool, error) {
	if len(c.Args) != 2 {
		return false, nil
	}
	x, y := c.Args[0], c.Args[1]
	if y.Type == ir.IntVarType && x.Type == ir.IntVarType {
		if cx, err := s.refs.Canonical(x); err == nil {
			// Recording the mapping is bookkeeping, not a rewrite; it
			// does not count as a change.
			s.absOf[y.Var] = cx
		}
	}

	if vx, ok := s.m.FixedInt(x); ok {
		if vx < 0 {
			vx = -vx
		}
		return s.pinInt(c, y, vx), nil
	}

	// The result is never negative.
	changed, empty := s.narrowInt(y, func(d *domain.Domain) *domain.Domain {
		return d.RemoveBelow(0)
	})
	if empty {
		s.defect(c, "absolute value with all-negative result domain")
		return true, nil
	}

	if vy, ok := s.m.FixedInt(y); ok && vy == 0 {
		// |x| = 0 pins x too.
		return s.pinInt(c, x, 0), nil
	}
	return changed, nil
}

// substAbsZero rewrites an equality or disequality between an
// absolute-value result and the literal zero to test the underlying
// variable directly. Reports whether the constraint changed.
func (s *state) substAbsZero(c *model.ConstraintSpec) bool {
	if len(c.Args) != 2 {
		return false
	}
	a, b := c.Args[0], c.Args[1]
	v, lit := a, b
	if a.IsIntLit() && !b.IsIntLit() {
		v, lit = b, a
	}
	lv, ok := lit.IntValue()
	if v.Type != ir.IntVarType || !ok || lv != 0 {
		return false
	}
	x, ok := s.absOf[v.Var]
	if !ok || (x.Var == v.Var && x.Type == v.Type) {
		return false
	}
	c.Retag(c.Kind, x, ir.FromInt(0))
	return true
}
