package presolve

import (
	"math"

	"github.com/fzn-format/go-fzn/domain"
	"github.com/fzn-format/go-fzn/ir"
	"github.com/fzn-format/go-fzn/model"
)

// Rules for binary integer comparisons. Comparisons against a constant are
// absorbed into the variable's domain and nullified; variable-variable
// comparisons propagate bounds and survive.

func ruleIntEq(s *state, c *model.ConstraintSpec) (bool, error) {
	if len(c.Args) != 2 {
		return false, nil
	}
	if s.substAbsZero(c) {
		return true, nil
	}
	a, b := c.Args[0], c.Args[1]
	va, oka := s.m.FixedInt(a)
	vb, okb := s.m.FixedInt(b)
	switch {
	case oka && okb:
		if va == vb {
			s.nullify(c)
		} else {
			s.defect(c, "int_eq between distinct values")
		}
		return true, nil
	case oka:
		return s.pinInt(c, b, va), nil
	case okb:
		return s.pinInt(c, a, vb), nil
	}
	// Both open: equal variables share the intersection of their
	// domains.
	sa, sb := s.m.IntSpec(a), s.m.IntSpec(b)
	if sa == nil || sb == nil {
		return false, nil
	}
	changed := false
	if sb.Dom != nil {
		ch, empty := s.narrowInt(a, func(d *domain.Domain) *domain.Domain {
			return d.Narrow(sb.Dom)
		})
		changed = changed || ch
		if empty {
			s.defect(c, "int_eq with disjoint domains")
			return true, nil
		}
	}
	if sa.Dom != nil {
		ch, empty := s.narrowInt(b, func(d *domain.Domain) *domain.Domain {
			return d.Narrow(sa.Dom)
		})
		changed = changed || ch
		if empty {
			s.defect(c, "int_eq with disjoint domains")
			return true, nil
		}
	}
	return changed, nil
}

func ruleIntNe(s *state, c *model.ConstraintSpec) (bool, error) {
	if len(c.Args) != 2 {
		return false, nil
	}
	if s.substAbsZero(c) {
		return true, nil
	}
	a, b := c.Args[0], c.Args[1]
	va, oka := s.m.FixedInt(a)
	vb, okb := s.m.FixedInt(b)
	switch {
	case oka && okb:
		if va != vb {
			s.nullify(c)
		} else {
			s.defect(c, "int_ne between equal values")
		}
		return true, nil
	case oka:
		return s.dropValue(c, b, va), nil
	case okb:
		return s.dropValue(c, a, vb), nil
	}
	return false, nil
}

func ruleIntLe(s *state, c *model.ConstraintSpec) (bool, error) {
	return intOrder(s, c, 0)
}

// ruleIntLt narrows against constants directly and otherwise propagates
// strict bounds; int_lt(x, c) becomes the domain restriction x <= c-1.
func ruleIntLt(s *state, c *model.ConstraintSpec) (bool, error) {
	return intOrder(s, c, 1)
}

// int_ge and int_gt transition to their mirrored kinds; the le/lt rules
// pick the result up on the next sweep.
func ruleIntGe(s *state, c *model.ConstraintSpec) (bool, error) {
	if len(c.Args) != 2 {
		return false, nil
	}
	c.Retag(model.KindIntLe, c.Args[1], c.Args[0])
	return true, nil
}

func ruleIntGt(s *state, c *model.ConstraintSpec) (bool, error) {
	if len(c.Args) != 2 {
		return false, nil
	}
	c.Retag(model.KindIntLt, c.Args[1], c.Args[0])
	return true, nil
}

// intOrder handles a <= b (gap 0) and a < b (gap 1).
func intOrder(s *state, c *model.ConstraintSpec, gap int64) (bool, error) {
	if len(c.Args) != 2 {
		return false, nil
	}
	a, b := c.Args[0], c.Args[1]
	va, oka := s.m.FixedInt(a)
	vb, okb := s.m.FixedInt(b)
	// Strict bounds at the int64 extremes wrap; nothing is above MaxInt64
	// or below MinInt64, so those constraints are plain contradictions.
	switch {
	case oka && okb:
		if va+gap <= vb && !(gap == 1 && va == math.MaxInt64) {
			s.nullify(c)
		} else {
			s.defect(c, "order constraint between contradicting values")
		}
		return true, nil
	case oka:
		if gap == 1 && va == math.MaxInt64 {
			s.defect(c, "strict bound above maximum value")
			return true, nil
		}
		// va <= b: raise b's lower bound and absorb.
		_, empty := s.narrowInt(b, func(d *domain.Domain) *domain.Domain {
			return d.RemoveBelow(va + gap)
		})
		if empty {
			s.defect(c, "lower bound empties domain")
			return true, nil
		}
		s.nullify(c)
		return true, nil
	case okb:
		if gap == 1 && vb == math.MinInt64 {
			s.defect(c, "strict bound below minimum value")
			return true, nil
		}
		_, empty := s.narrowInt(a, func(d *domain.Domain) *domain.Domain {
			return d.RemoveAbove(vb - gap)
		})
		if empty {
			s.defect(c, "upper bound empties domain")
			return true, nil
		}
		s.nullify(c)
		return true, nil
	}

	sa, sb := s.m.IntSpec(a), s.m.IntSpec(b)
	if sa == nil || sb == nil {
		return false, nil
	}
	// Redundant once the domains cannot violate the order.
	if sa.Dom != nil && sb.Dom != nil && !sa.Dom.Empty() && !sb.Dom.Empty() &&
		sa.Dom.Max() <= math.MaxInt64-gap && sa.Dom.Max()+gap <= sb.Dom.Min() {
		s.nullify(c)
		return true, nil
	}
	changed := false
	if sb.Dom != nil && !sb.Dom.Empty() {
		if gap == 1 && sb.Dom.Max() == math.MinInt64 {
			s.defect(c, "order constraint empties domain")
			return true, nil
		}
		hi := sb.Dom.Max() - gap
		ch, empty := s.narrowInt(a, func(d *domain.Domain) *domain.Domain {
			return d.RemoveAbove(hi)
		})
		changed = changed || ch
		if empty {
			s.defect(c, "order constraint empties domain")
			return true, nil
		}
	}
	if sa.Dom != nil && !sa.Dom.Empty() {
		if gap == 1 && sa.Dom.Min() == math.MaxInt64 {
			s.defect(c, "order constraint empties domain")
			return true, nil
		}
		lo := sa.Dom.Min() + gap
		ch, empty := s.narrowInt(b, func(d *domain.Domain) *domain.Domain {
			return d.RemoveBelow(lo)
		})
		changed = changed || ch
		if empty {
			s.defect(c, "order constraint empties domain")
			return true, nil
		}
	}
	return changed, nil
}

func ruleSetIn(s *state, c *model.ConstraintSpec) (bool, error) {
	if len(c.Args) != 2 || c.Args[1].Type != ir.SetLitType {
		return false, nil
	}
	x, set := c.Args[0], c.Args[1].Set
	if v, ok := s.m.FixedInt(x); ok {
		if set.Contains(v) {
			s.nullify(c)
		} else {
			s.defect(c, "fixed value outside set")
		}
		return true, nil
	}
	if x.Type != ir.IntVarType {
		return false, nil
	}
	_, empty := s.narrowInt(x, func(d *domain.Domain) *domain.Domain {
		return d.Narrow(model.DomainOf(set))
	})
	if empty {
		s.defect(c, "set membership empties domain")
		return true, nil
	}
	s.nullify(c)
	return true, nil
}

// pinInt narrows an argument to a single value and absorbs the
// constraint. Non-variable arguments leave the constraint alone.
func (s *state) pinInt(c *model.ConstraintSpec, n *ir.Node, v int64) bool {
	if n.Type != ir.IntVarType {
		return false
	}
	_, empty := s.narrowInt(n, func(d *domain.Domain) *domain.Domain {
		return d.Narrow(domain.Singleton(v))
	})
	if empty {
		s.defect(c, "equality empties domain")
		return true
	}
	s.nullify(c)
	return true
}

func (s *state) dropValue(c *model.ConstraintSpec, n *ir.Node, v int64) bool {
	if n.Type != ir.IntVarType {
		return false
	}
	_, empty := s.narrowInt(n, func(d *domain.Domain) *domain.Domain {
		return d.RemoveValue(v)
	})
	if empty {
		s.defect(c, "disequality empties domain")
		return true
	}
	s.nullify(c)
	return true
}
