package presolve

import (
	"github.com/fzn-format/go-fzn/ir"
	"github.com/fzn-format/go-fzn/model"
)

// classifyComputed marks the variables a backend never needs to search
// on: each scheduled definition pins its target once the requirements
// are known, so the target is computed rather than free. Forced
// variables were handed back to search by the cycle breaker and stay
// free no matter what defines them.
func (s *state) classifyComputed(order []*model.ConstraintSpec, forced *model.NodeSet) {
	s.computed = model.NewNodeSet()
	for _, c := range order {
		t := c.DefinedArg
		if t == nil || forced.Has(t) || s.m.Aliased(t) {
			continue
		}
		if !s.eligibleTarget(t) {
			continue
		}
		s.computed.Add(t)
	}
	for _, c := range order {
		s.classifyHiddenSum(c, forced)
	}
}

// classifyHiddenSum recognizes an undeclared functional definition in a
// linear equation: when an end coefficient is +-1 and the remaining
// coefficients share a sign, the end variable is determined by the
// others. Only an introduced variable with no other role is claimed,
// and only when every other variable in the row is a plain search
// variable, so the claim cannot reorder anything.
func (s *state) classifyHiddenSum(c *model.ConstraintSpec, forced *model.NodeSet) {
	if c.Kind != model.KindIntLinEq || c.DefinedArg != nil {
		return
	}
	terms, _, ok := linParts(c)
	if !ok || len(terms) < 2 {
		return
	}
	try := func(i int) bool {
		t := terms[i]
		if t.coeff != 1 && t.coeff != -1 {
			return false
		}
		if t.v.Type != ir.IntVarType || !s.m.Introduced(t.v) {
			return false
		}
		cv, err := s.refs.Canonical(t.v)
		if err != nil {
			return false
		}
		if s.computed.Has(cv) || forced.Has(cv) || s.targets.Has(cv) || !s.eligibleTarget(cv) {
			return false
		}
		sign := 0
		for j, o := range terms {
			if j == i {
				continue
			}
			if o.v.IsVar() && o.v.Type == t.v.Type && o.v.Var == t.v.Var {
				// The candidate occurs twice; not functional in it.
				return false
			}
			switch {
			case o.coeff == 0:
				return false
			case o.coeff > 0:
				if sign < 0 {
					return false
				}
				sign = 1
			default:
				if sign > 0 {
					return false
				}
				sign = -1
			}
			if o.v.IsVar() {
				ov, err := s.refs.Canonical(o.v)
				if err != nil || s.computed.Has(ov) {
					return false
				}
			}
		}
		c.DefinedArg = cv
		s.targets.Add(cv)
		s.definer[keyOf(cv)] = c
		s.computed.Add(cv)
		return true
	}
	if !try(0) {
		try(len(terms) - 1)
	}
}
