package presolve

import (
	"github.com/fzn-format/go-fzn/domain"
	"github.com/fzn-format/go-fzn/ir"
	"github.com/fzn-format/go-fzn/model"
)

// Rules for boolean constraints. Fixed literals propagate across the
// constraint; fully decided constraints are nullified or become defects.

func ruleBoolEq(s *state, c *model.ConstraintSpec) (bool, error) {
	if len(c.Args) != 2 {
		return false, nil
	}
	a, b := c.Args[0], c.Args[1]
	va, oka := s.m.FixedBool(a)
	vb, okb := s.m.FixedBool(b)
	switch {
	case oka && okb:
		if va == vb {
			s.nullify(c)
		} else {
			s.defect(c, "bool_eq between distinct values")
		}
		return true, nil
	case oka:
		return s.pinBool(c, b, va), nil
	case okb:
		return s.pinBool(c, a, vb), nil
	}
	return false, nil
}

func ruleBoolNot(s *state, c *model.ConstraintSpec) (bool, error) {
	if len(c.Args) != 2 {
		return false, nil
	}
	a, b := c.Args[0], c.Args[1]
	va, oka := s.m.FixedBool(a)
	vb, okb := s.m.FixedBool(b)
	switch {
	case oka && okb:
		if va != vb {
			s.nullify(c)
		} else {
			s.defect(c, "bool_not between equal values")
		}
		return true, nil
	case oka:
		return s.pinBool(c, b, !va), nil
	case okb:
		return s.pinBool(c, a, !vb), nil
	}
	return false, nil
}

// ruleBoolLe treats false < true: a <= b is the implication a -> b.
func ruleBoolLe(s *state, c *model.ConstraintSpec) (bool, error) {
	if len(c.Args) != 2 {
		return false, nil
	}
	a, b := c.Args[0], c.Args[1]
	if va, ok := s.m.FixedBool(a); ok {
		if !va {
			// false <= anything.
			s.nullify(c)
			return true, nil
		}
		return s.pinBool(c, b, true), nil
	}
	if vb, ok := s.m.FixedBool(b); ok {
		if vb {
			s.nullify(c)
			return true, nil
		}
		return s.pinBool(c, a, false), nil
	}
	return false, nil
}

// ruleBool2Int channels a boolean into a 0/1 integer. The integer side
// is narrowed to 0..1 up front; a fixed side then pins the other.
func ruleBool2Int(s *state, c *model.ConstraintSpec) (bool, error) {
	if len(c.Args) != 2 {
		return false, nil
	}
	b, x := c.Args[0], c.Args[1]
	changed, empty := s.narrowInt(x, func(d *domain.Domain) *domain.Domain {
		return d.Narrow(domain.New(0, 1))
	})
	if empty {
		s.defect(c, "bool2int target excludes both 0 and 1")
		return true, nil
	}
	vb, okb := s.m.FixedBool(b)
	vx, okx := s.m.FixedInt(x)
	switch {
	case okb && okx:
		var want int64
		if vb {
			want = 1
		}
		if vx == want {
			s.nullify(c)
		} else {
			s.defect(c, "bool2int between contradicting values")
		}
		return true, nil
	case okb:
		var want int64
		if vb {
			want = 1
		}
		return s.pinInt(c, x, want), nil
	case okx:
		return s.pinBool(c, b, vx == 1), nil
	}
	return changed, nil
}

// ruleBoolClause simplifies a (positives, negatives) clause: satisfied
// literals nullify it, falsified literals drop out, and an emptied
// clause is a defect. A unit clause pins its remaining literal.
func ruleBoolClause(s *state, c *model.ConstraintSpec) (bool, error) {
	if len(c.Args) != 2 || c.Args[0].Type != ir.ArrayType || c.Args[1].Type != ir.ArrayType {
		return false, nil
	}
	pos, neg := c.Args[0], c.Args[1]
	keptPos := make([]*ir.Node, 0, pos.Len())
	keptNeg := make([]*ir.Node, 0, neg.Len())
	changed := false
	for _, l := range pos.Values {
		if v, ok := s.m.FixedBool(l); ok {
			if v {
				s.nullify(c)
				return true, nil
			}
			changed = true
			continue
		}
		keptPos = append(keptPos, l)
	}
	for _, l := range neg.Values {
		if v, ok := s.m.FixedBool(l); ok {
			if !v {
				s.nullify(c)
				return true, nil
			}
			changed = true
			continue
		}
		keptNeg = append(keptNeg, l)
	}
	switch len(keptPos) + len(keptNeg) {
	case 0:
		s.defect(c, "clause with every literal falsified")
		return true, nil
	case 1:
		if len(keptPos) == 1 {
			return s.pinBool(c, keptPos[0], true), nil
		}
		return s.pinBool(c, keptNeg[0], false), nil
	}
	if changed {
		c.Retag(model.KindBoolClause, ir.FromSlice(keptPos), ir.FromSlice(keptNeg))
	}
	return changed, nil
}

// ruleArrayBool handles array_bool_or and array_bool_and with their
// result literal. A fixed result either reduces to a clause-like
// simplification or forces every element.
func ruleArrayBool(s *state, c *model.ConstraintSpec) (bool, error) {
	if len(c.Args) != 2 || c.Args[0].Type != ir.ArrayType {
		return false, nil
	}
	arr, r := c.Args[0], c.Args[1]
	or := c.Kind == model.KindArrayBoolOr
	vr, rFixed := s.m.FixedBool(r)

	// forceAll pins every element to v and retires the constraint.
	forceAll := func(v bool) (bool, error) {
		for _, l := range arr.Values {
			if lv, ok := s.m.FixedBool(l); ok {
				if lv != v {
					s.defect(c, "array element contradicts forced result")
					return true, nil
				}
				continue
			}
			if l.Type != ir.BoolVarType {
				continue
			}
			if _, conflict := s.assignBool(l, v); conflict {
				s.defect(c, "array element contradicts forced result")
				return true, nil
			}
		}
		s.nullify(c)
		return true, nil
	}

	if rFixed {
		// or with r=false forces all false; and with r=true forces all
		// true. The remaining two cases are plain clauses.
		if or != vr {
			return forceAll(vr)
		}
		open := 0
		var last *ir.Node
		for _, l := range arr.Values {
			v, ok := s.m.FixedBool(l)
			if !ok {
				open++
				last = l
				continue
			}
			if v == or {
				// One deciding element settles the array.
				s.nullify(c)
				return true, nil
			}
		}
		switch open {
		case 0:
			s.defect(c, "array result contradicts every element")
			return true, nil
		case 1:
			return s.pinBool(c, last, or), nil
		}
		return false, nil
	}

	// Open result: a deciding element fixes it; an exhausted array
	// fixes it the other way.
	decided := false
	open := false
	for _, l := range arr.Values {
		v, ok := s.m.FixedBool(l)
		if !ok {
			open = true
			continue
		}
		if v == or {
			decided = true
		}
	}
	if decided {
		return s.pinBool(c, r, or), nil
	}
	if !open {
		return s.pinBool(c, r, !or), nil
	}
	return false, nil
}

// pinBool assigns a boolean and nullifies c, or records a defect when
// the assignment contradicts an earlier one.
func (s *state) pinBool(c *model.ConstraintSpec, n *ir.Node, v bool) bool {
	if n.Type != ir.BoolVarType {
		if lit, ok := s.m.FixedBool(n); ok {
			if lit == v {
				s.nullify(c)
			} else {
				s.defect(c, "boolean literal contradicts required value")
			}
			return true
		}
		return false
	}
	_, conflict := s.assignBool(n, v)
	if conflict {
		s.defect(c, "boolean assignment contradicts earlier value")
		return true
	}
	s.nullify(c)
	return true
}
