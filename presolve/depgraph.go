package presolve

import (
	"github.com/fzn-format/go-fzn/debug"
	"github.com/fzn-format/go-fzn/ir"
	"github.com/fzn-format/go-fzn/model"
)

// defaultTarget gives, per functionally-defined kind, the argument
// position holding the defined variable when no defines_var annotation
// says otherwise.
var defaultTarget = map[model.Kind]int{
	model.KindIntAbs:     1,
	model.KindBool2Int:   1,
	model.KindIntMax:     2,
	model.KindIntMin:     2,
	model.KindIntPlus:    2,
	model.KindIntTimes:   2,
	model.KindMaximumInt: 0,
	model.KindMinimumInt: 0,
}

// dependencies rebuilds the defines/requires relation over the live
// constraints after the rewrite fixpoint. Annotated targets win over
// kind defaults; a variable gets at most one definer, first in table
// order. Each constraint then records its DefinedArg and the set of
// defined variables it Requires.
func (s *state) dependencies() error {
	s.targets = model.NewNodeSet()
	s.definer = map[vkey]*model.ConstraintSpec{}

	claim := func(c *model.ConstraintSpec, t *ir.Node) error {
		ct, err := s.refs.Canonical(t)
		if err != nil {
			return violation("depgraph", "defined variable out of range: %v", err)
		}
		if s.targets.Add(ct) {
			s.definer[keyOf(ct)] = c
		}
		return nil
	}

	// Annotated targets first; they take precedence over any kind
	// default on another constraint.
	for _, c := range s.m.Constraints {
		if c.Nullified {
			continue
		}
		if t := c.DefinesVarTarget(); t != nil && t.IsVar() && s.eligibleTarget(t) {
			if err := claim(c, t); err != nil {
				return err
			}
		}
	}
	for _, c := range s.m.Constraints {
		if c.Nullified {
			continue
		}
		pos, ok := defaultTarget[c.Kind]
		if !ok {
			continue
		}
		t := c.Arg(pos)
		// Kind defaults only claim introduced variables; a user
		// variable in the result position stays solver-assigned
		// unless annotated.
		if t == nil || !t.IsVar() || !s.m.Introduced(t) || !s.eligibleTarget(t) {
			continue
		}
		if err := claim(c, t); err != nil {
			return err
		}
	}

	for _, c := range s.m.Constraints {
		if c.Nullified {
			continue
		}
		c.DefinedArg = nil
		c.Requires = model.NewNodeSet()
		if t := s.targetOf(c); t != nil {
			c.DefinedArg = t
		}
		var verr error
		for _, a := range c.Args {
			eachVar(a, func(v *ir.Node) {
				cv, err := s.refs.Canonical(v)
				if err != nil {
					verr = violation("depgraph", "argument variable out of range: %v", err)
					return
				}
				if c.DefinedArg != nil && cv == c.DefinedArg {
					return
				}
				if s.targets.Has(cv) {
					c.Requires.Add(cv)
				}
			})
			if verr != nil {
				cv := verr.(*InvariantViolation)
				cv.Constraint = c.Index
				return verr
			}
		}
		if debug.Depgraph() && (c.DefinedArg != nil || c.Requires.Len() > 0) {
			debug.Logf("depgraph: %s defines=%v requires=%d\n", c, c.DefinedArg, c.Requires.Len())
		}
	}
	return nil
}

// eligibleTarget rules out variables that no constraint may compute:
// aliased records were substituted away, and fixed ones are already
// decided.
func (s *state) eligibleTarget(t *ir.Node) bool {
	if s.m.Aliased(t) {
		return false
	}
	switch t.Type {
	case ir.IntVarType:
		if _, ok := s.m.FixedInt(t); ok {
			return false
		}
	case ir.BoolVarType:
		if _, ok := s.m.FixedBool(t); ok {
			return false
		}
	}
	return true
}

// targetOf returns the canonical variable c defines, if any.
func (s *state) targetOf(c *model.ConstraintSpec) *ir.Node {
	if t := c.DefinesVarTarget(); t != nil && t.IsVar() {
		if ct, err := s.refs.Canonical(t); err == nil && s.definer[keyOf(ct)] == c {
			return ct
		}
	}
	if pos, ok := defaultTarget[c.Kind]; ok {
		if t := c.Arg(pos); t != nil && t.IsVar() {
			if ct, err := s.refs.Canonical(t); err == nil && s.definer[keyOf(ct)] == c {
				return ct
			}
		}
	}
	return nil
}
