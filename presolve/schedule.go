package presolve

import (
	"github.com/fzn-format/go-fzn/debug"
	"github.com/fzn-format/go-fzn/ir"
	"github.com/fzn-format/go-fzn/model"
)

// schedule orders the live constraints so that every constraint
// defining a variable appears before the constraints requiring it.
// Definitions with no requirements come first and constraints defining
// nothing come last, both in table order; the rest are emitted as their
// requirements resolve. A cycle in the defines/requires relation is
// broken heuristically: one definition is emitted early and its
// unsatisfied requirements become forced variables, handed back to the
// solver's search instead of being computed.
func (s *state) schedule() ([]*model.ConstraintSpec, *model.NodeSet, error) {
	defined := model.NewNodeSet()
	forced := model.NewNodeSet()
	var order []*model.ConstraintSpec

	var pending []*model.ConstraintSpec
	var trailing []*model.ConstraintSpec
	for _, c := range s.m.Live() {
		switch {
		case c.DefinedArg == nil:
			trailing = append(trailing, c)
		case c.Requires.Len() == 0:
			order = append(order, c)
			defined.Add(c.DefinedArg)
		default:
			pending = append(pending, c)
		}
	}

	for len(pending) > 0 {
		emitted := false
		rest := pending[:0]
		for _, c := range pending {
			if s.unsatisfied(c, defined) == 0 {
				order = append(order, c)
				defined.Add(c.DefinedArg)
				emitted = true
				continue
			}
			rest = append(rest, c)
		}
		pending = rest
		if emitted || len(pending) == 0 {
			continue
		}

		// Every pending definition waits on another: a cycle. Emit the
		// cheapest one and force its missing requirements.
		pick := s.pickBreak(pending, defined)
		for _, v := range pick.Requires.All() {
			if !defined.Has(v) {
				defined.Add(v)
				forced.Add(v)
			}
		}
		order = append(order, pick)
		defined.Add(pick.DefinedArg)
		for i, c := range pending {
			if c == pick {
				pending = append(pending[:i], pending[i+1:]...)
				break
			}
		}
		if debug.Schedule() {
			debug.Logf("schedule: broke cycle at %s, %d variables forced\n", pick, forced.Len())
		}
	}

	order = append(order, trailing...)
	return order, forced, nil
}

// unsatisfied counts c's required variables not yet defined.
func (s *state) unsatisfied(c *model.ConstraintSpec, defined *model.NodeSet) int {
	n := 0
	for _, v := range c.Requires.All() {
		if !defined.Has(v) {
			n++
		}
	}
	return n
}

// pickBreak chooses the cycle-break victim: fewest unsatisfied
// requirements, then lowest table index. Candidates whose missing
// requirement is itself an alias root someone still defines are passed
// over when a cleaner choice exists; forcing such a variable would
// detach it from its definition.
func (s *state) pickBreak(pending []*model.ConstraintSpec, defined *model.NodeSet) *model.ConstraintSpec {
	best, bestClean := -1, -1
	var bestC, bestCleanC *model.ConstraintSpec
	for _, c := range pending {
		n := s.unsatisfied(c, defined)
		if best < 0 || n < best {
			best, bestC = n, c
		}
		if s.cleanBreak(c, defined) && (bestClean < 0 || n < bestClean) {
			bestClean, bestCleanC = n, c
		}
	}
	if bestCleanC != nil {
		return bestCleanC
	}
	return bestC
}

// cleanBreak reports whether every missing requirement of c is safe to
// force: not the target of another pending definition's own target
// chain through an alias.
func (s *state) cleanBreak(c *model.ConstraintSpec, defined *model.NodeSet) bool {
	for _, v := range c.Requires.All() {
		if defined.Has(v) {
			continue
		}
		if s.aliasRootOf(v) != nil {
			return false
		}
	}
	return true
}

// aliasRootOf returns a non-nil node when v still carries an alias,
// which after resolution should never happen for a required variable.
func (s *state) aliasRootOf(v *ir.Node) *ir.Node {
	if !s.m.Aliased(v) {
		return nil
	}
	return v
}
