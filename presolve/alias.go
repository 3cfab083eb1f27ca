package presolve

import (
	"github.com/fzn-format/go-fzn/debug"
	"github.com/fzn-format/go-fzn/ir"
	"github.com/fzn-format/go-fzn/model"
)

// discoverAliases scans int_eq / bool_eq constraints whose two arguments
// are both variables and turns them into variable identifications. A
// constraint is considered at most once. If one side is an orphan
// (introduced, not defined by anything) it becomes the alias; otherwise,
// when neither side is a designated target, the first argument does, so
// that every introduced variable ends up defined by something.
func (s *state) discoverAliases() {
	for _, c := range s.m.Constraints {
		if c.Nullified || c.Considered {
			continue
		}
		if c.Kind != model.KindIntEq && c.Kind != model.KindBoolEq {
			continue
		}
		if len(c.Args) != 2 || c.DefinesVarTarget() != nil {
			continue
		}
		a, b := c.Args[0], c.Args[1]
		if !a.IsVar() || !b.IsVar() || a.Type != b.Type {
			continue
		}
		ca, err := s.refs.Canonical(a)
		if err != nil {
			continue
		}
		cb, err := s.refs.Canonical(b)
		if err != nil {
			continue
		}
		if ca == cb {
			// x == x carries no information.
			c.Considered = true
			s.nullify(c)
			continue
		}
		if s.m.Aliased(ca) || s.m.Aliased(cb) {
			// Chains are built one link per variable; a second
			// identification of the same variable stays a
			// constraint.
			continue
		}

		var from, to *ir.Node
		switch {
		case s.orphan(ca):
			from, to = ca, cb
		case s.orphan(cb):
			from, to = cb, ca
		case !s.targets.Has(ca):
			from, to = ca, cb
		case !s.targets.Has(cb):
			from, to = cb, ca
		default:
			// Both sides are designated targets; keep the
			// equality as a constraint.
			continue
		}

		c.Considered = true
		s.setAlias(from, to)
		s.nullify(c)
		s.stats.Aliases++
		if debug.Alias() {
			debug.Logf("alias: %s -> %s (constraint %d)\n", from, to, c.Index)
		}
	}
}

func (s *state) setAlias(from, to *ir.Node) {
	switch from.Type {
	case ir.IntVarType:
		s.m.IntVars[from.Var].Alias = to.Var
	case ir.BoolVarType:
		s.m.BoolVars[from.Var].Alias = to.Var
	case ir.SetVarType:
		s.m.SetVars[from.Var].Alias = to.Var
	}
}

// resolveAliases chases every alias chain to its root, merges domains
// along the chain into the root, compresses the chains, and substitutes
// root references for aliased references in every constraint argument,
// annotation, and the goal. Afterwards no live constraint references a
// non-root index.
func (s *state) resolveAliases() error {
	intRoot, err := resolveRoots(len(s.m.IntVars), func(i int) int { return s.m.IntVars[i].Alias })
	if err != nil {
		return err
	}
	boolRoot, err := resolveRoots(len(s.m.BoolVars), func(i int) int { return s.m.BoolVars[i].Alias })
	if err != nil {
		return err
	}
	setRoot, err := resolveRoots(len(s.m.SetVars), func(i int) int { return s.m.SetVars[i].Alias })
	if err != nil {
		return err
	}

	// Merge aliased int domains into their roots.
	for i, root := range intRoot {
		if root == i {
			continue
		}
		s.m.IntVars[i].Alias = root
		s.mergeIntDomain(i, root)
	}
	for i, root := range boolRoot {
		if root == i {
			continue
		}
		s.m.BoolVars[i].Alias = root
		src, dst := s.m.BoolVars[i], s.m.BoolVars[root]
		if src.Assigned != nil {
			if dst.Assigned == nil {
				v := *src.Assigned
				dst.Assigned = &v
			} else if *dst.Assigned != *src.Assigned {
				s.defects = append(s.defects, Defect{Constraint: -1,
					Reason: "contradictory fixed values merged for " + dst.Name})
			}
		}
	}
	for i, root := range setRoot {
		if root != i {
			s.m.SetVars[i].Alias = root
		}
	}

	// Substitute roots everywhere.
	sub := func(n *ir.Node) *ir.Node {
		switch n.Type {
		case ir.IntVarType:
			if r := intRoot[n.Var]; r != n.Var {
				return s.refs.IntVar(r)
			}
		case ir.BoolVarType:
			if r := boolRoot[n.Var]; r != n.Var {
				return s.refs.BoolVar(r)
			}
		case ir.SetVarType:
			if r := setRoot[n.Var]; r != n.Var {
				return s.refs.SetVar(r)
			}
		}
		return nil
	}
	for _, c := range s.m.Constraints {
		if c.Nullified {
			continue
		}
		substituteVars(c.Args, sub)
		substituteVars(c.Annotations, sub)
	}
	if s.m.Goal.Objective != nil {
		if r := sub(s.m.Goal.Objective); r != nil {
			s.m.Goal.Objective = r
		}
	}
	return nil
}

// resolveRoots follows alias chains to fixed points with path compression.
// A chain longer than the table is a cycle, which a well-formed model
// never produces.
func resolveRoots(n int, alias func(i int) int) ([]int, error) {
	roots := make([]int, n)
	for i := range roots {
		roots[i] = -1
	}
	var find func(i, steps int) (int, error)
	find = func(i, steps int) (int, error) {
		if roots[i] >= 0 {
			return roots[i], nil
		}
		if steps > n {
			v := violation("alias", "alias chain cycle")
			v.Variable = i
			return 0, v
		}
		a := alias(i)
		if a == model.NoAlias {
			roots[i] = i
			return i, nil
		}
		if a < 0 || a >= n {
			v := violation("alias", "alias target %d out of range", a)
			v.Variable = i
			return 0, v
		}
		r, err := find(a, steps+1)
		if err != nil {
			return 0, err
		}
		roots[i] = r
		return r, nil
	}
	for i := range roots {
		if _, err := find(i, 0); err != nil {
			return nil, err
		}
	}
	return roots, nil
}

// mergeIntDomain intersects the root's domain with the aliased variable's
// constraints. When the root's domain record is shared and cannot be
// narrowed in place, the merge is abandoned and the narrowing is emitted
// as a side domain constraint on the root instead.
func (s *state) mergeIntDomain(i, root int) {
	src := s.m.IntVars[i]
	dst := s.m.IntVars[root]

	want := src.Dom
	if v, ok := src.Fixed(); ok {
		if dv, ok := dst.Fixed(); ok && dv != v {
			s.defects = append(s.defects, Defect{Constraint: -1,
				Reason: "contradictory fixed values merging " + src.Name + " into " + dst.Name})
			return
		}
		sd := model.DomainOf(ir.IntervalSet(v, v))
		if want == nil {
			want = sd
		} else {
			want = want.Narrow(sd)
		}
	}
	if want == nil {
		return
	}
	if dst.Dom != nil && !dst.OwnsDom {
		// Foreign domain record; nothing to do in place.
		s.domains = append(s.domains, DomainConstraint{
			Var: s.refs.IntVar(root),
			Dom: want,
		})
		return
	}
	merged := want
	if dst.Dom != nil {
		merged = dst.Dom.Narrow(want)
	}
	if merged.Empty() {
		s.defects = append(s.defects, Defect{Constraint: -1,
			Reason: "empty domain merging " + src.Name + " into " + dst.Name})
	}
	dst.Dom = merged
	dst.OwnsDom = true
}

func substituteVars(ns []*ir.Node, sub func(n *ir.Node) *ir.Node) {
	for i, n := range ns {
		if n == nil {
			continue
		}
		if r := sub(n); r != nil {
			ns[i] = r
			continue
		}
		substituteVars(n.Values, sub)
	}
}
