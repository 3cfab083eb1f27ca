package presolve

import (
	"github.com/fzn-format/go-fzn/debug"
	"github.com/fzn-format/go-fzn/domain"
	"github.com/fzn-format/go-fzn/ir"
	"github.com/fzn-format/go-fzn/model"
)

type config struct {
	satCheck  bool
	maxRounds int
}

type Option func(*config)

// WithoutSatCheck disables the boolean-core satisfiability check.
func WithoutSatCheck() Option {
	return func(c *config) { c.satCheck = false }
}

// MaxRounds bounds the rewrite fixpoint loop. The loop normally reaches a
// fixpoint on its own; the bound guards against a misbehaving rule.
func MaxRounds(n int) Option {
	return func(c *config) { c.maxRounds = n }
}

// Compile runs the full presolve pipeline over m, mutating its tables in
// place, and returns the canonicalized result. The model must not be
// shared with another compilation. A non-nil error is an invariant
// violation; model infeasibility is reported on the Result instead.
func Compile(m *model.Model, opts ...Option) (*Result, error) {
	cfg := config{satCheck: true, maxRounds: 64}
	for _, o := range opts {
		o(&cfg)
	}
	s := &state{
		m:       m,
		refs:    m.Refs(),
		cfg:     cfg,
		targets: model.NewNodeSet(),
		definer: map[vkey]*model.ConstraintSpec{},
		absOf:   map[int]*ir.Node{},
	}

	s.sanitize()
	s.buildOccurrences()
	s.regroup()
	s.markTargets()
	s.discoverAliases()
	if err := s.resolveAliases(); err != nil {
		return nil, err
	}
	if err := s.fixpoint(); err != nil {
		return nil, err
	}
	s.buildOccurrences()
	if err := s.dependencies(); err != nil {
		return nil, err
	}
	order, forced, err := s.schedule()
	if err != nil {
		return nil, err
	}
	s.classifyComputed(order, forced)
	if cfg.satCheck {
		s.checkBoolCore()
	}
	return s.result(order, forced), nil
}

type vkey struct {
	typ ir.Type
	idx int
}

func keyOf(n *ir.Node) vkey {
	return vkey{n.Type, n.Var}
}

type state struct {
	m    *model.Model
	refs *model.Refs
	cfg  config

	// targets holds candidate variables some constraint proposes to
	// compute; definer records the proposing constraint.
	targets *model.NodeSet
	definer map[vkey]*model.ConstraintSpec

	// occ indexes, per variable, the constraint table positions that
	// reference it. Rebuilt after the rewrite fixpoint.
	occ map[vkey][]int

	// absOf maps an integer variable index y to the canonical x with
	// y = |x|, for substitution in later == 0 / != 0 tests.
	absOf map[int]*ir.Node

	// computed marks variables pinned by their defining constraint.
	computed *model.NodeSet

	defects []Defect
	domains []DomainConstraint
	stats   Stats
}

// defect records a model defect against c and soft-deletes it; the
// pipeline continues and the result comes out infeasible.
func (s *state) defect(c *model.ConstraintSpec, reason string) {
	s.defects = append(s.defects, Defect{Constraint: c.Index, Reason: reason})
	s.nullify(c)
}

func (s *state) nullify(c *model.ConstraintSpec) {
	if !c.Nullified {
		c.Nullify()
		s.stats.Nullified++
	}
}

// sanitize drops conflicting defines_var annotations: duplicates beyond
// the first, and annotations naming a variable the constraint does not
// reference.
func (s *state) sanitize() {
	for _, c := range s.m.Constraints {
		seen := false
		kept := c.Annotations[:0]
		for _, a := range c.Annotations {
			if a.Type != ir.CallType || a.Name != "defines_var" {
				kept = append(kept, a)
				continue
			}
			if seen || a.Len() != 1 || !a.Values[0].IsVar() || !s.references(c, a.Values[0]) {
				continue
			}
			seen = true
			kept = append(kept, a)
		}
		c.Annotations = kept
	}
}

// references reports whether v occurs among c's arguments, including
// inside array arguments.
func (s *state) references(c *model.ConstraintSpec, v *ir.Node) bool {
	for _, a := range c.Args {
		if containsVar(a, v) {
			return true
		}
	}
	return false
}

func containsVar(n, v *ir.Node) bool {
	if n.IsVar() {
		return n.Type == v.Type && n.Var == v.Var
	}
	for _, child := range n.Values {
		if containsVar(child, v) {
			return true
		}
	}
	return false
}

// buildOccurrences recomputes the per-variable constraint occurrence
// index over the live constraints.
func (s *state) buildOccurrences() {
	s.occ = map[vkey][]int{}
	for _, c := range s.m.Constraints {
		if c.Nullified {
			continue
		}
		seen := map[vkey]bool{}
		for _, a := range c.Args {
			eachVar(a, func(v *ir.Node) {
				k := keyOf(v)
				if seen[k] {
					return
				}
				seen[k] = true
				s.occ[k] = append(s.occ[k], c.Index)
			})
		}
	}
}

func eachVar(n *ir.Node, f func(v *ir.Node)) {
	_ = n.Visit(func(v *ir.Node, post bool) (bool, error) {
		if post {
			return false, nil
		}
		if v.IsVar() {
			f(v)
			return false, nil
		}
		return !v.Type.IsLeaf(), nil
	})
}

// occurrences returns the live constraints referencing v, other than c.
func (s *state) occurrences(v *ir.Node, c *model.ConstraintSpec) []int {
	var res []int
	for _, idx := range s.occ[keyOf(v)] {
		if idx == c.Index || s.m.Constraints[idx].Nullified {
			continue
		}
		res = append(res, idx)
	}
	return res
}

// markTargets seeds the candidate set from defines_var annotations.
func (s *state) markTargets() {
	for _, c := range s.m.Constraints {
		if c.Nullified {
			continue
		}
		t := c.DefinesVarTarget()
		if t == nil {
			continue
		}
		ct, err := s.refs.Canonical(t)
		if err != nil {
			continue
		}
		if s.targets.Add(ct) {
			s.definer[keyOf(ct)] = c
		}
	}
}

// orphan reports whether v is an introduced variable that nothing yet
// defines: no target designation, no alias, no assigned value.
func (s *state) orphan(v *ir.Node) bool {
	if !s.m.Introduced(v) || s.m.Aliased(v) || s.targets.Has(v) {
		return false
	}
	if _, ok := s.m.FixedInt(v); ok {
		return false
	}
	return true
}

func (s *state) result(order []*model.ConstraintSpec, forced *model.NodeSet) *Result {
	res := &Result{
		Model:      s.m,
		IntStates:  make([]VarState, len(s.m.IntVars)),
		BoolStates: make([]VarState, len(s.m.BoolVars)),
		SetStates:  make([]VarState, len(s.m.SetVars)),
		Order:      order,
		Domains:    s.domains,
		Goal:       s.m.Goal,
		Forced:     forced,
		Defects:    s.defects,
		Infeasible: len(s.defects) > 0,
		Stats:      s.stats,
	}
	for i, v := range s.m.IntVars {
		switch {
		case v.Aliased():
			res.IntStates[i] = Aliased
		case s.computed.Has(s.refs.IntVar(i)):
			res.IntStates[i] = Computed
		}
	}
	for i, v := range s.m.BoolVars {
		switch {
		case v.Aliased():
			res.BoolStates[i] = Aliased
		case s.computed.Has(s.refs.BoolVar(i)):
			res.BoolStates[i] = Computed
		}
	}
	for i, v := range s.m.SetVars {
		if v.Aliased() {
			res.SetStates[i] = Aliased
		}
	}
	res.Stats.ComputedN = s.computed.Len()
	res.Stats.ForcedN = forced.Len()
	if debug.Presolve() {
		debug.Logf("presolve: %d constraints scheduled, %d nullified, %d defects\n",
			len(order), s.stats.Nullified, len(s.defects))
	}
	return res
}

// narrowInt applies f to the domain of the integer variable behind n.
// It returns whether the domain changed and whether it became empty.
// Narrowing a shared domain record copies it first; domains only shrink.
func (s *state) narrowInt(n *ir.Node, f func(d *domain.Domain) *domain.Domain) (changed, empty bool) {
	spec := s.m.IntSpec(n)
	if spec == nil {
		return false, false
	}
	old := spec.Dom
	if old == nil {
		old = domain.Full()
	}
	nd := f(old)
	if nd.Equal(old) {
		return false, old.Empty()
	}
	// Domains are immutable, so replacing the record is enough even when
	// the old one was shared.
	spec.Dom = nd
	spec.OwnsDom = true
	return true, nd.Empty()
}

// assignBool pins a boolean variable. Returns whether anything changed
// and whether the assignment contradicts an earlier one.
func (s *state) assignBool(n *ir.Node, v bool) (changed, conflict bool) {
	spec := s.m.BoolSpec(n)
	if spec == nil {
		return false, false
	}
	if spec.Assigned != nil {
		return false, *spec.Assigned != v
	}
	spec.Assigned = &v
	return true, false
}
