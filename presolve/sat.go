package presolve

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/fzn-format/go-fzn/debug"
	"github.com/fzn-format/go-fzn/ir"
	"github.com/fzn-format/go-fzn/model"
)

// coreBuilder turns the purely boolean slice of the model into a gini
// circuit. Constraint kinds mixing integers in are left out; the check
// is a one-sided filter, never a completeness proof.
type coreBuilder struct {
	s    *state
	c    *logic.C
	vars map[int]z.Lit // bool variable index → literal
}

// checkBoolCore conjoins every live all-boolean constraint and asks the
// SAT solver whether the conjunction has a model. An unsatisfiable core
// makes the whole compilation infeasible before any backend runs.
func (s *state) checkBoolCore() {
	b := &coreBuilder{
		s:    s,
		c:    logic.NewC(),
		vars: make(map[int]z.Lit),
	}
	lits := []z.Lit{b.c.T}
	n := 0
	for _, c := range s.m.Constraints {
		if c.Nullified {
			continue
		}
		lit, ok := b.constraint(c)
		if !ok {
			continue
		}
		lits = append(lits, lit)
		n++
	}
	if n == 0 {
		return
	}
	formula := b.c.Ands(lits...)

	g := gini.New()
	b.c.ToCnf(g)
	g.Assume(formula)
	result := g.Solve()
	if debug.Sat() {
		debug.Logf("sat: %d boolean constraints, solve=%d\n", n, result)
	}
	if result != 1 {
		s.defects = append(s.defects, Defect{Constraint: -1, Reason: "boolean core unsatisfiable"})
	}
}

// constraint encodes one constraint, reporting ok=false for kinds the
// boolean core does not cover.
func (b *coreBuilder) constraint(c *model.ConstraintSpec) (z.Lit, bool) {
	switch c.Kind {
	case model.KindBoolEq:
		if len(c.Args) != 2 {
			return b.c.F, false
		}
		return b.iff(b.lit(c.Args[0]), b.lit(c.Args[1])), true
	case model.KindBoolNot:
		if len(c.Args) != 2 {
			return b.c.F, false
		}
		return b.iff(b.lit(c.Args[0]), b.lit(c.Args[1]).Not()), true
	case model.KindBoolLe:
		if len(c.Args) != 2 {
			return b.c.F, false
		}
		return b.c.Ors(b.lit(c.Args[0]).Not(), b.lit(c.Args[1])), true
	case model.KindBoolClause:
		if len(c.Args) != 2 || c.Args[0].Type != ir.ArrayType || c.Args[1].Type != ir.ArrayType {
			return b.c.F, false
		}
		var lits []z.Lit
		for _, l := range c.Args[0].Values {
			lits = append(lits, b.lit(l))
		}
		for _, l := range c.Args[1].Values {
			lits = append(lits, b.lit(l).Not())
		}
		if len(lits) == 0 {
			return b.c.F, true
		}
		return b.c.Ors(lits...), true
	case model.KindArrayBoolOr, model.KindArrayBoolAnd:
		if len(c.Args) != 2 || c.Args[0].Type != ir.ArrayType {
			return b.c.F, false
		}
		var lits []z.Lit
		for _, l := range c.Args[0].Values {
			lits = append(lits, b.lit(l))
		}
		r := b.lit(c.Args[1])
		if c.Kind == model.KindArrayBoolOr {
			return b.iff(r, b.c.Ors(lits...)), true
		}
		return b.iff(r, b.c.Ands(lits...)), true
	}
	return b.c.F, false
}

// iff encodes a <-> b as (a & b) | (!a & !b).
func (b *coreBuilder) iff(a, bb z.Lit) z.Lit {
	return b.c.Ors(b.c.Ands(a, bb), b.c.Ands(a.Not(), bb.Not()))
}

// lit maps a boolean argument to a literal: fixed variables and bool
// literals become the circuit constants, open variables intern one
// literal per table index.
func (b *coreBuilder) lit(n *ir.Node) z.Lit {
	if v, ok := b.s.m.FixedBool(n); ok {
		if v {
			return b.c.T
		}
		return b.c.F
	}
	if n.Type != ir.BoolVarType {
		// Not a boolean at all. Treating it as true only weakens the
		// filter; the check must never invent an unsatisfiable core.
		return b.c.T
	}
	if lit, ok := b.vars[n.Var]; ok {
		return lit
	}
	lit := b.c.Lit()
	b.vars[n.Var] = lit
	return lit
}
