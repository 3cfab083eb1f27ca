package model

import (
	"github.com/fzn-format/go-fzn/ir"
)

type GoalKind int

const (
	Satisfy GoalKind = iota
	Minimize
	Maximize
)

func (g GoalKind) String() string {
	switch g {
	case Satisfy:
		return "satisfy"
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	}
	return "<unknown goal>"
}

// Goal is the model's solve item. Objective is nil for Satisfy.
type Goal struct {
	Kind        GoalKind
	Objective   *ir.Node
	Annotations []*ir.Node
}

// Model holds the variable tables, the constraint table, and the canonical
// reference table for one compilation. A model is exclusively owned by the
// pipeline compiling it; compile independent models on separate Model
// values.
type Model struct {
	IntVars     []*IntVarSpec
	BoolVars    []*BoolVarSpec
	SetVars     []*SetVarSpec
	Constraints []*ConstraintSpec
	Goal        Goal

	refs *Refs
}

// New builds a model around already-ingested tables and interns the
// canonical reference table.
func New(ints []*IntVarSpec, bools []*BoolVarSpec, sets []*SetVarSpec) *Model {
	m := &Model{IntVars: ints, BoolVars: bools, SetVars: sets}
	m.refs = newRefs(len(ints), len(bools), len(sets))
	return m
}

func (m *Model) Refs() *Refs {
	return m.refs
}

// AddConstraint appends a constraint row with a stable index.
func (m *Model) AddConstraint(kind Kind, args []*ir.Node, annotations ...*ir.Node) *ConstraintSpec {
	c := &ConstraintSpec{
		Index:       len(m.Constraints),
		Kind:        kind,
		Args:        args,
		Annotations: annotations,
		Requires:    NewNodeSet(),
	}
	m.Constraints = append(m.Constraints, c)
	return c
}

// IntSpec returns the spec behind an integer variable node, nil otherwise.
func (m *Model) IntSpec(n *ir.Node) *IntVarSpec {
	if n == nil || n.Type != ir.IntVarType || n.Var < 0 || n.Var >= len(m.IntVars) {
		return nil
	}
	return m.IntVars[n.Var]
}

func (m *Model) BoolSpec(n *ir.Node) *BoolVarSpec {
	if n == nil || n.Type != ir.BoolVarType || n.Var < 0 || n.Var >= len(m.BoolVars) {
		return nil
	}
	return m.BoolVars[n.Var]
}

func (m *Model) SetSpec(n *ir.Node) *SetVarSpec {
	if n == nil || n.Type != ir.SetVarType || n.Var < 0 || n.Var >= len(m.SetVars) {
		return nil
	}
	return m.SetVars[n.Var]
}

// FixedInt resolves n to an integer value when it is an integer or boolean
// literal, or a variable pinned by assignment or a singleton domain.
func (m *Model) FixedInt(n *ir.Node) (int64, bool) {
	if v, ok := n.IntValue(); ok {
		return v, true
	}
	if s := m.IntSpec(n); s != nil {
		return s.Fixed()
	}
	if s := m.BoolSpec(n); s != nil {
		if b, ok := s.Fixed(); ok {
			if b {
				return 1, true
			}
			return 0, true
		}
	}
	return 0, false
}

// FixedBool resolves n to a boolean value when it is a literal or a pinned
// boolean variable.
func (m *Model) FixedBool(n *ir.Node) (bool, bool) {
	if b, ok := n.BoolValue(); ok {
		return b, true
	}
	if s := m.BoolSpec(n); s != nil {
		return s.Fixed()
	}
	return false, false
}

// Aliased reports whether the variable behind n currently aliases another
// variable.
func (m *Model) Aliased(n *ir.Node) bool {
	switch n.Type {
	case ir.IntVarType:
		if s := m.IntSpec(n); s != nil {
			return s.Aliased()
		}
	case ir.BoolVarType:
		if s := m.BoolSpec(n); s != nil {
			return s.Aliased()
		}
	case ir.SetVarType:
		if s := m.SetSpec(n); s != nil {
			return s.Aliased()
		}
	}
	return false
}

// Introduced reports whether the variable behind n was synthesized by the
// upstream compiler.
func (m *Model) Introduced(n *ir.Node) bool {
	switch n.Type {
	case ir.IntVarType:
		if s := m.IntSpec(n); s != nil {
			return s.Introduced
		}
	case ir.BoolVarType:
		if s := m.BoolSpec(n); s != nil {
			return s.Introduced
		}
	case ir.SetVarType:
		if s := m.SetSpec(n); s != nil {
			return s.Introduced
		}
	}
	return false
}

// Live returns the non-nullified constraints in table order.
func (m *Model) Live() []*ConstraintSpec {
	res := make([]*ConstraintSpec, 0, len(m.Constraints))
	for _, c := range m.Constraints {
		if !c.Nullified {
			res = append(res, c)
		}
	}
	return res
}
