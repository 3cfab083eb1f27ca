package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fzn-format/go-fzn/domain"
	"github.com/fzn-format/go-fzn/ir"
)

func TestNodeSetCanonicalMembership(t *testing.T) {
	m := New(make([]*IntVarSpec, 3), nil, nil)
	s := NewNodeSet(m.Refs().IntVar(1))

	// A fresh reference to the same variable must be found.
	if !s.Has(ir.IntVarRef(1)) {
		t.Fatal("membership must not depend on node identity")
	}
	if s.Has(ir.IntVarRef(2)) {
		t.Fatal("unexpected member")
	}
	if s.Add(ir.IntVarRef(1)) {
		t.Fatal("re-adding an existing variable should report false")
	}
	if s.Add(ir.FromInt(1)) {
		t.Fatal("non-variable nodes must be rejected")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestNodeSetAllIsOrdered(t *testing.T) {
	s := NewNodeSet(ir.IntVarRef(5), ir.BoolVarRef(1), ir.IntVarRef(2))
	all := s.All()
	want := []*ir.Node{ir.IntVarRef(2), ir.IntVarRef(5), ir.BoolVarRef(1)}
	if len(all) != len(want) {
		t.Fatalf("got %d members, want %d", len(all), len(want))
	}
	for i := range want {
		if !ir.Equal(all[i], want[i]) {
			t.Errorf("All()[%d] = %s, want %s", i, all[i], want[i])
		}
	}
}

func TestFromJSON(t *testing.T) {
	src := []byte(`{
		"int_vars": [
			{"name": "x", "domain": {"min": 0, "max": 10}},
			{"name": "y", "domain": {"min": 0, "max": 10}}
		],
		"constraints": [
			{"kind": "int_eq", "args": [{"type":"IntVar","var":0},{"type":"IntVar","var":1}]},
			{"kind": "int_le", "args": [{"type":"IntVar","var":1},{"type":"IntLit","int":5}]}
		],
		"goal": {"kind": "satisfy"}
	}`)
	m, err := FromJSON(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.IntVars) != 2 || len(m.Constraints) != 2 {
		t.Fatalf("got %d vars, %d constraints", len(m.IntVars), len(m.Constraints))
	}
	if m.IntVars[0].Dom == nil || m.IntVars[0].Dom.Min() != 0 || m.IntVars[0].Dom.Max() != 10 {
		t.Errorf("x domain = %v", m.IntVars[0].Dom)
	}
	if !m.IntVars[0].OwnsDom {
		t.Error("wire-form domains are owned")
	}
	if m.Constraints[0].Kind != KindIntEq || m.Constraints[1].Index != 1 {
		t.Errorf("constraint ingestion wrong: %s, %s", m.Constraints[0], m.Constraints[1])
	}
	if m.Goal.Kind != Satisfy {
		t.Errorf("goal = %s", m.Goal.Kind)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	m := New(
		[]*IntVarSpec{
			{Name: "x", Alias: NoAlias, Dom: DomainOf(ir.IntervalSet(0, 10)), OwnsDom: true},
			{Name: "s", Alias: NoAlias, Introduced: true},
		},
		[]*BoolVarSpec{{Name: "p", Alias: NoAlias}},
		nil,
	)
	m.AddConstraint(KindIntLinEq, []*ir.Node{
		ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(-1)}),
		ir.FromSlice([]*ir.Node{ir.IntVarRef(0), ir.IntVarRef(1)}),
		ir.FromInt(0),
	})
	m.AddConstraint(KindBoolEq, []*ir.Node{ir.BoolVarRef(0), ir.FromBool(true)})
	m.Goal = Goal{Kind: Minimize, Objective: ir.IntVarRef(1)}

	data, err := m.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}

	if len(back.IntVars) != len(m.IntVars) || len(back.BoolVars) != len(m.BoolVars) {
		t.Fatalf("got %d/%d vars, want %d/%d",
			len(back.IntVars), len(back.BoolVars), len(m.IntVars), len(m.BoolVars))
	}
	for i, c := range m.Constraints {
		got := back.Constraints[i]
		if got.Kind != c.Kind {
			t.Errorf("constraint %d kind = %s, want %s", i, got.Kind, c.Kind)
		}
		if diff := cmp.Diff(c.Args, got.Args); diff != "" {
			t.Errorf("constraint %d args mismatch (-want +got):\n%s", i, diff)
		}
	}
	if !back.IntVars[0].Dom.Equal(m.IntVars[0].Dom) {
		t.Errorf("x domain = %s, want %s", back.IntVars[0].Dom, m.IntVars[0].Dom)
	}
	if back.Goal.Kind != Minimize {
		t.Errorf("goal = %s", back.Goal.Kind)
	}
	if diff := cmp.Diff(m.Goal.Objective, back.Goal.Objective); diff != "" {
		t.Errorf("objective mismatch (-want +got):\n%s", diff)
	}
}

func TestFixedInt(t *testing.T) {
	five := int64(5)
	yes := true
	m := New(
		[]*IntVarSpec{
			{Name: "a", Alias: NoAlias, Assigned: &five},
			{Name: "b", Alias: NoAlias, Dom: DomainOf(ir.IntervalSet(7, 7)), OwnsDom: true},
			{Name: "c", Alias: NoAlias, Dom: DomainOf(ir.IntervalSet(0, 9)), OwnsDom: true},
		},
		[]*BoolVarSpec{{Name: "p", Alias: NoAlias, Assigned: &yes}},
		nil,
	)
	if v, ok := m.FixedInt(m.Refs().IntVar(0)); !ok || v != 5 {
		t.Errorf("assigned var: %d, %v", v, ok)
	}
	if v, ok := m.FixedInt(m.Refs().IntVar(1)); !ok || v != 7 {
		t.Errorf("singleton domain var: %d, %v", v, ok)
	}
	if _, ok := m.FixedInt(m.Refs().IntVar(2)); ok {
		t.Error("open var reported fixed")
	}
	if v, ok := m.FixedInt(m.Refs().BoolVar(0)); !ok || v != 1 {
		t.Errorf("bool coercion: %d, %v", v, ok)
	}
	if v, ok := m.FixedInt(ir.FromInt(3)); !ok || v != 3 {
		t.Errorf("literal: %d, %v", v, ok)
	}
}

func TestDomainWireSpans(t *testing.T) {
	// A hole in a wide interval must serialize as spans, not as an
	// element list.
	wide := domain.New(0, int64(1)<<40).RemoveValue(5)
	m := New([]*IntVarSpec{
		{Name: "x", Alias: NoAlias, Dom: wide, OwnsDom: true},
	}, nil, nil)

	d, err := m.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromJSON(d)
	if err != nil {
		t.Fatal(err)
	}
	if got := back.IntVars[0].Dom; !got.Equal(wide) {
		t.Errorf("domain = %s, want %s", got, wide)
	}
}
