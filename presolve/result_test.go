package presolve

import (
	"testing"

	"github.com/fzn-format/go-fzn/ir"
	"github.com/fzn-format/go-fzn/model"
)

// recorder is the test backend: it remembers what was emitted, in order.
type recorder struct {
	ints, bools, sets []VarState
	constraints       []*model.ConstraintSpec
	domains           []DomainConstraint
	goals             []model.Goal
}

func (r *recorder) PutIntVar(idx int, spec *model.IntVarSpec, st VarState) error {
	r.ints = append(r.ints, st)
	return nil
}

func (r *recorder) PutBoolVar(idx int, spec *model.BoolVarSpec, st VarState) error {
	r.bools = append(r.bools, st)
	return nil
}

func (r *recorder) PutSetVar(idx int, spec *model.SetVarSpec, st VarState) error {
	r.sets = append(r.sets, st)
	return nil
}

func (r *recorder) PutConstraint(c *model.ConstraintSpec) error {
	r.constraints = append(r.constraints, c)
	return nil
}

func (r *recorder) PutDomain(d DomainConstraint) error {
	r.domains = append(r.domains, d)
	return nil
}

func (r *recorder) PutGoal(g model.Goal) error {
	r.goals = append(r.goals, g)
	return nil
}

func TestEmitTo(t *testing.T) {
	m := model.New([]*model.IntVarSpec{
		intVar("a", 0, 9), intVar("b", 0, 9), introducedVar("s", 0, 20),
	}, []*model.BoolVarSpec{boolVar("p")}, nil)
	r := m.Refs()
	a, b, sum := r.IntVar(0), r.IntVar(1), r.IntVar(2)
	m.AddConstraint(model.KindIntPlus, []*ir.Node{a, b, sum}, definesVar(sum))
	m.AddConstraint(model.KindIntLe, []*ir.Node{a, b})
	m.Goal = model.Goal{Kind: model.Minimize, Objective: sum}

	res, err := Compile(m)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	rec := &recorder{}
	if err := res.EmitTo(rec); err != nil {
		t.Fatalf("EmitTo: %v", err)
	}
	if len(rec.ints) != 3 || len(rec.bools) != 1 || len(rec.sets) != 0 {
		t.Errorf("emitted %d/%d/%d variables, want 3/1/0",
			len(rec.ints), len(rec.bools), len(rec.sets))
	}
	if rec.ints[2] != Computed {
		t.Errorf("s emitted as %v, want Computed", rec.ints[2])
	}
	if len(rec.constraints) != len(res.Order) {
		t.Errorf("emitted %d constraints, want %d", len(rec.constraints), len(res.Order))
	}
	if len(rec.goals) != 1 || rec.goals[0].Kind != model.Minimize {
		t.Errorf("goal = %+v, want one minimize", rec.goals)
	}
}
