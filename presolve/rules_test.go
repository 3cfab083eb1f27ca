package presolve

import (
	"math"
	"testing"

	"github.com/fzn-format/go-fzn/domain"
	"github.com/fzn-format/go-fzn/ir"
	"github.com/fzn-format/go-fzn/model"
)

func lin(kind model.Kind, coeffs []int64, vars []*ir.Node, rhs int64) (model.Kind, []*ir.Node) {
	cs := make([]*ir.Node, len(coeffs))
	for i, c := range coeffs {
		cs[i] = ir.FromInt(c)
	}
	return kind, []*ir.Node{ir.FromSlice(cs), ir.FromSlice(vars), ir.FromInt(rhs)}
}

func compileOK(t *testing.T, m *model.Model) *Result {
	t.Helper()
	res, err := Compile(m)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return res
}

func TestReifCollapse(t *testing.T) {
	tr, fa := true, false
	tests := []struct {
		name     string
		kind     model.Kind
		control  *bool
		wantDom  *domain.Domain
		wantLive bool
	}{
		{"lt true", model.KindIntLtReif, &tr, domain.New(0, 2), false},
		{"lt false", model.KindIntLtReif, &fa, domain.New(3, 10), false},
		{"open", model.KindIntLtReif, nil, domain.New(0, 10), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rv := &model.BoolVarSpec{Name: "r", Alias: model.NoAlias, Assigned: tc.control}
			m := model.New([]*model.IntVarSpec{intVar("x", 0, 10)},
				[]*model.BoolVarSpec{rv}, nil)
			x, r := m.Refs().IntVar(0), m.Refs().BoolVar(0)
			c := m.AddConstraint(tc.kind, []*ir.Node{x, ir.FromInt(3), r})

			compileOK(t, m)
			if got := m.IntVars[0].Dom; !got.Equal(tc.wantDom) {
				t.Errorf("x domain = %v, want %v", got, tc.wantDom)
			}
			if c.Nullified == tc.wantLive {
				t.Errorf("nullified = %v, want %v", c.Nullified, !tc.wantLive)
			}
		})
	}
}

func TestLinearFixedTermFolds(t *testing.T) {
	m := model.New([]*model.IntVarSpec{
		intVar("x", 0, 10), intVar("y", 0, 10),
	}, nil, nil)
	x, y := m.Refs().IntVar(0), m.Refs().IntVar(1)
	// 2x + 3y = 12 with y pinned to 2 leaves 2x = 6.
	m.AddConstraint(model.KindIntEq, []*ir.Node{y, ir.FromInt(2)})
	m.AddConstraint(lin(model.KindIntLinEq, []int64{2, 3}, []*ir.Node{x, y}, 12))

	res := compileOK(t, m)
	if res.Infeasible {
		t.Fatalf("unexpected infeasible: %v", res.Defects)
	}
	if v, ok := m.FixedInt(x); !ok || v != 3 {
		t.Errorf("x = %v fixed=%v, want 3", v, ok)
	}
}

func TestLinearSingleTermBounds(t *testing.T) {
	tests := []struct {
		name  string
		kind  model.Kind
		coeff int64
		rhs   int64
		want  *domain.Domain
	}{
		{"le positive", model.KindIntLinLe, 2, 7, domain.New(-10, 3)},
		{"ge positive", model.KindIntLinGe, 2, 7, domain.New(4, 10)},
		{"le negative", model.KindIntLinLe, -3, 7, domain.New(-2, 10)},
		{"lt strict", model.KindIntLinLt, 1, 4, domain.New(-10, 3)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := model.New([]*model.IntVarSpec{intVar("x", -10, 10)}, nil, nil)
			x := m.Refs().IntVar(0)
			m.AddConstraint(lin(tc.kind, []int64{tc.coeff}, []*ir.Node{x}, tc.rhs))

			res := compileOK(t, m)
			if res.Infeasible {
				t.Fatalf("unexpected infeasible: %v", res.Defects)
			}
			if got := m.IntVars[0].Dom; !got.Equal(tc.want) {
				t.Errorf("x domain = %v, want %v", got, tc.want)
			}
			if !m.Constraints[0].Nullified {
				t.Error("single-term row not absorbed")
			}
		})
	}
}

func TestLinearDivisibilityDefect(t *testing.T) {
	m := model.New([]*model.IntVarSpec{intVar("x", -10, 10)}, nil, nil)
	x := m.Refs().IntVar(0)
	m.AddConstraint(lin(model.KindIntLinEq, []int64{2}, []*ir.Node{x}, 7))

	res := compileOK(t, m)
	if !res.Infeasible {
		t.Fatal("2x = 7 accepted over integers")
	}
}

func TestLinearSignFlip(t *testing.T) {
	m := model.New([]*model.IntVarSpec{
		intVar("x", 0, 10), intVar("y", 0, 10),
	}, nil, nil)
	x, y := m.Refs().IntVar(0), m.Refs().IntVar(1)
	c := m.AddConstraint(lin(model.KindIntLinLe, []int64{-1, -2}, []*ir.Node{x, y}, -5))

	compileOK(t, m)
	if c.Nullified {
		t.Fatal("open inequality absorbed")
	}
	if c.Kind != model.KindIntLinGe {
		t.Fatalf("kind = %s, want int_lin_ge", c.Kind)
	}
	coeffs := c.Args[0]
	for i, cf := range coeffs.Values {
		if v, _ := cf.IntValue(); v <= 0 {
			t.Errorf("coeff %d = %d after flip, want positive", i, v)
		}
	}
	if rhs, _ := c.Args[2].IntValue(); rhs != 5 {
		t.Errorf("rhs = %d, want 5", rhs)
	}
}

func TestLinearRedundancyAndConflict(t *testing.T) {
	build := func(rhs int64) (*model.Model, *model.ConstraintSpec) {
		m := model.New([]*model.IntVarSpec{
			intVar("x", 0, 5), intVar("y", 0, 5),
		}, nil, nil)
		x, y := m.Refs().IntVar(0), m.Refs().IntVar(1)
		c := m.AddConstraint(lin(model.KindIntLinLe, []int64{1, 1}, []*ir.Node{x, y}, rhs))
		return m, c
	}

	m, c := build(100)
	res := compileOK(t, m)
	if !c.Nullified || res.Infeasible {
		t.Error("inequality above the activity ceiling not dropped")
	}

	m, _ = build(-1)
	res = compileOK(t, m)
	if !res.Infeasible {
		t.Error("inequality below the activity floor not reported")
	}
}

func TestAbsSeesThroughZeroTest(t *testing.T) {
	m := model.New([]*model.IntVarSpec{
		intVar("x", -10, 10), introducedVar("y", -10, 10),
	}, nil, nil)
	x, y := m.Refs().IntVar(0), m.Refs().IntVar(1)
	m.AddConstraint(model.KindIntAbs, []*ir.Node{x, y})
	m.AddConstraint(model.KindIntEq, []*ir.Node{y, ir.FromInt(0)})

	res := compileOK(t, m)
	if res.Infeasible {
		t.Fatalf("unexpected infeasible: %v", res.Defects)
	}
	if v, ok := m.FixedInt(x); !ok || v != 0 {
		t.Errorf("x = %v fixed=%v, want 0 through |x| = 0", v, ok)
	}
	if v, ok := m.FixedInt(y); !ok || v != 0 {
		t.Errorf("y = %v fixed=%v, want 0", v, ok)
	}
}

func TestBool2IntChannels(t *testing.T) {
	m := model.New([]*model.IntVarSpec{intVar("x", -5, 5)},
		[]*model.BoolVarSpec{boolVar("b")}, nil)
	x, b := m.Refs().IntVar(0), m.Refs().BoolVar(0)
	m.AddConstraint(model.KindBool2Int, []*ir.Node{b, x})
	m.AddConstraint(model.KindIntEq, []*ir.Node{x, ir.FromInt(1)})

	res := compileOK(t, m)
	if res.Infeasible {
		t.Fatalf("unexpected infeasible: %v", res.Defects)
	}
	if v, ok := m.FixedBool(b); !ok || !v {
		t.Errorf("b = %v fixed=%v, want true", v, ok)
	}
}

func TestClauseUnitPropagation(t *testing.T) {
	fa := false
	m := model.New(nil, []*model.BoolVarSpec{
		boolVar("a"),
		{Name: "b", Alias: model.NoAlias, Assigned: &fa},
	}, nil)
	a, b := m.Refs().BoolVar(0), m.Refs().BoolVar(1)
	// (a | b) with b false pins a.
	m.AddConstraint(model.KindBoolClause,
		[]*ir.Node{ir.FromSlice([]*ir.Node{a, b}), ir.FromSlice(nil)})

	res := compileOK(t, m)
	if res.Infeasible {
		t.Fatalf("unexpected infeasible: %v", res.Defects)
	}
	if v, ok := m.FixedBool(a); !ok || !v {
		t.Errorf("a = %v fixed=%v, want true", v, ok)
	}
}

func TestArrayBoolOrForcesElements(t *testing.T) {
	fa := false
	m := model.New(nil, []*model.BoolVarSpec{
		boolVar("a"), boolVar("b"),
		{Name: "r", Alias: model.NoAlias, Assigned: &fa},
	}, nil)
	refs := m.Refs()
	a, b, r := refs.BoolVar(0), refs.BoolVar(1), refs.BoolVar(2)
	m.AddConstraint(model.KindArrayBoolOr,
		[]*ir.Node{ir.FromSlice([]*ir.Node{a, b}), r})

	res := compileOK(t, m)
	if res.Infeasible {
		t.Fatalf("unexpected infeasible: %v", res.Defects)
	}
	for i, v := range []*ir.Node{a, b} {
		if got, ok := m.FixedBool(v); !ok || got {
			t.Errorf("element %d = %v fixed=%v, want false", i, got, ok)
		}
	}
}

func TestHiddenSumClassification(t *testing.T) {
	m := model.New([]*model.IntVarSpec{
		introducedVar("s", 0, 100), intVar("x", 0, 10), intVar("y", 0, 10),
	}, nil, nil)
	refs := m.Refs()
	s, x, y := refs.IntVar(0), refs.IntVar(1), refs.IntVar(2)
	// s - x - y = 0 determines s without any annotation.
	m.AddConstraint(lin(model.KindIntLinEq, []int64{1, -1, -1}, []*ir.Node{s, x, y}, 0))

	res := compileOK(t, m)
	if res.IntStates[0] != Computed {
		t.Errorf("s state = %v, want Computed", res.IntStates[0])
	}
	if res.IntStates[1] != Active || res.IntStates[2] != Active {
		t.Error("summands lost their search status")
	}
}

func TestStrictOrderAtIntRange(t *testing.T) {
	tests := []struct {
		name string
		args func(x *ir.Node) []*ir.Node
	}{
		{"fixed left at max", func(x *ir.Node) []*ir.Node {
			return []*ir.Node{ir.FromInt(math.MaxInt64), x}
		}},
		{"fixed right at min", func(x *ir.Node) []*ir.Node {
			return []*ir.Node{x, ir.FromInt(math.MinInt64)}
		}},
		{"both fixed", func(x *ir.Node) []*ir.Node {
			return []*ir.Node{ir.FromInt(math.MaxInt64), ir.FromInt(math.MinInt64)}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := model.New([]*model.IntVarSpec{intVar("x", 0, 10)}, nil, nil)
			m.AddConstraint(model.KindIntLt, tt.args(m.Refs().IntVar(0)))

			res := compileOK(t, m)
			if !res.Infeasible {
				t.Fatal("strict bound at the int64 edge reported feasible")
			}
			if got := m.IntVars[0].Dom; !got.Equal(domain.New(0, 10)) {
				t.Errorf("x domain = %v, want untouched 0..10", got)
			}
		})
	}
}

func TestLinearFoldOverflowPassesThrough(t *testing.T) {
	big := int64(1) << 62
	m := model.New([]*model.IntVarSpec{
		{Name: "y", Alias: model.NoAlias, Assigned: &big},
		intVar("x", -10, 10),
	}, nil, nil)
	y, x := m.Refs().IntVar(0), m.Refs().IntVar(1)
	// 4y wraps; the row must survive untouched rather than pin x.
	m.AddConstraint(lin(model.KindIntLinEq, []int64{4, 1}, []*ir.Node{y, x}, 0))

	res := compileOK(t, m)
	if res.Infeasible {
		t.Fatalf("unexpected infeasible: %v", res.Defects)
	}
	if m.Constraints[0].Nullified {
		t.Fatal("overflowing row was folded away")
	}
	if got := m.IntVars[1].Dom; !got.Equal(domain.New(-10, 10)) {
		t.Errorf("x domain = %v, want untouched -10..10", got)
	}
}
