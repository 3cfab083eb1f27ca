package ir

import "testing"

func TestValueSetCollapsesToInterval(t *testing.T) {
	s := ValueSet([]int64{3, 1, 2, 2})
	if !s.Interval {
		t.Fatalf("contiguous values should collapse to interval, got %s", s)
	}
	if s.Min != 1 || s.Max != 3 {
		t.Errorf("got %s, want 1..3", s)
	}
}

func TestSetLitQueries(t *testing.T) {
	tests := []struct {
		name  string
		set   *SetLit
		card  int64
		has   int64
		hasOk bool
	}{
		{"interval", IntervalSet(0, 10), 11, 5, true},
		{"interval miss", IntervalSet(0, 10), 11, 11, false},
		{"empty interval", IntervalSet(5, 3), 0, 4, false},
		{"sparse", ValueSet([]int64{1, 3, 9}), 3, 3, true},
		{"sparse miss", ValueSet([]int64{1, 3, 9}), 3, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Card(); got != tt.card {
				t.Errorf("Card() = %d, want %d", got, tt.card)
			}
			if got := tt.set.Contains(tt.has); got != tt.hasOk {
				t.Errorf("Contains(%d) = %v, want %v", tt.has, got, tt.hasOk)
			}
		})
	}
}

func TestNodeJSONRoundTrip(t *testing.T) {
	orig := Call("int_lin_eq",
		FromSlice([]*Node{FromInt(-1), FromInt(1)}),
		FromSlice([]*Node{IntVarRef(0), IntVarRef(1)}),
		FromInt(0),
	)
	d, err := orig.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	back := &Node{}
	if err := back.UnmarshalJSON(d); err != nil {
		t.Fatal(err)
	}
	if !Equal(orig, back) {
		t.Errorf("round trip changed node: %s != %s", orig, back)
	}
}

func TestSetLitEqualNil(t *testing.T) {
	var s *SetLit
	if !s.Equal(nil) {
		t.Error("nil sets should compare equal")
	}
	if s.Equal(IntervalSet(0, 1)) {
		t.Error("nil equals a real set")
	}
	if IntervalSet(0, 1).Equal(nil) {
		t.Error("real set equals nil")
	}
}
