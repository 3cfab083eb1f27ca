package ir

import (
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected int
	}{
		// Type ranking follows declaration order.
		{"IntLit < BoolLit", FromInt(1), FromBool(false), -1},
		{"BoolLit < FloatLit", FromBool(true), FromFloat(0), -1},
		{"SetLit < IntVar", FromSet(IntervalSet(0, 1)), IntVarRef(0), -1},
		{"IntVar < BoolVar", IntVarRef(9), BoolVarRef(0), -1},
		{"Array < Call", FromSlice(nil), Call("f"), -1},

		{"false < true", FromBool(false), FromBool(true), -1},
		{"int order", FromInt(-3), FromInt(2), -1},
		{"float order", FromFloat(1.5), FromFloat(2.5), -1},
		{"atom order", Atom("a"), Atom("b"), -1},

		// Variables compare by index only.
		{"same int var", IntVarRef(4), IntVarRef(4), 0},
		{"int var order", IntVarRef(1), IntVarRef(2), -1},
		{"same bool var", BoolVarRef(0), BoolVarRef(0), 0},

		// Sets compare as value sequences regardless of spelling.
		{"interval == values", FromSet(IntervalSet(1, 3)), FromSet(ValueSet([]int64{1, 2, 3})), 0},
		{"set order", FromSet(IntervalSet(0, 5)), FromSet(IntervalSet(1, 5)), -1},
		{"sparse set order", FromSet(ValueSet([]int64{1, 3})), FromSet(ValueSet([]int64{1, 4})), -1},

		{"short array < long array", FromSlice([]*Node{FromInt(1)}), FromSlice([]*Node{FromInt(1), FromInt(2)}), -1},
		{"array element order", FromSlice([]*Node{FromInt(1)}), FromSlice([]*Node{FromInt(2)}), -1},

		{"call name order", Call("defines_var", IntVarRef(0)), Call("output_var"), -1},
		{"call arg order", Call("f", FromInt(1)), Call("f", FromInt(2)), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare() = %v, want %v", got, tt.expected)
			}
			// Test symmetry
			if got := Compare(tt.b, tt.a); got != -tt.expected {
				t.Errorf("Compare(b, a) = %v, want %v", got, -tt.expected)
			}
		})
	}
}

func TestHashAgreesWithCompare(t *testing.T) {
	pairs := [][2]*Node{
		{IntVarRef(7), IntVarRef(7)},
		{FromSet(IntervalSet(2, 4)), FromSet(ValueSet([]int64{2, 3, 4}))},
		{Call("f", IntVarRef(1), FromInt(3)), Call("f", IntVarRef(1), FromInt(3))},
	}
	for _, p := range pairs {
		if Compare(p[0], p[1]) != 0 {
			t.Fatalf("expected %s == %s", p[0], p[1])
		}
		if p[0].Hash() != p[1].Hash() {
			t.Errorf("equal nodes %s and %s hash differently", p[0], p[1])
		}
	}
}

func TestVarRefIdentity(t *testing.T) {
	a := BoolVarRef(3)
	b := BoolVarRef(3)
	if !Equal(a, b) {
		t.Fatal("independently constructed references to one variable must compare equal")
	}
	if a.Hash() != b.Hash() {
		t.Fatal("independently constructed references to one variable must hash equal")
	}
	if Equal(a, IntVarRef(3)) {
		t.Fatal("int and bool references with the same index are distinct")
	}
}

func TestCompareWideInterval(t *testing.T) {
	// Interval sets must compare and hash without being spelled out
	// element by element.
	wide := FromSet(IntervalSet(0, int64(1)<<40))
	sparse := FromSet(&SetLit{Values: []int64{0, 2}})
	if c := Compare(wide, sparse); c >= 0 {
		t.Errorf("Compare(wide, sparse) = %d, want < 0", c)
	}
	if c := Compare(sparse, wide); c <= 0 {
		t.Errorf("Compare(sparse, wide) = %d, want > 0", c)
	}
	wide.Hash()

	contig := FromSet(&SetLit{Values: []int64{1, 2, 3}})
	iv := FromSet(IntervalSet(1, 3))
	if !Equal(iv, contig) {
		t.Error("interval and contiguous list should be equal")
	}
	if iv.Hash() != contig.Hash() {
		t.Error("equal sets must hash equal")
	}
}
