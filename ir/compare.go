package ir

import (
	"cmp"
	"slices"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Variable references compare by (type, index) only, so two independently
// constructed references to the same variable are equal.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	if a.Type != b.Type {
		return cmp.Compare(a.Type, b.Type)
	}

	switch a.Type {
	case IntLitType:
		return cmp.Compare(a.Int, b.Int)
	case BoolLitType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case FloatLitType:
		return cmp.Compare(a.Float, b.Float)
	case SetLitType:
		return compareSets(a.Set, b.Set)
	case IntVarType, BoolVarType, SetVarType:
		return cmp.Compare(a.Var, b.Var)
	case ArrayType:
		return compareValues(a, b)
	case CallType:
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return compareValues(a, b)
	case AtomType, StringType:
		return strings.Compare(a.Str, b.Str)
	}
	return 0
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

func compareValues(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)
	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareSets(a, b *SetLit) int {
	// Compare as value sequences; interval form is just a compact spelling.
	aMin, aMax, aOk := a.Bounds()
	bMin, bMax, bOk := b.Bounds()
	if !aOk || !bOk {
		if aOk {
			return 1
		}
		if bOk {
			return -1
		}
		return 0
	}
	if c := cmp.Compare(aMin, bMin); c != 0 {
		return c
	}
	if a.Interval && b.Interval {
		return cmp.Compare(aMax, bMax)
	}
	if a.Interval {
		return compareIntervalValues(a, b.Values)
	}
	if b.Interval {
		return -compareIntervalValues(b, a.Values)
	}
	return slices.Compare(a.Values, b.Values)
}

// compareIntervalValues compares a nonempty interval against a sorted value
// list with the same minimum, as element sequences. The interval's i-th
// element is Min+i, so the walk is bounded by the value list's length.
func compareIntervalValues(a *SetLit, vs []int64) int {
	card := a.Card()
	for i, v := range vs {
		if int64(i) >= card {
			return -1
		}
		if c := cmp.Compare(a.Min+int64(i), v); c != 0 {
			return c
		}
	}
	if card > int64(len(vs)) {
		return 1
	}
	return 0
}
