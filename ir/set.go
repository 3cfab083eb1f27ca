package ir

import (
	"slices"
	"strconv"
	"strings"
)

// SetLit is an integer set literal: either a closed interval [Min, Max] or
// an explicit sorted value list. Interval form is canonical whenever the
// values are contiguous.
type SetLit struct {
	Interval bool
	Min, Max int64
	Values   []int64
}

func IntervalSet(min, max int64) *SetLit {
	return &SetLit{Interval: true, Min: min, Max: max}
}

// ValueSet builds a set literal from vs, sorting and deduplicating, and
// collapsing to interval form when the values are contiguous.
func ValueSet(vs []int64) *SetLit {
	vs = slices.Clone(vs)
	slices.Sort(vs)
	vs = slices.Compact(vs)
	if len(vs) > 0 && vs[len(vs)-1]-vs[0] == int64(len(vs))-1 {
		return IntervalSet(vs[0], vs[len(vs)-1])
	}
	return &SetLit{Values: vs}
}

func (s *SetLit) Clone() *SetLit {
	res := *s
	res.Values = slices.Clone(s.Values)
	return &res
}

func (s *SetLit) Contains(v int64) bool {
	if s.Interval {
		return s.Min <= v && v <= s.Max
	}
	_, ok := slices.BinarySearch(s.Values, v)
	return ok
}

// Card returns the number of elements in the set.
func (s *SetLit) Card() int64 {
	if s.Interval {
		if s.Max < s.Min {
			return 0
		}
		return s.Max - s.Min + 1
	}
	return int64(len(s.Values))
}

func (s *SetLit) Empty() bool {
	return s.Card() == 0
}

// Bounds returns the smallest and largest element. The second result is
// false for an empty set.
func (s *SetLit) Bounds() (min, max int64, ok bool) {
	if s.Empty() {
		return 0, 0, false
	}
	if s.Interval {
		return s.Min, s.Max, true
	}
	return s.Values[0], s.Values[len(s.Values)-1], true
}

func (s *SetLit) Equal(o *SetLit) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Interval != o.Interval {
		return false
	}
	if s.Interval {
		return s.Min == o.Min && s.Max == o.Max
	}
	return slices.Equal(s.Values, o.Values)
}

func (s *SetLit) String() string {
	if s.Interval {
		return strconv.FormatInt(s.Min, 10) + ".." + strconv.FormatInt(s.Max, 10)
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range s.Values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	b.WriteByte('}')
	return b.String()
}
