// Package domain provides the integer domain algebra consumed by the
// presolve pipeline.
//
// A Domain is a finite set of integers stored as a sorted list of disjoint,
// non-adjacent closed intervals. Domains are immutable: every operation
// returns a new domain, so callers can hold references across pipeline
// passes without copies being invalidated. An empty domain represents an
// infeasible variable.
package domain

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// Unbounded variable declarations get the full representable range.
const (
	MinBound = math.MinInt64 / 4
	MaxBound = math.MaxInt64 / 4
)

type span struct {
	min, max int64
}

type Domain struct {
	spans []span
}

// New returns the interval domain [min, max]; min > max yields the empty
// domain.
func New(min, max int64) *Domain {
	if min > max {
		return &Domain{}
	}
	return &Domain{spans: []span{{min, max}}}
}

// Full returns the unbounded domain.
func Full() *Domain {
	return New(MinBound, MaxBound)
}

// FromValues returns the domain holding exactly vs.
func FromValues(vs []int64) *Domain {
	vs = slices.Clone(vs)
	slices.Sort(vs)
	vs = slices.Compact(vs)
	d := &Domain{}
	for _, v := range vs {
		n := len(d.spans)
		if n > 0 && d.spans[n-1].max == v-1 {
			d.spans[n-1].max = v
			continue
		}
		d.spans = append(d.spans, span{v, v})
	}
	return d
}

func Singleton(v int64) *Domain {
	return New(v, v)
}

// FromSpans returns the domain covering each closed [min, max] pair in
// spans. Pairs may be unsorted or overlapping; empty pairs are dropped.
func FromSpans(spans [][2]int64) *Domain {
	d := &Domain{}
	for _, s := range spans {
		d = d.Merge(New(s[0], s[1]))
	}
	return d
}

// Spans returns the domain's maximal closed intervals in ascending order.
func (d *Domain) Spans() [][2]int64 {
	out := make([][2]int64, len(d.spans))
	for i, s := range d.spans {
		out[i] = [2]int64{s.min, s.max}
	}
	return out
}

func (d *Domain) Empty() bool {
	return len(d.spans) == 0
}

// Min returns the smallest element; undefined on an empty domain.
func (d *Domain) Min() int64 {
	return d.spans[0].min
}

// Max returns the largest element; undefined on an empty domain.
func (d *Domain) Max() int64 {
	return d.spans[len(d.spans)-1].max
}

// Size returns the number of elements.
func (d *Domain) Size() int64 {
	var n int64
	for _, s := range d.spans {
		n += s.max - s.min + 1
	}
	return n
}

func (d *Domain) IsSingleton() bool {
	return len(d.spans) == 1 && d.spans[0].min == d.spans[0].max
}

// SingletonValue returns the single element if IsSingleton.
func (d *Domain) SingletonValue() (int64, bool) {
	if !d.IsSingleton() {
		return 0, false
	}
	return d.spans[0].min, true
}

func (d *Domain) Contains(v int64) bool {
	for _, s := range d.spans {
		if v < s.min {
			return false
		}
		if v <= s.max {
			return true
		}
	}
	return false
}

// IsInterval reports whether d is a single contiguous interval.
func (d *Domain) IsInterval() bool {
	return len(d.spans) == 1
}

// Narrow returns the intersection of d and o.
func (d *Domain) Narrow(o *Domain) *Domain {
	res := &Domain{}
	i, j := 0, 0
	for i < len(d.spans) && j < len(o.spans) {
		a, b := d.spans[i], o.spans[j]
		lo := max(a.min, b.min)
		hi := min(a.max, b.max)
		if lo <= hi {
			res.push(span{lo, hi})
		}
		if a.max < b.max {
			i++
		} else {
			j++
		}
	}
	return res
}

// Merge returns the union of d and o.
func (d *Domain) Merge(o *Domain) *Domain {
	all := make([]span, 0, len(d.spans)+len(o.spans))
	all = append(all, d.spans...)
	all = append(all, o.spans...)
	slices.SortFunc(all, func(a, b span) int {
		if a.min != b.min {
			if a.min < b.min {
				return -1
			}
			return 1
		}
		return 0
	})
	res := &Domain{}
	for _, s := range all {
		res.push(s)
	}
	return res
}

// RemoveValue returns d without v.
func (d *Domain) RemoveValue(v int64) *Domain {
	res := &Domain{spans: make([]span, 0, len(d.spans)+1)}
	for _, s := range d.spans {
		switch {
		case v < s.min || v > s.max:
			res.push(s)
		case s.min == s.max:
			// drop the whole span
		case v == s.min:
			res.push(span{s.min + 1, s.max})
		case v == s.max:
			res.push(span{s.min, s.max - 1})
		default:
			res.push(span{s.min, v - 1})
			res.push(span{v + 1, s.max})
		}
	}
	return res
}

// RemoveAbove returns d without values > bound.
func (d *Domain) RemoveAbove(bound int64) *Domain {
	res := &Domain{}
	for _, s := range d.spans {
		if s.min > bound {
			break
		}
		res.push(span{s.min, min(s.max, bound)})
	}
	return res
}

// RemoveBelow returns d without values < bound.
func (d *Domain) RemoveBelow(bound int64) *Domain {
	res := &Domain{}
	for _, s := range d.spans {
		if s.max < bound {
			continue
		}
		res.push(span{max(s.min, bound), s.max})
	}
	return res
}

func (d *Domain) Equal(o *Domain) bool {
	return slices.Equal(d.spans, o.spans)
}

// SubsetOf reports whether every element of d is in o.
func (d *Domain) SubsetOf(o *Domain) bool {
	return d.Narrow(o).Equal(d)
}

func (d *Domain) Clone() *Domain {
	return &Domain{spans: slices.Clone(d.spans)}
}

func (d *Domain) String() string {
	if d.Empty() {
		return "{}"
	}
	var b strings.Builder
	for i, s := range d.spans {
		if i > 0 {
			b.WriteByte(' ')
		}
		if s.min == s.max {
			b.WriteString(strconv.FormatInt(s.min, 10))
			continue
		}
		b.WriteString(strconv.FormatInt(s.min, 10))
		b.WriteString("..")
		b.WriteString(strconv.FormatInt(s.max, 10))
	}
	return b.String()
}

// push appends s, coalescing with the previous span when overlapping or
// adjacent. Spans must arrive in ascending min order.
func (d *Domain) push(s span) {
	n := len(d.spans)
	if n > 0 {
		prev := &d.spans[n-1]
		if s.min <= prev.max+1 {
			if s.max > prev.max {
				prev.max = s.max
			}
			return
		}
	}
	d.spans = append(d.spans, s)
}
