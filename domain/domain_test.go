package domain

import "testing"

func TestNarrow(t *testing.T) {
	tests := []struct {
		name string
		a, b *Domain
		want *Domain
	}{
		{"overlap", New(0, 10), New(5, 20), New(5, 10)},
		{"disjoint", New(0, 4), New(6, 9), New(1, 0)},
		{"contained", New(0, 10), New(3, 5), New(3, 5)},
		{"sparse", FromValues([]int64{1, 3, 5, 7}), New(2, 6), FromValues([]int64{3, 5})},
		{"empty lhs", New(1, 0), New(0, 10), New(1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Narrow(tt.b); !got.Equal(tt.want) {
				t.Errorf("Narrow() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMergeCoalesces(t *testing.T) {
	got := New(0, 3).Merge(New(4, 9))
	if !got.Equal(New(0, 9)) {
		t.Errorf("adjacent merge = %s, want 0..9", got)
	}
	got = FromValues([]int64{1, 5}).Merge(FromValues([]int64{3}))
	want := FromValues([]int64{1, 3, 5})
	if !got.Equal(want) {
		t.Errorf("sparse merge = %s, want %s", got, want)
	}
}

func TestRemoveValue(t *testing.T) {
	d := New(0, 4).RemoveValue(2)
	if d.Contains(2) {
		t.Fatalf("2 still present in %s", d)
	}
	if d.Size() != 4 {
		t.Errorf("Size() = %d, want 4", d.Size())
	}
	if d.IsInterval() {
		t.Errorf("expected split into two spans, got %s", d)
	}
}

func TestBoundsRemoval(t *testing.T) {
	d := New(0, 10)
	if got := d.RemoveAbove(5); !got.Equal(New(0, 5)) {
		t.Errorf("RemoveAbove(5) = %s", got)
	}
	if got := d.RemoveBelow(5); !got.Equal(New(5, 10)) {
		t.Errorf("RemoveBelow(5) = %s", got)
	}
	if got := d.RemoveAbove(-1); !got.Empty() {
		t.Errorf("RemoveAbove(-1) = %s, want empty", got)
	}
}

func TestMonotonicOperationsShrink(t *testing.T) {
	d := FromValues([]int64{0, 2, 4, 6, 8})
	ops := []*Domain{
		d.Narrow(New(1, 7)),
		d.RemoveValue(4),
		d.RemoveAbove(5),
		d.RemoveBelow(3),
	}
	for _, got := range ops {
		if !got.SubsetOf(d) {
			t.Errorf("%s is not a subset of %s", got, d)
		}
	}
}

func TestSingleton(t *testing.T) {
	d := New(3, 3)
	v, ok := d.SingletonValue()
	if !ok || v != 3 {
		t.Fatalf("SingletonValue() = %d, %v", v, ok)
	}
	if _, ok := New(3, 4).SingletonValue(); ok {
		t.Fatal("non-singleton reported singleton")
	}
}

func TestSpansRoundTrip(t *testing.T) {
	d := New(0, 100).RemoveValue(40)
	got := FromSpans(d.Spans())
	if !got.Equal(d) {
		t.Errorf("FromSpans(Spans()) = %s, want %s", got, d)
	}
	merged := FromSpans([][2]int64{{5, 9}, {0, 6}, {12, 12}, {3, 1}})
	want := New(0, 9).Merge(Singleton(12))
	if !merged.Equal(want) {
		t.Errorf("FromSpans = %s, want %s", merged, want)
	}
}
