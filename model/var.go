package model

import (
	"github.com/fzn-format/go-fzn/domain"
	"github.com/fzn-format/go-fzn/ir"
)

// NoAlias marks a variable that is not declared equal to another variable.
const NoAlias = -1

// IntVarSpec is one row of the integer variable table. Specs are created
// once during model ingestion and mutated in place by the presolve passes;
// domains only ever shrink.
type IntVarSpec struct {
	Name       string
	Introduced bool
	Alias      int
	Assigned   *int64
	Dom        *domain.Domain

	// OwnsDom is false when Dom is a record shared with another variable
	// (the upstream compiler reuses domain objects for variables declared
	// with one set expression). In-place merges are skipped on shared
	// records.
	OwnsDom bool
}

func (v *IntVarSpec) Aliased() bool {
	return v.Alias != NoAlias
}

// Fixed returns the variable's value when it is pinned, either by
// assignment or by a singleton domain.
func (v *IntVarSpec) Fixed() (int64, bool) {
	if v.Assigned != nil {
		return *v.Assigned, true
	}
	if v.Dom != nil {
		return v.Dom.SingletonValue()
	}
	return 0, false
}

// BoolVarSpec is one row of the boolean variable table.
type BoolVarSpec struct {
	Name       string
	Introduced bool
	Alias      int
	Assigned   *bool
}

func (v *BoolVarSpec) Aliased() bool {
	return v.Alias != NoAlias
}

func (v *BoolVarSpec) Fixed() (bool, bool) {
	if v.Assigned == nil {
		return false, false
	}
	return *v.Assigned, true
}

// SetVarSpec is one row of the set variable table. Dom, when present, is
// the universe the set's elements are drawn from.
type SetVarSpec struct {
	Name       string
	Introduced bool
	Alias      int
	Dom        *ir.SetLit
}

func (v *SetVarSpec) Aliased() bool {
	return v.Alias != NoAlias
}

// DomainOf converts a set literal into a domain value.
func DomainOf(s *ir.SetLit) *domain.Domain {
	if s == nil {
		return domain.Full()
	}
	if s.Interval {
		return domain.New(s.Min, s.Max)
	}
	return domain.FromValues(s.Values)
}
