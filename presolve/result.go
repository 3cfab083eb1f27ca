package presolve

import (
	"github.com/fzn-format/go-fzn/domain"
	"github.com/fzn-format/go-fzn/ir"
	"github.com/fzn-format/go-fzn/model"
)

// VarState classifies how the backend must realize a variable.
type VarState int

const (
	// Active variables become backend decision variables.
	Active VarState = iota
	// Aliased variables are realized as references to their alias root.
	Aliased
	// Computed variables are not realized; their value follows from the
	// constraint that defines them.
	Computed
)

func (s VarState) String() string {
	switch s {
	case Active:
		return "active"
	case Aliased:
		return "aliased"
	case Computed:
		return "computed"
	}
	return "<unknown state>"
}

// DomainConstraint enforces a narrowed domain on an alias root whose
// aliased variable could not be merged in place.
type DomainConstraint struct {
	Var *ir.Node
	Dom *domain.Domain
}

// Stats summarizes what presolve did, for reporting.
type Stats struct {
	Rewrites  int
	Nullified int
	Aliases   int
	Regrouped int
	ComputedN int
	ForcedN   int
	FixRounds int
}

// Result is the canonicalized model handed to the backend.
type Result struct {
	Model *model.Model

	IntStates  []VarState
	BoolStates []VarState
	SetStates  []VarState

	// Order holds the surviving constraints in schedule order: exactly
	// the non-nullified constraints of the input, permuted.
	Order []*model.ConstraintSpec

	// Domains is the side list of domain-tightening constraints for
	// variables that were skipped or aliased.
	Domains []DomainConstraint

	Goal model.Goal

	// Forced holds variables inserted into the defined set directly by
	// cycle-breaking; they are not computed by their nominal defining
	// constraint.
	Forced *model.NodeSet

	Defects    []Defect
	Infeasible bool

	Stats Stats
}

// Backend consumes a compiled model. It is the pipeline's sole output
// interface; implementations live outside this module.
type Backend interface {
	PutIntVar(idx int, spec *model.IntVarSpec, state VarState) error
	PutBoolVar(idx int, spec *model.BoolVarSpec, state VarState) error
	PutSetVar(idx int, spec *model.SetVarSpec, state VarState) error
	PutConstraint(c *model.ConstraintSpec) error
	PutDomain(d DomainConstraint) error
	PutGoal(g model.Goal) error
}

// EmitTo hands the result to a backend: variables first (with activity
// states), then the scheduled constraints, then domain constraints and the
// goal.
func (r *Result) EmitTo(b Backend) error {
	for i, v := range r.Model.IntVars {
		if err := b.PutIntVar(i, v, r.IntStates[i]); err != nil {
			return err
		}
	}
	for i, v := range r.Model.BoolVars {
		if err := b.PutBoolVar(i, v, r.BoolStates[i]); err != nil {
			return err
		}
	}
	for i, v := range r.Model.SetVars {
		if err := b.PutSetVar(i, v, r.SetStates[i]); err != nil {
			return err
		}
	}
	for _, c := range r.Order {
		if err := b.PutConstraint(c); err != nil {
			return err
		}
	}
	for _, d := range r.Domains {
		if err := b.PutDomain(d); err != nil {
			return err
		}
	}
	return b.PutGoal(r.Goal)
}
