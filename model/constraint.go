package model

import (
	"strings"

	"github.com/fzn-format/go-fzn/ir"
)

// Kind is a constraint's name tag. Presolve rules may replace it, but only
// through ConstraintSpec.Retag, which records an explicit transition to a
// new kind and argument list; kinds are never edited by string splicing.
// Kinds outside the named constants pass through presolve untouched.
type Kind string

const (
	KindIntEq Kind = "int_eq"
	KindIntNe Kind = "int_ne"
	KindIntLe Kind = "int_le"
	KindIntLt Kind = "int_lt"
	KindIntGe Kind = "int_ge"
	KindIntGt Kind = "int_gt"

	KindIntEqReif Kind = "int_eq_reif"
	KindIntNeReif Kind = "int_ne_reif"
	KindIntLeReif Kind = "int_le_reif"
	KindIntLtReif Kind = "int_lt_reif"
	KindIntGeReif Kind = "int_ge_reif"
	KindIntGtReif Kind = "int_gt_reif"

	KindIntLinEq Kind = "int_lin_eq"
	KindIntLinNe Kind = "int_lin_ne"
	KindIntLinLe Kind = "int_lin_le"
	KindIntLinLt Kind = "int_lin_lt"
	KindIntLinGe Kind = "int_lin_ge"
	KindIntLinGt Kind = "int_lin_gt"

	KindIntAbs   Kind = "int_abs"
	KindIntMax   Kind = "int_max"
	KindIntMin   Kind = "int_min"
	KindIntTimes Kind = "int_times"
	KindIntPlus  Kind = "int_plus"

	KindMaximumInt Kind = "maximum_int"
	KindMinimumInt Kind = "minimum_int"

	KindBoolEq       Kind = "bool_eq"
	KindBoolNot      Kind = "bool_not"
	KindBoolLe       Kind = "bool_le"
	KindBool2Int     Kind = "bool2int"
	KindBoolClause   Kind = "bool_clause"
	KindArrayBoolOr  Kind = "array_bool_or"
	KindArrayBoolAnd Kind = "array_bool_and"

	KindSetIn Kind = "set_in"
)

// Reified reports whether k is the reified form of some comparison, and
// returns the unreified kind.
func (k Kind) Reified() (Kind, bool) {
	s := string(k)
	if !strings.HasSuffix(s, "_reif") {
		return k, false
	}
	return Kind(strings.TrimSuffix(s, "_reif")), true
}

// Negate returns the kind expressing the negation of a comparison.
func (k Kind) Negate() (Kind, bool) {
	switch k {
	case KindIntEq:
		return KindIntNe, true
	case KindIntNe:
		return KindIntEq, true
	case KindIntLe:
		return KindIntGt, true
	case KindIntLt:
		return KindIntGe, true
	case KindIntGe:
		return KindIntLt, true
	case KindIntGt:
		return KindIntLe, true
	}
	return k, false
}

// ConstraintSpec is one row of the constraint table. Rows are never
// physically removed: soft deletion via Nullified keeps Index stable for
// canonical ordering.
type ConstraintSpec struct {
	Index       int
	Kind        Kind
	Args        []*ir.Node
	Annotations []*ir.Node

	Nullified  bool
	DefinedArg *ir.Node
	Requires   *NodeSet

	// Considered marks constraints alias discovery has already visited,
	// so a discovery transition is applied at most once per constraint.
	Considered bool
}

// Retag transitions c to a new kind and argument list. This is the single
// mutation point for Kind.
func (c *ConstraintSpec) Retag(kind Kind, args ...*ir.Node) {
	c.Kind = kind
	c.Args = args
}

// Nullify soft-deletes c; later passes and the final output skip it.
func (c *ConstraintSpec) Nullify() {
	c.Nullified = true
	c.DefinedArg = nil
}

// Arg returns the i-th argument, nil when out of range.
func (c *ConstraintSpec) Arg(i int) *ir.Node {
	if i < 0 || i >= len(c.Args) {
		return nil
	}
	return c.Args[i]
}

// Annotation returns the first annotation call with the given name.
func (c *ConstraintSpec) Annotation(name string) *ir.Node {
	for _, a := range c.Annotations {
		if a.Type == ir.CallType && a.Name == name {
			return a
		}
		if a.Type == ir.AtomType && a.Str == name {
			return a
		}
	}
	return nil
}

// DefinesVarTarget returns the variable named by a defines_var annotation.
func (c *ConstraintSpec) DefinesVarTarget() *ir.Node {
	a := c.Annotation("defines_var")
	if a == nil || a.Len() != 1 || !a.Values[0].IsVar() {
		return nil
	}
	return a.Values[0]
}

func (c *ConstraintSpec) String() string {
	var args []string
	for _, a := range c.Args {
		args = append(args, a.String())
	}
	s := string(c.Kind) + "(" + strings.Join(args, ", ") + ")"
	if c.Nullified {
		s += " [nullified]"
	}
	return s
}
