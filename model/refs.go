package model

import (
	"fmt"

	"github.com/fzn-format/go-fzn/ir"
)

// Refs is the canonical-reference side table: one interned variable node
// per table slot. It is built once before any pass runs and is immutable
// afterwards, so it can be shared by reference across passes. Every place a
// variable is compared against or inserted into a set must use these nodes
// rather than fresh ir.IntVarRef values.
type Refs struct {
	ints  []*ir.Node
	bools []*ir.Node
	sets  []*ir.Node
}

func newRefs(nInt, nBool, nSet int) *Refs {
	r := &Refs{
		ints:  make([]*ir.Node, nInt),
		bools: make([]*ir.Node, nBool),
		sets:  make([]*ir.Node, nSet),
	}
	for i := range r.ints {
		r.ints[i] = ir.IntVarRef(i)
	}
	for i := range r.bools {
		r.bools[i] = ir.BoolVarRef(i)
	}
	for i := range r.sets {
		r.sets[i] = ir.SetVarRef(i)
	}
	return r
}

// IntVar returns the canonical node for integer variable idx.
func (r *Refs) IntVar(idx int) *ir.Node {
	return r.ints[idx]
}

func (r *Refs) BoolVar(idx int) *ir.Node {
	return r.bools[idx]
}

func (r *Refs) SetVar(idx int) *ir.Node {
	return r.sets[idx]
}

// Canonical returns the interned node matching n, which must be a variable
// reference with an in-range index.
func (r *Refs) Canonical(n *ir.Node) (*ir.Node, error) {
	var tbl []*ir.Node
	switch n.Type {
	case ir.IntVarType:
		tbl = r.ints
	case ir.BoolVarType:
		tbl = r.bools
	case ir.SetVarType:
		tbl = r.sets
	default:
		return nil, fmt.Errorf("canonical: not a variable reference: %s", n)
	}
	if n.Var < 0 || n.Var >= len(tbl) {
		return nil, fmt.Errorf("canonical: %s variable index %d out of range", n.Type, n.Var)
	}
	return tbl[n.Var], nil
}
