package model

import (
	"cmp"
	"slices"

	"github.com/fzn-format/go-fzn/ir"
)

type varKey struct {
	typ ir.Type
	idx int
}

// NodeSet is a set of variable reference nodes keyed by (type, index), so
// membership does not depend on which Node value was inserted. Non-variable
// nodes are rejected; candidate and requires sets only ever hold variables.
type NodeSet struct {
	m map[varKey]*ir.Node
}

func NewNodeSet(ns ...*ir.Node) *NodeSet {
	s := &NodeSet{m: map[varKey]*ir.Node{}}
	for _, n := range ns {
		s.Add(n)
	}
	return s
}

func (s *NodeSet) Add(n *ir.Node) bool {
	if n == nil || !n.IsVar() {
		return false
	}
	k := varKey{n.Type, n.Var}
	if _, ok := s.m[k]; ok {
		return false
	}
	s.m[k] = n
	return true
}

func (s *NodeSet) Has(n *ir.Node) bool {
	if s == nil || n == nil || !n.IsVar() {
		return false
	}
	_, ok := s.m[varKey{n.Type, n.Var}]
	return ok
}

func (s *NodeSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.m)
}

// All returns the members ordered by (type, index) for deterministic
// iteration.
func (s *NodeSet) All() []*ir.Node {
	if s == nil {
		return nil
	}
	keys := make([]varKey, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b varKey) int {
		if a.typ != b.typ {
			return cmp.Compare(a.typ, b.typ)
		}
		return cmp.Compare(a.idx, b.idx)
	})
	res := make([]*ir.Node, len(keys))
	for i, k := range keys {
		res[i] = s.m[k]
	}
	return res
}
