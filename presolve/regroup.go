package presolve

import (
	"github.com/fzn-format/go-fzn/debug"
	"github.com/fzn-format/go-fzn/ir"
	"github.com/fzn-format/go-fzn/model"
)

// regroup folds chains of binary int_max / int_min constraints into a
// single maximum_int / minimum_int over the chain's leaves. Flattening
// emits r1 = max(x1,x2); r2 = max(r1,x3); ... — the intermediates exist
// only to thread the chain, so when one is introduced and referenced by
// exactly its producer and its consumer it folds away. An intermediate
// referenced anywhere else stays, and the fold stops at it.
func (s *state) regroup() {
	s.regroupKind(model.KindIntMax, model.KindMaximumInt)
	s.regroupKind(model.KindIntMin, model.KindMinimumInt)
}

func (s *state) regroupKind(binary, grouped model.Kind) {
	// producer maps a result variable to the binary constraint
	// computing it; consumed counts uses of that result as an input to
	// another chain link.
	producer := map[vkey]*model.ConstraintSpec{}
	consumed := map[vkey]int{}
	for _, c := range s.m.Constraints {
		if c.Nullified || c.Kind != binary || len(c.Args) != 3 {
			continue
		}
		if r := c.Args[2]; r.Type == ir.IntVarType {
			producer[keyOf(r)] = c
		}
		for _, a := range c.Args[:2] {
			if a.Type == ir.IntVarType {
				consumed[keyOf(a)]++
			}
		}
	}

	for _, c := range s.m.Constraints {
		if c.Nullified || c.Kind != binary || len(c.Args) != 3 {
			continue
		}
		// Only chain tails start a fold; links feeding another link
		// are reached from their tail.
		if r := c.Args[2]; r.Type == ir.IntVarType {
			if consumed[keyOf(r)] > 0 && s.foldableLink(r, c) {
				continue
			}
		}

		var leaves []*ir.Node
		var links []*model.ConstraintSpec
		visited := map[int]bool{c.Index: true}
		var expand func(n *ir.Node)
		expand = func(n *ir.Node) {
			if n.Type == ir.IntVarType {
				if p, ok := producer[keyOf(n)]; ok && !visited[p.Index] && s.foldableLink(n, p) {
					visited[p.Index] = true
					links = append(links, p)
					expand(p.Args[0])
					expand(p.Args[1])
					return
				}
			}
			leaves = append(leaves, n)
		}
		expand(c.Args[0])
		expand(c.Args[1])
		if len(links) == 0 {
			continue
		}
		c.Retag(grouped, c.Args[2], ir.FromSlice(leaves))
		for _, p := range links {
			s.nullify(p)
		}
		s.stats.Regrouped++
		if debug.Regroup() {
			debug.Logf("regroup: folded %d links into %s\n", len(links), c)
		}
	}
	// Folds changed the constraint graph; rebuild the occurrence index
	// for anyone downstream.
	s.buildOccurrences()
}

// foldableLink reports whether the chain intermediate v, produced by p,
// may fold away: introduced, unaliased, unfixed, and referenced by
// exactly its producer and one consumer.
func (s *state) foldableLink(v *ir.Node, p *model.ConstraintSpec) bool {
	if p == nil || !s.m.Introduced(v) || s.m.Aliased(v) {
		return false
	}
	if _, fixed := s.m.FixedInt(v); fixed {
		return false
	}
	return len(s.occurrences(v, p)) == 1
}
