package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the node, consistent with Compare: nodes
// that compare equal hash equal within one process.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}

	var h maphash.Hash
	h.SetSeed(hashSeed)

	h.WriteByte(byte(n.Type))

	switch n.Type {
	case IntLitType:
		writeUint64(&h, uint64(n.Int))
	case BoolLitType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case FloatLitType:
		writeUint64(&h, math.Float64bits(n.Float))
	case SetLitType:
		hashSet(&h, n.Set)
	case IntVarType, BoolVarType, SetVarType:
		writeUint64(&h, uint64(n.Var))
	case ArrayType:
		for _, v := range n.Values {
			writeUint64(&h, v.Hash())
		}
	case CallType:
		h.WriteString(n.Name)
		for _, v := range n.Values {
			writeUint64(&h, v.Hash())
		}
	case AtomType, StringType:
		h.WriteString(n.Str)
	}
	return h.Sum64()
}

// hashSet hashes the set by its bounds when the elements are contiguous,
// so intervals and contiguous value lists agree without materializing the
// elements. Sparse lists hash element by element.
func hashSet(h *maphash.Hash, s *SetLit) {
	if s.Empty() {
		h.WriteByte(2)
		return
	}
	min, max, _ := s.Bounds()
	if s.Interval || max-min == int64(len(s.Values))-1 {
		h.WriteByte(1)
		writeUint64(h, uint64(min))
		writeUint64(h, uint64(max))
		return
	}
	h.WriteByte(0)
	for _, v := range s.Values {
		writeUint64(h, uint64(v))
	}
}

func writeUint64(h *maphash.Hash, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	h.Write(b[:])
}
