package ir

import (
	"strconv"
	"strings"
)

// Node is a single term of a flat model. The IR works as a recursive tagged
// union structure, where values are placed in fields depending on the node
// type:
//
//   - IntLitType: Int
//   - BoolLitType: Bool
//   - FloatLitType: Float
//   - SetLitType: Set
//   - IntVarType, BoolVarType, SetVarType: Var (an index into the
//     corresponding variable table; variable nodes never carry data directly)
//   - ArrayType: Values
//   - CallType: Name, Values
//   - AtomType, StringType: Str
//
// Two variable nodes with the same type and index are the same variable.
// Anything inserted into a set or map must go through model.Refs so that
// lookups see a single canonical node per variable.
type Node struct {
	Type Type

	Int   int64
	Bool  bool
	Float float64
	Set   *SetLit
	Var   int
	Str   string

	Name   string
	Values []*Node
}

func FromInt(v int64) *Node {
	return &Node{Type: IntLitType, Int: v}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolLitType, Bool: v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: FloatLitType, Float: v}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, Str: v}
}

func Atom(name string) *Node {
	return &Node{Type: AtomType, Str: name}
}

func Call(name string, args ...*Node) *Node {
	return &Node{Type: CallType, Name: name, Values: args}
}

func FromSlice(vs []*Node) *Node {
	return &Node{Type: ArrayType, Values: vs}
}

func FromSet(s *SetLit) *Node {
	return &Node{Type: SetLitType, Set: s}
}

// IntVarRef constructs a fresh integer variable reference. Do not use the
// result as a set or map element; use model.Refs for that.
func IntVarRef(idx int) *Node {
	return &Node{Type: IntVarType, Var: idx}
}

func BoolVarRef(idx int) *Node {
	return &Node{Type: BoolVarType, Var: idx}
}

func SetVarRef(idx int) *Node {
	return &Node{Type: SetVarType, Var: idx}
}

func (n *Node) Clone() *Node {
	res := *n
	if n.Set != nil {
		res.Set = n.Set.Clone()
	}
	if n.Values != nil {
		res.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			res.Values[i] = v.Clone()
		}
	}
	return &res
}

// IsIntLit reports whether n is an integer literal, including a boolean
// literal, which coerces to 0/1 wherever an integer is expected.
func (n *Node) IsIntLit() bool {
	return n.Type == IntLitType || n.Type == BoolLitType
}

// IntValue returns the integer value of an integer or boolean literal.
// The second result is false for any other node.
func (n *Node) IntValue() (int64, bool) {
	switch n.Type {
	case IntLitType:
		return n.Int, true
	case BoolLitType:
		if n.Bool {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func (n *Node) BoolValue() (bool, bool) {
	if n.Type != BoolLitType {
		return false, false
	}
	return n.Bool, true
}

func (n *Node) IsVar() bool {
	return n.Type.IsVar()
}

// Len returns the number of elements for arrays and calls, 0 otherwise.
func (n *Node) Len() int {
	return len(n.Values)
}

// Visit walks n pre- and post-order. The callback returns whether to
// descend into child values.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, v := range n.Values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Type {
	case IntLitType:
		return strconv.FormatInt(n.Int, 10)
	case BoolLitType:
		return strconv.FormatBool(n.Bool)
	case FloatLitType:
		return strconv.FormatFloat(n.Float, 'g', -1, 64)
	case SetLitType:
		return n.Set.String()
	case IntVarType:
		return "i" + strconv.Itoa(n.Var)
	case BoolVarType:
		return "b" + strconv.Itoa(n.Var)
	case SetVarType:
		return "s" + strconv.Itoa(n.Var)
	case ArrayType:
		var b strings.Builder
		b.WriteByte('[')
		for i, v := range n.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(v.String())
		}
		b.WriteByte(']')
		return b.String()
	case CallType:
		var b strings.Builder
		b.WriteString(n.Name)
		b.WriteByte('(')
		for i, v := range n.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(v.String())
		}
		b.WriteByte(')')
		return b.String()
	case AtomType:
		return n.Str
	case StringType:
		return strconv.Quote(n.Str)
	}
	return "<unknown node>"
}
