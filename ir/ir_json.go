package ir

import (
	"encoding/json"
	"fmt"
)

// The IR is representable in JSON so that models can be handed off by the
// upstream compiler and inspected without any other tooling. Payload fields
// are pointers in the wire form so that zero values round-trip.

type nodeJSON struct {
	Type   Type     `json:"type"`
	Int    *int64   `json:"int,omitempty"`
	Bool   *bool    `json:"bool,omitempty"`
	Float  *float64 `json:"float,omitempty"`
	Set    *SetLit  `json:"set,omitempty"`
	Var    *int     `json:"var,omitempty"`
	Str    string   `json:"str,omitempty"`
	Name   string   `json:"name,omitempty"`
	Values []*Node  `json:"values,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	w := &nodeJSON{Type: n.Type, Set: n.Set, Name: n.Name, Values: n.Values}
	switch n.Type {
	case IntLitType:
		w.Int = &n.Int
	case BoolLitType:
		w.Bool = &n.Bool
	case FloatLitType:
		w.Float = &n.Float
	case IntVarType, BoolVarType, SetVarType:
		w.Var = &n.Var
	case AtomType, StringType:
		w.Str = n.Str
	}
	return json.Marshal(w)
}

func (n *Node) UnmarshalJSON(d []byte) error {
	w := &nodeJSON{}
	if err := json.Unmarshal(d, w); err != nil {
		return err
	}
	n.Type = w.Type
	n.Set = w.Set
	n.Name = w.Name
	n.Values = w.Values
	n.Str = w.Str
	if w.Int != nil {
		n.Int = *w.Int
	}
	if w.Bool != nil {
		n.Bool = *w.Bool
	}
	if w.Float != nil {
		n.Float = *w.Float
	}
	if w.Var != nil {
		n.Var = *w.Var
	}
	switch n.Type {
	case SetLitType:
		if n.Set == nil {
			return fmt.Errorf("%w: set literal without set payload", ErrBadNode)
		}
	case IntVarType, BoolVarType, SetVarType:
		if w.Var == nil {
			return fmt.Errorf("%w: variable reference without index", ErrBadNode)
		}
	}
	return nil
}

type setJSON struct {
	Min    *int64  `json:"min,omitempty"`
	Max    *int64  `json:"max,omitempty"`
	Values []int64 `json:"values,omitempty"`
}

func (s *SetLit) MarshalJSON() ([]byte, error) {
	if s.Interval {
		return json.Marshal(&setJSON{Min: &s.Min, Max: &s.Max})
	}
	return json.Marshal(&setJSON{Values: s.Values})
}

func (s *SetLit) UnmarshalJSON(d []byte) error {
	w := &setJSON{}
	if err := json.Unmarshal(d, w); err != nil {
		return err
	}
	if w.Min != nil || w.Max != nil {
		if w.Min == nil || w.Max == nil || w.Values != nil {
			return fmt.Errorf("%w: set literal needs min+max or values", ErrBadNode)
		}
		*s = SetLit{Interval: true, Min: *w.Min, Max: *w.Max}
		return nil
	}
	*s = *ValueSet(w.Values)
	return nil
}
