package ir

import "fmt"

type Type int

const (
	NoType Type = iota
	IntLitType
	BoolLitType
	FloatLitType
	SetLitType
	IntVarType
	BoolVarType
	SetVarType
	ArrayType
	CallType
	AtomType
	StringType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NoType:       "None",
		IntLitType:   "IntLit",
		BoolLitType:  "BoolLit",
		FloatLitType: "FloatLit",
		SetLitType:   "SetLit",
		IntVarType:   "IntVar",
		BoolVarType:  "BoolVar",
		SetVarType:   "SetVar",
		ArrayType:    "Array",
		CallType:     "Call",
		AtomType:     "Atom",
		StringType:   "String",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"None":     NoType,
		"IntLit":   IntLitType,
		"BoolLit":  BoolLitType,
		"FloatLit": FloatLitType,
		"SetLit":   SetLitType,
		"IntVar":   IntVarType,
		"BoolVar":  BoolVarType,
		"SetVar":   SetVarType,
		"Array":    ArrayType,
		"Call":     CallType,
		"Atom":     AtomType,
		"String":   StringType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NoType,
		IntLitType,
		BoolLitType,
		FloatLitType,
		SetLitType,
		IntVarType,
		BoolVarType,
		SetVarType,
		ArrayType,
		CallType,
		AtomType,
		StringType,
	}
}

// IsVar reports whether t is one of the variable reference types,
// whose nodes carry only an index into the variable table.
func (t Type) IsVar() bool {
	switch t {
	case IntVarType, BoolVarType, SetVarType:
		return true
	default:
		return false
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, CallType:
		return false
	default:
		return true
	}
}
