package model

import (
	"encoding/json"
	"fmt"

	"github.com/fzn-format/go-fzn/domain"
	"github.com/fzn-format/go-fzn/ir"
)

// Wire form of the parser hand-off. The upstream compiler emits this (or
// YAML converted to it); tests and the fz tool read it.

type intVarJSON struct {
	Name       string   `json:"name"`
	Introduced bool     `json:"introduced,omitempty"`
	Domain     *domJSON `json:"domain,omitempty"`
	Alias      *int     `json:"alias,omitempty"`
	Value      *int64   `json:"value,omitempty"`
}

// domJSON is the wire form of an integer domain. The upstream compiler
// emits min/max or values (the set-literal shapes); spans is the output
// form for narrowed domains with holes, so wide intervals never have to be
// spelled element by element.
type domJSON struct {
	Min    *int64     `json:"min,omitempty"`
	Max    *int64     `json:"max,omitempty"`
	Values []int64    `json:"values,omitempty"`
	Spans  [][2]int64 `json:"spans,omitempty"`
}

func (w *domJSON) domain() (*domain.Domain, error) {
	switch {
	case w.Min != nil || w.Max != nil:
		if w.Min == nil || w.Max == nil || w.Values != nil || w.Spans != nil {
			return nil, fmt.Errorf("model: domain needs min+max, values, or spans")
		}
		return domain.New(*w.Min, *w.Max), nil
	case w.Spans != nil:
		if w.Values != nil {
			return nil, fmt.Errorf("model: domain needs min+max, values, or spans")
		}
		return domain.FromSpans(w.Spans), nil
	default:
		return domain.FromValues(w.Values), nil
	}
}

func domWire(d *domain.Domain) *domJSON {
	if d.Empty() {
		min, max := int64(1), int64(0)
		return &domJSON{Min: &min, Max: &max}
	}
	if d.IsInterval() {
		min, max := d.Min(), d.Max()
		return &domJSON{Min: &min, Max: &max}
	}
	spans := d.Spans()
	singletons := true
	for _, s := range spans {
		if s[0] != s[1] {
			singletons = false
			break
		}
	}
	if singletons {
		vs := make([]int64, len(spans))
		for i, s := range spans {
			vs[i] = s[0]
		}
		return &domJSON{Values: vs}
	}
	return &domJSON{Spans: spans}
}

type boolVarJSON struct {
	Name       string `json:"name"`
	Introduced bool   `json:"introduced,omitempty"`
	Alias      *int   `json:"alias,omitempty"`
	Value      *bool  `json:"value,omitempty"`
}

type setVarJSON struct {
	Name       string     `json:"name"`
	Introduced bool       `json:"introduced,omitempty"`
	Domain     *ir.SetLit `json:"domain,omitempty"`
	Alias      *int       `json:"alias,omitempty"`
}

type constraintJSON struct {
	Kind        Kind       `json:"kind"`
	Args        []*ir.Node `json:"args"`
	Annotations []*ir.Node `json:"annotations,omitempty"`
}

type goalJSON struct {
	Kind        string     `json:"kind"`
	Objective   *ir.Node   `json:"objective,omitempty"`
	Annotations []*ir.Node `json:"annotations,omitempty"`
}

type modelJSON struct {
	IntVars     []intVarJSON     `json:"int_vars,omitempty"`
	BoolVars    []boolVarJSON    `json:"bool_vars,omitempty"`
	SetVars     []setVarJSON     `json:"set_vars,omitempty"`
	Constraints []constraintJSON `json:"constraints"`
	Goal        *goalJSON        `json:"goal,omitempty"`
}

// FromJSON ingests a wire-form model.
func FromJSON(d []byte) (*Model, error) {
	w := &modelJSON{}
	if err := json.Unmarshal(d, w); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	ints := make([]*IntVarSpec, len(w.IntVars))
	for i, v := range w.IntVars {
		s := &IntVarSpec{
			Name:       v.Name,
			Introduced: v.Introduced,
			Alias:      NoAlias,
			Assigned:   v.Value,
		}
		if v.Domain != nil {
			d, err := v.Domain.domain()
			if err != nil {
				return nil, err
			}
			s.Dom = d
			s.OwnsDom = true
		}
		if v.Alias != nil {
			s.Alias = *v.Alias
		}
		ints[i] = s
	}
	bools := make([]*BoolVarSpec, len(w.BoolVars))
	for i, v := range w.BoolVars {
		s := &BoolVarSpec{
			Name:       v.Name,
			Introduced: v.Introduced,
			Alias:      NoAlias,
			Assigned:   v.Value,
		}
		if v.Alias != nil {
			s.Alias = *v.Alias
		}
		bools[i] = s
	}
	sets := make([]*SetVarSpec, len(w.SetVars))
	for i, v := range w.SetVars {
		s := &SetVarSpec{
			Name:       v.Name,
			Introduced: v.Introduced,
			Alias:      NoAlias,
			Dom:        v.Domain,
		}
		if v.Alias != nil {
			s.Alias = *v.Alias
		}
		sets[i] = s
	}

	m := New(ints, bools, sets)
	for _, c := range w.Constraints {
		m.AddConstraint(c.Kind, c.Args, c.Annotations...)
	}
	if w.Goal != nil {
		switch w.Goal.Kind {
		case "", "satisfy":
			m.Goal = Goal{Kind: Satisfy, Annotations: w.Goal.Annotations}
		case "minimize":
			m.Goal = Goal{Kind: Minimize, Objective: w.Goal.Objective, Annotations: w.Goal.Annotations}
		case "maximize":
			m.Goal = Goal{Kind: Maximize, Objective: w.Goal.Objective, Annotations: w.Goal.Annotations}
		default:
			return nil, fmt.Errorf("model: unknown goal kind %q", w.Goal.Kind)
		}
	}
	return m, nil
}

// ToJSON writes the model back in wire form, including presolve state the
// upstream compiler never emits (nullified rows keep their slots).
func (m *Model) ToJSON() ([]byte, error) {
	w := &modelJSON{}
	for _, v := range m.IntVars {
		jv := intVarJSON{Name: v.Name, Introduced: v.Introduced, Value: v.Assigned}
		if v.Dom != nil {
			jv.Domain = domWire(v.Dom)
		}
		if v.Aliased() {
			a := v.Alias
			jv.Alias = &a
		}
		w.IntVars = append(w.IntVars, jv)
	}
	for _, v := range m.BoolVars {
		jv := boolVarJSON{Name: v.Name, Introduced: v.Introduced, Value: v.Assigned}
		if v.Aliased() {
			a := v.Alias
			jv.Alias = &a
		}
		w.BoolVars = append(w.BoolVars, jv)
	}
	for _, v := range m.SetVars {
		jv := setVarJSON{Name: v.Name, Introduced: v.Introduced, Domain: v.Dom}
		if v.Aliased() {
			a := v.Alias
			jv.Alias = &a
		}
		w.SetVars = append(w.SetVars, jv)
	}
	for _, c := range m.Constraints {
		if c.Nullified {
			continue
		}
		w.Constraints = append(w.Constraints, constraintJSON{
			Kind:        c.Kind,
			Args:        c.Args,
			Annotations: c.Annotations,
		})
	}
	g := &goalJSON{Kind: m.Goal.Kind.String(), Objective: m.Goal.Objective, Annotations: m.Goal.Annotations}
	w.Goal = g
	return json.MarshalIndent(w, "", "  ")
}
