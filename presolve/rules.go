package presolve

import (
	"fmt"

	"github.com/fzn-format/go-fzn/debug"
	"github.com/fzn-format/go-fzn/model"
)

// ruleFunc is one local rewrite rule: a function of one constraint (plus
// read access to the variable tables) that may narrow a referenced
// variable's domain, nullify the constraint, or retag it. Rules must be
// idempotent on their own output; that is what makes the fixpoint loop
// terminate.
type ruleFunc func(s *state, c *model.ConstraintSpec) (bool, error)

var rules = map[model.Kind]ruleFunc{}

func register(f ruleFunc, kinds ...model.Kind) {
	for _, k := range kinds {
		if _, present := rules[k]; present {
			panic(fmt.Sprintf("duplicate rule for %s", k))
		}
		rules[k] = f
	}
}

func init() {
	register(ruleIntEq, model.KindIntEq)
	register(ruleIntNe, model.KindIntNe)
	register(ruleIntLe, model.KindIntLe)
	register(ruleIntLt, model.KindIntLt)
	register(ruleIntGe, model.KindIntGe)
	register(ruleIntGt, model.KindIntGt)
	register(ruleReif,
		model.KindIntEqReif, model.KindIntNeReif,
		model.KindIntLeReif, model.KindIntLtReif,
		model.KindIntGeReif, model.KindIntGtReif)
	register(ruleLinStrict, model.KindIntLinLt, model.KindIntLinGt)
	register(ruleLin,
		model.KindIntLinEq, model.KindIntLinNe,
		model.KindIntLinLe, model.KindIntLinGe)
	register(ruleSetIn, model.KindSetIn)
	register(ruleBoolEq, model.KindBoolEq)
	register(ruleBoolNot, model.KindBoolNot)
	register(ruleBoolLe, model.KindBoolLe)
	register(ruleBool2Int, model.KindBool2Int)
	register(ruleBoolClause, model.KindBoolClause)
	register(ruleArrayBool, model.KindArrayBoolOr, model.KindArrayBoolAnd)
	register(ruleIntAbs, model.KindIntAbs)
}

// fixpoint applies every applicable rule to every live constraint until a
// full sweep changes nothing. Constraint kinds without a rule pass through
// untouched; that is expected, not an error.
func (s *state) fixpoint() error {
	for round := 0; round < s.cfg.maxRounds; round++ {
		s.stats.FixRounds = round + 1
		changed := false
		for _, c := range s.m.Constraints {
			if c.Nullified {
				continue
			}
			f := rules[c.Kind]
			if f == nil {
				continue
			}
			ch, err := f(s, c)
			if err != nil {
				return err
			}
			if ch {
				changed = true
				s.stats.Rewrites++
				if debug.Presolve() {
					debug.Logf("presolve: rewrote %s\n", c)
				}
			}
		}
		if !changed {
			return nil
		}
	}
	return nil
}
