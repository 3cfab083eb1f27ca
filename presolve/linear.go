package presolve

import (
	"math"

	"github.com/fzn-format/go-fzn/domain"
	"github.com/fzn-format/go-fzn/ir"
	"github.com/fzn-format/go-fzn/model"
)

// Rules for linear integer constraints. Strict comparisons are retagged
// to their non-strict forms, fixed terms fold into the right-hand side,
// and single-term constraints absorb into the variable's domain.

// linTerm is one coeff*var product of a linear constraint.
type linTerm struct {
	coeff int64
	v     *ir.Node
}

// linParts decomposes [coeffs, vars, rhs] arguments. It returns ok=false
// when the argument shape is not the expected one; such constraints pass
// through untouched.
func linParts(c *model.ConstraintSpec) (terms []linTerm, rhs int64, ok bool) {
	if len(c.Args) != 3 {
		return nil, 0, false
	}
	coeffs, vars, last := c.Args[0], c.Args[1], c.Args[2]
	if coeffs.Type != ir.ArrayType || vars.Type != ir.ArrayType ||
		coeffs.Len() != vars.Len() || !last.IsIntLit() {
		return nil, 0, false
	}
	terms = make([]linTerm, 0, coeffs.Len())
	for i, cf := range coeffs.Values {
		cv, ok := cf.IntValue()
		if !ok {
			return nil, 0, false
		}
		terms = append(terms, linTerm{coeff: cv, v: vars.Values[i]})
	}
	rhs, _ = last.IntValue()
	return terms, rhs, true
}

// ruleLinStrict rewrites strict linear comparisons to non-strict ones
// over integers: sum < rhs becomes sum <= rhs-1, sum > rhs becomes
// sum >= rhs+1. The retag target has its own rule, so this fires once.
func ruleLinStrict(s *state, c *model.ConstraintSpec) (bool, error) {
	if len(c.Args) != 3 {
		return false, nil
	}
	rhs, ok := c.Args[2].IntValue()
	if !ok {
		return false, nil
	}
	switch c.Kind {
	case model.KindIntLinLt:
		if rhs == math.MinInt64 {
			s.defect(c, "strict bound below representable range")
			return true, nil
		}
		c.Retag(model.KindIntLinLe, c.Args[0], c.Args[1], ir.FromInt(rhs-1))
	case model.KindIntLinGt:
		if rhs == math.MaxInt64 {
			s.defect(c, "strict bound above representable range")
			return true, nil
		}
		c.Retag(model.KindIntLinGe, c.Args[0], c.Args[1], ir.FromInt(rhs+1))
	default:
		return false, nil
	}
	return true, nil
}

func ruleLin(s *state, c *model.ConstraintSpec) (bool, error) {
	terms, rhs, ok := linParts(c)
	if !ok {
		return false, nil
	}

	// Fold fixed variables and zero coefficients into the constant.
	open := terms[:0]
	folded := false
	for _, t := range terms {
		if t.coeff == 0 {
			folded = true
			continue
		}
		if v, fixed := s.m.FixedInt(t.v); fixed {
			// Fold only when the arithmetic stays in range; a wrapped
			// product would pin the remaining terms to wrong values.
			p, ok := mulOK(t.coeff, v)
			if !ok || p == math.MinInt64 {
				return false, nil
			}
			nr, ok := addOK(rhs, -p)
			if !ok {
				return false, nil
			}
			rhs = nr
			folded = true
			continue
		}
		open = append(open, t)
	}
	terms = open

	if len(terms) == 0 {
		if linHolds(c.Kind, 0, rhs) {
			s.nullify(c)
		} else {
			s.defect(c, "linear constraint over constants does not hold")
		}
		return true, nil
	}

	// Canonicalize all-nonpositive coefficient rows by negating both
	// sides. The result has all-nonnegative coefficients, so the flip
	// cannot fire again.
	if kind, flip := linFlip(c.Kind, terms); flip && rhs != math.MinInt64 {
		for i := range terms {
			terms[i].coeff = -terms[i].coeff
		}
		rhs = -rhs
		s.retagLin(c, kind, terms, rhs)
		return true, nil
	}

	if len(terms) == 1 {
		return s.linSingle(c, terms[0], rhs), nil
	}

	if folded {
		s.retagLin(c, c.Kind, terms, rhs)
		return true, nil
	}

	// Activity bounds over the open terms decide redundancy and
	// infeasibility for the inequality forms.
	switch c.Kind {
	case model.KindIntLinLe, model.KindIntLinGe:
		lo, hi, ok := s.linActivity(terms)
		if !ok {
			return false, nil
		}
		le := c.Kind == model.KindIntLinLe
		if (le && hi <= rhs) || (!le && lo >= rhs) {
			s.nullify(c)
			return true, nil
		}
		if (le && lo > rhs) || (!le && hi < rhs) {
			s.defect(c, "linear inequality outside activity bounds")
			return true, nil
		}
	}
	return false, nil
}

// linSingle absorbs a one-term linear constraint, coeff*x <op> rhs, into
// x's domain and nullifies it. Returns true; a one-term row always
// resolves one way or the other.
func (s *state) linSingle(c *model.ConstraintSpec, t linTerm, rhs int64) bool {
	a := t.coeff
	switch c.Kind {
	case model.KindIntLinEq:
		if rhs%a != 0 {
			s.defect(c, "linear equation with no integer solution")
			return true
		}
		return s.pinInt(c, t.v, rhs/a)
	case model.KindIntLinNe:
		if rhs%a != 0 {
			// No integer makes a*x equal rhs; trivially satisfied.
			s.nullify(c)
			return true
		}
		return s.dropValue(c, t.v, rhs/a)
	case model.KindIntLinLe, model.KindIntLinGe:
		// a*x <= rhs becomes x <= floor(rhs/a) for a > 0 and
		// x >= ceil(rhs/a) for a < 0; dually for >=.
		upper := c.Kind == model.KindIntLinLe
		if a < 0 {
			upper = !upper
		}
		bound := floorDiv(rhs, a)
		if !upper {
			bound = ceilDiv(rhs, a)
		}
		_, empty := s.narrowInt(t.v, func(d *domain.Domain) *domain.Domain {
			if upper {
				return d.RemoveAbove(bound)
			}
			return d.RemoveBelow(bound)
		})
		if empty {
			s.defect(c, "linear bound empties domain")
			return true
		}
		s.nullify(c)
		return true
	}
	return false
}

// linActivity computes the min and max achievable sum over the open
// terms. ok=false when a term's domain is unbounded or the running sums
// would overflow.
func (s *state) linActivity(terms []linTerm) (lo, hi int64, ok bool) {
	for _, t := range terms {
		spec := s.m.IntSpec(t.v)
		if spec == nil || spec.Dom == nil {
			return 0, 0, false
		}
		vmin, vmax := spec.Dom.Min(), spec.Dom.Max()
		if vmin <= domain.MinBound || vmax >= domain.MaxBound {
			return 0, 0, false
		}
		a, aok := mulOK(t.coeff, vmin)
		b, bok := mulOK(t.coeff, vmax)
		if !aok || !bok {
			return 0, 0, false
		}
		if a > b {
			a, b = b, a
		}
		lo, ok = addOK(lo, a)
		if !ok {
			return 0, 0, false
		}
		hi, ok = addOK(hi, b)
		if !ok {
			return 0, 0, false
		}
	}
	return lo, hi, true
}

func (s *state) retagLin(c *model.ConstraintSpec, kind model.Kind, terms []linTerm, rhs int64) {
	coeffs := make([]*ir.Node, len(terms))
	vars := make([]*ir.Node, len(terms))
	for i, t := range terms {
		coeffs[i] = ir.FromInt(t.coeff)
		vars[i] = t.v
	}
	c.Retag(kind, ir.FromSlice(coeffs), ir.FromSlice(vars), ir.FromInt(rhs))
}

// linFlip reports the kind a linear row retags to when every coefficient
// is nonpositive, with at least one strictly negative. Equality and
// disequality are symmetric and never flip.
func linFlip(k model.Kind, terms []linTerm) (model.Kind, bool) {
	switch k {
	case model.KindIntLinLe, model.KindIntLinGe:
	default:
		return k, false
	}
	neg := false
	for _, t := range terms {
		if t.coeff > 0 {
			return k, false
		}
		if t.coeff < 0 {
			neg = true
		}
	}
	if !neg {
		return k, false
	}
	if k == model.KindIntLinLe {
		return model.KindIntLinGe, true
	}
	return model.KindIntLinLe, true
}

func linHolds(k model.Kind, sum, rhs int64) bool {
	switch k {
	case model.KindIntLinEq:
		return sum == rhs
	case model.KindIntLinNe:
		return sum != rhs
	case model.KindIntLinLe:
		return sum <= rhs
	case model.KindIntLinGe:
		return sum >= rhs
	}
	return false
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}

func mulOK(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, false
	}
	r := a * b
	if r/b != a {
		return 0, false
	}
	return r, true
}

func addOK(a, b int64) (int64, bool) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, false
	}
	return r, true
}
