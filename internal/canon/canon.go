// Package canon implements the deterministic canonical form described in
// spec.md §4.2: constant folding, identity collapse, commutative sort, and
// like-term/like-base collection inside Sum and Product, bottom-up and
// depth-capped.
package canon

import (
	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/rat"
)

// MaxDepth bounds canonicalisation recursion (spec.md §4.2: "a depth cap
// (≥100 recursion levels)"); beyond it, Canon returns the term unchanged at
// that level rather than recursing further.
const MaxDepth = 100

// Canon returns the canonical representative of e's equivalence class under
// the rewrites in spec.md §4.2. Canon is idempotent: Canon(Canon(e)) and
// Canon(e) are structurally Equal.
func Canon(e expr.Expr) expr.Expr {
	return canonDepth(e, 0)
}

func canonDepth(e expr.Expr, depth int) expr.Expr {
	if depth >= MaxDepth {
		return e
	}
	return simplifyTop(canonChildren(e, depth))
}

// canonChildren recursively canonicalises e's immediate children, leaving
// e's own shape untouched — simplifyTop then applies the node-specific
// rewrite.
func canonChildren(e expr.Expr, depth int) expr.Expr {
	switch t := e.(type) {
	case *expr.Const, *expr.Var:
		return e
	case *expr.Unary:
		return expr.WithChildren(t, []expr.Expr{canonDepth(t.X, depth+1)})
	case *expr.Binary:
		return expr.WithChildren(t, []expr.Expr{canonDepth(t.X, depth+1), canonDepth(t.Y, depth+1)})
	case *expr.Equation:
		return expr.WithChildren(t, []expr.Expr{canonDepth(t.LHS, depth+1), canonDepth(t.RHS, depth+1)})
	case *expr.Sum:
		terms := make([]expr.Term, len(t.Terms))
		for i, term := range t.Terms {
			terms[i] = expr.Term{Coeff: term.Coeff, Body: canonDepth(term.Body, depth+1)}
		}
		return &expr.Sum{Terms: terms}
	case *expr.Product:
		factors := make([]expr.Factor, len(t.Factors))
		for i, f := range t.Factors {
			factors[i] = expr.Factor{Base: canonDepth(f.Base, depth+1), Power: canonDepth(f.Power, depth+1)}
		}
		return &expr.Product{Factors: factors}
	case *expr.Derivative:
		return &expr.Derivative{Body: canonDepth(t.Body, depth+1), Var: t.Var}
	case *expr.Integral:
		return &expr.Integral{Body: canonDepth(t.Body, depth+1), Var: t.Var}
	case *expr.ForAll:
		var domain expr.Expr
		if t.Domain != nil {
			domain = canonDepth(t.Domain, depth+1)
		}
		return &expr.ForAll{Var: t.Var, Domain: domain, Body: canonDepth(t.Body, depth+1)}
	case *expr.Exists:
		var domain expr.Expr
		if t.Domain != nil {
			domain = canonDepth(t.Domain, depth+1)
		}
		return &expr.Exists{Var: t.Var, Domain: domain, Body: canonDepth(t.Body, depth+1)}
	case *expr.Summation:
		return &expr.Summation{Var: t.Var, From: canonDepth(t.From, depth+1), To: canonDepth(t.To, depth+1), Body: canonDepth(t.Body, depth+1)}
	case *expr.BigProduct:
		return &expr.BigProduct{Var: t.Var, From: canonDepth(t.From, depth+1), To: canonDepth(t.To, depth+1), Body: canonDepth(t.Body, depth+1)}
	default:
		// Pi, E and any other childless atom.
		return e
	}
}

func asConst(e expr.Expr) (rat.Rational, bool) {
	c, ok := e.(*expr.Const)
	if !ok {
		return rat.Rational{}, false
	}
	return c.Value, true
}

func isZero(e expr.Expr) bool {
	c, ok := asConst(e)
	return ok && c.IsZero()
}

func isOne(e expr.Expr) bool {
	c, ok := asConst(e)
	return ok && c.IsOne()
}

// simplifyTop applies the node-specific rewrite once children are already
// canonical.
func simplifyTop(e expr.Expr) expr.Expr {
	switch t := e.(type) {
	case *expr.Unary:
		return simplifyUnary(t)
	case *expr.Binary:
		return simplifyBinary(t)
	case *expr.Sum:
		return simplifySum(t)
	case *expr.Product:
		return simplifyProduct(t)
	default:
		return e
	}
}

func simplifyUnary(u *expr.Unary) expr.Expr {
	if u.Tag() != expr.TagNeg {
		return u
	}
	if c, ok := asConst(u.X); ok {
		return expr.FromRational(c.Neg())
	}
	if inner, ok := u.X.(*expr.Unary); ok && inner.Tag() == expr.TagNeg {
		// -(-x) = x
		return inner.X
	}
	return u
}

func simplifyBinary(b *expr.Binary) expr.Expr {
	switch b.Tag() {
	case expr.TagAdd:
		return simplifyAdd(b)
	case expr.TagSub:
		return simplifySub(b)
	case expr.TagMul:
		return simplifyMul(b)
	case expr.TagDiv:
		return simplifyDiv(b)
	case expr.TagPow:
		return simplifyPow(b)
	default:
		return b
	}
}

func simplifyAdd(b *expr.Binary) expr.Expr {
	if r1, ok1 := asConst(b.X); ok1 {
		if r2, ok2 := asConst(b.Y); ok2 {
			if sum, err := r1.Add(r2); err == nil {
				return expr.FromRational(sum)
			}
			return b
		}
	}
	if isZero(b.Y) {
		return b.X
	}
	if isZero(b.X) {
		return b.Y
	}
	if expr.Compare(b.X, b.Y) > 0 {
		return expr.Add(b.Y, b.X)
	}
	return b
}

func simplifySub(b *expr.Binary) expr.Expr {
	if r1, ok1 := asConst(b.X); ok1 {
		if r2, ok2 := asConst(b.Y); ok2 {
			if diff, err := r1.Sub(r2); err == nil {
				return expr.FromRational(diff)
			}
			return b
		}
	}
	if isZero(b.Y) {
		return b.X
	}
	if isZero(b.X) {
		return expr.Neg(b.Y)
	}
	if b.X.Equal(b.Y) {
		return expr.Int(0)
	}
	return b
}

func simplifyMul(b *expr.Binary) expr.Expr {
	if r1, ok1 := asConst(b.X); ok1 {
		if r2, ok2 := asConst(b.Y); ok2 {
			if prod, err := r1.Mul(r2); err == nil {
				return expr.FromRational(prod)
			}
			return b
		}
	}
	if isZero(b.X) || isZero(b.Y) {
		return expr.Int(0)
	}
	if isOne(b.Y) {
		return b.X
	}
	if isOne(b.X) {
		return b.Y
	}
	if expr.Compare(b.X, b.Y) > 0 {
		return expr.Mul(b.Y, b.X)
	}
	return b
}

func simplifyDiv(b *expr.Binary) expr.Expr {
	if r1, ok1 := asConst(b.X); ok1 {
		if r2, ok2 := asConst(b.Y); ok2 && !r2.IsZero() {
			if q, err := r1.Div(r2); err == nil {
				return expr.FromRational(q)
			}
		}
	}
	if isZero(b.X) {
		return expr.Int(0)
	}
	if isOne(b.Y) {
		return b.X
	}
	if b.X.Equal(b.Y) && !isZero(b.X) {
		return expr.Int(1)
	}
	return b
}

// maxIntegerExponent bounds "small integer exponents" for constant
// power-folding (spec.md §4.2).
const maxIntegerExponent = 10

func simplifyPow(b *expr.Binary) expr.Expr {
	if isZero(b.Y) {
		return expr.Int(1)
	}
	if isOne(b.Y) {
		return b.X
	}
	if isZero(b.X) {
		return expr.Int(0)
	}
	if isOne(b.X) {
		return expr.Int(1)
	}
	if base, ok1 := asConst(b.X); ok1 {
		if exp, ok2 := asConst(b.Y); ok2 && exp.IsInteger() {
			n := exp.Num
			if n >= -maxIntegerExponent && n <= maxIntegerExponent {
				if n >= 0 {
					if v, err := base.Pow(int(n)); err == nil {
						return expr.FromRational(v)
					}
				} else if !base.IsZero() {
					if v, err := base.Pow(int(-n)); err == nil {
						if inv, err2 := rat.Int(1).Div(v); err2 == nil {
							return expr.FromRational(inv)
						}
					}
				}
			}
		}
	}
	return b
}

func simplifySum(s *expr.Sum) expr.Expr {
	type key = string
	order := make([]key, 0, len(s.Terms))
	byKey := make(map[key]expr.Term)
	for _, term := range s.Terms {
		k := expr.Key(term.Body)
		if existing, ok := byKey[k]; ok {
			if merged, err := existing.Coeff.Add(term.Coeff); err == nil {
				byKey[k] = expr.Term{Coeff: merged, Body: existing.Body}
			}
			continue
		}
		byKey[k] = term
		order = append(order, k)
	}

	merged := make([]expr.Term, 0, len(order))
	for _, k := range order {
		t := byKey[k]
		if !t.Coeff.IsZero() {
			merged = append(merged, t)
		}
	}

	expr.SortExprs(termBodies(merged))
	sortTermsByBody(merged)

	if len(merged) == 0 {
		return expr.Int(0)
	}
	if len(merged) == 1 {
		if merged[0].Coeff.IsOne() {
			return merged[0].Body
		}
		return simplifyMul(expr.Mul(expr.FromRational(merged[0].Coeff), merged[0].Body))
	}
	return &expr.Sum{Terms: merged}
}

func termBodies(terms []expr.Term) []expr.Expr {
	bodies := make([]expr.Expr, len(terms))
	for i, t := range terms {
		bodies[i] = t.Body
	}
	return bodies
}

func sortTermsByBody(terms []expr.Term) {
	for i := 1; i < len(terms); i++ {
		for j := i; j > 0 && expr.Compare(terms[j].Body, terms[j-1].Body) < 0; j-- {
			terms[j], terms[j-1] = terms[j-1], terms[j]
		}
	}
}

func simplifyProduct(p *expr.Product) expr.Expr {
	type key = string
	order := make([]key, 0, len(p.Factors))
	byKey := make(map[key]expr.Factor)
	for _, f := range p.Factors {
		k := expr.Key(f.Base)
		if existing, ok := byKey[k]; ok {
			byKey[k] = expr.Factor{Base: existing.Base, Power: Canon(expr.Add(existing.Power, f.Power))}
			continue
		}
		byKey[k] = f
		order = append(order, k)
	}

	merged := make([]expr.Factor, 0, len(order))
	for _, k := range order {
		f := byKey[k]
		if !isZero(f.Power) {
			merged = append(merged, f)
		}
	}

	sortFactorsByBase(merged)

	if len(merged) == 0 {
		return expr.Int(1)
	}
	if len(merged) == 1 {
		if isOne(merged[0].Power) {
			return merged[0].Base
		}
		return Canon(expr.Pow(merged[0].Base, merged[0].Power))
	}
	return &expr.Product{Factors: merged}
}

func sortFactorsByBase(factors []expr.Factor) {
	for i := 1; i < len(factors); i++ {
		for j := i; j > 0 && expr.Compare(factors[j].Base, factors[j-1].Base) < 0; j-- {
			factors[j], factors[j-1] = factors[j-1], factors[j]
		}
	}
}
