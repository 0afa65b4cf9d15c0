package rules

import (
	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/rule"
)

// FactoringRules returns the factoring and expansion rules (spec.md §4.5,
// categories Factoring and Expansion). distribute and factor_common are
// inverses of each other, each marked Reversible so a search can apply
// either direction depending on whether it is expanding or factoring.
func FactoringRules() []*rule.Rule {
	return []*rule.Rule{
		{
			ID:          50,
			Name:        "difference_of_squares",
			Category:    rule.Factoring,
			Description: "a^2 - b^2 = (a-b)(a+b)",
			Domains:     []rule.Domain{rule.Algebra},
			RequiredFeatures: []rule.Feature{rule.FeaturePolynomial},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				_, _, ok := differenceOfSquares(e)
				return ok
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				a, b, ok := differenceOfSquares(e)
				if !ok {
					return nil
				}
				result := expr.Mul(expr.Sub(a, b), expr.Add(a, b))
				return []rule.Application{{Result: result, Justification: "difference of squares"}}
			},
			Reversible: true,
			Cost:       2,
		},
		{
			ID:          51,
			Name:        "distribute",
			Category:    rule.Expansion,
			Description: "c*(a+b) = c*a + c*b",
			Domains:     []rule.Domain{rule.Algebra},
			RequiredFeatures: []rule.Feature{rule.FeaturePolynomial},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				_, _, _, ok := distributeMatch(e)
				return ok
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				c, a, b, ok := distributeMatch(e)
				if !ok {
					return nil
				}
				result := expr.Add(expr.Mul(c, a), expr.Mul(c, b))
				return []rule.Application{{Result: result, Justification: "distribute multiplication over addition"}}
			},
			Reversible: true,
			Cost:       1,
		},
		{
			ID:          52,
			Name:        "factor_common",
			Category:    rule.Factoring,
			Description: "c*a + c*b = c*(a+b)",
			Domains:     []rule.Domain{rule.Algebra},
			RequiredFeatures: []rule.Feature{rule.FeaturePolynomial},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				_, _, _, ok := factorCommonMatch(e)
				return ok
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				c, a, b, ok := factorCommonMatch(e)
				if !ok {
					return nil
				}
				result := expr.Mul(c, expr.Add(a, b))
				return []rule.Application{{Result: result, Justification: "factor out the common term"}}
			},
			Reversible: true,
			Cost:       2,
		},
	}
}

// differenceOfSquares reports a, b where e is a^2 - b^2.
func differenceOfSquares(e expr.Expr) (expr.Expr, expr.Expr, bool) {
	b, ok := e.(*expr.Binary)
	if !ok || b.Tag() != expr.TagSub {
		return nil, nil, false
	}
	a, okA := asSquare(b.X)
	c, okC := asSquare(b.Y)
	if !okA || !okC {
		return nil, nil, false
	}
	return a, c, true
}

func asSquare(e expr.Expr) (expr.Expr, bool) {
	b, ok := e.(*expr.Binary)
	if !ok || b.Tag() != expr.TagPow {
		return nil, false
	}
	c, ok := b.Y.(*expr.Const)
	if !ok || !c.Value.Equal(expr.Int(2).Value) {
		return nil, false
	}
	return b.X, true
}

// distributeMatch reports c, a, b where e is c*(a+b) or (a+b)*c.
func distributeMatch(e expr.Expr) (expr.Expr, expr.Expr, expr.Expr, bool) {
	b, ok := e.(*expr.Binary)
	if !ok || b.Tag() != expr.TagMul {
		return nil, nil, nil, false
	}
	if sum, ok := b.Y.(*expr.Binary); ok && sum.Tag() == expr.TagAdd {
		return b.X, sum.X, sum.Y, true
	}
	if sum, ok := b.X.(*expr.Binary); ok && sum.Tag() == expr.TagAdd {
		return b.Y, sum.X, sum.Y, true
	}
	return nil, nil, nil, false
}

// factorCommonMatch reports c, a, b where e is c*a + c*b, for any of the
// four operand-order combinations.
func factorCommonMatch(e expr.Expr) (expr.Expr, expr.Expr, expr.Expr, bool) {
	add, ok := e.(*expr.Binary)
	if !ok || add.Tag() != expr.TagAdd {
		return nil, nil, nil, false
	}
	left, ok := add.X.(*expr.Binary)
	if !ok || left.Tag() != expr.TagMul {
		return nil, nil, nil, false
	}
	right, ok := add.Y.(*expr.Binary)
	if !ok || right.Tag() != expr.TagMul {
		return nil, nil, nil, false
	}
	pairs := [][2]expr.Expr{
		{left.X, left.Y},
		{left.Y, left.X},
	}
	others := [][2]expr.Expr{
		{right.X, right.Y},
		{right.Y, right.X},
	}
	for _, lp := range pairs {
		for _, rp := range others {
			if lp[0].Equal(rp[0]) {
				return lp[0], lp[1], rp[1], true
			}
		}
	}
	return nil, nil, nil, false
}
