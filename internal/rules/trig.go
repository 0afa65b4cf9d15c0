package rules

import (
	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/rule"
)

// squaredUnary reports whether e is unaryTag(x)^2 for some x, returning that x.
func squaredUnary(e expr.Expr, unaryTag expr.Tag) (expr.Expr, bool) {
	b, ok := e.(*expr.Binary)
	if !ok || b.Tag() != expr.TagPow {
		return nil, false
	}
	exp, ok := b.Y.(*expr.Const)
	if !ok || !exp.Value.Equal(expr.Int(2).Value) {
		return nil, false
	}
	u, ok := b.X.(*expr.Unary)
	if !ok || u.Tag() != unaryTag {
		return nil, false
	}
	return u.X, true
}

// TrigRules returns the trigonometric-identity rules (spec.md §4.5,
// category TrigIdentity), grounded on the Pythagorean identity named in
// spec.md §8's E4 worked example: simplify(sin(x)^2+cos(x)^2) -> Const(1).
func TrigRules() []*rule.Rule {
	return []*rule.Rule{
		{
			ID:          10,
			Name:        "pythagorean_identity",
			Category:    rule.TrigIdentity,
			Description: "sin(x)^2 + cos(x)^2 = 1",
			Domains:     []rule.Domain{rule.Trigonometry},
			RequiredFeatures: []rule.Feature{rule.FeatureTrig},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				_, ok := pythagoreanArg(e)
				return ok
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				if _, ok := pythagoreanArg(e); !ok {
					return nil
				}
				return []rule.Application{{Result: expr.Int(1), Justification: "sin(x)^2 + cos(x)^2 = 1"}}
			},
			Reversible: false,
			Cost:       1,
		},
		{
			ID:          11,
			Name:        "cos_squared_from_sin_squared",
			Category:    rule.TrigIdentity,
			Description: "1 - sin(x)^2 = cos(x)^2",
			Domains:     []rule.Domain{rule.Trigonometry},
			RequiredFeatures: []rule.Feature{rule.FeatureTrig},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				_, ok := oneMinusSquared(e, expr.TagSin)
				return ok
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				arg, ok := oneMinusSquared(e, expr.TagSin)
				if !ok {
					return nil
				}
				return []rule.Application{{Result: expr.Pow(expr.Cos(arg), expr.Int(2)), Justification: "1 - sin(x)^2 = cos(x)^2"}}
			},
			Reversible: true,
			Cost:       2,
		},
		{
			ID:          12,
			Name:        "cos_even",
			Category:    rule.TrigIdentity,
			Description: "cos(-x) = cos(x)",
			Domains:     []rule.Domain{rule.Trigonometry},
			RequiredFeatures: []rule.Feature{rule.FeatureTrig},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				_, ok := negatedArg(e, expr.TagCos)
				return ok
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				arg, ok := negatedArg(e, expr.TagCos)
				if !ok {
					return nil
				}
				return []rule.Application{{Result: expr.Cos(arg), Justification: "cos(-x) = cos(x)"}}
			},
			Reversible: false,
			Cost:       1,
		},
		{
			ID:          13,
			Name:        "sin_odd",
			Category:    rule.TrigIdentity,
			Description: "sin(-x) = -sin(x)",
			Domains:     []rule.Domain{rule.Trigonometry},
			RequiredFeatures: []rule.Feature{rule.FeatureTrig},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				_, ok := negatedArg(e, expr.TagSin)
				return ok
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				arg, ok := negatedArg(e, expr.TagSin)
				if !ok {
					return nil
				}
				return []rule.Application{{Result: expr.Neg(expr.Sin(arg)), Justification: "sin(-x) = -sin(x)"}}
			},
			Reversible: false,
			Cost:       1,
		},
	}
}

// pythagoreanArg reports the shared argument of sin(x)^2+cos(x)^2, in
// either operand order.
func pythagoreanArg(e expr.Expr) (expr.Expr, bool) {
	b, ok := e.(*expr.Binary)
	if !ok || b.Tag() != expr.TagAdd {
		return nil, false
	}
	if sx, ok := squaredUnary(b.X, expr.TagSin); ok {
		if cx, ok := squaredUnary(b.Y, expr.TagCos); ok && sx.Equal(cx) {
			return sx, true
		}
	}
	if cx, ok := squaredUnary(b.X, expr.TagCos); ok {
		if sx, ok := squaredUnary(b.Y, expr.TagSin); ok && sx.Equal(cx) {
			return sx, true
		}
	}
	return nil, false
}

// oneMinusSquared reports x where e is 1 - unaryTag(x)^2.
func oneMinusSquared(e expr.Expr, unaryTag expr.Tag) (expr.Expr, bool) {
	b, ok := e.(*expr.Binary)
	if !ok || b.Tag() != expr.TagSub {
		return nil, false
	}
	one, ok := b.X.(*expr.Const)
	if !ok || !one.Value.IsOne() {
		return nil, false
	}
	return squaredUnary(b.Y, unaryTag)
}

// negatedArg reports x where e is unaryTag(-x).
func negatedArg(e expr.Expr, unaryTag expr.Tag) (expr.Expr, bool) {
	u, ok := e.(*expr.Unary)
	if !ok || u.Tag() != unaryTag {
		return nil, false
	}
	n, ok := u.X.(*expr.Unary)
	if !ok || n.Tag() != expr.TagNeg {
		return nil, false
	}
	return n.X, true
}
