package rules

import (
	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/rule"
)

// DerivativeRules returns the differentiation-table rules (spec.md §4.5,
// category Derivative). Each rule matches a Derivative node whose Body has
// a specific shape and rewrites the whole node to its derivative; the sum
// and negation rules let composite bodies reduce one layer at a time under
// repeated rule application, the way a simplify loop or MCTS search would
// drive them (spec.md §4.10). The power rule alone satisfies spec.md §8's
// E5: differentiate(x^3, x) -> 3*x^2.
func DerivativeRules() []*rule.Rule {
	return []*rule.Rule{
		{
			ID:          20,
			Name:        "derivative_of_constant",
			Category:    rule.Derivative,
			Description: "d/dx c = 0",
			Domains:     []rule.Domain{rule.CalculusDiff},
			RequiredFeatures: []rule.Feature{rule.FeatureDerivative},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				d, ok := e.(*expr.Derivative)
				if !ok {
					return false
				}
				if _, isConst := d.Body.(*expr.Const); isConst {
					return true
				}
				v, isVar := d.Body.(*expr.Var)
				return isVar && v.Sym != d.Var
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				return []rule.Application{{Result: expr.Int(0), Justification: "derivative of a term not depending on the variable is 0"}}
			},
			Reversible: false,
			Cost:       1,
		},
		{
			ID:          21,
			Name:        "derivative_of_variable",
			Category:    rule.Derivative,
			Description: "d/dx x = 1",
			Domains:     []rule.Domain{rule.CalculusDiff},
			RequiredFeatures: []rule.Feature{rule.FeatureDerivative},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				d, ok := e.(*expr.Derivative)
				if !ok {
					return false
				}
				v, ok := d.Body.(*expr.Var)
				return ok && v.Sym == d.Var
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				return []rule.Application{{Result: expr.Int(1), Justification: "d/dx x = 1"}}
			},
			Reversible: false,
			Cost:       1,
		},
		{
			ID:          22,
			Name:        "power_rule",
			Category:    rule.Derivative,
			Description: "d/dx x^n = n*x^(n-1)",
			Domains:     []rule.Domain{rule.CalculusDiff},
			RequiredFeatures: []rule.Feature{rule.FeatureDerivative, rule.FeaturePolynomial},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				_, _, ok := powerRuleMatch(e)
				return ok
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				sym, n, ok := powerRuleMatch(e)
				if !ok {
					return nil
				}
				result := expr.Mul(expr.Int(n), expr.Pow(expr.NewVar(sym), expr.Int(n-1)))
				return []rule.Application{{Result: result, Justification: "power rule"}}
			},
			Reversible: false,
			Cost:       1,
		},
		{
			ID:          23,
			Name:        "derivative_of_sin",
			Category:    rule.Derivative,
			Description: "d/dx sin(x) = cos(x)",
			Domains:     []rule.Domain{rule.CalculusDiff, rule.Trigonometry},
			RequiredFeatures: []rule.Feature{rule.FeatureDerivative, rule.FeatureTrig},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				_, ok := derivativeOfUnaryVar(e, expr.TagSin)
				return ok
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				v, ok := derivativeOfUnaryVar(e, expr.TagSin)
				if !ok {
					return nil
				}
				return []rule.Application{{Result: expr.Cos(v), Justification: "d/dx sin(x) = cos(x)"}}
			},
			Reversible: false,
			Cost:       1,
		},
		{
			ID:          24,
			Name:        "derivative_of_cos",
			Category:    rule.Derivative,
			Description: "d/dx cos(x) = -sin(x)",
			Domains:     []rule.Domain{rule.CalculusDiff, rule.Trigonometry},
			RequiredFeatures: []rule.Feature{rule.FeatureDerivative, rule.FeatureTrig},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				_, ok := derivativeOfUnaryVar(e, expr.TagCos)
				return ok
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				v, ok := derivativeOfUnaryVar(e, expr.TagCos)
				if !ok {
					return nil
				}
				return []rule.Application{{Result: expr.Neg(expr.Sin(v)), Justification: "d/dx cos(x) = -sin(x)"}}
			},
			Reversible: false,
			Cost:       1,
		},
		{
			ID:          25,
			Name:        "derivative_of_exp",
			Category:    rule.Derivative,
			Description: "d/dx exp(x) = exp(x)",
			Domains:     []rule.Domain{rule.CalculusDiff},
			RequiredFeatures: []rule.Feature{rule.FeatureDerivative, rule.FeatureExponential},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				_, ok := derivativeOfUnaryVar(e, expr.TagExp)
				return ok
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				v, ok := derivativeOfUnaryVar(e, expr.TagExp)
				if !ok {
					return nil
				}
				return []rule.Application{{Result: expr.Exp(v), Justification: "d/dx exp(x) = exp(x)"}}
			},
			Reversible: false,
			Cost:       1,
		},
		{
			ID:          26,
			Name:        "derivative_of_ln",
			Category:    rule.Derivative,
			Description: "d/dx ln(x) = 1/x",
			Domains:     []rule.Domain{rule.CalculusDiff},
			RequiredFeatures: []rule.Feature{rule.FeatureDerivative, rule.FeatureLogarithm},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				_, ok := derivativeOfUnaryVar(e, expr.TagLn)
				return ok
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				v, ok := derivativeOfUnaryVar(e, expr.TagLn)
				if !ok {
					return nil
				}
				return []rule.Application{{Result: expr.Div(expr.Int(1), v), Justification: "d/dx ln(x) = 1/x"}}
			},
			Reversible: false,
			Cost:       1,
		},
		{
			ID:          27,
			Name:        "derivative_of_negation",
			Category:    rule.Derivative,
			Description: "d/dx(-f) = -(d/dx f)",
			Domains:     []rule.Domain{rule.CalculusDiff},
			RequiredFeatures: []rule.Feature{rule.FeatureDerivative},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				d, ok := e.(*expr.Derivative)
				if !ok {
					return false
				}
				_, ok = d.Body.(*expr.Unary)
				if !ok {
					return false
				}
				return d.Body.(*expr.Unary).Tag() == expr.TagNeg
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				d := e.(*expr.Derivative)
				u := d.Body.(*expr.Unary)
				return []rule.Application{{
					Result:        expr.Neg(expr.NewDerivative(u.X, d.Var)),
					Justification: "derivative distributes over negation",
				}}
			},
			Reversible: false,
			Cost:       1,
		},
		{
			ID:          28,
			Name:        "derivative_of_sum",
			Category:    rule.Derivative,
			Description: "d/dx(f+g) = d/dx f + d/dx g",
			Domains:     []rule.Domain{rule.CalculusDiff},
			RequiredFeatures: []rule.Feature{rule.FeatureDerivative},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				d, ok := e.(*expr.Derivative)
				if !ok {
					return false
				}
				b, ok := d.Body.(*expr.Binary)
				return ok && (b.Tag() == expr.TagAdd || b.Tag() == expr.TagSub)
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				d := e.(*expr.Derivative)
				b := d.Body.(*expr.Binary)
				df := expr.NewDerivative(b.X, d.Var)
				dg := expr.NewDerivative(b.Y, d.Var)
				var result expr.Expr
				if b.Tag() == expr.TagAdd {
					result = expr.Add(df, dg)
				} else {
					result = expr.Sub(df, dg)
				}
				return []rule.Application{{Result: result, Justification: "derivative distributes over addition/subtraction"}}
			},
			Reversible: false,
			Cost:       1,
		},
	}
}

// powerRuleMatch reports the variable and exponent n where e is
// d/dx(x^n) for a constant integer n.
func powerRuleMatch(e expr.Expr) (expr.SymbolID, int64, bool) {
	d, ok := e.(*expr.Derivative)
	if !ok {
		return 0, 0, false
	}
	b, ok := d.Body.(*expr.Binary)
	if !ok || b.Tag() != expr.TagPow {
		return 0, 0, false
	}
	v, ok := b.X.(*expr.Var)
	if !ok || v.Sym != d.Var {
		return 0, 0, false
	}
	c, ok := b.Y.(*expr.Const)
	if !ok || !c.Value.IsInteger() {
		return 0, 0, false
	}
	return v.Sym, c.Value.Num, true
}

// derivativeOfUnaryVar reports x where e is d/dx(unaryTag(x)) and x is
// exactly the differentiation variable (the chain rule is out of scope:
// only direct-variable arguments are matched).
func derivativeOfUnaryVar(e expr.Expr, unaryTag expr.Tag) (expr.Expr, bool) {
	d, ok := e.(*expr.Derivative)
	if !ok {
		return nil, false
	}
	u, ok := d.Body.(*expr.Unary)
	if !ok || u.Tag() != unaryTag {
		return nil, false
	}
	v, ok := u.X.(*expr.Var)
	if !ok || v.Sym != d.Var {
		return nil, false
	}
	return u.X, true
}
