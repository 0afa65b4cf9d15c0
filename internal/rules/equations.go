package rules

import (
	"math"

	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/poly"
	"github.com/gitrdm/lemma/internal/rat"
	"github.com/gitrdm/lemma/internal/rule"
)

// EquationRules returns the equation-solving rules (spec.md §4.5, category
// EquationSolving). linear_solve is grounded on spec.md §8's E6 worked
// example: solve_for(2*x+3=7, x) -> Equation{lhs=Var(x), rhs=Const(2)}; it
// requires a rule.Context carrying the target variable (rule.WithTarget),
// normalizes lhs-rhs into polynomial form (internal/poly), and reads off
// the coefficient and constant of the target variable's linear term rather
// than attempting a general solver.
func EquationRules() []*rule.Rule {
	return []*rule.Rule{
		{
			ID:          40,
			Name:        "linear_solve",
			Category:    rule.EquationSolving,
			Description: "ax + b = c  =>  x = (c-b)/a",
			Domains:     []rule.Domain{rule.Equations, rule.Algebra},
			RequiredFeatures: []rule.Feature{rule.FeatureEquation, rule.FeaturePolynomial},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				_, ok := linearSolveValue(e, ctx)
				return ok
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				solution, ok := linearSolveValue(e, ctx)
				if !ok {
					return nil
				}
				result := expr.NewEquation(expr.NewVar(ctx.TargetVar), expr.FromRational(solution))
				return []rule.Application{{Result: result, Justification: "isolate the target variable"}}
			},
			Reversible: false,
			Cost:       2,
		},
		{
			ID:          41,
			Name:        "quadratic_solve",
			Category:    rule.EquationSolving,
			Description: "ax^2 + bx + c = 0  =>  x = (-b ± sqrt(b^2-4ac)) / 2a",
			Domains:     []rule.Domain{rule.Equations, rule.Algebra},
			RequiredFeatures: []rule.Feature{rule.FeatureEquation, rule.FeaturePolynomial},
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				_, ok := quadraticSolveRoots(e, ctx)
				return ok
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				roots, ok := quadraticSolveRoots(e, ctx)
				if !ok {
					return nil
				}
				apps := make([]rule.Application, len(roots))
				for i, root := range roots {
					result := expr.NewEquation(expr.NewVar(ctx.TargetVar), root)
					apps[i] = rule.Application{Result: result, Justification: "quadratic formula"}
				}
				return apps
			},
			Reversible: false,
			Cost:       3,
		},
	}
}

// linearSolveValue reports the unique solution x = (c-b)/a for an equation
// a*x+b = c where the target variable in ctx appears only to the first
// power, or ok=false if ctx carries no target, e isn't an Equation, the
// difference isn't in the polynomial fragment, the variable doesn't appear
// linearly, or its coefficient is zero (no unique solution).
func linearSolveValue(e expr.Expr, ctx rule.Context) (rat.Rational, bool) {
	if !ctx.HasTarget {
		return rat.Rational{}, false
	}
	eq, ok := e.(*expr.Equation)
	if !ok {
		return rat.Rational{}, false
	}
	diff, ok := poly.FromExpr(expr.Sub(eq.LHS, eq.RHS))
	if !ok {
		return rat.Rational{}, false
	}
	coeff, constant, ok := diff.LinearCoefficients(ctx.TargetVar)
	if !ok || coeff.IsZero() {
		return rat.Rational{}, false
	}
	solution, err := constant.Neg().Div(coeff)
	if err != nil {
		return rat.Rational{}, false
	}
	return solution, true
}

// quadraticSolveRoots reports every real root of a*x^2+b*x+c = 0 where the
// target variable in ctx appears to at most the second power, or ok=false
// if ctx carries no target, e isn't an Equation, the difference isn't in
// the polynomial fragment, the variable isn't genuinely quadratic, or the
// discriminant is negative (no real root). A positive non-square
// discriminant yields two roots built around a literal sqrt expression
// (Pow(d, 1/2)) rather than a rational approximation; a zero discriminant
// yields the single repeated root once.
func quadraticSolveRoots(e expr.Expr, ctx rule.Context) ([]expr.Expr, bool) {
	if !ctx.HasTarget {
		return nil, false
	}
	eq, ok := e.(*expr.Equation)
	if !ok {
		return nil, false
	}
	diff, ok := poly.FromExpr(expr.Sub(eq.LHS, eq.RHS))
	if !ok {
		return nil, false
	}
	a, b, c, ok := diff.QuadraticCoefficients(ctx.TargetVar)
	if !ok {
		return nil, false
	}

	bSq, err := b.Mul(b)
	if err != nil {
		return nil, false
	}
	ac, err := a.Mul(c)
	if err != nil {
		return nil, false
	}
	fourAC, err := ac.Mul(rat.Int(4))
	if err != nil {
		return nil, false
	}
	discriminant, err := bSq.Sub(fourAC)
	if err != nil {
		return nil, false
	}
	if discriminant.Sign() < 0 {
		return nil, false
	}

	twoA, err := a.Mul(rat.Int(2))
	if err != nil || twoA.IsZero() {
		return nil, false
	}
	negB := b.Neg()

	sqrtVal, exact := rationalSqrt(discriminant)
	if discriminant.IsZero() {
		root, err := negB.Div(twoA)
		if err != nil {
			return nil, false
		}
		return []expr.Expr{expr.FromRational(root)}, true
	}
	if exact {
		plus, err1 := negB.Add(sqrtVal)
		minus, err2 := negB.Sub(sqrtVal)
		if err1 != nil || err2 != nil {
			return nil, false
		}
		rootPlus, err1 := plus.Div(twoA)
		rootMinus, err2 := minus.Div(twoA)
		if err1 != nil || err2 != nil {
			return nil, false
		}
		return []expr.Expr{expr.FromRational(rootPlus), expr.FromRational(rootMinus)}, true
	}

	sqrtNode := expr.Pow(expr.FromRational(discriminant), expr.Frac(1, 2))
	rootPlus := expr.Div(expr.Add(expr.FromRational(negB), sqrtNode), expr.FromRational(twoA))
	rootMinus := expr.Div(expr.Sub(expr.FromRational(negB), sqrtNode), expr.FromRational(twoA))
	return []expr.Expr{rootPlus, rootMinus}, true
}

// rationalSqrt reports r's exact rational square root when both its
// numerator and denominator are perfect squares; exact=false otherwise
// (the caller then falls back to a symbolic Pow(r, 1/2) node).
func rationalSqrt(r rat.Rational) (rat.Rational, bool) {
	if r.Sign() < 0 {
		return rat.Rational{}, false
	}
	numRoot := isqrt(r.Num)
	denRoot := isqrt(r.Den)
	if numRoot*numRoot != r.Num || denRoot*denRoot != r.Den {
		return rat.Rational{}, false
	}
	return rat.New(numRoot, denRoot), true
}

// isqrt returns the exact integer square root of a non-negative perfect
// square n, trying the truncated float64 estimate and its two neighbours to
// absorb precision error. For any other n it returns the truncated
// estimate, which the caller rejects by squaring back.
func isqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	root := int64(math.Sqrt(float64(n)))
	for _, candidate := range []int64{root - 1, root, root + 1} {
		if candidate >= 0 && candidate*candidate == n {
			return candidate
		}
	}
	return root
}
