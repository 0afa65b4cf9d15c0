// Package eval implements numerical evaluation of expressions against a
// variable environment, and sampling-based approximate equality (spec.md
// §4.3).
package eval

import (
	"errors"
	"math"

	"github.com/gitrdm/lemma/internal/expr"
)

// ErrUnevaluable is returned when a term cannot be reduced to a float64:
// an unbound symbol, a binder whose bounds are not a bounded integer range,
// a derivative/integral/quantifier node (no symbolic semantics here), or a
// domain violation (sqrt of a negative, log of a non-positive, division or
// modulus by zero, factorial/binomial argument over the overflow bound).
var ErrUnevaluable = errors.New("eval: unevaluable")

// Env maps symbol ids to their bound real value.
type Env map[expr.SymbolID]float64

// maxSummationRange and maxProductRange bound the loop trip count of
// Summation/BigProduct nodes (spec.md §4.3) so a runaway bound can't hang
// evaluation.
const (
	maxSummationRange = 1000
	maxProductRange   = 100
	// maxFactorialArg bounds Factorial/Binomial arguments; above it the
	// result would overflow a float64's exact-integer range anyway.
	maxFactorialArg = 20
	zeroTolerance   = 1e-15
)

// Evaluate reduces e to a float64 under env, or returns ErrUnevaluable.
func Evaluate(e expr.Expr, env Env) (float64, error) {
	switch t := e.(type) {
	case *expr.Const:
		return t.Value.Float64(), nil
	case *expr.Var:
		v, ok := env[t.Sym]
		if !ok {
			return 0, ErrUnevaluable
		}
		return v, nil
	case *expr.Unary:
		return evalUnary(t, env)
	case *expr.Binary:
		return evalBinary(t, env)
	case *expr.Equation:
		// The difference lhs-rhs: useful for checking whether a candidate
		// solution satisfies the equation (spec.md §4.3 doesn't name this
		// case explicitly; grounded on original_source's eval.rs, which
		// treats Equation as Sub(lhs, rhs) for the evaluator's purposes).
		lhs, err := Evaluate(t.LHS, env)
		if err != nil {
			return 0, err
		}
		rhs, err := Evaluate(t.RHS, env)
		if err != nil {
			return 0, err
		}
		return lhs - rhs, nil
	case *expr.Sum:
		return evalSum(t, env)
	case *expr.Product:
		return evalProduct(t, env)
	case *expr.Summation:
		return evalSummation(t, env)
	case *expr.BigProduct:
		return evalBigProduct(t, env)
	default:
		switch e.Tag() {
		case expr.TagPi:
			return math.Pi, nil
		case expr.TagE:
			return math.E, nil
		default:
			// Derivative, Integral, ForAll, Exists: no symbolic semantics.
			return 0, ErrUnevaluable
		}
	}
}

func evalUnary(u *expr.Unary, env Env) (float64, error) {
	x, err := Evaluate(u.X, env)
	if err != nil {
		return 0, err
	}
	switch u.Tag() {
	case expr.TagNeg:
		return -x, nil
	case expr.TagSqrt:
		if x < 0 {
			return 0, ErrUnevaluable
		}
		return math.Sqrt(x), nil
	case expr.TagSin:
		return math.Sin(x), nil
	case expr.TagCos:
		return math.Cos(x), nil
	case expr.TagTan:
		return math.Tan(x), nil
	case expr.TagArcsin:
		if x < -1 || x > 1 {
			return 0, ErrUnevaluable
		}
		return math.Asin(x), nil
	case expr.TagArccos:
		if x < -1 || x > 1 {
			return 0, ErrUnevaluable
		}
		return math.Acos(x), nil
	case expr.TagArctan:
		return math.Atan(x), nil
	case expr.TagLn:
		if x <= 0 {
			return 0, ErrUnevaluable
		}
		return math.Log(x), nil
	case expr.TagExp:
		return math.Exp(x), nil
	case expr.TagAbs:
		return math.Abs(x), nil
	case expr.TagFloor:
		return math.Floor(x), nil
	case expr.TagCeiling:
		return math.Ceil(x), nil
	case expr.TagFactorial:
		n := int64(x)
		if n < 0 || n > maxFactorialArg {
			return 0, ErrUnevaluable
		}
		return float64(factorial(n)), nil
	case expr.TagNot:
		if x == 0 {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, ErrUnevaluable
	}
}

func evalBinary(b *expr.Binary, env Env) (float64, error) {
	x, err := Evaluate(b.X, env)
	if err != nil {
		return 0, err
	}
	y, err := Evaluate(b.Y, env)
	if err != nil {
		return 0, err
	}
	switch b.Tag() {
	case expr.TagAdd:
		return x + y, nil
	case expr.TagSub:
		return x - y, nil
	case expr.TagMul:
		return x * y, nil
	case expr.TagDiv:
		if math.Abs(y) < zeroTolerance {
			return 0, ErrUnevaluable
		}
		return x / y, nil
	case expr.TagPow:
		return math.Pow(x, y), nil
	case expr.TagGt:
		return boolFloat(x > y), nil
	case expr.TagGte:
		return boolFloat(x >= y), nil
	case expr.TagLt:
		return boolFloat(x < y), nil
	case expr.TagLte:
		return boolFloat(x <= y), nil
	case expr.TagAnd:
		return boolFloat(x != 0 && y != 0), nil
	case expr.TagOr:
		return boolFloat(x != 0 || y != 0), nil
	case expr.TagImplies:
		return boolFloat(x == 0 || y != 0), nil
	case expr.TagGCD:
		if !isIntegral(x) || !isIntegral(y) {
			return 0, ErrUnevaluable
		}
		return float64(gcd(absInt(int64(x)), absInt(int64(y)))), nil
	case expr.TagLCM:
		if !isIntegral(x) || !isIntegral(y) {
			return 0, ErrUnevaluable
		}
		ix, iy := int64(x), int64(y)
		if ix == 0 || iy == 0 {
			return 0, nil
		}
		return float64(absInt(ix) * absInt(iy) / gcd(absInt(ix), absInt(iy))), nil
	case expr.TagMod:
		if math.Abs(y) < zeroTolerance {
			return 0, ErrUnevaluable
		}
		return math.Mod(x, y), nil
	case expr.TagBinomial:
		n, k := int64(x), int64(y)
		if !isIntegral(x) || !isIntegral(y) || k < 0 || k > n || n > maxFactorialArg {
			return 0, ErrUnevaluable
		}
		return float64(factorial(n) / (factorial(k) * factorial(n-k))), nil
	default:
		return 0, ErrUnevaluable
	}
}

func evalSum(s *expr.Sum, env Env) (float64, error) {
	total := 0.0
	for _, term := range s.Terms {
		v, err := Evaluate(term.Body, env)
		if err != nil {
			return 0, err
		}
		total += term.Coeff.Float64() * v
	}
	return total, nil
}

func evalProduct(p *expr.Product, env Env) (float64, error) {
	total := 1.0
	for _, f := range p.Factors {
		base, err := Evaluate(f.Base, env)
		if err != nil {
			return 0, err
		}
		power, err := Evaluate(f.Power, env)
		if err != nil {
			return 0, err
		}
		total *= math.Pow(base, power)
	}
	return total, nil
}

func evalSummation(s *expr.Summation, env Env) (float64, error) {
	from, to, err := boundedRange(s.From, s.To, env, maxSummationRange)
	if err != nil {
		return 0, err
	}
	local := cloneEnv(env)
	total := 0.0
	for i := from; i <= to; i++ {
		local[s.Var] = float64(i)
		v, err := Evaluate(s.Body, local)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}

func evalBigProduct(p *expr.BigProduct, env Env) (float64, error) {
	from, to, err := boundedRange(p.From, p.To, env, maxProductRange)
	if err != nil {
		return 0, err
	}
	local := cloneEnv(env)
	total := 1.0
	for i := from; i <= to; i++ {
		local[p.Var] = float64(i)
		v, err := Evaluate(p.Body, local)
		if err != nil {
			return 0, err
		}
		total *= v
	}
	return total, nil
}

func boundedRange(fromExpr, toExpr expr.Expr, env Env, maxSpan int64) (int64, int64, error) {
	fv, err := Evaluate(fromExpr, env)
	if err != nil {
		return 0, 0, err
	}
	tv, err := Evaluate(toExpr, env)
	if err != nil {
		return 0, 0, err
	}
	if !isIntegral(fv) || !isIntegral(tv) {
		return 0, 0, ErrUnevaluable
	}
	from, to := int64(fv), int64(tv)
	span := to - from
	if span < 0 {
		span = -span
	}
	if span > maxSpan {
		return 0, 0, ErrUnevaluable
	}
	return from, to, nil
}

func cloneEnv(env Env) Env {
	out := make(Env, len(env)+1)
	for k, v := range env {
		out[k] = v
	}
	return out
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func isIntegral(x float64) bool {
	return x == math.Trunc(x)
}

func absInt(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func factorial(n int64) int64 {
	result := int64(1)
	for i := int64(2); i <= n; i++ {
		result *= i
	}
	return result
}
