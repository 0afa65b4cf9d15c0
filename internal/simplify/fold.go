package simplify

import (
	"math/big"

	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/rat"
)

// factorialBound caps Factorial/Binomial folding (spec.md §4.3: "factorial/
// binomial argument >20 is an overflow bound").
const factorialBound = 20

// foldConstants evaluates every sub-tree whose operands are all Const for
// {Add, Sub, Mul, Div, Pow, Neg, GCD, LCM, Mod, Factorial, Binomial, Floor,
// Ceiling, Sqrt, Abs} (spec.md §4.10 step 7's final pass). canon.Canon
// already folds Add/Sub/Mul/Div/Pow/Neg as part of producing canonical
// form; this pass covers the remaining nine operators canon does not
// know about, walking bottom-up so a folded child is visible to its
// parent. An operator whose operands don't satisfy §4.3's safety bounds
// (argument >20, divide/mod by zero, sqrt of a negative, an
// irrational root) is left unfolded rather than erroring.
func foldConstants(e expr.Expr) expr.Expr {
	children := e.Children()
	if len(children) > 0 {
		newChildren := make([]expr.Expr, len(children))
		changed := false
		for i, c := range children {
			folded := foldConstants(c)
			newChildren[i] = folded
			if !folded.Equal(c) {
				changed = true
			}
		}
		if changed {
			e = expr.WithChildren(e, newChildren)
		}
	}
	return foldNode(e)
}

func foldNode(e expr.Expr) expr.Expr {
	switch t := e.(type) {
	case *expr.Binary:
		return foldBinary(t)
	case *expr.Unary:
		return foldUnary(t)
	default:
		return e
	}
}

func asInt(e expr.Expr) (int64, bool) {
	c, ok := e.(*expr.Const)
	if !ok || !c.Value.IsInteger() {
		return 0, false
	}
	return c.Value.Num, true
}

func foldBinary(b *expr.Binary) expr.Expr {
	switch b.Tag() {
	case expr.TagGCD:
		x, ok1 := asInt(b.X)
		y, ok2 := asInt(b.Y)
		if !ok1 || !ok2 {
			return b
		}
		return expr.Int(intGCD(absInt64(x), absInt64(y)))
	case expr.TagLCM:
		x, ok1 := asInt(b.X)
		y, ok2 := asInt(b.Y)
		if !ok1 || !ok2 {
			return b
		}
		if x == 0 || y == 0 {
			return expr.Int(0)
		}
		g := intGCD(absInt64(x), absInt64(y))
		return expr.Int(absInt64(x) / g * absInt64(y))
	case expr.TagMod:
		x, ok1 := asInt(b.X)
		y, ok2 := asInt(b.Y)
		if !ok1 || !ok2 || y == 0 {
			return b
		}
		return expr.Int(x % y)
	case expr.TagBinomial:
		n, ok1 := asInt(b.X)
		k, ok2 := asInt(b.Y)
		if !ok1 || !ok2 || n < 0 || k < 0 || k > n || n > factorialBound {
			return b
		}
		return expr.Int(new(big.Int).Binomial(n, k).Int64())
	default:
		return b
	}
}

func foldUnary(u *expr.Unary) expr.Expr {
	c, ok := u.X.(*expr.Const)
	if !ok {
		return u
	}
	switch u.Tag() {
	case expr.TagFactorial:
		if !c.Value.IsInteger() || c.Value.Num < 0 || c.Value.Num > factorialBound {
			return u
		}
		return expr.Int(factorial(c.Value.Num))
	case expr.TagFloor:
		return expr.Int(floorDiv(c.Value.Num, c.Value.Den))
	case expr.TagCeiling:
		return expr.Int(ceilDiv(c.Value.Num, c.Value.Den))
	case expr.TagAbs:
		return expr.FromRational(rat.Rational{Num: absInt64(c.Value.Num), Den: c.Value.Den})
	case expr.TagSqrt:
		if v, ok := exactSqrt(c.Value); ok {
			return expr.FromRational(v)
		}
		return u
	default:
		return u
	}
}

func intGCD(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
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

// floorDiv and ceilDiv assume den > 0, the invariant rat.Rational always
// maintains.
func floorDiv(num, den int64) int64 {
	q := num / den
	if num%den != 0 && num < 0 {
		q--
	}
	return q
}

func ceilDiv(num, den int64) int64 {
	q := num / den
	if num%den != 0 && num >= 0 {
		q++
	}
	return q
}

func absInt64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// exactSqrt returns sqrt(r) when both the numerator and denominator are
// perfect squares, ok=false otherwise (an irrational root has no exact
// Rational representation).
func exactSqrt(r rat.Rational) (rat.Rational, bool) {
	if r.Num < 0 {
		return rat.Rational{}, false
	}
	sn, ok := isqrt(r.Num)
	if !ok {
		return rat.Rational{}, false
	}
	sd, ok := isqrt(r.Den)
	if !ok {
		return rat.Rational{}, false
	}
	return rat.New(sn, sd), true
}

func isqrt(n int64) (int64, bool) {
	if n < 0 {
		return 0, false
	}
	r := int64(big.NewInt(0).Sqrt(big.NewInt(n)).Int64())
	if r*r == n {
		return r, true
	}
	return 0, false
}
