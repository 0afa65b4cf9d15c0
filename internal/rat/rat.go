// Package rat implements exact rational arithmetic over signed 64-bit
// numerators and positive signed 64-bit denominators, always stored in
// lowest terms (spec.md §3).
package rat

import (
	"errors"
	"math"
	"math/big"
)

// ErrOverflow is returned when a rational operation cannot be represented
// within the 64-bit numerator/denominator range. Per spec.md §7, overflow is
// a recoverable "Overflow" condition, not a panic: callers that hit it leave
// the offending sub-term symbolic rather than evaluating it.
var ErrOverflow = errors.New("rat: overflow")

// Rational is an exact fraction, always normalized: Den > 0 and
// gcd(|Num|, Den) == 1 (spec.md §3 invariant 7).
type Rational struct {
	Num int64
	Den int64
}

// Int returns the rational representing the integer n.
func Int(n int64) Rational { return Rational{Num: n, Den: 1} }

// New returns num/den normalized to lowest terms with a positive
// denominator. Panics if den is zero — constructing a rational with a zero
// denominator is a programmer error, not a runtime domain condition (that
// distinction belongs to Div, which returns ErrOverflow-shaped failure is
// not applicable here; division by the constant zero is instead rejected by
// callers before New is reached).
func New(num, den int64) Rational {
	if den == 0 {
		panic("rat: zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	if num == 0 {
		return Rational{Num: 0, Den: 1}
	}
	g := gcd(abs64(num), den)
	return Rational{Num: num / g, Den: den / g}
}

func abs64(n int64) int64 {
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

// mulOverflows reports whether a*b overflows int64.
func mulOverflows(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	p := a * b
	return p/b != a
}

// addOverflows reports whether a+b overflows int64.
func addOverflows(a, b int64) bool {
	s := a + b
	return ((a ^ s) & (b ^ s)) < 0
}

// normalizeChecked is New but reports overflow instead of panicking /
// silently wrapping, for use after a potentially-overflowing computation.
func normalizeChecked(num, den int64) (Rational, error) {
	if den == 0 {
		return Rational{}, ErrOverflow
	}
	if den < 0 {
		if num == math.MinInt64 || den == math.MinInt64 {
			return Rational{}, ErrOverflow
		}
		num, den = -num, -den
	}
	if num == 0 {
		return Rational{Num: 0, Den: 1}, nil
	}
	g := gcd(abs64(num), den)
	return Rational{Num: num / g, Den: den / g}, nil
}

// Add returns r + other, or ErrOverflow if the result cannot be represented.
func (r Rational) Add(other Rational) (Rational, error) {
	if mulOverflows(r.Num, other.Den) || mulOverflows(other.Num, r.Den) || mulOverflows(r.Den, other.Den) {
		return widenAdd(r, other)
	}
	a := r.Num * other.Den
	b := other.Num * r.Den
	if addOverflows(a, b) {
		return widenAdd(r, other)
	}
	return normalizeChecked(a+b, r.Den*other.Den)
}

// widenAdd falls back to arbitrary-precision arithmetic to compute r+other
// exactly, then attempts to narrow the normalized result back to int64.
// Per spec.md §3 ("Overflow must be detected or widened"), this lets
// transient overflow in an unreduced intermediate still succeed when the
// final reduced fraction fits.
func widenAdd(r, other Rational) (Rational, error) {
	bn := new(big.Int).Add(
		new(big.Int).Mul(big.NewInt(r.Num), big.NewInt(other.Den)),
		new(big.Int).Mul(big.NewInt(other.Num), big.NewInt(r.Den)),
	)
	bd := new(big.Int).Mul(big.NewInt(r.Den), big.NewInt(other.Den))
	return narrowBig(bn, bd)
}

func narrowBig(num, den *big.Int) (Rational, error) {
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), new(big.Int).Abs(den))
	if g.Sign() != 0 {
		num = new(big.Int).Div(num, g)
		den = new(big.Int).Div(den, g)
	}
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	if !num.IsInt64() || !den.IsInt64() {
		return Rational{}, ErrOverflow
	}
	return Rational{Num: num.Int64(), Den: den.Int64()}, nil
}

// Sub returns r - other.
func (r Rational) Sub(other Rational) (Rational, error) {
	return r.Add(other.Neg())
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{Num: -r.Num, Den: r.Den}
}

// Mul returns r * other, or ErrOverflow if the result cannot be represented.
func (r Rational) Mul(other Rational) (Rational, error) {
	if mulOverflows(r.Num, other.Num) || mulOverflows(r.Den, other.Den) {
		bn := new(big.Int).Mul(big.NewInt(r.Num), big.NewInt(other.Num))
		bd := new(big.Int).Mul(big.NewInt(r.Den), big.NewInt(other.Den))
		return narrowBig(bn, bd)
	}
	return normalizeChecked(r.Num*other.Num, r.Den*other.Den)
}

// Div returns r / other. Returns ErrOverflow if other is zero (division by
// zero is modeled as an overflow-class failure here; callers in eval/canon
// distinguish "divide by zero" as a DomainError per spec.md §7, but rat
// itself has only one failure channel).
func (r Rational) Div(other Rational) (Rational, error) {
	if other.Num == 0 {
		return Rational{}, ErrOverflow
	}
	return r.Mul(Rational{Num: other.Den, Den: other.Num})
}

// Pow raises r to a non-negative integer power n using exponentiation by
// squaring, widening through big.Int when intermediate products overflow.
func (r Rational) Pow(n int) (Rational, error) {
	if n < 0 {
		return Rational{}, ErrOverflow
	}
	result := Int(1)
	base := r
	for n > 0 {
		if n&1 == 1 {
			var err error
			result, err = result.Mul(base)
			if err != nil {
				return Rational{}, err
			}
		}
		n >>= 1
		if n > 0 {
			var err error
			base, err = base.Mul(base)
			if err != nil {
				return Rational{}, err
			}
		}
	}
	return result, nil
}

// IsZero reports whether r == 0.
func (r Rational) IsZero() bool { return r.Num == 0 }

// IsOne reports whether r == 1.
func (r Rational) IsOne() bool { return r.Num == 1 && r.Den == 1 }

// Sign returns -1, 0, or 1 according to the sign of r.
func (r Rational) Sign() int {
	switch {
	case r.Num < 0:
		return -1
	case r.Num > 0:
		return 1
	default:
		return 0
	}
}

// IsInteger reports whether r has denominator 1.
func (r Rational) IsInteger() bool { return r.Den == 1 }

// Float64 converts r to the nearest float64.
func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

// Cmp compares r and other, returning -1, 0, or 1.
func (r Rational) Cmp(other Rational) int {
	// r.Num/r.Den vs other.Num/other.Den, both denominators positive, so
	// cross-multiplication preserves order; widen to avoid overflow.
	lhs := new(big.Int).Mul(big.NewInt(r.Num), big.NewInt(other.Den))
	rhs := new(big.Int).Mul(big.NewInt(other.Num), big.NewInt(r.Den))
	return lhs.Cmp(rhs)
}

// Equal reports structural (and thus, given normalization, mathematical)
// equality.
func (r Rational) Equal(other Rational) bool {
	return r.Num == other.Num && r.Den == other.Den
}

// String renders r as "n" for integers or "n/d" otherwise.
func (r Rational) String() string {
	if r.Den == 1 {
		return itoa(r.Num)
	}
	return itoa(r.Num) + "/" + itoa(r.Den)
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
