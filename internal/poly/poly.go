// Package poly implements the polynomial normal form used to decide
// algebraic identities exactly rather than by numerical sampling (spec.md
// §4.4).
package poly

import (
	"sort"
	"strconv"

	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/rat"
)

// VarPower is one variable's exponent within a Monomial.
type VarPower struct {
	Sym expr.SymbolID
	Exp uint32
}

// Monomial is x1^e1 * x2^e2 * ... with every exponent positive, sorted by
// symbol id so two monomials with the same powers compare equal and hash to
// the same Key (spec.md §4.4: "Monomial is an ordered map from symbol
// identifier to positive integer exponent").
type Monomial struct {
	Powers []VarPower
}

// ConstantMonomial is the empty monomial (degree 0, the "no variables" case).
func ConstantMonomial() Monomial { return Monomial{} }

// VarMonomial is the monomial x^1.
func VarMonomial(sym expr.SymbolID) Monomial {
	return Monomial{Powers: []VarPower{{Sym: sym, Exp: 1}}}
}

// IsConstant reports whether m carries no variables.
func (m Monomial) IsConstant() bool { return len(m.Powers) == 0 }

// Key returns a deterministic string suitable for use as a map key.
func (m Monomial) Key() string {
	out := make([]byte, 0, len(m.Powers)*8)
	for _, p := range m.Powers {
		out = strconv.AppendInt(out, int64(p.Sym), 10)
		out = append(out, ':')
		out = strconv.AppendUint(out, uint64(p.Exp), 10)
		out = append(out, ',')
	}
	return string(out)
}

// Mul returns the monomial product m*other, combining exponents of shared
// symbols (spec.md §4.4: "multiplication (distributive over monomial
// products)").
func (m Monomial) Mul(other Monomial) Monomial {
	merged := make(map[expr.SymbolID]uint32, len(m.Powers)+len(other.Powers))
	for _, p := range m.Powers {
		merged[p.Sym] += p.Exp
	}
	for _, p := range other.Powers {
		merged[p.Sym] += p.Exp
	}
	out := make([]VarPower, 0, len(merged))
	for sym, exp := range merged {
		if exp > 0 {
			out = append(out, VarPower{Sym: sym, Exp: exp})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sym < out[j].Sym })
	return Monomial{Powers: out}
}

// term is one (monomial, coefficient) pair of a Polynomial's numerator.
type term struct {
	Mono  Monomial
	Coeff rat.Rational
}

// Polynomial is a sum of numerator terms over a single positive common
// denominator (spec.md §4.4).
type Polynomial struct {
	terms map[string]term
	denom rat.Rational
}

// Zero is the additive identity.
func Zero() *Polynomial {
	return &Polynomial{terms: map[string]term{}, denom: rat.Int(1)}
}

// Constant builds the constant polynomial c.
func Constant(c rat.Rational) *Polynomial {
	if c.IsZero() {
		return Zero()
	}
	m := ConstantMonomial()
	return &Polynomial{terms: map[string]term{m.Key(): {Mono: m, Coeff: c}}, denom: rat.Int(1)}
}

// Var builds the polynomial representing the single variable sym.
func Var(sym expr.SymbolID) *Polynomial {
	m := VarMonomial(sym)
	return &Polynomial{terms: map[string]term{m.Key(): {Mono: m, Coeff: rat.Int(1)}}, denom: rat.Int(1)}
}

// maxPowExponent bounds the constant integer exponents FromExpr will
// normalize through Pow (spec.md §4.4: "integer exponentiation (0…10)").
const maxPowExponent = 10

// FromExpr normalizes e to polynomial form, or reports ok=false if e is
// outside the fragment this form can represent (spec.md §4.4: handles
// Const, Var, Neg, Add, Sub, Mul, Div-by-constant, and Pow with a constant
// integer exponent in 0..=10; anything else fails).
func FromExpr(e expr.Expr) (p *Polynomial, ok bool) {
	switch t := e.(type) {
	case *expr.Const:
		return Constant(t.Value), true
	case *expr.Var:
		return Var(t.Sym), true
	case *expr.Unary:
		if t.Tag() != expr.TagNeg {
			return nil, false
		}
		inner, ok := FromExpr(t.X)
		if !ok {
			return nil, false
		}
		return inner.Neg(), true
	case *expr.Binary:
		return fromBinary(t)
	default:
		return nil, false
	}
}

func fromBinary(b *expr.Binary) (*Polynomial, bool) {
	switch b.Tag() {
	case expr.TagAdd:
		pa, ok := FromExpr(b.X)
		if !ok {
			return nil, false
		}
		pb, ok := FromExpr(b.Y)
		if !ok {
			return nil, false
		}
		return pa.Add(pb), true
	case expr.TagSub:
		pa, ok := FromExpr(b.X)
		if !ok {
			return nil, false
		}
		pb, ok := FromExpr(b.Y)
		if !ok {
			return nil, false
		}
		return pa.Add(pb.Neg()), true
	case expr.TagMul:
		pa, ok := FromExpr(b.X)
		if !ok {
			return nil, false
		}
		pb, ok := FromExpr(b.Y)
		if !ok {
			return nil, false
		}
		return pa.Mul(pb), true
	case expr.TagDiv:
		pa, ok := FromExpr(b.X)
		if !ok {
			return nil, false
		}
		pb, ok := FromExpr(b.Y)
		if !ok {
			return nil, false
		}
		divisor, ok := pb.ConstantValue()
		if !ok || divisor.IsZero() {
			return nil, false
		}
		return pa.DivConstant(divisor), true
	case expr.TagPow:
		c, ok := b.Y.(*expr.Const)
		if !ok || !c.Value.IsInteger() {
			return nil, false
		}
		n := c.Value.Num
		if n < 0 || n > maxPowExponent {
			return nil, false
		}
		base, ok := FromExpr(b.X)
		if !ok {
			return nil, false
		}
		return base.Pow(int(n)), true
	default:
		return nil, false
	}
}

// Neg returns -p.
func (p *Polynomial) Neg() *Polynomial {
	out := make(map[string]term, len(p.terms))
	for k, t := range p.terms {
		out[k] = term{Mono: t.Mono, Coeff: t.Coeff.Neg()}
	}
	return &Polynomial{terms: out, denom: p.denom}
}

// Add returns p+other (spec.md §4.4: "common-denominator scaling").
func (p *Polynomial) Add(other *Polynomial) *Polynomial {
	newDenom, err := p.denom.Mul(other.denom)
	if err != nil {
		newDenom = p.denom
	}
	out := make(map[string]term, len(p.terms)+len(other.terms))
	addScaled := func(src map[string]term, scale rat.Rational) {
		for k, t := range src {
			scaledCoeff, err := t.Coeff.Mul(scale)
			if err != nil {
				scaledCoeff = t.Coeff
			}
			existing, has := out[k]
			if !has {
				out[k] = term{Mono: t.Mono, Coeff: scaledCoeff}
				continue
			}
			sum, err := existing.Coeff.Add(scaledCoeff)
			if err != nil {
				sum = existing.Coeff
			}
			out[k] = term{Mono: t.Mono, Coeff: sum}
		}
	}
	addScaled(p.terms, other.denom)
	addScaled(other.terms, p.denom)

	for k, t := range out {
		if t.Coeff.IsZero() {
			delete(out, k)
		}
	}
	result := &Polynomial{terms: out, denom: newDenom}
	result.simplify()
	return result
}

// Mul returns p*other.
func (p *Polynomial) Mul(other *Polynomial) *Polynomial {
	out := make(map[string]term, len(p.terms)*len(other.terms))
	for _, ta := range p.terms {
		for _, tb := range other.terms {
			mono := ta.Mono.Mul(tb.Mono)
			coeff, err := ta.Coeff.Mul(tb.Coeff)
			if err != nil {
				continue
			}
			key := mono.Key()
			existing, has := out[key]
			if !has {
				out[key] = term{Mono: mono, Coeff: coeff}
				continue
			}
			sum, err := existing.Coeff.Add(coeff)
			if err != nil {
				sum = existing.Coeff
			}
			out[key] = term{Mono: mono, Coeff: sum}
		}
	}
	for k, t := range out {
		if t.Coeff.IsZero() {
			delete(out, k)
		}
	}
	denom, err := p.denom.Mul(other.denom)
	if err != nil {
		denom = p.denom
	}
	result := &Polynomial{terms: out, denom: denom}
	result.simplify()
	return result
}

// DivConstant returns p/divisor for a nonzero rational divisor.
func (p *Polynomial) DivConstant(divisor rat.Rational) *Polynomial {
	out := make(map[string]term, len(p.terms))
	for k, t := range p.terms {
		out[k] = t
	}
	denom, err := p.denom.Mul(divisor)
	if err != nil {
		denom = p.denom
	}
	result := &Polynomial{terms: out, denom: denom}
	result.simplify()
	return result
}

// Pow raises p to the non-negative integer power n.
func (p *Polynomial) Pow(n int) *Polynomial {
	if n == 0 {
		return Constant(rat.Int(1))
	}
	result := p
	for i := 1; i < n; i++ {
		result = result.Mul(p)
	}
	return result
}

// simplify divides every coefficient and the denominator by their GCD and
// forces the denominator positive (spec.md §4.4).
func (p *Polynomial) simplify() {
	if len(p.terms) == 0 {
		p.denom = rat.Int(1)
		return
	}
	g := abs64(p.denom.Num)
	for _, t := range p.terms {
		g = gcd64(g, abs64(t.Coeff.Num))
	}
	if g > 1 {
		p.denom = rat.New(p.denom.Num/g, p.denom.Den)
		for k, t := range p.terms {
			p.terms[k] = term{Mono: t.Mono, Coeff: rat.New(t.Coeff.Num/g, t.Coeff.Den)}
		}
	}
	if p.denom.Sign() < 0 {
		p.denom = p.denom.Neg()
		for k, t := range p.terms {
			p.terms[k] = term{Mono: t.Mono, Coeff: t.Coeff.Neg()}
		}
	}
}

// IsConstant reports whether p carries no variables.
func (p *Polynomial) IsConstant() bool {
	if len(p.terms) == 0 {
		return true
	}
	if len(p.terms) != 1 {
		return false
	}
	for _, t := range p.terms {
		return t.Mono.IsConstant()
	}
	return false
}

// ConstantValue reports p's value if p is constant.
func (p *Polynomial) ConstantValue() (rat.Rational, bool) {
	if len(p.terms) == 0 {
		return rat.Int(0), true
	}
	if len(p.terms) != 1 {
		return rat.Rational{}, false
	}
	for _, t := range p.terms {
		if !t.Mono.IsConstant() {
			return rat.Rational{}, false
		}
		v, err := t.Coeff.Div(p.denom)
		if err != nil {
			return rat.Rational{}, false
		}
		return v, true
	}
	return rat.Rational{}, false
}

// Equals reports whether p and other represent the same polynomial
// (spec.md §4.4: "subtract and check if zero").
func (p *Polynomial) Equals(other *Polynomial) bool {
	diff := p.Add(other.Neg())
	return len(diff.terms) == 0
}

// LinearCoefficients reports p's representation as coeff*sym + constant,
// with ok=false if p contains any monomial other than the constant term or
// sym to the first power (used by the linear equation-solving rule to
// recognize ax+b without doing a full general solve).
func (p *Polynomial) LinearCoefficients(sym expr.SymbolID) (coeff rat.Rational, constant rat.Rational, ok bool) {
	coeff, constant = rat.Int(0), rat.Int(0)
	for _, t := range p.terms {
		v, err := t.Coeff.Div(p.denom)
		if err != nil {
			return rat.Rational{}, rat.Rational{}, false
		}
		switch {
		case t.Mono.IsConstant():
			constant = v
		case len(t.Mono.Powers) == 1 && t.Mono.Powers[0].Sym == sym && t.Mono.Powers[0].Exp == 1:
			coeff = v
		default:
			return rat.Rational{}, rat.Rational{}, false
		}
	}
	return coeff, constant, true
}

// QuadraticCoefficients reports p's representation as a*sym^2 + b*sym + c,
// with ok=false if p contains any monomial other than the constant term or
// sym to the first or second power (used by the quadratic equation-solving
// rule to recognize ax^2+bx+c without doing a full general solve).
func (p *Polynomial) QuadraticCoefficients(sym expr.SymbolID) (a, b, c rat.Rational, ok bool) {
	a, b, c = rat.Int(0), rat.Int(0), rat.Int(0)
	for _, t := range p.terms {
		v, err := t.Coeff.Div(p.denom)
		if err != nil {
			return rat.Rational{}, rat.Rational{}, rat.Rational{}, false
		}
		switch {
		case t.Mono.IsConstant():
			c = v
		case len(t.Mono.Powers) == 1 && t.Mono.Powers[0].Sym == sym && t.Mono.Powers[0].Exp == 1:
			b = v
		case len(t.Mono.Powers) == 1 && t.Mono.Powers[0].Sym == sym && t.Mono.Powers[0].Exp == 2:
			a = v
		default:
			return rat.Rational{}, rat.Rational{}, rat.Rational{}, false
		}
	}
	if a.IsZero() {
		return rat.Rational{}, rat.Rational{}, rat.Rational{}, false
	}
	return a, b, c, true
}

// AlgebraicallyEqual implements the three-valued contract of spec.md §4.4:
// equal/notEqual report the comparison when decided is true; decided is
// false ("undecided") when either side falls outside the polynomial
// fragment FromExpr can normalize.
func AlgebraicallyEqual(a, b expr.Expr) (equal bool, decided bool) {
	pa, ok := FromExpr(a)
	if !ok {
		return false, false
	}
	pb, ok := FromExpr(b)
	if !ok {
		return false, false
	}
	return pa.Equals(pb), true
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func gcd64(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}
