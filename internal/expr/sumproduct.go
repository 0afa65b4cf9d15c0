package expr

import "github.com/gitrdm/lemma/internal/rat"

// Term is one addend of a Sum: coefficient * body (spec.md §3).
type Term struct {
	Coeff rat.Rational
	Body  Expr
}

// Sum is the canonical-form representation of a flattened addition chain
// with like terms collected (spec.md §3, §4.2). A canonical Sum holds at
// least two Terms (invariant 6); Sum is still constructible with fewer for
// intermediate, pre-canonicalisation states.
type Sum struct {
	Terms []Term
}

func NewSum(terms ...Term) *Sum { return &Sum{Terms: append([]Term(nil), terms...)} }

func (s *Sum) Tag() Tag { return TagSum }

func (s *Sum) Children() []Expr {
	cs := make([]Expr, len(s.Terms))
	for i, t := range s.Terms {
		cs[i] = t.Body
	}
	return cs
}

func (s *Sum) String() string {
	out := ""
	for i, t := range s.Terms {
		if i > 0 {
			out += " + "
		}
		out += t.Coeff.String() + "*" + t.Body.String()
	}
	return "(" + out + ")"
}

func (s *Sum) withChildren(cs []Expr) Expr {
	if len(cs) != len(s.Terms) {
		panic("expr: Sum withChildren length mismatch")
	}
	terms := make([]Term, len(cs))
	for i, c := range cs {
		terms[i] = Term{Coeff: s.Terms[i].Coeff, Body: c}
	}
	return &Sum{Terms: terms}
}

func (s *Sum) Equal(other Expr) bool {
	o, ok := other.(*Sum)
	if !ok || len(s.Terms) != len(o.Terms) {
		return false
	}
	for i, t := range s.Terms {
		if !t.Coeff.Equal(o.Terms[i].Coeff) || !t.Body.Equal(o.Terms[i].Body) {
			return false
		}
	}
	return true
}

// Factor is one element of a Product: base^power (spec.md §3).
type Factor struct {
	Base  Expr
	Power Expr
}

// Product is the canonical-form representation of a flattened
// multiplication chain with like bases combined (spec.md §3, §4.2).
type Product struct {
	Factors []Factor
}

func NewProduct(factors ...Factor) *Product {
	return &Product{Factors: append([]Factor(nil), factors...)}
}

func (p *Product) Tag() Tag { return TagProduct }

// Children interleaves base and power for each factor so that generic
// recursive descent (e.g. canon's bottom-up rewrite) visits every
// subexpression, including exponents.
func (p *Product) Children() []Expr {
	cs := make([]Expr, 0, len(p.Factors)*2)
	for _, f := range p.Factors {
		cs = append(cs, f.Base, f.Power)
	}
	return cs
}

func (p *Product) String() string {
	out := ""
	for i, f := range p.Factors {
		if i > 0 {
			out += " * "
		}
		out += f.Base.String() + "^" + f.Power.String()
	}
	return "(" + out + ")"
}

func (p *Product) withChildren(cs []Expr) Expr {
	if len(cs) != len(p.Factors)*2 {
		panic("expr: Product withChildren length mismatch")
	}
	factors := make([]Factor, len(p.Factors))
	for i := range p.Factors {
		factors[i] = Factor{Base: cs[2*i], Power: cs[2*i+1]}
	}
	return &Product{Factors: factors}
}

func (p *Product) Equal(other Expr) bool {
	o, ok := other.(*Product)
	if !ok || len(p.Factors) != len(o.Factors) {
		return false
	}
	for i, f := range p.Factors {
		if !f.Base.Equal(o.Factors[i].Base) || !f.Power.Equal(o.Factors[i].Power) {
			return false
		}
	}
	return true
}
