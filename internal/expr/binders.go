package expr

// ForAll is a universally quantified proposition, optionally restricted to
// a domain (e.g. ∀n. n≥1 → P(n) is written with Domain = n≥1)
// (spec.md §3).
type ForAll struct {
	Var    SymbolID
	Domain Expr // nil when unrestricted
	Body   Expr
}

func NewForAll(v SymbolID, domain, body Expr) *ForAll {
	return &ForAll{Var: v, Domain: domain, Body: body}
}

func (f *ForAll) Tag() Tag { return TagForAll }

func (f *ForAll) Children() []Expr {
	if f.Domain != nil {
		return []Expr{f.Domain, f.Body}
	}
	return []Expr{f.Body}
}

func (f *ForAll) String() string {
	if f.Domain != nil {
		return "forall $" + itoa(int(f.Var)) + " in " + f.Domain.String() + ". " + f.Body.String()
	}
	return "forall $" + itoa(int(f.Var)) + ". " + f.Body.String()
}

func (f *ForAll) withChildren(cs []Expr) Expr {
	switch len(cs) {
	case 1:
		return &ForAll{Var: f.Var, Body: cs[0]}
	case 2:
		return &ForAll{Var: f.Var, Domain: cs[0], Body: cs[1]}
	default:
		panic("expr: ForAll takes one or two children")
	}
}

func (f *ForAll) Equal(other Expr) bool {
	o, ok := other.(*ForAll)
	if !ok || f.Var != o.Var {
		return false
	}
	if (f.Domain == nil) != (o.Domain == nil) {
		return false
	}
	if f.Domain != nil && !f.Domain.Equal(o.Domain) {
		return false
	}
	return f.Body.Equal(o.Body)
}

// Exists is an existentially quantified proposition, optionally restricted
// to a domain (spec.md §3).
type Exists struct {
	Var    SymbolID
	Domain Expr // nil when unrestricted
	Body   Expr
}

func NewExists(v SymbolID, domain, body Expr) *Exists {
	return &Exists{Var: v, Domain: domain, Body: body}
}

func (e *Exists) Tag() Tag { return TagExists }

func (e *Exists) Children() []Expr {
	if e.Domain != nil {
		return []Expr{e.Domain, e.Body}
	}
	return []Expr{e.Body}
}

func (e *Exists) String() string {
	if e.Domain != nil {
		return "exists $" + itoa(int(e.Var)) + " in " + e.Domain.String() + ". " + e.Body.String()
	}
	return "exists $" + itoa(int(e.Var)) + ". " + e.Body.String()
}

func (e *Exists) withChildren(cs []Expr) Expr {
	switch len(cs) {
	case 1:
		return &Exists{Var: e.Var, Body: cs[0]}
	case 2:
		return &Exists{Var: e.Var, Domain: cs[0], Body: cs[1]}
	default:
		panic("expr: Exists takes one or two children")
	}
}

func (e *Exists) Equal(other Expr) bool {
	o, ok := other.(*Exists)
	if !ok || e.Var != o.Var {
		return false
	}
	if (e.Domain == nil) != (o.Domain == nil) {
		return false
	}
	if e.Domain != nil && !e.Domain.Equal(o.Domain) {
		return false
	}
	return e.Body.Equal(o.Body)
}

// Summation is Σ_{Var=From}^{To} Body (spec.md §3).
type Summation struct {
	Var        SymbolID
	From, To   Expr
	Body       Expr
}

func NewSummation(v SymbolID, from, to, body Expr) *Summation {
	return &Summation{Var: v, From: from, To: to, Body: body}
}

func (s *Summation) Tag() Tag         { return TagSummation }
func (s *Summation) Children() []Expr { return []Expr{s.From, s.To, s.Body} }

func (s *Summation) String() string {
	return "sum($" + itoa(int(s.Var)) + ", " + s.From.String() + ", " + s.To.String() + ", " + s.Body.String() + ")"
}

func (s *Summation) withChildren(cs []Expr) Expr {
	if len(cs) != 3 {
		panic("expr: Summation takes exactly three children")
	}
	return &Summation{Var: s.Var, From: cs[0], To: cs[1], Body: cs[2]}
}

func (s *Summation) Equal(other Expr) bool {
	o, ok := other.(*Summation)
	return ok && s.Var == o.Var && s.From.Equal(o.From) && s.To.Equal(o.To) && s.Body.Equal(o.Body)
}

// BigProduct is ∏_{Var=From}^{To} Body (spec.md §3).
type BigProduct struct {
	Var      SymbolID
	From, To Expr
	Body     Expr
}

func NewBigProduct(v SymbolID, from, to, body Expr) *BigProduct {
	return &BigProduct{Var: v, From: from, To: to, Body: body}
}

func (b *BigProduct) Tag() Tag         { return TagBigProduct }
func (b *BigProduct) Children() []Expr { return []Expr{b.From, b.To, b.Body} }

func (b *BigProduct) String() string {
	return "prod($" + itoa(int(b.Var)) + ", " + b.From.String() + ", " + b.To.String() + ", " + b.Body.String() + ")"
}

func (b *BigProduct) withChildren(cs []Expr) Expr {
	if len(cs) != 3 {
		panic("expr: BigProduct takes exactly three children")
	}
	return &BigProduct{Var: b.Var, From: cs[0], To: cs[1], Body: cs[2]}
}

func (b *BigProduct) Equal(other Expr) bool {
	o, ok := other.(*BigProduct)
	return ok && b.Var == o.Var && b.From.Equal(o.From) && b.To.Equal(o.To) && b.Body.Equal(o.Body)
}
