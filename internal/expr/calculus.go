package expr

// Derivative is d/d(Var) Body (spec.md §3). The core treats this as an
// opaque symbolic node except where a rule in internal/rules explicitly
// matches and rewrites it; the evaluator (internal/eval) always fails on
// it (spec.md §4.3: "no symbolic semantics").
type Derivative struct {
	Body Expr
	Var  SymbolID
}

func NewDerivative(body Expr, v SymbolID) *Derivative { return &Derivative{Body: body, Var: v} }

func (d *Derivative) Tag() Tag         { return TagDerivative }
func (d *Derivative) Children() []Expr { return []Expr{d.Body} }
func (d *Derivative) String() string   { return "d/d$" + itoa(int(d.Var)) + "(" + d.Body.String() + ")" }

func (d *Derivative) withChildren(cs []Expr) Expr {
	if len(cs) != 1 {
		panic("expr: Derivative takes exactly one child")
	}
	return &Derivative{Body: cs[0], Var: d.Var}
}

func (d *Derivative) Equal(other Expr) bool {
	o, ok := other.(*Derivative)
	return ok && d.Var == o.Var && d.Body.Equal(o.Body)
}

// Integral is ∫ Body d(Var) (spec.md §3).
type Integral struct {
	Body Expr
	Var  SymbolID
}

func NewIntegral(body Expr, v SymbolID) *Integral { return &Integral{Body: body, Var: v} }

func (n *Integral) Tag() Tag         { return TagIntegral }
func (n *Integral) Children() []Expr { return []Expr{n.Body} }
func (n *Integral) String() string   { return "int(" + n.Body.String() + ", $" + itoa(int(n.Var)) + ")" }

func (n *Integral) withChildren(cs []Expr) Expr {
	if len(cs) != 1 {
		panic("expr: Integral takes exactly one child")
	}
	return &Integral{Body: cs[0], Var: n.Var}
}

func (n *Integral) Equal(other Expr) bool {
	o, ok := other.(*Integral)
	return ok && n.Var == o.Var && n.Body.Equal(o.Body)
}
