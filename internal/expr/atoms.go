package expr

import "github.com/gitrdm/lemma/internal/rat"

// Const is a constant rational number (spec.md §3: Const(Rational)).
type Const struct {
	Value rat.Rational
}

// Int constructs Const(Rational{n,1}).
func Int(n int64) *Const { return &Const{Value: rat.Int(n)} }

// Frac constructs Const(Rational{n,d}) in lowest terms.
func Frac(n, d int64) *Const { return &Const{Value: rat.New(n, d)} }

// FromRational wraps an already-computed rational as a Const.
func FromRational(r rat.Rational) *Const { return &Const{Value: r} }

func (c *Const) Tag() Tag          { return TagConst }
func (c *Const) Children() []Expr  { return nil }
func (c *Const) String() string    { return c.Value.String() }
func (c *Const) withChildren(cs []Expr) Expr {
	if len(cs) != 0 {
		panic("expr: Const takes no children")
	}
	return c
}

func (c *Const) Equal(other Expr) bool {
	o, ok := other.(*Const)
	return ok && c.Value.Equal(o.Value)
}

// Var is a reference to an interned symbol (spec.md §3: Var(SymbolId)).
type Var struct {
	Sym SymbolID
}

// NewVar constructs a variable reference.
func NewVar(sym SymbolID) *Var { return &Var{Sym: sym} }

func (v *Var) Tag() Tag         { return TagVar }
func (v *Var) Children() []Expr { return nil }
func (v *Var) String() string   { return "$" + itoa(int(v.Sym)) }
func (v *Var) withChildren(cs []Expr) Expr {
	if len(cs) != 0 {
		panic("expr: Var takes no children")
	}
	return v
}

func (v *Var) Equal(other Expr) bool {
	o, ok := other.(*Var)
	return ok && v.Sym == o.Sym
}

// piConst and eConst are singleton atoms for the transcendental constants
// π and e (spec.md §3: Pi, E).
type piConst struct{}
type eConst struct{}

// Pi is the shared Expr value for the constant π.
var Pi Expr = piConst{}

// E is the shared Expr value for the constant e.
var E Expr = eConst{}

func (piConst) Tag() Tag                    { return TagPi }
func (piConst) Children() []Expr            { return nil }
func (piConst) String() string              { return "pi" }
func (piConst) Equal(other Expr) bool       { _, ok := other.(piConst); return ok }
func (piConst) withChildren(cs []Expr) Expr { return piConst{} }

func (eConst) Tag() Tag                    { return TagE }
func (eConst) Children() []Expr            { return nil }
func (eConst) String() string              { return "e" }
func (eConst) Equal(other Expr) bool       { _, ok := other.(eConst); return ok }
func (eConst) withChildren(cs []Expr) Expr { return eConst{} }

func itoa(n int) string {
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
