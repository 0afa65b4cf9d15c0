package expr

// Binary represents every two-child variant apart from Equation (which gets
// its own named type since it is structurally distinguished from ordinary
// arithmetic binaries throughout the rule and verifier packages): Add, Sub,
// Mul, Div, Pow, Gt, Gte, Lt, Lte, And, Or, Implies, GCD, LCM, Mod, Binomial
// (spec.md §3).
type Binary struct {
	tag  Tag
	X, Y Expr
}

var binaryNames = map[Tag]string{
	TagAdd: "+", TagSub: "-", TagMul: "*", TagDiv: "/", TagPow: "^",
	TagGt: ">", TagGte: ">=", TagLt: "<", TagLte: "<=",
	TagAnd: "and", TagOr: "or", TagImplies: "implies",
	TagGCD: "gcd", TagLCM: "lcm", TagMod: "mod", TagBinomial: "binomial",
}

func newBinary(tag Tag, x, y Expr) *Binary { return &Binary{tag: tag, X: x, Y: y} }

func Add(x, y Expr) *Binary      { return newBinary(TagAdd, x, y) }
func Sub(x, y Expr) *Binary      { return newBinary(TagSub, x, y) }
func Mul(x, y Expr) *Binary      { return newBinary(TagMul, x, y) }
func Div(x, y Expr) *Binary      { return newBinary(TagDiv, x, y) }
func Pow(x, y Expr) *Binary      { return newBinary(TagPow, x, y) }
func Gt(x, y Expr) *Binary       { return newBinary(TagGt, x, y) }
func Gte(x, y Expr) *Binary      { return newBinary(TagGte, x, y) }
func Lt(x, y Expr) *Binary       { return newBinary(TagLt, x, y) }
func Lte(x, y Expr) *Binary      { return newBinary(TagLte, x, y) }
func And(x, y Expr) *Binary      { return newBinary(TagAnd, x, y) }
func Or(x, y Expr) *Binary       { return newBinary(TagOr, x, y) }
func Implies(x, y Expr) *Binary  { return newBinary(TagImplies, x, y) }
func GCD(x, y Expr) *Binary      { return newBinary(TagGCD, x, y) }
func LCM(x, y Expr) *Binary      { return newBinary(TagLCM, x, y) }
func Mod(x, y Expr) *Binary      { return newBinary(TagMod, x, y) }
func Binomial(n, k Expr) *Binary { return newBinary(TagBinomial, n, k) }

func (b *Binary) Tag() Tag         { return b.tag }
func (b *Binary) Children() []Expr { return []Expr{b.X, b.Y} }

func (b *Binary) String() string {
	if b.tag == TagBinomial {
		return "binomial(" + b.X.String() + ", " + b.Y.String() + ")"
	}
	name, ok := binaryNames[b.tag]
	if !ok {
		name = b.tag.String()
	}
	return "(" + b.X.String() + " " + name + " " + b.Y.String() + ")"
}

func (b *Binary) withChildren(cs []Expr) Expr {
	if len(cs) != 2 {
		panic("expr: Binary takes exactly two children")
	}
	return &Binary{tag: b.tag, X: cs[0], Y: cs[1]}
}

func (b *Binary) Equal(other Expr) bool {
	o, ok := other.(*Binary)
	return ok && b.tag == o.tag && b.X.Equal(o.X) && b.Y.Equal(o.Y)
}

// IsCommutative reports whether the order of X and Y is semantically
// irrelevant. The canonicaliser does not consult it: it keeps Add and Mul
// as Binary nodes and orders their two operands with Compare directly.
func (b *Binary) IsCommutative() bool {
	switch b.tag {
	case TagAdd, TagMul, TagAnd, TagOr, TagGCD, TagLCM:
		return true
	default:
		return false
	}
}

// Equation represents lhs = rhs (spec.md §3: Equation{lhs, rhs}).
type Equation struct {
	LHS, RHS Expr
}

func NewEquation(lhs, rhs Expr) *Equation { return &Equation{LHS: lhs, RHS: rhs} }

func (e *Equation) Tag() Tag         { return TagEquation }
func (e *Equation) Children() []Expr { return []Expr{e.LHS, e.RHS} }
func (e *Equation) String() string   { return e.LHS.String() + " = " + e.RHS.String() }

func (e *Equation) withChildren(cs []Expr) Expr {
	if len(cs) != 2 {
		panic("expr: Equation takes exactly two children")
	}
	return &Equation{LHS: cs[0], RHS: cs[1]}
}

func (e *Equation) Equal(other Expr) bool {
	o, ok := other.(*Equation)
	return ok && e.LHS.Equal(o.LHS) && e.RHS.Equal(o.RHS)
}
