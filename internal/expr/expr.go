// Package expr implements the immutable algebraic expression tree (Expr)
// that is the common currency of every other package in this module
// (spec.md §3, §4.1). Expr values are never mutated after construction;
// every transformation returns a new tree.
package expr

import "github.com/gitrdm/lemma/internal/symtab"

// Tag discriminates the exhaustive set of Expr variants listed in spec.md
// §3. Tag values define the primary key of the total order used by the
// canonicaliser to sort commutative children deterministically (spec.md
// §4.1); the numeric order below is arbitrary but fixed.
type Tag int

const (
	TagConst Tag = iota
	TagVar
	TagPi
	TagE

	TagNeg
	TagSqrt
	TagSin
	TagCos
	TagTan
	TagArcsin
	TagArccos
	TagArctan
	TagLn
	TagExp
	TagAbs
	TagFloor
	TagCeiling
	TagFactorial
	TagNot

	TagAdd
	TagSub
	TagMul
	TagDiv
	TagPow

	TagGt
	TagGte
	TagLt
	TagLte
	TagEquation

	TagAnd
	TagOr
	TagImplies

	TagGCD
	TagLCM
	TagMod
	TagBinomial

	TagSum
	TagProduct

	TagDerivative
	TagIntegral

	TagForAll
	TagExists
	TagSummation
	TagBigProduct
)

var tagNames = map[Tag]string{
	TagConst: "Const", TagVar: "Var", TagPi: "Pi", TagE: "E",
	TagNeg: "Neg", TagSqrt: "Sqrt", TagSin: "Sin", TagCos: "Cos", TagTan: "Tan",
	TagArcsin: "Arcsin", TagArccos: "Arccos", TagArctan: "Arctan",
	TagLn: "Ln", TagExp: "Exp", TagAbs: "Abs", TagFloor: "Floor",
	TagCeiling: "Ceiling", TagFactorial: "Factorial", TagNot: "Not",
	TagAdd: "Add", TagSub: "Sub", TagMul: "Mul", TagDiv: "Div", TagPow: "Pow",
	TagGt: "Gt", TagGte: "Gte", TagLt: "Lt", TagLte: "Lte", TagEquation: "Equation",
	TagAnd: "And", TagOr: "Or", TagImplies: "Implies",
	TagGCD: "GCD", TagLCM: "LCM", TagMod: "Mod", TagBinomial: "Binomial",
	TagSum: "Sum", TagProduct: "Product",
	TagDerivative: "Derivative", TagIntegral: "Integral",
	TagForAll: "ForAll", TagExists: "Exists",
	TagSummation: "Summation", TagBigProduct: "BigProduct",
}

// String returns the variant's spec name, e.g. "Add", "Derivative".
func (t Tag) String() string {
	if n, ok := tagNames[t]; ok {
		return n
	}
	return "Unknown"
}

// Expr is the common interface implemented by every variant of the
// algebraic expression tree. Values are deeply immutable (spec.md §3
// invariant 1): construction never mutates an existing Expr.
type Expr interface {
	// Tag identifies which variant this value is.
	Tag() Tag

	// Children returns the immediate subexpressions, in a fixed order used
	// by structural equality, ordering, and recursive descent. Atoms
	// (Const, Var, Pi, E) return nil.
	Children() []Expr

	// Equal reports structural equality: same variant, same payload
	// (coefficients, symbol ids), and pairwise-equal children in the same
	// order (spec.md §3 invariant 2).
	Equal(other Expr) bool

	// String renders a human-debuggable (not parseable) form.
	String() string

	// withChildren returns a copy of this node with Children() replaced by
	// cs, preserving any non-child payload (e.g. a Sum's per-term
	// coefficients, a binder's variable id). Used by generic recursive
	// rewrites (canon, substitute) that only need to reconstruct a node
	// after transforming its children.
	withChildren(cs []Expr) Expr
}

// SymbolID re-exports symtab.ID for package ergonomics: every package that
// imports expr needs this type to name bound variables.
type SymbolID = symtab.ID

// WithChildren reconstructs e with its children replaced by cs, preserving
// e's non-child payload. len(cs) must equal len(e.Children()).
func WithChildren(e Expr, cs []Expr) Expr {
	return e.withChildren(cs)
}
