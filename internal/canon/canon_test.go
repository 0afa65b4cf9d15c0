package canon

import (
	"testing"

	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/rat"
	"github.com/gitrdm/lemma/internal/symtab"
)

func TestConstantFolding(t *testing.T) {
	got := Canon(expr.Add(expr.Int(2), expr.Int(3)))
	want := expr.Int(5)
	if !got.Equal(want) {
		t.Errorf("Canon(2+3) = %s, want %s", got, want)
	}
}

func TestAdditiveIdentity(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")

	if got := Canon(expr.Add(expr.NewVar(x), expr.Int(0))); !got.Equal(expr.NewVar(x)) {
		t.Errorf("Canon(x+0) = %s, want x", got)
	}
	if got := Canon(expr.Add(expr.Int(0), expr.NewVar(x))); !got.Equal(expr.NewVar(x)) {
		t.Errorf("Canon(0+x) = %s, want x", got)
	}
}

func TestSubtractiveIdentitiesAndSelfCancel(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	v := expr.NewVar(x)

	if got := Canon(expr.Sub(v, expr.Int(0))); !got.Equal(v) {
		t.Errorf("Canon(x-0) = %s, want x", got)
	}
	if got := Canon(expr.Sub(expr.Int(0), v)); !got.Equal(expr.Neg(v)) {
		t.Errorf("Canon(0-x) = %s, want -(x)", got)
	}
	if got := Canon(expr.Sub(v, v)); !got.Equal(expr.Int(0)) {
		t.Errorf("Canon(x-x) = %s, want 0", got)
	}
}

func TestMultiplicativeIdentities(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	v := expr.NewVar(x)

	if got := Canon(expr.Mul(v, expr.Int(1))); !got.Equal(v) {
		t.Errorf("Canon(x*1) = %s, want x", got)
	}
	if got := Canon(expr.Mul(expr.Int(0), v)); !got.Equal(expr.Int(0)) {
		t.Errorf("Canon(0*x) = %s, want 0", got)
	}
}

func TestDivisionIdentities(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	v := expr.NewVar(x)

	if got := Canon(expr.Div(v, expr.Int(1))); !got.Equal(v) {
		t.Errorf("Canon(x/1) = %s, want x", got)
	}
	if got := Canon(expr.Div(v, v)); !got.Equal(expr.Int(1)) {
		t.Errorf("Canon(x/x) = %s, want 1", got)
	}
	if got := Canon(expr.Div(expr.Int(0), v)); !got.Equal(expr.Int(0)) {
		t.Errorf("Canon(0/x) = %s, want 0", got)
	}
}

func TestPowerIdentitiesAndConstantFold(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	v := expr.NewVar(x)

	if got := Canon(expr.Pow(v, expr.Int(0))); !got.Equal(expr.Int(1)) {
		t.Errorf("Canon(x^0) = %s, want 1", got)
	}
	if got := Canon(expr.Pow(v, expr.Int(1))); !got.Equal(v) {
		t.Errorf("Canon(x^1) = %s, want x", got)
	}
	if got := Canon(expr.Pow(expr.Int(2), expr.Int(3))); !got.Equal(expr.Int(8)) {
		t.Errorf("Canon(2^3) = %s, want 8", got)
	}
}

func TestDoubleNegation(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	v := expr.NewVar(x)

	if got := Canon(expr.Neg(expr.Neg(v))); !got.Equal(v) {
		t.Errorf("Canon(-(-x)) = %s, want x", got)
	}
}

func TestCommutativeSortIsDeterministic(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	y := tab.Intern("y")

	a := Canon(expr.Add(expr.NewVar(y), expr.NewVar(x)))
	b := Canon(expr.Add(expr.NewVar(x), expr.NewVar(y)))
	if !a.Equal(b) {
		t.Errorf("Canon(y+x) = %s, Canon(x+y) = %s, want equal", a, b)
	}
}

func TestSumLikeTermCollection(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")

	// 2x + 3x collects to the single term 5x, which collapses to 5*x.
	s := expr.NewSum(
		expr.Term{Coeff: ratOf(2), Body: expr.NewVar(x)},
		expr.Term{Coeff: ratOf(3), Body: expr.NewVar(x)},
	)
	got := Canon(s)
	want := expr.Mul(expr.Int(5), expr.NewVar(x))
	if !got.Equal(want) {
		t.Errorf("Canon(2x+3x) = %s, want %s", got, want)
	}
}

func TestSumCancellingTermsCollapseToZero(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")

	s := expr.NewSum(
		expr.Term{Coeff: ratOf(1), Body: expr.NewVar(x)},
		expr.Term{Coeff: ratOf(-1), Body: expr.NewVar(x)},
	)
	// Collects to a single zero-coefficient term, dropped entirely -> 0.
	got := Canon(s)
	if !got.Equal(expr.Int(0)) {
		t.Errorf("Canon(x-x as Sum) = %s, want 0", got)
	}
}

func TestSumEmptyCollapsesToZero(t *testing.T) {
	got := Canon(expr.NewSum())
	if !got.Equal(expr.Int(0)) {
		t.Errorf("Canon(empty Sum) = %s, want 0", got)
	}
}

func TestProductLikeBaseCollection(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")

	// x^2 * x^3 canonicalises to x^5.
	p := expr.NewProduct(
		expr.Factor{Base: expr.NewVar(x), Power: expr.Int(2)},
		expr.Factor{Base: expr.NewVar(x), Power: expr.Int(3)},
	)
	got := Canon(p)
	want := expr.Pow(expr.NewVar(x), expr.Int(5))
	if !got.Equal(want) {
		t.Errorf("Canon(x^2 * x^3) = %s, want %s", got, want)
	}
}

func TestProductEmptyCollapsesToOne(t *testing.T) {
	got := Canon(expr.NewProduct())
	if !got.Equal(expr.Int(1)) {
		t.Errorf("Canon(empty Product) = %s, want 1", got)
	}
}

func TestIdempotence(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	y := tab.Intern("y")

	exprs := []expr.Expr{
		expr.Add(expr.NewVar(x), expr.Int(0)),
		expr.Mul(expr.NewVar(y), expr.NewVar(x)),
		expr.Pow(expr.Add(expr.NewVar(x), expr.Int(1)), expr.Int(2)),
	}
	for _, e := range exprs {
		once := Canon(e)
		twice := Canon(once)
		if !once.Equal(twice) {
			t.Errorf("Canon not idempotent on %s: Canon(e)=%s, Canon(Canon(e))=%s", e, once, twice)
		}
	}
}

func TestDepthCapReturnsUnchanged(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	var e expr.Expr = expr.NewVar(x)
	for i := 0; i < MaxDepth+5; i++ {
		e = expr.Neg(e)
	}
	// Must not panic or infinite-loop; depth cap halts recursion.
	_ = canonDepth(e, 0)
}

func ratOf(n int64) rat.Rational { return rat.Int(n) }
