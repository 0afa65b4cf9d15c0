package expr

import (
	"testing"

	"github.com/gitrdm/lemma/internal/symtab"
)

func TestStructuralEquality(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")

	a := Add(NewVar(x), Int(1))
	b := Add(NewVar(x), Int(1))
	c := Add(Int(1), NewVar(x))

	if !a.Equal(b) {
		t.Error("structurally identical terms should be Equal")
	}
	if a.Equal(c) {
		t.Error("Add(x,1) and Add(1,x) are not structurally equal without canonicalisation")
	}
}

func TestCompareIsAntisymmetric(t *testing.T) {
	a := Int(1)
	b := Int(2)
	if Compare(a, b) >= 0 {
		t.Error("Compare(1,2) should be negative")
	}
	if Compare(b, a) <= 0 {
		t.Error("Compare(2,1) should be positive")
	}
	if Compare(a, a) != 0 {
		t.Error("Compare(1,1) should be zero")
	}
}

func TestCompareVariantRank(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	// Const (TagConst) ranks before Var (TagVar) in declaration order.
	if Compare(Int(0), NewVar(x)) >= 0 {
		t.Error("Const should rank before Var")
	}
}

func TestFreeVarsRespectsBinders(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	y := tab.Intern("y")

	body := Add(NewVar(x), NewVar(y))
	quantified := NewForAll(x, nil, body)

	fv := FreeVars(quantified)
	if _, ok := fv[x]; ok {
		t.Error("x is bound by ForAll and should not be free")
	}
	if _, ok := fv[y]; !ok {
		t.Error("y should remain free")
	}
}

func TestFreeVarsSummationBindsLoopVar(t *testing.T) {
	tab := symtab.New()
	i := tab.Intern("i")
	n := tab.Intern("n")

	sum := NewSummation(i, Int(1), NewVar(n), NewVar(i))
	fv := FreeVars(sum)
	if _, ok := fv[i]; ok {
		t.Error("summation index should not be free")
	}
	if _, ok := fv[n]; !ok {
		t.Error("n (the bound) should remain free")
	}
}

func TestSubstituteBasic(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")

	e := Add(NewVar(x), Int(1))
	got := Substitute(e, x, Int(5))
	want := Add(Int(5), Int(1))
	if !got.Equal(want) {
		t.Errorf("Substitute(x+1, x, 5) = %s, want %s", got, want)
	}
}

func TestSubstituteNoOpUnderShadowingBinder(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")

	// forall x. x > 0 -- substituting the outer "x" must not touch the
	// inner bound occurrence (spec.md §3 invariant 5).
	inner := Gt(NewVar(x), Int(0))
	quantified := NewForAll(x, nil, inner)

	got := Substitute(quantified, x, Int(99))
	if !got.Equal(quantified) {
		t.Errorf("Substitute under a shadowing binder should be a no-op, got %s", got)
	}
}

func TestSubstituteDescendsPastNonShadowingBinder(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	y := tab.Intern("y")

	// forall y. x > y -- substituting x should rewrite the body since y != x.
	quantified := NewForAll(y, nil, Gt(NewVar(x), NewVar(y)))
	got := Substitute(quantified, x, Int(3))
	want := NewForAll(y, nil, Gt(Int(3), NewVar(y)))
	if !got.Equal(want) {
		t.Errorf("Substitute past non-shadowing binder = %s, want %s", got, want)
	}
}

func TestComplexityWeights(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")

	plain := Neg(NewVar(x))
	trig := Sin(NewVar(x))

	if Complexity(trig) <= Complexity(plain) {
		t.Error("trig nodes should weigh more than a negation of the same arity")
	}
}

func TestDepth(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")

	flat := Int(1)
	if Depth(flat) != 0 {
		t.Errorf("Depth(atom) = %d, want 0", Depth(flat))
	}

	nested := Neg(Neg(NewVar(x)))
	if Depth(nested) != 2 {
		t.Errorf("Depth(Neg(Neg(x))) = %d, want 2", Depth(nested))
	}
}

func TestWithChildrenSumPreservesCoefficients(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	y := tab.Intern("y")

	s := NewSum(Term{Coeff: Int(1).Value, Body: NewVar(x)}, Term{Coeff: Int(2).Value, Body: NewVar(y)})
	rebuilt := WithChildren(s, []Expr{NewVar(y), NewVar(x)}).(*Sum)

	if !rebuilt.Terms[0].Coeff.Equal(s.Terms[0].Coeff) || !rebuilt.Terms[0].Body.Equal(NewVar(y)) {
		t.Errorf("withChildren should preserve per-term coefficients while swapping bodies")
	}
}
