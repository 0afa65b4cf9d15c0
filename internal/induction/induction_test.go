package induction

import (
	"testing"

	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/symtab"
)

func TestSimpleInductionBaseCaseSubstitutesZero(t *testing.T) {
	tab := symtab.New()
	n := tab.Intern("n")
	goal := expr.NewForAll(n, nil, expr.Gte(expr.NewVar(n), expr.Int(0)))

	p := NewSimple(goal, tab)
	want := expr.Gte(expr.Int(0), expr.Int(0))
	if !p.BaseCase().Equal(want) {
		t.Errorf("BaseCase() = %s, want %s", p.BaseCase(), want)
	}
}

func TestFromOneInductionBaseCaseSubstitutesOne(t *testing.T) {
	tab := symtab.New()
	n := tab.Intern("n")
	goal := expr.NewForAll(n, nil, expr.Gte(expr.NewVar(n), expr.Int(1)))

	p := NewFromOne(goal, tab)
	want := expr.Gte(expr.Int(1), expr.Int(1))
	if !p.BaseCase().Equal(want) {
		t.Errorf("BaseCase() = %s, want %s", p.BaseCase(), want)
	}
}

func TestSimpleInductiveHypothesisAndStepGoal(t *testing.T) {
	tab := symtab.New()
	n := tab.Intern("n")
	goal := expr.NewForAll(n, nil, expr.Gte(expr.Pow(expr.NewVar(n), expr.Int(2)), expr.Int(0)))

	p := NewSimple(goal, tab)
	hyp := p.InductiveHypothesis()
	wantHyp := expr.Gte(expr.Pow(expr.NewVar(p.KVar), expr.Int(2)), expr.Int(0))
	if !hyp.Equal(wantHyp) {
		t.Errorf("InductiveHypothesis() = %s, want %s", hyp, wantHyp)
	}

	step := p.InductiveStepGoal()
	kPlusOne := expr.Add(expr.NewVar(p.KVar), expr.Int(1))
	wantStep := expr.Gte(expr.Pow(kPlusOne, expr.Int(2)), expr.Int(0))
	if !step.Equal(wantStep) {
		t.Errorf("InductiveStepGoal() = %s, want %s", step, wantStep)
	}
}

func TestStrongInductionHypothesisUsesDistinctBoundVariable(t *testing.T) {
	tab := symtab.New()
	n := tab.Intern("n")
	goal := expr.NewForAll(n, nil, expr.Gte(expr.NewVar(n), expr.Int(0)))

	p := NewStrong(goal, tab)
	if p.JVar == p.KVar {
		t.Fatal("JVar and KVar must be distinct, else the hypothesis domain j<k is vacuously false")
	}

	hyp, ok := p.InductiveHypothesis().(*expr.ForAll)
	if !ok {
		t.Fatalf("InductiveHypothesis() = %T, want *expr.ForAll", p.InductiveHypothesis())
	}
	if hyp.Var != p.JVar {
		t.Errorf("hypothesis bound variable = %v, want JVar %v", hyp.Var, p.JVar)
	}
	wantDomain := expr.Lt(expr.NewVar(p.JVar), expr.NewVar(p.KVar))
	if !hyp.Domain.Equal(wantDomain) {
		t.Errorf("hypothesis domain = %s, want %s", hyp.Domain, wantDomain)
	}
}

func TestJustificationNamesTheInductionKind(t *testing.T) {
	tab := symtab.New()
	n := tab.Intern("n")
	goal := expr.NewForAll(n, nil, expr.Gte(expr.NewVar(n), expr.Int(0)))
	p := NewSimple(goal, tab)

	got := p.Justification("0 >= 0 is trivially true", "if k >= 0 then k+1 >= 1 > 0")
	if got == "" {
		t.Fatal("Justification() returned empty string")
	}
	want := "By mathematical induction:\n  Base case: 0 >= 0 is trivially true\n  Inductive step: if k >= 0 then k+1 >= 1 > 0"
	if got != want {
		t.Errorf("Justification() = %q, want %q", got, want)
	}
}
