package cases

import (
	"testing"

	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/symtab"
)

func squareGoal(tab *symtab.Table, x symtab.ID) expr.Expr {
	return expr.Gte(expr.Pow(expr.NewVar(x), expr.Int(2)), expr.Int(0))
}

func TestSplitBySignProducesThreeExhaustiveCases(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	a := NewAnalysis(squareGoal(tab, x)).SplitBySign(x)

	if len(a.Cases) != 3 {
		t.Fatalf("len(Cases) = %d, want 3", len(a.Cases))
	}
	if !a.Exhaustive {
		t.Error("Exhaustive = false, want true for a sign split")
	}
	if a.IsComplete() {
		t.Error("IsComplete() = true before any case is proven")
	}
}

func TestSplitByParityUsesDistinctFreshWitnesses(t *testing.T) {
	tab := symtab.New()
	n := tab.Intern("n")
	a := NewAnalysis(expr.NewEquation(expr.Mod(expr.NewVar(n), expr.Int(2)), expr.Int(0))).SplitByParity(n, tab)

	if len(a.Cases) != 2 {
		t.Fatalf("len(Cases) = %d, want 2", len(a.Cases))
	}
	evenEx, ok := a.Cases[0].Condition.(*expr.Exists)
	if !ok {
		t.Fatalf("even case condition = %T, want *expr.Exists", a.Cases[0].Condition)
	}
	oddEx, ok := a.Cases[1].Condition.(*expr.Exists)
	if !ok {
		t.Fatalf("odd case condition = %T, want *expr.Exists", a.Cases[1].Condition)
	}
	if evenEx.Var == oddEx.Var {
		t.Error("even and odd cases reused the same existential witness")
	}
	if !a.Exhaustive {
		t.Error("Exhaustive = false, want true for a parity split")
	}
}

func TestSplitCustomDefaultsToNonExhaustive(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	a := NewAnalysis(squareGoal(tab, x)).SplitCustom([]CaseSpec{
		{Name: "small", Condition: expr.Lt(expr.NewVar(x), expr.Int(10))},
		{Name: "large", Condition: expr.Gte(expr.NewVar(x), expr.Int(10))},
	})
	if a.Exhaustive {
		t.Error("Exhaustive = true, want false by default for a custom split")
	}
	a.ProveCase(0, "checked")
	a.ProveCase(1, "checked")
	if a.IsComplete() {
		t.Error("IsComplete() = true without SetExhaustive(true)")
	}
	a.SetExhaustive(true)
	if !a.IsComplete() {
		t.Error("IsComplete() = false after all cases proven and exhaustive set")
	}
}

func TestProveCaseRejectsOutOfRangeIndex(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	a := NewAnalysis(squareGoal(tab, x)).SplitBySign(x)
	if a.ProveCase(99, "bogus") {
		t.Error("ProveCase(99, ...) = true, want false for out-of-range index")
	}
}

func TestJustificationOnlyAvailableWhenComplete(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	a := NewAnalysis(squareGoal(tab, x)).SplitBySign(x)

	if _, ok := a.Justification(); ok {
		t.Fatal("Justification() ok = true before completion")
	}

	a.ProveCase(0, "positive squared is positive")
	a.ProveCase(1, "0^2 = 0 >= 0")
	a.ProveCase(2, "negative squared is positive")

	summary, ok := a.Justification()
	if !ok {
		t.Fatal("Justification() ok = false after all cases proven")
	}
	if summary == "" {
		t.Error("Justification() returned empty summary")
	}
}

func TestUnprovenCasesListsOnlyRemainingIndices(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	a := NewAnalysis(squareGoal(tab, x)).SplitBySign(x)
	a.ProveCase(1, "zero case")

	unproven := a.UnprovenCases()
	if len(unproven) != 2 {
		t.Fatalf("len(UnprovenCases()) = %d, want 2", len(unproven))
	}
	for _, i := range unproven {
		if i == 1 {
			t.Error("UnprovenCases() included an already-proven case")
		}
	}
}
