package verifier

import (
	"testing"

	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/rule"
	"github.com/gitrdm/lemma/internal/symtab"
)

func addOneRule() *rule.Rule {
	return &rule.Rule{
		ID:         1,
		Name:       "add_one",
		Applicable: func(e expr.Expr, ctx rule.Context) bool { return true },
		Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
			return []rule.Application{{Result: expr.Add(e, expr.Int(1))}}
		},
	}
}

func TestVerifyStepAcceptsExactMatch(t *testing.T) {
	r := addOneRule()
	before := expr.Int(2)
	after := expr.Add(expr.Int(2), expr.Int(1))

	got := VerifyStep(before, after, r, rule.Context{})
	if !got.IsValid() || got.Confidence != 1.0 {
		t.Errorf("VerifyStep = %+v, want Valid{1.0}", got)
	}
}

func TestVerifyStepRejectsPredicateFailure(t *testing.T) {
	r := addOneRule()
	r.Applicable = func(e expr.Expr, ctx rule.Context) bool { return false }

	got := VerifyStep(expr.Int(2), expr.Int(3), r, rule.Context{})
	if got.Status != StatusInvalid {
		t.Errorf("VerifyStep = %+v, want Invalid", got)
	}
}

func TestVerifyStepRejectsResultNotProduced(t *testing.T) {
	r := addOneRule()
	got := VerifyStep(expr.Int(2), expr.Int(99), r, rule.Context{})
	if got.Status != StatusInvalid {
		t.Errorf("VerifyStep = %+v, want Invalid (99 is not among add_one's results and is polynomially decidable)", got)
	}
}

func TestVerifyStepCapsConfidenceForDerivative(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	v := expr.NewVar(x)

	r := &rule.Rule{
		ID:         2,
		Applicable: func(e expr.Expr, ctx rule.Context) bool { return true },
		Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
			return []rule.Application{{Result: expr.Int(1)}}
		},
	}
	before := expr.NewDerivative(v, x)
	got := VerifyStep(before, expr.Int(1), r, rule.Context{})
	if !got.IsValid() || got.Confidence != 0.95 {
		t.Errorf("VerifyStep = %+v, want Valid{0.95}", got)
	}
}

func TestVerifySolutionAcceptsCorrectRoot(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	v := expr.NewVar(x)

	// 2x + 3 = 7, candidate x = 2.
	eq := expr.NewEquation(expr.Add(expr.Mul(expr.Int(2), v), expr.Int(3)), expr.Int(7))
	got := VerifySolution(eq, x, expr.Int(2))
	if !got.IsValid() || got.Confidence != 1.0 {
		t.Errorf("VerifySolution = %+v, want Valid{1.0}", got)
	}
}

func TestVerifySolutionRejectsWrongRoot(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	v := expr.NewVar(x)

	eq := expr.NewEquation(expr.Add(expr.Mul(expr.Int(2), v), expr.Int(3)), expr.Int(7))
	got := VerifySolution(eq, x, expr.Int(5))
	if got.Status != StatusInvalid {
		t.Errorf("VerifySolution = %+v, want Invalid", got)
	}
}
