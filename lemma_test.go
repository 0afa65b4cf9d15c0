package lemma

import (
	"context"
	"testing"

	"github.com/gitrdm/lemma/internal/expr"
)

func TestSimplifyReducesASimpleSum(t *testing.T) {
	e := New()
	sum := expr.Add(expr.Int(2), expr.Int(3))

	sol := e.Simplify(context.Background(), sum)
	if !sol.Result.Equal(expr.Int(5)) {
		t.Fatalf("Simplify(2+3).Result = %v, want 5", sol.Result)
	}
	if !sol.Verified {
		t.Error("Verified = false for a trivial constant fold")
	}
}

func TestDifferentiateWrapsSimplifyAroundADerivativeNode(t *testing.T) {
	e := New()
	x := e.Table.Intern("x")
	sol := e.Differentiate(context.Background(), expr.NewVar(x), x)

	if !sol.Result.Equal(expr.Int(1)) {
		t.Fatalf("Differentiate(x, x).Result = %v, want 1", sol.Result)
	}
}

func TestSolveForLinearEquationReturnsOneSolution(t *testing.T) {
	e := New()
	x := e.Table.Intern("x")
	eq := expr.NewEquation(expr.Add(expr.Mul(expr.Int(2), expr.NewVar(x)), expr.Int(3)), expr.Int(7))

	solutions := e.SolveFor(context.Background(), eq, x)
	if len(solutions) != 1 {
		t.Fatalf("len(solutions) = %d, want 1 for a linear equation", len(solutions))
	}
	got, ok := solutions[0].Result.(*expr.Equation)
	if !ok {
		t.Fatalf("solutions[0].Result = %T, want *expr.Equation", solutions[0].Result)
	}
	if !got.RHS.Equal(expr.Int(2)) {
		t.Errorf("solved x = %v, want 2", got.RHS)
	}
}

func TestSolveForQuadraticEquationReturnsTwoRoots(t *testing.T) {
	e := New()
	x := e.Table.Intern("x")
	// x^2 - 5x + 6 = 0  =>  x = 2 or x = 3
	eq := expr.NewEquation(
		expr.Add(expr.Sub(expr.Pow(expr.NewVar(x), expr.Int(2)), expr.Mul(expr.Int(5), expr.NewVar(x))), expr.Int(6)),
		expr.Int(0),
	)

	solutions := e.SolveFor(context.Background(), eq, x)
	if len(solutions) != 2 {
		t.Fatalf("len(solutions) = %d, want 2 for a quadratic with distinct real roots", len(solutions))
	}
}

func TestProveDischargesATrivialEquation(t *testing.T) {
	e := New()
	res := e.Prove(context.Background(), expr.NewEquation(expr.Int(1), expr.Int(1)))
	if !res.Success {
		t.Fatalf("Prove(1=1) Success = false, Reason = %q", res.Reason)
	}
}

func TestSearchReportsFalseWhenGoalNeverReached(t *testing.T) {
	e := New()
	x := e.Table.Intern("x")
	start := expr.NewVar(x)
	neverSatisfied := func(s expr.Expr) bool { return false }

	_, ok := e.Search(context.Background(), start, neverSatisfied)
	if ok {
		t.Error("Search reported ok=true for a goal predicate that always returns false")
	}
}
