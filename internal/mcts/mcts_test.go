package mcts

import (
	"context"
	"testing"

	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/policy"
	"github.com/gitrdm/lemma/internal/rule"
	"github.com/gitrdm/lemma/internal/rules"
	"github.com/gitrdm/lemma/internal/symtab"
)

// isSolvedFor reports whether e is an Equation with v isolated alone on the
// left-hand side, the shape linear_solve's apply produces.
func isSolvedFor(v expr.SymbolID) GoalFunc {
	return func(e expr.Expr) bool {
		eq, ok := e.(*expr.Equation)
		if !ok {
			return false
		}
		lhs, ok := eq.LHS.(*expr.Var)
		return ok && lhs.Sym == v
	}
}

// TestRunSolvesLinearEquation exercises spec.md §8's E6 end to end: MCTS
// over the standard rule set should find the single linear_solve step that
// turns 2*x+3=7 into x=2.
func TestRunSolvesLinearEquation(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	v := expr.NewVar(x)

	problem := expr.NewEquation(expr.Add(expr.Mul(expr.Int(2), v), expr.Int(3)), expr.Int(7))

	s := New(rules.Standard(), policy.NewHeuristicPolicy(rules.Standard()), isSolvedFor(x),
		WithSimulations(50), WithMaxDepth(5))
	s.Context = rule.WithTarget(x)

	result := s.Run(context.Background(), problem)
	if !result.Verified {
		t.Fatalf("Run() did not find a verified solution; steps=%+v", result.Steps)
	}
	last := result.Steps[len(result.Steps)-1]
	if !last.After.Equal(expr.NewEquation(v, expr.Int(2))) {
		t.Errorf("final state = %s, want x = 2", last.After)
	}
}

// TestRunRecognizesTrivialGoal covers the case where the root already
// satisfies the goal: spec.md §4.9 says extraction must return a trivial
// solution with no steps rather than running simulations to no effect.
func TestRunRecognizesTrivialGoal(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	v := expr.NewVar(x)

	already := expr.NewEquation(v, expr.Int(2))
	s := New(rules.Standard(), policy.NewUniformPolicy(), isSolvedFor(x), WithSimulations(5))

	result := s.Run(context.Background(), already)
	if !result.Verified {
		t.Fatal("Run() on an already-solved state should report Verified")
	}
	if len(result.Steps) != 0 {
		t.Errorf("Steps = %v, want none for a trivial solution", result.Steps)
	}
}

// TestRunWithoutTargetContextNeverFires ensures a target-variable rule
// never contributes children when the caller supplies no context — the
// search should simply fail to verify rather than panic.
func TestRunWithoutTargetContextNeverFires(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	v := expr.NewVar(x)
	problem := expr.NewEquation(expr.Add(expr.Mul(expr.Int(2), v), expr.Int(3)), expr.Int(7))

	s := New(rules.Standard(), policy.NewUniformPolicy(), isSolvedFor(x), WithSimulations(10))
	result := s.Run(context.Background(), problem)
	if result.Verified {
		t.Error("Run() without a target context should not find the equation-solving path")
	}
}

// TestRunDeepParallelMatchesSequentialOutcome checks that enabling
// multiple workers still finds a verified solution (spec.md §4.9's
// deep-parallel variant).
func TestRunDeepParallelMatchesSequentialOutcome(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	v := expr.NewVar(x)
	problem := expr.NewEquation(expr.Add(expr.Mul(expr.Int(2), v), expr.Int(3)), expr.Int(7))

	s := New(rules.Standard(), policy.NewHeuristicPolicy(rules.Standard()), isSolvedFor(x),
		WithSimulations(50), WithMaxDepth(5), WithWorkers(4))
	s.Context = rule.WithTarget(x)

	result := s.Run(context.Background(), problem)
	if !result.Verified {
		t.Fatalf("deep-parallel Run() did not find a verified solution; steps=%+v", result.Steps)
	}
}

// TestRunRespectsMaxDepth confirms a search that can never reach the goal
// within MaxDepth terminates instead of recursing forever.
func TestRunRespectsMaxDepth(t *testing.T) {
	neverSatisfied := func(expr.Expr) bool { return false }
	s := New(rules.Standard(), policy.NewUniformPolicy(), neverSatisfied, WithSimulations(20), WithMaxDepth(2))

	result := s.Run(context.Background(), expr.Int(5))
	if result.Verified {
		t.Error("Run() should not report Verified when the goal is unsatisfiable")
	}
}

// TestRunHonorsCancellation confirms a canceled context stops the search
// without panicking.
func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(rules.Standard(), policy.NewUniformPolicy(), func(expr.Expr) bool { return false }, WithSimulations(20))
	result := s.Run(ctx, expr.Int(5))
	if result.Verified {
		t.Error("Run() on a canceled context should not fabricate a verified solution")
	}
}
