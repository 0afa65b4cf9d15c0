// Package lemma is the primary API over the symbolic reasoning engine
// (spec.md §6): Simplify, Search, Prove, Differentiate, Integrate, and
// SolveFor. Grounded on highlevel_api.go — a thin,
// additive layer of literate wrapper functions/methods over the
// production core (Model/Solver), delegating all heavy lifting rather
// than reimplementing it.
package lemma

import (
	"context"

	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/mcts"
	"github.com/gitrdm/lemma/internal/orchestrator"
	"github.com/gitrdm/lemma/internal/policy"
	"github.com/gitrdm/lemma/internal/rule"
	"github.com/gitrdm/lemma/internal/rules"
	"github.com/gitrdm/lemma/internal/simplify"
	"github.com/gitrdm/lemma/internal/symtab"
)

// Solution is the outcome of a simplification-shaped operation (spec.md
// §6: "Solution{problem, result, steps, verified}"). It is the same
// shape internal/simplify already produces, so every wrapper below
// returns it directly rather than duplicating a parallel struct.
type Solution = simplify.Result

// ProofResult is the outcome of Prove (spec.md §6:
// "ProofResult{success, steps, summary, reason}").
type ProofResult = orchestrator.ProofResult

// Engine bundles the symbol table, rule set, and policy collaborator
// that every operation needs, the way a Model bundles the
// variables and constraints a Solver acts on.
type Engine struct {
	Table  *symtab.Table
	Rules  *rule.Set
	Policy policy.Network
}

// Option configures a new Engine.
type Option func(*Engine)

// WithPolicy overrides the default uniform policy (spec.md §4.8: "a
// uniform-prior fallback" is the baseline; callers may supply a
// heuristic or learned network instead).
func WithPolicy(pol policy.Network) Option { return func(e *Engine) { e.Policy = pol } }

// WithRules overrides the standard rule library.
func WithRules(rs *rule.Set) Option { return func(e *Engine) { e.Rules = rs } }

// New returns an Engine wired to the standard rule library, a fresh
// symbol table, and a uniform policy (spec.md §4.8's baseline).
func New(opts ...Option) *Engine {
	e := &Engine{
		Table:  symtab.New(),
		Rules:  rules.Standard(),
		Policy: policy.NewUniformPolicy(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Simplify reduces e to a locally-minimal form (spec.md §6:
// "simplify(expr) → Solution").
func (e *Engine) Simplify(ctx context.Context, ex expr.Expr, opts ...simplify.Option) Solution {
	return simplify.Simplify(ctx, e.Rules, e.Policy, ex, rule.Context{}, opts...)
}

// Search drives MCTS from start toward goal and returns the extracted
// solution, ok=false if the search never reached a goal state (spec.md
// §6: "search(start, goal_predicate) → Option<Solution>").
func (e *Engine) Search(ctx context.Context, start expr.Expr, goal mcts.GoalFunc, opts ...mcts.Option) (Solution, bool) {
	search := mcts.New(e.Rules, e.Policy, goal, opts...)
	result := search.Run(ctx, start)
	final := start
	if len(result.Steps) > 0 {
		final = result.Steps[len(result.Steps)-1].After
	}
	if !goal(final) {
		return Solution{}, false
	}
	return Solution{Problem: start, Result: final, Steps: result.Steps, Verified: result.Verified}, true
}

// Prove attempts to discharge goal (spec.md §6: "prove(goal) →
// ProofResult").
func (e *Engine) Prove(ctx context.Context, goal expr.Expr) ProofResult {
	return orchestrator.Prove(ctx, e.Rules, e.Policy, e.Table, goal)
}

// Differentiate simplifies d/dv[ex] (spec.md §6: "differentiate(expr,
// var) → Solution ... wraps simplify with a shaped expression").
func (e *Engine) Differentiate(ctx context.Context, ex expr.Expr, v symtab.ID, opts ...simplify.Option) Solution {
	return e.Simplify(ctx, expr.NewDerivative(ex, v), opts...)
}

// Integrate simplifies ∫[ex]dv (spec.md §6: "integrate(expr, var) →
// Solution ... wraps simplify with a shaped expression").
func (e *Engine) Integrate(ctx context.Context, ex expr.Expr, v symtab.ID, opts ...simplify.Option) Solution {
	return e.Simplify(ctx, expr.NewIntegral(ex, v), opts...)
}

// SolveFor returns every solution the EquationSolving rule category
// produces for eq's target variable v (spec.md §6: "solve_for(equation,
// var) → list of Solution"; the mm-solver benchmark harnesses confirm
// the return type is a list of roots, not a single one — a quadratic
// equation yields up to two). Each isolated root is itself run back
// through Simplify for stabilization and verification, the way
// differentiate/integrate wrap Simplify around a shaped expression.
// When no EquationSolving rule in the rule set recognizes eq's shape,
// SolveFor falls back to a single direct Simplify pass.
func (e *Engine) SolveFor(ctx context.Context, eq *expr.Equation, v symtab.ID, opts ...simplify.Option) []Solution {
	ruleCtx := rule.WithTarget(v)

	var isolated []expr.Expr
	for _, r := range e.Rules.ByCategory(rule.EquationSolving) {
		if !r.CanApply(eq, ruleCtx) {
			continue
		}
		for _, app := range r.Fire(eq, ruleCtx) {
			isolated = append(isolated, app.Result)
		}
	}

	if len(isolated) == 0 {
		return []Solution{simplify.Simplify(ctx, e.Rules, e.Policy, eq, ruleCtx, opts...)}
	}

	solutions := make([]Solution, 0, len(isolated))
	for _, root := range isolated {
		solutions = append(solutions, simplify.Simplify(ctx, e.Rules, e.Policy, root, ruleCtx, opts...))
	}
	return solutions
}
