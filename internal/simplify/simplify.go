// Package simplify implements the high-level simplification loop that
// drives MCTS toward a locally-reduced form, falls back to a direct rule
// application when the search finds nothing, and finishes with a
// stability pass and a constant-folding sweep (spec.md §4.10). Grounded on
// the top-level "drive propagation to fixpoint, then extract a
// solution" shape (solver.go/solver_api.go): round-limited iteration with
// explicit loop detection rather than trusting termination.
package simplify

import (
	"context"
	"math"

	"github.com/gitrdm/lemma/internal/canon"
	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/guardrail"
	"github.com/gitrdm/lemma/internal/mcts"
	"github.com/gitrdm/lemma/internal/policy"
	"github.com/gitrdm/lemma/internal/rule"
	"github.com/gitrdm/lemma/internal/verifier"
)

// maxRounds bounds the outer simplification loop (spec.md §4.10: "iterate
// up to 50 rounds").
const maxRounds = 50

// stabilityRounds bounds the post-loop stability pass (spec.md §4.10:
// "up to 10 iterations").
const stabilityRounds = 10

// Config holds the search budget handed to each round's MCTS instance.
type Config struct {
	Simulations       int
	ExplorationWeight float64
	MaxDepth          int
}

func defaultConfig() Config {
	return Config{Simulations: 100, ExplorationWeight: math.Sqrt2, MaxDepth: 6}
}

// Option configures a simplification run.
type Option func(*Config)

func WithSimulations(n int) Option      { return func(c *Config) { c.Simulations = n } }
func WithSearchMaxDepth(n int) Option   { return func(c *Config) { c.MaxDepth = n } }

// Result is the outcome of a simplification run (spec.md §4.10: "{problem,
// result, steps, verified}").
type Result struct {
	Problem  expr.Expr
	Result   expr.Expr
	Steps    []mcts.Step
	Verified bool
}

// Simplify reduces e to a canonical, locally-minimal form under rules,
// guided by pol. ctx is passed through unchanged to every rule (e.g. a
// target variable for equation-isolation goals). Simplify never fails:
// Verified reports whether every recorded step passed the verifier.
func Simplify(ctx context.Context, rules *rule.Set, pol policy.Network, e expr.Expr, ruleCtx rule.Context, opts ...Option) Result {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	problem := e
	current := canon.Canon(e)
	seen := map[string]bool{expr.Key(current): true}
	var steps []mcts.Step
	verified := true

	for round := 0; round < maxRounds; round++ {
		profile := guardrail.Analyze(current)
		candidates := guardrail.FilterRules(rules.All(), profile, current, ruleCtx)
		if len(candidates) == 0 {
			break
		}

		baseline := current
		search := mcts.New(rules, pol, roundGoal(baseline), mcts.WithSimulations(cfg.Simulations), mcts.WithMaxDepth(cfg.MaxDepth), mcts.WithExplorationWeight(cfg.ExplorationWeight))
		search.Context = ruleCtx
		result := search.Run(ctx, current)

		if len(result.Steps) > 0 {
			next := canon.Canon(result.Steps[len(result.Steps)-1].After)
			key := expr.Key(next)
			steps = append(steps, result.Steps...)
			if !result.Verified {
				verified = false
			}
			if seen[key] {
				break
			}
			seen[key] = true
			current = next
			continue
		}

		newCurrent, step, ok := applyFirstUnseen(candidates, current, ruleCtx, seen)
		if !ok {
			break
		}
		steps = append(steps, step)
		seen[expr.Key(newCurrent)] = true
		current = newCurrent
	}

	current = simplifyChildren(ctx, rules, pol, current, ruleCtx, cfg)
	current = stabilize(current, rules, ruleCtx)
	current = foldConstants(current)

	return Result{Problem: problem, Result: current, Steps: steps, Verified: verified}
}

// roundGoal captures baseline's complexity and reports whether a candidate
// state is an acceptable stopping point for one round: spec.md §4.10's
// "any non-expansion rewrite reduces complexity OR the top operator is
// already isolated in an equation LHS". A rule from the Expansion category
// can only ever raise complexity, so comparing complexity alone already
// excludes expansions without needing the rule identity here.
func roundGoal(baseline expr.Expr) mcts.GoalFunc {
	baseComplexity := expr.Complexity(baseline)
	return func(s expr.Expr) bool {
		if isIsolatedEquation(s) {
			return true
		}
		return expr.Complexity(s) < baseComplexity
	}
}

func isIsolatedEquation(e expr.Expr) bool {
	eq, ok := e.(*expr.Equation)
	if !ok {
		return false
	}
	_, ok = eq.LHS.(*expr.Var)
	return ok
}

// applyFirstUnseen runs spec.md §4.10 step 5's fallback: the first
// candidate rule whose first verified application is not already in seen.
func applyFirstUnseen(candidates []*rule.Rule, current expr.Expr, ctx rule.Context, seen map[string]bool) (expr.Expr, mcts.Step, bool) {
	for _, r := range candidates {
		if !r.CanApply(current, ctx) {
			continue
		}
		for _, app := range r.Fire(current, ctx) {
			next := canon.Canon(app.Result)
			if seen[expr.Key(next)] {
				continue
			}
			result := verifier.VerifyStep(current, app.Result, r, ctx)
			if !result.IsValid() {
				continue
			}
			step := mcts.Step{Before: current, After: next, RuleID: r.ID, RuleName: r.Name, Justification: app.Justification}
			return next, step, true
		}
	}
	return nil, mcts.Step{}, false
}

// childTags lists the variants spec.md §4.10 step 6 recurses into.
var childTags = map[expr.Tag]bool{
	expr.TagAdd: true, expr.TagSub: true, expr.TagMul: true,
	expr.TagDiv: true, expr.TagPow: true, expr.TagNeg: true,
}

// simplifyChildren recurses one level into current's immediate children
// when current is one of Add/Sub/Mul/Div/Pow/Neg, simplifying each
// independently before rebuilding the parent.
func simplifyChildren(ctx context.Context, rules *rule.Set, pol policy.Network, current expr.Expr, ruleCtx rule.Context, cfg Config) expr.Expr {
	if !childTags[current.Tag()] {
		return current
	}
	children := current.Children()
	newChildren := make([]expr.Expr, len(children))
	changed := false
	for i, c := range children {
		sub := Simplify(ctx, rules, pol, c, ruleCtx,
			WithSimulations(cfg.Simulations), WithSearchMaxDepth(cfg.MaxDepth))
		newChildren[i] = sub.Result
		if !sub.Result.Equal(c) {
			changed = true
		}
	}
	if !changed {
		return current
	}
	return canon.Canon(expr.WithChildren(current, newChildren))
}

// stabilize runs spec.md §4.10 step 7's stability pass: up to
// stabilityRounds iterations of any applicable non-expansion rule that
// weakly reduces complexity (does not increase it).
func stabilize(current expr.Expr, rules *rule.Set, ruleCtx rule.Context) expr.Expr {
	for i := 0; i < stabilityRounds; i++ {
		profile := guardrail.Analyze(current)
		candidates := guardrail.FilterRules(rules.All(), profile, current, ruleCtx)
		before := expr.Complexity(current)
		applied := false
		for _, r := range candidates {
			if r.Category == rule.Expansion || !r.CanApply(current, ruleCtx) {
				continue
			}
			for _, app := range r.Fire(current, ruleCtx) {
				next := canon.Canon(app.Result)
				if expr.Complexity(next) > before {
					continue
				}
				result := verifier.VerifyStep(current, app.Result, r, ruleCtx)
				if !result.IsValid() {
					continue
				}
				current = next
				applied = true
				break
			}
			if applied {
				break
			}
		}
		if !applied {
			break
		}
	}
	return current
}
