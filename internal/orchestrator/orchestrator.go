// Package orchestrator implements the top-level proof dispatcher (spec.md
// §4.15): given a goal, it picks a strategy from the goal's top-level
// shape, delegates to induction, case analysis, or the backward reasoner,
// and composes the sub-results into one ProofResult. Grounded on the
// teacher's solver_api.go/highlevel_api.go shape — inspect the problem,
// pick a strategy, delegate, wrap the outcome in one result record.
package orchestrator

import (
	"context"

	"github.com/gitrdm/lemma/internal/backward"
	"github.com/gitrdm/lemma/internal/canon"
	"github.com/gitrdm/lemma/internal/cases"
	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/induction"
	"github.com/gitrdm/lemma/internal/policy"
	"github.com/gitrdm/lemma/internal/poly"
	"github.com/gitrdm/lemma/internal/rat"
	"github.com/gitrdm/lemma/internal/rule"
	"github.com/gitrdm/lemma/internal/simplify"
	"github.com/gitrdm/lemma/internal/symtab"
)

// maxProofDepth bounds recursive subgoal discharge, guarding against a
// backward strategy that proposes a subgoal at least as hard as its
// parent.
const maxProofDepth = 12

// ProofStep records one step of a completed or attempted proof (spec.md
// §4.15: "each step tagged with a strategy label, the goal at that
// point, and a natural-language justification").
type ProofStep struct {
	Strategy      string
	Goal          expr.Expr
	Justification string
}

// ProofResult is the outcome of Prove (spec.md §4.15: "records success,
// the ordered ProofStep list, a textual summary, and a terminal reason").
// Failure is not an exception: a ProofResult with Success=false and a
// non-empty Reason is a normal, total return value.
type ProofResult struct {
	Success bool
	Steps   []ProofStep
	Summary string
	Reason  string
}

// Prove attempts to prove goal, selecting a strategy from its top-level
// shape (spec.md §4.15).
func Prove(ctx context.Context, rules *rule.Set, pol policy.Network, tab *symtab.Table, goal expr.Expr) ProofResult {
	return proveAt(ctx, rules, pol, tab, goal, maxProofDepth)
}

func proveAt(ctx context.Context, rules *rule.Set, pol policy.Network, tab *symtab.Table, goal expr.Expr, depth int) ProofResult {
	if depth <= 0 {
		return ProofResult{Success: false, Reason: "maximum proof depth exceeded"}
	}
	if forall, ok := goal.(*expr.ForAll); ok {
		return proveByInduction(ctx, rules, pol, tab, forall, depth)
	}
	if isInequality(goal) && !trivialTruth(goal) && len(expr.FreeVars(goal)) > 0 {
		if r := proveByCases(ctx, rules, pol, tab, goal, depth); r.Success {
			return r
		}
	}
	return proveDirect(ctx, rules, pol, tab, goal, depth)
}

// trivialTruth implements spec.md §4.15's "trivial-truth test" —
// `a = a` for equations, or any theorem application that the backward
// reasoner recognises as needing no further subgoals (e.g. x² ≥ 0).
func trivialTruth(goal expr.Expr) bool {
	if eq, ok := goal.(*expr.Equation); ok {
		return canon.Canon(eq.LHS).Equal(canon.Canon(eq.RHS))
	}
	for _, s := range backward.Search(goal) {
		if s.Strategy == backward.TheoremApplication && len(s.Subgoals) == 0 {
			return true
		}
	}
	return false
}

func isInequality(goal expr.Expr) bool {
	b, ok := goal.(*expr.Binary)
	if !ok {
		return false
	}
	switch b.Tag() {
	case expr.TagGt, expr.TagGte, expr.TagLt, expr.TagLte:
		return true
	default:
		return false
	}
}

// proveDirect delegates to the backward reasoner and recursively
// discharges whatever subgoals it proposes (spec.md §4.15: "Direct proof
// delegates to the backward reasoner and recursively discharges
// subgoals"), falling back to a simplification pass when no strategy's
// subgoals all succeed.
func proveDirect(ctx context.Context, rules *rule.Set, pol policy.Network, tab *symtab.Table, goal expr.Expr, depth int) ProofResult {
	if trivialTruth(goal) {
		return ProofResult{
			Success: true,
			Steps:   []ProofStep{{Strategy: "direct", Goal: goal, Justification: "trivially true"}},
			Summary: "goal holds trivially",
		}
	}

	for _, s := range backward.Search(goal) {
		if len(s.Subgoals) == 0 {
			return ProofResult{
				Success: true,
				Steps:   []ProofStep{{Strategy: s.Strategy.String(), Goal: goal, Justification: s.Justification}},
				Summary: s.Justification,
			}
		}
		var substeps []ProofStep
		ok := true
		for _, sub := range s.Subgoals {
			r := proveAt(ctx, rules, pol, tab, sub, depth-1)
			if !r.Success {
				ok = false
				break
			}
			substeps = append(substeps, r.Steps...)
		}
		if ok {
			step := ProofStep{Strategy: s.Strategy.String(), Goal: goal, Justification: s.Justification}
			return ProofResult{Success: true, Steps: append([]ProofStep{step}, substeps...), Summary: s.Justification}
		}
	}

	reduced := simplify.Simplify(ctx, rules, pol, goal, rule.Context{})
	if !reduced.Result.Equal(goal) && trivialTruth(reduced.Result) {
		step := ProofStep{Strategy: "simplify", Goal: goal, Justification: "simplifies to a known truth"}
		return ProofResult{Success: true, Steps: []ProofStep{step}, Summary: "goal simplifies to a known truth"}
	}

	return ProofResult{Success: false, Reason: "no backward strategy or simplification discharged the goal"}
}

// proveByCases splits goal on the sign of one of its free variables and
// discharges each branch (spec.md §4.15: "Inequality with a variable not
// trivially true → case analysis (fallback: direct)"). The caller falls
// back to proveDirect when this returns Success=false.
func proveByCases(ctx context.Context, rules *rule.Set, pol policy.Network, tab *symtab.Table, goal expr.Expr, depth int) ProofResult {
	v, ok := pickVariable(expr.FreeVars(goal))
	if !ok {
		return ProofResult{Success: false, Reason: "no variable to split on"}
	}

	analysis := cases.NewAnalysis(goal).SplitBySign(v)
	var steps []ProofStep
	for i := range analysis.Cases {
		c := &analysis.Cases[i]
		subgoal := specializeUnderCondition(v, c.Condition, c.Goal)
		r := proveAt(ctx, rules, pol, tab, subgoal, depth-1)
		if !r.Success {
			return ProofResult{Success: false, Reason: "case \"" + c.Name + "\": " + r.Reason}
		}
		analysis.ProveCase(i, r.Summary)
		steps = append(steps, ProofStep{Strategy: "case:" + c.Name, Goal: subgoal, Justification: r.Summary})
		steps = append(steps, r.Steps...)
	}

	summary, _ := analysis.Justification()
	return ProofResult{Success: true, Steps: steps, Summary: summary}
}

// specializeUnderCondition substitutes a concrete value for splitVar when
// condition pins it to one (an equality case, or a parity witness
// equation), letting the recursive proof attempt work on a ground
// instance rather than under an un-threaded hypothesis. Open sign
// conditions (x>0, x<0) carry no concrete value to substitute and are
// passed through unchanged.
func specializeUnderCondition(splitVar symtab.ID, condition, goal expr.Expr) expr.Expr {
	switch c := condition.(type) {
	case *expr.Equation:
		if v, ok := c.LHS.(*expr.Var); ok && v.Sym == splitVar {
			return expr.Substitute(goal, splitVar, c.RHS)
		}
	case *expr.Exists:
		if eq, ok := c.Body.(*expr.Equation); ok {
			if v, ok := eq.LHS.(*expr.Var); ok && v.Sym == splitVar {
				return expr.Substitute(goal, splitVar, eq.RHS)
			}
		}
	}
	return goal
}

func pickVariable(fv map[symtab.ID]struct{}) (symtab.ID, bool) {
	first := true
	var best symtab.ID
	for v := range fv {
		if first || v < best {
			best = v
			first = false
		}
	}
	return best, !first
}

// proveByInduction discharges a ForAll goal (spec.md §4.15: "ForAll{..}
// → induction"). The base case is discharged through proveAt; the
// inductive step is checked by the §4.4 algebraic-equality decision
// procedure when the step goal is an equation (after expanding a
// trailing summation via the identity Σ_{i=a}^{k+1} f(i) = Σ_{i=a}^{k}
// f(i) + f(k+1)), otherwise by recursive proveAt.
func proveByInduction(ctx context.Context, rules *rule.Set, pol policy.Network, tab *symtab.Table, goal *expr.ForAll, depth int) ProofResult {
	var proof *induction.Proof
	if startsFromOne(goal) {
		proof = induction.NewFromOne(goal, tab)
	} else {
		proof = induction.NewSimple(goal, tab)
	}

	base := proof.BaseCase()
	baseResult := proveAt(ctx, rules, pol, tab, base, depth-1)
	if !baseResult.Success {
		return ProofResult{Success: false, Reason: "base case unproven: " + baseResult.Reason}
	}

	stepGoal := expandSummationStep(proof.InductiveStepGoal(), proof.KVar)
	stepResult := proveInductiveStep(ctx, rules, pol, tab, stepGoal, depth)
	if !stepResult.Success {
		return ProofResult{Success: false, Reason: "inductive step unproven: " + stepResult.Reason}
	}

	steps := append([]ProofStep{{Strategy: "induction:base", Goal: base, Justification: baseResult.Summary}}, baseResult.Steps...)
	steps = append(steps, ProofStep{Strategy: "induction:step", Goal: stepGoal, Justification: stepResult.Summary})
	steps = append(steps, stepResult.Steps...)

	return ProofResult{
		Success: true,
		Steps:   steps,
		Summary: proof.Justification(baseResult.Summary, stepResult.Summary),
	}
}

func startsFromOne(goal *expr.ForAll) bool {
	b, ok := goal.Domain.(*expr.Binary)
	if !ok || b.Tag() != expr.TagGte {
		return false
	}
	v, ok := b.X.(*expr.Var)
	if !ok || v.Sym != goal.Var {
		return false
	}
	c, ok := b.Y.(*expr.Const)
	return ok && c.Value.Equal(rat.Int(1))
}

// proveInductiveStep checks the step goal via algebraic equality (§4.4)
// when it is an equation, since that decision procedure is exact for
// polynomial identities and avoids a potentially fruitless search;
// otherwise it falls back to the ordinary strategy dispatch.
func proveInductiveStep(ctx context.Context, rules *rule.Set, pol policy.Network, tab *symtab.Table, stepGoal expr.Expr, depth int) ProofResult {
	if eq, ok := stepGoal.(*expr.Equation); ok {
		if equal, decided := poly.AlgebraicallyEqual(eq.LHS, eq.RHS); decided {
			if equal {
				return ProofResult{Success: true, Summary: "both sides are algebraically equal"}
			}
			return ProofResult{Success: false, Reason: "sides are not algebraically equal"}
		}
	}
	return proveAt(ctx, rules, pol, tab, stepGoal, depth-1)
}

// expandSummationStep rewrites the first Σ_{i=a}^{k+1} f(i) found in e
// using Σ_{i=a}^{k+1} f(i) = Σ_{i=a}^{k} f(i) + f(k+1) (spec.md §4.15).
func expandSummationStep(e expr.Expr, kVar symtab.ID) expr.Expr {
	if sum, ok := e.(*expr.Summation); ok && isKPlusOne(sum.To, kVar) {
		prior := expr.NewSummation(sum.Var, sum.From, expr.NewVar(kVar), sum.Body)
		last := expr.Substitute(sum.Body, sum.Var, expr.Add(expr.NewVar(kVar), expr.Int(1)))
		return expr.Add(prior, last)
	}
	children := e.Children()
	if len(children) == 0 {
		return e
	}
	newChildren := make([]expr.Expr, len(children))
	changed := false
	for i, c := range children {
		nc := expandSummationStep(c, kVar)
		newChildren[i] = nc
		if !nc.Equal(c) {
			changed = true
		}
	}
	if !changed {
		return e
	}
	return expr.WithChildren(e, newChildren)
}

func isKPlusOne(to expr.Expr, kVar symtab.ID) bool {
	want := canon.Canon(expr.Add(expr.NewVar(kVar), expr.Int(1)))
	return canon.Canon(to).Equal(want)
}
