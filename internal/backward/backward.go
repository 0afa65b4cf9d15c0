// Package backward implements the goal-indexed backward reasoning
// strategies of spec.md §4.11: each strategy inspects a goal's top-level
// shape and, if applicable, proposes subgoals that would discharge it.
// Grounded on pldb.go/slg_engine.go goal-indexed strategy
// dispatch (a goal's functor/arity selects which clause or tabled answer
// applies), generalized here to an algebraic goal's Tag selecting which
// backward strategy fires.
package backward

import (
	"github.com/gitrdm/lemma/internal/canon"
	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/rat"
)

// Strategy names a backward-reasoning tactic (spec.md §4.11).
type Strategy int

const (
	InequalityToNonneg Strategy = iota
	EquivalentForm
	TheoremApplication
	SubstitutionWitness
)

func (s Strategy) String() string {
	switch s {
	case InequalityToNonneg:
		return "inequality_to_nonneg"
	case EquivalentForm:
		return "equivalent_form"
	case TheoremApplication:
		return "theorem_application"
	case SubstitutionWitness:
		return "substitution_witness"
	default:
		return "unknown"
	}
}

// Step is one proposed reduction of a goal to subgoals (spec.md §4.11:
// "{strategy, subgoals, justification}").
type Step struct {
	Strategy      Strategy
	Subgoals      []expr.Expr
	Justification string
}

// Search returns every strategy applicable to goal, without pruning
// (spec.md §4.11: "backward_search(goal) returns the full list of
// applicable strategies without pruning").
func Search(goal expr.Expr) []Step {
	var steps []Step
	if step, ok := inequalityToNonneg(goal); ok {
		steps = append(steps, step)
	}
	if step, ok := equivalentForm(goal); ok {
		steps = append(steps, step)
	}
	steps = append(steps, theoremApplications(goal)...)
	if step, ok := substitutionWitness(goal); ok {
		steps = append(steps, step)
	}
	if step, ok := quantifierNegation(goal); ok {
		steps = append(steps, step)
	}
	return steps
}

// quantifierNegation rewrites a negated quantifier into its dual
// (spec.md §4.13's quantified goals extend to: ¬∀x.P(x) ↔ ∃x.¬P(x) and
// ¬∃x.P(x) ↔ ∀x.¬P(x)). Grounded on quantifier.rs's negate_forall and
// negate_exists.
func quantifierNegation(goal expr.Expr) (Step, bool) {
	not, ok := goal.(*expr.Unary)
	if !ok || not.Tag() != expr.TagNot {
		return Step{}, false
	}
	switch inner := not.X.(type) {
	case *expr.ForAll:
		subgoal := expr.NewExists(inner.Var, inner.Domain, expr.Not(inner.Body))
		return Step{
			Strategy:      EquivalentForm,
			Subgoals:      []expr.Expr{subgoal},
			Justification: "not-forall is exists-not",
		}, true
	case *expr.Exists:
		subgoal := expr.NewForAll(inner.Var, inner.Domain, expr.Not(inner.Body))
		return Step{
			Strategy:      EquivalentForm,
			Subgoals:      []expr.Expr{subgoal},
			Justification: "not-exists is forall-not",
		}, true
	default:
		return Step{}, false
	}
}

// inequalityToNonneg rewrites a ◁ b as a − b ◁ 0 (spec.md §4.11), flipping
// the difference for Lt/Lte so the subgoal is always phrased "... ≥/> 0".
func inequalityToNonneg(goal expr.Expr) (Step, bool) {
	b, ok := goal.(*expr.Binary)
	if !ok {
		return Step{}, false
	}
	var subgoal expr.Expr
	switch b.Tag() {
	case expr.TagGt:
		subgoal = expr.Gt(expr.Sub(b.X, b.Y), expr.Int(0))
	case expr.TagGte:
		subgoal = expr.Gte(expr.Sub(b.X, b.Y), expr.Int(0))
	case expr.TagLt:
		subgoal = expr.Gt(expr.Sub(b.Y, b.X), expr.Int(0))
	case expr.TagLte:
		subgoal = expr.Gte(expr.Sub(b.Y, b.X), expr.Int(0))
	default:
		return Step{}, false
	}
	return Step{
		Strategy:      InequalityToNonneg,
		Subgoals:      []expr.Expr{subgoal},
		Justification: "an inequality a <> b holds iff a - b satisfies the same relation against 0",
	}, true
}

// equivalentForm proposes goal's canonical form as an algebraically
// equivalent reformulation (spec.md §4.11: "produces algebraically
// equivalent reformulations (e.g. move all terms to one side)"), when
// that form actually differs from goal.
func equivalentForm(goal expr.Expr) (Step, bool) {
	if eq, ok := goal.(*expr.Equation); ok {
		moved := expr.NewEquation(expr.Sub(eq.LHS, eq.RHS), expr.Int(0))
		return Step{
			Strategy:      EquivalentForm,
			Subgoals:      []expr.Expr{moved},
			Justification: "move all terms to one side of the equation",
		}, true
	}
	canonical := canon.Canon(goal)
	if canonical.Equal(goal) {
		return Step{}, false
	}
	return Step{
		Strategy:      EquivalentForm,
		Subgoals:      []expr.Expr{canonical},
		Justification: "canonicalise to an algebraically equivalent form",
	}, true
}

// theoremApplications matches goal against a small library of named
// inequality lemmas (spec.md §4.11: "named lemmas (AM-GM, Cauchy-Schwarz,
// square-is-nonnegative)").
func theoremApplications(goal expr.Expr) []Step {
	var steps []Step
	if step, ok := squareIsNonneg(goal); ok {
		steps = append(steps, step)
	}
	if step, ok := amGM(goal); ok {
		steps = append(steps, step)
	}
	if step, ok := cauchySchwarzTwoTerm(goal); ok {
		steps = append(steps, step)
	}
	return steps
}

// squareIsNonneg matches "e^2 >= 0" or "e^2 > 0" against e != 0, needing
// no further subgoals: any even power of a real number is nonnegative.
func squareIsNonneg(goal expr.Expr) (Step, bool) {
	b, ok := goal.(*expr.Binary)
	if !ok || (b.Tag() != expr.TagGte && b.Tag() != expr.TagGt) {
		return Step{}, false
	}
	if !isZero(b.Y) {
		return Step{}, false
	}
	pow, ok := b.X.(*expr.Binary)
	if !ok || pow.Tag() != expr.TagPow {
		return Step{}, false
	}
	c, ok := pow.Y.(*expr.Const)
	if !ok || !c.Value.IsInteger() || c.Value.Num <= 0 || c.Value.Num%2 != 0 {
		return Step{}, false
	}
	var subgoals []expr.Expr
	if b.Tag() == expr.TagGt {
		subgoals = []expr.Expr{expr.Not(expr.NewEquation(pow.X, expr.Int(0)))}
	}
	return Step{
		Strategy:      TheoremApplication,
		Subgoals:      subgoals,
		Justification: "an even power of a real number is never negative",
	}, true
}

// amGM matches the two-term AM-GM shape (a+b)/2 >= sqrt(a*b), proposing
// the nonnegativity of a and b as the only remaining subgoals (the
// inequality itself is the textbook AM-GM theorem, cited rather than
// re-derived).
func amGM(goal expr.Expr) (Step, bool) {
	b, ok := goal.(*expr.Binary)
	if !ok || (b.Tag() != expr.TagGte && b.Tag() != expr.TagGt) {
		return Step{}, false
	}
	div, ok := b.X.(*expr.Binary)
	if !ok || div.Tag() != expr.TagDiv {
		return Step{}, false
	}
	sum, ok := div.X.(*expr.Binary)
	if !ok || sum.Tag() != expr.TagAdd {
		return Step{}, false
	}
	if c, ok := div.Y.(*expr.Const); !ok || !c.Value.Equal(rat.Int(2)) {
		return Step{}, false
	}
	sqrt, ok := b.Y.(*expr.Unary)
	if !ok || sqrt.Tag() != expr.TagSqrt {
		return Step{}, false
	}
	mul, ok := sqrt.X.(*expr.Binary)
	if !ok || mul.Tag() != expr.TagMul {
		return Step{}, false
	}
	if !(sum.X.Equal(mul.X) && sum.Y.Equal(mul.Y)) && !(sum.X.Equal(mul.Y) && sum.Y.Equal(mul.X)) {
		return Step{}, false
	}
	return Step{
		Strategy: TheoremApplication,
		Subgoals: []expr.Expr{
			expr.Gte(sum.X, expr.Int(0)),
			expr.Gte(sum.Y, expr.Int(0)),
		},
		Justification: "the arithmetic-geometric mean inequality holds for nonnegative reals",
	}, true
}

// cauchySchwarzTwoTerm matches the two-term Cauchy-Schwarz shape
// (a1*b1+a2*b2)^2 <= (a1^2+a2^2)*(b1^2+b2^2), proposing no subgoals: the
// inequality holds unconditionally for reals.
func cauchySchwarzTwoTerm(goal expr.Expr) (Step, bool) {
	b, ok := goal.(*expr.Binary)
	if !ok || (b.Tag() != expr.TagLte && b.Tag() != expr.TagLt) {
		return Step{}, false
	}
	lhsPow, ok := b.X.(*expr.Binary)
	if !ok || lhsPow.Tag() != expr.TagPow || !isConstTwo(lhsPow.Y) {
		return Step{}, false
	}
	lhsSum, ok := lhsPow.X.(*expr.Binary)
	if !ok || lhsSum.Tag() != expr.TagAdd {
		return Step{}, false
	}
	a1b1, ok1 := asMul(lhsSum.X)
	a2b2, ok2 := asMul(lhsSum.Y)
	if !ok1 || !ok2 {
		return Step{}, false
	}
	rhsMul, ok := b.Y.(*expr.Binary)
	if !ok || rhsMul.Tag() != expr.TagMul {
		return Step{}, false
	}
	sqSum1, ok1 := asSumOfSquares(rhsMul.X)
	sqSum2, ok2 := asSumOfSquares(rhsMul.Y)
	if !ok1 || !ok2 {
		return Step{}, false
	}
	matches := (a1b1[0].Equal(sqSum1[0]) && a1b1[1].Equal(sqSum2[0]) && a2b2[0].Equal(sqSum1[1]) && a2b2[1].Equal(sqSum2[1]))
	if !matches {
		return Step{}, false
	}
	return Step{
		Strategy:      TheoremApplication,
		Subgoals:      nil,
		Justification: "the Cauchy-Schwarz inequality holds unconditionally for real vectors",
	}, true
}

func asMul(e expr.Expr) ([2]expr.Expr, bool) {
	b, ok := e.(*expr.Binary)
	if !ok || b.Tag() != expr.TagMul {
		return [2]expr.Expr{}, false
	}
	return [2]expr.Expr{b.X, b.Y}, true
}

func asSumOfSquares(e expr.Expr) ([2]expr.Expr, bool) {
	b, ok := e.(*expr.Binary)
	if !ok || b.Tag() != expr.TagAdd {
		return [2]expr.Expr{}, false
	}
	x, ok1 := asSquareBase(b.X)
	y, ok2 := asSquareBase(b.Y)
	if !ok1 || !ok2 {
		return [2]expr.Expr{}, false
	}
	return [2]expr.Expr{x, y}, true
}

func asSquareBase(e expr.Expr) (expr.Expr, bool) {
	b, ok := e.(*expr.Binary)
	if !ok || b.Tag() != expr.TagPow || !isConstTwo(b.Y) {
		return nil, false
	}
	return b.X, true
}

func isConstTwo(e expr.Expr) bool {
	c, ok := e.(*expr.Const)
	return ok && c.Value.Equal(rat.Int(2))
}

// substitutionWitness proposes a trial witness for an existential goal
// (spec.md §4.11: "suggests a witness for an existential... value").
// Zero is always a syntactically valid witness to try first; a caller
// that needs a different witness applies its own substitution and asks
// the verifier to check it independently.
func substitutionWitness(goal expr.Expr) (Step, bool) {
	ex, ok := goal.(*expr.Exists)
	if !ok {
		return Step{}, false
	}
	witness := expr.Int(0)
	subgoal := expr.Substitute(ex.Body, ex.Var, witness)
	return Step{
		Strategy:      SubstitutionWitness,
		Subgoals:      []expr.Expr{subgoal},
		Justification: "try witness 0 for the existential",
	}, true
}

func isZero(e expr.Expr) bool {
	c, ok := e.(*expr.Const)
	return ok && c.Value.IsZero()
}

