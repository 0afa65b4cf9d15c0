// Package verifier re-checks a rule application (or a candidate equation
// solution) before the rest of the system trusts it, rather than trusting
// whatever a rule's Apply produced (spec.md §4.7) — the same discipline
// the constraint layer uses when it re-validates a propagation
// result instead of assuming the propagator was correct.
package verifier

import (
	"github.com/gitrdm/lemma/internal/canon"
	"github.com/gitrdm/lemma/internal/eval"
	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/poly"
	"github.com/gitrdm/lemma/internal/rule"
)

// Status discriminates a verification Result's three possible outcomes
// (spec.md §4.7: "{Valid{confidence}, Invalid{reason}, Unknown{reason}}").
type Status int

const (
	StatusValid Status = iota
	StatusInvalid
	StatusUnknown
)

// Result is the sum-type outcome of verification: Confidence is only
// meaningful when Status is StatusValid; Reason is only meaningful when
// Status is StatusInvalid or StatusUnknown.
type Result struct {
	Status     Status
	Confidence float64
	Reason     string
}

func valid(confidence float64) Result { return Result{Status: StatusValid, Confidence: confidence} }
func invalid(reason string) Result    { return Result{Status: StatusInvalid, Reason: reason} }
func unknown(reason string) Result    { return Result{Status: StatusUnknown, Reason: reason} }

// IsValid reports whether r succeeded.
func (r Result) IsValid() bool { return r.Status == StatusValid }

const (
	numericalSamples   = 20
	numericalTolerance = 1e-6
	numericalSeed      = 42
)

// VerifyStep re-derives a rule application from scratch rather than
// trusting the (before, after) pair handed to it (spec.md §4.7):
//  1. re-check the rule's predicate against before;
//  2. re-run the rule's apply and require after to be among the results
//     it actually produces, by structural, then canonical, then
//     numerical equality;
//  3. if either side contains a derivative or integral node, cap
//     confidence at 0.95 (symbolic differentiation/integration has no
//     ground truth in this evaluator, spec.md §4.3);
//  4. otherwise score 1.0 for an exact (structural/canonical) match or
//     0.999 for a numerical-only match.
func VerifyStep(before, after expr.Expr, r *rule.Rule, ctx rule.Context) Result {
	if !r.CanApply(before, ctx) {
		return invalid("rule predicate rejected the input expression")
	}
	apps := r.Fire(before, ctx)
	if len(apps) == 0 {
		return invalid("rule declined to fire on re-check")
	}

	exact := false
	numerical := false
	confidentlyUnequal := 0
	for _, app := range apps {
		switch matchEquality(app.Result, after) {
		case matchExact:
			exact = true
		case matchNumerical:
			numerical = true
		case matchNotEqual:
			confidentlyUnequal++
		}
	}
	if !exact && !numerical {
		if confidentlyUnequal == len(apps) {
			return invalid("after is not among the rule's possible results")
		}
		return unknown("could not confirm after against any of the rule's possible results")
	}

	if containsUnevaluableNode(before) || containsUnevaluableNode(after) {
		return valid(0.95)
	}
	if exact {
		return valid(1.0)
	}
	return valid(0.999)
}

// VerifySolution substitutes candidate for v throughout equation,
// canonicalises both sides, and checks equality by the same ladder
// VerifyStep uses (spec.md §4.7). Substitution respects binder shadowing
// through expr.Substitute: a binder rebinding v leaves its body untouched.
func VerifySolution(equation *expr.Equation, v expr.SymbolID, candidate expr.Expr) Result {
	lhs := expr.Substitute(equation.LHS, v, candidate)
	rhs := expr.Substitute(equation.RHS, v, candidate)

	switch matchEquality(lhs, rhs) {
	case matchExact:
		return valid(1.0)
	case matchNumerical:
		return valid(0.999)
	case matchNotEqual:
		return invalid("substituted sides are not equal")
	default:
		return unknown("could not decide equality of the substituted sides")
	}
}

type matchKind int

const (
	matchUndecided matchKind = iota
	matchExact
	matchNumerical
	matchNotEqual
)

// matchEquality runs the structural -> canonical -> numerical ladder
// spec.md §4.7 describes. matchNotEqual is reported only when the
// polynomial normal form decisively proves inequality; a failed numerical
// sampling pass (which cannot distinguish "proven unequal" from "outside
// the evaluator's reach") reports matchUndecided instead.
func matchEquality(a, b expr.Expr) matchKind {
	if a.Equal(b) {
		return matchExact
	}
	if canon.Canon(a).Equal(canon.Canon(b)) {
		return matchExact
	}
	if eq, decided := poly.AlgebraicallyEqual(a, b); decided {
		if eq {
			return matchExact
		}
		return matchNotEqual
	}
	if eval.ApproxEqual(a, b, numericalSamples, numericalTolerance, numericalSeed) {
		return matchNumerical
	}
	return matchUndecided
}

func containsUnevaluableNode(e expr.Expr) bool {
	if e.Tag() == expr.TagDerivative || e.Tag() == expr.TagIntegral {
		return true
	}
	for _, c := range e.Children() {
		if containsUnevaluableNode(c) {
			return true
		}
	}
	return false
}
