// Package guardrail profiles an expression's domains and structural
// features, then filters a candidate rule set down to the rules that
// could plausibly apply (spec.md §4.6) — a cheap structural pre-check
// before the more expensive predicate/apply functions run, the same
// two-phase "profile, then filter" shape used to gate a
// constraint propagator before it fires.
package guardrail

import (
	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/rule"
)

// ProblemProfile summarizes an expression's domain indicators and scale,
// computed once by Analyze and then reused across every rule's filter
// check within the same search step (spec.md §4.6).
type ProblemProfile struct {
	HasTrig             bool
	HasDifferentiation  bool
	HasIntegration      bool
	HasNumberTheory     bool
	HasCombinatorics    bool
	HasInequality       bool
	HasPolynomialPower  bool
	HasEquation         bool
	HasLogic            bool

	Complexity int
	MaxDepth   int

	Domains []rule.Domain
}

// Analyze walks e by recursive descent, collecting the boolean domain
// indicators and scalar metrics spec.md §4.6 names, then derives an
// ordered domain list from the flags. Algebra is always present when no
// other domain fired.
func Analyze(e expr.Expr) ProblemProfile {
	var p ProblemProfile
	scan(e, &p)
	p.Complexity = expr.Complexity(e)
	p.MaxDepth = expr.Depth(e)
	p.Domains = deriveDomains(p)
	return p
}

func scan(e expr.Expr, p *ProblemProfile) {
	switch e.Tag() {
	case expr.TagSin, expr.TagCos, expr.TagTan, expr.TagArcsin, expr.TagArccos, expr.TagArctan:
		p.HasTrig = true
	case expr.TagDerivative:
		p.HasDifferentiation = true
	case expr.TagIntegral:
		p.HasIntegration = true
	case expr.TagGCD, expr.TagLCM, expr.TagMod, expr.TagFactorial:
		p.HasNumberTheory = true
	case expr.TagBinomial:
		p.HasCombinatorics = true
	case expr.TagGt, expr.TagGte, expr.TagLt, expr.TagLte:
		p.HasInequality = true
	case expr.TagPow:
		p.HasPolynomialPower = true
	case expr.TagEquation:
		p.HasEquation = true
	case expr.TagAnd, expr.TagOr, expr.TagImplies, expr.TagNot, expr.TagForAll, expr.TagExists:
		p.HasLogic = true
	}
	for _, c := range e.Children() {
		scan(c, p)
	}
}

func deriveDomains(p ProblemProfile) []rule.Domain {
	var domains []rule.Domain
	if p.HasTrig {
		domains = append(domains, rule.Trigonometry)
	}
	if p.HasDifferentiation {
		domains = append(domains, rule.CalculusDiff)
	}
	if p.HasIntegration {
		domains = append(domains, rule.CalculusInt)
	}
	if p.HasNumberTheory {
		domains = append(domains, rule.NumberTheoryDomain)
	}
	if p.HasCombinatorics {
		domains = append(domains, rule.Combinatorics)
	}
	if p.HasInequality {
		domains = append(domains, rule.Inequalities)
	}
	if p.HasEquation {
		domains = append(domains, rule.Equations)
	}
	if len(domains) == 0 {
		domains = append(domains, rule.Algebra)
	}
	return domains
}

func hasDomain(domains []rule.Domain, target rule.Domain) bool {
	for _, d := range domains {
		if d == target {
			return true
		}
	}
	return false
}

// IsRuleApplicable reports whether r could plausibly fire against e under
// profile: true iff r declares no domains (universal), or declares Algebra
// (universal within algebraic terms), or declares a domain present in
// profile — and every feature r requires is structurally detectable in e
// (spec.md §4.6).
func IsRuleApplicable(r *rule.Rule, profile ProblemProfile, e expr.Expr, ctx rule.Context) bool {
	if len(r.Domains) > 0 {
		ok := false
		for _, d := range r.Domains {
			if d == rule.Algebra || hasDomain(profile.Domains, d) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	for _, f := range r.RequiredFeatures {
		if !hasFeature(e, profile, f) {
			return false
		}
	}
	return true
}

// FilterRules returns the subset of rules that IsRuleApplicable accepts.
// The guardrail never changes rule semantics, only pre-filters the
// candidate set (spec.md §4.6): it does not itself call rule.CanApply.
func FilterRules(rules []*rule.Rule, profile ProblemProfile, e expr.Expr, ctx rule.Context) []*rule.Rule {
	var out []*rule.Rule
	for _, r := range rules {
		if IsRuleApplicable(r, profile, e, ctx) {
			out = append(out, r)
		}
	}
	return out
}

// hasFeature performs the lightweight structural check spec.md §4.6
// requires per required feature: most features reuse the profile's
// already-computed flags; the remainder need their own small recursive
// scan since Analyze does not track them globally.
func hasFeature(e expr.Expr, profile ProblemProfile, f rule.Feature) bool {
	switch f {
	case rule.FeatureIntegral:
		return profile.HasIntegration
	case rule.FeatureDerivative:
		return profile.HasDifferentiation
	case rule.FeatureTrig:
		return profile.HasTrig
	case rule.FeatureEquation:
		return profile.HasEquation
	case rule.FeatureInequality:
		return profile.HasInequality
	case rule.FeatureCombinatorics:
		return profile.HasCombinatorics
	case rule.FeaturePolynomial:
		return profile.HasPolynomialPower || containsTag(e, expr.TagAdd, expr.TagSum, expr.TagMul, expr.TagProduct)
	case rule.FeatureExponential:
		return containsTag(e, expr.TagExp)
	case rule.FeatureLogarithm:
		return containsTag(e, expr.TagLn)
	case rule.FeatureProduct:
		return containsTag(e, expr.TagMul, expr.TagProduct)
	case rule.FeatureFractionalPower:
		return containsFractionalPower(e)
	case rule.FeatureLimit, rule.FeatureVector, rule.FeaturePartialDerivative, rule.FeatureConicSection:
		// No node variant in this expression language models these yet
		// (spec.md §3's Non-goals exclude limits, vectors, and partial
		// derivatives); a rule declaring one of these features can never
		// structurally match and is always filtered out.
		return false
	case rule.FeatureComposite:
		return expr.Depth(e) > 1
	default:
		return false
	}
}

func containsTag(e expr.Expr, tags ...expr.Tag) bool {
	for _, t := range tags {
		if e.Tag() == t {
			return true
		}
	}
	for _, c := range e.Children() {
		if containsTag(c, tags...) {
			return true
		}
	}
	return false
}

func containsFractionalPower(e expr.Expr) bool {
	if b, ok := e.(*expr.Binary); ok && b.Tag() == expr.TagPow {
		if c, ok := b.Y.(*expr.Const); ok && !c.Value.IsInteger() {
			return true
		}
	}
	for _, c := range e.Children() {
		if containsFractionalPower(c) {
			return true
		}
	}
	return false
}
