package guardrail

import (
	"testing"

	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/rule"
	"github.com/gitrdm/lemma/internal/symtab"
)

func TestAnalyzeDefaultsToAlgebra(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	v := expr.NewVar(x)

	p := Analyze(expr.Add(v, expr.Int(1)))
	if len(p.Domains) != 1 || p.Domains[0] != rule.Algebra {
		t.Errorf("Domains = %v, want [Algebra]", p.Domains)
	}
}

func TestAnalyzeDetectsTrig(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	v := expr.NewVar(x)

	p := Analyze(expr.Sin(v))
	if !p.HasTrig {
		t.Error("HasTrig = false, want true")
	}
	found := false
	for _, d := range p.Domains {
		if d == rule.Trigonometry {
			found = true
		}
	}
	if !found {
		t.Errorf("Domains = %v, want Trigonometry present", p.Domains)
	}
}

func TestAnalyzeDetectsDerivativeAndEquation(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	v := expr.NewVar(x)

	p := Analyze(expr.NewEquation(expr.NewDerivative(v, x), expr.Int(1)))
	if !p.HasDifferentiation || !p.HasEquation {
		t.Errorf("profile = %+v, want HasDifferentiation and HasEquation", p)
	}
}

func TestIsRuleApplicableUniversalByDefault(t *testing.T) {
	r := &rule.Rule{ID: 1}
	p := Analyze(expr.Int(1))
	if !IsRuleApplicable(r, p, expr.Int(1), rule.Context{}) {
		t.Error("a rule with no declared domains should be universally applicable")
	}
}

func TestIsRuleApplicableAlgebraDomainIsUniversal(t *testing.T) {
	r := &rule.Rule{ID: 1, Domains: []rule.Domain{rule.Algebra}}
	tab := symtab.New()
	x := tab.Intern("x")
	v := expr.NewVar(x)
	p := Analyze(expr.Sin(v))

	if !IsRuleApplicable(r, p, expr.Sin(v), rule.Context{}) {
		t.Error("a rule declaring only Algebra should be applicable even in a trig profile")
	}
}

func TestIsRuleApplicableRejectsWrongDomain(t *testing.T) {
	r := &rule.Rule{ID: 1, Domains: []rule.Domain{rule.Trigonometry}}
	p := Analyze(expr.Add(expr.Int(1), expr.Int(2)))
	if IsRuleApplicable(r, p, expr.Add(expr.Int(1), expr.Int(2)), rule.Context{}) {
		t.Error("a trig-only rule should not apply to a purely arithmetic profile")
	}
}

func TestIsRuleApplicableRejectsMissingFeature(t *testing.T) {
	r := &rule.Rule{ID: 1, RequiredFeatures: []rule.Feature{rule.FeatureLogarithm}}
	e := expr.Add(expr.Int(1), expr.Int(2))
	p := Analyze(e)
	if IsRuleApplicable(r, p, e, rule.Context{}) {
		t.Error("a rule requiring FeatureLogarithm should not apply to a log-free expression")
	}
}

func TestFilterRulesNeverChangesSemanticsOnlyMembership(t *testing.T) {
	universal := &rule.Rule{ID: 1}
	trigOnly := &rule.Rule{ID: 2, Domains: []rule.Domain{rule.Trigonometry}}
	e := expr.Add(expr.Int(1), expr.Int(2))
	p := Analyze(e)

	got := FilterRules([]*rule.Rule{universal, trigOnly}, p, e, rule.Context{})
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("FilterRules = %v, want just the universal rule", got)
	}
}

func TestUnsupportedFeaturesAlwaysFilteredOut(t *testing.T) {
	r := &rule.Rule{ID: 1, RequiredFeatures: []rule.Feature{rule.FeatureVector}}
	e := expr.Add(expr.Int(1), expr.Int(2))
	p := Analyze(e)
	if IsRuleApplicable(r, p, e, rule.Context{}) {
		t.Error("FeatureVector has no structural detector and should never match")
	}
}
