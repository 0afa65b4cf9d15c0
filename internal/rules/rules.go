// Package rules is the concrete standard rule library: arithmetic
// canonicalization, trigonometric identities, a differentiation table,
// linear equation solving, and factoring/expansion, registered against
// internal/rule.Set (spec.md §4.5, §4.6, worked examples §8).
//
// The retrieval pack's original_source/crates/mm-rules/src tree carries
// rule.go's generic framework but not the concrete per-domain rule files
// it references (algebra.rs, trig.rs, equations.rs, calculus.rs, and so
// on) — they were not part of the retrieved slice. This package is
// authored directly from spec.md's rule taxonomy (§4.5) and its worked
// examples (§8) rather than transliterated from an unavailable source.
package rules

import "github.com/gitrdm/lemma/internal/rule"

// Standard returns a rule.Set populated with every rule this package
// defines (grounded on rule.rs's own standard_rules() aggregator
// function, which folds each domain module's rule list into one set).
func Standard() *rule.Set {
	s := rule.NewSet()
	groups := [][]*rule.Rule{
		ArithmeticRules(),
		TrigRules(),
		DerivativeRules(),
		EquationRules(),
		FactoringRules(),
	}
	for _, g := range groups {
		for _, r := range g {
			if err := s.Add(r); err != nil {
				panic(err)
			}
		}
	}
	return s
}
