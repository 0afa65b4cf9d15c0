package rules

import (
	"github.com/gitrdm/lemma/internal/canon"
	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/rule"
)

// ArithmeticRules returns the simplification-category rules grounded on
// the canonicaliser itself: a single rule that fires whenever canon.Canon
// would change the term, exposing canonicalization as a selectable move
// for MCTS/simplify rather than a side effect they must invoke separately
// (grounded on original_source/crates/mm-rules/src/rule.rs's own
// const_fold example rule).
func ArithmeticRules() []*rule.Rule {
	return []*rule.Rule{
		{
			ID:          1,
			Name:        "canonicalize",
			Category:    rule.Simplification,
			Description: "reduce a term to its canonical form",
			Applicable: func(e expr.Expr, ctx rule.Context) bool {
				return !canon.Canon(e).Equal(e)
			},
			Apply: func(e expr.Expr, ctx rule.Context) []rule.Application {
				c := canon.Canon(e)
				if c.Equal(e) {
					return nil
				}
				return []rule.Application{{Result: c, Justification: "canonicalize"}}
			},
			Reversible: false,
			Cost:       1,
		},
	}
}
