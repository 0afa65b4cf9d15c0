// Package ineqchain implements transitive chaining over a store of known
// inequality facts (spec.md §4.16): from a ◁₁ b and b ◁₂ c, conclude
// a ◁ c with strict = strict₁ ∨ strict₂. Grounded on
// original_source/crates/mm-rules/src/inequality_chain.rs's
// InequalityFact/InequalityChain, and on fd_ineq.go's typed
// inequality-constraint enum for the idea of normalizing Lt/Lte into
// their Gt/Gte mirror before reasoning about them.
package ineqchain

import (
	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/poly"
)

// Source annotates how a Fact entered the chain — an axiom supplied by
// the caller, or a fact derived by chaining two others. It affects only
// proof-justification text, never the chaining or implication logic
// (spec.md §4.16 mandates the bare `strict: bool` field; Source is a
// supplement carried alongside it).
type Source int

const (
	SourceAxiom Source = iota
	SourceDerived
)

// Fact is a single known inequality lhs ◁ rhs, strict when ◁ is > rather
// than ≥ (spec.md §4.16: "{lhs, rhs, strict: bool}").
type Fact struct {
	LHS, RHS expr.Expr
	Strict   bool
	Source   Source
}

// Gt builds an axiom fact lhs > rhs.
func Gt(lhs, rhs expr.Expr) Fact { return Fact{LHS: lhs, RHS: rhs, Strict: true, Source: SourceAxiom} }

// Gte builds an axiom fact lhs >= rhs.
func Gte(lhs, rhs expr.Expr) Fact { return Fact{LHS: lhs, RHS: rhs, Strict: false, Source: SourceAxiom} }

// Chain is a growing collection of known facts available for chaining.
type Chain struct {
	Facts []Fact
}

// New returns an empty Chain.
func New() *Chain { return &Chain{} }

// Add records a fact.
func (c *Chain) Add(f Fact) { c.Facts = append(c.Facts, f) }

// AddGt records lhs > rhs.
func (c *Chain) AddGt(lhs, rhs expr.Expr) { c.Add(Gt(lhs, rhs)) }

// AddGte records lhs >= rhs.
func (c *Chain) AddGte(lhs, rhs expr.Expr) { c.Add(Gte(lhs, rhs)) }

// algebraicEqual compares two sides using the §4.4 decision procedure
// when it is decided for this pair, falling back to structural equality
// otherwise (spec.md §4.16: "uses §4.4 when available, else structural
// equality").
func algebraicEqual(x, y expr.Expr) bool {
	if equal, decided := poly.AlgebraicallyEqual(x, y); decided {
		return equal
	}
	return x.Equal(y)
}

// chainTwo combines a and b into a derived fact a.LHS ◁ b.RHS when
// a.RHS and b.LHS denote the same value (spec.md §4.16: "from a ◁₁ b
// and b ◁₂ c, conclude a ◁ c with strict = strict₁ ∨ strict₂").
func chainTwo(a, b Fact) (Fact, bool) {
	if !algebraicEqual(a.RHS, b.LHS) {
		return Fact{}, false
	}
	return Fact{LHS: a.LHS, RHS: b.RHS, Strict: a.Strict || b.Strict, Source: SourceDerived}, true
}

// implies reports whether fact is at least as strong as goal: both sides
// match algebraically, and fact is strict whenever goal demands strict.
func implies(fact, goal Fact) bool {
	if !algebraicEqual(fact.LHS, goal.LHS) || !algebraicEqual(fact.RHS, goal.RHS) {
		return false
	}
	if goal.Strict && !fact.Strict {
		return false
	}
	return true
}

// Prove tries to discharge goal from the known facts: a single fact that
// already implies it, a pairwise chain, then a depth-3 triple chain
// (spec.md §4.16: "tries single-fact implication, pairwise chains, and
// triple chains (depth 3)"). It returns the indices of the facts used.
func (c *Chain) Prove(goal Fact) ([]int, bool) {
	for i, f := range c.Facts {
		if implies(f, goal) {
			return []int{i}, true
		}
	}

	for i, f1 := range c.Facts {
		for j, f2 := range c.Facts {
			if i == j {
				continue
			}
			if chained, ok := chainTwo(f1, f2); ok && implies(chained, goal) {
				return []int{i, j}, true
			}
		}
	}

	for i, f1 := range c.Facts {
		for j, f2 := range c.Facts {
			if i == j {
				continue
			}
			chained12, ok := chainTwo(f1, f2)
			if !ok {
				continue
			}
			for k, f3 := range c.Facts {
				if k == i || k == j {
					continue
				}
				if chained123, ok := chainTwo(chained12, f3); ok && implies(chained123, goal) {
					return []int{i, j, k}, true
				}
			}
		}
	}

	return nil, false
}

// ExtractFrom walks a hypothesis expression and records every
// inequality it finds as an axiom fact (spec.md §4.16: "Extraction from
// an expression maps Gt→strict, Gte→non-strict, Lt/Lte→flipped"),
// recursing through conjunctions.
func (c *Chain) ExtractFrom(e expr.Expr) {
	b, ok := e.(*expr.Binary)
	if !ok {
		return
	}
	switch b.Tag() {
	case expr.TagGt:
		c.AddGt(b.X, b.Y)
	case expr.TagGte:
		c.AddGte(b.X, b.Y)
	case expr.TagLt:
		c.AddGt(b.Y, b.X)
	case expr.TagLte:
		c.AddGte(b.Y, b.X)
	case expr.TagAnd:
		c.ExtractFrom(b.X)
		c.ExtractFrom(b.Y)
	}
}

// factFromGoal converts an inequality expression into the Fact it
// asserts, normalizing Lt/Lte to their Gt/Gte mirror.
func factFromGoal(e expr.Expr) (Fact, bool) {
	b, ok := e.(*expr.Binary)
	if !ok {
		return Fact{}, false
	}
	switch b.Tag() {
	case expr.TagGt:
		return Gt(b.X, b.Y), true
	case expr.TagGte:
		return Gte(b.X, b.Y), true
	case expr.TagLt:
		return Gt(b.Y, b.X), true
	case expr.TagLte:
		return Gte(b.Y, b.X), true
	default:
		return Fact{}, false
	}
}

// ProveByChaining extracts facts from hypotheses and tries to chain them
// into goal.
func ProveByChaining(hypotheses []expr.Expr, goal expr.Expr) bool {
	c := New()
	for _, h := range hypotheses {
		c.ExtractFrom(h)
	}
	goalFact, ok := factFromGoal(goal)
	if !ok {
		return false
	}
	_, proved := c.Prove(goalFact)
	return proved
}
