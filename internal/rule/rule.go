// Package rule defines the guarded-rewrite contract consumed by the
// simplify loop, MCTS, and proof orchestrator (spec.md §4.5): a Rule is an
// inert record plus two function pointers, registered once into an
// append-only Set keyed by caller-assigned id.
package rule

import (
	"fmt"

	"github.com/gitrdm/lemma/internal/expr"
)

// ID is a rule's caller-assigned identifier, unique within a Set. IDs are
// not dense: a policy network's prior vector is indexed by a rule's
// position in Set.All(), not by its ID.
type ID uint32

// Category classifies a rule for strategy selection (spec.md §4.5).
type Category int

const (
	Simplification Category = iota
	Factoring
	Expansion
	AlgebraicSolving
	EquationSolving
	TrigIdentity
	Derivative
	Integral
	Limit
	Inequality
	Complex
	LogExp
	Sequence
	NumberTheory
)

// Domain is a mathematical area used by the guardrail to gate rule
// applicability (spec.md §4.6). An empty Domains slice on a Rule means
// universal.
type Domain int

const (
	Algebra Domain = iota
	CalculusDiff
	CalculusInt
	Trigonometry
	Vector
	NumberTheoryDomain
	Combinatorics
	Inequalities
	Equations
	Geometry
)

// Feature names a structural property of an expression the guardrail checks
// for before letting a rule fire (spec.md §4.5, §4.6).
type Feature int

const (
	FeatureIntegral Feature = iota
	FeatureDerivative
	FeatureTrig
	FeatureExponential
	FeatureLogarithm
	FeatureProduct
	FeatureComposite
	FeatureFractionalPower
	FeaturePolynomial
	FeatureEquation
	FeatureInequality
	FeatureLimit
	FeatureVector
	FeaturePartialDerivative
	FeatureCombinatorics
	FeatureConicSection
)

// Context carries the optional target variable (for equation-solving rules)
// and opaque metadata through a rule's predicate and apply bodies
// (spec.md §4.5: "the core treats it as opaque and passes it through").
type Context struct {
	TargetVar expr.SymbolID
	HasTarget bool
	Metadata  map[string]string
}

// WithTarget returns a Context carrying the given target variable.
func WithTarget(v expr.SymbolID) Context {
	return Context{TargetVar: v, HasTarget: true}
}

// Application is one possible rewrite a rule's Apply produced.
type Application struct {
	Result        expr.Expr
	Justification string
}

// Rule is a guarded rewrite plus metadata (spec.md §4.5). Applicable and
// Apply must be pure, side-effect-free functions: the MCTS hot loop calls
// them through these plain function values, never through a heavier
// dispatch mechanism (spec.md §9).
type Rule struct {
	ID               ID
	Name             string
	Category         Category
	Description      string
	Domains          []Domain
	RequiredFeatures []Feature
	Applicable       func(e expr.Expr, ctx Context) bool
	Apply            func(e expr.Expr, ctx Context) []Application
	Reversible       bool
	Cost             uint32
}

// CanApply reports whether r's predicate accepts e under ctx.
func (r *Rule) CanApply(e expr.Expr, ctx Context) bool {
	return r.Applicable(e, ctx)
}

// Fire runs r's apply body. An empty result means the rule declined to
// fire; this is never treated as an error (spec.md §4.5).
func (r *Rule) Fire(e expr.Expr, ctx Context) []Application {
	return r.Apply(e, ctx)
}

// Set is an append-only registry of rules indexed by id and category
// (spec.md §4.5: "append-only registry indexed by id, name, and category").
type Set struct {
	rules      []*Rule
	byID       map[ID]*Rule
	byCategory map[Category][]*Rule
}

// NewSet returns an empty registry.
func NewSet() *Set {
	return &Set{byID: make(map[ID]*Rule), byCategory: make(map[Category][]*Rule)}
}

// Add registers rule, failing if its id is already taken.
func (s *Set) Add(r *Rule) error {
	if _, exists := s.byID[r.ID]; exists {
		return fmt.Errorf("rule: id %d already registered", r.ID)
	}
	s.rules = append(s.rules, r)
	s.byID[r.ID] = r
	s.byCategory[r.Category] = append(s.byCategory[r.Category], r)
	return nil
}

// Get looks up a rule by id.
func (s *Set) Get(id ID) (*Rule, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// All returns every registered rule, in registration order.
func (s *Set) All() []*Rule {
	return s.rules
}

// ByCategory returns every rule registered under category.
func (s *Set) ByCategory(category Category) []*Rule {
	return s.byCategory[category]
}

// Applicable returns every rule whose predicate accepts e under ctx.
func (s *Set) Applicable(e expr.Expr, ctx Context) []*Rule {
	var out []*Rule
	for _, r := range s.rules {
		if r.CanApply(e, ctx) {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of registered rules.
func (s *Set) Len() int { return len(s.rules) }
