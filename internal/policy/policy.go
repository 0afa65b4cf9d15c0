// Package policy defines the pluggable value/prior contract MCTS consumes
// (spec.md §4.8), mirroring LabelingStrategy/SearchStrategy
// pattern of naming a pluggable heuristic contract the solver core treats
// as a black box (pkg/minikanren/strategy.go). Two fallback
// implementations are provided; a transformer-backed implementation
// outside this module's scope would satisfy the same interface.
package policy

import (
	"math"

	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/rule"
)

// Substitution is one candidate label/confidence pair PredictSubstitutions
// offers to bias backward search (spec.md §4.8).
type Substitution struct {
	Label      string
	Confidence float64
}

// Network is the black-box contract MCTS consumes. Implementations must
// be deterministic for a given state (spec.md §4.8) and must degrade
// gracefully — never panic or error — since the core treats a failing
// policy the same as an absent one.
type Network interface {
	// Priors returns a dense vector of length ruleCount, entries in
	// [0,1], summing to at most 1 (softmax-shaped output). Index i
	// corresponds to the i-th rule in the RuleSet's registration order
	// (internal/rule.Set.All()), not the rule's own ID, since rule IDs
	// need not be contiguous from zero.
	Priors(state expr.Expr, ruleCount int) []float64

	// Value returns a scalar in [-1,1] (tanh-shaped), interpreted as the
	// estimated probability that state is on a winning path.
	Value(state expr.Expr) float64

	// PredictSubstitutions proposes candidate lemma/substitution labels
	// for problemText, most confident first, at most topK entries. Not
	// required for simplification; used by upper layers biasing
	// backward search.
	PredictSubstitutions(problemText string, topK int) []Substitution

	// Name identifies the implementation for logging.
	Name() string
}

// UniformPolicy is the degrade-gracefully fallback: every rule gets an
// equal share of the prior mass, and every state has neutral value
// (spec.md §4.8: "Implementations may be uniform-prior fallbacks").
type UniformPolicy struct{}

// NewUniformPolicy returns the uniform-prior fallback policy.
func NewUniformPolicy() *UniformPolicy { return &UniformPolicy{} }

func (p *UniformPolicy) Priors(state expr.Expr, ruleCount int) []float64 {
	if ruleCount <= 0 {
		return nil
	}
	share := 1.0 / float64(ruleCount)
	out := make([]float64, ruleCount)
	for i := range out {
		out[i] = share
	}
	return out
}

func (p *UniformPolicy) Value(state expr.Expr) float64 { return 0 }

func (p *UniformPolicy) PredictSubstitutions(problemText string, topK int) []Substitution {
	return nil
}

func (p *UniformPolicy) Name() string { return "uniform" }

// HeuristicPolicy is a hand-written heuristic fallback (spec.md §4.8):
// cheaper, simplification/factoring-leaning rules get more prior mass,
// and a state's value improves as its complexity falls — a cheap proxy
// for "closer to a fully reduced goal" that needs no trained model.
type HeuristicPolicy struct {
	Rules *rule.Set
}

// NewHeuristicPolicy returns a heuristic policy scored against rules.
func NewHeuristicPolicy(rules *rule.Set) *HeuristicPolicy {
	return &HeuristicPolicy{Rules: rules}
}

// headroom keeps the prior vector's sum strictly below 1, leaving room
// for the PUCT formula's exploration term to matter even when every rule
// looks equally promising.
const headroom = 0.9

func (p *HeuristicPolicy) Priors(state expr.Expr, ruleCount int) []float64 {
	if ruleCount <= 0 || p.Rules == nil {
		return nil
	}
	all := p.Rules.All()
	weights := make([]float64, ruleCount)
	total := 0.0
	for i := 0; i < ruleCount && i < len(all); i++ {
		r := all[i]
		w := 1.0 / (float64(r.Cost) + 1.0)
		if r.Category == rule.Simplification || r.Category == rule.Factoring {
			w += 0.5
		}
		weights[i] = w
		total += w
	}
	if total == 0 {
		return p.uniformFallback(ruleCount)
	}
	for i := range weights {
		weights[i] = weights[i] / total * headroom
	}
	return weights
}

func (p *HeuristicPolicy) uniformFallback(ruleCount int) []float64 {
	return (&UniformPolicy{}).Priors(nil, ruleCount)
}

// valueComplexityScale sets how many complexity points map to roughly one
// unit of tanh saturation; chosen so single-digit-complexity terms (the
// common case after a few simplification steps) land well inside (-1,1)
// rather than pinned at the extremes.
const valueComplexityScale = 10.0

func (p *HeuristicPolicy) Value(state expr.Expr) float64 {
	c := float64(expr.Complexity(state))
	return math.Tanh((valueComplexityScale - c) / valueComplexityScale)
}

func (p *HeuristicPolicy) PredictSubstitutions(problemText string, topK int) []Substitution {
	return nil
}

func (p *HeuristicPolicy) Name() string { return "heuristic" }
