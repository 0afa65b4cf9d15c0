// Package mcts implements neural-guided Monte Carlo tree search over
// rewrite rules (spec.md §4.9): each edge from a state is a rule
// application verified before it is trusted, each simulation follows the
// PUCT selection rule, and a sequential or deep-parallel driver can run
// the simulation budget. Grounded on pkg/minikanren/optimize.go's
// functional-options, context-aware, incumbent-tracking search shape and
// pkg/minikanren/optimize_parallel.go's worker-pool pattern for the
// parallel driver.
package mcts

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/gitrdm/lemma/internal/canon"
	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/guardrail"
	"github.com/gitrdm/lemma/internal/policy"
	"github.com/gitrdm/lemma/internal/rule"
	"github.com/gitrdm/lemma/internal/verifier"
)

// Config holds search parameters (spec.md §4.9 defaults: simulations 100,
// exploration weight √2, max depth, temperature).
type Config struct {
	Simulations       int
	ExplorationWeight float64
	MaxDepth          int
	Temperature       float64
	// Workers selects the driver: 1 (the default) runs sequential
	// single-threaded simulations (spec.md §4.9: "sequential
	// single-threaded execution is mandated unless the parallel variant
	// is used"); >1 runs the deep-parallel variant.
	Workers int
}

func defaultConfig() Config {
	return Config{Simulations: 100, ExplorationWeight: math.Sqrt2, MaxDepth: 20, Temperature: 1.0, Workers: 1}
}

// Option configures a Search (functional-options style, grounded on
// pkg/minikanren/optimize.go's OptimizeOption).
type Option func(*Config)

func WithSimulations(n int) Option            { return func(c *Config) { c.Simulations = n } }
func WithExplorationWeight(w float64) Option  { return func(c *Config) { c.ExplorationWeight = w } }
func WithMaxDepth(n int) Option               { return func(c *Config) { c.MaxDepth = n } }
func WithTemperature(t float64) Option        { return func(c *Config) { c.Temperature = t } }
func WithWorkers(n int) Option                { return func(c *Config) { c.Workers = n } }

// GoalFunc reports whether state satisfies the search's target predicate.
type GoalFunc func(state expr.Expr) bool

// Step is one edge of an extracted solution path (spec.md §4.9:
// "Step{before, after, rule_id, rule_name, justification}").
type Step struct {
	Before        expr.Expr
	After         expr.Expr
	RuleID        rule.ID
	RuleName      string
	Justification string
}

// Result is the outcome of a search run.
type Result struct {
	Steps    []Step
	Verified bool
}

// Search drives PUCT simulations over a rule set toward a goal, guarded
// by the domain guardrail and the verifier (spec.md §4.9).
type Search struct {
	Rules  *rule.Set
	Policy policy.Network
	Goal   GoalFunc
	Config Config

	// Context is passed through to every rule's predicate and apply body
	// unchanged (rule.Context's contract), letting a caller bias the
	// search toward a target variable (equation solving) or carry other
	// rule metadata without the core needing to know what it means.
	Context rule.Context
}

// New returns a Search with spec.md §4.9's defaults, overridden by opts.
func New(rules *rule.Set, pol policy.Network, goal GoalFunc, opts ...Option) *Search {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Search{Rules: rules, Policy: pol, Goal: goal, Config: cfg}
}

// Run drives the configured simulation budget from start and extracts a
// solution path (spec.md §4.9).
func (s *Search) Run(ctx context.Context, start expr.Expr) Result {
	root := newNode(canon.Canon(start), 0, "", "", false, 1.0)
	if s.Config.Workers > 1 {
		s.driveParallel(ctx, root)
	} else {
		s.driveSequential(ctx, root)
	}
	steps, verified := s.extractPath(root)
	return Result{Steps: steps, Verified: verified}
}

func (s *Search) driveSequential(ctx context.Context, root *Node) {
	for i := 0; i < s.Config.Simulations; i++ {
		if ctx.Err() != nil {
			return
		}
		s.runOneSimulation(ctx, root)
	}
}

// driveParallel splits the simulation budget across Workers goroutines
// (spec.md §4.9: "the deep parallel variant splits simulations across
// worker tasks"). A worker claims no new simulation once the budget or
// context is exhausted. A simulation already in flight when the context is
// cancelled stops descending at its current node (simulate checks
// ctx.Err() at every level), returns that node's policy value, and backs it
// up along the path it took, so no partial tree mutation is left
// inconsistent.
func (s *Search) driveParallel(ctx context.Context, root *Node) {
	var nextIndex int
	var mu sync.Mutex
	claim := func() bool {
		mu.Lock()
		defer mu.Unlock()
		if nextIndex >= s.Config.Simulations {
			return false
		}
		nextIndex++
		return true
	}

	var wg sync.WaitGroup
	workers := s.Config.Workers
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for claim() {
				if ctx.Err() != nil {
					return
				}
				s.runOneSimulation(ctx, root)
			}
		}()
	}
	wg.Wait()
}

func (s *Search) runOneSimulation(ctx context.Context, root *Node) {
	root.applyVirtualLoss()
	v := s.simulate(ctx, root, 0)
	root.backup(v)
}

// simulate runs one playout from node at the given depth, returning the
// value to back up (spec.md §4.9's four simulation cases).
func (s *Search) simulate(ctx context.Context, node *Node, depth int) float64 {
	if ctx.Err() != nil {
		return s.Policy.Value(node.State)
	}
	if s.Goal(node.State) {
		return 1.0
	}
	if depth >= s.Config.MaxDepth {
		return s.Policy.Value(node.State)
	}

	switch node.expansionState() {
	case stateExpanded:
		child := s.selectChild(node)
		if child == nil {
			return s.Policy.Value(node.State)
		}
		child.applyVirtualLoss()
		v := s.simulate(ctx, child, depth+1)
		child.backup(v)
		return v
	case stateExpanding:
		// Another worker is building this node's children right now;
		// treat this playout like an unexpanded leaf rather than block.
		return s.Policy.Value(node.State)
	default:
		if node.tryBeginExpansion() {
			s.expand(node)
			node.finishExpansion()
		}
		return s.Policy.Value(node.State)
	}
}

// expand computes the guardrail profile, filters the rule set, fires and
// verifies every surviving rule, and keeps only verified children
// (spec.md §4.9 step 3).
func (s *Search) expand(node *Node) {
	all := s.Rules.All()
	profile := guardrail.Analyze(node.State)
	candidates := guardrail.FilterRules(all, profile, node.State, s.Context)
	priors := s.Policy.Priors(node.State, len(all))
	position := make(map[rule.ID]int, len(all))
	for i, r := range all {
		position[r.ID] = i
	}

	var children []*Node
	for _, r := range candidates {
		if !r.CanApply(node.State, s.Context) {
			continue
		}
		for _, app := range r.Fire(node.State, s.Context) {
			result := verifier.VerifyStep(node.State, app.Result, r, s.Context)
			if !result.IsValid() {
				continue
			}
			prior := 0.0
			if idx, ok := position[r.ID]; ok && idx < len(priors) {
				prior = priors[idx]
			}
			children = append(children, newNode(canon.Canon(app.Result), r.ID, r.Name, app.Justification, true, prior))
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].RuleID < children[j].RuleID })
	node.setChildren(children)
}

// selectChild picks the child maximizing the PUCT score (spec.md §4.9:
// "U(s,a) = Q(s,a) + c·P(s,a)·sqrt(N(s))/(1+N(s,a))").
func (s *Search) selectChild(node *Node) *Node {
	children := node.childrenSnapshot()
	if len(children) == 0 {
		return nil
	}
	parentVisits := float64(node.Visits())
	best := children[0]
	bestScore := s.puct(best, parentVisits)
	for _, c := range children[1:] {
		score := s.puct(c, parentVisits)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

func (s *Search) puct(child *Node, parentVisits float64) float64 {
	n := float64(child.Visits())
	q := child.ValueAvg()
	return q + s.Config.ExplorationWeight*child.Prior*math.Sqrt(parentVisits)/(1+n)
}

// extractPath greedily walks the child of maximum visits from root,
// emitting a Step per edge until the goal holds or the path runs out of
// children (spec.md §4.9). If root already satisfies the goal, it returns
// a trivial solution with no steps.
func (s *Search) extractPath(root *Node) ([]Step, bool) {
	if s.Goal(root.State) {
		return nil, true
	}
	var steps []Step
	current := root
	for {
		children := current.childrenSnapshot()
		if len(children) == 0 {
			break
		}
		var best *Node
		var bestVisits int64 = -1
		for _, c := range children {
			if v := c.Visits(); v > bestVisits {
				bestVisits = v
				best = c
			}
		}
		if best == nil {
			break
		}
		steps = append(steps, Step{
			Before:        current.State,
			After:         best.State,
			RuleID:        best.RuleID,
			RuleName:      best.RuleName,
			Justification: best.Justification,
		})
		current = best
		if s.Goal(current.State) {
			return steps, true
		}
	}
	return steps, false
}
