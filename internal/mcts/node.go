package mcts

import (
	"sync"
	"sync/atomic"

	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/rule"
)

// valueScale converts a float value in [-1,1] to a fixed-point int64 so
// concurrent workers can update it with a single atomic add instead of a
// compare-and-swap retry loop (spec.md §4.9: "value_sum are atomic
// counters stored in fixed-point (value × 10^6)").
const valueScale = 1_000_000

type expandState int32

const (
	stateUnexpanded expandState = iota
	stateExpanding
	stateExpanded
)

// Node is one state in the search tree (spec.md §4.9: "state, visits,
// value_sum, prior, rule_id?, rule_name?, children, expanded"). Visits and
// the value sum are atomic so a node can be touched by multiple workers in
// the deep-parallel variant without a lock; children are guarded by an
// RWMutex per spec.md §4.9's "children vectors are protected by a
// reader-writer lock", and expansion is a one-shot CAS-guarded transition
// so at most one worker ever builds a node's children.
type Node struct {
	State         expr.Expr
	RuleID        rule.ID
	RuleName      string
	Justification string
	HasRule       bool
	Prior         float64

	visits   atomic.Int64
	valueSum atomic.Int64
	expand   atomic.Int32

	mu       sync.RWMutex
	children []*Node
}

func newNode(state expr.Expr, ruleID rule.ID, ruleName, justification string, hasRule bool, prior float64) *Node {
	return &Node{State: state, RuleID: ruleID, RuleName: ruleName, Justification: justification, HasRule: hasRule, Prior: prior}
}

// Visits returns the number of simulations that have passed through this
// node.
func (n *Node) Visits() int64 { return n.visits.Load() }

// ValueAvg is Q(s,a): value_sum/visits, or 0 for an unvisited node
// (spec.md §4.9).
func (n *Node) ValueAvg() float64 {
	v := n.visits.Load()
	if v == 0 {
		return 0
	}
	return float64(n.valueSum.Load()) / valueScale / float64(v)
}

// applyVirtualLoss records +1 visit, +0 value on descent (spec.md §4.9),
// discouraging a concurrent worker from re-selecting the same edge before
// this simulation's real value is known.
func (n *Node) applyVirtualLoss() { n.visits.Add(1) }

// backup reconciles a completed simulation's value into the node. The
// matching visit was already recorded by applyVirtualLoss, so only the
// value sum is updated here.
func (n *Node) backup(value float64) { n.valueSum.Add(int64(value * valueScale)) }

func (n *Node) childrenSnapshot() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

func (n *Node) setChildren(children []*Node) {
	n.mu.Lock()
	n.children = children
	n.mu.Unlock()
}

// tryBeginExpansion reports whether the caller won the race to expand
// this node, transitioning it from unexpanded to expanding.
func (n *Node) tryBeginExpansion() bool {
	return n.expand.CompareAndSwap(int32(stateUnexpanded), int32(stateExpanding))
}

func (n *Node) finishExpansion() { n.expand.Store(int32(stateExpanded)) }

func (n *Node) expansionState() expandState { return expandState(n.expand.Load()) }
