// Package bridge implements bidirectional-search meeting-point detection
// (spec.md §4.12): two growing sets of canonical expression keys, one
// reached forward from the axioms, one reached backward from the goal,
// with a bridge existing wherever the sets intersect. Grounded on the
// teacher's FactStore (fact_store.go) for the "keyed set with a
// membership-intersection query" shape, and on
// original_source/crates/mm-search/src/bridge.rs's own
// forward_reached/backward_reached split.
package bridge

import (
	"sync"

	"github.com/gitrdm/lemma/internal/expr"
)

// Detector tracks two reached-sets of canonical expression keys and
// reports where they intersect. The equivalence key is expr.Key, the
// structural hash of the canonicalized form (spec.md §4.12: "more
// expressive equivalence... is handled by canonicalisation"), so callers
// are expected to canonicalize before calling AddForward/AddBackward.
// Safe for concurrent use.
type Detector struct {
	mu       sync.RWMutex
	forward  map[string]expr.Expr
	backward map[string]expr.Expr
}

// NewDetector returns an empty Detector.
func NewDetector() *Detector {
	return &Detector{
		forward:  make(map[string]expr.Expr),
		backward: make(map[string]expr.Expr),
	}
}

// AddForward records e as reached from the axioms.
func (d *Detector) AddForward(e expr.Expr) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.forward[expr.Key(e)] = e
}

// AddBackward records e as reached from the goal.
func (d *Detector) AddBackward(e expr.Expr) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.backward[expr.Key(e)] = e
}

// HasBridge reports whether the forward and backward reached-sets
// intersect (spec.md §4.12: "has_bridge() is true iff the sets
// intersect").
func (d *Detector) HasBridge() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	small, large := d.forward, d.backward
	if len(large) < len(small) {
		small, large = large, small
	}
	for k := range small {
		if _, ok := large[k]; ok {
			return true
		}
	}
	return false
}

// FindBridges lists every expression in the intersection of the two
// reached-sets (spec.md §4.12: "find_bridges() lists the intersection").
// The result is returned in no particular order.
func (d *Detector) FindBridges() []expr.Expr {
	d.mu.RLock()
	defer d.mu.RUnlock()
	small, large := d.forward, d.backward
	if len(large) < len(small) {
		small, large = large, small
	}
	var bridges []expr.Expr
	for k, e := range small {
		if _, ok := large[k]; ok {
			bridges = append(bridges, e)
		}
	}
	return bridges
}

// ForwardCount returns the number of distinct expressions reached forward.
func (d *Detector) ForwardCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.forward)
}

// BackwardCount returns the number of distinct expressions reached backward.
func (d *Detector) BackwardCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.backward)
}
