package expr

// Key returns a deterministic string representation suitable for use as a
// map/set key over canonical expressions (e.g. the simplify loop's "seen"
// set, spec.md §4.10, and the bridge detector's reached sets, spec.md
// §4.12). It is only a stable dedup key for canonical terms: two
// non-canonical but structurally-equal-after-canonicalisation terms are not
// guaranteed to share a Key before canonicalisation.
func Key(e Expr) string { return e.String() }
