// Package bank persists the reward-bank snapshot named in spec.md §6: a
// small JSON object an out-of-core supervisor reads and writes between
// runs to track earned credits and unlocked rules. The core never spends
// credits or unlocks anything itself; this package is load/save only.
package bank

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const defaultFileName = ".lemma_bank.json"

// Snapshot is the persisted bank state (spec.md §6: "JSON object {credits:
// non-negative integer, unlocked_rule_ids: list of rule ids, extra_depth:
// non-negative integer, extra_retries: non-negative integer,
// lifetime_earnings, lifetime_spent}. Unknown fields ignored; missing
// fields defaulted to zero.").
type Snapshot struct {
	Credits          int64   `json:"credits"`
	UnlockedRuleIDs  []uint32 `json:"unlocked_rule_ids"`
	ExtraDepth       int64   `json:"extra_depth"`
	ExtraRetries     int64   `json:"extra_retries"`
	LifetimeEarnings int64   `json:"lifetime_earnings"`
	LifetimeSpent    int64   `json:"lifetime_spent"`
}

// DefaultPath returns {HOME}/.lemma_bank.json (spec.md §6's default file
// path), or "" if the home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, defaultFileName)
}

// Load reads and decodes the snapshot at path. A missing file is not an
// error: it returns a zero-valued Snapshot, matching spec.md §6's "missing
// fields defaulted to zero" for the degenerate case of no file at all.
// json.Unmarshal already ignores unknown fields by default, satisfying
// "Unknown fields ignored" without any extra decoding logic.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, nil
		}
		return Snapshot{}, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Save encodes s as indented JSON and writes it to path, creating parent
// directories as needed.
func Save(path string, s Snapshot) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
