package bank

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadOfMissingFileReturnsZeroValue(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("Load() err = %v, want nil for a missing file", err)
	}
	if !reflect.DeepEqual(s, Snapshot{}) {
		t.Errorf("Load() = %+v, want zero value", s)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	want := Snapshot{
		Credits:          42,
		UnlockedRuleIDs:  []uint32{1, 5, 9},
		ExtraDepth:       2,
		ExtraRetries:     1,
		LifetimeEarnings: 100,
		LifetimeSpent:    58,
	}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save() err = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if got.Credits != want.Credits || got.ExtraDepth != want.ExtraDepth ||
		got.ExtraRetries != want.ExtraRetries || got.LifetimeEarnings != want.LifetimeEarnings ||
		got.LifetimeSpent != want.LifetimeSpent || len(got.UnlockedRuleIDs) != len(want.UnlockedRuleIDs) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoadIgnoresUnknownFieldsAndDefaultsMissingOnes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	raw := []byte(`{"credits": 10, "some_future_field": "ignored"}`)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("os.WriteFile() err = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if got.Credits != 10 {
		t.Errorf("Credits = %d, want 10", got.Credits)
	}
	if got.ExtraDepth != 0 || got.ExtraRetries != 0 || len(got.UnlockedRuleIDs) != 0 {
		t.Errorf("missing fields not zero-defaulted: %+v", got)
	}
}

func TestDefaultPathEndsWithLemmaBankFile(t *testing.T) {
	p := DefaultPath()
	if p == "" {
		t.Skip("no home directory available in this environment")
	}
	if filepath.Base(p) != defaultFileName {
		t.Errorf("DefaultPath() = %q, want a path ending in %q", p, defaultFileName)
	}
}
