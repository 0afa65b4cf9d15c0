// Package symtab provides a process-local interner mapping variable names
// to stable dense identifiers. Identity is the identifier, not the string.
package symtab

import "sync"

// ID is a dense identifier for an interned symbol. Two symbols compare equal
// iff their IDs compare equal; the backing name is metadata for display only.
type ID int32

// Table interns variable names into dense IDs. The zero value is not usable;
// construct with New. A Table is safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	byName  map[string]ID
	byID    []string
}

// New creates an empty symbol table.
func New() *Table {
	return &Table{
		byName: make(map[string]ID),
	}
}

// Intern returns the ID for name, assigning a new dense ID on first use.
func (t *Table) Intern(name string) ID {
	t.mu.RLock()
	if id, ok := t.byName[name]; ok {
		t.mu.RUnlock()
		return id
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	// Re-check: another goroutine may have interned name while we upgraded
	// from a read lock.
	if id, ok := t.byName[name]; ok {
		return id
	}
	id := ID(len(t.byID))
	t.byName[name] = id
	t.byID = append(t.byID, name)
	return id
}

// Name returns the original string for id. Panics if id was never interned
// by this table.
func (t *Table) Name(id ID) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(t.byID) {
		panic("symtab: unknown id")
	}
	return t.byID[id]
}

// Len returns the number of distinct symbols interned so far.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID)
}

// Fresh mints a new symbol guaranteed distinct from every name interned so
// far, using base as a display hint. Used by the induction engine to name
// hypothesis variables (spec.md §4.13) without capturing an existing name.
func (t *Table) Fresh(base string) ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	candidate := base
	for n := 0; t.nameTakenLocked(candidate); n++ {
		candidate = base + suffix(n)
	}
	id := ID(len(t.byID))
	t.byName[candidate] = id
	t.byID = append(t.byID, candidate)
	return id
}

func (t *Table) nameTakenLocked(name string) bool {
	_, ok := t.byName[name]
	return ok
}

func suffix(n int) string {
	digits := [20]byte{}
	i := len(digits)
	v := n + 1
	for v > 0 {
		i--
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	return "'" + string(digits[i:])
}
