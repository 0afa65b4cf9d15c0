package symtab

import "testing"

func TestInternStable(t *testing.T) {
	tab := New()
	x := tab.Intern("x")
	y := tab.Intern("y")
	x2 := tab.Intern("x")

	if x != x2 {
		t.Errorf("Intern(%q) = %d, want %d (same as first intern)", "x", x2, x)
	}
	if x == y {
		t.Errorf("distinct names got the same id %d", x)
	}
	if tab.Name(x) != "x" || tab.Name(y) != "y" {
		t.Errorf("Name() round-trip failed: Name(x)=%q Name(y)=%q", tab.Name(x), tab.Name(y))
	}
}

func TestInternDenseFromZero(t *testing.T) {
	tab := New()
	ids := []ID{tab.Intern("a"), tab.Intern("b"), tab.Intern("c")}
	for i, id := range ids {
		if int(id) != i {
			t.Errorf("ids[%d] = %d, want dense id %d", i, id, i)
		}
	}
	if tab.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tab.Len())
	}
}

func TestFreshDistinctFromExisting(t *testing.T) {
	tab := New()
	k := tab.Intern("k")
	fresh := tab.Fresh("k")
	if fresh == k {
		t.Errorf("Fresh(%q) reused existing id %d", "k", k)
	}
	if tab.Name(fresh) == tab.Name(k) {
		t.Errorf("Fresh(%q) produced a colliding name %q", "k", tab.Name(fresh))
	}
}

func TestFreshManyDistinct(t *testing.T) {
	tab := New()
	seen := make(map[ID]bool)
	for i := 0; i < 50; i++ {
		id := tab.Fresh("n")
		if seen[id] {
			t.Fatalf("Fresh produced a repeated id %d on iteration %d", id, i)
		}
		seen[id] = true
	}
}
