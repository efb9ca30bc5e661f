package source

import "testing"

func TestInternerDedup(t *testing.T) {
	in := NewInterner()
	a := in.Intern("Nat")
	b := in.Intern("Nat")
	c := in.Intern("succ")
	if a != b {
		t.Fatalf("same text must intern to the same ID: %d vs %d", a, b)
	}
	if a == c || a == NoStringID {
		t.Fatalf("unexpected IDs a=%d c=%d", a, c)
	}
	if got := in.MustLookup(c); got != "succ" {
		t.Fatalf("MustLookup = %q", got)
	}
	if in.Len() != 3 {
		t.Fatalf("Len = %d, want 3", in.Len())
	}
}

func TestInternerEmptyString(t *testing.T) {
	in := NewInterner()
	if id := in.Intern(""); id != NoStringID {
		t.Fatalf("empty string should map to NoStringID, got %d", id)
	}
	if _, ok := in.Lookup(StringID(42)); ok {
		t.Fatal("lookup of unknown ID must fail")
	}
}

func TestInternerSnapshotIsCopy(t *testing.T) {
	in := NewInterner()
	in.Intern("x")
	snap := in.Snapshot()
	snap[1] = "mutated"
	if in.MustLookup(1) != "x" {
		t.Fatal("snapshot must not alias interner storage")
	}
}
