package lecar

import "testing"

// Insert then ejectIfPresent round-trips the entry and reports dwell time.
func TestGhost_InsertEjectRoundTrip(t *testing.T) {
	t.Parallel()

	g := newGhost[string, int](LRU, 4)
	g.insert(newEntry("a", 1, 1000), 1000)

	e, dt, ok := g.ejectIfPresent("a", 1500)
	if !ok || e.Value() != 1 {
		t.Fatalf("want ok with value 1, got %v ok=%v", e, ok)
	}
	if dt != 500 {
		t.Fatalf("want dwell 500ns, got %v", dt)
	}
	if g.len() != 0 {
		t.Fatalf("ghost must be empty after eject, len=%d", g.len())
	}
}

// Absence is a normal cold miss, not an error.
func TestGhost_EjectAbsent(t *testing.T) {
	t.Parallel()

	g := newGhost[string, int](LRU, 4)
	if _, _, ok := g.ejectIfPresent("missing", 0); ok {
		t.Fatal("want absent")
	}
}

// Overflow pops the extremum under the policy's metric and discards it
// forever: the earlier-evicted key is no longer recoverable.
func TestGhost_OverflowDiscardsExtremum(t *testing.T) {
	t.Parallel()

	g := newGhost[string, int](LFU, 1)
	g.insert(newEntry("a", 1, 0), 0) // frequency 0 — will be the extremum
	b := newEntry("b", 2, 0)
	b.touch(1) // frequency 1, ranks after a under LFU's min-frequency order
	g.insert(b, 10)

	if g.len() != 1 {
		t.Fatalf("want len 1 after overflow, got %d", g.len())
	}
	if _, _, ok := g.ejectIfPresent("a", 20); ok {
		t.Fatal("a must have been discarded (lowest frequency, popped first)")
	}
	if _, _, ok := g.ejectIfPresent("b", 20); !ok {
		t.Fatal("b must have survived the overflow")
	}
}

// A capacity of 0 makes every insert a no-op: ghost hits are impossible.
func TestGhost_ZeroCapacityNeverRetains(t *testing.T) {
	t.Parallel()

	g := newGhost[string, int](LFU, 0)
	g.insert(newEntry("a", 1, 0), 0)
	if g.len() != 0 {
		t.Fatalf("zero-capacity ghost must stay empty, got %d", g.len())
	}
	if _, _, ok := g.ejectIfPresent("a", 10); ok {
		t.Fatal("zero-capacity ghost must never yield a hit")
	}
}

// Re-inserting an already-ghosted key moves it rather than duplicating it.
func TestGhost_ReinsertMovesNotDuplicates(t *testing.T) {
	t.Parallel()

	g := newGhost[string, int](LRU, 4)
	g.insert(newEntry("a", 1, 0), 0)
	g.insert(newEntry("a", 2, 0), 100)

	if g.len() != 1 {
		t.Fatalf("want exactly one entry for a, got %d", g.len())
	}
	e, dt, ok := g.ejectIfPresent("a", 150)
	if !ok || e.Value() != 2 {
		t.Fatalf("want the second insert's value, got %v ok=%v", e, ok)
	}
	if dt != 50 {
		t.Fatalf("dwell must be measured from the latest admission, got %v", dt)
	}
}
