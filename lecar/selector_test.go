package lecar

import "testing"

// Same seed, same p_LFU sequence -> identical draws. Determinism is
// required for reproducible tests, per the design.
func TestSelector_DeterministicWithSameSeed(t *testing.T) {
	t.Parallel()

	a := newSelector(42, 0.5)
	b := newSelector(42, 0.5)

	for i := 0; i < 50; i++ {
		if a.draw() != b.draw() {
			t.Fatalf("draw %d diverged between identically-seeded selectors", i)
		}
	}
}

// p_LFU = 1 - epsilon (never exactly 1, per the learner's floor) must draw
// LFU on essentially every call; p_LFU = epsilon must draw LRU.
func TestSelector_ExtremeProbabilitiesBiasStrongly(t *testing.T) {
	t.Parallel()

	s := newSelector(7, 1-minProbability)
	lfu := 0
	for i := 0; i < 1000; i++ {
		if s.draw() == LFU {
			lfu++
		}
	}
	if lfu < 990 {
		t.Fatalf("want near-certain LFU draws, got %d/1000", lfu)
	}

	s = newSelector(7, minProbability)
	lru := 0
	for i := 0; i < 1000; i++ {
		if s.draw() == LRU {
			lru++
		}
	}
	if lru < 990 {
		t.Fatalf("want near-certain LRU draws, got %d/1000", lru)
	}
}
