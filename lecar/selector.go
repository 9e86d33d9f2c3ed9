package lecar

import "math/rand"

// selector draws a Policy via a seeded Bernoulli-style PRNG parameterized
// by the learned probability pLFU. All state here is mutated only under
// the controller's single mutex; selector itself is not safe for
// concurrent use in isolation.
type selector struct {
	seed  int64
	rng   *rand.Rand
	pLFU  float64
	draws uint64 // number of values consumed from rng so far
}

func newSelector(seed int64, initialPLFU float64) *selector {
	return &selector{seed: seed, rng: rand.New(rand.NewSource(seed)), pLFU: initialPLFU}
}

// newSelectorAt reconstructs a selector at a known stream position by
// discarding that many draws from a freshly seeded generator — the PRNG
// exposes no serializable internal state, so position is replayed rather
// than restored directly.
func newSelectorAt(seed int64, pLFU float64, position uint64) *selector {
	s := newSelector(seed, pLFU)
	for i := uint64(0); i < position; i++ {
		s.rng.Float64()
	}
	s.draws = position
	return s
}

// draw samples u in [0,1) from the seeded stream and returns LFU if
// u <= pLFU, else LRU.
func (s *selector) draw() Policy {
	u := s.rng.Float64()
	s.draws++
	if u <= s.pLFU {
		return LFU
	}
	return LRU
}

func (s *selector) PLFU() float64 { return s.pLFU }

func (s *selector) setPLFU(p float64) { s.pLFU = p }

func (s *selector) Seed() int64 { return s.seed }

func (s *selector) Position() uint64 { return s.draws }
