package lecar

import "time"

// Clock provides time in UnixNano; override in tests for determinism,
// matching the teacher's own cache.Clock.
type Clock interface{ NowUnixNano() int64 }

type systemClock struct{}

func (systemClock) NowUnixNano() int64 { return time.Now().UnixNano() }

// Default learning parameters, taken from the LeCaR paper this design
// follows (Vietri et al., "Driving Cache Replacement with ML-based LeCaR").
const (
	DefaultLearningRate = 0.45
	DefaultDiscountRate = 0.005

	defaultInitialPLFU = 0.5
)

// Options configures a Controller. CapacityMain must be set by the caller;
// every other field has a sane zero-value default applied in New:
//   - Seed == 0           => time-derived seed (non-deterministic; set it
//     explicitly for reproducible tests)
//   - InitialPLFU <= 0 || >= 1 => 0.5
//   - LearningRate <= 0   => DefaultLearningRate
//   - DiscountRate <= 0   => DefaultDiscountRate
//   - nil Clock           => wall clock
//   - nil Metrics         => NoopMetrics
type Options struct {
	// CapacityMain bounds the main store |M|. Must be >= 1.
	CapacityMain int

	// CapacityGhostLFU / CapacityGhostLRU bound each ghost history. A
	// capacity of 0 is permitted: ghost hits (and therefore learning) are
	// then impossible for that policy, per the design's boundary behavior.
	CapacityGhostLFU int
	CapacityGhostLRU int

	// Seed deterministically seeds the policy selector's PRNG. Two
	// controllers built with the same seed and driven by the same request
	// sequence make identical policy draws.
	Seed int64

	// InitialPLFU is the starting probability of drawing LFU.
	InitialPLFU float64

	// LearningRate / DiscountRate parameterize the learner's multiplicative
	// update rule (see learner.go).
	LearningRate float64
	DiscountRate float64

	// Clock overrides the time source; used by tests to avoid timing
	// flakiness, exactly like the teacher's fakeClock in cache_test.go.
	Clock Clock

	// Metrics receives Hit/Miss/GhostHit/Eviction/PLFU/Size signals.
	Metrics Metrics

	// DebugAssertions enables an O(|M|+|H_LFU|+|H_LRU|) consistency check
	// (disjoint key sets, capacity bounds) after every Insert and every Get
	// that revives a ghosted entry; a plain Get hit or cold miss moves no
	// key and is not checked. Intended for development and test builds,
	// not hot production paths.
	DebugAssertions bool
}

func (o *Options) applyDefaults() {
	if o.Clock == nil {
		o.Clock = systemClock{}
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetrics{}
	}
	if o.LearningRate <= 0 {
		o.LearningRate = DefaultLearningRate
	}
	if o.DiscountRate <= 0 {
		o.DiscountRate = DefaultDiscountRate
	}
	if o.InitialPLFU <= 0 || o.InitialPLFU >= 1 {
		o.InitialPLFU = defaultInitialPLFU
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
}
