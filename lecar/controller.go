package lecar

import (
	"sync"
	"time"
)

// Controller orchestrates Get/Insert across the main store, the two ghost
// histories, and the learner. It is the single point of mutual exclusion
// required by the design: every mutating operation holds mu for its
// entire duration, so the three substructures always move together and
// results reflect exactly one serial ordering of calls.
type Controller[K comparable, V any] struct {
	mu sync.Mutex

	store    *store[K, V]
	ghostLFU *ghost[K, V]
	ghostLRU *ghost[K, V]
	selector *selector
	learner  *learner

	opt Options
}

// New constructs a Controller. Panics if CapacityMain < 1 or either ghost
// capacity is negative — these are construction-time programming errors,
// not runtime conditions.
func New[K comparable, V any](opt Options) *Controller[K, V] {
	if opt.CapacityMain < 1 {
		panic("lecar: CapacityMain must be >= 1")
	}
	if opt.CapacityGhostLFU < 0 || opt.CapacityGhostLRU < 0 {
		panic("lecar: ghost capacities must be >= 0")
	}
	opt.applyDefaults()

	return &Controller[K, V]{
		store:    newStore[K, V](opt.CapacityMain),
		ghostLFU: newGhost[K, V](LFU, opt.CapacityGhostLFU),
		ghostLRU: newGhost[K, V](LRU, opt.CapacityGhostLRU),
		selector: newSelector(opt.Seed, opt.InitialPLFU),
		learner:  newLearner(opt.LearningRate, opt.DiscountRate),
		opt:      opt,
	}
}

func (c *Controller[K, V]) now() int64 { return c.opt.Clock.NowUnixNano() }

// Get returns the value for k.
//
//  1. On a hit in the main store, the entry is promoted (touch) and its
//     value returned.
//  2. On a miss, both ghost histories are probed (LFU first, then LRU).
//     A ghost hit feeds the learner, draws a fresh policy, and reinserts
//     the entry into the main store — possibly evicting another entry,
//     which is routed into the matching ghost. Note: unlike Insert, a
//     plain Get-triggered ghost revival does not call touch on the
//     revived entry; touch fires once per direct store hit and once per
//     value-changing Insert, per the design's fixed semantics.
//  3. Absence from both the store and the ghosts is a cold miss, reported
//     as (zero, false) — not an error.
func (c *Controller[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if e, ok := c.store.get(k, now); ok {
		c.opt.Metrics.Hit()
		return e.Value(), true
	}
	c.opt.Metrics.Miss()

	if e, dt, ok := c.ghostLFU.ejectIfPresent(k, now); ok {
		c.admitAfterGhostHit(e, dt, LFU, now)
		return e.Value(), true
	}
	if e, dt, ok := c.ghostLRU.ejectIfPresent(k, now); ok {
		c.admitAfterGhostHit(e, dt, LRU, now)
		return e.Value(), true
	}

	var zero V
	return zero, false
}

// Insert adds or updates k with v.
//
//  1. If k is found in a ghost history, its value is updated, touch is
//     invoked, the learner updates p_LFU from the dwell time, and the
//     entry is reinserted into the main store under a freshly drawn
//     policy.
//  2. Else if k is already resident in the main store, its value is
//     updated in place (touch invoked there, no eviction).
//  3. Else a fresh entry is admitted under a freshly drawn policy,
//     possibly evicting another entry into the matching ghost.
func (c *Controller[K, V]) Insert(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	if e, dt, ok := c.ghostLFU.ejectIfPresent(k, now); ok {
		e.setValue(v)
		e.touch(now)
		c.admitAfterGhostHit(e, dt, LFU, now)
		return
	}
	if e, dt, ok := c.ghostLRU.ejectIfPresent(k, now); ok {
		e.setValue(v)
		e.touch(now)
		c.admitAfterGhostHit(e, dt, LRU, now)
		return
	}

	pi := c.selector.draw()
	e := newEntry(k, v, now)
	if evicted, ok := c.store.insertOrUpdate(e, pi, now); ok {
		c.routeEvicted(evicted, pi, now)
	}
	c.reportSize()
	c.checkInvariants()
}

// admitAfterGhostHit runs the shared tail of both ghost-hit paths: feed
// the learner, draw a fresh policy, reinsert into the main store, and
// route any displaced entry into the matching ghost.
func (c *Controller[K, V]) admitAfterGhostHit(e *Entry[K, V], dt time.Duration, missPolicy Policy, now int64) {
	c.opt.Metrics.GhostHit(missPolicy)

	newP := c.learner.update(c.selector.PLFU(), missPolicy, dt)
	c.selector.setPLFU(newP)
	c.opt.Metrics.PLFU(newP)

	pi := c.selector.draw()
	if evicted, ok := c.store.insertOrUpdate(e, pi, now); ok {
		c.routeEvicted(evicted, pi, now)
	}
	c.reportSize()
	c.checkInvariants()
}

func (c *Controller[K, V]) routeEvicted(e *Entry[K, V], pi Policy, now int64) {
	c.opt.Metrics.Eviction(pi)
	switch pi {
	case LFU:
		c.ghostLFU.insert(e, now)
	case LRU:
		c.ghostLRU.insert(e, now)
	}
}

func (c *Controller[K, V]) reportSize() {
	c.opt.Metrics.Size(c.store.len(), c.ghostLFU.len(), c.ghostLRU.len())
}

// checkInvariants re-derives the disjointness and capacity invariants from
// scratch. It only runs when Options.DebugAssertions is set, since the
// scan is O(|M|+|H_LFU|+|H_LRU|) — fine for development and tests, wasted
// work on a hot production path.
func (c *Controller[K, V]) checkInvariants() {
	if !c.opt.DebugAssertions {
		return
	}
	if c.store.len() > c.store.capacity {
		invariantViolation("main store exceeds capacity")
	}
	if c.ghostLFU.len() > c.ghostLFU.capacity {
		invariantViolation("LFU ghost exceeds capacity")
	}
	if c.ghostLRU.len() > c.ghostLRU.capacity {
		invariantViolation("LRU ghost exceeds capacity")
	}
	for k := range c.ghostLFU.idx {
		if c.store.contains(k) {
			invariantViolation("key resident in both main store and LFU ghost")
		}
		if _, ok := c.ghostLRU.idx[k]; ok {
			invariantViolation("key resident in both ghost histories")
		}
	}
	for k := range c.ghostLRU.idx {
		if c.store.contains(k) {
			invariantViolation("key resident in both main store and LRU ghost")
		}
	}
}

// Sizes returns the current population of the main store and each ghost
// history: (|M|, |H_LFU|, |H_LRU|).
func (c *Controller[K, V]) Sizes() (main, ghostLFU, ghostLRU int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.len(), c.ghostLFU.len(), c.ghostLRU.len()
}

// Full reports whether the main store is at capacity.
func (c *Controller[K, V]) Full() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.full()
}

// GetByIndex returns the entry at position i in the main store's
// insertion order (delegates to the store; does not promote or probe
// ghosts).
func (c *Controller[K, V]) GetByIndex(i int) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.store.getByIndex(i)
	if !ok {
		var zero V
		return zero, false
	}
	return e.Value(), true
}

// IndexOf returns k's current position in the main store's insertion
// order, or (-1, false) if k is not resident in the main store.
func (c *Controller[K, V]) IndexOf(k K) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.indexOf(k)
}

// PLFU returns the current learned probability of drawing LFU.
func (c *Controller[K, V]) PLFU() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selector.PLFU()
}
