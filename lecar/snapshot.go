package lecar

// EntryState is one entry's persisted fields, per spec §6's optional
// persisted-state layout.
type EntryState[K comparable, V any] struct {
	Key       K
	Value     V
	Frequency uint64
	LastUsed  int64
}

// GhostEntryState is one ghost-history entry's persisted fields: the same
// entry shape plus the time it was admitted to that history.
type GhostEntryState[K comparable, V any] struct {
	Key        K
	Value      V
	Frequency  uint64
	LastUsed   int64
	AdmittedAt int64
}

// State is the complete persisted state spec §6 describes: p_LFU, the
// PRNG seed/position, every main-store entry in insertion order, every
// ghost entry, and the three capacities. It carries no behavior; it exists
// purely to be encoded and decoded by a caller that opts into persistence
// (the core itself never writes or reads one automatically).
type State[K comparable, V any] struct {
	CapacityMain     int
	CapacityGhostLFU int
	CapacityGhostLRU int

	PLFU         float64
	Seed         int64
	RNGPosition  uint64
	LearningRate float64
	DiscountRate float64

	Main     []EntryState[K, V]
	GhostLFU []GhostEntryState[K, V]
	GhostLRU []GhostEntryState[K, V]
}

// Export captures the controller's complete state. The caller is
// responsible for encoding it (JSON, gob, whatever); Export itself does no
// I/O, matching the core's "no I/O in core operations" rule.
func (c *Controller[K, V]) Export() State[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State[K, V]{
		CapacityMain:     c.store.capacity,
		CapacityGhostLFU: c.ghostLFU.capacity,
		CapacityGhostLRU: c.ghostLRU.capacity,
		PLFU:             c.selector.PLFU(),
		Seed:             c.selector.Seed(),
		RNGPosition:      c.selector.Position(),
		LearningRate:     c.learner.learningRate,
		DiscountRate:     c.learner.discountRate,
	}
	for n := c.store.head; n != nil; n = n.next {
		st.Main = append(st.Main, EntryState[K, V]{
			Key: n.entry.key, Value: n.entry.value,
			Frequency: n.entry.frequency, LastUsed: n.entry.lastUsed,
		})
	}
	st.GhostLFU = exportGhost(c.ghostLFU)
	st.GhostLRU = exportGhost(c.ghostLRU)
	return st
}

func exportGhost[K comparable, V any](g *ghost[K, V]) []GhostEntryState[K, V] {
	out := make([]GhostEntryState[K, V], 0, len(g.idx))
	for _, item := range g.idx {
		out = append(out, GhostEntryState[K, V]{
			Key: item.entry.key, Value: item.entry.value,
			Frequency: item.entry.frequency, LastUsed: item.entry.lastUsed,
			AdmittedAt: item.admittedAt,
		})
	}
	return out
}

// Restore rebuilds a Controller from a previously Exported State. The
// caller supplies a Clock/Metrics via opt as usual; capacities and
// learner/selector parameters come from the snapshot itself.
func Restore[K comparable, V any](opt Options, st State[K, V]) *Controller[K, V] {
	opt.CapacityMain = st.CapacityMain
	opt.CapacityGhostLFU = st.CapacityGhostLFU
	opt.CapacityGhostLRU = st.CapacityGhostLRU
	opt.Seed = st.Seed
	opt.InitialPLFU = st.PLFU
	opt.LearningRate = st.LearningRate
	opt.DiscountRate = st.DiscountRate

	c := New[K, V](opt)
	c.selector = newSelectorAt(st.Seed, st.PLFU, st.RNGPosition)

	for _, es := range st.Main {
		e := &Entry[K, V]{key: es.Key, value: es.Value, frequency: es.Frequency, lastUsed: es.LastUsed}
		c.store.appendTail(e)
	}
	restoreGhost(c.ghostLFU, st.GhostLFU)
	restoreGhost(c.ghostLRU, st.GhostLRU)
	return c
}

func restoreGhost[K comparable, V any](g *ghost[K, V], states []GhostEntryState[K, V]) {
	for _, gs := range states {
		e := &Entry[K, V]{key: gs.Key, value: gs.Value, frequency: gs.Frequency, lastUsed: gs.LastUsed}
		g.insert(e, gs.AdmittedAt)
	}
}
