// Package lecar implements an adaptive in-memory key/value cache that
// learns, online, which of two competing eviction disciplines — LFU and
// LRU — is currently winning on the observed workload, following the
// LeCaR (Learning Cache Replacement) design.
//
// Design
//
//   - Main store: a bounded hash map with a parallel insertion-order list
//     (store.go), supporting O(1) lookup, positional addressing, and an
//     O(|M|) victim scan on eviction (acceptable: |M| is bounded by
//     deployment sizing, hundreds to low thousands in practice).
//
//   - Ghost histories: one bounded min-priority queue per policy
//     (ghost.go), recording recently evicted keys ordered by the exact
//     metric the policy would use to evict them again. A reference to a
//     ghosted key is a "ghost hit" — evidence that the policy which
//     evicted it should not have.
//
//   - Learner: an exponential multiplicative-weights update (learner.go)
//     that turns each ghost hit into a revised p_LFU, the probability the
//     policy selector draws LFU on the next eviction.
//
//   - Controller: the single point of mutual exclusion (controller.go).
//     Every Get/Insert holds one mutex for its entire duration, so the
//     main store, both ghosts, and the learner always move together;
//     results reflect exactly one serial ordering of calls.
//
// Basic usage
//
//	c := lecar.New[string, string](lecar.Options{
//	    CapacityMain:     2000,
//	    CapacityGhostLFU: 200,
//	    CapacityGhostLRU: 200,
//	})
//	c.Insert("a", "1")
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//
// With deterministic tests
//
//	c := lecar.New[string, string](lecar.Options{
//	    CapacityMain: 2, CapacityGhostLFU: 1, CapacityGhostLRU: 1,
//	    Seed: 42, Clock: fakeClock,
//	})
//
// Exporting metrics (example Prometheus adapter)
//
//	m := prom.New(nil, "lecar", "demo", nil) // implements lecar.Metrics
//	c := lecar.New[string, []byte](lecar.Options{CapacityMain: 10_000, Metrics: m})
//
// Thread-safety & complexity
//
// All Controller methods are safe for concurrent use. Get/Insert cost
// O(|M|) in the worst case (eviction scan); ghost operations cost
// O(log |H_pi|). See policy.go for the shared metric both the store and
// the ghosts use to rank entries.
package lecar
