package lecar

import (
	"container/heap"
	"time"

	"github.com/ivanbrykalov/lecar/internal/util"
)

// ghostItem is a heap element: an evicted entry tagged with the time it
// was admitted to this history, plus the index container/heap needs to
// support O(log n) removal-by-key.
type ghostItem[K comparable, V any] struct {
	entry      *Entry[K, V]
	admittedAt int64
	index      int
}

// ghostHeap is a container/heap min-heap ordered by the owning ghost's
// policy metric. This shape — a slice of pointers with a cached index
// field, paired with an external map for O(1) membership and O(log n)
// arbitrary removal via heap.Remove — is the same pattern worked out in
// the pack's bounded min-heap implementation (dgraph-io-ristretto's
// min_heap.go); the design explicitly allows either a linear-scan-and-rebuild
// ghost or a heap-plus-handle-map, and the pack happens to contain a
// complete, idiomatic example of the latter.
type ghostHeap[K comparable, V any] struct {
	items  []*ghostItem[K, V]
	policy Policy
}

func (h ghostHeap[K, V]) Len() int { return len(h.items) }

func (h ghostHeap[K, V]) Less(i, j int) bool {
	return metricLess(h.policy, h.items[i].entry, h.items[j].entry)
}

func (h ghostHeap[K, V]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].index = i
	h.items[j].index = j
}

func (h *ghostHeap[K, V]) Push(x any) {
	item := x.(*ghostItem[K, V])
	item.index = len(h.items)
	h.items = append(h.items, item)
}

func (h *ghostHeap[K, V]) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	h.items = old[:n-1]
	return item
}

// ghost is a bounded min-priority history of recently evicted entries for
// one policy. Its ordering is identical to the ordering the policy would
// use to evict from the main store (both call metricLess), so the ghost
// is literally "what the policy threw away, ordered by what it would
// still throw away next."
type ghost[K comparable, V any] struct {
	policy   Policy
	capacity int
	heap     *ghostHeap[K, V]
	idx      map[K]*ghostItem[K, V]
}

func newGhost[K comparable, V any](policy Policy, capacity int) *ghost[K, V] {
	prealloc := int(util.NextPow2(uint64(capacity + 1)))
	h := &ghostHeap[K, V]{policy: policy, items: make([]*ghostItem[K, V], 0, prealloc)}
	heap.Init(h)
	return &ghost[K, V]{
		policy:   policy,
		capacity: capacity,
		heap:     h,
		idx:      make(map[K]*ghostItem[K, V], capacity),
	}
}

// insert stamps admittedAt and pushes entry into the history. If the
// history overflows, the extremum under the policy's metric — the entry
// most evictable from the ghost itself — is popped and discarded forever.
// A capacity of 0 makes every insert a no-op: ghost hits (and learning)
// are then impossible for this policy, per the design's boundary behavior.
func (g *ghost[K, V]) insert(e *Entry[K, V], now int64) {
	if g.capacity <= 0 {
		return
	}
	if old, ok := g.idx[e.key]; ok {
		heap.Remove(g.heap, old.index)
		delete(g.idx, e.key)
	}
	item := &ghostItem[K, V]{entry: e, admittedAt: now}
	heap.Push(g.heap, item)
	g.idx[e.key] = item

	if g.heap.Len() > g.capacity {
		popped := heap.Pop(g.heap).(*ghostItem[K, V])
		delete(g.idx, popped.entry.key)
	}
}

// ejectIfPresent removes k from the history if present and returns the
// entry, its dwell time since admission, and true. Absence is the normal
// cold-miss path, not an error.
func (g *ghost[K, V]) ejectIfPresent(k K, now int64) (*Entry[K, V], time.Duration, bool) {
	item, ok := g.idx[k]
	if !ok {
		return nil, 0, false
	}
	heap.Remove(g.heap, item.index)
	delete(g.idx, k)
	dt := time.Duration(now - item.admittedAt)
	if dt < 0 {
		dt = 0
	}
	return item.entry, dt, true
}

func (g *ghost[K, V]) len() int       { return len(g.idx) }
func (g *ghost[K, V]) full() bool     { return len(g.idx) >= g.capacity }
