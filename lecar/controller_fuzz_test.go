//go:build go1.18

package lecar

import (
	"strings"
	"testing"
)

// Fuzz basic Insert/Get semantics under arbitrary string inputs. Guards
// against panics and checks that a value just written is always
// immediately readable, regardless of whether the key landed fresh,
// in-place, or via ghost revival.
func FuzzController_InsertGet(f *testing.F) {
	f.Add("", "")
	f.Add("a", "1")
	f.Add("b", "2")
	f.Add("αβγ", "δ")
	f.Add("emoji🙂", "🙂🙂")
	f.Add("long", strings.Repeat("x", 1024))

	f.Fuzz(func(t *testing.T, k, v string) {
		const limit = 1 << 12
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		c := New[string, string](Options{
			CapacityMain: 16, CapacityGhostLFU: 8, CapacityGhostLRU: 8,
			DebugAssertions: true,
		})

		c.Insert(k, v)
		got, ok := c.Get(k)
		if !ok || got != v {
			t.Fatalf("after Insert/Get: want %q, got %q ok=%v", v, got, ok)
		}

		// Re-inserting the same key with a new value must still be
		// immediately readable, whether it updated in place or was
		// revived from a ghost history by an intervening eviction.
		c.Insert(k, v+"!")
		got2, ok2 := c.Get(k)
		if !ok2 || got2 != v+"!" {
			t.Fatalf("after second Insert/Get: want %q, got %q ok=%v", v+"!", got2, ok2)
		}

		main, lfu, lru := c.Sizes()
		if main > 16 || lfu > 8 || lru > 8 {
			t.Fatalf("capacity exceeded: main=%d lfu=%d lru=%d", main, lfu, lru)
		}
	})
}
