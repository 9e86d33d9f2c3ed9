package lecar

import (
	"math/rand"
	"strconv"
	"sync/atomic"
	"testing"
)

// benchmarkMix exercises a read/write mix against a warm controller.
func benchmarkMix(b *testing.B, readsPct int) {
	c := New[string, string](Options{
		CapacityMain: 100_000, CapacityGhostLFU: 50_000, CapacityGhostLRU: 50_000,
	})

	for i := 0; i < 50_000; i++ {
		k := "k:" + strconv.Itoa(i)
		c.Insert(k, "v")
	}

	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	keyMask := (1 << 16) - 1

	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		i := 0
		for pb.Next() {
			k := "k:" + strconv.Itoa(i&keyMask)
			if r.Intn(100) < readsPct {
				c.Get(k)
			} else {
				c.Insert(k, "v")
			}
			i++
		}
	})
}

func BenchmarkController_90r10w(b *testing.B) { benchmarkMix(b, 90) }
func BenchmarkController_50r50w(b *testing.B) { benchmarkMix(b, 50) }

// benchmarkMixInt is the same workload with int keys, removing
// strconv/alloc noise to better expose the hot path.
func benchmarkMixInt(b *testing.B, readsPct int) {
	c := New[int, int](Options{
		CapacityMain: 100_000, CapacityGhostLFU: 50_000, CapacityGhostLRU: 50_000,
	})

	for i := 0; i < 50_000; i++ {
		c.Insert(i, 1)
	}

	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	keyMask := (1 << 16) - 1

	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		i := 0
		for pb.Next() {
			k := i & keyMask
			if r.Intn(100) < readsPct {
				c.Get(k)
			} else {
				c.Insert(k, 1)
			}
			i++
		}
	})
}

func BenchmarkController_IntKeys_90r10w(b *testing.B) { benchmarkMixInt(b, 90) }
func BenchmarkController_IntKeys_50r50w(b *testing.B) { benchmarkMixInt(b, 50) }
