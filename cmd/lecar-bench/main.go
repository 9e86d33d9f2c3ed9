// Command lecar-bench runs a synthetic Zipf-distributed workload against a
// lecar.Controller and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ivanbrykalov/lecar/lecar"
	pmet "github.com/ivanbrykalov/lecar/metrics/prom"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// ---- Flags ----
	var (
		capacity     = flag.Int("cap", 100_000, "main-store capacity (entries)")
		ghostLFU     = flag.Int("ghost_lfu", 0, "LFU ghost-history capacity (0=same as cap)")
		ghostLRU     = flag.Int("ghost_lru", 0, "LRU ghost-history capacity (0=same as cap)")
		initialPLFU  = flag.Float64("initial_plfu", 0.5, "starting p_LFU")
		learningRate = flag.Float64("learning_rate", lecar.DefaultLearningRate, "learner learning rate")
		discountRate = flag.Float64("discount_rate", lecar.DefaultDiscountRate, "learner time-decay rate")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")

		keys  = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed  = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	frontMetrics := pmet.New(nil, "lecar", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	// ---- Build the adaptive cache under test ----
	gLFU, gLRU := *ghostLFU, *ghostLRU
	if gLFU == 0 {
		gLFU = *capacity
	}
	if gLRU == 0 {
		gLRU = *capacity
	}
	front := lecar.New[string, string](lecar.Options{
		CapacityMain:     *capacity,
		CapacityGhostLFU: gLFU,
		CapacityGhostLRU: gLRU,
		Seed:             *seed,
		InitialPLFU:      *initialPLFU,
		LearningRate:     *learningRate,
		DiscountRate:     *discountRate,
		Metrics:          frontMetrics,
	})

	// ---- Snapshot flags for goroutines ----
	readPctVal := *readPct
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	zipfSVal := *zipfS
	zipfVVal := *zipfV
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	// ---- Load generation ----
	var reads, writes, hits, misses, total uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()

			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(seedBase + int64(id)*9973))
			localZipf := rand.NewZipf(localR, zipfSVal, zipfVVal, keysMax)

			keyByZipf := func() string {
				return "k:" + strconv.FormatUint(localZipf.Uint64(), 10)
			}

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddUint64(&total, 1)
				if int(localR.Int31n(100)) < readPctVal {
					atomic.AddUint64(&reads, 1)
					k := keyByZipf()
					if _, ok := front.Get(k); ok {
						atomic.AddUint64(&hits, 1)
					} else {
						atomic.AddUint64(&misses, 1)
						// A real deployment would fetch the value from
						// whatever system of record backs a cold miss;
						// this synthetic workload just manufactures one.
						front.Insert(k, "v:"+k)
					}
				} else {
					atomic.AddUint64(&writes, 1)
					k := keyByZipf()
					v := "v" + strconv.Itoa(localR.Int())
					front.Insert(k, v)
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	readsN := atomic.LoadUint64(&reads)
	writesN := atomic.LoadUint64(&writes)
	hitsN := atomic.LoadUint64(&hits)
	missesN := atomic.LoadUint64(&misses)

	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(hitsN) / float64(readsN) * 100
	}

	main, ghostLFUSz, ghostLRUSz := front.Sizes()
	fmt.Printf("cap=%d ghost_lfu=%d ghost_lru=%d workers=%d keys=%d dur=%v seed=%d\n",
		*capacity, gLFU, gLRU, workersN, *keys, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), readsN, writesN)
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%  p_LFU=%.4f\n", hitsN, missesN, hitRate, front.PLFU())
	fmt.Printf("sizes: main=%d ghost_lfu=%d ghost_lru=%d\n", main, ghostLFUSz, ghostLRUSz)
}
