// Package config parses process-level bootstrap settings for the
// lecar-server command: flags first, with LECAR_* environment variables
// as a fallback for anything not set on the command line. This mirrors
// cmd/lecar-bench's direct use of the flag package — nothing in the
// example pack reaches for a dedicated config library, so plain flag (plus
// a thin env-var layer for container deployments) is the idiom to follow.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ivanbrykalov/lecar/lecar"
)

// Config is everything needed to stand up a lecar-server process.
type Config struct {
	CapacityMain     int
	CapacityGhostLFU int
	CapacityGhostLRU int

	Seed         int64
	InitialPLFU  float64
	LearningRate float64
	DiscountRate float64

	ListenAddr    string
	MetricsAddr   string
	CountersPath  string
	SnapshotPath  string
	SnapshotEvery time.Duration
}

// Parse parses args (typically os.Args[1:]) with defaults overridable by
// LECAR_* environment variables, which are themselves overridable by an
// explicit flag. Panics are never used here: a malformed flag or env
// value is a startup-time user error, reported via the returned error.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("lecar-server", flag.ContinueOnError)

	cap := fs.Int("cap", envInt("LECAR_CAP", 100_000), "main-store capacity (entries)")
	ghostLFU := fs.Int("ghost_lfu", envInt("LECAR_GHOST_LFU", 0), "LFU ghost-history capacity (0=same as cap)")
	ghostLRU := fs.Int("ghost_lru", envInt("LECAR_GHOST_LRU", 0), "LRU ghost-history capacity (0=same as cap)")
	seed := fs.Int64("seed", envInt64("LECAR_SEED", 1), "PRNG seed for the policy selector")
	initialPLFU := fs.Float64("initial_plfu", envFloat("LECAR_INITIAL_PLFU", 0.5), "starting p_LFU")
	learningRate := fs.Float64("learning_rate", envFloat("LECAR_LEARNING_RATE", lecar.DefaultLearningRate), "learner learning rate")
	discountRate := fs.Float64("discount_rate", envFloat("LECAR_DISCOUNT_RATE", lecar.DefaultDiscountRate), "learner time-decay rate")
	listenAddr := fs.String("listen", envString("LECAR_LISTEN", ":8081"), "HTTP API listen address")
	metricsAddr := fs.String("metrics", envString("LECAR_METRICS", ":8080"), "Prometheus metrics listen address")
	countersPath := fs.String("counters", envString("LECAR_COUNTERS", ""), "CSV counters sink path (empty = disabled)")
	snapshotPath := fs.String("snapshot", envString("LECAR_SNAPSHOT", ""), "snapshot file path (empty = disabled)")
	snapshotEvery := fs.Duration("snapshot_every", envDuration("LECAR_SNAPSHOT_EVERY", 0), "snapshot interval (0 = write once on shutdown only)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		CapacityMain:     *cap,
		CapacityGhostLFU: *ghostLFU,
		CapacityGhostLRU: *ghostLRU,
		Seed:             *seed,
		InitialPLFU:      *initialPLFU,
		LearningRate:     *learningRate,
		DiscountRate:     *discountRate,
		ListenAddr:       *listenAddr,
		MetricsAddr:      *metricsAddr,
		CountersPath:     *countersPath,
		SnapshotPath:     *snapshotPath,
		SnapshotEvery:    *snapshotEvery,
	}
	if cfg.CapacityGhostLFU == 0 {
		cfg.CapacityGhostLFU = cfg.CapacityMain
	}
	if cfg.CapacityGhostLRU == 0 {
		cfg.CapacityGhostLRU = cfg.CapacityMain
	}
	if cfg.CapacityMain < 1 {
		return Config{}, fmt.Errorf("config: cap must be >= 1, got %d", cfg.CapacityMain)
	}
	return cfg, nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
