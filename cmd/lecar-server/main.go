// Command lecar-server runs the HTTP front-end described in spec §6 on
// top of a lecar.Controller, with Prometheus metrics, CSV counters, and an
// optional persisted-state snapshot on startup/shutdown.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ivanbrykalov/lecar/config"
	"github.com/ivanbrykalov/lecar/counters"
	"github.com/ivanbrykalov/lecar/httpapi"
	"github.com/ivanbrykalov/lecar/lecar"
	pmet "github.com/ivanbrykalov/lecar/metrics/prom"
	"github.com/ivanbrykalov/lecar/snapshot"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// fanoutMetrics dispatches every lecar.Metrics signal to both a Prometheus
// adapter and an optional CSV counters adapter. Prometheus covers live
// observability; the counters sink covers the fixed offline CSV layout
// spec §6 wants — neither one alone is enough to carry both roles.
type fanoutMetrics struct {
	prom     lecar.Metrics
	counters lecar.Metrics // nil if disabled
}

func (f fanoutMetrics) Hit() {
	f.prom.Hit()
	if f.counters != nil {
		f.counters.Hit()
	}
}

func (f fanoutMetrics) Miss() {
	f.prom.Miss()
	if f.counters != nil {
		f.counters.Miss()
	}
}

func (f fanoutMetrics) GhostHit(p lecar.Policy) {
	f.prom.GhostHit(p)
	if f.counters != nil {
		f.counters.GhostHit(p)
	}
}

func (f fanoutMetrics) Eviction(p lecar.Policy) {
	f.prom.Eviction(p)
	if f.counters != nil {
		f.counters.Eviction(p)
	}
}

func (f fanoutMetrics) PLFU(v float64) {
	f.prom.PLFU(v)
	if f.counters != nil {
		f.counters.PLFU(v)
	}
}

func (f fanoutMetrics) Size(main, ghostLFU, ghostLRU int) {
	f.prom.Size(main, ghostLFU, ghostLRU)
	if f.counters != nil {
		f.counters.Size(main, ghostLFU, ghostLRU)
	}
}

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	metrics := fanoutMetrics{prom: pmet.New(nil, "lecar", "server", nil)}
	var countersSink *counters.Sink
	if cfg.CountersPath != "" {
		countersSink = counters.New(cfg.CountersPath)
		metrics.counters = counters.Adapter{Sink: countersSink}
	}

	opt := lecar.Options{
		CapacityMain:     cfg.CapacityMain,
		CapacityGhostLFU: cfg.CapacityGhostLFU,
		CapacityGhostLRU: cfg.CapacityGhostLRU,
		Seed:             cfg.Seed,
		InitialPLFU:      cfg.InitialPLFU,
		LearningRate:     cfg.LearningRate,
		DiscountRate:     cfg.DiscountRate,
		Metrics:          metrics,
	}

	core := loadOrCreate(cfg, opt)

	srv := httpapi.New(core, log.Default())

	httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: srv.Handler()}
	go func() {
		log.Printf("httpapi: serving at %s", cfg.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("httpapi: %v", err)
		}
	}()

	http.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{Addr: cfg.MetricsAddr}
	go func() {
		log.Printf("metrics: serving at %s", cfg.MetricsAddr)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics: %v", err)
		}
	}()

	stopSnapshots := make(chan struct{})
	if cfg.SnapshotPath != "" && cfg.SnapshotEvery > 0 {
		go periodicSnapshot(core, cfg.SnapshotPath, cfg.SnapshotEvery, stopSnapshots)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	close(stopSnapshots)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)
	_ = metricsSrv.Shutdown(shutdownCtx)

	if countersSink != nil {
		if err := countersSink.Flush(); err != nil {
			log.Printf("counters: final flush: %v", err)
		}
	}
	if cfg.SnapshotPath != "" {
		if err := writeSnapshot(core, cfg.SnapshotPath); err != nil {
			log.Printf("snapshot: final write: %v", err)
		}
	}
}

// loadOrCreate restores a controller from an existing snapshot file if one
// is configured and present, falling back to a fresh controller otherwise.
func loadOrCreate(cfg config.Config, opt lecar.Options) *lecar.Controller[string, string] {
	if cfg.SnapshotPath == "" {
		return lecar.New[string, string](opt)
	}
	f, err := os.Open(cfg.SnapshotPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("snapshot: open %s: %v", cfg.SnapshotPath, err)
		}
		return lecar.New[string, string](opt)
	}
	defer f.Close()

	c, err := snapshot.Read(f, opt)
	if err != nil {
		log.Printf("snapshot: restore from %s failed, starting fresh: %v", cfg.SnapshotPath, err)
		return lecar.New[string, string](opt)
	}
	log.Printf("snapshot: restored from %s", cfg.SnapshotPath)
	return c
}

func writeSnapshot(c *lecar.Controller[string, string], path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := snapshot.Write(f, c); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func periodicSnapshot(c *lecar.Controller[string, string], path string, every time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := writeSnapshot(c, path); err != nil {
				log.Printf("snapshot: periodic write: %v", err)
			}
		case <-stop:
			return
		}
	}
}
