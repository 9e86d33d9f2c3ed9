// Package prom adapts lecar.Metrics to Prometheus collectors, the way the
// teacher's own prom adapter exported cache.Metrics.
package prom

import (
	"github.com/ivanbrykalov/lecar/lecar"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements lecar.Metrics and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits     prometheus.Counter
	misses   prometheus.Counter
	ghostHit *prometheus.CounterVec
	evicts   *prometheus.CounterVec
	pLFU     prometheus.Gauge
	sizeMain prometheus.Gauge
	sizeLFU  prometheus.Gauge
	sizeLRU  prometheus.Gauge
}

// New constructs a Prometheus metrics adapter for a lecar.Controller.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub, Name: "hits_total",
			Help: "Main-store hits", ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub, Name: "misses_total",
			Help: "Main-store misses (including ghost hits)", ConstLabels: constLabels,
		}),
		ghostHit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub, Name: "ghost_hits_total",
			Help: "Ghost-history hits by the policy whose ghost matched", ConstLabels: constLabels,
		}, []string{"policy"}),
		evicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: sub, Name: "evictions_total",
			Help: "Main-store evictions by the policy that selected the victim", ConstLabels: constLabels,
		}, []string{"policy"}),
		pLFU: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: sub, Name: "p_lfu",
			Help: "Current learned probability of drawing the LFU policy", ConstLabels: constLabels,
		}),
		sizeMain: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: sub, Name: "size_main",
			Help: "Resident entries in the main store", ConstLabels: constLabels,
		}),
		sizeLFU: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: sub, Name: "size_ghost_lfu",
			Help: "Resident entries in the LFU ghost history", ConstLabels: constLabels,
		}),
		sizeLRU: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: sub, Name: "size_ghost_lru",
			Help: "Resident entries in the LRU ghost history", ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.ghostHit, a.evicts, a.pLFU, a.sizeMain, a.sizeLFU, a.sizeLRU)
	return a
}

// Hit increments the main-store hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the main-store miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// GhostHit increments the ghost-hit counter labeled by the matching policy.
func (a *Adapter) GhostHit(p lecar.Policy) { a.ghostHit.WithLabelValues(p.String()).Inc() }

// Eviction increments the eviction counter labeled by the evicting policy.
func (a *Adapter) Eviction(p lecar.Policy) { a.evicts.WithLabelValues(p.String()).Inc() }

// PLFU sets the current learned probability gauge.
func (a *Adapter) PLFU(p float64) { a.pLFU.Set(p) }

// Size updates the three population gauges.
func (a *Adapter) Size(main, ghostLFU, ghostLRU int) {
	a.sizeMain.Set(float64(main))
	a.sizeLFU.Set(float64(ghostLFU))
	a.sizeLRU.Set(float64(ghostLRU))
}

// Compile-time check: ensure Adapter implements lecar.Metrics.
var _ lecar.Metrics = (*Adapter)(nil)
