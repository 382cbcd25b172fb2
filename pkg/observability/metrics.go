package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds all Prometheus metrics for the canvas core
type Collector struct {
	registry *prometheus.Registry

	// Reconciliation metrics
	ReconcileOutcomes *prometheus.CounterVec
	ReconcileDuration prometheus.Histogram

	// Placement metrics
	PlacementFallbacks prometheus.Counter
	PlacementRings     prometheus.Histogram

	// Territory metrics
	MergePrompts *prometheus.CounterVec

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// NewCollector creates a metrics collector with the given namespace. Every
// collector owns its own registry.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	reconcileOutcomes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_outcomes_total",
			Help:      "Reconciliation passes by resolution rule",
		},
		[]string{"rule"},
	)

	reconcileDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of one artifact reconciliation pass",
			Buckets:   prometheus.DefBuckets,
		},
	)

	placementFallbacks := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placement_fallbacks_total",
			Help:      "Free-form placements that exhausted the ring search",
		},
	)

	placementRings := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "placement_rings",
			Help:      "Ring index at which a free slot was found",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		},
	)

	mergePrompts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merge_prompts_total",
			Help:      "Territory merge prompts by outcome",
		},
		[]string{"outcome"},
	)

	cacheHits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of cache hits",
		},
	)

	cacheMisses := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of cache misses",
		},
	)

	registry.MustRegister(
		reconcileOutcomes,
		reconcileDuration,
		placementFallbacks,
		placementRings,
		mergePrompts,
		cacheHits,
		cacheMisses,
	)

	return &Collector{
		registry:           registry,
		ReconcileOutcomes:  reconcileOutcomes,
		ReconcileDuration:  reconcileDuration,
		PlacementFallbacks: placementFallbacks,
		PlacementRings:     placementRings,
		MergePrompts:       mergePrompts,
		CacheHits:          cacheHits,
		CacheMisses:        cacheMisses,
	}
}

// Registry exposes the collector's registry so an embedding application
// can mount it on whatever scrape endpoint it owns.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
