package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollectorIsIndependent(t *testing.T) {
	a := NewCollector("canvas_a")
	b := NewCollector("canvas_b")
	require.NotSame(t, a, b)
	require.NotSame(t, a.Registry(), b.Registry())

	a.PlacementFallbacks.Inc()
	a.ReconcileOutcomes.WithLabelValues("create").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.PlacementFallbacks))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.PlacementFallbacks))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ReconcileOutcomes.WithLabelValues("create")))
}

func TestCollectorRegistersAllMetrics(t *testing.T) {
	c := NewCollector("canvas")
	c.ReconcileOutcomes.WithLabelValues("create").Inc()
	c.MergePrompts.WithLabelValues("prompted").Inc()
	c.CacheHits.Inc()
	c.CacheMisses.Inc()
	c.PlacementFallbacks.Inc()
	c.ReconcileDuration.Observe(0.01)
	c.PlacementRings.Observe(2)

	families, err := c.Registry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"canvas_reconcile_outcomes_total",
		"canvas_reconcile_duration_seconds",
		"canvas_placement_fallbacks_total",
		"canvas_placement_rings",
		"canvas_merge_prompts_total",
		"canvas_cache_hits_total",
		"canvas_cache_misses_total",
	}, names)
}
