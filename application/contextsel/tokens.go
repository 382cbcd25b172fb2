package contextsel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/xFoundry/mentor-hub-canvas/domain/config"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/entities"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/pkg/observability"
)

const defaultEstimateCacheSize = 512

// Estimator computes a heuristic token count for nodes and context sets.
// The count is chars/4 rounded up over a type-specific text slice, an
// estimate rather than a tokenizer-exact figure.
type Estimator struct {
	store   nodeReader
	cfg     *config.DomainConfig
	metrics *observability.Collector

	// cache keys on node id plus version, so any payload mutation
	// naturally invalidates the stale estimate.
	cache *lru.Cache[string, int]
}

type nodeReader interface {
	GetNode(ctx context.Context, id valueobjects.NodeID) (*entities.Node, error)
}

// NewEstimator creates a token estimator. The metrics collector may be nil.
func NewEstimator(store nodeReader, cfg *config.DomainConfig, metrics *observability.Collector) *Estimator {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	cache, _ := lru.New[string, int](defaultEstimateCacheSize)
	return &Estimator{store: store, cfg: cfg, metrics: metrics, cache: cache}
}

// EstimateNode returns the token estimate for one node.
func (e *Estimator) EstimateNode(node *entities.Node) int {
	if node == nil {
		return 0
	}

	key := fmt.Sprintf("%s:%d", node.ID().String(), node.Version())
	if cached, ok := e.cache.Get(key); ok {
		if e.metrics != nil {
			e.metrics.CacheHits.Inc()
		}
		return cached
	}
	if e.metrics != nil {
		e.metrics.CacheMisses.Inc()
	}

	estimate := e.estimateText(e.textSlice(node.Data()))
	e.cache.Add(key, estimate)
	return estimate
}

// EstimateSet sums the estimates of the given nodes, skipping ids that no
// longer resolve.
func (e *Estimator) EstimateSet(ctx context.Context, ids []valueobjects.NodeID) (int, error) {
	total := 0
	for _, id := range ids {
		node, err := e.store.GetNode(ctx, id)
		if err != nil {
			continue
		}
		total += e.EstimateNode(node)
	}
	return total, nil
}

// textSlice extracts the text that would actually be sent as context for a
// node, bounded per type so one huge payload cannot dominate the estimate.
func (e *Estimator) textSlice(data entities.NodeData) string {
	switch d := data.(type) {
	case *entities.ZoneData:
		messages := d.RecentMessages
		if len(messages) > e.cfg.RecentMessageLimit {
			messages = messages[len(messages)-e.cfg.RecentMessageLimit:]
		}
		return d.HandoffSummary + strings.Join(messages, "\n")

	case *entities.DocumentData:
		text := e.documentText(d)
		if len(text) > e.cfg.DocumentSliceLimit {
			text = text[:e.cfg.DocumentSliceLimit]
		}
		return text

	case *entities.TableData:
		return e.tableSample(d)

	case *entities.GraphEntityData:
		return d.Description

	case *entities.TileData:
		return d.Title

	default:
		return ""
	}
}

func (e *Estimator) documentText(d *entities.DocumentData) string {
	var parts []string
	for _, entry := range d.Entries() {
		parts = append(parts, entry.Content)
	}
	text := strings.Join(parts, "\n")
	if text == "" {
		text = d.Summary
	}
	return text
}

// tableSample renders the first few rows of each table as JSON, matching
// what the context builder would actually serialize.
func (e *Estimator) tableSample(d *entities.TableData) string {
	var b strings.Builder
	for _, entry := range d.Entries() {
		rows := entry.Rows
		if len(rows) > e.cfg.TableSampleRows {
			rows = rows[:e.cfg.TableSampleRows]
		}
		if encoded, err := json.Marshal(rows); err == nil {
			b.Write(encoded)
		}
	}
	if b.Len() == 0 {
		return d.Summary
	}
	return b.String()
}

func (e *Estimator) estimateText(text string) int {
	if text == "" {
		return 0
	}
	divisor := e.cfg.CharsPerToken
	if divisor <= 0 {
		divisor = 4
	}
	return (len(text) + divisor - 1) / divisor
}
