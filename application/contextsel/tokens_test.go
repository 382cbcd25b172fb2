package contextsel

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xFoundry/mentor-hub-canvas/domain/core/entities"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/infrastructure/persistence/memory"
)

func docNode(t *testing.T, content string) *entities.Node {
	t.Helper()
	node, err := entities.NewFreeformNode(
		valueobjects.NewNodeID(), entities.NodeTypeDocument,
		valueobjects.Position{}, 300, 380,
		&entities.DocumentData{Title: "doc", Content: content},
	)
	require.NoError(t, err)
	return node
}

func TestEstimateMonotonic(t *testing.T) {
	estimator := NewEstimator(memory.NewNodeStore(), nil, nil)

	short := estimator.EstimateNode(docNode(t, "brief"))
	long := estimator.EstimateNode(docNode(t, strings.Repeat("wordy ", 200)))

	assert.Greater(t, short, 0)
	assert.GreaterOrEqual(t, long, short, "longer text never estimates smaller")
}

func TestEstimateDocumentTruncation(t *testing.T) {
	estimator := NewEstimator(memory.NewNodeStore(), nil, nil)

	atLimit := estimator.EstimateNode(docNode(t, strings.Repeat("x", 4000)))
	beyond := estimator.EstimateNode(docNode(t, strings.Repeat("x", 40000)))

	assert.Equal(t, atLimit, beyond, "content beyond the slice limit is ignored")
	assert.Equal(t, 1000, atLimit)
}

func TestEstimateTableSamplesRows(t *testing.T) {
	estimator := NewEstimator(memory.NewNodeStore(), nil, nil)

	makeTable := func(rowCount int) *entities.Node {
		rows := make([]entities.TableRow, rowCount)
		for i := range rows {
			rows[i] = entities.TableRow{"name": "mentor", "score": 10}
		}
		node, err := entities.NewFreeformNode(
			valueobjects.NewNodeID(), entities.NodeTypeTable,
			valueobjects.Position{}, 340, 260,
			&entities.TableData{Table: &entities.TableEntry{Rows: rows}, RowCount: rowCount},
		)
		require.NoError(t, err)
		return node
	}

	five := estimator.EstimateNode(makeTable(5))
	fifty := estimator.EstimateNode(makeTable(50))
	assert.Equal(t, five, fifty, "only the sample rows are serialized")
}

func TestEstimateZoneUsesRecentMessages(t *testing.T) {
	estimator := NewEstimator(memory.NewNodeStore(), nil, nil)

	makeZone := func(messages []string) *entities.Node {
		node, err := entities.NewFreeformNode(
			valueobjects.NewNodeID(), entities.NodeTypeZone,
			valueobjects.Position{}, 360, 420,
			&entities.ZoneData{HandoffSummary: "summary", RecentMessages: messages},
		)
		require.NoError(t, err)
		return node
	}

	few := make([]string, 10)
	many := make([]string, 40)
	for i := range few {
		few[i] = "hello there"
	}
	for i := range many {
		many[i] = "hello there"
	}

	assert.Equal(t, estimator.EstimateNode(makeZone(few)), estimator.EstimateNode(makeZone(many)),
		"only the recent window counts")
}

func TestEstimateCacheInvalidatesOnVersion(t *testing.T) {
	estimator := NewEstimator(memory.NewNodeStore(), nil, nil)

	node := docNode(t, "first")
	first := estimator.EstimateNode(node)
	assert.Equal(t, first, estimator.EstimateNode(node), "second call served from cache")

	require.NoError(t, node.MutateData(func(current entities.NodeData) entities.NodeData {
		current.(*entities.DocumentData).Content = strings.Repeat("grown content ", 50)
		return current
	}))

	assert.Greater(t, estimator.EstimateNode(node), first, "version bump refreshes the estimate")
}

func TestEstimateSet(t *testing.T) {
	ctx := context.Background()
	store := memory.NewNodeStore()
	estimator := NewEstimator(store, nil, nil)

	a := docNode(t, "aaaa")
	b := docNode(t, "bbbbbbbb")
	require.NoError(t, store.AddNode(ctx, a))
	require.NoError(t, store.AddNode(ctx, b))

	total, err := estimator.EstimateSet(ctx, []valueobjects.NodeID{a.ID(), b.ID(), valueobjects.NewNodeID()})
	require.NoError(t, err)
	assert.Equal(t, estimator.EstimateNode(a)+estimator.EstimateNode(b), total,
		"unknown ids are skipped")
}
