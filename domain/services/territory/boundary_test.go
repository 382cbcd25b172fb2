package territory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xFoundry/mentor-hub-canvas/domain/core/entities"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/domain/hex"
)

const boundaryHexSize = 56.0

func TestBoundarySegmentsSingleHex(t *testing.T) {
	segments := BoundarySegments([]hex.Coord{{Q: 0, R: 0}}, boundaryHexSize)
	assert.Len(t, segments, 6)
}

func TestBoundarySegmentsSharedEdgeDropped(t *testing.T) {
	// Two adjacent hexes share one edge; the boundary has 2*6 - 2 segments.
	tiles := []hex.Coord{{Q: 0, R: 0}, {Q: 1, R: 0}}
	segments := BoundarySegments(tiles, boundaryHexSize)
	assert.Len(t, segments, 10)
}

func TestStitchSegmentsClosesLoop(t *testing.T) {
	tolerance := boundaryHexSize * 1e-3

	segments := BoundarySegments([]hex.Coord{{Q: 0, R: 0}}, boundaryHexSize)
	paths := StitchSegments(segments, tolerance)

	require.Len(t, paths, 1)
	path := paths[0]
	// Six corners plus the closing point.
	require.Len(t, path, 7)
	assert.True(t, path[0].CloseTo(path[len(path)-1], tolerance))
}

func TestStitchSegmentsDisjointGroups(t *testing.T) {
	tolerance := boundaryHexSize * 1e-3

	// Two far-apart hexes produce two separate outlines.
	segments := BoundarySegments([]hex.Coord{{Q: 0, R: 0}, {Q: 10, R: 10}}, boundaryHexSize)
	paths := StitchSegments(segments, tolerance)
	assert.Len(t, paths, 2)
}

func TestBoundaryBuilderCachesByRevision(t *testing.T) {
	builder, err := NewBoundaryBuilder(boundaryHexSize, 16)
	require.NoError(t, err)

	territory, err := entities.NewTerritory("Alpha", "#f59e0b", hex.Coord{})
	require.NoError(t, err)

	tileA := valueobjects.NewNodeID()
	require.NoError(t, territory.AddTile(tileA))

	coords := map[string]hex.Coord{tileA.String(): {Q: 0, R: 0}}
	coordOf := func(id valueobjects.NodeID) (hex.Coord, bool) {
		c, ok := coords[id.String()]
		return c, ok
	}

	first := builder.PathsFor(territory, coordOf)
	require.Len(t, first, 1)

	// Same revision: mutating the lookup table has no visible effect.
	coords[tileA.String()] = hex.Coord{Q: 4, R: 4}
	assert.Equal(t, first, builder.PathsFor(territory, coordOf))

	// Membership change bumps the revision and invalidates the cache.
	tileB := valueobjects.NewNodeID()
	require.NoError(t, territory.AddTile(tileB))
	coords[tileB.String()] = hex.Coord{Q: 5, R: 4}

	rebuilt := builder.PathsFor(territory, coordOf)
	assert.NotEqual(t, first, rebuilt)
}
