package interaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xFoundry/mentor-hub-canvas/domain/config"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/entities"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/domain/hex"
	"github.com/xFoundry/mentor-hub-canvas/domain/services/occupancy"
	"github.com/xFoundry/mentor-hub-canvas/domain/services/territory"
	"github.com/xFoundry/mentor-hub-canvas/infrastructure/persistence/memory"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

type dragFixture struct {
	store       *memory.NodeStore
	hexes       *occupancy.HexIndex
	territories *territory.Service
	prefs       *memory.PreferenceStore
	controller  *DragController
	cfg         *config.DomainConfig
}

func newDragFixture(t *testing.T) *dragFixture {
	t.Helper()
	store := memory.NewNodeStore()
	hexes := occupancy.NewHexIndex()
	territories := territory.NewService(hexes, nil)
	prefs := memory.NewPreferenceStore()
	cfg := config.DefaultDomainConfig()

	return &dragFixture{
		store:       store,
		hexes:       hexes,
		territories: territories,
		prefs:       prefs,
		cfg:         cfg,
		controller:  NewDragController(store, hexes, territories, prefs, cfg, nil, nil),
	}
}

func (f *dragFixture) addTile(t *testing.T, coord hex.Coord) valueobjects.NodeID {
	t.Helper()
	node, err := entities.NewTileNode(valueobjects.NewNodeID(), coord, &entities.TileData{Title: "tile"})
	require.NoError(t, err)
	require.NoError(t, f.store.AddNode(context.Background(), node))
	require.NoError(t, f.hexes.Place(coord, node.ID()))
	return node.ID()
}

func (f *dragFixture) tileCoord(t *testing.T, id valueobjects.NodeID) hex.Coord {
	t.Helper()
	node, err := f.store.GetNode(context.Background(), id)
	require.NoError(t, err)
	coord, ok := node.Coord()
	require.True(t, ok)
	return coord
}

// pointerAt returns a pixel position at the center of a hex cell.
func (f *dragFixture) pointerAt(coord hex.Coord) valueobjects.Position {
	return hex.AxialToPixel(coord, f.cfg.HexSize)
}

func TestDragCommit(t *testing.T) {
	f := newDragFixture(t)
	ctx := context.Background()
	tile := f.addTile(t, hex.Coord{Q: 0, R: 0})

	require.NoError(t, f.controller.Begin(ctx, tile))

	preview, err := f.controller.Preview(f.pointerAt(hex.Coord{Q: 2, R: -1}))
	require.NoError(t, err)
	assert.Equal(t, hex.Coord{Q: 2, R: -1}, preview)

	result, err := f.controller.Drop(ctx, f.pointerAt(hex.Coord{Q: 2, R: -1}))
	require.NoError(t, err)
	assert.Equal(t, DropCommitted, result.Resolution)
	assert.Equal(t, hex.Coord{Q: 2, R: -1}, f.tileCoord(t, tile))
	assert.True(t, f.hexes.Occupied(hex.Coord{Q: 2, R: -1}))
	assert.False(t, f.hexes.Occupied(hex.Coord{Q: 0, R: 0}))
}

func TestDragOccupiedDestinationReverts(t *testing.T) {
	f := newDragFixture(t)
	ctx := context.Background()
	tile := f.addTile(t, hex.Coord{Q: 0, R: 0})
	f.addTile(t, hex.Coord{Q: 1, R: 0})

	require.NoError(t, f.controller.Begin(ctx, tile))
	result, err := f.controller.Drop(ctx, f.pointerAt(hex.Coord{Q: 1, R: 0}))
	require.NoError(t, err)

	assert.Equal(t, DropReverted, result.Resolution)
	assert.Equal(t, hex.Coord{Q: 0, R: 0}, result.Coord)
	assert.Equal(t, hex.Coord{Q: 0, R: 0}, f.tileCoord(t, tile), "tile untouched")
}

func TestDragMergeGate(t *testing.T) {
	f := newDragFixture(t)
	ctx := context.Background()

	alpha, err := f.territories.CreateTerritory("Alpha", "#f59e0b", hex.Coord{})
	require.NoError(t, err)
	beta, err := f.territories.CreateTerritory("Beta", "#0ea5e9", hex.Coord{Q: 5, R: 0})
	require.NoError(t, err)

	dragged := f.addTile(t, hex.Coord{Q: 0, R: 0})
	require.NoError(t, f.territories.AssignTile(alpha.ID(), dragged))

	neighbor := f.addTile(t, hex.Coord{Q: 3, R: 0})
	require.NoError(t, f.territories.AssignTile(beta.ID(), neighbor))

	// Dropping next to beta territory while owned by alpha opens the gate.
	target := hex.Coord{Q: 2, R: 0}
	require.NoError(t, f.controller.Begin(ctx, dragged))
	result, err := f.controller.Drop(ctx, f.pointerAt(target))
	require.NoError(t, err)

	require.Equal(t, DropMergePending, result.Resolution)
	assert.Equal(t, hex.Coord{Q: 0, R: 0}, result.Coord, "tile frozen at pre-drag coordinate")
	assert.Equal(t, hex.Coord{Q: 0, R: 0}, f.tileCoord(t, dragged))
	require.NotNil(t, f.controller.PendingMerge())

	// The gate blocks further drags until resolved.
	err = f.controller.Begin(ctx, neighbor)
	assert.True(t, pkgerrors.IsConflict(err))

	t.Run("cancel restores pre-drag position", func(t *testing.T) {
		require.NoError(t, f.controller.CancelMerge())
		assert.Nil(t, f.controller.PendingMerge())
		assert.Equal(t, hex.Coord{Q: 0, R: 0}, f.tileCoord(t, dragged))

		owner, ok := f.territories.OwnerOf(dragged)
		require.True(t, ok)
		assert.True(t, owner.ID().Equals(alpha.ID()), "no territory mutation on cancel")
		assert.Equal(t, 1, alpha.TileCount())
		assert.Equal(t, 1, beta.TileCount())
	})
}

func TestDragMergeConfirmConsolidates(t *testing.T) {
	f := newDragFixture(t)
	ctx := context.Background()

	alpha, _ := f.territories.CreateTerritory("Alpha", "#f59e0b", hex.Coord{})
	beta, _ := f.territories.CreateTerritory("Beta", "#0ea5e9", hex.Coord{Q: 5, R: 0})

	dragged := f.addTile(t, hex.Coord{Q: 0, R: 0})
	require.NoError(t, f.territories.AssignTile(alpha.ID(), dragged))
	neighbor := f.addTile(t, hex.Coord{Q: 3, R: 0})
	require.NoError(t, f.territories.AssignTile(beta.ID(), neighbor))

	target := hex.Coord{Q: 2, R: 0}
	require.NoError(t, f.controller.Begin(ctx, dragged))
	result, err := f.controller.Drop(ctx, f.pointerAt(target))
	require.NoError(t, err)
	require.Equal(t, DropMergePending, result.Resolution)

	require.NoError(t, f.controller.ConfirmMerge(ctx))

	assert.Equal(t, target, f.tileCoord(t, dragged), "move applied on confirm")
	assert.Equal(t, 2, alpha.TileCount(), "beta's tile folded into alpha")
	assert.Equal(t, 0, beta.TileCount())

	owner, ok := f.territories.OwnerOf(neighbor)
	require.True(t, ok)
	assert.True(t, owner.ID().Equals(alpha.ID()))
}

func TestDragMergeSkipConfirmation(t *testing.T) {
	f := newDragFixture(t)
	ctx := context.Background()
	require.NoError(t, f.prefs.SetMergeSkipConfirmation(ctx, true))

	alpha, _ := f.territories.CreateTerritory("Alpha", "#f59e0b", hex.Coord{})
	beta, _ := f.territories.CreateTerritory("Beta", "#0ea5e9", hex.Coord{Q: 5, R: 0})

	dragged := f.addTile(t, hex.Coord{Q: 0, R: 0})
	require.NoError(t, f.territories.AssignTile(alpha.ID(), dragged))
	neighbor := f.addTile(t, hex.Coord{Q: 3, R: 0})
	require.NoError(t, f.territories.AssignTile(beta.ID(), neighbor))

	target := hex.Coord{Q: 2, R: 0}
	require.NoError(t, f.controller.Begin(ctx, dragged))
	result, err := f.controller.Drop(ctx, f.pointerAt(target))
	require.NoError(t, err)

	assert.Equal(t, DropCommitted, result.Resolution, "preference bypasses the prompt")
	assert.Nil(t, f.controller.PendingMerge())
	assert.Equal(t, target, f.tileCoord(t, dragged))
	assert.Equal(t, 2, alpha.TileCount())
}

func TestDragValidation(t *testing.T) {
	f := newDragFixture(t)
	ctx := context.Background()

	_, err := f.controller.Preview(valueobjects.Position{})
	assert.True(t, pkgerrors.IsValidation(err), "preview without a drag")

	_, err = f.controller.Drop(ctx, valueobjects.Position{})
	assert.True(t, pkgerrors.IsValidation(err), "drop without a drag")

	err = f.controller.Begin(ctx, valueobjects.NewNodeID())
	assert.True(t, pkgerrors.IsNotFound(err), "unknown tile")

	// Free-form nodes cannot be dragged on the hex canvas.
	doc, err := entities.NewFreeformNode(
		valueobjects.NewNodeID(), entities.NodeTypeDocument,
		valueobjects.Position{}, 300, 380, nil,
	)
	require.NoError(t, err)
	require.NoError(t, f.store.AddNode(ctx, doc))
	assert.True(t, pkgerrors.IsValidation(f.controller.Begin(ctx, doc.ID())))

	// CancelDrag abandons cleanly.
	tile := f.addTile(t, hex.Coord{Q: 0, R: 0})
	require.NoError(t, f.controller.Begin(ctx, tile))
	f.controller.CancelDrag()
	_, err = f.controller.Drop(ctx, valueobjects.Position{})
	assert.Error(t, err)
}
