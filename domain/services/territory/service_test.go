package territory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xFoundry/mentor-hub-canvas/domain/core/entities"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/domain/hex"
	"github.com/xFoundry/mentor-hub-canvas/domain/services/occupancy"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

type fixture struct {
	hexes   *occupancy.HexIndex
	service *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hexes := occupancy.NewHexIndex()
	return &fixture{hexes: hexes, service: NewService(hexes, nil)}
}

// placeTile registers a tile on the grid and, when territory is non-nil,
// assigns it there.
func (f *fixture) placeTile(t *testing.T, coord hex.Coord, territory *entities.Territory) valueobjects.NodeID {
	t.Helper()
	id := valueobjects.NewNodeID()
	require.NoError(t, f.hexes.Place(coord, id))
	if territory != nil {
		require.NoError(t, f.service.AssignTile(territory.ID(), id))
	}
	return id
}

func TestAssignTile(t *testing.T) {
	f := newFixture(t)
	alpha, err := f.service.CreateTerritory("Alpha", "#f59e0b", hex.Coord{})
	require.NoError(t, err)
	beta, err := f.service.CreateTerritory("Beta", "#0ea5e9", hex.Coord{Q: 5, R: 0})
	require.NoError(t, err)

	tile := f.placeTile(t, hex.Coord{Q: 0, R: 0}, alpha)

	owner, ok := f.service.OwnerOf(tile)
	require.True(t, ok)
	assert.True(t, owner.ID().Equals(alpha.ID()))

	// A tile cannot be claimed by a second territory.
	err = f.service.AssignTile(beta.ID(), tile)
	assert.True(t, pkgerrors.IsConflict(err))

	require.NoError(t, f.service.UnassignTile(tile))
	_, ok = f.service.OwnerOf(tile)
	assert.False(t, ok)

	require.NoError(t, f.service.AssignTile(beta.ID(), tile))

	err = f.service.AssignTile(valueobjects.NewTerritoryID(), tile)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestAdjacentTerritories(t *testing.T) {
	f := newFixture(t)
	alpha, _ := f.service.CreateTerritory("Alpha", "#f59e0b", hex.Coord{})
	beta, _ := f.service.CreateTerritory("Beta", "#0ea5e9", hex.Coord{Q: 5, R: 0})

	center := hex.Coord{Q: 0, R: 0}

	// Two alpha tiles and one beta tile around the center; alpha must be
	// reported once, in first-seen direction order.
	f.placeTile(t, center.Neighbor(0), alpha)
	f.placeTile(t, center.Neighbor(2), alpha)
	f.placeTile(t, center.Neighbor(4), beta)

	adjacent := f.service.AdjacentTerritories(center, valueobjects.NodeID{})
	require.Len(t, adjacent, 2)
	assert.True(t, adjacent[0].ID().Equals(alpha.ID()))
	assert.True(t, adjacent[1].ID().Equals(beta.ID()))

	// Excluding a tile removes its territory when it was the only witness.
	lone := f.placeTile(t, center.Neighbor(1), nil)
	require.NoError(t, f.service.AssignTile(beta.ID(), lone))
	adjacent = f.service.AdjacentTerritories(center, lone)
	require.Len(t, adjacent, 2)
}

func TestCheckMerge(t *testing.T) {
	f := newFixture(t)
	alpha, _ := f.service.CreateTerritory("Alpha", "#f59e0b", hex.Coord{})
	beta, _ := f.service.CreateTerritory("Beta", "#0ea5e9", hex.Coord{Q: 5, R: 0})

	target := hex.Coord{Q: 0, R: 0}
	f.placeTile(t, target.Neighbor(3), beta)

	t.Run("single territory involved", func(t *testing.T) {
		tile := f.placeTile(t, hex.Coord{Q: 10, R: 10}, beta)
		check := f.service.CheckMerge(tile, hex.Coord{Q: 20, R: 20})
		assert.False(t, check.Required)
		require.Len(t, check.Territories, 1)
	})

	t.Run("own territory plus adjacent one", func(t *testing.T) {
		tile := f.placeTile(t, hex.Coord{Q: 12, R: 12}, alpha)
		check := f.service.CheckMerge(tile, target)
		assert.True(t, check.Required)
		require.Len(t, check.Territories, 2)
		// The tile's own territory leads.
		assert.True(t, check.Territories[0].ID().Equals(alpha.ID()))
		assert.True(t, check.Territories[1].ID().Equals(beta.ID()))
	})

	t.Run("unowned tile next to one territory", func(t *testing.T) {
		tile := f.placeTile(t, hex.Coord{Q: 14, R: 14}, nil)
		check := f.service.CheckMerge(tile, target)
		assert.False(t, check.Required)
	})
}

func TestMergeLifecycle(t *testing.T) {
	alpha, err := entities.NewTerritory("Alpha", "#f59e0b", hex.Coord{})
	require.NoError(t, err)
	beta, err := entities.NewTerritory("Beta", "#0ea5e9", hex.Coord{Q: 3, R: 0})
	require.NoError(t, err)

	tile := valueobjects.NewNodeID()
	from := hex.Coord{Q: 0, R: 0}
	to := hex.Coord{Q: 1, R: 0}

	t.Run("confirm", func(t *testing.T) {
		merge := NewMerge(tile, from, to, []*entities.Territory{alpha, beta})
		assert.Equal(t, MergePending, merge.State())

		require.NoError(t, merge.Confirm())
		assert.Equal(t, MergeConfirmed, merge.State())

		// A resolved merge cannot be resolved again.
		assert.True(t, pkgerrors.IsConflict(merge.Confirm()))
		assert.True(t, pkgerrors.IsConflict(merge.Cancel()))
	})

	t.Run("cancel", func(t *testing.T) {
		merge := NewMerge(tile, from, to, []*entities.Territory{alpha, beta})
		require.NoError(t, merge.Cancel())
		assert.Equal(t, MergeCancelled, merge.State())
		assert.Equal(t, from, merge.From())
	})
}
