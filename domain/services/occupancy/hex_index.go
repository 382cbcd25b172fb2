package occupancy

import (
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/domain/hex"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

// HexIndex tracks which hex coordinates are occupied and by which tile.
// Invariant: at most one tile per coordinate.
type HexIndex struct {
	cells map[hex.Coord]valueobjects.NodeID
}

// NewHexIndex creates an empty hex occupancy index
func NewHexIndex() *HexIndex {
	return &HexIndex{cells: make(map[hex.Coord]valueobjects.NodeID)}
}

// Occupied reports whether a coordinate holds a tile
func (idx *HexIndex) Occupied(c hex.Coord) bool {
	_, ok := idx.cells[c]
	return ok
}

// OwnerAt returns the tile occupying a coordinate, if any
func (idx *HexIndex) OwnerAt(c hex.Coord) (valueobjects.NodeID, bool) {
	id, ok := idx.cells[c]
	return id, ok
}

// Place records a tile at a coordinate
func (idx *HexIndex) Place(c hex.Coord, id valueobjects.NodeID) error {
	if id.IsZero() {
		return pkgerrors.NewValidationError("tile ID cannot be empty")
	}
	if existing, ok := idx.cells[c]; ok {
		if existing.Equals(id) {
			return nil
		}
		return pkgerrors.NewConflictError("hex " + c.Key() + " is already occupied")
	}
	idx.cells[c] = id
	return nil
}

// Remove clears a coordinate
func (idx *HexIndex) Remove(c hex.Coord) {
	delete(idx.cells, c)
}

// Move relocates a tile from one coordinate to another atomically.
// The destination must be free and the source must hold the given tile.
func (idx *HexIndex) Move(from, to hex.Coord, id valueobjects.NodeID) error {
	occupant, ok := idx.cells[from]
	if !ok || !occupant.Equals(id) {
		return pkgerrors.NewNotFoundError("tile at " + from.Key())
	}
	if from == to {
		return nil
	}
	if _, taken := idx.cells[to]; taken {
		return pkgerrors.NewConflictError("hex " + to.Key() + " is already occupied")
	}
	delete(idx.cells, from)
	idx.cells[to] = id
	return nil
}

// CoordOf returns the coordinate currently held by a tile.
// Linear over the cell map; the grid holds tens of tiles.
func (idx *HexIndex) CoordOf(id valueobjects.NodeID) (hex.Coord, bool) {
	for c, occupant := range idx.cells {
		if occupant.Equals(id) {
			return c, true
		}
	}
	return hex.Coord{}, false
}

// Len returns the number of occupied cells
func (idx *HexIndex) Len() int {
	return len(idx.cells)
}
