package entities

import (
	"time"

	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/domain/hex"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

// Territory is a named, colored grouping of hex tiles representing one
// project/workstream. Tile membership partitions the occupied hex set,
// except transiently while a merge is pending.
type Territory struct {
	id     valueobjects.TerritoryID
	name   string
	color  string
	anchor hex.Coord

	tiles map[valueobjects.NodeID]struct{}
	order []valueobjects.NodeID

	revision  int
	createdAt time.Time
	updatedAt time.Time
}

// NewTerritory creates a territory anchored at the given coordinate
func NewTerritory(name, color string, anchor hex.Coord) (*Territory, error) {
	if name == "" {
		return nil, pkgerrors.NewValidationError("territory name cannot be empty")
	}

	now := time.Now()
	return &Territory{
		id:        valueobjects.NewTerritoryID(),
		name:      name,
		color:     color,
		anchor:    anchor,
		tiles:     make(map[valueobjects.NodeID]struct{}),
		revision:  1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ID returns the territory's unique identifier
func (t *Territory) ID() valueobjects.TerritoryID {
	return t.id
}

// Name returns the territory's display name
func (t *Territory) Name() string {
	return t.name
}

// Color returns the territory's display color
func (t *Territory) Color() string {
	return t.color
}

// Anchor returns the coordinate the territory grew from
func (t *Territory) Anchor() hex.Coord {
	return t.anchor
}

// Rename changes the territory's display name
func (t *Territory) Rename(name string) error {
	if name == "" {
		return pkgerrors.NewValidationError("territory name cannot be empty")
	}
	t.name = name
	t.touch()
	return nil
}

// AddTile records a tile as belonging to this territory
func (t *Territory) AddTile(id valueobjects.NodeID) error {
	if id.IsZero() {
		return pkgerrors.NewValidationError("tile ID cannot be empty")
	}
	if _, exists := t.tiles[id]; exists {
		return pkgerrors.NewConflictError("tile already belongs to territory")
	}
	t.tiles[id] = struct{}{}
	t.order = append(t.order, id)
	t.touch()
	return nil
}

// RemoveTile removes a tile from this territory
func (t *Territory) RemoveTile(id valueobjects.NodeID) error {
	if _, exists := t.tiles[id]; !exists {
		return pkgerrors.NewNotFoundError("tile")
	}
	delete(t.tiles, id)
	for i, existing := range t.order {
		if existing.Equals(id) {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	t.touch()
	return nil
}

// HasTile reports whether a tile belongs to this territory
func (t *Territory) HasTile(id valueobjects.NodeID) bool {
	_, exists := t.tiles[id]
	return exists
}

// TileIDs returns the member tiles in the order they joined
func (t *Territory) TileIDs() []valueobjects.NodeID {
	out := make([]valueobjects.NodeID, len(t.order))
	copy(out, t.order)
	return out
}

// TileCount returns the number of member tiles
func (t *Territory) TileCount() int {
	return len(t.order)
}

// Revision returns the membership revision, bumped on every change.
// Boundary-path caches key on it.
func (t *Territory) Revision() int {
	return t.revision
}

func (t *Territory) touch() {
	t.revision++
	t.updatedAt = time.Now()
}
