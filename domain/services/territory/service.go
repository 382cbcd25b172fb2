// Package territory groups hex tiles into named territories, resolves which
// territories touch a coordinate, mediates merges, and builds territory
// outlines for rendering.
package territory

import (
	"go.uber.org/zap"

	"github.com/xFoundry/mentor-hub-canvas/domain/core/entities"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/domain/hex"
	"github.com/xFoundry/mentor-hub-canvas/domain/services/occupancy"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

// Service owns the territory registry and adjacency resolution over the
// shared hex occupancy index.
type Service struct {
	hexes  *occupancy.HexIndex
	byID   map[valueobjects.TerritoryID]*entities.Territory
	order  []valueobjects.TerritoryID
	byTile map[valueobjects.NodeID]valueobjects.TerritoryID
	logger *zap.Logger
}

// NewService creates a territory service over the given occupancy index
func NewService(hexes *occupancy.HexIndex, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		hexes:  hexes,
		byID:   make(map[valueobjects.TerritoryID]*entities.Territory),
		byTile: make(map[valueobjects.NodeID]valueobjects.TerritoryID),
		logger: logger,
	}
}

// CreateTerritory registers a new territory anchored at a coordinate
func (s *Service) CreateTerritory(name, color string, anchor hex.Coord) (*entities.Territory, error) {
	t, err := entities.NewTerritory(name, color, anchor)
	if err != nil {
		return nil, err
	}
	s.byID[t.ID()] = t
	s.order = append(s.order, t.ID())
	s.logger.Debug("territory created",
		zap.String("territoryId", t.ID().String()),
		zap.String("name", name),
	)
	return t, nil
}

// Territory returns a territory by id
func (s *Service) Territory(id valueobjects.TerritoryID) (*entities.Territory, bool) {
	t, ok := s.byID[id]
	return t, ok
}

// Territories returns all territories in creation order
func (s *Service) Territories() []*entities.Territory {
	out := make([]*entities.Territory, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// AssignTile records a tile as belonging to a territory
func (s *Service) AssignTile(territoryID valueobjects.TerritoryID, tileID valueobjects.NodeID) error {
	t, ok := s.byID[territoryID]
	if !ok {
		return pkgerrors.NewNotFoundError("territory")
	}
	if owner, claimed := s.byTile[tileID]; claimed && !owner.Equals(territoryID) {
		return pkgerrors.NewConflictError("tile already belongs to another territory")
	}
	if err := t.AddTile(tileID); err != nil {
		return err
	}
	s.byTile[tileID] = territoryID
	return nil
}

// UnassignTile removes a tile from whichever territory holds it
func (s *Service) UnassignTile(tileID valueobjects.NodeID) error {
	territoryID, ok := s.byTile[tileID]
	if !ok {
		return pkgerrors.NewNotFoundError("tile assignment")
	}
	if t, exists := s.byID[territoryID]; exists {
		if err := t.RemoveTile(tileID); err != nil {
			return err
		}
	}
	delete(s.byTile, tileID)
	return nil
}

// OwnerOf returns the territory a tile belongs to
func (s *Service) OwnerOf(tileID valueobjects.NodeID) (*entities.Territory, bool) {
	territoryID, ok := s.byTile[tileID]
	if !ok {
		return nil, false
	}
	t, exists := s.byID[territoryID]
	return t, exists
}

// AdjacentTerritories resolves the distinct territories owning tiles on the
// six neighbors of a coordinate. The scan follows the fixed direction order
// and territories keep first-seen order; excludeTile is skipped so a tile's
// own prospective move does not count itself.
func (s *Service) AdjacentTerritories(coord hex.Coord, excludeTile valueobjects.NodeID) []*entities.Territory {
	var out []*entities.Territory
	seen := make(map[valueobjects.TerritoryID]struct{})

	for _, neighbor := range coord.Neighbors() {
		tileID, occupied := s.hexes.OwnerAt(neighbor)
		if !occupied || tileID.Equals(excludeTile) {
			continue
		}
		t, ok := s.OwnerOf(tileID)
		if !ok {
			continue
		}
		if _, dup := seen[t.ID()]; dup {
			continue
		}
		seen[t.ID()] = struct{}{}
		out = append(out, t)
	}
	return out
}

// CheckMerge evaluates whether placing or dragging the given tile onto the
// target coordinate would fuse territories: the tile's own territory plus
// every adjacent one, more than one in total, means a merge needs mediation.
func (s *Service) CheckMerge(tileID valueobjects.NodeID, target hex.Coord) MergeCheck {
	adjacent := s.AdjacentTerritories(target, tileID)

	involved := make([]*entities.Territory, 0, len(adjacent)+1)
	seen := make(map[valueobjects.TerritoryID]struct{})
	if own, ok := s.OwnerOf(tileID); ok {
		involved = append(involved, own)
		seen[own.ID()] = struct{}{}
	}
	for _, t := range adjacent {
		if _, dup := seen[t.ID()]; dup {
			continue
		}
		seen[t.ID()] = struct{}{}
		involved = append(involved, t)
	}

	return MergeCheck{
		Required:    len(involved) > 1,
		Territories: involved,
	}
}

// MergeCheck is the result of evaluating a tile placement for merges
type MergeCheck struct {
	// Required is true when the placement touches more than one territory
	Required bool
	// Territories involved, tile's own first, then first-seen scan order
	Territories []*entities.Territory
}
