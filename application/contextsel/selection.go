// Package contextsel tracks which linked artifacts feed a chat anchor's
// context and estimates the token cost of that set.
//
// A zone is in auto mode while its selection is nil: the context set is
// whatever its context edges currently point at. A non-nil selection is a
// frozen manual list, and an empty manual list is a deliberate "nothing",
// not the same state as auto with no links.
package contextsel

import (
	"context"

	"go.uber.org/zap"

	"github.com/xFoundry/mentor-hub-canvas/application/ports"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/entities"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

// Mode is the selection mode of a chat anchor.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

// Service reads and mutates the context selection stored on zone nodes.
type Service struct {
	store  ports.NodeStore
	logger *zap.Logger
}

// NewService creates a context selection service.
func NewService(store ports.NodeStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Mode reports whether the anchor's context follows its links or a frozen
// manual list.
func (s *Service) Mode(ctx context.Context, anchor valueobjects.NodeID) (Mode, error) {
	zone, err := s.zoneData(ctx, anchor)
	if err != nil {
		return "", err
	}
	if zone.Selection == nil {
		return ModeAuto, nil
	}
	return ModeManual, nil
}

// ContextSet resolves the anchor's current context set: the manual list when
// one is frozen, otherwise every node its context edges point at, in edge
// insertion order.
func (s *Service) ContextSet(ctx context.Context, anchor valueobjects.NodeID) ([]valueobjects.NodeID, error) {
	zone, err := s.zoneData(ctx, anchor)
	if err != nil {
		return nil, err
	}
	if zone.Selection != nil {
		out := make([]valueobjects.NodeID, len(zone.Selection.IDs))
		copy(out, zone.Selection.IDs)
		return out, nil
	}
	return s.linkedNodes(ctx, anchor)
}

// Toggle flips one node's membership in the anchor's context. In auto mode
// the current auto set is first materialized into a manual list, so the
// switch to manual mode is explicit and the rest of the set is unchanged.
func (s *Service) Toggle(ctx context.Context, anchor, nodeID valueobjects.NodeID) error {
	zone, err := s.zoneData(ctx, anchor)
	if err != nil {
		return err
	}

	current := zone.Selection
	if current == nil {
		linked, err := s.linkedNodes(ctx, anchor)
		if err != nil {
			return err
		}
		current = &entities.SelectionSet{IDs: linked}
		s.logger.Debug("context selection materialized from auto mode",
			zap.String("anchor", anchor.String()),
			zap.Int("size", len(linked)),
		)
	}

	next := make([]valueobjects.NodeID, 0, len(current.IDs)+1)
	removed := false
	for _, id := range current.IDs {
		if id.Equals(nodeID) {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, nodeID)
	}

	return s.setSelection(ctx, anchor, &entities.SelectionSet{IDs: next})
}

// Lock freezes the current context set into a manual list. The included
// nodes do not change at the moment of the switch.
func (s *Service) Lock(ctx context.Context, anchor valueobjects.NodeID) error {
	zone, err := s.zoneData(ctx, anchor)
	if err != nil {
		return err
	}
	if zone.Selection != nil {
		return nil
	}
	linked, err := s.linkedNodes(ctx, anchor)
	if err != nil {
		return err
	}
	return s.setSelection(ctx, anchor, &entities.SelectionSet{IDs: linked})
}

// AutoInclude returns the anchor to auto mode, dropping any manual list.
func (s *Service) AutoInclude(ctx context.Context, anchor valueobjects.NodeID) error {
	return s.setSelection(ctx, anchor, nil)
}

// Clear freezes an empty manual list.
func (s *Service) Clear(ctx context.Context, anchor valueobjects.NodeID) error {
	return s.setSelection(ctx, anchor, &entities.SelectionSet{IDs: []valueobjects.NodeID{}})
}

func (s *Service) zoneData(ctx context.Context, anchor valueobjects.NodeID) (*entities.ZoneData, error) {
	node, err := s.store.GetNode(ctx, anchor)
	if err != nil {
		return nil, err
	}
	zone, ok := node.Data().(*entities.ZoneData)
	if !ok {
		return nil, pkgerrors.NewValidationError("context selection requires a zone anchor")
	}
	return zone, nil
}

func (s *Service) setSelection(ctx context.Context, anchor valueobjects.NodeID, selection *entities.SelectionSet) error {
	if _, err := s.zoneData(ctx, anchor); err != nil {
		return err
	}
	return s.store.UpdateNodeData(ctx, anchor, func(current entities.NodeData) entities.NodeData {
		zone, ok := current.(*entities.ZoneData)
		if !ok {
			return current
		}
		zone.Selection = selection
		return zone
	})
}

// linkedNodes lists the targets of the anchor's context edges.
func (s *Service) linkedNodes(ctx context.Context, anchor valueobjects.NodeID) ([]valueobjects.NodeID, error) {
	edges, err := s.store.GetEdges(ctx)
	if err != nil {
		return nil, err
	}
	linked := make([]valueobjects.NodeID, 0, len(edges))
	for _, edge := range edges {
		if edge.Kind() == entities.EdgeKindContext && edge.Source().Equals(anchor) {
			linked = append(linked, edge.Target())
		}
	}
	return linked, nil
}
