// Package memory provides the in-memory implementations of the persistence
// ports. The web application keeps canvas state in a client-side store;
// these implementations mirror that contract for the engine and its tests.
package memory

import (
	"context"
	"sync"

	"github.com/xFoundry/mentor-hub-canvas/application/ports"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/entities"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/domain/events"
	"github.com/xFoundry/mentor-hub-canvas/domain/hex"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

// NodeStore is an in-memory ports.NodeStore. Nodes and edges keep insertion
// order, which the reconciler's "most recently created" rules rely on.
type NodeStore struct {
	mu sync.RWMutex

	nodes     map[valueobjects.NodeID]*entities.Node
	nodeOrder []valueobjects.NodeID

	edges     map[valueobjects.EdgeID]*entities.Edge
	edgeOrder []valueobjects.EdgeID

	activeAnchor valueobjects.NodeID

	events []events.DomainEvent
}

// NewNodeStore creates an empty in-memory node store
func NewNodeStore() *NodeStore {
	return &NodeStore{
		nodes: make(map[valueobjects.NodeID]*entities.Node),
		edges: make(map[valueobjects.EdgeID]*entities.Edge),
	}
}

// GetNodes returns all nodes in insertion order
func (s *NodeStore) GetNodes(ctx context.Context) ([]*entities.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Node, 0, len(s.nodeOrder))
	for _, id := range s.nodeOrder {
		out = append(out, s.nodes[id])
	}
	return out, nil
}

// GetNode returns a node by id
func (s *NodeStore) GetNode(ctx context.Context, id valueobjects.NodeID) (*entities.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.nodes[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("node " + id.String())
	}
	return node, nil
}

// GetEdges returns all edges in insertion order
func (s *NodeStore) GetEdges(ctx context.Context) ([]*entities.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Edge, 0, len(s.edgeOrder))
	for _, id := range s.edgeOrder {
		out = append(out, s.edges[id])
	}
	return out, nil
}

// AddNode inserts a node. Node ids are stable and unique.
func (s *NodeStore) AddNode(ctx context.Context, node *entities.Node) error {
	if node == nil {
		return pkgerrors.NewValidationError("node cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.nodes[node.ID()]; exists {
		return pkgerrors.NewConflictError("node " + node.ID().String() + " already exists")
	}
	s.nodes[node.ID()] = node
	s.nodeOrder = append(s.nodeOrder, node.ID())
	s.events = append(s.events, events.NewNodePlaced(node.ID().String(), string(node.Type()), false))
	return nil
}

// AddEdge inserts an edge. Both endpoints must exist.
func (s *NodeStore) AddEdge(ctx context.Context, edge *entities.Edge) error {
	if edge == nil {
		return pkgerrors.NewValidationError("edge cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[edge.Source()]; !ok {
		return pkgerrors.NewNotFoundError("edge source " + edge.Source().String())
	}
	if _, ok := s.nodes[edge.Target()]; !ok {
		return pkgerrors.NewNotFoundError("edge target " + edge.Target().String())
	}
	if _, exists := s.edges[edge.ID()]; exists {
		return pkgerrors.NewConflictError("edge " + edge.ID().String() + " already exists")
	}

	s.edges[edge.ID()] = edge
	s.edgeOrder = append(s.edgeOrder, edge.ID())
	s.events = append(s.events, events.NewNodesLinked(
		edge.ID().String(),
		edge.Source().String(),
		edge.Target().String(),
		string(edge.Kind()),
	))
	return nil
}

// RemoveNode deletes a node and every edge touching it
func (s *NodeStore) RemoveNode(ctx context.Context, id valueobjects.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[id]; !ok {
		return pkgerrors.NewNotFoundError("node " + id.String())
	}

	delete(s.nodes, id)
	for i, existing := range s.nodeOrder {
		if existing.Equals(id) {
			s.nodeOrder = append(s.nodeOrder[:i], s.nodeOrder[i+1:]...)
			break
		}
	}

	kept := s.edgeOrder[:0]
	for _, edgeID := range s.edgeOrder {
		edge := s.edges[edgeID]
		if edge.Source().Equals(id) || edge.Target().Equals(id) {
			delete(s.edges, edgeID)
			continue
		}
		kept = append(kept, edgeID)
	}
	s.edgeOrder = kept

	if s.activeAnchor.Equals(id) {
		s.activeAnchor = valueobjects.NodeID{}
	}

	s.events = append(s.events, events.NewNodeRemoved(id.String()))
	return nil
}

// UpdateNodeData applies an updater to a node's payload. The updater must
// tolerate nil current data.
func (s *NodeStore) UpdateNodeData(ctx context.Context, id valueobjects.NodeID, updater ports.NodeDataUpdater) error {
	if updater == nil {
		return pkgerrors.NewValidationError("updater cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.nodes[id]
	if !ok {
		return pkgerrors.NewNotFoundError("node " + id.String())
	}
	if err := node.MutateData(updater); err != nil {
		return err
	}
	s.events = append(s.events, events.NewNodeUpdated(id.String()))
	return nil
}

// MoveNode recenters a free-form node
func (s *NodeStore) MoveNode(ctx context.Context, id valueobjects.NodeID, center valueobjects.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.nodes[id]
	if !ok {
		return pkgerrors.NewNotFoundError("node " + id.String())
	}
	if err := node.MoveTo(center); err != nil {
		return err
	}
	s.events = append(s.events, events.NewNodeUpdated(id.String()))
	return nil
}

// MoveTile relocates a tile node
func (s *NodeStore) MoveTile(ctx context.Context, id valueobjects.NodeID, coord hex.Coord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.nodes[id]
	if !ok {
		return pkgerrors.NewNotFoundError("node " + id.String())
	}
	if err := node.MoveToCoord(coord); err != nil {
		return err
	}
	s.events = append(s.events, events.NewNodeUpdated(id.String()))
	return nil
}

// SetActiveAnchor marks the chat anchor new artifacts attach to
func (s *NodeStore) SetActiveAnchor(ctx context.Context, id valueobjects.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !id.IsZero() {
		if _, ok := s.nodes[id]; !ok {
			return pkgerrors.NewNotFoundError("node " + id.String())
		}
	}
	s.activeAnchor = id
	return nil
}

// ActiveAnchor returns the current chat anchor
func (s *NodeStore) ActiveAnchor(ctx context.Context) (valueobjects.NodeID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeAnchor, nil
}

// ResetCanvas removes every node and edge and clears the anchor
func (s *NodeStore) ResetCanvas(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodeCount := len(s.nodeOrder)
	edgeCount := len(s.edgeOrder)

	s.nodes = make(map[valueobjects.NodeID]*entities.Node)
	s.nodeOrder = nil
	s.edges = make(map[valueobjects.EdgeID]*entities.Edge)
	s.edgeOrder = nil
	s.activeAnchor = valueobjects.NodeID{}

	s.events = append(s.events, events.NewCanvasReset(nodeCount, edgeCount))
	return nil
}

// Record appends an externally raised domain event to the drain queue
func (s *NodeStore) Record(event events.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
}

// DrainEvents returns and clears the accumulated domain events
func (s *NodeStore) DrainEvents() []events.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.events
	s.events = nil
	return out
}
