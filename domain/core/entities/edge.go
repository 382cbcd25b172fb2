package entities

import (
	"time"

	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

// EdgeKind distinguishes what a link between two nodes means
type EdgeKind string

const (
	// EdgeKindContext links an artifact into a chat anchor's context set
	EdgeKindContext EdgeKind = "context"
	// EdgeKindRelation is a relationship between two graph entities
	EdgeKindRelation EdgeKind = "relation"
)

// Edge is a directed link between two nodes
type Edge struct {
	id        valueobjects.EdgeID
	source    valueobjects.NodeID
	target    valueobjects.NodeID
	kind      EdgeKind
	label     string
	createdAt time.Time
}

// NewEdge creates a directed edge with validation. Self-loops are rejected;
// the reconciler drops them before ever constructing an edge.
func NewEdge(source, target valueobjects.NodeID, kind EdgeKind, label string) (*Edge, error) {
	if source.IsZero() || target.IsZero() {
		return nil, pkgerrors.NewValidationError("edge endpoints cannot be empty")
	}
	if source.Equals(target) {
		return nil, pkgerrors.NewValidationError("cannot connect node to itself")
	}
	if kind != EdgeKindContext && kind != EdgeKindRelation {
		return nil, pkgerrors.NewValidationError("unknown edge kind")
	}

	return &Edge{
		id:        valueobjects.NewEdgeID(),
		source:    source,
		target:    target,
		kind:      kind,
		label:     label,
		createdAt: time.Now(),
	}, nil
}

// ID returns the edge's unique identifier
func (e *Edge) ID() valueobjects.EdgeID {
	return e.id
}

// Source returns the edge's source node id
func (e *Edge) Source() valueobjects.NodeID {
	return e.source
}

// Target returns the edge's target node id
func (e *Edge) Target() valueobjects.NodeID {
	return e.target
}

// Kind returns what this edge means
func (e *Edge) Kind() EdgeKind {
	return e.kind
}

// Label returns the relationship label, empty for context edges
func (e *Edge) Label() string {
	return e.label
}

// CreatedAt returns when the edge was created
func (e *Edge) CreatedAt() time.Time {
	return e.createdAt
}

// Connects reports whether the edge links the given ordered pair with the
// given kind. Context-edge idempotence checks use this.
func (e *Edge) Connects(source, target valueobjects.NodeID, kind EdgeKind) bool {
	return e.kind == kind && e.source.Equals(source) && e.target.Equals(target)
}
