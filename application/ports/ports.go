// Package ports declares the contracts between the canvas core and its
// collaborators: the node store it mutates, the chat stream it consumes,
// and the snapshot/preference persistence the embedding application owns.
package ports

import (
	"context"
	"time"

	"github.com/xFoundry/mentor-hub-canvas/domain/core/entities"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/domain/events"
	"github.com/xFoundry/mentor-hub-canvas/domain/hex"
)

// NodeDataUpdater receives a node's current data, which may be nil on
// initial state, and returns the next data.
type NodeDataUpdater func(current entities.NodeData) entities.NodeData

// NodeStore is the state container the engines read and mutate. One
// reconciliation pass runs to completion before the next begins, so
// implementations only need to be safe across anchors, not within a pass.
type NodeStore interface {
	GetNodes(ctx context.Context) ([]*entities.Node, error)
	GetNode(ctx context.Context, id valueobjects.NodeID) (*entities.Node, error)
	GetEdges(ctx context.Context) ([]*entities.Edge, error)

	AddNode(ctx context.Context, node *entities.Node) error
	AddEdge(ctx context.Context, edge *entities.Edge) error
	RemoveNode(ctx context.Context, id valueobjects.NodeID) error

	// UpdateNodeData applies the updater to the node's payload.
	UpdateNodeData(ctx context.Context, id valueobjects.NodeID, updater NodeDataUpdater) error

	// MoveNode recenters a free-form node; MoveTile relocates a tile.
	MoveNode(ctx context.Context, id valueobjects.NodeID, center valueobjects.Position) error
	MoveTile(ctx context.Context, id valueobjects.NodeID, coord hex.Coord) error

	SetActiveAnchor(ctx context.Context, id valueobjects.NodeID) error
	ActiveAnchor(ctx context.Context) (valueobjects.NodeID, error)

	ResetCanvas(ctx context.Context) error

	// Record appends a domain event raised outside the store's own
	// mutations, such as merge gate or snapshot activity.
	Record(event events.DomainEvent)

	// DrainEvents returns and clears the domain events accumulated by
	// mutations since the last drain.
	DrainEvents() []events.DomainEvent
}

// Snapshot is an opaque stored canvas state. The blob's encoding belongs to
// the embedding application; this core only tracks identity and counts.
type Snapshot struct {
	ID        valueobjects.SnapshotID
	Title     string
	CreatedAt time.Time
	NodeCount int
	EdgeCount int
	Blob      []byte
}

// SnapshotStore persists canvas snapshots by opaque id
type SnapshotStore interface {
	Create(ctx context.Context, snapshot Snapshot) error
	Get(ctx context.Context, id valueobjects.SnapshotID) (Snapshot, error)
	List(ctx context.Context) ([]Snapshot, error)
	Delete(ctx context.Context, id valueobjects.SnapshotID) error
}

// ChatStreamHandler is the inbound contract the reconciliation engine
// fulfills for the chat stream's push events.
type ChatStreamHandler interface {
	// OnArtifact reconciles a complete artifact event.
	OnArtifact(ctx context.Context, artifact *entities.Artifact) error

	// OnDocumentCreate opens a streaming document and returns the artifact
	// id subsequent updates must carry. A zero id with nil error means the
	// document was intentionally not materialized.
	OnDocumentCreate(ctx context.Context, title string, origin *entities.Origin) (valueobjects.ArtifactID, error)

	// OnDocumentUpdate replaces the streamed document's content so far.
	OnDocumentUpdate(ctx context.Context, id valueobjects.ArtifactID, contentSoFar string) error

	// OnDocumentFinalize marks the stream complete with its final content.
	OnDocumentFinalize(ctx context.Context, id valueobjects.ArtifactID, finalContent string) error
}

// PreferenceStore persists small user preferences, such as the merge
// confirmation skip flag. The web front-end keeps these in localStorage.
type PreferenceStore interface {
	MergeSkipConfirmation(ctx context.Context) (bool, error)
	SetMergeSkipConfirmation(ctx context.Context, skip bool) error
}
