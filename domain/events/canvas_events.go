package events

// NodePlaced is emitted when a node is first materialized on a canvas
type NodePlaced struct {
	BaseEvent
	NodeID   string `json:"nodeId"`
	NodeType string `json:"nodeType"`
	Fallback bool   `json:"fallback"` // placement exhausted the ring search
}

// NewNodePlaced creates a node placed event
func NewNodePlaced(nodeID, nodeType string, fallback bool) *NodePlaced {
	return &NodePlaced{
		BaseEvent: newBase(TypeNodePlaced, nodeID),
		NodeID:    nodeID,
		NodeType:  nodeType,
		Fallback:  fallback,
	}
}

// NodeUpdated is emitted when reconciliation or a user edit mutates a
// node's payload in place
type NodeUpdated struct {
	BaseEvent
	NodeID string `json:"nodeId"`
}

// NewNodeUpdated creates a node updated event
func NewNodeUpdated(nodeID string) *NodeUpdated {
	return &NodeUpdated{
		BaseEvent: newBase(TypeNodeUpdated, nodeID),
		NodeID:    nodeID,
	}
}

// NodeRemoved is emitted when a node is deleted
type NodeRemoved struct {
	BaseEvent
	NodeID string `json:"nodeId"`
}

// NewNodeRemoved creates a node removed event
func NewNodeRemoved(nodeID string) *NodeRemoved {
	return &NodeRemoved{
		BaseEvent: newBase(TypeNodeRemoved, nodeID),
		NodeID:    nodeID,
	}
}

// NodesLinked is emitted when an edge is inserted
type NodesLinked struct {
	BaseEvent
	EdgeID   string `json:"edgeId"`
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
	Kind     string `json:"kind"`
}

// NewNodesLinked creates a nodes linked event
func NewNodesLinked(edgeID, sourceID, targetID, kind string) *NodesLinked {
	return &NodesLinked{
		BaseEvent: newBase(TypeNodesLinked, edgeID),
		EdgeID:    edgeID,
		SourceID:  sourceID,
		TargetID:  targetID,
		Kind:      kind,
	}
}

// CanvasReset is emitted when the whole canvas is cleared
type CanvasReset struct {
	BaseEvent
	NodeCount int `json:"nodeCount"`
	EdgeCount int `json:"edgeCount"`
}

// NewCanvasReset creates a canvas reset event
func NewCanvasReset(nodeCount, edgeCount int) *CanvasReset {
	return &CanvasReset{
		BaseEvent: newBase(TypeCanvasReset, "canvas"),
		NodeCount: nodeCount,
		EdgeCount: edgeCount,
	}
}

// TerritoryMergePending is emitted when placing or dragging a tile would
// touch more than one territory and the user has not confirmed yet
type TerritoryMergePending struct {
	BaseEvent
	TileID       string   `json:"tileId"`
	TerritoryIDs []string `json:"territoryIds"`
}

// NewTerritoryMergePending creates a merge pending event
func NewTerritoryMergePending(tileID string, territoryIDs []string) *TerritoryMergePending {
	return &TerritoryMergePending{
		BaseEvent:    newBase(TypeTerritoryMergePending, tileID),
		TileID:       tileID,
		TerritoryIDs: territoryIDs,
	}
}

// TerritoryMergeResolved is emitted when the user confirms or cancels a
// pending merge
type TerritoryMergeResolved struct {
	BaseEvent
	TileID    string `json:"tileId"`
	Confirmed bool   `json:"confirmed"`
}

// NewTerritoryMergeResolved creates a merge resolved event
func NewTerritoryMergeResolved(tileID string, confirmed bool) *TerritoryMergeResolved {
	return &TerritoryMergeResolved{
		BaseEvent: newBase(TypeTerritoryMergeResolved, tileID),
		TileID:    tileID,
		Confirmed: confirmed,
	}
}

// SnapshotCreated is emitted when a canvas snapshot is stored
type SnapshotCreated struct {
	BaseEvent
	SnapshotID string `json:"snapshotId"`
	Title      string `json:"title"`
}

// NewSnapshotCreated creates a snapshot created event
func NewSnapshotCreated(snapshotID, title string) *SnapshotCreated {
	return &SnapshotCreated{
		BaseEvent:  newBase(TypeSnapshotCreated, snapshotID),
		SnapshotID: snapshotID,
		Title:      title,
	}
}

// SnapshotRestored is emitted when a canvas snapshot is restored
type SnapshotRestored struct {
	BaseEvent
	SnapshotID string `json:"snapshotId"`
}

// NewSnapshotRestored creates a snapshot restored event
func NewSnapshotRestored(snapshotID string) *SnapshotRestored {
	return &SnapshotRestored{
		BaseEvent:  newBase(TypeSnapshotRestored, snapshotID),
		SnapshotID: snapshotID,
	}
}
