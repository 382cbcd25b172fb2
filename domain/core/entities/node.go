package entities

import (
	"time"

	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/domain/hex"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

// Node is a placed entity on one of the two canvases.
// Free-form nodes (zones, artifacts, graph entities) carry a pixel position
// and a footprint; tiles carry a hex coordinate instead.
type Node struct {
	id       valueobjects.NodeID
	nodeType NodeType

	position valueobjects.Position
	width    float64
	height   float64

	coord  hex.Coord
	onGrid bool

	data      NodeData
	createdAt time.Time
	updatedAt time.Time
	version   int
}

// NewFreeformNode creates a node on the free-form canvas. The position is
// the node's center; width and height are the footprint used for occupancy.
func NewFreeformNode(
	id valueobjects.NodeID,
	nodeType NodeType,
	center valueobjects.Position,
	width, height float64,
	data NodeData,
) (*Node, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("node ID cannot be empty")
	}
	if nodeType == NodeTypeTile {
		return nil, pkgerrors.NewValidationError("tiles are placed on the hex grid, not the free-form canvas")
	}
	if width <= 0 || height <= 0 {
		return nil, pkgerrors.NewValidationError("node footprint must be positive")
	}
	if data != nil && data.Kind() != nodeType {
		return nil, pkgerrors.NewValidationError("node data does not match node type")
	}

	now := time.Now()
	return &Node{
		id:        id,
		nodeType:  nodeType,
		position:  center,
		width:     width,
		height:    height,
		data:      data,
		createdAt: now,
		updatedAt: now,
		version:   1,
	}, nil
}

// NewTileNode creates a node on the hex grid
func NewTileNode(id valueobjects.NodeID, coord hex.Coord, data *TileData) (*Node, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("node ID cannot be empty")
	}

	now := time.Now()
	var nodeData NodeData
	if data != nil {
		nodeData = data
	}
	return &Node{
		id:        id,
		nodeType:  NodeTypeTile,
		coord:     coord,
		onGrid:    true,
		data:      nodeData,
		createdAt: now,
		updatedAt: now,
		version:   1,
	}, nil
}

// ID returns the node's unique identifier
func (n *Node) ID() valueobjects.NodeID {
	return n.id
}

// Type returns the node's type tag
func (n *Node) Type() NodeType {
	return n.nodeType
}

// Position returns the node's center on the free-form canvas.
// The second return is false for tiles.
func (n *Node) Position() (valueobjects.Position, bool) {
	if n.onGrid {
		return valueobjects.Position{}, false
	}
	return n.position, true
}

// Coord returns the node's hex coordinate. The second return is false for
// free-form nodes.
func (n *Node) Coord() (hex.Coord, bool) {
	if !n.onGrid {
		return hex.Coord{}, false
	}
	return n.coord, true
}

// Size returns the node's footprint on the free-form canvas
func (n *Node) Size() (width, height float64) {
	return n.width, n.height
}

// Rect returns the node's occupancy rect on the free-form canvas.
// The second return is false for tiles.
func (n *Node) Rect() (valueobjects.Rect, bool) {
	if n.onGrid {
		return valueobjects.Rect{}, false
	}
	r, err := valueobjects.NewRectCentered(n.position, n.width, n.height)
	if err != nil {
		return valueobjects.Rect{}, false
	}
	return r, true
}

// Data returns the node's payload
func (n *Node) Data() NodeData {
	return n.data
}

// Version returns the node's data revision, bumped on every mutation
func (n *Node) Version() int {
	return n.version
}

// MutateData applies an updater to the node's payload. The updater receives
// the current data, which may be nil on initial state, and returns the next
// data. A nil result clears the payload.
func (n *Node) MutateData(updater func(current NodeData) NodeData) error {
	next := updater(n.data)
	if next != nil && next.Kind() != n.nodeType {
		return pkgerrors.NewValidationError("node data does not match node type")
	}
	n.data = next
	n.updatedAt = time.Now()
	n.version++
	return nil
}

// MoveTo moves a free-form node to a new center position
func (n *Node) MoveTo(center valueobjects.Position) error {
	if n.onGrid {
		return pkgerrors.NewValidationError("tile nodes move by hex coordinate")
	}
	if center.Equals(n.position) {
		return nil
	}
	n.position = center
	n.updatedAt = time.Now()
	n.version++
	return nil
}

// MoveToCoord moves a tile node to a new hex coordinate
func (n *Node) MoveToCoord(coord hex.Coord) error {
	if !n.onGrid {
		return pkgerrors.NewValidationError("free-form nodes move by position")
	}
	if coord == n.coord {
		return nil
	}
	n.coord = coord
	n.updatedAt = time.Now()
	n.version++
	return nil
}

// CreatedAt returns when the node was created
func (n *Node) CreatedAt() time.Time {
	return n.createdAt
}

// UpdatedAt returns when the node was last updated
func (n *Node) UpdatedAt() time.Time {
	return n.updatedAt
}
