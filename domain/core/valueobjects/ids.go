package valueobjects

import (
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

// NodeID uniquely identifies a canvas node.
//
// Freshly created nodes get UUID identities, but nodes materialized from an
// incoming artifact keep the artifact's own id, so the only structural
// requirement is a non-empty value.
type NodeID struct {
	value string
}

// NewNodeID creates a new random NodeID
func NewNodeID() NodeID {
	return NodeID{value: uuid.New().String()}
}

// NodeIDFromString creates a NodeID from an externally supplied identifier
func NodeIDFromString(s string) (NodeID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NodeID{}, pkgerrors.NewValidationError("node ID cannot be empty")
	}
	return NodeID{value: s}, nil
}

// String returns the string representation
func (id NodeID) String() string {
	return id.value
}

// IsZero checks if the ID is unset
func (id NodeID) IsZero() bool {
	return id.value == ""
}

// Equals checks identity equality
func (id NodeID) Equals(other NodeID) bool {
	return id.value == other.value
}

// EdgeID uniquely identifies an edge between two nodes
type EdgeID struct {
	value string
}

// NewEdgeID creates a new random EdgeID
func NewEdgeID() EdgeID {
	return EdgeID{value: uuid.New().String()}
}

// EdgeIDFromString creates an EdgeID from an externally supplied identifier
func EdgeIDFromString(s string) (EdgeID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return EdgeID{}, pkgerrors.NewValidationError("edge ID cannot be empty")
	}
	return EdgeID{value: s}, nil
}

// String returns the string representation
func (id EdgeID) String() string {
	return id.value
}

// IsZero checks if the ID is unset
func (id EdgeID) IsZero() bool {
	return id.value == ""
}

// Equals checks identity equality
func (id EdgeID) Equals(other EdgeID) bool {
	return id.value == other.value
}

// TerritoryID uniquely identifies a territory on the hex canvas
type TerritoryID struct {
	value string
}

// NewTerritoryID creates a new random TerritoryID
func NewTerritoryID() TerritoryID {
	return TerritoryID{value: uuid.New().String()}
}

// String returns the string representation
func (id TerritoryID) String() string {
	return id.value
}

// IsZero checks if the ID is unset
func (id TerritoryID) IsZero() bool {
	return id.value == ""
}

// Equals checks identity equality
func (id TerritoryID) Equals(other TerritoryID) bool {
	return id.value == other.value
}

// ArtifactID identifies an artifact delivered by the chat stream.
// The generator owns the id format, so any non-empty value is accepted.
type ArtifactID struct {
	value string
}

// NewArtifactID creates a new random ArtifactID
func NewArtifactID() ArtifactID {
	return ArtifactID{value: uuid.New().String()}
}

// ArtifactIDFromString creates an ArtifactID from an externally supplied identifier
func ArtifactIDFromString(s string) (ArtifactID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ArtifactID{}, pkgerrors.NewValidationError("artifact ID cannot be empty")
	}
	return ArtifactID{value: s}, nil
}

// String returns the string representation
func (id ArtifactID) String() string {
	return id.value
}

// IsZero checks if the ID is unset
func (id ArtifactID) IsZero() bool {
	return id.value == ""
}

// Equals checks identity equality
func (id ArtifactID) Equals(other ArtifactID) bool {
	return id.value == other.value
}

// SnapshotID identifies a stored canvas snapshot
type SnapshotID struct {
	value string
}

// NewSnapshotID creates a new random SnapshotID
func NewSnapshotID() SnapshotID {
	return SnapshotID{value: uuid.New().String()}
}

// String returns the string representation
func (id SnapshotID) String() string {
	return id.value
}

// IsZero checks if the ID is unset
func (id SnapshotID) IsZero() bool {
	return id.value == ""
}

// Equals checks identity equality
func (id SnapshotID) Equals(other SnapshotID) bool {
	return id.value == other.value
}
