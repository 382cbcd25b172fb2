package entities

import (
	"time"

	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
)

// ArtifactType classifies a unit produced by the chat assistant
type ArtifactType string

const (
	ArtifactDocument      ArtifactType = "document"
	ArtifactDataTable     ArtifactType = "data_table"
	ArtifactGraph         ArtifactType = "graph"
	ArtifactClarification ArtifactType = "clarification"
	ArtifactTodoList      ArtifactType = "todo_list"
	ArtifactFile          ArtifactType = "file"
)

// IsIgnored reports whether this artifact type is handled as inline chat UI
// and must never be materialized as a canvas node.
func (t ArtifactType) IsIgnored() bool {
	return t == ArtifactClarification || t == ArtifactTodoList || t == ArtifactFile
}

// OriginAssistantResponse marks a streamed assistant document, as opposed to
// a tool result.
const OriginAssistantResponse = "assistant_response"

// Origin describes where an artifact came from. Its fields drive
// reconciliation grouping.
type Origin struct {
	ToolName     string
	ChatBlockID  valueobjects.NodeID
	Type         string
	SourceNumber int
	Query        string
}

// SameToolGroup reports whether two origins belong to the same logical tool
// invocation group: same tool name against the same chat block.
func (o *Origin) SameToolGroup(other *Origin) bool {
	if o == nil || other == nil {
		return false
	}
	return o.ToolName != "" &&
		o.ToolName == other.ToolName &&
		o.ChatBlockID.Equals(other.ChatBlockID)
}

// IsAssistantResponse reports whether the origin marks an in-progress
// assistant document stream for the given chat block.
func (o *Origin) IsAssistantResponse(chatBlockID valueobjects.NodeID) bool {
	return o != nil &&
		o.Type == OriginAssistantResponse &&
		o.ChatBlockID.Equals(chatBlockID)
}

// TableRow is one row of a tabular artifact payload
type TableRow map[string]interface{}

// GraphNodeSpec is one node of a graph artifact payload
type GraphNodeSpec struct {
	ID          string
	Title       string
	EntityType  string
	Description string
}

// GraphEdgeSpec is one edge of a graph artifact payload
type GraphEdgeSpec struct {
	Source string
	Target string
	Label  string
}

// ArtifactPayload carries the type-dependent content of an artifact.
// Artifacts come from a best-effort external generator, so every collection
// may be absent; consumers treat nil as empty and never reject the artifact.
type ArtifactPayload struct {
	Content string
	Columns []string
	Rows    []TableRow
	Nodes   []GraphNodeSpec
	Edges   []GraphEdgeSpec
}

// Artifact is a transient unit arriving from the chat stream. It is never
// persisted directly; reconciliation folds it into node data.
type Artifact struct {
	ID        valueobjects.ArtifactID
	Title     string
	Type      ArtifactType
	Payload   ArtifactPayload
	Summary   string
	Origin    *Origin
	CreatedAt time.Time
}
