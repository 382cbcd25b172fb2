package reconciler

import (
	"context"
	"time"

	"github.com/xFoundry/mentor-hub-canvas/application/ports"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/entities"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

// StreamHandler adapts the chat stream's push events onto the reconciler.
// Streaming documents are materialized on create and updated in place as
// content chunks arrive, so the user watches the document grow on canvas.
type StreamHandler struct {
	reconciler *Reconciler
}

var _ ports.ChatStreamHandler = (*StreamHandler)(nil)

// NewStreamHandler creates the stream adapter for a reconciler.
func NewStreamHandler(reconciler *Reconciler) *StreamHandler {
	return &StreamHandler{reconciler: reconciler}
}

// OnArtifact reconciles a complete artifact event.
func (h *StreamHandler) OnArtifact(ctx context.Context, artifact *entities.Artifact) error {
	_, err := h.reconciler.Reconcile(ctx, artifact)
	return err
}

// OnDocumentCreate opens a streaming document node and returns the artifact
// id later updates must carry. When an earlier document on the same anchor is
// still streaming, the create continues that node, and its id is returned
// instead of the minted one so updates reach the node that absorbed them.
func (h *StreamHandler) OnDocumentCreate(ctx context.Context, title string, origin *entities.Origin) (valueobjects.ArtifactID, error) {
	artifact := &entities.Artifact{
		ID:        valueobjects.NewArtifactID(),
		Title:     title,
		Type:      entities.ArtifactDocument,
		Origin:    origin,
		CreatedAt: time.Now(),
	}
	outcome, err := h.reconciler.Reconcile(ctx, artifact)
	if err != nil {
		return valueobjects.ArtifactID{}, err
	}
	if !outcome.NodeID.IsZero() && outcome.NodeID.String() != artifact.ID.String() {
		return valueobjects.ArtifactIDFromString(outcome.NodeID.String())
	}
	return artifact.ID, nil
}

// OnDocumentUpdate replaces the streamed document's content so far. A
// leading markdown heading becomes the node title unless the user renamed
// the node.
func (h *StreamHandler) OnDocumentUpdate(ctx context.Context, id valueobjects.ArtifactID, contentSoFar string) error {
	return h.applyContent(ctx, id, contentSoFar, false)
}

// OnDocumentFinalize applies the final content and marks the node done.
func (h *StreamHandler) OnDocumentFinalize(ctx context.Context, id valueobjects.ArtifactID, finalContent string) error {
	return h.applyContent(ctx, id, finalContent, true)
}

func (h *StreamHandler) applyContent(ctx context.Context, id valueobjects.ArtifactID, content string, finalize bool) error {
	if id.IsZero() {
		return pkgerrors.NewValidationError("document stream id cannot be empty")
	}
	nodeID, err := valueobjects.NodeIDFromString(id.String())
	if err != nil {
		return err
	}

	title, body, _ := SplitDocumentTitle(content)

	return h.reconciler.store.UpdateNodeData(ctx, nodeID, func(current entities.NodeData) entities.NodeData {
		data, ok := current.(*entities.DocumentData)
		if !ok {
			return current
		}
		data.SetAutoTitle(title)
		data.Content = body
		if finalize {
			data.Finalized = true
		}
		return data
	})
}
