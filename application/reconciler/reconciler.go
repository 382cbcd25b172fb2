// Package reconciler folds artifacts arriving from the chat stream into
// canvas nodes. Every artifact resolves through exactly one rule, tried in
// a fixed priority order, so repeated or partially overlapping events
// converge on the same canvas state instead of stacking duplicates.
package reconciler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xFoundry/mentor-hub-canvas/application/ports"
	"github.com/xFoundry/mentor-hub-canvas/domain/config"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/entities"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/domain/hex"
	"github.com/xFoundry/mentor-hub-canvas/domain/services/placement"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
	"github.com/xFoundry/mentor-hub-canvas/pkg/observability"
)

// Rule names the resolution an artifact reconciled through.
type Rule string

const (
	RuleIgnored      Rule = "ignored"
	RuleExactID      Rule = "exact_id"
	RuleStreamUpdate Rule = "stream_update"
	RuleToolGroup    Rule = "tool_group"
	RuleGraph        Rule = "graph"
	RuleCreate       Rule = "create"
)

// Outcome reports how an artifact was resolved.
type Outcome struct {
	Rule    Rule
	NodeID  valueobjects.NodeID
	Created bool

	// Populated for graph artifacts only.
	GraphNodesCreated int
	GraphNodesPatched int
	GraphEdgesCreated int
}

type relationKey struct {
	source string
	target string
	label  string
}

// Reconciler applies chat stream artifacts to the node store.
//
// Methods are not safe for concurrent use; the stream delivers events
// sequentially and the store serializes mutations underneath.
type Reconciler struct {
	store   ports.NodeStore
	placer  *placement.Engine
	cfg     *config.DomainConfig
	logger  *zap.Logger
	metrics *observability.Collector

	// graphIDs maps a generator's graph node id to the canvas node that
	// materialized it, so re-sent graphs patch instead of duplicate.
	graphIDs map[string]valueobjects.NodeID

	// relations dedups relation edges by endpoint pair and label.
	relations map[relationKey]struct{}
}

// NewReconciler creates a reconciler over the given store. The metrics
// collector may be nil.
func NewReconciler(
	store ports.NodeStore,
	placer *placement.Engine,
	cfg *config.DomainConfig,
	logger *zap.Logger,
	metrics *observability.Collector,
) *Reconciler {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if placer == nil {
		placer = placement.NewEngine(cfg, logger)
	}
	return &Reconciler{
		store:     store,
		placer:    placer,
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics,
		graphIDs:  make(map[string]valueobjects.NodeID),
		relations: make(map[relationKey]struct{}),
	}
}

// Reconcile resolves one artifact against the canvas. Malformed payloads
// degrade to whatever can be salvaged; the only hard errors are store
// failures.
func (r *Reconciler) Reconcile(ctx context.Context, artifact *entities.Artifact) (*Outcome, error) {
	if artifact == nil {
		return nil, pkgerrors.NewValidationError("artifact cannot be nil")
	}

	start := time.Now()
	outcome, err := r.resolve(ctx, artifact)
	if err != nil {
		return nil, err
	}

	if r.metrics != nil {
		r.metrics.ReconcileOutcomes.WithLabelValues(string(outcome.Rule)).Inc()
		r.metrics.ReconcileDuration.Observe(time.Since(start).Seconds())
	}
	r.logger.Debug("artifact reconciled",
		zap.String("artifact_id", artifact.ID.String()),
		zap.String("type", string(artifact.Type)),
		zap.String("rule", string(outcome.Rule)),
		zap.Bool("created", outcome.Created),
	)
	return outcome, nil
}

func (r *Reconciler) resolve(ctx context.Context, artifact *entities.Artifact) (*Outcome, error) {
	if artifact.Type.IsIgnored() {
		return &Outcome{Rule: RuleIgnored}, nil
	}

	anchor, err := r.store.ActiveAnchor(ctx)
	if err != nil {
		return nil, err
	}

	// Rule 1: an existing node already carries this artifact's id.
	if !artifact.ID.IsZero() {
		if nodeID, err := valueobjects.NodeIDFromString(artifact.ID.String()); err == nil {
			if node, err := r.store.GetNode(ctx, nodeID); err == nil {
				if err := r.updateInPlace(ctx, node, artifact); err != nil {
					return nil, err
				}
				if err := r.EnsureEdge(ctx, anchor, nodeID); err != nil {
					return nil, err
				}
				return &Outcome{Rule: RuleExactID, NodeID: nodeID}, nil
			} else if !pkgerrors.IsNotFound(err) {
				return nil, err
			}
		}
	}

	// Rule 2: a streamed assistant response continues the latest document
	// node born from the same chat block.
	if artifact.Type == entities.ArtifactDocument && artifact.Origin.IsAssistantResponse(anchor) {
		node, err := r.latestAssistantDocument(ctx, anchor)
		if err != nil {
			return nil, err
		}
		if node != nil {
			if err := r.updateInPlace(ctx, node, artifact); err != nil {
				return nil, err
			}
			if err := r.EnsureEdge(ctx, anchor, node.ID()); err != nil {
				return nil, err
			}
			return &Outcome{Rule: RuleStreamUpdate, NodeID: node.ID()}, nil
		}
	}

	// Rule 3: artifacts from the same tool invocation fold into one node.
	if artifact.Type == entities.ArtifactDocument || artifact.Type == entities.ArtifactDataTable {
		node, err := r.toolGroupNode(ctx, artifact)
		if err != nil {
			return nil, err
		}
		if node != nil {
			if err := r.foldInto(ctx, node, artifact); err != nil {
				return nil, err
			}
			if err := r.EnsureEdge(ctx, anchor, node.ID()); err != nil {
				return nil, err
			}
			return &Outcome{Rule: RuleToolGroup, NodeID: node.ID()}, nil
		}
	}

	// Rule 4: graph artifacts explode into entity nodes and relation edges.
	if artifact.Type == entities.ArtifactGraph {
		return r.explodeGraph(ctx, anchor, artifact)
	}

	// Rule 5: nothing matched, materialize a fresh node.
	return r.createNode(ctx, anchor, artifact)
}

// updateInPlace overwrites the payload of a node that already represents the
// artifact. User-edited titles survive; payload, summary and origin do not.
// A grouped node replaces the matching sub-artifact instead of clobbering
// its siblings.
func (r *Reconciler) updateInPlace(ctx context.Context, node *entities.Node, artifact *entities.Artifact) error {
	return r.store.UpdateNodeData(ctx, node.ID(), func(current entities.NodeData) entities.NodeData {
		switch data := current.(type) {
		case *entities.TableData:
			data.SetAutoTitle(artifact.Title)
			data.Summary = artifact.Summary
			data.Origin = artifact.Origin
			if data.Tables != nil {
				data.Fold(tableEntry(artifact))
			} else {
				entry := tableEntry(artifact)
				data.Table = &entry
				data.RowCount = len(entry.Rows)
			}
			return data
		case *entities.DocumentData:
			data.SetAutoTitle(artifact.Title)
			data.Summary = artifact.Summary
			data.Origin = artifact.Origin
			if data.Documents != nil {
				data.Fold(documentEntry(artifact))
			} else {
				data.Content = artifact.Payload.Content
			}
			return data
		default:
			// An artifact id colliding with a non-artifact node is left
			// alone rather than corrupting an unrelated payload.
			return current
		}
	})
}

// latestAssistantDocument finds the most recently added document node whose
// origin marks it as the streamed assistant response of the given chat
// block. Finalized documents have closed their stream and are skipped.
func (r *Reconciler) latestAssistantDocument(ctx context.Context, anchor valueobjects.NodeID) (*entities.Node, error) {
	nodes, err := r.store.GetNodes(ctx)
	if err != nil {
		return nil, err
	}

	var latest *entities.Node
	for _, node := range nodes {
		data, ok := node.Data().(*entities.DocumentData)
		if !ok || data.Finalized {
			continue
		}
		if data.Origin.IsAssistantResponse(anchor) {
			latest = node
		}
	}
	return latest, nil
}

// toolGroupNode finds an existing node spawned by the same tool invocation,
// matched by tool name and chat block.
func (r *Reconciler) toolGroupNode(ctx context.Context, artifact *entities.Artifact) (*entities.Node, error) {
	if artifact.Origin == nil || artifact.Origin.ToolName == "" {
		return nil, nil
	}

	wantKind := entities.NodeTypeDocument
	if artifact.Type == entities.ArtifactDataTable {
		wantKind = entities.NodeTypeTable
	}

	nodes, err := r.store.GetNodes(ctx)
	if err != nil {
		return nil, err
	}
	for _, node := range nodes {
		if node.Type() != wantKind {
			continue
		}
		var origin *entities.Origin
		switch data := node.Data().(type) {
		case *entities.TableData:
			origin = data.Origin
		case *entities.DocumentData:
			origin = data.Origin
		}
		if origin.SameToolGroup(artifact.Origin) {
			return node, nil
		}
	}
	return nil, nil
}

// foldInto merges the artifact as a sub-entry of a grouped node.
func (r *Reconciler) foldInto(ctx context.Context, node *entities.Node, artifact *entities.Artifact) error {
	return r.store.UpdateNodeData(ctx, node.ID(), func(current entities.NodeData) entities.NodeData {
		switch data := current.(type) {
		case *entities.TableData:
			data.Fold(tableEntry(artifact))
		case *entities.DocumentData:
			data.Fold(documentEntry(artifact))
		}
		return current
	})
}

// explodeGraph materializes one canvas node per graph node spec and one
// relation edge per graph edge spec. Specs whose generator id was seen
// before patch the existing node. Self-loops and repeated edges are dropped.
func (r *Reconciler) explodeGraph(ctx context.Context, anchor valueobjects.NodeID, artifact *entities.Artifact) (*Outcome, error) {
	outcome := &Outcome{Rule: RuleGraph}

	anchorCenter, err := r.anchorCenter(ctx, anchor)
	if err != nil {
		return nil, err
	}
	occupied, err := r.occupiedRects(ctx)
	if err != nil {
		return nil, err
	}

	var pending []valueobjects.Rect
	for _, spec := range artifact.Payload.Nodes {
		if spec.ID == "" {
			continue
		}

		if nodeID, seen := r.graphIDs[spec.ID]; seen {
			if _, err := r.store.GetNode(ctx, nodeID); err == nil {
				patchErr := r.store.UpdateNodeData(ctx, nodeID, func(current entities.NodeData) entities.NodeData {
					if data, ok := current.(*entities.GraphEntityData); ok {
						data.Patch(spec)
					}
					return current
				})
				if patchErr != nil {
					return nil, patchErr
				}
				outcome.GraphNodesPatched++
				continue
			} else if !pkgerrors.IsNotFound(err) {
				return nil, err
			}
			// Mapped node was removed from the canvas; recreate it.
			delete(r.graphIDs, spec.ID)
		}

		result := r.placer.FindArtifactPosition(anchorCenter, entities.NodeTypeGraphEntity, occupied, pending)
		r.observePlacement(result)
		pending = append(pending, result.Rect)

		size := r.placer.SizeFor(entities.NodeTypeGraphEntity)
		nodeID := valueobjects.NewNodeID()
		node, err := entities.NewFreeformNode(nodeID, entities.NodeTypeGraphEntity,
			result.Center, size.Width, size.Height,
			&entities.GraphEntityData{
				Title:         spec.Title,
				EntityType:    spec.EntityType,
				Description:   spec.Description,
				SourceGraphID: spec.ID,
			})
		if err != nil {
			return nil, err
		}
		if err := r.store.AddNode(ctx, node); err != nil {
			return nil, err
		}
		r.graphIDs[spec.ID] = nodeID
		outcome.GraphNodesCreated++

		if err := r.EnsureEdge(ctx, anchor, nodeID); err != nil {
			return nil, err
		}
	}

	for _, spec := range artifact.Payload.Edges {
		if spec.Source == spec.Target {
			continue
		}
		source, ok := r.graphIDs[spec.Source]
		if !ok {
			continue
		}
		target, ok := r.graphIDs[spec.Target]
		if !ok {
			continue
		}

		key := relationKey{source: source.String(), target: target.String(), label: spec.Label}
		if _, dup := r.relations[key]; dup {
			continue
		}

		edge, err := entities.NewEdge(source, target, entities.EdgeKindRelation, spec.Label)
		if err != nil {
			return nil, err
		}
		if err := r.store.AddEdge(ctx, edge); err != nil {
			return nil, err
		}
		r.relations[key] = struct{}{}
		outcome.GraphEdgesCreated++
	}

	return outcome, nil
}

// createNode materializes a fresh node for an artifact no other rule
// claimed. Unknown artifact types degrade to a document-shaped node so the
// content is never dropped.
func (r *Reconciler) createNode(ctx context.Context, anchor valueobjects.NodeID, artifact *entities.Artifact) (*Outcome, error) {
	if artifact.ID.IsZero() {
		artifact.ID = valueobjects.NewArtifactID()
	}
	nodeID, err := valueobjects.NodeIDFromString(artifact.ID.String())
	if err != nil {
		return nil, err
	}

	nodeType := entities.NodeTypeDocument
	var data entities.NodeData
	switch artifact.Type {
	case entities.ArtifactDataTable:
		nodeType = entities.NodeTypeTable
		entry := tableEntry(artifact)
		data = &entities.TableData{
			Title:     artifact.Title,
			Summary:   artifact.Summary,
			Origin:    artifact.Origin,
			CreatedAt: artifact.CreatedAt,
			Table:     &entry,
			RowCount:  len(entry.Rows),
		}
	default:
		title := artifact.Title
		content := artifact.Payload.Content
		if title == "" {
			if split, body, ok := SplitDocumentTitle(content); ok {
				title, content = split, body
			}
		}
		data = &entities.DocumentData{
			Title:     title,
			Summary:   artifact.Summary,
			Origin:    artifact.Origin,
			CreatedAt: artifact.CreatedAt,
			Content:   content,
		}
	}

	anchorCenter, err := r.anchorCenter(ctx, anchor)
	if err != nil {
		return nil, err
	}
	occupied, err := r.occupiedRects(ctx)
	if err != nil {
		return nil, err
	}

	result := r.placer.FindArtifactPosition(anchorCenter, nodeType, occupied, nil)
	r.observePlacement(result)

	size := r.placer.SizeFor(nodeType)
	node, err := entities.NewFreeformNode(nodeID, nodeType, result.Center, size.Width, size.Height, data)
	if err != nil {
		return nil, err
	}
	if err := r.store.AddNode(ctx, node); err != nil {
		return nil, err
	}
	if err := r.EnsureEdge(ctx, anchor, nodeID); err != nil {
		return nil, err
	}

	return &Outcome{Rule: RuleCreate, NodeID: nodeID, Created: true}, nil
}

// EnsureEdge creates a context edge from source to target unless one with
// the same endpoints already exists. A zero source, meaning no active chat
// anchor, is a no-op.
func (r *Reconciler) EnsureEdge(ctx context.Context, source, target valueobjects.NodeID) error {
	if source.IsZero() || target.IsZero() || source.Equals(target) {
		return nil
	}

	edges, err := r.store.GetEdges(ctx)
	if err != nil {
		return err
	}
	for _, edge := range edges {
		if edge.Connects(source, target, entities.EdgeKindContext) {
			return nil
		}
	}

	edge, err := entities.NewEdge(source, target, entities.EdgeKindContext, "")
	if err != nil {
		return err
	}
	return r.store.AddEdge(ctx, edge)
}

// anchorCenter resolves the active anchor's pixel center. A free-form
// anchor yields its position, a tile anchor its hex cell center, and a
// missing anchor the canvas origin.
func (r *Reconciler) anchorCenter(ctx context.Context, anchor valueobjects.NodeID) (valueobjects.Position, error) {
	if anchor.IsZero() {
		return valueobjects.Position{}, nil
	}
	node, err := r.store.GetNode(ctx, anchor)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return valueobjects.Position{}, nil
		}
		return valueobjects.Position{}, err
	}
	if pos, ok := node.Position(); ok {
		return pos, nil
	}
	if coord, ok := node.Coord(); ok {
		return hex.AxialToPixel(coord, r.cfg.HexSize), nil
	}
	return valueobjects.Position{}, nil
}

func (r *Reconciler) occupiedRects(ctx context.Context) ([]valueobjects.Rect, error) {
	nodes, err := r.store.GetNodes(ctx)
	if err != nil {
		return nil, err
	}
	rects := make([]valueobjects.Rect, 0, len(nodes))
	for _, node := range nodes {
		if rect, ok := node.Rect(); ok {
			rects = append(rects, rect)
		}
	}
	return rects, nil
}

func (r *Reconciler) observePlacement(result placement.Result) {
	if r.metrics == nil {
		return
	}
	if result.Fallback {
		r.metrics.PlacementFallbacks.Inc()
		return
	}
	r.metrics.PlacementRings.Observe(float64(result.Ring))
}

func tableEntry(artifact *entities.Artifact) entities.TableEntry {
	entry := entities.TableEntry{
		ID:      artifact.ID,
		Title:   artifact.Title,
		Columns: artifact.Payload.Columns,
		Rows:    artifact.Payload.Rows,
	}
	if artifact.Origin != nil {
		entry.SourceNumber = artifact.Origin.SourceNumber
	}
	return entry
}

func documentEntry(artifact *entities.Artifact) entities.DocumentEntry {
	entry := entities.DocumentEntry{
		ID:      artifact.ID,
		Title:   artifact.Title,
		Content: artifact.Payload.Content,
	}
	if artifact.Origin != nil {
		entry.SourceNumber = artifact.Origin.SourceNumber
	}
	return entry
}
