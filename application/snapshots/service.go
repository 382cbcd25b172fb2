// Package snapshots manages named canvas snapshots. The blob is opaque to
// this core; the embedding application encodes and re-applies it. This
// service owns identity, counts, and the snapshot lifecycle events.
package snapshots

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xFoundry/mentor-hub-canvas/application/ports"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/domain/events"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

// Service coordinates the snapshot store with the node store.
type Service struct {
	nodes  ports.NodeStore
	snaps  ports.SnapshotStore
	logger *zap.Logger
}

// NewService creates a snapshot service.
func NewService(nodes ports.NodeStore, snaps ports.SnapshotStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{nodes: nodes, snaps: snaps, logger: logger}
}

// Create stores a snapshot of the current canvas under a fresh id. The
// caller supplies the encoded blob; node and edge counts are captured here
// so listings can show them without decoding.
func (s *Service) Create(ctx context.Context, title string, blob []byte) (ports.Snapshot, error) {
	if title == "" {
		return ports.Snapshot{}, pkgerrors.NewValidationError("snapshot title cannot be empty")
	}

	nodes, err := s.nodes.GetNodes(ctx)
	if err != nil {
		return ports.Snapshot{}, err
	}
	edges, err := s.nodes.GetEdges(ctx)
	if err != nil {
		return ports.Snapshot{}, err
	}

	snapshot := ports.Snapshot{
		ID:        valueobjects.NewSnapshotID(),
		Title:     title,
		CreatedAt: time.Now(),
		NodeCount: len(nodes),
		EdgeCount: len(edges),
		Blob:      blob,
	}
	if err := s.snaps.Create(ctx, snapshot); err != nil {
		return ports.Snapshot{}, err
	}

	s.nodes.Record(events.NewSnapshotCreated(snapshot.ID.String(), title))
	s.logger.Info("snapshot created",
		zap.String("snapshot_id", snapshot.ID.String()),
		zap.Int("nodes", snapshot.NodeCount),
		zap.Int("edges", snapshot.EdgeCount),
	)
	return snapshot, nil
}

// Restore resets the canvas and hands the snapshot back for the embedding
// application to re-apply its blob.
func (s *Service) Restore(ctx context.Context, id valueobjects.SnapshotID) (ports.Snapshot, error) {
	snapshot, err := s.snaps.Get(ctx, id)
	if err != nil {
		return ports.Snapshot{}, err
	}

	if err := s.nodes.ResetCanvas(ctx); err != nil {
		return ports.Snapshot{}, err
	}

	s.nodes.Record(events.NewSnapshotRestored(snapshot.ID.String()))
	return snapshot, nil
}

// List returns stored snapshots, newest first.
func (s *Service) List(ctx context.Context) ([]ports.Snapshot, error) {
	return s.snaps.List(ctx)
}

// Delete removes a stored snapshot.
func (s *Service) Delete(ctx context.Context, id valueobjects.SnapshotID) error {
	return s.snaps.Delete(ctx, id)
}
