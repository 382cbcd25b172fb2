package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/xFoundry/mentor-hub-canvas/application/ports"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

// SnapshotStore is an in-memory ports.SnapshotStore
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[valueobjects.SnapshotID]ports.Snapshot
}

// NewSnapshotStore creates an empty in-memory snapshot store
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		snapshots: make(map[valueobjects.SnapshotID]ports.Snapshot),
	}
}

// Create stores a snapshot
func (s *SnapshotStore) Create(ctx context.Context, snapshot ports.Snapshot) error {
	if snapshot.ID.IsZero() {
		return pkgerrors.NewValidationError("snapshot ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.snapshots[snapshot.ID]; exists {
		return pkgerrors.NewConflictError("snapshot " + snapshot.ID.String() + " already exists")
	}
	snapshot.Blob = append([]byte(nil), snapshot.Blob...)
	s.snapshots[snapshot.ID] = snapshot
	return nil
}

// Get returns a snapshot by id
func (s *SnapshotStore) Get(ctx context.Context, id valueobjects.SnapshotID) (ports.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[id]
	if !ok {
		return ports.Snapshot{}, pkgerrors.NewNotFoundError("snapshot " + id.String())
	}
	snapshot.Blob = append([]byte(nil), snapshot.Blob...)
	return snapshot, nil
}

// List returns all snapshots, newest first
func (s *SnapshotStore) List(ctx context.Context) ([]ports.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ports.Snapshot, 0, len(s.snapshots))
	for _, snapshot := range s.snapshots {
		snapshot.Blob = append([]byte(nil), snapshot.Blob...)
		out = append(out, snapshot)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a snapshot
func (s *SnapshotStore) Delete(ctx context.Context, id valueobjects.SnapshotID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.snapshots[id]; !ok {
		return pkgerrors.NewNotFoundError("snapshot " + id.String())
	}
	delete(s.snapshots, id)
	return nil
}

// PreferenceStore is an in-memory ports.PreferenceStore
type PreferenceStore struct {
	mu   sync.RWMutex
	skip bool
}

// NewPreferenceStore creates an in-memory preference store
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{}
}

// MergeSkipConfirmation returns the persisted "don't ask again" flag
func (s *PreferenceStore) MergeSkipConfirmation(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skip, nil
}

// SetMergeSkipConfirmation persists the "don't ask again" flag
func (s *PreferenceStore) SetMergeSkipConfirmation(ctx context.Context, skip bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skip = skip
	return nil
}
