package contextsel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xFoundry/mentor-hub-canvas/domain/core/entities"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/infrastructure/persistence/memory"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

type selectionFixture struct {
	store   *memory.NodeStore
	service *Service
	anchor  valueobjects.NodeID
	docs    []valueobjects.NodeID
}

func newSelectionFixture(t *testing.T, linkedDocs int) *selectionFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewNodeStore()

	zone, err := entities.NewFreeformNode(
		valueobjects.NewNodeID(), entities.NodeTypeZone,
		valueobjects.Position{}, 360, 420,
		&entities.ZoneData{Title: "Chat"},
	)
	require.NoError(t, err)
	require.NoError(t, store.AddNode(ctx, zone))

	f := &selectionFixture{store: store, service: NewService(store, nil), anchor: zone.ID()}
	for i := 0; i < linkedDocs; i++ {
		doc, err := entities.NewFreeformNode(
			valueobjects.NewNodeID(), entities.NodeTypeDocument,
			valueobjects.Position{}, 300, 380,
			&entities.DocumentData{Title: "doc"},
		)
		require.NoError(t, err)
		require.NoError(t, store.AddNode(ctx, doc))

		edge, err := entities.NewEdge(zone.ID(), doc.ID(), entities.EdgeKindContext, "")
		require.NoError(t, err)
		require.NoError(t, store.AddEdge(ctx, edge))
		f.docs = append(f.docs, doc.ID())
	}
	return f
}

func TestAutoModeFollowsLinks(t *testing.T) {
	f := newSelectionFixture(t, 2)
	ctx := context.Background()

	mode, err := f.service.Mode(ctx, f.anchor)
	require.NoError(t, err)
	assert.Equal(t, ModeAuto, mode)

	set, err := f.service.ContextSet(ctx, f.anchor)
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.True(t, set[0].Equals(f.docs[0]))
	assert.True(t, set[1].Equals(f.docs[1]))
}

func TestToggleMaterializesManualList(t *testing.T) {
	f := newSelectionFixture(t, 3)
	ctx := context.Background()

	// Toggling off one doc in auto mode freezes the rest as a manual list.
	require.NoError(t, f.service.Toggle(ctx, f.anchor, f.docs[1]))

	mode, err := f.service.Mode(ctx, f.anchor)
	require.NoError(t, err)
	assert.Equal(t, ModeManual, mode)

	set, err := f.service.ContextSet(ctx, f.anchor)
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.True(t, set[0].Equals(f.docs[0]))
	assert.True(t, set[1].Equals(f.docs[2]))

	// Toggling the same doc back on appends it.
	require.NoError(t, f.service.Toggle(ctx, f.anchor, f.docs[1]))
	set, err = f.service.ContextSet(ctx, f.anchor)
	require.NoError(t, err)
	assert.Len(t, set, 3)

	// New links no longer affect a manual list.
	doc, err := entities.NewFreeformNode(
		valueobjects.NewNodeID(), entities.NodeTypeDocument,
		valueobjects.Position{}, 300, 380, nil,
	)
	require.NoError(t, err)
	require.NoError(t, f.store.AddNode(ctx, doc))
	edge, err := entities.NewEdge(f.anchor, doc.ID(), entities.EdgeKindContext, "")
	require.NoError(t, err)
	require.NoError(t, f.store.AddEdge(ctx, edge))

	set, err = f.service.ContextSet(ctx, f.anchor)
	require.NoError(t, err)
	assert.Len(t, set, 3, "manual list frozen against new links")
}

func TestLockAndAutoInclude(t *testing.T) {
	f := newSelectionFixture(t, 2)
	ctx := context.Background()

	// Lock keeps the current inclusion while switching modes.
	before, err := f.service.ContextSet(ctx, f.anchor)
	require.NoError(t, err)

	require.NoError(t, f.service.Lock(ctx, f.anchor))
	mode, err := f.service.Mode(ctx, f.anchor)
	require.NoError(t, err)
	assert.Equal(t, ModeManual, mode)

	after, err := f.service.ContextSet(ctx, f.anchor)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// Locking an already-manual anchor is a no-op.
	require.NoError(t, f.service.Lock(ctx, f.anchor))

	// Auto include returns to following links.
	require.NoError(t, f.service.AutoInclude(ctx, f.anchor))
	mode, err = f.service.Mode(ctx, f.anchor)
	require.NoError(t, err)
	assert.Equal(t, ModeAuto, mode)
}

func TestClearIsManualEmpty(t *testing.T) {
	f := newSelectionFixture(t, 2)
	ctx := context.Background()

	require.NoError(t, f.service.Clear(ctx, f.anchor))

	mode, err := f.service.Mode(ctx, f.anchor)
	require.NoError(t, err)
	assert.Equal(t, ModeManual, mode, "cleared is manual-with-empty, not auto")

	set, err := f.service.ContextSet(ctx, f.anchor)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestSelectionRequiresZoneAnchor(t *testing.T) {
	f := newSelectionFixture(t, 0)
	ctx := context.Background()

	doc, err := entities.NewFreeformNode(
		valueobjects.NewNodeID(), entities.NodeTypeDocument,
		valueobjects.Position{}, 300, 380, nil,
	)
	require.NoError(t, err)
	require.NoError(t, f.store.AddNode(ctx, doc))

	_, err = f.service.ContextSet(ctx, doc.ID())
	assert.True(t, pkgerrors.IsValidation(err))

	err = f.service.Clear(ctx, doc.ID())
	assert.True(t, pkgerrors.IsValidation(err))
}
