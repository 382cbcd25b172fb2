package territory

import (
	"github.com/xFoundry/mentor-hub-canvas/domain/core/entities"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/domain/hex"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

// MergeState is the state of a merge mediation
type MergeState string

const (
	MergePending   MergeState = "pending"
	MergeConfirmed MergeState = "confirmed"
	MergeCancelled MergeState = "cancelled"
)

// Merge is the two-outcome confirmation gate opened when a tile placement
// touches multiple territories. It freezes the tile's placement until the
// user resolves it; there is no timeout. Cancel must leave every territory
// and tile untouched, which is why the merge itself carries no mutations:
// the caller applies effects only after Confirm succeeds.
type Merge struct {
	tileID      valueobjects.NodeID
	from        hex.Coord
	to          hex.Coord
	territories []*entities.Territory
	state       MergeState
}

// NewMerge opens a pending merge for a tile moving from one coordinate to
// another (from == to for a fresh placement).
func NewMerge(
	tileID valueobjects.NodeID,
	from, to hex.Coord,
	territories []*entities.Territory,
) *Merge {
	return &Merge{
		tileID:      tileID,
		from:        from,
		to:          to,
		territories: territories,
		state:       MergePending,
	}
}

// TileID returns the tile whose placement is gated
func (m *Merge) TileID() valueobjects.NodeID {
	return m.tileID
}

// From returns the tile's pre-drag coordinate
func (m *Merge) From() hex.Coord {
	return m.from
}

// To returns the prospective coordinate
func (m *Merge) To() hex.Coord {
	return m.to
}

// Territories returns the territories the placement would fuse
func (m *Merge) Territories() []*entities.Territory {
	out := make([]*entities.Territory, len(m.territories))
	copy(out, m.territories)
	return out
}

// State returns the merge's current state
func (m *Merge) State() MergeState {
	return m.state
}

// Confirm resolves the merge; only valid while pending
func (m *Merge) Confirm() error {
	if m.state != MergePending {
		return pkgerrors.NewConflictError("merge already resolved")
	}
	m.state = MergeConfirmed
	return nil
}

// Cancel resolves the merge without side effects; only valid while pending
func (m *Merge) Cancel() error {
	if m.state != MergePending {
		return pkgerrors.NewConflictError("merge already resolved")
	}
	m.state = MergeCancelled
	return nil
}

// Preferences holds the persisted merge-mediation preference. A single
// global flag covers both the click-create and drag-move flows.
type Preferences struct {
	SkipConfirmation bool
}
