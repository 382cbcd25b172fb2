// Package interaction drives the tile drag lifecycle on the hex canvas:
// begin snapshots the pre-drag coordinate, move computes a drop preview,
// and drop commits, reverts, or opens a merge confirmation gate.
package interaction

import (
	"context"

	"go.uber.org/zap"

	"github.com/xFoundry/mentor-hub-canvas/application/ports"
	"github.com/xFoundry/mentor-hub-canvas/domain/config"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/entities"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/domain/events"
	"github.com/xFoundry/mentor-hub-canvas/domain/hex"
	"github.com/xFoundry/mentor-hub-canvas/domain/services/occupancy"
	"github.com/xFoundry/mentor-hub-canvas/domain/services/territory"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
	"github.com/xFoundry/mentor-hub-canvas/pkg/observability"
)

// DropResolution names how a drop settled.
type DropResolution string

const (
	// DropCommitted moved the tile to the target coordinate.
	DropCommitted DropResolution = "committed"
	// DropReverted kept the tile at its pre-drag coordinate.
	DropReverted DropResolution = "reverted"
	// DropMergePending froze the drop behind a merge confirmation.
	DropMergePending DropResolution = "merge_pending"
)

// DropResult is the outcome of ending a drag.
type DropResult struct {
	Resolution DropResolution
	Coord      hex.Coord

	// Merge is set on DropMergePending; the tile stays at its pre-drag
	// coordinate until the merge is resolved.
	Merge *territory.Merge
}

// drag tracks one in-flight tile drag.
type drag struct {
	tileID valueobjects.NodeID
	origin hex.Coord
}

// DragController arbitrates tile drags against the hex occupancy index and
// the territory model. One drag is active at a time; the UI serializes
// pointer interaction.
type DragController struct {
	store       ports.NodeStore
	hexes       *occupancy.HexIndex
	territories *territory.Service
	prefs       ports.PreferenceStore
	cfg         *config.DomainConfig
	logger      *zap.Logger
	metrics     *observability.Collector

	active       *drag
	pendingMerge *territory.Merge
}

// NewDragController creates a drag controller. Preferences and metrics may
// be nil; merges then always prompt.
func NewDragController(
	store ports.NodeStore,
	hexes *occupancy.HexIndex,
	territories *territory.Service,
	prefs ports.PreferenceStore,
	cfg *config.DomainConfig,
	logger *zap.Logger,
	metrics *observability.Collector,
) *DragController {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DragController{
		store:       store,
		hexes:       hexes,
		territories: territories,
		prefs:       prefs,
		cfg:         cfg,
		logger:      logger,
		metrics:     metrics,
	}
}

// Begin starts dragging a tile, snapshotting its coordinate so any later
// revert restores the exact pre-drag position.
func (c *DragController) Begin(ctx context.Context, tileID valueobjects.NodeID) error {
	if c.active != nil {
		return pkgerrors.NewConflictError("a drag is already in progress")
	}
	if c.pendingMerge != nil {
		return pkgerrors.NewConflictError("a merge confirmation is pending")
	}

	node, err := c.store.GetNode(ctx, tileID)
	if err != nil {
		return err
	}
	coord, ok := node.Coord()
	if !ok {
		return pkgerrors.NewValidationError("only tiles can be dragged on the hex canvas")
	}

	c.active = &drag{tileID: tileID, origin: coord}
	return nil
}

// Preview maps a pointer position to the drop coordinate the tile would
// land on. Callers may throttle; every call is a pure read.
func (c *DragController) Preview(pointer valueobjects.Position) (hex.Coord, error) {
	if c.active == nil {
		return hex.Coord{}, pkgerrors.NewValidationError("no drag in progress")
	}
	return hex.PixelToAxial(pointer, c.cfg.HexSize), nil
}

// Drop ends the drag with one atomic commit-or-revert decision:
//   - target occupied by another tile: revert
//   - target touches multiple territories: freeze behind a merge gate,
//     unless the user opted to skip confirmation
//   - otherwise: commit
func (c *DragController) Drop(ctx context.Context, pointer valueobjects.Position) (*DropResult, error) {
	if c.active == nil {
		return nil, pkgerrors.NewValidationError("no drag in progress")
	}
	d := c.active
	c.active = nil

	target := hex.PixelToAxial(pointer, c.cfg.HexSize)
	if target == d.origin {
		return &DropResult{Resolution: DropCommitted, Coord: d.origin}, nil
	}

	if owner, occupied := c.hexes.OwnerAt(target); occupied && !owner.Equals(d.tileID) {
		c.logger.Debug("drop target occupied, reverting",
			zap.String("tile", d.tileID.String()),
			zap.String("target", target.Key()),
		)
		return &DropResult{Resolution: DropReverted, Coord: d.origin}, nil
	}

	check := c.territories.CheckMerge(d.tileID, target)
	if check.Required {
		merge := territory.NewMerge(d.tileID, d.origin, target, check.Territories)

		skip, err := c.skipConfirmation(ctx)
		if err != nil {
			return nil, err
		}
		if skip {
			if err := c.resolveMerge(ctx, merge, true); err != nil {
				return nil, err
			}
			c.store.Record(events.NewTerritoryMergeResolved(d.tileID.String(), true))
			return &DropResult{Resolution: DropCommitted, Coord: target, Merge: merge}, nil
		}

		c.pendingMerge = merge
		c.store.Record(events.NewTerritoryMergePending(d.tileID.String(), territoryIDs(check.Territories)))
		if c.metrics != nil {
			c.metrics.MergePrompts.WithLabelValues("prompted").Inc()
		}
		return &DropResult{Resolution: DropMergePending, Coord: d.origin, Merge: merge}, nil
	}

	if err := c.commit(ctx, d.tileID, d.origin, target); err != nil {
		return nil, err
	}
	return &DropResult{Resolution: DropCommitted, Coord: target}, nil
}

// CancelDrag abandons an in-flight drag without touching the tile.
func (c *DragController) CancelDrag() {
	c.active = nil
}

// PendingMerge returns the merge currently gating a drop, if any.
func (c *DragController) PendingMerge() *territory.Merge {
	return c.pendingMerge
}

// ConfirmMerge applies the frozen drop: the tile moves and every involved
// territory's tiles consolidate into the first one.
func (c *DragController) ConfirmMerge(ctx context.Context) error {
	merge := c.pendingMerge
	if merge == nil {
		return pkgerrors.NewNotFoundError("pending merge")
	}
	c.pendingMerge = nil

	if err := c.resolveMerge(ctx, merge, false); err != nil {
		return err
	}
	c.store.Record(events.NewTerritoryMergeResolved(merge.TileID().String(), true))
	if c.metrics != nil {
		c.metrics.MergePrompts.WithLabelValues("confirmed").Inc()
	}
	return nil
}

// CancelMerge abandons the frozen drop. The tile keeps its exact pre-drag
// coordinate; no territory or position mutation happened while pending, so
// cancellation has nothing to undo.
func (c *DragController) CancelMerge() error {
	merge := c.pendingMerge
	if merge == nil {
		return pkgerrors.NewNotFoundError("pending merge")
	}
	c.pendingMerge = nil

	if err := merge.Cancel(); err != nil {
		return err
	}
	c.store.Record(events.NewTerritoryMergeResolved(merge.TileID().String(), false))
	if c.metrics != nil {
		c.metrics.MergePrompts.WithLabelValues("cancelled").Inc()
	}
	return nil
}

func territoryIDs(territories []*entities.Territory) []string {
	ids := make([]string, 0, len(territories))
	for _, t := range territories {
		ids = append(ids, t.ID().String())
	}
	return ids
}

func (c *DragController) skipConfirmation(ctx context.Context) (bool, error) {
	if c.prefs == nil {
		return false, nil
	}
	return c.prefs.MergeSkipConfirmation(ctx)
}

// resolveMerge confirms the merge, commits the tile move, and consolidates
// the involved territories into the first one.
func (c *DragController) resolveMerge(ctx context.Context, merge *territory.Merge, auto bool) error {
	if err := merge.Confirm(); err != nil {
		return err
	}
	if err := c.commit(ctx, merge.TileID(), merge.From(), merge.To()); err != nil {
		return err
	}

	if err := c.consolidate(merge.TileID(), merge.Territories()); err != nil {
		return err
	}
	if auto && c.metrics != nil {
		c.metrics.MergePrompts.WithLabelValues("auto_confirmed").Inc()
	}
	return nil
}

// commit moves the tile in both the occupancy index and the node store.
// The index move is atomic; the store follows only after it succeeds.
func (c *DragController) commit(ctx context.Context, tileID valueobjects.NodeID, from, to hex.Coord) error {
	if from != to {
		if err := c.hexes.Move(from, to, tileID); err != nil {
			return err
		}
	}
	return c.store.MoveTile(ctx, tileID, to)
}

// consolidate folds every involved territory's tiles into the first one
// and makes sure the dragged tile itself lands there too.
func (c *DragController) consolidate(tileID valueobjects.NodeID, involved []*entities.Territory) error {
	if len(involved) == 0 {
		return nil
	}
	primary := involved[0]

	for _, t := range involved[1:] {
		for _, id := range t.TileIDs() {
			if err := c.territories.UnassignTile(id); err != nil {
				return err
			}
			if err := c.territories.AssignTile(primary.ID(), id); err != nil {
				return err
			}
		}
		c.logger.Info("territory merged",
			zap.String("into", primary.ID().String()),
			zap.String("from", t.ID().String()),
		)
	}

	if _, owned := c.territories.OwnerOf(tileID); !owned {
		if err := c.territories.AssignTile(primary.ID(), tileID); err != nil {
			return err
		}
	}
	return nil
}
