// Package placement finds non-overlapping positions for new nodes: an
// expanding ring search around an anchor on the free-form canvas, and a
// spiral search over the hex grid.
package placement

import (
	"math"

	"go.uber.org/zap"

	"github.com/xFoundry/mentor-hub-canvas/domain/config"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/entities"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/domain/services/occupancy"
)

// Result is the outcome of a free-form placement search
type Result struct {
	Center valueobjects.Position
	Rect   valueobjects.Rect
	// Fallback is set when every ring was taken and the overlapping
	// fixed-offset position was accepted instead.
	Fallback bool
	// Ring is the ring index the slot was found on, -1 on fallback.
	Ring int
}

// Engine performs deterministic placement searches. Given identical inputs
// it always returns the same result; there is no randomness anywhere.
type Engine struct {
	cfg    *config.DomainConfig
	logger *zap.Logger
}

// NewEngine creates a placement engine
func NewEngine(cfg *config.DomainConfig, logger *zap.Logger) *Engine {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// SizeFor returns the default footprint for a node type
func (e *Engine) SizeFor(nodeType entities.NodeType) config.NodeSize {
	switch nodeType {
	case entities.NodeTypeZone:
		return e.cfg.ZoneSize
	case entities.NodeTypeTable:
		return e.cfg.TableSize
	case entities.NodeTypeGraphEntity:
		return e.cfg.GraphEntitySize
	default:
		return e.cfg.DocumentSize
	}
}

// FindArtifactPosition searches expanding rings around the anchor for a slot
// where a node of the given type fits without overlapping any occupied or
// pending footprint (both inflated by the configured gutter).
//
// Pending carries the rects already accepted earlier in the same batch, so
// artifacts created together do not stack before the canonical node list
// refreshes. Callers thread it explicitly: append the returned Rect and pass
// the grown slice into the next call.
//
// When every ring is exhausted the fixed offset along angle 0 is accepted
// even though it may overlap; an artifact is never silently dropped.
func (e *Engine) FindArtifactPosition(
	anchor valueobjects.Position,
	nodeType entities.NodeType,
	occupied []valueobjects.Rect,
	pending []valueobjects.Rect,
) Result {
	size := e.SizeFor(nodeType)

	index := occupancy.NewRectIndex(occupied)
	for _, r := range pending {
		index.Add(r)
	}

	for ring := 0; ring < e.cfg.MaxRings; ring++ {
		radius := e.cfg.BaseRadius + float64(ring)*e.cfg.RingStep
		steps := int(math.Ceil(2 * math.Pi * radius / e.cfg.ArcLength))
		if steps < e.cfg.MinSteps {
			steps = e.cfg.MinSteps
		}

		for i := 0; i < steps; i++ {
			angle := 2 * math.Pi * float64(i) / float64(steps)
			center, err := anchor.PolarOffset(radius, angle)
			if err != nil {
				continue
			}
			candidate, err := valueobjects.NewRectCentered(center, size.Width, size.Height)
			if err != nil {
				continue
			}
			if index.Free(candidate, e.cfg.Gutter) {
				return Result{Center: center, Rect: candidate, Ring: ring}
			}
		}
	}

	// Every ring taken: accept the overlap rather than dropping the artifact.
	center, _ := anchor.PolarOffset(e.cfg.FallbackOffset, 0)
	rect, _ := valueobjects.NewRectCentered(center, size.Width, size.Height)
	e.logger.Debug("placement ring search exhausted, using fallback offset",
		zap.Float64("anchorX", anchor.X()),
		zap.Float64("anchorY", anchor.Y()),
		zap.String("nodeType", string(nodeType)),
	)
	return Result{Center: center, Rect: rect, Fallback: true, Ring: -1}
}
