package placement

import (
	"fmt"

	"github.com/xFoundry/mentor-hub-canvas/domain/hex"
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

// FindOpenCoord walks the spiral around the anchor (ring 0 is the anchor
// itself) and returns the first coordinate the occupied predicate reports
// free. Rings are visited in the fixed neighbor-direction order, so ties
// always resolve the same way.
//
// A NO_SPACE error after maxRadius rings is fatal for the caller: a tile
// placement with no visible effect would swallow a user action, so callers
// either widen the bound or surface the failure.
func FindOpenCoord(occupied func(hex.Coord) bool, anchor hex.Coord, maxRadius int) (hex.Coord, error) {
	for _, c := range hex.Spiral(anchor, maxRadius) {
		if !occupied(c) {
			return c, nil
		}
	}
	return hex.Coord{}, pkgerrors.NewNoSpaceError(
		fmt.Sprintf("no open hex within %d rings of %s", maxRadius, anchor.Key()))
}
