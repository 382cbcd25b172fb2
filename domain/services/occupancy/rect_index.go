// Package occupancy answers "is this cell/region free?" for both canvases.
package occupancy

import (
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
)

// RectIndex tracks the footprints already placed on the free-form canvas.
// The working set is tens of nodes, so a linear scan is deliberate.
type RectIndex struct {
	rects []valueobjects.Rect
}

// NewRectIndex creates an index over the given existing footprints
func NewRectIndex(existing []valueobjects.Rect) *RectIndex {
	rects := make([]valueobjects.Rect, len(existing))
	copy(rects, existing)
	return &RectIndex{rects: rects}
}

// Free reports whether the candidate, inflated by the gutter margin,
// overlaps none of the indexed rects.
func (idx *RectIndex) Free(candidate valueobjects.Rect, gutter float64) bool {
	inflated := candidate.Inflate(gutter)
	for _, r := range idx.rects {
		if inflated.Intersects(r) {
			return false
		}
	}
	return true
}

// Add records a footprint as occupied
func (idx *RectIndex) Add(r valueobjects.Rect) {
	idx.rects = append(idx.rects, r)
}

// Snapshot returns a copy of the indexed footprints
func (idx *RectIndex) Snapshot() []valueobjects.Rect {
	out := make([]valueobjects.Rect, len(idx.rects))
	copy(out, idx.rects)
	return out
}
