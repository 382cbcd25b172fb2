package valueobjects

import (
	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

// Rect is the axis-aligned footprint of a node on the free-form canvas.
// X and Y are the top-left corner.
type Rect struct {
	x      float64
	y      float64
	width  float64
	height float64
}

// NewRect creates a rect from its top-left corner and dimensions
func NewRect(x, y, width, height float64) (Rect, error) {
	if !isValidCoordinate(x) || !isValidCoordinate(y) {
		return Rect{}, pkgerrors.NewValidationError("invalid coordinates: must be finite numbers")
	}
	if width <= 0 || height <= 0 {
		return Rect{}, pkgerrors.NewValidationError("rect dimensions must be positive")
	}
	return Rect{x: x, y: y, width: width, height: height}, nil
}

// NewRectCentered creates a rect of the given dimensions centered on a point
func NewRectCentered(center Position, width, height float64) (Rect, error) {
	return NewRect(center.X()-width/2, center.Y()-height/2, width, height)
}

// X returns the left edge
func (r Rect) X() float64 {
	return r.x
}

// Y returns the top edge
func (r Rect) Y() float64 {
	return r.y
}

// Width returns the rect width
func (r Rect) Width() float64 {
	return r.width
}

// Height returns the rect height
func (r Rect) Height() float64 {
	return r.height
}

// Center returns the rect's center point
func (r Rect) Center() Position {
	return Position{x: r.x + r.width/2, y: r.y + r.height/2}
}

// Intersects checks whether two rects overlap.
// Rects that merely share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.x < other.x+other.width &&
		other.x < r.x+r.width &&
		r.y < other.y+other.height &&
		other.y < r.y+r.height
}

// Inflate grows the rect by the given margin on every side.
// The margin may be negative as long as the result keeps positive dimensions.
func (r Rect) Inflate(margin float64) Rect {
	inflated := Rect{
		x:      r.x - margin,
		y:      r.y - margin,
		width:  r.width + 2*margin,
		height: r.height + 2*margin,
	}
	if inflated.width <= 0 || inflated.height <= 0 {
		return r
	}
	return inflated
}

// Equals checks if two rects are equal within a small epsilon
func (r Rect) Equals(other Rect) bool {
	return r.Center().Equals(other.Center()) &&
		Position{x: r.width, y: r.height}.Equals(Position{x: other.width, y: other.height})
}
