// Package hex implements axial-coordinate math for the pointy-top hex grid
// used by the map canvas. All functions are pure.
package hex

import (
	"fmt"
	"strconv"
	"strings"

	pkgerrors "github.com/xFoundry/mentor-hub-canvas/pkg/errors"
)

// Coord is an axial hex coordinate. Identity is value equality.
type Coord struct {
	Q int
	R int
}

// Directions is the fixed neighbor direction table. Its order is load-bearing:
// ring walks, spiral searches, and adjacency scans all follow it, which keeps
// every search in this package deterministic.
var Directions = [6]Coord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Add returns the component-wise sum of two coordinates
func (c Coord) Add(other Coord) Coord {
	return Coord{Q: c.Q + other.Q, R: c.R + other.R}
}

// Neighbor returns the adjacent coordinate in the given direction index (0..5)
func (c Coord) Neighbor(direction int) Coord {
	return c.Add(Directions[direction])
}

// Neighbors returns all six adjacent coordinates in direction-table order
func (c Coord) Neighbors() [6]Coord {
	var out [6]Coord
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// Key returns the canonical "q,r" string used for set/map membership
func (c Coord) Key() string {
	return fmt.Sprintf("%d,%d", c.Q, c.R)
}

// ParseKey parses a canonical "q,r" key back into a coordinate
func ParseKey(key string) (Coord, error) {
	parts := strings.Split(key, ",")
	if len(parts) != 2 {
		return Coord{}, pkgerrors.NewValidationError("hex key must be of the form q,r")
	}
	q, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Coord{}, pkgerrors.NewValidationError("hex key q component is not an integer")
	}
	r, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Coord{}, pkgerrors.NewValidationError("hex key r component is not an integer")
	}
	return Coord{Q: q, R: r}, nil
}

// Distance returns the hex-grid distance between two coordinates
func Distance(a, b Coord) int {
	// Cube distance over the axial representation
	dq := a.Q - b.Q
	dr := a.R - b.R
	ds := -dq - dr
	return (abs(dq) + abs(dr) + abs(ds)) / 2
}

// Ring returns the coordinates exactly radius steps from center, discovered
// by breadth-expansion in direction-table order. Radius 0 is the center itself.
func Ring(center Coord, radius int) []Coord {
	if radius < 0 {
		return nil
	}
	spiral := Spiral(center, radius)
	out := make([]Coord, 0, 6*radius)
	for _, c := range spiral {
		if Distance(center, c) == radius {
			out = append(out, c)
		}
	}
	return out
}

// Spiral returns center plus every coordinate within maxRadius rings, in
// breadth-first discovery order: ring by ring, neighbors visited in
// direction-table order. The order is deterministic and is the tie-break
// contract for nearest-open-coordinate searches.
func Spiral(center Coord, maxRadius int) []Coord {
	if maxRadius < 0 {
		return nil
	}
	seen := map[Coord]struct{}{center: {}}
	out := []Coord{center}
	frontier := []Coord{center}

	for radius := 1; radius <= maxRadius; radius++ {
		next := make([]Coord, 0, len(frontier)*2)
		for _, c := range frontier {
			for _, d := range Directions {
				n := c.Add(d)
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				next = append(next, n)
				out = append(out, n)
			}
		}
		frontier = next
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
