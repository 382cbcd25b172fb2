package hex

import (
	"math"

	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
)

// AxialToPixel converts an axial coordinate to the pixel center of its hex,
// using the pointy-top layout shared with the boundary geometry.
func AxialToPixel(c Coord, size float64) valueobjects.Position {
	x := size * math.Sqrt(3) * (float64(c.Q) + float64(c.R)/2)
	y := size * 1.5 * float64(c.R)
	p, _ := valueobjects.NewPosition(x, y)
	return p
}

// PixelToAxial converts a pixel point to the axial coordinate of the hex
// containing it, via cube rounding: round each cube component and correct
// the one with the largest rounding error so that x+y+z stays zero.
func PixelToAxial(p valueobjects.Position, size float64) Coord {
	qf := (math.Sqrt(3)/3*p.X() - 1.0/3*p.Y()) / size
	rf := (2.0 / 3 * p.Y()) / size

	// Cube components
	xf := qf
	zf := rf
	yf := -xf - zf

	x := math.Round(xf)
	y := math.Round(yf)
	z := math.Round(zf)

	dx := math.Abs(x - xf)
	dy := math.Abs(y - yf)
	dz := math.Abs(z - zf)

	switch {
	case dx > dy && dx > dz:
		x = -y - z
	case dy > dz:
		y = -x - z
	default:
		z = -x - y
	}

	return Coord{Q: int(x), R: int(z)}
}

// Corner returns one of the six corner points of a hex. Corner k sits at
// angle 60°·k − 30° from the center.
func Corner(c Coord, size float64, k int) valueobjects.Position {
	center := AxialToPixel(c, size)
	angle := math.Pi / 180 * (60*float64(k) - 30)
	p, _ := valueobjects.NewPosition(
		center.X()+size*math.Cos(angle),
		center.Y()+size*math.Sin(angle),
	)
	return p
}

// Corners returns all six corner points of a hex in corner-index order
func Corners(c Coord, size float64) [6]valueobjects.Position {
	var out [6]valueobjects.Position
	for k := 0; k < 6; k++ {
		out[k] = Corner(c, size, k)
	}
	return out
}

// EdgeEndpoints returns the two corner points of the hex edge that faces
// Directions[direction]. Both endpoints are shared bit-for-bit in intent
// (and within float epsilon in practice) with the neighboring hex across
// that edge, which is what boundary stitching relies on.
func EdgeEndpoints(c Coord, size float64, direction int) (valueobjects.Position, valueobjects.Position) {
	// Direction j points at pixel angle -60°·j (for j<=2) / mirrored beyond,
	// and the facing edge spans the corners at that angle ±30°. Working the
	// indices out against the corner table gives start corner (6-j) mod 6.
	start := (6 - direction) % 6
	return Corner(c, size, start), Corner(c, size, (start+1)%6)
}
