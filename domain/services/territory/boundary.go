package territory

import (
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/xFoundry/mentor-hub-canvas/domain/core/entities"
	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
	"github.com/xFoundry/mentor-hub-canvas/domain/hex"
)

// Segment is one hex edge on a territory boundary
type Segment struct {
	A valueobjects.Position
	B valueobjects.Position
}

// Path is a stitched polyline of boundary corner points. A closed path
// repeats its first point at the end.
type Path []valueobjects.Position

// BoundarySegments collects every hex edge of the tile set whose neighbor
// across the edge lies outside the set. Tiles are scanned in sorted (r, q)
// order and directions in table order, so the segment list is deterministic.
func BoundarySegments(tiles []hex.Coord, hexSize float64) []Segment {
	inSet := make(map[hex.Coord]struct{}, len(tiles))
	for _, c := range tiles {
		inSet[c] = struct{}{}
	}

	sorted := make([]hex.Coord, len(tiles))
	copy(sorted, tiles)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].R != sorted[j].R {
			return sorted[i].R < sorted[j].R
		}
		return sorted[i].Q < sorted[j].Q
	})

	var out []Segment
	for _, c := range sorted {
		for dir := range hex.Directions {
			if _, inside := inSet[c.Neighbor(dir)]; inside {
				continue
			}
			a, b := hex.EdgeEndpoints(c, hexSize, dir)
			out = append(out, Segment{A: a, B: b})
		}
	}
	return out
}

// StitchSegments joins boundary segments into polylines by repeatedly
// attaching an unplaced segment to either open end of the growing path,
// matching endpoints within the tolerance and reversing the segment when
// needed. Each disconnected group becomes one path.
func StitchSegments(segments []Segment, tolerance float64) []Path {
	remaining := make([]Segment, len(segments))
	copy(remaining, segments)

	var paths []Path
	for len(remaining) > 0 {
		seg := remaining[0]
		remaining = remaining[1:]
		path := Path{seg.A, seg.B}

		for {
			attached := false
			for i, candidate := range remaining {
				head := path[0]
				tail := path[len(path)-1]

				switch {
				case candidate.A.CloseTo(tail, tolerance):
					path = append(path, candidate.B)
				case candidate.B.CloseTo(tail, tolerance):
					path = append(path, candidate.A)
				case candidate.B.CloseTo(head, tolerance):
					path = append(Path{candidate.A}, path...)
				case candidate.A.CloseTo(head, tolerance):
					path = append(Path{candidate.B}, path...)
				default:
					continue
				}

				remaining = append(remaining[:i], remaining[i+1:]...)
				attached = true
				break
			}
			if !attached {
				break
			}
		}
		paths = append(paths, path)
	}
	return paths
}

// BoundaryBuilder builds and caches territory outlines. Paths only change
// when a territory's tile membership does, so results are cached per
// (territory, revision).
type BoundaryBuilder struct {
	hexSize float64
	cache   *lru.Cache[string, []Path]
}

// NewBoundaryBuilder creates a boundary builder with an LRU path cache
func NewBoundaryBuilder(hexSize float64, cacheSize int) (*BoundaryBuilder, error) {
	cache, err := lru.New[string, []Path](cacheSize)
	if err != nil {
		return nil, err
	}
	return &BoundaryBuilder{hexSize: hexSize, cache: cache}, nil
}

// PathsFor returns the boundary outline of a territory. coordOf resolves a
// member tile to its current hex coordinate; tiles that resolve to nothing
// (mid-removal) are skipped.
func (b *BoundaryBuilder) PathsFor(
	t *entities.Territory,
	coordOf func(valueobjects.NodeID) (hex.Coord, bool),
) []Path {
	key := fmt.Sprintf("%s:%d", t.ID().String(), t.Revision())
	if cached, ok := b.cache.Get(key); ok {
		return cached
	}

	var coords []hex.Coord
	for _, tileID := range t.TileIDs() {
		if c, ok := coordOf(tileID); ok {
			coords = append(coords, c)
		}
	}

	segments := BoundarySegments(coords, b.hexSize)
	paths := StitchSegments(segments, b.hexSize*1e-3)
	b.cache.Add(key, paths)
	return paths
}
