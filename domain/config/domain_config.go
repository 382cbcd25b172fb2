// Package config holds the domain-level tunables for layout and grouping
// behavior. Infrastructure config (env/YAML) is translated into this type
// at the boundary so the domain never reads the environment itself.
package config

// NodeSize is a default footprint for a node type on the free-form canvas
type NodeSize struct {
	Width  float64
	Height float64
}

// DomainConfig holds business-rule constants for the canvas engines
type DomainConfig struct {
	// Hex grid layout
	HexSize            float64 // circumradius of a hex in pixels
	MaxHexSearchRadius int     // rings searched before placement gives up

	// Free-form placement ring search
	BaseRadius     float64 // radius of ring 0
	RingStep       float64 // radius increment per ring
	MaxRings       int     // rings tried before falling back
	ArcLength      float64 // target arc length between candidate angles
	MinSteps       int     // minimum candidates per ring
	Gutter         float64 // margin kept between placed rects
	FallbackOffset float64 // offset along angle 0 when every ring is taken

	// Node footprint defaults per type
	ZoneSize        NodeSize
	TableSize       NodeSize
	DocumentSize    NodeSize
	GraphEntitySize NodeSize

	// Context selection token estimation
	DocumentSliceLimit int // chars of document content considered
	TableSampleRows    int // rows of a table considered
	CharsPerToken      int // heuristic divisor, not tokenizer-exact
	RecentMessageLimit int // zone messages considered
}

// DefaultDomainConfig returns the default configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		HexSize:            56,
		MaxHexSearchRadius: 12,

		BaseRadius:     280,
		RingStep:       180,
		MaxRings:       6,
		ArcLength:      260,
		MinSteps:       6,
		Gutter:         24,
		FallbackOffset: 1420,

		ZoneSize:        NodeSize{Width: 360, Height: 420},
		TableSize:       NodeSize{Width: 340, Height: 260},
		DocumentSize:    NodeSize{Width: 300, Height: 380},
		GraphEntitySize: NodeSize{Width: 180, Height: 88},

		DocumentSliceLimit: 4000,
		TableSampleRows:    5,
		CharsPerToken:      4,
		RecentMessageLimit: 10,
	}
}
