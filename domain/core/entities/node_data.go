package entities

import (
	"time"

	"github.com/xFoundry/mentor-hub-canvas/domain/core/valueobjects"
)

// NodeType tags the payload variant carried by a node
type NodeType string

const (
	NodeTypeZone        NodeType = "zone"
	NodeTypeTable       NodeType = "tableArtifact"
	NodeTypeDocument    NodeType = "documentArtifact"
	NodeTypeGraphEntity NodeType = "graphEntity"
	NodeTypeTile        NodeType = "tile"
)

// NodeData is the tagged union of per-type node payloads. Reconciliation and
// rendering boundaries type-switch over the concrete variants instead of
// probing optional fields.
type NodeData interface {
	Kind() NodeType
}

// SelectionSet is an explicit manual context selection. A nil *SelectionSet
// on the zone means auto mode; a non-nil set with zero IDs means "manually
// cleared", which is a different state than auto-with-no-links.
type SelectionSet struct {
	IDs []valueobjects.NodeID
}

// Contains reports membership of a node in the selection
func (s *SelectionSet) Contains(id valueobjects.NodeID) bool {
	if s == nil {
		return false
	}
	for _, existing := range s.IDs {
		if existing.Equals(id) {
			return true
		}
	}
	return false
}

// ZoneData is the payload of a chat-bearing zone node
type ZoneData struct {
	Title          string
	HandoffSummary string
	RecentMessages []string
	Streaming      bool

	// Selection is nil while the zone's context follows its linked
	// artifacts automatically.
	Selection *SelectionSet
}

// Kind implements NodeData
func (d *ZoneData) Kind() NodeType { return NodeTypeZone }

// TableEntry is one logical table inside a (possibly grouped) table node
type TableEntry struct {
	ID           valueobjects.ArtifactID
	Title        string
	Columns      []string
	Rows         []TableRow
	SourceNumber int
}

// TableData is the payload of a table artifact node. It starts flat, holding
// a single artifact's content; the first fold migrates it to the grouped
// Tables collection.
type TableData struct {
	Title       string
	TitleEdited bool
	Summary     string
	Origin      *Origin
	CreatedAt   time.Time

	// Exactly one of Table (flat) and Tables (grouped) is populated.
	Table    *TableEntry
	Tables   []TableEntry
	RowCount int
}

// Kind implements NodeData
func (d *TableData) Kind() NodeType { return NodeTypeTable }

// Rename sets a user-chosen title and freezes future auto-title updates
func (d *TableData) Rename(title string) {
	d.Title = title
	d.TitleEdited = true
}

// SetAutoTitle updates the title unless the user renamed the node
func (d *TableData) SetAutoTitle(title string) {
	if d.TitleEdited || title == "" {
		return
	}
	d.Title = title
}

// Entries returns the logical tables of this node, grouped or flat
func (d *TableData) Entries() []TableEntry {
	if d.Tables != nil {
		out := make([]TableEntry, len(d.Tables))
		copy(out, d.Tables)
		return out
	}
	if d.Table != nil {
		return []TableEntry{*d.Table}
	}
	return nil
}

// Fold merges another table entry into this node's grouped collection,
// lazily migrating a flat payload into a one-element collection first.
// An entry with a known sub-artifact id replaces its predecessor in place;
// otherwise it is appended. The aggregate row count is recomputed.
func (d *TableData) Fold(entry TableEntry) {
	if d.Tables == nil {
		d.Tables = []TableEntry{}
		if d.Table != nil {
			d.Tables = append(d.Tables, *d.Table)
			d.Table = nil
		}
	}

	replaced := false
	for i := range d.Tables {
		if d.Tables[i].ID.Equals(entry.ID) {
			d.Tables[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		d.Tables = append(d.Tables, entry)
	}

	total := 0
	for _, t := range d.Tables {
		total += len(t.Rows)
	}
	d.RowCount = total
}

// DocumentEntry is one logical document inside a (possibly grouped)
// document node
type DocumentEntry struct {
	ID           valueobjects.ArtifactID
	Title        string
	Content      string
	SourceNumber int
}

// DocumentData is the payload of a document artifact node. Like TableData it
// starts flat and migrates to the grouped Documents collection on first fold.
type DocumentData struct {
	Title       string
	TitleEdited bool
	Summary     string
	Origin      *Origin
	CreatedAt   time.Time

	Content   string
	Documents []DocumentEntry
	Finalized bool
}

// Kind implements NodeData
func (d *DocumentData) Kind() NodeType { return NodeTypeDocument }

// Rename sets a user-chosen title and freezes future auto-title updates
func (d *DocumentData) Rename(title string) {
	d.Title = title
	d.TitleEdited = true
}

// SetAutoTitle updates the title unless the user renamed the node
func (d *DocumentData) SetAutoTitle(title string) {
	if d.TitleEdited || title == "" {
		return
	}
	d.Title = title
}

// Entries returns the logical documents of this node, grouped or flat
func (d *DocumentData) Entries() []DocumentEntry {
	if d.Documents != nil {
		out := make([]DocumentEntry, len(d.Documents))
		copy(out, d.Documents)
		return out
	}
	if d.Content != "" || d.Title != "" {
		return []DocumentEntry{{Title: d.Title, Content: d.Content}}
	}
	return nil
}

// Fold merges another document entry into this node's grouped collection,
// with the same lazy migration and id-replacement rules as TableData.Fold.
func (d *DocumentData) Fold(entry DocumentEntry) {
	if d.Documents == nil {
		d.Documents = []DocumentEntry{}
		if d.Content != "" || d.Title != "" {
			d.Documents = append(d.Documents, DocumentEntry{
				Title:   d.Title,
				Content: d.Content,
			})
			d.Content = ""
		}
	}

	for i := range d.Documents {
		if d.Documents[i].ID.Equals(entry.ID) {
			d.Documents[i] = entry
			return
		}
	}
	d.Documents = append(d.Documents, entry)
}

// GraphEntityData is the payload of a graph entity node exploded from a
// graph artifact. SourceGraphID is the id the generator used inside the
// artifact payload; the reconciler keeps the typed mapping to the canvas
// node id.
type GraphEntityData struct {
	Title         string
	EntityType    string
	Description   string
	SourceGraphID string
}

// Kind implements NodeData
func (d *GraphEntityData) Kind() NodeType { return NodeTypeGraphEntity }

// Patch applies fields from a newer spec of the same graph entity,
// preserving existing values wherever the incoming field is absent.
func (d *GraphEntityData) Patch(spec GraphNodeSpec) {
	if spec.Title != "" {
		d.Title = spec.Title
	}
	if spec.EntityType != "" {
		d.EntityType = spec.EntityType
	}
	if spec.Description != "" {
		d.Description = spec.Description
	}
}

// TileData is the payload of a hex tile node
type TileData struct {
	Title     string
	Territory valueobjects.TerritoryID
}

// Kind implements NodeData
func (d *TileData) Kind() NodeType { return NodeTypeTile }
