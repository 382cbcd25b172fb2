// Package events defines the domain events raised by the canvas engines so
// an embedding application can project them (websocket fan-out, audit, undo).
package events

import "time"

// DomainEvent is implemented by every event in this package
type DomainEvent interface {
	GetEventType() string
	GetAggregateID() string
	GetTimestamp() time.Time
}

// Event type constants
const (
	TypeNodePlaced             = "canvas.node.placed"
	TypeNodeUpdated            = "canvas.node.updated"
	TypeNodeRemoved            = "canvas.node.removed"
	TypeNodesLinked            = "canvas.nodes.linked"
	TypeCanvasReset            = "canvas.reset"
	TypeTerritoryMergePending  = "territory.merge.pending"
	TypeTerritoryMergeResolved = "territory.merge.resolved"
	TypeSnapshotCreated        = "canvas.snapshot.created"
	TypeSnapshotRestored       = "canvas.snapshot.restored"
)

// BaseEvent provides the common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregateId"`
	EventType   string    `json:"eventType"`
	Timestamp   time.Time `json:"timestamp"`
}

// GetEventType returns the event type
func (e BaseEvent) GetEventType() string {
	return e.EventType
}

// GetAggregateID returns the aggregate ID
func (e BaseEvent) GetAggregateID() string {
	return e.AggregateID
}

// GetTimestamp returns the event timestamp
func (e BaseEvent) GetTimestamp() time.Time {
	return e.Timestamp
}

func newBase(eventType, aggregateID string) BaseEvent {
	return BaseEvent{
		AggregateID: aggregateID,
		EventType:   eventType,
		Timestamp:   time.Now(),
	}
}
