package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents an event that occurred in the domain
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	// ActorID identifies the user whose action produced the event.
	// uuid.Nil for system-initiated events such as heartbeats.
	ActorID() uuid.UUID
	// EventData returns the serializable payload delivered to subscribers
	EventData() any
}

// BaseDomainEvent provides common fields for all domain events
type BaseDomainEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Actor     uuid.UUID `json:"userId"`
	Data      any       `json:"data,omitempty"`
}

// EventID returns the unique event identifier
func (e *BaseDomainEvent) EventID() uuid.UUID {
	return e.ID
}

// EventType returns the type of the event
func (e *BaseDomainEvent) EventType() string {
	return e.Type
}

// OccurredAt returns when the event occurred
func (e *BaseDomainEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// ActorID returns the acting user ID
func (e *BaseDomainEvent) ActorID() uuid.UUID {
	return e.Actor
}

// EventData returns the event payload
func (e *BaseDomainEvent) EventData() any {
	return e.Data
}

// NewBaseDomainEvent creates a new base domain event
func NewBaseDomainEvent(eventType string, actorID uuid.UUID, data any) BaseDomainEvent {
	return BaseDomainEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now(),
		Actor:     actorID,
		Data:      data,
	}
}
