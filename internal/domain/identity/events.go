package identity

import (
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types emitted for user administration
const (
	EventUserCreated = "user_created"
	EventUserUpdated = "user_updated"
	EventUserDeleted = "user_deleted"
)

// UserEventPayload is the fan-out payload for user events. It never
// carries the password hash.
type UserEventPayload struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  Role      `json:"role"`
}

// UserEvent is a domain event about a user record
type UserEvent struct {
	shared.BaseDomainEvent
}

func newUserEvent(eventType string, user *User, actorID uuid.UUID) *UserEvent {
	return &UserEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, actorID, UserEventPayload{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		}),
	}
}

// NewUserCreatedEvent creates a user_created event
func NewUserCreatedEvent(user *User, actorID uuid.UUID) *UserEvent {
	return newUserEvent(EventUserCreated, user, actorID)
}

// NewUserUpdatedEvent creates a user_updated event
func NewUserUpdatedEvent(user *User, actorID uuid.UUID) *UserEvent {
	return newUserEvent(EventUserUpdated, user, actorID)
}

// NewUserDeletedEvent creates a user_deleted event
func NewUserDeletedEvent(user *User, actorID uuid.UUID) *UserEvent {
	return newUserEvent(EventUserDeleted, user, actorID)
}
