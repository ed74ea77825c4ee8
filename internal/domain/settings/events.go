package settings

import (
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EventSettingsUpdated is emitted when the company settings change,
// including after a backup restore rewrote them.
const EventSettingsUpdated = "settings_updated"

// SettingsEventPayload is the fan-out payload for settings events
type SettingsEventPayload struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// SettingsUpdatedEvent is a domain event about the settings singleton
type SettingsUpdatedEvent struct {
	shared.BaseDomainEvent
}

// NewSettingsUpdatedEvent creates a settings_updated event
func NewSettingsUpdatedEvent(s *CompanySettings, actorID uuid.UUID) *SettingsUpdatedEvent {
	payload := SettingsEventPayload{}
	if s != nil {
		payload.Name = s.Name
		payload.Currency = s.Currency
	}
	return &SettingsUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSettingsUpdated, actorID, payload),
	}
}
