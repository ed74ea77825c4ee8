package ledger

import (
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types emitted by the ledger engine
const (
	EventSupplierCreated = "supplier_created"
	EventSupplierUpdated = "supplier_updated"
	EventSupplierDeleted = "supplier_deleted"
	EventCustomerCreated = "customer_created"
	EventCustomerUpdated = "customer_updated"
	EventCustomerDeleted = "customer_deleted"
	EventDebtAdded       = "debt_added"
	EventPaymentAdded    = "payment_added"
)

func entityEventType(kind EntityKind, suffix string) string {
	return kind.String() + "_" + suffix
}

// EntityEventPayload is the fan-out payload for entity lifecycle events
type EntityEventPayload struct {
	ID        uuid.UUID       `json:"id"`
	Kind      EntityKind      `json:"kind"`
	Name      string          `json:"name"`
	TotalDebt decimal.Decimal `json:"totalDebt"`
}

// EntityEvent is a domain event about a supplier or customer record
type EntityEvent struct {
	shared.BaseDomainEvent
}

func newEntityEvent(suffix string, entity *Entity, actorID uuid.UUID) *EntityEvent {
	return &EntityEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(entityEventType(entity.Kind, suffix), actorID, EntityEventPayload{
			ID:        entity.ID,
			Kind:      entity.Kind,
			Name:      entity.Name,
			TotalDebt: entity.TotalDebt,
		}),
	}
}

// NewEntityCreatedEvent creates a {kind}_created event
func NewEntityCreatedEvent(entity *Entity, actorID uuid.UUID) *EntityEvent {
	return newEntityEvent("created", entity, actorID)
}

// NewEntityUpdatedEvent creates a {kind}_updated event
func NewEntityUpdatedEvent(entity *Entity, actorID uuid.UUID) *EntityEvent {
	return newEntityEvent("updated", entity, actorID)
}

// NewEntityDeletedEvent creates a {kind}_deleted event
func NewEntityDeletedEvent(entity *Entity, actorID uuid.UUID) *EntityEvent {
	return newEntityEvent("deleted", entity, actorID)
}

// TransactionEventPayload is the fan-out payload for debt/payment events
type TransactionEventPayload struct {
	TransactionID uuid.UUID       `json:"transactionId"`
	EntityID      uuid.UUID       `json:"entityId"`
	EntityKind    EntityKind      `json:"entityKind"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	NewBalance    decimal.Decimal `json:"newBalance"`
}

// TransactionEvent is a domain event about a balance change
type TransactionEvent struct {
	shared.BaseDomainEvent
}

// NewTransactionEvent creates a debt_added or payment_added event
func NewTransactionEvent(txn *Transaction, newBalance decimal.Decimal, actorID uuid.UUID) *TransactionEvent {
	eventType := EventDebtAdded
	if txn.Kind == TransactionKindPayment {
		eventType = EventPaymentAdded
	}
	return &TransactionEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, actorID, TransactionEventPayload{
			TransactionID: txn.ID,
			EntityID:      txn.EntityID,
			EntityKind:    txn.EntityKind,
			Amount:        txn.Amount,
			Description:   txn.Description,
			NewBalance:    newBalance,
		}),
	}
}
