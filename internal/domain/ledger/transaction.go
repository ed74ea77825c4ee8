package ledger

import (
	"strings"

	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the direction of a ledger transaction
type TransactionKind string

const (
	// TransactionKindDebt increases the entity's outstanding balance
	TransactionKindDebt TransactionKind = "debt"
	// TransactionKindPayment decreases the entity's outstanding balance
	TransactionKindPayment TransactionKind = "payment"
)

// IsValid returns true if the transaction kind is known
func (k TransactionKind) IsValid() bool {
	switch k {
	case TransactionKindDebt, TransactionKindPayment:
		return true
	}
	return false
}

// String returns the string representation of the kind
func (k TransactionKind) String() string {
	return string(k)
}

// Transaction is an immutable record of one balance change. Once created
// it is never updated; it is deleted only when its owning entity is.
type Transaction struct {
	shared.BaseEntity
	EntityKind  EntityKind
	EntityID    uuid.UUID
	Kind        TransactionKind
	Amount      decimal.Decimal
	Description string
	Notes       string
	CreatedBy   *uuid.UUID
}

// NewTransaction creates a debt or payment transaction. Amount must be
// strictly positive; the direction is carried by the kind.
func NewTransaction(entityKind EntityKind, entityID uuid.UUID, kind TransactionKind, amount decimal.Decimal, description, notes string, createdBy uuid.UUID) (*Transaction, error) {
	if !entityKind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown entity kind")
	}
	if entityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Entity ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_KIND", "Unknown transaction kind")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	t := &Transaction{
		BaseEntity:  shared.NewBaseEntity(),
		EntityKind:  entityKind,
		EntityID:    entityID,
		Kind:        kind,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		Notes:       notes,
	}
	if createdBy != uuid.Nil {
		t.CreatedBy = &createdBy
	}
	return t, nil
}

// SignedAmount returns the amount with sign: positive for debts,
// negative for payments.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == TransactionKindPayment {
		return t.Amount.Neg()
	}
	return t.Amount
}
