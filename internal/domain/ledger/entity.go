package ledger

import (
	"strings"

	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntityKind distinguishes the two symmetric ledger party kinds
type EntityKind string

const (
	EntityKindSupplier EntityKind = "supplier"
	EntityKindCustomer EntityKind = "customer"
)

// IsValid returns true if the kind is a known entity kind
func (k EntityKind) IsValid() bool {
	switch k {
	case EntityKindSupplier, EntityKindCustomer:
		return true
	}
	return false
}

// String returns the string representation of the kind
func (k EntityKind) String() string {
	return string(k)
}

// Entity represents a supplier or customer carrying a running debt balance.
// TotalDebt is persisted and kept in lockstep with every transaction write;
// it is never recomputed lazily from the transaction history.
type Entity struct {
	shared.BaseEntity
	Kind      EntityKind
	Name      string
	Phone     string
	Address   string
	Email     string
	Notes     string
	TotalDebt decimal.Decimal
	CreatedBy *uuid.UUID
}

// NewEntity creates a new supplier or customer with a zero balance
func NewEntity(kind EntityKind, name string, createdBy uuid.UUID) (*Entity, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown entity kind")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name is required")
	}

	e := &Entity{
		BaseEntity: shared.NewBaseEntity(),
		Kind:       kind,
		Name:       name,
		TotalDebt:  decimal.Zero,
	}
	if createdBy != uuid.Nil {
		e.CreatedBy = &createdBy
	}
	return e, nil
}

// EntityDetails carries the mutable metadata fields of an entity.
// The balance is deliberately absent: it only moves through transactions.
type EntityDetails struct {
	Name    string
	Phone   string
	Address string
	Email   string
	Notes   string
}

// UpdateDetails replaces the entity's metadata. The balance is untouched.
func (e *Entity) UpdateDetails(d EntityDetails) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name is required")
	}
	e.Name = name
	e.Phone = strings.TrimSpace(d.Phone)
	e.Address = strings.TrimSpace(d.Address)
	e.Email = strings.TrimSpace(d.Email)
	e.Notes = d.Notes
	e.Touch()
	return nil
}

// CanPay reports whether a payment of amount would stay within the
// outstanding balance. The authoritative check happens at the store.
func (e *Entity) CanPay(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(e.TotalDebt)
}
