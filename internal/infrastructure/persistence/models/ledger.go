package models

import (
	"github.com/debtledger/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger entity tables. Suppliers and customers share one schema;
// the repository selects the table by entity kind.
const (
	TableSuppliers = "suppliers"
	TableCustomers = "customers"
)

// TableForKind returns the table name for an entity kind
func TableForKind(kind ledger.EntityKind) string {
	if kind == ledger.EntityKindCustomer {
		return TableCustomers
	}
	return TableSuppliers
}

// EntityModel is the persistence model for suppliers and customers
type EntityModel struct {
	BaseModel
	Name      string          `gorm:"size:255;not null;index"`
	Phone     string          `gorm:"size:50"`
	Address   string          `gorm:"size:500"`
	Email     string          `gorm:"size:255"`
	Notes     string          `gorm:"type:text"`
	TotalDebt decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreatedBy *uuid.UUID      `gorm:"type:uuid"`
}

// ToDomain converts EntityModel to a domain Entity of the given kind
func (m *EntityModel) ToDomain(kind ledger.EntityKind) *ledger.Entity {
	return &ledger.Entity{
		BaseEntity: m.BaseModel.ToDomain(),
		Kind:       kind,
		Name:       m.Name,
		Phone:      m.Phone,
		Address:    m.Address,
		Email:      m.Email,
		Notes:      m.Notes,
		TotalDebt:  m.TotalDebt,
		CreatedBy:  m.CreatedBy,
	}
}

// EntityModelFromDomain converts a domain Entity to EntityModel
func EntityModelFromDomain(e *ledger.Entity) *EntityModel {
	m := &EntityModel{
		Name:      e.Name,
		Phone:     e.Phone,
		Address:   e.Address,
		Email:     e.Email,
		Notes:     e.Notes,
		TotalDebt: e.TotalDebt,
		CreatedBy: e.CreatedBy,
	}
	m.BaseModel.FromDomain(e.BaseEntity)
	return m
}

// TransactionModel is the persistence model for debt transactions
type TransactionModel struct {
	BaseModel
	EntityType  string          `gorm:"size:20;not null;index:idx_debt_transactions_entity"`
	EntityID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_debt_transactions_entity"`
	Type        string          `gorm:"size:20;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Description string          `gorm:"size:500"`
	Notes       string          `gorm:"type:text"`
	CreatedBy   *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for TransactionModel
func (TransactionModel) TableName() string {
	return "debt_transactions"
}

// ToDomain converts TransactionModel to a domain Transaction
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	return &ledger.Transaction{
		BaseEntity:  m.BaseModel.ToDomain(),
		EntityKind:  ledger.EntityKind(m.EntityType),
		EntityID:    m.EntityID,
		Kind:        ledger.TransactionKind(m.Type),
		Amount:      m.Amount,
		Description: m.Description,
		Notes:       m.Notes,
		CreatedBy:   m.CreatedBy,
	}
}

// TransactionModelFromDomain converts a domain Transaction to TransactionModel
func TransactionModelFromDomain(t *ledger.Transaction) *TransactionModel {
	m := &TransactionModel{
		EntityType:  string(t.EntityKind),
		EntityID:    t.EntityID,
		Type:        string(t.Kind),
		Amount:      t.Amount,
		Description: t.Description,
		Notes:       t.Notes,
		CreatedBy:   t.CreatedBy,
	}
	m.BaseModel.FromDomain(t.BaseEntity)
	return m
}
