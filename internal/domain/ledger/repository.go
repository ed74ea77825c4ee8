package ledger

import (
	"context"

	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntityRepository provides access to supplier and customer records.
// The balance-moving methods are single atomic statements at the store:
// they must never be implemented as read-compute-write in application
// memory, or concurrent mutations lose updates.
type EntityRepository interface {
	Create(ctx context.Context, entity *Entity) error
	FindByID(ctx context.Context, kind EntityKind, id uuid.UUID) (*Entity, error)
	FindAll(ctx context.Context, kind EntityKind, filter shared.Filter) ([]Entity, int64, error)
	// Save persists metadata changes. The balance column is not written
	// by this path.
	Save(ctx context.Context, entity *Entity) error
	Delete(ctx context.Context, kind EntityKind, id uuid.UUID) error

	// IncrementBalance atomically adds amount to the persisted balance
	// (SET total_debt = total_debt + ?). Returns shared.ErrNotFound if
	// no row matched.
	IncrementBalance(ctx context.Context, kind EntityKind, id uuid.UUID, amount decimal.Decimal) error
	// DecrementBalanceChecked atomically subtracts amount, guarded by
	// the overpay check in the same statement
	// (SET total_debt = total_debt - ? WHERE total_debt >= ?).
	// Returns shared.ErrNotFound if the entity is absent and
	// shared.ErrInsufficientBalance if the guard rejected the update.
	DecrementBalanceChecked(ctx context.Context, kind EntityKind, id uuid.UUID, amount decimal.Decimal) error

	// CreateBatch inserts entities with their IDs and balances preserved.
	// Only the restore path uses this.
	CreateBatch(ctx context.Context, kind EntityKind, entities []Entity) error
	// DeleteAll clears one entity table. Only the restore path uses this.
	DeleteAll(ctx context.Context, kind EntityKind) error

	CountByKind(ctx context.Context, kind EntityKind) (int64, error)
	// SumBalanceByKind sums the outstanding balances of all entities of
	// one kind, for reporting.
	SumBalanceByKind(ctx context.Context, kind EntityKind) (decimal.Decimal, error)
	// FindTopByBalance returns up to limit entities ordered by balance
	// descending.
	FindTopByBalance(ctx context.Context, kind EntityKind, limit int) ([]Entity, error)
}

// TransactionRepository provides access to immutable ledger transactions
type TransactionRepository interface {
	Create(ctx context.Context, txn *Transaction) error
	// FindByEntityID returns all transactions for the entity ordered by
	// creation time descending.
	FindByEntityID(ctx context.Context, entityID uuid.UUID) ([]Transaction, error)
	DeleteByEntityID(ctx context.Context, entityID uuid.UUID) (int64, error)
	CountByEntityID(ctx context.Context, entityID uuid.UUID) (int64, error)
	// SumByEntityAndKind sums transaction amounts for one entity and kind
	SumByEntityAndKind(ctx context.Context, entityID uuid.UUID, kind TransactionKind) (decimal.Decimal, error)
	// SumByEntityKindAndKind sums amounts across all entities of one
	// entity kind, for reporting.
	SumByEntityKindAndKind(ctx context.Context, entityKind EntityKind, kind TransactionKind) (decimal.Decimal, error)

	// FindAll returns the full transaction history. Only the export path
	// uses this.
	FindAll(ctx context.Context) ([]Transaction, error)
	// CreateBatch inserts transactions with their IDs preserved. Only the
	// restore path uses this.
	CreateBatch(ctx context.Context, txns []Transaction) error
	// DeleteAll clears the transaction table. Only the restore path uses
	// this.
	DeleteAll(ctx context.Context) error
}
