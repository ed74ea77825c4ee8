package ledger

import (
	"context"

	"github.com/debtledger/backend/internal/domain/audit"
	"github.com/debtledger/backend/internal/domain/ledger"
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockEntityRepository is a mock implementation of ledger.EntityRepository
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) Create(ctx context.Context, entity *ledger.Entity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockEntityRepository) FindByID(ctx context.Context, kind ledger.EntityKind, id uuid.UUID) (*ledger.Entity, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entity), args.Error(1)
}

func (m *MockEntityRepository) FindAll(ctx context.Context, kind ledger.EntityKind, filter shared.Filter) ([]ledger.Entity, int64, error) {
	args := m.Called(ctx, kind, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]ledger.Entity), args.Get(1).(int64), args.Error(2)
}

func (m *MockEntityRepository) Save(ctx context.Context, entity *ledger.Entity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockEntityRepository) Delete(ctx context.Context, kind ledger.EntityKind, id uuid.UUID) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

func (m *MockEntityRepository) IncrementBalance(ctx context.Context, kind ledger.EntityKind, id uuid.UUID, amount decimal.Decimal) error {
	args := m.Called(ctx, kind, id, amount)
	return args.Error(0)
}

func (m *MockEntityRepository) DecrementBalanceChecked(ctx context.Context, kind ledger.EntityKind, id uuid.UUID, amount decimal.Decimal) error {
	args := m.Called(ctx, kind, id, amount)
	return args.Error(0)
}

func (m *MockEntityRepository) CreateBatch(ctx context.Context, kind ledger.EntityKind, entities []ledger.Entity) error {
	args := m.Called(ctx, kind, entities)
	return args.Error(0)
}

func (m *MockEntityRepository) DeleteAll(ctx context.Context, kind ledger.EntityKind) error {
	args := m.Called(ctx, kind)
	return args.Error(0)
}

func (m *MockEntityRepository) CountByKind(ctx context.Context, kind ledger.EntityKind) (int64, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntityRepository) SumBalanceByKind(ctx context.Context, kind ledger.EntityKind) (decimal.Decimal, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEntityRepository) FindTopByBalance(ctx context.Context, kind ledger.EntityKind, limit int) ([]ledger.Entity, error) {
	args := m.Called(ctx, kind, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Entity), args.Error(1)
}

// MockTransactionRepository is a mock implementation of ledger.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *ledger.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByEntityID(ctx context.Context, entityID uuid.UUID) ([]ledger.Transaction, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) DeleteByEntityID(ctx context.Context, entityID uuid.UUID) (int64, error) {
	args := m.Called(ctx, entityID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) CountByEntityID(ctx context.Context, entityID uuid.UUID) (int64, error) {
	args := m.Called(ctx, entityID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) SumByEntityAndKind(ctx context.Context, entityID uuid.UUID, kind ledger.TransactionKind) (decimal.Decimal, error) {
	args := m.Called(ctx, entityID, kind)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SumByEntityKindAndKind(ctx context.Context, entityKind ledger.EntityKind, kind ledger.TransactionKind) (decimal.Decimal, error) {
	args := m.Called(ctx, entityKind, kind)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) FindAll(ctx context.Context) ([]ledger.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CreateBatch(ctx context.Context, txns []ledger.Transaction) error {
	args := m.Called(ctx, txns)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockAuditRepository is a mock implementation of audit.Repository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) CreateBatch(ctx context.Context, entries []audit.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockAuditRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.Entry, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]audit.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// stubTxManager runs the unit of work without a real transaction
type stubTxManager struct{}

func (stubTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
