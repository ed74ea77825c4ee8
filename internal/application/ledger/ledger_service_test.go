package ledger

import (
	"context"
	"testing"

	"github.com/debtledger/backend/internal/domain/audit"
	"github.com/debtledger/backend/internal/domain/identity"
	"github.com/debtledger/backend/internal/domain/ledger"
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type serviceFixture struct {
	entities *MockEntityRepository
	txns     *MockTransactionRepository
	audits   *MockAuditRepository
	events   *MockEventPublisher
	svc      *Service
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		entities: new(MockEntityRepository),
		txns:     new(MockTransactionRepository),
		audits:   new(MockAuditRepository),
		events:   new(MockEventPublisher),
	}
	f.svc = NewService(f.entities, f.txns, f.audits, stubTxManager{}, f.events, zap.NewNop())
	return f
}

func newActor(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser("actor@example.com", "Actor", "password123", role)
	require.NoError(t, err)
	return user
}

func newSupplier(t *testing.T, name string, balance int64) *ledger.Entity {
	t.Helper()
	entity, err := ledger.NewEntity(ledger.EntityKindSupplier, name, uuid.New())
	require.NoError(t, err)
	entity.TotalDebt = decimal.NewFromInt(balance)
	return entity
}

func TestService_CreateEntity(t *testing.T) {
	t.Run("creates an entity with audit and event", func(t *testing.T) {
		f := newServiceFixture()
		actor := newActor(t, identity.RoleEmployee)

		f.entities.On("Create", mock.Anything, mock.AnythingOfType("*ledger.Entity")).Return(nil)
		f.audits.On("Create", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil)

		var published []shared.DomainEvent
		f.events.On("Publish", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				published = args.Get(1).([]shared.DomainEvent)
			}).
			Return(nil)

		resp, err := f.svc.CreateEntity(context.Background(), actor, ledger.EntityKindSupplier, CreateEntityRequest{
			Name:  "Al-Noor Trading",
			Phone: "07701234567",
		})
		require.NoError(t, err)
		assert.Equal(t, "supplier", resp.Kind)
		assert.True(t, resp.TotalDebt.IsZero())

		require.Len(t, published, 1)
		assert.Equal(t, ledger.EventSupplierCreated, published[0].EventType())
		assert.Equal(t, actor.ID, published[0].ActorID())
	})

	t.Run("rejects an empty name with no side effects", func(t *testing.T) {
		f := newServiceFixture()
		actor := newActor(t, identity.RoleEmployee)

		_, err := f.svc.CreateEntity(context.Background(), actor, ledger.EntityKindCustomer, CreateEntityRequest{Name: "   "})
		require.Error(t, err)
		f.entities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestService_PermissionGate(t *testing.T) {
	f := newServiceFixture()
	employee := newActor(t, identity.RoleEmployee)

	// Employees may not delete ledger parties.
	err := f.svc.DeleteEntity(context.Background(), employee, ledger.EntityKindSupplier, uuid.New())
	assert.ErrorIs(t, err, shared.ErrForbidden)

	f.entities.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
	f.txns.AssertNotCalled(t, "DeleteByEntityID", mock.Anything, mock.Anything)
	f.audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_UpdateEntity(t *testing.T) {
	t.Run("updates metadata and keeps before and after images", func(t *testing.T) {
		f := newServiceFixture()
		actor := newActor(t, identity.RoleEmployee)
		entity := newSupplier(t, "Before", 100)

		f.entities.On("FindByID", mock.Anything, ledger.EntityKindSupplier, entity.ID).Return(entity, nil)
		f.entities.On("Save", mock.Anything, entity).Return(nil)

		var entry *audit.Entry
		f.audits.On("Create", mock.Anything, mock.AnythingOfType("*audit.Entry")).
			Run(func(args mock.Arguments) {
				entry = args.Get(1).(*audit.Entry)
			}).
			Return(nil)
		f.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

		name := "After"
		resp, err := f.svc.UpdateEntity(context.Background(), actor, ledger.EntityKindSupplier, entity.ID, UpdateEntityRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "After", resp.Name)

		require.NotNil(t, entry)
		assert.Contains(t, string(entry.OldData), "Before")
		assert.Contains(t, string(entry.NewData), "After")
	})

	t.Run("returns not found for an unknown entity", func(t *testing.T) {
		f := newServiceFixture()
		actor := newActor(t, identity.RoleEmployee)
		id := uuid.New()

		f.entities.On("FindByID", mock.Anything, ledger.EntityKindCustomer, id).Return(nil, shared.ErrNotFound)

		name := "X"
		_, err := f.svc.UpdateEntity(context.Background(), actor, ledger.EntityKindCustomer, id, UpdateEntityRequest{Name: &name})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestService_DeleteEntity(t *testing.T) {
	f := newServiceFixture()
	actor := newActor(t, identity.RoleAdmin)
	entity := newSupplier(t, "Doomed", 0)

	f.entities.On("FindByID", mock.Anything, ledger.EntityKindSupplier, entity.ID).Return(entity, nil)
	f.txns.On("DeleteByEntityID", mock.Anything, entity.ID).Return(int64(4), nil)
	f.entities.On("Delete", mock.Anything, ledger.EntityKindSupplier, entity.ID).Return(nil)
	f.audits.On("Create", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil)

	var published []shared.DomainEvent
	f.events.On("Publish", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(1).([]shared.DomainEvent)
		}).
		Return(nil)

	require.NoError(t, f.svc.DeleteEntity(context.Background(), actor, ledger.EntityKindSupplier, entity.ID))

	// Transactions go with the entity.
	f.txns.AssertExpectations(t)
	require.Len(t, published, 1)
	assert.Equal(t, ledger.EventSupplierDeleted, published[0].EventType())
}

func TestService_AddDebt(t *testing.T) {
	t.Run("increments the balance and records everything", func(t *testing.T) {
		f := newServiceFixture()
		actor := newActor(t, identity.RoleEmployee)
		entity := newSupplier(t, "Debtor", 150)
		amount := decimal.NewFromInt(50)

		f.entities.On("IncrementBalance", mock.Anything, ledger.EntityKindSupplier, entity.ID, amount).Return(nil)
		f.txns.On("Create", mock.Anything, mock.AnythingOfType("*ledger.Transaction")).Return(nil)
		f.entities.On("FindByID", mock.Anything, ledger.EntityKindSupplier, entity.ID).Return(entity, nil)
		f.audits.On("Create", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil)

		var published []shared.DomainEvent
		f.events.On("Publish", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				published = args.Get(1).([]shared.DomainEvent)
			}).
			Return(nil)

		resp, err := f.svc.AddDebt(context.Background(), actor, ledger.EntityKindSupplier, entity.ID, TransactionRequest{
			Amount:      amount,
			Description: "Invoice 1042",
		})
		require.NoError(t, err)
		assert.Equal(t, "debt", resp.Kind)
		assert.True(t, resp.NewBalance.Equal(decimal.NewFromInt(150)))

		require.Len(t, published, 1)
		assert.Equal(t, ledger.EventDebtAdded, published[0].EventType())
	})

	t.Run("rejects a non-positive amount before touching the store", func(t *testing.T) {
		f := newServiceFixture()
		actor := newActor(t, identity.RoleEmployee)

		_, err := f.svc.AddDebt(context.Background(), actor, ledger.EntityKindSupplier, uuid.New(), TransactionRequest{
			Amount: decimal.NewFromInt(-5),
		})
		require.Error(t, err)
		f.entities.AssertNotCalled(t, "IncrementBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing entity surfaces as not found", func(t *testing.T) {
		f := newServiceFixture()
		actor := newActor(t, identity.RoleEmployee)
		id := uuid.New()
		amount := decimal.NewFromInt(10)

		f.entities.On("IncrementBalance", mock.Anything, ledger.EntityKindCustomer, id, amount).Return(shared.ErrNotFound)

		_, err := f.svc.AddDebt(context.Background(), actor, ledger.EntityKindCustomer, id, TransactionRequest{Amount: amount})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.txns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_AddPayment(t *testing.T) {
	t.Run("overpay rejection leaves no side effects", func(t *testing.T) {
		f := newServiceFixture()
		actor := newActor(t, identity.RoleEmployee)
		id := uuid.New()
		amount := decimal.NewFromInt(500)

		f.entities.On("DecrementBalanceChecked", mock.Anything, ledger.EntityKindCustomer, id, amount).
			Return(shared.ErrInsufficientBalance)

		_, err := f.svc.AddPayment(context.Background(), actor, ledger.EntityKindCustomer, id, TransactionRequest{Amount: amount})
		assert.ErrorIs(t, err, shared.ErrInsufficientBalance)

		f.txns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("records the payment with the post-payment balance", func(t *testing.T) {
		f := newServiceFixture()
		actor := newActor(t, identity.RoleEmployee)
		entity := newSupplier(t, "Payer", 60)
		amount := decimal.NewFromInt(40)

		f.entities.On("DecrementBalanceChecked", mock.Anything, ledger.EntityKindSupplier, entity.ID, amount).Return(nil)
		f.txns.On("Create", mock.Anything, mock.AnythingOfType("*ledger.Transaction")).Return(nil)
		f.entities.On("FindByID", mock.Anything, ledger.EntityKindSupplier, entity.ID).Return(entity, nil)
		f.audits.On("Create", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil)

		var published []shared.DomainEvent
		f.events.On("Publish", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				published = args.Get(1).([]shared.DomainEvent)
			}).
			Return(nil)

		resp, err := f.svc.AddPayment(context.Background(), actor, ledger.EntityKindSupplier, entity.ID, TransactionRequest{Amount: amount})
		require.NoError(t, err)
		assert.Equal(t, "payment", resp.Kind)
		assert.True(t, resp.NewBalance.Equal(decimal.NewFromInt(60)))

		require.Len(t, published, 1)
		assert.Equal(t, ledger.EventPaymentAdded, published[0].EventType())
	})
}

func TestService_ListTransactions(t *testing.T) {
	t.Run("returns the history newest first", func(t *testing.T) {
		f := newServiceFixture()
		actor := newActor(t, identity.RoleEmployee)
		entity := newSupplier(t, "Historied", 10)

		txn, err := ledger.NewTransaction(ledger.EntityKindSupplier, entity.ID, ledger.TransactionKindDebt,
			decimal.NewFromInt(10), "", "", actor.ID)
		require.NoError(t, err)

		f.entities.On("FindByID", mock.Anything, ledger.EntityKindSupplier, entity.ID).Return(entity, nil)
		f.txns.On("FindByEntityID", mock.Anything, entity.ID).Return([]ledger.Transaction{*txn}, nil)

		txns, err := f.svc.ListTransactions(context.Background(), actor, ledger.EntityKindSupplier, entity.ID)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, txn.ID, txns[0].ID)
	})

	t.Run("unknown entity surfaces as not found", func(t *testing.T) {
		f := newServiceFixture()
		actor := newActor(t, identity.RoleEmployee)
		id := uuid.New()

		f.entities.On("FindByID", mock.Anything, ledger.EntityKindCustomer, id).Return(nil, shared.ErrNotFound)

		_, err := f.svc.ListTransactions(context.Background(), actor, ledger.EntityKindCustomer, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.txns.AssertNotCalled(t, "FindByEntityID", mock.Anything, mock.Anything)
	})
}
