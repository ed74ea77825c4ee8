package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	entityID := uuid.New()
	creator := uuid.New()

	txn, err := NewTransaction(EntityKindSupplier, entityID, TransactionKindDebt,
		decimal.NewFromInt(250), " goods delivery ", "net 30", creator)
	require.NoError(t, err)

	assert.Equal(t, EntityKindSupplier, txn.EntityKind)
	assert.Equal(t, entityID, txn.EntityID)
	assert.Equal(t, TransactionKindDebt, txn.Kind)
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "goods delivery", txn.Description)
	require.NotNil(t, txn.CreatedBy)
	assert.Equal(t, creator, *txn.CreatedBy)
}

func TestNewTransaction_Validation(t *testing.T) {
	entityID := uuid.New()

	tests := []struct {
		name       string
		entityKind EntityKind
		entityID   uuid.UUID
		kind       TransactionKind
		amount     decimal.Decimal
	}{
		{"zero amount", EntityKindSupplier, entityID, TransactionKindDebt, decimal.Zero},
		{"negative amount", EntityKindSupplier, entityID, TransactionKindPayment, decimal.NewFromInt(-10)},
		{"nil entity", EntityKindSupplier, uuid.Nil, TransactionKindDebt, decimal.NewFromInt(10)},
		{"bad entity kind", EntityKind("vendor"), entityID, TransactionKindDebt, decimal.NewFromInt(10)},
		{"bad transaction kind", EntityKindSupplier, entityID, TransactionKind("refund"), decimal.NewFromInt(10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTransaction(tt.entityKind, tt.entityID, tt.kind, tt.amount, "", "", uuid.New())
			assert.Error(t, err)
		})
	}
}

func TestTransaction_SignedAmount(t *testing.T) {
	entityID := uuid.New()

	debt, err := NewTransaction(EntityKindCustomer, entityID, TransactionKindDebt,
		decimal.NewFromInt(100), "", "", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, debt.SignedAmount().Equal(decimal.NewFromInt(100)))

	payment, err := NewTransaction(EntityKindCustomer, entityID, TransactionKindPayment,
		decimal.NewFromInt(40), "", "", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, payment.SignedAmount().Equal(decimal.NewFromInt(-40)))
}
