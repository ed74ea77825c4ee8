package ledger

import (
	"time"

	"github.com/debtledger/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateEntityRequest carries the fields for creating a supplier or customer
type CreateEntityRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Notes   string `json:"notes"`
}

// UpdateEntityRequest carries optional metadata updates. Nil fields are
// left unchanged. The balance cannot be set through this path.
type UpdateEntityRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Email   *string `json:"email"`
	Notes   *string `json:"notes"`
}

// EntityResponse is the API representation of a supplier or customer
type EntityResponse struct {
	ID        uuid.UUID       `json:"id"`
	Kind      string          `json:"kind"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	Address   string          `json:"address,omitempty"`
	Email     string          `json:"email,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	TotalDebt decimal.Decimal `json:"totalDebt"`
	CreatedBy *uuid.UUID      `json:"createdBy,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToEntityResponse converts a domain entity to its API representation
func ToEntityResponse(e *ledger.Entity) EntityResponse {
	return EntityResponse{
		ID:        e.ID,
		Kind:      string(e.Kind),
		Name:      e.Name,
		Phone:     e.Phone,
		Address:   e.Address,
		Email:     e.Email,
		Notes:     e.Notes,
		TotalDebt: e.TotalDebt,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ToEntityResponses converts a list of domain entities
func ToEntityResponses(entities []ledger.Entity) []EntityResponse {
	responses := make([]EntityResponse, len(entities))
	for i := range entities {
		responses[i] = ToEntityResponse(&entities[i])
	}
	return responses
}

// TransactionRequest carries the fields for recording a debt or payment
type TransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Notes       string          `json:"notes"`
}

// TransactionResponse is the API representation of a ledger transaction.
// NewBalance is the entity balance immediately after this transaction.
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	EntityID    uuid.UUID       `json:"entityId"`
	EntityKind  string          `json:"entityKind"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	NewBalance  decimal.Decimal `json:"newBalance"`
	CreatedBy   *uuid.UUID      `json:"createdBy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain transaction to its API representation
func ToTransactionResponse(t *ledger.Transaction, newBalance decimal.Decimal) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		EntityID:    t.EntityID,
		EntityKind:  string(t.EntityKind),
		Kind:        string(t.Kind),
		Amount:      t.Amount,
		Description: t.Description,
		Notes:       t.Notes,
		NewBalance:  newBalance,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
	}
}

// ToTransactionResponses converts the transaction history of one entity.
// History rows carry no per-row balance snapshot.
func ToTransactionResponses(txns []ledger.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = TransactionResponse{
			ID:          txns[i].ID,
			EntityID:    txns[i].EntityID,
			EntityKind:  string(txns[i].EntityKind),
			Kind:        string(txns[i].Kind),
			Amount:      txns[i].Amount,
			Description: txns[i].Description,
			Notes:       txns[i].Notes,
			CreatedBy:   txns[i].CreatedBy,
			CreatedAt:   txns[i].CreatedAt,
		}
	}
	return responses
}
