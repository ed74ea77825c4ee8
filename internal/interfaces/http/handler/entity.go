package handler

import (
	"context"

	application "github.com/debtledger/backend/internal/application/ledger"
	"github.com/debtledger/backend/internal/domain/identity"
	"github.com/debtledger/backend/internal/domain/ledger"
	"github.com/debtledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EntityHandler serves one entity kind. The supplier and customer route
// groups each get their own instance over the same ledger service.
type EntityHandler struct {
	BaseHandler
	service *application.Service
	kind    ledger.EntityKind
}

// NewEntityHandler creates a handler for the given entity kind
func NewEntityHandler(service *application.Service, kind ledger.EntityKind) *EntityHandler {
	return &EntityHandler{
		service: service,
		kind:    kind,
	}
}

// List returns entities matching the query filter
func (h *EntityHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	filter := req.ToFilter()

	entities, total, err := h.service.ListEntities(c.Request.Context(), actor, h.kind, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entities, total, filter.Page, filter.PageSize)
}

// Get returns one entity by ID
func (h *EntityHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	entity, err := h.service.GetEntity(c.Request.Context(), actor, h.kind, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entity)
}

// Create creates an entity with a zero balance
func (h *EntityHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req application.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	entity, err := h.service.CreateEntity(c.Request.Context(), actor, h.kind, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entity)
}

// Update updates entity metadata
func (h *EntityHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req application.UpdateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	entity, err := h.service.UpdateEntity(c.Request.Context(), actor, h.kind, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entity)
}

// Delete removes an entity and its transaction history
func (h *EntityHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteEntity(c.Request.Context(), actor, h.kind, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddDebt records a debt against the entity
func (h *EntityHandler) AddDebt(c *gin.Context) {
	h.addTransaction(c, h.service.AddDebt)
}

// AddPayment records a payment against the entity
func (h *EntityHandler) AddPayment(c *gin.Context) {
	h.addTransaction(c, h.service.AddPayment)
}

// ListTransactions returns the entity's transaction history
func (h *EntityHandler) ListTransactions(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	txns, err := h.service.ListTransactions(c.Request.Context(), actor, h.kind, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txns)
}

// transactionFunc is either Service.AddDebt or Service.AddPayment
type transactionFunc func(ctx context.Context, actor *identity.User, kind ledger.EntityKind, entityID uuid.UUID, req application.TransactionRequest) (*application.TransactionResponse, error)

func (h *EntityHandler) addTransaction(c *gin.Context, op transactionFunc) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req application.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	txn, err := op(c.Request.Context(), actor, h.kind, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, txn)
}
