package ledger

import (
	"context"

	"github.com/debtledger/backend/internal/domain/audit"
	"github.com/debtledger/backend/internal/domain/identity"
	"github.com/debtledger/backend/internal/domain/ledger"
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const transactionsTable = "debt_transactions"

// tableForKind returns the audit table name for an entity kind
func tableForKind(kind ledger.EntityKind) string {
	if kind == ledger.EntityKindCustomer {
		return "customers"
	}
	return "suppliers"
}

// resourceForKind returns the permission resource guarding an entity kind
func resourceForKind(kind ledger.EntityKind) identity.Resource {
	if kind == ledger.EntityKindCustomer {
		return identity.ResourceCustomers
	}
	return identity.ResourceSuppliers
}

// Service is the ledger engine: supplier/customer records plus the
// balance-moving debt and payment operations. Every mutation writes its
// audit entry in the same storage transaction; events publish only
// after the transaction committed.
type Service struct {
	entityRepo ledger.EntityRepository
	txnRepo    ledger.TransactionRepository
	auditRepo  audit.Repository
	txManager  shared.TxManager
	events     shared.EventPublisher
	logger     *zap.Logger
}

// NewService creates a new ledger service
func NewService(
	entityRepo ledger.EntityRepository,
	txnRepo ledger.TransactionRepository,
	auditRepo audit.Repository,
	txManager shared.TxManager,
	events shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		entityRepo: entityRepo,
		txnRepo:    txnRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
		events:     events,
		logger:     logger,
	}
}

// entityAuditImage snapshots an entity for the audit log
func entityAuditImage(e *ledger.Entity) map[string]any {
	return map[string]any{
		"id":        e.ID,
		"name":      e.Name,
		"phone":     e.Phone,
		"address":   e.Address,
		"email":     e.Email,
		"notes":     e.Notes,
		"totalDebt": e.TotalDebt,
	}
}

// transactionAuditImage snapshots a transaction for the audit log
func transactionAuditImage(t *ledger.Transaction, newBalance decimal.Decimal) map[string]any {
	return map[string]any{
		"id":          t.ID,
		"entityId":    t.EntityID,
		"entityType":  string(t.EntityKind),
		"type":        string(t.Kind),
		"amount":      t.Amount,
		"description": t.Description,
		"newBalance":  newBalance,
	}
}

// CreateEntity creates a supplier or customer with a zero balance
func (s *Service) CreateEntity(ctx context.Context, actor *identity.User, kind ledger.EntityKind, req CreateEntityRequest) (*EntityResponse, error) {
	if !actor.Can(resourceForKind(kind), identity.ActionCreate) {
		return nil, shared.ErrForbidden
	}

	entity, err := ledger.NewEntity(kind, req.Name, actor.ID)
	if err != nil {
		return nil, err
	}
	if req.Phone != "" || req.Address != "" || req.Email != "" || req.Notes != "" {
		if err := entity.UpdateDetails(ledger.EntityDetails{
			Name:    req.Name,
			Phone:   req.Phone,
			Address: req.Address,
			Email:   req.Email,
			Notes:   req.Notes,
		}); err != nil {
			return nil, err
		}
	}

	entry, err := audit.NewEntry(actor.ID, audit.ActionCreate, tableForKind(kind), entity.ID.String(),
		nil, entityAuditImage(entity))
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.entityRepo.Create(ctx, entity); err != nil {
			return err
		}
		return s.auditRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Entity created",
		zap.String("kind", string(kind)),
		zap.String("entity_id", entity.ID.String()))
	_ = s.events.Publish(ctx, ledger.NewEntityCreatedEvent(entity, actor.ID))

	response := ToEntityResponse(entity)
	return &response, nil
}

// GetEntity returns one supplier or customer
func (s *Service) GetEntity(ctx context.Context, actor *identity.User, kind ledger.EntityKind, id uuid.UUID) (*EntityResponse, error) {
	if !actor.Can(resourceForKind(kind), identity.ActionRead) {
		return nil, shared.ErrForbidden
	}

	entity, err := s.entityRepo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	response := ToEntityResponse(entity)
	return &response, nil
}

// ListEntities returns entities of one kind matching the filter
func (s *Service) ListEntities(ctx context.Context, actor *identity.User, kind ledger.EntityKind, filter shared.Filter) ([]EntityResponse, int64, error) {
	if !actor.Can(resourceForKind(kind), identity.ActionRead) {
		return nil, 0, shared.ErrForbidden
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	entities, total, err := s.entityRepo.FindAll(ctx, kind, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToEntityResponses(entities), total, nil
}

// UpdateEntity updates entity metadata. The balance only moves through
// AddDebt and AddPayment.
func (s *Service) UpdateEntity(ctx context.Context, actor *identity.User, kind ledger.EntityKind, id uuid.UUID, req UpdateEntityRequest) (*EntityResponse, error) {
	if !actor.Can(resourceForKind(kind), identity.ActionUpdate) {
		return nil, shared.ErrForbidden
	}

	entity, err := s.entityRepo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	before := entityAuditImage(entity)

	details := ledger.EntityDetails{
		Name:    entity.Name,
		Phone:   entity.Phone,
		Address: entity.Address,
		Email:   entity.Email,
		Notes:   entity.Notes,
	}
	if req.Name != nil {
		details.Name = *req.Name
	}
	if req.Phone != nil {
		details.Phone = *req.Phone
	}
	if req.Address != nil {
		details.Address = *req.Address
	}
	if req.Email != nil {
		details.Email = *req.Email
	}
	if req.Notes != nil {
		details.Notes = *req.Notes
	}
	if err := entity.UpdateDetails(details); err != nil {
		return nil, err
	}

	entry, err := audit.NewEntry(actor.ID, audit.ActionUpdate, tableForKind(kind), entity.ID.String(),
		before, entityAuditImage(entity))
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.entityRepo.Save(ctx, entity); err != nil {
			return err
		}
		return s.auditRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	_ = s.events.Publish(ctx, ledger.NewEntityUpdatedEvent(entity, actor.ID))

	response := ToEntityResponse(entity)
	return &response, nil
}

// DeleteEntity removes an entity and its entire transaction history in
// one storage transaction. Admin only.
func (s *Service) DeleteEntity(ctx context.Context, actor *identity.User, kind ledger.EntityKind, id uuid.UUID) error {
	if !actor.Can(resourceForKind(kind), identity.ActionDelete) {
		return shared.ErrForbidden
	}

	entity, err := s.entityRepo.FindByID(ctx, kind, id)
	if err != nil {
		return err
	}

	entry, err := audit.NewEntry(actor.ID, audit.ActionDelete, tableForKind(kind), entity.ID.String(),
		entityAuditImage(entity), nil)
	if err != nil {
		return err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.txnRepo.DeleteByEntityID(ctx, entity.ID); err != nil {
			return err
		}
		if err := s.entityRepo.Delete(ctx, kind, entity.ID); err != nil {
			return err
		}
		return s.auditRepo.Create(ctx, entry)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Entity deleted",
		zap.String("kind", string(kind)),
		zap.String("entity_id", entity.ID.String()))
	_ = s.events.Publish(ctx, ledger.NewEntityDeletedEvent(entity, actor.ID))

	return nil
}

// AddDebt records a debt transaction and atomically increments the
// entity balance in the same storage transaction.
func (s *Service) AddDebt(ctx context.Context, actor *identity.User, kind ledger.EntityKind, entityID uuid.UUID, req TransactionRequest) (*TransactionResponse, error) {
	return s.addTransaction(ctx, actor, kind, entityID, ledger.TransactionKindDebt, req)
}

// AddPayment records a payment transaction. The overpay check runs
// inside the conditional balance update, so racing payments can never
// jointly overdraw.
func (s *Service) AddPayment(ctx context.Context, actor *identity.User, kind ledger.EntityKind, entityID uuid.UUID, req TransactionRequest) (*TransactionResponse, error) {
	return s.addTransaction(ctx, actor, kind, entityID, ledger.TransactionKindPayment, req)
}

func (s *Service) addTransaction(ctx context.Context, actor *identity.User, kind ledger.EntityKind, entityID uuid.UUID, txnKind ledger.TransactionKind, req TransactionRequest) (*TransactionResponse, error) {
	if !actor.Can(identity.ResourceTransactions, identity.ActionCreate) {
		return nil, shared.ErrForbidden
	}

	txn, err := ledger.NewTransaction(kind, entityID, txnKind, req.Amount, req.Description, req.Notes, actor.ID)
	if err != nil {
		return nil, err
	}

	var newBalance decimal.Decimal
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if txnKind == ledger.TransactionKindPayment {
			if err := s.entityRepo.DecrementBalanceChecked(ctx, kind, entityID, txn.Amount); err != nil {
				return err
			}
		} else {
			if err := s.entityRepo.IncrementBalance(ctx, kind, entityID, txn.Amount); err != nil {
				return err
			}
		}

		if err := s.txnRepo.Create(ctx, txn); err != nil {
			return err
		}

		entity, err := s.entityRepo.FindByID(ctx, kind, entityID)
		if err != nil {
			return err
		}
		newBalance = entity.TotalDebt

		entry, err := audit.NewEntry(actor.ID, audit.ActionCreate, transactionsTable, txn.ID.String(),
			nil, transactionAuditImage(txn, newBalance))
		if err != nil {
			return err
		}
		return s.auditRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transaction recorded",
		zap.String("kind", string(txnKind)),
		zap.String("entity_id", entityID.String()),
		zap.String("amount", txn.Amount.String()))
	_ = s.events.Publish(ctx, ledger.NewTransactionEvent(txn, newBalance, actor.ID))

	response := ToTransactionResponse(txn, newBalance)
	return &response, nil
}

// ListTransactions returns the full transaction history of one entity,
// newest first.
func (s *Service) ListTransactions(ctx context.Context, actor *identity.User, kind ledger.EntityKind, entityID uuid.UUID) ([]TransactionResponse, error) {
	if !actor.Can(identity.ResourceTransactions, identity.ActionRead) {
		return nil, shared.ErrForbidden
	}

	if _, err := s.entityRepo.FindByID(ctx, kind, entityID); err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.FindByEntityID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	return ToTransactionResponses(txns), nil
}
