package report

import (
	"context"

	"github.com/debtledger/backend/internal/domain/identity"
	"github.com/debtledger/backend/internal/domain/ledger"
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// topDebtorLimit caps the per-kind top debtor list in the summary
const topDebtorLimit = 5

// TopDebtor is one entry of the highest-balance list for a kind
type TopDebtor struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	TotalDebt decimal.Decimal `json:"totalDebt"`
}

// KindSummary aggregates the ledger figures for one entity kind
type KindSummary struct {
	EntityCount   int64           `json:"entityCount"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	TotalDebts    decimal.Decimal `json:"totalDebts"`
	TotalPayments decimal.Decimal `json:"totalPayments"`
	TopDebtors    []TopDebtor     `json:"topDebtors"`
}

// Summary is the whole-ledger financial overview
type Summary struct {
	Suppliers KindSummary `json:"suppliers"`
	Customers KindSummary `json:"customers"`
}

// Service computes read-only financial summaries over the ledger
type Service struct {
	entityRepo ledger.EntityRepository
	txnRepo    ledger.TransactionRepository
	logger     *zap.Logger
}

// NewService creates a new report service
func NewService(
	entityRepo ledger.EntityRepository,
	txnRepo ledger.TransactionRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		entityRepo: entityRepo,
		txnRepo:    txnRepo,
		logger:     logger,
	}
}

// GetSummary returns the aggregated ledger position for both entity
// kinds. Aggregation happens in the database, not by paging rows.
func (s *Service) GetSummary(ctx context.Context, actor *identity.User) (*Summary, error) {
	if !actor.Can(identity.ResourceReports, identity.ActionRead) {
		return nil, shared.ErrForbidden
	}

	suppliers, err := s.summarizeKind(ctx, ledger.EntityKindSupplier)
	if err != nil {
		return nil, err
	}
	customers, err := s.summarizeKind(ctx, ledger.EntityKindCustomer)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Ledger summary computed",
		zap.Int64("supplier_count", suppliers.EntityCount),
		zap.Int64("customer_count", customers.EntityCount))

	return &Summary{Suppliers: *suppliers, Customers: *customers}, nil
}

func (s *Service) summarizeKind(ctx context.Context, kind ledger.EntityKind) (*KindSummary, error) {
	count, err := s.entityRepo.CountByKind(ctx, kind)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.entityRepo.SumBalanceByKind(ctx, kind)
	if err != nil {
		return nil, err
	}
	debts, err := s.txnRepo.SumByEntityKindAndKind(ctx, kind, ledger.TransactionKindDebt)
	if err != nil {
		return nil, err
	}
	payments, err := s.txnRepo.SumByEntityKindAndKind(ctx, kind, ledger.TransactionKindPayment)
	if err != nil {
		return nil, err
	}
	top, err := s.entityRepo.FindTopByBalance(ctx, kind, topDebtorLimit)
	if err != nil {
		return nil, err
	}

	debtors := make([]TopDebtor, len(top))
	for i := range top {
		debtors[i] = TopDebtor{
			ID:        top[i].ID,
			Name:      top[i].Name,
			TotalDebt: top[i].TotalDebt,
		}
	}

	return &KindSummary{
		EntityCount:   count,
		Outstanding:   outstanding,
		TotalDebts:    debts,
		TotalPayments: payments,
		TopDebtors:    debtors,
	}, nil
}
