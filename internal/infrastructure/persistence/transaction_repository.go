package persistence

import (
	"context"

	"github.com/debtledger/backend/internal/domain/ledger"
	"github.com/debtledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GormTransactionRepository implements ledger.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *Database
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *Database) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create appends a transaction to the ledger
func (r *GormTransactionRepository) Create(ctx context.Context, txn *ledger.Transaction) error {
	model := models.TransactionModelFromDomain(txn)
	return r.db.Conn(ctx).WithContext(ctx).Create(model).Error
}

// FindByEntityID returns all transactions for the entity, newest first
func (r *GormTransactionRepository) FindByEntityID(ctx context.Context, entityID uuid.UUID) ([]ledger.Transaction, error) {
	var txnModels []models.TransactionModel
	if err := r.db.Conn(ctx).WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("created_at DESC").
		Find(&txnModels).Error; err != nil {
		return nil, err
	}

	txns := make([]ledger.Transaction, len(txnModels))
	for i := range txnModels {
		txns[i] = *txnModels[i].ToDomain()
	}
	return txns, nil
}

// DeleteByEntityID removes all transactions for an entity
func (r *GormTransactionRepository) DeleteByEntityID(ctx context.Context, entityID uuid.UUID) (int64, error) {
	result := r.db.Conn(ctx).WithContext(ctx).
		Delete(&models.TransactionModel{}, "entity_id = ?", entityID)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountByEntityID counts transactions for an entity
func (r *GormTransactionRepository) CountByEntityID(ctx context.Context, entityID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Conn(ctx).WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("entity_id = ?", entityID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByEntityAndKind sums transaction amounts for one entity and kind
func (r *GormTransactionRepository) SumByEntityAndKind(ctx context.Context, entityID uuid.UUID, kind ledger.TransactionKind) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := r.db.Conn(ctx).WithContext(ctx).
		Model(&models.TransactionModel{}).
		Select("SUM(amount)").
		Where("entity_id = ? AND type = ?", entityID, string(kind)).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// SumByEntityKindAndKind sums amounts across all entities of one kind
func (r *GormTransactionRepository) SumByEntityKindAndKind(ctx context.Context, entityKind ledger.EntityKind, kind ledger.TransactionKind) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := r.db.Conn(ctx).WithContext(ctx).
		Model(&models.TransactionModel{}).
		Select("SUM(amount)").
		Where("entity_type = ? AND type = ?", string(entityKind), string(kind)).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// FindAll returns the full transaction history, oldest first.
// Only the export path calls this.
func (r *GormTransactionRepository) FindAll(ctx context.Context) ([]ledger.Transaction, error) {
	var txnModels []models.TransactionModel
	if err := r.db.Conn(ctx).WithContext(ctx).
		Order("created_at ASC").
		Find(&txnModels).Error; err != nil {
		return nil, err
	}

	txns := make([]ledger.Transaction, len(txnModels))
	for i := range txnModels {
		txns[i] = *txnModels[i].ToDomain()
	}
	return txns, nil
}

// CreateBatch inserts transactions with IDs preserved.
// Only the restore path calls this.
func (r *GormTransactionRepository) CreateBatch(ctx context.Context, txns []ledger.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	txnModels := make([]*models.TransactionModel, len(txns))
	for i := range txns {
		txnModels[i] = models.TransactionModelFromDomain(&txns[i])
	}
	return r.db.Conn(ctx).WithContext(ctx).Create(txnModels).Error
}

// DeleteAll clears the transaction table. Only the restore path calls this.
func (r *GormTransactionRepository) DeleteAll(ctx context.Context) error {
	return r.db.Conn(ctx).WithContext(ctx).
		Where("1 = 1").
		Delete(&models.TransactionModel{}).Error
}

var _ ledger.TransactionRepository = (*GormTransactionRepository)(nil)
