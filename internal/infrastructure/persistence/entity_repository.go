package persistence

import (
	"context"
	"errors"

	"github.com/debtledger/backend/internal/domain/ledger"
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/debtledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormEntityRepository implements ledger.EntityRepository using GORM.
// Suppliers and customers live in separate tables with identical schemas;
// every query selects the table from the entity kind.
type GormEntityRepository struct {
	db *Database
}

// NewGormEntityRepository creates a new GormEntityRepository
func NewGormEntityRepository(db *Database) *GormEntityRepository {
	return &GormEntityRepository{db: db}
}

func (r *GormEntityRepository) table(ctx context.Context, kind ledger.EntityKind) *gorm.DB {
	return r.db.Conn(ctx).WithContext(ctx).Table(models.TableForKind(kind))
}

// Create creates a new supplier or customer
func (r *GormEntityRepository) Create(ctx context.Context, entity *ledger.Entity) error {
	model := models.EntityModelFromDomain(entity)
	return r.table(ctx, entity.Kind).Create(model).Error
}

// FindByID finds an entity by kind and ID
func (r *GormEntityRepository) FindByID(ctx context.Context, kind ledger.EntityKind, id uuid.UUID) (*ledger.Entity, error) {
	var model models.EntityModel
	if err := r.table(ctx, kind).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(kind), nil
}

// FindAll finds all entities of a kind matching the filter
func (r *GormEntityRepository) FindAll(ctx context.Context, kind ledger.EntityKind, filter shared.Filter) ([]ledger.Entity, int64, error) {
	query := r.table(ctx, kind)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var entityModels []models.EntityModel
	if err := query.Order("created_at DESC").Find(&entityModels).Error; err != nil {
		return nil, 0, err
	}

	entities := make([]ledger.Entity, len(entityModels))
	for i := range entityModels {
		entities[i] = *entityModels[i].ToDomain(kind)
	}
	return entities, total, nil
}

// Save persists metadata changes. The balance column only moves through
// the atomic statements below.
func (r *GormEntityRepository) Save(ctx context.Context, entity *ledger.Entity) error {
	model := models.EntityModelFromDomain(entity)
	result := r.table(ctx, entity.Kind).
		Where("id = ?", entity.ID).
		Updates(map[string]any{
			"name":       model.Name,
			"phone":      model.Phone,
			"address":    model.Address,
			"email":      model.Email,
			"notes":      model.Notes,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes an entity
func (r *GormEntityRepository) Delete(ctx context.Context, kind ledger.EntityKind, id uuid.UUID) error {
	result := r.table(ctx, kind).Where("id = ?", id).Delete(&models.EntityModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// IncrementBalance atomically adds amount to the persisted balance.
// The arithmetic runs inside the database, never in application memory.
func (r *GormEntityRepository) IncrementBalance(ctx context.Context, kind ledger.EntityKind, id uuid.UUID, amount decimal.Decimal) error {
	result := r.table(ctx, kind).
		Where("id = ?", id).
		Update("total_debt", gorm.Expr("total_debt + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DecrementBalanceChecked atomically subtracts amount with the overpay
// guard in the same UPDATE. A zero row count with the entity present
// means the guard rejected the payment.
func (r *GormEntityRepository) DecrementBalanceChecked(ctx context.Context, kind ledger.EntityKind, id uuid.UUID, amount decimal.Decimal) error {
	result := r.table(ctx, kind).
		Where("id = ? AND total_debt >= ?", id, amount).
		Update("total_debt", gorm.Expr("total_debt - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.table(ctx, kind).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInsufficientBalance
	}
	return nil
}

// CreateBatch inserts entities with IDs and balances preserved.
// Only the restore path calls this.
func (r *GormEntityRepository) CreateBatch(ctx context.Context, kind ledger.EntityKind, entities []ledger.Entity) error {
	if len(entities) == 0 {
		return nil
	}
	entityModels := make([]*models.EntityModel, len(entities))
	for i := range entities {
		entityModels[i] = models.EntityModelFromDomain(&entities[i])
	}
	return r.table(ctx, kind).Create(entityModels).Error
}

// DeleteAll clears one entity table. Only the restore path calls this.
func (r *GormEntityRepository) DeleteAll(ctx context.Context, kind ledger.EntityKind) error {
	return r.table(ctx, kind).Where("1 = 1").Delete(&models.EntityModel{}).Error
}

// CountByKind counts all entities of a kind
func (r *GormEntityRepository) CountByKind(ctx context.Context, kind ledger.EntityKind) (int64, error) {
	var count int64
	if err := r.table(ctx, kind).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumBalanceByKind sums the outstanding balances of one entity kind
func (r *GormEntityRepository) SumBalanceByKind(ctx context.Context, kind ledger.EntityKind) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := r.table(ctx, kind).
		Select("SUM(total_debt)").
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// FindTopByBalance returns up to limit entities ordered by balance descending
func (r *GormEntityRepository) FindTopByBalance(ctx context.Context, kind ledger.EntityKind, limit int) ([]ledger.Entity, error) {
	var entityModels []models.EntityModel
	if err := r.table(ctx, kind).
		Order("total_debt DESC").
		Limit(limit).
		Find(&entityModels).Error; err != nil {
		return nil, err
	}

	entities := make([]ledger.Entity, len(entityModels))
	for i := range entityModels {
		entities[i] = *entityModels[i].ToDomain(kind)
	}
	return entities, nil
}

var _ ledger.EntityRepository = (*GormEntityRepository)(nil)
