package persistence

import (
	"context"

	"github.com/debtledger/backend/internal/domain/audit"
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/debtledger/backend/internal/infrastructure/persistence/models"
)

// GormAuditRepository implements audit.Repository using GORM
type GormAuditRepository struct {
	db *Database
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *Database) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Create appends an entry to the audit log
func (r *GormAuditRepository) Create(ctx context.Context, entry *audit.Entry) error {
	model := models.AuditLogModelFromDomain(entry)
	return r.db.Conn(ctx).WithContext(ctx).Create(model).Error
}

// CreateBatch appends multiple entries in one statement
func (r *GormAuditRepository) CreateBatch(ctx context.Context, entries []audit.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	auditModels := make([]*models.AuditLogModel, len(entries))
	for i := range entries {
		auditModels[i] = models.AuditLogModelFromDomain(&entries[i])
	}
	return r.db.Conn(ctx).WithContext(ctx).Create(auditModels).Error
}

// FindAll returns audit entries matching the filter, newest first
func (r *GormAuditRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.Entry, int64, error) {
	query := r.db.Conn(ctx).WithContext(ctx).Model(&models.AuditLogModel{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("table_name LIKE ? OR record_id LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var entryModels []models.AuditLogModel
	if err := query.Order("created_at DESC").Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]audit.Entry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}
	return entries, total, nil
}

// DeleteAll clears the audit log. Only the restore path calls this.
func (r *GormAuditRepository) DeleteAll(ctx context.Context) error {
	return r.db.Conn(ctx).WithContext(ctx).
		Where("1 = 1").
		Delete(&models.AuditLogModel{}).Error
}

var _ audit.Repository = (*GormAuditRepository)(nil)
