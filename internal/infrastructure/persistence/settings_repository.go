package persistence

import (
	"context"
	"errors"

	"github.com/debtledger/backend/internal/domain/settings"
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/debtledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSettingsRepository implements settings.Repository using GORM
type GormSettingsRepository struct {
	db *Database
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *Database) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get returns the settings singleton
func (r *GormSettingsRepository) Get(ctx context.Context) (*settings.CompanySettings, error) {
	var model models.SettingsModel
	if err := r.db.Conn(ctx).WithContext(ctx).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates the settings row
func (r *GormSettingsRepository) Save(ctx context.Context, s *settings.CompanySettings) error {
	model := models.SettingsModelFromDomain(s)
	return r.db.Conn(ctx).WithContext(ctx).Save(model).Error
}

// DeleteAll clears the settings table. Only the restore path calls this.
func (r *GormSettingsRepository) DeleteAll(ctx context.Context) error {
	return r.db.Conn(ctx).WithContext(ctx).
		Where("1 = 1").
		Delete(&models.SettingsModel{}).Error
}

var _ settings.Repository = (*GormSettingsRepository)(nil)
