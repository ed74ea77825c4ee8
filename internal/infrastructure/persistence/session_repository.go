package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/debtledger/backend/internal/domain/identity"
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/debtledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSessionRepository implements identity.SessionRepository using GORM
type GormSessionRepository struct {
	db *Database
}

// NewGormSessionRepository creates a new GormSessionRepository
func NewGormSessionRepository(db *Database) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Create creates a new session
func (r *GormSessionRepository) Create(ctx context.Context, session *identity.Session) error {
	model := models.SessionModelFromDomain(session)
	return r.db.Conn(ctx).WithContext(ctx).Create(model).Error
}

// FindByToken finds a session by its exact token string
func (r *GormSessionRepository) FindByToken(ctx context.Context, token string) (*identity.Session, error) {
	var model models.SessionModel
	if err := r.db.Conn(ctx).WithContext(ctx).First(&model, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// DeleteByToken removes the session matching the token.
// Deleting a non-existent session is not an error.
func (r *GormSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.Conn(ctx).WithContext(ctx).
		Delete(&models.SessionModel{}, "token = ?", token).Error
}

// DeleteByUserID removes every session belonging to the user
func (r *GormSessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.Conn(ctx).WithContext(ctx).
		Delete(&models.SessionModel{}, "user_id = ?", userID).Error
}

// DeleteExpired removes sessions whose expiry has passed
func (r *GormSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.Conn(ctx).WithContext(ctx).
		Delete(&models.SessionModel{}, "expires_at < ?", time.Now())
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

var _ identity.SessionRepository = (*GormSessionRepository)(nil)
