package settings

import (
	"context"
	"errors"
	"time"

	"github.com/debtledger/backend/internal/domain/audit"
	"github.com/debtledger/backend/internal/domain/identity"
	"github.com/debtledger/backend/internal/domain/settings"
	"github.com/debtledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const settingsTable = "company_settings"

// UpdateSettingsRequest carries the company profile fields
type UpdateSettingsRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Currency    string `json:"currency"`
}

// SettingsResponse is the API representation of the company settings
type SettingsResponse struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	Currency    string    `json:"currency"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toSettingsResponse(s *settings.CompanySettings) SettingsResponse {
	return SettingsResponse{
		Name:        s.Name,
		Description: s.Description,
		Logo:        s.Logo,
		Currency:    s.Currency,
		UpdatedAt:   s.UpdatedAt,
	}
}

func settingsAuditImage(s *settings.CompanySettings) map[string]any {
	return map[string]any{
		"name":        s.Name,
		"description": s.Description,
		"logo":        s.Logo,
		"currency":    s.Currency,
	}
}

// Service manages the company settings singleton
type Service struct {
	repo      settings.Repository
	auditRepo audit.Repository
	txManager shared.TxManager
	events    shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a new settings service
func NewService(
	repo settings.Repository,
	auditRepo audit.Repository,
	txManager shared.TxManager,
	events shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:      repo,
		auditRepo: auditRepo,
		txManager: txManager,
		events:    events,
		logger:    logger,
	}
}

// Get returns the company settings
func (s *Service) Get(ctx context.Context, actor *identity.User) (*SettingsResponse, error) {
	if !actor.Can(identity.ResourceSettings, identity.ActionRead) {
		return nil, shared.ErrForbidden
	}

	current, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	response := toSettingsResponse(current)
	return &response, nil
}

// Update creates or replaces the settings singleton
func (s *Service) Update(ctx context.Context, actor *identity.User, req UpdateSettingsRequest) (*SettingsResponse, error) {
	if !actor.Can(identity.ResourceSettings, identity.ActionUpdate) {
		return nil, shared.ErrForbidden
	}

	current, err := s.repo.Get(ctx)
	var before map[string]any
	var action audit.Action
	switch {
	case err == nil:
		before = settingsAuditImage(current)
		action = audit.ActionUpdate
		if err := current.Update(req.Name, req.Description, req.Logo, req.Currency); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		action = audit.ActionCreate
		current, err = settings.NewCompanySettings(req.Name, req.Description, req.Logo, req.Currency)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	entry, err := audit.NewEntry(actor.ID, action, settingsTable, current.ID.String(),
		before, settingsAuditImage(current))
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Save(ctx, current); err != nil {
			return err
		}
		return s.auditRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Company settings updated", zap.String("actor_id", actor.ID.String()))
	_ = s.events.Publish(ctx, settings.NewSettingsUpdatedEvent(current, actor.ID))

	response := toSettingsResponse(current)
	return &response, nil
}
