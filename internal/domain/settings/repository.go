package settings

import "context"

// Repository provides access to the company settings singleton
type Repository interface {
	// Get returns the settings row, or shared.ErrNotFound if none exists
	Get(ctx context.Context) (*CompanySettings, error)
	Save(ctx context.Context, s *CompanySettings) error
	DeleteAll(ctx context.Context) error
}
