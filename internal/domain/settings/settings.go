package settings

import (
	"strings"

	"github.com/debtledger/backend/internal/domain/shared"
)

// DefaultCurrency is used when no currency has been configured
const DefaultCurrency = "IQD"

// CompanySettings is the singleton company profile shown on reports
type CompanySettings struct {
	shared.BaseEntity
	Name        string
	Description string
	Logo        string
	Currency    string
}

// NewCompanySettings creates the settings record
func NewCompanySettings(name, description, logo, currency string) (*CompanySettings, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name is required")
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return &CompanySettings{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		Logo:        logo,
		Currency:    currency,
	}, nil
}

// Update replaces the mutable settings fields
func (s *CompanySettings) Update(name, description, logo, currency string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name is required")
	}
	s.Name = name
	s.Description = description
	s.Logo = logo
	if currency != "" {
		s.Currency = currency
	}
	s.Touch()
	return nil
}
