package models

import (
	"github.com/debtledger/backend/internal/domain/settings"
)

// SettingsModel is the persistence model for company settings
type SettingsModel struct {
	BaseModel
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"size:1000"`
	Logo        string `gorm:"type:text"`
	Currency    string `gorm:"size:10;not null;default:'IQD'"`
}

// TableName returns the table name for SettingsModel
func (SettingsModel) TableName() string {
	return "company_settings"
}

// ToDomain converts SettingsModel to domain CompanySettings
func (m *SettingsModel) ToDomain() *settings.CompanySettings {
	return &settings.CompanySettings{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		Logo:        m.Logo,
		Currency:    m.Currency,
	}
}

// SettingsModelFromDomain converts domain CompanySettings to SettingsModel
func SettingsModelFromDomain(s *settings.CompanySettings) *SettingsModel {
	m := &SettingsModel{
		Name:        s.Name,
		Description: s.Description,
		Logo:        s.Logo,
		Currency:    s.Currency,
	}
	m.BaseModel.FromDomain(s.BaseEntity)
	return m
}
