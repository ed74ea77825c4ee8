package models

import (
	"encoding/json"

	"github.com/debtledger/backend/internal/domain/audit"
	"github.com/google/uuid"
)

// AuditLogModel is the persistence model for audit entries
type AuditLogModel struct {
	BaseModel
	UserID      *uuid.UUID `gorm:"type:uuid;index"`
	Action      string     `gorm:"size:20;not null"`
	TargetTable string     `gorm:"column:table_name;size:100;not null;index"`
	RecordID    string     `gorm:"size:100;not null"`
	OldData     string     `gorm:"type:jsonb"`
	NewData     string     `gorm:"type:jsonb"`
}

// TableName returns the table name for AuditLogModel
func (AuditLogModel) TableName() string {
	return "audit_log"
}

// ToDomain converts AuditLogModel to a domain audit Entry
func (m *AuditLogModel) ToDomain() *audit.Entry {
	entry := &audit.Entry{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Action:     audit.Action(m.Action),
		TableName:  m.TargetTable,
		RecordID:   m.RecordID,
	}
	if m.OldData != "" {
		entry.OldData = json.RawMessage(m.OldData)
	}
	if m.NewData != "" {
		entry.NewData = json.RawMessage(m.NewData)
	}
	return entry
}

// AuditLogModelFromDomain converts a domain audit Entry to AuditLogModel
func AuditLogModelFromDomain(e *audit.Entry) *AuditLogModel {
	m := &AuditLogModel{
		UserID:      e.UserID,
		Action:      string(e.Action),
		TargetTable: e.TableName,
		RecordID:    e.RecordID,
		OldData:     string(e.OldData),
		NewData:     string(e.NewData),
	}
	m.BaseModel.FromDomain(e.BaseEntity)
	return m
}
