package backup

import (
	"encoding/json"
	"time"

	"github.com/debtledger/backend/internal/domain/audit"
	"github.com/debtledger/backend/internal/domain/identity"
	"github.com/debtledger/backend/internal/domain/ledger"
	"github.com/debtledger/backend/internal/domain/settings"
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BundleVersion marks the backup format. Restore accepts any envelope
// that declares a version; the value is recorded for forward migration.
const BundleVersion = "1.0.0"

// Bundle is the portable backup envelope
type Bundle struct {
	Version   string     `json:"version"`
	Timestamp time.Time  `json:"timestamp"`
	Data      BundleData `json:"data"`
}

// BundleData carries the exported tables. Users are exported with the
// password hash redacted, so a restore never touches user rows.
type BundleData struct {
	Users            []UserRecord        `json:"users"`
	Suppliers        []EntityRecord      `json:"suppliers"`
	Customers        []EntityRecord      `json:"customers"`
	DebtTransactions []TransactionRecord `json:"debtTransactions"`
	CompanySettings  *SettingsRecord     `json:"companySettings,omitempty"`
	AuditLog         []AuditRecord       `json:"auditLog"`
}

// UserRecord is one exported user row
type UserRecord struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EntityRecord is one exported supplier or customer row
type EntityRecord struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	Address   string          `json:"address,omitempty"`
	Email     string          `json:"email,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	TotalDebt decimal.Decimal `json:"totalDebt"`
	CreatedBy *uuid.UUID      `json:"createdBy,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// TransactionRecord is one exported ledger transaction row
type TransactionRecord struct {
	ID          uuid.UUID       `json:"id"`
	EntityKind  string          `json:"entityType"`
	EntityID    uuid.UUID       `json:"entityId"`
	Kind        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedBy   *uuid.UUID      `json:"createdBy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// SettingsRecord is the exported company settings singleton
type SettingsRecord struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	Currency    string    `json:"currency"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AuditRecord is one exported audit log row
type AuditRecord struct {
	ID        uuid.UUID       `json:"id"`
	UserID    *uuid.UUID      `json:"userId,omitempty"`
	Action    string          `json:"action"`
	TableName string          `json:"tableName"`
	RecordID  string          `json:"recordId"`
	OldData   json.RawMessage `json:"oldData,omitempty"`
	NewData   json.RawMessage `json:"newData,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func toUserRecord(u *identity.User) UserRecord {
	return UserRecord{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Password:  redactedPassword,
		Role:      u.Role.String(),
		Phone:     u.Phone,
		Address:   u.Address,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toEntityRecord(e *ledger.Entity) EntityRecord {
	return EntityRecord{
		ID:        e.ID,
		Name:      e.Name,
		Phone:     e.Phone,
		Address:   e.Address,
		Email:     e.Email,
		Notes:     e.Notes,
		TotalDebt: e.TotalDebt,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toTransactionRecord(t *ledger.Transaction) TransactionRecord {
	return TransactionRecord{
		ID:          t.ID,
		EntityKind:  t.EntityKind.String(),
		EntityID:    t.EntityID,
		Kind:        t.Kind.String(),
		Amount:      t.Amount,
		Description: t.Description,
		Notes:       t.Notes,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
	}
}

func toSettingsRecord(s *settings.CompanySettings) *SettingsRecord {
	return &SettingsRecord{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Logo:        s.Logo,
		Currency:    s.Currency,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toAuditRecord(e *audit.Entry) AuditRecord {
	return AuditRecord{
		ID:        e.ID,
		UserID:    e.UserID,
		Action:    string(e.Action),
		TableName: e.TableName,
		RecordID:  e.RecordID,
		OldData:   e.OldData,
		NewData:   e.NewData,
		CreatedAt: e.CreatedAt,
	}
}

func (r EntityRecord) toEntity(kind ledger.EntityKind) ledger.Entity {
	return ledger.Entity{
		BaseEntity: shared.BaseEntity{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		Kind:       kind,
		Name:       r.Name,
		Phone:      r.Phone,
		Address:    r.Address,
		Email:      r.Email,
		Notes:      r.Notes,
		TotalDebt:  r.TotalDebt,
		CreatedBy:  r.CreatedBy,
	}
}

func (r TransactionRecord) toTransaction() ledger.Transaction {
	return ledger.Transaction{
		BaseEntity:  shared.BaseEntity{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.CreatedAt},
		EntityKind:  ledger.EntityKind(r.EntityKind),
		EntityID:    r.EntityID,
		Kind:        ledger.TransactionKind(r.Kind),
		Amount:      r.Amount,
		Description: r.Description,
		Notes:       r.Notes,
		CreatedBy:   r.CreatedBy,
	}
}

func (r SettingsRecord) toSettings() *settings.CompanySettings {
	return &settings.CompanySettings{
		BaseEntity:  shared.BaseEntity{ID: r.ID, CreatedAt: r.UpdatedAt, UpdatedAt: r.UpdatedAt},
		Name:        r.Name,
		Description: r.Description,
		Logo:        r.Logo,
		Currency:    r.Currency,
	}
}

func (r AuditRecord) toEntry() audit.Entry {
	return audit.Entry{
		BaseEntity: shared.BaseEntity{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.CreatedAt},
		UserID:     r.UserID,
		Action:     audit.Action(r.Action),
		TableName:  r.TableName,
		RecordID:   r.RecordID,
		OldData:    r.OldData,
		NewData:    r.NewData,
	}
}
