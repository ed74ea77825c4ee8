package backup

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/debtledger/backend/internal/domain/audit"
	"github.com/debtledger/backend/internal/domain/identity"
	"github.com/debtledger/backend/internal/domain/ledger"
	"github.com/debtledger/backend/internal/domain/settings"
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	backupsTable     = "backups"
	redactedPassword = "[REDACTED]"
	exportPageSize   = 500
)

// Service exports the whole ledger into a portable JSON bundle and
// restores it. Restores replace ledger data wholesale but never touch
// user rows: exported password fields are redacted, so imported users
// could not authenticate.
type Service struct {
	userRepo     identity.UserRepository
	entityRepo   ledger.EntityRepository
	txnRepo      ledger.TransactionRepository
	settingsRepo settings.Repository
	auditRepo    audit.Repository
	txManager    shared.TxManager
	events       shared.EventPublisher
	logger       *zap.Logger
}

// NewService creates a new backup service
func NewService(
	userRepo identity.UserRepository,
	entityRepo ledger.EntityRepository,
	txnRepo ledger.TransactionRepository,
	settingsRepo settings.Repository,
	auditRepo audit.Repository,
	txManager shared.TxManager,
	events shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		userRepo:     userRepo,
		entityRepo:   entityRepo,
		txnRepo:      txnRepo,
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		events:       events,
		logger:       logger,
	}
}

// Export serializes every table into a bundle. Password hashes are
// replaced with a redaction marker before anything leaves the process.
func (s *Service) Export(ctx context.Context, actor *identity.User) (*Bundle, error) {
	if !actor.Can(identity.ResourceBackup, identity.ActionCreate) {
		return nil, shared.ErrForbidden
	}

	users, err := s.collectUsers(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.collectEntities(ctx, ledger.EntityKindSupplier)
	if err != nil {
		return nil, err
	}
	customers, err := s.collectEntities(ctx, ledger.EntityKindCustomer)
	if err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	txnRecords := make([]TransactionRecord, len(txns))
	for i := range txns {
		txnRecords[i] = toTransactionRecord(&txns[i])
	}

	var settingsRecord *SettingsRecord
	current, err := s.settingsRepo.Get(ctx)
	switch {
	case err == nil:
		settingsRecord = toSettingsRecord(current)
	case errors.Is(err, shared.ErrNotFound):
	default:
		return nil, err
	}

	auditLog, err := s.collectAuditLog(ctx)
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{
		Version:   BundleVersion,
		Timestamp: time.Now().UTC(),
		Data: BundleData{
			Users:            users,
			Suppliers:        suppliers,
			Customers:        customers,
			DebtTransactions: txnRecords,
			CompanySettings:  settingsRecord,
			AuditLog:         auditLog,
		},
	}

	entry, err := audit.NewEntry(actor.ID, audit.ActionCreate, backupsTable, uuid.NewString(),
		nil, map[string]any{
			"operation":    "export",
			"users":        len(users),
			"suppliers":    len(suppliers),
			"customers":    len(customers),
			"transactions": len(txnRecords),
			"auditEntries": len(auditLog),
		})
	if err != nil {
		return nil, err
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("Backup exported",
		zap.String("actor_id", actor.ID.String()),
		zap.Int("suppliers", len(suppliers)),
		zap.Int("customers", len(customers)),
		zap.Int("transactions", len(txnRecords)))

	return bundle, nil
}

// restoreEnvelope is the loose shape used to validate a bundle before
// decoding its tables.
type restoreEnvelope struct {
	Version string          `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Restore replaces all ledger data with the bundle's contents in one
// storage transaction. User rows are never modified: the bundle's
// passwords are redacted and restoring them would lock everyone out.
// Historical audit entries carrying a password field are skipped.
func (s *Service) Restore(ctx context.Context, actor *identity.User, raw []byte) error {
	if !actor.Can(identity.ResourceBackup, identity.ActionManage) {
		return shared.ErrForbidden
	}

	var envelope restoreEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return shared.ErrInvalidFormat
	}
	if envelope.Version == "" || len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return shared.ErrInvalidFormat
	}
	var data BundleData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return shared.ErrInvalidFormat
	}

	suppliers := make([]ledger.Entity, len(data.Suppliers))
	for i := range data.Suppliers {
		suppliers[i] = data.Suppliers[i].toEntity(ledger.EntityKindSupplier)
	}
	customers := make([]ledger.Entity, len(data.Customers))
	for i := range data.Customers {
		customers[i] = data.Customers[i].toEntity(ledger.EntityKindCustomer)
	}
	txns := make([]ledger.Transaction, len(data.DebtTransactions))
	for i := range data.DebtTransactions {
		txns[i] = data.DebtTransactions[i].toTransaction()
	}

	var auditEntries []audit.Entry
	skipped := 0
	for i := range data.AuditLog {
		entry := data.AuditLog[i].toEntry()
		if entry.ContainsCredential() {
			skipped++
			continue
		}
		auditEntries = append(auditEntries, entry)
	}

	restoreEntry, err := audit.NewEntry(actor.ID, audit.ActionCreate, backupsTable, uuid.NewString(),
		nil, map[string]any{
			"operation":           "restore",
			"version":             envelope.Version,
			"suppliers":           len(suppliers),
			"customers":           len(customers),
			"transactions":        len(txns),
			"auditEntries":        len(auditEntries),
			"skippedAuditEntries": skipped,
		})
	if err != nil {
		return err
	}

	var restoredSettings *settings.CompanySettings
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.auditRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if err := s.txnRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if err := s.entityRepo.DeleteAll(ctx, ledger.EntityKindSupplier); err != nil {
			return err
		}
		if err := s.entityRepo.DeleteAll(ctx, ledger.EntityKindCustomer); err != nil {
			return err
		}
		if err := s.settingsRepo.DeleteAll(ctx); err != nil {
			return err
		}

		if len(suppliers) > 0 {
			if err := s.entityRepo.CreateBatch(ctx, ledger.EntityKindSupplier, suppliers); err != nil {
				return err
			}
		}
		if len(customers) > 0 {
			if err := s.entityRepo.CreateBatch(ctx, ledger.EntityKindCustomer, customers); err != nil {
				return err
			}
		}
		if len(txns) > 0 {
			if err := s.txnRepo.CreateBatch(ctx, txns); err != nil {
				return err
			}
		}
		if data.CompanySettings != nil {
			restoredSettings = data.CompanySettings.toSettings()
			if err := s.settingsRepo.Save(ctx, restoredSettings); err != nil {
				return err
			}
		}
		if len(auditEntries) > 0 {
			if err := s.auditRepo.CreateBatch(ctx, auditEntries); err != nil {
				return err
			}
		}
		return s.auditRepo.Create(ctx, restoreEntry)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Backup restored",
		zap.String("actor_id", actor.ID.String()),
		zap.String("version", envelope.Version),
		zap.Int("suppliers", len(suppliers)),
		zap.Int("customers", len(customers)),
		zap.Int("transactions", len(txns)),
		zap.Int("skipped_audit_entries", skipped))
	_ = s.events.Publish(ctx, settings.NewSettingsUpdatedEvent(restoredSettings, actor.ID))

	return nil
}

func (s *Service) collectUsers(ctx context.Context) ([]UserRecord, error) {
	records := []UserRecord{}
	for page := 1; ; page++ {
		users, total, err := s.userRepo.FindAll(ctx, shared.Filter{Page: page, PageSize: exportPageSize})
		if err != nil {
			return nil, err
		}
		for i := range users {
			records = append(records, toUserRecord(&users[i]))
		}
		if len(users) == 0 || int64(len(records)) >= total {
			return records, nil
		}
	}
}

func (s *Service) collectEntities(ctx context.Context, kind ledger.EntityKind) ([]EntityRecord, error) {
	records := []EntityRecord{}
	for page := 1; ; page++ {
		entities, total, err := s.entityRepo.FindAll(ctx, kind, shared.Filter{Page: page, PageSize: exportPageSize})
		if err != nil {
			return nil, err
		}
		for i := range entities {
			records = append(records, toEntityRecord(&entities[i]))
		}
		if len(entities) == 0 || int64(len(records)) >= total {
			return records, nil
		}
	}
}

func (s *Service) collectAuditLog(ctx context.Context) ([]AuditRecord, error) {
	records := []AuditRecord{}
	for page := 1; ; page++ {
		entries, total, err := s.auditRepo.FindAll(ctx, shared.Filter{Page: page, PageSize: exportPageSize})
		if err != nil {
			return nil, err
		}
		for i := range entries {
			records = append(records, toAuditRecord(&entries[i]))
		}
		if len(entries) == 0 || int64(len(records)) >= total {
			return records, nil
		}
	}
}
