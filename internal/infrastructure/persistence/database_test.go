package persistence

import (
	"context"
	"testing"

	"github.com/debtledger/backend/internal/domain/identity"
	"github.com/debtledger/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDatabase opens an in-memory SQLite database with the full schema.
// A single connection keeps the in-memory database alive across goroutines.
func setupTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.SessionModel{},
		&models.TransactionModel{},
		&models.AuditLogModel{},
		&models.SettingsModel{},
	))
	require.NoError(t, db.Table(models.TableSuppliers).AutoMigrate(&models.EntityModel{}))
	require.NoError(t, db.Table(models.TableCustomers).AutoMigrate(&models.EntityModel{}))

	return NewDatabaseFromGorm(db)
}

func newTestUser(t *testing.T, email string, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser(email, "Test User", "password123", role)
	require.NoError(t, err)
	return user
}

func TestDatabase_WithinTx(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db := setupTestDatabase(t)
		repo := NewGormUserRepository(db)
		user := newTestUser(t, "commit@example.com", identity.RoleEmployee)

		err := db.WithinTx(context.Background(), func(ctx context.Context) error {
			return repo.Create(ctx, user)
		})
		require.NoError(t, err)

		found, err := repo.FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, found.Email)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db := setupTestDatabase(t)
		repo := NewGormUserRepository(db)
		user := newTestUser(t, "rollback@example.com", identity.RoleEmployee)

		err := db.WithinTx(context.Background(), func(ctx context.Context) error {
			if err := repo.Create(ctx, user); err != nil {
				return err
			}
			return assert.AnError
		})
		require.Error(t, err)

		_, err = repo.FindByID(context.Background(), user.ID)
		assert.Error(t, err)
	})

	t.Run("nested call joins the outer transaction", func(t *testing.T) {
		db := setupTestDatabase(t)
		repo := NewGormUserRepository(db)
		first := newTestUser(t, "outer@example.com", identity.RoleEmployee)
		second := newTestUser(t, "inner@example.com", identity.RoleEmployee)

		err := db.WithinTx(context.Background(), func(ctx context.Context) error {
			if err := repo.Create(ctx, first); err != nil {
				return err
			}
			return db.WithinTx(ctx, func(ctx context.Context) error {
				if err := repo.Create(ctx, second); err != nil {
					return err
				}
				return assert.AnError
			})
		})
		require.Error(t, err)

		// The inner failure must roll back both writes.
		_, err = repo.FindByID(context.Background(), first.ID)
		assert.Error(t, err)
		_, err = repo.FindByID(context.Background(), second.ID)
		assert.Error(t, err)
	})

	t.Run("Conn returns the bound transaction inside WithinTx", func(t *testing.T) {
		db := setupTestDatabase(t)

		outside := db.Conn(context.Background())
		assert.Same(t, db.DB, outside)

		err := db.WithinTx(context.Background(), func(ctx context.Context) error {
			inside := db.Conn(ctx)
			assert.NotSame(t, db.DB, inside)
			return nil
		})
		require.NoError(t, err)
	})
}
