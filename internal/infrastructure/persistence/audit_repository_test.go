package persistence

import (
	"context"
	"testing"

	"github.com/debtledger/backend/internal/domain/audit"
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuditEntry(t *testing.T, action audit.Action, tableName, recordID string) *audit.Entry {
	t.Helper()
	entry, err := audit.NewEntry(uuid.New(), action, tableName, recordID,
		nil, map[string]any{"name": "after"})
	require.NoError(t, err)
	return entry
}

func TestAuditRepository_CreateAndFindAll(t *testing.T) {
	db := setupTestDatabase(t)
	repo := NewGormAuditRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestAuditEntry(t, audit.ActionCreate, "suppliers", "rec-1")))
	require.NoError(t, repo.Create(ctx, newTestAuditEntry(t, audit.ActionUpdate, "suppliers", "rec-2")))
	require.NoError(t, repo.Create(ctx, newTestAuditEntry(t, audit.ActionDelete, "customers", "rec-3")))

	t.Run("lists everything without a filter", func(t *testing.T) {
		entries, total, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, entries, 3)
	})

	t.Run("round trips the images", func(t *testing.T) {
		entries, _, err := repo.FindAll(ctx, shared.Filter{Search: "rec-1"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, audit.ActionCreate, entries[0].Action)
		assert.Nil(t, entries[0].OldData)
		assert.JSONEq(t, `{"name":"after"}`, string(entries[0].NewData))
	})

	t.Run("searches by table name", func(t *testing.T) {
		entries, total, err := repo.FindAll(ctx, shared.Filter{Search: "customers"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, entries, 1)
		assert.Equal(t, "rec-3", entries[0].RecordID)
	})

	t.Run("paginates", func(t *testing.T) {
		entries, total, err := repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, entries, 1)
	})
}

func TestAuditRepository_CreateBatch(t *testing.T) {
	db := setupTestDatabase(t)
	repo := NewGormAuditRepository(db)
	ctx := context.Background()

	t.Run("empty batch is a no-op", func(t *testing.T) {
		require.NoError(t, repo.CreateBatch(ctx, nil))

		_, total, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("inserts every entry", func(t *testing.T) {
		entries := []audit.Entry{
			*newTestAuditEntry(t, audit.ActionCreate, "users", "u-1"),
			*newTestAuditEntry(t, audit.ActionUpdate, "users", "u-2"),
		}
		require.NoError(t, repo.CreateBatch(ctx, entries))

		_, total, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})
}

func TestAuditRepository_DeleteAll(t *testing.T) {
	db := setupTestDatabase(t)
	repo := NewGormAuditRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestAuditEntry(t, audit.ActionCreate, "suppliers", "rec-1")))
	require.NoError(t, repo.DeleteAll(ctx))

	_, total, err := repo.FindAll(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
