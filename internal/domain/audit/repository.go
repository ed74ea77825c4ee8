package audit

import (
	"context"

	"github.com/debtledger/backend/internal/domain/shared"
)

// Repository provides access to the append-only audit log
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	CreateBatch(ctx context.Context, entries []Entry) error
	FindAll(ctx context.Context, filter shared.Filter) ([]Entry, int64, error)
	// DeleteAll clears the log. Only a full restore may call this.
	DeleteAll(ctx context.Context) error
}
