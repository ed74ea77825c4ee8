package identity

import (
	"context"

	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository provides access to user records
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]User, int64, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountActiveAdmins returns the number of active users holding the
	// admin role. Used to enforce the at-least-one-admin invariant.
	CountActiveAdmins(ctx context.Context) (int64, error)
}

// SessionRepository provides access to login sessions
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByToken(ctx context.Context, token string) (*Session, error)
	// DeleteByToken removes the session matching the token.
	// Deleting a non-existent session is not an error.
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}
