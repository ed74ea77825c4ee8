package identity

import (
	"time"

	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultSessionTTL is the lifetime of a login session
const DefaultSessionTTL = 7 * 24 * time.Hour

// Session represents a server-side login session. The row is keyed by the
// exact signed token string, so a token that verifies cryptographically but
// has no matching live row is still rejected.
type Session struct {
	shared.BaseEntity
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// NewSession creates a session for the given user and signed token
func NewSession(userID uuid.UUID, token string, ttl time.Duration) (*Session, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if token == "" {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Token cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Session{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Token:      token,
		ExpiresAt:  time.Now().Add(ttl),
	}, nil
}

// IsExpired returns true if the session row itself has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
