package identity

import (
	"context"
	"errors"
	"time"

	"github.com/debtledger/backend/internal/domain/identity"
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/debtledger/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for any login failure. The cause is
// never disclosed to the caller.
var ErrInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")

// AuthService handles login, logout and session resolution
type AuthService struct {
	userRepo    identity.UserRepository
	sessionRepo identity.SessionRepository
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	sessionRepo identity.SessionRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// SetTokenBlacklist enables token revocation checks. Without a blacklist
// the session row remains the sole revocation mechanism.
func (s *AuthService) SetTokenBlacklist(blacklist auth.TokenBlacklist) {
	s.blacklist = blacklist
}

// Login authenticates a user, signs a session token and records the
// session row keyed by that exact token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown email", zap.String("email", req.Email))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		s.logger.Warn("Login attempt for deactivated account", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	signed, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to sign session token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create session")
	}

	session, err := identity.NewSession(user.ID, signed.Token, time.Until(signed.ExpiresAt))
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		s.logger.Error("Failed to persist session", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create session")
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &LoginResponse{
		Token:     signed.Token,
		ExpiresAt: signed.ExpiresAt,
		User:      ToUserResponse(user),
	}, nil
}

// ResolveSession turns a bearer token into the acting user. The token
// must verify cryptographically AND match a live session row AND belong
// to an active user; any miss is rejected the same way.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*identity.User, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			// The session row below still gates access.
			s.logger.Warn("Token blacklist check failed", zap.Error(err))
		} else if revoked {
			return nil, shared.ErrUnauthorized
		}

		if claims.IssuedAt != nil {
			invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.IssuedAt.Time)
			if err != nil {
				s.logger.Warn("User token invalidation check failed", zap.Error(err))
			} else if invalidated {
				return nil, shared.ErrUnauthorized
			}
		}
	}

	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if session.IsExpired() {
		return nil, shared.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, shared.ErrUnauthorized
	}

	return user, nil
}

// Logout deletes the session row and revokes the token's JTI for the
// remainder of its claim lifetime. Logging out twice is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessionRepo.DeleteByToken(ctx, token); err != nil {
		return err
	}

	if s.blacklist != nil {
		if claims, err := s.jwtService.ValidateToken(token); err == nil {
			if ttl := claims.GetRemainingTTL(); ttl > 0 {
				if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
					s.logger.Warn("Failed to blacklist token on logout", zap.Error(err))
				}
			}
		}
	}

	return nil
}

// CleanupExpiredSessions removes session rows whose expiry has passed
func (s *AuthService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := s.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("Removed expired sessions", zap.Int64("count", deleted))
	}
	return deleted, nil
}
