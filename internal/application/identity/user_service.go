package identity

import (
	"context"
	"time"

	"github.com/debtledger/backend/internal/domain/audit"
	"github.com/debtledger/backend/internal/domain/identity"
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/debtledger/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrLastAdmin guards the at-least-one-active-admin invariant
var ErrLastAdmin = shared.NewDomainError("LAST_ADMIN", "At least one active administrator must remain")

const usersTable = "users"

// redactedPassword replaces the password hash in audit images
const redactedPassword = "[REDACTED]"

// UserService handles admin-gated user management
type UserService struct {
	userRepo    identity.UserRepository
	sessionRepo identity.SessionRepository
	auditRepo   audit.Repository
	txManager   shared.TxManager
	events      shared.EventPublisher
	blacklist   auth.TokenBlacklist
	tokenTTL    time.Duration
	logger      *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	sessionRepo identity.SessionRepository,
	auditRepo audit.Repository,
	txManager shared.TxManager,
	events shared.EventPublisher,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		events:      events,
		logger:      logger,
	}
}

// SetTokenBlacklist enables user-wide token invalidation when credentials
// change. tokenTTL must cover the longest possible token lifetime.
func (s *UserService) SetTokenBlacklist(blacklist auth.TokenBlacklist, tokenTTL time.Duration) {
	s.blacklist = blacklist
	s.tokenTTL = tokenTTL
}

// userAuditImage snapshots a user for the audit log. The password hash
// is never written to the log.
func userAuditImage(u *identity.User) map[string]any {
	return map[string]any{
		"id":       u.ID,
		"email":    u.Email,
		"name":     u.Name,
		"password": redactedPassword,
		"role":     string(u.Role),
		"phone":    u.Phone,
		"address":  u.Address,
		"isActive": u.IsActive,
	}
}

// List returns users matching the filter
func (s *UserService) List(ctx context.Context, actor *identity.User, filter shared.Filter) ([]UserResponse, int64, error) {
	if !actor.Can(identity.ResourceUsers, identity.ActionRead) {
		return nil, 0, shared.ErrForbidden
	}

	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToUserResponses(users), total, nil
}

// Get returns one user by ID
func (s *UserService) Get(ctx context.Context, actor *identity.User, id uuid.UUID) (*UserResponse, error) {
	if !actor.Can(identity.ResourceUsers, identity.ActionRead) {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, actor *identity.User, req CreateUserRequest) (*UserResponse, error) {
	if !actor.Can(identity.ResourceUsers, identity.ActionCreate) {
		return nil, shared.ErrForbidden
	}

	user, err := identity.NewUser(req.Email, req.Name, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if req.Phone != "" || req.Address != "" {
		user.SetContact(req.Phone, req.Address)
	}

	entry, err := audit.NewEntry(actor.ID, audit.ActionCreate, usersTable, user.ID.String(),
		nil, userAuditImage(user))
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return s.auditRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("actor_id", actor.ID.String()))
	_ = s.events.Publish(ctx, identity.NewUserCreatedEvent(user, actor.ID))

	response := ToUserResponse(user)
	return &response, nil
}

// Update modifies a user account. Demoting or deactivating the last
// active administrator is rejected.
func (s *UserService) Update(ctx context.Context, actor *identity.User, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	if !actor.Can(identity.ResourceUsers, identity.ActionUpdate) {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := userAuditImage(user)

	losesAdmin := req.Role != nil && identity.Role(*req.Role) != identity.RoleAdmin
	deactivated := req.IsActive != nil && !*req.IsActive
	passwordChanged := req.Password != nil
	guardLastAdmin := user.IsAdmin() && user.IsActive && (losesAdmin || deactivated)

	if req.Email != nil {
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Name != nil {
		if err := user.SetName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if err := user.SetRole(identity.Role(*req.Role)); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil || req.Address != nil {
		phone := user.Phone
		address := user.Address
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Address != nil {
			address = *req.Address
		}
		user.SetContact(phone, address)
	}
	if req.IsActive != nil {
		user.SetActive(*req.IsActive)
	}

	entry, err := audit.NewEntry(actor.ID, audit.ActionUpdate, usersTable, user.ID.String(),
		before, userAuditImage(user))
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if guardLastAdmin {
			// Checked inside the unit so a losing race rolls back.
			count, err := s.userRepo.CountActiveAdmins(ctx)
			if err != nil {
				return err
			}
			if count <= 1 {
				return ErrLastAdmin
			}
		}
		if err := s.userRepo.Save(ctx, user); err != nil {
			return err
		}
		if deactivated || passwordChanged {
			// Neither a deactivated user nor sessions opened with the
			// old password may stay live.
			if err := s.sessionRepo.DeleteByUserID(ctx, user.ID); err != nil {
				return err
			}
		}
		return s.auditRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	if passwordChanged && s.blacklist != nil {
		if err := s.blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), s.tokenTTL); err != nil {
			s.logger.Warn("Failed to invalidate tokens after password change",
				zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	}

	s.logger.Info("User updated",
		zap.String("user_id", user.ID.String()),
		zap.String("actor_id", actor.ID.String()))
	_ = s.events.Publish(ctx, identity.NewUserUpdatedEvent(user, actor.ID))

	response := ToUserResponse(user)
	return &response, nil
}

// Delete removes a user account and its sessions. Deleting the last
// active administrator is rejected.
func (s *UserService) Delete(ctx context.Context, actor *identity.User, id uuid.UUID) error {
	if !actor.Can(identity.ResourceUsers, identity.ActionDelete) {
		return shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	entry, err := audit.NewEntry(actor.ID, audit.ActionDelete, usersTable, user.ID.String(),
		userAuditImage(user), nil)
	if err != nil {
		return err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if user.IsAdmin() && user.IsActive {
			count, err := s.userRepo.CountActiveAdmins(ctx)
			if err != nil {
				return err
			}
			if count <= 1 {
				return ErrLastAdmin
			}
		}
		if err := s.sessionRepo.DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
		if err := s.userRepo.Delete(ctx, user.ID); err != nil {
			return err
		}
		return s.auditRepo.Create(ctx, entry)
	})
	if err != nil {
		return err
	}

	s.logger.Info("User deleted",
		zap.String("user_id", user.ID.String()),
		zap.String("actor_id", actor.ID.String()))
	_ = s.events.Publish(ctx, identity.NewUserDeletedEvent(user, actor.ID))

	return nil
}
