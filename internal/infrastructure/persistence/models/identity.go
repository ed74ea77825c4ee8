package models

import (
	"time"

	"github.com/debtledger/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the persistence model for users
type UserModel struct {
	BaseModel
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	Name         string `gorm:"size:255;not null"`
	PasswordHash string `gorm:"column:password;size:255;not null"`
	Role         string `gorm:"size:50;not null;default:'employee'"`
	Phone        string `gorm:"size:50"`
	Address      string `gorm:"size:500"`
	// No default tag: GORM would skip a false value on insert and the
	// column default would silently reactivate the user.
	IsActive bool `gorm:"not null"`
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         identity.Role(m.Role),
		Phone:        m.Phone,
		Address:      m.Address,
		IsActive:     m.IsActive,
	}
}

// UserModelFromDomain converts a domain User to UserModel
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Phone:        u.Phone,
		Address:      u.Address,
		IsActive:     u.IsActive,
	}
	m.BaseModel.FromDomain(u.BaseEntity)
	return m
}

// SessionModel is the persistence model for sessions
type SessionModel struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"size:1024;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for SessionModel
func (SessionModel) TableName() string {
	return "sessions"
}

// ToDomain converts SessionModel to a domain Session
func (m *SessionModel) ToDomain() *identity.Session {
	return &identity.Session{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Token:      m.Token,
		ExpiresAt:  m.ExpiresAt,
	}
}

// SessionModelFromDomain converts a domain Session to SessionModel
func SessionModelFromDomain(s *identity.Session) *SessionModel {
	m := &SessionModel{
		UserID:    s.UserID,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
	}
	m.BaseModel.FromDomain(s.BaseEntity)
	return m
}
