package service

import (
	"context"
	"time"

	"stroymonitor/internal/entity"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthConfig struct {
	SessionTTL   time.Duration
	CodeTTL      time.Duration
	CodeRequired bool
}

// Profile is the identity attached to a validated session.
type Profile struct {
	UserID   uuid.UUID
	Email    string
	FullName string
	Role     entity.UserRole
}

type EmailSender interface {
	SendVerificationCode(ctx context.Context, email, code string, purpose entity.CodePurpose) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
