package service

import (
	"context"
	"time"

	"stroymonitor/internal/entity"
	"stroymonitor/internal/repository"
	"stroymonitor/internal/utils"

	"github.com/google/uuid"
)

const sessionTokenBytes = 32

// SessionManager issues, validates and revokes opaque session tokens.
// Only a SHA-256 digest of the token is persisted; the raw token exists
// solely in the response to a successful login.
type SessionManager struct {
	sessions repository.SessionRepository
	users    repository.UserRepository
	clock    Clock
	ttl      time.Duration
}

func NewSessionManager(
	sessions repository.SessionRepository,
	users repository.UserRepository,
	clock Clock,
	ttl time.Duration,
) *SessionManager {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &SessionManager{
		sessions: sessions,
		users:    users,
		clock:    clock,
		ttl:      ttl,
	}
}

func (m *SessionManager) Issue(ctx context.Context, userID uuid.UUID, ipAddress, userAgent *string) (string, error) {
	token, err := utils.GenerateRandomToken(sessionTokenBytes)
	if err != nil {
		return "", err
	}

	session := &entity.Session{
		UserID:    userID,
		TokenHash: utils.HashToken(token),
		IPAddress: ipAddress,
		UserAgent: userAgent,
		ExpiresAt: m.clock.Now().Add(m.ttl),
	}
	if err := m.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

// Validate resolves a token to the owning user's profile. It returns
// (nil, nil) for unknown, expired and revoked tokens, and for sessions
// whose user has been deactivated since issuance.
func (m *SessionManager) Validate(ctx context.Context, token string) (*Profile, error) {
	if token == "" {
		return nil, nil
	}

	session, err := m.sessions.FindValid(ctx, utils.HashToken(token), m.clock.Now())
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	user, err := m.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, nil
	}

	return &Profile{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	}, nil
}

// Revoke expires the session matching token. Revoking an unknown or
// already-expired token is a no-op success.
func (m *SessionManager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.sessions.Revoke(ctx, utils.HashToken(token), m.clock.Now())
}
