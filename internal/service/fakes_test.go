package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"stroymonitor/internal/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// --- test doubles for the repository interfaces ---

type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFixedClock(t time.Time) *fixedClock { return &fixedClock{t: t} }

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return errors.New("duplicate email")
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.LastLogin = &at
	}
	return nil
}

func (f *fakeUserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.PasswordHash = hash
	}
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]entity.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	copied := *session
	f.sessions[session.TokenHash] = &copied
	return nil
}

func (f *fakeSessionRepo) FindValid(ctx context.Context, tokenHash string, now time.Time) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[tokenHash]
	if !ok || !session.ExpiresAt.After(now) {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, tokenHash string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if session, ok := f.sessions[tokenHash]; ok && session.ExpiresAt.After(now) {
		session.ExpiresAt = now
	}
	return nil
}

type fakeCodeRepo struct {
	mu    sync.Mutex
	codes []*entity.VerificationCode
}

func newFakeCodeRepo() *fakeCodeRepo { return &fakeCodeRepo{} }

func (f *fakeCodeRepo) Create(ctx context.Context, code *entity.VerificationCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	copied := *code
	f.codes = append(f.codes, &copied)
	return nil
}

func (f *fakeCodeRepo) Consume(ctx context.Context, email, code string, purpose entity.CodePurpose, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.codes) - 1; i >= 0; i-- {
		record := f.codes[i]
		if record.Email == email && record.Code == code && record.Purpose == purpose &&
			!record.Used && record.ExpiresAt.After(now) {
			record.Used = true
			return true, nil
		}
	}
	return false, nil
}

type fakeActivityRepo struct {
	mu   sync.Mutex
	logs []*entity.ActivityLog
}

func newFakeActivityRepo() *fakeActivityRepo { return &fakeActivityRepo{} }

func (f *fakeActivityRepo) Create(ctx context.Context, log *entity.ActivityLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *log
	f.logs = append(f.logs, &copied)
	return nil
}

func (f *fakeActivityRepo) List(ctx context.Context, limit, offset int) ([]entity.ActivityLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var logs []entity.ActivityLog
	for i := len(f.logs) - 1; i >= 0; i-- {
		logs = append(logs, *f.logs[i])
	}
	if offset > len(logs) {
		offset = len(logs)
	}
	logs = logs[offset:]
	if limit > 0 && limit < len(logs) {
		logs = logs[:limit]
	}
	return logs, nil
}

func (f *fakeActivityRepo) actions() []entity.ActivityAction {
	f.mu.Lock()
	defer f.mu.Unlock()
	actions := make([]entity.ActivityAction, 0, len(f.logs))
	for _, log := range f.logs {
		actions = append(actions, log.Action)
	}
	return actions
}

func (f *fakeActivityRepo) last() *entity.ActivityLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.logs) == 0 {
		return nil
	}
	copied := *f.logs[len(f.logs)-1]
	return &copied
}

type sentEmail struct {
	email   string
	code    string
	purpose entity.CodePurpose
}

type captureSender struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (s *captureSender) SendVerificationCode(ctx context.Context, email, code string, purpose entity.CodePurpose) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentEmail{email: email, code: code, purpose: purpose})
	return nil
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
