package repository

import (
	"context"
	"errors"
	"time"

	"stroymonitor/internal/entity"

	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindValid(ctx context.Context, tokenHash string, now time.Time) (*entity.Session, error)
	Revoke(ctx context.Context, tokenHash string, now time.Time) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, s *entity.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepository) FindValid(ctx context.Context, tokenHash string, now time.Time) (*entity.Session, error) {
	var session entity.Session
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND expires_at > ?", tokenHash, now).
		First(&session).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

// Revoke rewinds the expiry of a still-valid session to now. Unknown or
// already-expired tokens match zero rows, which is a success: revocation
// is idempotent.
func (r *sessionRepository) Revoke(ctx context.Context, tokenHash string, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.Session{}).
		Where("token_hash = ? AND expires_at > ?", tokenHash, now).
		Update("expires_at", now).
		Error
}
