package repository

import (
	"context"
	"time"

	"stroymonitor/internal/entity"

	"gorm.io/gorm"
)

type VerificationCodeRepository interface {
	Create(ctx context.Context, code *entity.VerificationCode) error
	// Consume marks the most recent matching unused, unexpired code as used
	// and reports whether a row was claimed. The update is conditional on
	// used = false, so of any number of concurrent callers at most one
	// receives true.
	Consume(ctx context.Context, email, code string, purpose entity.CodePurpose, now time.Time) (bool, error)
}

type verificationCodeRepository struct {
	db *gorm.DB
}

func NewVerificationCodeRepository(db *gorm.DB) VerificationCodeRepository {
	return &verificationCodeRepository{db: db}
}

func (r *verificationCodeRepository) Create(ctx context.Context, c *entity.VerificationCode) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *verificationCodeRepository) Consume(
	ctx context.Context,
	email, code string,
	purpose entity.CodePurpose,
	now time.Time,
) (bool, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE verification_codes SET used = ?
		WHERE id = (
			SELECT id FROM verification_codes
			WHERE email = ? AND code = ? AND purpose = ?
			  AND used = ? AND expires_at > ?
			ORDER BY created_at DESC
			LIMIT 1
		) AND used = ?`,
		true, email, code, purpose, false, now, false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
