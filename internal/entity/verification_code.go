package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CodePurpose string

const (
	PurposeLogin         CodePurpose = "login"
	PurposePasswordReset CodePurpose = "password_reset"
)

// VerificationCode is a single-use second factor. The Used flag may
// transition false->true exactly once; consumption happens through a
// conditional update so concurrent attempts cannot both succeed.
type VerificationCode struct {
	ID      uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Email   string      `gorm:"type:varchar(255);not null;index"`
	Code    string      `gorm:"type:varchar(6);not null"`
	Purpose CodePurpose `gorm:"type:varchar(20);not null"`

	Used      bool `gorm:"not null;default:false"`
	ExpiresAt time.Time

	CreatedAt time.Time
}

func (v *VerificationCode) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
