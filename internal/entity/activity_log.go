package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActivityAction string

const (
	ActionLoginSuccess           ActivityAction = "login_success"
	ActionLoginFailed            ActivityAction = "login_failed"
	ActionLoginFailedInvalidCode ActivityAction = "login_failed_invalid_code"
	ActionUserCreated            ActivityAction = "user_created"
	ActionUserUpdated            ActivityAction = "user_updated"
	ActionPasswordChanged        ActivityAction = "password_changed"
)

// ActivityLog is append-only. UserID is nullable: failed logins for
// unknown accounts are recorded with the submitted email only.
type ActivityLog struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	UserID *uuid.UUID `gorm:"type:uuid;index"`
	User   *User      `gorm:"constraint:OnDelete:SET NULL"`

	UserEmail string         `gorm:"type:varchar(255);not null"`
	Action    ActivityAction `gorm:"type:varchar(40);not null;index"`

	EntityType *string `gorm:"type:varchar(50)"`
	EntityID   *string `gorm:"type:varchar(64)"`

	OldValues datatypes.JSON
	NewValues datatypes.JSON

	IPAddress *string `gorm:"type:varchar(45)"`
	UserAgent *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"index"`
}

func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
