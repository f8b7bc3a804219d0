package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User is never hard-deleted; deactivation flips IsActive instead.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	FullName     string    `gorm:"type:varchar(255)"`
	Role         UserRole  `gorm:"type:varchar(20);default:'user';not null"`

	IsActive  bool `gorm:"default:true"`
	LastLogin *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Sessions []Session
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
