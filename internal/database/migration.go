package database

import (
	"fmt"

	"stroymonitor/internal/entity"

	"gorm.io/gorm"
)

// AutoMigrate creates the four tables the authentication core persists to.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Session{},
		&entity.VerificationCode{},
		&entity.ActivityLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
