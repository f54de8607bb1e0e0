package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the canonical identity entity. Every user references exactly
// one role.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string     `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	FirstName    string     `gorm:"column:first_name;not null"`
	LastName     string     `gorm:"column:last_name;not null"`
	PhoneNumber  *string    `gorm:"column:phone_number"`
	RoleID       uuid.UUID  `gorm:"type:uuid;column:role_id;not null"`
	Role         *Role      `gorm:"foreignKey:RoleID"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
