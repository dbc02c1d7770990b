package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the authenticated principal. Email is stored lower-cased.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex:uq_users_email;not null"`
	Password     string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(50);not null;default:'employee'"`
	ProfileImage string    `gorm:"type:varchar(512)"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
