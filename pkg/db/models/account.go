package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stridekart/backend/pkg/enums"
)

// Account is the canonical identity row. Role-specific data hangs off the 1:1
// profile tables rather than subclassing.
type Account struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Email        string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash *string    `gorm:"column:password_hash"`
	FirstName    string     `gorm:"column:first_name;not null"`
	LastName     string     `gorm:"column:last_name;not null"`
	Role         enums.Role `gorm:"column:role;not null"`
	IsSuperuser  bool       `gorm:"column:is_superuser;not null;default:false"`
	IsDeleted    bool       `gorm:"column:is_deleted;not null;default:false"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
