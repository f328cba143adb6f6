package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerProfile extends an Account with customer-only fields. ExternalUID is
// the stable id assigned by the identity provider; local-credential accounts
// leave it null.
type CustomerProfile struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	AccountID   uuid.UUID `gorm:"column:account_id;type:uuid;not null;uniqueIndex"`
	Account     *Account  `gorm:"foreignKey:AccountID"`
	Phone       string    `gorm:"column:phone;not null;uniqueIndex"`
	ExternalUID *string   `gorm:"column:external_uid;uniqueIndex"`
	IsBlocked   bool      `gorm:"column:is_blocked;not null;default:false"`
	IsDeleted   bool      `gorm:"column:is_deleted;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
