package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart holds a customer's open cart. One row per customer, created lazily
// on first access and emptied on checkout rather than deleted.
type Cart struct {
	ID                uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	CustomerProfileID uuid.UUID        `gorm:"column:customer_profile_id;type:uuid;not null;uniqueIndex"`
	CustomerProfile   *CustomerProfile `gorm:"foreignKey:CustomerProfileID"`
	Items             []CartItem       `gorm:"foreignKey:CartID"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
