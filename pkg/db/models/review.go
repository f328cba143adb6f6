package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer rating for a product. A customer may hold at most
// one non-deleted review per product; soft-deleting frees the slot for a
// replacement, enforced by a partial unique index in the migrations.
type Review struct {
	ID                uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	ProductID         uuid.UUID        `gorm:"column:product_id;type:uuid;not null;index"`
	CustomerProfileID uuid.UUID        `gorm:"column:customer_profile_id;type:uuid;not null"`
	CustomerProfile   *CustomerProfile `gorm:"foreignKey:CustomerProfileID"`
	Rating            int              `gorm:"column:rating;not null"`
	Comment           string           `gorm:"column:comment"`
	IsDeleted         bool             `gorm:"column:is_deleted;not null;default:false"`
	Media             []ReviewMedia    `gorm:"foreignKey:ReviewID"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
