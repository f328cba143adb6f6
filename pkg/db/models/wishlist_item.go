package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem pins a product variant for a customer. The pairs form a set;
// toggling an existing pair removes the row outright.
type WishlistItem struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CustomerProfileID uuid.UUID       `gorm:"column:customer_profile_id;type:uuid;not null;uniqueIndex:idx_wishlist_customer_variant"`
	ProductVariantID  uuid.UUID       `gorm:"column:product_variant_id;type:uuid;not null;uniqueIndex:idx_wishlist_customer_variant"`
	ProductVariant    *ProductVariant `gorm:"foreignKey:ProductVariantID"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
}
