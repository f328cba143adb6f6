package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one variant line in a cart. The unique index on cart and
// variant backs the merge-on-add behavior.
type CartItem struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CartID           uuid.UUID       `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:idx_cart_items_cart_variant"`
	ProductVariantID uuid.UUID       `gorm:"column:product_variant_id;type:uuid;not null;uniqueIndex:idx_cart_items_cart_variant"`
	ProductVariant   *ProductVariant `gorm:"foreignKey:ProductVariantID"`
	Quantity         int             `gorm:"column:quantity;not null;default:1"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
