package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem freezes one cart line at checkout. Price is the unit price at
// purchase time and never tracks later variant edits.
type OrderItem struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductVariantID uuid.UUID       `gorm:"column:product_variant_id;type:uuid;not null"`
	ProductVariant   *ProductVariant `gorm:"foreignKey:ProductVariantID"`
	Quantity         int             `gorm:"column:quantity;not null"`
	Price            decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Shipment         *Shipment       `gorm:"foreignKey:OrderItemID"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
}
