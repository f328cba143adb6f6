package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment records the gateway outcome for an order. At most one payment row
// per order; the gateway identifiers are stored as opaque strings.
type Payment struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"column:order_id;type:uuid;not null;uniqueIndex"`
	Amount           decimal.Decimal `gorm:"column:amount;type:numeric(10,2);not null"`
	GatewayOrderID   string          `gorm:"column:gateway_order_id"`
	GatewayPaymentID string          `gorm:"column:gateway_payment_id"`
	GatewaySignature string          `gorm:"column:gateway_signature"`
	Status           string          `gorm:"column:status;not null"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
