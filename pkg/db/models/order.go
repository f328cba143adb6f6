package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the checkout record for one customer. Line totals are frozen on
// the items at checkout time; TotalAmount is their sum.
type Order struct {
	ID                uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	CustomerProfileID uuid.UUID        `gorm:"column:customer_profile_id;type:uuid;not null;index"`
	CustomerProfile   *CustomerProfile `gorm:"foreignKey:CustomerProfileID"`
	ShippingAddressID *uuid.UUID       `gorm:"column:shipping_address_id;type:uuid"`
	ShippingAddress   *ShippingAddress `gorm:"foreignKey:ShippingAddressID"`
	TotalAmount       decimal.Decimal  `gorm:"column:total_amount;type:numeric(10,2);not null"`
	IsDeleted         bool             `gorm:"column:is_deleted;not null;default:false"`
	Items             []OrderItem      `gorm:"foreignKey:OrderID"`
	Payment           *Payment         `gorm:"foreignKey:OrderID"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
