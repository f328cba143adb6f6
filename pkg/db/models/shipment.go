package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stridekart/backend/pkg/enums"
)

// Shipment tracks fulfillment of a single order item. Exactly one shipment
// exists per item, created in pending state at checkout.
type Shipment struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	OrderItemID     uuid.UUID            `gorm:"column:order_item_id;type:uuid;not null;uniqueIndex"`
	VendorProfileID uuid.UUID            `gorm:"column:vendor_profile_id;type:uuid;not null;index"`
	Status          enums.ShipmentStatus `gorm:"column:status;not null;default:pending"`
	CourierName     string               `gorm:"column:courier_name"`
	TrackingNumber  string               `gorm:"column:tracking_number"`
	ShippedAt       *time.Time           `gorm:"column:shipped_at"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
