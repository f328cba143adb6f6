package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stridekart/backend/pkg/enums"
)

// Complaint is a customer support ticket, optionally tied to an order.
type Complaint struct {
	ID                uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	CustomerProfileID uuid.UUID             `gorm:"column:customer_profile_id;type:uuid;not null;index"`
	CustomerProfile   *CustomerProfile      `gorm:"foreignKey:CustomerProfileID"`
	OrderID           *uuid.UUID            `gorm:"column:order_id;type:uuid"`
	Subject           string                `gorm:"column:subject;not null"`
	Description       string                `gorm:"column:description;not null"`
	Status            enums.ComplaintStatus `gorm:"column:status;not null;default:open"`
	Resolution        string                `gorm:"column:resolution"`
	ResolvedAt        *time.Time            `gorm:"column:resolved_at"`
	CreatedAt         time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
