package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stridekart/backend/pkg/enums"
)

// AttributeRequest is a vendor's ask for a new shared attribute value
// (category, size or color). Approval creates the attribute; either way the
// request keeps its terminal status for the audit trail.
type AttributeRequest struct {
	ID              uuid.UUID                    `gorm:"column:id;type:uuid;primaryKey"`
	VendorProfileID uuid.UUID                    `gorm:"column:vendor_profile_id;type:uuid;not null;index"`
	VendorProfile   *VendorProfile               `gorm:"foreignKey:VendorProfileID"`
	AttributeType   enums.AttributeType          `gorm:"column:attribute_type;not null"`
	Value           string                       `gorm:"column:value;not null"`
	Status          enums.AttributeRequestStatus `gorm:"column:status;not null;default:pending"`
	DecidedAt       *time.Time                   `gorm:"column:decided_at"`
	CreatedAt       time.Time                    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time                    `gorm:"column:updated_at;autoUpdateTime"`
}
