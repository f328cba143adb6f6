package models

import "github.com/google/uuid"

// ShippingAddress is a customer-owned delivery address.
type ShippingAddress struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CustomerProfileID uuid.UUID `gorm:"column:customer_profile_id;type:uuid;not null;index"`
	Line1             string    `gorm:"column:line1;not null"`
	Line2             string    `gorm:"column:line2"`
	City              string    `gorm:"column:city;not null"`
	State             string    `gorm:"column:state;not null"`
	PostalCode        string    `gorm:"column:postal_code;not null"`
	IsDeleted         bool      `gorm:"column:is_deleted;not null;default:false"`
}
