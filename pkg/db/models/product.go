package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stridekart/backend/pkg/enums"
)

// Product is a vendor listing. Price and stock live on its variants; the
// product row carries the identity, taxonomy and visibility flags.
type Product struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	VendorProfileID uuid.UUID        `gorm:"column:vendor_profile_id;type:uuid;not null;index"`
	VendorProfile   *VendorProfile   `gorm:"foreignKey:VendorProfileID"`
	CategoryID      *uuid.UUID       `gorm:"column:category_id;type:uuid"`
	Category        *Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Name            string           `gorm:"column:name;not null"`
	Slug            string           `gorm:"column:slug;not null;uniqueIndex"`
	Description     string           `gorm:"column:description"`
	Gender          enums.Gender     `gorm:"column:gender;not null;default:unisex"`
	ImagePath       string           `gorm:"column:image_path"`
	IsTrending      bool             `gorm:"column:is_trending;not null;default:false"`
	IsDeleted       bool             `gorm:"column:is_deleted;not null;default:false"`
	Variants        []ProductVariant `gorm:"foreignKey:ProductID"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
