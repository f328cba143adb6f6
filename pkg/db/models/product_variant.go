package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductVariant is a purchasable size and color combination of a product
// with its own price and stock count.
type ProductVariant struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
	SizeID    uuid.UUID       `gorm:"column:size_id;type:uuid;not null"`
	Size      *Size           `gorm:"foreignKey:SizeID"`
	ColorID   uuid.UUID       `gorm:"column:color_id;type:uuid;not null"`
	Color     *Color          `gorm:"foreignKey:ColorID"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Stock     int             `gorm:"column:stock;not null;default:0"`
	IsDeleted bool            `gorm:"column:is_deleted;not null;default:false"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
