package models

import (
	"time"

	"github.com/google/uuid"
)

// VendorProfile extends an Account with shop-level fields. Compliance documents
// are stored by reference only.
type VendorProfile struct {
	ID               uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	AccountID        uuid.UUID   `gorm:"column:account_id;type:uuid;not null;uniqueIndex"`
	Account          *Account    `gorm:"foreignKey:AccountID"`
	ShopName         string      `gorm:"column:shop_name;not null;uniqueIndex"`
	ShopAddress      string      `gorm:"column:shop_address;not null"`
	BusinessPhone    string      `gorm:"column:business_phone;not null"`
	Description      *string     `gorm:"column:description"`
	TaxDocumentPath  string      `gorm:"column:tax_document_path"`
	IDDocumentPath   string      `gorm:"column:id_document_path"`
	IsBlocked        bool        `gorm:"column:is_blocked;not null;default:false"`
	IsDeleted        bool        `gorm:"column:is_deleted;not null;default:false"`
	BankDetail       *BankDetail `gorm:"foreignKey:VendorProfileID"`
	CreatedAt        time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
