package models

import (
	"time"

	"github.com/google/uuid"
)

// BankDetail holds payout coordinates for a vendor. At most one per profile.
type BankDetail struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	VendorProfileID uuid.UUID `gorm:"column:vendor_profile_id;type:uuid;not null;uniqueIndex"`
	AccountNumber   string    `gorm:"column:account_number;not null"`
	IFSCCode        string    `gorm:"column:ifsc_code;not null"`
	BeneficiaryName string    `gorm:"column:beneficiary_name;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}
