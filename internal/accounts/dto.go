package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
)

// RegisterCustomerRequest onboards a customer via the identity provider.
type RegisterCustomerRequest struct {
	IDToken   string `json:"id_token" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone" validate:"required,min=7,max=20"`
}

// RegisterVendorRequest onboards a vendor with local credentials.
type RegisterVendorRequest struct {
	Email           string             `json:"email" validate:"required,email"`
	Password        string             `json:"password" validate:"required,min=8"`
	FirstName       string             `json:"first_name" validate:"required"`
	LastName        string             `json:"last_name" validate:"required"`
	ShopName        string             `json:"shop_name" validate:"required"`
	ShopAddress     string             `json:"shop_address" validate:"required"`
	BusinessPhone   string             `json:"business_phone" validate:"required"`
	Description     string             `json:"description,omitempty"`
	TaxDocumentPath string             `json:"tax_document_path,omitempty"`
	IDDocumentPath  string             `json:"id_document_path,omitempty"`
	Bank            *BankDetailRequest `json:"bank,omitempty"`
}

// BankDetailRequest is the optional payout detail captured at onboarding.
type BankDetailRequest struct {
	AccountNumber   string `json:"account_number" validate:"required"`
	IFSCCode        string `json:"ifsc_code" validate:"required"`
	BeneficiaryName string `json:"beneficiary_name" validate:"required"`
}

// LoginRequest carries local credentials for admin and vendor sign-in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProviderLoginRequest carries the provider ID token for customer sign-in.
type ProviderLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// AccountDTO is the public projection of an account.
type AccountDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Role        enums.Role `json:"role"`
	IsSuperuser bool       `json:"is_superuser,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FromAccountModel converts the persisted account to its public projection.
func FromAccountModel(account *models.Account) AccountDTO {
	return AccountDTO{
		ID:          account.ID,
		Email:       account.Email,
		FirstName:   account.FirstName,
		LastName:    account.LastName,
		Role:        account.Role,
		IsSuperuser: account.IsSuperuser,
		LastLoginAt: account.LastLoginAt,
		CreatedAt:   account.CreatedAt,
	}
}

// LoginResponse returns the access token and the signed-in account.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	Account     AccountDTO `json:"account"`
}

// ShippingAddressRequest creates a customer address.
type ShippingAddressRequest struct {
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
}

// ShippingAddressDTO is the public projection of a shipping address.
type ShippingAddressDTO struct {
	ID         uuid.UUID `json:"id"`
	Line1      string    `json:"line1"`
	Line2      string    `json:"line2,omitempty"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
}

// FromShippingAddressModel converts the persisted address row.
func FromShippingAddressModel(address *models.ShippingAddress) ShippingAddressDTO {
	return ShippingAddressDTO{
		ID:         address.ID,
		Line1:      address.Line1,
		Line2:      address.Line2,
		City:       address.City,
		State:      address.State,
		PostalCode: address.PostalCode,
	}
}
