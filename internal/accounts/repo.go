package accounts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
)

// Repository exposes account and profile persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an accounts repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateAccount inserts a new account and returns the persisted model.
func (r *Repository) CreateAccount(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// FindAccountByEmail retrieves the non-deleted account matching the email.
func (r *Repository) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := db.Active(r.db.WithContext(ctx)).
		Where("email = ?", email).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// FindAccountByID loads a non-deleted account by its UUID.
func (r *Repository) FindAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := db.Active(r.db.WithContext(ctx)).
		First(&account, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateLastLogin refreshes the account's last_login_at timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

// SoftDeleteAccount marks the account deleted. Profiles are handled by the
// service so the flags flip in one transaction.
func (r *Repository) SoftDeleteAccount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		UpdateColumn("is_deleted", true).Error
}

// CreateCustomerProfile inserts the customer profile row.
func (r *Repository) CreateCustomerProfile(ctx context.Context, profile *models.CustomerProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// FindCustomerProfileByAccount loads the customer profile for an account,
// deleted or not; callers decide what the flags mean.
func (r *Repository) FindCustomerProfileByAccount(ctx context.Context, accountID uuid.UUID) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindCustomerProfileByExternalUID loads the profile holding the provider uid.
func (r *Repository) FindCustomerProfileByExternalUID(ctx context.Context, uid string) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	err := r.db.WithContext(ctx).
		Where("external_uid = ?", uid).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindCustomerProfileByID loads a customer profile by its UUID.
func (r *Repository) FindCustomerProfileByID(ctx context.Context, id uuid.UUID) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// CustomerPhoneExists reports whether any profile already claims the phone.
func (r *Repository) CustomerPhoneExists(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CustomerProfile{}).
		Where("phone = ?", phone).
		Count(&count).Error
	return count > 0, err
}

// CreateVendorProfile inserts the vendor profile row.
func (r *Repository) CreateVendorProfile(ctx context.Context, profile *models.VendorProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// FindVendorProfileByAccount loads the vendor profile for an account.
func (r *Repository) FindVendorProfileByAccount(ctx context.Context, accountID uuid.UUID) (*models.VendorProfile, error) {
	var profile models.VendorProfile
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindVendorProfileByID loads a vendor profile by its UUID.
func (r *Repository) FindVendorProfileByID(ctx context.Context, id uuid.UUID) (*models.VendorProfile, error) {
	var profile models.VendorProfile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ShopNameExists reports whether any vendor already claims the shop name,
// matched case-insensitively.
func (r *Repository) ShopNameExists(ctx context.Context, shopName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.VendorProfile{}).
		Where("LOWER(shop_name) = LOWER(?)", shopName).
		Count(&count).Error
	return count > 0, err
}

// CreateBankDetail inserts the vendor's bank detail row.
func (r *Repository) CreateBankDetail(ctx context.Context, detail *models.BankDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

// SetCustomerBlocked flips the blocked flag on a customer profile.
func (r *Repository) SetCustomerBlocked(ctx context.Context, profileID uuid.UUID, blocked bool) error {
	return r.db.WithContext(ctx).
		Model(&models.CustomerProfile{}).
		Where("id = ?", profileID).
		UpdateColumn("is_blocked", blocked).Error
}

// SetVendorBlocked flips the blocked flag on a vendor profile.
func (r *Repository) SetVendorBlocked(ctx context.Context, profileID uuid.UUID, blocked bool) error {
	return r.db.WithContext(ctx).
		Model(&models.VendorProfile{}).
		Where("id = ?", profileID).
		UpdateColumn("is_blocked", blocked).Error
}

// SoftDeleteProfilesForAccount marks both role profiles deleted for the account.
func (r *Repository) SoftDeleteProfilesForAccount(ctx context.Context, accountID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Model(&models.CustomerProfile{}).
		Where("account_id = ?", accountID).
		UpdateColumn("is_deleted", true).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&models.VendorProfile{}).
		Where("account_id = ?", accountID).
		UpdateColumn("is_deleted", true).Error
}

// CreateShippingAddress inserts an address owned by the customer.
func (r *Repository) CreateShippingAddress(ctx context.Context, address *models.ShippingAddress) error {
	return r.db.WithContext(ctx).Create(address).Error
}

// ListShippingAddresses returns the customer's active addresses.
func (r *Repository) ListShippingAddresses(ctx context.Context, customerProfileID uuid.UUID) ([]models.ShippingAddress, error) {
	var addresses []models.ShippingAddress
	err := db.Active(r.db.WithContext(ctx)).
		Where("customer_profile_id = ?", customerProfileID).
		Order("created_at DESC").
		Find(&addresses).Error
	return addresses, err
}

// FindShippingAddress loads one active address scoped to its owner.
func (r *Repository) FindShippingAddress(ctx context.Context, customerProfileID, addressID uuid.UUID) (*models.ShippingAddress, error) {
	var address models.ShippingAddress
	err := db.Active(r.db.WithContext(ctx)).
		Where("customer_profile_id = ? AND id = ?", customerProfileID, addressID).
		First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// SoftDeleteShippingAddress marks the owner-scoped address deleted.
func (r *Repository) SoftDeleteShippingAddress(ctx context.Context, customerProfileID, addressID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.ShippingAddress{}).
		Where("customer_profile_id = ? AND id = ? AND is_deleted = ?", customerProfileID, addressID, false).
		UpdateColumn("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
