package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
)

// Repository exposes cart and wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindCartByCustomer loads the customer's cart with every line and the full
// variant chain. Soft-deleted variants load too; the service marks those
// lines unavailable instead of dropping them silently.
func (r *Repository) FindCartByCustomer(ctx context.Context, customerProfileID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Where("customer_profile_id = ?", customerProfileID).
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("cart_items.created_at ASC")
		}).
		Preload("Items.ProductVariant").
		Preload("Items.ProductVariant.Size").
		Preload("Items.ProductVariant.Color").
		Preload("Items.ProductVariant.Product").
		Preload("Items.ProductVariant.Product.VendorProfile").
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// CreateCart inserts an empty cart for the customer.
func (r *Repository) CreateCart(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

// FindPurchasableVariant loads a variant that can actually be bought: the
// variant and its product are active and the owning vendor is visible.
func (r *Repository) FindPurchasableVariant(ctx context.Context, variantID uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = product_variants.product_id").
		Joins("JOIN vendor_profiles ON vendor_profiles.id = products.vendor_profile_id").
		Scopes(
			db.ActiveIn("product_variants"),
			db.ActiveIn("products"),
			db.Visible("vendor_profiles"),
		).
		Where("product_variants.id = ?", variantID).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// FindCartItemForVariant loads the line holding the variant, if any.
func (r *Repository) FindCartItemForVariant(ctx context.Context, cartID, variantID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_variant_id = ?", cartID, variantID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateCartItem inserts a new cart line.
func (r *Repository) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// SetCartItemQuantity updates one line's quantity, scoped to its cart.
func (r *Repository) SetCartItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		UpdateColumn("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCartItem removes the line outright, scoped to its cart. Cart lines
// are working state, not history, so this is a hard delete.
func (r *Repository) DeleteCartItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteWishlistPair removes the (customer, variant) pair and reports
// whether a row was there to remove.
func (r *Repository) DeleteWishlistPair(ctx context.Context, customerProfileID, variantID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("customer_profile_id = ? AND product_variant_id = ?", customerProfileID, variantID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CreateWishlistItem inserts the (customer, variant) pair.
func (r *Repository) CreateWishlistItem(ctx context.Context, item *models.WishlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// ListWishlist returns the customer's pins with the variant chain loaded,
// newest first.
func (r *Repository) ListWishlist(ctx context.Context, customerProfileID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).
		Where("customer_profile_id = ?", customerProfileID).
		Preload("ProductVariant").
		Preload("ProductVariant.Size").
		Preload("ProductVariant.Color").
		Preload("ProductVariant.Product").
		Preload("ProductVariant.Product.VendorProfile").
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}
