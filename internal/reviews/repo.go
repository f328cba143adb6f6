package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
)

// Repository wraps review persistence. Pass a transaction handle via
// NewRepository to run inside db.WithTx.
type Repository struct {
	db *gorm.DB
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

// FindVisibleProduct loads a product a storefront customer can see. Products
// of blocked or deleted vendors cannot be reviewed.
func (r *Repository) FindVisibleProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Joins("JOIN vendor_profiles ON vendor_profiles.id = products.vendor_profile_id").
		Scopes(db.ActiveIn("products"), db.Visible("vendor_profiles")).
		First(&product, "products.id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// HasActiveReview reports whether the customer already holds a non-deleted
// review for the product.
func (r *Repository) HasActiveReview(ctx context.Context, productID, customerProfileID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Scopes(db.Active).
		Where("product_id = ? AND customer_profile_id = ?", productID, customerProfileID).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateReview(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *Repository) CreateReviewMedia(ctx context.Context, media *models.ReviewMedia) error {
	return r.db.WithContext(ctx).Create(media).Error
}

// ListProductReviews returns the product's active reviews, newest first,
// with media and the reviewing customer attached.
func (r *Repository) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Scopes(db.Active).
		Where("product_id = ?", productID).
		Preload("Media").
		Preload("CustomerProfile").
		Preload("CustomerProfile.Account").
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// FindReviewForCustomer loads one active review scoped to its author.
func (r *Repository) FindReviewForCustomer(ctx context.Context, customerProfileID, reviewID uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Scopes(db.Active).
		Where("customer_profile_id = ?", customerProfileID).
		First(&review, "id = ?", reviewID).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// SoftDeleteReview flags the author's review deleted, freeing the slot for
// a replacement.
func (r *Repository) SoftDeleteReview(ctx context.Context, customerProfileID, reviewID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Scopes(db.Active).
		Where("id = ? AND customer_profile_id = ?", reviewID, customerProfileID).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
