package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
	"github.com/stridekart/backend/pkg/pagination"
)

// Repository exposes catalog persistence: categories, shared attributes,
// products, variants and attribute requests.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateCategory inserts a category row.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// FindCategoryByID loads a non-deleted category.
func (r *Repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := db.Active(r.db.WithContext(ctx)).
		First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindCategoryBySlug loads a non-deleted category by its slug.
func (r *Repository) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := db.Active(r.db.WithContext(ctx)).
		Where("slug = ?", slug).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CategoryNameExists reports whether an active category already claims the
// name, matched case-insensitively. exclude skips one row on updates.
func (r *Repository) CategoryNameExists(ctx context.Context, name string, exclude *uuid.UUID) (bool, error) {
	q := db.Active(r.db.WithContext(ctx)).
		Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?)", name)
	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

// ListCategories returns the active categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := db.Active(r.db.WithContext(ctx)).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

// SaveCategory persists all fields of an existing category row.
func (r *Repository) SaveCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// SoftDeleteCategory marks the category deleted.
func (r *Repository) SoftDeleteCategory(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ? AND is_deleted = ?", id, false).
		UpdateColumn("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateSize inserts a size row.
func (r *Repository) CreateSize(ctx context.Context, size *models.Size) error {
	return r.db.WithContext(ctx).Create(size).Error
}

// FindSizeByID loads a size row.
func (r *Repository) FindSizeByID(ctx context.Context, id uuid.UUID) (*models.Size, error) {
	var size models.Size
	err := r.db.WithContext(ctx).First(&size, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &size, nil
}

// ListSizes returns every size ordered by name.
func (r *Repository) ListSizes(ctx context.Context) ([]models.Size, error) {
	var sizes []models.Size
	err := r.db.WithContext(ctx).Order("name ASC").Find(&sizes).Error
	return sizes, err
}

// SaveSize persists all fields of an existing size row.
func (r *Repository) SaveSize(ctx context.Context, size *models.Size) error {
	return r.db.WithContext(ctx).Save(size).Error
}

// DeleteSize removes the size row outright. Callers must run the in-use
// check first; sizes are reference data and carry no soft-delete flag.
func (r *Repository) DeleteSize(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Size{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountVariantsUsingSize counts variant rows referencing the size,
// soft-deleted variants included since they still hold the foreign key.
func (r *Repository) CountVariantsUsingSize(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("size_id = ?", id).
		Count(&count).Error
	return count, err
}

// CreateColor inserts a color row.
func (r *Repository) CreateColor(ctx context.Context, color *models.Color) error {
	return r.db.WithContext(ctx).Create(color).Error
}

// FindColorByID loads a color row.
func (r *Repository) FindColorByID(ctx context.Context, id uuid.UUID) (*models.Color, error) {
	var color models.Color
	err := r.db.WithContext(ctx).First(&color, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &color, nil
}

// ListColors returns every color ordered by name.
func (r *Repository) ListColors(ctx context.Context) ([]models.Color, error) {
	var colors []models.Color
	err := r.db.WithContext(ctx).Order("name ASC").Find(&colors).Error
	return colors, err
}

// SaveColor persists all fields of an existing color row.
func (r *Repository) SaveColor(ctx context.Context, color *models.Color) error {
	return r.db.WithContext(ctx).Save(color).Error
}

// DeleteColor removes the color row outright after the in-use check.
func (r *Repository) DeleteColor(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Color{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountVariantsUsingColor counts variant rows referencing the color.
func (r *Repository) CountVariantsUsingColor(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("color_id = ?", id).
		Count(&count).Error
	return count, err
}

// CreateProduct inserts a product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindProductByID loads a non-deleted product with its active variants.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := db.Active(r.db.WithContext(ctx)).
		Preload("Variants", activeVariants).
		Preload("Variants.Size").
		Preload("Variants.Color").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// SaveProduct persists all fields of an existing product row.
func (r *Repository) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// SoftDeleteProduct marks the product deleted.
func (r *Repository) SoftDeleteProduct(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND is_deleted = ?", id, false).
		UpdateColumn("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetProductTrending flips the storefront trending flag.
func (r *Repository) SetProductTrending(ctx context.Context, id uuid.UUID, trending bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND is_deleted = ?", id, false).
		UpdateColumn("is_trending", trending)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListVendorProducts returns the vendor's active products, newest first.
func (r *Repository) ListVendorProducts(ctx context.Context, vendorProfileID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := db.Active(r.db.WithContext(ctx)).
		Where("vendor_profile_id = ?", vendorProfileID).
		Preload("Variants", activeVariants).
		Preload("Variants.Size").
		Preload("Variants.Color").
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

// ProductSort orders storefront listings.
type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
)

// ProductFilter narrows the storefront listing. Variant-level criteria
// (size, color, price range) match products holding at least one active
// variant satisfying all of them.
type ProductFilter struct {
	CategoryID *uuid.UUID
	NameQuery  string
	Gender     *enums.Gender
	SizeID     *uuid.UUID
	ColorID    *uuid.UUID
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	Trending   *bool
	Sort       ProductSort
	Limit      int
	Cursor     *pagination.Cursor
}

const minActivePriceExpr = "(SELECT MIN(pv.price) FROM product_variants pv WHERE pv.product_id = products.id AND pv.is_deleted = false)"

// ListVisibleProducts runs the storefront query: active products of visible
// vendors matching the filter, with active variants preloaded.
func (r *Repository) ListVisibleProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN vendor_profiles ON vendor_profiles.id = products.vendor_profile_id").
		Scopes(db.ActiveIn("products"), db.Visible("vendor_profiles"))

	if filter.CategoryID != nil {
		q = q.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.NameQuery != "" {
		q = q.Where("LOWER(products.name) LIKE LOWER(?)", "%"+filter.NameQuery+"%")
	}
	if filter.Gender != nil {
		q = q.Where("products.gender = ?", *filter.Gender)
	}
	if filter.Trending != nil {
		q = q.Where("products.is_trending = ?", *filter.Trending)
	}

	variantConds := "pv.product_id = products.id AND pv.is_deleted = ?"
	variantArgs := []any{false}
	if filter.SizeID != nil {
		variantConds += " AND pv.size_id = ?"
		variantArgs = append(variantArgs, *filter.SizeID)
	}
	if filter.ColorID != nil {
		variantConds += " AND pv.color_id = ?"
		variantArgs = append(variantArgs, *filter.ColorID)
	}
	if filter.PriceMin != nil {
		variantConds += " AND pv.price >= ?"
		variantArgs = append(variantArgs, *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		variantConds += " AND pv.price <= ?"
		variantArgs = append(variantArgs, *filter.PriceMax)
	}
	if len(variantArgs) > 1 {
		q = q.Where("EXISTS (SELECT 1 FROM product_variants pv WHERE "+variantConds+")", variantArgs...)
	}

	switch filter.Sort {
	case SortPriceAsc:
		q = q.Order(minActivePriceExpr + " ASC")
	case SortPriceDesc:
		q = q.Order(minActivePriceExpr + " DESC")
	default:
		if filter.Cursor != nil {
			q = q.Where(
				"products.created_at < ? OR (products.created_at = ? AND products.id < ?)",
				filter.Cursor.CreatedAt, filter.Cursor.CreatedAt, filter.Cursor.ID,
			)
		}
		q = q.Order("products.created_at DESC, products.id DESC")
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var products []models.Product
	err := q.
		Preload("Variants", activeVariants).
		Preload("Variants.Size").
		Preload("Variants.Color").
		Find(&products).Error
	return products, err
}

// FindVisibleProductBySlug loads a storefront product: active, owned by a
// visible vendor, with active variants preloaded.
func (r *Repository) FindVisibleProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Joins("JOIN vendor_profiles ON vendor_profiles.id = products.vendor_profile_id").
		Scopes(db.ActiveIn("products"), db.Visible("vendor_profiles")).
		Where("products.slug = ?", slug).
		Preload("Variants", activeVariants).
		Preload("Variants.Size").
		Preload("Variants.Color").
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func activeVariants(tx *gorm.DB) *gorm.DB {
	return tx.Where("product_variants.is_deleted = ?", false)
}

// CreateVariant inserts a variant row.
func (r *Repository) CreateVariant(ctx context.Context, variant *models.ProductVariant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

// FindVariantByID loads a non-deleted variant with its parent product.
func (r *Repository) FindVariantByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := db.Active(r.db.WithContext(ctx)).
		Preload("Product").
		Preload("Size").
		Preload("Color").
		First(&variant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// SaveVariant persists all fields of an existing variant row.
func (r *Repository) SaveVariant(ctx context.Context, variant *models.ProductVariant) error {
	return r.db.WithContext(ctx).Save(variant).Error
}

// SoftDeleteVariant marks the variant deleted.
func (r *Repository) SoftDeleteVariant(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ? AND is_deleted = ?", id, false).
		UpdateColumn("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateAttributeRequest inserts a vendor attribute request.
func (r *Repository) CreateAttributeRequest(ctx context.Context, request *models.AttributeRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// FindAttributeRequestByID loads one attribute request.
func (r *Repository) FindAttributeRequestByID(ctx context.Context, id uuid.UUID) (*models.AttributeRequest, error) {
	var request models.AttributeRequest
	err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListAttributeRequests returns requests, optionally narrowed by status,
// newest first.
func (r *Repository) ListAttributeRequests(ctx context.Context, status *enums.AttributeRequestStatus) ([]models.AttributeRequest, error) {
	q := r.db.WithContext(ctx).Model(&models.AttributeRequest{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var requests []models.AttributeRequest
	err := q.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// ListVendorAttributeRequests returns one vendor's requests, newest first.
func (r *Repository) ListVendorAttributeRequests(ctx context.Context, vendorProfileID uuid.UUID) ([]models.AttributeRequest, error) {
	var requests []models.AttributeRequest
	err := r.db.WithContext(ctx).
		Where("vendor_profile_id = ?", vendorProfileID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// SaveAttributeRequest persists all fields of an existing request row.
func (r *Repository) SaveAttributeRequest(ctx context.Context, request *models.AttributeRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}
