package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
)

// CategoryRequest creates or updates a catalog category.
type CategoryRequest struct {
	Name        string     `json:"name" validate:"required"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Description string     `json:"description,omitempty"`
	ImagePath   string     `json:"image_path,omitempty"`
}

// CategoryDTO is the public projection of a category.
type CategoryDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Description string     `json:"description,omitempty"`
	ImagePath   string     `json:"image_path,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FromCategoryModel converts the persisted category row.
func FromCategoryModel(category *models.Category) CategoryDTO {
	return CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		ParentID:    category.ParentID,
		Description: category.Description,
		ImagePath:   category.ImagePath,
		CreatedAt:   category.CreatedAt,
	}
}

// SizeRequest creates or renames a size.
type SizeRequest struct {
	Name string `json:"name" validate:"required"`
}

// SizeDTO is the public projection of a size.
type SizeDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// FromSizeModel converts the persisted size row.
func FromSizeModel(size *models.Size) SizeDTO {
	return SizeDTO{ID: size.ID, Name: size.Name}
}

// ColorRequest creates or updates a color.
type ColorRequest struct {
	Name    string `json:"name" validate:"required"`
	HexCode string `json:"hex_code,omitempty"`
}

// ColorDTO is the public projection of a color.
type ColorDTO struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	HexCode string    `json:"hex_code,omitempty"`
}

// FromColorModel converts the persisted color row.
func FromColorModel(color *models.Color) ColorDTO {
	return ColorDTO{ID: color.ID, Name: color.Name, HexCode: color.HexCode}
}

// ProductRequest creates or updates a vendor product.
type ProductRequest struct {
	Name        string     `json:"name" validate:"required"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Description string     `json:"description,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	ImagePath   string     `json:"image_path,omitempty"`
}

// VariantRequest creates a purchasable variant under a product.
type VariantRequest struct {
	SizeID  uuid.UUID       `json:"size_id" validate:"required"`
	ColorID uuid.UUID       `json:"color_id" validate:"required"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock" validate:"gte=0"`
}

// VariantUpdateRequest changes a variant's price and stock. Size and color
// are fixed after creation; vendors add a new variant instead.
type VariantUpdateRequest struct {
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock" validate:"gte=0"`
}

// VariantDTO is the public projection of a variant.
type VariantDTO struct {
	ID        uuid.UUID       `json:"id"`
	SizeID    uuid.UUID       `json:"size_id"`
	SizeName  string          `json:"size_name,omitempty"`
	ColorID   uuid.UUID       `json:"color_id"`
	ColorName string          `json:"color_name,omitempty"`
	ColorHex  string          `json:"color_hex,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

// FromVariantModel converts the persisted variant row.
func FromVariantModel(variant *models.ProductVariant) VariantDTO {
	dto := VariantDTO{
		ID:      variant.ID,
		SizeID:  variant.SizeID,
		ColorID: variant.ColorID,
		Price:   variant.Price,
		Stock:   variant.Stock,
	}
	if variant.Size != nil {
		dto.SizeName = variant.Size.Name
	}
	if variant.Color != nil {
		dto.ColorName = variant.Color.Name
		dto.ColorHex = variant.Color.HexCode
	}
	return dto
}

// VariantSummary aggregates availability over a product's active variants.
// A product whose variants are all soft-deleted reads as unavailable with a
// nil minimum price, never as an error.
type VariantSummary struct {
	AvailableVariants int              `json:"available_variants"`
	MinPrice          *decimal.Decimal `json:"min_price,omitempty"`
	TotalStock        int              `json:"total_stock"`
}

// SummarizeVariants computes the availability aggregates, skipping
// soft-deleted rows even if the caller forgot to filter them.
func SummarizeVariants(variants []models.ProductVariant) VariantSummary {
	var summary VariantSummary
	for i := range variants {
		v := &variants[i]
		if v.IsDeleted {
			continue
		}
		summary.AvailableVariants++
		summary.TotalStock += v.Stock
		if summary.MinPrice == nil || v.Price.LessThan(*summary.MinPrice) {
			price := v.Price
			summary.MinPrice = &price
		}
	}
	return summary
}

// ProductDTO is the public projection of a product with its active variants.
type ProductDTO struct {
	ID              uuid.UUID      `json:"id"`
	VendorProfileID uuid.UUID      `json:"vendor_profile_id"`
	CategoryID      *uuid.UUID     `json:"category_id,omitempty"`
	Name            string         `json:"name"`
	Slug            string         `json:"slug"`
	Description     string         `json:"description,omitempty"`
	Gender          enums.Gender   `json:"gender"`
	ImagePath       string         `json:"image_path,omitempty"`
	IsTrending      bool           `json:"is_trending,omitempty"`
	Variants        []VariantDTO   `json:"variants"`
	Summary         VariantSummary `json:"summary"`
	CreatedAt       time.Time      `json:"created_at"`
}

// FromProductModel converts the persisted product row. Variants are assumed
// to be the preloaded active set.
func FromProductModel(product *models.Product) ProductDTO {
	variants := make([]VariantDTO, 0, len(product.Variants))
	for i := range product.Variants {
		if product.Variants[i].IsDeleted {
			continue
		}
		variants = append(variants, FromVariantModel(&product.Variants[i]))
	}
	return ProductDTO{
		ID:              product.ID,
		VendorProfileID: product.VendorProfileID,
		CategoryID:      product.CategoryID,
		Name:            product.Name,
		Slug:            product.Slug,
		Description:     product.Description,
		Gender:          product.Gender,
		ImagePath:       product.ImagePath,
		IsTrending:      product.IsTrending,
		Variants:        variants,
		Summary:         SummarizeVariants(product.Variants),
		CreatedAt:       product.CreatedAt,
	}
}

// ListProductsQuery narrows the storefront listing. IDs for size and color
// arrive resolved; the category arrives as its public slug.
type ListProductsQuery struct {
	CategorySlug string           `json:"category,omitempty"`
	Query        string           `json:"q,omitempty"`
	Gender       string           `json:"gender,omitempty"`
	SizeID       *uuid.UUID       `json:"size_id,omitempty"`
	ColorID      *uuid.UUID       `json:"color_id,omitempty"`
	PriceMin     *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax     *decimal.Decimal `json:"price_max,omitempty"`
	Trending     *bool            `json:"trending,omitempty"`
	Sort         string           `json:"sort,omitempty"`
	Limit        int              `json:"limit,omitempty"`
	Cursor       string           `json:"cursor,omitempty"`
}

// ProductListResponse pages the storefront listing. NextCursor is empty on
// the final page and for price-sorted listings.
type ProductListResponse struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// AttributeRequestInput is a vendor's ask for a new shared attribute value.
type AttributeRequestInput struct {
	AttributeType string `json:"attribute_type" validate:"required"`
	Value         string `json:"value" validate:"required"`
}

// AttributeRequestDTO is the public projection of an attribute request.
type AttributeRequestDTO struct {
	ID              uuid.UUID                    `json:"id"`
	VendorProfileID uuid.UUID                    `json:"vendor_profile_id"`
	AttributeType   enums.AttributeType          `json:"attribute_type"`
	Value           string                       `json:"value"`
	Status          enums.AttributeRequestStatus `json:"status"`
	DecidedAt       *time.Time                   `json:"decided_at,omitempty"`
	CreatedAt       time.Time                    `json:"created_at"`
}

// FromAttributeRequestModel converts the persisted request row.
func FromAttributeRequestModel(request *models.AttributeRequest) AttributeRequestDTO {
	return AttributeRequestDTO{
		ID:              request.ID,
		VendorProfileID: request.VendorProfileID,
		AttributeType:   request.AttributeType,
		Value:           request.Value,
		Status:          request.Status,
		DecidedAt:       request.DecidedAt,
		CreatedAt:       request.CreatedAt,
	}
}
