package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stridekart/backend/pkg/db/models"
)

// AddItemRequest puts a variant in the cart. Quantity defaults to 1.
type AddItemRequest struct {
	ProductVariantID uuid.UUID `json:"product_variant_id" validate:"required"`
	Quantity         int       `json:"quantity,omitempty" validate:"omitempty,gte=1"`
}

// UpdateItemRequest changes one line's quantity.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// LineDTO is one cart line priced live. Lines whose variant, product or
// vendor went inactive stay visible but read unavailable and price at zero.
type LineDTO struct {
	ID          uuid.UUID       `json:"id"`
	VariantID   uuid.UUID       `json:"variant_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSlug string          `json:"product_slug"`
	SizeName    string          `json:"size_name,omitempty"`
	ColorName   string          `json:"color_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Stock       int             `json:"stock"`
	Available   bool            `json:"available"`
}

// CartDTO is the customer's cart with a subtotal over available lines.
type CartDTO struct {
	ID       uuid.UUID       `json:"id"`
	Items    []LineDTO       `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// WishlistLineDTO is one pinned variant.
type WishlistLineDTO struct {
	ID          uuid.UUID       `json:"id"`
	VariantID   uuid.UUID       `json:"variant_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSlug string          `json:"product_slug"`
	SizeName    string          `json:"size_name,omitempty"`
	ColorName   string          `json:"color_name,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Available   bool            `json:"available"`
}

// ToggleResponse reports the outcome of a wishlist toggle.
type ToggleResponse struct {
	Added bool `json:"added"`
}

// variantAvailable applies the full visibility chain: variant active,
// product active, vendor neither blocked nor deleted.
func variantAvailable(variant *models.ProductVariant) bool {
	if variant == nil || variant.IsDeleted {
		return false
	}
	product := variant.Product
	if product == nil || product.IsDeleted {
		return false
	}
	vendor := product.VendorProfile
	if vendor == nil || vendor.IsBlocked || vendor.IsDeleted {
		return false
	}
	return true
}

func lineFromItem(item *models.CartItem) LineDTO {
	line := LineDTO{
		ID:        item.ID,
		VariantID: item.ProductVariantID,
		Quantity:  item.Quantity,
		Available: variantAvailable(item.ProductVariant),
	}
	if variant := item.ProductVariant; variant != nil {
		line.Stock = variant.Stock
		if variant.Size != nil {
			line.SizeName = variant.Size.Name
		}
		if variant.Color != nil {
			line.ColorName = variant.Color.Name
		}
		if product := variant.Product; product != nil {
			line.ProductID = product.ID
			line.ProductName = product.Name
			line.ProductSlug = product.Slug
		}
		if line.Available {
			line.UnitPrice = variant.Price
			line.LineTotal = variant.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		}
	}
	return line
}

func wishlistLineFromItem(item *models.WishlistItem) WishlistLineDTO {
	line := WishlistLineDTO{
		ID:        item.ID,
		VariantID: item.ProductVariantID,
		Available: variantAvailable(item.ProductVariant),
	}
	if variant := item.ProductVariant; variant != nil {
		line.Price = variant.Price
		if variant.Size != nil {
			line.SizeName = variant.Size.Name
		}
		if variant.Color != nil {
			line.ColorName = variant.Color.Name
		}
		if product := variant.Product; product != nil {
			line.ProductID = product.ID
			line.ProductName = product.Name
			line.ProductSlug = product.Slug
		}
	}
	return line
}
