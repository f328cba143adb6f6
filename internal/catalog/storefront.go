package catalog

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/enums"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
	"github.com/stridekart/backend/pkg/pagination"
)

// ListProducts runs the public storefront listing. Only active products of
// visible vendors appear; an unknown category slug yields an empty page
// rather than an error. Cursor pagination follows creation order, so it is
// only honored with the newest sort.
func (s *service) ListProducts(ctx context.Context, query ListProductsQuery) (*ProductListResponse, error) {
	filter := ProductFilter{
		NameQuery: strings.TrimSpace(query.Query),
		SizeID:    query.SizeID,
		ColorID:   query.ColorID,
		PriceMin:  query.PriceMin,
		PriceMax:  query.PriceMax,
		Trending:  query.Trending,
	}

	if query.PriceMin != nil && query.PriceMax != nil && query.PriceMin.GreaterThan(*query.PriceMax) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_min cannot exceed price_max")
	}

	if slugValue := strings.TrimSpace(query.CategorySlug); slugValue != "" {
		category, err := s.repo.FindCategoryBySlug(ctx, slugValue)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ProductListResponse{Products: []ProductDTO{}}, nil
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
		}
		filter.CategoryID = &category.ID
	}

	if query.Gender != "" {
		gender, err := enums.ParseGender(query.Gender)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid gender")
		}
		filter.Gender = &gender
	}

	switch query.Sort {
	case "", string(SortNewest):
		filter.Sort = SortNewest
	case string(SortPriceAsc):
		filter.Sort = SortPriceAsc
	case string(SortPriceDesc):
		filter.Sort = SortPriceDesc
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid sort, use newest, price_asc or price_desc")
	}

	if query.Cursor != "" {
		if filter.Sort != SortNewest {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cursor pagination requires the newest sort")
		}
		cursor, err := pagination.ParseCursor(query.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		filter.Cursor = cursor
	}

	limit := pagination.NormalizeLimit(query.Limit)
	filter.Limit = pagination.LimitWithBuffer(query.Limit)

	products, err := s.repo.ListVisibleProducts(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	response := &ProductListResponse{Products: make([]ProductDTO, 0, len(products))}
	hasMore := len(products) > limit
	if hasMore {
		products = products[:limit]
	}
	for i := range products {
		response.Products = append(response.Products, FromProductModel(&products[i]))
	}
	if hasMore && filter.Sort == SortNewest {
		last := products[len(products)-1]
		response.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return response, nil
}

// GetProduct loads one storefront product by slug. Products of blocked or
// deleted vendors read as not found, the cascade-hide policy.
func (s *service) GetProduct(ctx context.Context, slug string) (*ProductDTO, error) {
	product, err := s.repo.FindVisibleProductBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, classifyNotFound(err, "product not found")
	}
	dto := FromProductModel(product)
	return &dto, nil
}
