package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stridekart/backend/api/responses"
	"github.com/stridekart/backend/internal/catalog"
	"github.com/stridekart/backend/internal/reviews"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
	"github.com/stridekart/backend/pkg/logger"
)

// ShopListProducts serves the public storefront listing with filters, search
// and cursor pagination.
func ShopListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query, err := parseListProductsQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListProducts(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

func parseListProductsQuery(r *http.Request) (catalog.ListProductsQuery, error) {
	values := r.URL.Query()
	query := catalog.ListProductsQuery{
		CategorySlug: strings.TrimSpace(values.Get("category")),
		Query:        strings.TrimSpace(values.Get("q")),
		Gender:       strings.TrimSpace(values.Get("gender")),
		Sort:         strings.TrimSpace(values.Get("sort")),
		Cursor:       strings.TrimSpace(values.Get("cursor")),
	}

	var err error
	if query.SizeID, err = queryUUID(r, "size_id"); err != nil {
		return catalog.ListProductsQuery{}, err
	}
	if query.ColorID, err = queryUUID(r, "color_id"); err != nil {
		return catalog.ListProductsQuery{}, err
	}
	if query.PriceMin, err = queryDecimal(r, "price_min"); err != nil {
		return catalog.ListProductsQuery{}, err
	}
	if query.PriceMax, err = queryDecimal(r, "price_max"); err != nil {
		return catalog.ListProductsQuery{}, err
	}
	if query.Trending, err = queryBool(r, "trending"); err != nil {
		return catalog.ListProductsQuery{}, err
	}
	if query.Limit, err = queryInt(r, "limit"); err != nil {
		return catalog.ListProductsQuery{}, err
	}
	return query, nil
}

// ShopGetProduct serves a single product page by slug.
func ShopGetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product slug required"))
			return
		}

		product, err := svc.GetProduct(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func ShopListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}

func ShopListSizes(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		sizes, err := svc.ListSizes(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sizes)
	}
}

func ShopListColors(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		colors, err := svc.ListColors(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, colors)
	}
}

// ShopListProductReviews serves the public review feed for a product.
func ShopListProductReviews(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "review service unavailable"))
			return
		}

		productID, err := uuidParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		feed, err := svc.ListProductReviews(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, feed)
	}
}
