package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
	"github.com/stridekart/backend/pkg/slug"
)

// CreateProduct lists a new product for the vendor. Slug allocation runs in
// the insert transaction so two concurrent creates with the same name never
// commit the same suffix; the loser of the race recomputes and retries.
func (s *service) CreateProduct(ctx context.Context, vendorProfileID uuid.UUID, req ProductRequest) (*ProductDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	gender, err := parseGenderOrDefault(req.Gender)
	if err != nil {
		return nil, err
	}

	var created *models.Product
	for attempt := 0; attempt < uniqueRetries; attempt++ {
		err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
			repo := NewRepository(tx)

			if req.CategoryID != nil {
				if _, catErr := repo.FindCategoryByID(ctx, *req.CategoryID); catErr != nil {
					if errors.Is(catErr, gorm.ErrRecordNotFound) {
						return pkgerrors.Wrap(pkgerrors.CodeValidation, catErr, "category not found")
					}
					return pkgerrors.Wrap(pkgerrors.CodeInternal, catErr, "load category")
				}
			}

			productSlug, slugErr := slug.Unique(tx, "products", "slug", slug.Make(name), nil)
			if slugErr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, slugErr, "allocate product slug")
			}

			product := &models.Product{
				ID:              newID(),
				VendorProfileID: vendorProfileID,
				CategoryID:      req.CategoryID,
				Name:            name,
				Slug:            productSlug,
				Description:     strings.TrimSpace(req.Description),
				Gender:          gender,
				ImagePath:       req.ImagePath,
			}
			if createErr := repo.CreateProduct(ctx, product); createErr != nil {
				return createErr
			}
			created = product
			return nil
		})
		if err == nil || !db.IsUniqueViolation(err, "") {
			break
		}
	}
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}

	dto := FromProductModel(created)
	return &dto, nil
}

// UpdateProduct edits a product the actor owns. The slug never changes on
// rename so existing storefront links stay valid.
func (s *service) UpdateProduct(ctx context.Context, actor Actor, productID uuid.UUID, req ProductRequest) (*ProductDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	gender, err := parseGenderOrDefault(req.Gender)
	if err != nil {
		return nil, err
	}

	product, err := s.ownedProduct(ctx, actor, productID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.repo.FindCategoryByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "category not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
		}
	}

	product.Name = name
	product.CategoryID = req.CategoryID
	product.Description = strings.TrimSpace(req.Description)
	product.Gender = gender
	product.ImagePath = req.ImagePath
	if err := s.repo.SaveProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}

	dto := FromProductModel(product)
	return &dto, nil
}

// SoftDeleteProduct hides a product the actor owns. Variants stay in place
// so order history keeps resolving; visibility filtering hides them.
func (s *service) SoftDeleteProduct(ctx context.Context, actor Actor, productID uuid.UUID) error {
	if _, err := s.ownedProduct(ctx, actor, productID); err != nil {
		return err
	}
	if err := s.repo.SoftDeleteProduct(ctx, productID); err != nil {
		return classifyNotFound(err, "product not found")
	}
	return nil
}

// SetProductTrending flips the storefront trending flag, an admin-only
// curation control.
func (s *service) SetProductTrending(ctx context.Context, productID uuid.UUID, trending bool) error {
	if err := s.repo.SetProductTrending(ctx, productID, trending); err != nil {
		return classifyNotFound(err, "product not found")
	}
	return nil
}

// ListVendorProducts returns the vendor's own active products for the
// dashboard, newest first.
func (s *service) ListVendorProducts(ctx context.Context, vendorProfileID uuid.UUID) ([]ProductDTO, error) {
	products, err := s.repo.ListVendorProducts(ctx, vendorProfileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list vendor products")
	}
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, FromProductModel(&products[i]))
	}
	return out, nil
}

// AddVariant creates a purchasable size and color combination under a
// product the actor owns.
func (s *service) AddVariant(ctx context.Context, actor Actor, productID uuid.UUID, req VariantRequest) (*VariantDTO, error) {
	if !req.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}
	if req.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	if _, err := s.ownedProduct(ctx, actor, productID); err != nil {
		return nil, err
	}

	size, err := s.repo.FindSizeByID(ctx, req.SizeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "size not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load size")
	}
	color, err := s.repo.FindColorByID(ctx, req.ColorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "color not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load color")
	}

	variant := &models.ProductVariant{
		ID:        newID(),
		ProductID: productID,
		SizeID:    req.SizeID,
		ColorID:   req.ColorID,
		Price:     req.Price,
		Stock:     req.Stock,
	}
	if err := s.repo.CreateVariant(ctx, variant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create variant")
	}
	variant.Size = size
	variant.Color = color

	dto := FromVariantModel(variant)
	return &dto, nil
}

// UpdateVariant changes price and stock on a variant the actor owns.
func (s *service) UpdateVariant(ctx context.Context, actor Actor, variantID uuid.UUID, req VariantUpdateRequest) (*VariantDTO, error) {
	if !req.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}
	if req.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	variant, err := s.ownedVariant(ctx, actor, variantID)
	if err != nil {
		return nil, err
	}

	variant.Price = req.Price
	variant.Stock = req.Stock
	if err := s.repo.SaveVariant(ctx, variant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update variant")
	}

	dto := FromVariantModel(variant)
	return &dto, nil
}

// SoftDeleteVariant hides a variant the actor owns. The row survives for
// order items already referencing it.
func (s *service) SoftDeleteVariant(ctx context.Context, actor Actor, variantID uuid.UUID) error {
	if _, err := s.ownedVariant(ctx, actor, variantID); err != nil {
		return err
	}
	if err := s.repo.SoftDeleteVariant(ctx, variantID); err != nil {
		return classifyNotFound(err, "variant not found")
	}
	return nil
}

// ownedProduct loads an active product and enforces ownership. Non-owners
// get not-found, the same as a missing row, so product ids do not leak
// across vendors.
func (s *service) ownedProduct(ctx context.Context, actor Actor, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, classifyNotFound(err, "product not found")
	}
	if !actor.IsAdmin && product.VendorProfileID != actor.VendorProfileID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (s *service) ownedVariant(ctx context.Context, actor Actor, variantID uuid.UUID) (*models.ProductVariant, error) {
	variant, err := s.repo.FindVariantByID(ctx, variantID)
	if err != nil {
		return nil, classifyNotFound(err, "variant not found")
	}
	if variant.Product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "variant has no product")
	}
	if !actor.IsAdmin && variant.Product.VendorProfileID != actor.VendorProfileID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}
	return variant, nil
}

func parseGenderOrDefault(raw string) (enums.Gender, error) {
	if strings.TrimSpace(raw) == "" {
		return enums.GenderUnisex, nil
	}
	gender, err := enums.ParseGender(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid gender")
	}
	return gender, nil
}
