package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/db"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
)

func newID() uuid.UUID {
	return uuid.New()
}

// Actor identifies who is mutating vendor-owned records. Admins may act on
// any product; vendors only on their own.
type Actor struct {
	VendorProfileID uuid.UUID
	IsAdmin         bool
}

// Service defines catalog behavior: reference data administration, vendor
// product management, the public storefront and the attribute request
// workflow.
type Service interface {
	// reference data (admin)
	CreateCategory(ctx context.Context, req CategoryRequest) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req CategoryRequest) (*CategoryDTO, error)
	SoftDeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	CreateSize(ctx context.Context, req SizeRequest) (*SizeDTO, error)
	UpdateSize(ctx context.Context, id uuid.UUID, req SizeRequest) (*SizeDTO, error)
	DeleteSize(ctx context.Context, id uuid.UUID) error
	ListSizes(ctx context.Context) ([]SizeDTO, error)
	CreateColor(ctx context.Context, req ColorRequest) (*ColorDTO, error)
	UpdateColor(ctx context.Context, id uuid.UUID, req ColorRequest) (*ColorDTO, error)
	DeleteColor(ctx context.Context, id uuid.UUID) error
	ListColors(ctx context.Context) ([]ColorDTO, error)

	// vendor products
	CreateProduct(ctx context.Context, vendorProfileID uuid.UUID, req ProductRequest) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, actor Actor, productID uuid.UUID, req ProductRequest) (*ProductDTO, error)
	SoftDeleteProduct(ctx context.Context, actor Actor, productID uuid.UUID) error
	SetProductTrending(ctx context.Context, productID uuid.UUID, trending bool) error
	ListVendorProducts(ctx context.Context, vendorProfileID uuid.UUID) ([]ProductDTO, error)
	AddVariant(ctx context.Context, actor Actor, productID uuid.UUID, req VariantRequest) (*VariantDTO, error)
	UpdateVariant(ctx context.Context, actor Actor, variantID uuid.UUID, req VariantUpdateRequest) (*VariantDTO, error)
	SoftDeleteVariant(ctx context.Context, actor Actor, variantID uuid.UUID) error

	// storefront
	ListProducts(ctx context.Context, query ListProductsQuery) (*ProductListResponse, error)
	GetProduct(ctx context.Context, slug string) (*ProductDTO, error)

	// attribute requests
	SubmitAttributeRequest(ctx context.Context, vendorProfileID uuid.UUID, req AttributeRequestInput) (*AttributeRequestDTO, error)
	ListAttributeRequests(ctx context.Context, status string) ([]AttributeRequestDTO, error)
	ListVendorAttributeRequests(ctx context.Context, vendorProfileID uuid.UUID) ([]AttributeRequestDTO, error)
	DecideAttributeRequest(ctx context.Context, id uuid.UUID, approve bool) (*AttributeRequestDTO, error)
}

// ServiceParams bundles the dependencies required to build the catalog service.
type ServiceParams struct {
	DB *db.Client
}

type service struct {
	db   *db.Client
	repo *Repository
}

// NewService constructs the catalog service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{
		db:   params.DB,
		repo: NewRepository(params.DB.DB()),
	}, nil
}

// uniqueRetries bounds the re-run of create transactions that lose a
// uniqueness race. Two attempts recompute after one concurrent winner; the
// third covers the pathological double race.
const uniqueRetries = 3

func classifyNotFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}
