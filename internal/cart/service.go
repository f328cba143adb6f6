package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
)

func newID() uuid.UUID {
	return uuid.New()
}

// Service defines cart and wishlist behavior for one customer.
type Service interface {
	GetCart(ctx context.Context, customerProfileID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, customerProfileID uuid.UUID, req AddItemRequest) (*CartDTO, error)
	UpdateItemQuantity(ctx context.Context, customerProfileID, itemID uuid.UUID, req UpdateItemRequest) (*CartDTO, error)
	RemoveItem(ctx context.Context, customerProfileID, itemID uuid.UUID) (*CartDTO, error)
	ToggleWishlistItem(ctx context.Context, customerProfileID, variantID uuid.UUID) (*ToggleResponse, error)
	ListWishlist(ctx context.Context, customerProfileID uuid.UUID) ([]WishlistLineDTO, error)
}

// ServiceParams bundles the dependencies required to build the cart service.
type ServiceParams struct {
	DB *db.Client
}

type service struct {
	db   *db.Client
	repo *Repository
}

// NewService constructs the cart service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{
		db:   params.DB,
		repo: NewRepository(params.DB.DB()),
	}, nil
}

// mergeRetries bounds the re-run of cart writes that lose the unique-index
// race on (cart, variant).
const mergeRetries = 3

// GetCart returns the customer's cart, creating it on first access. Lines
// are priced live; lines whose variant chain went inactive read unavailable
// and stay out of the subtotal.
func (s *service) GetCart(ctx context.Context, customerProfileID uuid.UUID) (*CartDTO, error) {
	cart, err := s.getOrCreateCart(ctx, customerProfileID)
	if err != nil {
		return nil, err
	}
	return s.project(cart), nil
}

// AddItem merges the variant into the cart: an existing (cart, variant)
// line gains quantity, a new variant gets its own line. Two concurrent adds
// of the same variant resolve through the unique index and a retry.
func (s *service) AddItem(ctx context.Context, customerProfileID uuid.UUID, req AddItemRequest) (*CartDTO, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	if _, err := s.repo.FindPurchasableVariant(ctx, req.ProductVariantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "variant not available")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load variant")
	}

	cart, err := s.getOrCreateCart(ctx, customerProfileID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < mergeRetries; attempt++ {
		err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
			repo := NewRepository(tx)
			item, findErr := repo.FindCartItemForVariant(ctx, cart.ID, req.ProductVariantID)
			if findErr == nil {
				return repo.SetCartItemQuantity(ctx, cart.ID, item.ID, item.Quantity+quantity)
			}
			if !errors.Is(findErr, gorm.ErrRecordNotFound) {
				return findErr
			}
			return repo.CreateCartItem(ctx, &models.CartItem{
				ID:               newID(),
				CartID:           cart.ID,
				ProductVariantID: req.ProductVariantID,
				Quantity:         quantity,
			})
		})
		if err == nil || !db.IsUniqueViolation(err, "") {
			break
		}
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add cart item")
	}

	return s.GetCart(ctx, customerProfileID)
}

// UpdateItemQuantity sets one line's quantity, scoped to the caller's cart.
func (s *service) UpdateItemQuantity(ctx context.Context, customerProfileID, itemID uuid.UUID, req UpdateItemRequest) (*CartDTO, error) {
	if req.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	cart, err := s.getOrCreateCart(ctx, customerProfileID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetCartItemQuantity(ctx, cart.ID, itemID, req.Quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
	}
	return s.GetCart(ctx, customerProfileID)
}

// RemoveItem hard-deletes one line from the caller's cart. Items in another
// customer's cart read as not found.
func (s *service) RemoveItem(ctx context.Context, customerProfileID, itemID uuid.UUID) (*CartDTO, error) {
	cart, err := s.getOrCreateCart(ctx, customerProfileID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteCartItem(ctx, cart.ID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item")
	}
	return s.GetCart(ctx, customerProfileID)
}

// ToggleWishlistItem flips the (customer, variant) pin: present removes,
// absent adds. Adding requires a purchasable variant; removing never does,
// so stale pins can always be cleared.
func (s *service) ToggleWishlistItem(ctx context.Context, customerProfileID, variantID uuid.UUID) (*ToggleResponse, error) {
	removed, err := s.repo.DeleteWishlistPair(ctx, customerProfileID, variantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "toggle wishlist")
	}
	if removed {
		return &ToggleResponse{Added: false}, nil
	}

	if _, err := s.repo.FindPurchasableVariant(ctx, variantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "variant not available")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load variant")
	}

	err = s.repo.CreateWishlistItem(ctx, &models.WishlistItem{
		ID:                newID(),
		CustomerProfileID: customerProfileID,
		ProductVariantID:  variantID,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			// concurrent toggle already pinned it
			return &ToggleResponse{Added: true}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add wishlist item")
	}
	return &ToggleResponse{Added: true}, nil
}

// ListWishlist returns the customer's pins, newest first.
func (s *service) ListWishlist(ctx context.Context, customerProfileID uuid.UUID) ([]WishlistLineDTO, error) {
	items, err := s.repo.ListWishlist(ctx, customerProfileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list wishlist")
	}
	out := make([]WishlistLineDTO, 0, len(items))
	for i := range items {
		out = append(out, wishlistLineFromItem(&items[i]))
	}
	return out, nil
}

func (s *service) getOrCreateCart(ctx context.Context, customerProfileID uuid.UUID) (*models.Cart, error) {
	for attempt := 0; ; attempt++ {
		cart, err := s.repo.FindCartByCustomer(ctx, customerProfileID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}

		createErr := s.repo.CreateCart(ctx, &models.Cart{
			ID:                newID(),
			CustomerProfileID: customerProfileID,
		})
		if createErr == nil {
			continue
		}
		// a concurrent first access won the unique index; fetch theirs
		if db.IsUniqueViolation(createErr, "") && attempt < mergeRetries {
			continue
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, createErr, "create cart")
	}
}

func (s *service) project(cart *models.Cart) *CartDTO {
	dto := &CartDTO{
		ID:       cart.ID,
		Items:    make([]LineDTO, 0, len(cart.Items)),
		Subtotal: decimal.Zero,
	}
	for i := range cart.Items {
		line := lineFromItem(&cart.Items[i])
		dto.Items = append(dto.Items, line)
		if line.Available {
			dto.Subtotal = dto.Subtotal.Add(line.LineTotal)
		}
	}
	return dto
}
