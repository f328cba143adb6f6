package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
)

// Repository exposes order, shipment and payment persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindCartByCustomer loads the customer's cart row, without lines.
func (r *Repository) FindCartByCustomer(ctx context.Context, customerProfileID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Where("customer_profile_id = ?", customerProfileID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// ListPurchasableCartLines returns the cart lines whose variant chain is
// still fully active. Lines pointing at hidden variants are left behind in
// the cart rather than silently ordered.
func (r *Repository) ListPurchasableCartLines(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Joins("JOIN product_variants ON product_variants.id = cart_items.product_variant_id").
		Joins("JOIN products ON products.id = product_variants.product_id").
		Joins("JOIN vendor_profiles ON vendor_profiles.id = products.vendor_profile_id").
		Scopes(
			db.ActiveIn("product_variants"),
			db.ActiveIn("products"),
			db.Visible("vendor_profiles"),
		).
		Where("cart_items.cart_id = ?", cartID).
		Preload("ProductVariant").
		Preload("ProductVariant.Product").
		Order("cart_items.created_at ASC").
		Find(&items).Error
	return items, err
}

// ClearCartLines hard-deletes the given lines from the cart. Lines that were
// not ordered stay behind so the customer can still see and prune them.
func (r *Repository) ClearCartLines(ctx context.Context, cartID uuid.UUID, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND id IN ?", cartID, itemIDs).
		Delete(&models.CartItem{}).Error
}

// DecrementStock takes qty units off the variant, refusing to go negative.
// Returns gorm.ErrRecordNotFound when stock is insufficient so the checkout
// transaction rolls back.
func (r *Repository) DecrementStock(ctx context.Context, variantID uuid.UUID, qty int) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ? AND stock >= ?", variantID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindShippingAddress loads one active address scoped to its owner.
func (r *Repository) FindShippingAddress(ctx context.Context, customerProfileID, addressID uuid.UUID) (*models.ShippingAddress, error) {
	var address models.ShippingAddress
	err := db.Active(r.db.WithContext(ctx)).
		Where("customer_profile_id = ? AND id = ?", customerProfileID, addressID).
		First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// CreateOrder inserts the order row.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// CreateOrderItem inserts one frozen line.
func (r *Repository) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// CreateShipment inserts the pending shipment for one line.
func (r *Repository) CreateShipment(ctx context.Context, shipment *models.Shipment) error {
	return r.db.WithContext(ctx).Create(shipment).Error
}

// orderPreloads loads the display chain for order reads. Variants and
// products load unfiltered: a soft-deleted variant must still render in
// history with its frozen price.
func orderPreloads(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_items.created_at ASC")
		}).
		Preload("Items.ProductVariant").
		Preload("Items.ProductVariant.Size").
		Preload("Items.ProductVariant.Color").
		Preload("Items.ProductVariant.Product").
		Preload("Items.Shipment").
		Preload("Payment").
		Preload("ShippingAddress")
}

// ListOrdersByCustomer returns the customer's active orders, newest first.
func (r *Repository) ListOrdersByCustomer(ctx context.Context, customerProfileID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := orderPreloads(db.Active(r.db.WithContext(ctx))).
		Where("customer_profile_id = ?", customerProfileID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// FindOrderForCustomer loads one active order scoped to its owner.
func (r *Repository) FindOrderForCustomer(ctx context.Context, customerProfileID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := orderPreloads(db.Active(r.db.WithContext(ctx))).
		Where("customer_profile_id = ? AND id = ?", customerProfileID, orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SoftDeleteOrder hides the order from the owner's history.
func (r *Repository) SoftDeleteOrder(ctx context.Context, customerProfileID, orderID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("customer_profile_id = ? AND id = ? AND is_deleted = ?", customerProfileID, orderID, false).
		UpdateColumn("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindShipmentByID loads one shipment.
func (r *Repository) FindShipmentByID(ctx context.Context, id uuid.UUID) (*models.Shipment, error) {
	var shipment models.Shipment
	err := r.db.WithContext(ctx).First(&shipment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

// SaveShipment persists all fields of an existing shipment row.
func (r *Repository) SaveShipment(ctx context.Context, shipment *models.Shipment) error {
	return r.db.WithContext(ctx).Save(shipment).Error
}

// ListVendorShipments returns the vendor's shipments, newest first.
func (r *Repository) ListVendorShipments(ctx context.Context, vendorProfileID uuid.UUID) ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := r.db.WithContext(ctx).
		Where("vendor_profile_id = ?", vendorProfileID).
		Order("created_at DESC").
		Find(&shipments).Error
	return shipments, err
}

// CreatePayment inserts the payment record. The unique index on order_id
// enforces at most one per order.
func (r *Repository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}
