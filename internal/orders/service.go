package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
)

func newID() uuid.UUID {
	return uuid.New()
}

// Actor identifies who is mutating a shipment. Admins may act on any
// shipment; vendors only on their own.
type Actor struct {
	VendorProfileID uuid.UUID
	IsAdmin         bool
}

// Service defines checkout, order history, shipment and payment behavior.
type Service interface {
	Checkout(ctx context.Context, customerProfileID uuid.UUID, req CheckoutRequest) (*OrderDTO, error)
	ListOrders(ctx context.Context, customerProfileID uuid.UUID) ([]OrderDTO, error)
	GetOrder(ctx context.Context, customerProfileID, orderID uuid.UUID) (*OrderDTO, error)
	SoftDeleteOrder(ctx context.Context, customerProfileID, orderID uuid.UUID) error
	ListVendorShipments(ctx context.Context, vendorProfileID uuid.UUID) ([]ShipmentDTO, error)
	TransitionShipment(ctx context.Context, actor Actor, shipmentID uuid.UUID, req ShipmentTransitionRequest) (*ShipmentDTO, error)
	RecordPayment(ctx context.Context, customerProfileID, orderID uuid.UUID, req PaymentRequest) (*PaymentDTO, error)
}

// ServiceParams bundles the dependencies required to build the orders service.
type ServiceParams struct {
	DB *db.Client
}

type service struct {
	db   *db.Client
	repo *Repository
}

// NewService constructs the orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{
		db:   params.DB,
		repo: NewRepository(params.DB.DB()),
	}, nil
}

// Checkout converts the purchasable cart lines into an order in a single
// transaction: order row, one frozen item per line, one pending shipment
// per item owned by the line's vendor, stock decrements, and a cart wipe.
// Any failure leaves no partial order behind.
func (s *service) Checkout(ctx context.Context, customerProfileID uuid.UUID, req CheckoutRequest) (*OrderDTO, error) {
	cart, err := s.repo.FindCartByCustomer(ctx, customerProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	var orderID uuid.UUID
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		lines, err := repo.ListPurchasableCartLines(ctx, cart.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart lines")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		if req.ShippingAddressID != nil {
			if _, err := repo.FindShippingAddress(ctx, customerProfileID, *req.ShippingAddressID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "shipping address not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load shipping address")
			}
		}

		total := decimal.Zero
		for i := range lines {
			price := lines[i].ProductVariant.Price
			total = total.Add(price.Mul(decimal.NewFromInt(int64(lines[i].Quantity))))
		}

		order := &models.Order{
			ID:                newID(),
			CustomerProfileID: customerProfileID,
			ShippingAddressID: req.ShippingAddressID,
			TotalAmount:       total,
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}
		orderID = order.ID

		orderedLines := make([]uuid.UUID, 0, len(lines))
		for i := range lines {
			line := &lines[i]
			variant := line.ProductVariant
			orderedLines = append(orderedLines, line.ID)

			if err := repo.DecrementStock(ctx, variant.ID, line.Quantity); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeValidation,
						fmt.Sprintf("insufficient stock for %s", variant.Product.Name))
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement stock")
			}

			item := &models.OrderItem{
				ID:               newID(),
				OrderID:          order.ID,
				ProductVariantID: variant.ID,
				Quantity:         line.Quantity,
				Price:            variant.Price,
			}
			if err := repo.CreateOrderItem(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order item")
			}

			shipment := &models.Shipment{
				ID:              newID(),
				OrderItemID:     item.ID,
				VendorProfileID: variant.Product.VendorProfileID,
				Status:          enums.ShipmentStatusPending,
			}
			if err := repo.CreateShipment(ctx, shipment); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create shipment")
			}
		}

		if err := repo.ClearCartLines(ctx, cart.ID, orderedLines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checkout")
	}

	return s.GetOrder(ctx, customerProfileID, orderID)
}

// ListOrders returns the customer's active order history, newest first.
func (s *service) ListOrders(ctx context.Context, customerProfileID uuid.UUID) ([]OrderDTO, error) {
	orders, err := s.repo.ListOrdersByCustomer(ctx, customerProfileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	out := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, FromOrderModel(&orders[i]))
	}
	return out, nil
}

// GetOrder loads one order scoped to its owner.
func (s *service) GetOrder(ctx context.Context, customerProfileID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindOrderForCustomer(ctx, customerProfileID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	dto := FromOrderModel(order)
	return &dto, nil
}

// SoftDeleteOrder hides the order from the owner's history. The rows stay
// for vendor shipments and payment records.
func (s *service) SoftDeleteOrder(ctx context.Context, customerProfileID, orderID uuid.UUID) error {
	if err := s.repo.SoftDeleteOrder(ctx, customerProfileID, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete order")
	}
	return nil
}

// ListVendorShipments returns the vendor's fulfillment queue, newest first.
func (s *service) ListVendorShipments(ctx context.Context, vendorProfileID uuid.UUID) ([]ShipmentDTO, error) {
	shipments, err := s.repo.ListVendorShipments(ctx, vendorProfileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list shipments")
	}
	out := make([]ShipmentDTO, 0, len(shipments))
	for i := range shipments {
		out = append(out, FromShipmentModel(&shipments[i]))
	}
	return out, nil
}

// TransitionShipment moves a shipment along the allowed edges. Backward
// moves fail as state conflicts; the shipped transition revalidates courier
// and tracking even if they were set earlier.
func (s *service) TransitionShipment(ctx context.Context, actor Actor, shipmentID uuid.UUID, req ShipmentTransitionRequest) (*ShipmentDTO, error) {
	target, err := enums.ParseShipmentStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipment status")
	}

	shipment, err := s.repo.FindShipmentByID(ctx, shipmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "shipment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load shipment")
	}
	if !actor.IsAdmin && shipment.VendorProfileID != actor.VendorProfileID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shipment not found")
	}

	if !shipment.Status.CanTransition(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot transition shipment from %s to %s", shipment.Status, target))
	}

	if target == enums.ShipmentStatusShipped {
		courier := strings.TrimSpace(req.CourierName)
		tracking := strings.TrimSpace(req.TrackingNumber)
		if courier == "" || tracking == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				"courier name and tracking number are required to mark a shipment shipped")
		}
		shipment.CourierName = courier
		shipment.TrackingNumber = tracking
		now := time.Now().UTC()
		shipment.ShippedAt = &now
	}
	shipment.Status = target

	if err := s.repo.SaveShipment(ctx, shipment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update shipment")
	}

	dto := FromShipmentModel(shipment)
	return &dto, nil
}

// RecordPayment attaches the gateway outcome to the owner's order. The
// amount is the frozen order total; the unique index keeps it to one
// payment per order.
func (s *service) RecordPayment(ctx context.Context, customerProfileID, orderID uuid.UUID, req PaymentRequest) (*PaymentDTO, error) {
	order, err := s.repo.FindOrderForCustomer(ctx, customerProfileID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	payment := &models.Payment{
		ID:               newID(),
		OrderID:          order.ID,
		Amount:           order.TotalAmount,
		GatewayOrderID:   strings.TrimSpace(req.GatewayOrderID),
		GatewayPaymentID: strings.TrimSpace(req.GatewayPaymentID),
		GatewaySignature: strings.TrimSpace(req.GatewaySignature),
		Status:           strings.TrimSpace(req.Status),
	}
	if payment.Status == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment status is required")
	}
	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "payment already recorded for this order")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create payment")
	}

	dto := PaymentDTO{
		ID:               payment.ID,
		Amount:           payment.Amount,
		GatewayOrderID:   payment.GatewayOrderID,
		GatewayPaymentID: payment.GatewayPaymentID,
		Status:           payment.Status,
		CreatedAt:        payment.CreatedAt,
	}
	return &dto, nil
}
