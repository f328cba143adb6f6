package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
)

// CheckoutRequest places an order from the customer's cart.
type CheckoutRequest struct {
	ShippingAddressID *uuid.UUID `json:"shipping_address_id,omitempty"`
}

// ShipmentTransitionRequest moves a shipment to a new state. Courier and
// tracking are required when the target state is shipped.
type ShipmentTransitionRequest struct {
	Status         string `json:"status" validate:"required"`
	CourierName    string `json:"courier_name,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

// PaymentRequest attaches the gateway outcome to an order.
type PaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id" validate:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" validate:"required"`
	GatewaySignature string `json:"gateway_signature,omitempty"`
	Status           string `json:"status" validate:"required"`
}

// ShipmentDTO is the public projection of a shipment.
type ShipmentDTO struct {
	ID             uuid.UUID            `json:"id"`
	OrderItemID    uuid.UUID            `json:"order_item_id"`
	Status         enums.ShipmentStatus `json:"status"`
	CourierName    string               `json:"courier_name,omitempty"`
	TrackingNumber string               `json:"tracking_number,omitempty"`
	ShippedAt      *time.Time           `json:"shipped_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// FromShipmentModel converts the persisted shipment row.
func FromShipmentModel(shipment *models.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:             shipment.ID,
		OrderItemID:    shipment.OrderItemID,
		Status:         shipment.Status,
		CourierName:    shipment.CourierName,
		TrackingNumber: shipment.TrackingNumber,
		ShippedAt:      shipment.ShippedAt,
		CreatedAt:      shipment.CreatedAt,
	}
}

// OrderItemDTO is one frozen line. Price is the unit price captured at
// checkout; it never tracks the live variant.
type OrderItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	VariantID   uuid.UUID       `json:"variant_id"`
	ProductName string          `json:"product_name,omitempty"`
	ProductSlug string          `json:"product_slug,omitempty"`
	SizeName    string          `json:"size_name,omitempty"`
	ColorName   string          `json:"color_name,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Shipment    *ShipmentDTO    `json:"shipment,omitempty"`
}

// PaymentDTO is the public projection of a payment record.
type PaymentDTO struct {
	ID               uuid.UUID       `json:"id"`
	Amount           decimal.Decimal `json:"amount"`
	GatewayOrderID   string          `json:"gateway_order_id,omitempty"`
	GatewayPaymentID string          `json:"gateway_payment_id,omitempty"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
}

// OrderDTO is one order with its frozen lines.
type OrderDTO struct {
	ID                uuid.UUID       `json:"id"`
	ShippingAddressID *uuid.UUID      `json:"shipping_address_id,omitempty"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Items             []OrderItemDTO  `json:"items"`
	Payment           *PaymentDTO     `json:"payment,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// FromOrderModel converts the persisted order with its preloaded chain.
func FromOrderModel(order *models.Order) OrderDTO {
	dto := OrderDTO{
		ID:                order.ID,
		ShippingAddressID: order.ShippingAddressID,
		TotalAmount:       order.TotalAmount,
		Items:             make([]OrderItemDTO, 0, len(order.Items)),
		CreatedAt:         order.CreatedAt,
	}
	for i := range order.Items {
		dto.Items = append(dto.Items, fromOrderItemModel(&order.Items[i]))
	}
	if order.Payment != nil {
		payment := PaymentDTO{
			ID:               order.Payment.ID,
			Amount:           order.Payment.Amount,
			GatewayOrderID:   order.Payment.GatewayOrderID,
			GatewayPaymentID: order.Payment.GatewayPaymentID,
			Status:           order.Payment.Status,
			CreatedAt:        order.Payment.CreatedAt,
		}
		dto.Payment = &payment
	}
	return dto
}

func fromOrderItemModel(item *models.OrderItem) OrderItemDTO {
	dto := OrderItemDTO{
		ID:        item.ID,
		VariantID: item.ProductVariantID,
		Quantity:  item.Quantity,
		Price:     item.Price,
		LineTotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
	if variant := item.ProductVariant; variant != nil {
		if variant.Size != nil {
			dto.SizeName = variant.Size.Name
		}
		if variant.Color != nil {
			dto.ColorName = variant.Color.Name
		}
		if product := variant.Product; product != nil {
			dto.ProductName = product.Name
			dto.ProductSlug = product.Slug
		}
	}
	if item.Shipment != nil {
		shipment := FromShipmentModel(item.Shipment)
		dto.Shipment = &shipment
	}
	return dto
}
