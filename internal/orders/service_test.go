package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
)

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	h := newOrdersHarness(t)
	customer := h.seedCustomer(t)
	otherVendor := h.seedVendor(t)

	sneaker := h.seedVariant(t, h.vendor.ID, "Harbor Sneaker", "100.00", 10)
	tote := h.seedVariant(t, otherVendor.ID, "Canvas Tote", "40.00", 5)
	cart := h.addCartLine(t, customer.ID, sneaker.ID, 2)
	h.addCartLine(t, customer.ID, tote.ID, 1)
	address := h.seedAddress(t, customer.ID)

	order, err := h.svc.Checkout(ctx, customer.ID, CheckoutRequest{ShippingAddressID: &address.ID})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if !order.TotalAmount.Equal(decimal.RequireFromString("240.00")) {
		t.Fatalf("expected total 240.00, got %s", order.TotalAmount)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	for _, item := range order.Items {
		if item.Shipment == nil {
			t.Fatalf("item %s has no shipment", item.ProductName)
		}
		if item.Shipment.Status != enums.ShipmentStatusPending {
			t.Fatalf("expected pending shipment, got %s", item.Shipment.Status)
		}
	}

	t.Run("decrements stock", func(t *testing.T) {
		if got := h.variantStock(t, sneaker.ID); got != 8 {
			t.Fatalf("expected sneaker stock 8, got %d", got)
		}
		if got := h.variantStock(t, tote.ID); got != 4 {
			t.Fatalf("expected tote stock 4, got %d", got)
		}
	})

	t.Run("clears the cart", func(t *testing.T) {
		var count int64
		if err := h.conn.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error; err != nil {
			t.Fatalf("count cart items: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected empty cart, found %d items", count)
		}
	})

	t.Run("shipments land in each vendor queue", func(t *testing.T) {
		mine, err := h.svc.ListVendorShipments(ctx, h.vendor.ID)
		if err != nil {
			t.Fatalf("list shipments: %v", err)
		}
		theirs, err := h.svc.ListVendorShipments(ctx, otherVendor.ID)
		if err != nil {
			t.Fatalf("list shipments: %v", err)
		}
		if len(mine) != 1 || len(theirs) != 1 {
			t.Fatalf("expected one shipment per vendor, got %d and %d", len(mine), len(theirs))
		}
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		_, err := h.svc.Checkout(ctx, customer.ID, CheckoutRequest{})
		requireCode(t, err, pkgerrors.CodeValidation)
	})
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	ctx := context.Background()
	h := newOrdersHarness(t)
	customer := h.seedCustomer(t)

	plenty := h.seedVariant(t, h.vendor.ID, "Wool Sock", "10.00", 20)
	scarce := h.seedVariant(t, h.vendor.ID, "Limited Cap", "60.00", 1)
	cart := h.addCartLine(t, customer.ID, plenty.ID, 3)
	h.addCartLine(t, customer.ID, scarce.ID, 2)

	_, err := h.svc.Checkout(ctx, customer.ID, CheckoutRequest{})
	typed := requireCode(t, err, pkgerrors.CodeValidation)
	if typed.Message() != "insufficient stock for Limited Cap" {
		t.Fatalf("unexpected message: %s", typed.Message())
	}

	var orderCount int64
	if err := h.conn.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no orders after rollback, found %d", orderCount)
	}
	if got := h.variantStock(t, plenty.ID); got != 20 {
		t.Fatalf("expected stock restored to 20, got %d", got)
	}
	var itemCount int64
	if err := h.conn.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&itemCount).Error; err != nil {
		t.Fatalf("count cart items: %v", err)
	}
	if itemCount != 2 {
		t.Fatalf("expected cart untouched, found %d items", itemCount)
	}
}

func TestCheckoutLeavesHiddenLinesInCart(t *testing.T) {
	ctx := context.Background()
	h := newOrdersHarness(t)
	customer := h.seedCustomer(t)

	live := h.seedVariant(t, h.vendor.ID, "Trail Shoe", "120.00", 4)
	gone := h.seedVariant(t, h.vendor.ID, "Retired Shoe", "90.00", 4)
	cart := h.addCartLine(t, customer.ID, live.ID, 1)
	h.addCartLine(t, customer.ID, gone.ID, 1)

	if err := h.conn.Model(&models.ProductVariant{}).
		Where("id = ?", gone.ID).
		Update("is_deleted", true).Error; err != nil {
		t.Fatalf("hide variant: %v", err)
	}

	order, err := h.svc.Checkout(ctx, customer.ID, CheckoutRequest{})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if len(order.Items) != 1 || order.Items[0].VariantID != live.ID {
		t.Fatalf("expected only the live variant ordered, got %d items", len(order.Items))
	}

	var leftover []models.CartItem
	if err := h.conn.Where("cart_id = ?", cart.ID).Find(&leftover).Error; err != nil {
		t.Fatalf("load cart items: %v", err)
	}
	if len(leftover) != 1 || leftover[0].ProductVariantID != gone.ID {
		t.Fatalf("expected the hidden line to stay in the cart")
	}
}

func TestCheckoutAddressValidation(t *testing.T) {
	ctx := context.Background()
	h := newOrdersHarness(t)
	customer := h.seedCustomer(t)
	stranger := h.seedCustomer(t)

	variant := h.seedVariant(t, h.vendor.ID, "Field Jacket", "200.00", 3)
	h.addCartLine(t, customer.ID, variant.ID, 1)
	theirAddress := h.seedAddress(t, stranger.ID)

	_, err := h.svc.Checkout(ctx, customer.ID, CheckoutRequest{ShippingAddressID: &theirAddress.ID})
	requireCode(t, err, pkgerrors.CodeValidation)

	if got := h.variantStock(t, variant.ID); got != 3 {
		t.Fatalf("expected stock untouched, got %d", got)
	}
}

func TestOrderPriceIsFrozen(t *testing.T) {
	ctx := context.Background()
	h := newOrdersHarness(t)
	customer := h.seedCustomer(t)

	variant := h.seedVariant(t, h.vendor.ID, "Rain Shell", "100.00", 5)
	h.addCartLine(t, customer.ID, variant.ID, 1)

	order, err := h.svc.Checkout(ctx, customer.ID, CheckoutRequest{})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if err := h.conn.Model(&models.ProductVariant{}).
		Where("id = ?", variant.ID).
		Update("price", decimal.RequireFromString("150.00")).Error; err != nil {
		t.Fatalf("reprice variant: %v", err)
	}

	reloaded, err := h.svc.GetOrder(ctx, customer.ID, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if !reloaded.Items[0].Price.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected frozen price 100.00, got %s", reloaded.Items[0].Price)
	}
	if !reloaded.TotalAmount.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected frozen total 100.00, got %s", reloaded.TotalAmount)
	}
}

func TestOrderHistoryScoping(t *testing.T) {
	ctx := context.Background()
	h := newOrdersHarness(t)
	customer := h.seedCustomer(t)
	stranger := h.seedCustomer(t)

	variant := h.seedVariant(t, h.vendor.ID, "Day Pack", "80.00", 6)
	h.addCartLine(t, customer.ID, variant.ID, 1)
	order, err := h.svc.Checkout(ctx, customer.ID, CheckoutRequest{})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	t.Run("other customers cannot see the order", func(t *testing.T) {
		_, err := h.svc.GetOrder(ctx, stranger.ID, order.ID)
		requireCode(t, err, pkgerrors.CodeNotFound)

		theirs, err := h.svc.ListOrders(ctx, stranger.ID)
		if err != nil {
			t.Fatalf("list orders: %v", err)
		}
		if len(theirs) != 0 {
			t.Fatalf("expected empty history, got %d orders", len(theirs))
		}
	})

	t.Run("soft delete hides the order from history", func(t *testing.T) {
		if err := h.svc.SoftDeleteOrder(ctx, stranger.ID, order.ID); err == nil {
			t.Fatal("expected stranger delete to fail")
		}
		if err := h.svc.SoftDeleteOrder(ctx, customer.ID, order.ID); err != nil {
			t.Fatalf("delete order: %v", err)
		}
		_, err := h.svc.GetOrder(ctx, customer.ID, order.ID)
		requireCode(t, err, pkgerrors.CodeNotFound)

		mine, err := h.svc.ListOrders(ctx, customer.ID)
		if err != nil {
			t.Fatalf("list orders: %v", err)
		}
		if len(mine) != 0 {
			t.Fatalf("expected empty history after delete, got %d orders", len(mine))
		}

		err = h.svc.SoftDeleteOrder(ctx, customer.ID, order.ID)
		requireCode(t, err, pkgerrors.CodeNotFound)
	})
}

func TestTransitionShipment(t *testing.T) {
	ctx := context.Background()
	h := newOrdersHarness(t)
	customer := h.seedCustomer(t)
	rival := h.seedVendor(t)

	variant := h.seedVariant(t, h.vendor.ID, "Belt", "30.00", 9)
	h.addCartLine(t, customer.ID, variant.ID, 1)
	order, err := h.svc.Checkout(ctx, customer.ID, CheckoutRequest{})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	shipmentID := order.Items[0].Shipment.ID
	owner := Actor{VendorProfileID: h.vendor.ID}

	t.Run("shipped requires courier and tracking", func(t *testing.T) {
		_, err := h.svc.TransitionShipment(ctx, owner, shipmentID, ShipmentTransitionRequest{Status: "shipped"})
		requireCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("other vendors cannot touch the shipment", func(t *testing.T) {
		_, err := h.svc.TransitionShipment(ctx, Actor{VendorProfileID: rival.ID}, shipmentID, ShipmentTransitionRequest{
			Status: "shipped", CourierName: "DHL", TrackingNumber: "TRK1",
		})
		requireCode(t, err, pkgerrors.CodeNotFound)
	})

	t.Run("owner ships with courier details", func(t *testing.T) {
		shipped, err := h.svc.TransitionShipment(ctx, owner, shipmentID, ShipmentTransitionRequest{
			Status: "shipped", CourierName: "DHL", TrackingNumber: "TRK1",
		})
		if err != nil {
			t.Fatalf("ship: %v", err)
		}
		if shipped.Status != enums.ShipmentStatusShipped {
			t.Fatalf("expected shipped, got %s", shipped.Status)
		}
		if shipped.ShippedAt == nil {
			t.Fatal("expected shipped_at to be set")
		}
		if shipped.CourierName != "DHL" || shipped.TrackingNumber != "TRK1" {
			t.Fatalf("courier details not recorded: %+v", shipped)
		}
	})

	t.Run("admin delivers without owning the shipment", func(t *testing.T) {
		delivered, err := h.svc.TransitionShipment(ctx, Actor{IsAdmin: true}, shipmentID, ShipmentTransitionRequest{Status: "delivered"})
		if err != nil {
			t.Fatalf("deliver: %v", err)
		}
		if delivered.Status != enums.ShipmentStatusDelivered {
			t.Fatalf("expected delivered, got %s", delivered.Status)
		}
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		_, err := h.svc.TransitionShipment(ctx, owner, shipmentID, ShipmentTransitionRequest{
			Status: "shipped", CourierName: "DHL", TrackingNumber: "TRK1",
		})
		requireCode(t, err, pkgerrors.CodeStateConflict)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		_, err := h.svc.TransitionShipment(ctx, owner, shipmentID, ShipmentTransitionRequest{Status: "teleported"})
		requireCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("unknown shipment reads as not found", func(t *testing.T) {
		_, err := h.svc.TransitionShipment(ctx, owner, uuid.New(), ShipmentTransitionRequest{Status: "cancelled"})
		requireCode(t, err, pkgerrors.CodeNotFound)
	})
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()
	h := newOrdersHarness(t)
	customer := h.seedCustomer(t)
	stranger := h.seedCustomer(t)

	variant := h.seedVariant(t, h.vendor.ID, "Scarf", "45.00", 7)
	h.addCartLine(t, customer.ID, variant.ID, 2)
	order, err := h.svc.Checkout(ctx, customer.ID, CheckoutRequest{})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	req := PaymentRequest{GatewayOrderID: "gw_ord_1", GatewayPaymentID: "gw_pay_1", Status: "captured"}

	t.Run("strangers cannot pay for the order", func(t *testing.T) {
		_, err := h.svc.RecordPayment(ctx, stranger.ID, order.ID, req)
		requireCode(t, err, pkgerrors.CodeNotFound)
	})

	t.Run("amount comes from the order total", func(t *testing.T) {
		payment, err := h.svc.RecordPayment(ctx, customer.ID, order.ID, req)
		if err != nil {
			t.Fatalf("record payment: %v", err)
		}
		if !payment.Amount.Equal(decimal.RequireFromString("90.00")) {
			t.Fatalf("expected amount 90.00, got %s", payment.Amount)
		}

		reloaded, err := h.svc.GetOrder(ctx, customer.ID, order.ID)
		if err != nil {
			t.Fatalf("get order: %v", err)
		}
		if reloaded.Payment == nil || reloaded.Payment.Status != "captured" {
			t.Fatalf("expected captured payment on the order, got %+v", reloaded.Payment)
		}
	})

	t.Run("second payment is rejected", func(t *testing.T) {
		_, err := h.svc.RecordPayment(ctx, customer.ID, order.ID, PaymentRequest{
			GatewayOrderID: "gw_ord_2", GatewayPaymentID: "gw_pay_2", Status: "captured",
		})
		requireCode(t, err, pkgerrors.CodeConflict)
	})

	t.Run("blank status is rejected", func(t *testing.T) {
		other := h.seedCustomer(t)
		h.addCartLine(t, other.ID, variant.ID, 1)
		otherOrder, err := h.svc.Checkout(ctx, other.ID, CheckoutRequest{})
		if err != nil {
			t.Fatalf("checkout: %v", err)
		}
		_, err = h.svc.RecordPayment(ctx, other.ID, otherOrder.ID, PaymentRequest{
			GatewayOrderID: "gw_ord_3", GatewayPaymentID: "gw_pay_3", Status: "  ",
		})
		requireCode(t, err, pkgerrors.CodeValidation)
	})
}
