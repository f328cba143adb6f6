package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/stridekart/backend/pkg/db/models"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
)

func TestGetCartCreatesLazily(t *testing.T) {
	h := newCartHarness(t)
	ctx := context.Background()
	customer := h.seedCustomer(t)

	first, err := h.svc.GetCart(ctx, customer.ID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(first.Items) != 0 || !first.Subtotal.IsZero() {
		t.Fatalf("expected empty cart, got %+v", first)
	}

	second, err := h.svc.GetCart(ctx, customer.ID)
	if err != nil {
		t.Fatalf("get cart again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same cart, got %s then %s", first.ID, second.ID)
	}
}

func TestAddItemMergesQuantity(t *testing.T) {
	h := newCartHarness(t)
	ctx := context.Background()
	customer := h.seedCustomer(t)
	variant := h.seedVariant(t, "Air Max", "100.00", 10)

	if _, err := h.svc.AddItem(ctx, customer.ID, AddItemRequest{ProductVariantID: variant.ID}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	cart, err := h.svc.AddItem(ctx, customer.ID, AddItemRequest{ProductVariantID: variant.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(cart.Items))
	}
	line := cart.Items[0]
	if line.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", line.Quantity)
	}
	if !line.LineTotal.Equal(decimal.RequireFromString("300.00")) {
		t.Fatalf("expected line total 300.00, got %s", line.LineTotal)
	}
	if !cart.Subtotal.Equal(decimal.RequireFromString("300.00")) {
		t.Fatalf("expected subtotal 300.00, got %s", cart.Subtotal)
	}
}

func TestAddItemValidatesVariant(t *testing.T) {
	h := newCartHarness(t)
	ctx := context.Background()
	customer := h.seedCustomer(t)

	t.Run("unknown variant", func(t *testing.T) {
		_, err := h.svc.AddItem(ctx, customer.ID, AddItemRequest{ProductVariantID: newID()})
		requireCode(t, err, pkgerrors.CodeNotFound)
	})

	t.Run("soft-deleted variant", func(t *testing.T) {
		variant := h.seedVariant(t, "Gone", "10.00", 1)
		if err := h.conn.Model(&models.ProductVariant{}).
			Where("id = ?", variant.ID).
			UpdateColumn("is_deleted", true).Error; err != nil {
			t.Fatalf("flag variant: %v", err)
		}
		_, err := h.svc.AddItem(ctx, customer.ID, AddItemRequest{ProductVariantID: variant.ID})
		requireCode(t, err, pkgerrors.CodeNotFound)
	})

	t.Run("blocked vendor variant", func(t *testing.T) {
		variant := h.seedVariant(t, "Blocked", "10.00", 1)
		if err := h.conn.Model(&models.VendorProfile{}).
			Where("id = ?", h.vendor.ID).
			UpdateColumn("is_blocked", true).Error; err != nil {
			t.Fatalf("block vendor: %v", err)
		}
		t.Cleanup(func() {
			h.conn.Model(&models.VendorProfile{}).
				Where("id = ?", h.vendor.ID).
				UpdateColumn("is_blocked", false)
		})
		_, err := h.svc.AddItem(ctx, customer.ID, AddItemRequest{ProductVariantID: variant.ID})
		requireCode(t, err, pkgerrors.CodeNotFound)
	})
}

func TestUnavailableLineDropsFromSubtotal(t *testing.T) {
	h := newCartHarness(t)
	ctx := context.Background()
	customer := h.seedCustomer(t)
	keep := h.seedVariant(t, "Keep", "40.00", 5)
	drop := h.seedVariant(t, "Drop", "60.00", 5)

	for _, variant := range []*models.ProductVariant{keep, drop} {
		if _, err := h.svc.AddItem(ctx, customer.ID, AddItemRequest{ProductVariantID: variant.ID}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	if err := h.conn.Model(&models.ProductVariant{}).
		Where("id = ?", drop.ID).
		UpdateColumn("is_deleted", true).Error; err != nil {
		t.Fatalf("flag variant: %v", err)
	}

	cart, err := h.svc.GetCart(ctx, customer.ID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected both lines to remain visible, got %d", len(cart.Items))
	}
	if !cart.Subtotal.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("expected subtotal 40.00, got %s", cart.Subtotal)
	}
	for _, line := range cart.Items {
		if line.VariantID == drop.ID {
			if line.Available {
				t.Fatal("expected dropped line to read unavailable")
			}
			if !line.LineTotal.IsZero() {
				t.Fatalf("expected zero line total, got %s", line.LineTotal)
			}
		}
	}
}

func TestUpdateItemQuantity(t *testing.T) {
	h := newCartHarness(t)
	ctx := context.Background()
	customer := h.seedCustomer(t)
	variant := h.seedVariant(t, "Tee", "20.00", 9)

	added, err := h.svc.AddItem(ctx, customer.ID, AddItemRequest{ProductVariantID: variant.ID})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := added.Items[0].ID

	updated, err := h.svc.UpdateItemQuantity(ctx, customer.ID, itemID, UpdateItemRequest{Quantity: 4})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", updated.Items[0].Quantity)
	}

	t.Run("zero quantity rejected", func(t *testing.T) {
		_, err := h.svc.UpdateItemQuantity(ctx, customer.ID, itemID, UpdateItemRequest{Quantity: 0})
		requireCode(t, err, pkgerrors.CodeValidation)
	})
}

func TestRemoveItemOwnerScoped(t *testing.T) {
	h := newCartHarness(t)
	ctx := context.Background()
	owner := h.seedCustomer(t)
	intruder := h.seedCustomer(t)
	variant := h.seedVariant(t, "Cap", "15.00", 3)

	added, err := h.svc.AddItem(ctx, owner.ID, AddItemRequest{ProductVariantID: variant.ID})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := added.Items[0].ID

	t.Run("other customer cannot remove", func(t *testing.T) {
		_, err := h.svc.RemoveItem(ctx, intruder.ID, itemID)
		requireCode(t, err, pkgerrors.CodeNotFound)
	})

	t.Run("owner removes the row outright", func(t *testing.T) {
		cart, err := h.svc.RemoveItem(ctx, owner.ID, itemID)
		if err != nil {
			t.Fatalf("remove: %v", err)
		}
		if len(cart.Items) != 0 {
			t.Fatalf("expected empty cart, got %d items", len(cart.Items))
		}

		var count int64
		if err := h.conn.Model(&models.CartItem{}).Where("id = ?", itemID).Count(&count).Error; err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 0 {
			t.Fatal("expected the row to be gone, not flagged")
		}
	})
}

func TestWishlistToggle(t *testing.T) {
	h := newCartHarness(t)
	ctx := context.Background()
	customer := h.seedCustomer(t)
	variant := h.seedVariant(t, "Hoodie", "55.00", 4)

	first, err := h.svc.ToggleWishlistItem(ctx, customer.ID, variant.ID)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !first.Added {
		t.Fatal("expected first toggle to add")
	}

	pins, err := h.svc.ListWishlist(ctx, customer.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pins) != 1 || pins[0].VariantID != variant.ID {
		t.Fatalf("expected one pin, got %+v", pins)
	}
	if !pins[0].Price.Equal(decimal.RequireFromString("55.00")) {
		t.Fatalf("expected price 55.00, got %s", pins[0].Price)
	}

	second, err := h.svc.ToggleWishlistItem(ctx, customer.ID, variant.ID)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if second.Added {
		t.Fatal("expected second toggle to remove")
	}

	pins, err = h.svc.ListWishlist(ctx, customer.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pins) != 0 {
		t.Fatalf("expected empty wishlist, got %d", len(pins))
	}

	t.Run("unknown variant cannot be pinned", func(t *testing.T) {
		_, err := h.svc.ToggleWishlistItem(ctx, customer.ID, newID())
		requireCode(t, err, pkgerrors.CodeNotFound)
	})
}
