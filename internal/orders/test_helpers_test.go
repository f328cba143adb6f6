package orders

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
)

type ordersHarness struct {
	conn   *gorm.DB
	client *db.Client
	svc    Service

	vendor *models.VendorProfile
	size   *models.Size
	color  *models.Color
}

var accountSeq int

func newOrdersHarness(t *testing.T) *ordersHarness {
	t.Helper()

	conn := openTestDB(t)
	client := db.NewFromConn(conn)
	svc, err := NewService(ServiceParams{DB: client})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	h := &ordersHarness{conn: conn, client: client, svc: svc}

	h.vendor = h.seedVendor(t)
	h.size = &models.Size{ID: uuid.New(), Name: "M"}
	h.color = &models.Color{ID: uuid.New(), Name: "Navy"}
	if err := conn.Create(h.size).Error; err != nil {
		t.Fatalf("seed size: %v", err)
	}
	if err := conn.Create(h.color).Error; err != nil {
		t.Fatalf("seed color: %v", err)
	}
	return h
}

func (h *ordersHarness) seedAccount(t *testing.T, role enums.Role) *models.Account {
	t.Helper()
	accountSeq++
	account := &models.Account{
		ID:        uuid.New(),
		Email:     fmt.Sprintf("orders%d@example.com", accountSeq),
		FirstName: "Olive",
		LastName:  "Orders",
		Role:      role,
	}
	if err := h.conn.Create(account).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}

func (h *ordersHarness) seedCustomer(t *testing.T) *models.CustomerProfile {
	t.Helper()
	account := h.seedAccount(t, enums.RoleUser)
	profile := &models.CustomerProfile{
		ID:        uuid.New(),
		AccountID: account.ID,
		Phone:     fmt.Sprintf("55504%04d", accountSeq),
	}
	if err := h.conn.Create(profile).Error; err != nil {
		t.Fatalf("seed customer profile: %v", err)
	}
	return profile
}

func (h *ordersHarness) seedVendor(t *testing.T) *models.VendorProfile {
	t.Helper()
	account := h.seedAccount(t, enums.RoleVendor)
	profile := &models.VendorProfile{
		ID:            uuid.New(),
		AccountID:     account.ID,
		ShopName:      fmt.Sprintf("Orders Shop %d", accountSeq),
		ShopAddress:   "2 Depot Rd",
		BusinessPhone: fmt.Sprintf("55505%04d", accountSeq),
	}
	if err := h.conn.Create(profile).Error; err != nil {
		t.Fatalf("seed vendor profile: %v", err)
	}
	return profile
}

// seedVariant creates a product under the given vendor with one variant.
func (h *ordersHarness) seedVariant(t *testing.T, vendorID uuid.UUID, name, price string, stock int) *models.ProductVariant {
	t.Helper()

	product := &models.Product{
		ID:              uuid.New(),
		VendorProfileID: vendorID,
		Name:            name,
		Slug:            uuid.NewString(),
		Gender:          enums.GenderUnisex,
	}
	if err := h.conn.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	variant := &models.ProductVariant{
		ID:        uuid.New(),
		ProductID: product.ID,
		SizeID:    h.size.ID,
		ColorID:   h.color.ID,
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
	}
	if err := h.conn.Create(variant).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	return variant
}

// addCartLine puts a variant in the customer's cart, creating the cart on
// first use.
func (h *ordersHarness) addCartLine(t *testing.T, customerID, variantID uuid.UUID, qty int) *models.Cart {
	t.Helper()

	var cart models.Cart
	err := h.conn.Where("customer_profile_id = ?", customerID).First(&cart).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			t.Fatalf("load cart: %v", err)
		}
		cart = models.Cart{ID: uuid.New(), CustomerProfileID: customerID}
		if err := h.conn.Create(&cart).Error; err != nil {
			t.Fatalf("seed cart: %v", err)
		}
	}
	item := &models.CartItem{
		ID:               uuid.New(),
		CartID:           cart.ID,
		ProductVariantID: variantID,
		Quantity:         qty,
	}
	if err := h.conn.Create(item).Error; err != nil {
		t.Fatalf("seed cart item: %v", err)
	}
	return &cart
}

func (h *ordersHarness) seedAddress(t *testing.T, customerID uuid.UUID) *models.ShippingAddress {
	t.Helper()
	address := &models.ShippingAddress{
		ID:                uuid.New(),
		CustomerProfileID: customerID,
		Line1:             "14 Harbor Ln",
		City:              "Portsmouth",
		State:             "NH",
		PostalCode:        "03801",
	}
	if err := h.conn.Create(address).Error; err != nil {
		t.Fatalf("seed address: %v", err)
	}
	return address
}

func (h *ordersHarness) variantStock(t *testing.T, variantID uuid.UUID) int {
	t.Helper()
	var variant models.ProductVariant
	if err := h.conn.First(&variant, "id = ?", variantID).Error; err != nil {
		t.Fatalf("load variant: %v", err)
	}
	return variant.Stock
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) *pkgerrors.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, typed.Code(), err)
	}
	return typed
}
