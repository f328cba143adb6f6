package cart

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

type cartHarness struct {
	conn   *gorm.DB
	client *db.Client
	svc    Service

	vendor *models.VendorProfile
	size   *models.Size
	color  *models.Color
}

var accountSeq int

func newCartHarness(t *testing.T) *cartHarness {
	t.Helper()

	conn := openTestDB(t)
	client := db.NewFromConn(conn)
	svc, err := NewService(ServiceParams{DB: client})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	h := &cartHarness{conn: conn, client: client, svc: svc}

	h.vendor = h.seedVendor(t)
	h.size = &models.Size{ID: uuid.New(), Name: "42"}
	h.color = &models.Color{ID: uuid.New(), Name: "Black"}
	if err := conn.Create(h.size).Error; err != nil {
		t.Fatalf("seed size: %v", err)
	}
	if err := conn.Create(h.color).Error; err != nil {
		t.Fatalf("seed color: %v", err)
	}
	return h
}

func (h *cartHarness) seedAccount(t *testing.T, role enums.Role) *models.Account {
	t.Helper()
	accountSeq++
	account := &models.Account{
		ID:        uuid.New(),
		Email:     fmt.Sprintf("cart%d@example.com", accountSeq),
		FirstName: "Casey",
		LastName:  "Cart",
		Role:      role,
	}
	if err := h.conn.Create(account).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}

func (h *cartHarness) seedCustomer(t *testing.T) *models.CustomerProfile {
	t.Helper()
	account := h.seedAccount(t, enums.RoleUser)
	profile := &models.CustomerProfile{
		ID:        uuid.New(),
		AccountID: account.ID,
		Phone:     fmt.Sprintf("55502%04d", accountSeq),
	}
	if err := h.conn.Create(profile).Error; err != nil {
		t.Fatalf("seed customer profile: %v", err)
	}
	return profile
}

func (h *cartHarness) seedVendor(t *testing.T) *models.VendorProfile {
	t.Helper()
	account := h.seedAccount(t, enums.RoleVendor)
	profile := &models.VendorProfile{
		ID:            uuid.New(),
		AccountID:     account.ID,
		ShopName:      fmt.Sprintf("Cart Shop %d", accountSeq),
		ShopAddress:   "1 Market St",
		BusinessPhone: fmt.Sprintf("55503%04d", accountSeq),
	}
	if err := h.conn.Create(profile).Error; err != nil {
		t.Fatalf("seed vendor profile: %v", err)
	}
	return profile
}

// seedVariant creates a product with one purchasable variant and returns the
// variant.
func (h *cartHarness) seedVariant(t *testing.T, name, price string, stock int) *models.ProductVariant {
	t.Helper()

	product := &models.Product{
		ID:              uuid.New(),
		VendorProfileID: h.vendor.ID,
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
