package catalog

import (
	"context"
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

type catalogHarness struct {
	conn   *gorm.DB
	client *db.Client
	svc    Service
}

func newCatalogHarness(t *testing.T) *catalogHarness {
	t.Helper()

	conn := openTestDB(t)
	client := db.NewFromConn(conn)
	svc, err := NewService(ServiceParams{DB: client})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return &catalogHarness{conn: conn, client: client, svc: svc}
}

var vendorSeq int

func (h *catalogHarness) seedVendor(t *testing.T) *models.VendorProfile {
	t.Helper()

	vendorSeq++
	account := &models.Account{
		ID:        uuid.New(),
		Email:     fmt.Sprintf("vendor%d@example.com", vendorSeq),
		FirstName: "Vera",
		LastName:  "Vendor",
		Role:      enums.RoleVendor,
	}
	if err := h.conn.Create(account).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	profile := &models.VendorProfile{
		ID:            uuid.New(),
		AccountID:     account.ID,
		ShopName:      fmt.Sprintf("Shop %d", vendorSeq),
		ShopAddress:   "1 Market St",
		BusinessPhone: fmt.Sprintf("55501%04d", vendorSeq),
	}
	if err := h.conn.Create(profile).Error; err != nil {
		t.Fatalf("seed vendor profile: %v", err)
	}
	return profile
}

func (h *catalogHarness) seedSize(t *testing.T, name string) *models.Size {
	t.Helper()
	size := &models.Size{ID: uuid.New(), Name: name}
	if err := h.conn.Create(size).Error; err != nil {
		t.Fatalf("seed size: %v", err)
	}
	return size
}

func (h *catalogHarness) seedColor(t *testing.T, name string) *models.Color {
	t.Helper()
	color := &models.Color{ID: uuid.New(), Name: name}
	if err := h.conn.Create(color).Error; err != nil {
		t.Fatalf("seed color: %v", err)
	}
	return color
}

func (h *catalogHarness) createProduct(t *testing.T, vendorID uuid.UUID, name string) *ProductDTO {
	t.Helper()
	product, err := h.svc.CreateProduct(context.Background(), vendorID, ProductRequest{Name: name})
	if err != nil {
		t.Fatalf("create product %q: %v", name, err)
	}
	return product
}

func (h *catalogHarness) addVariant(t *testing.T, vendorID, productID, sizeID, colorID uuid.UUID, price string, stock int) *VariantDTO {
	t.Helper()
	variant, err := h.svc.AddVariant(context.Background(), Actor{VendorProfileID: vendorID}, productID, VariantRequest{
		SizeID:  sizeID,
		ColorID: colorID,
		Price:   decimal.RequireFromString(price),
		Stock:   stock,
	})
	if err != nil {
		t.Fatalf("add variant: %v", err)
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
