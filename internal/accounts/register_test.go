package accounts

import (
	"context"
	"testing"

	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
	"github.com/stridekart/backend/pkg/identity"
)

func TestRegisterCustomer(t *testing.T) {
	h := newAccountsHarness(t)
	ctx := context.Background()

	req := RegisterCustomerRequest{
		IDToken:   "token",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Phone:     "+911234567890",
	}

	dto, err := h.register.RegisterCustomer(ctx, req)
	if err != nil {
		t.Fatalf("register customer: %v", err)
	}
	if dto.Role != enums.RoleUser {
		t.Fatalf("expected role user, got %s", dto.Role)
	}
	if dto.Email != "customer@example.com" {
		t.Fatalf("expected email from verified token, got %s", dto.Email)
	}

	var profile models.CustomerProfile
	if err := h.conn.Where("account_id = ?", dto.ID).First(&profile).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.ExternalUID == nil || *profile.ExternalUID != "uid-1" {
		t.Fatalf("profile uid not captured: %+v", profile)
	}

	t.Run("duplicate email rejected", func(t *testing.T) {
		h.verifier.claims = &identity.Claims{Subject: "uid-2", Email: "customer@example.com"}
		req := req
		req.Phone = "+919999999999"
		if _, err := h.register.RegisterCustomer(ctx, req); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("duplicate phone rejected without partial write", func(t *testing.T) {
		h.verifier.claims = &identity.Claims{Subject: "uid-3", Email: "other@example.com"}
		if _, err := h.register.RegisterCustomer(ctx, req); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
			t.Fatalf("expected conflict, got %v", err)
		}
		var count int64
		if err := h.conn.Model(&models.Account{}).Where("email = ?", "other@example.com").Count(&count).Error; err != nil {
			t.Fatalf("count accounts: %v", err)
		}
		if count != 0 {
			t.Fatal("partial account row left behind")
		}
	})

	t.Run("expired token surfaces unauthorized", func(t *testing.T) {
		h.verifier.err = identity.ErrTokenExpired
		defer func() { h.verifier.err = nil }()
		if _, err := h.register.RegisterCustomer(ctx, req); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})
}

func TestRegisterVendor(t *testing.T) {
	h := newAccountsHarness(t)
	ctx := context.Background()

	req := RegisterVendorRequest{
		Email:         "shop@example.com",
		Password:      "correct-horse-battery",
		FirstName:     "Ven",
		LastName:      "Dor",
		ShopName:      "StrideKicks",
		ShopAddress:   "12 Market Street",
		BusinessPhone: "+911112223334",
		Description:   "  Sneakers and running shoes  ",
		Bank: &BankDetailRequest{
			AccountNumber:   "000111222333",
			IFSCCode:        "HDFC0001234",
			BeneficiaryName: "StrideKicks Pvt Ltd",
		},
	}

	dto, err := h.register.RegisterVendor(ctx, req)
	if err != nil {
		t.Fatalf("register vendor: %v", err)
	}
	if dto.Role != enums.RoleVendor {
		t.Fatalf("expected role vendor, got %s", dto.Role)
	}

	var profile models.VendorProfile
	if err := h.conn.Where("account_id = ?", dto.ID).First(&profile).Error; err != nil {
		t.Fatalf("load vendor profile: %v", err)
	}
	var bank models.BankDetail
	if err := h.conn.Where("vendor_profile_id = ?", profile.ID).First(&bank).Error; err != nil {
		t.Fatalf("load bank detail: %v", err)
	}
	if bank.IFSCCode != "HDFC0001234" {
		t.Fatalf("bank detail not persisted: %+v", bank)
	}
	if profile.Description == nil || *profile.Description != "Sneakers and running shoes" {
		t.Fatalf("expected trimmed description, got %v", profile.Description)
	}

	t.Run("blank description stays null", func(t *testing.T) {
		plain := req
		plain.Email = "plain@example.com"
		plain.ShopName = "PlainKicks"
		plain.BusinessPhone = "+911112223399"
		plain.Description = "   "
		dto, err := h.register.RegisterVendor(ctx, plain)
		if err != nil {
			t.Fatalf("register vendor: %v", err)
		}
		var p models.VendorProfile
		if err := h.conn.Where("account_id = ?", dto.ID).First(&p).Error; err != nil {
			t.Fatalf("load vendor profile: %v", err)
		}
		if p.Description != nil {
			t.Fatalf("expected nil description, got %q", *p.Description)
		}
	})

	t.Run("shop name uniqueness is case-insensitive", func(t *testing.T) {
		dup := req
		dup.Email = "second@example.com"
		dup.ShopName = "stridekicks"
		if _, err := h.register.RegisterVendor(ctx, dup); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
			t.Fatalf("expected conflict, got %v", err)
		}
	})
}
