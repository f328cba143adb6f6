package accounts

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
)

func registerTestVendor(t *testing.T, h *accountsHarness, email, shop string) *AccountDTO {
	t.Helper()
	dto, err := h.register.RegisterVendor(context.Background(), RegisterVendorRequest{
		Email:         email,
		Password:      "correct-horse-battery",
		FirstName:     "Ven",
		LastName:      "Dor",
		ShopName:      shop,
		ShopAddress:   "12 Market Street",
		BusinessPhone: "+911112223334",
	})
	if err != nil {
		t.Fatalf("register vendor: %v", err)
	}
	return dto
}

func registerTestCustomer(t *testing.T, h *accountsHarness) *AccountDTO {
	t.Helper()
	dto, err := h.register.RegisterCustomer(context.Background(), RegisterCustomerRequest{
		IDToken:   "token",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Phone:     "+911234567890",
	})
	if err != nil {
		t.Fatalf("register customer: %v", err)
	}
	return dto
}

func TestLoginLocal(t *testing.T) {
	h := newAccountsHarness(t)
	ctx := context.Background()
	registerTestVendor(t, h, "shop@example.com", "StrideKicks")

	t.Run("vendor login succeeds", func(t *testing.T) {
		resp, err := h.svc.LoginLocal(ctx, LoginRequest{Email: "Shop@Example.com", Password: "correct-horse-battery"}, enums.RoleVendor)
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if resp.AccessToken == "" {
			t.Fatal("expected access token")
		}
		if h.sessions.count() != 1 {
			t.Fatalf("expected 1 session, got %d", h.sessions.count())
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		_, err := h.svc.LoginLocal(ctx, LoginRequest{Email: "shop@example.com", Password: "nope"}, enums.RoleVendor)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})

	t.Run("role mismatch reads like bad credentials", func(t *testing.T) {
		_, err := h.svc.LoginLocal(ctx, LoginRequest{Email: "shop@example.com", Password: "correct-horse-battery"}, enums.RoleAdmin)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})

	t.Run("blocked vendor cannot log in", func(t *testing.T) {
		var profile models.VendorProfile
		if err := h.conn.Where("shop_name = ?", "StrideKicks").First(&profile).Error; err != nil {
			t.Fatalf("load profile: %v", err)
		}
		if err := h.svc.BlockVendor(ctx, profile.ID, true); err != nil {
			t.Fatalf("block vendor: %v", err)
		}
		_, err := h.svc.LoginLocal(ctx, LoginRequest{Email: "shop@example.com", Password: "correct-horse-battery"}, enums.RoleVendor)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})
}

func TestSuperuserPassesAdminGate(t *testing.T) {
	h := newAccountsHarness(t)
	ctx := context.Background()
	dto := registerTestVendor(t, h, "root@example.com", "RootShop")

	if err := h.conn.Model(&models.Account{}).
		Where("id = ?", dto.ID).
		UpdateColumn("is_superuser", true).Error; err != nil {
		t.Fatalf("promote account: %v", err)
	}

	resp, err := h.svc.LoginLocal(ctx, LoginRequest{Email: "root@example.com", Password: "correct-horse-battery"}, enums.RoleAdmin)
	if err != nil {
		t.Fatalf("superuser admin login: %v", err)
	}
	if !resp.Account.IsSuperuser {
		t.Fatal("superuser flag missing from response")
	}
}

func TestLoginWithProvider(t *testing.T) {
	h := newAccountsHarness(t)
	ctx := context.Background()
	dto := registerTestCustomer(t, h)

	resp, err := h.svc.LoginWithProvider(ctx, ProviderLoginRequest{IDToken: "token"})
	if err != nil {
		t.Fatalf("provider login: %v", err)
	}
	if resp.Account.ID != dto.ID {
		t.Fatal("logged into the wrong account")
	}

	t.Run("blocked customer rejected with redirect", func(t *testing.T) {
		var profile models.CustomerProfile
		if err := h.conn.Where("account_id = ?", dto.ID).First(&profile).Error; err != nil {
			t.Fatalf("load profile: %v", err)
		}
		if err := h.svc.BlockCustomer(ctx, profile.ID, true); err != nil {
			t.Fatalf("block customer: %v", err)
		}
		_, err := h.svc.LoginWithProvider(ctx, ProviderLoginRequest{IDToken: "token"})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
			t.Fatalf("expected forbidden, got %v", err)
		}
		details, ok := typed.Details().(map[string]any)
		if !ok || details["redirect_to"] != "/login" {
			t.Fatalf("expected login redirect hint, got %+v", typed.Details())
		}
	})
}

func TestBlockingRevokesSessions(t *testing.T) {
	h := newAccountsHarness(t)
	ctx := context.Background()
	dto := registerTestCustomer(t, h)

	if _, err := h.svc.LoginWithProvider(ctx, ProviderLoginRequest{IDToken: "token"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := h.svc.LoginWithProvider(ctx, ProviderLoginRequest{IDToken: "token"}); err != nil {
		t.Fatalf("second login: %v", err)
	}
	if h.sessions.count() != 2 {
		t.Fatalf("expected 2 sessions, got %d", h.sessions.count())
	}

	var profile models.CustomerProfile
	if err := h.conn.Where("account_id = ?", dto.ID).First(&profile).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if err := h.svc.BlockCustomer(ctx, profile.ID, true); err != nil {
		t.Fatalf("block: %v", err)
	}
	if h.sessions.count() != 0 {
		t.Fatalf("expected sessions revoked, got %d", h.sessions.count())
	}

	t.Run("unknown profile is not found", func(t *testing.T) {
		err := h.svc.BlockCustomer(ctx, uuid.New(), true)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestSoftDeleteAccount(t *testing.T) {
	h := newAccountsHarness(t)
	ctx := context.Background()
	dto := registerTestCustomer(t, h)

	if _, err := h.svc.LoginWithProvider(ctx, ProviderLoginRequest{IDToken: "token"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := h.svc.SoftDeleteAccount(ctx, dto.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	var account models.Account
	if err := h.conn.First(&account, "id = ?", dto.ID).Error; err != nil {
		t.Fatalf("load account: %v", err)
	}
	if !account.IsDeleted {
		t.Fatal("account not marked deleted")
	}
	var profile models.CustomerProfile
	if err := h.conn.Where("account_id = ?", dto.ID).First(&profile).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if !profile.IsDeleted {
		t.Fatal("profile not marked deleted")
	}
	if h.sessions.count() != 0 {
		t.Fatal("sessions survived account deletion")
	}

	if _, err := h.svc.GetAccount(ctx, dto.ID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for deleted account, got %v", err)
	}
}

func TestShippingAddresses(t *testing.T) {
	h := newAccountsHarness(t)
	ctx := context.Background()
	dto := registerTestCustomer(t, h)

	var profile models.CustomerProfile
	if err := h.conn.Where("account_id = ?", dto.ID).First(&profile).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}

	created, err := h.svc.AddShippingAddress(ctx, profile.ID, ShippingAddressRequest{
		Line1:      "21 Baker Street",
		City:       "Mumbai",
		State:      "MH",
		PostalCode: "400001",
	})
	if err != nil {
		t.Fatalf("add address: %v", err)
	}

	addresses, err := h.svc.ListShippingAddresses(ctx, profile.ID)
	if err != nil {
		t.Fatalf("list addresses: %v", err)
	}
	if len(addresses) != 1 {
		t.Fatalf("expected 1 address, got %d", len(addresses))
	}

	if err := h.svc.RemoveShippingAddress(ctx, profile.ID, created.ID); err != nil {
		t.Fatalf("remove address: %v", err)
	}
	addresses, err = h.svc.ListShippingAddresses(ctx, profile.ID)
	if err != nil {
		t.Fatalf("list addresses: %v", err)
	}
	if len(addresses) != 0 {
		t.Fatal("soft-deleted address still listed")
	}

	t.Run("cannot remove someone else's address", func(t *testing.T) {
		other := newID()
		err := h.svc.RemoveShippingAddress(ctx, other, created.ID)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}
