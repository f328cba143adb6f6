package reviews

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
)

// Magic bytes are enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

type reviewsHarness struct {
	conn   *gorm.DB
	client *db.Client
	svc    Service

	vendor *models.VendorProfile
}

var accountSeq int

func newReviewsHarness(t *testing.T) *reviewsHarness {
	t.Helper()

	conn := openTestDB(t)
	client := db.NewFromConn(conn)
	svc, err := NewService(ServiceParams{DB: client})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	h := &reviewsHarness{conn: conn, client: client, svc: svc}
	h.vendor = h.seedVendor(t)
	return h
}

func (h *reviewsHarness) seedAccount(t *testing.T, role enums.Role) *models.Account {
	t.Helper()
	accountSeq++
	account := &models.Account{
		ID:        uuid.New(),
		Email:     fmt.Sprintf("reviews%d@example.com", accountSeq),
		FirstName: "Remy",
		LastName:  "Reviewer",
		Role:      role,
	}
	if err := h.conn.Create(account).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}

func (h *reviewsHarness) seedCustomer(t *testing.T) *models.CustomerProfile {
	t.Helper()
	account := h.seedAccount(t, enums.RoleUser)
	profile := &models.CustomerProfile{
		ID:        uuid.New(),
		AccountID: account.ID,
		Phone:     fmt.Sprintf("55506%04d", accountSeq),
	}
	if err := h.conn.Create(profile).Error; err != nil {
		t.Fatalf("seed customer profile: %v", err)
	}
	return profile
}

func (h *reviewsHarness) seedVendor(t *testing.T) *models.VendorProfile {
	t.Helper()
	account := h.seedAccount(t, enums.RoleVendor)
	profile := &models.VendorProfile{
		ID:            uuid.New(),
		AccountID:     account.ID,
		ShopName:      fmt.Sprintf("Review Shop %d", accountSeq),
		ShopAddress:   "3 Mill St",
		BusinessPhone: fmt.Sprintf("55507%04d", accountSeq),
	}
	if err := h.conn.Create(profile).Error; err != nil {
		t.Fatalf("seed vendor profile: %v", err)
	}
	return profile
}

func (h *reviewsHarness) seedProduct(t *testing.T, name string) *models.Product {
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
	return product
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

func TestCreateReview(t *testing.T) {
	ctx := context.Background()
	h := newReviewsHarness(t)
	customer := h.seedCustomer(t)
	product := h.seedProduct(t, "Trail Runner")

	review, err := h.svc.CreateReview(ctx, customer.ID, product.ID, ReviewRequest{
		Rating:  4,
		Comment: "Solid grip on wet rock.",
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if review.Rating != 4 {
		t.Fatalf("expected rating 4, got %d", review.Rating)
	}
	t.Run("second active review is rejected", func(t *testing.T) {
		_, err := h.svc.CreateReview(ctx, customer.ID, product.ID, ReviewRequest{Rating: 2})
		requireCode(t, err, pkgerrors.CodeConflict)
	})

	t.Run("another customer may review the same product", func(t *testing.T) {
		other := h.seedCustomer(t)
		if _, err := h.svc.CreateReview(ctx, other.ID, product.ID, ReviewRequest{Rating: 5}); err != nil {
			t.Fatalf("create review: %v", err)
		}
	})

	t.Run("rating outside 1..5 is rejected", func(t *testing.T) {
		fresh := h.seedCustomer(t)
		_, err := h.svc.CreateReview(ctx, fresh.ID, product.ID, ReviewRequest{Rating: 0})
		requireCode(t, err, pkgerrors.CodeValidation)
		_, err = h.svc.CreateReview(ctx, fresh.ID, product.ID, ReviewRequest{Rating: 6})
		requireCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("unknown product reads as not found", func(t *testing.T) {
		_, err := h.svc.CreateReview(ctx, customer.ID, uuid.New(), ReviewRequest{Rating: 3})
		requireCode(t, err, pkgerrors.CodeNotFound)
	})

	t.Run("blocked vendor hides the product", func(t *testing.T) {
		if err := h.conn.Model(&models.VendorProfile{}).
			Where("id = ?", h.vendor.ID).
			Update("is_blocked", true).Error; err != nil {
			t.Fatalf("block vendor: %v", err)
		}
		t.Cleanup(func() {
			h.conn.Model(&models.VendorProfile{}).
				Where("id = ?", h.vendor.ID).
				Update("is_blocked", false)
		})
		fresh := h.seedCustomer(t)
		_, err := h.svc.CreateReview(ctx, fresh.ID, product.ID, ReviewRequest{Rating: 3})
		requireCode(t, err, pkgerrors.CodeNotFound)
	})
}

func TestReviewMediaClassification(t *testing.T) {
	ctx := context.Background()
	h := newReviewsHarness(t)
	product := h.seedProduct(t, "Canvas Boot")

	t.Run("image sniffed from content", func(t *testing.T) {
		customer := h.seedCustomer(t)
		review, err := h.svc.CreateReview(ctx, customer.ID, product.ID, ReviewRequest{
			Rating: 5,
			Media:  []MediaUpload{{Path: "uploads/boot-front", Data: pngHeader}},
		})
		if err != nil {
			t.Fatalf("create review: %v", err)
		}
		if len(review.Media) != 1 || review.Media[0].MediaType != enums.ReviewMediaTypeImage {
			t.Fatalf("expected one image attachment, got %+v", review.Media)
		}
	})

	t.Run("extension fallback when content is ambiguous", func(t *testing.T) {
		customer := h.seedCustomer(t)
		review, err := h.svc.CreateReview(ctx, customer.ID, product.ID, ReviewRequest{
			Rating: 4,
			Media:  []MediaUpload{{Path: "uploads/unboxing.mp4"}},
		})
		if err != nil {
			t.Fatalf("create review: %v", err)
		}
		if review.Media[0].MediaType != enums.ReviewMediaTypeVideo {
			t.Fatalf("expected video, got %s", review.Media[0].MediaType)
		}
	})

	t.Run("unclassifiable media rejects the review", func(t *testing.T) {
		customer := h.seedCustomer(t)
		_, err := h.svc.CreateReview(ctx, customer.ID, product.ID, ReviewRequest{
			Rating: 3,
			Media:  []MediaUpload{{Path: "uploads/notes.txt", Data: []byte("plain text")}},
		})
		requireCode(t, err, pkgerrors.CodeValidation)

		var count int64
		if err := h.conn.Model(&models.Review{}).
			Where("customer_profile_id = ?", customer.ID).
			Count(&count).Error; err != nil {
			t.Fatalf("count reviews: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected no review written, found %d", count)
		}
	})
}

func TestReviewLifecycle(t *testing.T) {
	ctx := context.Background()
	h := newReviewsHarness(t)
	customer := h.seedCustomer(t)
	intruder := h.seedCustomer(t)
	product := h.seedProduct(t, "Wool Beanie")

	first, err := h.svc.CreateReview(ctx, customer.ID, product.ID, ReviewRequest{Rating: 2, Comment: "Itchy."})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	t.Run("only the author can delete", func(t *testing.T) {
		err := h.svc.SoftDeleteReview(ctx, intruder.ID, first.ID)
		requireCode(t, err, pkgerrors.CodeNotFound)
	})

	t.Run("soft delete frees the slot for a re-review", func(t *testing.T) {
		if err := h.svc.SoftDeleteReview(ctx, customer.ID, first.ID); err != nil {
			t.Fatalf("delete review: %v", err)
		}
		replacement, err := h.svc.CreateReview(ctx, customer.ID, product.ID, ReviewRequest{Rating: 4, Comment: "Softer after a wash."})
		if err != nil {
			t.Fatalf("re-review: %v", err)
		}

		listed, err := h.svc.ListProductReviews(ctx, product.ID)
		if err != nil {
			t.Fatalf("list reviews: %v", err)
		}
		if len(listed) != 1 || listed[0].ID != replacement.ID {
			t.Fatalf("expected only the replacement review, got %d", len(listed))
		}
		if listed[0].ReviewerName == "" {
			t.Fatal("expected reviewer name from the joined account")
		}
	})

	t.Run("deleting twice reads as not found", func(t *testing.T) {
		err := h.svc.SoftDeleteReview(ctx, customer.ID, first.ID)
		requireCode(t, err, pkgerrors.CodeNotFound)
	})
}
