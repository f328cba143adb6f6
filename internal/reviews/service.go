package reviews

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
)

func newID() uuid.UUID {
	return uuid.New()
}

// Service defines product review behavior.
type Service interface {
	CreateReview(ctx context.Context, customerProfileID, productID uuid.UUID, req ReviewRequest) (*ReviewDTO, error)
	ListProductReviews(ctx context.Context, productID uuid.UUID) ([]ReviewDTO, error)
	SoftDeleteReview(ctx context.Context, customerProfileID, reviewID uuid.UUID) error
}

// ServiceParams bundles the dependencies required to build the reviews service.
type ServiceParams struct {
	DB *db.Client
}

type service struct {
	db   *db.Client
	repo *Repository
}

// NewService constructs the reviews service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{
		db:   params.DB,
		repo: NewRepository(params.DB.DB()),
	}, nil
}

// CreateReview records one review per customer per product. Media is
// classified before any write so an unclassifiable attachment rejects the
// whole request.
func (s *service) CreateReview(ctx context.Context, customerProfileID, productID uuid.UUID, req ReviewRequest) (*ReviewDTO, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	mediaTypes := make([]models.ReviewMedia, 0, len(req.Media))
	for _, upload := range req.Media {
		path := strings.TrimSpace(upload.Path)
		if path == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "media path is required")
		}
		mediaType, err := classifyMedia(path, upload.Data)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported media")
		}
		mediaTypes = append(mediaTypes, models.ReviewMedia{
			MediaType: mediaType,
			Path:      path,
		})
	}

	if _, err := s.repo.FindVisibleProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	review := &models.Review{
		ID:                newID(),
		ProductID:         productID,
		CustomerProfileID: customerProfileID,
		Rating:            req.Rating,
		Comment:           strings.TrimSpace(req.Comment),
	}
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		exists, err := repo.HasActiveReview(ctx, productID, customerProfileID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing review")
		}
		if exists {
			return pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this product")
		}
		if err := repo.CreateReview(ctx, review); err != nil {
			return err
		}
		for i := range mediaTypes {
			media := mediaTypes[i]
			media.ID = newID()
			media.ReviewID = review.ID
			if err := repo.CreateReviewMedia(ctx, &media); err != nil {
				return err
			}
			review.Media = append(review.Media, media)
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "you have already reviewed this product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create review")
	}

	dto := FromReviewModel(review)
	return &dto, nil
}

// ListProductReviews returns the product's active reviews, newest first.
func (s *service) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]ReviewDTO, error) {
	reviews, err := s.repo.ListProductReviews(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}
	out := make([]ReviewDTO, 0, len(reviews))
	for i := range reviews {
		out = append(out, FromReviewModel(&reviews[i]))
	}
	return out, nil
}

// SoftDeleteReview hides the author's review. The freed slot lets the
// customer review the product again later.
func (s *service) SoftDeleteReview(ctx context.Context, customerProfileID, reviewID uuid.UUID) error {
	if err := s.repo.SoftDeleteReview(ctx, customerProfileID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete review")
	}
	return nil
}
