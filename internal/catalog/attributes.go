package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
	"github.com/stridekart/backend/pkg/slug"
)

// SubmitAttributeRequest records a vendor's ask for a new shared category,
// size or color value. The value lands when an admin approves.
func (s *service) SubmitAttributeRequest(ctx context.Context, vendorProfileID uuid.UUID, req AttributeRequestInput) (*AttributeRequestDTO, error) {
	attrType, err := enums.ParseAttributeType(req.AttributeType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid attribute type")
	}
	value := strings.TrimSpace(req.Value)
	if value == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "attribute value is required")
	}

	request := &models.AttributeRequest{
		ID:              newID(),
		VendorProfileID: vendorProfileID,
		AttributeType:   attrType,
		Value:           value,
		Status:          enums.AttributeRequestStatusPending,
	}
	if err := s.repo.CreateAttributeRequest(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create attribute request")
	}

	dto := FromAttributeRequestModel(request)
	return &dto, nil
}

// ListAttributeRequests returns requests for the admin queue, optionally
// narrowed by status.
func (s *service) ListAttributeRequests(ctx context.Context, status string) ([]AttributeRequestDTO, error) {
	var statusFilter *enums.AttributeRequestStatus
	if status != "" {
		parsed, err := enums.ParseAttributeRequestStatus(status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		statusFilter = &parsed
	}

	requests, err := s.repo.ListAttributeRequests(ctx, statusFilter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list attribute requests")
	}
	return toAttributeRequestDTOs(requests), nil
}

// ListVendorAttributeRequests returns the vendor's own requests.
func (s *service) ListVendorAttributeRequests(ctx context.Context, vendorProfileID uuid.UUID) ([]AttributeRequestDTO, error) {
	requests, err := s.repo.ListVendorAttributeRequests(ctx, vendorProfileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list attribute requests")
	}
	return toAttributeRequestDTOs(requests), nil
}

// DecideAttributeRequest settles a pending request. Approval creates the
// requested attribute in the same transaction that flips the status, so
// the request never reads approved without the value existing. A value
// that meanwhile came to exist surfaces as a conflict and leaves the
// request pending for the admin to reject instead.
func (s *service) DecideAttributeRequest(ctx context.Context, id uuid.UUID, approve bool) (*AttributeRequestDTO, error) {
	var decided *models.AttributeRequest
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		request, err := repo.FindAttributeRequestByID(ctx, id)
		if err != nil {
			return classifyNotFound(err, "attribute request not found")
		}
		if request.Status != enums.AttributeRequestStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "attribute request already decided")
		}

		if approve {
			if err := createRequestedAttribute(ctx, tx, repo, request); err != nil {
				return err
			}
			request.Status = enums.AttributeRequestStatusApproved
		} else {
			request.Status = enums.AttributeRequestStatusRejected
		}
		now := time.Now().UTC()
		request.DecidedAt = &now

		if err := repo.SaveAttributeRequest(ctx, request); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update attribute request")
		}
		decided = request
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decide attribute request")
	}

	dto := FromAttributeRequestModel(decided)
	return &dto, nil
}

func createRequestedAttribute(ctx context.Context, tx *gorm.DB, repo *Repository, request *models.AttributeRequest) error {
	switch request.AttributeType {
	case enums.AttributeTypeCategory:
		exists, err := repo.CategoryNameExists(ctx, request.Value, nil)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check category name")
		}
		if exists {
			return pkgerrors.New(pkgerrors.CodeConflict, "category with this name already exists")
		}
		categorySlug, err := slug.Unique(tx, "categories", "slug", slug.Make(request.Value), nil)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "allocate category slug")
		}
		return classifyAttributeCreate(repo.CreateCategory(ctx, &models.Category{
			ID:   newID(),
			Name: request.Value,
			Slug: categorySlug,
		}), "category")
	case enums.AttributeTypeSize:
		return classifyAttributeCreate(repo.CreateSize(ctx, &models.Size{
			ID:   newID(),
			Name: request.Value,
		}), "size")
	case enums.AttributeTypeColor:
		return classifyAttributeCreate(repo.CreateColor(ctx, &models.Color{
			ID:   newID(),
			Name: request.Value,
		}), "color")
	default:
		return pkgerrors.New(pkgerrors.CodeInternal, "unknown attribute type")
	}
}

func classifyAttributeCreate(err error, kind string) error {
	if err == nil {
		return nil
	}
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, kind+" with this name already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create "+kind)
}

func toAttributeRequestDTOs(requests []models.AttributeRequest) []AttributeRequestDTO {
	out := make([]AttributeRequestDTO, 0, len(requests))
	for i := range requests {
		out = append(out, FromAttributeRequestModel(&requests[i]))
	}
	return out
}
