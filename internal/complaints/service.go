package complaints

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
	"github.com/stridekart/backend/pkg/logger"
	"github.com/stridekart/backend/pkg/mailer"
)

func newID() uuid.UUID {
	return uuid.New()
}

// Service defines the complaint workflow: customers file and read their
// own tickets, admins work the full queue.
type Service interface {
	FileComplaint(ctx context.Context, customerProfileID uuid.UUID, req ComplaintRequest) (*ComplaintDTO, error)
	ListMyComplaints(ctx context.Context, customerProfileID uuid.UUID) ([]ComplaintDTO, error)
	ListComplaints(ctx context.Context, statusFilter string) ([]ComplaintDTO, error)
	ResolveComplaint(ctx context.Context, complaintID uuid.UUID, req ResolveRequest) (*ComplaintDTO, error)
}

// ServiceParams bundles the dependencies required to build the complaints
// service. Mailer and Logger are optional; without them resolution
// notifications are skipped.
type ServiceParams struct {
	DB     *db.Client
	Mailer mailer.Mailer
	Logger *logger.Logger
}

type service struct {
	db   *db.Client
	repo *Repository
	mail mailer.Mailer
	logg *logger.Logger
}

// NewService constructs the complaints service with the provided
// dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{
		db:   params.DB,
		repo: NewRepository(params.DB.DB()),
		mail: params.Mailer,
		logg: params.Logger,
	}, nil
}

// FileComplaint opens a ticket for the customer. An order reference is
// validated against the customer's own history so tickets cannot point at
// someone else's order.
func (s *service) FileComplaint(ctx context.Context, customerProfileID uuid.UUID, req ComplaintRequest) (*ComplaintDTO, error) {
	subject := strings.TrimSpace(req.Subject)
	description := strings.TrimSpace(req.Description)
	if subject == "" || description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject and description are required")
	}

	if req.OrderID != nil {
		if _, err := s.repo.FindOrderForCustomer(ctx, customerProfileID, *req.OrderID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "order not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}
	}

	complaint := &models.Complaint{
		ID:                newID(),
		CustomerProfileID: customerProfileID,
		OrderID:           req.OrderID,
		Subject:           subject,
		Description:       description,
		Status:            enums.ComplaintStatusOpen,
	}
	if err := s.repo.Create(ctx, complaint); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create complaint")
	}

	dto := FromComplaintModel(complaint)
	return &dto, nil
}

// ListMyComplaints returns the customer's own tickets, newest first.
func (s *service) ListMyComplaints(ctx context.Context, customerProfileID uuid.UUID) ([]ComplaintDTO, error) {
	complaints, err := s.repo.ListByCustomer(ctx, customerProfileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list complaints")
	}
	return toDTOs(complaints), nil
}

// ListComplaints returns the admin queue, optionally filtered by status.
func (s *service) ListComplaints(ctx context.Context, statusFilter string) ([]ComplaintDTO, error) {
	var status *enums.ComplaintStatus
	if statusFilter != "" {
		parsed, err := enums.ParseComplaintStatus(statusFilter)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		status = &parsed
	}
	complaints, err := s.repo.ListAll(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list complaints")
	}
	return toDTOs(complaints), nil
}

// ResolveComplaint closes an open ticket with the admin's note. Resolved
// tickets stay resolved.
func (s *service) ResolveComplaint(ctx context.Context, complaintID uuid.UUID, req ResolveRequest) (*ComplaintDTO, error) {
	resolution := strings.TrimSpace(req.Resolution)
	if resolution == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "resolution is required")
	}

	complaint, err := s.repo.FindByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "complaint not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load complaint")
	}
	if complaint.Status == enums.ComplaintStatusResolved {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "complaint already resolved")
	}

	now := time.Now().UTC()
	complaint.Status = enums.ComplaintStatusResolved
	complaint.Resolution = resolution
	complaint.ResolvedAt = &now
	if err := s.repo.Save(ctx, complaint); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update complaint")
	}

	s.notifyResolved(ctx, complaint)

	dto := FromComplaintModel(complaint)
	return &dto, nil
}

// notifyResolved mails the customer their resolution. Delivery is best
// effort and never fails the resolve call.
func (s *service) notifyResolved(ctx context.Context, complaint *models.Complaint) {
	if s.mail == nil {
		return
	}
	email, err := s.repo.CustomerEmail(ctx, complaint.CustomerProfileID)
	if err != nil || email == "" {
		if s.logg != nil {
			s.logg.Warn(ctx, "complaint resolution mail skipped, no customer email")
		}
		return
	}
	body := "Your complaint \"" + complaint.Subject + "\" has been resolved.\n\n" + complaint.Resolution
	if err := s.mail.Send(ctx, email, "Your complaint has been resolved", body); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "complaint resolution mail failed")
	}
}

func toDTOs(complaints []models.Complaint) []ComplaintDTO {
	out := make([]ComplaintDTO, 0, len(complaints))
	for i := range complaints {
		out = append(out, FromComplaintModel(&complaints[i]))
	}
	return out
}
