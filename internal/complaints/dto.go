package complaints

import (
	"time"

	"github.com/google/uuid"

	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
)

// ComplaintRequest is the payload for filing a complaint. The order
// reference is optional and must belong to the filing customer.
type ComplaintRequest struct {
	Subject     string     `json:"subject" validate:"required"`
	Description string     `json:"description" validate:"required"`
	OrderID     *uuid.UUID `json:"order_id,omitempty"`
}

// ResolveRequest carries the admin's resolution note.
type ResolveRequest struct {
	Resolution string `json:"resolution" validate:"required"`
}

// ComplaintDTO is the public shape of a complaint.
type ComplaintDTO struct {
	ID            uuid.UUID             `json:"id"`
	OrderID       *uuid.UUID            `json:"order_id,omitempty"`
	Subject       string                `json:"subject"`
	Description   string                `json:"description"`
	Status        enums.ComplaintStatus `json:"status"`
	Resolution    string                `json:"resolution,omitempty"`
	ResolvedAt    *time.Time            `json:"resolved_at,omitempty"`
	CustomerName  string                `json:"customer_name,omitempty"`
	CustomerEmail string                `json:"customer_email,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

// FromComplaintModel maps a complaint row into a DTO. Customer identity
// fields fill in only when the profile was preloaded for the admin queue.
func FromComplaintModel(complaint *models.Complaint) ComplaintDTO {
	dto := ComplaintDTO{
		ID:          complaint.ID,
		OrderID:     complaint.OrderID,
		Subject:     complaint.Subject,
		Description: complaint.Description,
		Status:      complaint.Status,
		Resolution:  complaint.Resolution,
		ResolvedAt:  complaint.ResolvedAt,
		CreatedAt:   complaint.CreatedAt,
	}
	if complaint.CustomerProfile != nil && complaint.CustomerProfile.Account != nil {
		account := complaint.CustomerProfile.Account
		dto.CustomerName = account.FirstName + " " + account.LastName
		dto.CustomerEmail = account.Email
	}
	return dto
}
