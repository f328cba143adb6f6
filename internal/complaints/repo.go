package complaints

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stridekart/backend/pkg/db"
	"github.com/stridekart/backend/pkg/db/models"
	"github.com/stridekart/backend/pkg/enums"
)

// Repository wraps complaint persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

func (r *Repository) Create(ctx context.Context, complaint *models.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

// FindOrderForCustomer confirms an order reference belongs to the
// complaining customer before it is attached.
func (r *Repository) FindOrderForCustomer(ctx context.Context, customerProfileID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Scopes(db.Active).
		Where("customer_profile_id = ?", customerProfileID).
		First(&order, "id = ?", orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByCustomer returns the customer's complaints, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerProfileID uuid.UUID) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := r.db.WithContext(ctx).
		Where("customer_profile_id = ?", customerProfileID).
		Order("created_at DESC").
		Find(&complaints).Error
	return complaints, err
}

// ListAll returns every complaint for the admin queue, optionally filtered
// by status, newest first.
func (r *Repository) ListAll(ctx context.Context, status *enums.ComplaintStatus) ([]models.Complaint, error) {
	q := r.db.WithContext(ctx).
		Preload("CustomerProfile").
		Preload("CustomerProfile.Account").
		Order("created_at DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var complaints []models.Complaint
	err := q.Find(&complaints).Error
	return complaints, err
}

func (r *Repository) FindByID(ctx context.Context, complaintID uuid.UUID) (*models.Complaint, error) {
	var complaint models.Complaint
	err := r.db.WithContext(ctx).First(&complaint, "id = ?", complaintID).Error
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *Repository) Save(ctx context.Context, complaint *models.Complaint) error {
	return r.db.WithContext(ctx).Save(complaint).Error
}

// CustomerEmail resolves the account email behind a customer profile for
// resolution notifications.
func (r *Repository) CustomerEmail(ctx context.Context, customerProfileID uuid.UUID) (string, error) {
	var email string
	err := r.db.WithContext(ctx).
		Model(&models.CustomerProfile{}).
		Select("accounts.email").
		Joins("JOIN accounts ON accounts.id = customer_profiles.account_id").
		Where("customer_profiles.id = ?", customerProfileID).
		Scan(&email).Error
	return email, err
}
