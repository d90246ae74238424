package leads

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/menna-app/menna-backend/pkg/db/models"
	"github.com/menna-app/menna-backend/pkg/enums"
)

// Repository exposes lead and delivery persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new lead request.
func (r *Repository) Create(ctx context.Context, lead *models.LeadRequest) (*models.LeadRequest, error) {
	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return nil, err
	}
	return lead, nil
}

// FindByID loads a lead by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.LeadRequest, error) {
	var lead models.LeadRequest
	if err := r.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// ListByUser returns the user's leads, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.LeadRequest, error) {
	var rows []models.LeadRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// AddDelivery records handing the lead to a provider. The composite unique
// index rejects a second delivery of the same lead to the same provider.
func (r *Repository) AddDelivery(ctx context.Context, delivery *models.LeadDelivery) (*models.LeadDelivery, error) {
	if err := r.db.WithContext(ctx).Create(delivery).Error; err != nil {
		return nil, err
	}
	return delivery, nil
}

// FindDelivery loads a delivery by its UUID.
func (r *Repository) FindDelivery(ctx context.Context, id uuid.UUID) (*models.LeadDelivery, error) {
	var delivery models.LeadDelivery
	if err := r.db.WithContext(ctx).First(&delivery, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &delivery, nil
}

// ListDeliveriesByProvider returns a provider's deliveries, newest first.
func (r *Repository) ListDeliveriesByProvider(ctx context.Context, providerID uuid.UUID) ([]models.LeadDelivery, error) {
	var rows []models.LeadDelivery
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateDeliveryStatus conditionally advances a delivery from one status to
// the next; the WHERE on the current status makes the transition lost-update
// safe. The return value reports whether a row changed.
func (r *Repository) UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, from, to enums.DeliveryStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.LeadDelivery{}).
		Where("id = ? AND status = ?", id, from).
		UpdateColumn("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
