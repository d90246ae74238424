package contacts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/menna-app/menna-backend/pkg/db/models"
)

// Repository exposes contact event persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new contact event.
func (r *Repository) Create(ctx context.Context, event *models.ContactEvent) (*models.ContactEvent, error) {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// HasContact reports whether the user unlocked the provider's contact details
// for the given lead.
func (r *Repository) HasContact(ctx context.Context, leadID, providerID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ContactEvent{}).
		Where("lead_id = ? AND provider_id = ? AND user_id = ?", leadID, providerID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
