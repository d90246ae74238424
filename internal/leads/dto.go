package leads

import (
	"time"

	"github.com/google/uuid"

	"github.com/menna-app/menna-backend/pkg/db/models"
	"github.com/menna-app/menna-backend/pkg/enums"
)

// CreateLeadRequest captures the payload for posting a new lead.
type CreateLeadRequest struct {
	CategoryID    uuid.UUID   `json:"category_id" validate:"required"`
	CityID        uuid.UUID   `json:"city_id" validate:"required"`
	AreaIDs       []uuid.UUID `json:"area_ids" validate:"required,min=1"`
	Description   string      `json:"description" validate:"required"`
	PreferredTime *string     `json:"preferred_time,omitempty"`
}

// UpdateDeliveryStatusRequest moves a delivery along its lifecycle.
type UpdateDeliveryStatusRequest struct {
	Status enums.DeliveryStatus `json:"status" validate:"required"`
}

// LeadDTO is the transport shape for a lead request.
type LeadDTO struct {
	ID            uuid.UUID   `json:"id"`
	UserID        uuid.UUID   `json:"user_id"`
	CategoryID    uuid.UUID   `json:"category_id"`
	CityID        uuid.UUID   `json:"city_id"`
	AreaIDs       []uuid.UUID `json:"area_ids"`
	Description   string      `json:"description"`
	PreferredTime *string     `json:"preferred_time,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// DeliveryDTO is the transport shape for a lead delivery.
type DeliveryDTO struct {
	ID         uuid.UUID            `json:"id"`
	LeadID     uuid.UUID            `json:"lead_id"`
	ProviderID uuid.UUID            `json:"provider_id"`
	Status     enums.DeliveryStatus `json:"status"`
	// CreditSpent reports whether the delivery consumed a subscription credit.
	CreditSpent bool      `json:"credit_spent"`
	CreatedAt   time.Time `json:"created_at"`
}

func LeadFromModel(l *models.LeadRequest) *LeadDTO {
	if l == nil {
		return nil
	}
	return &LeadDTO{
		ID:            l.ID,
		UserID:        l.UserID,
		CategoryID:    l.CategoryID,
		CityID:        l.CityID,
		AreaIDs:       l.AreaIDs,
		Description:   l.Description,
		PreferredTime: l.PreferredTime,
		CreatedAt:     l.CreatedAt,
	}
}

func DeliveryFromModel(d *models.LeadDelivery, creditSpent bool) *DeliveryDTO {
	if d == nil {
		return nil
	}
	return &DeliveryDTO{
		ID:          d.ID,
		LeadID:      d.LeadID,
		ProviderID:  d.ProviderID,
		Status:      d.Status,
		CreditSpent: creditSpent,
		CreatedAt:   d.CreatedAt,
	}
}
