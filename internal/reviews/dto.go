package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/menna-app/menna-backend/pkg/db/models"
)

// CreateReviewRequest captures the payload for reviewing a delivered lead.
type CreateReviewRequest struct {
	ProviderID uuid.UUID `json:"provider_id" validate:"required"`
	Rating     int       `json:"rating" validate:"required,min=1,max=5"`
	Comment    *string   `json:"comment,omitempty"`
}

// ReviewDTO is the transport shape for a review.
type ReviewDTO struct {
	ID             uuid.UUID `json:"id"`
	LeadDeliveryID uuid.UUID `json:"lead_delivery_id"`
	Rating         int       `json:"rating"`
	Comment        *string   `json:"comment,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func fromModel(r *models.Review) *ReviewDTO {
	if r == nil {
		return nil
	}
	return &ReviewDTO{
		ID:             r.ID,
		LeadDeliveryID: r.LeadDeliveryID,
		Rating:         r.Rating,
		Comment:        r.Comment,
		CreatedAt:      r.CreatedAt,
	}
}
