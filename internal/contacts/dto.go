package contacts

import (
	"time"

	"github.com/google/uuid"

	"github.com/menna-app/menna-backend/pkg/db/models"
)

// ContactTokenDTO is the transport shape for an unlocked contact.
type ContactTokenDTO struct {
	ID         uuid.UUID  `json:"id"`
	ProviderID uuid.UUID  `json:"provider_id"`
	LeadID     *uuid.UUID `json:"lead_id,omitempty"`
	Token      string     `json:"token"`
	CreatedAt  time.Time  `json:"created_at"`
}

func fromModel(e *models.ContactEvent) *ContactTokenDTO {
	if e == nil {
		return nil
	}
	return &ContactTokenDTO{
		ID:         e.ID,
		ProviderID: e.ProviderID,
		LeadID:     e.LeadID,
		Token:      e.Token,
		CreatedAt:  e.CreatedAt,
	}
}
