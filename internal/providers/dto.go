package providers

import (
	"time"

	"github.com/google/uuid"

	"github.com/menna-app/menna-backend/pkg/db/models"
)

// ProviderDTO is the transport shape for a provider profile.
type ProviderDTO struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Bio          map[string]string `json:"bio,omitempty"`
	AvatarURL    *string           `json:"avatar_url,omitempty"`
	Verified     bool              `json:"verified"`
	Languages    []string          `json:"languages,omitempty"`
	CategoryIDs  []uuid.UUID       `json:"category_ids"`
	CityID       uuid.UUID         `json:"city_id"`
	AreaIDs      []uuid.UUID       `json:"area_ids"`
	PricingHint  *string           `json:"pricing_hint,omitempty"`
	Availability *string           `json:"availability,omitempty"`
	Whatsapp     *string           `json:"whatsapp,omitempty"`
	Phone        *string           `json:"phone,omitempty"`
	Rating       float64           `json:"rating"`
	RatingCount  int               `json:"rating_count"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ListResponse carries a page of providers plus the cursor for the next page.
type ListResponse struct {
	Providers  []ProviderDTO `json:"providers"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

func FromModel(p *models.Provider) *ProviderDTO {
	if p == nil {
		return nil
	}

	return &ProviderDTO{
		ID:           p.ID,
		Name:         p.Name,
		Bio:          p.BioI18n,
		AvatarURL:    p.AvatarURL,
		Verified:     p.Verified,
		Languages:    p.Languages,
		CategoryIDs:  p.CategoryIDs,
		CityID:       p.CityID,
		AreaIDs:      p.AreaIDs,
		PricingHint:  p.PricingHint,
		Availability: p.Availability,
		Whatsapp:     p.Whatsapp,
		Phone:        p.Phone,
		Rating:       p.Rating,
		RatingCount:  p.RatingCount,
		CreatedAt:    p.CreatedAt,
	}
}
