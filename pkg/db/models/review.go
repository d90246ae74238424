package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a buyer's one-time rating of a delivered lead.
type Review struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	LeadDeliveryID uuid.UUID `gorm:"column:lead_delivery_id;type:uuid;not null;index"`
	Rating         int       `gorm:"column:rating;not null"`
	Comment        *string   `gorm:"column:comment;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
