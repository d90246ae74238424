package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactEvent records a buyer unlocking a provider's contact details. The
// token is single-issue and later gates review creation.
type ContactEvent struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProviderID uuid.UUID  `gorm:"column:provider_id;type:uuid;not null;index"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	LeadID     *uuid.UUID `gorm:"column:lead_id;type:uuid"`
	Token      string     `gorm:"column:token;not null;uniqueIndex"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}
