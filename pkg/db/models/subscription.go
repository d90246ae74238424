package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription tracks a provider's plan enrollment and remaining lead credits.
type Subscription struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProviderID uuid.UUID  `gorm:"column:provider_id;type:uuid;not null;index"`
	PlanID     uuid.UUID  `gorm:"column:plan_id;type:uuid;not null"`
	Credits    int        `gorm:"column:credits;not null;default:0"`
	Active     bool       `gorm:"column:active;not null;default:true"`
	ExpiresAt  *time.Time `gorm:"column:expires_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
