package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/menna-app/menna-backend/pkg/enums"
)

// LeadDelivery records handing a lead to one provider. A provider receives a
// given lead at most once, enforced by the composite unique index.
type LeadDelivery struct {
	ID         uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	LeadID     uuid.UUID            `gorm:"column:lead_id;type:uuid;not null;uniqueIndex:idx_lead_deliveries_lead_provider"`
	ProviderID uuid.UUID            `gorm:"column:provider_id;type:uuid;not null;uniqueIndex:idx_lead_deliveries_lead_provider"`
	Status     enums.DeliveryStatus `gorm:"column:status;not null;default:'delivered'"`
	CreatedAt  time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (LeadDelivery) TableName() string { return "lead_deliveries" }
