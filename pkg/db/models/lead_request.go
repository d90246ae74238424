package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/menna-app/menna-backend/pkg/db/types"
)

// LeadRequest is a buyer's request for service in a category and geography.
type LeadRequest struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	CategoryID    uuid.UUID         `gorm:"column:category_id;type:uuid;not null;index"`
	CityID        uuid.UUID         `gorm:"column:city_id;type:uuid;not null;index"`
	AreaIDs       dbtypes.UUIDArray `gorm:"column:area_ids;type:uuid[];not null;default:ARRAY[]::uuid[]"`
	Description   string            `gorm:"column:description;type:text;not null"`
	PreferredTime *string           `gorm:"column:preferred_time"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
}

func (LeadRequest) TableName() string { return "leads" }
