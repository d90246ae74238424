package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	dbtypes "github.com/menna-app/menna-backend/pkg/db/types"
	"github.com/menna-app/menna-backend/pkg/types"
)

// Provider is a service seller's public profile plus rating aggregate.
type Provider struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Name         string            `gorm:"column:name;not null"`
	BioI18n      types.LocaleMap   `gorm:"column:bio_i18n;type:jsonb;not null"`
	AvatarURL    *string           `gorm:"column:avatar_url"`
	Verified     bool              `gorm:"column:verified;not null;default:false"`
	Languages    pq.StringArray    `gorm:"column:languages;type:text[]"`
	CategoryIDs  dbtypes.UUIDArray `gorm:"column:category_ids;type:uuid[];not null;default:ARRAY[]::uuid[]"`
	CityID       uuid.UUID         `gorm:"column:city_id;type:uuid;not null;index"`
	AreaIDs      dbtypes.UUIDArray `gorm:"column:area_ids;type:uuid[];not null;default:ARRAY[]::uuid[]"`
	PricingHint  *string           `gorm:"column:pricing_hint"`
	Availability *string           `gorm:"column:availability"`
	Whatsapp     *string           `gorm:"column:whatsapp"`
	Phone        *string           `gorm:"column:phone"`
	Rating       float64           `gorm:"column:rating;not null;default:0"`
	RatingCount  int               `gorm:"column:rating_count;not null;default:0"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
