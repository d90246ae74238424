package models

import (
	"github.com/google/uuid"

	"github.com/menna-app/menna-backend/pkg/types"
)

// Area is a neighborhood within a city, localized.
type Area struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CityID   uuid.UUID       `gorm:"column:city_id;type:uuid;not null;index"`
	NameI18n types.LocaleMap `gorm:"column:name_i18n;type:jsonb;not null"`
}
