package models

import (
	"github.com/google/uuid"

	"github.com/menna-app/menna-backend/pkg/types"
)

// City is a top-level service geography, localized.
type City struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	NameI18n types.LocaleMap `gorm:"column:name_i18n;type:jsonb;not null"`
}
