package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/menna-app/menna-backend/pkg/enums"
)

// Plan defines a credit package providers can subscribe to.
type Plan struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string          `gorm:"column:name;not null"`
	PlanType       enums.PlanType  `gorm:"column:plan_type;not null"`
	MonthlyCredits int             `gorm:"column:monthly_credits;not null;default:0"`
	Price          decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Features       pq.StringArray  `gorm:"column:features;type:text[]"`
}
