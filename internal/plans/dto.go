package plans

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/menna-app/menna-backend/pkg/db/models"
	"github.com/menna-app/menna-backend/pkg/enums"
)

// PlanDTO is the transport shape for a subscription plan.
type PlanDTO struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	PlanType       enums.PlanType  `json:"plan_type"`
	MonthlyCredits int             `json:"monthly_credits"`
	Price          decimal.Decimal `json:"price"`
	Features       []string        `json:"features,omitempty"`
}

func fromModel(p *models.Plan) PlanDTO {
	return PlanDTO{
		ID:             p.ID,
		Name:           p.Name,
		PlanType:       p.PlanType,
		MonthlyCredits: p.MonthlyCredits,
		Price:          p.Price,
		Features:       p.Features,
	}
}
