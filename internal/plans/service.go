package plans

import (
	"context"
	"fmt"

	"github.com/menna-app/menna-backend/pkg/db/models"
	pkgerrors "github.com/menna-app/menna-backend/pkg/errors"
)

// Service defines the behavior needed by the plans controller.
type Service interface {
	ListPlans(ctx context.Context) ([]PlanDTO, error)
}

type planRepository interface {
	List(ctx context.Context) ([]models.Plan, error)
}

type service struct {
	repo planRepository
}

// ServiceParams bundles the dependencies required to build a plans service.
type ServiceParams struct {
	Repo planRepository
}

// NewService constructs a plans service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("plan repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) ListPlans(ctx context.Context) ([]PlanDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list plans")
	}
	dtos := make([]PlanDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, fromModel(&rows[i]))
	}
	return dtos, nil
}
