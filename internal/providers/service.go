package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/menna-app/menna-backend/internal/analytics"
	"github.com/menna-app/menna-backend/pkg/db/models"
	"github.com/menna-app/menna-backend/pkg/enums"
	pkgerrors "github.com/menna-app/menna-backend/pkg/errors"
	"github.com/menna-app/menna-backend/pkg/pagination"
)

// Service defines the behavior needed by the providers controller.
type Service interface {
	ListProviders(ctx context.Context, input ListInput) (*ListResponse, error)
	GetProviderProfile(ctx context.Context, id uuid.UUID) (*ProviderDTO, error)
}

type providerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Provider, error)
	List(ctx context.Context, input ListInput) ([]models.Provider, error)
}

type service struct {
	repo    providerRepository
	tracker analytics.Tracker
}

// ServiceParams bundles the dependencies required to build a providers service.
type ServiceParams struct {
	Repo    providerRepository
	Tracker analytics.Tracker
}

// NewService constructs a providers service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("provider repository is required")
	}
	if params.Tracker == nil {
		return nil, fmt.Errorf("analytics tracker is required")
	}
	return &service{
		repo:    params.Repo,
		tracker: params.Tracker,
	}, nil
}

func (s *service) ListProviders(ctx context.Context, input ListInput) (*ListResponse, error) {
	rows, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list providers")
	}

	pageSize := pagination.NormalizeLimit(input.Pagination.Limit)
	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		// Rating ordering has no stable cursor; only the recency sort pages.
		if !input.SortByRating {
			last := rows[len(rows)-1]
			nextCursor = pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: last.CreatedAt,
				ID:        last.ID,
			})
		}
	}

	dtos := make([]ProviderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}

	payload := map[string]any{"count": len(dtos)}
	if input.Filters.CategoryID != nil {
		payload["category_id"] = input.Filters.CategoryID.String()
	}
	if input.Filters.CityID != nil {
		payload["city_id"] = input.Filters.CityID.String()
	}
	s.tracker.Track(ctx, enums.AnalyticsEventProviderProfileViewed, payload)

	return &ListResponse{
		Providers:  dtos,
		NextCursor: nextCursor,
	}, nil
}

func (s *service) GetProviderProfile(ctx context.Context, id uuid.UUID) (*ProviderDTO, error) {
	provider, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "provider not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load provider")
	}

	s.tracker.Track(ctx, enums.AnalyticsEventProviderProfileViewed, map[string]any{
		"provider_id": provider.ID.String(),
	})

	return FromModel(provider), nil
}
