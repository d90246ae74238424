package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/menna-app/menna-backend/pkg/db/models"
	pkgerrors "github.com/menna-app/menna-backend/pkg/errors"
)

// Service defines the behavior needed by the catalog controller.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	ListCities(ctx context.Context) ([]CityDTO, error)
	ListAreas(ctx context.Context, cityID uuid.UUID) ([]AreaDTO, error)
}

type catalogRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListCities(ctx context.Context) ([]models.City, error)
	ListAreasByCity(ctx context.Context, cityID uuid.UUID) ([]models.Area, error)
	CityExists(ctx context.Context, cityID uuid.UUID) (bool, error)
}

type service struct {
	repo catalogRepository
}

// ServiceParams bundles the dependencies required to build a catalog service.
type ServiceParams struct {
	Repo catalogRepository
}

// NewService constructs a catalog service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	dtos := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, categoryFromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) ListCities(ctx context.Context) ([]CityDTO, error) {
	rows, err := s.repo.ListCities(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cities")
	}
	dtos := make([]CityDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, cityFromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) ListAreas(ctx context.Context, cityID uuid.UUID) ([]AreaDTO, error) {
	exists, err := s.repo.CityExists(ctx, cityID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check city")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "city not found")
	}

	rows, err := s.repo.ListAreasByCity(ctx, cityID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list areas")
	}
	dtos := make([]AreaDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, areaFromModel(&rows[i]))
	}
	return dtos, nil
}
