package catalog

import (
	"github.com/google/uuid"

	"github.com/menna-app/menna-backend/pkg/db/models"
)

// CategoryDTO is the transport shape for a service category.
type CategoryDTO struct {
	ID   uuid.UUID         `json:"id"`
	Name map[string]string `json:"name"`
}

// CityDTO is the transport shape for a city.
type CityDTO struct {
	ID   uuid.UUID         `json:"id"`
	Name map[string]string `json:"name"`
}

// AreaDTO is the transport shape for a neighborhood.
type AreaDTO struct {
	ID     uuid.UUID         `json:"id"`
	CityID uuid.UUID         `json:"city_id"`
	Name   map[string]string `json:"name"`
}

func categoryFromModel(c *models.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.NameI18n}
}

func cityFromModel(c *models.City) CityDTO {
	return CityDTO{ID: c.ID, Name: c.NameI18n}
}

func areaFromModel(a *models.Area) AreaDTO {
	return AreaDTO{ID: a.ID, CityID: a.CityID, Name: a.NameI18n}
}
