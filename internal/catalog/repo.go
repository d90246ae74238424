package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/menna-app/menna-backend/pkg/db/models"
)

// Repository exposes reference-data reads for categories, cities, and areas.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCategories returns all service categories.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListCities returns all cities.
func (r *Repository) ListCities(ctx context.Context) ([]models.City, error) {
	var cities []models.City
	if err := r.db.WithContext(ctx).Order("id").Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

// ListAreasByCity returns the areas belonging to the given city.
func (r *Repository) ListAreasByCity(ctx context.Context, cityID uuid.UUID) ([]models.Area, error) {
	var areas []models.Area
	if err := r.db.WithContext(ctx).
		Where("city_id = ?", cityID).
		Order("id").
		Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

// CityExists reports whether a city with the given id is present.
func (r *Repository) CityExists(ctx context.Context, cityID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.City{}).
		Where("id = ?", cityID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
