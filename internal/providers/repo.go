package providers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/menna-app/menna-backend/pkg/db/models"
	"github.com/menna-app/menna-backend/pkg/pagination"
)

// Repository exposes provider persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new provider profile.
func (r *Repository) Create(ctx context.Context, provider *models.Provider) (*models.Provider, error) {
	if err := r.db.WithContext(ctx).Create(provider).Error; err != nil {
		return nil, err
	}
	return provider, nil
}

// FindByID loads a provider profile by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Provider, error) {
	var provider models.Provider
	if err := r.db.WithContext(ctx).First(&provider, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

// List returns providers matching the conjunctive filters. When the rating
// sort is requested the result is ordered by the aggregate; otherwise newest
// profiles come first and the cursor walks (created_at, id) downward.
func (r *Repository) List(ctx context.Context, input ListInput) ([]models.Provider, error) {
	query := r.db.WithContext(ctx).Model(&models.Provider{})

	f := input.Filters
	if f.CategoryID != nil {
		query = query.Where("? = ANY(category_ids)", *f.CategoryID)
	}
	if f.CityID != nil {
		query = query.Where("city_id = ?", *f.CityID)
	}
	// Every requested area must be served by the provider.
	for _, areaID := range f.AreaIDs {
		query = query.Where("? = ANY(area_ids)", areaID)
	}
	if f.Verified != nil {
		query = query.Where("verified = ?", *f.Verified)
	}
	if f.Language != "" {
		query = query.Where("? = ANY(languages)", f.Language)
	}

	limit := pagination.LimitWithBuffer(input.Pagination.Limit)

	if input.SortByRating {
		query = query.Order("rating DESC, rating_count DESC, id")
	} else {
		cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
		if err != nil {
			return nil, err
		}
		if cursor != nil {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
		query = query.Order("created_at DESC, id DESC")
	}

	var providers []models.Provider
	if err := query.Limit(limit).Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

// ApplyRating folds one review rating into the provider aggregate with a
// single read-modify-write statement so concurrent reviews cannot lose
// updates.
func (r *Repository) ApplyRating(ctx context.Context, providerID uuid.UUID, rating int) error {
	return r.db.WithContext(ctx).
		Model(&models.Provider{}).
		Where("id = ?", providerID).
		Updates(map[string]any{
			"rating":       gorm.Expr("(rating * rating_count + ?) / (rating_count + 1)", rating),
			"rating_count": gorm.Expr("rating_count + 1"),
		}).Error
}
