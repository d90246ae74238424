package providers

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/menna-app/menna-backend/pkg/db/models"
	dbtypes "github.com/menna-app/menna-backend/pkg/db/types"
	"github.com/menna-app/menna-backend/pkg/types"
)

func mustCreateTestUser(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("menna_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateTestCity(t *testing.T, tx *gorm.DB) *models.City {
	t.Helper()
	city := &models.City{
		ID:       uuid.New(),
		NameI18n: types.LocaleMap{"en": "Testville", "ar": "تستفيل"},
	}
	if err := tx.Create(city).Error; err != nil {
		t.Fatalf("create city: %v", err)
	}
	return city
}

func mustCreateTestArea(t *testing.T, tx *gorm.DB, cityID uuid.UUID) *models.Area {
	t.Helper()
	area := &models.Area{
		ID:       uuid.New(),
		CityID:   cityID,
		NameI18n: types.LocaleMap{"en": "Test Area"},
	}
	if err := tx.Create(area).Error; err != nil {
		t.Fatalf("create area: %v", err)
	}
	return area
}

func mustCreateTestCategory(t *testing.T, tx *gorm.DB) *models.Category {
	t.Helper()
	category := &models.Category{
		ID:       uuid.New(),
		NameI18n: types.LocaleMap{"en": "Test Trade"},
	}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustCreateTestProvider(t *testing.T, tx *gorm.DB, userID, cityID uuid.UUID, categoryIDs, areaIDs []uuid.UUID) *models.Provider {
	t.Helper()
	provider := &models.Provider{
		UserID:      userID,
		Name:        "Repo Provider",
		BioI18n:     types.LocaleMap{"en": "bio"},
		Languages:   pq.StringArray{"ar", "he"},
		CategoryIDs: dbtypes.UUIDArray(categoryIDs),
		CityID:      cityID,
		AreaIDs:     dbtypes.UUIDArray(areaIDs),
	}
	if err := tx.Create(provider).Error; err != nil {
		t.Fatalf("create provider: %v", err)
	}
	return provider
}

func TestRepositoryListFilters(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	user := mustCreateTestUser(t, tx)
	city := mustCreateTestCity(t, tx)
	category := mustCreateTestCategory(t, tx)
	areaA := mustCreateTestArea(t, tx, city.ID)
	areaB := mustCreateTestArea(t, tx, city.ID)

	// Serves both areas.
	full := mustCreateTestProvider(t, tx, user.ID, city.ID,
		[]uuid.UUID{category.ID}, []uuid.UUID{areaA.ID, areaB.ID})
	// Serves only area A.
	partial := mustCreateTestProvider(t, tx, user.ID, city.ID,
		[]uuid.UUID{category.ID}, []uuid.UUID{areaA.ID})

	listed, err := repo.List(ctx, ListInput{Filters: ListFilters{
		CategoryID: &category.ID,
		CityID:     &city.ID,
	}})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected both providers, got %d", len(listed))
	}

	// Multi-area filter requires every area to be served.
	both, err := repo.List(ctx, ListInput{Filters: ListFilters{
		AreaIDs: []uuid.UUID{areaA.ID, areaB.ID},
	}})
	if err != nil {
		t.Fatalf("list by both areas: %v", err)
	}
	if len(both) != 1 || both[0].ID != full.ID {
		t.Fatalf("expected only the full-coverage provider, got %d rows", len(both))
	}

	single, err := repo.List(ctx, ListInput{Filters: ListFilters{
		AreaIDs: []uuid.UUID{areaA.ID},
	}})
	if err != nil {
		t.Fatalf("list by one area: %v", err)
	}
	if len(single) != 2 {
		t.Fatalf("expected both providers for area A, got %d", len(single))
	}

	arabic, err := repo.List(ctx, ListInput{Filters: ListFilters{Language: "ar"}})
	if err != nil {
		t.Fatalf("list by language: %v", err)
	}
	if len(arabic) != 2 {
		t.Fatalf("expected both arabic speakers, got %d", len(arabic))
	}

	english, err := repo.List(ctx, ListInput{Filters: ListFilters{Language: "en"}})
	if err != nil {
		t.Fatalf("list by missing language: %v", err)
	}
	if len(english) != 0 {
		t.Fatalf("expected no english speakers, got %d", len(english))
	}

	_ = partial
}

func TestRepositoryApplyRating(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	user := mustCreateTestUser(t, tx)
	city := mustCreateTestCity(t, tx)
	provider := mustCreateTestProvider(t, tx, user.ID, city.ID, nil, nil)

	for _, rating := range []int{5, 3} {
		if err := repo.ApplyRating(ctx, provider.ID, rating); err != nil {
			t.Fatalf("apply rating %d: %v", rating, err)
		}
	}

	updated, err := repo.FindByID(ctx, provider.ID)
	if err != nil {
		t.Fatalf("reload provider: %v", err)
	}
	if updated.RatingCount != 2 {
		t.Fatalf("expected rating_count 2, got %d", updated.RatingCount)
	}
	if math.Abs(updated.Rating-4.0) > 1e-9 {
		t.Fatalf("expected aggregate 4.0, got %f", updated.Rating)
	}
}
