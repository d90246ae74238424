package plans

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/menna-app/menna-backend/pkg/db/models"
	"github.com/menna-app/menna-backend/pkg/enums"
)

func setupPlansTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS plans (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  plan_type TEXT NOT NULL,
  monthly_credits INTEGER NOT NULL DEFAULT 0,
  price NUMERIC NOT NULL,
  features TEXT
);`
	require.NoError(t, db.Exec(schema).Error)
	t.Cleanup(func() {
		_ = db.Exec("DELETE FROM plans").Error
	})

	return db
}

func TestRepositoryListOrdersByPrice(t *testing.T) {
	db := setupPlansTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	pro := &models.Plan{
		ID:             uuid.New(),
		Name:           "Pro",
		PlanType:       enums.PlanTypeSubscription,
		MonthlyCredits: 30,
		Price:          decimal.NewFromFloat(99.00),
		Features:       pq.StringArray{"priority_support"},
	}
	starter := &models.Plan{
		ID:       uuid.New(),
		Name:     "Starter",
		PlanType: enums.PlanTypePayPerLead,
		Price:    decimal.Zero,
	}
	require.NoError(t, db.Create(pro).Error)
	require.NoError(t, db.Create(starter).Error)

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Starter", listed[0].Name)
	assert.Equal(t, "Pro", listed[1].Name)
	assert.True(t, listed[1].Price.Equal(decimal.NewFromFloat(99.00)))

	found, err := repo.FindByID(ctx, pro.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PlanTypeSubscription, found.PlanType)
	assert.Equal(t, 30, found.MonthlyCredits)
}
