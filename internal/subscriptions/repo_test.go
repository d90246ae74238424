package subscriptions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/menna-app/menna-backend/pkg/db/models"
)

func setupSubscriptionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS subscriptions (
  id TEXT PRIMARY KEY,
  provider_id TEXT NOT NULL,
  plan_id TEXT NOT NULL,
  credits INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  expires_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	t.Cleanup(func() {
		_ = db.Exec("DELETE FROM subscriptions").Error
	})

	return db
}

func mustCreateSubscription(t *testing.T, db *gorm.DB, credits int, active bool, expiresAt *time.Time) *models.Subscription {
	t.Helper()
	sub := &models.Subscription{
		ID:         uuid.New(),
		ProviderID: uuid.New(),
		PlanID:     uuid.New(),
		Credits:    credits,
		Active:     active,
		ExpiresAt:  expiresAt,
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func TestGetActiveSkipsInactiveAndExpired(t *testing.T) {
	db := setupSubscriptionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	inactive := mustCreateSubscription(t, db, 10, false, nil)
	expiry := now.Add(-time.Hour)
	expired := mustCreateSubscription(t, db, 10, true, &expiry)
	current := mustCreateSubscription(t, db, 10, true, nil)

	got, err := repo.GetActive(ctx, inactive.ProviderID, now)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetActive(ctx, expired.ProviderID, now)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetActive(ctx, current.ProviderID, now)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, current.ID, got.ID)
}

func TestDebitCreditStopsAtZero(t *testing.T) {
	db := setupSubscriptionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	sub := mustCreateSubscription(t, db, 2, true, nil)

	for i := 0; i < 2; i++ {
		spent, err := repo.DebitCredit(ctx, sub.ID)
		require.NoError(t, err)
		assert.True(t, spent, "debit %d should spend a credit", i+1)
	}

	spent, err := repo.DebitCredit(ctx, sub.ID)
	require.NoError(t, err)
	assert.False(t, spent, "debit at zero balance must not spend")

	var reloaded models.Subscription
	require.NoError(t, db.First(&reloaded, "id = ?", sub.ID).Error)
	assert.Equal(t, 0, reloaded.Credits)
}
