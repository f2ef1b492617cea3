package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skinfolio_backend/internal/feature/prices/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	// every connection of an in-memory database is a new database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&PriceRefreshModel{}, &PriceModel{}), "failed to migrate tables")
	return db
}

func ptr(v int64) *int64 { return &v }

func saveRefresh(t *testing.T, repo *pricePostgres, created time.Time, prices ...entity.Price) int64 {
	t.Helper()
	r := &entity.PriceRefresh{CreatedUTC: created, UsdToEurExchangeRate: 0.92}
	require.NoError(t, repo.SaveRefresh(context.Background(), r, prices))
	require.NotZero(t, r.ID)
	return r.ID
}

func TestPricePostgres_SaveRefreshAndFindPrice(t *testing.T) {
	t.Parallel()

	repo := NewPriceRepository(setupTestDB(t))
	ctx := context.Background()

	id := saveRefresh(t, repo, time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC),
		entity.Price{ItemID: 1, SteamPriceCentsUsd: ptr(120), Buff163PriceCentsUsd: nil},
		entity.Price{ItemID: 2, SteamPriceCentsUsd: ptr(5), Buff163PriceCentsUsd: ptr(4)},
	)

	p, err := repo.FindPrice(ctx, id, 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, ptr(120), p.SteamPriceCentsUsd)
	assert.Nil(t, p.Buff163PriceCentsUsd)

	// no row is not an error
	p, err = repo.FindPrice(ctx, id, 3)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPricePostgres_SaveRefresh_RollsBackOnFailure(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewPriceRepository(db)

	r := &entity.PriceRefresh{CreatedUTC: time.Now(), UsdToEurExchangeRate: 1}
	err := repo.SaveRefresh(context.Background(), r, []entity.Price{
		{ItemID: 1, SteamPriceCentsUsd: ptr(1)},
		{ItemID: 1, SteamPriceCentsUsd: ptr(2)}, // duplicate primary key
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&PriceRefreshModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPricePostgres_RefreshesSinceAndLatest(t *testing.T) {
	t.Parallel()

	repo := NewPriceRepository(setupTestDB(t))
	ctx := context.Background()

	latest, err := repo.LatestRefresh(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest, "no refresh yet")

	base := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	saveRefresh(t, repo, base.AddDate(0, 0, -40))
	id2 := saveRefresh(t, repo, base.AddDate(0, 0, -2))
	id3 := saveRefresh(t, repo, base)

	refreshes, err := repo.RefreshesSince(ctx, base.AddDate(0, 0, -30))
	require.NoError(t, err)
	require.Len(t, refreshes, 2)
	assert.Equal(t, id3, refreshes[0].ID)
	assert.Equal(t, id2, refreshes[1].ID)
	assert.True(t, refreshes[0].CreatedUTC.Equal(base))
	assert.InDelta(t, 0.92, refreshes[0].UsdToEurExchangeRate, 1e-9)

	latest, err = repo.LatestRefresh(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, id3, latest.ID)
}
