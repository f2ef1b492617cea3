// Package adapters provides repository implementations for the prices feature.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"skinfolio_backend/internal/feature/prices/domain/entity"
)

// priceBatchSize bounds the number of rows per INSERT statement.
const priceBatchSize = 500

// pricePostgres stores price refreshes and their price rows.
// A *gorm.DB is a connection pool, so the repository is safe for concurrent use.
type pricePostgres struct {
	db *gorm.DB
}

// NewPriceRepository creates a new price repository.
func NewPriceRepository(db *gorm.DB) *pricePostgres {
	return &pricePostgres{db: db}
}

// RefreshesSince returns the refreshes created at or after since, newest first.
func (r *pricePostgres) RefreshesSince(ctx context.Context, since time.Time) ([]entity.PriceRefresh, error) {
	var rows []PriceRefreshModel
	if err := r.db.WithContext(ctx).
		Where("created_utc >= ?", since.UTC()).
		Order("created_utc DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.PriceRefresh, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

// LatestRefresh returns the newest refresh, or nil when none exists.
func (r *pricePostgres) LatestRefresh(ctx context.Context) (*entity.PriceRefresh, error) {
	var m PriceRefreshModel
	if err := r.db.WithContext(ctx).Order("created_utc DESC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	e := m.toEntity()
	return &e, nil
}

// FindPrice returns the price row of itemID in refreshID, or nil when the
// refresh has no quote for the item.
func (r *pricePostgres) FindPrice(ctx context.Context, refreshID, itemID int64) (*entity.Price, error) {
	var m PriceModel
	if err := r.db.WithContext(ctx).
		Where("refresh_id = ? AND item_id = ?", refreshID, itemID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m.toEntity(), nil
}

// SaveRefresh stores a refresh and all of its prices in one transaction and
// sets refresh.ID.
func (r *pricePostgres) SaveRefresh(ctx context.Context, refresh *entity.PriceRefresh, prices []entity.Price) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := PriceRefreshModel{
			CreatedUTC:           refresh.CreatedUTC.UTC(),
			UsdToEurExchangeRate: refresh.UsdToEurExchangeRate,
			SteamUpdatedUTC:      refresh.SteamUpdatedUTC,
			Buff163UpdatedUTC:    refresh.Buff163UpdatedUTC,
		}
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("failed to create price refresh: %w", err)
		}

		if len(prices) > 0 {
			rows := make([]PriceModel, 0, len(prices))
			for _, p := range prices {
				rows = append(rows, toPriceModel(m.ID, p))
			}
			if err := tx.CreateInBatches(&rows, priceBatchSize).Error; err != nil {
				return fmt.Errorf("failed to create prices: %w", err)
			}
		}
		refresh.ID = m.ID
		return nil
	})
}
