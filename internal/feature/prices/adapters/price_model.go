package adapters

import (
	"time"

	"skinfolio_backend/internal/feature/prices/domain/entity"
)

// PriceRefreshModel is the GORM model for the price_refreshes table.
type PriceRefreshModel struct {
	ID                   int64     `gorm:"primaryKey"`
	CreatedUTC           time.Time `gorm:"not null;index"`
	UsdToEurExchangeRate float64   `gorm:"not null"`
	SteamUpdatedUTC      *time.Time
	Buff163UpdatedUTC    *time.Time
}

// TableName returns the table name for GORM.
func (PriceRefreshModel) TableName() string {
	return "price_refreshes"
}

func (m *PriceRefreshModel) toEntity() entity.PriceRefresh {
	return entity.PriceRefresh{
		ID:                   m.ID,
		CreatedUTC:           m.CreatedUTC.UTC(),
		UsdToEurExchangeRate: m.UsdToEurExchangeRate,
		SteamUpdatedUTC:      m.SteamUpdatedUTC,
		Buff163UpdatedUTC:    m.Buff163UpdatedUTC,
	}
}

// PriceModel is the GORM model for the prices table. One row per item and refresh.
type PriceModel struct {
	RefreshID            int64 `gorm:"primaryKey;autoIncrement:false"`
	ItemID               int64 `gorm:"primaryKey;autoIncrement:false"`
	SteamPriceCentsUsd   *int64
	Buff163PriceCentsUsd *int64
}

// TableName returns the table name for GORM.
func (PriceModel) TableName() string {
	return "prices"
}

func (m *PriceModel) toEntity() *entity.Price {
	return &entity.Price{
		RefreshID:            m.RefreshID,
		ItemID:               m.ItemID,
		SteamPriceCentsUsd:   m.SteamPriceCentsUsd,
		Buff163PriceCentsUsd: m.Buff163PriceCentsUsd,
	}
}

func toPriceModel(refreshID int64, p entity.Price) PriceModel {
	return PriceModel{
		RefreshID:            refreshID,
		ItemID:               p.ItemID,
		SteamPriceCentsUsd:   p.SteamPriceCentsUsd,
		Buff163PriceCentsUsd: p.Buff163PriceCentsUsd,
	}
}
