package valuation

import (
	"context"

	"skinfolio_backend/internal/feature/lists/domain/entity"
	priceentity "skinfolio_backend/internal/feature/prices/domain/entity"
)

// Quote holds the per-unit sell prices of an item in the list currency.
type Quote struct {
	Steam   *int64
	Buff163 *int64
}

// LookupPrice resolves the price of itemID in refresh, converted into
// currency. A missing refresh or price row yields an empty quote.
func LookupPrice(ctx context.Context, prices PriceReader, currency entity.Currency, itemID int64, refresh *priceentity.PriceRefresh) (Quote, error) {
	if err := checkCurrency(currency); err != nil {
		return Quote{}, err
	}
	if refresh == nil {
		return Quote{}, nil
	}
	row, err := prices.FindPrice(ctx, refresh.ID, itemID)
	if err != nil {
		return Quote{}, err
	}
	if row == nil {
		return Quote{}, nil
	}

	var q Quote
	if q.Steam, err = convertOptional(row.SteamPriceCentsUsd, currency, refresh.UsdToEurExchangeRate); err != nil {
		return Quote{}, err
	}
	if q.Buff163, err = convertOptional(row.Buff163PriceCentsUsd, currency, refresh.UsdToEurExchangeRate); err != nil {
		return Quote{}, err
	}
	return q, nil
}

func convertOptional(cents *int64, currency entity.Currency, rate float64) (*int64, error) {
	if cents == nil {
		return nil, nil
	}
	v, err := Convert(*cents, currency, rate)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// quoteCache memoizes lookups of one item per refresh. It belongs to a single
// per-item task and is never shared.
type quoteCache struct {
	prices   PriceReader
	currency entity.Currency
	itemID   int64
	quotes   map[int64]Quote
}

func newQuoteCache(prices PriceReader, currency entity.Currency, itemID int64) *quoteCache {
	return &quoteCache{prices: prices, currency: currency, itemID: itemID, quotes: map[int64]Quote{}}
}

func (c *quoteCache) get(ctx context.Context, refresh *priceentity.PriceRefresh) (Quote, error) {
	if refresh == nil {
		return Quote{}, nil
	}
	if q, ok := c.quotes[refresh.ID]; ok {
		return q, nil
	}
	q, err := LookupPrice(ctx, c.prices, c.currency, c.itemID, refresh)
	if err != nil {
		return Quote{}, err
	}
	c.quotes[refresh.ID] = q
	return q, nil
}
