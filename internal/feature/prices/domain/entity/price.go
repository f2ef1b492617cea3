// Package entity defines the domain models for the prices feature.
package entity

import "time"

// PriceRefresh is one immutable batch of market quotes together with the
// USD exchange rate that was valid when the batch was taken.
type PriceRefresh struct {
	ID                   int64
	CreatedUTC           time.Time
	UsdToEurExchangeRate float64
	SteamUpdatedUTC      *time.Time // Provenance of the Steam quotes
	Buff163UpdatedUTC    *time.Time // Provenance of the Buff163 quotes
}

// Price is the quote of one item inside a PriceRefresh. A nil price means the
// source had no quote for the item in that refresh.
type Price struct {
	RefreshID            int64
	ItemID               int64
	SteamPriceCentsUsd   *int64
	Buff163PriceCentsUsd *int64
}

// Dump is the document produced by the external price feed job.
type Dump struct {
	UsdToEurExchangeRate float64
	SteamUpdatedUTC      *time.Time
	Buff163UpdatedUTC    *time.Time
	Prices               []Price
}
