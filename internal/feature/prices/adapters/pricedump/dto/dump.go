// Package dto defines the wire format of a price dump document.
package dto

import "time"

// Dump is the JSON document written by the price feed job.
type Dump struct {
	UsdToEur          float64      `json:"usd_to_eur"`
	SteamUpdatedUTC   *time.Time   `json:"steam_updated_utc"`
	Buff163UpdatedUTC *time.Time   `json:"buff163_updated_utc"`
	Prices            []PriceEntry `json:"prices"`
}

// PriceEntry is the quote of one item in USD cents. null means no quote.
type PriceEntry struct {
	ItemID  int64  `json:"item_id"`
	Steam   *int64 `json:"steam"`
	Buff163 *int64 `json:"buff163"`
}
