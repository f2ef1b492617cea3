package entity

import "time"

// ItemSnapshot is the reconstructed state of one item of a list on one day.
// Sell prices are per unit, converted into the list currency; nil means no
// quote was available.
type ItemSnapshot struct {
	Day                    time.Time
	InvestedCapital        int64
	ItemCount              int64
	SalesValue             int64
	Profit                 int64
	SteamSellPriceForOne   *int64
	Buff163SellPriceForOne *int64
}

// ListSnapshot is the sum of the item snapshots of a list on one day.
// Market values are totals (price × count) and nil until any item contributes.
type ListSnapshot struct {
	Day             time.Time
	InvestedCapital int64
	ItemCount       int64
	SalesValue      int64
	Profit          int64
	SteamValue      *int64
	Buff163Value    *int64
}

// ItemValuation is the current (live) state of one item held in a list.
type ItemValuation struct {
	ItemID                    int64
	ItemName                  string
	ItemImage                 string
	ItemCount                 int64
	InvestedCapital           int64
	AverageBuyPriceForOne     int64
	SteamSellPriceForOne      *int64
	Buff163SellPriceForOne    *int64
	SteamPerformancePercent   *float64
	Buff163PerformancePercent *float64
	SteamPerformanceValue     *int64
	Buff163PerformanceValue   *int64
	SalesValue                int64
	Profit                    int64
	Actions                   []ItemAction
}

// ListValuation is the full valuation of a list: totals, per-item state and
// the day-ordered snapshot series.
type ListValuation struct {
	ListID                    int64
	Name                      string
	Description               *string
	URL                       string
	Currency                  Currency
	Public                    bool
	Deleted                   bool
	UserID                    uint
	ItemCount                 int64
	InvestedCapital           int64
	SalesValue                int64
	Profit                    int64
	SteamSellPrice            *int64
	Buff163SellPrice          *int64
	SteamPerformancePercent   *float64
	Buff163PerformancePercent *float64
	SteamPerformanceValue     *int64
	Buff163PerformanceValue   *int64
	Items                     []ItemValuation
	Snapshots                 []ListSnapshot
}
