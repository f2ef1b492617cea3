package dto

import (
	"time"

	"skinfolio_backend/internal/feature/lists/domain/entity"
)

// ItemValuationRes is the live state of one item of a list.
type ItemValuationRes struct {
	ItemID                    int64           `json:"item_id"`
	ItemName                  string          `json:"item_name"`
	ItemImage                 string          `json:"item_image"`
	ItemCount                 int64           `json:"item_count"`
	InvestedCapital           int64           `json:"invested_capital"`
	AverageBuyPriceForOne     int64           `json:"average_buy_price_for_one"`
	SteamSellPriceForOne      *int64          `json:"steam_sell_price_for_one"`
	Buff163SellPriceForOne    *int64          `json:"buff163_sell_price_for_one"`
	SteamPerformancePercent   *float64        `json:"steam_performance_percent"`
	Buff163PerformancePercent *float64        `json:"buff163_performance_percent"`
	SteamPerformanceValue     *int64          `json:"steam_performance_value"`
	Buff163PerformanceValue   *int64          `json:"buff163_performance_value"`
	SalesValue                int64           `json:"sales_value"`
	Profit                    int64           `json:"profit"`
	Actions                   []ItemActionRes `json:"actions"`
}

// ItemActionRes is one action inside an item valuation.
type ItemActionRes struct {
	ActionID   int64     `json:"action_id"`
	Action     string    `json:"action"`
	Amount     int64     `json:"amount"`
	Price      int64     `json:"price"`
	CreatedUTC time.Time `json:"created_utc"`
}

func newItemActionRes(a *entity.ItemAction) ItemActionRes {
	return ItemActionRes{
		ActionID:   a.ID,
		Action:     a.Kind.String(),
		Amount:     a.Amount,
		Price:      a.UnitPrice,
		CreatedUTC: a.CreatedUTC,
	}
}

// SnapshotRes is the list total on one day.
type SnapshotRes struct {
	CreatedAt       time.Time `json:"created_at"`
	InvestedCapital int64     `json:"invested_capital"`
	ItemCount       int64     `json:"item_count"`
	SalesValue      int64     `json:"sales_value"`
	Profit          int64     `json:"profit"`
	SteamValue      *int64    `json:"steam_value"`
	Buff163Value    *int64    `json:"buff163_value"`
}

// ValuationRes is the response of GET /lists/:url.
type ValuationRes struct {
	Name                      string             `json:"name"`
	Description               *string            `json:"description"`
	URL                       string             `json:"url"`
	Currency                  string             `json:"currency"`
	Public                    bool               `json:"public"`
	UserID                    uint               `json:"user_id"`
	ItemCount                 int64              `json:"item_count"`
	InvestedCapital           int64              `json:"invested_capital"`
	SalesValue                int64              `json:"sales_value"`
	Profit                    int64              `json:"profit"`
	SteamSellPrice            *int64             `json:"steam_sell_price"`
	Buff163SellPrice          *int64             `json:"buff163_sell_price"`
	SteamPerformancePercent   *float64           `json:"steam_performance_percent"`
	Buff163PerformancePercent *float64           `json:"buff163_performance_percent"`
	SteamPerformanceValue     *int64             `json:"steam_performance_value"`
	Buff163PerformanceValue   *int64             `json:"buff163_performance_value"`
	Items                     []ItemValuationRes `json:"items"`
	Snapshots                 []SnapshotRes      `json:"snapshots"`
}

// NewValuationRes converts a valuation for the response.
func NewValuationRes(v *entity.ListValuation) ValuationRes {
	res := ValuationRes{
		Name:                      v.Name,
		Description:               v.Description,
		URL:                       v.URL,
		Currency:                  string(v.Currency),
		Public:                    v.Public,
		UserID:                    v.UserID,
		ItemCount:                 v.ItemCount,
		InvestedCapital:           v.InvestedCapital,
		SalesValue:                v.SalesValue,
		Profit:                    v.Profit,
		SteamSellPrice:            v.SteamSellPrice,
		Buff163SellPrice:          v.Buff163SellPrice,
		SteamPerformancePercent:   v.SteamPerformancePercent,
		Buff163PerformancePercent: v.Buff163PerformancePercent,
		SteamPerformanceValue:     v.SteamPerformanceValue,
		Buff163PerformanceValue:   v.Buff163PerformanceValue,
		Items:                     make([]ItemValuationRes, 0, len(v.Items)),
		Snapshots:                 make([]SnapshotRes, 0, len(v.Snapshots)),
	}
	for _, it := range v.Items {
		actions := make([]ItemActionRes, 0, len(it.Actions))
		for i := range it.Actions {
			actions = append(actions, newItemActionRes(&it.Actions[i]))
		}
		res.Items = append(res.Items, ItemValuationRes{
			ItemID:                    it.ItemID,
			ItemName:                  it.ItemName,
			ItemImage:                 it.ItemImage,
			ItemCount:                 it.ItemCount,
			InvestedCapital:           it.InvestedCapital,
			AverageBuyPriceForOne:     it.AverageBuyPriceForOne,
			SteamSellPriceForOne:      it.SteamSellPriceForOne,
			Buff163SellPriceForOne:    it.Buff163SellPriceForOne,
			SteamPerformancePercent:   it.SteamPerformancePercent,
			Buff163PerformancePercent: it.Buff163PerformancePercent,
			SteamPerformanceValue:     it.SteamPerformanceValue,
			Buff163PerformanceValue:   it.Buff163PerformanceValue,
			SalesValue:                it.SalesValue,
			Profit:                    it.Profit,
			Actions:                   actions,
		})
	}
	for _, s := range v.Snapshots {
		res.Snapshots = append(res.Snapshots, SnapshotRes{
			CreatedAt:       s.Day,
			InvestedCapital: s.InvestedCapital,
			ItemCount:       s.ItemCount,
			SalesValue:      s.SalesValue,
			Profit:          s.Profit,
			SteamValue:      s.SteamValue,
			Buff163Value:    s.Buff163Value,
		})
	}
	return res
}
