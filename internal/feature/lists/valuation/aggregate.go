package valuation

import (
	"sort"
	"time"

	"skinfolio_backend/internal/feature/lists/domain/entity"
)

// aggregate merges the per-item results into the list valuation. Nullable
// sums stay nil until an item contributes a value and then start from zero.
func aggregate(list *entity.List, results []itemResult) *entity.ListValuation {
	v := &entity.ListValuation{
		ListID:      list.ID,
		Name:        list.Name,
		Description: list.Description,
		URL:         list.URL,
		Currency:    list.Currency,
		Public:      list.Public,
		Deleted:     list.Deleted,
		UserID:      list.UserID,
		Items:       make([]entity.ItemValuation, 0, len(results)),
	}

	days := map[time.Time]*entity.ListSnapshot{}
	for _, r := range results {
		it := r.Valuation
		v.ItemCount += it.ItemCount
		v.InvestedCapital += it.InvestedCapital
		v.SalesValue += it.SalesValue
		v.Profit += it.Profit
		v.SteamSellPrice = addTotal(v.SteamSellPrice, it.SteamSellPriceForOne, it.ItemCount)
		v.Buff163SellPrice = addTotal(v.Buff163SellPrice, it.Buff163SellPriceForOne, it.ItemCount)
		v.SteamPerformanceValue = addTotal(v.SteamPerformanceValue, it.SteamPerformanceValue, 1)
		v.Buff163PerformanceValue = addTotal(v.Buff163PerformanceValue, it.Buff163PerformanceValue, 1)
		v.Items = append(v.Items, it)

		for day, s := range r.Snapshots {
			ls, ok := days[day]
			if !ok {
				ls = &entity.ListSnapshot{Day: day}
				days[day] = ls
			}
			ls.InvestedCapital += s.InvestedCapital
			ls.ItemCount += s.ItemCount
			ls.SalesValue += s.SalesValue
			ls.Profit += s.Profit
			ls.SteamValue = addTotal(ls.SteamValue, s.SteamSellPriceForOne, s.ItemCount)
			ls.Buff163Value = addTotal(ls.Buff163Value, s.Buff163SellPriceForOne, s.ItemCount)
		}
	}
	v.SteamPerformancePercent = PerformancePercent(v.SteamSellPrice, v.InvestedCapital)
	v.Buff163PerformancePercent = PerformancePercent(v.Buff163SellPrice, v.InvestedCapital)

	v.Snapshots = make([]entity.ListSnapshot, 0, len(days))
	for _, s := range days {
		v.Snapshots = append(v.Snapshots, *s)
	}
	sort.Slice(v.Snapshots, func(i, j int) bool {
		return v.Snapshots[i].Day.Before(v.Snapshots[j].Day)
	})
	return v
}

// addTotal adds price*count to total, skipping a nil price.
func addTotal(total, price *int64, count int64) *int64 {
	if price == nil {
		return total
	}
	var sum int64
	if total != nil {
		sum = *total
	}
	sum += *price * count
	return &sum
}
