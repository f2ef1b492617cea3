package valuation

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	catalogentity "skinfolio_backend/internal/feature/catalog/domain/entity"
	"skinfolio_backend/internal/feature/lists/domain/entity"
	priceentity "skinfolio_backend/internal/feature/prices/domain/entity"
)

// itemInput is everything one per-item task needs. All fields except Actions
// are shared read-only between tasks.
type itemInput struct {
	Item        catalogentity.Item
	Actions     []entity.ItemAction // sorted by (CreatedUTC, ID)
	Currency    entity.Currency
	ListCreated time.Time
	WindowDays  int
	Today       time.Time
	Refreshes   []priceentity.PriceRefresh // sorted by CreatedUTC ascending
	Latest      *priceentity.PriceRefresh
	Prices      PriceReader
}

// itemResult is the output of one per-item task.
type itemResult struct {
	Valuation entity.ItemValuation
	Snapshots map[time.Time]entity.ItemSnapshot
}

// buildItem replays the actions of one item against the snapshot days.
//
// Days before the list creation collapse into one zero snapshot recorded on
// the creation day. From then on every day gets the ledger state after all
// actions of that day or earlier; once the actions are exhausted the last
// state is carried forward. A final live snapshot with the latest refresh
// provides the current values.
func buildItem(ctx context.Context, in itemInput) (itemResult, error) {
	quotes := newQuoteCache(in.Prices, in.Currency, in.Item.ID)
	ledger := &Ledger{}
	snapshots := make(map[time.Time]entity.ItemSnapshot, in.WindowDays)
	created := Day(in.ListCreated)
	collapsed := false
	next := 0

	for day := range SnapshotDays(in.WindowDays, in.Today) {
		if err := ctx.Err(); err != nil {
			return itemResult{}, err
		}
		if day.Before(created) {
			if !collapsed {
				snapshots[created] = entity.ItemSnapshot{Day: created}
				collapsed = true
			}
			continue
		}
		for next < len(in.Actions) && !Day(in.Actions[next].CreatedUTC).After(day) {
			if err := ledger.Apply(in.Actions[next]); err != nil {
				return itemResult{}, err
			}
			next++
		}
		q, err := quotes.get(ctx, refreshAt(in.Refreshes, day))
		if err != nil {
			return itemResult{}, err
		}
		snapshots[day] = newItemSnapshot(day, ledger.State(), q)
	}

	for ; next < len(in.Actions); next++ {
		if err := ledger.Apply(in.Actions[next]); err != nil {
			return itemResult{}, err
		}
	}
	live, err := quotes.get(ctx, in.Latest)
	if err != nil {
		return itemResult{}, err
	}
	return itemResult{
		Valuation: newItemValuation(in.Item, ledger.State(), live, in.Actions),
		Snapshots: snapshots,
	}, nil
}

// refreshAt returns the newest refresh whose day is not after day.
func refreshAt(refreshes []priceentity.PriceRefresh, day time.Time) *priceentity.PriceRefresh {
	i := sort.Search(len(refreshes), func(i int) bool {
		return Day(refreshes[i].CreatedUTC).After(day)
	})
	if i == 0 {
		return nil
	}
	return &refreshes[i-1]
}

func newItemSnapshot(day time.Time, s LedgerState, q Quote) entity.ItemSnapshot {
	return entity.ItemSnapshot{
		Day:                    day,
		InvestedCapital:        s.InvestedCapital,
		ItemCount:              s.ItemCount,
		SalesValue:             s.SalesValue,
		Profit:                 s.Profit,
		SteamSellPriceForOne:   q.Steam,
		Buff163SellPriceForOne: q.Buff163,
	}
}

func newItemValuation(item catalogentity.Item, s LedgerState, q Quote, actions []entity.ItemAction) entity.ItemValuation {
	return entity.ItemValuation{
		ItemID:                    item.ID,
		ItemName:                  item.Name,
		ItemImage:                 item.Image,
		ItemCount:                 s.ItemCount,
		InvestedCapital:           s.InvestedCapital,
		AverageBuyPriceForOne:     s.AverageBuyPrice,
		SteamSellPriceForOne:      q.Steam,
		Buff163SellPriceForOne:    q.Buff163,
		SteamPerformancePercent:   PerformancePercent(q.Steam, s.AverageBuyPrice),
		Buff163PerformancePercent: PerformancePercent(q.Buff163, s.AverageBuyPrice),
		SteamPerformanceValue:     performanceValue(q.Steam, s.AverageBuyPrice, s.ItemCount),
		Buff163PerformanceValue:   performanceValue(q.Buff163, s.AverageBuyPrice, s.ItemCount),
		SalesValue:                s.SalesValue,
		Profit:                    s.Profit,
		Actions:                   actions,
	}
}

// PerformancePercent is current/base*100-100 rounded half to even to two
// decimals. It is nil without a current value or with a zero base.
func PerformancePercent(current *int64, base int64) *float64 {
	if current == nil || base == 0 {
		return nil
	}
	p, _ := decimal.NewFromInt(*current).
		Div(decimal.NewFromInt(base)).
		Mul(decimal.NewFromInt(100)).
		Sub(decimal.NewFromInt(100)).
		RoundBank(2).
		Float64()
	return &p
}

func performanceValue(current *int64, avg, count int64) *int64 {
	if current == nil {
		return nil
	}
	v := (*current - avg) * count
	return &v
}
