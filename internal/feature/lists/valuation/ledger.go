package valuation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"skinfolio_backend/internal/feature/lists/domain"
	"skinfolio_backend/internal/feature/lists/domain/entity"
)

// Ledger replays the actions of one item with average-cost accounting.
//
// The lots are the cost basis memory: every bought unit adds its price, sells
// never remove lots, and the lots are forgotten only when a buy happens while
// nothing is held. The lots are kept as a multiset (units, total cost).
type Ledger struct {
	lotUnits   int64
	lotCost    int64
	itemCount  int64
	salesValue int64
	profit     int64
	sold       bool
}

// LedgerState is the point-in-time view of a Ledger.
type LedgerState struct {
	ItemCount       int64
	InvestedCapital int64
	AverageBuyPrice int64
	SalesValue      int64
	Profit          int64
}

// Apply replays one action. Actions must be applied in (CreatedUTC, ID) order.
func (l *Ledger) Apply(a entity.ItemAction) error {
	switch a.Kind {
	case entity.Buy:
		if l.itemCount == 0 {
			l.lotUnits, l.lotCost = 0, 0
		}
		cost, ok := mulInt64(a.UnitPrice, a.Amount)
		units, ok2 := addInt64(l.lotUnits, a.Amount)
		lotCost, ok3 := addInt64(l.lotCost, cost)
		count, ok4 := addInt64(l.itemCount, a.Amount)
		if !ok || !ok2 || !ok3 || !ok4 {
			return overflow(a)
		}
		l.lotUnits, l.lotCost, l.itemCount = units, lotCost, count
	case entity.Sell:
		if l.lotUnits == 0 {
			return fmt.Errorf("%w: action %d of item %d", domain.ErrEmptyLedger, a.ID, a.ItemID)
		}
		avg := l.AverageBuyPrice()
		sale, ok := mulInt64(a.UnitPrice, a.Amount)
		sales, ok2 := addInt64(l.salesValue, sale)
		gain, ok3 := mulInt64(a.UnitPrice-avg, a.Amount)
		profit, ok4 := addInt64(l.profit, gain)
		if !ok || !ok2 || !ok3 || !ok4 {
			return overflow(a)
		}
		l.salesValue, l.profit = sales, profit
		l.itemCount -= a.Amount
		l.sold = true
		if l.itemCount < 0 {
			return fmt.Errorf("%w: action %d of item %d leaves %d", domain.ErrNegativeItemCount, a.ID, a.ItemID, l.itemCount)
		}
	default:
		return fmt.Errorf("%w: action %d has kind %d", domain.ErrInternal, a.ID, a.Kind)
	}
	return nil
}

func overflow(a entity.ItemAction) error {
	return fmt.Errorf("%w: action %d of item %d", domain.ErrValueOverflow, a.ID, a.ItemID)
}

func addInt64(a, b int64) (int64, bool) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, false
	}
	return c, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

// AverageBuyPrice is the mean of the lots rounded half to even, 0 without lots.
func (l *Ledger) AverageBuyPrice() int64 {
	if l.lotUnits == 0 {
		return 0
	}
	return decimal.NewFromInt(l.lotCost).Div(decimal.NewFromInt(l.lotUnits)).RoundBank(0).IntPart()
}

// InvestedCapital is the full notional of the lots until the first sell, and
// the held units valued at the unrounded average afterwards.
func (l *Ledger) InvestedCapital() int64 {
	if !l.sold {
		return l.lotCost
	}
	if l.lotUnits == 0 {
		return 0
	}
	return decimal.NewFromInt(l.lotCost).
		Mul(decimal.NewFromInt(l.itemCount)).
		Div(decimal.NewFromInt(l.lotUnits)).
		RoundBank(0).
		IntPart()
}

// State returns the current ledger values.
func (l *Ledger) State() LedgerState {
	return LedgerState{
		ItemCount:       l.itemCount,
		InvestedCapital: l.InvestedCapital(),
		AverageBuyPrice: l.AverageBuyPrice(),
		SalesValue:      l.salesValue,
		Profit:          l.profit,
	}
}

// Replay applies actions in order on a fresh ledger.
func Replay(actions []entity.ItemAction) (*Ledger, error) {
	l := &Ledger{}
	for _, a := range actions {
		if err := l.Apply(a); err != nil {
			return nil, err
		}
	}
	return l, nil
}
