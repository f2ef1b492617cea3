package entity

import (
	"fmt"
	"time"
)

// ActionKind distinguishes the two kinds of ledger events.
type ActionKind int

const (
	Buy ActionKind = iota + 1
	Sell
)

// String returns the wire tag of the kind ("B" or "S").
func (k ActionKind) String() string {
	switch k {
	case Buy:
		return "B"
	case Sell:
		return "S"
	default:
		return "?"
	}
}

// ParseActionKind accepts the wire tags as well as the long names.
func ParseActionKind(s string) (ActionKind, error) {
	switch s {
	case "B", "b", "buy", "BUY", "Buy":
		return Buy, nil
	case "S", "s", "sell", "SELL", "Sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown action kind %q", s)
	}
}

// Upper bounds accepted for a new action. Their product stays far below the
// int64 range.
const (
	MaxActionAmount int64 = 1_000_000
	MaxUnitPrice    int64 = 100_000_000_000
)

// ItemAction is an immutable buy or sell of one catalog item inside a list.
// UnitPrice is in the smallest unit of the list currency and is never converted.
type ItemAction struct {
	ID         int64
	ListID     int64
	ItemID     int64
	Kind       ActionKind
	UnitPrice  int64
	Amount     int64
	CreatedUTC time.Time
}

// Less orders actions by creation time, ties broken by id.
func (a ItemAction) Less(b ItemAction) bool {
	if !a.CreatedUTC.Equal(b.CreatedUTC) {
		return a.CreatedUTC.Before(b.CreatedUTC)
	}
	return a.ID < b.ID
}
