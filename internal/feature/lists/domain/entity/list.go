// Package entity defines the domain models for the lists feature.
package entity

import (
	"fmt"
	"time"
)

// Currency is the display currency of a list. Prices are stored in USD cents
// and converted into the list currency when a valuation is computed.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

// ParseCurrency validates a currency code coming from a request.
func ParseCurrency(s string) (Currency, error) {
	switch c := Currency(s); c {
	case CurrencyEUR, CurrencyUSD:
		return c, nil
	default:
		return "", fmt.Errorf("unsupported currency %q", s)
	}
}

// List is a named collection of item actions owned by one user.
type List struct {
	ID          int64
	UserID      uint
	Name        string
	Description *string
	URL         string // URL-safe slug, generated at creation and never changed
	Currency    Currency
	Public      bool
	Deleted     bool
	CreatedUTC  time.Time
	UpdatedUTC  time.Time
}

// IsOwnedBy reports whether userID owns the list.
func (l *List) IsOwnedBy(userID uint) bool {
	return userID != 0 && l.UserID == userID
}

// VisibleTo reports whether the list may be read by userID (0 = anonymous).
func (l *List) VisibleTo(userID uint) bool {
	return l.Public || l.IsOwnedBy(userID)
}
