// Package valuation reconstructs the financial state of a list from its
// buy/sell history and the stored price refreshes.
package valuation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"skinfolio_backend/internal/feature/lists/domain"
	"skinfolio_backend/internal/feature/lists/domain/entity"
)

// Convert converts a price in USD cents into the minor unit of currency using
// the USD→EUR rate stored with the refresh the price belongs to.
func Convert(cents int64, currency entity.Currency, usdToEur float64) (int64, error) {
	switch currency {
	case entity.CurrencyUSD:
		return cents, nil
	case entity.CurrencyEUR:
		return decimal.NewFromInt(cents).Mul(decimal.NewFromFloat(usdToEur)).RoundBank(0).IntPart(), nil
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrUnsupportedCurrency, currency)
	}
}

// checkCurrency fails for currencies Convert cannot handle.
func checkCurrency(currency entity.Currency) error {
	_, err := Convert(0, currency, 1)
	return err
}
