package formatter

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats a currency amount in the formatter's reporting currency,
// e.g. "$1,234.56". Unknown currency codes fall back to the plain number
// followed by the code.
func (f *Formatter) Money(amount decimal.Decimal) string {
	cur := money.GetCurrency(f.Currency)
	if cur == nil {
		if f.Currency == "" {
			return amount.StringFixed(2)
		}
		return amount.StringFixed(2) + " " + f.Currency
	}

	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}

// Quantity formats an asset quantity without trailing zeros.
func (f *Formatter) Quantity(amount decimal.Decimal) string {
	return amount.String()
}
