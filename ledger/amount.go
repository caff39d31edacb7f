package ledger

import "github.com/shopspring/decimal"

// roundQuantity rounds an asset quantity to the configured quantity scale.
func (c *Config) roundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(c.QuantityScale)
}

// roundCurrency rounds a currency amount to the configured currency scale.
func (c *Config) roundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(c.CurrencyScale)
}

// minDecimal returns the smaller of a and b.
func minDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
