package ledger

import "github.com/shopspring/decimal"

// dec parses a decimal literal, panicking on malformed test input.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
