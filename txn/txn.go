// Package txn declares the typed transaction records consumed by the cost basis
// ledger.
//
// Raw records arrive as Input values, either decoded from a JSON calculation
// request or produced by the spreadsheet parser. Every field of an Input is
// optional and loosely typed. A Normalizer turns each Input into a canonical
// Transaction exactly once, applying all defaulting rules:
//
//   - type is case-insensitive and defaults to BUY; unrecognized types become UNKNOWN
//   - date defaults to the current timestamp
//   - buyCoin and sellCoin default to "UNKNOWN"
//   - amounts and prices default to zero; non-numeric or negative values are
//     coerced to zero unless the normalizer runs in strict mode
//
// Transactions can also be constructed directly with the builders in this
// package, which is how tests and importers generate batches from code.
package txn

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DateLayout is the layout used when a transaction carries no date.
const DateLayout = "2006-01-02 15:04:05"

// UnknownSymbol is the asset symbol used when a required coin is missing.
const UnknownSymbol = "UNKNOWN"

// Type is the kind of a transaction.
type Type int

const (
	// Buy acquires BuyAmount of BuyCoin at BuyPricePerCoin.
	Buy Type = iota
	// Sell disposes SellAmount of SellCoin at SellPricePerCoin.
	Sell
	// Trade exchanges SellCoin for BuyCoin in a single event.
	Trade
	// Unknown is any unsupported type. Unknown transactions are no-ops.
	Unknown
)

// ParseType parses a transaction type case-insensitively.
// An empty string is a BUY; anything unrecognized is Unknown.
func ParseType(s string) Type {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "BUY":
		return Buy
	case "SELL":
		return Sell
	case "TRADE":
		return Trade
	default:
		return Unknown
	}
}

func (t Type) String() string {
	switch t {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	case Trade:
		return "TRADE"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON encodes the type as its upper-case name.
func (t Type) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// Position is the location of a record in its source file.
// Records decoded from JSON only carry a filename.
type Position struct {
	Filename string
	Line     int // 1-indexed, 0 when unknown
	Column   int // 1-indexed, 0 when unknown
}

// IsZero reports whether the position carries no line information.
func (p Position) IsZero() bool {
	return p.Line == 0
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d", p.Filename, p.Line)
	}
	return fmt.Sprintf("line %d", p.Line)
}

// Transaction is a normalized acquisition, disposal or exchange event.
// It is a value type and is never mutated after construction.
type Transaction struct {
	Type             Type            `json:"type"`
	Date             string          `json:"date"`
	BuyCoin          string          `json:"buyCoin"`
	SellCoin         string          `json:"sellCoin"`
	BuyAmount        decimal.Decimal `json:"buyAmount"`
	SellAmount       decimal.Decimal `json:"sellAmount"`
	BuyPricePerCoin  decimal.Decimal `json:"buyPricePerCoin"`
	SellPricePerCoin decimal.Decimal `json:"sellPricePerCoin"`

	Pos Position `json:"-"`
}

// String returns a compact one-line description of the transaction.
func (t Transaction) String() string {
	switch t.Type {
	case Buy:
		return fmt.Sprintf("%s BUY %s %s @ %s", t.Date, t.BuyAmount, t.BuyCoin, t.BuyPricePerCoin)
	case Sell:
		return fmt.Sprintf("%s SELL %s %s @ %s", t.Date, t.SellAmount, t.SellCoin, t.SellPricePerCoin)
	case Trade:
		return fmt.Sprintf("%s TRADE %s @ %s for %s %s @ %s",
			t.Date, t.SellCoin, t.SellPricePerCoin, t.BuyAmount, t.BuyCoin, t.BuyPricePerCoin)
	default:
		return fmt.Sprintf("%s UNKNOWN", t.Date)
	}
}
