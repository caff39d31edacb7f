package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Consumption planning
//
// Consume never mutates a balance while walking its lots. It first builds a
// ConsumeDelta describing how much every lot gives up, and the delta is only
// applied once the whole quantity is covered. A failed plan leaves the
// inventory untouched.

// LotReduction is the portion taken from one lot.
type LotReduction struct {
	Index  int             // Position of the lot in the balance
	Amount decimal.Decimal // Quantity taken (always positive)
}

// ConsumeDelta is the planned reduction of one symbol's balance.
type ConsumeDelta struct {
	Symbol     string
	Requested  decimal.Decimal
	Reductions []LotReduction
	Consumed   []Lot           // Snapshot of the consumed portions in FIFO order
	Cost       decimal.Decimal // Unrounded acquisition cost of the consumed portions
}

// Disposed returns the quantity the delta removes from the balance.
func (d *ConsumeDelta) Disposed() decimal.Decimal {
	total := decimal.Zero
	for _, r := range d.Reductions {
		total = total.Add(r.Amount)
	}
	return total
}

// String returns a human-readable representation of the delta
func (d *ConsumeDelta) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Consume %s %s", d.Requested, d.Symbol)
	for _, lot := range d.Consumed {
		sb.WriteString("\n  ")
		sb.WriteString(lot.String())
	}
	return sb.String()
}
