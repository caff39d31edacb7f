package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Lot is a single acquisition of an asset. Only Amount changes over the
// lifetime of a lot, and it only decreases.
type Lot struct {
	Amount       decimal.Decimal `json:"amount"`
	PricePerCoin decimal.Decimal `json:"pricePerCoin"`
	Date         string          `json:"date"`
}

// String returns a string representation of the lot
func (l Lot) String() string {
	return fmt.Sprintf("%s @ %s (%s)", l.Amount, l.PricePerCoin, l.Date)
}

// Cost returns the acquisition cost of the lot's remaining amount.
func (l Lot) Cost() decimal.Decimal {
	return l.Amount.Mul(l.PricePerCoin)
}

// Balance is the holding of one asset: its lots in FIFO order and their total.
// TotalAmount always equals the sum of the remaining lot amounts.
type Balance struct {
	TotalAmount decimal.Decimal
	Lots        []*Lot
}

// BalanceSnapshot is a read-only copy of a Balance.
type BalanceSnapshot struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Lots        []Lot           `json:"lots"`
}

// snapshot copies the balance so later mutations cannot leak into it.
func (b *Balance) snapshot() BalanceSnapshot {
	lots := make([]Lot, len(b.Lots))
	for i, lot := range b.Lots {
		lots[i] = *lot
	}
	return BalanceSnapshot{
		TotalAmount: b.TotalAmount,
		Lots:        lots,
	}
}
