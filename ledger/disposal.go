package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Disposal is the realized outcome of one disposal leg.
type Disposal struct {
	DisposedAmount decimal.Decimal `json:"disposedAmount"`
	Cost           decimal.Decimal `json:"cost"`
	Proceeds       decimal.Decimal `json:"proceeds"`
	Gain           decimal.Decimal `json:"gain"`
	ConsumedLots   []Lot           `json:"consumedLots"`
}

// String returns a string representation of the disposal
func (d *Disposal) String() string {
	return fmt.Sprintf("disposed %s: cost %s, proceeds %s, gain %s",
		d.DisposedAmount, d.Cost, d.Proceeds, d.Gain)
}

// IsLoss reports whether the disposal realized a loss.
func (d *Disposal) IsLoss() bool {
	return d.Gain.IsNegative()
}

// Dispose consumes quantity of symbol and values it at marketPrice.
// Cost, proceeds and gain are rounded to the currency scale.
func (inv *Inventory) Dispose(symbol string, quantity, marketPrice decimal.Decimal) (*Disposal, error) {
	consumption, err := inv.Consume(symbol, quantity)
	if err != nil {
		return nil, err
	}

	proceeds := consumption.Disposed.Mul(marketPrice)
	cost := inv.config.roundCurrency(consumption.Cost)
	proceeds = inv.config.roundCurrency(proceeds)

	return &Disposal{
		DisposedAmount: consumption.Disposed,
		Cost:           cost,
		Proceeds:       proceeds,
		Gain:           proceeds.Sub(cost),
		ConsumedLots:   consumption.ConsumedLots,
	}, nil
}
