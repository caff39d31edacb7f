package ledger

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Inventory tracks the lots held for every asset symbol in acquisition order.
// It is owned by a single batch and is not safe for concurrent use.
type Inventory struct {
	config   *Config
	balances map[string]*Balance
}

// Consumption is the result of matching a quantity against the lots of a symbol.
type Consumption struct {
	Symbol       string
	Disposed     decimal.Decimal
	Cost         decimal.Decimal // Exact, unrounded cost of the consumed portions
	ConsumedLots []Lot
}

// NewInventory creates an empty inventory. A nil config uses the defaults.
func NewInventory(config *Config) *Inventory {
	if config == nil {
		config = NewConfig()
	}
	return &Inventory{
		config:   config,
		balances: make(map[string]*Balance),
	}
}

// AddLot appends a lot to the tail of the symbol's lot sequence.
// Negative amounts are rejected. A zero amount registers the symbol without
// adding a lot.
func (inv *Inventory) AddLot(symbol string, amount, pricePerCoin decimal.Decimal, date string) error {
	if amount.IsNegative() {
		return &NegativeAmountError{Symbol: symbol, Amount: amount}
	}

	amount = inv.config.roundQuantity(amount)

	balance, ok := inv.balances[symbol]
	if !ok {
		balance = &Balance{TotalAmount: decimal.Zero}
		inv.balances[symbol] = balance
	}

	if amount.IsZero() {
		return nil
	}

	balance.Lots = append(balance.Lots, &Lot{
		Amount:       amount,
		PricePerCoin: pricePerCoin,
		Date:         date,
	})
	balance.TotalAmount = balance.TotalAmount.Add(amount)

	return nil
}

// Consume removes amount from the symbol's lots, oldest first.
// On error the inventory is left unchanged.
func (inv *Inventory) Consume(symbol string, amount decimal.Decimal) (*Consumption, error) {
	delta, err := inv.planConsume(symbol, amount)
	if err != nil {
		return nil, err
	}

	inv.applyConsume(delta)

	return &Consumption{
		Symbol:       symbol,
		Disposed:     delta.Disposed(),
		Cost:         delta.Cost,
		ConsumedLots: delta.Consumed,
	}, nil
}

// planConsume computes the lot reductions for a disposal without mutating state.
func (inv *Inventory) planConsume(symbol string, amount decimal.Decimal) (*ConsumeDelta, error) {
	if amount.IsNegative() {
		return nil, &NegativeAmountError{Symbol: symbol, Amount: amount}
	}

	balance, ok := inv.balances[symbol]
	if !ok {
		return nil, &UnknownAssetError{Symbol: symbol}
	}

	amount = inv.config.roundQuantity(amount)

	delta := &ConsumeDelta{
		Symbol:    symbol,
		Requested: amount,
		Consumed:  make([]Lot, 0),
		Cost:      decimal.Zero,
	}

	remaining := amount
	for i, lot := range balance.Lots {
		if !remaining.IsPositive() {
			break
		}

		take := minDecimal(lot.Amount, remaining)
		if take.IsZero() {
			continue
		}

		delta.Reductions = append(delta.Reductions, LotReduction{Index: i, Amount: take})
		delta.Consumed = append(delta.Consumed, Lot{
			Amount:       take,
			PricePerCoin: lot.PricePerCoin,
			Date:         lot.Date,
		})
		delta.Cost = delta.Cost.Add(take.Mul(lot.PricePerCoin))
		remaining = remaining.Sub(take)
	}

	if remaining.IsPositive() {
		return nil, &InsufficientBalanceError{
			Symbol:    symbol,
			Requested: amount,
			Available: balance.TotalAmount,
		}
	}

	return delta, nil
}

// applyConsume mutates the balance according to a successfully planned delta.
func (inv *Inventory) applyConsume(delta *ConsumeDelta) {
	balance := inv.balances[delta.Symbol]

	for _, r := range delta.Reductions {
		lot := balance.Lots[r.Index]
		lot.Amount = lot.Amount.Sub(r.Amount)
	}

	// Prune exhausted lots, preserving order
	kept := balance.Lots[:0]
	for _, lot := range balance.Lots {
		if lot.Amount.IsPositive() {
			kept = append(kept, lot)
		}
	}
	for i := len(kept); i < len(balance.Lots); i++ {
		balance.Lots[i] = nil
	}
	balance.Lots = kept

	balance.TotalAmount = balance.TotalAmount.Sub(delta.Disposed())
}

// Get returns the total amount held of a symbol.
func (inv *Inventory) Get(symbol string) decimal.Decimal {
	if balance, ok := inv.balances[symbol]; ok {
		return balance.TotalAmount
	}
	return decimal.Zero
}

// Has reports whether the symbol was ever acquired.
func (inv *Inventory) Has(symbol string) bool {
	_, ok := inv.balances[symbol]
	return ok
}

// Symbols returns the held symbols in sorted order.
func (inv *Inventory) Symbols() []string {
	symbols := maps.Keys(inv.balances)
	slices.Sort(symbols)
	return symbols
}

// Snapshot returns a deep copy of every balance.
func (inv *Inventory) Snapshot() Snapshot {
	snapshot := make(Snapshot, len(inv.balances))
	for symbol, balance := range inv.balances {
		snapshot[symbol] = balance.snapshot()
	}
	return snapshot
}
