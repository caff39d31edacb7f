package ledger

import (
	"context"

	"github.com/robinvdvleuten/costbasis/txn"
)

// Handler processes one transaction type against an inventory.
// A handler either fully applies its transaction or leaves the inventory
// unchanged and returns an error.
type Handler interface {
	Handle(ctx context.Context, inv *Inventory, tx txn.Transaction) (*Disposal, error)
}

// BuyHandler processes BUY transactions.
type BuyHandler struct{}

func (h *BuyHandler) Handle(ctx context.Context, inv *Inventory, tx txn.Transaction) (*Disposal, error) {
	return nil, inv.AddLot(tx.BuyCoin, tx.BuyAmount, tx.BuyPricePerCoin, tx.Date)
}

// SellHandler processes SELL transactions.
// A sell without a positive amount and price is a no-op.
type SellHandler struct{}

func (h *SellHandler) Handle(ctx context.Context, inv *Inventory, tx txn.Transaction) (*Disposal, error) {
	if !tx.SellAmount.IsPositive() || !tx.SellPricePerCoin.IsPositive() {
		return nil, nil
	}
	return inv.Dispose(tx.SellCoin, tx.SellAmount, tx.SellPricePerCoin)
}

// TradeHandler processes TRADE transactions.
//
// The value of the acquired leg (buyAmount * buyPricePerCoin) is the proceeds
// of the disposed leg, which determines how much of sellCoin is given up.
// The acquisition only happens after the disposal succeeded. A trade whose
// disposed quantity rounds to zero is a no-op.
type TradeHandler struct{}

func (h *TradeHandler) Handle(ctx context.Context, inv *Inventory, tx txn.Transaction) (*Disposal, error) {
	proceeds := tx.BuyAmount.Mul(tx.BuyPricePerCoin)
	if !tx.SellPricePerCoin.IsPositive() || !proceeds.IsPositive() {
		return nil, nil
	}

	if tx.BuyAmount.IsNegative() {
		return nil, &NegativeAmountError{Symbol: tx.BuyCoin, Amount: tx.BuyAmount}
	}

	quantity := inv.config.roundQuantity(proceeds.Div(tx.SellPricePerCoin))
	if quantity.IsZero() {
		return nil, nil
	}

	disposal, err := inv.Dispose(tx.SellCoin, quantity, tx.SellPricePerCoin)
	if err != nil {
		return nil, err
	}

	if err := inv.AddLot(tx.BuyCoin, tx.BuyAmount, tx.BuyPricePerCoin, tx.Date); err != nil {
		return nil, err
	}

	return disposal, nil
}

// handlerRegistry maps transaction types to their handlers.
// UNKNOWN has no handler and is a no-op.
var handlerRegistry = map[txn.Type]Handler{
	txn.Buy:   &BuyHandler{},
	txn.Sell:  &SellHandler{},
	txn.Trade: &TradeHandler{},
}

// GetHandler returns the handler for a given transaction type.
// Returns nil if no handler is registered for the type.
func GetHandler(t txn.Type) Handler {
	return handlerRegistry[t]
}
