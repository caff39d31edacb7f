package txn

import "github.com/shopspring/decimal"

// Option configures a Transaction built with one of the constructors below.
type Option func(*Transaction)

// WithPosition records the source location of a built transaction.
func WithPosition(pos Position) Option {
	return func(t *Transaction) {
		t.Pos = pos
	}
}

// NewBuy creates a BUY of amount coin at price per coin.
//
// Example:
//
//	tx := txn.NewBuy("BTC", decimal.NewFromInt(10), decimal.NewFromInt(1), "2024-01-01")
func NewBuy(coin string, amount, price decimal.Decimal, date string, opts ...Option) Transaction {
	return build(Transaction{
		Type:            Buy,
		Date:            date,
		BuyCoin:         coin,
		SellCoin:        UnknownSymbol,
		BuyAmount:       amount,
		BuyPricePerCoin: price,
	}, opts)
}

// NewSell creates a SELL of amount coin at the market price per coin.
func NewSell(coin string, amount, price decimal.Decimal, date string, opts ...Option) Transaction {
	return build(Transaction{
		Type:             Sell,
		Date:             date,
		BuyCoin:          UnknownSymbol,
		SellCoin:         coin,
		SellAmount:       amount,
		SellPricePerCoin: price,
	}, opts)
}

// NewTrade creates a TRADE receiving buyAmount of buyCoin at buyPrice in
// exchange for sellCoin valued at sellPrice. The disposed quantity of sellCoin
// is derived from the value received when the trade is processed.
func NewTrade(sellCoin string, sellPrice decimal.Decimal, buyCoin string, buyAmount, buyPrice decimal.Decimal, date string, opts ...Option) Transaction {
	return build(Transaction{
		Type:             Trade,
		Date:             date,
		BuyCoin:          buyCoin,
		SellCoin:         sellCoin,
		BuyAmount:        buyAmount,
		BuyPricePerCoin:  buyPrice,
		SellPricePerCoin: sellPrice,
	}, opts)
}

func build(t Transaction, opts []Option) Transaction {
	for _, opt := range opts {
		opt(&t)
	}
	return t
}
