package txn

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestBuilders(t *testing.T) {
	t.Run("Buy", func(t *testing.T) {
		tx := NewBuy("BTC", decimal.NewFromInt(10), decimal.NewFromInt(1), "2024-01-01")
		assert.Equal(t, Buy, tx.Type)
		assert.Equal(t, "BTC", tx.BuyCoin)
		assert.Equal(t, "2024-01-01 BUY 10 BTC @ 1", tx.String())
	})

	t.Run("SellWithPosition", func(t *testing.T) {
		pos := Position{Filename: "batch.csv", Line: 4}
		tx := NewSell("BTC", decimal.NewFromInt(5), decimal.NewFromInt(3), "2024-02-01", WithPosition(pos))
		assert.Equal(t, Sell, tx.Type)
		assert.Equal(t, pos, tx.Pos)
		assert.Equal(t, "batch.csv:4", tx.Pos.String())
	})

	t.Run("TradeLeavesSellAmountDerived", func(t *testing.T) {
		tx := NewTrade("X", decimal.NewFromInt(2), "Y", decimal.NewFromInt(50), decimal.NewFromInt(2), "2024-03-01")
		assert.Equal(t, Trade, tx.Type)
		assert.True(t, tx.SellAmount.IsZero())
		assert.Equal(t, "2024-03-01 TRADE X @ 2 for 50 Y @ 2", tx.String())
	})
}
