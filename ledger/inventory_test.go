package ledger

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestInventory_AddLot(t *testing.T) {
	t.Run("appends lots in insertion order", func(t *testing.T) {
		inv := NewInventory(nil)

		assert.NoError(t, inv.AddLot("BTC", dec("1"), dec("100"), "2024-01-01"))
		assert.NoError(t, inv.AddLot("BTC", dec("2"), dec("200"), "2024-01-02"))

		snapshot := inv.Snapshot()
		btc := snapshot["BTC"]
		assert.Equal(t, "3", btc.TotalAmount.String())
		assert.Equal(t, 2, len(btc.Lots))
		assert.Equal(t, "2024-01-01", btc.Lots[0].Date)
		assert.Equal(t, "2024-01-02", btc.Lots[1].Date)
	})

	t.Run("accepts zero amounts", func(t *testing.T) {
		inv := NewInventory(nil)

		assert.NoError(t, inv.AddLot("ETH", dec("0"), dec("10"), "2024-01-01"))
		assert.NoError(t, inv.AddLot("ETH", dec("0.000000001"), dec("10"), "2024-01-02"))

		assert.True(t, inv.Has("ETH"))
		assert.True(t, inv.Get("ETH").IsZero())
		assert.Equal(t, 0, len(inv.Snapshot()["ETH"].Lots))
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		inv := NewInventory(nil)

		err := inv.AddLot("ETH", dec("-1"), dec("10"), "2024-01-01")

		var negErr *NegativeAmountError
		assert.True(t, errors.As(err, &negErr))
		assert.True(t, errors.Is(err, ErrNegativeAmount))
		assert.False(t, inv.Has("ETH"))
	})

	t.Run("rounds quantities to the quantity scale", func(t *testing.T) {
		inv := NewInventory(nil)

		assert.NoError(t, inv.AddLot("BTC", dec("0.123456789"), dec("1"), "2024-01-01"))

		assert.Equal(t, "0.12345679", inv.Get("BTC").String())
	})
}

func TestInventory_Consume(t *testing.T) {
	setup := func(t *testing.T) *Inventory {
		t.Helper()
		inv := NewInventory(nil)
		assert.NoError(t, inv.AddLot("BTC", dec("10"), dec("1"), "2024-01-01"))
		assert.NoError(t, inv.AddLot("BTC", dec("5"), dec("2"), "2024-01-02"))
		return inv
	}

	t.Run("consumes oldest lots first", func(t *testing.T) {
		inv := setup(t)

		consumption, err := inv.Consume("BTC", dec("12"))
		assert.NoError(t, err)

		assert.Equal(t, "12", consumption.Disposed.String())
		assert.Equal(t, "14", consumption.Cost.String())
		assert.Equal(t, 2, len(consumption.ConsumedLots))
		assert.Equal(t, "10", consumption.ConsumedLots[0].Amount.String())
		assert.Equal(t, "1", consumption.ConsumedLots[0].PricePerCoin.String())
		assert.Equal(t, "2", consumption.ConsumedLots[1].Amount.String())
		assert.Equal(t, "2", consumption.ConsumedLots[1].PricePerCoin.String())

		btc := inv.Snapshot()["BTC"]
		assert.Equal(t, "3", btc.TotalAmount.String())
		assert.Equal(t, 1, len(btc.Lots))
		assert.Equal(t, "3", btc.Lots[0].Amount.String())
		assert.Equal(t, "2", btc.Lots[0].PricePerCoin.String())
		assert.Equal(t, "2024-01-02", btc.Lots[0].Date)
	})

	t.Run("exhausting every lot leaves an empty balance", func(t *testing.T) {
		inv := setup(t)

		_, err := inv.Consume("BTC", dec("15"))
		assert.NoError(t, err)

		btc := inv.Snapshot()["BTC"]
		assert.True(t, btc.TotalAmount.IsZero())
		assert.Equal(t, 0, len(btc.Lots))
		assert.True(t, inv.Has("BTC"))
	})

	t.Run("unknown symbol", func(t *testing.T) {
		inv := setup(t)

		_, err := inv.Consume("ETH", dec("1"))

		var unknownErr *UnknownAssetError
		assert.True(t, errors.As(err, &unknownErr))
		assert.Equal(t, "ETH", unknownErr.Symbol)
		assert.True(t, errors.Is(err, ErrUnknownAsset))
		assert.EqualError(t, err, "no balance for coin ETH")
	})

	t.Run("insufficient balance leaves the inventory unchanged", func(t *testing.T) {
		inv := setup(t)
		before := inv.Snapshot()

		_, err := inv.Consume("BTC", dec("20"))

		var insufficientErr *InsufficientBalanceError
		assert.True(t, errors.As(err, &insufficientErr))
		assert.True(t, errors.Is(err, ErrInsufficientBalance))
		assert.Equal(t, "20", insufficientErr.Requested.String())
		assert.Equal(t, "15", insufficientErr.Available.String())

		assert.Equal(t, before, inv.Snapshot())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		inv := setup(t)

		_, err := inv.Consume("BTC", dec("-1"))

		assert.True(t, errors.Is(err, ErrNegativeAmount))
		assert.Equal(t, "15", inv.Get("BTC").String())
	})

	t.Run("zero amount consumes nothing", func(t *testing.T) {
		inv := setup(t)

		consumption, err := inv.Consume("BTC", dec("0"))
		assert.NoError(t, err)

		assert.True(t, consumption.Disposed.IsZero())
		assert.Equal(t, 0, len(consumption.ConsumedLots))
		assert.Equal(t, 2, len(inv.Snapshot()["BTC"].Lots))
	})
}

func TestInventory_Dispose(t *testing.T) {
	t.Run("values the disposal at market price", func(t *testing.T) {
		inv := NewInventory(nil)
		assert.NoError(t, inv.AddLot("BTC", dec("10"), dec("1"), "2024-01-01"))
		assert.NoError(t, inv.AddLot("BTC", dec("5"), dec("2"), "2024-01-02"))

		disposal, err := inv.Dispose("BTC", dec("12"), dec("3"))
		assert.NoError(t, err)

		assert.Equal(t, "12", disposal.DisposedAmount.String())
		assert.Equal(t, "14", disposal.Cost.String())
		assert.Equal(t, "36", disposal.Proceeds.String())
		assert.Equal(t, "22", disposal.Gain.String())
		assert.False(t, disposal.IsLoss())
	})

	t.Run("reports losses as negative gain", func(t *testing.T) {
		inv := NewInventory(nil)
		assert.NoError(t, inv.AddLot("ETH", dec("2"), dec("3000"), "2024-01-01"))

		disposal, err := inv.Dispose("ETH", dec("1"), dec("2500"))
		assert.NoError(t, err)

		assert.Equal(t, "-500", disposal.Gain.String())
		assert.True(t, disposal.IsLoss())
	})

	t.Run("rounds currency amounts once", func(t *testing.T) {
		inv := NewInventory(nil)
		assert.NoError(t, inv.AddLot("DOGE", dec("3"), dec("0.333"), "2024-01-01"))

		disposal, err := inv.Dispose("DOGE", dec("3"), dec("0.3333"))
		assert.NoError(t, err)

		assert.Equal(t, "1", disposal.Cost.String())
		assert.Equal(t, "1", disposal.Proceeds.String())
		assert.True(t, disposal.Gain.IsZero())
	})
}

func TestInventory_Symbols(t *testing.T) {
	inv := NewInventory(nil)
	assert.NoError(t, inv.AddLot("SOL", dec("1"), dec("1"), "2024-01-01"))
	assert.NoError(t, inv.AddLot("BTC", dec("1"), dec("1"), "2024-01-01"))
	assert.NoError(t, inv.AddLot("ETH", dec("1"), dec("1"), "2024-01-01"))

	assert.Equal(t, []string{"BTC", "ETH", "SOL"}, inv.Symbols())
}

func TestInventory_SnapshotIsolation(t *testing.T) {
	inv := NewInventory(nil)
	assert.NoError(t, inv.AddLot("BTC", dec("10"), dec("1"), "2024-01-01"))

	snapshot := inv.Snapshot()
	_, err := inv.Consume("BTC", dec("4"))
	assert.NoError(t, err)

	assert.Equal(t, "10", snapshot["BTC"].TotalAmount.String())
	assert.Equal(t, "10", snapshot["BTC"].Lots[0].Amount.String())
	assert.Equal(t, "6", inv.Get("BTC").String())
}
