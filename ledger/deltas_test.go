package ledger

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestPlanConsume(t *testing.T) {
	inv := NewInventory(nil)
	assert.NoError(t, inv.AddLot("BTC", dec("1"), dec("100"), "2024-01-01"))
	assert.NoError(t, inv.AddLot("BTC", dec("1"), dec("200"), "2024-01-02"))

	delta, err := inv.planConsume("BTC", dec("1.5"))
	assert.NoError(t, err)

	t.Run("plans reductions without mutating", func(t *testing.T) {
		assert.Equal(t, 2, len(delta.Reductions))
		assert.Equal(t, 0, delta.Reductions[0].Index)
		assert.Equal(t, 1, delta.Reductions[1].Index)
		assert.Equal(t, "1", delta.Reductions[0].Amount.String())
		assert.Equal(t, "0.5", delta.Reductions[1].Amount.String())
		assert.Equal(t, "1.5", delta.Disposed().String())
		assert.Equal(t, "200", delta.Cost.String())
		assert.Equal(t, "2", inv.Get("BTC").String())
	})

	t.Run("string lists consumed lots", func(t *testing.T) {
		assert.Equal(t, "Consume 1.5 BTC\n  1 @ 100 (2024-01-01)\n  0.5 @ 200 (2024-01-02)", delta.String())
	})

	t.Run("apply mutates the balance", func(t *testing.T) {
		inv.applyConsume(delta)

		btc := inv.Snapshot()["BTC"]
		assert.Equal(t, "0.5", btc.TotalAmount.String())
		assert.Equal(t, 1, len(btc.Lots))
		assert.Equal(t, "2024-01-02", btc.Lots[0].Date)
	})
}
