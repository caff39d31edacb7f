package ledger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/costbasis/txn"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		expected string
	}{
		{
			name:     "unknown asset",
			err:      &UnknownAssetError{Symbol: "DOGE"},
			sentinel: ErrUnknownAsset,
			expected: "no balance for coin DOGE",
		},
		{
			name:     "insufficient balance",
			err:      &InsufficientBalanceError{Symbol: "BTC", Requested: dec("2"), Available: dec("1.5")},
			sentinel: ErrInsufficientBalance,
			expected: "insufficient balance for coin BTC: requested 2, available 1.5",
		},
		{
			name:     "negative amount",
			err:      &NegativeAmountError{Symbol: "ETH", Amount: dec("-1")},
			sentinel: ErrNegativeAmount,
			expected: "negative amount -1 for coin ETH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.expected)
			assert.True(t, errors.Is(tt.err, tt.sentinel))

			wrapped := fmt.Errorf("processing: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.sentinel))
		})
	}
}

func TestTransactionError(t *testing.T) {
	cause := &UnknownAssetError{Symbol: "ETH"}

	t.Run("with position", func(t *testing.T) {
		tx := txn.NewSell("ETH", dec("1"), dec("2"), "2024-01-15", txn.WithPosition(txn.Position{Filename: "trades.csv", Line: 10}))
		err := &TransactionError{Transaction: tx, Err: cause}

		assert.Equal(t, "trades.csv:10: no balance for coin ETH", err.Error())
		assert.Equal(t, 10, err.GetPosition().Line)
		assert.Equal(t, tx, err.GetTransaction())
	})

	t.Run("without position falls back to the date", func(t *testing.T) {
		tx := txn.NewSell("ETH", dec("1"), dec("2"), "2024-01-15")
		err := &TransactionError{Transaction: tx, Err: cause}

		assert.Equal(t, "2024-01-15: no balance for coin ETH", err.Error())
		assert.True(t, errors.Is(err, ErrUnknownAsset))

		var unknownErr *UnknownAssetError
		assert.True(t, errors.As(err, &unknownErr))
	})
}
