package txn

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func fixedNow() time.Time {
	return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
}

func TestNormalize(t *testing.T) {
	t.Run("AppliesDefaults", func(t *testing.T) {
		n := &Normalizer{Now: fixedNow}

		tx, err := n.Normalize(Input{})
		assert.NoError(t, err)
		assert.Equal(t, Buy, tx.Type)
		assert.Equal(t, "2024-05-06 07:08:09", tx.Date)
		assert.Equal(t, UnknownSymbol, tx.BuyCoin)
		assert.Equal(t, UnknownSymbol, tx.SellCoin)
		assert.True(t, tx.BuyAmount.IsZero())
		assert.True(t, tx.SellPricePerCoin.IsZero())
	})

	t.Run("TypeIsCaseInsensitive", func(t *testing.T) {
		n := &Normalizer{Now: fixedNow}

		for raw, want := range map[string]Type{
			"buy":   Buy,
			"Sell":  Sell,
			"trade": Trade,
			" BUY ": Buy,
			"swap":  Unknown,
		} {
			tx, err := n.Normalize(Input{Type: F(raw)})
			assert.NoError(t, err)
			assert.Equal(t, want, tx.Type, "type %q", raw)
		}
	})

	t.Run("KeepsProvidedValues", func(t *testing.T) {
		n := &Normalizer{Now: fixedNow}

		tx, err := n.Normalize(Input{
			Type:             F("TRADE"),
			Date:             F("2024-01-01 10:00:00"),
			BuyCoin:          F("ETH"),
			SellCoin:         F(" BTC "),
			BuyAmount:        F("1.5"),
			SellAmount:       F("0.25"),
			BuyPricePerCoin:  F("2000"),
			SellPricePerCoin: F("30000.50"),
			Pos:              Position{Filename: "trades.csv", Line: 3},
		})
		assert.NoError(t, err)
		assert.Equal(t, Trade, tx.Type)
		assert.Equal(t, "2024-01-01 10:00:00", tx.Date)
		assert.Equal(t, "ETH", tx.BuyCoin)
		assert.Equal(t, "BTC", tx.SellCoin)
		assert.Equal(t, "1.5", tx.BuyAmount.String())
		assert.Equal(t, "0.25", tx.SellAmount.String())
		assert.Equal(t, "2000", tx.BuyPricePerCoin.String())
		assert.Equal(t, "30000.5", tx.SellPricePerCoin.String())
		assert.Equal(t, 3, tx.Pos.Line)
	})

	t.Run("LenientCoercesInvalidNumbers", func(t *testing.T) {
		n := &Normalizer{Now: fixedNow}

		tx, err := n.Normalize(Input{
			BuyAmount:       F("abc"),
			BuyPricePerCoin: F("-3"),
		})
		assert.NoError(t, err)
		assert.True(t, tx.BuyAmount.IsZero())
		assert.True(t, tx.BuyPricePerCoin.IsZero())
	})

	t.Run("StrictRejectsInvalidNumbers", func(t *testing.T) {
		n := &Normalizer{Strict: true, Now: fixedNow}

		_, err := n.Normalize(Input{BuyAmount: F("abc"), Pos: Position{Line: 7}})
		assert.Error(t, err)

		var fieldErr *InvalidFieldError
		assert.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, "buyAmount", fieldErr.Field)
		assert.Equal(t, 7, fieldErr.GetPosition().Line)
		assert.EqualError(t, err, `invalid buyAmount "abc": not a number`)
	})

	t.Run("StrictRejectsNegativeNumbers", func(t *testing.T) {
		n := &Normalizer{Strict: true, Now: fixedNow}

		_, err := n.Normalize(Input{Type: F("SELL"), SellAmount: F("-1")})
		assert.EqualError(t, err, `invalid sellAmount "-1": must not be negative`)
	})

	t.Run("BoundsExponentAndPrecision", func(t *testing.T) {
		lenient := &Normalizer{Now: fixedNow}
		strict := &Normalizer{Strict: true, Now: fixedNow}

		tests := []struct {
			value string
			valid bool
		}{
			{"1e30", true},
			{"1e-30", true},
			{strings.Repeat("9", 40), true},
			{"1e31", false},
			{"1E-31", false},
			{"1e10000000", false},
			{"1e-2000000000", false},
			{strings.Repeat("9", 41), false},
		}

		for _, tt := range tests {
			tx, err := lenient.Normalize(Input{BuyAmount: F(tt.value)})
			assert.NoError(t, err)
			assert.Equal(t, tt.valid, !tx.BuyAmount.IsZero(), "value %q", tt.value)

			_, err = strict.Normalize(Input{BuyAmount: F(tt.value)})
			if tt.valid {
				assert.NoError(t, err, "value %q", tt.value)
			} else {
				assert.EqualError(t, err, `invalid buyAmount "`+tt.value+`": out of range`)
			}
		}
	})

	t.Run("StrictRejectsUnknownType", func(t *testing.T) {
		n := &Normalizer{Strict: true, Now: fixedNow}

		tx, err := n.Normalize(Input{Type: F("airdrop")})
		assert.Error(t, err)
		assert.Equal(t, Unknown, tx.Type)
	})

	t.Run("InvalidRecordAlwaysFails", func(t *testing.T) {
		n := &Normalizer{Now: fixedNow}

		invalid := &InvalidFieldError{Field: "transaction", Reason: "must be a JSON object"}
		tx, err := n.Normalize(Input{Invalid: invalid})
		assert.IsError(t, err, invalid)
		assert.Equal(t, Unknown, tx.Type)
	})
}

func TestTypeMarshalJSON(t *testing.T) {
	data, err := Sell.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"SELL"`, string(data))
}
