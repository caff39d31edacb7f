package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/costbasis/ledger"
	"github.com/robinvdvleuten/costbasis/parser"
	"github.com/robinvdvleuten/costbasis/txn"
)

const renderSource = "type,date,sellCoin,sellAmount,sellPricePerCoin\n" +
	"BUY,2024-01-01,,,\n" +
	"SELL,2024-01-02,BTC,1,100\n" +
	"SELL,2024-01-03,ETH,2,100\n" +
	"SELL,2024-01-04,SOL,3,100"

func TestErrorRenderer_RenderParseErrorWithSourceContext(t *testing.T) {
	parseErr := &parser.ParseError{
		Pos:     txn.Position{Filename: "trades.csv", Line: 3, Column: 17},
		Message: "unexpected value",
	}

	renderer := NewErrorRenderer([]byte(renderSource))
	output := renderer.Render(parseErr)

	assert.Contains(t, output, "trades.csv:3")
	assert.Contains(t, output, "unexpected value")
	assert.Contains(t, output, "SELL,2024-01-02,BTC,1,100")
	assert.Contains(t, output, "^")

	lines := strings.Split(output, "\n")
	caretLine := -1
	for i, line := range lines {
		if strings.HasSuffix(line, "^") {
			caretLine = i
		}
	}
	assert.NotEqual(t, -1, caretLine)
	assert.Equal(t, 3+16, strings.Index(lines[caretLine], "^"))
	assert.Contains(t, lines[caretLine-1], "SELL,2024-01-02")
}

func TestErrorRenderer_RenderWithoutSource(t *testing.T) {
	parseErr := &parser.ParseError{
		Pos:     txn.Position{Filename: "trades.csv", Line: 1, Column: 1},
		Message: "no known columns in header",
	}

	renderer := NewErrorRenderer(nil)
	output := renderer.Render(parseErr)

	assert.Equal(t, parseErr.Error(), output)
}

func TestErrorRenderer_RenderTransactionError(t *testing.T) {
	sell := txn.NewSell("ETH", decimal.NewFromInt(2), decimal.NewFromInt(100), "2024-01-03",
		txn.WithPosition(txn.Position{Filename: "trades.csv", Line: 4}))
	txErr := &ledger.TransactionError{
		Transaction: sell,
		Err:         &ledger.UnknownAssetError{Symbol: "ETH"},
	}

	t.Run("WithSource", func(t *testing.T) {
		renderer := NewErrorRenderer([]byte(renderSource))
		output := renderer.Render(txErr)

		assert.Contains(t, output, "trades.csv:4: no balance for coin ETH")
		assert.Contains(t, output, ">  SELL,2024-01-03,ETH,2,100")
		assert.Contains(t, output, "SELL,2024-01-02,BTC,1,100")
		assert.Contains(t, output, "SELL,2024-01-04,SOL,3,100")
		assert.NotContains(t, output, "^")
	})

	t.Run("WithoutSource", func(t *testing.T) {
		renderer := NewErrorRenderer(nil)
		output := renderer.Render(txErr)

		assert.Contains(t, output, "no balance for coin ETH")
		assert.Contains(t, output, "   2024-01-03 SELL 2 ETH @ 100")
	})

	t.Run("FromRequest", func(t *testing.T) {
		unpositioned := &ledger.TransactionError{
			Transaction: txn.NewSell("ETH", decimal.NewFromInt(2), decimal.NewFromInt(100), "2024-01-03"),
			Err:         &ledger.UnknownAssetError{Symbol: "ETH"},
		}

		renderer := NewErrorRenderer([]byte(renderSource))
		output := renderer.Render(unpositioned)

		assert.Contains(t, output, "2024-01-03: no balance for coin ETH")
		assert.Contains(t, output, "2024-01-03 SELL 2 ETH @ 100")
		assert.NotContains(t, output, "BTC")
	})
}

func TestErrorRenderer_RenderPlainError(t *testing.T) {
	renderer := NewErrorRenderer([]byte(renderSource))
	assert.Equal(t, "boom", renderer.Render(errors.New("boom")))
}

func TestErrorRenderer_RenderAll(t *testing.T) {
	renderer := NewErrorRenderer(nil)

	assert.Equal(t, "", renderer.RenderAll(nil))
	assert.Equal(t, "first\n\nsecond", renderer.RenderAll([]error{errors.New("first"), errors.New("second")}))
}

func TestErrorRenderer_RenderWithSourceContext_BoundsChecking(t *testing.T) {
	renderer := NewErrorRenderer([]byte(renderSource))

	t.Run("FirstLine", func(t *testing.T) {
		output := renderer.renderWithSourceContext(txn.Position{Line: 1, Column: 1}, "error", []byte(renderSource))
		assert.Contains(t, output, "type,date")
		assert.Contains(t, output, "BUY,2024-01-01")
	})

	t.Run("LastLine", func(t *testing.T) {
		output := renderer.renderWithSourceContext(txn.Position{Line: 5}, "error", []byte(renderSource))
		assert.Contains(t, output, "SOL")
	})

	t.Run("PastEnd", func(t *testing.T) {
		output := renderer.renderWithSourceContext(txn.Position{Line: 50}, "error", []byte(renderSource))
		assert.Equal(t, "error\n\n", output)
	})
}
