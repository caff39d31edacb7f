package formatter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/costbasis/ledger"
	"github.com/robinvdvleuten/costbasis/txn"
)

func FuzzFormatter(f *testing.F) {
	// Seed corpus with coin symbols and amounts as they show up in exports
	seeds := []struct {
		symbol string
		amount string
		price  string
	}{
		{"BTC", "1", "100"},
		{"ETH", "0.00000001", "1800.5"},
		{"A|B", "2", "3"},
		{"NEW\nLINE", "1", "1"},
		{"€URO", "1000000", "0.0001"},
		{"", "0", "0"},
	}

	for _, seed := range seeds {
		f.Add(seed.symbol, seed.amount, seed.price)
	}

	f.Fuzz(func(t *testing.T, symbol, amount, price string) {
		// Exponents blow up decimal arithmetic without exercising the writers
		if strings.ContainsAny(amount+price, "eE") || len(amount) > 24 || len(price) > 24 {
			return
		}

		qty, err := decimal.NewFromString(amount)
		if err != nil || qty.IsNegative() {
			return
		}
		p, err := decimal.NewFromString(price)
		if err != nil || p.IsNegative() {
			return
		}

		l := ledger.New()
		report := l.Report(l.Process(context.Background(), []txn.Transaction{
			txn.NewBuy(symbol, qty, p, "2024-01-01"),
			txn.NewSell(symbol, qty, p, "2024-01-02"),
		}))

		fm := New()

		var text bytes.Buffer
		if err := fm.FormatText(report, &text); err != nil {
			t.Fatalf("text report failed: %v", err)
		}
		if !strings.Contains(text.String(), "Summary") {
			t.Fatalf("text report has no summary:\n%s", text.String())
		}

		var md bytes.Buffer
		if err := fm.FormatMarkdown(report, &md); err != nil {
			t.Fatalf("markdown report failed: %v", err)
		}
		if !strings.HasPrefix(md.String(), "# Capital gains report\n") {
			t.Fatalf("markdown report has no title:\n%s", md.String())
		}
	})
}
