package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/robinvdvleuten/costbasis/ledger"
)

// FormatMarkdown writes report as a Markdown document with GitHub-style
// tables.
func (f *Formatter) FormatMarkdown(report *ledger.Report, w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("# Capital gains report\n\n")

	summary := report.Summary
	fmt.Fprintf(&sb, "- **Total gain:** %s\n", f.Money(summary.Gain))
	fmt.Fprintf(&sb, "- **Cost:** %s\n", f.Money(summary.Cost))
	fmt.Fprintf(&sb, "- **Proceeds:** %s\n", f.Money(summary.Proceeds))
	fmt.Fprintf(&sb, "- **Transactions:** %d (%d disposals, %d failed)\n\n",
		summary.Transactions, summary.Disposals, summary.Failures)

	sb.WriteString("## Transactions\n\n")
	sb.WriteString("| # | Date | Type | Transaction | Cost | Proceeds | Gain |\n")
	sb.WriteString("|--:|------|------|-------------|-----:|---------:|-----:|\n")
	for i, p := range report.ProcessedTransactions {
		cost, proceeds, gain := "", "", ""
		switch {
		case p.Failed():
			gain = "**error:** " + p.Error
		case p.Disposal != nil:
			cost = f.Money(p.Disposal.Cost)
			proceeds = f.Money(p.Disposal.Proceeds)
			gain = f.Money(p.Disposal.Gain)
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s | %s | %s |\n",
			i+1,
			escapeCell(p.Transaction.Date),
			p.Transaction.Type,
			escapeCell(describe(p.Transaction)),
			escapeCell(cost),
			escapeCell(proceeds),
			escapeCell(gain),
		)
	}

	sb.WriteString("\n## Final balances\n\n")
	symbols := sortedSymbols(report.FinalBalances)
	if len(symbols) == 0 {
		sb.WriteString("No holdings.\n")
	} else {
		sb.WriteString("| Coin | Total amount | Remaining lots |\n")
		sb.WriteString("|------|-------------:|----------------|\n")
		for _, symbol := range symbols {
			balance := report.FinalBalances[symbol]
			lots := make([]string, 0, len(balance.Lots))
			for _, lot := range balance.Lots {
				lots = append(lots, fmt.Sprintf("%s @ %s (%s)", lot.Amount, f.Money(lot.PricePerCoin), lot.Date))
			}
			fmt.Fprintf(&sb, "| %s | %s | %s |\n",
				escapeCell(symbol), balance.TotalAmount, escapeCell(strings.Join(lots, "<br>")))
		}
	}

	if len(summary.GainBySymbol) > 0 {
		sb.WriteString("\n## Capital gains by coin\n\n")
		sb.WriteString("| Coin | Gain |\n")
		sb.WriteString("|------|-----:|\n")
		for _, symbol := range sortedSymbols(summary.GainBySymbol) {
			fmt.Fprintf(&sb, "| %s | %s |\n", escapeCell(symbol), f.Money(summary.GainBySymbol[symbol]))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// escapeCell keeps a value inside its table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
