// Package formatter renders capital-gains reports for people: an aligned
// plain-text layout for terminals and a Markdown document for sharing or
// rendering.
package formatter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/robinvdvleuten/costbasis/ledger"
	"github.com/robinvdvleuten/costbasis/output"
	"github.com/robinvdvleuten/costbasis/txn"
)

// DefaultCurrency is the reporting currency used when none is configured.
const DefaultCurrency = "USD"

// Formatter renders reports.
type Formatter struct {
	// Currency is the ISO 4217 code used to display costs, proceeds and
	// gains. Unknown codes are shown after the plain number.
	Currency string

	// Styles colors the text report. Nil renders plain text.
	Styles *output.Styles
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithCurrency sets the reporting currency.
func WithCurrency(code string) Option {
	return func(f *Formatter) {
		f.Currency = code
	}
}

// WithStyles enables terminal styling of the text report.
func WithStyles(styles *output.Styles) Option {
	return func(f *Formatter) {
		f.Styles = styles
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{Currency: DefaultCurrency}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// style applies fn when styles are enabled.
func (f *Formatter) style(fn func(*output.Styles, string) string) func(string) string {
	if f.Styles == nil {
		return nil
	}
	return func(s string) string { return fn(f.Styles, s) }
}

// FormatText writes report as aligned plain text.
func (f *Formatter) FormatText(report *ledger.Report, w io.Writer) error {
	keyword := f.style((*output.Styles).Keyword)

	if _, err := fmt.Fprintln(w, heading("Transactions", keyword)); err != nil {
		return err
	}

	transactions := newTable(alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight)
	transactions.add(plain("#"), plain("DATE"), plain("TYPE"), plain("TRANSACTION"), plain("COST"), plain("PROCEEDS"), plain("GAIN"))
	for i, p := range report.ProcessedTransactions {
		row := []cell{
			plain(strconv.Itoa(i + 1)),
			plain(p.Transaction.Date),
			plain(p.Transaction.Type.String()),
			plain(describe(p.Transaction)),
		}
		switch {
		case p.Failed():
			row = append(row, plain(""), plain(""), styled("error: "+p.Error, f.style((*output.Styles).Error)))
		case p.Disposal != nil:
			row = append(row,
				plain(f.Money(p.Disposal.Cost)),
				plain(f.Money(p.Disposal.Proceeds)),
				f.gainCell(p.Disposal.Gain.IsNegative(), f.Money(p.Disposal.Gain)),
			)
		}
		transactions.add(row...)
	}
	if err := transactions.write(w, "  "); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\n"+heading("Balances", keyword)); err != nil {
		return err
	}

	balances := newTable(alignLeft, alignRight, alignLeft, alignLeft)
	symbols := sortedSymbols(report.FinalBalances)
	for _, symbol := range symbols {
		balance := report.FinalBalances[symbol]
		balances.add(
			styled(symbol, f.style((*output.Styles).Symbol)),
			plain(f.Quantity(balance.TotalAmount)),
			plain(lotCount(len(balance.Lots))),
		)
		for _, lot := range balance.Lots {
			balances.add(plain(""), plain(f.Quantity(lot.Amount)), plain("@ "+f.Money(lot.PricePerCoin)), plain(lot.Date))
		}
	}
	if len(symbols) == 0 {
		balances.add(plain("(none)"))
	}
	if err := balances.write(w, "  "); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\n"+heading("Summary", keyword)); err != nil {
		return err
	}

	summary := report.Summary
	totals := newTable(alignLeft, alignRight)
	totals.add(plain("Transactions"), plain(strconv.Itoa(summary.Transactions)))
	totals.add(plain("Disposals"), plain(strconv.Itoa(summary.Disposals)))
	totals.add(plain("Failures"), f.failureCell(summary.Failures))
	totals.add(plain("Cost"), plain(f.Money(summary.Cost)))
	totals.add(plain("Proceeds"), plain(f.Money(summary.Proceeds)))
	totals.add(plain("Gain"), f.gainCell(summary.Gain.IsNegative(), f.Money(summary.Gain)))
	for _, symbol := range sortedSymbols(summary.GainBySymbol) {
		gain := summary.GainBySymbol[symbol]
		totals.add(plain("  "+symbol), f.gainCell(gain.IsNegative(), f.Money(gain)))
	}

	return totals.write(w, "  ")
}

func (f *Formatter) gainCell(loss bool, text string) cell {
	if f.Styles == nil {
		return plain(text)
	}
	return styled(text, func(s string) string { return f.Styles.Gain(s, loss) })
}

func (f *Formatter) failureCell(failures int) cell {
	text := strconv.Itoa(failures)
	if failures == 0 {
		return plain(text)
	}
	return styled(text, f.style((*output.Styles).Warning))
}

func heading(title string, style func(string) string) string {
	if style == nil {
		return title
	}
	return style(title)
}

func lotCount(n int) string {
	if n == 1 {
		return "1 lot"
	}
	return fmt.Sprintf("%d lots", n)
}

// describe summarizes the legs of a transaction.
func describe(tx txn.Transaction) string {
	switch tx.Type {
	case txn.Buy:
		return fmt.Sprintf("%s %s @ %s", tx.BuyAmount, tx.BuyCoin, tx.BuyPricePerCoin)
	case txn.Sell:
		return fmt.Sprintf("%s %s @ %s", tx.SellAmount, tx.SellCoin, tx.SellPricePerCoin)
	case txn.Trade:
		return fmt.Sprintf("%s @ %s -> %s %s @ %s", tx.SellCoin, tx.SellPricePerCoin, tx.BuyAmount, tx.BuyCoin, tx.BuyPricePerCoin)
	default:
		return ""
	}
}
