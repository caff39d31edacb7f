package ledger

import (
	"github.com/robinvdvleuten/costbasis/txn"
	"github.com/shopspring/decimal"
)

// Decimals in reports serialize as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ProcessedTransaction pairs an input transaction with its outcome.
type ProcessedTransaction struct {
	Transaction txn.Transaction `json:"transaction"`
	Disposal    *Disposal       `json:"disposal"`
	Error       string          `json:"error,omitempty"`

	// Err is the typed failure, a *TransactionError wrapping the cause.
	Err error `json:"-"`
}

// Failed reports whether the transaction could not be applied.
func (p ProcessedTransaction) Failed() bool {
	return p.Err != nil || p.Error != ""
}

// Snapshot maps asset symbols to a copy of their balance.
type Snapshot map[string]BalanceSnapshot

// Summary aggregates the disposals of a batch.
type Summary struct {
	Transactions int             `json:"transactions"`
	Disposals    int             `json:"disposals"`
	Failures     int             `json:"failures"`
	Cost         decimal.Decimal `json:"cost"`
	Proceeds     decimal.Decimal `json:"proceeds"`
	Gain         decimal.Decimal `json:"gain"`

	// GainBySymbol totals realized gain per disposed asset.
	GainBySymbol map[string]decimal.Decimal `json:"gainBySymbol"`
}

// Report is the complete result of one batch evaluation.
type Report struct {
	ProcessedTransactions []ProcessedTransaction `json:"processedTransactions"`
	FinalBalances         Snapshot               `json:"finalBalances"`
	Summary               Summary                `json:"summary"`
}

// Errors returns the typed failures of the batch in input order.
func (r *Report) Errors() []error {
	var errs []error
	for _, p := range r.ProcessedTransactions {
		if p.Err != nil {
			errs = append(errs, p.Err)
		}
	}
	return errs
}

// Summarize totals the disposals among processed.
func Summarize(processed []ProcessedTransaction) Summary {
	summary := Summary{
		Transactions: len(processed),
		Cost:         decimal.Zero,
		Proceeds:     decimal.Zero,
		Gain:         decimal.Zero,
		GainBySymbol: make(map[string]decimal.Decimal),
	}

	for _, p := range processed {
		if p.Failed() {
			summary.Failures++
			continue
		}
		if p.Disposal == nil {
			continue
		}
		summary.Disposals++
		summary.Cost = summary.Cost.Add(p.Disposal.Cost)
		summary.Proceeds = summary.Proceeds.Add(p.Disposal.Proceeds)
		summary.Gain = summary.Gain.Add(p.Disposal.Gain)

		symbol := p.Transaction.SellCoin
		summary.GainBySymbol[symbol] = summary.GainBySymbol[symbol].Add(p.Disposal.Gain)
	}

	return summary
}
