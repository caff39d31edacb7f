// Package ledger computes realized gains over a batch of crypto transactions
// using first-in, first-out cost basis.
//
// Every acquisition appends a lot to the asset's lot sequence. Disposals
// consume lots from the head of the sequence, oldest first, and report the
// acquisition cost of what was consumed together with the proceeds and the
// realized gain. A TRADE disposes of one asset and acquires another.
//
// All quantities and prices use decimal arithmetic. Quantities are kept at
// eight fractional digits and currency amounts at two.
//
// Example usage:
//
//	l := ledger.New()
//	processed := l.Process(ctx, []txn.Transaction{
//	    txn.NewBuy("BTC", decimal.NewFromInt(1), decimal.NewFromInt(20000), "2024-01-01"),
//	    txn.NewSell("BTC", decimal.NewFromFloat(0.5), decimal.NewFromInt(30000), "2024-06-01"),
//	})
//	report := l.Report(processed)
//	fmt.Println(report.Summary.Gain) // 5000
//
// A Ledger is scoped to one batch and is not safe for concurrent use.
package ledger

import (
	"context"
	"fmt"

	"github.com/robinvdvleuten/costbasis/telemetry"
	"github.com/robinvdvleuten/costbasis/txn"
)

// Ledger runs batches of transactions against a private inventory.
// Failures of individual transactions are recorded next to the transaction
// and never abort the batch.
type Ledger struct {
	config    *Config
	inventory *Inventory
	processor *Processor
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithConfig sets the scales and validation mode of the ledger.
func WithConfig(config *Config) Option {
	return func(l *Ledger) {
		l.config = config
	}
}

// New creates a new empty ledger
func New(opts ...Option) *Ledger {
	l := &Ledger{config: NewConfig()}
	for _, opt := range opts {
		opt(l)
	}

	l.inventory = NewInventory(l.config)
	l.processor = NewProcessor(l.inventory)

	return l
}

// Config returns the configuration the ledger was created with.
func (l *Ledger) Config() *Config {
	return l.config
}

// Inventory returns the ledger's inventory.
func (l *Ledger) Inventory() *Inventory {
	return l.inventory
}

// Process applies txs in order and returns exactly one entry per transaction.
// Cancellation is checked between transactions; the entries of transactions
// that were not reached carry the context error.
func (l *Ledger) Process(ctx context.Context, txs []txn.Transaction) []ProcessedTransaction {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("ledger.processing (%d transactions)", len(txs)))
	defer timer.End()

	processed := make([]ProcessedTransaction, 0, len(txs))
	for i, tx := range txs {
		// Check for cancellation
		select {
		case <-ctx.Done():
			for _, rest := range txs[i:] {
				processed = append(processed, failed(rest, ctx.Err()))
			}
			return processed
		default:
		}

		processed = append(processed, l.processOne(ctx, tx))
	}

	return processed
}

// ProcessInputs normalizes raw inputs and processes them as one batch.
// Inputs that fail normalization are recorded as failed entries in place
// and do not touch the inventory.
func (l *Ledger) ProcessInputs(ctx context.Context, inputs []txn.Input) []ProcessedTransaction {
	normalizer := &txn.Normalizer{Strict: l.config.Strict, Now: l.config.Now}

	timer := telemetry.StartTimer(ctx, fmt.Sprintf("ledger.normalize (%d inputs)", len(inputs)))
	txs := make([]txn.Transaction, len(inputs))
	errs := make([]error, len(inputs))
	for i, in := range inputs {
		txs[i], errs[i] = normalizer.Normalize(in)
	}
	timer.End()

	valid := make([]txn.Transaction, 0, len(txs))
	for i, tx := range txs {
		if errs[i] == nil {
			valid = append(valid, tx)
		}
	}

	results := l.Process(ctx, valid)

	processed := make([]ProcessedTransaction, len(inputs))
	next := 0
	for i, tx := range txs {
		if errs[i] != nil {
			processed[i] = failed(tx, errs[i])
			continue
		}
		processed[i] = results[next]
		next++
	}

	return processed
}

func (l *Ledger) processOne(ctx context.Context, tx txn.Transaction) ProcessedTransaction {
	disposal, err := l.processor.Process(ctx, tx)
	if err != nil {
		return failed(tx, err)
	}
	return ProcessedTransaction{Transaction: tx, Disposal: disposal}
}

// Balances returns a deep copy of the current holdings.
func (l *Ledger) Balances() Snapshot {
	return l.inventory.Snapshot()
}

// Report assembles the batch result from the processed entries and the
// current holdings.
func (l *Ledger) Report(processed []ProcessedTransaction) *Report {
	if processed == nil {
		processed = make([]ProcessedTransaction, 0)
	}
	return &Report{
		ProcessedTransactions: processed,
		FinalBalances:         l.Balances(),
		Summary:               Summarize(processed),
	}
}

func failed(tx txn.Transaction, err error) ProcessedTransaction {
	return ProcessedTransaction{
		Transaction: tx,
		Error:       err.Error(),
		Err:         &TransactionError{Transaction: tx, Err: err},
	}
}
