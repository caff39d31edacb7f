// Package costbasis computes FIFO capital gains for batches of crypto
// transactions.
//
// It is a thin facade over the ledger: every call evaluates one batch on a
// fresh ledger, so batches never share state. The ledger configuration is
// taken from the context (see ledger.Config.WithContext).
//
// Example usage:
//
//	report, err := costbasis.CalculateRequest(ctx, r.Body)
//	if err != nil {
//	    // malformed request, nothing was processed
//	}
//	fmt.Println(report.Summary.Gain)
package costbasis

import (
	"context"
	"io"

	"github.com/robinvdvleuten/costbasis/ledger"
	"github.com/robinvdvleuten/costbasis/telemetry"
	"github.com/robinvdvleuten/costbasis/txn"
)

// Calculate processes normalized transactions in order.
func Calculate(ctx context.Context, txs []txn.Transaction) *ledger.Report {
	l := newLedger(ctx)
	return l.Report(l.Process(ctx, txs))
}

// CalculateInputs normalizes and processes raw inputs in order.
func CalculateInputs(ctx context.Context, inputs []txn.Input) *ledger.Report {
	l := newLedger(ctx)
	return l.Report(l.ProcessInputs(ctx, inputs))
}

// CalculateRequest decodes a {"transactions": [...]} body and processes it.
// A malformed body returns a *txn.InputValidationError before any
// transaction is processed.
func CalculateRequest(ctx context.Context, r io.Reader) (*ledger.Report, error) {
	req, err := txn.DecodeRequest(r)
	if err != nil {
		return nil, err
	}
	return CalculateInputs(ctx, req.Transactions), nil
}

func newLedger(ctx context.Context) *ledger.Ledger {
	config := ledger.ConfigFromContext(ctx)
	telemetry.Logger(ctx).Debug("starting batch", "strict", config.Strict)
	return ledger.New(ledger.WithConfig(config))
}
