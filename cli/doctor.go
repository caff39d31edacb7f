package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/costbasis/ledger"
	"github.com/robinvdvleuten/costbasis/loader"
	"github.com/robinvdvleuten/costbasis/txn"
)

// DoctorCmd provides doctor utilities for debugging transaction files.
type DoctorCmd struct {
	Rows RowsCmd `cmd:"" help:"Show the normalized transactions of a file."`
}

// RowsCmd shows every record of a file as the engine sees it.
type RowsCmd struct {
	File  FileOrStdin `help:"Transactions file, CSV or JSON (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Input string      `help:"Input format (${enum})." enum:"auto,csv,json" default:"auto"`
}

// Run executes the rows command.
func (cmd *RowsCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	rc := newRunContext(ctx, globals, "doctor rows")
	defer rc.report(ctx.Stderr)

	ldr := loader.New(loader.WithFormat(inputFormat(cmd.Input)))
	result, err := cmd.File.LoadBatch(rc, ldr)
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}

	config := ledger.ConfigFromContext(rc)
	normalizer := txn.NewNormalizer()
	normalizer.Strict = config.Strict
	normalizer.Now = config.Now

	for i, input := range result.Inputs {
		tx, err := normalizer.Normalize(input)

		// Format: #index position
		label := fmt.Sprintf("#%d", i+1)
		if !input.Pos.IsZero() {
			label += " " + input.Pos.String()
		}
		_, _ = fmt.Fprintln(ctx.Stdout, label)

		repr.New(ctx.Stdout, repr.Indent("  "), repr.OmitEmpty(true)).Println(newRow(tx))
		if err != nil {
			_, _ = fmt.Fprintf(ctx.Stdout, "  error: %s\n", err)
		}
	}

	return nil
}

// row is the printable form of a normalized transaction. Decimals are kept
// as strings so the dump shows values instead of their internals.
type row struct {
	Type             string
	Date             string
	BuyCoin          string
	SellCoin         string
	BuyAmount        string
	SellAmount       string
	BuyPricePerCoin  string
	SellPricePerCoin string
}

func newRow(tx txn.Transaction) row {
	return row{
		Type:             tx.Type.String(),
		Date:             tx.Date,
		BuyCoin:          tx.BuyCoin,
		SellCoin:         tx.SellCoin,
		BuyAmount:        tx.BuyAmount.String(),
		SellAmount:       tx.SellAmount.String(),
		BuyPricePerCoin:  tx.BuyPricePerCoin.String(),
		SellPricePerCoin: tx.SellPricePerCoin.String(),
	}
}
