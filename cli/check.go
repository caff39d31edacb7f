package cli

import (
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/costbasis"
	"github.com/robinvdvleuten/costbasis/errors"
	"github.com/robinvdvleuten/costbasis/loader"
)

type CheckCmd struct {
	File  FileOrStdin `help:"Transactions file, CSV or JSON (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Input string      `help:"Input format (${enum})." enum:"auto,csv,json" default:"auto"`
	JSON  bool        `help:"Print errors as JSON." name:"json"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	rc := newRunContext(ctx, globals, fmt.Sprintf("check %s", filepath.Base(cmd.File.Filename)))
	defer rc.report(ctx.Stderr)

	sourceContent, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file for error context: %w", err)
	}

	ldr := loader.New(loader.WithFormat(inputFormat(cmd.Input)))
	result, err := cmd.File.LoadBatch(rc, ldr)
	if err != nil {
		if cmd.JSON {
			_, _ = fmt.Fprintln(ctx.Stdout, errors.NewJSONFormatter().Format(err))
		} else {
			renderParseError(ctx.Stderr, &cmd.File, err)
		}
		rc.report(ctx.Stderr)
		return NewCommandError(1)
	}

	report := costbasis.CalculateInputs(rc, result.Inputs)
	errs := report.Errors()

	if cmd.JSON {
		_, _ = fmt.Fprintln(ctx.Stdout, errors.NewJSONFormatter().FormatAll(errs))
		if len(errs) > 0 {
			rc.report(ctx.Stderr)
			return NewCommandError(1)
		}
		return nil
	}

	if len(errs) > 0 {
		renderer := NewErrorRenderer(sourceContent)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderAll(errs))

		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d of %d transaction(s) failed", len(errs), len(report.ProcessedTransactions)))

		rc.report(ctx.Stderr)
		return NewCommandError(1)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Check passed (%d transactions)", len(report.ProcessedTransactions)))

	return nil
}
