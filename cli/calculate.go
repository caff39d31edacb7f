package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/glamour"

	"github.com/robinvdvleuten/costbasis"
	"github.com/robinvdvleuten/costbasis/formatter"
	"github.com/robinvdvleuten/costbasis/ledger"
	"github.com/robinvdvleuten/costbasis/loader"
	"github.com/robinvdvleuten/costbasis/output"
	"github.com/robinvdvleuten/costbasis/telemetry"
)

type CalculateCmd struct {
	File   FileOrStdin `help:"Transactions file, CSV or JSON (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Input  string      `help:"Input format (${enum})." enum:"auto,csv,json" default:"auto"`
	Format string      `help:"Output format (${enum})." enum:"text,markdown,json" default:"text" short:"f"`
	Query  string      `help:"JSONPath expression evaluated over the JSON report, e.g. '$.summary.gain'." short:"q"`
}

func (cmd *CalculateCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	rc := newRunContext(ctx, globals, fmt.Sprintf("calculate %s", filepath.Base(cmd.File.Filename)))
	defer rc.report(ctx.Stderr)

	report, err := cmd.calculate(rc)
	if err != nil {
		renderParseError(ctx.Stderr, &cmd.File, err)
		rc.report(ctx.Stderr)
		return NewCommandError(1)
	}

	timer := telemetry.StartTimer(rc, "output."+cmd.outputName())
	defer timer.End()

	if cmd.Query != "" {
		return writeQuery(ctx.Stdout, report, cmd.Query)
	}

	switch cmd.Format {
	case "json":
		return writeJSON(ctx.Stdout, report)
	case "markdown":
		return writeMarkdown(ctx.Stdout, report, globals.Currency)
	default:
		f := formatter.New(
			formatter.WithCurrency(globals.Currency),
			formatter.WithStyles(output.NewStyles(ctx.Stdout)),
		)
		return f.FormatText(report, ctx.Stdout)
	}
}

func (cmd *CalculateCmd) outputName() string {
	if cmd.Query != "" {
		return "query"
	}
	return cmd.Format
}

// calculate loads the batch and runs it through a fresh ledger.
func (cmd *CalculateCmd) calculate(ctx context.Context) (*ledger.Report, error) {
	ldr := loader.New(loader.WithFormat(inputFormat(cmd.Input)))
	result, err := cmd.File.LoadBatch(ctx, ldr)
	if err != nil {
		return nil, err
	}
	return costbasis.CalculateInputs(ctx, result.Inputs), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeQuery evaluates a JSONPath expression over the JSON form of report.
func writeQuery(w io.Writer, report *ledger.Report, path string) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode report: %w", err)
	}

	value, err := jsonpath.Get(path, doc)
	if err != nil {
		return fmt.Errorf("invalid query %q: %w", path, err)
	}

	// Bare strings print without quotes so results can be piped
	if s, ok := value.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	return writeJSON(w, value)
}

// writeMarkdown writes the markdown report, rendered for the terminal when
// w is one.
func writeMarkdown(w io.Writer, report *ledger.Report, currency string) error {
	var buf bytes.Buffer
	f := formatter.New(formatter.WithCurrency(currency))
	if err := f.FormatMarkdown(report, &buf); err != nil {
		return err
	}

	if !isTerminal(w) {
		_, err := w.Write(buf.Bytes())
		return err
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(buf.String())
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, rendered)
	return err
}

// renderParseError prints a load failure with source context.
func renderParseError(w io.Writer, file *FileOrStdin, err error) {
	source, readErr := file.GetSourceContent()
	if readErr != nil {
		source = nil
	}

	renderer := NewErrorRenderer(source)
	_, _ = fmt.Fprintln(w, renderer.Render(err))
	_, _ = fmt.Fprintln(w)
	printError(w, "parse error")
}
