// Package loader reads transaction batches from files.
//
// Two formats are supported: the JSON request body accepted by the HTTP API
// ({"transactions": [...]}, or a bare array of transactions) and spreadsheet
// exports handled by the parser package. The format is chosen from the file
// extension, or sniffed from the content when the extension says nothing.
//
// Example usage:
//
//	ldr := loader.New()
//	result, err := ldr.Load(ctx, "trades.csv")
//
//	// Force a format for data without a meaningful name
//	ldr := loader.New(loader.WithFormat(loader.FormatJSON))
//	result, err := ldr.LoadBytes(ctx, "<stdin>", data)
package loader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/robinvdvleuten/costbasis/parser"
	"github.com/robinvdvleuten/costbasis/telemetry"
	"github.com/robinvdvleuten/costbasis/txn"
)

// Format identifies the encoding of a batch.
type Format int

const (
	// FormatAuto detects the format from the extension or the content.
	FormatAuto Format = iota
	// FormatCSV is a tab, comma or space separated spreadsheet export.
	FormatCSV
	// FormatJSON is a calculation request body.
	FormatJSON
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	default:
		return "auto"
	}
}

// Loader loads transaction batches from files.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithFormat(FormatCSV))
type Loader struct {
	// Format forces a format. FormatAuto detects it per file.
	Format Format
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithFormat forces the format of every loaded file.
func WithFormat(format Format) Option {
	return func(l *Loader) {
		l.Format = format
	}
}

// Result is a loaded batch together with its source.
type Result struct {
	// Filename is the name the batch was loaded under.
	Filename string
	// Format is the format the batch was decoded with.
	Format Format
	// Source is the raw content, kept for error context.
	Source []byte
	// Inputs are the raw transactions in source order.
	Inputs []txn.Input
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{Format: FormatAuto}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load reads and decodes filename.
func (l *Loader) Load(ctx context.Context, filename string) (*Result, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return l.LoadBytes(ctx, filename, data)
}

// LoadBytes decodes data that was read from filename.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*Result, error) {
	format := l.Format
	if format == FormatAuto {
		format = DetectFormat(filename, data)
	}

	timer := telemetry.StartTimer(ctx, "loader."+format.String())
	defer timer.End()

	result := &Result{
		Filename: filename,
		Format:   format,
		Source:   data,
	}

	switch format {
	case FormatJSON:
		inputs, err := decodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
		}
		result.Inputs = inputs
	default:
		inputs, err := parser.ParseCSV(ctx, filename, data)
		if err != nil {
			return nil, err
		}
		result.Inputs = inputs
	}

	telemetry.Logger(ctx).Debug("loaded batch",
		"filename", filename, "format", format.String(), "transactions", len(result.Inputs))

	return result, nil
}

// DetectFormat chooses a format from the file extension, falling back to
// the first non-blank byte of data.
func DetectFormat(filename string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	case ".csv", ".tsv", ".txt":
		return FormatCSV
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n\xef\xbb\xbf")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatCSV
}

// decodeJSON accepts a request object or a bare array of transactions.
func decodeJSON(data []byte) ([]txn.Input, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		wrapped := make([]byte, 0, len(trimmed)+20)
		wrapped = append(wrapped, `{"transactions":`...)
		wrapped = append(wrapped, trimmed...)
		wrapped = append(wrapped, '}')
		trimmed = wrapped
	}

	req, err := txn.DecodeRequest(bytes.NewReader(trimmed))
	if err != nil {
		return nil, err
	}
	return req.Transactions, nil
}
