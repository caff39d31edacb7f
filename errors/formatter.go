// Package errors renders processing and ingestion errors for people and
// programs. It keeps presentation out of the domain packages: the error types
// live in ledger, txn and parser, this package only formats them.
//
// Two formatters are provided:
//   - TextFormatter: the message followed by the offending transaction or the
//     surrounding source lines, for the command line
//   - JSONFormatter: structured objects for APIs and tooling
package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/robinvdvleuten/costbasis/ledger"
	"github.com/robinvdvleuten/costbasis/txn"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// positioned is implemented by errors that point into a source file.
type positioned interface {
	GetPosition() txn.Position
}

// transactional is implemented by errors tied to a transaction.
type transactional interface {
	GetTransaction() txn.Transaction
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	sourceContent []byte
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source content shown around positioned errors.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sourceContent = source
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error.
func (tf *TextFormatter) Format(err error) string {
	var pos txn.Position
	var p positioned
	if stderrors.As(err, &p) {
		pos = p.GetPosition()
	}

	if tf.sourceContent != nil && pos.Line > 0 {
		return tf.formatWithSourceContext(pos, err.Error(), tf.sourceContent)
	}

	var t transactional
	if stderrors.As(err, &t) {
		return formatWithTransaction(err.Error(), t.GetTransaction())
	}

	return err.Error()
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, strings.TrimRight(tf.Format(err), "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// formatWithTransaction shows the message followed by the transaction.
func formatWithTransaction(message string, tx txn.Transaction) string {
	var buf bytes.Buffer
	buf.WriteString(message)
	buf.WriteString("\n\n   ")
	buf.WriteString(tx.String())
	buf.WriteByte('\n')
	return buf.String()
}

// formatWithSourceContext shows the message followed by the source lines
// around pos, with a caret under the offending column.
func (tf *TextFormatter) formatWithSourceContext(pos txn.Position, message string, sourceContent []byte) string {
	var buf bytes.Buffer

	buf.WriteString(message)
	buf.WriteString("\n\n")

	sourceLines := strings.Split(string(sourceContent), "\n")

	// Two lines before the error line and one after, 0-based
	startLine := max(pos.Line-3, 0)
	endLine := min(pos.Line, len(sourceLines)-1)

	for i := startLine; i <= endLine; i++ {
		buf.WriteString("   ")
		buf.WriteString(strings.TrimRight(sourceLines[i], "\r"))
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", pos.Column-1))
			buf.WriteString("^\n")
		}
	}

	return buf.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string         `json:"type"`
	Message  string         `json:"message"`
	Position *PositionJSON  `json:"position,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

// toJSON converts an error to ErrorJSON. The type names the innermost
// domain error rather than the wrapper.
func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", cause(err)),
		Message: err.Error(),
		Details: make(map[string]any),
	}

	var p positioned
	if stderrors.As(err, &p) {
		if pos := p.GetPosition(); !pos.IsZero() {
			errJSON.Position = &PositionJSON{
				Filename: pos.Filename,
				Line:     pos.Line,
				Column:   pos.Column,
			}
		}
	}

	var t transactional
	if stderrors.As(err, &t) {
		tx := t.GetTransaction()
		errJSON.Details["date"] = tx.Date
		errJSON.Details["transactionType"] = tx.Type.String()
	}

	var unknownErr *ledger.UnknownAssetError
	var insufficientErr *ledger.InsufficientBalanceError
	var negativeErr *ledger.NegativeAmountError
	var fieldErr *txn.InvalidFieldError
	switch {
	case stderrors.As(err, &unknownErr):
		errJSON.Details["symbol"] = unknownErr.Symbol
	case stderrors.As(err, &insufficientErr):
		errJSON.Details["symbol"] = insufficientErr.Symbol
		errJSON.Details["requested"] = insufficientErr.Requested.String()
		errJSON.Details["available"] = insufficientErr.Available.String()
	case stderrors.As(err, &negativeErr):
		errJSON.Details["symbol"] = negativeErr.Symbol
		errJSON.Details["amount"] = negativeErr.Amount.String()
	case stderrors.As(err, &fieldErr):
		errJSON.Details["field"] = fieldErr.Field
		if fieldErr.Value != "" {
			errJSON.Details["value"] = fieldErr.Value
		}
	}

	if len(errJSON.Details) == 0 {
		errJSON.Details = nil
	}

	return errJSON
}

// cause unwraps TransactionError to the error that caused it.
func cause(err error) error {
	var txErr *ledger.TransactionError
	if stderrors.As(err, &txErr) {
		return txErr.Err
	}
	return err
}
