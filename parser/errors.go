package parser

import (
	"fmt"

	"github.com/robinvdvleuten/costbasis/txn"
)

// ParseError represents a structural error in a spreadsheet export.
type ParseError struct {
	Pos        txn.Position
	Message    string
	Underlying error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func (e *ParseError) GetPosition() txn.Position {
	return e.Pos
}

func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// newParseError creates a parse error at the given line.
func newParseError(filename string, line int, message string, err error) *ParseError {
	return &ParseError{
		Pos:        txn.Position{Filename: filename, Line: line, Column: 1},
		Message:    message,
		Underlying: err,
	}
}
