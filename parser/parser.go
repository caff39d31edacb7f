// Package parser reads transaction exports copied out of spreadsheets.
//
// The first non-empty line is a header naming the columns; every following
// non-empty line is one transaction. Columns are separated by tabs, commas or
// runs of two or more spaces. The separator is detected from the header so
// that thousands separators inside tab separated amounts survive.
//
// Cells are cleaned the way spreadsheet exports need: amounts lose their
// thousands separators, prices lose currency signs and any other character
// that is not a digit, a dot or a minus sign. Defaulting and numeric parsing
// are left to txn.Normalizer.
package parser

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/robinvdvleuten/costbasis/telemetry"
	"github.com/robinvdvleuten/costbasis/txn"
)

// Separator identifies how the columns of an export are delimited.
type Separator int

const (
	SeparatorTab Separator = iota
	SeparatorComma
	SeparatorSpaces
)

// String returns the name of the separator.
func (s Separator) String() string {
	switch s {
	case SeparatorTab:
		return "tab"
	case SeparatorComma:
		return "comma"
	default:
		return "spaces"
	}
}

// column is a known header name.
type column int

const (
	colType column = iota
	colDate
	colBuyCoin
	colSellCoin
	colBuyAmount
	colSellAmount
	colBuyPrice
	colSellPrice
)

// columns maps lower-cased header names to the field they fill.
var columns = map[string]column{
	"type":             colType,
	"date":             colDate,
	"buycoin":          colBuyCoin,
	"sellcoin":         colSellCoin,
	"buyamount":        colBuyAmount,
	"sellamount":       colSellAmount,
	"buypricepercoin":  colBuyPrice,
	"sellpricepercoin": colSellPrice,
}

var (
	spacesRe   = regexp.MustCompile(` {2,}`)
	nonPriceRe = regexp.MustCompile(`[^0-9.\-]+`)
)

// Parser converts spreadsheet exports into transaction inputs.
type Parser struct {
	filename string
	interner *Interner
}

// New creates a parser; filename is only used for positions in errors.
func New(filename string) *Parser {
	return &Parser{
		filename: filename,
		interner: NewInterner(64),
	}
}

// ParseCSV parses data with a fresh Parser.
func ParseCSV(ctx context.Context, filename string, data []byte) ([]txn.Input, error) {
	return New(filename).Parse(ctx, data)
}

// DetectSeparator returns the separator used by a header line.
func DetectSeparator(header string) Separator {
	switch {
	case strings.Contains(header, "\t"):
		return SeparatorTab
	case strings.Contains(header, ","):
		return SeparatorComma
	default:
		return SeparatorSpaces
	}
}

// Parse parses data. An input with fewer than two non-empty lines yields an
// empty batch.
func (p *Parser) Parse(ctx context.Context, data []byte) ([]txn.Input, error) {
	timer := telemetry.StartTimer(ctx, "parser.csv")
	defer timer.End()

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	rows, err := p.rows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []txn.Input{}, nil
	}

	header := rows[0]
	layout := make([]column, len(header.cells))
	known := 0
	for i, name := range header.cells {
		col, ok := columns[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			layout[i] = -1
			continue
		}
		layout[i] = col
		known++
	}
	if known == 0 {
		return nil, newParseError(p.filename, header.line,
			fmt.Sprintf("header %q has no recognized column", strings.Join(header.cells, ", ")), nil)
	}

	telemetry.Logger(ctx).Debug("parsing transactions",
		"filename", p.filename, "rows", len(rows)-1, "columns", known)

	inputs := make([]txn.Input, 0, len(rows)-1)
	for _, row := range rows[1:] {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		in := txn.Input{Pos: txn.Position{Filename: p.filename, Line: row.line, Column: 1}}
		for i, col := range layout {
			if col < 0 || i >= len(row.cells) {
				continue
			}
			p.assign(&in, col, strings.TrimSpace(row.cells[i]))
		}
		inputs = append(inputs, in)
	}

	return inputs, nil
}

// row is one non-empty line split into cells.
type row struct {
	line  int
	cells []string
}

// rows splits data into non-empty rows using the separator of the first line.
func (p *Parser) rows(data []byte) ([]row, error) {
	firstLine := ""
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			firstLine = line
			break
		}
	}

	switch DetectSeparator(firstLine) {
	case SeparatorTab:
		return p.delimited(data, '\t')
	case SeparatorComma:
		return p.delimited(data, ',')
	default:
		return p.spaced(data), nil
	}
}

// delimited reads tab or comma separated rows, honoring quoted cells.
func (p *Parser) delimited(data []byte, comma rune) ([]row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows []row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			line := 1
			if errors.As(err, &csvErr) {
				line = csvErr.Line
			}
			return nil, newParseError(p.filename, line, "malformed row", err)
		}

		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}
		rows = append(rows, row{line: line, cells: record})
	}

	return rows, nil
}

// spaced splits rows on runs of two or more spaces.
func (p *Parser) spaced(data []byte) []row {
	var rows []row
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, row{line: i + 1, cells: spacesRe.Split(line, -1)})
	}
	return rows
}

// assign stores a cleaned cell value. Empty cells stay absent.
func (p *Parser) assign(in *txn.Input, col column, value string) {
	switch col {
	case colBuyAmount, colSellAmount:
		value = strings.ReplaceAll(value, ",", "")
	case colBuyPrice, colSellPrice:
		value = nonPriceRe.ReplaceAllString(value, "")
	case colType:
		value = strings.ToUpper(value)
	}

	if value == "" {
		return
	}

	switch col {
	case colType:
		in.Type = txn.F(p.interner.Intern(value))
	case colDate:
		in.Date = txn.F(p.interner.Intern(value))
	case colBuyCoin:
		in.BuyCoin = txn.F(p.interner.Intern(value))
	case colSellCoin:
		in.SellCoin = txn.F(p.interner.Intern(value))
	case colBuyAmount:
		in.BuyAmount = txn.F(value)
	case colSellAmount:
		in.SellAmount = txn.F(value)
	case colBuyPrice:
		in.BuyPricePerCoin = txn.F(value)
	case colSellPrice:
		in.SellPricePerCoin = txn.F(value)
	}
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
