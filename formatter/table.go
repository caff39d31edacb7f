package formatter

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// align controls the padding side of a column.
type align int

const (
	alignLeft align = iota
	alignRight
)

// cell is a table cell. Widths are measured on text; style is applied after
// padding so terminal escape codes do not disturb the alignment.
type cell struct {
	text  string
	style func(string) string
}

func plain(text string) cell {
	return cell{text: text}
}

func styled(text string, style func(string) string) cell {
	return cell{text: text, style: style}
}

// table renders rows of cells in aligned columns.
type table struct {
	aligns []align
	rows   [][]cell
}

func newTable(aligns ...align) *table {
	return &table{aligns: aligns}
}

func (t *table) add(cells ...cell) {
	t.rows = append(t.rows, cells)
}

func (t *table) widths() []int {
	widths := make([]int, len(t.aligns))
	for _, row := range t.rows {
		for i, c := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(c.text))
			}
		}
	}
	return widths
}

// write renders the table with indent before every row and two spaces
// between columns. Trailing padding is dropped.
func (t *table) write(w io.Writer, indent string) error {
	widths := t.widths()

	for _, row := range t.rows {
		var sb strings.Builder
		sb.WriteString(indent)

		last := len(row) - 1
		for last >= 0 && row[last].text == "" {
			last--
		}

		for i := 0; i <= last; i++ {
			c := row[i]
			if i > 0 {
				sb.WriteString("  ")
			}

			text := c.text
			if i < last || t.aligns[i] == alignRight {
				if t.aligns[i] == alignRight {
					text = runewidth.FillLeft(text, widths[i])
				} else {
					text = runewidth.FillRight(text, widths[i])
				}
			}

			if c.style != nil && c.text != "" {
				padded := text
				trimmed := strings.TrimSpace(padded)
				text = strings.Replace(padded, trimmed, c.style(trimmed), 1)
			}
			sb.WriteString(text)
		}

		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}

	return nil
}
