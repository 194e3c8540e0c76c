package domain

import (
	"fmt"
	"strings"
)

// Table is an in-memory tabular report: an ordered header row plus data rows
// aligned by index. Every row has exactly len(Headers) cells, so all columns
// share the same length.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// NewTable builds a table from a header row and data rows. Rows shorter than
// the header are padded with empty cells; rows wider than the header are
// rejected because cell alignment would be ambiguous.
func NewTable(headers []string, rows [][]string) (Table, error) {
	if len(headers) == 0 {
		return Table{}, fmt.Errorf("table requires at least one header")
	}

	normalized := make([][]string, 0, len(rows))
	for i, row := range rows {
		if len(row) > len(headers) {
			return Table{}, fmt.Errorf("row %d has %d cells, header has %d", i, len(row), len(headers))
		}
		if len(row) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, row)
			row = padded
		}
		normalized = append(normalized, row)
	}

	return Table{Headers: headers, Rows: normalized}, nil
}

// RowCount returns the number of data rows.
func (t Table) RowCount() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named header, matched exactly,
// or -1 when the header is not present.
func (t Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Column returns the cells of the named column in row order. The second
// return value reports whether the column exists.
func (t Table) Column(name string) ([]string, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	col := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		col[i] = row[idx]
	}
	return col, true
}

// Cell returns the value at the given row index and column name, or the
// empty string when either does not exist.
func (t Table) Cell(row int, column string) string {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][idx]
}

// SelectRows returns a new table containing only the rows at the given
// indices, in the order provided. The receiver is not modified; cell slices
// are copied so later edits to the result cannot leak back.
func (t Table) SelectRows(indices []int) Table {
	headers := make([]string, len(t.Headers))
	copy(headers, t.Headers)

	rows := make([][]string, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(t.Rows) {
			continue
		}
		row := make([]string, len(t.Rows[idx]))
		copy(row, t.Rows[idx])
		rows = append(rows, row)
	}
	return Table{Headers: headers, Rows: rows}
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	indices := make([]int, len(t.Rows))
	for i := range indices {
		indices[i] = i
	}
	return t.SelectRows(indices)
}

// String renders a short diagnostic description, not a full dump.
func (t Table) String() string {
	return fmt.Sprintf("Table(%d rows, columns: %s)", len(t.Rows), strings.Join(t.Headers, ", "))
}
