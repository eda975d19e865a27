// Package refdata provides the reference data store for quoting runs.
// Master tables are loaded once per run into an immutable snapshot and
// every pipeline stage reads from that snapshot.
package refdata

import (
	"strings"

	"freight-quote/internal/errors"
)

// Table is a generic named table as delivered by the file layer.
// Column names are normalized (uppercased, whitespace-trimmed) on
// construction so joins never depend on header formatting.
type Table struct {
	// Name identifies the table (one of the Table* constants,
	// or "shipments" for the quote batch)
	Name string

	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable builds a table from a raw header row and data rows.
func NewTable(name string, header []string, rows [][]string) *Table {
	t := &Table{
		Name:    name,
		columns: make([]string, len(header)),
		index:   make(map[string]int, len(header)),
		rows:    rows,
	}
	for i, col := range header {
		normalized := strings.ToUpper(strings.TrimSpace(col))
		t.columns[i] = normalized
		if _, exists := t.index[normalized]; !exists {
			t.index[normalized] = i
		}
	}
	return t
}

// Columns returns the normalized column names in order
func (t *Table) Columns() []string {
	return t.columns
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Has reports whether the table carries the given column
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Cell returns the trimmed value at (row, column). Rows may be ragged
// when they come from a spreadsheet; cells past the end of a row read
// as empty.
func (t *Table) Cell(row int, column string) string {
	idx, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return ""
	}
	cells := t.rows[row]
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

// Require verifies that every named column is present, returning a
// configuration error naming the first missing one.
func (t *Table) Require(columns ...string) error {
	for _, col := range columns {
		if !t.Has(col) {
			return errors.MissingColumn(t.Name, col)
		}
	}
	return nil
}
