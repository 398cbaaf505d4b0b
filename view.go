package textable

import "fmt"

// View is the read-only tabular interface consumed
// by all writers of this module (CSV, HTML, XLSX, terminal preview).
type View interface {
	// Title of the view, used as caption or sheet name.
	// May be empty.
	Title() string

	// Columns returns the column titles
	// which also define the number of columns.
	Columns() []string

	// NumRows returns the number of data rows
	// not counting a header row of column titles.
	NumRows() int

	// Cell returns the value at row and col
	// or nil if row or col are out of bounds.
	Cell(row, col int) any
}

// CellString returns the cell of view as string.
// A nil cell results in an empty string,
// a non string cell is formatted with fmt.Sprint.
func CellString(view View, row, col int) string {
	switch v := view.Cell(row, col).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
