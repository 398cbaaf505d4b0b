package textable

import (
	"strings"
)

// StringsView is a View implementation that uses strings as cell values.
// It is the representation of a parsed Table handed to all writers.
//
// The Cols field defines the column names and determines the number of columns.
// Each element in Rows represents a row of data, where each row is a slice of strings.
//
// StringsView supports sparse data: a row within Rows can have fewer slice elements
// than Cols, in which case empty strings ("") are returned as values for missing cells.
//
// Example usage:
//
//	view := textable.NewStringsView(
//	    "Selection",
//	    [][]string{
//	        {"A", "B"},
//	        {"Apple", "10"},
//	        {"Pear"},
//	    },
//	)
//	fmt.Println(view.Cell(0, 1)) // Output: 10
//	fmt.Println(view.Cell(1, 1)) // Output: "" (empty string)
type StringsView struct {
	// Tit is the title of this view, returned by the Title() method.
	Tit string

	// Cols contains the column names defining both the column headers
	// and the number of columns in this view.
	Cols []string

	// Rows contains the data rows, where each row is a slice of strings.
	// Rows can have fewer elements than len(Cols) for sparse data support.
	Rows [][]string
}

var _ View = new(StringsView)

// NewStringsView creates a new StringsView.
//
// If no cols are passed and rows is not empty,
// then the first row is used as column names
// and removed from the data rows.
//
// All column names have leading and trailing whitespace trimmed.
func NewStringsView(title string, rows [][]string, cols ...string) *StringsView {
	if len(cols) == 0 && len(rows) > 0 {
		cols = rows[0]
		rows = rows[1:]
	}
	trimmed := make([]string, len(cols))
	for i, col := range cols {
		trimmed[i] = strings.TrimSpace(col)
	}
	return &StringsView{Tit: title, Cols: trimmed, Rows: rows}
}

// Title returns the title of this view.
func (view *StringsView) Title() string { return view.Tit }

// Columns returns the column names of this view.
func (view *StringsView) Columns() []string { return view.Cols }

// NumRows returns the number of data rows in this view.
func (view *StringsView) NumRows() int { return len(view.Rows) }

// Cell returns the value at the specified row and column indices.
//
// For StringsView, Cell returns:
//   - The string value at [row][col] if the cell exists
//   - An empty string "" if the row exists but has fewer columns (sparse data)
//   - nil if row or col indices are out of bounds
func (view *StringsView) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= len(view.Rows) || col >= len(view.Cols) {
		return nil
	}
	if col >= len(view.Rows[row]) {
		return ""
	}
	return view.Rows[row][col]
}

// Table returns the view rows as Table
// keeping only the first NumCols columns.
func (view *StringsView) Table() Table {
	return TableFromStrings(view.Rows)
}

// NewHeaderViewFrom creates a HeaderView from an existing View's columns.
//
// The column names of source appear as both
// the header and the single data row.
func NewHeaderViewFrom(source View) *HeaderView {
	return &HeaderView{Tit: source.Title(), Cols: source.Columns()}
}

// HeaderView is a View that contains only a header row.
//
// The view always has exactly one row (NumRows() returns 1), and that row
// contains the column names as values.
// Writers use it to render the header with the same code path as data rows.
type HeaderView struct {
	// Tit is the title of this view.
	Tit string

	// Cols contains the column names, which are also used as the data row.
	Cols []string
}

// Title returns the title of this view.
func (view *HeaderView) Title() string { return view.Tit }

// Columns returns the column names of this view.
func (view *HeaderView) Columns() []string { return view.Cols }

// NumRows always returns 1 for HeaderView since it contains only the header row.
func (view *HeaderView) NumRows() int { return 1 }

// Cell returns the column name at the specified column index for row 0
// or nil if row is not 0 or col is out of bounds.
func (view *HeaderView) Cell(row, col int) any {
	if row != 0 || col < 0 || col >= len(view.Cols) {
		return nil
	}
	return view.Cols[col]
}
