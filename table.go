package textable

import "strings"

// NumCols is the fixed number of columns of every Row
// produced by ParseTextToColumns.
const NumCols = 2

// Row is one line of text split into column A and column B.
type Row [NumCols]string

// Table is the ordered result of parsing a text,
// one Row per non-blank input line.
type Table []Row

// NumRows returns the number of rows of the table.
func (t Table) NumRows() int { return len(t) }

// IsEmpty returns true if the table has no rows.
func (t Table) IsEmpty() bool { return len(t) == 0 }

// Strings returns the table as slice of string slices
// as used for the values of a spreadsheet append request.
// Returns nil for an empty table.
func (t Table) Strings() [][]string {
	if len(t) == 0 {
		return nil
	}
	rows := make([][]string, len(t))
	for i := range t {
		rows[i] = []string{t[i][0], t[i][1]}
	}
	return rows
}

// View returns a StringsView for the table.
// If no columns are passed, then the spreadsheet
// column letters "A" and "B" are used as titles.
// Additional columns beyond NumCols result in empty cells.
func (t Table) View(title string, columns ...string) *StringsView {
	if len(columns) == 0 {
		columns = []string{ColumnLetters(0), ColumnLetters(1)}
	}
	return &StringsView{Tit: title, Cols: columns, Rows: t.Strings()}
}

// TableFromStrings converts rows of any length to a Table
// by padding missing cells with empty strings
// and discarding cells beyond NumCols.
func TableFromStrings(rows [][]string) Table {
	if len(rows) == 0 {
		return nil
	}
	table := make(Table, len(rows))
	for i, row := range rows {
		copy(table[i][:], row)
	}
	return table
}

// String returns the cells of the row joined by a tab.
func (r Row) String() string {
	return strings.Join(r[:], "\t")
}
