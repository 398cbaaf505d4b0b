package textable

import (
	"context"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Option flags modify how a View is converted to strings.
type Option int

const (
	// OptionAddHeaderRow adds the column titles as first row.
	OptionAddHeaderRow Option = 1 << iota
)

func (o Option) Has(option Option) bool {
	return o&option != 0
}

func (o Option) String() string {
	var b strings.Builder
	if o.Has(OptionAddHeaderRow) {
		b.WriteString("AddHeaderRow")
	}
	if b.Len() == 0 {
		return "no Option"
	}
	return b.String()
}

// HasOption returns true if any of the options has option set.
func HasOption(options []Option, option Option) bool {
	for _, o := range options {
		if o.Has(option) {
			return true
		}
	}
	return false
}

// ViewStrings converts a View into a 2D string slice
// where every row has len(view.Columns()) elements.
//
// When OptionAddHeaderRow is passed, the column titles
// are added as the first row.
//
// Returns ctx.Err() if the context is canceled
// before all rows are converted.
func ViewStrings(ctx context.Context, view View, options ...Option) (rows [][]string, err error) {
	numRows := view.NumRows()
	numCols := len(view.Columns())

	if HasOption(options, OptionAddHeaderRow) {
		rows = append(rows, viewRowStrings(NewHeaderViewFrom(view), 0, numCols))
	}
	for row := 0; row < numRows; row++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		rows = append(rows, viewRowStrings(view, row, numCols))
	}
	return rows, nil
}

func viewRowStrings(view View, row, numCols int) []string {
	rowStrs := make([]string, numCols)
	for col := range rowStrs {
		rowStrs[col] = CellString(view, row, col)
	}
	return rowStrs
}

// StringColumnWidths returns the column widths of the passed
// rows as terminal display cells, counting east asian
// wide characters as two cells.
// If numCols is negative, then the maximum
// number of columns of all rows is used.
// Rows with fewer than numCols cells are allowed.
func StringColumnWidths(rows [][]string, numCols int) []int {
	if numCols < 0 {
		for _, row := range rows {
			if rowCols := len(row); rowCols > numCols {
				numCols = rowCols
			}
		}
		if numCols <= 0 {
			return nil
		}
	}
	colWidths := make([]int, numCols)
	for row := range rows {
		for col := 0; col < numCols && col < len(rows[row]); col++ {
			width := runewidth.StringWidth(rows[row][col])
			if width > colWidths[col] {
				colWidths[col] = width
			}
		}
	}
	return colWidths
}

// StringWidth returns the terminal display width of str.
func StringWidth(str string) int {
	return runewidth.StringWidth(str)
}
