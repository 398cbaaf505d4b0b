package textable

import "strings"

// RemoveEmptyStringRows removes all rows
// where every cell is empty or whitespace only.
// The passed rows slice is modified in place.
func RemoveEmptyStringRows(rows [][]string) [][]string {
	n := 0
	for _, row := range rows {
		if !IsEmptyStringRow(row) {
			rows[n] = row
			n++
		}
	}
	return rows[:n]
}

// IsEmptyStringRow returns true if all cells of row
// are empty or whitespace only.
func IsEmptyStringRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// RemoveEmptyStringColumns removes trailing columns
// that are empty in every row and returns the
// resulting maximum number of columns.
// Rows are truncated in place.
func RemoveEmptyStringColumns(rows [][]string) (numCols int) {
	for _, row := range rows {
		for col := len(row) - 1; col >= numCols; col-- {
			if strings.TrimSpace(row[col]) != "" {
				numCols = col + 1
				break
			}
		}
	}
	for i, row := range rows {
		if len(row) > numCols {
			rows[i] = row[:numCols]
		}
	}
	return numCols
}
