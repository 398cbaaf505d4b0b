package csvtable

import (
	"strings"

	"github.com/domonda/go-textable"
)

// ExportCSV serializes a parsed table as comma separated text
// with rows joined by \n and no trailing newline.
//
// A cell containing a comma, a double quote or a newline
// is enclosed in double quotes with internal quotes doubled,
// all other cells are written unchanged.
// An empty table results in an empty string.
//
// The result is the clipboard payload and download
// content when a table can't be sent.
func ExportCSV(table textable.Table) string {
	var b strings.Builder
	for i, row := range table {
		if i > 0 {
			b.WriteByte('\n')
		}
		for col, cell := range row {
			if col > 0 {
				b.WriteByte(',')
			}
			if needsQuotes(cell, ',') {
				b.WriteString(`"` + EscapeQuotes(cell) + `"`)
			} else {
				b.WriteString(cell)
			}
		}
	}
	return b.String()
}
