package exceltable

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/domonda/go-textable"
)

// ReadFirstSheet reads the first sheet from an Excel file provided via io.Reader
// and returns it as a textable.View titled with the sheet name.
//
// The first row of the sheet is used as column headers, and subsequent rows
// contain the data. Empty rows and trailing empty columns are removed.
//
// If rawCellStrings is true, cell values are returned without
// the number format of the cell applied.
//
// Returns ErrEmptySheet if the first sheet has no data after cleanup.
func ReadFirstSheet(reader io.Reader, rawCellStrings bool) (sheetView textable.View, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrSheetNotExist{SheetName: "<FirstSheet>"}
	}
	return readSheet(f, sheet, rawCellStrings)
}

// ReadLocalFileFirstSheet reads the first sheet of the Excel file
// at filename, see ReadFirstSheet.
func ReadLocalFileFirstSheet(filename string, rawCellStrings bool) (sheetView textable.View, err error) {
	f, e := excelize.OpenFile(filename)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrSheetNotExist{SheetName: "<FirstSheet>"}
	}
	return readSheet(f, sheet, rawCellStrings)
}

func readSheet(f *excelize.File, sheet string, rawCellStrings bool) (*textable.StringsView, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: rawCellStrings})
	if err != nil {
		return nil, err
	}
	rows = textable.RemoveEmptyStringRows(rows)
	numCols := textable.RemoveEmptyStringColumns(rows)
	if len(rows) == 0 || numCols == 0 {
		return nil, ErrEmptySheet
	}
	columns := rows[0]
	if len(columns) < numCols {
		// Append empty strings to columns to match numCols
		columns = append(columns, make([]string, numCols-len(columns))...)
	}
	return textable.NewStringsView(sheet, rows[1:], columns...), nil
}
