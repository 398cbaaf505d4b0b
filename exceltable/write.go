// Package exceltable writes textable views as XLSX workbooks
// and reads them back, using github.com/xuri/excelize/v2.
//
// Example usage:
//
//	table := textable.ParseTextToColumns(text)
//	err := exceltable.WriteLocalFile("selection.xlsx", table.View(""), "", true)
package exceltable

import (
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/domonda/go-textable"
)

// DefaultSheetName is the name of the only sheet
// of a new workbook, the same as in Google Sheets.
const DefaultSheetName = "Sheet1"

// Write writes the view as workbook with a single sheet to dest.
//
// If sheetName is empty, then the view title is used
// or DefaultSheetName if the view has no title.
// If headerRow is true, then the column titles of the view are
// written as first row.
//
// Cells that are numbers are written as numeric values,
// all others as strings.
func Write(dest io.Writer, view textable.View, sheetName string, headerRow bool) (err error) {
	f, err := newWorkbook(view, sheetName, headerRow)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return f.Write(dest)
}

// WriteLocalFile writes the view as workbook to filename, see Write.
func WriteLocalFile(filename string, view textable.View, sheetName string, headerRow bool) (err error) {
	f, err := newWorkbook(view, sheetName, headerRow)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return f.SaveAs(filename)
}

func newWorkbook(view textable.View, sheetName string, headerRow bool) (*excelize.File, error) {
	if sheetName == "" {
		sheetName = view.Title()
	}
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	if sheetName != DefaultSheetName {
		err := f.SetSheetName(DefaultSheetName, sheetName)
		if err != nil {
			return nil, errors.Join(err, f.Close())
		}
	}

	var (
		numCols  = len(view.Columns())
		sheetRow = 1
		values   = make([]any, numCols)
	)
	writeRow := func() error {
		cell, err := excelize.CoordinatesToCellName(1, sheetRow)
		if err != nil {
			return err
		}
		sheetRow++
		return f.SetSheetRow(sheetName, cell, &values)
	}

	if headerRow {
		for col, title := range view.Columns() {
			values[col] = title
		}
		if err := writeRow(); err != nil {
			return nil, errors.Join(err, f.Close())
		}
	}
	for row := 0; row < view.NumRows(); row++ {
		for col := 0; col < numCols; col++ {
			values[col] = cellValue(textable.CellString(view, row, col))
		}
		if err := writeRow(); err != nil {
			return nil, errors.Join(err, f.Close())
		}
	}
	return f, nil
}

func cellValue(str string) any {
	f, err := strconv.ParseFloat(str, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return str
	}
	return f
}
