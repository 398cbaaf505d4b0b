// Package htmltable writes textable views as HTML tables
// for previewing parsed text in a browser or an HTML report.
//
// All cell values are HTML-escaped unless a column
// has a CellFormatter returning its own markup.
//
// Example usage:
//
//	table := textable.ParseTextToColumns("Apple,10\nPear,20")
//
//	err := htmltable.NewWriter().
//	    WithHeaderRow(true).
//	    WithTableClass("preview").
//	    WithCaption("Selection").
//	    WriteView(ctx, os.Stdout, table.View(""))
package htmltable

import (
	"context"
	"html/template"
	"io"
	"maps"

	"github.com/domonda/go-textable"
)

// Writer writes views as HTML table elements.
//
// Writer is immutable after creation - all With* methods return
// a new Writer instance with the modified configuration.
type Writer struct {
	tableClass       string
	caption          string
	rowLimit         int
	columnFormatters map[int]CellFormatter
	headerRow        bool
	headerTemplate   *template.Template
	rowTemplate      *template.Template
	footerTemplate   *template.Template
}

// NewWriter creates a new HTML table writer
// with the default templates, no header row and no row limit.
func NewWriter() *Writer {
	return &Writer{
		columnFormatters: make(map[int]CellFormatter),
		headerTemplate:   HeaderTemplate,
		rowTemplate:      RowTemplate,
		footerTemplate:   FooterTemplate,
	}
}

// WriteTable writes a parsed table using
// the column letters as header titles.
func (w *Writer) WriteTable(ctx context.Context, dest io.Writer, table textable.Table) error {
	return w.WriteView(ctx, dest, table.View(""))
}

// WriteView writes a table view as HTML to the destination writer.
//
// The caption is taken from the writer if set,
// else from the title of the view.
// If the writer has a row limit, then only the first rows
// are written followed by a footer with the number of omitted rows.
//
// Returns ctx.Err() if the context is canceled.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view textable.View) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var (
		columns   = view.Columns()
		numCols   = len(columns)
		numRows   = view.NumRows()
		templData = &RowTemplateContext{
			TemplateContext: TemplateContext{
				TableClass: w.tableClass,
				Caption:    w.caption,
				NumCols:    numCols,
			},
			RawCells: make([]template.HTML, numCols),
		}
	)
	if templData.Caption == "" {
		templData.Caption = view.Title()
	}
	if w.rowLimit > 0 && numRows > w.rowLimit {
		templData.OmittedRows = numRows - w.rowLimit
		numRows = w.rowLimit
	}

	err := w.headerTemplate.Execute(dest, templData.TemplateContext)
	if err != nil {
		return err
	}

	if w.headerRow {
		templData.IsHeaderRow = true
		for i := range columns {
			templData.RawCells[i] = EscapeCellFormatter(columns[i])
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.IsHeaderRow = false
		templData.RowIndex++
	}

	for row := 0; row < numRows; row++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		for col := 0; col < numCols; col++ {
			value := textable.CellString(view, row, col)
			if formatter, ok := w.columnFormatters[col]; ok {
				templData.RawCells[col] = formatter.FormatCell(value)
			} else {
				templData.RawCells[col] = EscapeCellFormatter(value)
			}
		}

		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}

		templData.RowIndex++
	}

	return w.footerTemplate.Execute(dest, templData.TemplateContext)
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

// WithHeaderRow returns a new writer with header row configuration.
// When enabled, the column titles are rendered as first row
// using <th> elements instead of <td>.
func (w *Writer) WithHeaderRow(headerRow bool) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

// WithTableClass returns a new writer with the specified CSS class for the table element.
// The class will be rendered as: <table class='tableClass'>
func (w *Writer) WithTableClass(tableClass string) *Writer {
	mod := w.clone()
	mod.tableClass = tableClass
	return mod
}

// WithCaption returns a new writer using caption
// instead of the view title as table caption.
func (w *Writer) WithCaption(caption string) *Writer {
	mod := w.clone()
	mod.caption = caption
	return mod
}

// WithRowLimit returns a new writer that writes
// at most rowLimit data rows, zero means no limit.
func (w *Writer) WithRowLimit(rowLimit int) *Writer {
	mod := w.clone()
	mod.rowLimit = max(rowLimit, 0)
	return mod
}

// WithColumnFormatter returns a new writer with the formatter registered for columnIndex.
// If nil is passed as formatter, then a previous registered column formatter is removed.
func (w *Writer) WithColumnFormatter(columnIndex int, formatter CellFormatter) *Writer {
	mod := w.clone()
	mod.columnFormatters = maps.Clone(w.columnFormatters)
	if mod.columnFormatters == nil {
		mod.columnFormatters = make(map[int]CellFormatter)
	}
	if formatter != nil {
		mod.columnFormatters[columnIndex] = formatter
	} else {
		delete(mod.columnFormatters, columnIndex)
	}
	return mod
}

// WithTemplate returns a new writer with custom templates for rendering the HTML table.
//
// The header and footer templates receive a TemplateContext,
// the row template a RowTemplateContext.
func (w *Writer) WithTemplate(headerTemplate, rowTemplate, footerTemplate *template.Template) *Writer {
	mod := w.clone()
	mod.headerTemplate = headerTemplate
	mod.rowTemplate = rowTemplate
	mod.footerTemplate = footerTemplate
	return mod
}

// TableClass returns the CSS class configured for the table element.
func (w *Writer) TableClass() string {
	return w.tableClass
}

// RowLimit returns the maximum number of written rows, zero means no limit.
func (w *Writer) RowLimit() int {
	return w.rowLimit
}
