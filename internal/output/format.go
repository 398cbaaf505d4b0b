// Package output prints command results as
// table, CSV, JSON, YAML or HTML to stdout.
package output

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/domonda/go-textable"
	"github.com/domonda/go-textable/csvtable"
	"github.com/domonda/go-textable/htmltable"
)

// Format represents the output format type.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatHTML  Format = "html"
)

// ParseFormat converts a string to a Format,
// an empty string defaults to FormatTable.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatCSV, FormatJSON, FormatYAML, FormatHTML:
		return f, nil
	}
	return "", errors.New("invalid --output format (expected table|csv|json|yaml|html)")
}

// Printer writes results in one format.
type Printer struct {
	w      io.Writer
	format Format
	query  string
}

// NewPrinter creates a Printer that writes to w in the given format.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

// WithQuery returns a printer filtering results
// through the jq expression query before printing.
// Query results are always printed as JSON or YAML.
func (p *Printer) WithQuery(query string) *Printer {
	mod := *p
	mod.query = strings.TrimSpace(query)
	return &mod
}

// Format returns the format of the printer.
func (p *Printer) Format() Format {
	return p.format
}

// Structured returns true if the printer writes JSON or YAML
// so results should be passed as structs instead of views.
func (p *Printer) Structured() bool {
	return p.query != "" || p.format == FormatJSON || p.format == FormatYAML
}

// Print writes data in the configured format.
//
// The table, csv and html formats need data
// that is a textable.View or a textable.Table,
// other values are printed as YAML for those formats.
func (p *Printer) Print(ctx context.Context, data any) error {
	if p.query != "" {
		return p.printQuery(data)
	}
	switch p.format {
	case FormatJSON:
		return p.printJSON(data)
	case FormatYAML:
		return p.printYAML(data)
	}

	view, ok := asView(data)
	if !ok {
		return p.printYAML(data)
	}
	switch p.format {
	case FormatCSV:
		return csvtable.NewWriter().WithHeaderRow(hasTitledColumns(view)).WriteView(ctx, p.w, view)
	case FormatHTML:
		return htmltable.NewWriter().WithHeaderRow(true).WriteView(ctx, p.w, view)
	case FormatTable, "":
		return p.printTable(ctx, view)
	}
	return fmt.Errorf("unsupported format: %s", p.format)
}

func asView(data any) (textable.View, bool) {
	switch v := data.(type) {
	case textable.Table:
		return v.View(""), true
	case textable.View:
		return v, true
	}
	return nil, false
}

// hasTitledColumns returns false for the default
// column letters of a parsed table which are no CSV header.
func hasTitledColumns(view textable.View) bool {
	for i, col := range view.Columns() {
		if col != textable.ColumnLetters(i) {
			return true
		}
	}
	return false
}

func (p *Printer) printJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (p *Printer) printYAML(data any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

// printTable writes the view with a header row
// and columns padded to their display width.
func (p *Printer) printTable(ctx context.Context, view textable.View) error {
	rows, err := textable.ViewStrings(ctx, view, textable.OptionAddHeaderRow)
	if err != nil {
		return err
	}
	widths := textable.StringColumnWidths(rows, len(view.Columns()))
	var b bytes.Buffer
	for _, row := range rows {
		for col, cell := range row {
			if col > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if col < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[col]-textable.StringWidth(cell)))
			}
		}
		b.WriteByte('\n')
	}
	_, err = p.w.Write(b.Bytes())
	return err
}
