package csvtable

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/domonda/go-types/charset"

	"github.com/domonda/go-textable"
)

// Encoder is an interface to encode byte strings.
type Encoder interface {
	Bytes([]byte) ([]byte, error)
}

// EncoderFunc implements the Encoder interface for a function.
type EncoderFunc func([]byte) ([]byte, error)

func (f EncoderFunc) Bytes(data []byte) ([]byte, error) {
	return f(data)
}

// PassthroughEncoder returns an Encoder that returns the passed data unchanged.
func PassthroughEncoder() Encoder {
	return EncoderFunc(func(data []byte) ([]byte, error) {
		return data, nil
	})
}

// CharsetEncoder returns an Encoder converting UTF-8
// to the named character encoding like "Windows 1252".
func CharsetEncoder(encoding string) (Encoder, error) {
	if encoding == "" || encoding == "UTF-8" {
		return PassthroughEncoder(), nil
	}
	enc, err := charset.GetEncoding(encoding)
	if err != nil {
		return nil, err
	}
	return EncoderFunc(enc.Encode), nil
}

// Padding aligns the fields of a column to the same width.
type Padding int

const (
	NoPadding Padding = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// ParsePadding returns the Padding for "none", "left", "right" or "center".
// An empty string is NoPadding.
func ParsePadding(s string) (Padding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return NoPadding, nil
	case "left":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	case "center":
		return AlignCenter, nil
	}
	return NoPadding, fmt.Errorf("invalid padding %q, must be none, left, right or center", s)
}

// Writer writes a textable.View as CSV.
// The With methods return modified copies,
// a Writer is never changed after creation.
type Writer struct {
	padding          Padding
	headerRow        bool
	quoteAllFields   bool
	quoteEmptyFields bool
	delimiter        rune
	newLine          string
	encoder          Encoder
}

// NewWriter returns a Writer using a comma delimiter,
// \n line endings and no header row.
func NewWriter() *Writer {
	return &Writer{
		padding:   NoPadding,
		delimiter: ',',
		newLine:   "\n",
	}
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

// WriteTable writes a parsed table with the column letters as header.
func (w *Writer) WriteTable(ctx context.Context, dest io.Writer, table textable.Table) error {
	return w.WriteView(ctx, dest, table.View(""))
}

// WriteView writes the view to dest formatted as CSV.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view textable.View) error {
	if w.padding != NoPadding {
		return w.writeViewPadded(ctx, dest, view)
	}

	if w.headerRow {
		err := w.writeView(ctx, dest, textable.NewHeaderViewFrom(view))
		if err != nil {
			return err
		}
	}
	return w.writeView(ctx, dest, view)
}

func (w *Writer) writeView(ctx context.Context, dest io.Writer, view textable.View) error {
	rowBuf := bytes.NewBuffer(make([]byte, 0, 1024))
	numCols := len(view.Columns())
	for row, numRows := 0, view.NumRows(); row < numRows; row++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		for col := 0; col < numCols; col++ {
			if col > 0 {
				rowBuf.WriteRune(w.delimiter)
			}
			rowBuf.WriteString(w.escapeString(textable.CellString(view, row, col)))
		}
		rowBuf.WriteString(w.newLine)
		err := w.flushRow(dest, rowBuf)
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeViewPadded(ctx context.Context, dest io.Writer, view textable.View) error {
	rows, err := w.ViewStrings(ctx, view)
	if err != nil {
		return err
	}

	colWidths := textable.StringColumnWidths(rows, len(view.Columns()))

	rowBuf := bytes.NewBuffer(make([]byte, 0, 1024))
	for row := range rows {
		for col, str := range rows[row] {
			if col > 0 {
				rowBuf.WriteRune(w.delimiter)
			}
			var (
				padTotal = colWidths[col] - textable.StringWidth(str)
				padLeft  = 0
				padRight = 0
			)
			switch w.padding {
			case AlignLeft:
				padRight = padTotal
			case AlignRight:
				padLeft = padTotal
			case AlignCenter:
				padLeft = padTotal / 2
				padRight = (padTotal + 1) / 2
			}
			rowBuf.WriteString(strings.Repeat(" ", padLeft))
			rowBuf.WriteString(str)
			rowBuf.WriteString(strings.Repeat(" ", padRight))
		}
		rowBuf.WriteString(w.newLine)
		err = w.flushRow(dest, rowBuf)
		if err != nil {
			return err
		}
	}
	return nil
}

// flushRow encodes the buffered row if the writer has an encoder,
// writes it to dest and resets the buffer.
func (w *Writer) flushRow(dest io.Writer, rowBuf *bytes.Buffer) error {
	data := rowBuf.Bytes()
	if w.encoder != nil {
		var err error
		data, err = w.encoder.Bytes(data)
		if err != nil {
			return err
		}
	}
	_, err := dest.Write(data)
	rowBuf.Reset()
	return err
}

// ViewStrings returns the escaped cells of the view
// including the header row if enabled.
func (w *Writer) ViewStrings(ctx context.Context, view textable.View) ([][]string, error) {
	var options []textable.Option
	if w.headerRow {
		options = append(options, textable.OptionAddHeaderRow)
	}
	rows, err := textable.ViewStrings(ctx, view, options...)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		for col := range row {
			row[col] = w.escapeString(row[col])
		}
	}
	return rows, nil
}

func (w *Writer) escapeString(str string) string {
	// Just in case remove all \r,
	// \n alone is valid within quotes
	str = strings.ReplaceAll(str, "\r", "")
	switch {
	case w.quoteAllFields || needsQuotes(str, w.delimiter):
		return `"` + EscapeQuotes(str) + `"`
	case w.quoteEmptyFields && str == "":
		return `""`
	}
	return str
}

func needsQuotes(str string, delimiter rune) bool {
	return strings.ContainsRune(str, delimiter) || strings.ContainsAny(str, "\"\n")
}

func (w *Writer) WithHeaderRow(headerRow bool) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

func (w *Writer) WithPadding(padding Padding) *Writer {
	mod := w.clone()
	mod.padding = padding
	return mod
}

func (w *Writer) WithQuoteAllFields(quoteAllFields bool) *Writer {
	mod := w.clone()
	mod.quoteAllFields = quoteAllFields
	return mod
}

func (w *Writer) WithQuoteEmptyFields(quoteEmptyFields bool) *Writer {
	mod := w.clone()
	mod.quoteEmptyFields = quoteEmptyFields
	return mod
}

func (w *Writer) WithDelimiter(delimiter rune) *Writer {
	mod := w.clone()
	mod.delimiter = delimiter
	return mod
}

func (w *Writer) WithNewLine(newLine string) *Writer {
	mod := w.clone()
	mod.newLine = newLine
	return mod
}

func (w *Writer) WithEncoder(encoder Encoder) *Writer {
	mod := w.clone()
	mod.encoder = encoder
	return mod
}

// WithFormat returns a writer using the separator,
// newline and encoding of a validated format.
func (w *Writer) WithFormat(format *Format) (*Writer, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	encoder, err := CharsetEncoder(format.Encoding)
	if err != nil {
		return nil, err
	}
	return w.
		WithDelimiter(rune(format.Separator[0])).
		WithNewLine(format.Newline).
		WithEncoder(encoder), nil
}

func (w *Writer) HeaderRow() bool {
	return w.headerRow
}

func (w *Writer) QuoteAllFields() bool {
	return w.quoteAllFields
}

func (w *Writer) QuoteEmptyFields() bool {
	return w.quoteEmptyFields
}

func (w *Writer) Delimiter() rune {
	return w.delimiter
}

func (w *Writer) NewLine() string {
	return w.newLine
}

func (w *Writer) Encoder() Encoder {
	return w.encoder
}
