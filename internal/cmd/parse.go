package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/domonda/go-textable"
	"github.com/domonda/go-textable/csvtable"
	"github.com/domonda/go-textable/exceltable"
	"github.com/domonda/go-textable/htmltable"
	"github.com/domonda/go-textable/internal/sender"
)

// parseResult is printed for structured output formats.
type parseResult struct {
	Pattern    textable.Pattern `json:"pattern" yaml:"pattern"`
	Rows       int              `json:"rows" yaml:"rows"`
	ParsedData textable.Table   `json:"parsedData" yaml:"parsedData"`
}

// readTable reads the input text and parses it,
// an empty result is sender.ErrNoData.
func readTable(app *App, input *inputFlags) (string, textable.Table, error) {
	text, err := input.read(app)
	if err != nil {
		return "", nil, err
	}
	table := textable.ParseTextToColumns(text)
	if table.IsEmpty() {
		return text, nil, WrapUserError(sender.ErrNoData, "the text contains no rows", "Select some non blank lines")
	}
	return text, table, nil
}

// printLimited prints at most limit rows of view, zero prints all,
// and reports the number of omitted rows.
func (a *App) printLimited(ctx context.Context, view textable.View, limit int) error {
	limited := textable.LimitRows(view, limit)
	if err := a.printer.Print(ctx, limited); err != nil {
		return err
	}
	if omitted := view.NumRows() - limited.NumRows(); omitted > 0 {
		a.ui.Info("%d more rows not shown", omitted)
	}
	return nil
}

func newParseCmd(app *App) *cobra.Command {
	var (
		input inputFlags
		limit int
	)
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse text into two column rows",
		Example: `  textable parse --text $'Apple,10\nPear;20'
  pbpaste | textable parse -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, table, err := readTable(app, &input)
			if err != nil {
				return err
			}
			if app.printer.Structured() {
				return app.printer.Print(cmd.Context(), parseResult{
					Pattern:    textable.DetectTextPattern(text),
					Rows:       table.NumRows(),
					ParsedData: table,
				})
			}
			return app.printLimited(cmd.Context(), table.View(""), limit)
		},
	}
	input.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of printed rows for table, csv and html output, 0 for all")
	return cmd
}

func newDetectCmd(app *App) *cobra.Command {
	var input inputFlags
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Print the dominant delimiter pattern of the text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := input.read(app)
			if err != nil {
				return err
			}
			pattern := textable.DetectTextPattern(text)
			if app.printer.Structured() {
				return app.printer.Print(cmd.Context(), map[string]textable.Pattern{"pattern": pattern})
			}
			_, err = fmt.Fprintln(app.Stdout, pattern)
			return err
		},
	}
	input.register(cmd)
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var (
		input     inputFlags
		format    string
		outFile   string
		toClip    bool
		encoding  string
		separator string
		sheetName string
		caption   string
		rowLimit  int
		quoteAll  bool
		quoteNone bool
		align     string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the parsed rows as CSV, XLSX or HTML",
		Example: `  textable export --text "a,b" --clipboard
  textable export --file selection.txt --format xlsx --out rows.xlsx
  textable export --file selection.txt --encoding "Windows 1252" --separator ";" --out rows.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			_, table, err := readTable(app, &input)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if toClip {
				if app.Clipboard == nil {
					return NewUserError("no clipboard available", "Use --out to write a file")
				}
				if err := app.Clipboard.Copy(ctx, csvtable.ExportCSV(table)); err != nil {
					return WrapUserError(err, "failed to copy to clipboard", "Use --out to write a file")
				}
				app.ui.Success("Copied %d rows as CSV to the clipboard", table.NumRows())
				return nil
			}

			switch strings.ToLower(format) {
			case "xlsx":
				if outFile == "" {
					return NewUserError("--out is required for xlsx", "Pass --out rows.xlsx")
				}
				err = exceltable.WriteLocalFile(outFile, table.View(sheetName), sheetName, false)
				if err != nil {
					return err
				}
				app.ui.Success("Wrote %d rows to %s", table.NumRows(), outFile)
				return nil

			case "csv", "html":
			default:
				return NewUserError(fmt.Sprintf("invalid export format %q", format), "Use csv, xlsx or html")
			}

			var dest io.Writer = app.Stdout
			if outFile != "" {
				f, createErr := os.Create(outFile)
				if createErr != nil {
					return createErr
				}
				defer func() {
					err = errors.Join(err, f.Close())
				}()
				dest = f
			}

			if strings.EqualFold(format, "html") {
				return htmltable.NewWriter().
					WithHeaderRow(true).
					WithCaption(caption).
					WithRowLimit(rowLimit).
					WriteTable(ctx, dest, table)
			}

			padding, err := csvtable.ParsePadding(align)
			if err != nil {
				return NewUserError(err.Error(), "Use --align none, left, right or center")
			}
			plain := encoding == "" && separator == "" && !quoteAll && !quoteNone && padding == csvtable.NoPadding
			if plain {
				csv := csvtable.ExportCSV(table)
				if outFile == "" {
					csv += "\n"
				}
				_, err = io.WriteString(dest, csv)
				return err
			}
			csvFormat := csvtable.NewFormat(",")
			if separator != "" {
				csvFormat.Separator = separator
			}
			if encoding != "" {
				csvFormat.Encoding = encoding
			}
			writer, err := csvtable.NewWriter().
				WithQuoteAllFields(quoteAll).
				WithQuoteEmptyFields(quoteNone).
				WithPadding(padding).
				WithFormat(csvFormat)
			if err != nil {
				return WrapUserError(err, "invalid CSV format", `Use a single character --separator and an encoding like "UTF-8" or "Windows 1252"`)
			}
			return writer.WriteTable(ctx, dest, table)
		},
	}
	input.register(cmd)
	cmd.Flags().StringVar(&format, "format", "csv", "Export format: csv|xlsx|html")
	cmd.Flags().StringVar(&outFile, "out", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&toClip, "clipboard", false, "Copy the CSV to the clipboard")
	cmd.Flags().StringVar(&encoding, "encoding", "", "CSV character encoding like \"Windows 1252\"")
	cmd.Flags().StringVar(&separator, "separator", "", "CSV field separator character")
	cmd.Flags().StringVar(&sheetName, "sheet-name", exceltable.DefaultSheetName, "Worksheet name for xlsx")
	cmd.Flags().StringVar(&caption, "caption", "", "Table caption for html")
	cmd.Flags().IntVar(&rowLimit, "limit", 0, "Maximum number of rows for html, 0 for all")
	cmd.Flags().BoolVar(&quoteAll, "quote-all", false, "Quote every CSV field")
	cmd.Flags().BoolVar(&quoteNone, "quote-empty", false, "Quote empty CSV fields")
	cmd.Flags().StringVar(&align, "align", "", "Pad CSV columns to equal width: none|left|right|center")
	return cmd
}
