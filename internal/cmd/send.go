package cmd

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/domonda/go-textable"
	"github.com/domonda/go-textable/history"
	"github.com/domonda/go-textable/internal/auth"
	"github.com/domonda/go-textable/internal/sender"
	"github.com/domonda/go-textable/internal/tui"
	"github.com/domonda/go-textable/sheets"
)

// targetFlags override the configured spreadsheet target.
type targetFlags struct {
	spreadsheet string
	rangeA1     string
	sheet       string
	columns     string
}

func (f *targetFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.spreadsheet, "spreadsheet", "", "Spreadsheet ID or URL")
	flags.StringVar(&f.rangeA1, "range", "", `Target range like "Sheet1!A:B"`)
	flags.StringVar(&f.sheet, "sheet", "", "Target sheet name")
	flags.StringVar(&f.columns, "columns", "", `Target columns like "A:B"`)
}

// config returns the configured sheets config modified by the flags.
func (f *targetFlags) config(app *App) *sheets.Config {
	cfg := app.cfg.Sheets
	if f.spreadsheet != "" {
		cfg.SpreadsheetID = f.spreadsheet
	}
	if f.sheet != "" || f.columns != "" {
		cfg.Range = ""
		if f.sheet != "" {
			cfg.SheetName = f.sheet
		}
		if f.columns != "" {
			cfg.Columns = f.columns
		}
	}
	if f.rangeA1 != "" {
		cfg.Range = f.rangeA1
	}
	if id, ok := sheets.ExtractSpreadsheetID(cfg.SpreadsheetID); ok {
		cfg.SpreadsheetID = id
	}
	return &cfg
}

func validateTarget(cfg *sheets.Config) error {
	if err := cfg.Validate(); err != nil {
		return WrapUserError(err, "invalid spreadsheet target",
			"Set the spreadsheet with 'textable config set spreadsheet_id <ID or URL>' or pass --spreadsheet")
	}
	return nil
}

// newSheetsClient returns a client with the stored token if any.
func (a *App) newSheetsClient() *sheets.Client {
	opts := []sheets.Option{
		sheets.WithLogger(a.logger),
		sheets.WithClock(a.now),
		sheets.WithAPIKey(a.cfg.Sheets.APIKey),
		sheets.WithProxyURL(a.cfg.ProxyURL),
	}
	if a.HTTPClient != nil {
		opts = append(opts, sheets.WithHTTPClient(a.HTTPClient))
	}
	if a.SheetsBaseURL != "" {
		opts = append(opts, sheets.WithBaseURL(a.SheetsBaseURL))
	}
	token, err := auth.LoadToken(a.now())
	switch {
	case err == nil:
		opts = append(opts, sheets.WithToken(token))
	case errors.Is(err, auth.ErrNoToken):
		a.logger.Debug("no stored access token", "reason", err)
	default:
		a.logger.Warn("failed to load access token", "error", err)
	}
	return sheets.NewClient(opts...)
}

// openHistory opens the configured history database.
func (a *App) openHistory() (*history.Store, error) {
	path, err := a.cfg.HistoryDBPath()
	if err != nil {
		return nil, err
	}
	return history.Open(path)
}

// proxyAppender appends through the Apps Script proxy
// when the client has no valid token.
type proxyAppender struct {
	client *sheets.Client
}

func (p proxyAppender) Append(ctx context.Context, cfg *sheets.Config, table textable.Table) (*sheets.AppendResult, error) {
	if p.client.HasValidToken() {
		return p.client.Append(ctx, cfg, table)
	}
	if _, err := p.client.AppendViaProxy(ctx, cfg, table); err != nil {
		return nil, err
	}
	return &sheets.AppendResult{
		SpreadsheetID: cfg.CleanSpreadsheetID(),
		Updates: sheets.UpdateSummary{
			SpreadsheetID: cfg.CleanSpreadsheetID(),
			UpdatedRange:  cfg.TargetRange(),
			UpdatedRows:   table.NumRows(),
		},
	}, nil
}

// send runs the send flow and reports the result.
func (a *App) send(ctx context.Context, cfg *sheets.Config, text string, noHistory bool) (err error) {
	client := a.newSheetsClient()
	s := &sender.Sender{
		Client:    client,
		Clipboard: a.Clipboard,
		Logger:    a.logger,
		Now:       a.now,
	}
	if a.cfg.ProxyURL != "" {
		s.Client = proxyAppender{client: client}
	}
	if !noHistory {
		store, openErr := a.openHistory()
		if openErr != nil {
			a.ui.Warning("History disabled: %s", openErr)
		} else {
			defer func() { err = errors.Join(err, store.Close()) }()
			s.History = store
		}
	}

	result, sendErr := s.Send(ctx, cfg, text)
	if result == nil {
		if errors.Is(sendErr, sender.ErrNoData) {
			return WrapUserError(sendErr, "the text contains no rows", "Select some non blank lines")
		}
		return sendErr
	}
	if a.printer.Structured() {
		if err := a.printer.Print(ctx, result); err != nil {
			return err
		}
	}
	if sendErr != nil {
		if result.Fallback == sender.FallbackClipboard {
			a.ui.Warning("Could not write to the spreadsheet, copied %d rows as CSV to the clipboard", result.Table.NumRows())
		}
		return sendErr
	}

	updated := result.Table.NumRows()
	target := cfg.TargetRange()
	if result.Append != nil && result.Append.Updates.UpdatedRange != "" {
		updated = result.Append.Updates.UpdatedRows
		target = result.Append.Updates.UpdatedRange
	}
	a.ui.Success("Appended %d rows to %s", updated, target)
	return nil
}

// runPreview shows the interactive preview and returns true if confirmed.
// Keys are read from the terminal even if stdin was piped input.
func (a *App) runPreview(ctx context.Context, text string, table textable.Table, targetRange string) (bool, error) {
	var opts []tea.ProgramOption
	if !a.stdinIsTerminal() {
		opts = append(opts, tea.WithInputTTY())
	}
	return tui.Run(ctx, tui.NewPreview(table, textable.DetectTextPattern(text), targetRange), opts...)
}

func newSendCmd(app *App) *cobra.Command {
	var (
		input     inputFlags
		target    targetFlags
		preview   bool
		noHistory bool
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Parse text and append the rows to the spreadsheet",
		Example: `  pbpaste | textable send
  textable send --text "Apple,10" --spreadsheet https://docs.google.com/spreadsheets/d/<ID>/edit
  textable send --file selection.txt --sheet Prices --columns C:D --preview`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, table, err := readTable(app, &input)
			if err != nil {
				return err
			}
			cfg := target.config(app)
			if err := validateTarget(cfg); err != nil {
				return err
			}
			if preview {
				if !app.stdoutIsTerminal() {
					return NewUserError("--preview needs a terminal", "Run without --preview or use 'textable parse'")
				}
				confirmed, err := app.runPreview(cmd.Context(), text, table, cfg.TargetRange())
				if err != nil {
					return err
				}
				if !confirmed {
					app.ui.Info("Canceled, nothing sent")
					return nil
				}
			}
			return app.send(cmd.Context(), cfg, text, noHistory)
		},
	}
	input.register(cmd)
	target.register(cmd.Flags())
	cmd.Flags().BoolVar(&preview, "preview", false, "Show an interactive preview and confirm before sending")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Don't record the attempt in the history")
	return cmd
}

func newPreviewCmd(app *App) *cobra.Command {
	var (
		input  inputFlags
		target targetFlags
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the parsed rows interactively and send them on confirm",
		Long: `Show the parsed rows in an interactive table.
Pressing enter sends the rows to the spreadsheet, q cancels.
Without a terminal the rows are printed like 'textable parse'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, table, err := readTable(app, &input)
			if err != nil {
				return err
			}
			if !app.stdoutIsTerminal() || app.printer.Structured() {
				return app.printer.Print(cmd.Context(), table)
			}
			cfg := target.config(app)
			targetRange := ""
			if cfg.Validate() == nil {
				targetRange = cfg.TargetRange()
			}
			confirmed, err := app.runPreview(cmd.Context(), text, table, targetRange)
			if err != nil || !confirmed {
				return err
			}
			if err := validateTarget(cfg); err != nil {
				return err
			}
			return app.send(cmd.Context(), cfg, text, false)
		},
	}
	input.register(cmd)
	target.register(cmd.Flags())
	return cmd
}
