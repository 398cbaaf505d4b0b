package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/domonda/go-textable"
	"github.com/domonda/go-textable/sheets"
)

func newSheetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Inspect the target spreadsheet",
	}
	cmd.AddCommand(
		newSheetsTestCmd(app),
		newSheetsListCmd(app),
	)
	return cmd
}

func requireSpreadsheet(cfg *sheets.Config) error {
	if cfg.CleanSpreadsheetID() == "" {
		return NewUserError("no spreadsheet configured",
			"Set it with 'textable config set spreadsheet_id <ID or URL>' or pass --spreadsheet")
	}
	return nil
}

func newSheetsTestCmd(app *App) *cobra.Command {
	var target targetFlags
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Check that the spreadsheet and the target sheet can be read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := target.config(app)
			if err := requireSpreadsheet(cfg); err != nil {
				return err
			}
			report, err := app.newSheetsClient().TestConnection(cmd.Context(), cfg)
			if report == nil {
				return err
			}
			if app.printer.Structured() {
				if printErr := app.printer.Print(cmd.Context(), report); printErr != nil {
					return printErr
				}
				return err
			}
			app.ui.Success("Connected to %q with sheets: %s", report.Title, strings.Join(report.SheetNames, ", "))
			if err != nil {
				return err
			}
			if !report.CanWrite() {
				app.ui.Warning("Read-only access, store an access token with 'textable auth set-token' to append rows")
			}
			return nil
		},
	}
	target.register(cmd.Flags())
	return cmd
}

func newSheetsListCmd(app *App) *cobra.Command {
	var target targetFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the sheets of the spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := target.config(app)
			if err := requireSpreadsheet(cfg); err != nil {
				return err
			}
			infos, err := app.newSheetsClient().ListSheets(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if app.printer.Structured() {
				return app.printer.Print(cmd.Context(), infos)
			}
			rows := make([][]string, len(infos))
			for i, info := range infos {
				rows[i] = []string{info.Name, strconv.FormatInt(info.ID, 10), strings.Join(info.Columns, " ")}
			}
			return app.printer.Print(cmd.Context(), textable.NewStringsView("Sheets", rows, "Name", "ID", "Columns"))
		},
	}
	target.register(cmd.Flags())
	return cmd
}
