package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/domonda/go-textable"
	"github.com/domonda/go-textable/history"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show and clear the log of sent selections",
	}
	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryShowCmd(app),
		newHistoryClearCmd(app),
	)
	return cmd
}

// withHistory opens the history store for the duration of fn.
func (a *App) withHistory(fn func(*history.Store) error) (err error) {
	store, err := a.openHistory()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, store.Close()) }()
	return fn(store)
}

func newHistoryListCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sent selections, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return app.withHistory(func(store *history.Store) error {
				if app.printer.Structured() {
					entries, err := store.List(ctx, limit)
					if err != nil {
						return err
					}
					if entries == nil {
						entries = []history.Entry{}
					}
					return app.printer.Print(ctx, entries)
				}
				view, err := store.ListView(ctx, limit)
				if err != nil {
					return err
				}
				if view.NumRows() == 0 {
					app.ui.Info("No history entries")
					return nil
				}
				return app.printer.Print(ctx, view)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries, 0 for all")
	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one history entry with its parsed rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return app.withHistory(func(store *history.Store) error {
				entry, err := store.Get(ctx, args[0])
				if errors.Is(err, history.ErrNotFound) {
					return WrapUserError(err, "unknown history entry", "List entry IDs with 'textable history list'")
				}
				if err != nil {
					return err
				}
				if app.printer.Structured() {
					return app.printer.Print(ctx, entry)
				}
				app.ui.Info("%s %s %s", entry.Timestamp.Local().Format("2006-01-02 15:04:05"), entry.Status(), entry.SheetName)
				if entry.Error != "" {
					app.ui.Warning("%s", entry.Error)
				}
				return app.printLimited(ctx, textable.ViewWithTitle(entry.ParsedData.View(""), entry.ID), limit)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of printed rows, 0 for all")
	return cmd
}

func newHistoryClearCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return NewUserError("refusing to clear the history", "Pass --yes to confirm")
			}
			return app.withHistory(func(store *history.Store) error {
				n, err := store.Count(cmd.Context())
				if err != nil {
					return err
				}
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				app.ui.Success("Deleted %d history entries", n)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deleting all entries")
	return cmd
}
