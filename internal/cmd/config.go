package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/domonda/go-textable/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration",
		Long:  `Manage the configuration file at ~/.config/textable/config.yaml`,
	}
	cmd.AddCommand(
		newConfigShowCmd(app),
		newConfigSetCmd(app),
		newConfigPathCmd(app),
	)
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *app.cfg
			if key := cfg.Sheets.APIKey; len(key) > 8 {
				cfg.Sheets.APIKey = key[:8] + "..."
			}
			return app.printer.Print(cmd.Context(), &cfg)
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Set a configuration value.\n\nKeys: " + strings.Join(config.Keys, ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cfg.Set(args[0], args[1]); err != nil {
				return WrapUserError(err, "invalid config value", "Valid keys: "+strings.Join(config.Keys, ", "))
			}
			if err := app.cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			value, _ := app.cfg.Get(args[0])
			app.ui.Success("Set %s to %q", strings.ToLower(args[0]), value)
			return nil
		},
	}
}

func newConfigPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the path of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(app.Stdout, path)
			return err
		},
	}
}
