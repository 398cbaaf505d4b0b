package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/domonda/go-textable/internal/config"
	"github.com/domonda/go-textable/internal/logging"
	"github.com/domonda/go-textable/internal/output"
	"github.com/domonda/go-textable/internal/ui"
)

func newRootCmd(app *App) *cobra.Command {
	var (
		outputFlag string
		queryFlag  string
		colorFlag  string
		logFormat  string
		debugMode  bool
	)

	rootCmd := &cobra.Command{
		Use:   "textable",
		Short: "Turn selected text into spreadsheet rows",
		Long: `textable splits every line of a text selection into two columns,
guessing the delimiter per line, and appends the rows to a Google Sheet.
When the sheet can't be written the rows are copied to the clipboard as CSV.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.logger = logging.Setup(debugMode, logging.ParseFormat(logFormat), app.Stderr)

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			app.cfg = cfg

			colorValue := colorFlag
			if !cmd.Flags().Changed("color") && cfg.Color != "" {
				colorValue = cfg.Color
			}
			colorMode, err := ui.ParseColorMode(colorValue)
			if err != nil {
				return NewUserError(err.Error(), "Use --color auto, always or never")
			}
			app.ui = ui.NewWithWriter(app.Stderr, colorMode)

			formatValue := outputFlag
			if !cmd.Flags().Changed("output") && cfg.Output != "" {
				formatValue = cfg.Output
			}
			format, err := output.ParseFormat(formatValue)
			if err != nil {
				return NewUserError(err.Error(), "Use one of: "+strings.Join(config.OutputFormats, ", "))
			}
			app.printer = output.NewPrinter(app.Stdout, format).WithQuery(queryFlag)
			return nil
		},
	}
	rootCmd.Version = app.Version
	rootCmd.SetIn(app.Stdin)
	rootCmd.SetOut(app.Stdout)
	rootCmd.SetErr(app.Stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&outputFlag, "output", "o", "table", "Output format: table|csv|json|yaml|html")
	flags.StringVarP(&queryFlag, "query", "q", "", "jq expression to filter JSON or YAML output")
	flags.StringVar(&colorFlag, "color", "auto", "Color mode: auto|always|never")
	flags.StringVar(&logFormat, "log-format", "text", "Log format on stderr: text|json")
	flags.BoolVar(&debugMode, "debug", false, "Enable debug logs including HTTP requests")

	rootCmd.AddCommand(
		newParseCmd(app),
		newDetectCmd(app),
		newPreviewCmd(app),
		newExportCmd(app),
		newSendCmd(app),
		newHistoryCmd(app),
		newConfigCmd(app),
		newAuthCmd(app),
		newSheetsCmd(app),
		newMCPCmd(app),
	)
	return rootCmd
}
