package cmd

import (
	"github.com/spf13/cobra"

	"github.com/domonda/go-textable/internal/mcpserver"
)

func newMCPCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the parser as MCP tools over stdio",
		Long: `Run a Model Context Protocol server on stdin and stdout
with the tools parse_text, detect_pattern and export_csv.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.logger.Debug("starting MCP server")
			return mcpserver.Serve(cmd.Context(), mcpserver.New(app.Version), app.Stdin, app.Stdout)
		},
	}
}
