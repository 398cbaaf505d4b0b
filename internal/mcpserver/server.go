// Package mcpserver exposes the text parser
// as Model Context Protocol tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/domonda/go-textable"
	"github.com/domonda/go-textable/csvtable"
)

const serverName = "textable"

// ParseResult is the JSON result of the parse_text tool.
type ParseResult struct {
	Pattern    textable.Pattern `json:"pattern"`
	Rows       int              `json:"rows"`
	ParsedData textable.Table   `json:"parsedData"`
}

// New returns an MCP server with the tools
// parse_text, detect_pattern and export_csv.
func New(version string) *server.MCPServer {
	s := server.NewMCPServer(serverName, version, server.WithToolCapabilities(false))

	textArg := mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Selected text, one table row per line"),
	)
	s.AddTool(
		mcp.NewTool("parse_text",
			mcp.WithDescription("Split every non blank line of the text into two columns"),
			textArg,
		),
		handleParseText,
	)
	s.AddTool(
		mcp.NewTool("detect_pattern",
			mcp.WithDescription("Classify the dominant delimiter structure of the text"),
			textArg,
		),
		handleDetectPattern,
	)
	s.AddTool(
		mcp.NewTool("export_csv",
			mcp.WithDescription("Parse the text and return the rows as CSV"),
			textArg,
		),
		handleExportCSV,
	)
	return s
}

// Serve runs s reading requests from in
// and writing responses to out until ctx is canceled.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, in, out)
}

func handleParseText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	table := textable.ParseTextToColumns(text)
	if table == nil {
		table = textable.Table{}
	}
	data, err := json.Marshal(ParseResult{
		Pattern:    textable.DetectTextPattern(text),
		Rows:       table.NumRows(),
		ParsedData: table,
	})
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

func handleDetectPattern(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(textable.DetectTextPattern(text).String()), nil
}

func handleExportCSV(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	table := textable.ParseTextToColumns(text)
	if table.IsEmpty() {
		return mcp.NewToolResultError("no data to export"), nil
	}
	return mcp.NewToolResultText(csvtable.ExportCSV(table)), nil
}
