package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domonda/go-textable"
)

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "text content")
	return text.Text
}

func TestHandleParseText(t *testing.T) {
	result, err := handleParseText(context.Background(), callRequest("parse_text", map[string]any{"text": "Apple,10\n\nPear;20"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var parsed ParseResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &parsed))
	assert.Equal(t, textable.PatternCommaSeparated, parsed.Pattern)
	assert.Equal(t, 2, parsed.Rows)
	assert.Equal(t, textable.Table{{"Apple", "10"}, {"Pear", "20"}}, parsed.ParsedData)
}

func TestHandleParseText_Empty(t *testing.T) {
	result, err := handleParseText(context.Background(), callRequest("parse_text", map[string]any{"text": ""}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"pattern":"mixed-content","rows":0,"parsedData":[]}`, resultText(t, result))
}

func TestHandleDetectPattern(t *testing.T) {
	result, err := handleDetectPattern(context.Background(), callRequest("detect_pattern", map[string]any{"text": "a\tb"}))
	require.NoError(t, err)
	assert.Equal(t, "tab-separated", resultText(t, result))
}

func TestHandleExportCSV(t *testing.T) {
	result, err := handleExportCSV(context.Background(), callRequest("export_csv", map[string]any{"text": "Name\tNote\nApple\tsweet, red"}))
	require.NoError(t, err)
	assert.Equal(t, "Name,Note\nApple,\"sweet, red\"", resultText(t, result))

	result, err = handleExportCSV(context.Background(), callRequest("export_csv", map[string]any{"text": "\n"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestMissingText(t *testing.T) {
	for _, handler := range []func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		handleParseText,
		handleDetectPattern,
		handleExportCSV,
	} {
		result, err := handler(context.Background(), callRequest("x", map[string]any{}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	}
}

func TestNew(t *testing.T) {
	s := New("test")
	tools := s.ListTools()
	assert.Len(t, tools, 3)
	for _, name := range []string{"parse_text", "detect_pattern", "export_csv"} {
		assert.Contains(t, tools, name)
	}
}
