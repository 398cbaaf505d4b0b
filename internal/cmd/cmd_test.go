package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domonda/go-textable"
	"github.com/domonda/go-textable/exceltable"
	"github.com/domonda/go-textable/history"
	"github.com/domonda/go-textable/internal/auth"
	"github.com/domonda/go-textable/internal/sender"
	"github.com/domonda/go-textable/sheets"
)

const testSpreadsheetID = "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"

var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

type fakeClipboard struct {
	err    error
	copied []string
}

func (f *fakeClipboard) Copy(ctx context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.copied = append(f.copied, text)
	return nil
}

type testEnv struct {
	t      *testing.T
	home   string
	app    *App
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	clip   *fakeClipboard
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NO_COLOR", "1")
	t.Setenv(auth.EnvVarName, "")

	mock := auth.NewMockKeyringProvider()
	auth.SetProviderFunc(func() (auth.KeyringProvider, error) { return mock, nil })
	t.Cleanup(func() { auth.SetProviderFunc(nil) })

	env := &testEnv{
		t:      t,
		home:   home,
		stdout: new(bytes.Buffer),
		stderr: new(bytes.Buffer),
		clip:   new(fakeClipboard),
	}
	env.app = &App{
		Stdout:           env.stdout,
		Stderr:           env.stderr,
		Version:          "test",
		StdoutIsTerminal: func() bool { return false },
		Clipboard:        env.clip,
		Now:              func() time.Time { return testNow },
	}
	return env
}

// run executes args with stdin as piped input,
// an empty stdin behaves like an interactive terminal.
func (e *testEnv) run(stdin string, args ...string) error {
	e.t.Helper()
	e.stdout.Reset()
	e.stderr.Reset()
	e.app.Stdin = strings.NewReader(stdin)
	e.app.StdinIsTerminal = func() bool { return stdin == "" }
	return e.app.Execute(context.Background(), args)
}

// withSheetsServer points the app at a fake Sheets API.
func (e *testEnv) withSheetsServer(handler http.HandlerFunc) {
	server := httptest.NewServer(handler)
	e.t.Cleanup(server.Close)
	e.app.HTTPClient = server.Client()
	e.app.SheetsBaseURL = server.URL
}

func (e *testEnv) historyEntries() []history.Entry {
	e.t.Helper()
	require.NoError(e.t, e.run("", "history", "list", "-o", "json"))
	var entries []history.Entry
	require.NoError(e.t, json.Unmarshal(e.stdout.Bytes(), &entries))
	return entries
}

func TestParse(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("", "parse", "--text", "Apple,10\nPear;20"))
	out := env.stdout.String()
	assert.Contains(t, out, "Apple  10")
	assert.Contains(t, out, "Pear   20")
}

func TestParse_Limit(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("", "parse", "--text", "a,1\nb,2\nc,3", "--limit", "2", "-o", "csv"))
	assert.Equal(t, "a,1\nb,2\n", env.stdout.String())
	assert.Contains(t, env.stderr.String(), "1 more rows not shown")

	require.NoError(t, env.run("", "parse", "--text", "a,1\nb,2", "-n", "2", "-o", "csv"))
	assert.Equal(t, "a,1\nb,2\n", env.stdout.String())
	assert.NotContains(t, env.stderr.String(), "more rows")
}

func TestParse_JSON(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("", "parse", "--text", "Apple,10\n\nSolo", "-o", "json"))
	var result struct {
		Pattern    string     `json:"pattern"`
		Rows       int        `json:"rows"`
		ParsedData [][]string `json:"parsedData"`
	}
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &result))
	assert.Equal(t, "comma-separated", result.Pattern)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, [][]string{{"Apple", "10"}, {"Solo", ""}}, result.ParsedData)
}

func TestParse_Query(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("", "parse", "-t", "a|b\nc|d", "-q", ".parsedData[1][0]"))
	assert.Equal(t, "\"c\"\n", env.stdout.String())
}

func TestParse_Stdin(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("Name\tValue\n", "parse", "-o", "json"))
	assert.Contains(t, env.stdout.String(), `"tab-separated"`)
	assert.Contains(t, env.stdout.String(), `"Value"`)
}

func TestParse_Message(t *testing.T) {
	env := newTestEnv(t)

	msg := `{"type":"SELECTED_TEXT","text":"Key\tValue","url":"https://example.com"}`
	require.NoError(t, env.run("", "parse", "--message", msg, "-o", "json", "-q", ".parsedData"))
	assert.JSONEq(t, `[["Key","Value"]]`, env.stdout.String())

	require.NoError(t, env.run(msg, "parse", "--message", "-", "-o", "json", "-q", ".rows"))
	assert.Equal(t, "1\n", env.stdout.String())

	err := env.run("", "parse", "--message", `{"type":"OTHER","text":"x"}`)
	require.Error(t, err)
	assert.Equal(t, ExitUser, ExitCode(err))
}

func TestParse_NoInput(t *testing.T) {
	env := newTestEnv(t)

	err := env.run("", "parse")
	require.Error(t, err)
	assert.Equal(t, ExitUser, ExitCode(err))
	assert.Contains(t, env.stderr.String(), "no input text")

	err = env.run("", "parse", "--text", "\n  \n")
	require.Error(t, err)
	assert.ErrorIs(t, err, sender.ErrNoData)
	assert.Equal(t, ExitUser, ExitCode(err))
}

func TestParse_File(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "selection.txt")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFa;b\n"), 0o600))

	require.NoError(t, env.run("", "parse", "--file", path, "-o", "json", "-q", ".parsedData"))
	assert.JSONEq(t, `[["a","b"]]`, env.stdout.String())

	err := env.run("", "parse", "--file", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Equal(t, ExitUser, ExitCode(err))
}

func TestDetect(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		text string
		want string
	}{
		{text: "a\tb", want: "tab-separated"},
		{text: "a,b", want: "comma-separated"},
		{text: "a;b", want: "semicolon-separated"},
		{text: "a|b", want: "pipe-separated"},
		{text: "a  b", want: "space-separated"},
		{text: "42 apples", want: "number-first"},
		{text: "plain", want: "mixed-content"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.NoError(t, env.run("", "detect", "--text", tt.text))
			assert.Equal(t, tt.want+"\n", env.stdout.String())
		})
	}

	require.NoError(t, env.run("", "detect", "--text", "a,b", "-o", "yaml"))
	assert.Equal(t, "pattern: comma-separated\n", env.stdout.String())
}

func TestExport_CSV(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("", "export", "--text", "Name, Note\nApple,\"sweet, red\""))
	assert.Equal(t, "Name,Note\nApple,\"\"\"sweet\"\n", env.stdout.String())

	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, env.run("", "export", "--text", "a,b\nc;d", "--separator", ";", "--out", path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a;b\nc;d\n", string(data))

	err = env.run("", "export", "--text", "a,b", "--separator", ";;")
	require.Error(t, err)
	assert.Equal(t, ExitUser, ExitCode(err))
}

func TestExport_CSVQuotingAndAlignment(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("", "export", "--text", "a,b\nccc,d", "--quote-all"))
	assert.Equal(t, "\"a\",\"b\"\n\"ccc\",\"d\"\n", env.stdout.String())

	require.NoError(t, env.run("", "export", "--text", "a\nccc,d", "--quote-empty"))
	assert.Equal(t, "a,\"\"\nccc,d\n", env.stdout.String())

	require.NoError(t, env.run("", "export", "--text", "a,b\nccc,d", "--align", "left"))
	assert.Equal(t, "a  ,b\nccc,d\n", env.stdout.String())

	err := env.run("", "export", "--text", "a,b", "--align", "justify")
	require.Error(t, err)
	assert.Equal(t, ExitUser, ExitCode(err))
}

func TestExport_Clipboard(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("", "export", "--text", "a,b\nc,d", "--clipboard"))
	assert.Equal(t, []string{"a,b\nc,d"}, env.clip.copied)
	assert.Empty(t, env.stdout.String())
	assert.Contains(t, env.stderr.String(), "Copied 2 rows")

	env.clip.err = errors.New("no clipboard tool")
	err := env.run("", "export", "--text", "a,b", "--clipboard")
	require.Error(t, err)
	assert.Equal(t, ExitUser, ExitCode(err))
}

func TestExport_HTML(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("", "export", "--text", "<b>,1\nx,2\ny,3", "--format", "html", "--caption", "Selection", "--limit", "2"))
	out := env.stdout.String()
	assert.Contains(t, out, "<caption>Selection</caption>")
	assert.Contains(t, out, "&lt;b&gt;")
	assert.NotContains(t, out, "<b>")
	assert.NotContains(t, out, ">y<")
}

func TestExport_XLSXRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "rows.xlsx")

	err := env.run("", "export", "--text", "Apple,10", "--format", "xlsx")
	require.Error(t, err, "--out required")
	assert.Equal(t, ExitUser, ExitCode(err))

	require.NoError(t, env.run("", "export", "--text", "Apple,10\nPear,20", "--format", "xlsx", "--out", path))

	view, err := exceltable.ReadLocalFileFirstSheet(path, false)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", view.Title())
	assert.Equal(t, []string{"Apple", "10"}, view.Columns())

	require.NoError(t, env.run("", "parse", "--file", path, "-o", "json", "-q", ".parsedData"))
	assert.JSONEq(t, `[["Apple","10"],["Pear","20"]]`, env.stdout.String())
}

func TestExport_InvalidFormat(t *testing.T) {
	env := newTestEnv(t)

	err := env.run("", "export", "--text", "a,b", "--format", "pdf")
	require.Error(t, err)
	assert.Equal(t, ExitUser, ExitCode(err))
}

func appendHandler(t *testing.T, gotValues *[][]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v4/spreadsheets/"+testSpreadsheetID+"/values/Prices!C:D:append", r.URL.Path)
		assert.Equal(t, "Bearer ya29.env-token-123", r.Header.Get("Authorization"))
		var body struct {
			Values [][]string `json:"values"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		*gotValues = body.Values

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"spreadsheetId": %q,
			"updates": {"updatedRange": "Prices!C7:D8", "updatedRows": %d, "updatedColumns": 2, "updatedCells": %d}
		}`, testSpreadsheetID, len(body.Values), 2*len(body.Values))
	}
}

func TestSend(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv(auth.EnvVarName, "ya29.env-token-123")
	var gotValues [][]string
	env.withSheetsServer(appendHandler(t, &gotValues))

	require.NoError(t, env.run("Apple,10\nPear 20\n", "send",
		"--spreadsheet", "https://docs.google.com/spreadsheets/d/"+testSpreadsheetID+"/edit#gid=0",
		"--sheet", "Prices",
		"--columns", "C:D",
	))
	assert.Equal(t, [][]string{{"Apple", "10"}, {"Pear", "20"}}, gotValues)
	assert.Contains(t, env.stderr.String(), "Appended 2 rows to Prices!C7:D8")
	assert.Empty(t, env.clip.copied)

	entries := env.historyEntries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Success)
	assert.Equal(t, "Prices", entries[0].SheetName)
	assert.Equal(t, "Apple,10\nPear 20\n", entries[0].OriginalText)
	assert.Equal(t, textable.Table{{"Apple", "10"}, {"Pear", "20"}}, entries[0].ParsedData)
	assert.True(t, entries[0].Timestamp.Equal(testNow))

	require.NoError(t, env.run("", "history", "show", entries[0].ID, "-o", "json", "-q", ".success"))
	assert.Equal(t, "true\n", env.stdout.String())
}

func TestSend_StructuredOutput(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv(auth.EnvVarName, "ya29.env-token-123")
	var gotValues [][]string
	env.withSheetsServer(appendHandler(t, &gotValues))

	require.NoError(t, env.run("", "send", "--text", "a,b", "--no-history",
		"--spreadsheet", testSpreadsheetID, "--range", "Prices!C:D",
		"-q", ".append.updates.updatedRows"))
	assert.Equal(t, "1\n", env.stdout.String())
	assert.Empty(t, env.historyEntries(), "--no-history")
}

func TestSend_ClipboardFallbackWithoutToken(t *testing.T) {
	env := newTestEnv(t)
	env.withSheetsServer(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL)
	})

	err := env.run("", "send", "--text", "Name, Note\nApple,\"sweet, red\"", "--spreadsheet", testSpreadsheetID)
	require.Error(t, err)
	assert.True(t, sheets.IsAuthError(err))
	assert.Equal(t, ExitAuth, ExitCode(err))
	assert.Equal(t, []string{"Name,Note\nApple,\"\"\"sweet\""}, env.clip.copied)
	assert.Contains(t, env.stderr.String(), "copied 2 rows as CSV to the clipboard")

	entries := env.historyEntries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Success)
	assert.NotEmpty(t, entries[0].Error)
}

func TestSend_APIErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode int
		wantClip bool
	}{
		{name: "forbidden", status: http.StatusForbidden, wantCode: ExitAuth, wantClip: true},
		{name: "not found", status: http.StatusNotFound, wantCode: ExitNotFound},
		{name: "rate limited", status: http.StatusTooManyRequests, wantCode: ExitRateLimit},
		{name: "server error", status: http.StatusBadGateway, wantCode: ExitTemp},
		{name: "bad request", status: http.StatusBadRequest, wantCode: ExitUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			t.Setenv(auth.EnvVarName, "ya29.env-token-123")
			env.withSheetsServer(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprintf(w, `{"error": {"code": %d, "message": "failed"}}`, tt.status)
			})

			err := env.run("", "send", "--text", "a,b", "--spreadsheet", testSpreadsheetID)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ExitCode(err))
			if tt.wantClip {
				assert.Len(t, env.clip.copied, 1)
			} else {
				assert.Empty(t, env.clip.copied)
			}
		})
	}
}

func TestSend_InvalidTarget(t *testing.T) {
	env := newTestEnv(t)

	err := env.run("", "send", "--text", "a,b")
	require.Error(t, err)
	assert.Equal(t, ExitUser, ExitCode(err))
	assert.Contains(t, env.stderr.String(), "config set spreadsheet_id")

	err = env.run("", "send", "--text", "a,b", "--spreadsheet", testSpreadsheetID, "--preview")
	require.Error(t, err, "--preview without terminal")
	assert.Equal(t, ExitUser, ExitCode(err))
}

func TestPreview_NoTerminal(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("", "preview", "--text", "a|b"))
	assert.Contains(t, env.stdout.String(), "a  b")
}

func TestHistory(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("", "history", "list"))
	assert.Contains(t, env.stderr.String(), "No history entries")
	assert.Equal(t, []history.Entry{}, env.historyEntries())

	path, err := env.app.cfg.HistoryDBPath()
	require.NoError(t, err)
	store, err := history.Open(path)
	require.NoError(t, err)
	_, err = store.Add(context.Background(), history.Entry{
		ID:           "entry-1",
		Timestamp:    testNow,
		OriginalText: "a,b",
		ParsedData:   textable.Table{{"a", "b"}},
		Success:      true,
		SheetName:    "Sheet1",
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, env.run("", "history", "list"))
	assert.Contains(t, env.stdout.String(), "entry-1")
	assert.Contains(t, env.stdout.String(), "2026-10-14T12:00:00Z")

	require.NoError(t, env.run("", "history", "show", "entry-1", "-o", "html"))
	assert.Contains(t, env.stdout.String(), "<caption>entry-1</caption>")
	assert.Contains(t, env.stdout.String(), "<td>a</td><td>b</td>")

	require.NoError(t, env.run("", "history", "show", "entry-1", "-o", "html", "--limit", "1"))
	assert.NotContains(t, env.stderr.String(), "more rows")

	err = env.run("", "history", "show", "unknown")
	require.Error(t, err)
	assert.ErrorIs(t, err, history.ErrNotFound)
	assert.Equal(t, ExitUser, ExitCode(err))

	err = env.run("", "history", "clear")
	require.Error(t, err, "needs --yes")
	assert.Equal(t, ExitUser, ExitCode(err))

	require.NoError(t, env.run("", "history", "clear", "--yes"))
	assert.Contains(t, env.stderr.String(), "Deleted 1 history entries")
	assert.Empty(t, env.historyEntries())
}

func TestConfig(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("", "config", "path"))
	assert.Equal(t, filepath.Join(env.home, ".config", "textable", "config.yaml")+"\n", env.stdout.String())

	require.NoError(t, env.run("", "config", "set", "spreadsheet_id", "https://docs.google.com/spreadsheets/d/"+testSpreadsheetID+"/edit"))
	require.NoError(t, env.run("", "config", "set", "api_key", "AIzaSyD-1234567890abcdefgh"))
	require.NoError(t, env.run("", "config", "set", "SHEET_NAME", "Prices"))
	require.NoError(t, env.run("", "config", "set", "output", "json"))

	require.NoError(t, env.run("", "config", "show", "-q", ".Sheets"))
	var show map[string]any
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &show))
	assert.Equal(t, testSpreadsheetID, show["spreadsheetId"])
	assert.Equal(t, "AIzaSyD-...", show["apiKey"])
	assert.Equal(t, "Prices", show["sheetName"])

	// The configured output format applies without -o
	require.NoError(t, env.run("", "parse", "--text", "a,b"))
	assert.True(t, json.Valid(env.stdout.Bytes()), env.stdout.String())

	err := env.run("", "config", "set", "unknown", "x")
	require.Error(t, err)
	assert.Equal(t, ExitUser, ExitCode(err))

	err = env.run("", "config", "set", "api_key", "not-a-key")
	require.Error(t, err)
	assert.Equal(t, ExitUser, ExitCode(err))
}

func TestAuth(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("", "auth", "status", "-o", "json"))
	var status authStatus
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &status))
	assert.False(t, status.Authenticated)
	assert.NotEmpty(t, status.Reason)

	require.NoError(t, env.run("ya29.stored-token-abc\n", "auth", "set-token"))
	assert.Contains(t, env.stderr.String(), "Stored token ya29.store...")

	require.NoError(t, env.run("", "auth", "status", "-o", "json"))
	status = authStatus{}
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &status))
	assert.True(t, status.Authenticated)
	assert.Equal(t, "ya29.store...", status.Token)
	assert.Equal(t, "keyring", status.Source)
	assert.True(t, status.Expiry.Equal(testNow.Add(time.Hour)))

	t.Setenv(auth.EnvVarName, "ya29.from-environment")
	require.NoError(t, env.run("", "auth", "status", "-o", "json", "-q", ".source"))
	assert.Equal(t, "\""+auth.EnvVarName+"\"\n", env.stdout.String())
	t.Setenv(auth.EnvVarName, "")

	require.NoError(t, env.run("", "auth", "logout"))
	require.NoError(t, env.run("", "auth", "status", "-o", "json", "-q", ".authenticated"))
	assert.Equal(t, "false\n", env.stdout.String())

	err := env.run("", "auth", "set-token")
	require.Error(t, err, "no token from terminal")
	assert.Equal(t, ExitUser, ExitCode(err))
}

const spreadsheetJSON = `{
	"spreadsheetId": "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
	"properties": {"title": "Prices"},
	"sheets": [
		{"properties": {"sheetId": 0, "title": "Sheet1", "index": 0, "gridProperties": {"rowCount": 100, "columnCount": 2}}},
		{"properties": {"sheetId": 42, "title": "Archive", "index": 1, "gridProperties": {"rowCount": 100, "columnCount": 3}}}
	]
}`

func TestSheets(t *testing.T) {
	env := newTestEnv(t)
	env.withSheetsServer(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v4/spreadsheets/"+testSpreadsheetID, r.URL.Path)
		fmt.Fprint(w, spreadsheetJSON)
	})

	err := env.run("", "sheets", "list")
	require.Error(t, err, "no spreadsheet")
	assert.Equal(t, ExitUser, ExitCode(err))

	require.NoError(t, env.run("", "sheets", "list", "--spreadsheet", testSpreadsheetID))
	out := env.stdout.String()
	assert.Contains(t, out, "Sheet1")
	assert.Contains(t, out, "Archive")
	assert.Contains(t, out, "42")

	require.NoError(t, env.run("", "sheets", "list", "--spreadsheet", testSpreadsheetID, "-q", ".[1].name"))
	assert.Equal(t, "\"Archive\"\n", env.stdout.String())

	require.NoError(t, env.run("", "sheets", "test", "--spreadsheet", testSpreadsheetID))
	assert.Contains(t, env.stderr.String(), `Connected to "Prices"`)
	assert.Contains(t, env.stderr.String(), "Read-only access")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "canceled", err: fmt.Errorf("send: %w", context.Canceled), want: ExitCanceled},
		{name: "unauthorized", err: &sheets.APIError{Kind: sheets.KindUnauthorized}, want: ExitAuth},
		{name: "forbidden", err: &sheets.APIError{Kind: sheets.KindForbidden}, want: ExitAuth},
		{name: "not found", err: &sheets.APIError{Kind: sheets.KindNotFound}, want: ExitNotFound},
		{name: "rate limited", err: &sheets.APIError{Kind: sheets.KindRateLimited}, want: ExitRateLimit},
		{name: "server", err: &sheets.APIError{Kind: sheets.KindServerError}, want: ExitTemp},
		{name: "network", err: &sheets.APIError{Kind: sheets.KindNetworkError}, want: ExitTemp},
		{name: "bad request", err: &sheets.APIError{Kind: sheets.KindBadRequest}, want: ExitUser},
		{name: "no token", err: fmt.Errorf("load: %w", auth.ErrNoToken), want: ExitAuth},
		{name: "user", err: NewUserError("bad", ""), want: ExitUser},
		{name: "no data", err: sender.ErrNoData, want: ExitUser},
		{name: "other", err: errors.New("disk full"), want: ExitSystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestUserError(t *testing.T) {
	cause := errors.New("cause")
	err := WrapUserError(cause, "message", "try this")
	assert.Equal(t, "message: cause", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "try this", suggestion(err))
	assert.Equal(t, "message", NewUserError("message", "").Error())
}

func TestParseExtensionMessage(t *testing.T) {
	msg, err := ParseExtensionMessage([]byte(`{"type":"SELECTED_TEXT","text":"a,b","url":"https://example.com/page"}`))
	require.NoError(t, err)
	assert.Equal(t, &ExtensionMessage{Type: "SELECTED_TEXT", Text: "a,b", URL: "https://example.com/page"}, msg)

	_, err = ParseExtensionMessage([]byte(`{"type":"PING"}`))
	assert.Error(t, err)

	_, err = ParseExtensionMessage([]byte(`not json`))
	assert.Error(t, err)
}
