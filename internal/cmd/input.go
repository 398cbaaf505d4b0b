package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/domonda/go-textable"
	"github.com/domonda/go-textable/exceltable"
)

// ExtensionMessage is the JSON message a browser extension
// sends with the selected text of a page.
type ExtensionMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

const selectedTextMessage = "SELECTED_TEXT"

// ParseExtensionMessage decodes and validates a SELECTED_TEXT message.
func ParseExtensionMessage(data []byte) (*ExtensionMessage, error) {
	var msg ExtensionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("invalid extension message: %w", err)
	}
	if msg.Type != selectedTextMessage {
		return nil, fmt.Errorf("unsupported extension message type %q", msg.Type)
	}
	return &msg, nil
}

// inputFlags are the flags of all commands reading a text selection.
type inputFlags struct {
	text    string
	file    string
	message string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.text, "text", "t", "", "Text to parse")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read text from a file, '-' for stdin; .xlsx files use the first sheet")
	cmd.Flags().StringVarP(&f.message, "message", "m", "", `Extension message JSON {"type":"SELECTED_TEXT","text":...}, '-' for stdin`)
	cmd.MarkFlagsMutuallyExclusive("text", "file", "message")
}

var errNoInput = NewUserError("no input text", "Pass --text, --file or --message, or pipe text to stdin")

// read returns the selected text from the flags
// or from stdin if it is no terminal.
func (f *inputFlags) read(app *App) (string, error) {
	switch {
	case f.text != "":
		return f.text, nil

	case f.file != "":
		return readTextFile(app, f.file)

	case f.message != "":
		data := []byte(f.message)
		if f.message == "-" {
			var err error
			data, err = io.ReadAll(app.Stdin)
			if err != nil {
				return "", fmt.Errorf("failed to read stdin: %w", err)
			}
		}
		msg, err := ParseExtensionMessage(data)
		if err != nil {
			return "", WrapUserError(err, "invalid --message", `Expected {"type":"SELECTED_TEXT","text":"..."}`)
		}
		return msg.Text, nil
	}

	if app.Stdin == nil || app.stdinIsTerminal() {
		return "", errNoInput
	}
	data, err := io.ReadAll(app.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) == 0 {
		return "", errNoInput
	}
	return textable.DecodeText(data)
}

func readTextFile(app *App, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		view, err := exceltable.ReadLocalFileFirstSheet(path, false)
		if err != nil {
			return "", WrapUserError(err, "failed to read "+path, "")
		}
		return viewText(view), nil
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(app.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if errors.Is(err, os.ErrNotExist) {
		return "", WrapUserError(err, "input file not found", "Check the --file path")
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return textable.DecodeText(data)
}

// viewText joins the cells of every row of view
// including the header row with a tab
// so that the parser splits them at the first column.
func viewText(view textable.View) string {
	var b strings.Builder
	b.WriteString(strings.Join(view.Columns(), "\t"))
	b.WriteByte('\n')
	numCols := len(view.Columns())
	for row := 0; row < view.NumRows(); row++ {
		for col := 0; col < numCols; col++ {
			if col > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(textable.CellString(view, row, col))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
