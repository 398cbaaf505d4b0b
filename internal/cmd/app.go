// Package cmd implements the textable command line interface.
package cmd

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/domonda/go-textable/internal/clipboard"
	"github.com/domonda/go-textable/internal/config"
	"github.com/domonda/go-textable/internal/output"
	"github.com/domonda/go-textable/internal/sender"
	"github.com/domonda/go-textable/internal/ui"
)

// App owns CLI wiring and execution configuration.
type App struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Version string

	// StdinIsTerminal reports if Stdin is an interactive terminal,
	// in which case it is not read as input.
	StdinIsTerminal func() bool

	// StdoutIsTerminal reports if the interactive preview can be shown.
	StdoutIsTerminal func() bool

	Clipboard  sender.Clipboard
	HTTPClient *http.Client
	Now        func() time.Time

	// SheetsBaseURL overrides the Google Sheets API URL if not empty.
	SheetsBaseURL string

	// Set by the root command before running a subcommand
	cfg     *config.Config
	printer *output.Printer
	ui      *ui.UI
	logger  *slog.Logger
}

// NewApp constructs an App with default settings.
func NewApp() *App {
	return &App{
		Stdin:            os.Stdin,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		Version:          "dev",
		StdinIsTerminal:  func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		StdoutIsTerminal: func() bool { return term.IsTerminal(int(os.Stdout.Fd())) },
		Clipboard:        clipboard.New(),
		HTTPClient:       &http.Client{Timeout: 30 * time.Second},
		Now:              time.Now,
	}
}

// Execute runs the CLI with the provided args.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		a.printError(err)
		return err
	}
	return nil
}

// RootCommand exposes the root command for tests.
func (a *App) RootCommand() *cobra.Command {
	return newRootCmd(a)
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) stdinIsTerminal() bool {
	return a.StdinIsTerminal != nil && a.StdinIsTerminal()
}

func (a *App) stdoutIsTerminal() bool {
	return a.StdoutIsTerminal != nil && a.StdoutIsTerminal()
}
