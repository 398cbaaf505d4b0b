// Package clipboard copies text to the system clipboard
// by piping it to the platform clipboard command.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnsupported is returned when no clipboard command is available.
var ErrUnsupported = errors.New("clipboard not supported")

type command struct {
	name string
	args []string
}

// candidates returns the clipboard commands to try for goos in order.
func candidates(goos string) []command {
	switch goos {
	case "darwin":
		return []command{{name: "pbcopy"}}
	case "windows":
		return []command{{name: "clip"}}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []command{
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
		}
	}
	return nil
}

// System copies text using the first installed clipboard command.
type System struct {
	goos     string
	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args []string, stdin string) error
}

// New returns a System clipboard for the current OS.
func New() *System {
	return &System{goos: runtime.GOOS, lookPath: exec.LookPath, run: runCommand}
}

// Copy writes text to the clipboard.
func (s *System) Copy(ctx context.Context, text string) error {
	for _, cmd := range candidates(s.goos) {
		path, err := s.lookPath(cmd.name)
		if err != nil {
			continue
		}
		if err := s.run(ctx, path, cmd.args, text); err != nil {
			return fmt.Errorf("%s failed: %w", cmd.name, err)
		}
		return nil
	}
	return fmt.Errorf("%w on %s: no clipboard command found", ErrUnsupported, s.goos)
}

func runCommand(ctx context.Context, name string, args []string, stdin string) error {
	c := exec.CommandContext(ctx, name, args...)
	c.Stdin = strings.NewReader(stdin)
	out, err := c.CombinedOutput()
	if err != nil && len(out) > 0 {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
	}
	return err
}
