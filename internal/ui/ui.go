// Package ui prints colored status lines to stderr,
// keeping stdout free for data.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q, must be auto, always or never", s)
}

type contextKey struct{}

// UI writes formatted status messages.
type UI struct {
	out *termenv.Output
}

// New returns a UI writing to os.Stderr.
// The NO_COLOR environment variable disables colors
// regardless of mode.
func New(mode ColorMode) *UI {
	return NewWithWriter(os.Stderr, mode)
}

// NewWithWriter returns a UI writing to w.
func NewWithWriter(w io.Writer, mode ColorMode) *UI {
	if os.Getenv("NO_COLOR") != "" {
		mode = ColorNever
	}
	profile := termenv.NewOutput(w).EnvColorProfile()
	switch mode {
	case ColorNever:
		profile = termenv.Ascii
	case ColorAlways:
		if profile == termenv.Ascii {
			profile = termenv.ANSI256
		}
	}
	return &UI{out: termenv.NewOutput(w, termenv.WithProfile(profile))}
}

// WithUI returns a context carrying u.
func WithUI(ctx context.Context, u *UI) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext returns the UI of ctx
// or a new one with ColorAuto.
func FromContext(ctx context.Context) *UI {
	if u, ok := ctx.Value(contextKey{}).(*UI); ok {
		return u
	}
	return New(ColorAuto)
}

func (u *UI) print(prefix string, color termenv.Color, format string, args ...any) {
	msg := prefix + " " + fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(u.out, u.out.String(msg).Foreground(color))
}

func (u *UI) Success(format string, args ...any) { u.print("✓", termenv.ANSIGreen, format, args...) }
func (u *UI) Warning(format string, args ...any) { u.print("⚠", termenv.ANSIYellow, format, args...) }
func (u *UI) Error(format string, args ...any)   { u.print("✗", termenv.ANSIRed, format, args...) }
func (u *UI) Info(format string, args ...any)    { u.print("ℹ", termenv.ANSIBlue, format, args...) }

// Writer returns the underlying writer.
func (u *UI) Writer() io.Writer {
	return u.out
}
