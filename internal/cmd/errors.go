package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/domonda/go-textable/internal/auth"
	"github.com/domonda/go-textable/internal/sender"
	"github.com/domonda/go-textable/internal/ui"
	"github.com/domonda/go-textable/sheets"
)

// UserError is an error caused by user input or configuration.
// Suggestion can provide a concrete fix for the user.
type UserError struct {
	Message    string
	Suggestion string
	Err        error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a UserError with a message and optional suggestion.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion}
}

// WrapUserError wraps err with a user facing message and suggestion.
func WrapUserError(err error, message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion, Err: err}
}

const (
	ExitOK        = 0
	ExitSystem    = 1
	ExitUser      = 2
	ExitAuth      = 3
	ExitNotFound  = 4
	ExitRateLimit = 5
	ExitTemp      = 6
	ExitCanceled  = 130
)

// ExitCode maps a command error to a stable process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}
	switch sheets.KindOf(err) {
	case sheets.KindUnauthorized, sheets.KindForbidden:
		return ExitAuth
	case sheets.KindNotFound:
		return ExitNotFound
	case sheets.KindRateLimited:
		return ExitRateLimit
	case sheets.KindServerError, sheets.KindNetworkError:
		return ExitTemp
	case sheets.KindBadRequest:
		return ExitUser
	}
	if errors.Is(err, auth.ErrNoToken) {
		return ExitAuth
	}
	var userErr *UserError
	if errors.As(err, &userErr) || errors.Is(err, sender.ErrNoData) {
		return ExitUser
	}
	return ExitSystem
}

// suggestion returns the most specific hint for err.
func suggestion(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) && userErr.Suggestion != "" {
		return userErr.Suggestion
	}
	var apiErr *sheets.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Suggestion()
	}
	if errors.Is(err, auth.ErrNoToken) {
		return "Store an access token with 'textable auth set-token'"
	}
	return ""
}

func (a *App) printError(err error) {
	u := a.ui
	if u == nil {
		u = ui.NewWithWriter(a.Stderr, ui.ColorAuto)
	}
	u.Error("%s", err)
	if hint := suggestion(err); hint != "" {
		u.Info("%s", hint)
	}
}
