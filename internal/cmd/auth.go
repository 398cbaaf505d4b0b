package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/domonda/go-textable/internal/auth"
	"github.com/domonda/go-textable/sheets"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the Google Sheets access token",
		Long: `Manage the OAuth access token used to append rows.

The token needs the https://www.googleapis.com/auth/spreadsheets scope
and is stored in the OS keyring. The TEXTABLE_TOKEN environment
variable overrides the stored token.`,
	}
	cmd.AddCommand(
		newAuthSetTokenCmd(app),
		newAuthStatusCmd(app),
		newAuthLogoutCmd(app),
	)
	return cmd
}

func newAuthSetTokenCmd(app *App) *cobra.Command {
	var expiresIn time.Duration
	cmd := &cobra.Command{
		Use:   "set-token [token]",
		Short: "Store an access token, read from stdin if not passed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var accessToken string
			if len(args) == 1 {
				accessToken = args[0]
			} else {
				if app.stdinIsTerminal() {
					return NewUserError("no token passed", "Pass the token as argument or pipe it to stdin")
				}
				data, err := io.ReadAll(app.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read token from stdin: %w", err)
				}
				accessToken = string(data)
			}
			accessToken = strings.TrimSpace(accessToken)
			if accessToken == "" {
				return NewUserError("empty token", "Pass a non empty access token")
			}

			now := app.now()
			token := sheets.StaticToken(accessToken)
			if expiresIn > 0 {
				token = sheets.NewToken(accessToken, expiresIn, now)
			}
			if err := auth.StoreToken(token, now); err != nil {
				return err
			}
			if token.Expiry.IsZero() {
				app.ui.Success("Stored token %s without expiry", sheets.MaskToken(token))
			} else {
				app.ui.Success("Stored token %s valid until %s", sheets.MaskToken(token), token.Expiry.Local().Format(time.RFC3339))
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&expiresIn, "expires-in", time.Hour, "Token lifetime, 0 for no expiry")
	return cmd
}

// authStatus is printed by auth status.
type authStatus struct {
	Authenticated bool      `json:"authenticated" yaml:"authenticated"`
	Token         string    `json:"token,omitempty" yaml:"token,omitempty"`
	Expiry        time.Time `json:"expiry,omitzero" yaml:"expiry,omitempty"`
	Source        string    `json:"source,omitempty" yaml:"source,omitempty"`
	Reason        string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func newAuthStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show if a valid access token is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := auth.LoadToken(app.now())
			status := authStatus{Authenticated: err == nil}
			switch {
			case err == nil:
				status.Token = sheets.MaskToken(token)
				status.Expiry = token.Expiry
				status.Source = "keyring"
				if strings.TrimSpace(os.Getenv(auth.EnvVarName)) != "" {
					status.Source = auth.EnvVarName
				}
			case errors.Is(err, auth.ErrNoToken):
				status.Reason = err.Error()
			default:
				return err
			}

			if app.printer.Structured() {
				return app.printer.Print(cmd.Context(), status)
			}
			if !status.Authenticated {
				app.ui.Warning("Not authenticated: %s", status.Reason)
				app.ui.Info("Store an access token with 'textable auth set-token'")
				return nil
			}
			if status.Expiry.IsZero() {
				app.ui.Success("Authenticated with token %s", status.Token)
			} else {
				app.ui.Success("Authenticated with token %s, expires in %s",
					status.Token, status.Expiry.Sub(app.now()).Round(time.Second))
			}
			return nil
		},
	}
}

func newAuthLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := auth.DeleteToken(); err != nil {
				return err
			}
			app.ui.Success("Removed stored token")
			return nil
		},
	}
}
