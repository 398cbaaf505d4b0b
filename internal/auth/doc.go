// Package auth stores the OAuth access token for Google Sheets.
//
// Tokens are kept in the OS keyring (macOS Keychain, Windows Credential Manager,
// Linux Secret Service) via github.com/99designs/keyring.
// On Linux without a D-Bus session an encrypted file backend is used.
//
// The TEXTABLE_TOKEN environment variable takes precedence
// over the keyring for scripts and CI.
package auth
