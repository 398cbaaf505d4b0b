package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/99designs/keyring"
	"golang.org/x/oauth2"

	"github.com/domonda/go-textable/sheets"
)

const (
	// ServiceName is the keyring service name
	ServiceName = "textable"
	// TokenKey is the keyring key of the stored token
	TokenKey = "sheets-token"
	// EnvVarName is the environment variable overriding the stored token
	EnvVarName = "TEXTABLE_TOKEN"
	// KeyringPasswordEnvVarName sets the file keyring passphrase
	KeyringPasswordEnvVarName = "TEXTABLE_KEYRING_PASSWORD"
)

// ErrNoToken is returned when no valid token is stored.
var ErrNoToken = errors.New("no access token stored")

// KeyringProvider defines an interface for keyring operations
type KeyringProvider interface {
	Get(key string) (keyring.Item, error)
	Set(item keyring.Item) error
	Remove(key string) error
}

func keyringFileDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(configDir) == "" {
		configDir = os.TempDir()
	}
	return filepath.Join(configDir, ServiceName, "keyring")
}

func keyringFilePassword(string) (string, error) {
	if password := strings.TrimSpace(os.Getenv(KeyringPasswordEnvVarName)); password != "" {
		return password, nil
	}
	return ServiceName, nil
}

func shouldForceFileBackend(goos, dbusAddr string) bool {
	return goos == "linux" && strings.TrimSpace(dbusAddr) == ""
}

func newOSKeyring() (KeyringProvider, error) {
	cfg := keyring.Config{
		ServiceName:                    ServiceName,
		KeychainTrustApplication:       true,
		KeychainAccessibleWhenUnlocked: true,
		FileDir:                        keyringFileDir(),
		FilePasswordFunc:               keyringFilePassword,
	}
	if shouldForceFileBackend(runtime.GOOS, os.Getenv("DBUS_SESSION_BUS_ADDRESS")) {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}
	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, err
	}
	return ring, nil
}

// defaultProvider can be overridden for testing using SetProviderFunc
var defaultProvider = newOSKeyring

// storedToken is the JSON stored in the keyring
type storedToken struct {
	AccessToken string    `json:"access_token"`
	Expiry      time.Time `json:"expiry,omitzero"`
	StoredAt    time.Time `json:"stored_at"`
}

// StoreToken stores token in the keyring.
func StoreToken(token *oauth2.Token, now time.Time) error {
	if token == nil || token.AccessToken == "" {
		return errors.New("token cannot be empty")
	}
	provider, err := defaultProvider()
	if err != nil {
		return fmt.Errorf("failed to open keyring: %w", err)
	}
	data, err := json.Marshal(storedToken{
		AccessToken: token.AccessToken,
		Expiry:      token.Expiry,
		StoredAt:    now,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	err = provider.Set(keyring.Item{
		Key:   TokenKey,
		Label: "textable Google Sheets token",
		Data:  data,
	})
	if err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// LoadToken returns the token of the EnvVarName environment variable
// or the token stored in the keyring.
//
// An expired stored token is removed
// and ErrNoToken is returned for it.
func LoadToken(now time.Time) (*oauth2.Token, error) {
	if token := strings.TrimSpace(os.Getenv(EnvVarName)); token != "" {
		return sheets.StaticToken(token), nil
	}

	provider, err := defaultProvider()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open keyring: %w", ErrNoToken, err)
	}
	item, err := provider.Get(TokenKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token from keyring: %w", err)
	}

	var stored storedToken
	if err := json.Unmarshal(item.Data, &stored); err != nil {
		return nil, fmt.Errorf("invalid token in keyring: %w", err)
	}
	token := sheets.StaticToken(stored.AccessToken)
	token.Expiry = stored.Expiry
	if !sheets.TokenValid(token, now) {
		_ = provider.Remove(TokenKey)
		return nil, fmt.Errorf("%w: token expired at %s", ErrNoToken, token.Expiry.Format(time.RFC3339))
	}
	return token, nil
}

// DeleteToken removes the token from the keyring.
// Does not return an error if no token is stored.
func DeleteToken() error {
	provider, err := defaultProvider()
	if err != nil {
		return nil
	}
	err = provider.Remove(TokenKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}
