// Package config loads and saves the CLI configuration
// from ~/.config/textable/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/domonda/go-textable/sheets"
)

// Config represents the CLI configuration
type Config struct {
	// Target spreadsheet
	Sheets sheets.Config `yaml:"sheets"`

	// Default output format (table, csv, json, yaml, html)
	Output string `yaml:"output,omitempty"`

	// Default color mode (auto, always, never)
	Color string `yaml:"color,omitempty"`

	// Path of the SQLite history database,
	// defaults to history.db next to the config file
	HistoryPath string `yaml:"history_path,omitempty"`

	// URL of an Apps Script web app appending rows without OAuth
	ProxyURL string `yaml:"proxy_url,omitempty"`
}

// Default returns the configuration used
// when no config file exists.
func Default() *Config {
	return &Config{Sheets: sheets.DefaultConfig()}
}

// configPathFunc can be overridden for testing
var configPathFunc = defaultConfigPath

// SetConfigPathFunc sets the config path function for testing.
// Returns the original function so it can be restored.
func SetConfigPathFunc(fn func() (string, error)) func() (string, error) {
	orig := configPathFunc
	configPathFunc = fn
	return orig
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "textable", "config.yaml"), nil
}

// Path returns the path of the config file.
func Path() (string, error) {
	return configPathFunc()
}

// Load loads the config from Path,
// returns Default if the file does not exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads the config from a specific path.
// Values missing in the file are taken from Default.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save saves the config to Path.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveToPath(path)
}

// SaveToPath saves the config to a specific path
// readable only by the current user.
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// HistoryDBPath returns HistoryPath if set,
// else history.db in the directory of the config file.
func (c *Config) HistoryDBPath() (string, error) {
	if c.HistoryPath != "" {
		return c.HistoryPath, nil
	}
	path, err := Path()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), "history.db"), nil
}

// Keys lists the keys accepted by Set and Get.
var Keys = []string{
	"spreadsheet_id",
	"api_key",
	"range",
	"sheet_name",
	"columns",
	"output",
	"color",
	"history_path",
	"proxy_url",
}

func (c *Config) field(key string) (*string, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "spreadsheet_id":
		return &c.Sheets.SpreadsheetID, nil
	case "api_key":
		return &c.Sheets.APIKey, nil
	case "range":
		return &c.Sheets.Range, nil
	case "sheet_name":
		return &c.Sheets.SheetName, nil
	case "columns":
		return &c.Sheets.Columns, nil
	case "output":
		return &c.Output, nil
	case "color":
		return &c.Color, nil
	case "history_path":
		return &c.HistoryPath, nil
	case "proxy_url":
		return &c.ProxyURL, nil
	}
	return nil, fmt.Errorf("unknown config key %q, valid keys: %s", key, strings.Join(Keys, ", "))
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	f, err := c.field(key)
	if err != nil {
		return "", err
	}
	return *f, nil
}

// Set sets a config key.
//
// A spreadsheet URL is reduced to its ID.
// Setting sheet_name or columns clears an explicit range
// so the target is built from both.
func (c *Config) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	f, err := c.field(key)
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	switch key {
	case "spreadsheet_id":
		if id, ok := sheets.ExtractSpreadsheetID(value); ok {
			value = id
		}
	case "api_key":
		if value != "" && !sheets.ValidateAPIKey(value) {
			return errors.New("invalid API key format")
		}
	case "output":
		if value != "" && !slices.Contains(OutputFormats, value) {
			return fmt.Errorf("invalid output format %q, must be one of %s", value, strings.Join(OutputFormats, ", "))
		}
	case "sheet_name", "columns":
		c.Sheets.Range = ""
	}
	*f = value
	return nil
}

// OutputFormats are the valid values of Config.Output.
var OutputFormats = []string{"table", "csv", "json", "yaml", "html"}
