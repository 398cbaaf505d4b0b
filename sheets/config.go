// Package sheets appends parsed tables to Google Sheets
// using the Sheets REST API v4 or an Apps Script proxy.
package sheets

import (
	"errors"
	"regexp"
	"strings"

	"github.com/domonda/go-textable"
)

const (
	DefaultSheetName = "Sheet1"
	DefaultColumns   = "A:B"
	DefaultRange     = DefaultSheetName + "!" + DefaultColumns
)

// Config describes the target of an append.
type Config struct {
	// SpreadsheetID is the ID or the full URL of the spreadsheet.
	SpreadsheetID string `json:"spreadsheetId" yaml:"spreadsheet_id"`
	// APIKey is only used for read access and the proxy.
	APIKey string `json:"apiKey,omitempty" yaml:"api_key,omitempty"`
	// Range in A1 notation like "Sheet1!A:B".
	// If empty, then the range is built from SheetName and Columns.
	Range     string `json:"range" yaml:"range"`
	SheetName string `json:"sheetName" yaml:"sheet_name"`
	Columns   string `json:"columns" yaml:"columns"`
}

// DefaultConfig returns a Config targeting
// the columns A and B of Sheet1.
func DefaultConfig() Config {
	return Config{
		Range:     DefaultRange,
		SheetName: DefaultSheetName,
		Columns:   DefaultColumns,
	}
}

// Validate returns an error if the spreadsheet ID
// or the target range is missing or invalid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SpreadsheetID) == "" {
		return errors.New("missing spreadsheet ID")
	}
	target := c.TargetRange()
	if target == "" {
		return errors.New("missing range")
	}
	if _, err := textable.ParseColumnRange(target); err != nil {
		return err
	}
	if c.APIKey != "" && !ValidateAPIKey(c.APIKey) {
		return errors.New("invalid API key format")
	}
	return nil
}

// CleanSpreadsheetID returns the ID extracted from SpreadsheetID
// or SpreadsheetID unchanged if no ID could be extracted.
func (c *Config) CleanSpreadsheetID() string {
	if id, ok := ExtractSpreadsheetID(c.SpreadsheetID); ok {
		return id
	}
	return strings.TrimSpace(c.SpreadsheetID)
}

// TargetRange returns Range if set, else the range
// built from SheetName and Columns.
func (c *Config) TargetRange() string {
	if r := strings.TrimSpace(c.Range); r != "" {
		return r
	}
	if c.SheetName == "" && c.Columns == "" {
		return ""
	}
	sheet := c.SheetName
	if sheet == "" {
		sheet = DefaultSheetName
	}
	cols, err := textable.ParseColumnRange(c.Columns)
	if err != nil {
		cols = textable.MustParseColumnRange(DefaultColumns)
	}
	cols.Sheet = sheet
	return cols.String()
}

// TargetSheet returns the sheet name of the target range.
func (c *Config) TargetSheet() string {
	if r, err := textable.ParseColumnRange(c.TargetRange()); err == nil && r.Sheet != "" {
		return r.Sheet
	}
	return c.SheetName
}

var (
	cleanIDRegexp = regexp.MustCompile(`^[a-zA-Z0-9_-]{20,}$`)
	idPatterns    = []*regexp.Regexp{
		regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)(?:[/?#]|$)`),
		regexp.MustCompile(`/spreadsheets/u/\d+/d/([a-zA-Z0-9_-]+)(?:[/?#]|$)`),
		regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`),
	}
)

// ExtractSpreadsheetID returns the spreadsheet ID
// of a Google Sheets URL or of an already clean ID.
//
// A clean ID has at least 20 characters out of
// letters, digits, '_' and '-' and is returned unchanged.
// URLs of the forms /spreadsheets/d/<id>, /spreadsheets/u/<n>/d/<id>
// and id=<id> are supported.
func ExtractSpreadsheetID(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	if !strings.ContainsAny(input, "/.") && cleanIDRegexp.MatchString(input) {
		return input, true
	}
	for _, pattern := range idPatterns {
		if m := pattern.FindStringSubmatch(input); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// ValidateAPIKey returns true if key looks like
// a Google API key.
func ValidateAPIKey(key string) bool {
	return strings.HasPrefix(key, "AIza") && len(key) > 20
}
