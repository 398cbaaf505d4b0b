package sheets

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"google.golang.org/api/googleapi"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Spreadsheet is the subset of the spreadsheet resource
// used to list sheets and test a connection.
type Spreadsheet struct {
	SpreadsheetID  string            `json:"spreadsheetId"`
	Title          string            `json:"title"`
	Sheets         []SheetProperties `json:"sheets"`
	SpreadsheetURL string            `json:"spreadsheetUrl,omitempty"`
}

type SheetProperties struct {
	SheetID int64  `json:"sheetId"`
	Title   string `json:"title"`
	Index   int    `json:"index"`
}

func newSpreadsheet(s *sheetsapi.Spreadsheet) *Spreadsheet {
	result := &Spreadsheet{
		SpreadsheetID:  s.SpreadsheetId,
		SpreadsheetURL: s.SpreadsheetUrl,
	}
	if s.Properties != nil {
		result.Title = s.Properties.Title
	}
	for _, sheet := range s.Sheets {
		if sheet == nil || sheet.Properties == nil {
			continue
		}
		result.Sheets = append(result.Sheets, SheetProperties{
			SheetID: sheet.Properties.SheetId,
			Title:   sheet.Properties.Title,
			Index:   int(sheet.Properties.Index),
		})
	}
	return result
}

// SheetNames returns the titles of all sheets in order.
func (s *Spreadsheet) SheetNames() []string {
	names := make([]string, len(s.Sheets))
	for i, sheet := range s.Sheets {
		names[i] = sheet.Title
	}
	return names
}

// SheetInfo describes a sheet that can be selected as target.
type SheetInfo struct {
	Name    string   `json:"name"`
	ID      int64    `json:"id"`
	Columns []string `json:"columns"`
}

// defaultSheetColumns are offered for every sheet
// because the column count is not part of the metadata.
var defaultSheetColumns = []string{"A", "B", "C", "D", "E", "F"}

// Spreadsheet returns the metadata of a spreadsheet.
//
// Reading works with an API key for public spreadsheets
// or with a valid OAuth token, both are sent if available.
func (c *Client) Spreadsheet(ctx context.Context, spreadsheetID string) (*Spreadsheet, error) {
	return c.spreadsheet(ctx, &Config{SpreadsheetID: spreadsheetID})
}

func (c *Client) spreadsheet(ctx context.Context, cfg *Config) (*Spreadsheet, error) {
	spreadsheetID := cfg.CleanSpreadsheetID()
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	service, err := c.service(ctx)
	if err != nil {
		return nil, err
	}
	var opts []googleapi.CallOption
	if apiKey := c.apiKeyFor(cfg); apiKey != "" {
		opts = append(opts, googleapi.QueryParameter("key", apiKey))
	}
	resp, err := service.Spreadsheets.Get(spreadsheetID).
		Fields("spreadsheetId", "spreadsheetUrl", "properties.title", "sheets.properties").
		Context(ctx).
		Do(opts...)
	if err != nil {
		return nil, apiError(ctx, err)
	}
	return newSpreadsheet(resp), nil
}

// ListSheets returns all sheets of the spreadsheet of cfg.
func (c *Client) ListSheets(ctx context.Context, cfg *Config) ([]SheetInfo, error) {
	spreadsheet, err := c.spreadsheet(ctx, cfg)
	if err != nil {
		return nil, err
	}
	infos := make([]SheetInfo, len(spreadsheet.Sheets))
	for i, sheet := range spreadsheet.Sheets {
		infos[i] = SheetInfo{
			Name:    sheet.Title,
			ID:      sheet.SheetID,
			Columns: slices.Clone(defaultSheetColumns),
		}
	}
	return infos, nil
}

// ConnectionReport is the result of TestConnection.
type ConnectionReport struct {
	SpreadsheetID    string   `json:"spreadsheetId"`
	Title            string   `json:"title"`
	SheetNames       []string `json:"sheetNames"`
	TargetSheet      string   `json:"targetSheet,omitempty"`
	TargetSheetFound bool     `json:"targetSheetFound"`
	// AuthMode is "oauth" if writing is possible,
	// else "api-key" for read-only access.
	AuthMode string `json:"authMode"`
}

// CanWrite returns true if the connection was tested
// with a valid OAuth token.
func (r *ConnectionReport) CanWrite() bool {
	return r.AuthMode == "oauth"
}

// TestConnection reads the spreadsheet of cfg
// and checks that its target sheet exists.
//
// If the spreadsheet was read but the target sheet is missing,
// then the report is returned together with
// an *APIError of KindNotFound.
func (c *Client) TestConnection(ctx context.Context, cfg *Config) (*ConnectionReport, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	spreadsheet, err := c.spreadsheet(ctx, cfg)
	if err != nil {
		return nil, err
	}
	report := &ConnectionReport{
		SpreadsheetID: cfg.CleanSpreadsheetID(),
		Title:         spreadsheet.Title,
		SheetNames:    spreadsheet.SheetNames(),
		TargetSheet:   cfg.TargetSheet(),
		AuthMode:      c.AuthMode(),
	}
	if report.TargetSheet == "" {
		report.TargetSheetFound = true
		return report, nil
	}
	report.TargetSheetFound = slices.Contains(report.SheetNames, report.TargetSheet)
	if !report.TargetSheetFound {
		return report, &APIError{
			Kind:    KindNotFound,
			Message: fmt.Sprintf("sheet %q not found, available sheets: %v", report.TargetSheet, report.SheetNames),
		}
	}
	return report, nil
}
