package sheets

import (
	"context"
	"errors"
	"fmt"

	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/domonda/go-textable"
)

// AppendResult is the response of a successful append.
type AppendResult struct {
	SpreadsheetID string        `json:"spreadsheetId"`
	TableRange    string        `json:"tableRange,omitempty"`
	Updates       UpdateSummary `json:"updates"`
}

// UpdateSummary describes the appended cells.
type UpdateSummary struct {
	SpreadsheetID  string `json:"spreadsheetId"`
	UpdatedRange   string `json:"updatedRange"`
	UpdatedRows    int    `json:"updatedRows"`
	UpdatedColumns int    `json:"updatedColumns"`
	UpdatedCells   int    `json:"updatedCells"`
}

// Append inserts the rows of table after the last row
// of the target range of cfg.
// Values are interpreted as if typed by a user,
// so numbers and dates are converted by Google Sheets.
//
// Writing requires a valid OAuth token,
// without one an *APIError of KindUnauthorized
// is returned before any request is sent.
func (c *Client) Append(ctx context.Context, cfg *Config, table textable.Table) (*AppendResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sheets config: %w", err)
	}
	if !c.HasValidToken() {
		return nil, &APIError{Kind: KindUnauthorized, Message: errMissingToken.Error(), Err: errMissingToken}
	}
	if table.IsEmpty() {
		return nil, errors.New("no rows to append")
	}

	var (
		spreadsheetID = cfg.CleanSpreadsheetID()
		targetRange   = cfg.TargetRange()
	)
	service, err := c.service(ctx)
	if err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "appending rows",
		"spreadsheet_id", spreadsheetID,
		"range", targetRange,
		"rows", table.NumRows())

	resp, err := service.Spreadsheets.Values.
		Append(spreadsheetID, targetRange, valueRange(table)).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, apiError(ctx, err)
	}
	result := &AppendResult{
		SpreadsheetID: resp.SpreadsheetId,
		TableRange:    resp.TableRange,
	}
	if u := resp.Updates; u != nil {
		result.Updates = UpdateSummary{
			SpreadsheetID:  u.SpreadsheetId,
			UpdatedRange:   u.UpdatedRange,
			UpdatedRows:    int(u.UpdatedRows),
			UpdatedColumns: int(u.UpdatedColumns),
			UpdatedCells:   int(u.UpdatedCells),
		}
	}
	return result, nil
}

// valueRange returns the rows of table as ValueRange
// with every cell as string value.
func valueRange(table textable.Table) *sheetsapi.ValueRange {
	values := make([][]any, len(table))
	for i, row := range table.Strings() {
		values[i] = make([]any, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}
	return &sheetsapi.ValueRange{
		MajorDimension: "ROWS",
		Values:         values,
	}
}
