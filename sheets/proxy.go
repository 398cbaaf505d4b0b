package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/domonda/go-textable"
)

// ErrNoProxy is returned by AppendViaProxy
// if the client has no proxy URL.
var ErrNoProxy = errors.New("no proxy URL configured")

type proxyRequest struct {
	SpreadsheetID string     `json:"spreadsheetId"`
	Range         string     `json:"range"`
	Values        [][]string `json:"values"`
	APIKey        string     `json:"apiKey,omitempty"`
}

// ProxyResult is the decoded JSON response of the proxy.
type ProxyResult struct {
	Error string          `json:"error,omitempty"`
	Raw   json.RawMessage `json:"-"`
}

// AppendViaProxy posts the table to a Google Apps Script web app
// that appends the values with its own credentials,
// so no OAuth token is needed.
//
// A non empty "error" field in the JSON response
// is returned as error.
func (c *Client) AppendViaProxy(ctx context.Context, cfg *Config, table textable.Table) (*ProxyResult, error) {
	if c.proxyURL == "" {
		return nil, ErrNoProxy
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sheets config: %w", err)
	}
	body := proxyRequest{
		SpreadsheetID: cfg.CleanSpreadsheetID(),
		Range:         cfg.TargetRange(),
		Values:        table.Strings(),
		APIKey:        c.apiKeyFor(cfg),
	}
	if body.Values == nil {
		body.Values = [][]string{}
	}

	var raw json.RawMessage
	err := c.doJSON(ctx, http.MethodPost, c.proxyURL, body, &raw)
	if err != nil {
		return nil, fmt.Errorf("proxy error: %w", err)
	}
	result := &ProxyResult{Raw: raw}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, result); err != nil {
			return nil, fmt.Errorf("proxy error: invalid response: %w", err)
		}
	}
	if result.Error != "" {
		return nil, &APIError{Kind: KindUnknown, Message: result.Error}
	}
	return result, nil
}
