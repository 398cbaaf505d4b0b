package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const (
	DefaultBaseURL = "https://sheets.googleapis.com"
	defaultTimeout = 30 * time.Second
)

// maxResponseSize limits read proxy response bodies
const maxResponseSize = 10 << 20

// Client talks to the Google Sheets API v4.
// A Client is safe for concurrent use
// after it has been created with NewClient.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      *oauth2.Token
	apiKey     string
	proxyURL   string
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
// Its transport is wrapped to authorize requests
// and its timeout is kept.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithToken sets the OAuth token required for writing.
func WithToken(token *oauth2.Token) Option {
	return func(c *Client) { c.token = token }
}

// WithAPIKey sets the API key used for reading
// when the Config has none.
func WithAPIKey(apiKey string) Option {
	return func(c *Client) { c.apiKey = apiKey }
}

// WithProxyURL sets the URL of the Apps Script proxy
// used by AppendViaProxy.
func WithProxyURL(proxyURL string) Option {
	return func(c *Client) { c.proxyURL = proxyURL }
}

// WithLogger sets the logger for request debug logs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithClock sets the function returning the current time
// used to check the token expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient returns a Client for DefaultBaseURL
// modified by the passed options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    DefaultBaseURL,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasValidToken returns true if the client has
// an OAuth token that is not expired.
func (c *Client) HasValidToken() bool {
	return TokenValid(c.token, c.now())
}

// AuthMode returns "oauth" if the client has a valid token,
// else "api-key" for read-only access.
func (c *Client) AuthMode() string {
	if c.HasValidToken() {
		return "oauth"
	}
	return "api-key"
}

// service returns a Sheets API service sending requests
// through the HTTP client of c with the bearer token
// if the token is valid at the time of the call.
//
// option.WithHTTPClient disables the credential options
// of the API client, so the token is added by the transport.
func (c *Client) service(ctx context.Context) (*sheetsapi.Service, error) {
	var transport http.RoundTripper = &loggingTransport{base: c.httpClient.Transport, logger: c.logger}
	if c.HasValidToken() {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(c.token),
			Base:   transport,
		}
	}
	httpClient := &http.Client{
		Transport:     transport,
		CheckRedirect: c.httpClient.CheckRedirect,
		Jar:           c.httpClient.Jar,
		Timeout:       c.httpClient.Timeout,
	}
	service, err := sheetsapi.NewService(ctx,
		option.WithHTTPClient(httpClient),
		option.WithEndpoint(strings.TrimSuffix(c.baseURL, "/")+"/"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return service, nil
}

// apiError maps an error of the Sheets API client to an *APIError.
// Context errors are returned unchanged.
func apiError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var googleErr *googleapi.Error
	if errors.As(err, &googleErr) {
		apiErr := newResponseError(googleErr.Code, []byte(googleErr.Body))
		apiErr.Err = googleErr
		return apiErr
	}
	return &APIError{Kind: KindNetworkError, Message: "request failed", Err: err}
}

// doJSON sends a request with an optional JSON body
// without credentials and decodes a successful JSON response
// into result if not nil.
// Responses with status >= 400 are returned as *APIError.
func (c *Client) doJSON(ctx context.Context, method, requestURL string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := *c.httpClient
	httpClient.Transport = &loggingTransport{base: c.httpClient.Transport, logger: c.logger}
	resp, err := httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &APIError{Kind: KindNetworkError, Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &APIError{Kind: KindNetworkError, StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}
	if resp.StatusCode >= 400 {
		return newResponseError(resp.StatusCode, respBody)
	}
	if result == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// loggingTransport writes a debug log for every request
// with the API key of the URL redacted.
type loggingTransport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	ctx := req.Context()
	t.logger.DebugContext(ctx, "sheets request", "method", req.Method, "url", redactURL(req.URL))
	start := time.Now()

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	t.logger.DebugContext(ctx, "sheets response",
		"status", resp.StatusCode,
		"duration", time.Since(start).String())
	return resp, nil
}

func (c *Client) apiKeyFor(cfg *Config) string {
	if cfg != nil && cfg.APIKey != "" {
		return cfg.APIKey
	}
	return c.apiKey
}

// redactURL removes the API key from a URL for logging.
func redactURL(u *url.URL) string {
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		r := *u
		r.RawQuery = q.Encode()
		return r.String()
	}
	return u.String()
}

var errMissingToken = errors.New("authentication required to append data, no valid access token")
