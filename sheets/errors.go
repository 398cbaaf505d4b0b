package sheets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed Sheets request.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindBadRequest
	KindRateLimited
	KindServerError
	KindNetworkError
)

var kindNames = [...]string{
	KindUnknown:      "unknown",
	KindUnauthorized: "unauthorized",
	KindForbidden:    "forbidden",
	KindNotFound:     "not-found",
	KindBadRequest:   "bad-request",
	KindRateLimited:  "rate-limited",
	KindServerError:  "server-error",
	KindNetworkError: "network-error",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kindNames[k]
}

// KindFromStatus maps an HTTP status code to an ErrorKind.
func KindFromStatus(statusCode int) ErrorKind {
	switch {
	case statusCode == http.StatusUnauthorized:
		return KindUnauthorized
	case statusCode == http.StatusForbidden:
		return KindForbidden
	case statusCode == http.StatusNotFound:
		return KindNotFound
	case statusCode == http.StatusBadRequest:
		return KindBadRequest
	case statusCode == http.StatusTooManyRequests:
		return KindRateLimited
	case statusCode >= 500:
		return KindServerError
	}
	return KindUnknown
}

// APIError is returned for every failed request.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	// Message from the response body or a description of the failure.
	Message string
	// Status is the Google status string like "PERMISSION_DENIED".
	Status string
	// Err is the *googleapi.Error of a response
	// or the transport error of a KindNetworkError.
	Err error
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString("sheets API error")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " %d", e.StatusCode)
	}
	fmt.Fprintf(&b, " (%s)", e.Kind)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Suggestion returns a hint for the user how to fix the error.
func (e *APIError) Suggestion() string {
	switch e.Kind {
	case KindUnauthorized:
		return "The access token is missing, invalid or expired. Store a new one with 'textable auth set-token', or copy the CSV export and paste it into the sheet manually."
	case KindForbidden:
		return "Share the spreadsheet with edit permission for the account of the token and make sure the Google Sheets API is enabled for the project."
	case KindNotFound:
		return "Check the spreadsheet ID and that the target sheet exists in the spreadsheet."
	case KindBadRequest:
		return "Check the range format like Sheet1!A:B and that the sheet name is correct."
	case KindRateLimited:
		return "Too many requests, wait a moment before sending again."
	case KindNetworkError:
		return "Could not connect to the Google Sheets API, check your internet connection."
	}
	return ""
}

// KindOf returns the ErrorKind of an *APIError in the chain of err
// or KindUnknown.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsAuthError returns true if err is caused by
// missing, invalid or insufficient credentials.
func IsAuthError(err error) bool {
	switch KindOf(err) {
	case KindUnauthorized, KindForbidden:
		return true
	}
	return false
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// newResponseError parses the Google JSON error body.
// A body that is no JSON error object is used as message.
func newResponseError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		Kind:       KindFromStatus(statusCode),
		StatusCode: statusCode,
	}
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error.Message != "" {
		apiErr.Message = resp.Error.Message
		apiErr.Status = resp.Error.Status
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}
	return apiErr
}
