package sheets

import (
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// NewToken returns an OAuth token with the spreadsheets scope
// expiring expiresIn after now as returned by the implicit OAuth flow.
func NewToken(accessToken string, expiresIn time.Duration, now time.Time) *oauth2.Token {
	token := StaticToken(accessToken)
	token.Expiry = now.Add(expiresIn)
	return token
}

// StaticToken returns a bearer token that never expires.
func StaticToken(accessToken string) *oauth2.Token {
	return &oauth2.Token{
		AccessToken: strings.TrimSpace(accessToken),
		TokenType:   "Bearer",
	}
}

// TokenValid returns true if token has an access token
// and now is before its expiry.
// A zero Expiry never expires.
//
// Unlike oauth2.Token.Valid the passed time is used
// instead of time.Now and there is no early expiry delta.
func TokenValid(token *oauth2.Token, now time.Time) bool {
	if token == nil || token.AccessToken == "" {
		return false
	}
	return token.Expiry.IsZero() || now.Before(token.Expiry)
}

// MaskToken returns a shortened access token for display.
func MaskToken(token *oauth2.Token) string {
	if token == nil {
		return ""
	}
	if len(token.AccessToken) <= 10 {
		return strings.Repeat("*", len(token.AccessToken))
	}
	return token.AccessToken[:10] + "..."
}
