package outlook

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

// AuthMode selects the API family a connection talks to.
type AuthMode int

const (
	ModeLegacyBasic AuthMode = iota + 1
	ModeOAuthToken
)

func (m AuthMode) String() string {
	switch m {
	case ModeLegacyBasic:
		return "basic"
	case ModeOAuthToken:
		return "oauth"
	default:
		return "unknown"
	}
}

// ParseAuthMode accepts "basic"/"legacy" and "oauth"/"token".
func ParseAuthMode(s string) (AuthMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic", "legacy":
		return ModeLegacyBasic, nil
	case "oauth", "token":
		return ModeOAuthToken, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAuthMode, s)
}

// Connection is the auth context for one account. The mode is fixed at
// construction and read-only afterwards.
type Connection struct {
	mode        AuthMode
	username    string
	password    string
	tokenSource oauth2.TokenSource
}

// NewBasicConnection creates a legacy basic-auth connection.
func NewBasicConnection(username, password string) *Connection {
	return &Connection{
		mode:     ModeLegacyBasic,
		username: username,
		password: password,
	}
}

// NewOAuthConnection creates a token connection. ts is wrapped so tokens are
// reused until expiry.
func NewOAuthConnection(ts oauth2.TokenSource) *Connection {
	c := &Connection{mode: ModeOAuthToken}
	if ts != nil {
		c.tokenSource = oauth2.ReuseTokenSource(nil, ts)
	}
	return c
}

// WithBasicCredential attaches a basic credential used when the token
// context is not usable.
func (c *Connection) WithBasicCredential(username, password string) *Connection {
	c.username = username
	c.password = password
	return c
}

// ActiveMode reports the connection's mode; false when there is none.
func (c *Connection) ActiveMode() (AuthMode, bool) {
	if c == nil || c.mode == 0 {
		return 0, false
	}
	return c.mode, true
}

// IsAuthValid reports whether the active mode can authorize a request.
func (c *Connection) IsAuthValid() bool {
	if c == nil {
		return false
	}
	switch c.mode {
	case ModeLegacyBasic:
		return c.HasCredential()
	case ModeOAuthToken:
		if c.tokenSource == nil {
			return false
		}
		tok, err := c.tokenSource.Token()
		return err == nil && tok.Valid()
	}
	return false
}

// HasCredential reports whether a basic credential is present.
func (c *Connection) HasCredential() bool {
	return c != nil && c.username != "" && c.password != ""
}

// authorize sets the Authorization header for req.
func (c *Connection) authorize(req *http.Request) error {
	if c == nil {
		return ErrUnauthenticated
	}
	if c.mode == ModeOAuthToken && c.tokenSource != nil {
		tok, err := c.tokenSource.Token()
		if err == nil && tok.Valid() {
			tok.SetAuthHeader(req)
			return nil
		}
	}
	if c.HasCredential() {
		req.SetBasicAuth(c.username, c.password)
		return nil
	}
	return ErrUnauthenticated
}

// OAuthScopes are the delegated permissions the token family needs.
var OAuthScopes = []string{
	"offline_access",
	"https://graph.microsoft.com/Calendars.ReadWrite",
	"https://graph.microsoft.com/Contacts.Read",
}

// OAuthConfig builds the Azure AD authorization-code config for a tenant.
func OAuthConfig(tenantID, clientID, clientSecret, redirectURL string) *oauth2.Config {
	if tenantID == "" {
		tenantID = "common"
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       OAuthScopes,
		Endpoint:     microsoft.AzureADEndpoint(tenantID),
	}
}

// NewConnectionFromTokenFile loads a saved token and returns a connection
// whose token source refreshes through cfg.
func NewConnectionFromTokenFile(ctx context.Context, cfg *oauth2.Config, path string) (*Connection, error) {
	tok, err := LoadToken(path)
	if err != nil {
		return nil, err
	}
	return NewOAuthConnection(cfg.TokenSource(ctx, tok)), nil
}

// LoadToken reads a JSON-encoded token.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &tok, nil
}

// SaveToken writes tok as JSON with owner-only permissions.
func SaveToken(path string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}
