package qbo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// TokenURL is Intuit's OAuth2 token endpoint.
const TokenURL = "https://oauth.platform.intuit.com/oauth2/v1/tokens/bearer"

// CredentialProvider supplies the bearer credential for API calls. The
// client never refreshes on its own: an authorization failure surfaces to
// the run orchestrator, which refreshes and retries.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
}

// StaticToken is a fixed credential that cannot be refreshed.
type StaticToken string

// Token returns the fixed credential.
func (s StaticToken) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

// Refresh always fails: there is nothing to refresh with.
func (s StaticToken) Refresh(ctx context.Context) (string, error) {
	return "", &AuthorizationError{Message: "static credential cannot be refreshed"}
}

// TokenSource holds an OAuth2 access token and renews it with the
// refresh-token grant. Safe for concurrent use.
type TokenSource struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// NewTokenSource creates a TokenSource seeded with accessToken. The seed
// may be empty, in which case the first Token call refreshes.
func NewTokenSource(clientID, clientSecret, refreshToken, accessToken string) *TokenSource {
	return &TokenSource{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     TokenURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
}

// SetTokenURL overrides the token endpoint.
func (t *TokenSource) SetTokenURL(u string) {
	t.tokenURL = u
}

// Token returns the held access token, refreshing first if none is held yet.
func (t *TokenSource) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	tok := t.accessToken
	t.mu.Unlock()
	if tok != "" {
		return tok, nil
	}
	return t.Refresh(ctx)
}

// Refresh exchanges the refresh token for a new access token and returns
// it. The service may rotate the refresh token; the rotated value replaces
// the held one.
func (t *TokenSource) Refresh(ctx context.Context) (string, error) {
	t.mu.Lock()
	refreshToken := t.refreshToken
	t.mu.Unlock()

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}
	req.SetBasicAuth(t.clientID, t.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &AuthorizationError{
			StatusCode: resp.StatusCode,
			Message:    "token refresh rejected: " + strings.TrimSpace(string(body)),
		}
	}

	var tr struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", &AuthorizationError{StatusCode: resp.StatusCode, Message: "token response missing access_token"}
	}

	t.mu.Lock()
	t.accessToken = tr.AccessToken
	if tr.RefreshToken != "" {
		t.refreshToken = tr.RefreshToken
	}
	t.mu.Unlock()

	return tr.AccessToken, nil
}
