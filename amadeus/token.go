package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// TokenSource supplies bearer tokens for upstream requests.
// Implementations report failure through the error return; callers decide
// whether to proceed or fail the request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// AuthToken represents the OAuth2 token response
type AuthToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
	Expiry      time.Time
}

// ClientCredentials fetches tokens via the client-credentials grant and
// caches them until expiry, so concurrent invocations share one token.
type ClientCredentials struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client

	mu    sync.Mutex
	token *AuthToken
}

// NewClientCredentials creates a token source for the given endpoint
func NewClientCredentials(tokenURL, clientID, clientSecret string, httpClient *http.Client) *ClientCredentials {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &ClientCredentials{
		TokenURL:     tokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		HTTPClient:   httpClient,
	}
}

// Token returns a valid access token, fetching a new one only when the
// cached token is absent or expired.
func (s *ClientCredentials) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != nil && time.Now().Before(s.token.Expiry) {
		return s.token.AccessToken, nil
	}

	token, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}
	s.token = token
	return token.AccessToken, nil
}

func (s *ClientCredentials) fetch(ctx context.Context) (*AuthToken, error) {
	if s.ClientID == "" || s.ClientSecret == "" {
		return nil, fmt.Errorf("client credentials are not configured")
	}

	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", s.ClientID)
	data.Set("client_secret", s.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("authentication failed: %s", resp.Status)
	}

	var token AuthToken
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, err
	}

	// Set expiry time (subtract 10 seconds for buffer)
	token.Expiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - 10*time.Second)
	return &token, nil
}
