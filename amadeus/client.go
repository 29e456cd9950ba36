// Package amadeus wraps the Amadeus travel APIs: an authenticated HTTP
// client, OAuth2 token handling, and normalizers that reshape the upstream
// payloads into flat result envelopes.
package amadeus

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/smarttrip/backend/log"
)

const (
	// BaseURLTest is the Amadeus sandbox host
	BaseURLTest = "https://test.api.amadeus.com"
	// BaseURLProduction is the Amadeus production host
	BaseURLProduction = "https://api.amadeus.com"

	requestTimeout = 30 * time.Second
)

// Client is the upstream Amadeus API client. Each call is attempted
// exactly once; there are no retries.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
}

// NewClient creates a new Amadeus client with the given token source
func NewClient(baseURL string, tokens TokenSource) *Client {
	if baseURL == "" {
		baseURL = BaseURLTest
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: requestTimeout},
		Tokens:     tokens,
	}
}

// degradedPayload is returned in place of a body that was not valid JSON,
// so downstream still surfaces something diagnosable.
type degradedPayload struct {
	RawResponse string `json:"raw_response"`
	StatusCode  int    `json:"status_code"`
	Error       string `json:"error"`
}

// Get performs an authenticated GET against the given path.
//
// Failures are classified: transport errors and token failures map to
// KindUpstreamUnavailable, non-2xx statuses to KindUpstreamRejected, an
// empty body to KindUpstreamEmpty. A malformed JSON body is not an error:
// it comes back as a degraded {raw_response, status_code, error} payload.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	token, err := c.Tokens.Token(ctx)
	if err != nil {
		log.Errorf(ctx, "Failed to obtain Amadeus token: %v", err)
		return nil, &Error{Kind: KindUpstreamUnavailable, Message: "could not obtain access token: " + err.Error(), Err: err}
	}

	reqURL := c.BaseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, Internalf(err, "building request for %s", path)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	log.Infof(ctx, "Making request to: %s with params: %v", c.BaseURL+path, params)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Errorf(ctx, "Network request failed: %v", err)
		return nil, &Error{Kind: KindUpstreamUnavailable, Message: "network request failed: " + err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindUpstreamUnavailable, Message: "reading response body: " + err.Error(), Err: err}
	}

	log.Infof(ctx, "Response status: %d, %d bytes", resp.StatusCode, len(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Errorf(ctx, "API request failed with status %d: %s", resp.StatusCode, string(body))
		return nil, &Error{
			Kind:       KindUpstreamRejected,
			Message:    "API request failed",
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	if len(body) == 0 {
		log.Errorf(ctx, "Empty response from Amadeus API")
		return nil, &Error{Kind: KindUpstreamEmpty, Message: "empty response from Amadeus API", StatusCode: resp.StatusCode}
	}

	if !json.Valid(body) {
		log.Errorf(ctx, "Failed to parse JSON response, raw: %s", string(body))
		degraded, err := json.Marshal(degradedPayload{
			RawResponse: string(body),
			StatusCode:  resp.StatusCode,
			Error:       "failed to parse JSON response",
		})
		if err != nil {
			return nil, Internalf(err, "encoding degraded payload")
		}
		return degraded, nil
	}

	return body, nil
}
