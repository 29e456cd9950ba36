package amadeus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// staticTokens is a TokenSource that never hits the network
type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(ctx context.Context) (string, error) {
	return s.token, s.err
}

func TestClient_Get(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test_token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"iataCode":"LAX"}]}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, staticTokens{token: "test_token"})

	params := url.Values{}
	params.Set("keyword", "LAX")

	payload, err := client.Get(context.Background(), "/v1/reference-data/locations", params)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"data":[{"iataCode":"LAX"}]}`, string(payload))
}

func TestClient_Get_RejectedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"title":"INVALID DATE"}]}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, staticTokens{token: "test_token"})

	payload, err := client.Get(context.Background(), "/v2/shopping/flight-offers", nil)
	assert.Nil(t, payload)
	assert.Error(t, err)
	assert.Equal(t, KindUpstreamRejected, KindOf(err))

	var ae *Error
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusBadRequest, ae.StatusCode)
	assert.Contains(t, ae.Body, "INVALID DATE")
}

func TestClient_Get_EmptyBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, staticTokens{token: "test_token"})

	payload, err := client.Get(context.Background(), "/v1/shopping/flight-destinations", nil)
	assert.Nil(t, payload)
	assert.Equal(t, KindUpstreamEmpty, KindOf(err))
}

func TestClient_Get_MalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway timeout</html>`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, staticTokens{token: "test_token"})

	payload, err := client.Get(context.Background(), "/v2/shopping/flight-offers", nil)
	assert.NoError(t, err)

	var degraded struct {
		RawResponse string `json:"raw_response"`
		StatusCode  int    `json:"status_code"`
		Error       string `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(payload, &degraded))
	assert.Equal(t, "<html>gateway timeout</html>", degraded.RawResponse)
	assert.Equal(t, http.StatusOK, degraded.StatusCode)
	assert.NotEmpty(t, degraded.Error)
}

func TestClient_Get_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := NewClient(ts.URL, staticTokens{token: "test_token"})

	payload, err := client.Get(context.Background(), "/v1/reference-data/locations", nil)
	assert.Nil(t, payload)
	assert.Equal(t, KindUpstreamUnavailable, KindOf(err))
}

func TestClient_Get_TokenFailure(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, staticTokens{err: assert.AnError})

	payload, err := client.Get(context.Background(), "/v1/reference-data/locations", nil)
	assert.Nil(t, payload)
	assert.Equal(t, KindUpstreamUnavailable, KindOf(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	client := NewClient("", staticTokens{token: "t"})
	assert.Equal(t, BaseURLTest, client.BaseURL)
}
