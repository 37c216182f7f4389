/* client_test.go
 * Contains unit tests for client.go functions, using httptest to fake the fights api
 * Authors: Roman Divkovic
 */

package external

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

const sampleBody = `{
	"results": 1,
	"response": [
		{
			"id": 101,
			"slug": "ufc-300",
			"date": "2024-04-13T00:00:00+00:00",
			"status": {"short": "FT", "long": "Finished"},
			"fighters": {
				"first": {"id": 1, "name": "Jon Jones", "record": "27-1-0", "country": "USA", "winner": true},
				"second": {"id": 2, "name": "Stipe Miocic", "record": "20-4-0", "country": "USA", "winner": false}
			},
			"method": "KO/TKO"
		}
	]
}`

// newTestClient returns a client pointed at the given server with the rate limit removed
func newTestClient(serverURL string) *Client {
	return &Client{
		BaseURL: serverURL,
		APIKey:  "test-key",
		client:  &http.Client{Timeout: 5 * time.Second},
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
}

// region FetchFightsByDate tests

func TestFetchFightsByDate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fights", r.URL.Path)
		assert.Equal(t, "2024-04-13", r.URL.Query().Get("date"))
		assert.Equal(t, "test-key", r.Header.Get("x-apisports-key"))
		w.Write([]byte(sampleBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	fights, err := client.FetchFightsByDate(context.Background(), "2024-04-13")

	assert.NoError(t, err)
	assert.Len(t, fights, 1)
	assert.Equal(t, "101", fights[0].ID.String())
	assert.Equal(t, "FT", fights[0].Status.Short)
	assert.Equal(t, "Jon Jones", fights[0].Fighters.First.Name)
}

func TestFetchFightsByDate_StripsTimeComponent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-04-13", r.URL.Query().Get("date"))
		w.Write([]byte(`{"results": 0, "response": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchFightsByDate(context.Background(), "2024-04-13T22:00:00Z")

	assert.NoError(t, err)
}

func TestFetchFightsByDate_GzipResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(sampleBody))
		gz.Close()
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	fights, err := client.FetchFightsByDate(context.Background(), "2024-04-13")

	assert.NoError(t, err)
	assert.Len(t, fights, 1)
}

func TestFetchFightsByDate_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchFightsByDate(context.Background(), "2024-04-13")

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestFetchFightsByDate_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchFightsByDate(context.Background(), "2024-04-13")

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestFetchFightsByDate_ServerUnreachable(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")
	_, err := client.FetchFightsByDate(context.Background(), "2024-04-13")

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestFetchFightsByDate_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": 0, "response": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	fights, err := client.FetchFightsByDate(context.Background(), "2024-04-13")

	assert.NoError(t, err)
	assert.Len(t, fights, 0)
}

// endregion

// region NewClient tests

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("my-key")

	assert.Equal(t, defaultBaseURL, client.BaseURL)
	assert.Equal(t, "my-key", client.APIKey)
	assert.NotNil(t, client.client)
	assert.NotNil(t, client.limiter)
}

// endregion
