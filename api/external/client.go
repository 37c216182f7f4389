/* client.go
 * Contains the HTTP client used to fetch fight data from the external MMA fights api,
 * and return the raw records to the higher level functions
 * Authors: Roman Divkovic
 */

package external

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrUpstreamUnavailable marks fetch failures (network, non-2xx, malformed body).
// Callers treat it as retryable and non-fatal.
var ErrUpstreamUnavailable = errors.New("fights api unavailable")

const defaultBaseURL = "https://v1.mma.api-sports.io"

type Client struct {
	BaseURL string
	APIKey  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a fights api client.
// Preconditions: Receives string containing the api key
// Postconditions: Returns pointer to a Client with the default base url, timeout and rate limit set
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		APIKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
		// The free api-sports tier allows 10 requests per minute
		limiter: rate.NewLimiter(rate.Every(6*time.Second), 1),
	}
}

// FetchFightsByDate gets all raw fight records for a given date from the fights api
// Preconditions: Receives a context and a date string, either YYYY-MM-DD or a full ISO timestamp
// Postconditions: Returns slice of RawFight for the date, or an ErrUpstreamUnavailable wrapped error if it occurs
func (c *Client) FetchFightsByDate(ctx context.Context, date string) ([]RawFight, error) {
	// The api is keyed by the date part only, so strip any time component
	if idx := strings.Index(date, "T"); idx != -1 {
		date = date[:idx]
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	parsedURL, err := url.Parse(c.BaseURL + "/fights")
	if err != nil {
		return nil, fmt.Errorf("invalid fights api url: %w", err)
	}
	params := parsedURL.Query()
	params.Set("date", date)
	parsedURL.RawQuery = params.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Headers to comply with api requirements
	request.Header.Set("x-apisports-key", c.APIKey)
	request.Header.Set("Accept-Encoding", "gzip")

	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status code %d", ErrUpstreamUnavailable, response.StatusCode)
	}

	// Get body from response, decompressing if the api honoured the gzip header
	var body []byte
	if response.Header.Get("Content-Encoding") == "gzip" {
		reader, err := gzip.NewReader(response.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create gzip reader: %v", ErrUpstreamUnavailable, err)
		}
		defer reader.Close()
		body, err = io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read response body: %v", ErrUpstreamUnavailable, err)
		}
	} else {
		body, err = io.ReadAll(response.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read response body: %v", ErrUpstreamUnavailable, err)
		}
	}

	var payload fightsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed response body: %v", ErrUpstreamUnavailable, err)
	}

	return payload.Response, nil
}
