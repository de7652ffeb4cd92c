package collectapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the production CollectAPI endpoint root.
const DefaultBaseURL = "https://api.collectapi.com"

// Client fetches BIST stock quotes. Implemented by HTTPClient for production
// and by the testutil mock for tests.
type Client interface {
	FetchQuotes(ctx context.Context, apiKey string) (Response, error)
}

// HTTPClient queries the CollectAPI economy endpoints over HTTP.
// BaseURL is injectable so tests can point it at a local httptest server.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a CollectAPI client with the given base URL and
// request timeout. An empty baseURL falls back to DefaultBaseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchQuotes retrieves the full BIST stock list with current quotes.
// The API key goes in the authorization header per CollectAPI convention.
func (c *HTTPClient) FetchQuotes(ctx context.Context, apiKey string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/economy/hisseSenedi", nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "apikey "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("collectapi returned status %d", resp.StatusCode)
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if !response.Success {
		return response, fmt.Errorf("collectapi reported failure")
	}

	return response, nil
}
