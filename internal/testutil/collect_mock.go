package testutil

import (
	"context"

	"github.com/ekaraca/bist-portfolio-backend/internal/collectapi"
)

// MockCollectClient is a mock implementation of collectapi.Client for testing.
// It returns predefined quote data instead of making actual API calls.
type MockCollectClient struct {
	// MockResponse is the response to return from FetchQuotes
	MockResponse collectapi.Response
	// MockError is the error to return from FetchQuotes
	MockError error
	// FetchCount tracks how many times FetchQuotes was called
	FetchCount int
	// LastAPIKey records the key the service passed on the last call
	LastAPIKey string
}

// NewMockCollectClient creates a mock client preloaded with a small quote set.
func NewMockCollectClient() *MockCollectClient {
	return &MockCollectClient{
		MockResponse: collectapi.Response{
			Success: true,
			Result: []collectapi.StockQuote{
				{Code: "THYAO", Text: "Turk Hava Yollari", Lastprice: 270.5, Rate: 1.25, Time: "18:05"},
				{Code: "GARAN", Text: "Garanti Bankasi", Lastprice: 112.3, Rate: -0.4, Time: "18:05"},
			},
		},
	}
}

// FetchQuotes returns the configured MockResponse and MockError.
func (m *MockCollectClient) FetchQuotes(_ context.Context, apiKey string) (collectapi.Response, error) {
	m.FetchCount++
	m.LastAPIKey = apiKey
	if m.MockError != nil {
		return collectapi.Response{}, m.MockError
	}
	return m.MockResponse, nil
}

// WithQuotes replaces the mock's quote set.
func (m *MockCollectClient) WithQuotes(quotes ...collectapi.StockQuote) *MockCollectClient {
	m.MockResponse = collectapi.Response{Success: true, Result: quotes}
	return m
}

// WithError configures the mock to return the specified error.
func (m *MockCollectClient) WithError(err error) *MockCollectClient {
	m.MockError = err
	return m
}
