package coinmarketcap

import (
	"net/http"

	"tokenquote/internal/provider"
)

const baseURL = "https://pro-api.coinmarketcap.com"

// CoinMarketCapAPIClient is a client for the CoinMarketCap Pro API.
type CoinMarketCapAPIClient struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP httpClient.
	httpClient provider.HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
}

// CoinMarketCapAPIClientOption is a configuration option for the client.
type CoinMarketCapAPIClientOption func(*CoinMarketCapAPIClient)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) CoinMarketCapAPIClientOption {
	return func(c *CoinMarketCapAPIClient) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient provider.HTTPClient) CoinMarketCapAPIClientOption {
	return func(c *CoinMarketCapAPIClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) CoinMarketCapAPIClientOption {
	return func(c *CoinMarketCapAPIClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewCoinMarketCapAPIClient creates a new CoinMarketCap API client.
func NewCoinMarketCapAPIClient(key string, options ...CoinMarketCapAPIClientOption) *CoinMarketCapAPIClient {
	c := &CoinMarketCapAPIClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	if key != "" {
		// https://coinmarketcap.com/api/documentation/v1/#section/Authentication
		c.header.Set("X-CMC_PRO_API_KEY", key)
	}
	for _, option := range options {
		option(c)
	}
	return c
}
