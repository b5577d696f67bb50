package coinmarketcap

import (
	"aetherium-service/internal/domain/apperrors"
	"aetherium-service/internal/infrastructure/providers/upstream"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	ServiceName    = "coinmarketcap"
	DefaultBaseURL = "https://pro-api.coinmarketcap.com"
	APIKeyHeader   = "X-CMC_PRO_API_KEY"

	ListingsLimit      = 50
	HistoricalInterval = "24h"

	listingsEndpoint   = "/v1/cryptocurrency/listings/latest"
	quotesEndpoint     = "/v2/cryptocurrency/quotes/latest"
	historicalEndpoint = "/v3/cryptocurrency/quotes/historical"

	// formato de Date.toISOString()
	isoMillis = "2006-01-02T15:04:05.000Z"
)

// Client implements interfaces.MarketDataProvider against the CoinMarketCap Pro API
type Client struct {
	apiKey string
	http   *upstream.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := upstream.NewClient(ServiceName, baseURL, timeout)
	if apiKey != "" {
		httpClient.WithHeader(APIKeyHeader, apiKey)
	}
	return &Client{
		apiKey: apiKey,
		http:   httpClient,
	}
}

// WithHTTPClient is used by tests to point the client at an httptest server
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.http.WithHTTPClient(httpClient)
	return c
}

func (c *Client) Listings(ctx context.Context, convert string) (json.RawMessage, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(ListingsLimit))
	query.Set("convert", convert)
	return c.http.GetJSON(ctx, listingsEndpoint, query)
}

func (c *Client) Quote(ctx context.Context, id, convert string) (json.RawMessage, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("id", id)
	query.Set("convert", convert)
	return c.http.GetJSON(ctx, quotesEndpoint, query)
}

// Historical pide cotizaciones diarias desde start hasta "now" (valor literal que acepta la API)
func (c *Client) Historical(ctx context.Context, id, convert string, start time.Time) (json.RawMessage, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("id", id)
	query.Set("convert", convert)
	query.Set("interval", HistoricalInterval)
	query.Set("time_end", "now")
	query.Set("time_start", FormatTimestamp(start))
	return c.http.GetJSON(ctx, historicalEndpoint, query)
}

func (c *Client) requireKey() error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: coinmarketcap api key", apperrors.ErrConfigMissing)
	}
	return nil
}

// FormatTimestamp renders t in UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(isoMillis)
}
