package coingecko

import (
	"aetherium-service/internal/domain/entities"
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
	ServiceName    = "coingecko"
	DefaultBaseURL = "https://api.coingecko.com/api/v3"
	DemoKeyHeader  = "x-cg-demo-api-key"

	coinListEndpoint = "/coins/list"
)

// Client implements interfaces.CoinListProvider and interfaces.CoinDataProvider.
// The demo key is optional; the public API answers without it at a lower rate.
type Client struct {
	http *upstream.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := upstream.NewClient(ServiceName, baseURL, timeout)
	if apiKey != "" {
		httpClient.WithHeader(DemoKeyHeader, apiKey)
	}
	return &Client{http: httpClient}
}

func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.http.WithHTTPClient(httpClient)
	return c
}

// CoinList descarga la lista completa id/symbol
func (c *Client) CoinList(ctx context.Context) ([]entities.CoinListEntry, error) {
	body, err := c.http.GetJSON(ctx, coinListEndpoint, nil)
	if err != nil {
		return nil, err
	}

	var entries []entities.CoinListEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("%w: coin list: %v", upstream.ErrDecode, err)
	}
	return entries, nil
}

func (c *Client) CoinDetail(ctx context.Context, id string) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("localization", "false")
	query.Set("tickers", "false")
	query.Set("market_data", "true")
	query.Set("community_data", "false")
	query.Set("developer_data", "false")
	return c.http.GetJSON(ctx, "/coins/"+url.PathEscape(id), query)
}

func (c *Client) MarketChart(ctx context.Context, id, vsCurrency string, days int) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("vs_currency", vsCurrency)
	query.Set("days", strconv.Itoa(days))
	query.Set("interval", "daily")
	return c.http.GetJSON(ctx, "/coins/"+url.PathEscape(id)+"/market_chart", query)
}
