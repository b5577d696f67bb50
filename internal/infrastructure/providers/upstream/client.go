package upstream

import (
	"aetherium-service/internal/domain/apperrors"
	"aetherium-service/internal/infrastructure/logging"
	"aetherium-service/internal/infrastructure/metrics"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second
	// MaxBodyBytes acota lo que se lee de un proveedor; la lista completa de CoinGecko ronda 1-2 MB
	MaxBodyBytes = 16 << 20
	errorBodyLen = 512
)

// Client performs single-attempt GET requests against one provider and returns
// the raw JSON body. No retries: every call is bounded by timeout.
type Client struct {
	service    string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	headers    http.Header
}

// NewClient crea un cliente para service (usado en logs y métricas)
func NewClient(service, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		service:    service,
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
		headers:    http.Header{"Accept": []string{"application/json"}},
	}
}

// WithHeader adds a header sent on every request (credentials, mostly)
func (c *Client) WithHeader(key, value string) *Client {
	c.headers.Set(key, value)
	return c
}

// WithHTTPClient replaces the underlying client (tests use httptest servers)
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

func (c *Client) Service() string {
	return c.service
}

// GetJSON requests baseURL+endpoint with query and returns the body untouched.
// Non-2xx answers become *apperrors.UpstreamHTTPError.
func (c *Client) GetJSON(ctx context.Context, endpoint string, query url.Values) (json.RawMessage, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrRequestFailed, err)
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if requestID := logging.GetRequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	logging.ExternalAPI().RequestStarted(ctx, c.service, endpoint, http.MethodGet)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.RecordExternalAPIRequest(c.service, endpoint, 0, duration.Seconds())
		logging.ExternalAPI().RequestFailed(ctx, c.service, endpoint, 0, err, duration)

		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s %s timed out after %v", ErrRequestFailed, c.service, endpoint, c.timeout)
		}
		return nil, fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, c.service, endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	metrics.RecordExternalAPIRequest(c.service, endpoint, resp.StatusCode, duration.Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLen))
		httpErr := &apperrors.UpstreamHTTPError{
			Provider:   c.service,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(snippet),
		}
		logging.ExternalAPI().RequestFailed(ctx, c.service, endpoint, resp.StatusCode, httpErr, duration)
		return nil, httpErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s %s body: %v", ErrRequestFailed, c.service, endpoint, err)
	}
	if len(body) > MaxBodyBytes {
		return nil, fmt.Errorf("%w: %s %s body exceeds %d bytes", ErrDecode, c.service, endpoint, MaxBodyBytes)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s %s returned invalid JSON", ErrDecode, c.service, endpoint)
	}

	logging.ExternalAPI().RequestCompleted(ctx, c.service, endpoint, resp.StatusCode, duration)
	return json.RawMessage(body), nil
}
