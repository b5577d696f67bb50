package handlers

import (
	"aetherium-service/internal/domain/apperrors"
	"aetherium-service/internal/domain/entities"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRequest(method, target string, vars map[string]string, body string) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestCryptoHandler_Listings(t *testing.T) {
	upstreamErr := &apperrors.UpstreamHTTPError{Provider: "coinmarketcap", Endpoint: "/v1", StatusCode: 429, Body: "secret upstream body"}

	tests := []struct {
		name       string
		body       json.RawMessage
		err        error
		wantStatus int
		wantError  string
	}{
		{"ok", json.RawMessage(`{"data":[]}`), nil, http.StatusOK, ""},
		{"sin api key", nil, fmt.Errorf("%w: key", apperrors.ErrConfigMissing), http.StatusInternalServerError, "API key is not configured."},
		{"upstream 429", nil, upstreamErr, http.StatusInternalServerError, "Failed to fetch data from CoinMarketCap."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			market := new(MockMarketService)
			market.On("Listings", mock.Anything, "usd").Return(tt.body, tt.err)

			w := httptest.NewRecorder()
			NewCryptoHandler(market).Listings(w, newRequest(http.MethodGet, "/api/crypto?convert=usd", nil, ""))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			if tt.wantError == "" {
				assert.JSONEq(t, string(tt.body), w.Body.String())
			} else {
				assert.Equal(t, tt.wantError, decodeError(t, w))
				assert.NotContains(t, w.Body.String(), "secret upstream body")
			}
			market.AssertExpectations(t)
		})
	}
}

func TestCryptoHandler_QuoteAndHistoryMessages(t *testing.T) {
	market := new(MockMarketService)
	market.On("Quote", mock.Anything, "1", "").Return(nil, fmt.Errorf("%w: key", apperrors.ErrConfigMissing))
	market.On("History", mock.Anything, "1", entities.TimeframeMonth).Return(nil, errors.New("boom"))

	h := NewCryptoHandler(market)

	w := httptest.NewRecorder()
	h.Quote(w, newRequest(http.MethodGet, "/api/crypto/1", map[string]string{"id": "1"}, ""))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "API key not configured.", decodeError(t, w))

	w = httptest.NewRecorder()
	h.History(w, newRequest(http.MethodGet, "/api/crypto/history/1?timeframe=1m", map[string]string{"id": "1"}, ""))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch historical data.", decodeError(t, w))
}

func TestCryptoHandler_HistoryUnknownTimeframeDefaults(t *testing.T) {
	market := new(MockMarketService)
	market.On("History", mock.Anything, "1027", entities.TimeframeWeek).Return(json.RawMessage(`{"data":{}}`), nil)

	w := httptest.NewRecorder()
	NewCryptoHandler(market).History(w, newRequest(http.MethodGet, "/api/crypto/history/1027?timeframe=5y", map[string]string{"id": "1027"}, ""))

	assert.Equal(t, http.StatusOK, w.Code)
	market.AssertExpectations(t)
}

func TestSymbolHandler_GeckoID(t *testing.T) {
	tests := []struct {
		name       string
		symbol     string
		id         string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"resuelto", "BTC", "bitcoin", nil, http.StatusOK, `{"id":"bitcoin"}`},
		{"no encontrado", "ZZZ", "", &apperrors.NotFoundError{Symbol: "zzz"}, http.StatusNotFound, `{"error":"Coin with symbol ZZZ not found on CoinGecko."}`},
		{"lista no disponible", "BTC", "", fmt.Errorf("%w: dial tcp", apperrors.ErrUpstreamUnavailable), http.StatusInternalServerError, `{"error":"Failed to fetch coin list from CoinGecko."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(MockSymbolResolver)
			resolver.On("Resolve", mock.Anything, tt.symbol).Return(tt.id, tt.err)

			w := httptest.NewRecorder()
			NewSymbolHandler(resolver).GeckoID(w, newRequest(http.MethodGet, "/api/crypto/get-gecko-id/"+tt.symbol, map[string]string{"symbol": tt.symbol}, ""))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestSymbolHandler_Status(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	snapshot := entities.NewCoinListSnapshot([]entities.CoinListEntry{{ID: "bitcoin", Symbol: "btc"}}, now.Add(-2*time.Hour))

	resolver := new(MockSymbolResolver)
	resolver.On("Snapshot", mock.Anything).Return(snapshot, nil)

	h := NewSymbolHandler(resolver)
	h.now = func() time.Time { return now }

	w := httptest.NewRecorder()
	h.Status(w, newRequest(http.MethodGet, "/api/crypto/symbols/status", nil, ""))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["loaded"])
	assert.Equal(t, float64(1), body["entries"])
	assert.Equal(t, true, body["stale"])
	assert.Equal(t, float64(7200), body["age_seconds"])
}

func TestCoinHandler_Chart(t *testing.T) {
	market := new(MockMarketService)
	market.On("MarketChart", mock.Anything, "bitcoin", "usd", 30).Return(json.RawMessage(`{"prices":[]}`), nil)

	w := httptest.NewRecorder()
	NewCoinHandler(market).Chart(w, newRequest(http.MethodGet, "/api/coins/bitcoin/chart?vs_currency=usd&days=30", map[string]string{"geckoId": "bitcoin"}, ""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"prices":[]}`, w.Body.String())
}

func TestCoinHandler_ChartInvalidDays(t *testing.T) {
	market := new(MockMarketService)

	w := httptest.NewRecorder()
	NewCoinHandler(market).Chart(w, newRequest(http.MethodGet, "/api/coins/bitcoin/chart?days=abc", map[string]string{"geckoId": "bitcoin"}, ""))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid chart parameters.", decodeError(t, w))
	market.AssertNotCalled(t, "MarketChart", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCoinHandler_ChartBySymbolNotFound(t *testing.T) {
	market := new(MockMarketService)
	market.On("ChartBySymbol", mock.Anything, "FOO", "", 0).Return(nil, &apperrors.NotFoundError{Symbol: "foo"})

	w := httptest.NewRecorder()
	NewCoinHandler(market).ChartBySymbol(w, newRequest(http.MethodGet, "/api/crypto/chart/FOO", map[string]string{"symbol": "FOO"}, ""))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Coin with symbol FOO not found on CoinGecko.", decodeError(t, w))
}

func TestAnalysisHandler_AnalyzeCoin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(m *MockAnalysisService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "ok",
			body: `{"coinName":"Bitcoin"}`,
			setup: func(m *MockAnalysisService) {
				m.On("AnalyzeCoin", mock.Anything, "Bitcoin").Return(entities.NewAnalysis("Bitcoin", "**Aetherium Index Score: 70/100**"), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"analysis":"**Aetherium Index Score: 70/100**"}`,
		},
		{
			name:       "json invalido",
			body:       `{coinName`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Valid coin name is required"}`,
		},
		{
			name:       "coinName no es string",
			body:       `{"coinName":42}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Valid coin name is required"}`,
		},
		{
			name:       "coinName ausente",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Valid coin name is required"}`,
		},
		{
			name: "fallo de generacion",
			body: `{"coinName":"Bitcoin"}`,
			setup: func(m *MockAnalysisService) {
				m.On("AnalyzeCoin", mock.Anything, "Bitcoin").Return(nil, errors.New("quota exceeded"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to generate AI analysis"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAnalysisService)
			if tt.setup != nil {
				tt.setup(svc)
			}

			w := httptest.NewRecorder()
			NewAnalysisHandler(svc).AnalyzeCoin(w, newRequest(http.MethodPost, "/api/ai/analyze-coin", nil, tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewHealthHandler(nil, new(MockSymbolResolver)).Health(w, newRequest(http.MethodGet, "/health", nil, ""))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	})

	t.Run("cache caido", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewHealthHandler(fakePinger{err: errors.New("connection refused")}, new(MockSymbolResolver)).Ready(w, newRequest(http.MethodGet, "/ready", nil, ""))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unhealthy"`)
	})

	t.Run("snapshot vigente", func(t *testing.T) {
		resolver := new(MockSymbolResolver)
		resolver.On("Snapshot", mock.Anything).Return(entities.NewCoinListSnapshot(nil, now.Add(-time.Minute)), nil)

		h := NewHealthHandler(fakePinger{}, resolver)
		h.now = func() time.Time { return now }

		w := httptest.NewRecorder()
		h.Ready(w, newRequest(http.MethodGet, "/ready", nil, ""))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ready"`)
		assert.Contains(t, w.Body.String(), `"symbols":"ready"`)
	})

	t.Run("snapshot caducado", func(t *testing.T) {
		resolver := new(MockSymbolResolver)
		resolver.On("Snapshot", mock.Anything).Return(entities.NewCoinListSnapshot(nil, now.Add(-2*time.Hour)), nil)

		h := NewHealthHandler(nil, resolver)
		h.now = func() time.Time { return now }

		w := httptest.NewRecorder()
		h.Ready(w, newRequest(http.MethodGet, "/ready", nil, ""))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"degraded"`)
	})
}
