package dto

import (
	"time"
)

// ErrorResponse es el cuerpo de todos los errores de la API
// @Description Standard error response
type ErrorResponse struct {
	Error string `json:"error" example:"Failed to fetch data from CoinMarketCap." validate:"required"`
}

// GeckoIDResponse represents the response from /api/crypto/get-gecko-id/{symbol}
// @Description CoinGecko id resolved from a ticker symbol
type GeckoIDResponse struct {
	ID string `json:"id" example:"bitcoin" validate:"required"`
}

// AnalysisResponse represents the response from /api/ai/analyze-coin
// @Description Generated narrative analysis
type AnalysisResponse struct {
	Analysis string `json:"analysis" example:"**Aetherium Index Score: 72/100**" validate:"required"`
}

// SymbolsStatusResponse describes the coin list snapshot held by the resolver
// @Description Coin list snapshot status
type SymbolsStatusResponse struct {
	Loaded        bool       `json:"loaded" example:"true"`
	Entries       int        `json:"entries" example:"17342"`
	FetchedAt     *time.Time `json:"fetched_at,omitempty" example:"2025-03-01T12:00:00Z"`
	AgeSeconds    float64    `json:"age_seconds" example:"421.5"`
	WindowSeconds float64    `json:"window_seconds" example:"3600"`
	Stale         bool       `json:"stale" example:"false"`
}

// HealthResponse represents the health check response with service status
// @Description Health check response with service status
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy" validate:"required" enums:"healthy,degraded,unhealthy"`
	Timestamp time.Time         `json:"timestamp" example:"2025-03-01T10:30:00Z" validate:"required"`
	Services  map[string]string `json:"services,omitempty" example:"cache:healthy,symbols:healthy"`
}

// StreamMessage es cada mensaje enviado por /api/crypto/stream
// @Description Listings payload pushed over the websocket
type StreamMessage struct {
	Type    string      `json:"type" example:"listings" enums:"listings,error"`
	Convert string      `json:"convert,omitempty" example:"GBP"`
	SentAt  time.Time   `json:"sent_at"`
	Data    interface{} `json:"data,omitempty" swaggertype:"object"`
	Error   string      `json:"error,omitempty"`
}
