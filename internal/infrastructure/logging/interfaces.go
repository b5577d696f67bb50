package logging

import (
	"context"
	"time"
)

// Logger define la interfaz principal para logging estructurado
type Logger interface {
	Debug(ctx context.Context, message string, fields Fields)
	Info(ctx context.Context, message string, fields Fields)
	Warn(ctx context.Context, message string, fields Fields)
	Error(ctx context.Context, message string, fields Fields)

	InfoWithError(ctx context.Context, message string, err error, fields Fields)
	WarnWithError(ctx context.Context, message string, err error, fields Fields)
	ErrorWithError(ctx context.Context, message string, err error, fields Fields)

	SetLevel(level LogLevel)
	GetLevel() LogLevel
}

// DomainLogger representa loggers especializados por dominio
type DomainLogger interface {
	Logger
	Domain() string
}

type HTTPLogger interface {
	DomainLogger

	RequestCompleted(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	RequestFailed(ctx context.Context, method, path string, statusCode int, err error, duration time.Duration)
}

// ExternalAPILogger cubre las llamadas a CoinMarketCap, CoinGecko y Gemini
type ExternalAPILogger interface {
	DomainLogger

	RequestStarted(ctx context.Context, service, endpoint, method string)
	RequestCompleted(ctx context.Context, service, endpoint string, statusCode int, duration time.Duration)
	RequestFailed(ctx context.Context, service, endpoint string, statusCode int, err error, duration time.Duration)
}

type CacheLogger interface {
	DomainLogger

	Hit(ctx context.Context, key string)
	Miss(ctx context.Context, key string)
	Set(ctx context.Context, key string, ttl time.Duration)
	CacheError(ctx context.Context, operation, key string, err error)
}

// SymbolLogger registra la resolución de símbolos y el ciclo de vida del snapshot
type SymbolLogger interface {
	DomainLogger

	SymbolResolved(ctx context.Context, symbol, providerID string)
	SymbolNotFound(ctx context.Context, symbol string, entries int)
	SnapshotRefreshed(ctx context.Context, entries int, duration time.Duration)
	SnapshotRefreshFailed(ctx context.Context, err error, hasFallback bool)
	StaleSnapshotServed(ctx context.Context, symbol string, age time.Duration)
}

// AnalysisLogger registra la generación de análisis
type AnalysisLogger interface {
	DomainLogger

	AnalysisGenerated(ctx context.Context, coinName string, chars int, duration time.Duration)
	AnalysisFallback(ctx context.Context, coinName, reason string)
	ValidationFailed(ctx context.Context, input string, reason string)
}

type SecurityLogger interface {
	DomainLogger

	RateLimitExceeded(ctx context.Context, clientIP string, endpoint string)
	Unauthorized(ctx context.Context, clientIP string, reason string)
	SuspiciousActivity(ctx context.Context, clientIP string, reason string)
}
