package logging

import (
	"context"
	"time"
)

// BaseDomainLogger añade el campo domain a todo lo que registra
type BaseDomainLogger struct {
	Logger
	domain string
}

func newBase(baseLogger Logger, domain string) *BaseDomainLogger {
	return &BaseDomainLogger{Logger: baseLogger, domain: domain}
}

func (dl *BaseDomainLogger) Domain() string {
	return dl.domain
}

func (dl *BaseDomainLogger) withDomain(fields Fields) Fields {
	out := make(Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out[FieldDomain] = dl.domain
	return out
}

func (dl *BaseDomainLogger) logAt(ctx context.Context, level LogLevel, message string, fields Fields) {
	fields = dl.withDomain(fields)

	switch level {
	case LevelDebug:
		dl.Logger.Debug(ctx, message, fields)
	case LevelWarn:
		dl.Logger.Warn(ctx, message, fields)
	case LevelError:
		dl.Logger.Error(ctx, message, fields)
	default:
		dl.Logger.Info(ctx, message, fields)
	}
}

func (dl *BaseDomainLogger) Debug(ctx context.Context, message string, fields Fields) {
	dl.logAt(ctx, LevelDebug, message, fields)
}

func (dl *BaseDomainLogger) Info(ctx context.Context, message string, fields Fields) {
	dl.logAt(ctx, LevelInfo, message, fields)
}

func (dl *BaseDomainLogger) Warn(ctx context.Context, message string, fields Fields) {
	dl.logAt(ctx, LevelWarn, message, fields)
}

func (dl *BaseDomainLogger) Error(ctx context.Context, message string, fields Fields) {
	dl.logAt(ctx, LevelError, message, fields)
}

func (dl *BaseDomainLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.Logger.WarnWithError(ctx, message, err, dl.withDomain(fields))
}

func (dl *BaseDomainLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.Logger.ErrorWithError(ctx, message, err, dl.withDomain(fields))
}

// levelForStatus: 4xx → WARN, 5xx → ERROR
func levelForStatus(statusCode int) LogLevel {
	switch {
	case statusCode >= 500:
		return LevelError
	case statusCode >= 400:
		return LevelWarn
	default:
		return LevelInfo
	}
}

// HTTPDomainLogger

type HTTPDomainLogger struct {
	*BaseDomainLogger
}

func NewHTTPLogger(baseLogger Logger) HTTPLogger {
	return &HTTPDomainLogger{newBase(baseLogger, "http")}
}

func (hl *HTTPDomainLogger) RequestCompleted(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	fields := NewFieldBuilder().
		WithHTTPInfo(method, path, statusCode).
		WithUserAgent(GetUserAgent(ctx)).
		WithRemoteIP(GetRemoteIP(ctx)).
		WithDuration(duration).
		Build()

	hl.logAt(ctx, levelForStatus(statusCode), "HTTP request completed", fields)
}

func (hl *HTTPDomainLogger) RequestFailed(ctx context.Context, method, path string, statusCode int, err error, duration time.Duration) {
	fields := NewFieldBuilder().
		WithHTTPInfo(method, path, statusCode).
		WithDuration(duration).
		Build()

	hl.ErrorWithError(ctx, "HTTP request failed", err, fields)
}

// ExternalAPIDomainLogger

type ExternalAPIDomainLogger struct {
	*BaseDomainLogger
}

func NewExternalAPILogger(baseLogger Logger) ExternalAPILogger {
	return &ExternalAPIDomainLogger{newBase(baseLogger, "external_api")}
}

func (el *ExternalAPIDomainLogger) RequestStarted(ctx context.Context, service, endpoint, method string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldExternalService, service).
		WithCustomField(FieldExternalEndpoint, endpoint).
		WithCustomField(FieldExternalMethod, method).
		Build()

	el.Debug(ctx, "External API request started", fields)
}

func (el *ExternalAPIDomainLogger) RequestCompleted(ctx context.Context, service, endpoint string, statusCode int, duration time.Duration) {
	fields := NewFieldBuilder().
		WithExternalAPI(service, endpoint, statusCode, duration).
		Build()

	el.logAt(ctx, levelForStatus(statusCode), "External API request completed", fields)
}

func (el *ExternalAPIDomainLogger) RequestFailed(ctx context.Context, service, endpoint string, statusCode int, err error, duration time.Duration) {
	fields := NewFieldBuilder().
		WithExternalAPI(service, endpoint, statusCode, duration).
		Build()

	el.ErrorWithError(ctx, "External API request failed", err, fields)
}

// CacheDomainLogger

type CacheDomainLogger struct {
	*BaseDomainLogger
}

func NewCacheLogger(baseLogger Logger) CacheLogger {
	return &CacheDomainLogger{newBase(baseLogger, "cache")}
}

func (cl *CacheDomainLogger) Hit(ctx context.Context, key string) {
	cl.Debug(ctx, "Cache hit", NewFieldBuilder().WithCache(CacheOpGet, key, true).Build())
}

func (cl *CacheDomainLogger) Miss(ctx context.Context, key string) {
	cl.Debug(ctx, "Cache miss", NewFieldBuilder().WithCache(CacheOpGet, key, false).Build())
}

func (cl *CacheDomainLogger) Set(ctx context.Context, key string, ttl time.Duration) {
	fields := NewFieldBuilder().
		WithCustomField(FieldCacheOperation, CacheOpSet).
		WithCustomField(FieldCacheKey, key).
		WithCustomField(FieldCacheTTL, ttl.Seconds()).
		Build()

	cl.Debug(ctx, "Cache set", fields)
}

func (cl *CacheDomainLogger) CacheError(ctx context.Context, operation, key string, err error) {
	fields := NewFieldBuilder().
		WithCustomField(FieldCacheOperation, operation).
		WithCustomField(FieldCacheKey, key).
		Build()

	cl.ErrorWithError(ctx, "Cache operation failed", err, fields)
}

// SymbolDomainLogger

type SymbolDomainLogger struct {
	*BaseDomainLogger
}

func NewSymbolLogger(baseLogger Logger) SymbolLogger {
	return &SymbolDomainLogger{newBase(baseLogger, "symbols")}
}

func (sl *SymbolDomainLogger) SymbolResolved(ctx context.Context, symbol, providerID string) {
	fields := NewFieldBuilder().
		WithSymbolContext(symbol, providerID, "coingecko").
		Build()

	sl.Debug(ctx, "Symbol resolved", fields)
}

func (sl *SymbolDomainLogger) SymbolNotFound(ctx context.Context, symbol string, entries int) {
	fields := NewFieldBuilder().
		WithSymbolContext(symbol, "", "").
		WithCustomField(FieldSnapshotSize, entries).
		Build()

	sl.Info(ctx, "Symbol not found in coin list", fields)
}

func (sl *SymbolDomainLogger) SnapshotRefreshed(ctx context.Context, entries int, duration time.Duration) {
	fields := NewFieldBuilder().
		WithCustomField(FieldSnapshotSize, entries).
		WithDuration(duration).
		Build()

	sl.Info(ctx, "Coin list snapshot refreshed", fields)
}

func (sl *SymbolDomainLogger) SnapshotRefreshFailed(ctx context.Context, err error, hasFallback bool) {
	fields := NewFieldBuilder().
		WithCustomField("has_fallback", hasFallback).
		Build()

	if hasFallback {
		sl.WarnWithError(ctx, "Coin list refresh failed, keeping previous snapshot", err, fields)
		return
	}
	sl.ErrorWithError(ctx, "Coin list refresh failed and no snapshot is available", err, fields)
}

func (sl *SymbolDomainLogger) StaleSnapshotServed(ctx context.Context, symbol string, age time.Duration) {
	fields := NewFieldBuilder().
		WithSymbolContext(symbol, "", "stale_snapshot").
		WithCustomField(FieldSnapshotAge, age.Seconds()).
		Build()

	sl.Warn(ctx, "Resolving against stale coin list snapshot", fields)
}

// AnalysisDomainLogger

type AnalysisDomainLogger struct {
	*BaseDomainLogger
}

func NewAnalysisLogger(baseLogger Logger) AnalysisLogger {
	return &AnalysisDomainLogger{newBase(baseLogger, "analysis")}
}

func (al *AnalysisDomainLogger) AnalysisGenerated(ctx context.Context, coinName string, chars int, duration time.Duration) {
	fields := NewFieldBuilder().
		WithCustomField(FieldCoinName, coinName).
		WithCustomField("chars", chars).
		WithDuration(duration).
		Build()

	al.Info(ctx, "Analysis generated", fields)
}

func (al *AnalysisDomainLogger) AnalysisFallback(ctx context.Context, coinName, reason string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldCoinName, coinName).
		WithCustomField("reason", reason).
		Build()

	al.Warn(ctx, "Analysis replaced by fallback text", fields)
}

func (al *AnalysisDomainLogger) ValidationFailed(ctx context.Context, input string, reason string) {
	fields := NewFieldBuilder().
		WithCustomField("input", input).
		WithCustomField(FieldValidation, reason).
		Build()

	al.Warn(ctx, "Input validation failed", fields)
}

// SecurityDomainLogger

type SecurityDomainLogger struct {
	*BaseDomainLogger
}

func NewSecurityLogger(baseLogger Logger) SecurityLogger {
	return &SecurityDomainLogger{newBase(baseLogger, "security")}
}

func (sl *SecurityDomainLogger) RateLimitExceeded(ctx context.Context, clientIP string, endpoint string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldClientIP, clientIP).
		WithCustomField("endpoint", endpoint).
		WithCustomField(FieldRateLimit, "exceeded").
		Build()

	sl.Warn(ctx, "Rate limit exceeded", fields)
}

func (sl *SecurityDomainLogger) Unauthorized(ctx context.Context, clientIP string, reason string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldClientIP, clientIP).
		WithCustomField(FieldSuspiciousReason, reason).
		Build()

	sl.Warn(ctx, "Unauthorized request rejected", fields)
}

func (sl *SecurityDomainLogger) SuspiciousActivity(ctx context.Context, clientIP string, reason string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldClientIP, clientIP).
		WithCustomField(FieldSuspiciousReason, reason).
		Build()

	sl.Warn(ctx, "Suspicious request detected", fields)
}
